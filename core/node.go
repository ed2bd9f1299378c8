package core

import (
	"log/slog"
	"math/big"
	"sync"

	"nomadzpay/core/events"
	nmzstate "nomadzpay/core/state"
	"nomadzpay/native/payments"
	"nomadzpay/observability"
	"nomadzpay/storage"
)

// Node hosts the payment program against persistent storage. Every operation
// runs as one indivisible unit: it binds a fresh state manager over a write
// batch, executes the engine, and flushes the batch only on success. A failed
// operation leaves storage untouched. Operations are serialized by stateMu;
// callers racing on the same record see a clean reject, never partial writes.
type Node struct {
	stateMu sync.Mutex
	db      storage.Database
	logger  *slog.Logger
	emitter events.Emitter
}

// NewNode creates a node over the provided storage backend.
func NewNode(db storage.Database, logger *slog.Logger) *Node {
	if logger == nil {
		logger = slog.Default()
	}
	return &Node{
		db:      db,
		logger:  logger,
		emitter: events.NoopEmitter{},
	}
}

// SetEmitter configures the event emitter handed to the engine. Passing nil
// resets it to a no-op implementation.
func (n *Node) SetEmitter(emitter events.Emitter) {
	n.stateMu.Lock()
	defer n.stateMu.Unlock()
	if emitter == nil {
		n.emitter = events.NoopEmitter{}
		return
	}
	n.emitter = emitter
}

func (n *Node) withEngine(fn func(*payments.Engine) error) error {
	n.stateMu.Lock()
	defer n.stateMu.Unlock()

	batch := nmzstate.NewBatch(n.db)
	engine := payments.NewEngine()
	engine.SetState(nmzstate.NewManager(batch))
	engine.SetEmitter(n.emitter)

	if err := fn(engine); err != nil {
		batch.Discard()
		return err
	}
	return batch.Commit()
}

// PaymentsInitialize creates the singleton config record.
func (n *Node) PaymentsInitialize(admin, feeVault, destinationVault [20]byte, bookingFeeBps uint32, allowedPaymentTokens []string) (*payments.Config, error) {
	var cfg *payments.Config
	err := n.withEngine(func(engine *payments.Engine) error {
		var innerErr error
		cfg, innerErr = engine.Initialize(admin, feeVault, destinationVault, bookingFeeBps, allowedPaymentTokens)
		return innerErr
	})
	observability.Payments().RecordOperation("initialize", err)
	if err != nil {
		return nil, err
	}
	n.logger.Info("payments config initialized",
		slog.Uint64("bookingFeeBps", uint64(cfg.BookingFeeBps)),
		slog.Int("allowedPaymentTokens", len(cfg.AllowedPaymentTokens)))
	return cfg, nil
}

// PaymentsUpdateConfig applies an admin-gated partial config mutation.
func (n *Node) PaymentsUpdateConfig(caller [20]byte, update payments.ConfigUpdate) (*payments.Config, error) {
	var cfg *payments.Config
	err := n.withEngine(func(engine *payments.Engine) error {
		var innerErr error
		cfg, innerErr = engine.UpdateConfig(caller, update)
		return innerErr
	})
	observability.Payments().RecordOperation("updateConfig", err)
	if err != nil {
		return nil, err
	}
	n.logger.Info("payments config updated",
		slog.Uint64("bookingFeeBps", uint64(cfg.BookingFeeBps)))
	return cfg, nil
}

// PaymentsConfig returns the current config record.
func (n *Node) PaymentsConfig() (*payments.Config, error) {
	n.stateMu.Lock()
	defer n.stateMu.Unlock()

	engine := payments.NewEngine()
	engine.SetState(nmzstate.NewManager(nmzstate.NewBatch(n.db)))
	return engine.Config()
}

// PaymentsCreateBooking creates or refreshes the booking payment record for
// the supplied payer and identifiers. No funds move.
func (n *Node) PaymentsCreateBooking(payer [20]byte, tokenMint string, tokenAmount *big.Int, hotelID, userID string) (*payments.BookingPayment, error) {
	var bp *payments.BookingPayment
	err := n.withEngine(func(engine *payments.Engine) error {
		var innerErr error
		bp, innerErr = engine.CreateBookingPayment(payer, tokenMint, tokenAmount, hotelID, userID)
		return innerErr
	})
	observability.Payments().RecordOperation("createBookingPayment", err)
	if err != nil {
		return nil, err
	}
	n.logger.Info("booking payment recorded",
		slog.String("hotelId", bp.HotelID),
		slog.String("userId", bp.UserID),
		slog.String("totalAmount", bp.TotalAmount.String()))
	return bp, nil
}

// PaymentsSettleBooking settles the booking payment identified by the payer
// and booking identifiers, moving the fee and destination amounts and marking
// the record terminal.
func (n *Node) PaymentsSettleBooking(payer, admin [20]byte, hotelID, userID string) (*payments.BookingPayment, error) {
	addr := payments.DeriveBookingPaymentAddress(payer, hotelID, userID)
	var bp *payments.BookingPayment
	err := n.withEngine(func(engine *payments.Engine) error {
		var innerErr error
		bp, innerErr = engine.SettleBookingPayment(payer, admin, addr)
		return innerErr
	})
	observability.Payments().RecordOperation("settleBookingPayment", err)
	if err != nil {
		return nil, err
	}
	observability.Payments().RecordSettlement()
	n.logger.Info("booking payment settled",
		slog.String("hotelId", bp.HotelID),
		slog.String("userId", bp.UserID),
		slog.String("feeAmount", bp.FeeAmount.String()),
		slog.String("destinationAmount", bp.DestinationAmount.String()))
	return bp, nil
}

// PaymentsBooking returns the record stored at the supplied derived address.
func (n *Node) PaymentsBooking(addr [32]byte) (*payments.BookingPayment, error) {
	n.stateMu.Lock()
	defer n.stateMu.Unlock()

	engine := payments.NewEngine()
	engine.SetState(nmzstate.NewManager(nmzstate.NewBatch(n.db)))
	return engine.BookingPayment(addr)
}

// Balance reads the per-mint holding balance of an account.
func (n *Node) Balance(addr [20]byte, mint string) (*big.Int, error) {
	n.stateMu.Lock()
	defer n.stateMu.Unlock()

	manager := nmzstate.NewManager(nmzstate.NewBatch(n.db))
	return manager.Balance(addr, mint)
}

// Credit adds funds to an account's holding for the supplied mint. It exists
// for deployment bootstrap and tests; the settlement path never mints.
func (n *Node) Credit(addr [20]byte, mint string, amount *big.Int) error {
	n.stateMu.Lock()
	defer n.stateMu.Unlock()

	if amount == nil || amount.Sign() < 0 {
		return payments.ErrInvalidAmount
	}
	batch := nmzstate.NewBatch(n.db)
	manager := nmzstate.NewManager(batch)
	balance, err := manager.Balance(addr, mint)
	if err != nil {
		return err
	}
	if err := manager.SetBalance(addr, mint, new(big.Int).Add(balance, amount)); err != nil {
		return err
	}
	return batch.Commit()
}
