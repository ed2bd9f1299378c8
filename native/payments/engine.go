package payments

import (
	"errors"
	"fmt"
	"math/big"
	"time"

	"nomadzpay/core/events"
	"nomadzpay/core/types"
)

var errNilState = errors.New("payments engine: state not configured")

type engineState interface {
	PaymentsConfigPut(*Config) error
	PaymentsConfigGet() (*Config, bool, error)
	BookingPaymentPut(*BookingPayment) error
	BookingPaymentGet(addr [32]byte) (*BookingPayment, bool, error)
	Balance(addr [20]byte, mint string) (*big.Int, error)
	SetBalance(addr [20]byte, mint string, amount *big.Int) error
}

type paymentsEvent struct {
	evt *types.Event
}

func (e paymentsEvent) EventType() string {
	if e.evt == nil {
		return ""
	}
	return e.evt.Type
}

func (e paymentsEvent) Event() *types.Event { return e.evt }

// ConfigUpdate describes a partial config mutation. Nil fields are left
// unchanged; present fields overwrite. A non-nil AllowedPaymentTokens fully
// replaces the prior list, it is never merged.
type ConfigUpdate struct {
	Admin                *[20]byte
	FeeVault             *[20]byte
	DestinationVault     *[20]byte
	BookingFeeBps        *uint32
	AllowedPaymentTokens []string
}

// Engine wires the booking payment business logic with external state and
// event emitters. Every operation re-reads the persisted records it needs,
// validates fully, and only then commits its writes.
type Engine struct {
	state   engineState
	emitter events.Emitter
	nowFn   func() int64
}

// NewEngine creates a payments engine with a no-op emitter. Callers can
// override the emitter via SetEmitter.
func NewEngine() *Engine {
	return &Engine{
		emitter: events.NoopEmitter{},
		nowFn:   func() int64 { return time.Now().Unix() },
	}
}

// SetState configures the state backend used by the engine.
func (e *Engine) SetState(state engineState) { e.state = state }

// SetEmitter configures the event emitter used by the engine. Passing nil
// resets the emitter to a no-op implementation.
func (e *Engine) SetEmitter(emitter events.Emitter) {
	if emitter == nil {
		e.emitter = events.NoopEmitter{}
		return
	}
	e.emitter = emitter
}

// SetNowFunc overrides the time source used by the engine. Primarily intended
// for tests to provide deterministic timestamps.
func (e *Engine) SetNowFunc(now func() int64) {
	if now == nil {
		e.nowFn = func() int64 { return time.Now().Unix() }
		return
	}
	e.nowFn = now
}

func (e *Engine) emit(event *types.Event) {
	if e == nil || e.emitter == nil || event == nil {
		return
	}
	e.emitter.Emit(paymentsEvent{evt: event})
}

func (e *Engine) now() int64 {
	if e == nil || e.nowFn == nil {
		return time.Now().Unix()
	}
	return e.nowFn()
}

func (e *Engine) loadConfig() (*Config, error) {
	if e == nil || e.state == nil {
		return nil, errNilState
	}
	cfg, ok, err := e.state.PaymentsConfigGet()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrConfigNotFound
	}
	return cfg, nil
}

// transferToken moves amount of the given mint between two accounts. The
// destination balance is read after the source debit so a self-transfer nets
// to zero instead of double-counting.
func (e *Engine) transferToken(from, to [20]byte, mint string, amount *big.Int) error {
	if e == nil || e.state == nil {
		return errNilState
	}
	amt := cloneBigInt(amount)
	if amt.Sign() < 0 {
		return fmt.Errorf("%w: negative transfer amount", ErrTransferFailed)
	}
	fromBal, err := e.state.Balance(from, mint)
	if err != nil {
		return err
	}
	if fromBal.Cmp(amt) < 0 {
		return fmt.Errorf("%w: insufficient balance", ErrTransferFailed)
	}
	if err := e.state.SetBalance(from, mint, new(big.Int).Sub(fromBal, amt)); err != nil {
		return err
	}
	toBal, err := e.state.Balance(to, mint)
	if err != nil {
		return err
	}
	return e.state.SetBalance(to, mint, new(big.Int).Add(toBal, amt))
}

// Initialize creates the singleton config record. It fails when the config
// slot is already populated, so re-invocation can never corrupt an existing
// deployment. All validation happens before the write.
func (e *Engine) Initialize(admin, feeVault, destinationVault [20]byte, bookingFeeBps uint32, allowedPaymentTokens []string) (*Config, error) {
	if e == nil || e.state == nil {
		return nil, errNilState
	}
	cfg := &Config{
		Admin:                admin,
		FeeVault:             feeVault,
		DestinationVault:     destinationVault,
		BookingFeeBps:        bookingFeeBps,
		AllowedPaymentTokens: append([]string(nil), allowedPaymentTokens...),
	}
	sanitized, err := SanitizeConfig(cfg)
	if err != nil {
		return nil, err
	}
	if _, ok, err := e.state.PaymentsConfigGet(); err != nil {
		return nil, err
	} else if ok {
		return nil, ErrAlreadyInitialized
	}
	if err := e.state.PaymentsConfigPut(sanitized); err != nil {
		return nil, err
	}
	e.emit(NewConfigInitializedEvent(sanitized))
	return sanitized.Clone(), nil
}

// UpdateConfig applies a partial mutation to the config record. Only the
// current admin may invoke it; an admin change takes effect for subsequent
// calls immediately.
func (e *Engine) UpdateConfig(caller [20]byte, update ConfigUpdate) (*Config, error) {
	cfg, err := e.loadConfig()
	if err != nil {
		return nil, err
	}
	if caller != cfg.Admin {
		return nil, ErrUnauthorized
	}
	if update.Admin != nil {
		cfg.Admin = *update.Admin
	}
	if update.FeeVault != nil {
		cfg.FeeVault = *update.FeeVault
	}
	if update.DestinationVault != nil {
		cfg.DestinationVault = *update.DestinationVault
	}
	if update.BookingFeeBps != nil {
		cfg.BookingFeeBps = *update.BookingFeeBps
	}
	if update.AllowedPaymentTokens != nil {
		cfg.AllowedPaymentTokens = append([]string(nil), update.AllowedPaymentTokens...)
	}
	sanitized, err := SanitizeConfig(cfg)
	if err != nil {
		return nil, err
	}
	if err := e.state.PaymentsConfigPut(sanitized); err != nil {
		return nil, err
	}
	e.emit(NewConfigUpdatedEvent(sanitized))
	return sanitized.Clone(), nil
}

// Config returns the current config record.
func (e *Engine) Config() (*Config, error) {
	return e.loadConfig()
}

// BookingPayment returns the record stored at the supplied derived address.
func (e *Engine) BookingPayment(addr [32]byte) (*BookingPayment, error) {
	if e == nil || e.state == nil {
		return nil, errNilState
	}
	bp, ok, err := e.state.BookingPaymentGet(addr)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return bp, nil
}

// CreateBookingPayment records the collection intent for a booking. No funds
// move; the operation reserves a record at the derived address with the fee
// split computed against the current config snapshot. Re-invocation on a
// pending record refreshes its amounts in place; settled records reject.
func (e *Engine) CreateBookingPayment(payer [20]byte, tokenMint string, tokenAmount *big.Int, hotelID, userID string) (*BookingPayment, error) {
	cfg, err := e.loadConfig()
	if err != nil {
		return nil, err
	}
	mint, err := NormalizeMint(tokenMint)
	if err != nil {
		return nil, err
	}
	if !cfg.AllowsToken(mint) {
		return nil, ErrTokenNotAllowed
	}
	if err := validateIdentifier(hotelID); err != nil {
		return nil, err
	}
	if err := validateIdentifier(userID); err != nil {
		return nil, err
	}
	fee, destination, err := SplitFee(tokenAmount, cfg.BookingFeeBps)
	if err != nil {
		return nil, err
	}
	total := new(big.Int).Add(fee, destination)
	addr := DeriveBookingPaymentAddress(payer, hotelID, userID)

	existing, ok, err := e.state.BookingPaymentGet(addr)
	if err != nil {
		return nil, err
	}
	if ok {
		if existing.Status != BookingPending {
			return nil, ErrAlreadySettled
		}
		existing.TokenMint = mint
		existing.FeeAmount = fee
		existing.DestinationAmount = destination
		existing.TotalAmount = total
		if err := e.state.BookingPaymentPut(existing); err != nil {
			return nil, err
		}
		e.emit(NewBookingRefreshedEvent(existing))
		return existing.Clone(), nil
	}

	bp := &BookingPayment{
		Address:           addr,
		User:              payer,
		TokenMint:         mint,
		HotelID:           hotelID,
		UserID:            userID,
		FeeAmount:         fee,
		DestinationAmount: destination,
		TotalAmount:       total,
		Status:            BookingPending,
		CreatedAt:         e.now(),
	}
	if err := e.state.BookingPaymentPut(bp); err != nil {
		return nil, err
	}
	e.emit(NewBookingCreatedEvent(bp))
	return bp.Clone(), nil
}

// SettleBookingPayment transfers the fee and destination amounts out of the
// payer's holding and marks the record settled. The payer must match the
// record's user and the admin must match the current config admin. The payer
// balance is verified against the full total before any write so a failed
// settlement leaves no partial transfer behind. Settlement is exactly-once:
// a second invocation fails with ErrAlreadySettled and moves nothing.
func (e *Engine) SettleBookingPayment(payer, admin [20]byte, addr [32]byte) (*BookingPayment, error) {
	cfg, err := e.loadConfig()
	if err != nil {
		return nil, err
	}
	if admin != cfg.Admin {
		return nil, ErrUnauthorized
	}
	bp, ok, err := e.state.BookingPaymentGet(addr)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	if bp.User != payer {
		return nil, ErrUnauthorized
	}
	if bp.Status != BookingPending {
		return nil, ErrAlreadySettled
	}
	if !cfg.AllowsToken(bp.TokenMint) {
		return nil, ErrTokenNotAllowed
	}
	balance, err := e.state.Balance(payer, bp.TokenMint)
	if err != nil {
		return nil, err
	}
	if balance.Cmp(bp.TotalAmount) < 0 {
		return nil, fmt.Errorf("%w: insufficient balance", ErrTransferFailed)
	}
	// Both transfers always execute, even when the two vaults coincide; the
	// destination read inside transferToken keeps the deltas additive.
	if err := e.transferToken(payer, cfg.FeeVault, bp.TokenMint, bp.FeeAmount); err != nil {
		return nil, err
	}
	if err := e.transferToken(payer, cfg.DestinationVault, bp.TokenMint, bp.DestinationAmount); err != nil {
		return nil, err
	}
	bp.Status = BookingSettled
	bp.SettledAt = e.now()
	if err := e.state.BookingPaymentPut(bp); err != nil {
		return nil, err
	}
	e.emit(NewBookingSettledEvent(bp))
	return bp.Clone(), nil
}
