package state

import (
	"fmt"
	"math/big"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"

	"nomadzpay/native/payments"
)

// KV is the minimal key-value surface the manager operates on. Both the raw
// storage database and the node's write batch satisfy it.
type KV interface {
	Get(key []byte) ([]byte, error)
	Put(key, value []byte) error
}

// Manager provides typed access to the payment program's persisted records.
// Keys are prefixed per record kind and hashed with keccak256 before hitting
// the underlying store.
type Manager struct {
	kv KV
}

// NewManager creates a state manager operating on the provided key-value view.
func NewManager(kv KV) *Manager {
	return &Manager{kv: kv}
}

var (
	paymentsConfigPrefix = []byte("payments/config/")
	bookingPaymentPrefix = []byte("payments/booking/")
	balancePrefix        = []byte("balance:")
)

func paymentsConfigKey() []byte {
	addr := payments.DeriveConfigAddress()
	buf := make([]byte, len(paymentsConfigPrefix)+len(addr))
	copy(buf, paymentsConfigPrefix)
	copy(buf[len(paymentsConfigPrefix):], addr[:])
	return ethcrypto.Keccak256(buf)
}

func bookingPaymentKey(addr [32]byte) []byte {
	buf := make([]byte, len(bookingPaymentPrefix)+len(addr))
	copy(buf, bookingPaymentPrefix)
	copy(buf[len(bookingPaymentPrefix):], addr[:])
	return ethcrypto.Keccak256(buf)
}

func balanceKey(addr [20]byte, mint string) []byte {
	buf := make([]byte, len(balancePrefix)+len(mint)+1+len(addr))
	copy(buf, balancePrefix)
	copy(buf[len(balancePrefix):], mint)
	buf[len(balancePrefix)+len(mint)] = ':'
	copy(buf[len(balancePrefix)+len(mint)+1:], addr[:])
	return ethcrypto.Keccak256(buf)
}

// Stored shapes keep the persisted encoding independent of the in-memory
// types. RLP has no signed integer support, so timestamps persist as uint64.

type storedConfig struct {
	Admin                [20]byte
	FeeVault             [20]byte
	DestinationVault     [20]byte
	BookingFeeBps        uint32
	AllowedPaymentTokens []string
}

type storedBookingPayment struct {
	Address           [32]byte
	User              [20]byte
	TokenMint         string
	HotelID           string
	UserID            string
	FeeAmount         *big.Int
	DestinationAmount *big.Int
	TotalAmount       *big.Int
	Status            uint8
	CreatedAt         uint64
	SettledAt         uint64
}

// PaymentsConfigPut persists the singleton config record at its derived
// address.
func (m *Manager) PaymentsConfigPut(cfg *payments.Config) error {
	sanitized, err := payments.SanitizeConfig(cfg)
	if err != nil {
		return err
	}
	stored := storedConfig{
		Admin:                sanitized.Admin,
		FeeVault:             sanitized.FeeVault,
		DestinationVault:     sanitized.DestinationVault,
		BookingFeeBps:        sanitized.BookingFeeBps,
		AllowedPaymentTokens: sanitized.AllowedPaymentTokens,
	}
	encoded, err := rlp.EncodeToBytes(&stored)
	if err != nil {
		return err
	}
	return m.kv.Put(paymentsConfigKey(), encoded)
}

// PaymentsConfigGet loads the singleton config record. The boolean return
// reports whether the record exists.
func (m *Manager) PaymentsConfigGet() (*payments.Config, bool, error) {
	data, err := m.kv.Get(paymentsConfigKey())
	if err != nil {
		return nil, false, err
	}
	if len(data) == 0 {
		return nil, false, nil
	}
	var stored storedConfig
	if err := rlp.DecodeBytes(data, &stored); err != nil {
		return nil, false, err
	}
	cfg := &payments.Config{
		Admin:                stored.Admin,
		FeeVault:             stored.FeeVault,
		DestinationVault:     stored.DestinationVault,
		BookingFeeBps:        stored.BookingFeeBps,
		AllowedPaymentTokens: stored.AllowedPaymentTokens,
	}
	return cfg, true, nil
}

// BookingPaymentPut persists a booking payment record under its derived
// address. Records are only ever created or updated in place, never deleted.
func (m *Manager) BookingPaymentPut(bp *payments.BookingPayment) error {
	sanitized, err := payments.SanitizeBookingPayment(bp)
	if err != nil {
		return err
	}
	if sanitized.CreatedAt < 0 || sanitized.SettledAt < 0 {
		return fmt.Errorf("state: booking payment timestamps must be non-negative")
	}
	stored := storedBookingPayment{
		Address:           sanitized.Address,
		User:              sanitized.User,
		TokenMint:         sanitized.TokenMint,
		HotelID:           sanitized.HotelID,
		UserID:            sanitized.UserID,
		FeeAmount:         sanitized.FeeAmount,
		DestinationAmount: sanitized.DestinationAmount,
		TotalAmount:       sanitized.TotalAmount,
		Status:            uint8(sanitized.Status),
		CreatedAt:         uint64(sanitized.CreatedAt),
		SettledAt:         uint64(sanitized.SettledAt),
	}
	encoded, err := rlp.EncodeToBytes(&stored)
	if err != nil {
		return err
	}
	return m.kv.Put(bookingPaymentKey(sanitized.Address), encoded)
}

// BookingPaymentGet loads the record stored at the supplied derived address.
func (m *Manager) BookingPaymentGet(addr [32]byte) (*payments.BookingPayment, bool, error) {
	data, err := m.kv.Get(bookingPaymentKey(addr))
	if err != nil {
		return nil, false, err
	}
	if len(data) == 0 {
		return nil, false, nil
	}
	var stored storedBookingPayment
	if err := rlp.DecodeBytes(data, &stored); err != nil {
		return nil, false, err
	}
	bp := &payments.BookingPayment{
		Address:           stored.Address,
		User:              stored.User,
		TokenMint:         stored.TokenMint,
		HotelID:           stored.HotelID,
		UserID:            stored.UserID,
		FeeAmount:         stored.FeeAmount,
		DestinationAmount: stored.DestinationAmount,
		TotalAmount:       stored.TotalAmount,
		Status:            payments.BookingStatus(stored.Status),
		CreatedAt:         int64(stored.CreatedAt),
		SettledAt:         int64(stored.SettledAt),
	}
	return bp, true, nil
}

// SetBalance writes the per-mint holding balance of an account.
func (m *Manager) SetBalance(addr [20]byte, mint string, amount *big.Int) error {
	normalized, err := payments.NormalizeMint(mint)
	if err != nil {
		return err
	}
	if amount == nil {
		amount = big.NewInt(0)
	}
	if amount.Sign() < 0 {
		return fmt.Errorf("state: balance must be non-negative")
	}
	encoded, err := rlp.EncodeToBytes(amount)
	if err != nil {
		return err
	}
	return m.kv.Put(balanceKey(addr, normalized), encoded)
}

// Balance reads the per-mint holding balance of an account. Accounts without
// a stored balance report zero.
func (m *Manager) Balance(addr [20]byte, mint string) (*big.Int, error) {
	normalized, err := payments.NormalizeMint(mint)
	if err != nil {
		return nil, err
	}
	data, err := m.kv.Get(balanceKey(addr, normalized))
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return big.NewInt(0), nil
	}
	balance := new(big.Int)
	if err := rlp.DecodeBytes(data, balance); err != nil {
		return nil, err
	}
	return balance, nil
}
