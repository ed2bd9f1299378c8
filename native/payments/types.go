package payments

import (
	"fmt"
	"math/big"
	"strings"
)

const (
	// MaxAllowedTokens caps the config allow-list to keep the record bounded.
	MaxAllowedTokens = 20
	// MaxIdentifierLen caps the caller-supplied hotel and user identifiers.
	MaxIdentifierLen = 64
	// MaxFeeBps is the upper bound of the booking fee rate (100%).
	MaxFeeBps = 10_000
)

// BookingStatus represents the lifecycle states of a booking payment record.
type BookingStatus uint8

const (
	BookingPending BookingStatus = iota
	BookingSettled
)

// Valid reports whether the status value is within the supported range.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingSettled:
		return true
	default:
		return false
	}
}

func (s BookingStatus) String() string {
	switch s {
	case BookingPending:
		return "pending"
	case BookingSettled:
		return "settled"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(s))
	}
}

// Config is the singleton configuration record for a deployment. Its storage
// address is derived from a fixed domain tag so re-initialisation always
// targets the same slot.
type Config struct {
	Admin                [20]byte
	FeeVault             [20]byte
	DestinationVault     [20]byte
	BookingFeeBps        uint32
	AllowedPaymentTokens []string
}

// Clone returns a deep copy of the config so callers can safely mutate the
// copy without affecting the stored instance.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	clone := *c
	clone.AllowedPaymentTokens = append([]string(nil), c.AllowedPaymentTokens...)
	return &clone
}

// AllowsToken reports whether the supplied mint is eligible for new booking
// payments. Duplicates in the allow-list are harmless; membership is a linear
// scan over the stored order.
func (c *Config) AllowsToken(mint string) bool {
	if c == nil {
		return false
	}
	normalized, err := NormalizeMint(mint)
	if err != nil {
		return false
	}
	for _, allowed := range c.AllowedPaymentTokens {
		if allowed == normalized {
			return true
		}
	}
	return false
}

// BookingPayment records the collection intent for a single booking. Once
// settled the record is terminal and serves as an immutable receipt.
type BookingPayment struct {
	Address           [32]byte
	User              [20]byte
	TokenMint         string
	HotelID           string
	UserID            string
	FeeAmount         *big.Int
	DestinationAmount *big.Int
	TotalAmount       *big.Int
	Status            BookingStatus
	CreatedAt         int64
	SettledAt         int64
}

// Clone returns a deep copy of the booking payment record.
func (b *BookingPayment) Clone() *BookingPayment {
	if b == nil {
		return nil
	}
	clone := *b
	clone.FeeAmount = cloneBigInt(b.FeeAmount)
	clone.DestinationAmount = cloneBigInt(b.DestinationAmount)
	clone.TotalAmount = cloneBigInt(b.TotalAmount)
	return &clone
}

// NormalizeMint validates a token mint identifier. Mints are opaque strings;
// only surrounding whitespace is stripped.
func NormalizeMint(mint string) (string, error) {
	trimmed := strings.TrimSpace(mint)
	if trimmed == "" {
		return "", fmt.Errorf("payments: token mint must not be empty")
	}
	return trimmed, nil
}

// SanitizeConfig validates and normalises the supplied config, returning a
// cloned instance. The original value is not mutated.
func SanitizeConfig(c *Config) (*Config, error) {
	if c == nil {
		return nil, fmt.Errorf("payments: nil config")
	}
	clone := c.Clone()
	if clone.BookingFeeBps > MaxFeeBps {
		return nil, ErrInvalidRate
	}
	if len(clone.AllowedPaymentTokens) > MaxAllowedTokens {
		return nil, ErrTooManyPaymentTokens
	}
	for i, mint := range clone.AllowedPaymentTokens {
		normalized, err := NormalizeMint(mint)
		if err != nil {
			return nil, err
		}
		clone.AllowedPaymentTokens[i] = normalized
	}
	return clone, nil
}

// SanitizeBookingPayment validates and normalises the supplied record,
// returning a cloned instance with non-nil amount fields.
func SanitizeBookingPayment(b *BookingPayment) (*BookingPayment, error) {
	if b == nil {
		return nil, fmt.Errorf("payments: nil booking payment")
	}
	clone := b.Clone()
	mint, err := NormalizeMint(clone.TokenMint)
	if err != nil {
		return nil, err
	}
	clone.TokenMint = mint
	if err := validateIdentifier(clone.HotelID); err != nil {
		return nil, err
	}
	if err := validateIdentifier(clone.UserID); err != nil {
		return nil, err
	}
	if clone.FeeAmount.Sign() < 0 || clone.DestinationAmount.Sign() < 0 || clone.TotalAmount.Sign() < 0 {
		return nil, fmt.Errorf("payments: amounts must be non-negative")
	}
	sum := new(big.Int).Add(clone.FeeAmount, clone.DestinationAmount)
	if sum.Cmp(clone.TotalAmount) != 0 {
		return nil, fmt.Errorf("payments: total amount must equal fee plus destination")
	}
	if !clone.Status.Valid() {
		return nil, fmt.Errorf("payments: invalid booking status: %d", clone.Status)
	}
	return clone, nil
}

func validateIdentifier(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("payments: identifier must not be empty")
	}
	if len(id) > MaxIdentifierLen {
		return ErrIdentifierTooLong
	}
	return nil
}

func cloneBigInt(v *big.Int) *big.Int {
	if v == nil {
		return big.NewInt(0)
	}
	return new(big.Int).Set(v)
}
