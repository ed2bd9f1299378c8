package payments

import (
	"errors"
	"math/big"
	"testing"
)

func TestSanitizeConfigNormalizesMints(t *testing.T) {
	cfg := &Config{
		BookingFeeBps:        100,
		AllowedPaymentTokens: []string{" usdc-mint ", "sol-mint"},
	}
	sanitized, err := SanitizeConfig(cfg)
	if err != nil {
		t.Fatalf("sanitize: %v", err)
	}
	if sanitized.AllowedPaymentTokens[0] != "usdc-mint" {
		t.Fatalf("mint not trimmed: %q", sanitized.AllowedPaymentTokens[0])
	}
	// Original must not be mutated.
	if cfg.AllowedPaymentTokens[0] != " usdc-mint " {
		t.Fatalf("sanitize mutated its input")
	}
}

func TestSanitizeConfigRejectsEmptyMint(t *testing.T) {
	cfg := &Config{AllowedPaymentTokens: []string{"  "}}
	if _, err := SanitizeConfig(cfg); err == nil {
		t.Fatalf("expected error for empty mint")
	}
}

func TestConfigAllowsTokenWithDuplicates(t *testing.T) {
	cfg := &Config{AllowedPaymentTokens: []string{"usdc-mint", "usdc-mint"}}
	if !cfg.AllowsToken("usdc-mint") {
		t.Fatalf("duplicated mint not matched")
	}
	if cfg.AllowsToken("sol-mint") {
		t.Fatalf("unlisted mint matched")
	}
}

func TestSanitizeBookingPaymentChecksTotal(t *testing.T) {
	bp := &BookingPayment{
		TokenMint:         "usdc-mint",
		HotelID:           "hotel-1",
		UserID:            "user-1",
		FeeAmount:         big.NewInt(10),
		DestinationAmount: big.NewInt(100),
		TotalAmount:       big.NewInt(111),
		Status:            BookingPending,
	}
	if _, err := SanitizeBookingPayment(bp); err == nil {
		t.Fatalf("expected error for total != fee + destination")
	}
	bp.TotalAmount = big.NewInt(110)
	if _, err := SanitizeBookingPayment(bp); err != nil {
		t.Fatalf("sanitize: %v", err)
	}
}

func TestSanitizeBookingPaymentIdentifierCap(t *testing.T) {
	long := make([]byte, MaxIdentifierLen+1)
	for i := range long {
		long[i] = 'x'
	}
	bp := &BookingPayment{
		TokenMint:         "usdc-mint",
		HotelID:           string(long),
		UserID:            "user-1",
		FeeAmount:         big.NewInt(0),
		DestinationAmount: big.NewInt(0),
		TotalAmount:       big.NewInt(0),
		Status:            BookingPending,
	}
	if _, err := SanitizeBookingPayment(bp); !errors.Is(err, ErrIdentifierTooLong) {
		t.Fatalf("expected ErrIdentifierTooLong, got %v", err)
	}
}

func TestBookingStatusValid(t *testing.T) {
	if !BookingPending.Valid() || !BookingSettled.Valid() {
		t.Fatalf("expected supported statuses to be valid")
	}
	if BookingStatus(7).Valid() {
		t.Fatalf("unknown status reported valid")
	}
}
