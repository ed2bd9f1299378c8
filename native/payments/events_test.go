package payments

import (
	"math/big"
	"testing"
)

func TestNewBookingSettledEventAttributes(t *testing.T) {
	bp := &BookingPayment{
		User:              newTestAddress(0x04),
		TokenMint:         "usdc-mint",
		HotelID:           "hotel-1",
		UserID:            "user-1",
		FeeAmount:         big.NewInt(1_000),
		DestinationAmount: big.NewInt(100_000),
		TotalAmount:       big.NewInt(101_000),
		Status:            BookingSettled,
		CreatedAt:         1_700_000_000,
		SettledAt:         1_700_000_100,
	}
	evt := NewBookingSettledEvent(bp)
	if evt.Type != EventTypeBookingSettled {
		t.Fatalf("event type = %s", evt.Type)
	}
	if evt.Attributes["feeAmount"] != "1000" || evt.Attributes["totalAmount"] != "101000" {
		t.Fatalf("amount attributes wrong: %v", evt.Attributes)
	}
	if evt.Attributes["status"] != "settled" {
		t.Fatalf("status attribute = %q", evt.Attributes["status"])
	}
	if evt.Attributes["settledAt"] != "1700000100" {
		t.Fatalf("settledAt attribute = %q", evt.Attributes["settledAt"])
	}
}

func TestNewConfigEventToleratesNil(t *testing.T) {
	evt := NewConfigInitializedEvent(nil)
	if evt.Type != EventTypeConfigInitialized || len(evt.Attributes) != 0 {
		t.Fatalf("nil config event malformed: %+v", evt)
	}
}
