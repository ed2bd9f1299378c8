package payments

import (
	"encoding/hex"
	"strconv"

	"nomadzpay/core/types"
)

const (
	EventTypeConfigInitialized = "payments.config.initialized"
	EventTypeConfigUpdated     = "payments.config.updated"
	EventTypeBookingCreated    = "payments.booking.created"
	EventTypeBookingRefreshed  = "payments.booking.refreshed"
	EventTypeBookingSettled    = "payments.booking.settled"
)

// NewConfigInitializedEvent returns the canonical payload emitted when the
// singleton config record is created.
func NewConfigInitializedEvent(c *Config) *types.Event {
	return newConfigEvent(EventTypeConfigInitialized, c)
}

// NewConfigUpdatedEvent returns the canonical payload emitted after an
// admin-gated config mutation.
func NewConfigUpdatedEvent(c *Config) *types.Event {
	return newConfigEvent(EventTypeConfigUpdated, c)
}

// NewBookingCreatedEvent returns the canonical payload for a newly created
// booking payment record.
func NewBookingCreatedEvent(b *BookingPayment) *types.Event {
	return newBookingEvent(EventTypeBookingCreated, b)
}

// NewBookingRefreshedEvent returns the canonical payload emitted when a
// pending record's amounts are recomputed in place.
func NewBookingRefreshedEvent(b *BookingPayment) *types.Event {
	return newBookingEvent(EventTypeBookingRefreshed, b)
}

// NewBookingSettledEvent returns the canonical payload emitted once both
// settlement transfers have completed and the record is terminal.
func NewBookingSettledEvent(b *BookingPayment) *types.Event {
	return newBookingEvent(EventTypeBookingSettled, b)
}

func newConfigEvent(eventType string, c *Config) *types.Event {
	attrs := make(map[string]string)
	if c == nil {
		return &types.Event{Type: eventType, Attributes: attrs}
	}
	sanitized, err := SanitizeConfig(c)
	if err != nil {
		return &types.Event{Type: eventType, Attributes: attrs}
	}
	attrs["admin"] = hex.EncodeToString(sanitized.Admin[:])
	attrs["feeVault"] = hex.EncodeToString(sanitized.FeeVault[:])
	attrs["destinationVault"] = hex.EncodeToString(sanitized.DestinationVault[:])
	attrs["bookingFeeBps"] = strconv.FormatUint(uint64(sanitized.BookingFeeBps), 10)
	attrs["allowedPaymentTokens"] = strconv.Itoa(len(sanitized.AllowedPaymentTokens))
	return &types.Event{Type: eventType, Attributes: attrs}
}

func newBookingEvent(eventType string, b *BookingPayment) *types.Event {
	attrs := make(map[string]string)
	if b == nil {
		return &types.Event{Type: eventType, Attributes: attrs}
	}
	sanitized, err := SanitizeBookingPayment(b)
	if err != nil {
		return &types.Event{Type: eventType, Attributes: attrs}
	}
	attrs["address"] = hex.EncodeToString(sanitized.Address[:])
	attrs["user"] = hex.EncodeToString(sanitized.User[:])
	attrs["tokenMint"] = sanitized.TokenMint
	attrs["hotelId"] = sanitized.HotelID
	attrs["userId"] = sanitized.UserID
	attrs["feeAmount"] = sanitized.FeeAmount.String()
	attrs["destinationAmount"] = sanitized.DestinationAmount.String()
	attrs["totalAmount"] = sanitized.TotalAmount.String()
	attrs["status"] = sanitized.Status.String()
	attrs["createdAt"] = strconv.FormatInt(sanitized.CreatedAt, 10)
	if sanitized.SettledAt != 0 {
		attrs["settledAt"] = strconv.FormatInt(sanitized.SettledAt, 10)
	}
	return &types.Event{Type: eventType, Attributes: attrs}
}
