package payments

import "testing"

func TestDeriveConfigAddressDeterministic(t *testing.T) {
	if DeriveConfigAddress() != DeriveConfigAddress() {
		t.Fatalf("config address derivation is not deterministic")
	}
}

func TestDeriveBookingPaymentAddressDeterministic(t *testing.T) {
	user := newTestAddress(0x11)
	a := DeriveBookingPaymentAddress(user, "hotel-1", "user-1")
	b := DeriveBookingPaymentAddress(user, "hotel-1", "user-1")
	if a != b {
		t.Fatalf("identical inputs derived different addresses")
	}
}

func TestDeriveBookingPaymentAddressDistinct(t *testing.T) {
	user := newTestAddress(0x11)
	other := newTestAddress(0x22)
	seen := map[[32]byte]string{}
	inputs := []struct {
		user           [20]byte
		hotelID, userID string
	}{
		{user, "hotel-1", "user-1"},
		{user, "hotel-1", "user-2"},
		{user, "hotel-2", "user-1"},
		{other, "hotel-1", "user-1"},
	}
	for _, in := range inputs {
		addr := DeriveBookingPaymentAddress(in.user, in.hotelID, in.userID)
		if prev, ok := seen[addr]; ok {
			t.Fatalf("address collision between %q and %q/%q", prev, in.hotelID, in.userID)
		}
		seen[addr] = in.hotelID + "/" + in.userID
	}
}

func TestBookingSeedSeparatorPreventsBoundaryAmbiguity(t *testing.T) {
	// Without the ":" separator these two pairs would concatenate identically.
	if BookingSeed("ab", "c") == BookingSeed("a", "bc") {
		t.Fatalf("booking seed is ambiguous across identifier boundaries")
	}
}

func TestDomainTagsNeverCollide(t *testing.T) {
	user := newTestAddress(0x11)
	if DeriveConfigAddress() == DeriveBookingPaymentAddress(user, "config", "config") {
		t.Fatalf("config and booking payment addresses collided")
	}
}
