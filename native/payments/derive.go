package payments

import (
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// programScope is the program-scoping constant folded into every derived
// address so records of this program can never collide with another module
// sharing the same store.
var programScope = []byte("nomadzpay/v1")

// Domain tags. Tags are never reused across entity kinds.
var (
	tagConfig         = []byte("config")
	tagBookingPayment = []byte("booking_payment")
	tagBooking        = []byte("booking")
)

func deriveAddress(tag []byte, parts ...[]byte) [32]byte {
	data := make([][]byte, 0, len(parts)+2)
	data = append(data, programScope, tag)
	data = append(data, parts...)
	return ethcrypto.Keccak256Hash(data...)
}

// DeriveConfigAddress returns the storage address of the singleton config
// record. It depends only on the fixed domain tag, so re-initialisation
// deterministically targets the same slot.
func DeriveConfigAddress() [32]byte {
	return deriveAddress(tagConfig)
}

// BookingSeed produces a stable fixed-width digest from the caller-supplied
// booking identifiers, keeping the record address independent of identifier
// length. The ":" separator prevents (hotelID, userID) boundary ambiguity.
func BookingSeed(hotelID, userID string) [32]byte {
	return ethcrypto.Keccak256Hash(tagBooking, []byte(hotelID), []byte(":"), []byte(userID))
}

// DeriveBookingPaymentAddress returns the storage address of the booking
// payment record for the given payer and booking identifiers. Identical
// inputs always resolve to the same address.
func DeriveBookingPaymentAddress(user [20]byte, hotelID, userID string) [32]byte {
	seed := BookingSeed(hotelID, userID)
	return deriveAddress(tagBookingPayment, user[:], seed[:])
}
