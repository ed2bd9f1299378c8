package payments

import "math/big"

var bpsDenominator = big.NewInt(MaxFeeBps)

// SplitFee computes the protocol fee and destination payout for a booking
// principal. The fee is layered on top of the principal, not carved out of
// it: the destination amount is always the full principal and the total
// charged to the payer is fee + destination. Only the fee is subject to
// integer truncation.
func SplitFee(amount *big.Int, feeBps uint32) (fee, destination *big.Int, err error) {
	if feeBps > MaxFeeBps {
		return nil, nil, ErrInvalidRate
	}
	if amount == nil || amount.Sign() < 0 {
		return nil, nil, ErrInvalidAmount
	}
	fee = new(big.Int).Mul(amount, new(big.Int).SetUint64(uint64(feeBps)))
	fee.Div(fee, bpsDenominator)
	destination = new(big.Int).Set(amount)
	return fee, destination, nil
}
