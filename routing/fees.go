package routing

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/AbhinavAnand241201/lightning-payment-route-builder/lnwire"
	"github.com/AbhinavAnand241201/lightning-payment-route-builder/routing/route"
	"lukechampine.com/uint128"
)

// feeRateParts is the total number of parts a hop's proportional fee rate
// is expressed in, ie the fee rate is per millionth of a forwarded
// millisatoshi.
const feeRateParts = 1_000_000

// ErrAmountOverflow is returned when a hop's HTLC amount no longer fits in
// 64 bits.
var ErrAmountOverflow = errors.New("htlc amount overflows 64 bits")

// hopAmounts computes the HTLC amount committed at every hop of a path,
// walking backward from the receiver-adjacent hop. The running amount starts
// at the value the path must deliver, and every hop, the first and last
// included, adds the fee it charges on the amount it forwards onward.
func hopAmounts(path *route.Path,
	finalAmount lnwire.MilliSatoshi) ([]lnwire.MilliSatoshi, error) {

	amounts := make([]lnwire.MilliSatoshi, len(path.Hops))

	runningAmt := finalAmount
	for i := len(path.Hops) - 1; i >= 0; i-- {
		hop := path.Hops[i]

		fee, err := forwardingFee(hop, runningAmt)
		if err != nil {
			return nil, fmt.Errorf("hop %v: %w",
				hop.ChannelName, err)
		}

		// The amount committed at this hop is the amount it forwards
		// plus the fee it keeps.
		amt, carry := bits.Add64(uint64(runningAmt), uint64(fee), 0)
		if carry != 0 {
			return nil, lnwire.NewCodedError(
				lnwire.ArithmeticOverflow,
				fmt.Errorf("hop %v: %w", hop.ChannelName,
					ErrAmountOverflow),
			)
		}

		runningAmt = lnwire.MilliSatoshi(amt)
		amounts[i] = runningAmt
	}

	return amounts, nil
}

// forwardingFee computes the fee a hop charges to forward the given amount:
// its base fee plus the truncated proportional component. The proportional
// multiply is performed in 128 bits, since amount * fee rate can exceed 64
// bits long before the resulting fee does.
func forwardingFee(hop *route.Hop,
	amtToForward lnwire.MilliSatoshi) (lnwire.MilliSatoshi, error) {

	proportional := uint128.From64(uint64(amtToForward)).
		Mul64(hop.FeeRate).
		Div64(feeRateParts)

	if proportional.Hi != 0 {
		return 0, lnwire.NewCodedError(
			lnwire.ArithmeticOverflow, ErrAmountOverflow,
		)
	}

	fee, carry := bits.Add64(uint64(hop.BaseFee), proportional.Lo, 0)
	if carry != 0 {
		return 0, lnwire.NewCodedError(
			lnwire.ArithmeticOverflow, ErrAmountOverflow,
		)
	}

	return lnwire.MilliSatoshi(fee), nil
}
