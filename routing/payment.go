package routing

import (
	"errors"
	"fmt"

	"github.com/AbhinavAnand241201/lightning-payment-route-builder/lnwire"
)

var (
	// ErrZeroAmount is returned when the decoded payment request carries
	// no amount, or an amount of zero.
	ErrZeroAmount = errors.New("payment amount must be non-zero")

	// ErrIndivisibleAmount is returned when the total payment amount
	// cannot be split evenly across the route's paths.
	ErrIndivisibleAmount = errors.New("total amount not evenly " +
		"divisible across paths")
)

// PaymentParameters holds the values derived from the payment request that
// route construction depends on. The parameters are treated as already
// validated by the decoding collaborator, with the exception of the non-zero
// amount requirement which is enforced here.
type PaymentParameters struct {
	// TotalAmount is the total value of the payment across all paths.
	TotalAmount lnwire.MilliSatoshi

	// PaymentAddr is the receiver-generated secret included in the
	// payment_data record of every path's final hop.
	PaymentAddr [32]byte

	// FinalCLTVDelta is the minimum number of blocks the receiver
	// requires on the final HTLC's expiry, on top of the current height.
	FinalCLTVDelta uint32
}

// Validate checks the payment parameters for values route construction
// cannot act on.
func (p *PaymentParameters) Validate() error {
	if p.TotalAmount == 0 {
		return lnwire.NewCodedError(
			lnwire.InvalidPaymentParameters, ErrZeroAmount,
		)
	}

	return nil
}

// splitAmount divides the total payment amount evenly across the given number
// of paths. A split with a remainder is rejected outright, the amount is
// never rounded or redistributed.
func splitAmount(total lnwire.MilliSatoshi,
	numPaths int) (lnwire.MilliSatoshi, error) {

	paths := lnwire.MilliSatoshi(numPaths)
	if total%paths != 0 {
		return 0, lnwire.NewCodedError(
			lnwire.IndivisibleAmount,
			fmt.Errorf("%w: %v across %v paths",
				ErrIndivisibleAmount, total, numPaths),
		)
	}

	return total / paths, nil
}
