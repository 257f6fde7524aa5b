package routing

import (
	"errors"
	"fmt"
	"math"

	"github.com/AbhinavAnand241201/lightning-payment-route-builder/lnwire"
	"github.com/AbhinavAnand241201/lightning-payment-route-builder/routing/route"
)

// ErrExpiryOverflow is returned when a hop's HTLC expiry no longer fits in
// 32 bits.
var ErrExpiryOverflow = errors.New("htlc expiry overflows 32 bits")

// hopExpiries computes the absolute block-height expiry of every hop's HTLC,
// walking backward from the receiver-adjacent hop. The final hop's expiry is
// the current height plus the receiver's required final delta. Walking
// upstream, each hop's expiry is the downstream hop's expiry plus the
// DOWNSTREAM hop's own delta: a hop's delta constrains the gap between the
// HTLC it receives and the one it forwards, so it surfaces one hop upstream.
// The first hop's own delta is consequently never consumed.
func hopExpiries(path *route.Path, currentHeight uint32,
	finalCLTVDelta uint32) ([]uint32, error) {

	expiries := make([]uint32, len(path.Hops))

	runningExpiry, err := addExpiry(currentHeight, finalCLTVDelta)
	if err != nil {
		return nil, fmt.Errorf("final hop: %w", err)
	}

	last := len(path.Hops) - 1
	expiries[last] = runningExpiry

	for i := last - 1; i >= 0; i-- {
		downstream := path.Hops[i+1]

		runningExpiry, err = addExpiry(
			runningExpiry, downstream.CLTVDelta,
		)
		if err != nil {
			return nil, fmt.Errorf("hop %v: %w",
				path.Hops[i].ChannelName, err)
		}

		expiries[i] = runningExpiry
	}

	return expiries, nil
}

// addExpiry adds a delta to an absolute expiry height, checking that the
// result still fits in 32 bits.
func addExpiry(expiry, delta uint32) (uint32, error) {
	sum := uint64(expiry) + uint64(delta)
	if sum > math.MaxUint32 {
		return 0, lnwire.NewCodedError(
			lnwire.ArithmeticOverflow, ErrExpiryOverflow,
		)
	}

	return uint32(sum), nil
}
