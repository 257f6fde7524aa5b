package routing

import (
	"fmt"

	"github.com/AbhinavAnand241201/lightning-payment-route-builder/lnwire"
	"github.com/AbhinavAnand241201/lightning-payment-route-builder/record"
	"github.com/AbhinavAnand241201/lightning-payment-route-builder/routing/route"
)

// HTLC describes the conditional transfer that must be committed at one hop
// of the route. Values are never mutated after construction.
type HTLC struct {
	// PathID identifies the path the hop belongs to.
	PathID uint32

	// ChannelName identifies the hop's directed channel.
	ChannelName string

	// Amount is the value committed at this hop: the amount it forwards
	// onward plus the fee it keeps.
	Amount lnwire.MilliSatoshi

	// Expiry is the absolute block height at which the HTLC reverts.
	Expiry uint32

	// Record is the payment_data record carried by the final hop of each
	// path of a multi-path route, nil for every other hop.
	Record *record.MPP
}

// FinalPayload assembles the onion tlv payload for an HTLC on a path's
// receiver-adjacent hop, including the payment_data record when present.
func (h *HTLC) FinalPayload() ([]byte, error) {
	return record.FinalHopPayload(h.Amount, h.Expiry, h.Record)
}

// BuildRoute computes the HTLC committed at every hop of the route for the
// given payment and current block height. The result holds one HTLC per hop,
// in exactly the route's path and hop order, and is only returned when every
// hop computed successfully.
func BuildRoute(rt *route.Route, payment *PaymentParameters,
	currentHeight uint32) ([]*HTLC, error) {

	if err := rt.Validate(); err != nil {
		return nil, lnwire.NewCodedError(lnwire.StructuralInput, err)
	}

	if err := payment.Validate(); err != nil {
		return nil, err
	}

	// Split the total across paths before any per-path work; a route
	// with a single path trivially receives the full amount.
	pathAmount, err := splitAmount(payment.TotalAmount, len(rt.Paths))
	if err != nil {
		return nil, err
	}

	// The payment_data record is only attached for true multi-path
	// payments, and always encodes the payment's total rather than the
	// per-path amount.
	multiPath := len(rt.Paths) > 1

	htlcs := make([]*HTLC, 0, rt.NumHops())
	for _, path := range rt.Paths {
		amounts, err := hopAmounts(path, pathAmount)
		if err != nil {
			return nil, fmt.Errorf("path %v: %w", path.ID, err)
		}

		expiries, err := hopExpiries(
			path, currentHeight, payment.FinalCLTVDelta,
		)
		if err != nil {
			return nil, fmt.Errorf("path %v: %w", path.ID, err)
		}

		for i, hop := range path.Hops {
			htlc := &HTLC{
				PathID:      path.ID,
				ChannelName: hop.ChannelName,
				Amount:      amounts[i],
				Expiry:      expiries[i],
			}

			if multiPath && i == len(path.Hops)-1 {
				htlc.Record = record.NewMPP(
					payment.TotalAmount,
					payment.PaymentAddr,
				)
			}

			htlcs = append(htlcs, htlc)
		}

		log.Debugf("Path %v: %v hops, first hop amount %v, final "+
			"hop expiry %v", path.ID, len(path.Hops), amounts[0],
			expiries[len(expiries)-1])
	}

	return htlcs, nil
}
