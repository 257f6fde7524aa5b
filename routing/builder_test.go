package routing

import (
	"testing"

	"github.com/AbhinavAnand241201/lightning-payment-route-builder/lnwire"
	"github.com/AbhinavAnand241201/lightning-payment-route-builder/routing/route"
	"github.com/stretchr/testify/require"
)

var testPaymentAddr = [32]byte{
	0x11, 0x11, 0x11, 0x11, 0x11, 0x11, 0x11, 0x11,
	0x11, 0x11, 0x11, 0x11, 0x11, 0x11, 0x11, 0x11,
	0x11, 0x11, 0x11, 0x11, 0x11, 0x11, 0x11, 0x11,
	0x11, 0x11, 0x11, 0x11, 0x11, 0x11, 0x11, 0x11,
}

// TestBuildRouteSinglePath tests route construction over a single three hop
// path. No hop carries a payment_data record for a single path route.
func TestBuildRouteSinglePath(t *testing.T) {
	t.Parallel()

	rt, err := route.NewRoute([]*route.Hop{
		{
			PathID: 0, ChannelName: "ab",
			CLTVDelta: 40, BaseFee: 1000, FeeRate: 10,
		},
		{
			PathID: 0, ChannelName: "bc",
			CLTVDelta: 65, BaseFee: 2000, FeeRate: 500,
		},
		{
			PathID: 0, ChannelName: "cd",
			CLTVDelta: 15, BaseFee: 0, FeeRate: 3000,
		},
	})
	require.NoError(t, err)

	payment := &PaymentParameters{
		TotalAmount:    100_000_000,
		PaymentAddr:    testPaymentAddr,
		FinalCLTVDelta: 9,
	}

	htlcs, err := BuildRoute(rt, payment, 800_000)
	require.NoError(t, err)
	require.Len(t, htlcs, 3)

	expected := []struct {
		channel string
		amount  lnwire.MilliSatoshi
		expiry  uint32
	}{
		{"ab", 100_354_153, 800_089},
		{"bc", 100_352_150, 800_024},
		{"cd", 100_300_000, 800_009},
	}

	for i, exp := range expected {
		require.Equal(t, exp.channel, htlcs[i].ChannelName)
		require.Equal(t, exp.amount, htlcs[i].Amount)
		require.Equal(t, exp.expiry, htlcs[i].Expiry)
		require.Nil(t, htlcs[i].Record)
	}
}

// TestBuildRouteMultiPath tests a payment split across three paths. The
// final hop of every path, and only the final hop, carries the payment_data
// record encoding the payment's total amount and secret.
func TestBuildRouteMultiPath(t *testing.T) {
	t.Parallel()

	rt, err := route.NewRoute([]*route.Hop{
		{PathID: 0, ChannelName: "ab"},
		{PathID: 0, ChannelName: "bd"},
		{PathID: 1, ChannelName: "ac"},
		{PathID: 2, ChannelName: "ae"},
		{PathID: 2, ChannelName: "ef"},
		{PathID: 2, ChannelName: "fd"},
	})
	require.NoError(t, err)

	payment := &PaymentParameters{
		TotalAmount:    120,
		PaymentAddr:    testPaymentAddr,
		FinalCLTVDelta: 40,
	}

	htlcs, err := BuildRoute(rt, payment, 100_000)
	require.NoError(t, err)
	require.Len(t, htlcs, 6)

	finalHops := map[string]struct{}{
		"bd": {}, "ac": {}, "fd": {},
	}

	for _, htlc := range htlcs {
		// All hops forward zero-fee, so each carries the per-path
		// amount.
		require.Equal(t, lnwire.MilliSatoshi(40), htlc.Amount)

		if _, ok := finalHops[htlc.ChannelName]; !ok {
			require.Nil(t, htlc.Record)
			continue
		}

		require.NotNil(t, htlc.Record)
		require.Equal(
			t, lnwire.MilliSatoshi(120), htlc.Record.TotalMsat(),
		)
		require.Equal(t, testPaymentAddr, htlc.Record.PaymentAddr())

		// The final hop's onion payload carries the payment_data
		// record alongside the amount and lock time.
		payload, err := htlc.FinalPayload()
		require.NoError(t, err)
		require.NotEmpty(t, payload)
	}
}

// TestBuildRouteIndivisible tests that a total that does not divide evenly
// across paths fails the whole computation with no results.
func TestBuildRouteIndivisible(t *testing.T) {
	t.Parallel()

	rt, err := route.NewRoute([]*route.Hop{
		{PathID: 0, ChannelName: "ab"},
		{PathID: 1, ChannelName: "ac"},
		{PathID: 2, ChannelName: "ad"},
	})
	require.NoError(t, err)

	payment := &PaymentParameters{
		TotalAmount:    100,
		FinalCLTVDelta: 40,
	}

	htlcs, err := BuildRoute(rt, payment, 100_000)
	require.ErrorIs(t, err, ErrIndivisibleAmount)
	require.ErrorIs(t, err, &lnwire.CodedError{
		ErrorCode: lnwire.IndivisibleAmount,
	})
	require.Nil(t, htlcs)
}

// TestBuildRouteOrdering tests that results preserve input hop order within
// paths and first-seen path order across paths, and that repeated runs are
// identical.
func TestBuildRouteOrdering(t *testing.T) {
	t.Parallel()

	hops := []*route.Hop{
		{PathID: 5, ChannelName: "za"},
		{PathID: 1, ChannelName: "ab"},
		{PathID: 5, ChannelName: "ay"},
		{PathID: 1, ChannelName: "bc"},
	}

	rt, err := route.NewRoute(hops)
	require.NoError(t, err)

	payment := &PaymentParameters{
		TotalAmount:    1000,
		FinalCLTVDelta: 10,
	}

	htlcs, err := BuildRoute(rt, payment, 500)
	require.NoError(t, err)

	var order []string
	for _, htlc := range htlcs {
		order = append(order, htlc.ChannelName)
	}
	require.Equal(t, []string{"za", "ay", "ab", "bc"}, order)

	// Identical inputs must produce identical results.
	again, err := BuildRoute(rt, payment, 500)
	require.NoError(t, err)
	require.Equal(t, htlcs, again)
}

// TestBuildRouteEmptyRoute tests that structural failures surface as coded
// errors.
func TestBuildRouteEmptyRoute(t *testing.T) {
	t.Parallel()

	payment := &PaymentParameters{TotalAmount: 1}

	_, err := BuildRoute(&route.Route{}, payment, 100)
	require.ErrorIs(t, err, route.ErrEmptyRoute)
	require.ErrorIs(t, err, &lnwire.CodedError{
		ErrorCode: lnwire.StructuralInput,
	})
}
