package record

import (
	"bytes"

	"github.com/AbhinavAnand241201/lightning-payment-route-builder/lnwire"
	"github.com/lightningnetwork/lnd/tlv"
)

// FinalHopPayload assembles the onion tlv payload for a path's final hop:
// amt_to_forward, outgoing_cltv_value and, when the payment is split across
// multiple paths, the payment_data record.
func FinalHopPayload(amt lnwire.MilliSatoshi, lockTime uint32,
	mpp *MPP) ([]byte, error) {

	amtToFwd := uint64(amt)

	records := []tlv.Record{
		NewAmtToFwdRecord(&amtToFwd),
		NewLockTimeRecord(&lockTime),
	}

	// Records are already in ascending type order (2, 4, 8), as the
	// stream requires.
	if mpp != nil {
		records = append(records, mpp.Record())
	}

	stream, err := tlv.NewStream(records...)
	if err != nil {
		return nil, err
	}

	var b bytes.Buffer
	if err := stream.Encode(&b); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}
