package record

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var testPaymentAddr = [32]byte{
	0x11, 0x11, 0x11, 0x11, 0x11, 0x11, 0x11, 0x11,
	0x11, 0x11, 0x11, 0x11, 0x11, 0x11, 0x11, 0x11,
	0x11, 0x11, 0x11, 0x11, 0x11, 0x11, 0x11, 0x11,
	0x11, 0x11, 0x11, 0x11, 0x11, 0x11, 0x11, 0x11,
}

// TestMPPSerializeFixed tests the fixed-layout serialization of the MPP
// record: 8-byte big-endian type and length, 32-byte payment address and a
// full-width 8-byte total amount.
func TestMPPSerializeFixed(t *testing.T) {
	t.Parallel()

	mpp := NewMPP(120, testPaymentAddr)

	serialized := mpp.SerializeFixed()
	require.Len(t, serialized, SerializedRecordSize)

	expected := "0000000000000008" + "0000000000000028" +
		strings.Repeat("11", 32) + "0000000000000078"
	require.Equal(t, expected, hex.EncodeToString(serialized))

	// The hex rendering used at the output boundary is always 112
	// characters.
	require.Len(t, hex.EncodeToString(serialized), 112)
}

// TestMPPRecord tests that the onion TLV form of the record round-trips and
// truncates the total amount, in contrast with the fixed-layout export.
func TestMPPRecord(t *testing.T) {
	t.Parallel()

	mpp := NewMPP(120, testPaymentAddr)

	var b bytes.Buffer
	var buf [8]byte
	require.NoError(t, MPPEncoder(&b, mpp, &buf))

	// 32-byte address plus a single truncated total byte.
	require.Len(t, b.Bytes(), 33)

	var decoded MPP
	err := MPPDecoder(&b, &decoded, &buf, 33)
	require.NoError(t, err)

	require.Equal(t, mpp.PaymentAddr(), decoded.PaymentAddr())
	require.Equal(t, mpp.TotalMsat(), decoded.TotalMsat())
}
