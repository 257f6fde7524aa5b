package routing

import (
	"testing"

	"github.com/AbhinavAnand241201/lightning-payment-route-builder/lnwire"
	"github.com/stretchr/testify/require"
)

// TestSplitAmount tests the even division of the payment total across paths.
func TestSplitAmount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		total    lnwire.MilliSatoshi
		numPaths int
		perPath  lnwire.MilliSatoshi
		err      error
	}{
		{
			name:     "single path takes full amount",
			total:    100,
			numPaths: 1,
			perPath:  100,
		},
		{
			name:     "even split",
			total:    120,
			numPaths: 3,
			perPath:  40,
		},
		{
			name:     "indivisible",
			total:    100,
			numPaths: 3,
			err:      ErrIndivisibleAmount,
		},
	}

	for _, testCase := range tests {
		testCase := testCase

		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			perPath, err := splitAmount(
				testCase.total, testCase.numPaths,
			)
			require.ErrorIs(t, err, testCase.err)
			if testCase.err != nil {
				return
			}

			require.Equal(t, testCase.perPath, perPath)

			// The per-path amounts must sum back to the total
			// exactly.
			require.Equal(
				t, testCase.total,
				perPath*lnwire.MilliSatoshi(testCase.numPaths),
			)
		})
	}
}

// TestPaymentParametersValidate tests rejection of zero amount payments.
func TestPaymentParametersValidate(t *testing.T) {
	t.Parallel()

	payment := &PaymentParameters{}
	err := payment.Validate()
	require.ErrorIs(t, err, ErrZeroAmount)
	require.ErrorIs(t, err, &lnwire.CodedError{
		ErrorCode: lnwire.InvalidPaymentParameters,
	})

	payment.TotalAmount = 1
	require.NoError(t, payment.Validate())
}
