package lnwire

import (
	"testing"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/stretchr/testify/require"
)

func TestMilliSatoshiConversion(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		mSatAmount MilliSatoshi

		satAmount btcutil.Amount
		btcAmount float64
	}{
		{
			mSatAmount: 0,
			satAmount:  0,
			btcAmount:  0,
		},
		{
			mSatAmount: 10,
			satAmount:  0,
			btcAmount:  0,
		},
		{
			mSatAmount: 999,
			satAmount:  0,
			btcAmount:  0,
		},
		{
			mSatAmount: 1000,
			satAmount:  1,
			btcAmount:  1e-8,
		},
		{
			mSatAmount: 10000,
			satAmount:  10,
			btcAmount:  0.00000010,
		},
		{
			mSatAmount: 100000000000,
			satAmount:  100000000,
			btcAmount:  1,
		},
	}

	for _, testCase := range testCases {
		testCase := testCase

		require.Equal(
			t, testCase.satAmount, testCase.mSatAmount.ToSatoshis(),
		)
		require.Equal(t, testCase.btcAmount, testCase.mSatAmount.ToBTC())
	}
}
