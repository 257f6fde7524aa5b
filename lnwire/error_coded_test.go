package lnwire

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestCodedErrorMatching tests that coded errors can be matched both on their
// code and on the sentinel error they wrap.
func TestCodedErrorMatching(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("total not divisible by path count")
	coded := NewCodedError(IndivisibleAmount, sentinel)

	// The wrapped sentinel must remain reachable, including through
	// further layers of wrapping.
	require.ErrorIs(t, coded, sentinel)
	require.ErrorIs(t, fmt.Errorf("building route: %w", coded), sentinel)

	// A bare coded target matches on code alone.
	require.ErrorIs(t, coded, &CodedError{ErrorCode: IndivisibleAmount})
	require.NotErrorIs(t, coded, &CodedError{ErrorCode: StructuralInput})
}

// TestCodedErrorString tests the string representation of coded errors.
func TestCodedErrorString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *CodedError
		expected string
	}{
		{
			name: "code with detail",
			err: NewCodedError(
				ArithmeticOverflow, errors.New("amount"),
			),
			expected: "ArithmeticOverflow: amount",
		},
		{
			name:     "code only",
			err:      &CodedError{ErrorCode: StructuralInput},
			expected: "StructuralInput",
		},
	}

	for _, testCase := range tests {
		testCase := testCase

		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(
				t, testCase.expected, testCase.err.Error(),
			)
		})
	}
}
