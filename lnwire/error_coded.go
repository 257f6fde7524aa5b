package lnwire

import "fmt"

// ErrorCode is an enum that defines the different classes of fatal failures
// that route construction can surface. Codes are used to enrich the meaning
// of errors so that callers can react to the class of failure rather than to
// a specific error value.
type ErrorCode uint16

const (
	// StructuralInput indicates that the set of hop policies provided
	// could not be assembled into a valid route: malformed or incomplete
	// hop records, an empty path or an empty route.
	StructuralInput ErrorCode = 1

	// ArithmeticOverflow indicates that an intermediate or final value
	// computed for a hop exceeds the width it must be expressed in.
	ArithmeticOverflow ErrorCode = 3

	// IndivisibleAmount indicates that the total payment amount cannot
	// be split evenly across the route's paths.
	IndivisibleAmount ErrorCode = 5

	// InvalidPaymentParameters indicates that the payment request could
	// not be decoded, or decoded into parameters that the route builder
	// cannot act on.
	InvalidPaymentParameters ErrorCode = 7
)

// String returns a human readable name for an error code.
func (e ErrorCode) String() string {
	switch e {
	case StructuralInput:
		return "StructuralInput"

	case ArithmeticOverflow:
		return "ArithmeticOverflow"

	case IndivisibleAmount:
		return "IndivisibleAmount"

	case InvalidPaymentParameters:
		return "InvalidPaymentParameters"

	default:
		return fmt.Sprintf("UnknownErrorCode<%d>", uint16(e))
	}
}

// Compile time assertion that CodedError implements the error interface.
var _ error = (*CodedError)(nil)

// CodedError is an error that has been enriched with an error code, wrapping
// the underlying error that carries the failure detail.
type CodedError struct {
	// ErrorCode is the error code that defines the class of error this is.
	ErrorCode

	// Err is the underlying error.
	Err error
}

// NewCodedError creates an error with the code provided, wrapping the error
// that describes the specific failure.
func NewCodedError(e ErrorCode, err error) *CodedError {
	return &CodedError{
		ErrorCode: e,
		Err:       err,
	}
}

// Error provides a string representation of a coded error.
func (e *CodedError) Error() string {
	if e.Err == nil {
		return e.ErrorCode.String()
	}

	return fmt.Sprintf("%v: %v", e.ErrorCode, e.Err)
}

// Unwrap returns the underlying error, allowing errors.Is to match coded
// errors against their wrapped sentinels.
func (e *CodedError) Unwrap() error {
	return e.Err
}

// Is matches coded errors on their code, so that errors.Is can be used with
// a bare CodedError target to test for a class of failure.
func (e *CodedError) Is(target error) bool {
	coded, ok := target.(*CodedError)
	if !ok {
		return false
	}

	return coded.ErrorCode == e.ErrorCode
}
