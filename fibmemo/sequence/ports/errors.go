package sequenceports

import "errors"

var (
	// ErrInvalidArgument is returned for indices the sequence is not defined on.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrOverflow is returned when a term does not fit the chosen representation.
	ErrOverflow = errors.New("overflow")
)

// Reason maps an evaluator error to a short label for logs and metrics.
func Reason(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, ErrInvalidArgument):
		return "invalid_argument"
	case errors.Is(err, ErrOverflow):
		return "overflow"
	default:
		return "unknown"
	}
}
