package sequence

import ports "github.com/ZanzyTHEbar/fibmemo/fibmemo/sequence/ports"

// Re-exported so callers don't need the ports package for errors.Is checks.
var (
	ErrInvalidArgument = ports.ErrInvalidArgument
	ErrOverflow        = ports.ErrOverflow
)
