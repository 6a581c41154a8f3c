package sequence

import "fmt"

// Strategy selects how missing terms are filled in.
type Strategy string

const (
	// StrategyRecursive evaluates top-down, recursing on n-1 and n-2.
	StrategyRecursive Strategy = "recursive"
	// StrategyIterative evaluates bottom-up from index 2 with constant stack depth.
	StrategyIterative Strategy = "iterative"
)

// ParseStrategy validates a strategy name.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyRecursive, StrategyIterative:
		return Strategy(s), nil
	default:
		return "", fmt.Errorf("unknown strategy %q (want %q or %q)", s, StrategyRecursive, StrategyIterative)
	}
}
