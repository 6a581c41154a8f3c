package sequenceports

// Observer receives cache and fault events from an evaluator.
type Observer interface {
	Hit(n int)
	Miss(n int)
	Store(n int)
	Reject(n int, err error)
}
