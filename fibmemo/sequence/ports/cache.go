package sequenceports

// Cache maps a sequence index to its computed value.
// Entries are never removed; the cache grows with each distinct index stored.
// Implementations are not safe for concurrent mutation.
type Cache[V any] interface {
	Get(n int) (value V, ok bool)
	Set(n int, value V)
	Len() int
}
