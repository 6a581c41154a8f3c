package sequence

import (
	"fmt"

	"github.com/ZanzyTHEbar/fibmemo/fibmemo/sequence/adapters"
	ports "github.com/ZanzyTHEbar/fibmemo/fibmemo/sequence/ports"
)

// Querier answers index queries against one session-scoped cache with
// values rendered in decimal.
type Querier interface {
	Query(n int) (string, error)
	Stats() Stats
	CacheLen() int
}

// Memo binds an evaluator to the cache of a single query session.
type Memo[V any] struct {
	eval  *Evaluator[V]
	cache ports.Cache[V]
}

// NewMemo creates a memo over cache, or over a fresh MapCache when cache is nil.
func NewMemo[V any](eval *Evaluator[V], cache ports.Cache[V]) *Memo[V] {
	if cache == nil {
		cache = adapters.NewMapCache[V]()
	}
	return &Memo[V]{eval: eval, cache: cache}
}

// Value returns term n using the bound cache.
func (m *Memo[V]) Value(n int) (V, error) {
	return m.eval.Value(n, m.cache)
}

func (m *Memo[V]) Query(n int) (string, error) {
	v, err := m.Value(n)
	if err != nil {
		return "", err
	}
	return fmt.Sprint(v), nil
}

func (m *Memo[V]) Stats() Stats { return m.eval.Stats() }

func (m *Memo[V]) CacheLen() int { return m.cache.Len() }

// Cache exposes the bound cache for inspection.
func (m *Memo[V]) Cache() ports.Cache[V] { return m.cache }

var _ Querier = (*Memo[uint64])(nil)
