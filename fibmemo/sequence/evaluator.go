// Package sequence implements a memoized evaluator for the Fibonacci
// sequence with both base terms equal to 1:
//
//	value(0) = value(1) = 1
//	value(n) = value(n-1) + value(n-2)   for n >= 2
//
// The cache is passed in by the caller, so a session can share one table
// across many queries and tests can seed or inspect it. Each distinct
// index is computed at most once per cache.
package sequence

import (
	"fmt"

	"github.com/ZanzyTHEbar/fibmemo/fibmemo/sequence/adapters"
	ports "github.com/ZanzyTHEbar/fibmemo/fibmemo/sequence/ports"
)

// Stats counts evaluator work since construction or the last ResetStats.
type Stats struct {
	Calls      int64 `json:"calls"`      // top-level queries plus nested recursions
	Recursions int64 `json:"recursions"` // nested invocations only
	Hits       int64 `json:"hits"`
	Misses     int64 `json:"misses"`
	Additions  int64 `json:"additions"` // successful term additions
	Rejected   int64 `json:"rejected"`
}

// Evaluator computes sequence terms against a caller-owned cache.
// It is single-threaded: neither the evaluator nor the caches it is given
// may be used from several goroutines at once.
type Evaluator[V any] struct {
	arith    Arithmetic[V]
	strategy Strategy
	observer ports.Observer
	stats    Stats
}

// NewEvaluator creates an evaluator. An empty strategy means StrategyRecursive.
func NewEvaluator[V any](arith Arithmetic[V], strategy Strategy, observers ...ports.Observer) (*Evaluator[V], error) {
	if strategy == "" {
		strategy = StrategyRecursive
	}
	if _, err := ParseStrategy(string(strategy)); err != nil {
		return nil, err
	}

	var obs ports.Observer
	switch len(observers) {
	case 0:
		obs = adapters.Fanout(nil)
	case 1:
		obs = observers[0]
	default:
		obs = adapters.Fanout(observers)
	}

	return &Evaluator[V]{
		arith:    arith,
		strategy: strategy,
		observer: obs,
	}, nil
}

// Strategy returns the evaluation strategy in use.
func (e *Evaluator[V]) Strategy() Strategy { return e.strategy }

// Stats returns a snapshot of the work counters.
func (e *Evaluator[V]) Stats() Stats { return e.stats }

// ResetStats zeroes the work counters.
func (e *Evaluator[V]) ResetStats() { e.stats = Stats{} }

// Value returns term n, filling cache with every term it computes.
// A nil cache is replaced by a fresh one scoped to this call.
// Negative indices fail with ErrInvalidArgument. A term that does not fit
// the arithmetic fails with ErrOverflow and is not stored.
func (e *Evaluator[V]) Value(n int, cache ports.Cache[V]) (V, error) {
	e.stats.Calls++

	if n < 0 {
		var zero V
		err := fmt.Errorf("%w: index %d is negative", ports.ErrInvalidArgument, n)
		e.reject(n, err)
		return zero, err
	}
	if cache == nil {
		cache = adapters.NewMapCache[V]()
	}

	var (
		v   V
		err error
	)
	if e.strategy == StrategyIterative {
		v, err = e.iterate(n, cache)
	} else {
		v, err = e.recurse(n, cache)
	}
	if err != nil {
		e.reject(n, err)
	}
	return v, err
}

func (e *Evaluator[V]) recurse(n int, cache ports.Cache[V]) (V, error) {
	if n < 2 {
		return e.arith.Base(), nil
	}
	if v, ok := cache.Get(n); ok {
		e.hit(n)
		return v, nil
	}
	e.miss(n)

	a, err := e.descend(n-1, cache)
	if err != nil {
		return a, err
	}
	b, err := e.descend(n-2, cache)
	if err != nil {
		return b, err
	}
	return e.store(n, a, b, cache)
}

func (e *Evaluator[V]) descend(n int, cache ports.Cache[V]) (V, error) {
	e.stats.Calls++
	e.stats.Recursions++
	return e.recurse(n, cache)
}

// iterate fills upward from the highest known pair of terms below n, so a
// monotonic sweep over one cache does constant work per query.
func (e *Evaluator[V]) iterate(n int, cache ports.Cache[V]) (V, error) {
	if n < 2 {
		return e.arith.Base(), nil
	}
	if v, ok := cache.Get(n); ok {
		e.hit(n)
		return v, nil
	}
	e.miss(n)

	// prev = value(i-2), cur = value(i-1)
	k, prev, cur := e.knownPair(n-1, cache)
	for i := k + 1; i < n; i++ {
		v, ok := cache.Get(i)
		if ok {
			e.hit(i)
		} else {
			e.miss(i)
			var err error
			if v, err = e.store(i, cur, prev, cache); err != nil {
				return v, err
			}
		}
		prev, cur = cur, v
	}
	return e.store(n, cur, prev, cache)
}

// knownPair walks down from k to the highest index whose term and
// predecessor are both available, returning that index with value(k-1)
// and value(k). Only the pair that is used counts as hits.
func (e *Evaluator[V]) knownPair(k int, cache ports.Cache[V]) (int, V, V) {
	for ; k >= 2; k-- {
		cur, ok := cache.Get(k)
		if !ok {
			continue
		}
		prev, ok := e.known(k-1, cache)
		if !ok {
			continue
		}
		e.hit(k)
		if k-1 >= 2 {
			e.hit(k - 1)
		}
		return k, prev, cur
	}
	return 1, e.arith.Base(), e.arith.Base()
}

func (e *Evaluator[V]) known(n int, cache ports.Cache[V]) (V, bool) {
	if n < 2 {
		return e.arith.Base(), true
	}
	return cache.Get(n)
}

func (e *Evaluator[V]) store(n int, a, b V, cache ports.Cache[V]) (V, error) {
	v, err := e.arith.Add(a, b)
	if err != nil {
		var zero V
		return zero, fmt.Errorf("term %d: %w", n, err)
	}
	e.stats.Additions++
	cache.Set(n, v)
	e.observer.Store(n)
	return v, nil
}

func (e *Evaluator[V]) hit(n int) {
	e.stats.Hits++
	e.observer.Hit(n)
}

func (e *Evaluator[V]) miss(n int) {
	e.stats.Misses++
	e.observer.Miss(n)
}

func (e *Evaluator[V]) reject(n int, err error) {
	e.stats.Rejected++
	e.observer.Reject(n, err)
}
