package adapters

import ports "github.com/ZanzyTHEbar/fibmemo/fibmemo/sequence/ports"

// Fanout forwards every event to each observer in order.
type Fanout []ports.Observer

func (f Fanout) Hit(n int) {
	for _, o := range f {
		o.Hit(n)
	}
}

func (f Fanout) Miss(n int) {
	for _, o := range f {
		o.Miss(n)
	}
}

func (f Fanout) Store(n int) {
	for _, o := range f {
		o.Store(n)
	}
}

func (f Fanout) Reject(n int, err error) {
	for _, o := range f {
		o.Reject(n, err)
	}
}

var _ ports.Observer = Fanout(nil)
