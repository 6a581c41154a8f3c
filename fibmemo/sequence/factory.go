package sequence

import (
	"fmt"
	"math/big"

	"github.com/ZanzyTHEbar/fibmemo/fibmemo/config"
	"github.com/ZanzyTHEbar/fibmemo/fibmemo/sequence/adapters"
	ports "github.com/ZanzyTHEbar/fibmemo/fibmemo/sequence/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

const (
	ArithmeticChecked = "checked"
	ArithmeticBig     = "big"
)

// Factory creates and wires evaluator components from configuration.
type Factory struct {
	seqConfig  *config.SequenceConfig
	logger     zerolog.Logger
	registerer prometheus.Registerer // Optional, enables the Prometheus observer
	namespace  string
}

// NewFactory creates a new sequence factory.
func NewFactory(seqConfig *config.SequenceConfig, logger zerolog.Logger) *Factory {
	return &Factory{
		seqConfig: seqConfig,
		logger:    logger,
	}
}

// WithMetrics registers evaluator metrics on reg for every querier created afterwards.
func (f *Factory) WithMetrics(reg prometheus.Registerer, namespace string) *Factory {
	f.registerer = reg
	f.namespace = namespace
	return f
}

// CreateQuerier creates a Querier with an empty cache.
func (f *Factory) CreateQuerier() (Querier, error) {
	strategy, err := ParseStrategy(f.seqConfig.Strategy)
	if err != nil {
		return nil, err
	}
	observers := f.createObservers()

	switch f.seqConfig.Arithmetic {
	case ArithmeticChecked:
		eval, err := NewEvaluator[uint64](Checked{}, strategy, observers...)
		if err != nil {
			return nil, err
		}
		return NewMemo[uint64](eval, nil), nil
	case ArithmeticBig:
		eval, err := NewEvaluator[*big.Int](Big{}, strategy, observers...)
		if err != nil {
			return nil, err
		}
		return NewMemo[*big.Int](eval, nil), nil
	default:
		return nil, fmt.Errorf("unknown arithmetic %q (want %q or %q)", f.seqConfig.Arithmetic, ArithmeticChecked, ArithmeticBig)
	}
}

func (f *Factory) createObservers() []ports.Observer {
	observers := []ports.Observer{adapters.NewZerologObserver(f.logger)}
	if f.registerer != nil {
		observers = append(observers, adapters.NewPrometheusObserver(f.registerer, f.namespace))
	}
	return observers
}
