package adapters

import (
	ports "github.com/ZanzyTHEbar/fibmemo/fibmemo/sequence/ports"
	"github.com/rs/zerolog"
)

// ZerologObserver logs evaluator events.
// Cache traffic is logged at debug level, rejected queries at warn.
type ZerologObserver struct {
	logger zerolog.Logger
}

// NewZerologObserver creates a new zerolog observer.
func NewZerologObserver(logger zerolog.Logger) *ZerologObserver {
	return &ZerologObserver{
		logger: logger.With().Str("component", "evaluator").Logger(),
	}
}

func (o *ZerologObserver) Hit(n int) {
	o.logger.Debug().Str("event", "cache_hit").Int("index", n).Msg("Cache hit")
}

func (o *ZerologObserver) Miss(n int) {
	o.logger.Debug().Str("event", "cache_miss").Int("index", n).Msg("Cache miss")
}

func (o *ZerologObserver) Store(n int) {
	o.logger.Debug().Str("event", "cache_store").Int("index", n).Msg("Stored term")
}

func (o *ZerologObserver) Reject(n int, err error) {
	o.logger.Warn().
		Err(err).
		Str("event", "reject").
		Str("reason", ports.Reason(err)).
		Int("index", n).
		Msg("Rejected query")
}

// Ensure ZerologObserver implements the Observer interface.
var _ ports.Observer = (*ZerologObserver)(nil)
