// Package session drives a Querier over one shared cache, either by sweeping
// a fixed index range or by answering indices read from an input stream.
package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/fibmemo/fibmemo/sequence"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ResultFormat is the line printed for every answered index.
const ResultFormat = "Result for %d: - %s\n"

// ErrorFormat is the line printed when an interactive query fails.
const ErrorFormat = "Error for %d: %v\n"

// Session owns one query cache for its lifetime.
type Session struct {
	ID      uuid.UUID
	querier sequence.Querier
	logger  zerolog.Logger
	metrics *MetricsCollector
}

// New creates a session around querier.
func New(querier sequence.Querier, logger zerolog.Logger) *Session {
	id := uuid.New()
	return &Session{
		ID:      id,
		querier: querier,
		logger:  logger.With().Str("session", id.String()).Logger(),
		metrics: NewMetricsCollector(),
	}
}

// Sweep queries every index from from to to inclusive, descending when
// from > to, and writes one result line per index. It stops at the first
// failing index.
func (s *Session) Sweep(w io.Writer, from, to int) error {
	step := 1
	if from > to {
		step = -1
	}
	s.logger.Info().Int("from", from).Int("to", to).Msg("Starting sweep")
	defer s.logSummary()

	for i := from; ; i += step {
		value, err := s.query(i)
		if err != nil {
			return fmt.Errorf("query %d: %w", i, err)
		}
		if _, err := fmt.Fprintf(w, ResultFormat, i, value); err != nil {
			return fmt.Errorf("write result %d: %w", i, err)
		}
		if i == to {
			break
		}
	}
	return nil
}

// Interactive answers one index per input line until r is exhausted, a
// line reads "quit" or "exit", or ctx is done. Lines that are not integers
// are skipped. Failed queries are reported on w and do not end the loop.
// Cancellation is honoured while a read is pending; the reader goroutine
// exits once its current read returns.
func (s *Session) Interactive(ctx context.Context, r io.Reader, w io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				readErr <- ctx.Err()
				return
			}
		}
		readErr <- scanner.Err()
	}()

	s.logger.Info().Msg("Reading indices")
	defer s.logSummary()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var (
			line string
			ok   bool
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok = <-lines:
		}
		if !ok {
			if err := <-readErr; err != nil && ctx.Err() == nil {
				return fmt.Errorf("read input: %w", err)
			}
			return ctx.Err()
		}

		line = strings.TrimSpace(line)
		switch line {
		case "":
			continue
		case "quit", "exit":
			return nil
		}

		n, err := strconv.Atoi(line)
		if err != nil {
			s.logger.Debug().Str("input", line).Msg("Skipping non-numeric input")
			continue
		}

		value, err := s.query(n)
		if err != nil {
			if _, werr := fmt.Fprintf(w, ErrorFormat, n, err); werr != nil {
				return werr
			}
			continue
		}
		if _, err := fmt.Fprintf(w, ResultFormat, n, value); err != nil {
			return err
		}
	}
}

// Summary returns the query metrics collected so far.
func (s *Session) Summary() MetricsSummary {
	return s.metrics.GetSummary()
}

func (s *Session) query(n int) (string, error) {
	start := time.Now()
	value, err := s.querier.Query(n)
	s.metrics.RecordQuery(time.Since(start), err)
	return value, err
}

func (s *Session) logSummary() {
	summary := s.metrics.GetSummary()
	stats := s.querier.Stats()
	s.logger.Info().
		Int64("queries", summary.QueryCount).
		Int64("errors", summary.QueryErrors).
		Dur("p50", summary.QueryLatency.P50).
		Dur("p99", summary.QueryLatency.P99).
		Int64("hits", stats.Hits).
		Int64("misses", stats.Misses).
		Int64("additions", stats.Additions).
		Int("cached", s.querier.CacheLen()).
		Msg("Session summary")
}
