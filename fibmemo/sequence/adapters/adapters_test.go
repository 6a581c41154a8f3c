package adapters

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	ports "github.com/ZanzyTHEbar/fibmemo/fibmemo/sequence/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMapCache_GetSet tests basic cache operations.
func TestMapCache_GetSet(t *testing.T) {
	cache := NewMapCache[uint64]()

	_, ok := cache.Get(5)
	assert.False(t, ok)
	assert.Equal(t, 0, cache.Len())

	cache.Set(5, 8)
	v, ok := cache.Get(5)
	assert.True(t, ok)
	assert.Equal(t, uint64(8), v)
	assert.Equal(t, 1, cache.Len())

	// Overwrite keeps a single entry
	cache.Set(5, 8)
	assert.Equal(t, 1, cache.Len())
}

// TestMapCache_NoEviction verifies the cache only grows.
func TestMapCache_NoEviction(t *testing.T) {
	cache := NewMapCache[uint64]()
	for i := 0; i < 10000; i++ {
		cache.Set(i, uint64(i))
	}

	assert.Equal(t, 10000, cache.Len())
	v, ok := cache.Get(0)
	assert.True(t, ok)
	assert.Equal(t, uint64(0), v)
}

func TestMapCache_SeedAndIndices(t *testing.T) {
	cache := NewMapCache[uint64]()
	cache.Seed(map[int]uint64{4: 5, 2: 2, 3: 3})

	assert.Equal(t, []int{2, 3, 4}, cache.Indices())
	assert.Empty(t, NewMapCache[uint64]().Indices())
}

// TestZerologObserver_Events tests that evaluator events are logged with their index.
func TestZerologObserver_Events(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	obs := NewZerologObserver(logger)

	obs.Hit(3)
	obs.Miss(4)
	obs.Store(4)
	obs.Reject(-1, fmt.Errorf("%w: index -1", ports.ErrInvalidArgument))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)

	events := make([]map[string]any, 0, len(lines))
	for _, line := range lines {
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		events = append(events, entry)
	}

	assert.Equal(t, "cache_hit", events[0]["event"])
	assert.Equal(t, float64(3), events[0]["index"])
	assert.Equal(t, "cache_miss", events[1]["event"])
	assert.Equal(t, "cache_store", events[2]["event"])
	assert.Equal(t, "reject", events[3]["event"])
	assert.Equal(t, "warn", events[3]["level"])
	assert.Equal(t, "invalid_argument", events[3]["reason"])
	assert.Equal(t, "evaluator", events[3]["component"])
}

func TestZerologObserver_InfoLevelSuppressesCacheTraffic(t *testing.T) {
	var buf bytes.Buffer
	obs := NewZerologObserver(zerolog.New(&buf).Level(zerolog.InfoLevel))

	obs.Hit(3)
	obs.Miss(3)
	obs.Store(3)

	assert.Empty(t, buf.String())
}

// TestPrometheusObserver_Counters tests metric updates.
func TestPrometheusObserver_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs := NewPrometheusObserver(reg, "test")

	obs.Hit(2)
	obs.Hit(3)
	obs.Miss(4)
	obs.Store(4)
	obs.Store(3)
	obs.Reject(93, fmt.Errorf("%w: term 93", ports.ErrOverflow))

	assert.Equal(t, float64(2), testutil.ToFloat64(obs.Hits))
	assert.Equal(t, float64(1), testutil.ToFloat64(obs.Misses))
	assert.Equal(t, float64(2), testutil.ToFloat64(obs.Stores))
	assert.Equal(t, float64(4), testutil.ToFloat64(obs.HighestIndex))
	assert.Equal(t, float64(1), testutil.ToFloat64(obs.Rejects.WithLabelValues("overflow")))
	assert.Equal(t, float64(0), testutil.ToFloat64(obs.Rejects.WithLabelValues("invalid_argument")))

	count, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Greater(t, count, 0)
}

func TestPrometheusObserver_SeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		NewPrometheusObserver(prometheus.NewRegistry(), "a")
		NewPrometheusObserver(prometheus.NewRegistry(), "a")
	})
}

type recordingObserver struct {
	events []string
}

func (r *recordingObserver) Hit(n int)   { r.events = append(r.events, fmt.Sprintf("hit:%d", n)) }
func (r *recordingObserver) Miss(n int)  { r.events = append(r.events, fmt.Sprintf("miss:%d", n)) }
func (r *recordingObserver) Store(n int) { r.events = append(r.events, fmt.Sprintf("store:%d", n)) }
func (r *recordingObserver) Reject(n int, err error) {
	r.events = append(r.events, fmt.Sprintf("reject:%d:%s", n, ports.Reason(err)))
}

func TestFanout_ForwardsToAll(t *testing.T) {
	a, b := &recordingObserver{}, &recordingObserver{}
	fan := Fanout{a, b}

	fan.Miss(2)
	fan.Store(2)
	fan.Hit(2)
	fan.Reject(-1, ports.ErrInvalidArgument)

	expected := []string{"miss:2", "store:2", "hit:2", "reject:-1:invalid_argument"}
	assert.Equal(t, expected, a.events)
	assert.Equal(t, expected, b.events)
}
