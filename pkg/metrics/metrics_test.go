package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyp3rd/spoollog"
	"github.com/hyp3rd/spoollog/pkg/engine"
)

type fixedStats spoollog.Stats

func (f fixedStats) Stats() spoollog.Stats { return spoollog.Stats(f) }

func TestCollectorExposesStats(t *testing.T) {
	collector := NewCollector(fixedStats{
		Records:  2,
		Bytes:    40,
		Enqueued: 10,
		Dropped:  1,
		Filtered: 3,
		Written:  4,
		Flushes:  5,
	}, prometheus.Labels{"engine": "uart0"})

	expected := `
# HELP spoollog_queue_records Records currently waiting for a flush
# TYPE spoollog_queue_records gauge
spoollog_queue_records{engine="uart0"} 2
# HELP spoollog_queue_written_total Records written to the device
# TYPE spoollog_queue_written_total counter
spoollog_queue_written_total{engine="uart0"} 4
`

	err := testutil.CollectAndCompare(collector, strings.NewReader(expected),
		"spoollog_queue_records", "spoollog_queue_written_total")
	require.NoError(t, err)
}

func TestCollectorWithEngine(t *testing.T) {
	collector := NewCollector(nil, nil)

	config := spoollog.DefaultConfig()
	config.Output = &strings.Builder{}
	config.Color.Enable = false
	config.MaxPendingBytes = 1
	config.DropHandler = collector.DropHandler(nil)

	eng, err := engine.New(config)
	require.NoError(t, err)

	t.Cleanup(func() { _ = eng.Close() })

	collector.Bind(eng)

	registry := prometheus.NewRegistry()
	require.NoError(t, registry.Register(collector))

	eng.Infof("APP", "too big for the budget")

	assert.InDelta(t, 1, testutil.ToFloat64(collector.dropsByReason.WithLabelValues("budget")), 0)

	families, err := registry.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, family := range families {
		names = append(names, family.GetName())
	}

	assert.Contains(t, names, "spoollog_queue_dropped_total")
	assert.Contains(t, names, "spoollog_queue_drops_by_reason_total")
}

func TestCollectorWithoutSource(t *testing.T) {
	collector := NewCollector(nil, nil)

	assert.Equal(t, 0, testutil.CollectAndCount(collector, "spoollog_queue_records"))
}

func TestCollectorRecordsFlushTime(t *testing.T) {
	collector := NewCollector(nil, nil)

	spoollog.RegisterStatsHandler(collector.StatsHandler())
	t.Cleanup(spoollog.ClearStatsHandlers)

	config := spoollog.DefaultConfig()
	config.Output = &strings.Builder{}
	config.Color.Enable = false

	eng, err := engine.New(config)
	require.NoError(t, err)

	t.Cleanup(func() { _ = eng.Close() })

	before := float64(time.Now().Unix())

	require.NoError(t, eng.Flush())

	assert.GreaterOrEqual(t, testutil.ToFloat64(collector.lastFlush), before)
}
