// Package metrics exposes engine statistics to Prometheus.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hyp3rd/spoollog"
)

const (
	namespace = "spoollog"
	subsystem = "queue"
)

// StatsSource is anything that reports engine statistics.
type StatsSource interface {
	Stats() spoollog.Stats
}

// Collector reads a StatsSource on every scrape. Drops can additionally be
// broken down by reason through DropHandler.
type Collector struct {
	source StatsSource

	records     *prometheus.Desc
	bytes       *prometheus.Desc
	enqueued    *prometheus.Desc
	dropped     *prometheus.Desc
	filtered    *prometheus.Desc
	written     *prometheus.Desc
	writeErrors *prometheus.Desc
	flushes     *prometheus.Desc

	dropsByReason *prometheus.CounterVec
	lastFlush     prometheus.Gauge
}

// NewCollector creates a collector for source. constLabels are attached to every
// series, e.g. {"engine": "uart0"}.
func NewCollector(source StatsSource, constLabels prometheus.Labels) *Collector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystem, name), help, nil, constLabels)
	}

	return &Collector{
		source:      source,
		records:     desc("records", "Records currently waiting for a flush"),
		bytes:       desc("bytes", "Payload bytes currently waiting for a flush"),
		enqueued:    desc("enqueued_total", "Records accepted into the queue"),
		dropped:     desc("dropped_total", "Records abandoned before reaching the device"),
		filtered:    desc("filtered_total", "Queued records rejected by the keyword filter"),
		written:     desc("written_total", "Records written to the device"),
		writeErrors: desc("write_errors_total", "Device writes that failed"),
		flushes:     desc("flushes_total", "Completed flush passes"),
		dropsByReason: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        "drops_by_reason_total",
			Help:        "Dropped records by reason",
			ConstLabels: constLabels,
		}, []string{"reason"}),
		lastFlush: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        "last_flush_timestamp_seconds",
			Help:        "Unix time of the most recent flush",
			ConstLabels: constLabels,
		}),
	}
}

// StatsHandler returns a handler recording the time of each flush. Pass it to
// spoollog.RegisterStatsHandler.
func (c *Collector) StatsHandler() spoollog.StatsHandler {
	return func(context.Context, spoollog.Stats) {
		c.lastFlush.Set(float64(time.Now().UnixNano()) / float64(time.Second))
	}
}

// DropHandler returns a handler counting drops by reason before calling next.
// Install it as Config.DropHandler.
func (c *Collector) DropHandler(next spoollog.DropHandler) spoollog.DropHandler {
	return func(drop spoollog.Drop) {
		c.dropsByReason.WithLabelValues(drop.Reason.String()).Inc()

		if next != nil {
			next(drop)
		}
	}
}

// Bind sets the stats source when the collector had to be created before the engine.
// Call it before the collector is registered.
func (c *Collector) Bind(source StatsSource) {
	c.source = source
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.records
	ch <- c.bytes
	ch <- c.enqueued
	ch <- c.dropped
	ch <- c.filtered
	ch <- c.written
	ch <- c.writeErrors
	ch <- c.flushes

	c.dropsByReason.Describe(ch)
	c.lastFlush.Describe(ch)
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.dropsByReason.Collect(ch)
	c.lastFlush.Collect(ch)

	if c.source == nil {
		return
	}

	stats := c.source.Stats()

	ch <- prometheus.MustNewConstMetric(c.records, prometheus.GaugeValue, float64(stats.Records))
	ch <- prometheus.MustNewConstMetric(c.bytes, prometheus.GaugeValue, float64(stats.Bytes))
	ch <- prometheus.MustNewConstMetric(c.enqueued, prometheus.CounterValue, float64(stats.Enqueued))
	ch <- prometheus.MustNewConstMetric(c.dropped, prometheus.CounterValue, float64(stats.Dropped))
	ch <- prometheus.MustNewConstMetric(c.filtered, prometheus.CounterValue, float64(stats.Filtered))
	ch <- prometheus.MustNewConstMetric(c.written, prometheus.CounterValue, float64(stats.Written))
	ch <- prometheus.MustNewConstMetric(c.writeErrors, prometheus.CounterValue, float64(stats.WriteErrors))
	ch <- prometheus.MustNewConstMetric(c.flushes, prometheus.CounterValue, float64(stats.Flushes))
}

var _ prometheus.Collector = (*Collector)(nil)
