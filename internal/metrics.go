// Copyright (c) 2021-2022, The Tor Project, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package internal

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
)

const (
	PrometheusNamespace = "locharvest"
	PushJobName         = "locharvest"
)

type Metrics struct {
	registry *prometheus.Registry

	BundlesLocated     *prometheus.CounterVec
	RecordsEmitted     prometheus.Counter
	TranslationEntries *prometheus.CounterVec
	FilesRead          prometheus.Counter
	FilesSkipped       prometheus.Counter
	ArchiveBytes       prometheus.Gauge
	Uploads            *prometheus.CounterVec
	RunDuration        prometheus.Gauge
	LastSuccess        prometheus.Gauge
}

// InitMetrics initialises our Prometheus metrics.  They live in their own
// registry as a run only lasts until its metrics are pushed.
func InitMetrics() *Metrics {
	metrics := &Metrics{registry: prometheus.NewRegistry()}
	factory := promauto.With(metrics.registry)

	metrics.BundlesLocated = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: PrometheusNamespace,
			Name:      "bundles_located_total",
			Help:      "The number of bundle references found, by the kind of table that revealed them",
		},
		[]string{"origin"},
	)

	metrics.RecordsEmitted = factory.NewCounter(
		prometheus.CounterOpts{
			Namespace: PrometheusNamespace,
			Name:      "records_emitted_total",
			Help:      "The number of record files written",
		},
	)

	metrics.TranslationEntries = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: PrometheusNamespace,
			Name:      "translation_entries_total",
			Help:      "The number of translations collected, by source",
		},
		[]string{"source"},
	)

	metrics.FilesRead = factory.NewCounter(
		prometheus.CounterOpts{
			Namespace: PrometheusNamespace,
			Name:      "files_read_total",
			Help:      "The number of resource tables decoded",
		},
	)

	metrics.FilesSkipped = factory.NewCounter(
		prometheus.CounterOpts{
			Namespace: PrometheusNamespace,
			Name:      "files_skipped_total",
			Help:      "The number of resource tables or directories that could not be read",
		},
	)

	metrics.ArchiveBytes = factory.NewGauge(
		prometheus.GaugeOpts{
			Namespace: PrometheusNamespace,
			Name:      "archive_bytes",
			Help:      "The size of the archive of the last run",
		},
	)

	metrics.Uploads = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: PrometheusNamespace,
			Name:      "uploads_total",
			Help:      "The number of uploads by destination and result",
		},
		[]string{"destination", "result"},
	)

	metrics.RunDuration = factory.NewGauge(
		prometheus.GaugeOpts{
			Namespace: PrometheusNamespace,
			Name:      "run_duration_seconds",
			Help:      "How long the last run took",
		},
	)

	metrics.LastSuccess = factory.NewGauge(
		prometheus.GaugeOpts{
			Namespace: PrometheusNamespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "When the last run finished without error",
		},
	)

	return metrics
}

// Gatherer exposes the registry the metrics are registered with.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// Push sends all metrics to the Pushgateway at url, replacing the metrics
// of previous runs.
func (m *Metrics) Push(url string) error {
	return push.New(url, PushJobName).Gatherer(m.registry).Push()
}
