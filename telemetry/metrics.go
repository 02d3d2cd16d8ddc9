// Package telemetry provides Prometheus metrics, tracing and correlation ids.
package telemetry

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	once sync.Once

	CommandsTotal       *prometheus.CounterVec
	ReferencesExtracted prometheus.Counter
	LookupsFailed       prometheus.Counter
	PostsFailed         prometheus.Counter
	DailyPosts          prometheus.Counter
	PersistFailures     prometheus.Counter
)

// Init registers metrics (idempotent).
func Init() {
	once.Do(func() {
		CommandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{Name: "versebot_commands_total", Help: "Commands dispatched, by verb"}, []string{"verb"})
		ReferencesExtracted = promauto.NewCounter(prometheus.CounterOpts{Name: "versebot_references_extracted_total", Help: "Scripture references found in messages"})
		LookupsFailed = promauto.NewCounter(prometheus.CounterOpts{Name: "versebot_lookups_failed_total", Help: "Passage lookups that failed"})
		PostsFailed = promauto.NewCounter(prometheus.CounterOpts{Name: "versebot_posts_failed_total", Help: "Slack posts that failed"})
		DailyPosts = promauto.NewCounter(prometheus.CounterOpts{Name: "versebot_daily_posts_total", Help: "Daily verses posted"})
		PersistFailures = promauto.NewCounter(prometheus.CounterOpts{Name: "versebot_persist_failures_total", Help: "Section saves that failed"})
	})
}

// CountCommand increments the counter for verb. An empty verb counts as help.
func CountCommand(verb string) {
	if CommandsTotal == nil {
		return
	}
	if verb == "" {
		verb = "help"
	}
	CommandsTotal.WithLabelValues(verb).Inc()
}

// Inc increments c if Init has run.
func Inc(c prometheus.Counter) {
	if c != nil {
		c.Inc()
	}
}

type corrKeyType struct{}

var corrKey corrKeyType

// WithCorrelation returns a context carrying a fresh correlation id.
func WithCorrelation(ctx context.Context) (context.Context, string) {
	id := uuid.NewString()
	return context.WithValue(ctx, corrKey, id), id
}

// GetCorrelation returns the correlation id or an empty string.
func GetCorrelation(ctx context.Context) string {
	if s, ok := ctx.Value(corrKey).(string); ok {
		return s
	}
	return ""
}
