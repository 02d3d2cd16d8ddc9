// Package daily posts the daily verse at the time stored in the daily_verse
// section.
package daily

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/gobridge/versebot/esv"
	"github.com/gobridge/versebot/sections"
	"github.com/gobridge/versebot/telemetry"
)

// ShouldFireNow reports whether now falls on the scheduled second.
//
// Poll is driven by a ticker, so a tick period above one second can skip
// the scheduled second and two ticks inside it post twice.
func ShouldFireNow(now time.Time, s sections.Schedule) bool {
	return now.Hour() == s.Hour && now.Minute() == s.Minute && now.Second() == s.Second
}

// Source provides the daily verse text.
type Source interface {
	DailyVerse(ctx context.Context) (string, error)
}

// PostFunc posts text to channel under id. It counts its own failures in
// telemetry.PostsFailed.
type PostFunc func(ctx context.Context, channel, text string, id sections.Identity) error

// Daily posts the daily verse.
type Daily struct {
	store  *sections.Store
	source Source
	post   PostFunc
	now    func() time.Time
}

// New constructs a *Daily.
func New(store *sections.Store, source Source, post PostFunc) *Daily {
	return &Daily{
		store:  store,
		source: source,
		post:   post,
		now:    time.Now,
	}
}

// Poll posts the daily verse when the daily_verse section is enabled, has a
// channel, and the current second matches its schedule.
func (d *Daily) Poll(ctx context.Context) error {
	if d.store.Disabled(sections.DailyVerse) {
		return nil
	}
	schedule := d.store.Schedule()
	if !ShouldFireNow(d.now(), schedule) {
		return nil
	}
	channel := d.store.Channel()
	if channel == "" {
		return nil
	}

	ctx, span := telemetry.StartSpan(ctx, "versebot/daily", "Daily.Poll",
		attribute.String("channel", channel),
		attribute.String("schedule", schedule.String()),
	)
	defer span.End()

	text, err := d.source.DailyVerse(ctx)
	if errors.Is(err, esv.ErrNotFound) {
		return nil
	}
	if err != nil {
		telemetry.Inc(telemetry.LookupsFailed)
		telemetry.RecordError(span, err)
		return fmt.Errorf("fetching daily verse: %w", err)
	}

	if err := d.post(ctx, channel, text, d.store.Identity(sections.DailyVerse)); err != nil {
		telemetry.RecordError(span, err)
		return fmt.Errorf("posting daily verse to %s: %w", channel, err)
	}
	telemetry.Inc(telemetry.DailyPosts)
	return nil
}
