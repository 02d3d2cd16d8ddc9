package handlers

import (
	"context"
	"errors"

	"github.com/gobridge/versebot/bot"
	"github.com/gobridge/versebot/esv"
	"github.com/gobridge/versebot/scripture"
	"github.com/gobridge/versebot/sections"
	"github.com/gobridge/versebot/telemetry"
)

// PassageLookup fetches the text of a reference.
type PassageLookup interface {
	Passage(ctx context.Context, ref string) (string, error)
}

// References posts the passage for the first scripture reference in a
// message, under the versebot section's identity. Nothing is posted while
// the section is disabled or when the passage cannot be found.
func References(store *sections.Store, lookup PassageLookup, logf bot.Logger) bot.Handler {
	return bot.HandlerFunc(func(ctx context.Context, m bot.Message, r bot.Responder) {
		if store.Disabled(sections.Versebot) {
			return
		}
		ref, ok := scripture.Extract(m.Event.Text)
		if !ok {
			return
		}
		telemetry.Inc(telemetry.ReferencesExtracted)

		text, err := lookup.Passage(ctx, ref)
		if errors.Is(err, esv.ErrNotFound) {
			return
		}
		if err != nil {
			telemetry.Inc(telemetry.LookupsFailed)
			logf("[%s] looking up %s: %v", m.CorrelationID, ref, err)
			return
		}
		r.RespondAs(ctx, text, store.Identity(sections.Versebot))
	})
}
