package handlers

import (
	"context"
	"errors"

	"github.com/gobridge/versebot/bot"
	"github.com/gobridge/versebot/command"
	"github.com/gobridge/versebot/sections"
	"github.com/gobridge/versebot/telemetry"
)

// Commands tokenizes messages starting with trigger, dispatches them and
// posts each response line separately.
func Commands(trigger string, d *command.Dispatcher, logf bot.Logger) bot.Handler {
	return bot.HandlerFunc(func(ctx context.Context, m bot.Message, r bot.Responder) {
		cmd, ok := command.Tokenize(trigger, m.TrimmedText)
		if !ok {
			return
		}
		telemetry.CountCommand(cmd.Verb)

		lines, err := d.Dispatch(ctx, cmd)
		if errors.Is(err, sections.ErrPersist) {
			telemetry.Inc(telemetry.PersistFailures)
		}
		if err != nil {
			logf("[%s] %v", m.CorrelationID, err)
		}
		for _, line := range lines {
			r.Respond(ctx, line)
		}
	})
}
