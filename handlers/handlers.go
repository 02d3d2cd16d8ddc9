// Package handlers builds the bot.Handlers versebot responds to messages with.
package handlers

import (
	"context"
	"strings"

	"github.com/gobridge/versebot/bot"
)

// Condition will check whether a message matches a condition.
type Condition func(bot.Message, []string) bool

// FirstWord will return true if the first word of a message equals one of
// strs, ignoring case.
var FirstWord Condition = func(m bot.Message, strs []string) bool {
	fields := strings.Fields(m.TrimmedText)
	if len(fields) == 0 {
		return false
	}
	for _, str := range strs {
		if strings.EqualFold(fields[0], str) {
			return true
		}
	}
	return false
}

// ProcessLinear calls handlers in order.
func ProcessLinear(hs ...bot.Handler) bot.Handler {
	return bot.HandlerFunc(func(ctx context.Context, m bot.Message, r bot.Responder) {
		for _, h := range hs {
			h.Handle(ctx, m, r)
		}
	})
}

// When calls h for messages matching isMatch.
func When(isMatch Condition, strs []string, h bot.Handler) bot.Handler {
	return bot.HandlerFunc(func(ctx context.Context, m bot.Message, r bot.Responder) {
		if !isMatch(m, strs) {
			return
		}
		h.Handle(ctx, m, r)
	})
}

// Unless calls h for messages not matching isMatch.
func Unless(isMatch Condition, strs []string, h bot.Handler) bot.Handler {
	return bot.HandlerFunc(func(ctx context.Context, m bot.Message, r bot.Responder) {
		if isMatch(m, strs) {
			return
		}
		h.Handle(ctx, m, r)
	})
}

// Versebot is the full message handler: commands addressed to trigger, and
// passage lookups for every other message.
func Versebot(trigger string, commands, references bot.Handler) bot.Handler {
	return ProcessLinear(
		When(FirstWord, []string{trigger}, commands),
		Unless(FirstWord, []string{trigger}, references),
	)
}
