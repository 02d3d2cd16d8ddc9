// Package bot connects message handlers to Slack.
package bot

import (
	"context"
	"strings"

	"github.com/nlopes/slack"
	"go.opentelemetry.io/otel/attribute"

	"github.com/gobridge/versebot/sections"
	"github.com/gobridge/versebot/telemetry"
)

type (
	// Logger function
	Logger func(message string, args ...interface{})

	// Poster is the part of the Slack API the bot posts through.
	Poster interface {
		PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
	}

	// Message is an incoming chat message.
	Message struct {
		Event *slack.MessageEvent
		// TrimmedText is the message text without surrounding whitespace.
		TrimmedText string
		// CorrelationID ties log lines and spans for one message together.
		CorrelationID string
	}

	// Responder replies in the channel a Message came from.
	Responder interface {
		Respond(ctx context.Context, text string)
		RespondAs(ctx context.Context, text string, id sections.Identity)
	}

	// Handler reacts to a Message.
	Handler interface {
		Handle(ctx context.Context, m Message, r Responder)
	}

	// HandlerFunc adapts a function to Handler.
	HandlerFunc func(ctx context.Context, m Message, r Responder)

	// Bot routes Slack messages to a Handler.
	Bot struct {
		api     Poster
		handler Handler
		logf    Logger
		userID  string
	}
)

// Handle calls f.
func (f HandlerFunc) Handle(ctx context.Context, m Message, r Responder) {
	f(ctx, m, r)
}

// New creates a Bot.
func New(api Poster, h Handler, logf Logger) *Bot {
	return &Bot{
		api:     api,
		handler: h,
		logf:    logf,
	}
}

// SetUserID records the bot's own user so its posts are not handled.
func (b *Bot) SetUserID(id string) {
	b.userID = id
}

func (b *Bot) isBotMessage(event *slack.MessageEvent) bool {
	return event.BotID != "" ||
		event.SubType == "bot_message" ||
		(b.userID != "" && event.User == b.userID)
}

// HandleMessage passes event to the handler unless the bot posted it.
func (b *Bot) HandleMessage(ctx context.Context, event *slack.MessageEvent) {
	if b.isBotMessage(event) {
		return
	}

	ctx, corr := telemetry.WithCorrelation(ctx)
	ctx, span := telemetry.StartSpan(ctx, "versebot/bot", "Bot.HandleMessage",
		attribute.String("channel", event.Channel),
	)
	defer span.End()

	m := Message{
		Event:         event,
		TrimmedText:   strings.TrimSpace(event.Text),
		CorrelationID: corr,
	}
	b.handler.Handle(ctx, m, &responder{bot: b, channel: event.Channel, corr: corr})
}

// Post sends text to channel under id.
func (b *Bot) Post(ctx context.Context, channel, text string, id sections.Identity) error {
	opts := append([]slack.MsgOption{slack.MsgOptionText(text, false)}, IdentityOptions(id)...)
	_, _, err := b.api.PostMessageContext(ctx, channel, opts...)
	if err != nil {
		telemetry.Inc(telemetry.PostsFailed)
	}
	return err
}

// IdentityOptions turns id into post options. Username with an icon URL
// wins over username with an emoji, then username alone, then the icon URL,
// then the emoji. The zero Identity posts as the bot user.
func IdentityOptions(id sections.Identity) []slack.MsgOption {
	switch {
	case id.Username != "" && id.IconURL != "":
		return []slack.MsgOption{slack.MsgOptionUsername(id.Username), slack.MsgOptionIconURL(id.IconURL)}
	case id.Username != "" && id.IconEmoji != "":
		return []slack.MsgOption{slack.MsgOptionUsername(id.Username), slack.MsgOptionIconEmoji(id.IconEmoji)}
	case id.Username != "":
		return []slack.MsgOption{slack.MsgOptionUsername(id.Username)}
	case id.IconURL != "":
		return []slack.MsgOption{slack.MsgOptionIconURL(id.IconURL)}
	case id.IconEmoji != "":
		return []slack.MsgOption{slack.MsgOptionIconEmoji(id.IconEmoji)}
	}
	return []slack.MsgOption{slack.MsgOptionAsUser(true)}
}

type responder struct {
	bot     *Bot
	channel string
	corr    string
}

func (r *responder) Respond(ctx context.Context, text string) {
	r.RespondAs(ctx, text, sections.Identity{})
}

func (r *responder) RespondAs(ctx context.Context, text string, id sections.Identity) {
	if err := r.bot.Post(ctx, r.channel, text, id); err != nil {
		r.bot.logf("[%s] posting to %s: %v", r.corr, r.channel, err)
	}
}
