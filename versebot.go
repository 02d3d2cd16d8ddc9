// Copyright 2016 Florin Pățan
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command versebot
//
// This is a Slack bot that posts the scripture passages people mention and a
// daily verse at a configured time. It is configured from chat with
// commands addressed to its trigger word, see package command.
//
// To run this you need a Slack bot token, either in the SLACK_TOKEN
// environment variable or under the slack section of the sections file.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"cloud.google.com/go/datastore"
	"github.com/alecthomas/kong"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/nlopes/slack"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gobridge/versebot/bot"
	"github.com/gobridge/versebot/command"
	"github.com/gobridge/versebot/daily"
	"github.com/gobridge/versebot/esv"
	"github.com/gobridge/versebot/handlers"
	"github.com/gobridge/versebot/sections"
	"github.com/gobridge/versebot/telemetry"
)

var version = "HEAD"

// CLI holds the process settings.
type CLI struct {
	Token            string        `help:"Slack bot token." env:"SLACK_TOKEN"`
	Trigger          string        `help:"Word that addresses a command to the bot." env:"VERSEBOT_TRIGGER" default:"versebot"`
	Sections         string        `help:"Sections file." env:"VERSEBOT_SECTIONS" default:"bot.yaml" type:"path"`
	Store            string        `help:"Where sections are kept." env:"VERSEBOT_STORE" enum:"file,datastore" default:"file"`
	DatastoreProject string        `help:"Google Cloud project for the datastore store." env:"DATASTORE_PROJECT"`
	ESVURL           string        `name:"esv-url" help:"ESV service endpoint." env:"ESV_URL" default:"${esv_url}"`
	ESVKey           string        `name:"esv-key" help:"ESV access key." env:"ESV_KEY" default:"IP"`
	Tick             time.Duration `help:"Daily verse poll period." env:"VERSEBOT_TICK" default:"1s"`
	HTTPAddr         string        `name:"http-addr" help:"Health and metrics listen address." env:"HTTP_ADDR" default:":8080"`
	LogLevel         string        `help:"debug, info, warn or error." env:"LOG_LEVEL" default:"info"`
	LogFormat        string        `help:"text or json." env:"LOG_FORMAT" enum:"text,json" default:"text"`
	OTLPEndpoint     string        `name:"otlp-endpoint" help:"OTLP/gRPC trace collector." env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

func main() {
	_ = godotenv.Load()

	var cli CLI
	kong.Parse(&cli,
		kong.Name("versebot"),
		kong.Description("Slack bot posting scripture passages and a daily verse."),
		kong.Vars{"esv_url": esv.DefaultURL},
	)

	slog.SetDefault(newLogger(cli.LogLevel, cli.LogFormat))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cli); err != nil {
		slog.Error("versebot stopped", slog.Any("err", err))
		os.Exit(1)
	}
}

func newLogger(level, format string) *slog.Logger {
	lvl := slog.LevelInfo
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: lvl}
	if strings.ToLower(format) == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

// logfFor adapts l to the printf style logger the packages take.
func logfFor(l *slog.Logger) bot.Logger {
	return func(message string, args ...interface{}) {
		l.Warn(fmt.Sprintf(message, args...))
	}
}

func newPersister(ctx context.Context, cli CLI) (sections.Persister, error) {
	switch cli.Store {
	case "datastore":
		ds, err := datastore.NewClient(ctx, cli.DatastoreProject)
		if err != nil {
			return nil, fmt.Errorf("connecting to datastore: %w", err)
		}
		return sections.NewDatastorePersister(ds), nil
	default:
		return sections.NewFilePersister(cli.Sections), nil
	}
}

func run(ctx context.Context, cli CLI) error {
	telemetry.Init()
	shutdown, err := telemetry.InitTracing(cli.OTLPEndpoint, "versebot", version)
	if err != nil {
		return err
	}
	defer shutdown()

	persister, err := newPersister(ctx, cli)
	if err != nil {
		return err
	}
	store, err := sections.Load(ctx, persister)
	if err != nil {
		return err
	}

	token := cli.Token
	if token == "" {
		token = store.Token()
	}
	if token == "" {
		return errors.New("slack token must be set with SLACK_TOKEN or in the slack section")
	}

	logf := logfFor(slog.Default())
	api := slack.New(token)
	httpClient := &http.Client{
		Timeout: 10 * time.Second,
	}
	lookup := esv.New(httpClient, cli.ESVURL, cli.ESVKey)

	b := bot.New(api, handlers.Versebot(cli.Trigger,
		handlers.Commands(cli.Trigger, command.New(cli.Trigger, store), logf),
		handlers.References(store, lookup, logf),
	), logf)
	poster := daily.New(store, lookup, b.Post)

	auth, err := api.AuthTestContext(ctx)
	if err != nil {
		return fmt.Errorf("checking slack token: %w", err)
	}
	b.SetUserID(auth.UserID)
	slog.Info("connected", slog.String("user", auth.User), slog.String("team", auth.Team))

	srv := &http.Server{
		Addr:              cli.HTTPAddr,
		Handler:           router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server failed", slog.Any("err", err))
		}
	}()
	defer srv.Close()

	rtm := api.NewRTM()
	go rtm.ManageConnection()
	defer rtm.Disconnect()

	ticker := time.NewTicker(cli.Tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case msg := <-rtm.IncomingEvents:
			switch event := msg.Data.(type) {
			case *slack.ConnectedEvent:
				slog.Info("rtm connected", slog.Int("count", event.ConnectionCount))
			case *slack.MessageEvent:
				b.HandleMessage(ctx, event)
			case *slack.InvalidAuthEvent:
				return errors.New("slack rejected the token")
			}

		case <-ticker.C:
			if err := poster.Poll(ctx); err != nil {
				logf("%v", err)
			}
		}
	}
}

func router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	}).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	return r
}
