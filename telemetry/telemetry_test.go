package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.opentelemetry.io/otel/trace"
)

func TestCountCommand(t *testing.T) {
	Init()
	Init()

	before := testutil.ToFloat64(CommandsTotal.WithLabelValues("help"))
	CountCommand("")
	if got := testutil.ToFloat64(CommandsTotal.WithLabelValues("help")); got != before+1 {
		t.Errorf("expected help to be counted, got %v", got)
	}

	before = testutil.ToFloat64(CommandsTotal.WithLabelValues("enable"))
	CountCommand("enable")
	if got := testutil.ToFloat64(CommandsTotal.WithLabelValues("enable")); got != before+1 {
		t.Errorf("expected enable to be counted, got %v", got)
	}
}

func TestInc(t *testing.T) {
	Init()
	before := testutil.ToFloat64(DailyPosts)
	Inc(DailyPosts)
	if got := testutil.ToFloat64(DailyPosts); got != before+1 {
		t.Errorf("expected: %v\nactual:%v", before+1, got)
	}
	Inc(nil)
}

func TestCorrelation(t *testing.T) {
	if id := GetCorrelation(context.Background()); id != "" {
		t.Errorf("expected no id, got %q", id)
	}
	ctx, id := WithCorrelation(context.Background())
	if id == "" || GetCorrelation(ctx) != id {
		t.Errorf("expected %q, got %q", id, GetCorrelation(ctx))
	}
	_, other := WithCorrelation(context.Background())
	if other == id {
		t.Error("expected distinct ids")
	}
}

func TestTracingDisabled(t *testing.T) {
	shutdown, err := InitTracing("", "versebot", "test")
	if err != nil {
		t.Fatal(err)
	}
	defer shutdown()

	ctx, _ := WithCorrelation(context.Background())
	_, span := StartSpan(ctx, "test", "span")
	RecordError(span, errors.New("boom"))
	RecordError(span, nil)
	span.End()

	if trace.SpanContextFromContext(context.Background()).IsValid() {
		t.Error("background context should carry no span")
	}
}
