package daily

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nlopes/slack"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/gobridge/versebot/bot"
	"github.com/gobridge/versebot/esv"
	"github.com/gobridge/versebot/sections"
	"github.com/gobridge/versebot/telemetry"
)

type fakeSource struct {
	text string
	err  error
}

func (f fakeSource) DailyVerse(context.Context) (string, error) { return f.text, f.err }

type failingPoster struct{}

func (failingPoster) PostMessageContext(context.Context, string, ...slack.MsgOption) (string, string, error) {
	return "", "", errors.New("channel_not_found")
}

type post struct {
	channel, text string
	id            sections.Identity
}

func TestShouldFireNow(t *testing.T) {
	s := sections.Schedule{Hour: 6, Minute: 30, Second: 0}
	tests := []struct {
		now      time.Time
		expected bool
	}{
		{time.Date(2024, 1, 1, 6, 30, 0, 0, time.Local), true},
		{time.Date(2024, 1, 1, 6, 30, 0, 999, time.Local), true},
		{time.Date(2024, 1, 1, 6, 30, 1, 0, time.Local), false},
		{time.Date(2024, 1, 1, 6, 31, 0, 0, time.Local), false},
		{time.Date(2024, 1, 1, 18, 30, 0, 0, time.Local), false},
	}
	for _, tt := range tests {
		if got := ShouldFireNow(tt.now, s); got != tt.expected {
			t.Errorf("ShouldFireNow(%v): expected %t, got %t", tt.now, tt.expected, got)
		}
	}
}

func TestPoll(t *testing.T) {
	at := time.Date(2024, 1, 1, 7, 30, 0, 0, time.Local)

	setup := func(configure func(*sections.Store), source Source) (*Daily, *[]post) {
		store := sections.NewStore(nil)
		configure(store)
		var posts []post
		d := New(store, source, func(_ context.Context, channel, text string, id sections.Identity) error {
			posts = append(posts, post{channel, text, id})
			return nil
		})
		d.now = func() time.Time { return at }
		return d, &posts
	}
	enabled := func(s *sections.Store) {
		s.Update(sections.DailyVerse, func(st *sections.Settings) {
			st.SetDisabled(false)
			st.SetChannel("#general")
			st.SetTime(7, 30, 0)
			st.SetUsername("Daily Verse")
		})
	}

	t.Run("posts at the scheduled second", func(t *testing.T) {
		d, posts := setup(enabled, fakeSource{text: "verse"})
		if err := d.Poll(context.Background()); err != nil {
			t.Fatal(err)
		}
		if len(*posts) != 1 {
			t.Fatalf("expected one post, got %d", len(*posts))
		}
		p := (*posts)[0]
		if p.channel != "#general" || p.text != "verse" || p.id.Username != "Daily Verse" {
			t.Errorf("unexpected post %+v", p)
		}
	})

	t.Run("skips when disabled", func(t *testing.T) {
		d, posts := setup(func(s *sections.Store) {
			enabled(s)
			s.Update(sections.DailyVerse, func(st *sections.Settings) { st.SetDisabled(true) })
		}, fakeSource{text: "verse"})
		d.Poll(context.Background())
		if len(*posts) != 0 {
			t.Errorf("expected no post, got %+v", *posts)
		}
	})

	t.Run("skips without section", func(t *testing.T) {
		d, posts := setup(func(*sections.Store) {}, fakeSource{text: "verse"})
		d.Poll(context.Background())
		if len(*posts) != 0 {
			t.Errorf("expected no post, got %+v", *posts)
		}
	})

	t.Run("skips without channel", func(t *testing.T) {
		d, posts := setup(func(s *sections.Store) {
			s.Update(sections.DailyVerse, func(st *sections.Settings) {
				st.SetDisabled(false)
				st.SetTime(7, 30, 0)
			})
		}, fakeSource{text: "verse"})
		d.Poll(context.Background())
		if len(*posts) != 0 {
			t.Errorf("expected no post, got %+v", *posts)
		}
	})

	t.Run("skips at other times", func(t *testing.T) {
		d, posts := setup(enabled, fakeSource{text: "verse"})
		d.now = func() time.Time { return at.Add(time.Second) }
		d.Poll(context.Background())
		if len(*posts) != 0 {
			t.Errorf("expected no post, got %+v", *posts)
		}
	})

	t.Run("uses the default time", func(t *testing.T) {
		d, posts := setup(func(s *sections.Store) {
			s.Update(sections.DailyVerse, func(st *sections.Settings) { st.SetChannel("#general") })
		}, fakeSource{text: "verse"})
		d.now = func() time.Time { return time.Date(2024, 1, 1, 6, 0, 0, 0, time.Local) }
		d.Poll(context.Background())
		if len(*posts) != 1 {
			t.Errorf("expected a post at 6:00:00, got %d", len(*posts))
		}
	})

	t.Run("not found is silent", func(t *testing.T) {
		d, posts := setup(enabled, fakeSource{err: esv.ErrNotFound})
		if err := d.Poll(context.Background()); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
		if len(*posts) != 0 {
			t.Errorf("expected no post, got %+v", *posts)
		}
	})

	t.Run("lookup failure is returned", func(t *testing.T) {
		boom := errors.New("connection refused")
		d, _ := setup(enabled, fakeSource{err: boom})
		if err := d.Poll(context.Background()); !errors.Is(err, boom) {
			t.Errorf("expected wrapped lookup error, got %v", err)
		}
	})

	t.Run("post failure is returned", func(t *testing.T) {
		boom := errors.New("channel_not_found")
		store := sections.NewStore(nil)
		enabled(store)
		d := New(store, fakeSource{text: "verse"}, func(context.Context, string, string, sections.Identity) error {
			return boom
		})
		d.now = func() time.Time { return at }
		if err := d.Poll(context.Background()); !errors.Is(err, boom) {
			t.Errorf("expected wrapped post error, got %v", err)
		}
	})
}

func TestPollCountsFailedPostOnce(t *testing.T) {
	telemetry.Init()

	store := sections.NewStore(nil)
	store.Update(sections.DailyVerse, func(st *sections.Settings) {
		st.SetDisabled(false)
		st.SetChannel("#general")
	})
	b := bot.New(failingPoster{}, bot.HandlerFunc(func(context.Context, bot.Message, bot.Responder) {}),
		func(string, ...interface{}) {})
	d := New(store, fakeSource{text: "verse"}, b.Post)
	d.now = func() time.Time { return time.Date(2024, 1, 1, 6, 0, 0, 0, time.Local) }

	before := testutil.ToFloat64(telemetry.PostsFailed)
	if err := d.Poll(context.Background()); err == nil {
		t.Fatal("expected the post error")
	}
	if delta := testutil.ToFloat64(telemetry.PostsFailed) - before; delta != 1 {
		t.Errorf("expected: %v\nactual:%v", 1, delta)
	}
}
