package sections

import (
	"context"
	"errors"
	"testing"
)

type memPersister struct {
	snap  Snapshot
	saves int
	err   error
}

func (m *memPersister) Load(context.Context) (Snapshot, error) { return m.snap, m.err }

func (m *memPersister) Save(_ context.Context, snap Snapshot) error {
	if m.err != nil {
		return m.err
	}
	m.saves++
	m.snap = snap
	return nil
}

func TestStoreDisabled(t *testing.T) {
	s := NewStore(nil)

	t.Run("missing section is disabled", func(t *testing.T) {
		if !s.Disabled(Versebot) {
			t.Error("expected missing section to be disabled")
		}
	})

	t.Run("section without flag is enabled", func(t *testing.T) {
		s.Add(Versebot)
		if s.Disabled(Versebot) {
			t.Error("expected section without disabled key to be enabled")
		}
	})

	t.Run("flag is honoured", func(t *testing.T) {
		s.Update(Versebot, func(st *Settings) { st.SetDisabled(true) })
		if !s.Disabled(Versebot) {
			t.Error("expected disabled=true to disable the section")
		}
	})
}

func TestStoreReset(t *testing.T) {
	s := NewStore(nil)
	s.Update(DailyVerse, func(st *Settings) {
		st.SetDisabled(false)
		st.SetUsername("Verse Bot")
		st.SetIconURL("http://x/y.png")
		st.SetChannel("#general")
		st.SetTime(7, 30, 0)
	})

	if err := s.Reset(DailyVerse); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	pairs := s.Pairs(DailyVerse)
	if len(pairs) != 1 || pairs[0] != (Pair{"disabled", "true"}) {
		t.Errorf("expected only disabled=true after reset, got %v", pairs)
	}
	if id := s.Identity(DailyVerse); !id.IsDefault() {
		t.Errorf("expected default identity after reset, got %+v", id)
	}
	if s.Channel() != "" {
		t.Errorf("expected no channel after reset, got %q", s.Channel())
	}
}

func TestStoreIdentity(t *testing.T) {
	s := NewStore(nil)

	if id := s.Identity(Versebot); !id.IsDefault() {
		t.Errorf("expected default identity for missing section, got %+v", id)
	}

	s.Update(Versebot, func(st *Settings) {
		st.SetUsername("Verse Bot")
		emoji := "book"
		st.IconEmoji = &emoji
	})
	id := s.Identity(Versebot)
	if id.Username != "Verse Bot" {
		t.Errorf("expected: %q\nactual:%q", "Verse Bot", id.Username)
	}
	if id.IconEmoji != ":book:" {
		t.Errorf("expected unwrapped emoji to be wrapped, got %q", id.IconEmoji)
	}

	s.Update(Versebot, func(st *Settings) { st.SetIconURL("http://x/y.png") })
	id = s.Identity(Versebot)
	expected := Identity{Username: "Verse Bot", IconURL: "http://x/y.png"}
	if id != expected {
		t.Errorf("expected: %+v\nactual:%+v", expected, id)
	}
}

func TestStoreUpdateUnknown(t *testing.T) {
	s := NewStore(nil)
	err := s.Update(Slack, func(*Settings) {})
	if !errors.Is(err, ErrUnknownSection) {
		t.Errorf("expected ErrUnknownSection, got %v", err)
	}
}

func TestStoreSections(t *testing.T) {
	token := "xoxb-1"
	p := &memPersister{snap: Snapshot{
		Slack:      &Credentials{Token: &token},
		DailyVerse: &Settings{},
	}}
	s, err := Load(context.Background(), p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	got := s.Sections()
	if len(got) != 2 || got[0] != DailyVerse || got[1] != Slack {
		t.Errorf("unexpected sections: %v", got)
	}
	if s.Token() != token {
		t.Errorf("expected: %q\nactual:%q", token, s.Token())
	}

	s.Add(Versebot)
	got = s.Sections()
	if len(got) != 3 || got[0] != Versebot {
		t.Errorf("expected versebot first after Add, got %v", got)
	}
}

func TestStorePersist(t *testing.T) {
	p := &memPersister{}
	s := NewStore(p)
	s.Update(Versebot, func(st *Settings) { st.SetDisabled(false) })

	if err := s.Persist(context.Background()); err != nil {
		t.Fatalf("Persist: %v", err)
	}
	if p.saves != 1 || p.snap.Versebot == nil {
		t.Errorf("expected one save holding versebot, got %d saves, %+v", p.saves, p.snap)
	}

	p.err = errors.New("disk full")
	err := s.Persist(context.Background())
	if !errors.Is(err, p.err) || !errors.Is(err, ErrPersist) {
		t.Errorf("expected wrapped save error, got %v", err)
	}
}

func TestSchedule(t *testing.T) {
	tests := []struct {
		name     string
		h, m, s  int
		expected Schedule
	}{
		{"in range", 7, 30, 15, Schedule{7, 30, 15}},
		{"overflow", 25, 61, 120, Schedule{1, 1, 0}},
		{"negative", -1, -1, -61, Schedule{23, 59, 59}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var st Settings
			st.SetTime(tt.h, tt.m, tt.s)
			if got := st.Schedule(); got != tt.expected {
				t.Errorf("expected: %v\nactual:%v", tt.expected, got)
			}
		})
	}

	t.Run("defaults", func(t *testing.T) {
		var st Settings
		if got := st.Schedule(); got != (Schedule{DefaultHour, 0, 0}) {
			t.Errorf("expected defaults, got %v", got)
		}
	})
}

func TestNormalizeEmoji(t *testing.T) {
	tests := map[string]string{
		"smile":   ":smile:",
		":smile:": ":smile:",
		":smile":  ":smile:",
		"smile:":  ":smile:",
		"":        "::",
	}
	for in, expected := range tests {
		if got := NormalizeEmoji(in); got != expected {
			t.Errorf("NormalizeEmoji(%q): expected %q, got %q", in, expected, got)
		}
	}
}

func TestParse(t *testing.T) {
	for _, sec := range All() {
		got, err := Parse(sec.String())
		if err != nil || got != sec {
			t.Errorf("Parse(%q) = %v, %v", sec.String(), got, err)
		}
	}
	if _, err := Parse("nope"); !errors.Is(err, ErrUnknownSection) {
		t.Errorf("expected ErrUnknownSection, got %v", err)
	}
}
