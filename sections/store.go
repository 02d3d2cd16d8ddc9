package sections

import (
	"context"
	"errors"
	"fmt"
)

// ErrPersist wraps every error returned by Store.Persist.
var ErrPersist = errors.New("saving sections")

// Snapshot is the whole persisted state.
type Snapshot struct {
	Slack      *Credentials `yaml:"slack,omitempty"`
	Versebot   *Settings    `yaml:"versebot,omitempty"`
	DailyVerse *Settings    `yaml:"daily_verse,omitempty"`
}

// Persister loads and saves a Snapshot.
type Persister interface {
	Load(context.Context) (Snapshot, error)
	Save(context.Context, Snapshot) error
}

// Store holds the sections in memory. It is not safe for concurrent use;
// the bot processes one event at a time.
type Store struct {
	persister Persister
	snap      Snapshot
}

// NewStore creates an empty Store that saves through p.
func NewStore(p Persister) *Store {
	return &Store{persister: p}
}

// Load creates a Store populated from p.
func Load(ctx context.Context, p Persister) (*Store, error) {
	snap, err := p.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading sections: %w", err)
	}
	return &Store{persister: p, snap: snap}, nil
}

func (s *Store) slot(sec Section) **Settings {
	switch sec {
	case Versebot:
		return &s.snap.Versebot
	case DailyVerse:
		return &s.snap.DailyVerse
	}
	return nil
}

// Has reports whether sec exists.
func (s *Store) Has(sec Section) bool {
	if sec == Slack {
		return s.snap.Slack != nil
	}
	slot := s.slot(sec)
	return slot != nil && *slot != nil
}

// Settings returns a copy of the record stored for sec.
func (s *Store) Settings(sec Section) (Settings, bool) {
	slot := s.slot(sec)
	if slot == nil || *slot == nil {
		return Settings{}, false
	}
	return **slot, true
}

// Update applies fn to the record for sec, creating the section if needed.
func (s *Store) Update(sec Section, fn func(*Settings)) error {
	slot := s.slot(sec)
	if slot == nil {
		return fmt.Errorf("%w: %s has no settings", ErrUnknownSection, sec)
	}
	if *slot == nil {
		*slot = &Settings{}
	}
	fn(*slot)
	return nil
}

// Remove drops sec and everything stored in it.
func (s *Store) Remove(sec Section) {
	if sec == Slack {
		s.snap.Slack = nil
		return
	}
	if slot := s.slot(sec); slot != nil {
		*slot = nil
	}
}

// Add creates sec empty if it does not exist yet.
func (s *Store) Add(sec Section) {
	if sec == Slack {
		if s.snap.Slack == nil {
			s.snap.Slack = &Credentials{}
		}
		return
	}
	if slot := s.slot(sec); slot != nil && *slot == nil {
		*slot = &Settings{}
	}
}

// Reset recreates sec holding nothing but disabled=true.
func (s *Store) Reset(sec Section) error {
	s.Remove(sec)
	return s.Update(sec, func(st *Settings) { st.SetDisabled(true) })
}

// Disabled reports whether sec is switched off. Missing sections are off.
func (s *Store) Disabled(sec Section) bool {
	settings, ok := s.Settings(sec)
	return !ok || settings.IsDisabled()
}

// Schedule returns the normalized daily posting time.
func (s *Store) Schedule() Schedule {
	settings, _ := s.Settings(DailyVerse)
	return settings.Schedule()
}

// Channel returns the channel the daily verse goes to.
func (s *Store) Channel() string {
	settings, ok := s.Settings(DailyVerse)
	if !ok || settings.Channel == nil {
		return ""
	}
	return *settings.Channel
}

// Token returns the stored Slack token.
func (s *Store) Token() string {
	if s.snap.Slack == nil || s.snap.Slack.Token == nil {
		return ""
	}
	return *s.snap.Slack.Token
}

// Sections lists the sections that exist, in storage order.
func (s *Store) Sections() []Section {
	var out []Section
	for _, sec := range All() {
		if s.Has(sec) {
			out = append(out, sec)
		}
	}
	return out
}

// Pairs lists the keys stored in sec.
func (s *Store) Pairs(sec Section) []Pair {
	if sec == Slack {
		if s.snap.Slack == nil {
			return nil
		}
		return s.snap.Slack.Pairs()
	}
	settings, _ := s.Settings(sec)
	return settings.Pairs()
}

// Persist writes every section through the Persister.
func (s *Store) Persist(ctx context.Context) error {
	if s.persister == nil {
		return nil
	}
	if err := s.persister.Save(ctx, s.snap); err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}
