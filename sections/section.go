// Package sections holds the bot's persisted behaviour: one record per named
// section, mutated by chat commands and written back after every change.
package sections

import (
	"errors"
	"fmt"
)

// Section names a configuration bucket.
type Section int

const (
	// Versebot drives replies to references found in chat.
	Versebot Section = iota
	// DailyVerse drives the scheduled daily post.
	DailyVerse
	// Slack holds the credentials and is never shown in chat.
	Slack
)

var sectionNames = [...]string{
	Versebot:   "versebot",
	DailyVerse: "daily_verse",
	Slack:      "slack",
}

// ErrUnknownSection is returned when a section name is not one of the known sections.
var ErrUnknownSection = errors.New("unknown section")

func (s Section) String() string {
	if s < 0 || int(s) >= len(sectionNames) {
		return fmt.Sprintf("Section(%d)", int(s))
	}
	return sectionNames[s]
}

// Parse returns the Section called name.
func Parse(name string) (Section, error) {
	for i, n := range sectionNames {
		if n == name {
			return Section(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSection, name)
}

// All lists every section in storage order.
func All() []Section {
	return []Section{Versebot, DailyVerse, Slack}
}
