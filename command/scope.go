package command

import "github.com/gobridge/versebot/sections"

// Scope selects the sections a command applies to.
type Scope int

const (
	Default Scope = iota
	Daily
	All
)

var scopeNames = map[string]Scope{
	"daily": Daily,
	"all":   All,
}

func (s Scope) String() string {
	switch s {
	case Daily:
		return "daily"
	case All:
		return "all"
	}
	return "default"
}

// Sections expands s in the order responses are given.
func (s Scope) Sections() []sections.Section {
	switch s {
	case Daily:
		return []sections.Section{sections.DailyVerse}
	case All:
		return []sections.Section{sections.Versebot, sections.DailyVerse}
	}
	return []sections.Section{sections.Versebot}
}

// Primary is the first section of s.
func (s Scope) Primary() sections.Section {
	return s.Sections()[0]
}
