package sections

import (
	"strconv"
	"strings"
)

// Settings is the record stored for Versebot and DailyVerse. A nil field
// has never been set.
type Settings struct {
	Disabled  *bool   `yaml:"disabled,omitempty"`
	Username  *string `yaml:"username,omitempty"`
	IconURL   *string `yaml:"icon_url,omitempty"`
	IconEmoji *string `yaml:"icon_emoji,omitempty"`

	// Only meaningful for DailyVerse.
	Channel *string `yaml:"channel,omitempty"`
	Hour    *int    `yaml:"hour,omitempty"`
	Minute  *int    `yaml:"minute,omitempty"`
	Second  *int    `yaml:"second,omitempty"`
}

// Credentials is the record stored for the Slack section.
type Credentials struct {
	Token *string `yaml:"token,omitempty"`
}

// Pair is a stored key and its printable value.
type Pair struct {
	Key   string
	Value string
}

// SetDisabled stores the disabled flag.
func (s *Settings) SetDisabled(v bool) { s.Disabled = &v }

// SetUsername stores the posting name.
func (s *Settings) SetUsername(v string) { s.Username = &v }

// SetIconURL stores an image icon.
func (s *Settings) SetIconURL(v string) { s.IconURL = &v }

// SetIconEmoji stores an emoji icon, wrapping it in colons if needed.
func (s *Settings) SetIconEmoji(v string) {
	v = NormalizeEmoji(v)
	s.IconEmoji = &v
}

// SetChannel stores the channel the daily verse is posted to.
func (s *Settings) SetChannel(v string) { s.Channel = &v }

// SetTime stores the raw posting time. Values are reduced when read back
// through Schedule, not here.
func (s *Settings) SetTime(hour, minute, second int) {
	s.Hour, s.Minute, s.Second = &hour, &minute, &second
}

// IsDisabled reports the stored flag; an unset flag means enabled.
func (s Settings) IsDisabled() bool {
	return s.Disabled != nil && *s.Disabled
}

// Pairs lists the stored keys in a fixed order.
func (s Settings) Pairs() []Pair {
	var pairs []Pair
	addString := func(key string, v *string) {
		if v != nil {
			pairs = append(pairs, Pair{key, *v})
		}
	}
	addInt := func(key string, v *int) {
		if v != nil {
			pairs = append(pairs, Pair{key, strconv.Itoa(*v)})
		}
	}

	if s.Disabled != nil {
		pairs = append(pairs, Pair{"disabled", strconv.FormatBool(*s.Disabled)})
	}
	addString("username", s.Username)
	addString("icon_url", s.IconURL)
	addString("icon_emoji", s.IconEmoji)
	addString("channel", s.Channel)
	addInt("hour", s.Hour)
	addInt("minute", s.Minute)
	addInt("second", s.Second)
	return pairs
}

// Pairs lists the stored credential keys.
func (c Credentials) Pairs() []Pair {
	if c.Token == nil {
		return nil
	}
	return []Pair{{"token", *c.Token}}
}

// NormalizeEmoji wraps v in colons. Already wrapped values are unchanged.
func NormalizeEmoji(v string) string {
	if !strings.HasPrefix(v, ":") {
		v = ":" + v
	}
	if len(v) == 1 || !strings.HasSuffix(v, ":") {
		v += ":"
	}
	return v
}
