package command

import (
	"regexp"
	"strings"
)

// <#C024BE91L|general> or <#C024BE91L>
var channelMentionRE = regexp.MustCompile(`^<#([A-Za-z0-9]+)(?:\|([^>]*))?>$`)

// NormalizeChannel rewrites a channel mention to "#name" and prefixes bare
// names with "#". A mention without a name is reduced to the channel ID,
// which Slack accepts as a post target.
func NormalizeChannel(v string) string {
	if m := channelMentionRE.FindStringSubmatch(v); m != nil {
		if m[2] == "" {
			return m[1]
		}
		v = m[2]
	}
	if !strings.HasPrefix(v, "#") {
		v = "#" + v
	}
	return v
}
