// Package scripture finds scripture references in chat text.
package scripture

import (
	"regexp"
	"strings"
)

var (
	songOfSolomonRE = regexp.MustCompile(`(?i)solomon`)
	chapterVerseRE  = regexp.MustCompile(`^[0-9]+:[0-9\-,]+$`)
	joinedRE        = regexp.MustCompile(`^[A-Za-z]+[0-9]+:[0-9\-,]+$`)
	bookRE          = regexp.MustCompile(`^[A-Za-z]+$`)
	bookNumberRE    = regexp.MustCompile(`^[1-3]$`)
)

// Extract returns the first reference found in text, e.g. "John3:16" for
// "John 3:16 is great" or "2Timothy1:7" for "read 2 Timothy 1:7 now".
//
// Book names are not checked against a canon; any word in front of a
// chapter:verse token is taken as the book.
func Extract(text string) (string, bool) {
	words := split(songOfSolomonRE.ReplaceAllString(text, "songs"))

	for i, w := range words {
		if chapterVerseRE.MatchString(w) {
			if i == 0 || !bookRE.MatchString(words[i-1]) {
				continue
			}
			if i >= 2 && bookNumberRE.MatchString(words[i-2]) {
				return words[i-2] + words[i-1] + w, true
			}
			return words[i-1] + w, true
		}

		if joinedRE.MatchString(w) {
			return w, true
		}
	}
	return "", false
}

func split(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		switch r {
		case ' ', '\t', '\n', '\r', '.', ';', '?', '!':
			return true
		}
		return false
	})
}
