package scripture

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Reference is an extracted reference split into its parts.
//
//nolint:govet // participle grammar tags are not standard struct tags
type Reference struct {
	Number  string  `@Int?`
	Book    string  `@Book`
	Chapter int     `@Int ":"`
	Verses  []*Span `@@ ( "," @@ )*`
}

// Span is a single verse or a verse range.
//
//nolint:govet // participle grammar tags are not standard struct tags
type Span struct {
	Start int  `@Int`
	End   *int `( "-" @Int )?`
}

var referenceLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Book", Pattern: `[A-Za-z]+`},
	{Name: "Punct", Pattern: `[:,\-]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var referenceParser = participle.MustBuild[Reference](
	participle.Lexer(referenceLexer),
	participle.Elide("Whitespace"),
)

// Parse splits a reference such as "2Timothy1:7-9,12" into its parts.
func Parse(ref string) (*Reference, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("empty reference")
	}
	parsed, err := referenceParser.ParseString("", ref)
	if err != nil {
		return nil, fmt.Errorf("invalid reference %q: %w", ref, err)
	}
	return parsed, nil
}

// String formats the reference the way people write it: "2 Timothy 1:7-9,12".
func (r *Reference) String() string {
	var sb strings.Builder
	if r.Number != "" {
		sb.WriteString(r.Number)
		sb.WriteString(" ")
	}
	sb.WriteString(r.Book)
	sb.WriteString(" ")
	sb.WriteString(strconv.Itoa(r.Chapter))
	sb.WriteString(":")
	for i, v := range r.Verses {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(strconv.Itoa(v.Start))
		if v.End != nil {
			sb.WriteString("-")
			sb.WriteString(strconv.Itoa(*v.End))
		}
	}
	return sb.String()
}
