// Package esv fetches passage text from the ESV web service.
package esv

import (
	"context"
	"errors"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/gobridge/versebot/scripture"
)

// DefaultURL is the REST endpoint the query paths are resolved against.
const DefaultURL = "http://www.esvapi.org/v2/rest"

// ErrNotFound is returned when the service answers with an error message or
// an HTML page instead of passage text.
var ErrNotFound = errors.New("passage not found")

// Client is the HTTP client.
type Client interface {
	Do(r *http.Request) (*http.Response, error)
}

// ESV queries the ESV service.
type ESV struct {
	http    Client
	baseURL string
	key     string
}

// New constructs an *ESV. key is the service access key, "IP" for
// anonymous, IP-limited access.
func New(c Client, baseURL, key string) *ESV {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	return &ESV{
		http:    c,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		key:     key,
	}
}

// plainText turns off everything except the verse text itself.
func plainText() url.Values {
	return url.Values{
		"output-format":                    {"plain-text"},
		"include-footnotes":                {"0"},
		"include-short-copyright":          {"0"},
		"include-passage-horizontal-lines": {"0"},
		"include-heading-horizontal-lines": {"0"},
		"include-headings":                 {"0"},
		"include-subheadings":              {"0"},
		"include-content-type":             {"0"},
		"line-length":                      {"0"},
		"include-verse-numbers":            {"0"},
		"include-first-verse-numbers":      {"0"},
	}
}

// DailyVerse returns the text of today's verse.
func (e *ESV) DailyVerse(ctx context.Context) (string, error) {
	q := plainText()
	q.Set("include-selahs", "0")
	return e.get(ctx, "dailyVerse", q)
}

// Passage returns the text of ref, headed by the passage reference.
func (e *ESV) Passage(ctx context.Context, ref string) (string, error) {
	passage := ref
	if parsed, err := scripture.Parse(ref); err == nil {
		passage = parsed.String()
	}

	q := plainText()
	q.Set("include-passage-references", "1")
	q.Set("include-selahs", "1")
	q.Set("passage", passage)
	return e.get(ctx, "passageQuery", q)
}

// get makes an HTTP request to the method endpoint and returns the body.
func (e *ESV) get(ctx context.Context, method string, q url.Values) (string, error) {
	q.Set("key", e.key)
	u := e.baseURL + "/" + method + "?" + q.Encode()

	req, err := http.NewRequest("GET", u, nil)
	if err != nil {
		return "", fmt.Errorf("building request: %v", err)
	}
	req.Header.Add("User-Agent", "versebot")
	req = req.WithContext(ctx)

	resp, err := e.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("making http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("non-200 status code: %d - %s", resp.StatusCode, resp.Status)
	}

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response body: %w", err)
	}

	text := strings.TrimSpace(string(body))
	if text == "" || strings.Contains(text, "ERROR") || isHTMLDocument(text) {
		return "", ErrNotFound
	}
	return text, nil
}

// isHTMLDocument reports whether text contains an <html> element, which the
// service serves on failures it does not report as errors.
func isHTMLDocument(text string) bool {
	z := html.NewTokenizer(strings.NewReader(text))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return false
		case html.DoctypeToken:
			return true
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			if atom.Lookup(name) == atom.Html {
				return true
			}
		}
	}
}
