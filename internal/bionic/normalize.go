package bionic

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var lineBreak = regexp.MustCompile(`(?i)<br\s*/?>`)

// Normalize prepares provider markup for injection: single line breaks
// become a space and the result is wrapped in one paragraph with a
// trailing space before the closing tag.
func Normalize(markup string) string {
	return "<p>" + lineBreak.ReplaceAllString(markup, " ") + " </p>"
}

// ValidateMarkup rejects responses that are not a plain HTML string.
func ValidateMarkup(markup string) error {
	if !utf8.ValidString(markup) {
		return errors.New("response is not valid UTF-8")
	}
	if strings.ContainsRune(markup, 0) {
		return errors.New("response contains NUL bytes")
	}
	trimmed := strings.TrimSpace(markup)
	if (strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[")) && json.Valid([]byte(trimmed)) {
		return errors.New("response is a JSON document, not markup")
	}
	parent := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	if _, err := html.ParseFragment(strings.NewReader(markup), parent); err != nil {
		return err
	}
	return nil
}
