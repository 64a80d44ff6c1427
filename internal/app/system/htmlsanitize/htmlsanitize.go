// Package htmlsanitize cleans text before it reaches the view surface.
// It uses bluemonday so feed entries and card labels can never carry markup.
package htmlsanitize

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// strict removes every element and attribute.
	strict     *bluemonday.Policy
	strictOnce sync.Once
)

func strictPolicy() *bluemonday.Policy {
	strictOnce.Do(func() {
		strict = bluemonday.StrictPolicy()
	})
	return strict
}

// Text strips all markup from s and returns plain text.
//
// bluemonday escapes entities in its output; Text unescapes them again
// because the result is stored as node text and escaped once at render time.
func Text(s string) string {
	if s == "" {
		return ""
	}
	out := html.UnescapeString(strictPolicy().Sanitize(s))
	return strings.TrimSpace(collapseSpace(out))
}

// IsPlainText reports whether s contains no markup.
func IsPlainText(s string) bool {
	if s == "" {
		return true
	}
	// Valid tags need both characters.
	return !strings.Contains(s, "<") || !strings.Contains(s, ">")
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
