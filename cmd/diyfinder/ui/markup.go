package ui

import (
	"regexp"
	"strings"
)

// The chat transcript stores assistant replies in the lightweight markup
// produced by the markdown transform (<strong>, <em>, <br>, escaped
// entities). Markup maps that to terminal styling for display; the
// stored transcript itself is never modified.

var (
	strongRe = regexp.MustCompile(`<strong>(.*?)</strong>`)
	emRe     = regexp.MustCompile(`<em>(.*?)</em>`)
)

// Markup renders transcript markup as styled terminal text.
func (s Styles) Markup(text string) string {
	out := strings.ReplaceAll(text, "<br>", "\n")

	out = strongRe.ReplaceAllStringFunc(out, func(m string) string {
		inner := strings.TrimSuffix(strings.TrimPrefix(m, "<strong>"), "</strong>")
		return s.Bold.Render(inner)
	})
	out = emRe.ReplaceAllStringFunc(out, func(m string) string {
		inner := strings.TrimSuffix(strings.TrimPrefix(m, "<em>"), "</em>")
		return s.Italic.Render(inner)
	})

	return unescapeEntities(out)
}

// unescapeEntities reverses the transform's escaping. &amp; goes last so
// a literal "&amp;lt;" cannot collapse twice.
func unescapeEntities(s string) string {
	s = strings.ReplaceAll(s, "&lt;", "<")
	s = strings.ReplaceAll(s, "&gt;", ">")
	s = strings.ReplaceAll(s, "&amp;", "&")
	return s
}
