// Package markdown implements the lightweight transform applied to
// assistant chat replies before they enter the transcript. It is a pure,
// deterministic text substitution, not a markdown engine: bold and
// italic delimiters, newline-to-break, and leading-dash bullets.
// Numbered lines are kept as-is. Raw input is HTML-escaped first so
// assistant text can never smuggle markup into the transcript.
// Re-applying the transform to its own output is not supported.
package markdown

import (
	"regexp"
	"strings"
)

var (
	boldRe   = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicRe = regexp.MustCompile(`\*(.*?)\*`)
)

// Render applies the transform. Substitution order matters: escaping
// first, bold before italic (so ** pairs are not eaten as two italics),
// bullets per line, then lines joined with <br>.
func Render(text string) string {
	s := escape(text)
	s = boldRe.ReplaceAllString(s, "<strong>$1</strong>")
	s = italicRe.ReplaceAllString(s, "<em>$1</em>")

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if rest, ok := strings.CutPrefix(line, "- "); ok {
			lines[i] = "• " + rest
		}
	}
	return strings.Join(lines, "<br>")
}

func escape(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}
