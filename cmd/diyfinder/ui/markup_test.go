package ui

import (
	"strings"
	"testing"
)

// Styles render without ANSI sequences when no terminal profile is
// active, so these tests assert on the text content.

func TestMarkupBreaksAndBullets(t *testing.T) {
	t.Parallel()
	s := NewStyles(LightTheme())

	got := s.Markup("• a<br>• b")
	if got != "• a\n• b" {
		t.Errorf("Markup = %q, want bullets joined by newline", got)
	}
}

func TestMarkupStripsTags(t *testing.T) {
	t.Parallel()
	s := NewStyles(LightTheme())

	got := s.Markup("You have <strong>5</strong> and <em>two</em> more")
	if strings.Contains(got, "<strong>") || strings.Contains(got, "<em>") {
		t.Errorf("tags must not leak into terminal output: %q", got)
	}
	if !strings.Contains(got, "5") || !strings.Contains(got, "two") {
		t.Errorf("styled content lost: %q", got)
	}
}

func TestMarkupUnescapesEntities(t *testing.T) {
	t.Parallel()
	s := NewStyles(LightTheme())

	if got := s.Markup("a &lt;tag&gt; &amp; more"); got != "a <tag> & more" {
		t.Errorf("Markup = %q, want entities unescaped", got)
	}
}

func TestUnescapeSingleCollapse(t *testing.T) {
	t.Parallel()
	if got := unescapeEntities("&amp;lt;"); got != "&lt;" {
		t.Errorf("unescapeEntities(%q) = %q, want %q", "&amp;lt;", got, "&lt;")
	}
}

func TestThemeByName(t *testing.T) {
	t.Parallel()
	if !ThemeByName("dark").IsDark {
		t.Error("ThemeByName(dark) must be dark")
	}
	if ThemeByName("light").IsDark {
		t.Error("ThemeByName(light) must be light")
	}
}
