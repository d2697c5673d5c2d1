package tui

import (
	"strings"
	"unicode/utf8"
)

func clampString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))

	n := 0
	for _, r := range s {
		if n >= maxLen {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String() + "…"
}

func renderField(t Theme, f field, focused bool) string {
	var b strings.Builder

	label := f.label
	if focused {
		label = "▸ " + label
	} else {
		label = "  " + label
	}
	b.WriteString(t.Label.Render(label))
	b.WriteString(f.input.View())

	switch {
	case f.err != "":
		b.WriteString("\n")
		b.WriteString(t.Err.Render("    ✗ " + f.err))
	case f.ok:
		b.WriteString("  ")
		b.WriteString(t.OK.Render("✓"))
	}
	return b.String()
}
