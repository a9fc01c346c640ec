// Package ui styles CLI output with lipgloss.
//
// [Palette] holds the named styles (title, ok, error, warning, help) used for headings and status lines.
// Styled text degrades to plain text when the output is not a terminal, so piped output and tests see no escape codes.
package ui
