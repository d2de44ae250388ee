package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette
var (
	Primary   = lipgloss.Color("#8B5CF6") // Vivid Purple
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F97316") // Orange
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
)

// Palette groups the styles used by the console session.
type Palette struct {
	Title     lipgloss.Style
	Question  lipgloss.Style
	Prompt    lipgloss.Style
	Correct   lipgloss.Style
	Incorrect lipgloss.Style
	Warning   lipgloss.Style
	Hint      lipgloss.Style
	BoxName   lipgloss.Style
	BoxCount  lipgloss.Style
}

// Default returns the colored palette.
func Default() Palette {
	return Palette{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary),

		Question: lipgloss.NewStyle().
			Bold(true).
			Foreground(Text),

		Prompt: lipgloss.NewStyle().
			Foreground(Secondary),

		Correct: lipgloss.NewStyle().
			Foreground(Success).
			Bold(true),

		Incorrect: lipgloss.NewStyle().
			Foreground(Error).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(Accent),

		Hint: lipgloss.NewStyle().
			Foreground(TextDim).
			Italic(true),

		BoxName: lipgloss.NewStyle().
			Foreground(TextDim),

		BoxCount: lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true),
	}
}

// Plain returns a palette that renders text unchanged.
func Plain() Palette {
	s := lipgloss.NewStyle()
	return Palette{
		Title:     s,
		Question:  s,
		Prompt:    s,
		Correct:   s,
		Incorrect: s,
		Warning:   s,
		Hint:      s,
		BoxName:   s,
		BoxCount:  s,
	}
}

// For returns Default when color is true and Plain otherwise.
func For(color bool) Palette {
	if color {
		return Default()
	}
	return Plain()
}
