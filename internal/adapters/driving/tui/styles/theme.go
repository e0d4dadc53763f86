// Package styles provides colour themes and styling for the quiz TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colour palette for the TUI.
type Theme struct {
	// Primary is the main accent colour.
	Primary lipgloss.Color

	// Secondary is used for section headers and categories.
	Secondary lipgloss.Color

	// Foreground is the default text colour.
	Foreground lipgloss.Color

	// Muted is for less important text.
	Muted lipgloss.Color

	// Correct marks right answers.
	Correct lipgloss.Color

	// Incorrect marks wrong answers.
	Incorrect lipgloss.Color

	// Warning indicates caution.
	Warning lipgloss.Color

	// Border is the border colour.
	Border lipgloss.Color

	// Bar is the status bar background.
	Bar lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#E8A33D"), // Saffron
		Secondary:  lipgloss.Color("#5FB3A1"), // Mint
		Foreground: lipgloss.Color("#E6E1D6"), // Cream
		Muted:      lipgloss.Color("#7D766A"), // Taupe
		Correct:    lipgloss.Color("#8CC084"), // Basil
		Incorrect:  lipgloss.Color("#E0705F"), // Paprika
		Warning:    lipgloss.Color("#F2D06B"), // Lemon
		Border:     lipgloss.Color("#4A453E"),
		Bar:        lipgloss.Color("#221F1B"),
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style

	// Selected highlights the row under the cursor.
	Selected lipgloss.Style

	// Checked renders options the learner has picked.
	Checked lipgloss.Style

	// Correct and Incorrect render graded answers.
	Correct   lipgloss.Style
	Incorrect lipgloss.Style

	Error   lipgloss.Style
	Warning lipgloss.Style

	// InputField frames text inputs.
	InputField lipgloss.Style

	StatusBar lipgloss.Style
	Help      lipgloss.Style

	// Card frames the current question.
	Card lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		Subtitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Secondary),

		Normal: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		Checked: lipgloss.NewStyle().
			Foreground(theme.Secondary),

		Correct: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Correct),

		Incorrect: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Incorrect),

		Error: lipgloss.NewStyle().
			Foreground(theme.Incorrect),

		Warning: lipgloss.NewStyle().
			Foreground(theme.Warning),

		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(theme.Bar).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Card: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 2),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}
