// Package status provides the status bar shown under every view.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/menumem/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/menumem/internal/adapters/driving/tui/styles"
)

// State represents what the learner is doing, for display.
type State string

const (
	StateReady     State = "ready"
	StateLoading   State = "loading"
	StateAnswering State = "answering"
	StateReviewing State = "reviewing"
	StateFinished  State = "finished"
	StateError     State = "error"
)

// Bar displays progress, score and keybinding hints.
type Bar struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	state    State
	message  string
	question int
	total    int
	score    int
	answered int
	width    int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		width:  80,
	}
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	inner := s.width - s.styles.StatusBar.GetHorizontalFrameSize()
	padding := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (s *Bar) renderLeft() string {
	switch s.state {
	case StateLoading:
		return s.styles.Muted.Render("Generating quiz...")
	case StateError:
		if s.message != "" {
			return s.styles.Error.Render("Error: " + s.message)
		}
		return s.styles.Error.Render("Error")
	case StateAnswering, StateReviewing:
		return s.styles.Normal.Render(fmt.Sprintf("Question %d of %d · Score %d/%d",
			s.question, s.total, s.score, s.answered))
	case StateFinished:
		return s.styles.Normal.Render(fmt.Sprintf("Finished · Score %d/%d", s.score, s.answered))
	default:
		if s.message != "" {
			return s.styles.Muted.Render(s.message)
		}
		return s.styles.Muted.Render("Ready")
	}
}

func (s *Bar) renderRight() string {
	var bindings []key.Binding
	switch s.state {
	case StateAnswering:
		bindings = s.keymap.AnswerHelp()
	case StateReviewing:
		bindings = s.keymap.ReviewHelp()
	default:
		bindings = s.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets the text shown in the ready and error states.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// SetProgress sets the 1-based question number and the quiz length.
func (s *Bar) SetProgress(question, total int) {
	s.question = question
	s.total = total
}

// SetScore sets the number of correct answers out of those answered.
func (s *Bar) SetScore(score, answered int) {
	s.score = score
	s.answered = answered
}

// Score returns the correct and answered counts.
func (s *Bar) Score() (score, answered int) {
	return s.score, s.answered
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Clear resets the status bar to default state.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
	s.question, s.total = 0, 0
	s.score, s.answered = 0, 0
}
