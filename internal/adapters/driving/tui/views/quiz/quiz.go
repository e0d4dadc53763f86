// Package quiz provides the interactive quiz view: one question at a
// time, graded on submit, with a running score.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/menumem/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/menumem/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/menumem/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/menumem/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/menumem/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/menumem/internal/core/domain"
	"github.com/custodia-labs/menumem/internal/core/ports/driving"
)

// Phase is the state of a quiz session.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseAnswering
	PhaseReviewing
	PhaseFinished
	PhaseError
)

// View runs a quiz session.
type View struct {
	styles      *styles.Styles
	keymap      *keymap.KeyMap
	quizService driving.QuizService
	opts        domain.QuizOptions
	ctx         context.Context

	questions []domain.QuizQuestion
	current   int
	phase     Phase
	options   *list.OptionList
	bar       *status.Bar
	score     int
	answered  int
	correct   bool
	err       error
	width     int
	height    int
}

// NewView creates a quiz view that draws questions from quizService.
func NewView(s *styles.Styles, quizService driving.QuizService, opts domain.QuizOptions) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	km := keymap.DefaultKeyMap()

	return &View{
		styles:      s,
		keymap:      km,
		quizService: quizService,
		opts:        opts,
		ctx:         context.Background(),
		options:     list.NewOptionList(s, km),
		bar:         status.NewBar(s, km),
		width:       80,
		height:      24,
	}
}

// SetContext sets the context used for quiz generation.
func (v *View) SetContext(ctx context.Context) {
	v.ctx = ctx
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Start resets the session and generates a new quiz.
func (v *View) Start() tea.Cmd {
	v.questions = nil
	v.current = 0
	v.score, v.answered = 0, 0
	v.err = nil
	v.phase = PhaseLoading
	v.bar.Clear()
	v.bar.SetState(status.StateLoading)
	return v.load()
}

func (v *View) load() tea.Cmd {
	quizService, ctx, opts := v.quizService, v.ctx, v.opts
	return func() tea.Msg {
		if quizService == nil {
			return messages.QuizLoaded{Err: errors.New("quiz service not available")}
		}
		qs, err := quizService.Generate(ctx, opts)
		return messages.QuizLoaded{Questions: qs, Err: err}
	}
}

// Update handles messages for the quiz view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.QuizLoaded:
		v.handleLoaded(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.fail(msg.Err)
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *View) handleLoaded(msg messages.QuizLoaded) {
	if msg.Err != nil {
		v.fail(msg.Err)
		return
	}
	v.questions = msg.Questions
	if len(v.questions) == 0 {
		v.phase = PhaseFinished
		v.bar.SetState(status.StateReady)
		v.bar.SetMessage("No dishes stored")
		return
	}
	v.show(0)
}

func (v *View) fail(err error) {
	v.err = err
	v.phase = PhaseError
	v.bar.SetState(status.StateError)
	v.bar.SetMessage(err.Error())
}

func (v *View) show(i int) {
	q := v.questions[i]
	v.current = i
	v.phase = PhaseAnswering
	v.options.SetOptions(q.Options, q.Kind == domain.KindMultiSelect)
	v.bar.SetState(status.StateAnswering)
	v.bar.SetProgress(i+1, len(v.questions))
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()
	if keymap.Matches(k, v.keymap.Back) {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	switch v.phase {
	case PhaseAnswering:
		if keymap.Matches(k, v.keymap.Submit) {
			v.submit()
			return v, nil
		}
		var cmd tea.Cmd
		v.options, cmd = v.options.Update(msg)
		return v, cmd

	case PhaseReviewing:
		if keymap.Matches(k, v.keymap.Next) {
			v.next()
		}

	case PhaseFinished, PhaseError:
		if keymap.Matches(k, v.keymap.Restart) {
			return v, v.Start()
		}

	case PhaseLoading:
	}
	return v, nil
}

// submit grades the current question. A single-select question with
// nothing picked takes the option under the cursor.
func (v *View) submit() {
	q := v.questions[v.current]
	if !v.options.Multi() && len(v.options.Picked()) == 0 {
		v.options.Toggle()
	}

	v.correct = q.IsCorrect(v.options.Picked())
	v.answered++
	if v.correct {
		v.score++
	}
	v.options.Reveal(q.Answers())
	v.phase = PhaseReviewing
	v.bar.SetState(status.StateReviewing)
	v.bar.SetScore(v.score, v.answered)
}

func (v *View) next() {
	if v.current+1 < len(v.questions) {
		v.show(v.current + 1)
		return
	}
	v.phase = PhaseFinished
	v.bar.SetState(status.StateFinished)
}

// View renders the quiz.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Quiz"))
	b.WriteString("\n\n")

	switch v.phase {
	case PhaseLoading:
		b.WriteString(v.styles.Muted.Render("Generating quiz..."))

	case PhaseError:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err)))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("[r] retry  [esc] back"))

	case PhaseFinished:
		b.WriteString(v.renderSummary())

	case PhaseAnswering, PhaseReviewing:
		b.WriteString(v.renderQuestion())
	}

	b.WriteString("\n\n")
	b.WriteString(v.bar.View())
	return b.String()
}

func (v *View) renderQuestion() string {
	q := v.questions[v.current]

	var card strings.Builder
	card.WriteString(v.styles.Subtitle.Render(q.Prompt))
	card.WriteString("\n")
	if q.Kind == domain.KindMultiSelect {
		card.WriteString(v.styles.Muted.Render("Pick every ingredient."))
	} else {
		card.WriteString(v.styles.Muted.Render("Pick one."))
	}
	card.WriteString("\n\n")
	card.WriteString(v.options.View())

	var b strings.Builder
	b.WriteString(v.styles.Card.Render(card.String()))

	if v.phase == PhaseReviewing {
		b.WriteString("\n\n")
		if v.correct {
			b.WriteString(v.styles.Correct.Render("Correct!"))
		} else {
			b.WriteString(v.styles.Incorrect.Render("Not quite. Answer: " + strings.Join(q.Answers(), ", ")))
		}
	}
	return b.String()
}

func (v *View) renderSummary() string {
	if len(v.questions) == 0 {
		return v.styles.Muted.Render("No dishes stored yet. Run 'menumem ingest' first.") +
			"\n\n" + v.styles.Help.Render("[r] retry  [esc] back")
	}

	pct := 100 * v.score / v.answered
	var b strings.Builder
	b.WriteString(v.styles.Subtitle.Render(fmt.Sprintf("You scored %d out of %d (%d%%)", v.score, v.answered, pct)))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[r] new quiz  [esc] back"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.options.SetWidth(width)
	v.bar.SetWidth(width)
}

// Phase returns the session state.
func (v *View) Phase() Phase {
	return v.phase
}

// Score returns the correct and answered counts.
func (v *View) Score() (score, answered int) {
	return v.score, v.answered
}

// Current returns the index of the question being shown.
func (v *View) Current() int {
	return v.current
}

// LastCorrect reports whether the most recent answer was right.
func (v *View) LastCorrect() bool {
	return v.correct
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
