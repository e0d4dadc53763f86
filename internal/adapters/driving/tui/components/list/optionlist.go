// Package list provides list display components for the TUI.
package list

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/menumem/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/menumem/internal/adapters/driving/tui/styles"
)

// OptionList displays quiz options with a cursor and pick marks.
// In single mode picking an option clears the previous pick.
type OptionList struct {
	options  []string
	picked   []bool
	multi    bool
	selected int
	revealed map[string]bool
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	width    int
}

// NewOptionList creates an empty option list.
func NewOptionList(s *styles.Styles, km *keymap.KeyMap) *OptionList {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &OptionList{styles: s, keymap: km, width: 80}
}

// SetOptions replaces the options and clears picks and grading.
func (o *OptionList) SetOptions(options []string, multi bool) {
	o.options = options
	o.picked = make([]bool, len(options))
	o.multi = multi
	o.selected = 0
	o.revealed = nil
}

// Init initialises the list.
func (o *OptionList) Init() tea.Cmd {
	return nil
}

// Update handles navigation and picking. Keys are ignored once the
// answer has been revealed.
func (o *OptionList) Update(msg tea.Msg) (*OptionList, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || o.Revealed() {
		return o, nil
	}

	k := keyMsg.String()
	switch {
	case keymap.Matches(k, o.keymap.Up):
		o.MoveUp()
	case keymap.Matches(k, o.keymap.Down):
		o.MoveDown()
	case keymap.Matches(k, o.keymap.Toggle):
		o.Toggle()
	}
	return o, nil
}

// Toggle flips the pick on the option under the cursor.
func (o *OptionList) Toggle() {
	if len(o.options) == 0 {
		return
	}
	if !o.multi {
		was := o.picked[o.selected]
		for i := range o.picked {
			o.picked[i] = false
		}
		o.picked[o.selected] = !was
		return
	}
	o.picked[o.selected] = !o.picked[o.selected]
}

// Picked returns the picked options in display order.
func (o *OptionList) Picked() []string {
	out := make([]string, 0, len(o.options))
	for i, p := range o.picked {
		if p {
			out = append(out, o.options[i])
		}
	}
	return out
}

// Reveal marks the correct options; View then grades every row.
func (o *OptionList) Reveal(correct []string) {
	o.revealed = make(map[string]bool, len(correct))
	for _, c := range correct {
		o.revealed[c] = true
	}
}

// Revealed reports whether the answer is being shown.
func (o *OptionList) Revealed() bool {
	return o.revealed != nil
}

// View renders one row per option.
//
//	> [x] flour        cursor on a picked option
//	  [ ] cheese   ✗   after reveal: picked but wrong
func (o *OptionList) View() string {
	if len(o.options) == 0 {
		return o.styles.Muted.Render("No options")
	}

	lines := make([]string, 0, len(o.options))
	for i, opt := range o.options {
		lines = append(lines, o.renderOption(i, opt))
	}
	return strings.Join(lines, "\n")
}

func (o *OptionList) renderOption(i int, opt string) string {
	cursor := "  "
	if i == o.selected && !o.Revealed() {
		cursor = "> "
	}

	box := "( )"
	if o.multi {
		box = "[ ]"
	}
	if o.picked[i] {
		box = "(•)"
		if o.multi {
			box = "[x]"
		}
	}

	label := truncate(opt, o.width-12)
	row := cursor + box + " " + label

	if !o.Revealed() {
		switch {
		case i == o.selected:
			return o.styles.Selected.Render(row)
		case o.picked[i]:
			return o.styles.Checked.Render(row)
		default:
			return o.styles.Normal.Render(row)
		}
	}

	correct := o.revealed[opt]
	switch {
	case correct && o.picked[i]:
		return o.styles.Correct.Render(row + "  ✓")
	case correct:
		return o.styles.Correct.Render(row + "  (missed)")
	case o.picked[i]:
		return o.styles.Incorrect.Render(row + "  ✗")
	default:
		return o.styles.Muted.Render(row)
	}
}

// MoveUp moves the cursor up.
func (o *OptionList) MoveUp() {
	if o.selected > 0 {
		o.selected--
	}
}

// MoveDown moves the cursor down.
func (o *OptionList) MoveDown() {
	if o.selected < len(o.options)-1 {
		o.selected++
	}
}

// Selected returns the cursor position.
func (o *OptionList) Selected() int {
	return o.selected
}

// Multi reports whether several options may be picked.
func (o *OptionList) Multi() bool {
	return o.multi
}

// SetWidth sets the rendering width.
func (o *OptionList) SetWidth(width int) {
	o.width = width
}

// Count returns the number of options.
func (o *OptionList) Count() int {
	return len(o.options)
}

// truncate shortens s to limit runes, marking the cut with "...".
func truncate(s string, limit int) string {
	if limit < 10 {
		limit = 10
	}
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-3]) + "..."
}
