package list

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func press(o *OptionList, keys ...string) {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case " ":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		o.Update(msg)
	}
}

func TestOptionList_Empty(t *testing.T) {
	o := NewOptionList(nil, nil)

	o.Toggle()
	assert.Empty(t, o.Picked())
	assert.Equal(t, 0, o.Count())
	assert.Contains(t, o.View(), "No options")
}

func TestOptionList_MultiSelect(t *testing.T) {
	o := NewOptionList(nil, nil)
	o.SetOptions([]string{"egg", "cheese", "flour"}, true)
	require.True(t, o.Multi())

	press(o, " ", "down", "down", " ")
	assert.Equal(t, []string{"egg", "flour"}, o.Picked())

	press(o, "x")
	assert.Equal(t, []string{"egg"}, o.Picked())
}

func TestOptionList_SingleSelectKeepsOnePick(t *testing.T) {
	o := NewOptionList(nil, nil)
	o.SetOptions([]string{"Creamy", "Crispy", "Smoky"}, false)

	press(o, " ")
	assert.Equal(t, []string{"Creamy"}, o.Picked())

	press(o, "j", " ")
	assert.Equal(t, []string{"Crispy"}, o.Picked())

	press(o, " ")
	assert.Empty(t, o.Picked())
}

func TestOptionList_CursorBounds(t *testing.T) {
	o := NewOptionList(nil, nil)
	o.SetOptions([]string{"a", "b"}, true)

	press(o, "up", "k")
	assert.Equal(t, 0, o.Selected())

	press(o, "down", "j", "down")
	assert.Equal(t, 1, o.Selected())
}

func TestOptionList_RevealFreezesAndGrades(t *testing.T) {
	o := NewOptionList(nil, nil)
	o.SetOptions([]string{"egg", "cheese", "flour"}, true)
	press(o, " ", "down", " ")

	o.Reveal([]string{"egg", "flour"})
	require.True(t, o.Revealed())

	press(o, "down", " ")
	assert.Equal(t, []string{"egg", "cheese"}, o.Picked())

	lines := strings.Split(o.View(), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "[x] egg")
	assert.Contains(t, lines[0], "✓")
	assert.Contains(t, lines[1], "[x] cheese")
	assert.Contains(t, lines[1], "✗")
	assert.Contains(t, lines[2], "[ ] flour")
	assert.Contains(t, lines[2], "(missed)")
}

func TestOptionList_SetOptionsResets(t *testing.T) {
	o := NewOptionList(nil, nil)
	o.SetOptions([]string{"a", "b"}, true)
	press(o, "down", " ")
	o.Reveal([]string{"a"})

	o.SetOptions([]string{"c"}, false)

	assert.False(t, o.Revealed())
	assert.Empty(t, o.Picked())
	assert.Equal(t, 0, o.Selected())
	assert.Contains(t, o.View(), "> ( ) c")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 20))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 3))
	assert.Equal(t, "crème brû...", truncate("crème brûlée tart", 12))
}
