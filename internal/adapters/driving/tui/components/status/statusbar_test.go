package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBar(t *testing.T) {
	bar := NewBar(nil, nil)

	require.NotNil(t, bar)
	assert.Equal(t, StateReady, bar.State())
	assert.Contains(t, bar.View(), "Ready")
	assert.Contains(t, bar.View(), "q: quit")
}

func TestBar_View(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(b *Bar)
		want    []string
		notWant []string
	}{
		{
			name:  "loading",
			setup: func(b *Bar) { b.SetState(StateLoading) },
			want:  []string{"Generating quiz..."},
		},
		{
			name: "answering",
			setup: func(b *Bar) {
				b.SetState(StateAnswering)
				b.SetProgress(3, 10)
				b.SetScore(1, 2)
			},
			want: []string{"Question 3 of 10", "Score 1/2", "space: pick", "enter: answer"},
		},
		{
			name: "reviewing",
			setup: func(b *Bar) {
				b.SetState(StateReviewing)
				b.SetProgress(3, 10)
				b.SetScore(2, 3)
			},
			want:    []string{"Score 2/3", "enter: next"},
			notWant: []string{"space: pick"},
		},
		{
			name: "finished",
			setup: func(b *Bar) {
				b.SetState(StateFinished)
				b.SetScore(7, 10)
			},
			want: []string{"Finished", "Score 7/10"},
		},
		{
			name: "error with message",
			setup: func(b *Bar) {
				b.SetState(StateError)
				b.SetMessage("store closed")
			},
			want: []string{"Error: store closed"},
		},
		{
			name:  "error without message",
			setup: func(b *Bar) { b.SetState(StateError) },
			want:  []string{"Error"},
		},
		{
			name:  "ready message",
			setup: func(b *Bar) { b.SetMessage("12 dishes") },
			want:  []string{"12 dishes"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := NewBar(nil, nil)
			bar.SetWidth(120)
			tt.setup(bar)

			view := bar.View()
			for _, w := range tt.want {
				assert.Contains(t, view, w)
			}
			for _, w := range tt.notWant {
				assert.NotContains(t, view, w)
			}
		})
	}
}

func TestBar_Clear(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetState(StateFinished)
	bar.SetScore(4, 6)
	bar.SetProgress(6, 6)
	bar.SetMessage("done")

	bar.Clear()

	assert.Equal(t, StateReady, bar.State())
	score, answered := bar.Score()
	assert.Zero(t, score)
	assert.Zero(t, answered)
	assert.Contains(t, bar.View(), "Ready")
}
