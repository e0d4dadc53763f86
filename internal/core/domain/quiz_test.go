package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuestionKind_String(t *testing.T) {
	assert.Equal(t, "multi-select", KindMultiSelect.String())
	assert.Equal(t, "single-select", KindSingleSelect.String())
}

func TestQuizQuestion_Distractors(t *testing.T) {
	t.Run("multi-select", func(t *testing.T) {
		q := QuizQuestion{
			Kind:    KindMultiSelect,
			Correct: []string{"flour", "egg"},
			Options: []string{"egg", "cheese", "flour", "basil"},
		}
		assert.Equal(t, []string{"cheese", "basil"}, q.Distractors())
	})

	t.Run("single-select", func(t *testing.T) {
		q := QuizQuestion{
			Kind:          KindSingleSelect,
			CorrectAnswer: "Crispy",
			Options:       []string{"Creamy", "Crispy"},
		}
		assert.Equal(t, []string{"Creamy"}, q.Distractors())
	})

	t.Run("no distractors", func(t *testing.T) {
		q := QuizQuestion{Kind: KindSingleSelect, CorrectAnswer: "x", Options: []string{"x"}}
		assert.Empty(t, q.Distractors())
	})
}

func TestQuizQuestion_IsCorrect(t *testing.T) {
	multi := QuizQuestion{
		Kind:    KindMultiSelect,
		Correct: []string{"flour", "egg"},
		Options: []string{"egg", "cheese", "flour"},
	}
	single := QuizQuestion{
		Kind:          KindSingleSelect,
		CorrectAnswer: "Crispy",
		Options:       []string{"Creamy", "Crispy"},
	}

	tests := []struct {
		name   string
		q      QuizQuestion
		chosen []string
		want   bool
	}{
		{"multi exact", multi, []string{"flour", "egg"}, true},
		{"multi any order", multi, []string{"egg", "flour"}, true},
		{"multi repeated", multi, []string{"egg", "flour", "egg"}, true},
		{"multi missing", multi, []string{"egg"}, false},
		{"multi extra", multi, []string{"egg", "flour", "cheese"}, false},
		{"multi none", multi, nil, false},
		{"single right", single, []string{"Crispy"}, true},
		{"single wrong", single, []string{"Creamy"}, false},
		{"single both", single, []string{"Crispy", "Creamy"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.q.IsCorrect(tt.chosen))
		})
	}
}

func TestQuizQuestion_Answers(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, QuizQuestion{Kind: KindMultiSelect, Correct: []string{"a", "b"}}.Answers())
	assert.Equal(t, []string{"x"}, QuizQuestion{Kind: KindSingleSelect, CorrectAnswer: "x"}.Answers())
}
