package messages

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/menumem/internal/core/domain"
)

func TestViewType_String(t *testing.T) {
	tests := []struct {
		view ViewType
		want string
	}{
		{ViewMenu, "menu"},
		{ViewQuiz, "quiz"},
		{ViewDishes, "dishes"},
		{ViewHelp, "help"},
		{ViewType(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.view.String())
		})
	}
}

func TestViewType_MenuIsZero(t *testing.T) {
	var v ViewType
	assert.Equal(t, ViewMenu, v)
}

func TestQuizLoaded(t *testing.T) {
	msg := QuizLoaded{
		Questions: []domain.QuizQuestion{{Kind: domain.KindSingleSelect, CorrectAnswer: "Crispy"}},
		Err:       errors.New("partial"),
	}

	assert.Len(t, msg.Questions, 1)
	assert.EqualError(t, msg.Err, "partial")
}
