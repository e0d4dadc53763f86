package driving

import (
	"context"

	"github.com/custodia-labs/menumem/internal/core/domain"
)

// QuizService generates self-quizzes from the stored menu.
type QuizService interface {
	// Generate returns two questions per dish in corpus order: an ingredient
	// multi-select followed by a description single-select.
	Generate(ctx context.Context, opts domain.QuizOptions) ([]domain.QuizQuestion, error)
}
