package services

import (
	"context"

	"github.com/custodia-labs/menumem/internal/core/domain"
	"github.com/custodia-labs/menumem/internal/core/ports/driven"
	"github.com/custodia-labs/menumem/internal/core/ports/driving"
	"github.com/custodia-labs/menumem/internal/logger"
)

// Ensure QuizService implements the interface.
var _ driving.QuizService = (*QuizService)(nil)

// QuizService assembles quizzes from one snapshot of the menu corpus.
type QuizService struct {
	store     driven.MenuStore
	settings  domain.QuizSettings
	newRandom func(seed uint64) driven.Random
}

// NewQuizService creates a quiz service. Zero distractor counts fall back
// to IngredientDistractors and DescriptionDistractors.
func NewQuizService(store driven.MenuStore, settings domain.QuizSettings) *QuizService {
	if settings.IngredientDistractors <= 0 {
		settings.IngredientDistractors = IngredientDistractors
	}
	if settings.DescriptionDistractors <= 0 {
		settings.DescriptionDistractors = DescriptionDistractors
	}
	return &QuizService{
		store:     store,
		settings:  settings,
		newRandom: NewRandom,
	}
}

// SetRandomSource replaces the generator factory. Used by tests to fix
// the sequence of random draws.
func (s *QuizService) SetRandomSource(newRandom func(seed uint64) driven.Random) {
	s.newRandom = newRandom
}

// Generate returns two questions per dish in corpus order.
func (s *QuizService) Generate(ctx context.Context, opts domain.QuizOptions) ([]domain.QuizQuestion, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}

	dishes, err := s.store.ListDishesWithIngredients(ctx)
	if err != nil {
		return nil, &domain.StoreError{Op: "list dishes", Err: err}
	}

	quiz := AssembleQuiz(s.newRandom(opts.Seed), dishes, s.settings)
	if opts.Limit > 0 && len(quiz) > 2*opts.Limit {
		quiz = quiz[:2*opts.Limit]
	}

	logger.Debug("Generated %d questions from %d dishes", len(quiz), len(dishes))
	return quiz, nil
}

// AssembleQuiz builds, for every dish in order, an ingredient multi-select
// followed by a description single-select. Ingredient distractors come from
// the ingredients of all dishes; description distractors come from every
// other dish. An empty corpus yields an empty quiz.
func AssembleQuiz(rng driven.Random, dishes []domain.Dish, settings domain.QuizSettings) []domain.QuizQuestion {
	var ingredientPool []string
	for _, d := range dishes {
		ingredientPool = append(ingredientPool, d.Ingredients...)
	}
	if settings.DedupeDistractors {
		ingredientPool = Dedupe(ingredientPool)
	}

	quiz := make([]domain.QuizQuestion, 0, 2*len(dishes))
	for _, d := range dishes {
		multi := BuildMultiSelect(rng, IngredientPrompt(d.Name), d.Ingredients,
			ingredientPool, settings.IngredientDistractors)
		multi.DishID = d.ID

		single := BuildSingleSelect(rng, DescriptionPrompt(d.Name), d.Description,
			otherDescriptions(dishes, d.ID, settings.DedupeDistractors), settings.DescriptionDistractors)
		single.DishID = d.ID

		quiz = append(quiz, multi, single)
	}
	return quiz
}

func otherDescriptions(dishes []domain.Dish, id string, dedupe bool) []string {
	pool := make([]string, 0, len(dishes))
	for _, d := range dishes {
		if d.ID != id {
			pool = append(pool, d.Description)
		}
	}
	if dedupe {
		return Dedupe(pool)
	}
	return pool
}
