package services

import (
	"fmt"

	"github.com/custodia-labs/menumem/internal/core/domain"
	"github.com/custodia-labs/menumem/internal/core/ports/driven"
)

// Default distractor counts per question kind.
const (
	IngredientDistractors  = 5
	DescriptionDistractors = 3
)

// IngredientPrompt is the multi-select question text for a dish.
func IngredientPrompt(dishName string) string {
	return fmt.Sprintf(`Select all ingredients for "%s":`, dishName)
}

// DescriptionPrompt is the single-select question text for a dish.
func DescriptionPrompt(dishName string) string {
	return fmt.Sprintf(`What is the correct description for "%s"?`, dishName)
}

// BuildMultiSelect builds a question whose answer is every value in correct.
// Up to k distractors are sampled from pool, never one already in correct.
func BuildMultiSelect(rng driven.Random, prompt string, correct, pool []string, k int) domain.QuizQuestion {
	correct = Dedupe(correct)
	distractors := SampleDistractors(rng, pool, setOf(correct...), k)

	options := make([]string, 0, len(correct)+len(distractors))
	options = append(options, correct...)
	options = append(options, distractors...)
	Shuffle(rng, options)

	return domain.QuizQuestion{
		Kind:    domain.KindMultiSelect,
		Prompt:  prompt,
		Correct: correct,
		Options: options,
	}
}

// BuildSingleSelect builds a question with exactly one correct option.
// Up to k distractors are sampled from pool, never equal to answer.
func BuildSingleSelect(rng driven.Random, prompt, answer string, pool []string, k int) domain.QuizQuestion {
	distractors := SampleDistractors(rng, pool, setOf(answer), k)

	options := make([]string, 0, len(distractors)+1)
	options = append(options, answer)
	options = append(options, distractors...)
	Shuffle(rng, options)

	return domain.QuizQuestion{
		Kind:          domain.KindSingleSelect,
		Prompt:        prompt,
		CorrectAnswer: answer,
		Options:       options,
	}
}
