package domain

// QuestionKind distinguishes the two quiz question shapes.
type QuestionKind string

// Question kinds.
const (
	// KindMultiSelect asks for every ingredient of a dish.
	KindMultiSelect QuestionKind = "multi-select"

	// KindSingleSelect asks for the one correct description of a dish.
	KindSingleSelect QuestionKind = "single-select"
)

// String returns the string representation.
func (k QuestionKind) String() string {
	return string(k)
}

// QuizQuestion is a transient question built from the corpus.
// Options is always a permutation of the correct values and the chosen
// distractors, and no distractor equals a correct value.
type QuizQuestion struct {
	// Kind is multi-select or single-select.
	Kind QuestionKind

	// Prompt is the question text shown to the learner.
	Prompt string

	// Correct holds the correct options of a multi-select question.
	Correct []string

	// CorrectAnswer holds the correct option of a single-select question.
	CorrectAnswer string

	// Options is the shuffled list presented to the learner.
	Options []string

	// DishID identifies the dish the question is about.
	DishID string
}

// Distractors returns the options that are not correct answers.
func (q QuizQuestion) Distractors() []string {
	correct := make(map[string]struct{}, len(q.Correct)+1)
	if q.Kind == KindSingleSelect {
		correct[q.CorrectAnswer] = struct{}{}
	}
	for _, c := range q.Correct {
		correct[c] = struct{}{}
	}

	out := make([]string, 0, len(q.Options))
	for _, o := range q.Options {
		if _, ok := correct[o]; !ok {
			out = append(out, o)
		}
	}
	return out
}

// Answers returns the correct options for either kind of question.
func (q QuizQuestion) Answers() []string {
	if q.Kind == KindSingleSelect {
		return []string{q.CorrectAnswer}
	}
	return q.Correct
}

// IsCorrect reports whether chosen is exactly the set of correct options.
// Order and repeats are ignored; a missing or extra option fails.
func (q QuizQuestion) IsCorrect(chosen []string) bool {
	want := make(map[string]struct{})
	for _, a := range q.Answers() {
		want[a] = struct{}{}
	}
	got := make(map[string]struct{}, len(chosen))
	for _, c := range chosen {
		if _, ok := want[c]; !ok {
			return false
		}
		got[c] = struct{}{}
	}
	return len(got) == len(want)
}

// QuizOptions controls quiz generation.
type QuizOptions struct {
	// Seed makes the generated quiz reproducible. Zero picks a fresh seed.
	Seed uint64

	// Limit caps the number of dishes quizzed. Zero means all dishes.
	Limit int
}
