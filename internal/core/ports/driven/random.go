package driven

// Random is the source of randomness for distractor sampling and shuffling.
// A *math/rand/v2.Rand satisfies it. Implementations need not be safe for
// concurrent use; callers create one per quiz.
type Random interface {
	// IntN returns a uniform integer in [0, n). It panics if n <= 0.
	IntN(n int) int
}
