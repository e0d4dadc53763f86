package services

import "github.com/custodia-labs/menumem/internal/core/ports/driven"

// SampleDistractors returns min(k, |pool minus exclude|) elements chosen
// uniformly at random, without replacement, from pool after every element
// in exclude has been removed. pool is never modified. Values that repeat
// in pool are returned at most once.
//
// The result is never nil, so an exhausted pool encodes as [] rather than null.
func SampleDistractors[T comparable](rng driven.Random, pool []T, exclude map[T]struct{}, k int) []T {
	candidates := make([]T, 0, len(pool))
	for _, v := range pool {
		if _, skip := exclude[v]; !skip {
			candidates = append(candidates, v)
		}
	}

	if k <= 0 || len(candidates) == 0 {
		return []T{}
	}

	// Partial Fisher-Yates over the private copy. A value drawn once is
	// skipped if it repeats later in the multiset.
	out := make([]T, 0, min(k, len(candidates)))
	seen := make(map[T]struct{}, cap(out))
	for i := 0; i < len(candidates) && len(out) < k; i++ {
		j := i + rng.IntN(len(candidates)-i)
		candidates[i], candidates[j] = candidates[j], candidates[i]
		v := candidates[i]
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Shuffle permutes s in place with a Fisher-Yates shuffle.
func Shuffle[T any](rng driven.Random, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

// Dedupe returns the distinct values of s in first-seen order.
func Dedupe[T comparable](s []T) []T {
	seen := make(map[T]struct{}, len(s))
	out := make([]T, 0, len(s))
	for _, v := range s {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func setOf[T comparable](values ...T) map[T]struct{} {
	set := make(map[T]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
