// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The quiz pipeline is built from pure functions (SampleDistractors,
// Shuffle, BuildMultiSelect, BuildSingleSelect, ExtractDrafts) that the
// services compose. Randomness always arrives through driven.Random so
// tests can fix it.
package services
