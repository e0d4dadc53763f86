package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/menumem/internal/core/domain"
)

var (
	quizSeed    uint64
	quizLimit   int
	quizJSON    bool
	quizAnswers bool
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Quiz yourself on the stored menu",
	Long: `Generates two questions per dish: pick every ingredient of the dish,
then pick its description among those of other dishes.

Pass --seed to get the same quiz again.`,
	Annotations: map[string]string{annotationStore: "true"},
	RunE:        runQuiz,
}

func init() {
	quizCmd.Flags().Uint64Var(&quizSeed, "seed", 0, "seed for a reproducible quiz (0 = random)")
	quizCmd.Flags().IntVarP(&quizLimit, "limit", "n", 0, "maximum number of dishes (0 = all)")
	quizCmd.Flags().BoolVar(&quizJSON, "json", false, "output the quiz as JSON")
	quizCmd.Flags().BoolVar(&quizAnswers, "answers", false, "print the correct answers")
	rootCmd.AddCommand(quizCmd)
}

type quizQuestionJSON struct {
	Type           string   `json:"type"`
	Question       string   `json:"question"`
	CorrectAnswers []string `json:"correctAnswers"`
	CorrectAnswer  string   `json:"correctAnswer"`
	Options        []string `json:"options"`
}

// MarshalJSON keeps only the answer key of the question's type, present
// even when empty.
func (q quizQuestionJSON) MarshalJSON() ([]byte, error) {
	if q.Type == domain.KindMultiSelect.String() {
		return json.Marshal(struct {
			Type           string   `json:"type"`
			Question       string   `json:"question"`
			CorrectAnswers []string `json:"correctAnswers"`
			Options        []string `json:"options"`
		}{q.Type, q.Question, orEmpty(q.CorrectAnswers), orEmpty(q.Options)})
	}
	return json.Marshal(struct {
		Type          string   `json:"type"`
		Question      string   `json:"question"`
		CorrectAnswer string   `json:"correctAnswer"`
		Options       []string `json:"options"`
	}{q.Type, q.Question, q.CorrectAnswer, orEmpty(q.Options)})
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func runQuiz(cmd *cobra.Command, _ []string) error {
	if quizService == nil {
		return errors.New("quiz service not configured")
	}

	quiz, err := quizService.Generate(cmd.Context(), domain.QuizOptions{Seed: quizSeed, Limit: quizLimit})
	if err != nil {
		return fmt.Errorf("quiz failed: %w", err)
	}

	if quizJSON {
		return outputQuizJSON(cmd, quiz)
	}
	outputQuizText(cmd, quiz)
	return nil
}

func outputQuizJSON(cmd *cobra.Command, quiz []domain.QuizQuestion) error {
	out := make([]quizQuestionJSON, len(quiz))
	for i, q := range quiz {
		out[i] = quizQuestionJSON{Type: q.Kind.String(), Question: q.Prompt, Options: q.Options}
		if q.Kind == domain.KindMultiSelect {
			out[i].CorrectAnswers = q.Correct
		} else {
			out[i].CorrectAnswer = q.CorrectAnswer
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal quiz: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputQuizText(cmd *cobra.Command, quiz []domain.QuizQuestion) {
	if len(quiz) == 0 {
		cmd.Println("No dishes stored yet. Run 'menumem ingest' first.")
		return
	}

	for i, q := range quiz {
		cmd.Printf("%d. %s\n", i+1, q.Prompt)
		for j, opt := range q.Options {
			cmd.Printf("   %c) %s\n", 'a'+rune(j), opt)
		}
		if quizAnswers {
			if q.Kind == domain.KindMultiSelect {
				cmd.Printf("   Answer: %s\n", strings.Join(q.Correct, ", "))
			} else {
				cmd.Printf("   Answer: %s\n", q.CorrectAnswer)
			}
		}
		cmd.Println()
	}
}
