package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/menumem/internal/adapters/driving/tui"
	"github.com/custodia-labs/menumem/internal/core/domain"
)

var (
	playSeed  uint64
	playLimit int
)

// tuiCmd represents the interactive quiz player.
var tuiCmd = &cobra.Command{
	Use:     "play",
	Aliases: []string{"tui"},
	Short:   "Take the quiz in an interactive terminal UI",
	Long: `Launch the interactive terminal UI. Answer the quiz one question at a
time with immediate feedback, or browse the stored dishes.

Controls:
  ↑/k, ↓/j  - Move
  Space/x   - Pick or unpick an option
  Enter     - Submit / Next
  /         - Filter dishes
  Esc       - Back
  ?         - Help
  q         - Quit`,
	Annotations: map[string]string{annotationStore: "true"},
	RunE:        runTUI,
}

func init() {
	tuiCmd.Flags().Uint64Var(&playSeed, "seed", 0, "seed for a reproducible quiz (0 = random)")
	tuiCmd.Flags().IntVarP(&playLimit, "limit", "n", 0, "maximum number of dishes (0 = all)")
	rootCmd.AddCommand(tuiCmd)
}

// tuiPorts collects the services the terminal UI drives.
func tuiPorts() *tui.Ports {
	return &tui.Ports{
		Quiz:        quizService,
		Menu:        menuService,
		QuizOptions: domain.QuizOptions{Seed: playSeed, Limit: playLimit},
	}
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("panic in TUI: %v", r)
		}
	}()

	app, err := tui.NewApp(tuiPorts())
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	if err := app.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
