// Package cli implements the menumem command line.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/menumem/internal/core/ports/driving"
)

// version is set at build time.
var version = "dev"

// Command annotations read by bootstrap.
const (
	// annotationStore marks commands that open the menu store.
	annotationStore = "menumem/store"

	// annotationSettings marks commands that read or write settings.
	annotationSettings = "menumem/settings"

	// annotationIngest marks commands that refuse to start without
	// LLM and OCR configuration.
	annotationIngest = "menumem/ingest"
)

var (
	configDir string
	dataDir   string
	verbose   bool
	ephemeral bool
)

// Services used by the commands. bootstrap fills them in; tests assign
// them directly.
var (
	settingsService driving.SettingsService
	menuService     driving.MenuService
	quizService     driving.QuizService
	ingestService   driving.IngestService
)

var rootCmd = &cobra.Command{
	Use:   "menumem",
	Short: "Memorise a restaurant menu",
	Long: `menumem turns menu photos and text into a structured dish store and
quizzes you on it: which ingredients go into each dish, and which
description belongs to it.

Configure an LLM and an OCR provider with 'menumem settings', ingest a menu
with 'menumem ingest', then run 'menumem quiz'.`,
	SilenceUsage:       true,
	PersistentPreRunE:  bootstrap,
	PersistentPostRunE: shutdown,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.menumem)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "SQLite data directory (overrides storage.data_dir)")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "keep settings and the menu in memory only")
}

// Execute runs the root command with the given build version.
func Execute(ctx context.Context, v string) error {
	if v != "" {
		version = v
	}
	return rootCmd.ExecuteContext(ctx)
}

func needs(cmd *cobra.Command, annotation string) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[annotation] == "true" {
			return true
		}
	}
	return false
}
