package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/menumem/internal/connectors/filesystem"
	"github.com/custodia-labs/menumem/internal/core/domain"
	"github.com/custodia-labs/menumem/internal/core/ports/driven"
	"github.com/custodia-labs/menumem/internal/core/services"
	"github.com/custodia-labs/menumem/internal/logger"
	"github.com/custodia-labs/menumem/internal/normalisers"
)

var (
	textType      string
	watchExisting bool
	watchDebounce time.Duration
)

// menuNormalisers reduces HTML, Markdown and plain text menus to prompt text.
var menuNormalisers driven.NormaliserRegistry = normalisers.Default()

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Add dishes from menu text, photos or JSON",
	Long: `Extract dishes from a menu and store them.

Text and photos go through the configured LLM (and OCR for photos).
JSON files holding an array of dishes are stored directly.`,
	Annotations: map[string]string{annotationStore: "true"},
}

var ingestTextCmd = &cobra.Command{
	Use:   "text [file|-]",
	Short: "Ingest menu text from a file or stdin",
	Long: `Extract dishes from a text, Markdown or HTML menu.

The format is taken from the file extension, or from --type when
reading stdin.`,
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{annotationIngest: "true"},
	RunE:        runIngestText,
}

var ingestImageCmd = &cobra.Command{
	Use:         "image [file]",
	Short:       "Ingest a menu photo",
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{annotationIngest: "true"},
	RunE:        runIngestImage,
}

var ingestJSONCmd = &cobra.Command{
	Use:   "json [file]",
	Short: "Ingest a JSON array of dishes",
	Long: `Store the dishes in a JSON file without calling the LLM.

The file holds an array of {name, description, category, price, ingredients}
objects. Elements without a name are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngestJSON,
}

var ingestWatchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Ingest menu files as they appear in a directory",
	Long: `Watch a directory and ingest every new or rewritten text, Markdown, HTML,
JSON or image file once it has stopped changing. Stop with Ctrl-C.`,
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{annotationIngest: "true"},
	RunE:        runIngestWatch,
}

func init() {
	ingestTextCmd.Flags().StringVar(&textType, "type", "", "MIME type of the input (default: from the file extension)")
	ingestWatchCmd.Flags().BoolVar(&watchExisting, "existing", false, "ingest files already in the directory first")
	ingestWatchCmd.Flags().DurationVar(&watchDebounce, "debounce", filesystem.DefaultDebounce, "quiet period before a file is ingested")

	ingestCmd.AddCommand(ingestTextCmd)
	ingestCmd.AddCommand(ingestImageCmd)
	ingestCmd.AddCommand(ingestJSONCmd)
	ingestCmd.AddCommand(ingestWatchCmd)
	rootCmd.AddCommand(ingestCmd)
}

func runIngestText(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	var (
		data     []byte
		mimeType = "text/plain"
		err      error
	)
	if args[0] == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		mimeType = filesystem.DetectMIMEType(args[0])
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("reading menu text: %w", err)
	}
	if textType != "" {
		mimeType = textType
	}

	text, err := normaliseMenu(cmd.Context(), args[0], mimeType, data)
	if err != nil {
		return err
	}

	report, err := ingestService.IngestText(cmd.Context(), text)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}
	return printReport(cmd, report)
}

func runIngestImage(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading image: %w", err)
	}

	report, err := ingestService.IngestImage(cmd.Context(), data)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}
	return printReport(cmd, report)
}

func runIngestJSON(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	report, err := ingestJSONFile(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return printReport(cmd, report)
}

func runIngestWatch(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	w := filesystem.New(args[0], filesystem.WithDebounce(watchDebounce))
	defer w.Close()
	if err := w.Validate(); err != nil {
		return err
	}

	ctx := cmd.Context()
	if watchExisting {
		files, err := w.Scan(ctx)
		if err != nil {
			return fmt.Errorf("scanning %s: %w", w.Root(), err)
		}
		for _, f := range files {
			ingestWatched(cmd, f)
		}
	}

	files, err := w.Watch(ctx)
	if err != nil {
		return err
	}
	cmd.Printf("Watching %s for menu files...\n", w.Root())

	for f := range files {
		ingestWatched(cmd, f)
	}
	return nil
}

// ingestWatched ingests one file; failures are reported and the watch goes on.
func ingestWatched(cmd *cobra.Command, f domain.MenuFile) {
	cmd.Printf("Ingesting %s\n", f.Path)

	report, err := ingestFile(cmd.Context(), f)
	if err != nil {
		logger.Error("Ingesting %s: %v", f.Path, err)
		return
	}
	_ = printReport(cmd, report) //nolint:errcheck // partial failures are printed, not fatal
}

func ingestFile(ctx context.Context, f domain.MenuFile) (*domain.IngestReport, error) {
	if f.MIMEType == "application/json" {
		return ingestJSONFile(ctx, f.Path)
	}

	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", f.Path, err)
	}
	if f.IsImage() {
		return ingestService.IngestImage(ctx, data)
	}

	text, err := normaliseMenu(ctx, f.Path, f.MIMEType, data)
	if err != nil {
		return nil, err
	}
	return ingestService.IngestText(ctx, text)
}

// normaliseMenu reduces a text-like menu document to plain text.
func normaliseMenu(ctx context.Context, uri, mimeType string, data []byte) (string, error) {
	out, err := menuNormalisers.Normalise(ctx, &domain.RawMenu{
		URI:      uri,
		MIMEType: mimeType,
		Content:  data,
	})
	if err != nil {
		return "", fmt.Errorf("reading %s as %s: %w", uri, mimeType, err)
	}
	logger.Debug("Normalised %s (%s): %d bytes of text", uri, out.Format, len(out.Text))
	return out.Text, nil
}

// ingestJSONFile decodes a dish array leniently, the same way model
// answers are decoded, and uploads the result.
func ingestJSONFile(ctx context.Context, path string) (*domain.IngestReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	ext, err := services.ExtractDrafts(string(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	for _, sk := range ext.Skipped {
		logger.Warn("Skipped element %d of %s: %s", sk.Index, path, sk.Reason)
	}

	report, err := ingestService.Upload(ctx, ext.Items)
	if err != nil {
		return nil, fmt.Errorf("ingest failed: %w", err)
	}
	return report, nil
}

// printReport summarises a batch. It returns an error when nothing was
// stored from a non-empty batch.
func printReport(cmd *cobra.Command, report *domain.IngestReport) error {
	total := len(report.Results)
	if total == 0 {
		cmd.Println("No dishes found.")
		return nil
	}

	cmd.Printf("Stored %d of %d dishes\n", report.Succeeded(), total)
	for _, res := range report.Results {
		if res.Status == domain.ItemFailed {
			cmd.Printf("  failed #%d %q: %v\n", res.Index, res.Item.Name, res.Err)
		}
	}

	if report.Succeeded() == 0 {
		return errors.New("no dishes stored")
	}
	return nil
}
