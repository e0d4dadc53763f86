package cli

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/menumem/internal/adapters/driving/rest"
	"github.com/custodia-labs/menumem/internal/logger"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the HTTP API serving menu ingestion, the stored menu and quizzes.

Routes:
  POST /menu/parse-ai           extract dishes from menu text
  POST /menu/upload             store a batch of dishes
  POST /menu/ocr-google         recognise text in a base64 image
  GET  /menu, POST /menu        list or add dishes
  POST /menu/:id/ingredients    link ingredients to a dish
  GET  /ingredients, POST /ingredients
  GET  /categories
  GET  /quiz?seed=N&limit=N
  GET  /health`,
	Annotations: map[string]string{annotationStore: "true", annotationIngest: "true"},
	RunE:        runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides server.addr)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if menuService == nil || quizService == nil {
		return errors.New("menu services not configured")
	}

	settings := currentSettings()
	addr := serveAddr
	if addr == "" {
		addr = settings.Server.Addr
	}

	if !logger.IsVerbose() {
		gin.SetMode(gin.ReleaseMode)
	}

	llmName, ocrName := providerNames()
	router, err := rest.NewRouter(&rest.Ports{
		Quiz:    quizService,
		Menu:    menuService,
		Ingest:  ingestService,
		LLMName: llmName,
		OCRName: ocrName,
	}, rest.Options{AllowedOrigins: settings.Server.AllowedOrigins})
	if err != nil {
		return fmt.Errorf("building router: %w", err)
	}

	cmd.Printf("menumem API listening on %s\n", addr)
	return rest.NewServer(addr, router).Run(cmd.Context())
}
