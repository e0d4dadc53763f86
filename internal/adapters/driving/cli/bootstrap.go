package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/menumem/internal/adapters/driven/ai"
	"github.com/custodia-labs/menumem/internal/adapters/driven/config/env"
	"github.com/custodia-labs/menumem/internal/adapters/driven/config/file"
	"github.com/custodia-labs/menumem/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/menumem/internal/adapters/driven/storage/postgres"
	"github.com/custodia-labs/menumem/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/menumem/internal/core/domain"
	"github.com/custodia-labs/menumem/internal/core/ports/driven"
	"github.com/custodia-labs/menumem/internal/core/services"
	"github.com/custodia-labs/menumem/internal/logger"
)

// session holds what bootstrap opened so shutdown can release it.
type session struct {
	settings  *domain.AppSettings
	providers *ai.InitResult
	closers   []func() error
}

var rt *session

// bootstrap is the composition root. Settings are always available;
// the store and providers are opened only for annotated commands.
func bootstrap(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if !needs(cmd, annotationSettings) && !needs(cmd, annotationStore) {
		return nil
	}

	if settingsService == nil {
		svc, err := newSettingsService()
		if err != nil {
			return err
		}
		settingsService = svc
	}

	if !needs(cmd, annotationStore) || menuService != nil {
		return nil
	}

	settings, err := effectiveSettings()
	if err != nil {
		return err
	}
	if needs(cmd, annotationIngest) {
		if err := settings.RequireIngestion(); err != nil {
			return fmt.Errorf("%w. Run 'menumem settings' to configure", err)
		}
	}

	return wireServices(cmd.Context(), settings)
}

func newSettingsService() (*services.SettingsService, error) {
	validator := ai.NewConfigValidator()
	if ephemeral {
		return services.NewSettingsService(memory.NewConfigStore(), validator), nil
	}

	dir, err := resolveConfigDir()
	if err != nil {
		return nil, err
	}
	if err := env.LoadFiles(".env", filepath.Join(dir, ".env")); err != nil {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	store, err := file.NewConfigStore(dir)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	return services.NewSettingsService(store, validator), nil
}

func resolveConfigDir() (string, error) {
	if configDir != "" {
		return configDir, nil
	}
	return file.DefaultDir()
}

// effectiveSettings layers environment variables and flags over the
// stored settings.
func effectiveSettings() (*domain.AppSettings, error) {
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	env.Apply(settings)

	if dataDir != "" {
		settings.Storage.DataDir = dataDir
	}
	if ephemeral {
		settings.Storage.Driver = domain.StorageMemory
	}
	return settings, nil
}

func wireServices(ctx context.Context, settings *domain.AppSettings) error {
	rt = &session{settings: settings}

	store, err := openStore(ctx, settings.Storage)
	if err != nil {
		return err
	}

	rt.providers = ai.Init(ctx, settings)
	rt.closers = append(rt.closers, func() error {
		rt.providers.Close()
		return nil
	})
	for _, w := range rt.providers.Warnings {
		logger.Warn("%s", w)
	}

	var prompts driven.PromptStore
	if !ephemeral {
		dir, err := resolveConfigDir()
		if err != nil {
			return err
		}
		ps, err := file.NewPromptStore(filepath.Join(dir, "prompts"))
		if err != nil {
			return fmt.Errorf("opening prompts: %w", err)
		}
		prompts = ps
	}

	resolver := services.NewIngredientResolver(store, settings.Ingest.FoldIngredientCase)
	menuService = services.NewMenuService(store, resolver)
	quizService = services.NewQuizService(store, settings.Quiz)
	ingestService = services.NewIngestService(store, resolver,
		rt.providers.LLMService, rt.providers.OCRService, prompts, settings.Ingest.Concurrency)

	logger.Debug("Wired %s store", settings.Storage.Driver)
	return nil
}

func openStore(ctx context.Context, cfg domain.StorageSettings) (driven.MenuStore, error) {
	switch cfg.Driver {
	case domain.StorageMemory:
		return memory.NewMenuStore(), nil
	case domain.StoragePostgres:
		if cfg.DSN == "" {
			return nil, fmt.Errorf("%w: storage.dsn for postgres", domain.ErrConfigMissing)
		}
		store, err := postgres.NewStore(ctx, cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("opening postgres: %w", err)
		}
		rt.closers = append(rt.closers, store.Close)
		return store.MenuStore(), nil
	case domain.StorageSQLite, "":
		store, err := sqlite.NewStore(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite: %w", err)
		}
		rt.closers = append(rt.closers, store.Close)
		return store.MenuStore(), nil
	default:
		return nil, fmt.Errorf("%w: unknown storage driver %q", domain.ErrInvalidInput, cfg.Driver)
	}
}

// shutdown releases everything bootstrap opened, newest first.
func shutdown(_ *cobra.Command, _ []string) error {
	if rt == nil {
		return nil
	}

	var errs []error
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	rt.closers = nil
	return errors.Join(errs...)
}

// providerNames reports the configured providers for health output.
func providerNames() (llm, ocr string) {
	if rt == nil || rt.providers == nil {
		return "", ""
	}
	if rt.providers.LLMService != nil {
		llm = string(rt.settings.LLM.Provider) + "/" + rt.providers.LLMService.ModelName()
	}
	if rt.providers.OCRService != nil {
		ocr = rt.providers.OCRService.Name()
	}
	return llm, ocr
}

// currentSettings returns the settings the services were wired with,
// falling back to the stored settings in tests.
func currentSettings() *domain.AppSettings {
	if rt != nil && rt.settings != nil {
		return rt.settings
	}
	if settingsService != nil {
		if s, err := settingsService.Get(); err == nil {
			return s
		}
	}
	defaults := domain.DefaultAppSettings()
	return &defaults
}
