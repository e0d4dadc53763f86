// Package env overlays environment variables, optionally read from .env
// files, on top of the settings stored in config.toml.
package env

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/menumem/internal/core/domain"
)

// Environment variable names.
const (
	VarLLMProvider   = "MENUMEM_LLM_PROVIDER"
	VarLLMAPIKey     = "MENUMEM_LLM_API_KEY" //nolint:gosec // G101: variable name, not a credential.
	VarLLMModel      = "MENUMEM_LLM_MODEL"
	VarLLMBaseURL    = "MENUMEM_LLM_BASE_URL"
	VarOCRProvider   = "MENUMEM_OCR_PROVIDER"
	VarGoogleCreds   = "GOOGLE_APPLICATION_CREDENTIALS"
	VarAWSRegion     = "AWS_REGION"
	VarStorageDriver = "MENUMEM_STORAGE_DRIVER"
	VarDatabaseURL   = "DATABASE_URL"
	VarAddr          = "MENUMEM_ADDR"
)

// LoadFiles reads KEY=value pairs from the given .env files into the
// process environment. Missing files are skipped and variables that are
// already set are never overwritten.
func LoadFiles(paths ...string) error {
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	return nil
}

// Apply overlays the process environment on settings.
func Apply(settings *domain.AppSettings) {
	Overlay(settings, os.LookupEnv)
}

// Overlay overlays variables from lookup on settings. Empty values are ignored.
func Overlay(settings *domain.AppSettings, lookup func(string) (string, bool)) {
	get := func(name string) (string, bool) {
		v, ok := lookup(name)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := get(VarLLMProvider); ok {
		settings.LLM.Provider = domain.AIProvider(strings.ToLower(v))
	}
	if v, ok := get(VarLLMAPIKey); ok {
		settings.LLM.APIKey = v
	}
	if v, ok := get(VarLLMModel); ok {
		settings.LLM.Model = v
	}
	if v, ok := get(VarLLMBaseURL); ok {
		settings.LLM.BaseURL = v
	}
	if v, ok := get(VarOCRProvider); ok {
		settings.OCR.Provider = domain.OCRProvider(strings.ToLower(v))
	}
	if v, ok := get(VarGoogleCreds); ok {
		settings.OCR.CredentialsFile = v
	}
	if v, ok := get(VarAWSRegion); ok {
		settings.OCR.Region = v
	}
	if v, ok := get(VarStorageDriver); ok {
		settings.Storage.Driver = domain.StorageDriver(strings.ToLower(v))
	}
	if v, ok := get(VarDatabaseURL); ok {
		settings.Storage.DSN = v
	}
	if v, ok := get(VarAddr); ok {
		settings.Server.Addr = v
	}
}
