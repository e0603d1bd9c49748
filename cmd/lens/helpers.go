package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/mkravets/payout-lens/internal/llm"
	"github.com/mkravets/payout-lens/internal/service"
	"github.com/mkravets/payout-lens/internal/storage"
)

// initStorage opens the configured database and applies migrations.
func initStorage(ctx context.Context) (service.Storage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/lens/lens.db"
	}

	store, err := storage.NewSQLiteStorage(expandPath(dbPath))
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// initLLMClient builds an LLM client from configuration. Returns nil
// when no API key is configured; callers treat that as "classification
// capability absent".
func initLLMClient() (llm.Client, error) {
	apiKey := viper.GetString("llm.api_key")
	if apiKey == "" {
		return nil, nil
	}

	return llm.NewClient(llm.Config{
		Provider:  viper.GetString("llm.provider"),
		APIKey:    apiKey,
		BaseURL:   viper.GetString("llm.base_url"),
		Model:     viper.GetString("llm.model"),
		RateLimit: viper.GetInt("llm.rate_limit"),
		Timeout:   viper.GetDuration("llm.timeout"),
	})
}

// classifyTimeout reads the configured classification deadline.
func classifyTimeout() time.Duration {
	if d := viper.GetDuration("classify.timeout"); d > 0 {
		return d
	}
	return 2 * time.Minute
}

// expandPath expands ~ and $VAR references in a file path.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") || path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(strings.TrimPrefix(path, "~"), "/"))
		}
	}
	return os.ExpandEnv(path)
}
