package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/JulesNIYOMWUNGERI/Taskforce-wallet-be/internal/storage"
)

// initStorage initializes the storage service with migrations applied.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/wallet/wallet.db"
	}
	dbPath = expandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// expandPath expands $HOME, environment variables, and a leading tilde.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = home + path[1:]
		}
	}
	return os.ExpandEnv(path)
}

// requireUser reads the --user flag and fails with a helpful message when
// it is missing. Every engine operation needs the caller's identity.
func requireUser(userID string) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("--user is required")
	}
	return userID, nil
}
