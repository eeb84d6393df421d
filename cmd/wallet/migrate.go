package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JulesNIYOMWUNGERI/Taskforce-wallet-be/internal/storage"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply any pending database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			fmt.Println(successStyle.Render(fmt.Sprintf("✓ Database is at schema version %d",
				storage.ExpectedSchemaVersion)))
			return nil
		},
	}
}
