package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JulesNIYOMWUNGERI/Taskforce-wallet-be/internal/ledger"
	"github.com/JulesNIYOMWUNGERI/Taskforce-wallet-be/internal/model"
)

func budgetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Manage the spending limit",
	}

	cmd.AddCommand(setBudgetCmd())
	cmd.AddCommand(showBudgetCmd())

	return cmd
}

func setBudgetCmd() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "set <limit>",
		Short: "Set the user's budget limit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			uid, err := requireUser(userID)
			if err != nil {
				return err
			}

			limit, err := model.ParseCents(args[0])
			if err != nil {
				return fmt.Errorf("invalid limit %q: %w", args[0], err)
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := ledger.NewBudgetMonitor(store).SetBudgetLimit(ctx, uid, limit); err != nil {
				return fmt.Errorf("failed to set budget limit: %w", err)
			}

			fmt.Println(successStyle.Render(fmt.Sprintf("✓ Budget limit set to %s", limit.String())))
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "owning user id")

	return cmd
}

func showBudgetCmd() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the user's budget limit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			uid, err := requireUser(userID)
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			limit, err := ledger.NewBudgetMonitor(store).GetBudgetLimit(ctx, uid)
			if err != nil {
				return fmt.Errorf("failed to get budget limit: %w", err)
			}

			fmt.Printf("Budget limit: %s\n", limit.String())
			fmt.Println(subtleStyle.Render("Expenses above this limit trigger a warning on new transactions."))
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "owning user id")

	return cmd
}
