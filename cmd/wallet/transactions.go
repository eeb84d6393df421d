package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/JulesNIYOMWUNGERI/Taskforce-wallet-be/internal/ledger"
	"github.com/JulesNIYOMWUNGERI/Taskforce-wallet-be/internal/model"
)

func transactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"tx"},
		Short:   "Record and manage transactions",
		Long: `Record income and expenses against accounts. Every change keeps the
account balance in step with its transaction history.`,
	}

	cmd.AddCommand(addTransactionCmd())
	cmd.AddCommand(listTransactionsCmd())
	cmd.AddCommand(getTransactionCmd())
	cmd.AddCommand(updateTransactionCmd())
	cmd.AddCommand(deleteTransactionCmd())

	return cmd
}

func addTransactionCmd() *cobra.Command {
	var userID, accountID, categoryID, amount, txType, description, dateStr string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			uid, err := requireUser(userID)
			if err != nil {
				return err
			}
			if accountID == "" {
				return fmt.Errorf("--account is required")
			}

			cents, err := model.ParseCents(amount)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", amount, err)
			}

			date := time.Now().UTC()
			if dateStr != "" {
				date, err = time.Parse("2006-01-02", dateStr)
				if err != nil {
					return fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", dateStr, err)
				}
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			processor := ledger.NewTransactionProcessor(store, ledger.NewBudgetMonitor(store))
			txn, advisory, err := processor.CreateTransaction(ctx, uid, accountID, categoryID,
				cents, model.TransactionType(txType), description, date)
			if err != nil {
				return fmt.Errorf("failed to record transaction: %w", err)
			}

			fmt.Println(successStyle.Render(fmt.Sprintf("✓ Recorded %s of %s",
				txn.Type, txn.Amount.String())))
			if advisory != "" {
				fmt.Println(warningStyle.Render(advisory))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "owning user id")
	cmd.Flags().StringVar(&accountID, "account", "", "account id")
	cmd.Flags().StringVar(&categoryID, "category", "", "category id (optional)")
	cmd.Flags().StringVar(&amount, "amount", "", "positive amount, e.g. 12.50")
	cmd.Flags().StringVar(&txType, "type", "expense", "transaction type: income or expense")
	cmd.Flags().StringVar(&description, "description", "", "free-form note")
	cmd.Flags().StringVar(&dateStr, "date", "", "transaction date YYYY-MM-DD (default today)")

	return cmd
}

func listTransactionsCmd() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the user's transactions",
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

			processor := ledger.NewTransactionProcessor(store, ledger.NewBudgetMonitor(store))
			transactions, err := processor.ListTransactions(ctx, uid)
			if err != nil {
				return fmt.Errorf("failed to list transactions: %w", err)
			}

			if len(transactions) == 0 {
				fmt.Println(infoStyle.Render("No transactions found."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				headerStyle.Render("ID"),
				headerStyle.Render("Date"),
				headerStyle.Render("Type"),
				headerStyle.Render("Amount"),
				headerStyle.Render("Description"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 36),
				strings.Repeat("-", 10),
				strings.Repeat("-", 8),
				strings.Repeat("-", 12),
				strings.Repeat("-", 30))

			for _, t := range transactions {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					t.ID, t.Date.Format("2006-01-02"), t.Type, t.Amount.String(), t.Description)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "owning user id")

	return cmd
}

func getTransactionCmd() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "get <transaction-id>",
		Short: "Show a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			processor := ledger.NewTransactionProcessor(store, ledger.NewBudgetMonitor(store))
			txn, err := processor.GetTransaction(ctx, uid, args[0])
			if err != nil {
				return fmt.Errorf("failed to get transaction: %w", err)
			}

			fmt.Println(headerStyle.Render(fmt.Sprintf("%s %s", txn.Type, txn.Amount.String())))
			fmt.Printf("ID:     %s\n", txn.ID)
			fmt.Printf("Date:   %s\n", txn.Date.Format("2006-01-02"))
			if txn.Account != nil {
				fmt.Printf("Account: %s\n", txn.Account.Name)
			}
			if txn.Category != nil {
				fmt.Printf("Category: %s\n", txn.Category.Name)
			}
			if txn.Description != "" {
				fmt.Printf("Description: %s\n", txn.Description)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "owning user id")

	return cmd
}

func updateTransactionCmd() *cobra.Command {
	var userID, amount, txType, description, dateStr string

	cmd := &cobra.Command{
		Use:   "update <transaction-id>",
		Short: "Amend a transaction",
		Long:  `Amend a transaction. The account balance is adjusted by the difference.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			uid, err := requireUser(userID)
			if err != nil {
				return err
			}

			var update model.TransactionUpdate
			if cmd.Flags().Changed("amount") {
				cents, err := model.ParseCents(amount)
				if err != nil {
					return fmt.Errorf("invalid amount %q: %w", amount, err)
				}
				update.Amount = &cents
			}
			if cmd.Flags().Changed("type") {
				t := model.TransactionType(txType)
				update.Type = &t
			}
			if cmd.Flags().Changed("description") {
				update.Description = &description
			}
			if cmd.Flags().Changed("date") {
				date, err := time.Parse("2006-01-02", dateStr)
				if err != nil {
					return fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", dateStr, err)
				}
				update.Date = &date
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			processor := ledger.NewTransactionProcessor(store, ledger.NewBudgetMonitor(store))
			txn, err := processor.UpdateTransaction(ctx, uid, args[0], update)
			if err != nil {
				return fmt.Errorf("failed to update transaction: %w", err)
			}

			fmt.Println(successStyle.Render(fmt.Sprintf("✓ Updated %s of %s",
				txn.Type, txn.Amount.String())))
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "owning user id")
	cmd.Flags().StringVar(&amount, "amount", "", "new amount")
	cmd.Flags().StringVar(&txType, "type", "", "new type: income or expense")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	cmd.Flags().StringVar(&dateStr, "date", "", "new date YYYY-MM-DD")

	return cmd
}

func deleteTransactionCmd() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "delete <transaction-id>",
		Short: "Delete a transaction and reverse its balance effect",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			processor := ledger.NewTransactionProcessor(store, ledger.NewBudgetMonitor(store))
			if err := processor.DeleteTransaction(ctx, uid, args[0]); err != nil {
				return fmt.Errorf("failed to delete transaction: %w", err)
			}

			fmt.Println(successStyle.Render("✓ Transaction deleted"))
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "owning user id")

	return cmd
}
