package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/JulesNIYOMWUNGERI/Taskforce-wallet-be/internal/ledger"
	"github.com/JulesNIYOMWUNGERI/Taskforce-wallet-be/internal/model"
)

func accountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Manage accounts",
		Long:  `Create, list, update, and delete the accounts that hold money.`,
	}

	cmd.AddCommand(addAccountCmd())
	cmd.AddCommand(listAccountsCmd())
	cmd.AddCommand(getAccountCmd())
	cmd.AddCommand(updateAccountCmd())
	cmd.AddCommand(deleteAccountCmd())

	return cmd
}

func addAccountCmd() *cobra.Command {
	var userID, name, accountType, balance, currency string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			uid, err := requireUser(userID)
			if err != nil {
				return err
			}
			if name == "" {
				return fmt.Errorf("--name is required")
			}

			initialBalance := model.Cents(0)
			if balance != "" {
				initialBalance, err = model.ParseCents(balance)
				if err != nil {
					return fmt.Errorf("invalid balance %q: %w", balance, err)
				}
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			accounts := ledger.NewAccountLedger(store)
			account, err := accounts.CreateAccount(ctx, uid, name, model.AccountType(accountType), initialBalance, currency)
			if err != nil {
				return fmt.Errorf("failed to create account: %w", err)
			}

			fmt.Println(successStyle.Render(fmt.Sprintf("✓ Created account %q with balance %s %s",
				account.Name, account.Balance.String(), account.Currency)))
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "owning user id")
	cmd.Flags().StringVar(&name, "name", "", "account name (unique per user)")
	cmd.Flags().StringVar(&accountType, "type", "", "account type: Bank, Mobile Money, or Cash (default Cash)")
	cmd.Flags().StringVar(&balance, "balance", "", "initial balance (default 0)")
	cmd.Flags().StringVar(&currency, "currency", "", "3-letter currency code (default RWF)")

	return cmd
}

func listAccountsCmd() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the user's accounts",
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

			accounts, err := ledger.NewAccountLedger(store).ListAccounts(ctx, uid)
			if err != nil {
				return fmt.Errorf("failed to list accounts: %w", err)
			}

			if len(accounts) == 0 {
				fmt.Println(infoStyle.Render("No accounts found. Use 'wallet accounts add' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				headerStyle.Render("ID"),
				headerStyle.Render("Name"),
				headerStyle.Render("Type"),
				headerStyle.Render("Balance"),
				headerStyle.Render("Currency"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 36),
				strings.Repeat("-", 20),
				strings.Repeat("-", 12),
				strings.Repeat("-", 12),
				strings.Repeat("-", 8))

			for _, a := range accounts {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					a.ID, a.Name, a.Type, a.Balance.String(), a.Currency)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "owning user id")

	return cmd
}

func getAccountCmd() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "get <account-id>",
		Short: "Show an account",
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

			account, err := ledger.NewAccountLedger(store).GetAccount(ctx, uid, args[0])
			if err != nil {
				return fmt.Errorf("failed to get account: %w", err)
			}

			fmt.Println(headerStyle.Render(account.Name))
			fmt.Printf("ID:       %s\n", account.ID)
			fmt.Printf("Type:     %s\n", account.Type)
			fmt.Printf("Balance:  %s %s\n", account.Balance.String(), account.Currency)
			fmt.Println(subtleStyle.Render(fmt.Sprintf("Created %s", account.CreatedAt.Format("2006-01-02"))))
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "owning user id")

	return cmd
}

func updateAccountCmd() *cobra.Command {
	var userID, name, accountType, balance, currency string

	cmd := &cobra.Command{
		Use:   "update <account-id>",
		Short: "Update an account's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			uid, err := requireUser(userID)
			if err != nil {
				return err
			}

			var update model.AccountUpdate
			if cmd.Flags().Changed("name") {
				update.Name = &name
			}
			if cmd.Flags().Changed("type") {
				t := model.AccountType(accountType)
				update.Type = &t
			}
			if cmd.Flags().Changed("balance") {
				cents, err := model.ParseCents(balance)
				if err != nil {
					return fmt.Errorf("invalid balance %q: %w", balance, err)
				}
				update.Balance = &cents
			}
			if cmd.Flags().Changed("currency") {
				update.Currency = &currency
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			account, err := ledger.NewAccountLedger(store).UpdateAccount(ctx, uid, args[0], update)
			if err != nil {
				return fmt.Errorf("failed to update account: %w", err)
			}

			fmt.Println(successStyle.Render(fmt.Sprintf("✓ Updated account %q", account.Name)))
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "owning user id")
	cmd.Flags().StringVar(&name, "name", "", "new account name")
	cmd.Flags().StringVar(&accountType, "type", "", "new account type")
	cmd.Flags().StringVar(&balance, "balance", "", "new balance (overrides transaction history)")
	cmd.Flags().StringVar(&currency, "currency", "", "new currency code")

	return cmd
}

func deleteAccountCmd() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "delete <account-id>",
		Short: "Delete an account and its transactions",
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

			if err := ledger.NewAccountLedger(store).DeleteAccount(ctx, uid, args[0]); err != nil {
				return fmt.Errorf("failed to delete account: %w", err)
			}

			fmt.Println(successStyle.Render("✓ Account deleted"))
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "owning user id")

	return cmd
}
