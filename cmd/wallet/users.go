package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/JulesNIYOMWUNGERI/Taskforce-wallet-be/internal/model"
)

func usersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage wallet users",
		Long:  `Add and list the users that own accounts, categories, and transactions.`,
	}

	cmd.AddCommand(addUserCmd())
	cmd.AddCommand(listUsersCmd())

	return cmd
}

func addUserCmd() *cobra.Command {
	var fullName string
	var email string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if email == "" {
				return fmt.Errorf("--email is required")
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			user := &model.User{
				ID:       uuid.NewString(),
				FullName: fullName,
				Email:    email,
			}
			if err := store.CreateUser(ctx, user); err != nil {
				return fmt.Errorf("failed to create user: %w", err)
			}

			fmt.Println(successStyle.Render(fmt.Sprintf("✓ Created user %s (%s)", email, user.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&fullName, "name", "", "user's full name")
	cmd.Flags().StringVar(&email, "email", "", "user's email (unique)")

	return cmd
}

func listUsersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all users",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			users, err := store.ListUsers(ctx)
			if err != nil {
				return fmt.Errorf("failed to list users: %w", err)
			}

			if len(users) == 0 {
				fmt.Println(infoStyle.Render("No users found. Use 'wallet users add' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				headerStyle.Render("ID"),
				headerStyle.Render("Name"),
				headerStyle.Render("Email"),
				headerStyle.Render("Budget Limit"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 36),
				strings.Repeat("-", 20),
				strings.Repeat("-", 24),
				strings.Repeat("-", 12))

			for _, u := range users {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", u.ID, u.FullName, u.Email, u.BudgetLimit.String())
			}

			return nil
		},
	}
}
