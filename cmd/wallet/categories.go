package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/JulesNIYOMWUNGERI/Taskforce-wallet-be/internal/ledger"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage categories and subcategories",
		Long:  `Organize spending into a two-level category hierarchy.`,
	}

	cmd.AddCommand(addCategoryCmd())
	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(getCategoryCmd())
	cmd.AddCommand(updateCategoryCmd())
	cmd.AddCommand(deleteCategoryCmd())

	return cmd
}

func addCategoryCmd() *cobra.Command {
	var userID, name, parentID string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a category",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			uid, err := requireUser(userID)
			if err != nil {
				return err
			}
			if name == "" {
				return fmt.Errorf("--name is required")
			}

			var parent *string
			if parentID != "" {
				parent = &parentID
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			category, err := ledger.NewCategoryTree(store).CreateCategory(ctx, uid, name, parent)
			if err != nil {
				return fmt.Errorf("failed to create category: %w", err)
			}

			if category.ParentID != nil {
				fmt.Println(successStyle.Render(fmt.Sprintf("✓ Created subcategory %q", category.Name)))
			} else {
				fmt.Println(successStyle.Render(fmt.Sprintf("✓ Created category %q", category.Name)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "owning user id")
	cmd.Flags().StringVar(&name, "name", "", "category name (unique per user)")
	cmd.Flags().StringVar(&parentID, "parent", "", "parent category id (makes this a subcategory)")

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the user's categories",
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

			categories, err := ledger.NewCategoryTree(store).ListCategories(ctx, uid)
			if err != nil {
				return fmt.Errorf("failed to list categories: %w", err)
			}

			if len(categories) == 0 {
				fmt.Println(infoStyle.Render("No categories found. Use 'wallet categories add' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				headerStyle.Render("ID"),
				headerStyle.Render("Name"),
				headerStyle.Render("Parent"),
				headerStyle.Render("Subcategories"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 36),
				strings.Repeat("-", 20),
				strings.Repeat("-", 20),
				strings.Repeat("-", 13))

			for _, c := range categories {
				parentName := ""
				if c.Parent != nil {
					parentName = c.Parent.Name
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", c.ID, c.Name, parentName, len(c.Subcategories))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "owning user id")

	return cmd
}

func getCategoryCmd() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "get <category-id>",
		Short: "Show a category with its parent and subcategories",
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

			category, err := ledger.NewCategoryTree(store).GetCategory(ctx, uid, args[0])
			if err != nil {
				return fmt.Errorf("failed to get category: %w", err)
			}

			fmt.Println(headerStyle.Render(category.Name))
			fmt.Printf("ID: %s\n", category.ID)
			if category.Parent != nil {
				fmt.Printf("Parent: %s\n", category.Parent.Name)
			}
			if len(category.Subcategories) > 0 {
				fmt.Println("Subcategories:")
				for _, sub := range category.Subcategories {
					fmt.Printf("  - %s\n", sub.Name)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "owning user id")

	return cmd
}

func updateCategoryCmd() *cobra.Command {
	var userID, name, parentID string

	cmd := &cobra.Command{
		Use:   "update <category-id>",
		Short: "Rename a category or move it under a new parent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			uid, err := requireUser(userID)
			if err != nil {
				return err
			}

			var parent *string
			if cmd.Flags().Changed("parent") && parentID != "" {
				parent = &parentID
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			category, err := ledger.NewCategoryTree(store).UpdateCategory(ctx, uid, args[0], name, parent)
			if err != nil {
				return fmt.Errorf("failed to update category: %w", err)
			}

			fmt.Println(successStyle.Render(fmt.Sprintf("✓ Updated category %q", category.Name)))
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "owning user id")
	cmd.Flags().StringVar(&name, "name", "", "new category name")
	cmd.Flags().StringVar(&parentID, "parent", "", "new parent category id (empty detaches)")

	return cmd
}

func deleteCategoryCmd() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "delete <category-id>",
		Short: "Delete a category, its subcategories, and their transactions",
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

			if err := ledger.NewCategoryTree(store).DeleteCategory(ctx, uid, args[0]); err != nil {
				return fmt.Errorf("failed to delete category: %w", err)
			}

			fmt.Println(successStyle.Render("✓ Category deleted"))
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "owning user id")

	return cmd
}
