package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/JulesNIYOMWUNGERI/Taskforce-wallet-be/internal/report"
)

func reportCmd() *cobra.Command {
	var userID, startStr, endStr, output string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate a transaction report",
		Long: `Generate a transaction report for an optional date range. The report
lists every matching transaction with income, expense, and net totals.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			uid, err := requireUser(userID)
			if err != nil {
				return err
			}

			var start, end *time.Time
			if startStr != "" {
				t, err := time.Parse("2006-01-02", startStr)
				if err != nil {
					return fmt.Errorf("invalid start date %q, expected YYYY-MM-DD: %w", startStr, err)
				}
				start = &t
			}
			if endStr != "" {
				t, err := time.Parse("2006-01-02", endStr)
				if err != nil {
					return fmt.Errorf("invalid end date %q, expected YYYY-MM-DD: %w", endStr, err)
				}
				end = &t
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			aggregator := report.NewAggregator(store, report.NewTextRenderer())
			rendered, err := aggregator.GenerateReport(ctx, uid, start, end)
			if err != nil {
				return fmt.Errorf("failed to generate report: %w", err)
			}

			if output != "" {
				if err := os.WriteFile(output, rendered, 0o644); err != nil {
					return fmt.Errorf("failed to write report to %s: %w", output, err)
				}
				fmt.Println(successStyle.Render(fmt.Sprintf("✓ Report written to %s", output)))
				return nil
			}

			fmt.Print(string(rendered))
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "owning user id")
	cmd.Flags().StringVar(&startStr, "start", "", "range start YYYY-MM-DD (inclusive)")
	cmd.Flags().StringVar(&endStr, "end", "", "range end YYYY-MM-DD (inclusive)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the report to a file instead of stdout")

	return cmd
}
