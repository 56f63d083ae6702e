package cmd

import (
	"context"
	"fmt"

	"github.com/Lumos-Labs-HQ/streamseed/internal/export"
	"github.com/Lumos-Labs-HQ/streamseed/internal/seeder"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var statusAgainst string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show row counts for every streaming table",
	Long: `Show the number of rows currently stored in each streaming table, in
insertion order.

With --against, the counts are compared with a run report written by
"streamseed seed --report" and any difference is flagged.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		var expected map[string]int
		if statusAgainst != "" {
			report, err := export.ReadReport(statusAgainst)
			if err != nil {
				return err
			}
			expected = make(map[string]int, len(report.Tables))
			for _, tr := range report.Tables {
				expected[tr.Table] = tr.Rows
			}
			color.Cyan("📄 Comparing with run %s (seed %d)", report.RunID, report.Seed)
		}

		ctx := context.Background()
		store, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeStore(store)

		order, err := seeder.CatalogGraph().BuildInsertionOrder()
		if err != nil {
			return err
		}

		color.New(color.FgCyan, color.Bold).Println("📊 Table status:")
		mismatches := 0
		for _, table := range order {
			n, err := store.CountRows(ctx, table)
			if err != nil {
				return err
			}

			line := fmt.Sprintf("   %-22s %8d", table, n)
			if want, ok := expected[table]; ok && int64(want) != n {
				mismatches++
				color.Red("%s  ❌ expected %d", line, want)
				continue
			}
			fmt.Println(line)
		}

		if expected != nil {
			if mismatches > 0 {
				return fmt.Errorf("%w: %d table(s) differ from %s", seeder.ErrCountMismatch, mismatches, statusAgainst)
			}
			color.Green("✅ All tables match the report")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().StringVar(&statusAgainst, "against", "", "Compare counts with a run report")
}
