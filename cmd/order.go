package cmd

import (
	"fmt"
	"strings"

	"github.com/Lumos-Labs-HQ/streamseed/internal/seeder"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "Show the table insertion and clear order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		graph := seeder.CatalogGraph()
		order, err := graph.BuildInsertionOrder()
		if err != nil {
			return err
		}
		clearOrder, err := graph.ClearOrder()
		if err != nil {
			return err
		}

		color.New(color.FgCyan, color.Bold).Println("📋 Insertion order:")
		for i, name := range order {
			table, _ := graph.Table(name)
			deps := ""
			if len(table.Dependencies) > 0 {
				deps = color.New(color.FgHiBlack).Sprintf(" (after %s)", strings.Join(table.Dependencies, ", "))
			}
			fmt.Printf("   %2d. %s%s\n", i+1, name, deps)
		}

		fmt.Println()
		color.New(color.FgCyan, color.Bold).Println("🗑️  Clear order:")
		fmt.Printf("   %s\n", strings.Join(clearOrder, " → "))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(orderCmd)
}
