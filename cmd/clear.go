package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Lumos-Labs-HQ/streamseed/internal/seeder"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all rows from the streaming tables",
	Long: `
Delete every row from every streaming table, children before parents, in a
single transaction. The tables themselves are kept.

⚠️  WARNING: This will permanently delete all data in these tables!

Use --force to skip the confirmation prompt.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if !askUserConfirmation(cmd, "Are you sure you want to delete all data?") {
			color.Yellow("❌ Clear cancelled")
			return nil
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		store, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeStore(store)

		p, err := seeder.New(store, seeder.OptionsFromConfig(cfg, os.Stdout))
		if err != nil {
			return err
		}
		return p.Clear(ctx)
	},
}

func init() {
	rootCmd.AddCommand(clearCmd)
}
