package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Lumos-Labs-HQ/streamseed/internal/config"
	"github.com/Lumos-Labs-HQ/streamseed/internal/export"
	"github.com/Lumos-Labs-HQ/streamseed/internal/seeder"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Clear the database and fill it with synthetic data",
	Long: `
Delete every row from the streaming schema and regenerate it.

Record counts come from the "records" section of the config file and can be
overridden per entity with flags, for example:

  streamseed seed --users 50 --media 20 --seed 42

⚠️  WARNING: all existing data in the target tables is deleted first!

Use --force to skip the confirmation prompt.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if err := seeder.CheckPreconditions(cfg.Records); err != nil {
			return err
		}

		if !askUserConfirmation(cmd, "This will delete all existing data. Continue?") {
			color.Yellow("❌ Seeding cancelled")
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

		summary, err := p.Run(ctx, cfg.Records)
		if err != nil {
			return fmt.Errorf("data population failed: %w", err)
		}

		printSummary(summary)

		if cfg.Seed.Verify {
			if err := p.Verify(ctx, summary); err != nil {
				return fmt.Errorf("verification failed: %w", err)
			}
			color.Green("🔍 Row counts verified")
		}

		if cfg.Seed.Report != "" {
			if err := export.WriteReport(summary, cfg.Seed.Report); err != nil {
				return err
			}
			color.Green("📄 Report written to %s", cfg.Seed.Report)
		}
		return nil
	},
}

func printSummary(summary *seeder.Summary) {
	fmt.Println()
	color.New(color.FgCyan, color.Bold).Println("📊 Rows generated:")
	total := 0
	for _, tc := range summary.Tables {
		fmt.Printf("   %-22s %8d\n", tc.Table, tc.Rows)
		total += tc.Rows
	}
	fmt.Printf("   %-22s %8d\n", "total", total)
}

var seedFlagKeys = map[string]string{
	"batch-size":  "seed.batch_size",
	"movie-ratio": "seed.movie_ratio",
	"commit-mode": "seed.commit_mode",
	"seed":        "seed.random_seed",
	"max-unique":  "seed.max_unique_attempts",
	"verify":      "seed.verify",
	"report":      "seed.report",
}

func init() {
	rootCmd.AddCommand(seedCmd)

	flags := seedCmd.Flags()
	for _, key := range config.RecordKeys {
		flag := recordFlagName(key)
		flags.Int(flag, 0, fmt.Sprintf("Number of %s rows to generate (overrides records.%s)", key, key))
		viper.BindPFlag("records."+key, flags.Lookup(flag))
	}

	flags.Int("batch-size", 0, "Rows per insert statement (overrides seed.batch_size)")
	flags.Float64("movie-ratio", 0, "Share of media stored as movies, 0-1 (overrides seed.movie_ratio)")
	flags.String("commit-mode", "", `Commit once per "run" or per "batch" (overrides seed.commit_mode)`)
	flags.Uint64("seed", 0, "Random seed; 0 picks one (overrides seed.random_seed)")
	flags.Int("max-unique", 0, "Attempts to find an unused email (overrides seed.max_unique_attempts)")
	flags.Bool("verify", false, "Compare table row counts with the run summary afterwards")
	flags.String("report", "", "Write a YAML or JSON run report to this path")

	for flag, key := range seedFlagKeys {
		viper.BindPFlag(key, flags.Lookup(flag))
	}
}

func recordFlagName(key string) string {
	if key == "watch_later" {
		return "watch-later"
	}
	return key
}
