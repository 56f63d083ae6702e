package cmd

import (
	"context"
	"fmt"

	"github.com/Lumos-Labs-HQ/streamseed/internal/database"
	"github.com/Lumos-Labs-HQ/streamseed/template"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	schemaApply    bool
	schemaRecreate bool
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print or apply the streaming schema DDL",
	Long: `Print the CREATE TABLE statements for the configured database provider.

With --apply the statements are executed against the configured database.
--recreate drops the existing streaming tables first.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		tmpl := template.NewProjectTemplate(template.ValidateDatabaseType(cfg.Database.Provider))

		if !schemaApply {
			if schemaRecreate {
				fmt.Print(tmpl.GetDropSchema())
				fmt.Println()
			}
			fmt.Print(tmpl.GetSchema())
			return nil
		}

		if schemaRecreate && !askUserConfirmation(cmd, "Drop and recreate all streaming tables?") {
			color.Yellow("❌ Schema apply cancelled")
			return nil
		}

		ctx := context.Background()
		store, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeStore(store)

		exec, ok := store.(database.Executor)
		if !ok {
			return fmt.Errorf("provider %s cannot execute DDL", cfg.Database.Provider)
		}

		if schemaRecreate {
			if err := exec.Exec(ctx, tmpl.GetDropSchema()); err != nil {
				return fmt.Errorf("failed to drop tables: %w", err)
			}
			color.Yellow("🗑️  Dropped existing tables")
		}
		if err := exec.Exec(ctx, tmpl.GetSchema()); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
		color.Green("✅ Schema applied")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.Flags().BoolVar(&schemaApply, "apply", false, "Execute the DDL against the database")
	schemaCmd.Flags().BoolVar(&schemaRecreate, "recreate", false, "Drop the streaming tables first")
}
