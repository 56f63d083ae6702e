package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Lumos-Labs-HQ/streamseed/template"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const (
	configFileName = "streamseed.config.json"
	schemaFilePath = "db/schema/streaming.sql"
)

var (
	sqliteFlag     bool
	postgresqlFlag bool
	mysqlFlag      bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a config file and the streaming schema DDL",
	Long: `Write streamseed.config.json, db/schema/streaming.sql and a DATABASE_URL
entry in .env for the chosen database. Existing files are kept unless --force
is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbType := template.PostgreSQL
		flagCount := 0

		if sqliteFlag {
			dbType = template.SQLite
			flagCount++
		}
		if postgresqlFlag {
			dbType = template.PostgreSQL
			flagCount++
		}
		if mysqlFlag {
			dbType = template.MySQL
			flagCount++
		}

		if flagCount > 1 {
			return fmt.Errorf("please specify only one database type (--sqlite, --postgresql, or --mysql)")
		}

		force, _ := cmd.Flags().GetBool("force")
		return initializeProject(dbType, force)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&sqliteFlag, "sqlite", false, "Initialize for SQLite")
	initCmd.Flags().BoolVar(&postgresqlFlag, "postgresql", false, "Initialize for PostgreSQL")
	initCmd.Flags().BoolVar(&mysqlFlag, "mysql", false, "Initialize for MySQL")
}

func initializeProject(dbType template.DatabaseType, force bool) error {
	tmpl := template.NewProjectTemplate(dbType)

	for _, dir := range tmpl.GetDirectoryStructure() {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	files := map[string]string{
		configFileName: tmpl.GetConfig(),
		schemaFilePath: tmpl.GetSchema(),
	}

	var written, skipped []string
	for _, path := range []string{configFileName, schemaFilePath} {
		if _, err := os.Stat(path); err == nil && !force {
			skipped = append(skipped, path)
			continue
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", path, err)
		}
		if err := os.WriteFile(path, []byte(files[path]), 0644); err != nil {
			return fmt.Errorf("failed to create file %s: %w", path, err)
		}
		written = append(written, path)
	}

	if err := handleEnvFile(tmpl.GetEnvTemplate()); err != nil {
		return fmt.Errorf("failed to handle .env file: %w", err)
	}

	color.Green("✅ Initialized StreamSeed for %s", dbType)
	for _, path := range written {
		fmt.Printf("   📝 %s\n", path)
	}
	for _, path := range skipped {
		color.Yellow("   ℹ️  Skipped %s (already exists, use --force to overwrite)", path)
	}

	if os.Getenv("DATABASE_URL") != "" {
		fmt.Println()
		fmt.Println("ℹ️  Using existing DATABASE_URL from environment")
	}

	fmt.Println()
	fmt.Printf("🚀 Next steps:\n")
	fmt.Printf("   apply %s to your database\n", schemaFilePath)
	fmt.Printf("   streamseed seed --users 100   # Populate the tables\n")
	fmt.Printf("   streamseed status             # Check row counts\n")
	return nil
}

func handleEnvFile(defaultEnvContent string) error {
	envPath := ".env"

	existingContent, err := os.ReadFile(envPath)
	if err != nil {
		if os.IsNotExist(err) {
			return os.WriteFile(envPath, []byte(defaultEnvContent), 0644)
		}
		return err
	}

	existingStr := string(existingContent)
	if strings.Contains(existingStr, "DATABASE_URL") {
		return nil
	}

	if len(existingStr) > 0 && !strings.HasSuffix(existingStr, "\n") {
		existingStr += "\n"
	}
	existingStr += "\n# Added by StreamSeed\n" + defaultEnvContent

	return os.WriteFile(envPath, []byte(existingStr), 0644)
}
