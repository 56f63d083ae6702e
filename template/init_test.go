package template

import (
	"strings"
	"testing"

	"github.com/Lumos-Labs-HQ/streamseed/internal/config"
	"github.com/spf13/viper"
)

func TestGetSchema(t *testing.T) {
	for _, dbType := range []DatabaseType{SQLite, MySQL, PostgreSQL} {
		t.Run(string(dbType), func(t *testing.T) {
			schema := NewProjectTemplate(dbType).GetSchema()

			if n := strings.Count(schema, "CREATE TABLE"); n != 14 {
				t.Errorf("Expected 14 tables, got %d", n)
			}
			if strings.Contains(schema, "{") {
				t.Errorf("Unreplaced placeholder in schema:\n%s", schema)
			}
			if dbType == MySQL && !strings.Contains(schema, "ENGINE=InnoDB") {
				t.Error("Expected InnoDB tables for MySQL")
			}
		})
	}
}

func TestGetDropSchema(t *testing.T) {
	drop := NewProjectTemplate(PostgreSQL).GetDropSchema()
	lines := strings.Split(strings.TrimSpace(drop), "\n")
	if len(lines) != len(tables) {
		t.Fatalf("Expected %d drop statements, got %d", len(tables), len(lines))
	}
	if lines[0] != "DROP TABLE IF EXISTS watch_later_lists CASCADE;" {
		t.Errorf("Expected children to be dropped first, got %q", lines[0])
	}
	if strings.Contains(NewProjectTemplate(SQLite).GetDropSchema(), "CASCADE") {
		t.Error("SQLite drop statements must not use CASCADE")
	}
}

func TestGetConfigLoads(t *testing.T) {
	v := viper.New()
	v.SetConfigType("json")
	if err := v.ReadConfig(strings.NewReader(NewProjectTemplate(MySQL).GetConfig())); err != nil {
		t.Fatalf("Failed to read generated config: %v", err)
	}

	cfg, err := config.LoadFrom(v)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Generated config is invalid: %v", err)
	}
	if cfg.Database.Provider != "mysql" {
		t.Errorf("Expected provider mysql, got %s", cfg.Database.Provider)
	}
	if cfg.Records.Payments != 5000 || !cfg.Seed.Verify {
		t.Errorf("Unexpected defaults: %+v", cfg)
	}
}

func TestValidateDatabaseType(t *testing.T) {
	tests := map[string]DatabaseType{
		"sqlite3":  SQLite,
		"MySQL":    MySQL,
		"postgres": PostgreSQL,
		"oracle":   PostgreSQL,
	}
	for in, want := range tests {
		if got := ValidateDatabaseType(in); got != want {
			t.Errorf("ValidateDatabaseType(%q) = %s, want %s", in, got, want)
		}
	}
}
