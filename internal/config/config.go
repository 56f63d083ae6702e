package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/spf13/viper"
)

// ErrMissingCount is returned when a record count is absent from a counts map.
var ErrMissingCount = errors.New("missing record count")

const (
	CommitRun   = "run"
	CommitBatch = "batch"
)

type Config struct {
	Database Database `json:"database" mapstructure:"database"`
	Records  Records  `json:"records" mapstructure:"records"`
	Seed     Seed     `json:"seed" mapstructure:"seed"`
}

type Database struct {
	Provider string `json:"provider" mapstructure:"provider"`
	URLEnv   string `json:"url_env" mapstructure:"url_env"`
	Host     string `json:"host" mapstructure:"host"`
	Port     int    `json:"port" mapstructure:"port"`
	User     string `json:"user" mapstructure:"user"`
	Password string `json:"password" mapstructure:"password"`
	Name     string `json:"name" mapstructure:"name"`
	SSLMode  string `json:"sslmode" mapstructure:"sslmode"`
}

// Records holds the requested row count per generated entity.
type Records struct {
	Users         int `json:"users" mapstructure:"users"`
	Persons       int `json:"persons" mapstructure:"persons"`
	Companies     int `json:"companies" mapstructure:"companies"`
	Locations     int `json:"locations" mapstructure:"locations"`
	Subscriptions int `json:"subscriptions" mapstructure:"subscriptions"`
	Payments      int `json:"payments" mapstructure:"payments"`
	Media         int `json:"media" mapstructure:"media"`
	Comments      int `json:"comments" mapstructure:"comments"`
	Ratings       int `json:"ratings" mapstructure:"ratings"`
	WatchLater    int `json:"watch_later" mapstructure:"watch_later"`
}

type Seed struct {
	BatchSize         int     `json:"batch_size" mapstructure:"batch_size"`
	MovieRatio        float64 `json:"movie_ratio" mapstructure:"movie_ratio"`
	CommitMode        string  `json:"commit_mode" mapstructure:"commit_mode"`
	RandomSeed        uint64  `json:"random_seed" mapstructure:"random_seed"`
	MaxUniqueAttempts int     `json:"max_unique_attempts" mapstructure:"max_unique_attempts"`
	Verify            bool    `json:"verify" mapstructure:"verify"`
	Report            string  `json:"report" mapstructure:"report"`
}

// RecordKeys lists the keys accepted under "records", in pipeline order.
var RecordKeys = []string{
	"users", "persons", "companies", "locations", "subscriptions",
	"payments", "media", "comments", "ratings", "watch_later",
}

var defaultRecords = Records{
	Users:         1000,
	Persons:       200,
	Companies:     50,
	Locations:     100,
	Subscriptions: 1200,
	Payments:      5000,
	Media:         500,
	Comments:      3000,
	Ratings:       4000,
	WatchLater:    2000,
}

// SetDefaults registers default values on v so that Unmarshal fills every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("database.provider", "postgresql")
	v.SetDefault("database.url_env", "DATABASE_URL")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.sslmode", "disable")

	for key, n := range defaultRecords.Map() {
		v.SetDefault("records."+key, n)
	}

	v.SetDefault("seed.batch_size", 100)
	v.SetDefault("seed.movie_ratio", 0.7)
	v.SetDefault("seed.commit_mode", CommitRun)
	v.SetDefault("seed.random_seed", 0)
	v.SetDefault("seed.max_unique_attempts", 1000)
}

// Load reads the configuration from the global viper instance.
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

func LoadFrom(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Database.Provider = strings.ToLower(cfg.Database.Provider)
	cfg.Seed.CommitMode = strings.ToLower(cfg.Seed.CommitMode)
	if cfg.Database.Port == 0 {
		cfg.Database.Port = defaultPort(cfg.Database.Provider)
	}

	return &cfg, nil
}

func defaultPort(provider string) int {
	switch provider {
	case "mysql":
		return 3306
	case "sqlite", "sqlite3":
		return 0
	default:
		return 5432
	}
}

func (c *Config) Validate() error {
	supportedProviders := []string{"postgresql", "postgres", "mysql", "sqlite", "sqlite3"}
	supported := false
	for _, provider := range supportedProviders {
		if c.Database.Provider == provider {
			supported = true
			break
		}
	}
	if !supported {
		return fmt.Errorf("unsupported database provider: %s. Supported providers: %v", c.Database.Provider, supportedProviders)
	}

	for key, n := range c.Records.Map() {
		if n < 0 {
			return fmt.Errorf("records.%s cannot be negative (got %d)", key, n)
		}
	}

	if c.Seed.BatchSize < 1 {
		return fmt.Errorf("seed.batch_size must be at least 1 (got %d)", c.Seed.BatchSize)
	}
	if c.Seed.MovieRatio < 0 || c.Seed.MovieRatio > 1 {
		return fmt.Errorf("seed.movie_ratio must be within [0, 1] (got %g)", c.Seed.MovieRatio)
	}
	if c.Seed.CommitMode != CommitRun && c.Seed.CommitMode != CommitBatch {
		return fmt.Errorf("seed.commit_mode must be %q or %q (got %q)", CommitRun, CommitBatch, c.Seed.CommitMode)
	}
	if c.Seed.MaxUniqueAttempts < 1 {
		return fmt.Errorf("seed.max_unique_attempts must be at least 1 (got %d)", c.Seed.MaxUniqueAttempts)
	}

	return nil
}

// GetDatabaseURL prefers the URL from the configured environment variable and
// falls back to building one from the discrete connection fields.
func (c *Config) GetDatabaseURL() (string, error) {
	if dbURL := os.Getenv(c.Database.URLEnv); dbURL != "" {
		return dbURL, nil
	}

	db := c.Database
	if db.Name == "" {
		return "", fmt.Errorf("database URL not found in environment variable %s and database.name is not set", db.URLEnv)
	}

	switch db.Provider {
	case "mysql":
		mc := mysql.NewConfig()
		mc.User = db.User
		mc.Passwd = db.Password
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(db.Host, strconv.Itoa(db.Port))
		mc.DBName = db.Name
		mc.ParseTime = true
		return mc.FormatDSN(), nil
	case "sqlite", "sqlite3":
		return "sqlite://" + db.Name, nil
	default:
		u := url.URL{
			Scheme: "postgres",
			Host:   net.JoinHostPort(db.Host, strconv.Itoa(db.Port)),
			Path:   "/" + db.Name,
		}
		if db.User != "" {
			if db.Password != "" {
				u.User = url.UserPassword(db.User, db.Password)
			} else {
				u.User = url.User(db.User)
			}
		}
		if db.SSLMode != "" {
			u.RawQuery = url.Values{"sslmode": {db.SSLMode}}.Encode()
		}
		return u.String(), nil
	}
}

// Map returns the record counts keyed by their configuration names.
func (r Records) Map() map[string]int {
	return map[string]int{
		"users":         r.Users,
		"persons":       r.Persons,
		"companies":     r.Companies,
		"locations":     r.Locations,
		"subscriptions": r.Subscriptions,
		"payments":      r.Payments,
		"media":         r.Media,
		"comments":      r.Comments,
		"ratings":       r.Ratings,
		"watch_later":   r.WatchLater,
	}
}

// RecordsFromMap builds Records from an entity-name → count mapping. Every key
// in RecordKeys must be present; unknown keys are rejected.
func RecordsFromMap(m map[string]int) (Records, error) {
	for key := range m {
		if !isRecordKey(key) {
			return Records{}, fmt.Errorf("unknown record key %q", key)
		}
	}
	for _, key := range RecordKeys {
		if _, ok := m[key]; !ok {
			return Records{}, fmt.Errorf("%w: %s", ErrMissingCount, key)
		}
	}

	return Records{
		Users:         m["users"],
		Persons:       m["persons"],
		Companies:     m["companies"],
		Locations:     m["locations"],
		Subscriptions: m["subscriptions"],
		Payments:      m["payments"],
		Media:         m["media"],
		Comments:      m["comments"],
		Ratings:       m["ratings"],
		WatchLater:    m["watch_later"],
	}, nil
}

func isRecordKey(key string) bool {
	for _, k := range RecordKeys {
		if k == key {
			return true
		}
	}
	return false
}
