package seeder

import (
	"errors"
	"io"
	"time"

	"github.com/Lumos-Labs-HQ/streamseed/internal/config"
)

var (
	// ErrEmptyPool means a dependent entity was requested but its parent
	// entity produced no rows.
	ErrEmptyPool = errors.New("parent id pool is empty")
	// ErrUniqueExhausted means the generator kept returning values that were
	// already used in this run.
	ErrUniqueExhausted = errors.New("exhausted unique value space")
	// ErrCountMismatch means the store holds a different number of rows than
	// the run generated.
	ErrCountMismatch = errors.New("row count mismatch")
	// ErrUnknownTable means a table the populator writes to is missing from
	// the catalog.
	ErrUnknownTable = errors.New("table not in catalog")
)

// Options controls a population run. The zero value is not usable; start from
// DefaultOptions or OptionsFromConfig.
type Options struct {
	BatchSize         int
	MovieRatio        float64
	CommitMode        string
	Seed              uint64
	MaxUniqueAttempts int
	Output            io.Writer
}

func DefaultOptions() Options {
	return Options{
		BatchSize:         100,
		MovieRatio:        0.7,
		CommitMode:        config.CommitRun,
		MaxUniqueAttempts: 1000,
		Output:            io.Discard,
	}
}

func OptionsFromConfig(cfg *config.Config, out io.Writer) Options {
	return Options{
		BatchSize:         cfg.Seed.BatchSize,
		MovieRatio:        cfg.Seed.MovieRatio,
		CommitMode:        cfg.Seed.CommitMode,
		Seed:              cfg.Seed.RandomSeed,
		MaxUniqueAttempts: cfg.Seed.MaxUniqueAttempts,
		Output:            out,
	}
}

type TableInfo struct {
	Name         string
	Columns      []string
	PrimaryKey   string
	ForeignKeys  []ForeignKey
	Dependencies []string
}

type ForeignKey struct {
	Column    string
	RefTable  string
	RefColumn string
}

// ColumnIndex returns the position of column in Columns, or -1.
func (t *TableInfo) ColumnIndex(column string) int {
	for i, c := range t.Columns {
		if c == column {
			return i
		}
	}
	return -1
}

// IDPool records the primary keys generated for one entity in the current
// run, in insertion order.
type IDPool struct {
	entity string
	ids    []int
	set    map[int]struct{}
}

func NewIDPool(entity string) *IDPool {
	return &IDPool{entity: entity, set: make(map[int]struct{})}
}

func (p *IDPool) Entity() string { return p.entity }

func (p *IDPool) Add(id int) {
	if _, ok := p.set[id]; ok {
		return
	}
	p.set[id] = struct{}{}
	p.ids = append(p.ids, id)
}

func (p *IDPool) Len() int {
	if p == nil {
		return 0
	}
	return len(p.ids)
}

func (p *IDPool) Contains(id int) bool {
	_, ok := p.set[id]
	return ok
}

// IDs returns a copy of the pool contents.
func (p *IDPool) IDs() []int {
	out := make([]int, len(p.ids))
	copy(out, p.ids)
	return out
}

// Series is a media id that landed in the series table, with the season count
// it was stored with.
type Series struct {
	ID      int
	Seasons int
}

// TableCount is the number of rows a run wrote to one table.
type TableCount struct {
	Table string
	Rows  int
}

// Summary describes a finished run.
type Summary struct {
	RunID      string
	Seed       uint64
	CommitMode string
	StartedAt  time.Time
	Duration   time.Duration
	Tables     []TableCount
}

// Rows returns the row count recorded for table.
func (s *Summary) Rows(table string) int {
	for _, tc := range s.Tables {
		if tc.Table == table {
			return tc.Rows
		}
	}
	return 0
}

func (s *Summary) record(table string, rows int) {
	for i := range s.Tables {
		if s.Tables[i].Table == table {
			s.Tables[i].Rows += rows
			return
		}
	}
	s.Tables = append(s.Tables, TableCount{Table: table, Rows: rows})
}
