package seeder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Lumos-Labs-HQ/streamseed/internal/config"
	"github.com/Lumos-Labs-HQ/streamseed/internal/database"
	"github.com/fatih/color"
	"github.com/google/uuid"
)

// Populator fills the streaming schema with synthetic rows in foreign-key
// dependency order.
type Populator struct {
	store     database.Store
	generator *DataGenerator
	graph     *DependencyGraph
	tables    map[string]*TableInfo
	opts      Options
	out       io.Writer
}

func New(store database.Store, opts Options) (*Populator, error) {
	if opts.BatchSize < 1 {
		return nil, fmt.Errorf("batch size must be at least 1 (got %d)", opts.BatchSize)
	}
	if opts.MovieRatio < 0 || opts.MovieRatio > 1 {
		return nil, fmt.Errorf("movie ratio must be within [0, 1] (got %g)", opts.MovieRatio)
	}
	if opts.CommitMode == "" {
		opts.CommitMode = config.CommitRun
	}
	if opts.CommitMode != config.CommitRun && opts.CommitMode != config.CommitBatch {
		return nil, fmt.Errorf("unknown commit mode %q", opts.CommitMode)
	}
	if opts.MaxUniqueAttempts < 1 {
		opts.MaxUniqueAttempts = 1
	}
	out := opts.Output
	if out == nil {
		out = io.Discard
	}

	graph := CatalogGraph()
	if _, err := graph.BuildInsertionOrder(); err != nil {
		return nil, fmt.Errorf("failed to build insertion order: %w", err)
	}
	tables, err := resolveTables(graph, populatedTables)
	if err != nil {
		return nil, err
	}

	return &Populator{
		store:     store,
		generator: NewDataGenerator(opts.Seed),
		graph:     graph,
		tables:    tables,
		opts:      opts,
		out:       out,
	}, nil
}

func (p *Populator) info(format string, args ...any) {
	color.New(color.FgCyan).Fprintf(p.out, format+"\n", args...)
}

func (p *Populator) success(format string, args ...any) {
	color.New(color.FgGreen).Fprintf(p.out, format+"\n", args...)
}

func (p *Populator) warn(format string, args ...any) {
	color.New(color.FgYellow).Fprintf(p.out, format+"\n", args...)
}

// populatedTables lists every table a Run writes to.
var populatedTables = []string{
	TableUsers, TablePersons, TableProductionCompanies, TableStorageLocations,
	TableSubscriptions, TablePayments, TableMedia, TableMovies, TableSeries,
	TableSeriesStorage, TableEpisodes, TableComments, TableRatings, TableWatchLater,
}

// resolveTables looks up names in graph so stages never meet a missing table.
func resolveTables(graph *DependencyGraph, names []string) (map[string]*TableInfo, error) {
	tables := make(map[string]*TableInfo, len(names))
	for _, name := range names {
		t, ok := graph.Table(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownTable, name)
		}
		tables[name] = t
	}
	return tables, nil
}

func (p *Populator) table(name string) *TableInfo {
	return p.tables[name]
}

// Clear deletes every row from every table, children first, in one
// transaction.
func (p *Populator) Clear(ctx context.Context) error {
	s, err := newSession(ctx, p.store, config.CommitRun)
	if err != nil {
		return err
	}
	if err := p.clearTables(ctx, s); err != nil {
		s.abort(ctx)
		return err
	}
	return s.finish(ctx)
}

func (p *Populator) clearTables(ctx context.Context, s *session) error {
	p.info("🗑️  Clearing existing data from tables...")

	order, err := p.graph.ClearOrder()
	if err != nil {
		return err
	}
	for _, name := range order {
		p.info("  Clearing table: %s", name)
		if err := s.clear(ctx, name); err != nil {
			return fmt.Errorf("failed to clear tables: %w", err)
		}
	}
	if err := s.checkpoint(ctx); err != nil {
		return err
	}

	p.success("✅ All tables cleared")
	return nil
}

// CheckPreconditions rejects record counts that ask for dependent rows whose
// parent entity is set to zero.
func CheckPreconditions(records config.Records) error {
	type dep struct {
		child   string
		count   int
		parent  string
		parents int
	}
	deps := []dep{
		{TableSubscriptions, records.Subscriptions, TableUsers, records.Users},
		{TablePayments, records.Payments, TableSubscriptions, records.Subscriptions},
		{TableMedia, records.Media, TablePersons, records.Persons},
		{TableMedia, records.Media, TableProductionCompanies, records.Companies},
		{TableMedia, records.Media, TableStorageLocations, records.Locations},
		{TableComments, records.Comments, TableUsers, records.Users},
		{TableComments, records.Comments, TableMedia, records.Media},
		{TableRatings, records.Ratings, TableUsers, records.Users},
		{TableRatings, records.Ratings, TableMedia, records.Media},
		{TableWatchLater, records.WatchLater, TableUsers, records.Users},
		{TableWatchLater, records.WatchLater, TableMedia, records.Media},
	}

	var problems []string
	for _, d := range deps {
		if d.count > 0 && d.parents == 0 {
			problems = append(problems, fmt.Sprintf("%s (%d requested) needs %s", d.child, d.count, d.parent))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrEmptyPool, strings.Join(problems, "; "))
	}
	return nil
}

// Run clears the store and regenerates every entity. On error the open
// transaction is rolled back and the error is returned.
func (p *Populator) Run(ctx context.Context, records config.Records) (*Summary, error) {
	for key, n := range records.Map() {
		if n < 0 {
			return nil, fmt.Errorf("record count for %s cannot be negative (got %d)", key, n)
		}
	}
	if err := CheckPreconditions(records); err != nil {
		return nil, err
	}

	summary := &Summary{
		RunID:      uuid.NewString(),
		Seed:       p.generator.Seed(),
		CommitMode: p.opts.CommitMode,
		StartedAt:  time.Now(),
	}
	for _, name := range p.graph.GetOrder() {
		summary.record(name, 0)
	}

	p.info("🌱 Starting data population (run %s, seed %d, commit mode %s)...", summary.RunID, summary.Seed, summary.CommitMode)

	s, err := newSession(ctx, p.store, p.opts.CommitMode)
	if err != nil {
		return nil, fmt.Errorf("failed to start population: %w", err)
	}

	if err := p.pipeline(ctx, s, records, summary); err != nil {
		p.warn("🔄 Rolling back transaction due to error...")
		if rbErr := s.abort(ctx); rbErr != nil {
			return nil, fmt.Errorf("population failed and rollback failed: %v (original: %w)", rbErr, err)
		}
		if s.commits > 0 {
			p.warn("⚠️  %d batch commit(s) were already applied and remain in the store", s.commits)
		}
		return nil, err
	}

	if err := s.finish(ctx); err != nil {
		s.abort(ctx)
		return nil, err
	}

	summary.Duration = time.Since(summary.StartedAt)
	p.success("\n✅ Data population completed successfully in %s", summary.Duration.Round(time.Millisecond))
	return summary, nil
}

func (p *Populator) pipeline(ctx context.Context, s *session, records config.Records, summary *Summary) error {
	if err := p.clearTables(ctx, s); err != nil {
		return err
	}

	users, err := p.populateUsers(ctx, s, records.Users, summary)
	if err != nil {
		return err
	}
	persons, err := p.populatePersons(ctx, s, records.Persons, summary)
	if err != nil {
		return err
	}
	companies, err := p.populateCompanies(ctx, s, records.Companies, summary)
	if err != nil {
		return err
	}
	locations, err := p.populateLocations(ctx, s, records.Locations, summary)
	if err != nil {
		return err
	}

	subscriptions, err := p.populateSubscriptions(ctx, s, records.Subscriptions, users, summary)
	if err != nil {
		return err
	}
	if err := p.populatePayments(ctx, s, records.Payments, subscriptions, summary); err != nil {
		return err
	}

	media, err := p.populateMedia(ctx, s, records.Media, persons, companies, locations, summary)
	if err != nil {
		return err
	}
	series, err := p.splitMedia(ctx, s, media, summary)
	if err != nil {
		return err
	}
	if err := p.populateSeriesStorage(ctx, s, series, summary); err != nil {
		return err
	}
	if err := p.populateEpisodes(ctx, s, series, summary); err != nil {
		return err
	}

	if err := p.populateComments(ctx, s, records.Comments, users, media, summary); err != nil {
		return err
	}
	if err := p.populateRatings(ctx, s, records.Ratings, users, media, summary); err != nil {
		return err
	}
	return p.populateWatchLater(ctx, s, records.WatchLater, users, media, summary)
}

// populateEntity inserts count rows into table with sequential ids starting
// at 1. Every parent pool must be non-empty when count > 0.
func (p *Populator) populateEntity(ctx context.Context, s *session, tableName string, count int, parents []*IDPool, row func(id int) ([]any, error), summary *Summary) (*IDPool, error) {
	table := p.table(tableName)
	pool := NewIDPool(tableName)

	p.info("  📝 Populating %d %s...", count, label(tableName))
	if count == 0 {
		return pool, nil
	}
	for _, parent := range parents {
		if parent.Len() == 0 {
			return nil, fmt.Errorf("%s: %w: %s", tableName, ErrEmptyPool, parent.Entity())
		}
	}

	b := newBatch(table, p.opts.BatchSize)
	for i := 0; i < count; i++ {
		id := i + 1
		values, err := row(id)
		if err != nil {
			return nil, fmt.Errorf("failed to generate %s row %d: %w", tableName, id, err)
		}
		if err := b.add(ctx, s, values); err != nil {
			return nil, err
		}
		pool.Add(id)
	}
	if err := b.flush(ctx, s); err != nil {
		return nil, err
	}
	if err := s.checkpoint(ctx); err != nil {
		return nil, err
	}

	summary.record(tableName, b.written)
	p.success("  ✅ %s population completed", label(tableName))
	return pool, nil
}

// pick draws a uniformly random id from pool.
func (p *Populator) pick(pool *IDPool) int {
	return pool.ids[p.generator.Pick(len(pool.ids))]
}

func label(table string) string {
	return strings.ReplaceAll(table, "_", " ")
}

// Verify compares the store's row counts with what summary says was written.
func (p *Populator) Verify(ctx context.Context, summary *Summary) error {
	var errs []error
	for _, tc := range summary.Tables {
		n, err := p.store.CountRows(ctx, tc.Table)
		if err != nil {
			return err
		}
		if n != int64(tc.Rows) {
			errs = append(errs, fmt.Errorf("%w: %s has %d rows, expected %d", ErrCountMismatch, tc.Table, n, tc.Rows))
		}
	}
	return errors.Join(errs...)
}
