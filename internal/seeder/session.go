package seeder

import (
	"context"
	"fmt"

	"github.com/Lumos-Labs-HQ/streamseed/internal/config"
	"github.com/Lumos-Labs-HQ/streamseed/internal/database"
)

// session owns the transaction a run writes through. In run mode one
// transaction spans clear and every insert; in batch mode each flushed batch
// is committed and a fresh transaction is opened for the next one.
type session struct {
	store   database.Store
	tx      database.Tx
	mode    string
	dirty   bool
	commits int
}

func newSession(ctx context.Context, store database.Store, mode string) (*session, error) {
	s := &session{store: store, mode: mode}
	if err := s.begin(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *session) begin(ctx context.Context) error {
	tx, err := s.store.Begin(ctx)
	if err != nil {
		return err
	}
	s.tx = tx
	s.dirty = false
	return nil
}

func (s *session) insert(ctx context.Context, table string, columns []string, rows [][]any) error {
	if err := s.tx.InsertRows(ctx, table, columns, rows); err != nil {
		return err
	}
	s.dirty = true
	if s.mode == config.CommitBatch {
		return s.checkpoint(ctx)
	}
	return nil
}

func (s *session) clear(ctx context.Context, table string) error {
	if err := s.tx.ClearTable(ctx, table); err != nil {
		return err
	}
	s.dirty = true
	return nil
}

// checkpoint commits pending work in batch mode and is a no-op in run mode.
func (s *session) checkpoint(ctx context.Context) error {
	if s.mode != config.CommitBatch || !s.dirty {
		return nil
	}
	if err := s.commit(ctx); err != nil {
		return err
	}
	return s.begin(ctx)
}

func (s *session) commit(ctx context.Context) error {
	tx := s.tx
	s.tx = nil
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	s.commits++
	s.dirty = false
	return nil
}

// finish commits whatever the open transaction holds.
func (s *session) finish(ctx context.Context) error {
	if s.tx == nil {
		return nil
	}
	return s.commit(ctx)
}

// abort rolls back the open transaction, if any. Work already committed by
// batch-mode checkpoints stays in the store.
func (s *session) abort(ctx context.Context) error {
	if s.tx == nil {
		return nil
	}
	tx := s.tx
	s.tx = nil
	return tx.Rollback(ctx)
}

// batch buffers rows for one table and flushes them through the session when
// full.
type batch struct {
	table   *TableInfo
	size    int
	rows    [][]any
	written int
}

func newBatch(table *TableInfo, size int) *batch {
	return &batch{table: table, size: size, rows: make([][]any, 0, size)}
}

func (b *batch) add(ctx context.Context, s *session, row []any) error {
	b.rows = append(b.rows, row)
	if len(b.rows) >= b.size {
		return b.flush(ctx, s)
	}
	return nil
}

func (b *batch) flush(ctx context.Context, s *session) error {
	if len(b.rows) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.insert(ctx, b.table.Name, b.table.Columns, b.rows); err != nil {
		return fmt.Errorf("failed to insert batch into %s: %w", b.table.Name, err)
	}
	b.written += len(b.rows)
	b.rows = make([][]any, 0, b.size)
	return nil
}
