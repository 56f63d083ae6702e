package seeder

import (
	"context"
	"errors"
	"fmt"

	"github.com/Lumos-Labs-HQ/streamseed/internal/database"
)

var errInjected = errors.New("injected store failure")

// memStore keeps committed rows per table and applies a transaction's
// operations only when it commits.
type memStore struct {
	committed map[string][][]any
	inserts   int
	commits   int
	rollbacks int

	// failTable makes the insert into failTable fail once failAfter inserts
	// into it have succeeded.
	failTable string
	failAfter int
	seenFail  int
}

func newMemStore() *memStore {
	return &memStore{committed: make(map[string][][]any)}
}

func (m *memStore) Connect(ctx context.Context, url string) error { return nil }
func (m *memStore) Close() error                                 { return nil }
func (m *memStore) Ping(ctx context.Context) error               { return nil }

func (m *memStore) Begin(ctx context.Context) (database.Tx, error) {
	return &memTx{store: m}, nil
}

func (m *memStore) CountRows(ctx context.Context, table string) (int64, error) {
	return int64(len(m.committed[table])), nil
}

func (m *memStore) rows(table string) [][]any {
	return m.committed[table]
}

type memTx struct {
	store *memStore
	ops   []func()
	done  bool
}

func (t *memTx) InsertRows(ctx context.Context, table string, columns []string, rows [][]any) error {
	if t.done {
		return fmt.Errorf("transaction already closed")
	}
	s := t.store
	if table == s.failTable {
		if s.seenFail >= s.failAfter {
			return errInjected
		}
		s.seenFail++
	}
	s.inserts++

	copied := make([][]any, len(rows))
	copy(copied, rows)
	t.ops = append(t.ops, func() {
		s.committed[table] = append(s.committed[table], copied...)
	})
	return nil
}

func (t *memTx) ClearTable(ctx context.Context, table string) error {
	if t.done {
		return fmt.Errorf("transaction already closed")
	}
	t.ops = append(t.ops, func() { delete(t.store.committed, table) })
	return nil
}

func (t *memTx) Commit(ctx context.Context) error {
	if t.done {
		return fmt.Errorf("transaction already closed")
	}
	t.done = true
	for _, op := range t.ops {
		op()
	}
	t.store.commits++
	return nil
}

func (t *memTx) Rollback(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	t.ops = nil
	t.store.rollbacks++
	return nil
}
