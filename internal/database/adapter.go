package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/Lumos-Labs-HQ/streamseed/internal/database/common"
	"github.com/Lumos-Labs-HQ/streamseed/internal/database/mysql"
	"github.com/Lumos-Labs-HQ/streamseed/internal/database/postgres"
	"github.com/Lumos-Labs-HQ/streamseed/internal/database/sqlite"
)

// Tx is an open transaction on a Store.
type Tx = common.Tx

// Store is a connection to the relational database being populated.
type Store interface {
	Connect(ctx context.Context, url string) error
	Close() error
	Ping(ctx context.Context) error

	Begin(ctx context.Context) (Tx, error)
	CountRows(ctx context.Context, table string) (int64, error)
}

// Executor is implemented by stores that can run a DDL script.
type Executor interface {
	Exec(ctx context.Context, script string) error
}

// ErrUnsupportedProvider is returned for database providers without an adapter.
var ErrUnsupportedProvider = errors.New("unsupported database provider")

func NewAdapter(provider string) (Store, error) {
	switch provider {
	case "postgresql", "postgres":
		return postgres.New(), nil
	case "mysql":
		return mysql.New(), nil
	case "sqlite", "sqlite3":
		return sqlite.New(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedProvider, provider)
	}
}

// Open creates the adapter for provider, connects it and checks the
// connection is alive.
func Open(ctx context.Context, provider, url string) (Store, error) {
	store, err := NewAdapter(provider)
	if err != nil {
		return nil, err
	}
	if err := store.Connect(ctx, url); err != nil {
		return nil, err
	}
	if err := store.Ping(ctx); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}
