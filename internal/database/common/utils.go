package common

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/squirrel"
)

// ErrInvalidIdentifier is returned for table or column names that are not
// plain SQL identifiers.
var ErrInvalidIdentifier = errors.New("invalid identifier")

var validIdentifier = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Tx is one open store transaction. Statements are parameterized; table and
// column names must pass ValidateIdentifiers.
type Tx interface {
	InsertRows(ctx context.Context, table string, columns []string, rows [][]any) error
	ClearTable(ctx context.Context, table string) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

func IsValidIdentifier(name string) bool {
	return validIdentifier.MatchString(name)
}

func ValidateIdentifiers(names ...string) error {
	for _, name := range names {
		if !IsValidIdentifier(name) {
			return fmt.Errorf("%w: %q", ErrInvalidIdentifier, name)
		}
	}
	return nil
}

// CheckRows verifies every row carries exactly one value per column.
func CheckRows(table string, columns []string, rows [][]any) error {
	for i, row := range rows {
		if len(row) != len(columns) {
			return fmt.Errorf("row %d for %s has %d values, expected %d", i, table, len(row), len(columns))
		}
	}
	return nil
}

// ChunkRows splits rows so no chunk binds more than maxParams placeholders.
// A chunk always holds at least one row. maxParams <= 0 means no limit.
func ChunkRows(rows [][]any, columns, maxParams int) [][][]any {
	if len(rows) == 0 {
		return nil
	}
	size := len(rows)
	if maxParams > 0 && columns > 0 {
		size = max(1, maxParams/columns)
	}

	chunks := make([][][]any, 0, (len(rows)+size-1)/size)
	for start := 0; start < len(rows); start += size {
		end := min(start+size, len(rows))
		chunks = append(chunks, rows[start:end])
	}
	return chunks
}

// SQLTx implements Tx over database/sql for drivers that share the
// INSERT ... VALUES (...), (...) form. A batch is split into several
// statements when it would exceed the driver's placeholder limit.
type SQLTx struct {
	tx        *sql.Tx
	qb        squirrel.StatementBuilderType
	maxParams int
}

func NewSQLTx(tx *sql.Tx, qb squirrel.StatementBuilderType, maxParams int) *SQLTx {
	return &SQLTx{tx: tx, qb: qb, maxParams: maxParams}
}

func (t *SQLTx) InsertRows(ctx context.Context, table string, columns []string, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}
	if err := ValidateIdentifiers(append([]string{table}, columns...)...); err != nil {
		return err
	}
	if err := CheckRows(table, columns, rows); err != nil {
		return err
	}

	for _, chunk := range ChunkRows(rows, len(columns), t.maxParams) {
		insert := t.qb.Insert(table).Columns(columns...)
		for _, row := range chunk {
			insert = insert.Values(row...)
		}

		query, args, err := insert.ToSql()
		if err != nil {
			return fmt.Errorf("failed to build insert for %s: %w", table, err)
		}
		if _, err := t.tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to insert into %s: %w", table, err)
		}
	}
	return nil
}

func (t *SQLTx) ClearTable(ctx context.Context, table string) error {
	if err := ValidateIdentifiers(table); err != nil {
		return err
	}

	query, args, err := t.qb.Delete(table).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete for %s: %w", table, err)
	}
	if _, err := t.tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to clear %s: %w", table, err)
	}
	return nil
}

func (t *SQLTx) Commit(ctx context.Context) error {
	return t.tx.Commit()
}

func (t *SQLTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback()
}

// CountRows runs SELECT COUNT(*) against table using db.
func CountRows(ctx context.Context, db *sql.DB, qb squirrel.StatementBuilderType, table string) (int64, error) {
	if err := ValidateIdentifiers(table); err != nil {
		return 0, err
	}

	query, args, err := qb.Select("COUNT(*)").From(table).ToSql()
	if err != nil {
		return 0, err
	}

	var n int64
	if err := db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count rows in %s: %w", table, err)
	}
	return n, nil
}

// SplitStatements splits a DDL script on semicolons into trimmed, non-empty
// statements. Line comments are dropped. Semicolons inside string literals are
// not supported.
func SplitStatements(script string) []string {
	var lines []string
	for _, line := range strings.Split(script, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		lines = append(lines, line)
	}

	var statements []string
	for _, stmt := range strings.Split(strings.Join(lines, "\n"), ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			statements = append(statements, stmt)
		}
	}
	return statements
}

// ExecScript runs each statement of script against db in order.
func ExecScript(ctx context.Context, db *sql.DB, script string) error {
	for _, stmt := range SplitStatements(script) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute %q: %w", firstLine(stmt), err)
		}
	}
	return nil
}

func firstLine(stmt string) string {
	if i := strings.IndexByte(stmt, '\n'); i >= 0 {
		return stmt[:i]
	}
	return stmt
}
