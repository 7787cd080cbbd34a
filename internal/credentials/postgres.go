package credentials

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of pgxpool.Pool used by PostgresStore.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore keeps credentials in the credentials table, one row per key and namespace.
// Multi-key operations are single statements and therefore atomic.
type PostgresStore struct {
	db        DB
	namespace string
}

// NewPostgresStore returns a store scoped to namespace.
func NewPostgresStore(db DB, namespace string) *PostgresStore {
	if namespace == "" {
		namespace = "default"
	}
	return &PostgresStore{db: db, namespace: namespace}
}

func (p *PostgresStore) Get(ctx context.Context, key Key) (string, bool, error) {
	const query = `
        SELECT value FROM credentials
        WHERE namespace=$1 AND key=$2`

	var value string
	if err := p.db.QueryRow(ctx, query, p.namespace, string(key)).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("select credential %s: %w", key, err)
	}
	return value, true, nil
}

func (p *PostgresStore) Set(ctx context.Context, key Key, value string) error {
	return p.SetMany(ctx, map[Key]string{key: value})
}

func (p *PostgresStore) SetMany(ctx context.Context, values map[Key]string) error {
	if len(values) == 0 {
		return nil
	}

	args := []any{p.namespace}
	rows := make([]string, 0, len(values))
	for k, v := range values {
		args = append(args, string(k), v)
		rows = append(rows, fmt.Sprintf("($1, $%d, $%d, NOW())", len(args)-1, len(args)))
	}

	query := `
        INSERT INTO credentials (namespace, key, value, updated_at)
        VALUES ` + strings.Join(rows, ", ") + `
        ON CONFLICT (namespace, key) DO UPDATE SET value=EXCLUDED.value, updated_at=NOW()`

	if _, err := p.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert credentials: %w", err)
	}
	return nil
}

func (p *PostgresStore) Remove(ctx context.Context, keys ...Key) error {
	if len(keys) == 0 {
		return nil
	}
	const query = `
        DELETE FROM credentials
        WHERE namespace=$1 AND key = ANY($2)`

	if _, err := p.db.Exec(ctx, query, p.namespace, keyStrings(keys)); err != nil {
		return fmt.Errorf("delete credentials: %w", err)
	}
	return nil
}

func (p *PostgresStore) Clear(ctx context.Context) error {
	return p.Remove(ctx, SessionKeys...)
}
