package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Farmacia-api/internal/infrastructure/kvstore"
)

var _ kvstore.Store = (*KVStore)(nil)

// Querier subconjunto de pgxpool.Pool / pgx.Tx que usa el adaptador.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS kv_store (
	key        TEXT PRIMARY KEY,
	value      JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// KVStore guarda cada colección como una fila jsonb de la tabla kv_store.
type KVStore struct {
	q Querier
}

// NewKVStore construye el adaptador. Pasar pool o tx (Querier).
func NewKVStore(q Querier) *KVStore {
	return &KVStore{q: q}
}

// EnsureSchema crea la tabla si no existe.
func (s *KVStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.q.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("crear tabla kv_store: %w", err)
	}
	return nil
}

// Get devuelve kvstore.ErrKeyNotFound si no hay fila para la clave.
func (s *KVStore) Get(key string) ([]byte, error) {
	var value []byte
	err := s.q.QueryRow(context.Background(), `SELECT value FROM kv_store WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, kvstore.ErrKeyNotFound
		}
		return nil, fmt.Errorf("get kv %s: %w", key, err)
	}
	return value, nil
}

// Set reemplaza (upsert) el valor completo de la clave.
func (s *KVStore) Set(key string, value []byte) error {
	query := `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
	if _, err := s.q.Exec(context.Background(), query, key, string(value)); err != nil {
		return fmt.Errorf("set kv %s: %w", key, err)
	}
	return nil
}
