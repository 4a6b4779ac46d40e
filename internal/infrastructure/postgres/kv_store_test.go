package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Farmacia-api/internal/infrastructure/kvstore"
)

// fakeQuerier tabla kv_store en memoria.
type fakeQuerier struct {
	rows    map[string][]byte
	execErr error
	lastSQL string
}

type fakeRow struct {
	value []byte
	err   error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*[]byte)) = r.value
	return nil
}

func (q *fakeQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	q.lastSQL = sql
	if q.execErr != nil {
		return pgconn.CommandTag{}, q.execErr
	}
	if len(args) == 2 {
		q.rows[args[0].(string)] = []byte(args[1].(string))
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (q *fakeQuerier) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	v, ok := q.rows[args[0].(string)]
	if !ok {
		return fakeRow{err: pgx.ErrNoRows}
	}
	return fakeRow{value: v}
}

func TestKVStore_ClaveInexistente(t *testing.T) {
	s := NewKVStore(&fakeQuerier{rows: map[string][]byte{}})
	_, err := s.Get("items")
	assert.ErrorIs(t, err, kvstore.ErrKeyNotFound)
}

func TestKVStore_SetYGet(t *testing.T) {
	q := &fakeQuerier{rows: map[string][]byte{}}
	s := NewKVStore(q)

	require.NoError(t, s.Set("shelves", []byte(`[{"id":"s1"}]`)))
	assert.Contains(t, q.lastSQL, "ON CONFLICT (key)")

	got, err := s.Get("shelves")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"s1"}]`, string(got))
}

func TestKVStore_ErrorDeEscrituraEnvuelto(t *testing.T) {
	boom := errors.New("conexión cerrada")
	s := NewKVStore(&fakeQuerier{rows: map[string][]byte{}, execErr: boom})
	err := s.Set("sales", []byte(`[]`))
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, s.EnsureSchema(context.Background()), boom)
}
