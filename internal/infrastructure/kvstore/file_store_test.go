package kvstore

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_GetSet(t *testing.T) {
	fs := afero.NewMemMapFs()
	s, err := NewFileStore(fs, "/data")
	require.NoError(t, err)

	_, err = s.Get("items")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, s.Set("items", []byte(`[1,2]`)))
	got, err := s.Get("items")
	require.NoError(t, err)
	assert.Equal(t, `[1,2]`, string(got))

	require.NoError(t, s.Set("items", []byte(`[]`)))
	got, err = s.Get("items")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))

	exists, err := afero.Exists(fs, "/data/items.json.tmp")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestFileStore_ClaveInvalida(t *testing.T) {
	s, err := NewFileStore(afero.NewMemMapFs(), "/data")
	require.NoError(t, err)
	assert.Error(t, s.Set("../fuera", []byte(`{}`)))
	_, err = s.Get("")
	assert.Error(t, err)
}
