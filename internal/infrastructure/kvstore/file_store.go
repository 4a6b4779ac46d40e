package kvstore

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// FileStore guarda cada clave en <dir>/<clave>.json sobre un afero.Fs.
// La escritura va a un archivo temporal y luego se renombra.
type FileStore struct {
	fs  afero.Fs
	dir string
}

// NewFileStore crea el directorio si no existe.
func NewFileStore(fs afero.Fs, dir string) (*FileStore, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("kvstore: crear directorio %s: %w", dir, err)
	}
	return &FileStore{fs: fs, dir: dir}, nil
}

// NewOSFileStore FileStore sobre el sistema de archivos del sistema operativo.
func NewOSFileStore(dir string) (*FileStore, error) {
	return NewFileStore(afero.NewOsFs(), dir)
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Get devuelve ErrKeyNotFound si la clave nunca se escribió.
func (s *FileStore) Get(key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	data, err := afero.ReadFile(s.fs, s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("kvstore: leer %s: %w", key, err)
	}
	return data, nil
}

// Set reemplaza el valor completo de la clave.
func (s *FileStore) Set(key string, value []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	tmp := s.path(key) + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, value, 0o644); err != nil {
		return fmt.Errorf("kvstore: escribir %s: %w", key, err)
	}
	if err := s.fs.Rename(tmp, s.path(key)); err != nil {
		return fmt.Errorf("kvstore: renombrar %s: %w", key, err)
	}
	return nil
}
