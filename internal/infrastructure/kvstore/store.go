// Package kvstore implementa el almacén persistente por clave: un valor JSON por
// clave, con las marcas de tiempo normalizadas a ISO-8601 UTC.
package kvstore

import (
	"errors"
	"fmt"
	"strings"
)

// ErrKeyNotFound la clave no tiene valor persistido.
var ErrKeyNotFound = errors.New("clave no encontrada")

// Store lectura y escritura completa de un valor bajo una clave.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}

func validateKey(key string) error {
	if key == "" || strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") {
		return fmt.Errorf("clave inválida %q", key)
	}
	return nil
}
