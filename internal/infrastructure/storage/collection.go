// Package storage expone las colecciones persistidas (items, sales, clients,
// shelves, placements, transfers) como repositorios sobre un kvstore.Store.
package storage

import (
	"errors"
	"slices"
	"sync"

	"github.com/jhoicas/Farmacia-api/internal/infrastructure/kvstore"
	"github.com/jhoicas/Farmacia-api/pkg/logger"
)

// Claves de las colecciones en el almacén.
const (
	KeyItems      = "items"
	KeySales      = "sales"
	KeyClients    = "clients"
	KeyShelves    = "shelves"
	KeyPlacements = "placements"
	KeyTransfers  = "transfers"
)

// Keys todas las colecciones conocidas.
var Keys = []string{KeyItems, KeySales, KeyClients, KeyShelves, KeyPlacements, KeyTransfers}

// table vista de filas que los repositorios leen y reemplazan completas.
type table[T any] interface {
	rows() []T
	replace(rows []T)
}

// Collection colección completa en memoria, reescrita en el almacén en cada cambio.
type Collection[T any] struct {
	key   string
	store kvstore.Store
	log   *logger.Logger

	mu   sync.RWMutex
	data []T
}

// openCollection carga la clave; si falta o está corrupta usa seed y lo registra.
func openCollection[T any](store kvstore.Store, log *logger.Logger, key string, seed func() []T) *Collection[T] {
	c := &Collection[T]{key: key, store: store, log: log}

	raw, err := store.Get(key)
	switch {
	case errors.Is(err, kvstore.ErrKeyNotFound):
		c.data = seed()
		log.Info().Str("collection", key).Int("rows", len(c.data)).Msg("colección inexistente, se usan valores iniciales")
		return c
	case err != nil:
		c.data = seed()
		log.Error().Err(err).Str("collection", key).Msg("lectura fallida, se usan valores iniciales")
		return c
	}

	var rows []T
	if err := kvstore.Decode(raw, &rows); err != nil {
		c.data = seed()
		log.Error().Err(err).Str("collection", key).Msg("colección corrupta, se usan valores iniciales")
		return c
	}
	c.data = rows
	return c
}

// Key clave de la colección en el almacén.
func (c *Collection[T]) Key() string { return c.key }

func (c *Collection[T]) rows() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.data)
}

// replace actualiza memoria y persiste; un fallo de escritura se registra y no se propaga.
func (c *Collection[T]) replace(rows []T) {
	c.mu.Lock()
	c.data = rows
	c.mu.Unlock()

	raw, err := kvstore.Encode(rows)
	if err != nil {
		c.log.Error().Err(err).Str("collection", c.key).Msg("serializar colección")
		return
	}
	if err := c.store.Set(c.key, raw); err != nil {
		c.log.Error().Err(err).Str("collection", c.key).Msg("persistir colección")
	}
}

// stage copia de trabajo de una colección durante una transacción.
type stage[T any] struct {
	base  *Collection[T]
	data  []T
	dirty bool
}

func newStage[T any](base *Collection[T]) *stage[T] {
	return &stage[T]{base: base, data: base.rows()}
}

func (s *stage[T]) rows() []T { return slices.Clone(s.data) }

func (s *stage[T]) replace(rows []T) {
	s.data = rows
	s.dirty = true
}

func (s *stage[T]) commit() {
	if s.dirty {
		s.base.replace(s.data)
	}
}

// noLock para repositorios que corren dentro de una transacción (el lock ya lo tiene el runner).
type noLock struct{}

func (noLock) Lock()   {}
func (noLock) Unlock() {}
