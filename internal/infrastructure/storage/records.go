package storage

import (
	"sync"

	"github.com/jhoicas/Farmacia-api/internal/domain"
)

// records operaciones por ID comunes a todas las colecciones.
// Las escrituras toman mu; las lecturas trabajan sobre una copia de las filas.
type records[T any] struct {
	t  table[T]
	mu sync.Locker
	id func(*T) string
}

func (r records[T]) indexOf(rows []T, id string) int {
	for i := range rows {
		if r.id(&rows[i]) == id {
			return i
		}
	}
	return -1
}

func (r records[T]) create(v *T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rows := r.t.rows()
	if r.indexOf(rows, r.id(v)) >= 0 {
		return domain.ErrDuplicate
	}
	r.t.replace(append(rows, *v))
	return nil
}

func (r records[T]) get(id string) *T {
	rows := r.t.rows()
	if i := r.indexOf(rows, id); i >= 0 {
		return &rows[i]
	}
	return nil
}

func (r records[T]) update(v *T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rows := r.t.rows()
	i := r.indexOf(rows, r.id(v))
	if i < 0 {
		return domain.ErrNotFound
	}
	rows[i] = *v
	r.t.replace(rows)
	return nil
}

// upsert reemplaza la fila con el mismo ID o la agrega al final.
func (r records[T]) upsert(v *T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rows := r.t.rows()
	if i := r.indexOf(rows, r.id(v)); i >= 0 {
		rows[i] = *v
	} else {
		rows = append(rows, *v)
	}
	r.t.replace(rows)
}

func (r records[T]) delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rows := r.t.rows()
	i := r.indexOf(rows, id)
	if i < 0 {
		return domain.ErrNotFound
	}
	r.t.replace(append(rows[:i], rows[i+1:]...))
	return nil
}

// filter filas que cumplen match, en orden de inserción. match nil = todas.
func (r records[T]) filter(match func(*T) bool) []*T {
	rows := r.t.rows()
	out := make([]*T, 0, len(rows))
	for i := range rows {
		if match == nil || match(&rows[i]) {
			out = append(out, &rows[i])
		}
	}
	return out
}

func (r records[T]) first(match func(*T) bool) *T {
	rows := r.t.rows()
	for i := range rows {
		if match(&rows[i]) {
			return &rows[i]
		}
	}
	return nil
}
