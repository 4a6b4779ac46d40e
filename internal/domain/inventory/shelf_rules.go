// Package inventory contiene reglas de dominio puras del motor de estantes.
package inventory

import (
	"math"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

// WatermarkRatio fracción de la cantidad inicial que se registra como mínimo de una ubicación.
const WatermarkRatio = 0.2

// MinimumQuantity = ceil(cantidad × 0.2). Solo informativo.
func MinimumQuantity(quantity int) int {
	if quantity <= 0 {
		return 0
	}
	return int(math.Ceil(float64(quantity) * WatermarkRatio))
}

// ShelfLoad suma de cantidades de las ubicaciones del estante indicado.
func ShelfLoad(placements []*entity.Placement, shelfID string) int {
	total := 0
	for _, p := range placements {
		if p.ShelfID == shelfID {
			total += p.Quantity
		}
	}
	return total
}

// Fits indica si caben quantity unidades más en un estante con carga actual load.
func Fits(shelf *entity.Shelf, load, quantity int) bool {
	return load+quantity <= shelf.MaxCapacity
}

// Occupancy porcentaje de ocupación a precisión completa. Capacidad 0 → 0.
func Occupancy(load, capacity int) float64 {
	if capacity <= 0 {
		return 0
	}
	return float64(load) / float64(capacity) * 100
}
