package entity

import "errors"

// Errores de las invariantes locales de las entidades. Los casos de uso los
// traducen a los sentinels de domain con mensajes para el usuario.
var (
	ErrNonPositiveQuantity = errors.New("la cantidad debe ser positiva")
	ErrNotEnoughUnits      = errors.New("unidades insuficientes")
)
