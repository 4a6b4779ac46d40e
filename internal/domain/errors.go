package domain

import (
	"errors"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound                  = errors.New("recurso no encontrado")
	ErrInvalidInput              = errors.New("entrada inválida")
	ErrDuplicate                 = errors.New("recurso duplicado")
	ErrConflict                  = errors.New("conflicto con el estado actual")
	ErrInsufficientStock         = errors.New("stock insuficiente")
	ErrInsufficientShelfQuantity = errors.New("cantidad insuficiente en el estante")
	ErrCapacityExceeded          = errors.New("capacidad del estante excedida")
)

// RuleError es el fallo estructurado de una regla de negocio: un tipo (sentinel)
// y la lista de mensajes legibles para el usuario. errors.Is(err, Kind) funciona.
type RuleError struct {
	Kind     error
	Messages []string
}

func (e *RuleError) Error() string {
	if len(e.Messages) == 0 {
		return e.Kind.Error()
	}
	return e.Kind.Error() + ": " + strings.Join(e.Messages, "; ")
}

func (e *RuleError) Unwrap() error { return e.Kind }

// Invalid construye un error de validación.
func Invalid(msgs ...string) error {
	return &RuleError{Kind: ErrInvalidInput, Messages: msgs}
}

// Violation construye una violación de restricción del tipo indicado.
func Violation(kind error, msgs ...string) error {
	return &RuleError{Kind: kind, Messages: msgs}
}

// Messages devuelve los mensajes de un RuleError, o el texto del error en otro caso.
func Messages(err error) []string {
	if err == nil {
		return nil
	}
	var re *RuleError
	if errors.As(err, &re) && len(re.Messages) > 0 {
		return re.Messages
	}
	return []string{err.Error()}
}
