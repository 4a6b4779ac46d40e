package dto

// ErrorResponse cuerpo de error HTTP. Details lista los mensajes de validación o de regla.
type ErrorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}
