package customers

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
)

// fold minúsculas sin diacríticos: "Aïcha" → "aicha".
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// Search busca el término (sin distinguir mayúsculas ni acentos) en apellido,
// nombre, teléfono, email y número de seguridad social. Término vacío = todos.
func (uc *CustomerUseCase) Search(term string) ([]dto.CustomerResponse, error) {
	all, err := uc.List()
	if err != nil {
		return nil, err
	}
	q := fold(strings.TrimSpace(term))
	if q == "" {
		return all, nil
	}
	out := make([]dto.CustomerResponse, 0)
	for _, c := range all {
		for _, field := range []string{c.LastName, c.FirstName, c.Phone, c.Email, c.SocialSecurityNumber} {
			if field != "" && strings.Contains(fold(field), q) {
				out = append(out, c)
				break
			}
		}
	}
	return out, nil
}
