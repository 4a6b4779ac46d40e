// Package export utilidades de formato para las descargas CSV.
package export

import "strings"

// Quote encierra s entre comillas dobles y duplica las internas.
func Quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// Row una línea CSV con todos los campos entre comillas.
func Row(fields ...string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = Quote(f)
	}
	return strings.Join(quoted, ",")
}

// CSV cabecera sin comillas seguida de una fila por registro, separadas por \n.
func CSV(header string, rows [][]string) string {
	var b strings.Builder
	b.WriteString(header)
	for _, r := range rows {
		b.WriteByte('\n')
		b.WriteString(Row(r...))
	}
	return b.String()
}
