package customers

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Farmacia-api/pkg/export"
)

// ExportHeader cabecera del CSV de clientes.
const ExportHeader = "ID,Apellido,Nombre,Teléfono,Email,Dirección,Edad,Fecha de registro,Total compras,Número de compras"

// ExportCSV un cliente por fila, todos los campos entre comillas dobles.
func (uc *CustomerUseCase) ExportCSV() (string, error) {
	all, err := uc.customers.List()
	if err != nil {
		return "", err
	}
	sales, err := uc.sales.List()
	if err != nil {
		return "", err
	}
	counts := make(map[string]int)
	spend := make(map[string]decimal.Decimal)
	for _, s := range sales {
		counts[s.CustomerID]++
		spend[s.CustomerID] = spend[s.CustomerID].Add(s.Total)
	}
	sortByName(all)

	now := uc.now()
	rows := make([][]string, 0, len(all))
	for _, c := range all {
		age := ""
		if a := Age(c.BirthDate, now); a != nil {
			age = strconv.Itoa(*a)
		}
		rows = append(rows, []string{
			c.ID, c.LastName, c.FirstName, c.Phone, c.Email, c.Address, age,
			c.RegisteredAt.Format("2006-01-02"),
			spend[c.ID].StringFixed(2),
			strconv.Itoa(counts[c.ID]),
		})
	}
	return export.CSV(ExportHeader, rows), nil
}
