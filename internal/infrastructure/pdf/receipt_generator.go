// Package pdf genera el comprobante de venta en PDF con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Farmacia            │  N° Factura + Fecha          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + contacto (o venta de mostrador)          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Producto | P.Unit | Desc% | Subtotal         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Descuento / IVA / TOTAL                │
//	│  PIE: medio de pago + vendedor                              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Farmacia-api/internal/application/billing"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 110, Blue: 80}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var paymentLabels = map[string]string{
	entity.PaymentCash:         "Efectivo",
	entity.PaymentCard:         "Tarjeta",
	entity.PaymentCheck:        "Cheque",
	entity.PaymentBankTransfer: "Transferencia bancaria",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// ReceiptGenerator implementa billing.ReceiptPDFGenerator usando Maroto v2.
type ReceiptGenerator struct{}

var _ billing.ReceiptPDFGenerator = (*ReceiptGenerator)(nil)

// NewReceiptGenerator construye el generador.
func NewReceiptGenerator() *ReceiptGenerator { return &ReceiptGenerator{} }

// GenerateReceiptPDF genera el PDF y devuelve sus bytes.
func (g *ReceiptGenerator) GenerateReceiptPDF(_ context.Context, r billing.Receipt) ([]byte, error) {
	if r.Sale == nil {
		return nil, fmt.Errorf("pdf: venta vacía")
	}
	name := nonEmpty(r.PharmacyName, "Pharmacie")
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante "+r.Sale.InvoiceNumber, true).
		WithAuthor(name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(name, r.Sale))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(r.Customer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableLineRows(r.Lines)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(r.Sale))
	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(r.Sale))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(pharmacy string, sale *entity.Sale) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(pharmacy, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("COMPROBANTE DE VENTA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(sale.InvoiceNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+sale.Date.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func customerRow(c *entity.Customer) core.Row {
	title := text.New("CLIENTE", props.Text{
		Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
	})
	if c == nil {
		return row.New(10).Add(col.New(12).Add(
			title,
			text.New("Venta de mostrador", props.Text{Size: 9, Top: 5}),
		))
	}
	return row.New(14).Add(col.New(12).Add(
		title,
		text.New(c.FullName(), props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
		text.New(fmt.Sprintf("Tel: %s   |   Email: %s",
			nonEmpty(c.Phone, "-"),
			nonEmpty(c.Email, "-"),
		), props.Text{Size: 8, Top: 12, Color: colorGray}),
	))
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Producto", 5, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Desc.%", 1, align.Center),
		h("Subtotal", 3, align.Right),
	)
}

func tableLineRows(lines []billing.ReceiptLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprint(l.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(5).Add(text.New(l.ItemName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(money(l.UnitPrice),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(l.Discount.String()+"%",
				props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(3).Add(text.New(money(l.Subtotal),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func totalsRow(sale *entity.Sale) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top,
		})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	grand := func(s string, top float64, right float64) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: right, Top: top,
		})
	}

	return row.New(26).Add(
		col.New(6),
		col.New(3).Add(
			label("Subtotal:", 0),
			label("Descuento ("+sale.DiscountPct.String()+"%):", 5),
			label("IVA ("+sale.TaxRate.String()+"%):", 10),
			grand("TOTAL:", 16, 2),
		),
		col.New(3).Add(
			value(money(sale.Subtotal), 0),
			value("-"+money(sale.DiscountAmount), 5),
			value(money(sale.Tax), 10),
			grand(money(sale.Total), 16, 1),
		),
	)
}

func footerRow(sale *entity.Sale) core.Row {
	pay := paymentLabels[sale.PaymentMethod]
	return row.New(12).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Medio de pago: %s   |   Vendedor: %s",
			nonEmpty(pay, sale.PaymentMethod), nonEmpty(sale.Seller, "-")),
			props.Text{Size: 8, Color: colorGray, Top: 1}),
		text.New("Gracias por su compra. Conserve este comprobante.",
			props.Text{Size: 7, Color: colorGray, Top: 6, Align: align.Center}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func money(d decimal.Decimal) string {
	return formatMoney(d.StringFixed(2))
}

// formatMoney inserta espacios de miles en la parte entera y usa coma decimal.
// Ej: "25000.50" → "25 000,50", "-1200.00" → "-1 200,00"
func formatMoney(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, hasFrac := strings.Cut(s, ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ' ')
		}
		buf = append(buf, c)
	}
	out := sign + string(buf)
	if hasFrac {
		out += "," + frac
	}
	return out
}
