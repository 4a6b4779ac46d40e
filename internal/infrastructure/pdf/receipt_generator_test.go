package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Farmacia-api/internal/application/billing"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0.00":       "0,00",
		"250":        "250",
		"25000.50":   "25 000,50",
		"1000000.00": "1 000 000,00",
		"-1200.00":   "-1 200,00",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(in), in)
	}
}

func TestGenerateReceiptPDF(t *testing.T) {
	sale := &entity.Sale{
		ID:             "s1",
		InvoiceNumber:  "FAC240510-0001",
		Date:           time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC),
		Subtotal:       decimal.NewFromInt(500),
		DiscountPct:    decimal.Zero,
		DiscountAmount: decimal.Zero,
		TaxRate:        decimal.NewFromInt(18),
		Tax:            decimal.NewFromInt(90),
		Total:          decimal.NewFromInt(590),
		PaymentMethod:  entity.PaymentCash,
		Seller:         "Admin Pharmacie",
	}
	lines := []billing.ReceiptLine{{
		SaleLine: entity.SaleLine{ItemID: "i1", Quantity: 2, UnitPrice: decimal.NewFromInt(250), Discount: decimal.Zero, Subtotal: decimal.NewFromInt(500)},
		ItemName: "Paracetamol 500mg",
	}}

	out, err := NewReceiptGenerator().GenerateReceiptPDF(context.Background(), billing.Receipt{
		PharmacyName: "Pharmacie du Centre",
		Sale:         sale,
		Lines:        lines,
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateReceiptPDF_SinVenta(t *testing.T) {
	_, err := NewReceiptGenerator().GenerateReceiptPDF(context.Background(), billing.Receipt{})
	assert.Error(t, err)
}
