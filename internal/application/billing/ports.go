package billing

import (
	"context"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

// SaleTxRunner ejecuta el registro de una venta en una sola transacción:
// el stock de cada línea y el anexado al ledger se confirman juntos o nada.
type SaleTxRunner interface {
	RunSale(ctx context.Context, fn func(
		items repository.ItemRepository,
		customers repository.CustomerRepository,
		sales repository.SaleRepository,
	) error) error
}

// ReceiptLine línea del comprobante con el nombre del producto resuelto.
type ReceiptLine struct {
	entity.SaleLine
	ItemName string
}

// Receipt datos completos para el comprobante de una venta.
type Receipt struct {
	PharmacyName string
	Sale         *entity.Sale
	Customer     *entity.Customer // nil = venta de mostrador
	Lines        []ReceiptLine
}

// ReceiptPDFGenerator genera la representación PDF de un comprobante.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, receipt Receipt) ([]byte, error)
}
