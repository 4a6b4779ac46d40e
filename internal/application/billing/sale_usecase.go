package billing

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/application/usecase"
	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
	"github.com/jhoicas/Farmacia-api/pkg/logger"
)

// Valores por defecto de la facturación.
const (
	DefaultTaxRate       = 18
	DefaultInvoicePrefix = "FAC"
	DefaultSeller        = "Admin Pharmacie"
)

var hundred = decimal.NewFromInt(100)

// SaleConfig parámetros de negocio de la venta.
type SaleConfig struct {
	TaxRate       *int // porcentaje; nil = DefaultTaxRate, 0 = exento
	InvoicePrefix string
	PharmacyName  string
}

// SaleUseCase ledger de ventas: registro, consulta y comprobante.
type SaleUseCase struct {
	tx        SaleTxRunner
	sales     repository.SaleRepository
	items     repository.ItemRepository
	customers repository.CustomerRepository
	receipts  ReceiptPDFGenerator
	cfg       SaleConfig
	taxRate   int
	log       *logger.Logger
	now       func() time.Time
}

// NewSaleUseCase construye el caso de uso. receipts puede ser nil si no se sirven PDFs.
func NewSaleUseCase(
	tx SaleTxRunner,
	sales repository.SaleRepository,
	items repository.ItemRepository,
	customers repository.CustomerRepository,
	receipts ReceiptPDFGenerator,
	cfg SaleConfig,
	log *logger.Logger,
) *SaleUseCase {
	taxRate := DefaultTaxRate
	if cfg.TaxRate != nil && *cfg.TaxRate >= 0 {
		taxRate = *cfg.TaxRate
	}
	if cfg.InvoicePrefix == "" {
		cfg.InvoicePrefix = DefaultInvoicePrefix
	}
	if log == nil {
		log = logger.Nop()
	}
	return &SaleUseCase{
		tx:        tx,
		sales:     sales,
		items:     items,
		customers: customers,
		receipts:  receipts,
		cfg:       cfg,
		taxRate:   taxRate,
		log:       log.Component("sales"),
		now:       time.Now,
	}
}

// RecordSale valida la canasta, calcula totales, asigna número de factura,
// anexa la venta y descuenta el stock central de cada línea.
func (uc *SaleUseCase) RecordSale(ctx context.Context, in dto.RecordSaleRequest) (*dto.SaleResponse, error) {
	if msgs := validateSale(in); len(msgs) > 0 {
		uc.log.Warn().Strs("errors", msgs).Msg("venta rechazada")
		return nil, domain.Invalid(msgs...)
	}

	var (
		sale     *entity.Sale
		names    = make(map[string]string, len(in.Lines))
		customer *entity.Customer
	)
	err := uc.tx.RunSale(ctx, func(
		items repository.ItemRepository,
		customers repository.CustomerRepository,
		sales repository.SaleRepository,
	) error {
		if in.CustomerID != "" {
			c, err := customers.GetByID(in.CustomerID)
			if err != nil {
				return err
			}
			if c == nil {
				return domain.Violation(domain.ErrNotFound, "el cliente no existe")
			}
			customer = c
		}

		// demanda agregada por producto: dos líneas del mismo producto suman
		demand := make(map[string]int, len(in.Lines))
		for _, l := range in.Lines {
			demand[l.ItemID] += l.Quantity
		}
		catalog := make(map[string]*entity.Item, len(demand))
		var shortages []string
		for _, id := range sortedKeys(demand) {
			item, err := items.GetByID(id)
			if err != nil {
				return err
			}
			if item == nil {
				return domain.Violation(domain.ErrNotFound, fmt.Sprintf("el producto %s no existe", id))
			}
			if item.StockQuantity < demand[id] {
				shortages = append(shortages, fmt.Sprintf("stock insuficiente de %s: disponible %d, solicitado %d",
					item.Name, item.StockQuantity, demand[id]))
			}
			catalog[id] = item
			names[id] = item.Name
		}
		if len(shortages) > 0 {
			return domain.Violation(domain.ErrInsufficientStock, shortages...)
		}

		count, err := sales.Count()
		if err != nil {
			return err
		}
		sale = uc.buildSale(in, catalog, count+1)

		for _, id := range sortedKeys(demand) {
			if _, err := usecase.DecrementStock(items, id, demand[id]); err != nil {
				return err
			}
		}
		return sales.Create(sale)
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInsufficientStock) {
			uc.log.Warn().Strs("errors", domain.Messages(err)).Msg("venta rechazada")
		}
		return nil, err
	}

	uc.log.Info().
		Str("sale", sale.ID).
		Str("invoice", sale.InvoiceNumber).
		Str("total", sale.Total.StringFixed(2)).
		Int("lines", len(sale.Lines)).
		Msg("venta registrada")
	return toSaleResponse(sale, names, customer), nil
}

func validateSale(in dto.RecordSaleRequest) []string {
	var msgs []string
	if len(in.Lines) == 0 {
		msgs = append(msgs, "la canasta está vacía")
	}
	for i, l := range in.Lines {
		if strings.TrimSpace(l.ItemID) == "" {
			msgs = append(msgs, fmt.Sprintf("línea %d: el producto es obligatorio", i+1))
		}
		if l.Quantity <= 0 {
			msgs = append(msgs, fmt.Sprintf("línea %d: la cantidad debe ser un entero positivo", i+1))
		}
		if !validPercent(l.Discount) {
			msgs = append(msgs, fmt.Sprintf("línea %d: el descuento debe estar entre 0 y 100", i+1))
		}
	}
	if !validPercent(in.Discount) {
		msgs = append(msgs, "el descuento global debe estar entre 0 y 100")
	}
	if !entity.ValidPaymentMethod(in.PaymentMethod) {
		msgs = append(msgs, fmt.Sprintf("medio de pago desconocido %q", in.PaymentMethod))
	}
	return msgs
}

func validPercent(d decimal.Decimal) bool {
	return !d.IsNegative() && d.LessThanOrEqual(hundred)
}

// buildSale calcula los importes:
//
//	línea      = precio × cantidad × (1 − d/100)
//	descuento  = subtotal × g/100
//	impuesto   = (subtotal − descuento) × tasa/100
//	total      = subtotal − descuento + impuesto
func (uc *SaleUseCase) buildSale(in dto.RecordSaleRequest, catalog map[string]*entity.Item, seq int) *entity.Sale {
	now := uc.now()
	lines := make([]entity.SaleLine, 0, len(in.Lines))
	subtotal := decimal.Zero
	for _, l := range in.Lines {
		price := catalog[l.ItemID].Price
		amount := price.Mul(decimal.NewFromInt(int64(l.Quantity))).
			Mul(hundred.Sub(l.Discount)).Div(hundred).Round(2)
		lines = append(lines, entity.SaleLine{
			ID:        uuid.New().String(),
			ItemID:    l.ItemID,
			Quantity:  l.Quantity,
			UnitPrice: price,
			Discount:  l.Discount,
			Subtotal:  amount,
		})
		subtotal = subtotal.Add(amount)
	}
	rate := decimal.NewFromInt(int64(uc.taxRate))
	discount := subtotal.Mul(in.Discount).Div(hundred).Round(2)
	taxable := subtotal.Sub(discount)
	tax := taxable.Mul(rate).Div(hundred).Round(2)

	seller := strings.TrimSpace(in.Seller)
	if seller == "" {
		seller = DefaultSeller
	}
	return &entity.Sale{
		ID:             uuid.New().String(),
		InvoiceNumber:  InvoiceNumber(uc.cfg.InvoicePrefix, now, seq),
		Date:           now,
		CustomerID:     in.CustomerID,
		Lines:          lines,
		Subtotal:       subtotal,
		DiscountPct:    in.Discount,
		DiscountAmount: discount,
		TaxRate:        rate,
		Tax:            tax,
		Total:          taxable.Add(tax),
		PaymentMethod:  in.PaymentMethod,
		Status:         entity.SaleStatusCompleted,
		Seller:         seller,
	}
}

// InvoiceNumber formato <prefijo><aaMMdd>-<secuencia de 4 dígitos>.
func InvoiceNumber(prefix string, at time.Time, seq int) string {
	return fmt.Sprintf("%s%s-%04d", prefix, at.Format("060102"), seq)
}

// GetByID devuelve (nil, nil) si la venta no existe.
func (uc *SaleUseCase) GetByID(id string) (*dto.SaleResponse, error) {
	sale, err := uc.sales.GetByID(id)
	if err != nil || sale == nil {
		return nil, err
	}
	names, err := uc.itemNames()
	if err != nil {
		return nil, err
	}
	customer, err := uc.customer(sale.CustomerID)
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale, names, customer), nil
}

// List ventas, la más reciente primero.
func (uc *SaleUseCase) List() ([]dto.SaleResponse, error) {
	sales, err := uc.sales.List()
	if err != nil {
		return nil, err
	}
	names, err := uc.itemNames()
	if err != nil {
		return nil, err
	}
	customers, err := uc.customers.List()
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*entity.Customer, len(customers))
	for _, c := range customers {
		byID[c.ID] = c
	}
	sort.SliceStable(sales, func(i, j int) bool { return sales[i].Date.After(sales[j].Date) })
	out := make([]dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		out = append(out, *toSaleResponse(s, names, byID[s.CustomerID]))
	}
	return out, nil
}

// ReceiptPDF genera el comprobante PDF de una venta.
func (uc *SaleUseCase) ReceiptPDF(ctx context.Context, id string) (pdfBytes []byte, filename string, err error) {
	if uc.receipts == nil {
		return nil, "", fmt.Errorf("comprobante: generador PDF no configurado")
	}
	sale, err := uc.sales.GetByID(id)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: obtener venta: %w", err)
	}
	if sale == nil {
		return nil, "", domain.ErrNotFound
	}
	customer, err := uc.customer(sale.CustomerID)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: obtener cliente: %w", err)
	}
	names, err := uc.itemNames()
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: obtener productos: %w", err)
	}
	lines := make([]ReceiptLine, 0, len(sale.Lines))
	for _, l := range sale.Lines {
		lines = append(lines, ReceiptLine{SaleLine: l, ItemName: itemName(names, l.ItemID)})
	}

	pdfBytes, err = uc.receipts.GenerateReceiptPDF(ctx, Receipt{
		PharmacyName: uc.cfg.PharmacyName,
		Sale:         sale,
		Customer:     customer,
		Lines:        lines,
	})
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("comprobante_%s.pdf", sale.InvoiceNumber), nil
}

func (uc *SaleUseCase) itemNames() (map[string]string, error) {
	items, err := uc.items.List()
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(items))
	for _, it := range items {
		names[it.ID] = it.Name
	}
	return names, nil
}

func (uc *SaleUseCase) customer(id string) (*entity.Customer, error) {
	if id == "" {
		return nil, nil
	}
	return uc.customers.GetByID(id)
}

func itemName(names map[string]string, id string) string {
	if n, ok := names[id]; ok {
		return n
	}
	return "Producto " + id
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func toSaleResponse(s *entity.Sale, names map[string]string, customer *entity.Customer) *dto.SaleResponse {
	lines := make([]dto.SaleLineResponse, 0, len(s.Lines))
	for _, l := range s.Lines {
		lines = append(lines, dto.SaleLineResponse{
			ItemID:    l.ItemID,
			ItemName:  itemName(names, l.ItemID),
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Discount:  l.Discount,
			Subtotal:  l.Subtotal,
		})
	}
	out := &dto.SaleResponse{
		ID:             s.ID,
		InvoiceNumber:  s.InvoiceNumber,
		Date:           s.Date,
		CustomerID:     s.CustomerID,
		Lines:          lines,
		Subtotal:       s.Subtotal,
		DiscountPct:    s.DiscountPct,
		DiscountAmount: s.DiscountAmount,
		TaxRate:        s.TaxRate,
		Tax:            s.Tax,
		Total:          s.Total,
		PaymentMethod:  s.PaymentMethod,
		Status:         s.Status,
		Seller:         s.Seller,
	}
	if customer != nil {
		out.CustomerName = customer.FullName()
	}
	return out
}
