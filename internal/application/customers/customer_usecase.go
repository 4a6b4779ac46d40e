package customers

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
	"github.com/jhoicas/Farmacia-api/pkg/logger"
)

// SSNLength longitud del número de seguridad social.
const SSNLength = 13

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[0-9\s\-\+\(\)]{8,}$`)
)

// CustomerUseCase registro de clientes. Todo lo derivado (historial, gasto,
// estadísticas) se recalcula desde el ledger de ventas en cada lectura.
type CustomerUseCase struct {
	customers repository.CustomerRepository
	sales     repository.SaleRepository
	items     repository.ItemRepository
	log       *logger.Logger
	now       func() time.Time
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(customers repository.CustomerRepository, sales repository.SaleRepository, items repository.ItemRepository, log *logger.Logger) *CustomerUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &CustomerUseCase{customers: customers, sales: sales, items: items, log: log.Component("clients"), now: time.Now}
}

// Validate devuelve los mensajes de validación; vacío = válido.
func Validate(in dto.CustomerRequest) []string {
	var msgs []string
	if strings.TrimSpace(in.LastName) == "" {
		msgs = append(msgs, "el apellido es obligatorio")
	}
	if strings.TrimSpace(in.FirstName) == "" {
		msgs = append(msgs, "el nombre es obligatorio")
	}
	if in.Email != "" && !emailPattern.MatchString(in.Email) {
		msgs = append(msgs, "el email no es válido")
	}
	if in.Phone != "" && !phonePattern.MatchString(in.Phone) {
		msgs = append(msgs, "el número de teléfono no es válido")
	}
	if in.SocialSecurityNumber != "" && len([]rune(in.SocialSecurityNumber)) != SSNLength {
		msgs = append(msgs, "el número de seguridad social debe contener 13 dígitos")
	}
	return msgs
}

// Create registra un cliente con fecha de alta actual.
func (uc *CustomerUseCase) Create(_ context.Context, in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	if msgs := Validate(in); len(msgs) > 0 {
		uc.log.Warn().Strs("errors", msgs).Msg("cliente rechazado")
		return nil, domain.Invalid(msgs...)
	}
	c := &entity.Customer{ID: uuid.New().String(), RegisteredAt: uc.now()}
	apply(c, in)
	if err := uc.customers.Create(c); err != nil {
		return nil, err
	}
	uc.log.Info().Str("client", c.ID).Msg("cliente registrado")
	return uc.toResponse(c), nil
}

// Update reemplaza los datos de contacto; la fecha de alta no cambia.
func (uc *CustomerUseCase) Update(_ context.Context, id string, in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	c, err := uc.customers.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if msgs := Validate(in); len(msgs) > 0 {
		uc.log.Warn().Str("client", id).Strs("errors", msgs).Msg("modificación rechazada")
		return nil, domain.Invalid(msgs...)
	}
	apply(c, in)
	if err := uc.customers.Update(c); err != nil {
		return nil, err
	}
	return uc.toResponse(c), nil
}

func apply(c *entity.Customer, in dto.CustomerRequest) {
	c.LastName = strings.TrimSpace(in.LastName)
	c.FirstName = strings.TrimSpace(in.FirstName)
	c.Phone = strings.TrimSpace(in.Phone)
	c.Email = strings.TrimSpace(in.Email)
	c.Address = strings.TrimSpace(in.Address)
	c.BirthDate = in.BirthDate
	c.SocialSecurityNumber = strings.TrimSpace(in.SocialSecurityNumber)
}

// Delete elimina el cliente; sus ventas permanecen en el ledger.
func (uc *CustomerUseCase) Delete(_ context.Context, id string) error {
	if err := uc.customers.Delete(id); err != nil {
		return err
	}
	uc.log.Info().Str("client", id).Msg("cliente eliminado")
	return nil
}

// GetByID devuelve (nil, nil) si no existe.
func (uc *CustomerUseCase) GetByID(id string) (*dto.CustomerResponse, error) {
	c, err := uc.customers.GetByID(id)
	if err != nil || c == nil {
		return nil, err
	}
	return uc.toResponse(c), nil
}

// List clientes ordenados por apellido y nombre.
func (uc *CustomerUseCase) List() ([]dto.CustomerResponse, error) {
	all, err := uc.customers.List()
	if err != nil {
		return nil, err
	}
	sortByName(all)
	out := make([]dto.CustomerResponse, 0, len(all))
	for _, c := range all {
		out = append(out, *uc.toResponse(c))
	}
	return out, nil
}

// History compras del cliente, la más reciente primero.
func (uc *CustomerUseCase) History(id string) ([]*entity.Sale, error) {
	sales, err := uc.sales.ListByCustomer(id)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(sales, func(i, j int) bool { return sales[i].Date.After(sales[j].Date) })
	return sales, nil
}

// LifetimeSpend suma de los totales de las compras del cliente.
func (uc *CustomerUseCase) LifetimeSpend(id string) (decimal.Decimal, error) {
	sales, err := uc.sales.ListByCustomer(id)
	if err != nil {
		return decimal.Zero, err
	}
	return sumTotals(sales), nil
}

// Detail cliente con historial y gasto acumulado.
func (uc *CustomerUseCase) Detail(id string) (*dto.CustomerDetailResponse, error) {
	c, err := uc.customers.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	history, err := uc.History(id)
	if err != nil {
		return nil, err
	}
	names, err := uc.itemNames()
	if err != nil {
		return nil, err
	}
	purchases := make([]dto.SaleResponse, 0, len(history))
	for _, s := range history {
		purchases = append(purchases, purchaseView(s, names, c))
	}
	return &dto.CustomerDetailResponse{
		CustomerResponse: *uc.toResponse(c),
		Purchases:        purchases,
		PurchaseCount:    len(history),
		LifetimeSpend:    sumTotals(history),
	}, nil
}

// Age edad en años cumplidos a la fecha now; nil sin fecha de nacimiento.
func Age(birth *time.Time, now time.Time) *int {
	if birth == nil || birth.IsZero() {
		return nil
	}
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return &age
}

func (uc *CustomerUseCase) itemNames() (map[string]string, error) {
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

func (uc *CustomerUseCase) toResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:                   c.ID,
		LastName:             c.LastName,
		FirstName:            c.FirstName,
		Phone:                c.Phone,
		Email:                c.Email,
		Address:              c.Address,
		BirthDate:            c.BirthDate,
		Age:                  Age(c.BirthDate, uc.now()),
		SocialSecurityNumber: c.SocialSecurityNumber,
		RegisteredAt:         c.RegisteredAt,
	}
}

func purchaseView(s *entity.Sale, names map[string]string, c *entity.Customer) dto.SaleResponse {
	lines := make([]dto.SaleLineResponse, 0, len(s.Lines))
	for _, l := range s.Lines {
		lines = append(lines, dto.SaleLineResponse{
			ItemID:    l.ItemID,
			ItemName:  names[l.ItemID],
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Discount:  l.Discount,
			Subtotal:  l.Subtotal,
		})
	}
	return dto.SaleResponse{
		ID:             s.ID,
		InvoiceNumber:  s.InvoiceNumber,
		Date:           s.Date,
		CustomerID:     s.CustomerID,
		CustomerName:   c.FullName(),
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
}

func sumTotals(sales []*entity.Sale) decimal.Decimal {
	total := decimal.Zero
	for _, s := range sales {
		total = total.Add(s.Total)
	}
	return total
}

func sortByName(cs []*entity.Customer) {
	sort.SliceStable(cs, func(i, j int) bool {
		a, b := fold(cs[i].LastName), fold(cs[j].LastName)
		if a != b {
			return a < b
		}
		return fold(cs[i].FirstName) < fold(cs[j].FirstName)
	})
}
