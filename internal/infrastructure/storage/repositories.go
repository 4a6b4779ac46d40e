package storage

import (
	"sync"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

var (
	_ repository.ItemRepository      = (*ItemRepo)(nil)
	_ repository.ShelfRepository     = (*ShelfRepo)(nil)
	_ repository.PlacementRepository = (*PlacementRepo)(nil)
	_ repository.TransferRepository  = (*TransferRepo)(nil)
	_ repository.SaleRepository      = (*SaleRepo)(nil)
	_ repository.CustomerRepository  = (*CustomerRepo)(nil)
)

// ── Items ─────────────────────────────────────────────────────────────────────

// ItemRepo implementación de ItemRepository sobre la colección items.
type ItemRepo struct{ r records[entity.Item] }

func newItemRepo(t table[entity.Item], mu sync.Locker) *ItemRepo {
	return &ItemRepo{r: records[entity.Item]{t: t, mu: mu, id: func(v *entity.Item) string { return v.ID }}}
}

func (x *ItemRepo) Create(item *entity.Item) error { return x.r.create(item) }
func (x *ItemRepo) GetByID(id string) (*entity.Item, error) { return x.r.get(id), nil }
func (x *ItemRepo) Update(item *entity.Item) error { return x.r.update(item) }
func (x *ItemRepo) List() ([]*entity.Item, error) { return x.r.filter(nil), nil }
func (x *ItemRepo) Delete(id string) error { return x.r.delete(id) }

// ── Shelves ───────────────────────────────────────────────────────────────────

// ShelfRepo implementación de ShelfRepository.
type ShelfRepo struct{ r records[entity.Shelf] }

func newShelfRepo(t table[entity.Shelf], mu sync.Locker) *ShelfRepo {
	return &ShelfRepo{r: records[entity.Shelf]{t: t, mu: mu, id: func(v *entity.Shelf) string { return v.ID }}}
}

func (x *ShelfRepo) Create(shelf *entity.Shelf) error { return x.r.create(shelf) }
func (x *ShelfRepo) GetByID(id string) (*entity.Shelf, error) { return x.r.get(id), nil }
func (x *ShelfRepo) Update(shelf *entity.Shelf) error { return x.r.update(shelf) }
func (x *ShelfRepo) List() ([]*entity.Shelf, error) { return x.r.filter(nil), nil }
func (x *ShelfRepo) Delete(id string) error { return x.r.delete(id) }

// ── Placements ────────────────────────────────────────────────────────────────

// PlacementRepo implementación de PlacementRepository.
type PlacementRepo struct{ r records[entity.Placement] }

func newPlacementRepo(t table[entity.Placement], mu sync.Locker) *PlacementRepo {
	return &PlacementRepo{r: records[entity.Placement]{t: t, mu: mu, id: func(v *entity.Placement) string { return v.ID }}}
}

func (x *PlacementRepo) GetByID(id string) (*entity.Placement, error) { return x.r.get(id), nil }

func (x *PlacementRepo) GetByItemAndShelf(itemID, shelfID string) (*entity.Placement, error) {
	return x.r.first(func(p *entity.Placement) bool { return p.ItemID == itemID && p.ShelfID == shelfID }), nil
}

func (x *PlacementRepo) ListByShelf(shelfID string) ([]*entity.Placement, error) {
	return x.r.filter(func(p *entity.Placement) bool { return p.ShelfID == shelfID }), nil
}

func (x *PlacementRepo) ListByItem(itemID string) ([]*entity.Placement, error) {
	return x.r.filter(func(p *entity.Placement) bool { return p.ItemID == itemID }), nil
}

func (x *PlacementRepo) List() ([]*entity.Placement, error) { return x.r.filter(nil), nil }

func (x *PlacementRepo) Upsert(p *entity.Placement) error {
	x.r.upsert(p)
	return nil
}

func (x *PlacementRepo) Delete(id string) error { return x.r.delete(id) }

// ── Transfers ─────────────────────────────────────────────────────────────────

// TransferRepo log de traslados (solo anexado).
type TransferRepo struct{ r records[entity.Transfer] }

func newTransferRepo(t table[entity.Transfer], mu sync.Locker) *TransferRepo {
	return &TransferRepo{r: records[entity.Transfer]{t: t, mu: mu, id: func(v *entity.Transfer) string { return v.ID }}}
}

func (x *TransferRepo) Create(t *entity.Transfer) error { return x.r.create(t) }
func (x *TransferRepo) List() ([]*entity.Transfer, error) { return x.r.filter(nil), nil }

// ── Sales ─────────────────────────────────────────────────────────────────────

// SaleRepo ledger de ventas.
type SaleRepo struct{ r records[entity.Sale] }

func newSaleRepo(t table[entity.Sale], mu sync.Locker) *SaleRepo {
	return &SaleRepo{r: records[entity.Sale]{t: t, mu: mu, id: func(v *entity.Sale) string { return v.ID }}}
}

func (x *SaleRepo) Create(sale *entity.Sale) error { return x.r.create(sale) }
func (x *SaleRepo) GetByID(id string) (*entity.Sale, error) { return x.r.get(id), nil }
func (x *SaleRepo) List() ([]*entity.Sale, error) { return x.r.filter(nil), nil }

func (x *SaleRepo) ListByCustomer(customerID string) ([]*entity.Sale, error) {
	return x.r.filter(func(s *entity.Sale) bool { return customerID != "" && s.CustomerID == customerID }), nil
}

func (x *SaleRepo) Count() (int, error) { return len(x.r.t.rows()), nil }

// ── Customers ─────────────────────────────────────────────────────────────────

// CustomerRepo implementación de CustomerRepository (colección clients).
type CustomerRepo struct{ r records[entity.Customer] }

func newCustomerRepo(t table[entity.Customer], mu sync.Locker) *CustomerRepo {
	return &CustomerRepo{r: records[entity.Customer]{t: t, mu: mu, id: func(v *entity.Customer) string { return v.ID }}}
}

func (x *CustomerRepo) Create(c *entity.Customer) error { return x.r.create(c) }
func (x *CustomerRepo) GetByID(id string) (*entity.Customer, error) { return x.r.get(id), nil }
func (x *CustomerRepo) Update(c *entity.Customer) error { return x.r.update(c) }
func (x *CustomerRepo) List() ([]*entity.Customer, error) { return x.r.filter(nil), nil }
func (x *CustomerRepo) Delete(id string) error { return x.r.delete(id) }
