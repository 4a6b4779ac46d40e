package storage

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
	"github.com/jhoicas/Farmacia-api/internal/infrastructure/kvstore"
	"github.com/jhoicas/Farmacia-api/pkg/logger"
)

// Options apertura de la base.
type Options struct {
	SeedDemo bool             // datos de demostración para colecciones ausentes o corruptas
	Now      func() time.Time // reloj de los datos de demostración
}

// Database las seis colecciones y el mutex que serializa todas las escrituras.
type Database struct {
	mu    sync.Mutex
	store kvstore.Store
	log   *logger.Logger

	items      *Collection[entity.Item]
	sales      *Collection[entity.Sale]
	customers  *Collection[entity.Customer]
	shelves    *Collection[entity.Shelf]
	placements *Collection[entity.Placement]
	transfers  *Collection[entity.Transfer]
}

// Open carga todas las colecciones desde store.
func Open(store kvstore.Store, log *logger.Logger, opts Options) *Database {
	if log == nil {
		log = logger.Nop()
	}
	log = log.Component("storage")
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	var demo *demoData
	if opts.SeedDemo {
		demo = newDemoData(now())
	}

	return &Database{
		store:      store,
		log:        log,
		items:      openCollection(store, log, KeyItems, seedOf(demo, func(d *demoData) []entity.Item { return d.items })),
		sales:      openCollection(store, log, KeySales, func() []entity.Sale { return nil }),
		customers:  openCollection(store, log, KeyClients, seedOf(demo, func(d *demoData) []entity.Customer { return d.customers })),
		shelves:    openCollection(store, log, KeyShelves, seedOf(demo, func(d *demoData) []entity.Shelf { return d.shelves })),
		placements: openCollection(store, log, KeyPlacements, seedOf(demo, func(d *demoData) []entity.Placement { return d.placements })),
		transfers:  openCollection(store, log, KeyTransfers, func() []entity.Transfer { return nil }),
	}
}

func seedOf[T any](demo *demoData, pick func(*demoData) []T) func() []T {
	return func() []T {
		if demo == nil {
			return nil
		}
		return slices.Clone(pick(demo))
	}
}

// Repositorios fuera de transacción: cada escritura toma el mutex de la base.

func (db *Database) Items() *ItemRepo { return newItemRepo(db.items, &db.mu) }
func (db *Database) Sales() *SaleRepo { return newSaleRepo(db.sales, &db.mu) }
func (db *Database) Customers() *CustomerRepo { return newCustomerRepo(db.customers, &db.mu) }
func (db *Database) Shelves() *ShelfRepo { return newShelfRepo(db.shelves, &db.mu) }
func (db *Database) Placements() *PlacementRepo { return newPlacementRepo(db.placements, &db.mu) }
func (db *Database) Transfers() *TransferRepo { return newTransferRepo(db.transfers, &db.mu) }

// Raw devuelve el valor persistido de una colección revivido sin tipo (fechas como time.Time).
func (db *Database) Raw(key string) (any, error) {
	if !slices.Contains(Keys, key) {
		return nil, domain.Violation(domain.ErrNotFound, fmt.Sprintf("colección desconocida %q", key))
	}
	data, err := db.store.Get(key)
	if errors.Is(err, kvstore.ErrKeyNotFound) {
		return nil, domain.Violation(domain.ErrNotFound, fmt.Sprintf("la colección %q aún no se ha guardado", key))
	}
	if err != nil {
		return nil, err
	}
	return kvstore.Revive(data)
}

// ── TxRunner ──────────────────────────────────────────────────────────────────

// TxRunner ejecuta callbacks sobre copias de trabajo de las colecciones y
// las confirma solo si el callback no devuelve error.
type TxRunner struct {
	db *Database
}

// NewTxRunner construye el runner sobre la base.
func NewTxRunner(db *Database) *TxRunner {
	return &TxRunner{db: db}
}

// Run transacción del motor de estantes: items, shelves, placements y transfers.
func (r *TxRunner) Run(ctx context.Context, fn func(
	items repository.ItemRepository,
	shelves repository.ShelfRepository,
	placements repository.PlacementRepository,
	transfers repository.TransferRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	items := newStage(r.db.items)
	shelves := newStage(r.db.shelves)
	placements := newStage(r.db.placements)
	transfers := newStage(r.db.transfers)

	if err := fn(
		newItemRepo(items, noLock{}),
		newShelfRepo(shelves, noLock{}),
		newPlacementRepo(placements, noLock{}),
		newTransferRepo(transfers, noLock{}),
	); err != nil {
		return err
	}

	items.commit()
	shelves.commit()
	placements.commit()
	transfers.commit()
	return nil
}

// RunSale transacción de venta: items, customers (lectura) y sales.
func (r *TxRunner) RunSale(ctx context.Context, fn func(
	items repository.ItemRepository,
	customers repository.CustomerRepository,
	sales repository.SaleRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	items := newStage(r.db.items)
	customers := newStage(r.db.customers)
	sales := newStage(r.db.sales)

	if err := fn(
		newItemRepo(items, noLock{}),
		newCustomerRepo(customers, noLock{}),
		newSaleRepo(sales, noLock{}),
	); err != nil {
		return err
	}

	items.commit()
	customers.commit()
	sales.commit()
	return nil
}
