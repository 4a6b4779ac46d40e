package customers

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/infrastructure/kvstore"
	"github.com/jhoicas/Farmacia-api/internal/infrastructure/storage"
	"github.com/jhoicas/Farmacia-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var now = time.Date(2024, 5, 20, 10, 0, 0, 0, time.UTC)

func birth(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func newUseCase(t *testing.T) (*CustomerUseCase, *storage.Database) {
	t.Helper()
	store, err := kvstore.NewFileStore(afero.NewMemMapFs(), "/data")
	require.NoError(t, err)
	db := storage.Open(store, logger.Nop(), storage.Options{})
	uc := NewCustomerUseCase(db.Customers(), db.Sales(), db.Items(), logger.Nop())
	uc.now = func() time.Time { return now }
	return uc, db
}

func addCustomer(t *testing.T, db *storage.Database, c entity.Customer) {
	t.Helper()
	require.NoError(t, db.Customers().Create(&c))
}

func addSale(t *testing.T, db *storage.Database, id, customerID string, total int64, at time.Time) {
	t.Helper()
	require.NoError(t, db.Sales().Create(&entity.Sale{
		ID: id, CustomerID: customerID, Date: at, Total: decimal.NewFromInt(total),
		Lines: []entity.SaleLine{{ItemID: "i1", Quantity: 1}},
	}))
}

// ── Validación ──

func TestValidate(t *testing.T) {
	ok := dto.CustomerRequest{LastName: "Diallo", FirstName: "Amadou", Phone: "70 12 34 56", Email: "a@b.ne", SocialSecurityNumber: "1850315123456"}
	assert.Empty(t, Validate(ok))

	bad := dto.CustomerRequest{LastName: " ", Phone: "12-34", Email: "a@b", SocialSecurityNumber: "123"}
	assert.Equal(t, []string{
		"el apellido es obligatorio",
		"el nombre es obligatorio",
		"el email no es válido",
		"el número de teléfono no es válido",
		"el número de seguridad social debe contener 13 dígitos",
	}, Validate(bad))
}

// ── CRUD ──

func TestCreateYUpdate(t *testing.T) {
	uc, _ := newUseCase(t)
	created, err := uc.Create(context.Background(), dto.CustomerRequest{
		LastName: "Kone", FirstName: "Fatima", BirthDate: birth(1992, 7, 22),
	})
	require.NoError(t, err)
	assert.Equal(t, now, created.RegisteredAt)
	require.NotNil(t, created.Age)
	assert.Equal(t, 31, *created.Age)

	updated, err := uc.Update(context.Background(), created.ID, dto.CustomerRequest{
		LastName: "Kone", FirstName: "Fatima", Email: "fatima@email.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "fatima@email.com", updated.Email)
	assert.Equal(t, now, updated.RegisteredAt)
	assert.Nil(t, updated.Age)

	_, err = uc.Update(context.Background(), created.ID, dto.CustomerRequest{FirstName: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Update(context.Background(), "nope", dto.CustomerRequest{LastName: "a", FirstName: "b"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate_InvalidoNoPersiste(t *testing.T) {
	uc, _ := newUseCase(t)
	_, err := uc.Create(context.Background(), dto.CustomerRequest{Email: "mal"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	list, err := uc.List()
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDelete(t *testing.T) {
	uc, db := newUseCase(t)
	addCustomer(t, db, entity.Customer{ID: "c1", LastName: "A", FirstName: "B"})
	require.NoError(t, uc.Delete(context.Background(), "c1"))
	got, err := uc.GetByID("c1")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.ErrorIs(t, uc.Delete(context.Background(), "c1"), domain.ErrNotFound)
}

// ── Búsqueda ──

func TestSearch_SinAcentosNiMayusculas(t *testing.T) {
	uc, db := newUseCase(t)
	addCustomer(t, db, entity.Customer{ID: "1", LastName: "Saidou", FirstName: "Aïcha", Phone: "70 98 76 54"})
	addCustomer(t, db, entity.Customer{ID: "2", LastName: "Diallo", FirstName: "Amadou", Email: "amadou.diallo@email.com"})
	addCustomer(t, db, entity.Customer{ID: "3", LastName: "Oumarou", FirstName: "Ibrahim", SocialSecurityNumber: "1781108000000"})

	res, err := uc.Search("AICHA")
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "1", res[0].ID)

	res, err = uc.Search("98 76")
	require.NoError(t, err)
	require.Len(t, res, 1)

	res, err = uc.Search("email.com")
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "2", res[0].ID)

	res, err = uc.Search("178110")
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "3", res[0].ID)

	res, err = uc.Search("  ")
	require.NoError(t, err)
	assert.Len(t, res, 3)
}

// ── Historial y estadísticas ──

func TestDetail_HistorialYGasto(t *testing.T) {
	uc, db := newUseCase(t)
	addCustomer(t, db, entity.Customer{ID: "c1", LastName: "Diallo", FirstName: "Amadou"})
	addSale(t, db, "s1", "c1", 1000, now.Add(-48*time.Hour))
	addSale(t, db, "s2", "c1", 500, now.Add(-time.Hour))
	addSale(t, db, "s3", "", 700, now)

	d, err := uc.Detail("c1")
	require.NoError(t, err)
	assert.Equal(t, 2, d.PurchaseCount)
	assert.True(t, d.LifetimeSpend.Equal(decimal.NewFromInt(1500)))
	require.Len(t, d.Purchases, 2)
	assert.Equal(t, "s2", d.Purchases[0].ID)

	spend, err := uc.LifetimeSpend("c1")
	require.NoError(t, err)
	assert.True(t, spend.Equal(decimal.NewFromInt(1500)))

	_, err = uc.Detail("nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAge(t *testing.T) {
	assert.Nil(t, Age(nil, now))
	assert.Equal(t, 38, *Age(birth(1985, 5, 21), now))
	assert.Equal(t, 39, *Age(birth(1985, 5, 20), now))
}

func TestStats(t *testing.T) {
	uc, db := newUseCase(t)
	addCustomer(t, db, entity.Customer{ID: "young", LastName: "A", FirstName: "A", BirthDate: birth(2002, 1, 1), RegisteredAt: now.AddDate(0, -2, 0)})
	addCustomer(t, db, entity.Customer{ID: "mid", LastName: "B", FirstName: "B", BirthDate: birth(1985, 3, 15), RegisteredAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)})
	addCustomer(t, db, entity.Customer{ID: "old", LastName: "C", FirstName: "C", BirthDate: birth(1950, 1, 1), RegisteredAt: now})
	addCustomer(t, db, entity.Customer{ID: "anon", LastName: "D", FirstName: "D", RegisteredAt: now.AddDate(-1, 0, 0)})
	for i := 0; i < 5; i++ {
		addSale(t, db, "m"+string(rune('a'+i)), "mid", 100, now)
	}
	addSale(t, db, "y1", "young", 100, now)

	st, err := uc.Stats()
	require.NoError(t, err)
	assert.Equal(t, 4, st.Total)
	assert.Equal(t, 2, st.NewThisMonth)
	assert.Equal(t, 2, st.Active)
	require.Len(t, st.Loyal, 1)
	assert.Equal(t, "mid", st.Loyal[0].ID)
	assert.Equal(t, 5, st.Loyal[0].PurchaseCount)

	counts := map[string]int{}
	for _, b := range st.AgeBreakdown {
		counts[b.Label] = b.Count
	}
	assert.Len(t, st.AgeBreakdown, 7)
	assert.Equal(t, 1, counts["18-25"])
	assert.Equal(t, 1, counts["36-45"])
	assert.Equal(t, 1, counts["65+"])
	assert.Equal(t, 1, counts[NoAgeLabel])
}

// ── Exportación ──

func TestExportCSV(t *testing.T) {
	uc, db := newUseCase(t)
	addCustomer(t, db, entity.Customer{ID: "c1", LastName: `O"Neil`, FirstName: "Zeinab", Address: "Lazaret, Niamey", BirthDate: birth(1988, 9, 30), RegisteredAt: time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC)})
	addSale(t, db, "s1", "c1", 1250, now)

	out, err := uc.ExportCSV()
	require.NoError(t, err)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, ExportHeader, lines[0])
	assert.Equal(t, `"c1","O""Neil","Zeinab","","","Lazaret, Niamey","35","2024-02-28","1250.00","1"`, lines[1])
}
