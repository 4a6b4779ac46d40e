package storage

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/inventory"
)

var demoNamespace = uuid.MustParse("6f1c2f4e-8a0b-4d55-9a3e-2c7f5b1d9e10")

// DemoID identificador estable de un registro de demostración.
func DemoID(kind string, n int) string {
	return uuid.NewSHA1(demoNamespace, []byte(kind+"/"+strconv.Itoa(n))).String()
}

type demoData struct {
	items      []entity.Item
	shelves    []entity.Shelf
	placements []entity.Placement
	customers  []entity.Customer
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func birth(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

// newDemoData catálogo, estantes, ubicaciones y clientes iniciales.
func newDemoData(now time.Time) *demoData {
	items := []entity.Item{
		{
			ID: DemoID("item", 1), Name: "Paracétamol 500mg", Description: "Antalgique et antipyrétique",
			Price: decimal.NewFromInt(250), StockQuantity: 150, AlertThreshold: 20,
			ExpirationDate: date(2025, 12, 31), Category: "Antalgiques", Supplier: "Pharma Plus",
			Barcode: "3401579804567", Dosage: "500mg", Form: entity.FormTablet,
			CreatedAt: date(2024, 1, 15), UpdatedAt: date(2024, 1, 15),
		},
		{
			ID: DemoID("item", 2), Name: "Amoxicilline 1g", Description: "Antibiotique à large spectre",
			Price: decimal.NewFromInt(1200), StockQuantity: 8, AlertThreshold: 10,
			ExpirationDate: date(2025, 6, 30), Category: "Antibiotiques", Supplier: "MediCorp",
			Barcode: "3401579804568", Dosage: "1g", Form: entity.FormTablet, Prescription: true,
			CreatedAt: date(2024, 2, 1), UpdatedAt: date(2024, 2, 1),
		},
		{
			ID: DemoID("item", 3), Name: "Sirop contre la toux", Description: "Sirop expectorant",
			Price: decimal.NewFromInt(850), StockQuantity: 25, AlertThreshold: 15,
			ExpirationDate: date(2025, 3, 15), Category: "Sirops", Supplier: "Pharma Plus",
			Barcode: "3401579804569", Dosage: "100ml", Form: entity.FormSyrup,
			CreatedAt: date(2024, 1, 20), UpdatedAt: date(2024, 1, 20),
		},
	}

	shelves := []entity.Shelf{
		{ID: DemoID("shelf", 1), Name: "Rayon A", Description: "Médicaments sans ordonnance", Location: "Allée 1, Étagère 1-3", MaxCapacity: 100, CreatedAt: date(2024, 1, 1), UpdatedAt: date(2024, 1, 1)},
		{ID: DemoID("shelf", 2), Name: "Rayon B", Description: "Antibiotiques et médicaments sur ordonnance", Location: "Allée 2, Étagère 1-2", MaxCapacity: 80, CreatedAt: date(2024, 1, 1), UpdatedAt: date(2024, 1, 1)},
		{ID: DemoID("shelf", 3), Name: "Rayon C", Description: "Sirops et médicaments liquides", Location: "Allée 1, Étagère 4-5", MaxCapacity: 60, CreatedAt: date(2024, 1, 1), UpdatedAt: date(2024, 1, 1)},
	}

	placement := func(n, item, shelf, qty int) entity.Placement {
		return entity.Placement{
			ID: DemoID("placement", n), ItemID: DemoID("item", item), ShelfID: DemoID("shelf", shelf),
			Quantity: qty, MinimumQuantity: inventory.MinimumQuantity(qty),
			TransferredAt: now, Status: entity.PlacementForSale,
		}
	}
	placements := []entity.Placement{
		placement(1, 1, 1, 50),
		placement(2, 2, 2, 5),
		placement(3, 3, 3, 15),
	}
	// Mínimos fijados a mano, distintos del 20 %.
	placements[1].MinimumQuantity = 5
	placements[2].MinimumQuantity = 8

	customers := []entity.Customer{
		{ID: DemoID("client", 1), LastName: "Diallo", FirstName: "Amadou", Phone: "70 12 34 56", Email: "amadou.diallo@email.com", Address: "Quartier Liberté, Niamey", BirthDate: birth(1985, 3, 15), SocialSecurityNumber: "1850315123456", RegisteredAt: date(2024, 1, 10)},
		{ID: DemoID("client", 2), LastName: "Kone", FirstName: "Fatima", Phone: "96 78 90 12", Email: "fatima.kone@email.com", Address: "Plateau, Niamey", BirthDate: birth(1992, 7, 22), SocialSecurityNumber: "2920722654321", RegisteredAt: date(2024, 2, 15)},
		{ID: DemoID("client", 3), LastName: "Oumarou", FirstName: "Ibrahim", Phone: "90 45 67 89", Address: "Gamkallé, Niamey", BirthDate: birth(1978, 11, 8), RegisteredAt: date(2024, 3, 1)},
		{ID: DemoID("client", 4), LastName: "Saidou", FirstName: "Aïcha", Phone: "70 98 76 54", Email: "aicha.saidou@email.com", Address: "Kirkissoye, Niamey", BirthDate: birth(1990, 5, 12), SocialSecurityNumber: "2900512987654", RegisteredAt: date(2024, 1, 25)},
		{ID: DemoID("client", 5), LastName: "Mamadou", FirstName: "Zeinab", Phone: "96 12 34 78", Address: "Lazaret, Niamey", BirthDate: birth(1988, 9, 30), RegisteredAt: date(2024, 2, 28)},
	}

	return &demoData{items: items, shelves: shelves, placements: placements, customers: customers}
}
