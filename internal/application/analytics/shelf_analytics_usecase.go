// Package analytics contiene las proyecciones de solo lectura: estadísticas
// de estantes con sus exportaciones y el resumen del dashboard.
package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/application/shelving"
	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
	"github.com/jhoicas/Farmacia-api/internal/infrastructure/kvstore"
	"github.com/jhoicas/Farmacia-api/pkg/export"
)

// CSVHeader cabecera de la exportación de traslados.
const CSVHeader = "Fecha,Producto,Estante,Tipo,Cantidad,Usuario,Comentario"

// ShelfAnalyticsUseCase reporte de actividad de estantes.
type ShelfAnalyticsUseCase struct {
	transfers  repository.TransferRepository
	placements repository.PlacementRepository
	shelves    repository.ShelfRepository
	items      repository.ItemRepository
	now        func() time.Time
}

// NewShelfAnalyticsUseCase construye el caso de uso.
func NewShelfAnalyticsUseCase(
	transfers repository.TransferRepository,
	placements repository.PlacementRepository,
	shelves repository.ShelfRepository,
	items repository.ItemRepository,
) *ShelfAnalyticsUseCase {
	return &ShelfAnalyticsUseCase{transfers: transfers, placements: placements, shelves: shelves, items: items, now: time.Now}
}

// Report agregados del periodo y filtros indicados.
func (uc *ShelfAnalyticsUseCase) Report(ctx context.Context, f dto.ShelfReportFilter) (*dto.ShelfReport, error) {
	report, _, _, err := uc.build(ctx, f)
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// ExportCSV una fila por traslado filtrado.
func (uc *ShelfAnalyticsUseCase) ExportCSV(ctx context.Context, f dto.ShelfReportFilter) (string, error) {
	_, filtered, names, err := uc.build(ctx, f)
	if err != nil {
		return "", err
	}
	rows := make([][]string, 0, len(filtered))
	for _, v := range shelving.TransferViews(filtered, names) {
		rows = append(rows, []string{
			v.Date.UTC().Format(kvstore.TimestampLayout),
			v.ItemName,
			v.ShelfName,
			v.Kind,
			strconv.Itoa(v.Quantity),
			v.User,
			v.Comment,
		})
	}
	return export.CSV(CSVHeader, rows), nil
}

// ExportJSON documento con periodo, agregados y traslados filtrados.
func (uc *ShelfAnalyticsUseCase) ExportJSON(ctx context.Context, f dto.ShelfReportFilter) ([]byte, error) {
	report, filtered, names, err := uc.build(ctx, f)
	if err != nil {
		return nil, err
	}
	doc := dto.ShelfReportExport{
		Period:     report.Period,
		Start:      report.Start,
		End:        report.End,
		Statistics: report,
		Transfers:  shelving.TransferViews(filtered, names),
	}
	data, err := kvstore.Encode(doc)
	if err != nil {
		return nil, fmt.Errorf("exportar reporte: %w", err)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return nil, fmt.Errorf("exportar reporte: %w", err)
	}
	return buf.Bytes(), nil
}

func (uc *ShelfAnalyticsUseCase) build(ctx context.Context, f dto.ShelfReportFilter) (dto.ShelfReport, []*entity.Transfer, shelving.Names, error) {
	if err := ctx.Err(); err != nil {
		return dto.ShelfReport{}, nil, shelving.Names{}, err
	}
	crit, err := criteria(f, uc.now())
	if err != nil {
		return dto.ShelfReport{}, nil, shelving.Names{}, err
	}
	in := ReportInput{Criteria: crit}
	if in.Transfers, err = uc.transfers.List(); err != nil {
		return dto.ShelfReport{}, nil, shelving.Names{}, err
	}
	if in.Placements, err = uc.placements.List(); err != nil {
		return dto.ShelfReport{}, nil, shelving.Names{}, err
	}
	if in.Shelves, err = uc.shelves.List(); err != nil {
		return dto.ShelfReport{}, nil, shelving.Names{}, err
	}
	if in.Items, err = uc.items.List(); err != nil {
		return dto.ShelfReport{}, nil, shelving.Names{}, err
	}
	report, filtered := BuildShelfReport(in)
	return report, filtered, shelving.NamesOf(in.Items, in.Shelves), nil
}

func criteria(f dto.ShelfReportFilter, now time.Time) (Criteria, error) {
	r, err := ResolvePeriod(f.Period, f.StartDate, f.EndDate, now)
	if err != nil {
		return Criteria{}, err
	}
	if f.Kind != "" && f.Kind != KindAll && !entity.ValidTransferKind(f.Kind) {
		return Criteria{}, domain.Invalid(fmt.Sprintf("tipo de traslado desconocido %q", f.Kind))
	}
	return Criteria{Range: r, ShelfID: f.ShelfID, ItemID: f.ItemID, Kind: f.Kind}, nil
}
