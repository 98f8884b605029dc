package services

import (
	"fmt"
	"io"

	"stocktrack_backend/internal/export"
	"stocktrack_backend/internal/ledger"
	"stocktrack_backend/internal/models"
	"stocktrack_backend/internal/repositories"

	"github.com/shopspring/decimal"
)

const dashboardRecentMovements = 10

// --- ReportService Interface ---
type ReportService interface {
	GetStockSummary() ([]models.StockSummaryRow, error)
	GetDashboardStats() (*models.DashboardStats, error)
	ExportStockListCSV(w io.Writer) error
	ExportLowStockCSV(w io.Writer) error
	ExportMovementsCSV(query GetMovementsQuery, w io.Writer) error
}

type reportService struct {
	itemRepo     repositories.ItemRepository
	movementRepo repositories.MovementRepository
}

// NewReportService creates a new instance of ReportService.
func NewReportService(itemRepo repositories.ItemRepository, movementRepo repositories.MovementRepository) ReportService {
	return &reportService{
		itemRepo:     itemRepo,
		movementRepo: movementRepo,
	}
}

// GetStockSummary values every item at its weighted average cost.
func (s *reportService) GetStockSummary() ([]models.StockSummaryRow, error) {
	items, err := s.itemRepo.GetAllItems()
	if err != nil {
		return nil, fmt.Errorf("failed to build stock summary: %w", err)
	}

	rows := make([]models.StockSummaryRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, models.StockSummaryRow{
			ItemID:       item.ID,
			Name:         item.Name,
			Unit:         item.Unit,
			CurrentStock: item.CurrentStock,
			AverageCost:  item.AverageCost,
			StockValue:   item.AverageCost.Mul(decimal.NewFromInt(item.CurrentStock)),
			ReorderLevel: item.ReorderLevel,
			LowStock:     item.CurrentStock <= item.ReorderLevel,
		})
	}
	return rows, nil
}

func (s *reportService) GetDashboardStats() (*models.DashboardStats, error) {
	items, err := s.itemRepo.GetAllItems()
	if err != nil {
		return nil, fmt.Errorf("failed to load items for dashboard: %w", err)
	}
	counts, err := s.movementRepo.CountByType()
	if err != nil {
		return nil, fmt.Errorf("failed to count movements: %w", err)
	}
	recent, _, err := s.movementRepo.GetMovements(repositories.MovementFilter{}, 1, dashboardRecentMovements)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent movements: %w", err)
	}

	stats := &models.DashboardStats{
		TotalItems:      int64(len(items)),
		TotalStockValue: decimal.Zero,
		InwardCount:     counts[models.MovementInward],
		OutwardCount:    counts[models.MovementOutward],
		ReturnCount:     counts[models.MovementReturn],
		RecentMovements: recent,
	}
	for _, item := range items {
		stats.TotalStockValue = stats.TotalStockValue.Add(item.AverageCost.Mul(decimal.NewFromInt(item.CurrentStock)))
		if item.CurrentStock <= item.ReorderLevel {
			stats.LowStockCount++
		}
	}
	return stats, nil
}

func (s *reportService) ExportStockListCSV(w io.Writer) error {
	items, err := s.itemRepo.GetAllItems()
	if err != nil {
		return fmt.Errorf("failed to load items for export: %w", err)
	}
	return export.WriteStockListCSV(w, toLedgerItems(items))
}

func (s *reportService) ExportLowStockCSV(w io.Writer) error {
	items, err := s.itemRepo.GetLowStockItems()
	if err != nil {
		return fmt.Errorf("failed to load low stock items for export: %w", err)
	}
	return export.WriteLowStockCSV(w, toLedgerItems(items))
}

// ExportMovementsCSV streams the filtered movement report. The filter is
// applied server-side; the export is not paginated.
func (s *reportService) ExportMovementsCSV(query GetMovementsQuery, w io.Writer) error {
	filter := repositories.MovementFilter{
		ItemID:       query.ItemID,
		MovementType: query.MovementType,
		Mode:         query.Mode,
		LaborerName:  query.LaborerName,
		From:         query.From,
		To:           query.To,
	}
	movements, _, err := s.movementRepo.GetMovements(filter, 1, exportPageSize)
	if err != nil {
		return fmt.Errorf("failed to load movements for export: %w", err)
	}
	return export.WriteMovementsCSV(w, toLedgerMovements(movements))
}

// exportPageSize bounds CSV exports; well above what a small business
// ledger accumulates.
const exportPageSize = 100000

func toLedgerItems(items []models.Item) []ledger.Item {
	out := make([]ledger.Item, 0, len(items))
	for _, item := range items {
		converted := ledger.Item{
			ID:               item.ID,
			Name:             item.Name,
			Unit:             item.Unit,
			AverageCost:      item.AverageCost,
			CurrentStock:     item.CurrentStock,
			ReorderLevel:     item.ReorderLevel,
			OpeningStockDate: item.OpeningStockDate,
		}
		if item.Description != nil {
			converted.Description = *item.Description
		}
		out = append(out, converted)
	}
	return out
}

func toLedgerMovements(movements []models.Movement) []ledger.Movement {
	out := make([]ledger.Movement, 0, len(movements))
	for _, m := range movements {
		converted := ledger.Movement{
			ID:           m.ID,
			ItemID:       m.ItemID,
			ItemName:     m.ItemName,
			Unit:         m.Unit,
			Kind:         ledger.MovementKind(m.MovementType),
			Quantity:     m.Quantity,
			Date:         m.MovementDate,
			PricePerUnit: m.PricePerUnit,
			BillDate:     m.BillDate,
		}
		if m.BillNumber != nil {
			converted.BillNumber = *m.BillNumber
		}
		if m.ReferenceNumber != nil {
			converted.ReferenceNumber = *m.ReferenceNumber
		}
		if m.SourceDestination != nil {
			converted.SourceDestination = *m.SourceDestination
		}
		if m.Mode != nil {
			converted.Mode = ledger.ChallanMode(*m.Mode)
		}
		if m.LaborerName != nil {
			converted.LaborerName = *m.LaborerName
		}
		out = append(out, converted)
	}
	return out
}
