package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"stocktrack_backend/internal/ledger"
	"stocktrack_backend/internal/models"
	"stocktrack_backend/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- Custom Service Errors for Movements ---
var (
	ErrMovementNotFound  = errors.New("movement not found")
	ErrInsufficientStock = errors.New("insufficient stock for item")
)

// --- Movement DTOs ---

// CreateMovementRequest records one stock movement. INWARD may name a
// new item, which gets created; OUTWARD and RETURN require an existing
// item id. Optional item fields are applied on INWARD only when
// explicitly provided.
type CreateMovementRequest struct {
	ItemID            *string          `json:"item_id"`
	ItemName          string           `json:"item_name"`
	Unit              string           `json:"unit"`
	MovementType      string           `json:"movement_type" binding:"required,oneof=INWARD OUTWARD RETURN"`
	Quantity          int64            `json:"quantity" binding:"required,gt=0"`
	MovementDate      *time.Time       `json:"movement_date"`
	PricePerUnit      *decimal.Decimal `json:"price_per_unit"`
	BillNumber        *string          `json:"bill_number"`
	BillDate          *time.Time       `json:"bill_date"`
	ReferenceNumber   *string          `json:"reference_number"`
	SourceDestination *string          `json:"source_destination"`
	Mode              *string          `json:"mode" binding:"omitempty,oneof=SITE FACTORY"`
	LaborerName       *string          `json:"laborer_name"`
	Description       *string          `json:"description"`
	ReorderLevel      *int64           `json:"reorder_level"`
	OpeningStockDate  *time.Time       `json:"opening_stock_date"`
}

// GetMovementsQuery narrows movement listings.
type GetMovementsQuery struct {
	ItemID       *string
	MovementType *string
	Mode         *string
	LaborerName  *string
	From         *time.Time
	To           *time.Time
}

// --- MovementService Interface ---
type MovementService interface {
	CreateMovement(req CreateMovementRequest) (*models.Movement, error)
	GetMovements(query GetMovementsQuery, page, pageSize int) ([]models.Movement, int, error)
	DeleteMovement(movementID string) error
}

type movementService struct {
	movementRepo repositories.MovementRepository
	itemRepo     repositories.ItemRepository
	txRunner     repositories.TxRunner
}

// NewMovementService creates a new instance of MovementService.
func NewMovementService(movementRepo repositories.MovementRepository, itemRepo repositories.ItemRepository, txRunner repositories.TxRunner) MovementService {
	return &movementService{
		movementRepo: movementRepo,
		itemRepo:     itemRepo,
		txRunner:     txRunner,
	}
}

func (s *movementService) CreateMovement(req CreateMovementRequest) (*models.Movement, error) {
	switch req.MovementType {
	case models.MovementInward:
		return s.createInward(req)
	case models.MovementOutward, models.MovementReturn:
		return s.createOutwardOrReturn(req)
	}
	return nil, fmt.Errorf("%w: unknown movement type %q", ErrValidation, req.MovementType)
}

// createInward increases stock, recomputing the weighted average cost
// with the same rule the embedded ledger uses. An unknown item id or
// name creates the item; a known name (case-insensitive) merges into
// the existing item instead of duplicating it.
func (s *movementService) createInward(req CreateMovementRequest) (*models.Movement, error) {
	item, err := s.resolveItem(req)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to resolve item: %w", err)
	}

	created := false
	if item == nil {
		if strings.TrimSpace(req.ItemName) == "" {
			return nil, fmt.Errorf("%w: item name is required for a new item", ErrValidation)
		}
		item = &models.Item{
			ID:               uuid.NewString(),
			Name:             strings.TrimSpace(req.ItemName),
			Unit:             req.Unit,
			AverageCost:      decimal.Zero,
			CurrentStock:     0,
			OpeningStockDate: req.OpeningStockDate,
		}
		if req.ItemID != nil && *req.ItemID != "" {
			item.ID = *req.ItemID
		}
		created = true
	}

	price := item.AverageCost
	if req.PricePerUnit != nil {
		price = *req.PricePerUnit
	}
	item.AverageCost = ledger.WeightedAverage(item.AverageCost, item.CurrentStock, price, req.Quantity)
	item.CurrentStock += req.Quantity

	if req.Unit != "" {
		item.Unit = req.Unit
	}
	if req.Description != nil {
		item.Description = req.Description
	}
	if req.ReorderLevel != nil {
		item.ReorderLevel = *req.ReorderLevel
	}
	if req.OpeningStockDate != nil {
		item.OpeningStockDate = req.OpeningStockDate
	}

	movement := s.stampMovement(item, req)
	err = s.txRunner.RunInTx(func(executor repositories.SQLExecutor) error {
		if created {
			if err := s.itemRepo.CreateItem(executor, item); err != nil {
				return err
			}
		} else {
			if err := s.itemRepo.UpdateItem(executor, item); err != nil {
				return err
			}
		}
		return s.movementRepo.CreateMovement(executor, movement)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record inward movement: %w", err)
	}
	return movement, nil
}

// createOutwardOrReturn adjusts stock for an existing item. Outward
// checks available stock up front: the mirror API rejects over-issues
// that the permissive client-side ledger would clamp.
func (s *movementService) createOutwardOrReturn(req CreateMovementRequest) (*models.Movement, error) {
	if req.ItemID == nil || *req.ItemID == "" {
		return nil, fmt.Errorf("%w: item_id is required", ErrValidation)
	}
	item, err := s.itemRepo.GetItemByID(*req.ItemID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to load item: %w", err)
	}

	if req.MovementType == models.MovementOutward {
		if req.Quantity > item.CurrentStock {
			return nil, fmt.Errorf("%w: %s has %d in stock", ErrInsufficientStock, item.Name, item.CurrentStock)
		}
		item.CurrentStock -= req.Quantity
	} else {
		item.CurrentStock += req.Quantity
	}

	movement := s.stampMovement(item, req)
	err = s.txRunner.RunInTx(func(executor repositories.SQLExecutor) error {
		if err := s.itemRepo.UpdateItem(executor, item); err != nil {
			return err
		}
		return s.movementRepo.CreateMovement(executor, movement)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record %s movement: %w", strings.ToLower(req.MovementType), err)
	}
	return movement, nil
}

// stampMovement snapshots the resolved item's identity onto the record.
func (s *movementService) stampMovement(item *models.Item, req CreateMovementRequest) *models.Movement {
	movementDate := time.Now()
	if req.MovementDate != nil {
		movementDate = *req.MovementDate
	}
	return &models.Movement{
		ID:                uuid.NewString(),
		ItemID:            item.ID,
		ItemName:          item.Name,
		Unit:              item.Unit,
		MovementType:      req.MovementType,
		Quantity:          req.Quantity,
		MovementDate:      movementDate,
		PricePerUnit:      req.PricePerUnit,
		BillNumber:        req.BillNumber,
		BillDate:          req.BillDate,
		ReferenceNumber:   req.ReferenceNumber,
		SourceDestination: req.SourceDestination,
		Mode:              req.Mode,
		LaborerName:       req.LaborerName,
	}
}

func (s *movementService) resolveItem(req CreateMovementRequest) (*models.Item, error) {
	if req.ItemID != nil && *req.ItemID != "" {
		item, err := s.itemRepo.GetItemByID(*req.ItemID)
		if err == nil {
			return item, nil
		}
		if !errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
	}
	if strings.TrimSpace(req.ItemName) != "" {
		item, err := s.itemRepo.GetItemByName(req.ItemName)
		if err == nil {
			return item, nil
		}
		if !errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
	}
	return nil, repositories.ErrNotFound
}

func (s *movementService) GetMovements(query GetMovementsQuery, page, pageSize int) ([]models.Movement, int, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	filter := repositories.MovementFilter{
		ItemID:       query.ItemID,
		MovementType: query.MovementType,
		Mode:         query.Mode,
		LaborerName:  query.LaborerName,
		From:         query.From,
		To:           query.To,
	}
	return s.movementRepo.GetMovements(filter, page, pageSize)
}

func (s *movementService) DeleteMovement(movementID string) error {
	err := s.txRunner.RunInTx(func(executor repositories.SQLExecutor) error {
		return s.movementRepo.DeleteMovement(executor, movementID)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrMovementNotFound
		}
		return fmt.Errorf("failed to delete movement: %w", err)
	}
	return nil
}
