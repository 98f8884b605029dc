package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"stocktrack_backend/internal/models"
	"stocktrack_backend/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- Custom Service Errors for Items ---
var (
	ErrItemNotFound = errors.New("item not found")
	ErrValidation   = errors.New("validation error")
)

// --- Item DTOs ---

// CreateItemRequest registers an item ahead of any stock movement. Most
// items are instead created implicitly by their first inward movement.
type CreateItemRequest struct {
	ID           *string `json:"id"`
	Name         string  `json:"name" binding:"required"`
	Unit         string  `json:"unit" binding:"required"`
	ReorderLevel *int64  `json:"reorder_level"`
	Description  *string `json:"description"`
}

// UpdateItemRequest patches an item. Pointer fields distinguish "not
// provided" from zero values; only provided fields are merged. Stock and
// average cost can be overridden directly for manual corrections.
type UpdateItemRequest struct {
	Name             *string          `json:"name"`
	Unit             *string          `json:"unit"`
	Description      *string          `json:"description"`
	ReorderLevel     *int64           `json:"reorder_level"`
	CurrentStock     *int64           `json:"current_stock"`
	AverageCost      *decimal.Decimal `json:"purchase_price"`
	OpeningStockDate *time.Time       `json:"opening_stock_date"`
}

// --- ItemService Interface ---
type ItemService interface {
	// CreateItem returns the item and whether it was newly created; an
	// existing item with the same name (case-insensitive) is returned
	// as a duplicate instead of an error.
	CreateItem(req CreateItemRequest) (*models.Item, bool, error)
	GetItemByID(itemID string) (*models.Item, error)
	GetItems(page, pageSize int) ([]models.Item, int, error)
	UpdateItem(itemID string, req UpdateItemRequest) (*models.Item, error)
	DeleteItem(itemID string) error
	GetLowStockItems() ([]models.Item, error)
}

type itemService struct {
	itemRepo     repositories.ItemRepository
	movementRepo repositories.MovementRepository
	txRunner     repositories.TxRunner
}

// NewItemService creates a new instance of ItemService.
func NewItemService(itemRepo repositories.ItemRepository, movementRepo repositories.MovementRepository, txRunner repositories.TxRunner) ItemService {
	return &itemService{
		itemRepo:     itemRepo,
		movementRepo: movementRepo,
		txRunner:     txRunner,
	}
}

func (s *itemService) CreateItem(req CreateItemRequest) (*models.Item, bool, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, false, fmt.Errorf("%w: item name cannot be empty", ErrValidation)
	}

	existing, err := s.itemRepo.GetItemByName(name)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, false, fmt.Errorf("failed to check item name: %w", err)
	}

	item := &models.Item{
		ID:          uuid.NewString(),
		Name:        name,
		Unit:        req.Unit,
		AverageCost: decimal.Zero,
		Description: req.Description,
	}
	if req.ID != nil && *req.ID != "" {
		item.ID = *req.ID
	}
	if req.ReorderLevel != nil {
		item.ReorderLevel = *req.ReorderLevel
	}

	if err := s.txRunner.RunInTx(func(executor repositories.SQLExecutor) error {
		return s.itemRepo.CreateItem(executor, item)
	}); err != nil {
		return nil, false, fmt.Errorf("failed to create item: %w", err)
	}
	return item, true, nil
}

func (s *itemService) GetItemByID(itemID string) (*models.Item, error) {
	item, err := s.itemRepo.GetItemByID(itemID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return item, nil
}

func (s *itemService) GetItems(page, pageSize int) ([]models.Item, int, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	return s.itemRepo.GetItems(page, pageSize)
}

func (s *itemService) UpdateItem(itemID string, req UpdateItemRequest) (*models.Item, error) {
	item, err := s.itemRepo.GetItemByID(itemID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to load item for update: %w", err)
	}

	// Merge only the fields the caller explicitly provided.
	if req.Name != nil {
		item.Name = strings.TrimSpace(*req.Name)
	}
	if req.Unit != nil {
		item.Unit = *req.Unit
	}
	if req.Description != nil {
		item.Description = req.Description
	}
	if req.ReorderLevel != nil {
		item.ReorderLevel = *req.ReorderLevel
	}
	if req.CurrentStock != nil {
		item.CurrentStock = *req.CurrentStock
	}
	if req.AverageCost != nil {
		item.AverageCost = *req.AverageCost
	}
	if req.OpeningStockDate != nil {
		item.OpeningStockDate = req.OpeningStockDate
	}

	if err := s.txRunner.RunInTx(func(executor repositories.SQLExecutor) error {
		return s.itemRepo.UpdateItem(executor, item)
	}); err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}
	return item, nil
}

// DeleteItem removes an item and cascades to every movement referencing
// it, in one transaction. Challans are left untouched: they are issued
// documents and stay on record even when the item is retired.
func (s *itemService) DeleteItem(itemID string) error {
	err := s.txRunner.RunInTx(func(executor repositories.SQLExecutor) error {
		if _, err := s.movementRepo.DeleteMovementsByItem(executor, itemID); err != nil {
			return err
		}
		return s.itemRepo.DeleteItem(executor, itemID)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrItemNotFound
		}
		return fmt.Errorf("failed to delete item: %w", err)
	}
	return nil
}

func (s *itemService) GetLowStockItems() ([]models.Item, error) {
	return s.itemRepo.GetLowStockItems()
}
