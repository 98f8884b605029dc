package services

import (
	"strings"
	"testing"

	"stocktrack_backend/internal/models"
	"stocktrack_backend/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// fakeTxRunner executes the function directly, without a transaction.
type fakeTxRunner struct{}

func (fakeTxRunner) RunInTx(fn func(executor repositories.SQLExecutor) error) error {
	return fn(nil)
}

// fakeItemRepo keeps items in memory, matching names case-insensitively
// the way the real repository's SQL does.
type fakeItemRepo struct {
	items map[string]*models.Item
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: map[string]*models.Item{}}
}

func (r *fakeItemRepo) CreateItem(_ repositories.SQLExecutor, item *models.Item) error {
	r.items[item.ID] = item
	return nil
}

func (r *fakeItemRepo) GetItemByID(itemID string) (*models.Item, error) {
	if item, ok := r.items[itemID]; ok {
		copied := *item
		return &copied, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeItemRepo) GetItemByName(name string) (*models.Item, error) {
	trimmed := strings.TrimSpace(name)
	for _, item := range r.items {
		if strings.EqualFold(item.Name, trimmed) {
			copied := *item
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeItemRepo) GetItems(page, pageSize int) ([]models.Item, int, error) {
	items, err := r.GetAllItems()
	return items, len(items), err
}

func (r *fakeItemRepo) GetAllItems() ([]models.Item, error) {
	items := []models.Item{}
	for _, item := range r.items {
		items = append(items, *item)
	}
	return items, nil
}

func (r *fakeItemRepo) UpdateItem(_ repositories.SQLExecutor, item *models.Item) error {
	if _, ok := r.items[item.ID]; !ok {
		return repositories.ErrNotFound
	}
	copied := *item
	r.items[item.ID] = &copied
	return nil
}

func (r *fakeItemRepo) DeleteItem(_ repositories.SQLExecutor, itemID string) error {
	if _, ok := r.items[itemID]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.items, itemID)
	return nil
}

func (r *fakeItemRepo) GetLowStockItems() ([]models.Item, error) {
	items := []models.Item{}
	for _, item := range r.items {
		if item.CurrentStock <= item.ReorderLevel {
			items = append(items, *item)
		}
	}
	return items, nil
}

// fakeMovementRepo records created movements in order.
type fakeMovementRepo struct {
	movements []*models.Movement
}

func (r *fakeMovementRepo) CreateMovement(_ repositories.SQLExecutor, movement *models.Movement) error {
	r.movements = append(r.movements, movement)
	return nil
}

func (r *fakeMovementRepo) GetMovementByID(movementID string) (*models.Movement, error) {
	for _, m := range r.movements {
		if m.ID == movementID {
			return m, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeMovementRepo) GetMovements(filter repositories.MovementFilter, page, pageSize int) ([]models.Movement, int, error) {
	out := []models.Movement{}
	for _, m := range r.movements {
		if filter.MovementType != nil && *filter.MovementType != "" && m.MovementType != *filter.MovementType {
			continue
		}
		out = append(out, *m)
	}
	return out, len(out), nil
}

func (r *fakeMovementRepo) DeleteMovement(_ repositories.SQLExecutor, movementID string) error {
	for i, m := range r.movements {
		if m.ID == movementID {
			r.movements = append(r.movements[:i], r.movements[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *fakeMovementRepo) DeleteMovementsByItem(_ repositories.SQLExecutor, itemID string) (int64, error) {
	kept := r.movements[:0]
	var removed int64
	for _, m := range r.movements {
		if m.ItemID == itemID {
			removed++
			continue
		}
		kept = append(kept, m)
	}
	r.movements = kept
	return removed, nil
}

func (r *fakeMovementRepo) CountByType() (map[string]int64, error) {
	counts := map[string]int64{}
	for _, m := range r.movements {
		counts[m.MovementType]++
	}
	return counts, nil
}

func newMovementService(itemRepo *fakeItemRepo, movementRepo *fakeMovementRepo) MovementService {
	return NewMovementService(movementRepo, itemRepo, fakeTxRunner{})
}

func decp(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestInwardCreatesItemAndRecordsMovement(t *testing.T) {
	itemRepo := newFakeItemRepo()
	movementRepo := &fakeMovementRepo{}
	svc := newMovementService(itemRepo, movementRepo)

	movement, err := svc.CreateMovement(CreateMovementRequest{
		ItemName:     "Cement Bag",
		Unit:         "bag",
		MovementType: models.MovementInward,
		Quantity:     100,
		PricePerUnit: decp("350"),
	})
	require.NoError(t, err)
	require.NotEmpty(t, movement.ID)
	require.Equal(t, "Cement Bag", movement.ItemName)

	item, err := itemRepo.GetItemByName("cement bag")
	require.NoError(t, err)
	require.EqualValues(t, 100, item.CurrentStock)
	require.True(t, item.AverageCost.Equal(decimal.RequireFromString("350")))
	require.Len(t, movementRepo.movements, 1)
}

func TestInwardMergesIntoExistingItemByName(t *testing.T) {
	itemRepo := newFakeItemRepo()
	movementRepo := &fakeMovementRepo{}
	svc := newMovementService(itemRepo, movementRepo)

	_, err := svc.CreateMovement(CreateMovementRequest{
		ItemName:     "Steel Rod",
		Unit:         "kg",
		MovementType: models.MovementInward,
		Quantity:     10,
		PricePerUnit: decp("2"),
	})
	require.NoError(t, err)

	_, err = svc.CreateMovement(CreateMovementRequest{
		ItemName:     "steel rod",
		MovementType: models.MovementInward,
		Quantity:     30,
		PricePerUnit: decp("4"),
	})
	require.NoError(t, err)

	items, err := itemRepo.GetAllItems()
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.EqualValues(t, 40, items[0].CurrentStock)
	// (2*10 + 4*30) / 40 = 3.5
	require.True(t, items[0].AverageCost.Equal(decimal.RequireFromString("3.5")),
		"got %s", items[0].AverageCost)
}

func TestInwardWithoutPriceUsesCurrentAverage(t *testing.T) {
	itemRepo := newFakeItemRepo()
	movementRepo := &fakeMovementRepo{}
	svc := newMovementService(itemRepo, movementRepo)

	_, err := svc.CreateMovement(CreateMovementRequest{
		ItemName:     "Sand",
		Unit:         "ton",
		MovementType: models.MovementInward,
		Quantity:     5,
		PricePerUnit: decp("1200"),
	})
	require.NoError(t, err)

	_, err = svc.CreateMovement(CreateMovementRequest{
		ItemName:     "Sand",
		MovementType: models.MovementInward,
		Quantity:     5,
	})
	require.NoError(t, err)

	item, err := itemRepo.GetItemByName("Sand")
	require.NoError(t, err)
	require.EqualValues(t, 10, item.CurrentStock)
	require.True(t, item.AverageCost.Equal(decimal.RequireFromString("1200")))
}

func TestOutwardRejectsInsufficientStock(t *testing.T) {
	itemRepo := newFakeItemRepo()
	movementRepo := &fakeMovementRepo{}
	svc := newMovementService(itemRepo, movementRepo)

	movement, err := svc.CreateMovement(CreateMovementRequest{
		ItemName:     "Bricks",
		Unit:         "pcs",
		MovementType: models.MovementInward,
		Quantity:     50,
	})
	require.NoError(t, err)

	_, err = svc.CreateMovement(CreateMovementRequest{
		ItemID:       &movement.ItemID,
		MovementType: models.MovementOutward,
		Quantity:     80,
	})
	require.ErrorIs(t, err, ErrInsufficientStock)

	item, err := itemRepo.GetItemByID(movement.ItemID)
	require.NoError(t, err)
	require.EqualValues(t, 50, item.CurrentStock, "rejected issue must not touch stock")
}

func TestOutwardAndReturnAdjustStock(t *testing.T) {
	itemRepo := newFakeItemRepo()
	movementRepo := &fakeMovementRepo{}
	svc := newMovementService(itemRepo, movementRepo)

	movement, err := svc.CreateMovement(CreateMovementRequest{
		ItemName:     "Paint",
		Unit:         "ltr",
		MovementType: models.MovementInward,
		Quantity:     20,
		PricePerUnit: decp("500"),
	})
	require.NoError(t, err)

	_, err = svc.CreateMovement(CreateMovementRequest{
		ItemID:       &movement.ItemID,
		MovementType: models.MovementOutward,
		Quantity:     8,
	})
	require.NoError(t, err)

	_, err = svc.CreateMovement(CreateMovementRequest{
		ItemID:       &movement.ItemID,
		MovementType: models.MovementReturn,
		Quantity:     3,
	})
	require.NoError(t, err)

	item, err := itemRepo.GetItemByID(movement.ItemID)
	require.NoError(t, err)
	require.EqualValues(t, 15, item.CurrentStock)
	require.True(t, item.AverageCost.Equal(decimal.RequireFromString("500")),
		"return must not change the average cost")
}

func TestOutwardUnknownItemFails(t *testing.T) {
	svc := newMovementService(newFakeItemRepo(), &fakeMovementRepo{})

	missing := "no-such-item"
	_, err := svc.CreateMovement(CreateMovementRequest{
		ItemID:       &missing,
		MovementType: models.MovementOutward,
		Quantity:     1,
	})
	require.ErrorIs(t, err, ErrItemNotFound)
}

func TestDeleteItemCascadesMovements(t *testing.T) {
	itemRepo := newFakeItemRepo()
	movementRepo := &fakeMovementRepo{}
	movementSvc := newMovementService(itemRepo, movementRepo)
	itemSvc := NewItemService(itemRepo, movementRepo, fakeTxRunner{})

	movement, err := movementSvc.CreateMovement(CreateMovementRequest{
		ItemName:     "Gravel",
		Unit:         "ton",
		MovementType: models.MovementInward,
		Quantity:     10,
	})
	require.NoError(t, err)

	require.NoError(t, itemSvc.DeleteItem(movement.ItemID))

	_, err = itemRepo.GetItemByID(movement.ItemID)
	require.ErrorIs(t, err, repositories.ErrNotFound)
	require.Empty(t, movementRepo.movements)
}
