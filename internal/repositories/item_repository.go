package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"stocktrack_backend/internal/models"

	"github.com/lib/pq"
)

// ItemRepository defines the database operations for stock items.
type ItemRepository interface {
	CreateItem(executor SQLExecutor, item *models.Item) error
	GetItemByID(itemID string) (*models.Item, error)
	GetItemByName(name string) (*models.Item, error)
	GetItems(page, pageSize int) ([]models.Item, int, error)
	GetAllItems() ([]models.Item, error)
	UpdateItem(executor SQLExecutor, item *models.Item) error
	DeleteItem(executor SQLExecutor, itemID string) error
	GetLowStockItems() ([]models.Item, error)
}

type itemRepository struct {
	db *sql.DB
}

// NewItemRepository creates a new instance of ItemRepository.
func NewItemRepository(db *sql.DB) ItemRepository {
	return &itemRepository{db: db}
}

const itemColumns = `id, name, unit, average_cost, current_stock, reorder_level, description, opening_stock_date, created_at, updated_at`

func scanItem(row interface{ Scan(dest ...interface{}) error }) (*models.Item, error) {
	item := &models.Item{}
	err := row.Scan(
		&item.ID, &item.Name, &item.Unit, &item.AverageCost, &item.CurrentStock,
		&item.ReorderLevel, &item.Description, &item.OpeningStockDate,
		&item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *itemRepository) CreateItem(executor SQLExecutor, item *models.Item) error {
	query := `INSERT INTO items (id, name, unit, average_cost, current_stock, reorder_level, description, opening_stock_date, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	currentTime := time.Now()
	item.CreatedAt = currentTime
	item.UpdatedAt = currentTime

	_, err := executor.Exec(query,
		item.ID, item.Name, item.Unit, item.AverageCost, item.CurrentStock,
		item.ReorderLevel, item.Description, item.OpeningStockDate,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
		}
		return fmt.Errorf("%w: creating item: %v", ErrDatabaseError, err)
	}
	return nil
}

func (r *itemRepository) GetItemByID(itemID string) (*models.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	item, err := scanItem(r.db.QueryRow(query, itemID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting item by id %s: %v", ErrDatabaseError, itemID, err)
	}
	return item, nil
}

// GetItemByName matches case-insensitively: the item name acts as a
// secondary unique key for inward merging.
func (r *itemRepository) GetItemByName(name string) (*models.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE LOWER(name) = LOWER(TRIM($1))`
	item, err := scanItem(r.db.QueryRow(query, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting item by name %s: %v", ErrDatabaseError, name, err)
	}
	return item, nil
}

func (r *itemRepository) GetItems(page, pageSize int) ([]models.Item, int, error) {
	items := []models.Item{}
	totalCount := 0

	query := `SELECT ` + itemColumns + `, COUNT(*) OVER() AS total_count
	          FROM items ORDER BY name ASC LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(query, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: getting items: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.Item
		if err := rows.Scan(
			&item.ID, &item.Name, &item.Unit, &item.AverageCost, &item.CurrentStock,
			&item.ReorderLevel, &item.Description, &item.OpeningStockDate,
			&item.CreatedAt, &item.UpdatedAt, &totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning item: %v", ErrDatabaseError, err)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating items: %v", ErrDatabaseError, err)
	}
	return items, totalCount, nil
}

// GetAllItems returns every item ordered by name; used by the summary
// and CSV reports, which are not paginated.
func (r *itemRepository) GetAllItems() ([]models.Item, error) {
	items := []models.Item{}
	query := `SELECT ` + itemColumns + ` FROM items ORDER BY name ASC`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: getting all items: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.Item
		if err := rows.Scan(
			&item.ID, &item.Name, &item.Unit, &item.AverageCost, &item.CurrentStock,
			&item.ReorderLevel, &item.Description, &item.OpeningStockDate,
			&item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning item: %v", ErrDatabaseError, err)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating items: %v", ErrDatabaseError, err)
	}
	return items, nil
}

func (r *itemRepository) UpdateItem(executor SQLExecutor, item *models.Item) error {
	query := `UPDATE items
	          SET name = $1, unit = $2, average_cost = $3, current_stock = $4,
	              reorder_level = $5, description = $6, opening_stock_date = $7, updated_at = $8
	          WHERE id = $9`
	item.UpdatedAt = time.Now()

	result, err := executor.Exec(query,
		item.Name, item.Unit, item.AverageCost, item.CurrentStock,
		item.ReorderLevel, item.Description, item.OpeningStockDate,
		item.UpdatedAt, item.ID,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
		}
		return fmt.Errorf("%w: updating item %s: %v", ErrDatabaseError, item.ID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: updating item %s: %v", ErrDatabaseError, item.ID, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *itemRepository) DeleteItem(executor SQLExecutor, itemID string) error {
	result, err := executor.Exec(`DELETE FROM items WHERE id = $1`, itemID)
	if err != nil {
		return fmt.Errorf("%w: deleting item %s: %v", ErrDatabaseError, itemID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: deleting item %s: %v", ErrDatabaseError, itemID, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetLowStockItems returns items at or below their reorder level, most
// overdrawn first.
func (r *itemRepository) GetLowStockItems() ([]models.Item, error) {
	items := []models.Item{}
	query := `SELECT ` + itemColumns + ` FROM items
	          WHERE current_stock <= reorder_level
	          ORDER BY (current_stock - reorder_level) ASC, name ASC`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: getting low stock items: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.Item
		if err := rows.Scan(
			&item.ID, &item.Name, &item.Unit, &item.AverageCost, &item.CurrentStock,
			&item.ReorderLevel, &item.Description, &item.OpeningStockDate,
			&item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning low stock item: %v", ErrDatabaseError, err)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating low stock items: %v", ErrDatabaseError, err)
	}
	return items, nil
}
