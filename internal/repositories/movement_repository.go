package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"stocktrack_backend/internal/models"
)

// MovementFilter narrows movement listings. Nil fields are not applied.
type MovementFilter struct {
	ItemID       *string
	MovementType *string
	Mode         *string
	LaborerName  *string
	From         *time.Time
	To           *time.Time
}

// MovementRepository defines the database operations for stock movements.
type MovementRepository interface {
	CreateMovement(executor SQLExecutor, movement *models.Movement) error
	GetMovementByID(movementID string) (*models.Movement, error)
	GetMovements(filter MovementFilter, page, pageSize int) ([]models.Movement, int, error)
	DeleteMovement(executor SQLExecutor, movementID string) error
	DeleteMovementsByItem(executor SQLExecutor, itemID string) (int64, error)
	CountByType() (map[string]int64, error)
}

type movementRepository struct {
	db *sql.DB
}

// NewMovementRepository creates a new instance of MovementRepository.
func NewMovementRepository(db *sql.DB) MovementRepository {
	return &movementRepository{db: db}
}

const movementColumns = `id, item_id, item_name, unit, movement_type, quantity, movement_date,
	price_per_unit, bill_number, bill_date, reference_number, source_destination, mode, laborer_name, created_at`

func (r *movementRepository) CreateMovement(executor SQLExecutor, movement *models.Movement) error {
	query := `INSERT INTO movements
	          (id, item_id, item_name, unit, movement_type, quantity, movement_date,
	           price_per_unit, bill_number, bill_date, reference_number, source_destination, mode, laborer_name, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	if movement.MovementDate.IsZero() {
		movement.MovementDate = time.Now()
	}
	movement.CreatedAt = time.Now()

	_, err := executor.Exec(query,
		movement.ID, movement.ItemID, movement.ItemName, movement.Unit,
		movement.MovementType, movement.Quantity, movement.MovementDate,
		movement.PricePerUnit, movement.BillNumber, movement.BillDate,
		movement.ReferenceNumber, movement.SourceDestination, movement.Mode,
		movement.LaborerName, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("%w: creating movement: %v", ErrDatabaseError, err)
	}
	return nil
}

func (r *movementRepository) GetMovementByID(movementID string) (*models.Movement, error) {
	movement := &models.Movement{}
	query := `SELECT ` + movementColumns + ` FROM movements WHERE id = $1`
	err := r.db.QueryRow(query, movementID).Scan(
		&movement.ID, &movement.ItemID, &movement.ItemName, &movement.Unit,
		&movement.MovementType, &movement.Quantity, &movement.MovementDate,
		&movement.PricePerUnit, &movement.BillNumber, &movement.BillDate,
		&movement.ReferenceNumber, &movement.SourceDestination, &movement.Mode,
		&movement.LaborerName, &movement.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting movement %s: %v", ErrDatabaseError, movementID, err)
	}
	return movement, nil
}

func (r *movementRepository) GetMovements(filter MovementFilter, page, pageSize int) ([]models.Movement, int, error) {
	movements := []models.Movement{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + movementColumns + `, COUNT(*) OVER() AS total_count FROM movements`)

	var conditions []string
	var args []interface{}
	argCount := 1

	if filter.ItemID != nil {
		conditions = append(conditions, fmt.Sprintf("item_id = $%d", argCount))
		args = append(args, *filter.ItemID)
		argCount++
	}
	if filter.MovementType != nil && *filter.MovementType != "" {
		conditions = append(conditions, fmt.Sprintf("movement_type = $%d", argCount))
		args = append(args, *filter.MovementType)
		argCount++
	}
	if filter.Mode != nil && *filter.Mode != "" {
		conditions = append(conditions, fmt.Sprintf("mode = $%d", argCount))
		args = append(args, *filter.Mode)
		argCount++
	}
	if filter.LaborerName != nil && *filter.LaborerName != "" {
		conditions = append(conditions, fmt.Sprintf("laborer_name = $%d", argCount))
		args = append(args, *filter.LaborerName)
		argCount++
	}
	if filter.From != nil {
		conditions = append(conditions, fmt.Sprintf("movement_date::date >= $%d::date", argCount))
		args = append(args, *filter.From)
		argCount++
	}
	if filter.To != nil {
		conditions = append(conditions, fmt.Sprintf("movement_date::date <= $%d::date", argCount))
		args = append(args, *filter.To)
		argCount++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE ")
		queryBuilder.WriteString(strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY movement_date DESC, created_at DESC")
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCount, argCount+1))
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: getting movements: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var movement models.Movement
		if err := rows.Scan(
			&movement.ID, &movement.ItemID, &movement.ItemName, &movement.Unit,
			&movement.MovementType, &movement.Quantity, &movement.MovementDate,
			&movement.PricePerUnit, &movement.BillNumber, &movement.BillDate,
			&movement.ReferenceNumber, &movement.SourceDestination, &movement.Mode,
			&movement.LaborerName, &movement.CreatedAt, &totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning movement: %v", ErrDatabaseError, err)
		}
		movements = append(movements, movement)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating movements: %v", ErrDatabaseError, err)
	}
	return movements, totalCount, nil
}

func (r *movementRepository) DeleteMovement(executor SQLExecutor, movementID string) error {
	result, err := executor.Exec(`DELETE FROM movements WHERE id = $1`, movementID)
	if err != nil {
		return fmt.Errorf("%w: deleting movement %s: %v", ErrDatabaseError, movementID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: deleting movement %s: %v", ErrDatabaseError, movementID, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteMovementsByItem removes every movement of an item; used as the
// cascade when the item itself is deleted.
func (r *movementRepository) DeleteMovementsByItem(executor SQLExecutor, itemID string) (int64, error) {
	result, err := executor.Exec(`DELETE FROM movements WHERE item_id = $1`, itemID)
	if err != nil {
		return 0, fmt.Errorf("%w: deleting movements for item %s: %v", ErrDatabaseError, itemID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: deleting movements for item %s: %v", ErrDatabaseError, itemID, err)
	}
	return affected, nil
}

func (r *movementRepository) CountByType() (map[string]int64, error) {
	counts := map[string]int64{}
	rows, err := r.db.Query(`SELECT movement_type, COUNT(*) FROM movements GROUP BY movement_type`)
	if err != nil {
		return nil, fmt.Errorf("%w: counting movements: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var movementType string
		var count int64
		if err := rows.Scan(&movementType, &count); err != nil {
			return nil, fmt.Errorf("%w: scanning movement count: %v", ErrDatabaseError, err)
		}
		counts[movementType] = count
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating movement counts: %v", ErrDatabaseError, err)
	}
	return counts, nil
}
