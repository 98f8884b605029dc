package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"stocktrack_backend/internal/models"

	"github.com/lib/pq"
)

// ChallanRepository defines the database operations for delivery challans.
type ChallanRepository interface {
	CreateChallan(executor SQLExecutor, challan *models.Challan) error
	GetChallanByID(challanID string) (*models.Challan, error)
	GetChallans(page, pageSize int) ([]models.Challan, int, error)
	GetChallanNumbersByPrefix(prefix string) ([]string, error)
}

type challanRepository struct {
	db *sql.DB
}

// NewChallanRepository creates a new instance of ChallanRepository.
func NewChallanRepository(db *sql.DB) ChallanRepository {
	return &challanRepository{db: db}
}

const challanColumns = `id, challan_number, challan_date, mode, company_name, site_name, vehicle_number, laborer_name, movement_id, created_at`

func (r *challanRepository) CreateChallan(executor SQLExecutor, challan *models.Challan) error {
	query := `INSERT INTO challans
	          (id, challan_number, challan_date, mode, company_name, site_name, vehicle_number, laborer_name, movement_id, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	challan.CreatedAt = time.Now()

	_, err := executor.Exec(query,
		challan.ID, challan.ChallanNumber, challan.ChallanDate, challan.Mode,
		challan.CompanyName, challan.SiteName, challan.VehicleNumber,
		challan.LaborerName, challan.MovementID, challan.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
		}
		return fmt.Errorf("%w: creating challan: %v", ErrDatabaseError, err)
	}

	lineQuery := `INSERT INTO challan_items (challan_id, item_id, item_name, unit, quantity)
	              VALUES ($1, $2, $3, $4, $5) RETURNING id`
	for i := range challan.Items {
		line := &challan.Items[i]
		line.ChallanID = challan.ID
		if err := executor.QueryRow(lineQuery, line.ChallanID, line.ItemID, line.ItemName, line.Unit, line.Quantity).Scan(&line.ID); err != nil {
			return fmt.Errorf("%w: creating challan line: %v", ErrDatabaseError, err)
		}
	}
	return nil
}

func (r *challanRepository) GetChallanByID(challanID string) (*models.Challan, error) {
	challan := &models.Challan{}
	query := `SELECT ` + challanColumns + ` FROM challans WHERE id = $1`
	err := r.db.QueryRow(query, challanID).Scan(
		&challan.ID, &challan.ChallanNumber, &challan.ChallanDate, &challan.Mode,
		&challan.CompanyName, &challan.SiteName, &challan.VehicleNumber,
		&challan.LaborerName, &challan.MovementID, &challan.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting challan %s: %v", ErrDatabaseError, challanID, err)
	}

	items, err := r.getChallanItems(challanID)
	if err != nil {
		return nil, err
	}
	challan.Items = items
	return challan, nil
}

func (r *challanRepository) getChallanItems(challanID string) ([]models.ChallanItem, error) {
	items := []models.ChallanItem{}
	rows, err := r.db.Query(`SELECT id, challan_id, item_id, item_name, unit, quantity
	                         FROM challan_items WHERE challan_id = $1 ORDER BY id ASC`, challanID)
	if err != nil {
		return nil, fmt.Errorf("%w: getting challan items: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.ChallanItem
		if err := rows.Scan(&item.ID, &item.ChallanID, &item.ItemID, &item.ItemName, &item.Unit, &item.Quantity); err != nil {
			return nil, fmt.Errorf("%w: scanning challan item: %v", ErrDatabaseError, err)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating challan items: %v", ErrDatabaseError, err)
	}
	return items, nil
}

func (r *challanRepository) GetChallans(page, pageSize int) ([]models.Challan, int, error) {
	challans := []models.Challan{}
	totalCount := 0

	query := `SELECT ` + challanColumns + `, COUNT(*) OVER() AS total_count
	          FROM challans ORDER BY challan_date DESC, created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(query, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: getting challans: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var challan models.Challan
		if err := rows.Scan(
			&challan.ID, &challan.ChallanNumber, &challan.ChallanDate, &challan.Mode,
			&challan.CompanyName, &challan.SiteName, &challan.VehicleNumber,
			&challan.LaborerName, &challan.MovementID, &challan.CreatedAt, &totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning challan: %v", ErrDatabaseError, err)
		}
		challans = append(challans, challan)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating challans: %v", ErrDatabaseError, err)
	}
	return challans, totalCount, nil
}

// GetChallanNumbersByPrefix lists issued challan numbers under a prefix,
// feeding the next-number computation.
func (r *challanRepository) GetChallanNumbersByPrefix(prefix string) ([]string, error) {
	numbers := []string{}
	rows, err := r.db.Query(`SELECT challan_number FROM challans WHERE challan_number LIKE $1 || '%'`, prefix)
	if err != nil {
		return nil, fmt.Errorf("%w: getting challan numbers: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var number string
		if err := rows.Scan(&number); err != nil {
			return nil, fmt.Errorf("%w: scanning challan number: %v", ErrDatabaseError, err)
		}
		numbers = append(numbers, number)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating challan numbers: %v", ErrDatabaseError, err)
	}
	return numbers, nil
}
