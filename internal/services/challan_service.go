package services

import (
	"errors"
	"fmt"
	"io"
	"time"

	"stocktrack_backend/internal/export"
	"stocktrack_backend/internal/ledger"
	"stocktrack_backend/internal/models"
	"stocktrack_backend/internal/repositories"

	"github.com/google/uuid"
)

// --- Custom Service Errors for Challans ---
var (
	ErrChallanNotFound     = errors.New("challan not found")
	ErrChallanNumberExists = errors.New("challan number already exists")
)

// DefaultChallanPrefix is used when the caller does not supply one.
const DefaultChallanPrefix = "DC"

// --- Challan DTOs ---

// ChallanLineRequest is one dispatched line item.
type ChallanLineRequest struct {
	ItemID   string `json:"item_id" binding:"required"`
	Quantity int64  `json:"quantity" binding:"required,gt=0"`
}

// CreateChallanRequest issues a delivery challan. The challan number is
// assigned server-side: the next sequential number under the prefix.
type CreateChallanRequest struct {
	Prefix        string               `json:"prefix"`
	ChallanDate   *time.Time           `json:"challan_date"`
	Mode          string               `json:"mode" binding:"required,oneof=SITE FACTORY"`
	CompanyName   *string              `json:"company_name"`
	SiteName      *string              `json:"site_name"`
	VehicleNumber *string              `json:"vehicle_number"`
	LaborerName   *string              `json:"laborer_name"`
	MovementID    *string              `json:"movement_id"`
	Items         []ChallanLineRequest `json:"items" binding:"required,min=1,dive"`
}

// --- ChallanService Interface ---
type ChallanService interface {
	CreateChallan(req CreateChallanRequest) (*models.Challan, error)
	GetChallanByID(challanID string) (*models.Challan, error)
	GetChallans(page, pageSize int) ([]models.Challan, int, error)
	RenderChallanDocument(challanID string, w io.Writer) error
}

type challanService struct {
	challanRepo repositories.ChallanRepository
	itemRepo    repositories.ItemRepository
	txRunner    repositories.TxRunner
	companyName string
}

// NewChallanService creates a new instance of ChallanService. The
// company name is printed on rendered challan documents when a challan
// does not carry its own.
func NewChallanService(challanRepo repositories.ChallanRepository, itemRepo repositories.ItemRepository, txRunner repositories.TxRunner, companyName string) ChallanService {
	return &challanService{
		challanRepo: challanRepo,
		itemRepo:    itemRepo,
		txRunner:    txRunner,
		companyName: companyName,
	}
}

func (s *challanService) CreateChallan(req CreateChallanRequest) (*models.Challan, error) {
	prefix := req.Prefix
	if prefix == "" {
		prefix = DefaultChallanPrefix
	}

	numbers, err := s.challanRepo.GetChallanNumbersByPrefix(prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list challan numbers: %w", err)
	}

	challanDate := time.Now()
	if req.ChallanDate != nil {
		challanDate = *req.ChallanDate
	}

	challan := &models.Challan{
		ID:            uuid.NewString(),
		ChallanNumber: ledger.NextChallanNumber(prefix, numbers),
		ChallanDate:   challanDate,
		Mode:          req.Mode,
		CompanyName:   req.CompanyName,
		SiteName:      req.SiteName,
		VehicleNumber: req.VehicleNumber,
		LaborerName:   req.LaborerName,
		MovementID:    req.MovementID,
	}

	for _, line := range req.Items {
		item, err := s.itemRepo.GetItemByID(line.ItemID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, fmt.Errorf("%w: line item %s", ErrItemNotFound, line.ItemID)
			}
			return nil, fmt.Errorf("failed to load line item: %w", err)
		}
		challan.Items = append(challan.Items, models.ChallanItem{
			ItemID:   item.ID,
			ItemName: item.Name,
			Unit:     item.Unit,
			Quantity: line.Quantity,
		})
	}

	err = s.txRunner.RunInTx(func(executor repositories.SQLExecutor) error {
		return s.challanRepo.CreateChallan(executor, challan)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %s", ErrChallanNumberExists, challan.ChallanNumber)
		}
		return nil, fmt.Errorf("failed to create challan: %w", err)
	}
	return challan, nil
}

func (s *challanService) GetChallanByID(challanID string) (*models.Challan, error) {
	challan, err := s.challanRepo.GetChallanByID(challanID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrChallanNotFound
		}
		return nil, fmt.Errorf("failed to get challan: %w", err)
	}
	return challan, nil
}

func (s *challanService) GetChallans(page, pageSize int) ([]models.Challan, int, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	return s.challanRepo.GetChallans(page, pageSize)
}

// RenderChallanDocument writes the printable two-copy document.
func (s *challanService) RenderChallanDocument(challanID string, w io.Writer) error {
	challan, err := s.GetChallanByID(challanID)
	if err != nil {
		return err
	}

	doc := export.ChallanDocument{
		Challan:     toLedgerChallan(challan),
		CompanyName: s.companyName,
	}
	if challan.CompanyName != nil && *challan.CompanyName != "" {
		doc.CompanyName = *challan.CompanyName
	}
	if err := export.RenderChallanHTML(w, doc); err != nil {
		return fmt.Errorf("failed to render challan document: %w", err)
	}
	return nil
}

func toLedgerChallan(c *models.Challan) ledger.Challan {
	out := ledger.Challan{
		ID:     c.ID,
		Number: c.ChallanNumber,
		Date:   c.ChallanDate,
		Mode:   ledger.ChallanMode(c.Mode),
	}
	if c.CompanyName != nil {
		out.CompanyName = *c.CompanyName
	}
	if c.SiteName != nil {
		out.SiteName = *c.SiteName
	}
	if c.VehicleNumber != nil {
		out.VehicleNumber = *c.VehicleNumber
	}
	if c.LaborerName != nil {
		out.LaborerName = *c.LaborerName
	}
	for _, item := range c.Items {
		out.Lines = append(out.Lines, ledger.ChallanLine{
			ItemID:   item.ItemID,
			ItemName: item.ItemName,
			Unit:     item.Unit,
			Quantity: item.Quantity,
		})
	}
	return out
}
