package services

import (
	"bytes"
	"strings"
	"testing"

	"stocktrack_backend/internal/models"
	"stocktrack_backend/internal/repositories"

	"github.com/stretchr/testify/require"
)

// fakeChallanRepo keeps challans in memory.
type fakeChallanRepo struct {
	challans []*models.Challan
}

func (r *fakeChallanRepo) CreateChallan(_ repositories.SQLExecutor, challan *models.Challan) error {
	for _, existing := range r.challans {
		if existing.ChallanNumber == challan.ChallanNumber {
			return repositories.ErrDuplicateKey
		}
	}
	r.challans = append(r.challans, challan)
	return nil
}

func (r *fakeChallanRepo) GetChallanByID(challanID string) (*models.Challan, error) {
	for _, challan := range r.challans {
		if challan.ID == challanID {
			return challan, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeChallanRepo) GetChallans(page, pageSize int) ([]models.Challan, int, error) {
	out := make([]models.Challan, 0, len(r.challans))
	for _, challan := range r.challans {
		out = append(out, *challan)
	}
	return out, len(out), nil
}

func (r *fakeChallanRepo) GetChallanNumbersByPrefix(prefix string) ([]string, error) {
	numbers := []string{}
	for _, challan := range r.challans {
		if strings.HasPrefix(challan.ChallanNumber, prefix) {
			numbers = append(numbers, challan.ChallanNumber)
		}
	}
	return numbers, nil
}

func challanTestFixture(t *testing.T) (ChallanService, *fakeItemRepo, *fakeChallanRepo) {
	t.Helper()
	itemRepo := newFakeItemRepo()
	challanRepo := &fakeChallanRepo{}
	svc := NewChallanService(challanRepo, itemRepo, fakeTxRunner{}, "Test Traders")
	return svc, itemRepo, challanRepo
}

func seedItem(t *testing.T, itemRepo *fakeItemRepo, id, name, unit string) {
	t.Helper()
	require.NoError(t, itemRepo.CreateItem(nil, &models.Item{ID: id, Name: name, Unit: unit}))
}

func TestCreateChallanAssignsSequentialNumbers(t *testing.T) {
	svc, itemRepo, _ := challanTestFixture(t)
	seedItem(t, itemRepo, "itm-1", "Cement Bag", "bag")

	req := CreateChallanRequest{
		Prefix: "NEWN-DC",
		Mode:   models.ChallanModeSite,
		Items:  []ChallanLineRequest{{ItemID: "itm-1", Quantity: 10}},
	}

	first, err := svc.CreateChallan(req)
	require.NoError(t, err)
	require.Equal(t, "NEWN-DC-001", first.ChallanNumber)

	second, err := svc.CreateChallan(req)
	require.NoError(t, err)
	require.Equal(t, "NEWN-DC-002", second.ChallanNumber)
}

func TestCreateChallanSnapshotsItemDetails(t *testing.T) {
	svc, itemRepo, challanRepo := challanTestFixture(t)
	seedItem(t, itemRepo, "itm-1", "Steel Rod", "kg")

	challan, err := svc.CreateChallan(CreateChallanRequest{
		Mode:  models.ChallanModeFactory,
		Items: []ChallanLineRequest{{ItemID: "itm-1", Quantity: 25}},
	})
	require.NoError(t, err)
	require.Len(t, challanRepo.challans, 1)
	require.Len(t, challan.Items, 1)
	require.Equal(t, "Steel Rod", challan.Items[0].ItemName)
	require.Equal(t, "kg", challan.Items[0].Unit)
	require.EqualValues(t, 25, challan.Items[0].Quantity)
}

func TestCreateChallanUnknownLineItemFails(t *testing.T) {
	svc, _, challanRepo := challanTestFixture(t)

	_, err := svc.CreateChallan(CreateChallanRequest{
		Mode:  models.ChallanModeSite,
		Items: []ChallanLineRequest{{ItemID: "missing", Quantity: 1}},
	})
	require.ErrorIs(t, err, ErrItemNotFound)
	require.Empty(t, challanRepo.challans)
}

func TestRenderChallanDocumentUsesFallbackCompanyName(t *testing.T) {
	svc, itemRepo, _ := challanTestFixture(t)
	seedItem(t, itemRepo, "itm-1", "Cement Bag", "bag")

	site := "Riverside Site"
	challan, err := svc.CreateChallan(CreateChallanRequest{
		Mode:     models.ChallanModeSite,
		SiteName: &site,
		Items:    []ChallanLineRequest{{ItemID: "itm-1", Quantity: 5}},
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.RenderChallanDocument(challan.ID, &buf))
	html := buf.String()
	require.Contains(t, html, "Test Traders")
	require.Contains(t, html, challan.ChallanNumber)
	require.Contains(t, html, "Riverside Site")
	require.Contains(t, html, "Transport Copy")
}

func TestRenderChallanDocumentMissingChallan(t *testing.T) {
	svc, _, _ := challanTestFixture(t)

	var buf bytes.Buffer
	err := svc.RenderChallanDocument("missing", &buf)
	require.ErrorIs(t, err, ErrChallanNotFound)
}
