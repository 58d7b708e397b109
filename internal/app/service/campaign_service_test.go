package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"opti_campaign/internal/common"
	"opti_campaign/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memCampaignRepo is an in-memory CampaignRepository with the same
// partial-update contract as the postgres implementation.
type memCampaignRepo struct {
	mu     sync.Mutex
	nextID int64
	items  map[int64]model.Campaign
	order  []int64
}

func newMemCampaignRepo() *memCampaignRepo {
	return &memCampaignRepo{items: map[int64]model.Campaign{}}
}

func (m *memCampaignRepo) Create(_ context.Context, c *model.Campaign) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	c.ID = m.nextID
	m.items[c.ID] = *c
	m.order = append(m.order, c.ID)
	return nil
}

func (m *memCampaignRepo) FindByID(_ context.Context, id int64) (*model.Campaign, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.items[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &c, nil
}

func (m *memCampaignRepo) List(_ context.Context, skip, limit int) ([]model.Campaign, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	campaigns := []model.Campaign{}
	for i := skip; i < len(m.order) && len(campaigns) < limit; i++ {
		campaigns = append(campaigns, m.items[m.order[i]])
	}
	return campaigns, nil
}

func (m *memCampaignRepo) Update(_ context.Context, id int64, patch model.CampaignPatch) (*model.Campaign, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.items[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.DescriptionSet {
		c.Description = patch.Description
	}
	if patch.StartDate != nil {
		c.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		c.EndDate = *patch.EndDate
	}
	if patch.Budget != nil {
		c.Budget = *patch.Budget
	}
	if patch.Status != nil {
		c.Status = *patch.Status
	}
	m.items[id] = c
	return &c, nil
}

func (m *memCampaignRepo) Delete(_ context.Context, id int64) (*model.Campaign, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.items[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	delete(m.items, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return &c, nil
}

func datePtr(year int, month time.Month, day int) *model.Date {
	d := model.NewDate(year, month, day)
	return &d
}

func floatPtr(f float64) *float64 { return &f }

func validCreateRequest() CreateCampaignRequest {
	return CreateCampaignRequest{
		Name:      "Summer Sale",
		StartDate: datePtr(2025, time.June, 1),
		EndDate:   datePtr(2025, time.August, 31),
		Budget:    floatPtr(5000.0),
	}
}

func TestCreateCampaignDefaultsToActive(t *testing.T) {
	svc := NewCampaignService(newMemCampaignRepo())

	campaign, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), campaign.ID)
	assert.Equal(t, "Summer Sale", campaign.Name)
	assert.Nil(t, campaign.Description)
	assert.True(t, campaign.Status)
	assert.Equal(t, 5000.0, campaign.Budget)
}

func TestCreateCampaignValidation(t *testing.T) {
	svc := NewCampaignService(newMemCampaignRepo())
	ctx := context.Background()

	missingName := validCreateRequest()
	missingName.Name = ""
	_, err := svc.Create(ctx, missingName)
	assert.ErrorIs(t, err, common.ErrValidation)

	missingBudget := validCreateRequest()
	missingBudget.Budget = nil
	_, err = svc.Create(ctx, missingBudget)
	assert.ErrorIs(t, err, common.ErrValidation)

	negativeBudget := validCreateRequest()
	negativeBudget.Budget = floatPtr(-1)
	_, err = svc.Create(ctx, negativeBudget)
	assert.ErrorIs(t, err, common.ErrValidation)

	missingDates := validCreateRequest()
	missingDates.StartDate = nil
	_, err = svc.Create(ctx, missingDates)
	assert.ErrorIs(t, err, common.ErrValidation)

	inverted := validCreateRequest()
	inverted.StartDate = datePtr(2025, time.August, 31)
	inverted.EndDate = datePtr(2025, time.June, 1)
	_, err = svc.Create(ctx, inverted)
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestCreateCampaignZeroBudgetAllowed(t *testing.T) {
	svc := NewCampaignService(newMemCampaignRepo())

	req := validCreateRequest()
	req.Budget = floatPtr(0)
	campaign, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 0.0, campaign.Budget)
}

func TestUpdateChangesOnlySuppliedFields(t *testing.T) {
	svc := NewCampaignService(newMemCampaignRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, validCreateRequest())
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, UpdateCampaignRequest{Budget: floatPtr(250.75)})
	require.NoError(t, err)

	assert.Equal(t, 250.75, updated.Budget)
	assert.Equal(t, created.Name, updated.Name)
	assert.Equal(t, created.StartDate, updated.StartDate)
	assert.Equal(t, created.EndDate, updated.EndDate)
	assert.Equal(t, created.Status, updated.Status)
}

func TestUpdateDescriptionNullVsAbsent(t *testing.T) {
	svc := NewCampaignService(newMemCampaignRepo())
	ctx := context.Background()

	req := validCreateRequest()
	desc := "launch promo"
	req.Description = &desc
	created, err := svc.Create(ctx, req)
	require.NoError(t, err)

	// An absent description leaves the stored value untouched.
	var absent UpdateCampaignRequest
	require.NoError(t, json.Unmarshal([]byte(`{"budget": 100}`), &absent))
	updated, err := svc.Update(ctx, created.ID, absent)
	require.NoError(t, err)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "launch promo", *updated.Description)

	// An explicit null clears it.
	var null UpdateCampaignRequest
	require.NoError(t, json.Unmarshal([]byte(`{"description": null}`), &null))
	updated, err = svc.Update(ctx, created.ID, null)
	require.NoError(t, err)
	assert.Nil(t, updated.Description)
}

func TestUpdateUnknownCampaign(t *testing.T) {
	svc := NewCampaignService(newMemCampaignRepo())

	_, err := svc.Update(context.Background(), 99, UpdateCampaignRequest{Budget: floatPtr(10)})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestUpdateValidation(t *testing.T) {
	svc := NewCampaignService(newMemCampaignRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, validCreateRequest())
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.ID, UpdateCampaignRequest{Budget: floatPtr(-5)})
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = svc.Update(ctx, created.ID, UpdateCampaignRequest{
		StartDate: datePtr(2025, time.August, 31),
		EndDate:   datePtr(2025, time.June, 1),
	})
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestToggleTwiceRestoresStatus(t *testing.T) {
	svc := NewCampaignService(newMemCampaignRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, validCreateRequest())
	require.NoError(t, err)
	require.True(t, created.Status)

	toggled, err := svc.ToggleStatus(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Status)

	restored, err := svc.ToggleStatus(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, restored.Status)
}

func TestToggleUnknownCampaign(t *testing.T) {
	svc := NewCampaignService(newMemCampaignRepo())

	_, err := svc.ToggleStatus(context.Background(), 42)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestGetUnknownCampaign(t *testing.T) {
	svc := NewCampaignService(newMemCampaignRepo())

	_, err := svc.Get(context.Background(), 42)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestDeleteReturnsSnapshot(t *testing.T) {
	svc := NewCampaignService(newMemCampaignRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, validCreateRequest())
	require.NoError(t, err)

	deleted, err := svc.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)
	assert.Equal(t, created.Name, deleted.Name)

	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestListPagination(t *testing.T) {
	svc := NewCampaignService(newMemCampaignRepo())
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := svc.Create(ctx, validCreateRequest())
		require.NoError(t, err)
	}

	page, err := svc.List(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, int64(3), page[0].ID)
	assert.Equal(t, int64(4), page[1].ID)

	empty, err := svc.List(ctx, 10, 100)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	_, err = svc.List(ctx, -1, 100)
	assert.ErrorIs(t, err, common.ErrValidation)
}
