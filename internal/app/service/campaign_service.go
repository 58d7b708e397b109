package service

import (
	"context"
	"encoding/json"
	"fmt"
	"opti_campaign/internal/common"
	"opti_campaign/internal/domain/model"
	"opti_campaign/internal/domain/repository"

	"github.com/go-playground/validator/v10"
)

type CampaignService struct {
	campaignRepo repository.CampaignRepository
	validate     *validator.Validate
}

func NewCampaignService(campaignRepo repository.CampaignRepository) *CampaignService {
	return &CampaignService{
		campaignRepo: campaignRepo,
		validate:     validator.New(),
	}
}

type CreateCampaignRequest struct {
	Name        string      `json:"name" validate:"required"`
	Description *string     `json:"description"`
	StartDate   *model.Date `json:"start_date" validate:"required"`
	EndDate     *model.Date `json:"end_date" validate:"required"`
	Budget      *float64    `json:"budget" validate:"required,gte=0"`
	Status      *bool       `json:"status"`
}

// OptionalString distinguishes an absent JSON field from an explicit null,
// which a plain *string cannot. Absent leaves the column untouched; explicit
// null clears it.
type OptionalString struct {
	Set   bool
	Value *string
}

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

type UpdateCampaignRequest struct {
	Name        *string        `json:"name" validate:"omitempty,min=1"`
	Description OptionalString `json:"description"`
	StartDate   *model.Date    `json:"start_date"`
	EndDate     *model.Date    `json:"end_date"`
	Budget      *float64       `json:"budget" validate:"omitempty,gte=0"`
	Status      *bool          `json:"status"`
}

func (s *CampaignService) Create(ctx context.Context, req CreateCampaignRequest) (*model.Campaign, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid campaign payload: %v: %w", err, common.ErrValidation)
	}
	if req.EndDate.Before(req.StartDate.Time) {
		return nil, fmt.Errorf("end_date must not be before start_date: %w", common.ErrValidation)
	}

	campaign := &model.Campaign{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   *req.StartDate,
		EndDate:     *req.EndDate,
		Budget:      *req.Budget,
		Status:      true, // Active by default
	}
	if req.Status != nil {
		campaign.Status = *req.Status
	}

	if err := s.campaignRepo.Create(ctx, campaign); err != nil {
		return nil, fmt.Errorf("failed to create campaign: %w", err)
	}
	return campaign, nil
}

func (s *CampaignService) List(ctx context.Context, skip, limit int) ([]model.Campaign, error) {
	if skip < 0 || limit < 0 {
		return nil, fmt.Errorf("skip and limit must be non-negative: %w", common.ErrValidation)
	}
	return s.campaignRepo.List(ctx, skip, limit)
}

func (s *CampaignService) Get(ctx context.Context, id int64) (*model.Campaign, error) {
	return s.campaignRepo.FindByID(ctx, id)
}

// Update overwrites only the fields present in the request payload.
func (s *CampaignService) Update(ctx context.Context, id int64, req UpdateCampaignRequest) (*model.Campaign, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid campaign payload: %v: %w", err, common.ErrValidation)
	}
	// Date ordering is only checked when the payload carries both dates; a
	// lone date is not cross-checked against the stored row so the update
	// stays a single statement.
	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(req.StartDate.Time) {
		return nil, fmt.Errorf("end_date must not be before start_date: %w", common.ErrValidation)
	}

	patch := model.CampaignPatch{
		Name:           req.Name,
		Description:    req.Description.Value,
		DescriptionSet: req.Description.Set,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		Budget:         req.Budget,
		Status:         req.Status,
	}
	return s.campaignRepo.Update(ctx, id, patch)
}

func (s *CampaignService) Delete(ctx context.Context, id int64) (*model.Campaign, error) {
	return s.campaignRepo.Delete(ctx, id)
}

// ToggleStatus flips the active flag. Read-then-write: two concurrent
// toggles on the same id race last-writer-wins.
func (s *CampaignService) ToggleStatus(ctx context.Context, id int64) (*model.Campaign, error) {
	campaign, err := s.campaignRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	flipped := !campaign.Status
	return s.campaignRepo.Update(ctx, id, model.CampaignPatch{Status: &flipped})
}
