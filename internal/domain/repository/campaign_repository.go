package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"opti_campaign/internal/common"
	"opti_campaign/internal/domain/model"
)

type CampaignRepository interface {
	Create(ctx context.Context, campaign *model.Campaign) error
	FindByID(ctx context.Context, id int64) (*model.Campaign, error)
	List(ctx context.Context, skip, limit int) ([]model.Campaign, error)
	Update(ctx context.Context, id int64, patch model.CampaignPatch) (*model.Campaign, error)
	Delete(ctx context.Context, id int64) (*model.Campaign, error)
}

type pgCampaignRepository struct {
	db *sql.DB
}

func NewPgCampaignRepository(db *sql.DB) CampaignRepository {
	return &pgCampaignRepository{db: db}
}

const campaignColumns = `id, name, description, start_date, end_date, budget, status`

func scanCampaign(row *sql.Row) (*model.Campaign, error) {
	c := &model.Campaign{}
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.StartDate, &c.EndDate, &c.Budget, &c.Status)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *pgCampaignRepository) Create(ctx context.Context, c *model.Campaign) error {
	query := `INSERT INTO campaigns (name, description, start_date, end_date, budget, status)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		c.Name, c.Description, c.StartDate, c.EndDate, c.Budget, c.Status,
	).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("pgCampaignRepository.Create: %w", err)
	}
	return nil
}

func (r *pgCampaignRepository) FindByID(ctx context.Context, id int64) (*model.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE id = $1`
	campaign, err := scanCampaign(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgCampaignRepository.FindByID: %w", err)
	}
	return campaign, nil
}

func (r *pgCampaignRepository) List(ctx context.Context, skip, limit int) ([]model.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns ORDER BY id OFFSET $1 LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("pgCampaignRepository.List: %w", err)
	}
	defer rows.Close()

	campaigns := []model.Campaign{}
	for rows.Next() {
		var c model.Campaign
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.StartDate, &c.EndDate, &c.Budget, &c.Status); err != nil {
			return nil, fmt.Errorf("pgCampaignRepository.List: %w", err)
		}
		campaigns = append(campaigns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgCampaignRepository.List: %w", err)
	}
	return campaigns, nil
}

// Update applies only the fields set in patch, as a single UPDATE statement.
// An empty patch degenerates to a plain read.
func (r *pgCampaignRepository) Update(ctx context.Context, id int64, patch model.CampaignPatch) (*model.Campaign, error) {
	if patch.IsEmpty() {
		return r.FindByID(ctx, id)
	}

	sets := []string{}
	args := []interface{}{}
	set := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Name != nil {
		set("name", *patch.Name)
	}
	if patch.DescriptionSet {
		set("description", patch.Description)
	}
	if patch.StartDate != nil {
		set("start_date", *patch.StartDate)
	}
	if patch.EndDate != nil {
		set("end_date", *patch.EndDate)
	}
	if patch.Budget != nil {
		set("budget", *patch.Budget)
	}
	if patch.Status != nil {
		set("status", *patch.Status)
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE campaigns SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), campaignColumns)

	campaign, err := scanCampaign(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgCampaignRepository.Update: %w", err)
	}
	return campaign, nil
}

func (r *pgCampaignRepository) Delete(ctx context.Context, id int64) (*model.Campaign, error) {
	query := `DELETE FROM campaigns WHERE id = $1 RETURNING ` + campaignColumns
	campaign, err := scanCampaign(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgCampaignRepository.Delete: %w", err)
	}
	return campaign, nil
}
