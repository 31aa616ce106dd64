package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"server/internal/domain"
)

const campaignColumns = `id, title, description, goal, image,
payout_name, payout_account, payout_ifsc, payout_upi,
payment_status, payment_id, amount_paid, amount_raised, created_at`

// CampaignRepositoryPG implements domain.CampaignRepository using PostgreSQL.
type CampaignRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewCampaignRepository creates a new campaign repo.
func NewCampaignRepository(pool *pgxpool.Pool) *CampaignRepositoryPG {
	return &CampaignRepositoryPG{pool: pool}
}

// Create inserts a new campaign record.
func (r *CampaignRepositoryPG) Create(ctx context.Context, c *domain.Campaign) (*domain.Campaign, error) {
	row := r.pool.QueryRow(ctx, `
INSERT INTO campaigns (title, description, goal, image,
  payout_name, payout_account, payout_ifsc, payout_upi,
  payment_status, payment_id, amount_paid)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING `+campaignColumns+`;
`,
		c.Title, c.Description, c.Goal, c.Image,
		c.Payout.Name, c.Payout.Account, c.Payout.IFSC, c.Payout.UPI,
		paymentStatusOrDefault(c.PaymentStatus), c.PaymentID, c.AmountPaid,
	)
	return scanCampaign(row)
}

// GetByID fetches a single campaign.
func (r *CampaignRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Campaign, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE id = $1;`, id)
	return scanCampaign(row)
}

// List returns all campaigns, newest first.
func (r *CampaignRepositoryPG) List(ctx context.Context) ([]domain.Campaign, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+campaignColumns+` FROM campaigns ORDER BY created_at DESC;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Campaign
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// AddToRaised credits the campaign total in a single atomic statement, so
// concurrent donations cannot lose updates.
func (r *CampaignRepositoryPG) AddToRaised(ctx context.Context, id string, amount int64) (*domain.Campaign, error) {
	row := r.pool.QueryRow(ctx, `
UPDATE campaigns
SET amount_raised = amount_raised + $2
WHERE id = $1
RETURNING `+campaignColumns+`;
`, id, amount)
	return scanCampaign(row)
}

// Delete removes a campaign, returning ErrNotFound when no row matched.
func (r *CampaignRepositoryPG) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM campaigns WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func paymentStatusOrDefault(s domain.PaymentStatus) domain.PaymentStatus {
	if s == "" {
		return domain.PaymentStatusPending
	}
	return s
}

func scanCampaign(row pgx.Row) (*domain.Campaign, error) {
	var c domain.Campaign
	err := row.Scan(
		&c.ID, &c.Title, &c.Description, &c.Goal, &c.Image,
		&c.Payout.Name, &c.Payout.Account, &c.Payout.IFSC, &c.Payout.UPI,
		&c.PaymentStatus, &c.PaymentID, &c.AmountPaid, &c.AmountRaised, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}
