package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"server/internal/domain"
)

// DonationRepositoryPG implements domain.DonationRepository using PostgreSQL.
type DonationRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewDonationRepository creates a new donation repo.
func NewDonationRepository(pool *pgxpool.Pool) *DonationRepositoryPG {
	return &DonationRepositoryPG{pool: pool}
}

// Create appends a donation record.
func (r *DonationRepositoryPG) Create(ctx context.Context, d *domain.Donation) (*domain.Donation, error) {
	row := r.pool.QueryRow(ctx, `
INSERT INTO donations (user_id, campaign_id, amount)
VALUES ($1, $2, $3)
RETURNING id, user_id, campaign_id, amount, created_at;
`, d.UserID, d.CampaignID, d.Amount)

	var created domain.Donation
	err := row.Scan(&created.ID, &created.UserID, &created.CampaignID, &created.Amount, &created.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &created, nil
}

// ListByUser returns the user's donations with the referenced campaign
// populated, newest first.
func (r *DonationRepositoryPG) ListByUser(ctx context.Context, userID string) ([]domain.Donation, error) {
	rows, err := r.pool.Query(ctx, `
SELECT d.id, d.user_id, d.campaign_id, d.amount, d.created_at,
       c.id, c.title, c.description, c.goal, c.image,
       c.payout_name, c.payout_account, c.payout_ifsc, c.payout_upi,
       c.payment_status, c.payment_id, c.amount_paid, c.amount_raised, c.created_at
FROM donations d
JOIN campaigns c ON c.id = d.campaign_id
WHERE d.user_id = $1
ORDER BY d.created_at DESC;
`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Donation
	for rows.Next() {
		var d domain.Donation
		var c domain.Campaign
		err := rows.Scan(
			&d.ID, &d.UserID, &d.CampaignID, &d.Amount, &d.CreatedAt,
			&c.ID, &c.Title, &c.Description, &c.Goal, &c.Image,
			&c.Payout.Name, &c.Payout.Account, &c.Payout.IFSC, &c.Payout.UPI,
			&c.PaymentStatus, &c.PaymentID, &c.AmountPaid, &c.AmountRaised, &c.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		d.Campaign = &c
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
