package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"server/internal/domain"
)

const applicationColumns = `a.id, a.user_id, a.title, a.description, a.goal, a.image,
a.payout_name, a.payout_account, a.payout_ifsc, a.payout_upi,
a.payment_status, a.payment_id, a.amount_paid, a.status, a.admin_notes, a.created_at`

// ApplicationRepositoryPG implements domain.ApplicationRepository using PostgreSQL.
type ApplicationRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewApplicationRepository creates a new application repo.
func NewApplicationRepository(pool *pgxpool.Pool) *ApplicationRepositoryPG {
	return &ApplicationRepositoryPG{pool: pool}
}

// Create inserts a new pending application.
func (r *ApplicationRepositoryPG) Create(ctx context.Context, app *domain.CampaignApplication) (*domain.CampaignApplication, error) {
	row := r.pool.QueryRow(ctx, `
INSERT INTO campaign_applications AS a (user_id, title, description, goal, image,
  payout_name, payout_account, payout_ifsc, payout_upi,
  payment_status, payment_id, amount_paid, status)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 'pending', $10, 0, 'pending')
RETURNING `+applicationColumns+`;
`,
		app.UserID, app.Title, app.Description, app.Goal, app.Image,
		app.Payout.Name, app.Payout.Account, app.Payout.IFSC, app.Payout.UPI,
		app.PaymentID,
	)
	return scanApplication(row)
}

// ListPending returns pending applications with the owner username populated,
// newest first.
func (r *ApplicationRepositoryPG) ListPending(ctx context.Context) ([]domain.CampaignApplication, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+applicationColumns+`, u.username
FROM campaign_applications a
JOIN users u ON u.id = a.user_id
WHERE a.status = 'pending'
ORDER BY a.created_at DESC;
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.CampaignApplication
	for rows.Next() {
		var app domain.CampaignApplication
		err := rows.Scan(
			&app.ID, &app.UserID, &app.Title, &app.Description, &app.Goal, &app.Image,
			&app.Payout.Name, &app.Payout.Account, &app.Payout.IFSC, &app.Payout.UPI,
			&app.PaymentStatus, &app.PaymentID, &app.AmountPaid, &app.Status, &app.AdminNotes, &app.CreatedAt,
			&app.Username,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, app)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// ListByUser returns the user's applications in every status, newest first.
func (r *ApplicationRepositoryPG) ListByUser(ctx context.Context, userID string) ([]domain.CampaignApplication, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+applicationColumns+`
FROM campaign_applications a
WHERE a.user_id = $1
ORDER BY a.created_at DESC;
`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.CampaignApplication
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *app)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Transition moves an application out of pending with a conditional write.
// The status check is part of the statement, so a second approve or reject
// matches no row and reports ErrNotFound.
func (r *ApplicationRepositoryPG) Transition(ctx context.Context, id string, to domain.ApplicationStatus) (*domain.CampaignApplication, error) {
	row := r.pool.QueryRow(ctx, `
UPDATE campaign_applications AS a
SET status = $2
WHERE a.id = $1 AND a.status = 'pending'
RETURNING `+applicationColumns+`;
`, id, to)
	return scanApplication(row)
}

// UpdateNotes replaces the admin annotation on an application.
func (r *ApplicationRepositoryPG) UpdateNotes(ctx context.Context, id, notes string) (*domain.CampaignApplication, error) {
	row := r.pool.QueryRow(ctx, `
UPDATE campaign_applications AS a
SET admin_notes = $2
WHERE a.id = $1
RETURNING `+applicationColumns+`;
`, id, notes)
	return scanApplication(row)
}

func scanApplication(row pgx.Row) (*domain.CampaignApplication, error) {
	var app domain.CampaignApplication
	err := row.Scan(
		&app.ID, &app.UserID, &app.Title, &app.Description, &app.Goal, &app.Image,
		&app.Payout.Name, &app.Payout.Account, &app.Payout.IFSC, &app.Payout.UPI,
		&app.PaymentStatus, &app.PaymentID, &app.AmountPaid, &app.Status, &app.AdminNotes, &app.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &app, nil
}
