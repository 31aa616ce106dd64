package domain

import "time"

// ApplicationStatus tracks the review state of a campaign application.
// Applications leave pending exactly once and never return.
type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusApproved ApplicationStatus = "approved"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// CampaignApplication is a user's request to have a campaign created, subject
// to admin review. Username is populated on admin listings only.
type CampaignApplication struct {
	ID            string
	UserID        string
	Username      string
	Title         string
	Description   string
	Goal          int64
	Image         string
	Payout        Payout
	PaymentStatus PaymentStatus
	PaymentID     string
	AmountPaid    int64
	Status        ApplicationStatus
	AdminNotes    string
	CreatedAt     time.Time
}

// Campaign materializes the campaign an approved application describes. Every
// field the applicant submitted carries over, including the payment fields.
func (a CampaignApplication) Campaign() *Campaign {
	return &Campaign{
		Title:         a.Title,
		Description:   a.Description,
		Goal:          a.Goal,
		Image:         a.Image,
		Payout:        a.Payout,
		PaymentStatus: a.PaymentStatus,
		PaymentID:     a.PaymentID,
		AmountPaid:    a.AmountPaid,
	}
}
