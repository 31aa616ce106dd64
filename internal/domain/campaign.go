package domain

import (
	"math"
	"time"
)

// PaymentStatus tracks the payout state of a campaign or application.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// Payout holds the beneficiary account details collected with an application
// and carried over to the campaign on approval.
type Payout struct {
	Name    string
	Account string
	IFSC    string
	UPI     string
}

// Campaign is a fundraising effort with a monetary goal and a running total.
// Amounts are whole rupees. AmountRaised only moves through the atomic donate
// path and never decreases.
type Campaign struct {
	ID            string
	Title         string
	Description   string
	Goal          int64
	Image         string
	Payout        Payout
	PaymentStatus PaymentStatus
	PaymentID     string
	AmountPaid    int64
	AmountRaised  int64
	CreatedAt     time.Time
}

// Progress returns the funding percentage capped at 100. A non-positive goal
// reports 0 rather than dividing by zero.
func (c Campaign) Progress() int {
	if c.Goal <= 0 {
		return 0
	}
	pct := int(math.Round(float64(c.AmountRaised) / float64(c.Goal) * 100))
	if pct > 100 {
		return 100
	}
	return pct
}
