package domain

import "time"

// Donation records a single contribution to a campaign. Rows are append-only
// and written in the same request that credits the campaign total.
type Donation struct {
	ID         string
	UserID     string
	CampaignID string
	Amount     int64
	CreatedAt  time.Time

	// Campaign is populated on listings that join the referenced campaign.
	Campaign *Campaign
}
