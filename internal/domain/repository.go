package domain

import "context"

// UserRepository defines access methods for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	SetRole(ctx context.Context, username string, role UserRole) (*User, error)
}

// CampaignRepository handles persistence for campaigns.
type CampaignRepository interface {
	Create(ctx context.Context, campaign *Campaign) (*Campaign, error)
	GetByID(ctx context.Context, id string) (*Campaign, error)
	List(ctx context.Context) ([]Campaign, error)
	// AddToRaised atomically credits amount to the campaign total and returns
	// the updated row, or ErrNotFound when the id does not exist.
	AddToRaised(ctx context.Context, id string, amount int64) (*Campaign, error)
	Delete(ctx context.Context, id string) error
}

// ApplicationRepository handles persistence for campaign applications.
type ApplicationRepository interface {
	Create(ctx context.Context, app *CampaignApplication) (*CampaignApplication, error)
	// ListPending returns pending applications with the owner username populated.
	ListPending(ctx context.Context) ([]CampaignApplication, error)
	ListByUser(ctx context.Context, userID string) ([]CampaignApplication, error)
	// Transition moves an application out of pending in a single conditional
	// write. ErrNotFound covers both a missing id and an already-processed
	// application, so a second approve or reject always fails.
	Transition(ctx context.Context, id string, to ApplicationStatus) (*CampaignApplication, error)
	UpdateNotes(ctx context.Context, id, notes string) (*CampaignApplication, error)
}

// DonationRepository handles donation persistence.
type DonationRepository interface {
	Create(ctx context.Context, donation *Donation) (*Donation, error)
	// ListByUser returns the user's donations, newest first, with the
	// referenced campaign populated.
	ListByUser(ctx context.Context, userID string) ([]Donation, error)
}
