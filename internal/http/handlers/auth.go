package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"server/internal/auth"
	"server/internal/domain"
)

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Register creates an account. It does not log the new user in.
func (a *App) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "invalid payload")
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		a.error(w, http.StatusBadRequest, "username and password required")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		a.Logger.Error().Err(err).Msg("hash password failed")
		a.error(w, http.StatusInternalServerError, "server error")
		return
	}

	_, err = a.Users.Create(r.Context(), &domain.User{
		Username:     req.Username,
		PasswordHash: hash,
		Role:         domain.ParseRole(req.Role),
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			a.error(w, http.StatusBadRequest, "username already exists")
			return
		}
		a.Logger.Error().Err(err).Msg("create user failed")
		a.error(w, http.StatusInternalServerError, "server error")
		return
	}
	a.message(w, r, http.StatusCreated, "user_registered")
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string            `json:"token"`
	User  domain.PublicUser `json:"user"`
}

// Login verifies credentials and issues a bearer token. Unknown usernames and
// wrong passwords produce the identical error, so accounts cannot be
// enumerated.
func (a *App) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "invalid payload")
		return
	}

	user, err := a.Users.GetByUsername(r.Context(), strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusBadRequest, domain.ErrInvalidCredentials.Error())
			return
		}
		a.Logger.Error().Err(err).Msg("lookup user failed")
		a.error(w, http.StatusInternalServerError, "server error")
		return
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		a.error(w, http.StatusBadRequest, domain.ErrInvalidCredentials.Error())
		return
	}

	token, err := a.Tokens.Issue(user.ID, user.Role)
	if err != nil {
		a.Logger.Error().Err(err).Msg("sign token failed")
		a.error(w, http.StatusInternalServerError, "server error")
		return
	}
	a.json(w, http.StatusOK, loginResponse{Token: token, User: user.Public()})
}

// MyDonations lists the caller's donations with the referenced campaign
// populated.
func (a *App) MyDonations(w http.ResponseWriter, r *http.Request) {
	identity := a.identity(r)
	if identity == nil {
		a.error(w, http.StatusUnauthorized, domain.ErrUnauthorized.Error())
		return
	}
	donations, err := a.Donations.ListByUser(r.Context(), identity.UserID)
	if err != nil {
		a.Logger.Error().Err(err).Msg("list donations failed")
		a.error(w, http.StatusInternalServerError, "server error")
		return
	}
	items := make([]donationJSON, 0, len(donations))
	for i := range donations {
		items = append(items, toDonationJSON(&donations[i]))
	}
	a.json(w, http.StatusOK, items)
}
