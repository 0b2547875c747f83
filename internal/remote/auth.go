package remote

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sunshinej01/second-hand/internal/models"
)

const usersPath = "/rest/v1/users"

// SignUp registers a new account. meta is stored as user metadata on the
// auth record (nickname, full name).
func (c *Client) SignUp(ctx context.Context, email, password string, meta map[string]string) (*models.AuthSession, error) {
	body := map[string]interface{}{
		"email":    email,
		"password": password,
	}
	if len(meta) > 0 {
		body["data"] = meta
	}

	var session models.AuthSession
	if err := c.do(ctx, http.MethodPost, "/auth/v1/signup", nil, "", "", body, &session); err != nil {
		return nil, fmt.Errorf("sign up: %w", err)
	}
	return &session, nil
}

// SignIn exchanges credentials for a token pair.
func (c *Client) SignIn(ctx context.Context, email, password string) (*models.AuthSession, error) {
	q := url.Values{}
	q.Set("grant_type", "password")

	body := map[string]string{
		"email":    email,
		"password": password,
	}

	var session models.AuthSession
	if err := c.do(ctx, http.MethodPost, "/auth/v1/token", q, "", "", body, &session); err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}
	return &session, nil
}

// SignOut revokes the access token.
func (c *Client) SignOut(ctx context.Context, token string) error {
	if err := c.do(ctx, http.MethodPost, "/auth/v1/logout", nil, token, "", nil, nil); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	return nil
}

// CurrentUser resolves the access token to its identity record.
func (c *Client) CurrentUser(ctx context.Context, token string) (*models.AuthUser, error) {
	var user models.AuthUser
	if err := c.do(ctx, http.MethodGet, "/auth/v1/user", nil, token, "", nil, &user); err != nil {
		return nil, fmt.Errorf("current user: %w", err)
	}
	return &user, nil
}

// GetProfile fetches one users row. A missing profile is (nil, nil); new
// accounts may not have a row yet.
func (c *Client) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("id", "eq."+userID)
	q.Set("limit", "1")

	var rows []models.Profile
	if err := c.do(ctx, http.MethodGet, usersPath, q, "", "", nil, &rows); err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// UpdateProfile patches the caller's users row and returns the updated
// profile.
func (c *Client) UpdateProfile(ctx context.Context, token, userID string, patch map[string]interface{}) (*models.Profile, error) {
	q := url.Values{}
	q.Set("id", "eq."+userID)

	var rows []models.Profile
	err := c.do(ctx, http.MethodPatch, usersPath, q, token, "return=representation", patch, &rows)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}
