package api

import (
	"context"
	"net/url"
)

// Login exchanges credentials for a bearer token. The backend expects an
// OAuth2-style form body, not JSON.
func (c *Client) Login(ctx context.Context, username, password string) (*AuthResponse, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	var resp AuthResponse
	if err := c.postForm(ctx, "/auth/token", form, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates a new account. Registration does not authenticate; the
// caller logs in separately afterwards.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	var user User
	if err := c.postJSON(ctx, "/auth/register", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Verify checks whether the current stored token is still accepted.
func (c *Client) Verify(ctx context.Context) (*VerifyResponse, error) {
	var resp VerifyResponse
	if err := c.getJSON(ctx, "/auth/verify", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CurrentUser fetches the authenticated profile.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var user User
	if err := c.getJSON(ctx, "/auth/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}
