// internal/client/auth.go
package client

import (
	"context"
	"net/http"

	"github.com/javajoker/farmfresh/internal/models"
)

// Register creates the account. When the server signs the new user in
// straight away the returned token is kept like a login.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	var resp models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", false, req, &resp); err != nil {
		return nil, err
	}
	if resp.Token != "" {
		if err := c.session.Set(resp.Token, resp.User); err != nil {
			c.logger.WithError(err).Warn("Failed to persist session")
		}
	}
	return &resp.User, nil
}

// Login stores the returned token in the session.
func (c *Client) Login(ctx context.Context, email, password string) (*models.User, error) {
	var resp models.AuthResponse
	req := models.LoginRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", false, req, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, &APIError{StatusCode: http.StatusBadGateway, Message: "login response did not include a token"}
	}

	if err := c.session.Set(resp.Token, resp.User); err != nil {
		c.logger.WithError(err).Warn("Failed to persist session")
	}
	return &resp.User, nil
}

// Logout asks the server to revoke the token and always clears the local session.
func (c *Client) Logout(ctx context.Context) error {
	var remoteErr error
	if c.session.Authenticated() {
		remoteErr = c.do(ctx, http.MethodPost, "/api/auth/logout", true, nil, nil)
		if remoteErr != nil {
			c.logger.WithError(remoteErr).Debug("Server-side logout failed")
		}
	}
	if err := c.session.Clear(); err != nil {
		return err
	}
	if IsAuthError(remoteErr) {
		return nil
	}
	return remoteErr
}

func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", true, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
