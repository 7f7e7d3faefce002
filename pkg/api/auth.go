package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/oakwood-commons/roadtrip/pkg/model"
	"github.com/oakwood-commons/roadtrip/pkg/tokenstore"
)

// Register creates an account and stores the issued tokens.
func (c *Client) Register(ctx context.Context, in model.RegisterRequest) (*model.AuthResponse, error) {
	var out model.AuthResponse
	err := c.do(ctx, request{method: http.MethodPost, path: "/auth/register/", body: in, public: true}, &out)
	if err != nil {
		return nil, err
	}
	if err := c.storeTokens(out.Tokens); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login authenticates and stores the issued tokens. The outcome is also
// reported through the Notifier.
func (c *Client) Login(ctx context.Context, email, password string) (*model.AuthResponse, error) {
	var out model.AuthResponse
	body := map[string]string{"email": email, "password": password}
	err := c.do(ctx, request{method: http.MethodPost, path: "/auth/login/", body: body, public: true}, &out)
	if err != nil {
		c.notify.Error(fmt.Sprintf("Login failed: %s", errorMessage(err)))
		return nil, err
	}
	if err := c.storeTokens(out.Tokens); err != nil {
		return nil, err
	}
	c.notify.Success(fmt.Sprintf("Welcome back, %s!", out.User.DisplayName()))
	return &out, nil
}

// Logout revokes the refresh token when one is stored and always clears
// local credentials. A failed remote call is logged, not returned.
func (c *Client) Logout(ctx context.Context) error {
	refresh, err := c.store.Get(tokenstore.RefreshTokenKey)
	if err != nil {
		c.log.Error(err, "read refresh token")
	}
	if refresh != "" {
		body := map[string]string{"refresh_token": refresh}
		if err := c.do(ctx, request{method: http.MethodPost, path: "/auth/logout/", body: body}, nil); err != nil {
			c.log.Info("remote logout failed", "error", err.Error())
		}
	}
	if err := c.store.Clear(); err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}
	c.notify.Info("You have been logged out successfully.")
	return nil
}

// Me returns the current user's profile.
func (c *Client) Me(ctx context.Context) (*model.User, error) {
	var out model.User
	if err := c.do(ctx, request{method: http.MethodGet, path: "/auth/me/"}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LoggedIn reports whether an access token is stored.
func (c *Client) LoggedIn() bool {
	token, err := c.store.Get(tokenstore.AccessTokenKey)
	return err == nil && token != ""
}

func (c *Client) storeTokens(t model.AuthTokens) error {
	err := tokenstore.Save(c.store, tokenstore.Credentials{AccessToken: t.Access, RefreshToken: t.Refresh})
	if err != nil {
		return fmt.Errorf("store credentials: %w", err)
	}
	return nil
}

func errorMessage(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
