package api

import (
	"context"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/oakwood-commons/roadtrip/pkg/tokenstore"
)

// expirySkew treats tokens about to expire as already expired.
const expirySkew = 10 * time.Second

// TokenExpiry reads the exp claim of a JWT without verifying its signature.
// ok is false when the token is not a JWT or carries no exp.
func TokenExpiry(token string) (time.Time, bool) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// refreshIfExpired swaps an expired access token for a new one. Failures
// are logged and otherwise ignored; the server rejects the original call if
// the token really is unusable.
func (c *Client) refreshIfExpired(ctx context.Context) {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	creds, err := tokenstore.Load(c.store)
	if err != nil || creds.AccessToken == "" || creds.RefreshToken == "" {
		return
	}
	exp, ok := TokenExpiry(creds.AccessToken)
	if !ok || c.now().Add(expirySkew).Before(exp) {
		return
	}

	var out struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	err = c.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/token/refresh/",
		body:   map[string]string{"refresh": creds.RefreshToken},
		public: true,
	}, &out)
	if err != nil {
		c.log.V(1).Info("token refresh failed", "error", err.Error())
		return
	}
	if out.Access == "" {
		return
	}
	if err := c.store.Set(tokenstore.AccessTokenKey, out.Access); err != nil {
		c.log.Error(err, "persist refreshed access token")
		return
	}
	// Rotated refresh tokens replace the old one.
	if out.Refresh != "" {
		if err := c.store.Set(tokenstore.RefreshTokenKey, out.Refresh); err != nil {
			c.log.Error(err, "persist rotated refresh token")
		}
	}
}
