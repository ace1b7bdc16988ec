package credentials

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/medreminder/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo is what the client can learn from an access token without the
// server's signing key. It is informational only and never used for
// authorization decisions.
type TokenInfo struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token carried an exp claim that is before now.
func (ti TokenInfo) Expired(now time.Time) bool {
	return !ti.ExpiresAt.IsZero() && now.After(ti.ExpiresAt)
}

// InspectToken decodes the registered claims of a JWT without verifying it.
func InspectToken(token string) (*TokenInfo, error) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	ti := &TokenInfo{Subject: claims.Subject}
	if claims.IssuedAt != nil {
		ti.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		ti.ExpiresAt = claims.ExpiresAt.Time
	}
	return ti, nil
}
