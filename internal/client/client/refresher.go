package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/medreminder/internal/client/endpoints"
)

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type refreshResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// refresh obtains a new access token and reports whether the caller may
// repeat its request. stale is the access token the failed request carried.
//
// Callers holding the same refresh token share one exchange. If the stored
// access token already differs from a non-empty stale, another caller has
// refreshed in the meantime and no exchange is made.
func (c *HTTPClient) refresh(ctx context.Context, stale string) bool {
	refreshToken, err := c.store.RefreshToken(ctx)
	if err != nil {
		c.logger.Warn(ctx, "refresh token unavailable", "error", err)
		return false
	}
	if refreshToken == "" {
		c.logger.Info(ctx, "no refresh token stored, cannot refresh")
		return false
	}

	v, _, shared := c.refreshGroup.Do(refreshToken, func() (any, error) {
		// An empty stale token means the failed request went out without one,
		// which says nothing about whether anyone refreshed since.
		if stale != "" {
			current, err := c.store.AccessToken(ctx)
			if err == nil && current != "" && current != stale {
				return true, nil
			}
		}
		// Detached from the leader's cancellation; the http.Client timeout bounds it.
		return c.exchange(context.WithoutCancel(ctx), refreshToken), nil
	})
	if shared {
		c.logger.Debug(ctx, "shared an in-flight token refresh")
	}

	ok, _ := v.(bool)
	return ok
}

func (c *HTTPClient) exchange(ctx context.Context, refreshToken string) bool {
	data, _, err := c.roundTrip(ctx, Request{
		Method: http.MethodPost,
		Path:   endpoints.Refresh,
		Body:   refreshRequest{RefreshToken: refreshToken},
	})
	if err != nil {
		var herr *HTTPError
		if errors.As(err, &herr) && rejectsRefreshToken(herr.Status) {
			c.logger.Warn(ctx, "refresh token rejected, clearing session", "status", herr.Status)
			if err := c.store.ClearSession(ctx); err != nil {
				c.logger.Error(ctx, "failed to clear session", "error", err)
			}
			return false
		}
		c.logger.Warn(ctx, "token refresh failed", "error", err)
		return false
	}

	var resp refreshResponse
	if len(data) == 0 || json.Unmarshal(data, &resp) != nil || resp.AccessToken == "" {
		c.logger.Warn(ctx, "token refresh response carried no access token")
		return false
	}

	if err := c.store.UpdateTokens(ctx, resp.AccessToken, resp.RefreshToken); err != nil {
		c.logger.Error(ctx, "failed to store refreshed tokens", "error", err)
		return false
	}

	c.logger.Info(ctx, "access token refreshed")
	return true
}

// rejectsRefreshToken reports statuses meaning the refresh token itself is
// no longer valid. Server errors leave the session in place.
func rejectsRefreshToken(status int) bool {
	switch status {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
		return true
	}
	return false
}
