package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/medreminder/internal/client/client"
	"github.com/dmitrijs2005/medreminder/internal/client/credentials"
	"github.com/dmitrijs2005/medreminder/internal/client/endpoints"
	"github.com/dmitrijs2005/medreminder/internal/client/models"
	"github.com/dmitrijs2005/medreminder/internal/logging"
)

var (
	ErrInvalidLoginResponse = errors.New("login response carried no access token")
	ErrRegistrationRejected = errors.New("registration rejected")
)

// SessionStore is the part of the credential store AuthService needs.
type SessionStore interface {
	SaveSession(ctx context.Context, s credentials.Session) error
	ClearSession(ctx context.Context) error
	RefreshToken(ctx context.Context) (string, error)
	User(ctx context.Context) (*credentials.User, error)
	IsLoggedIn(ctx context.Context) (bool, error)
	UpdateUser(ctx context.Context, fn func(u *credentials.User)) error
}

// AuthService signs users up, in and out.
//
// Register, Login and the token refresh are the only unauthenticated calls
// of the API. A successful Login replaces any previous session entirely;
// Logout always ends with no session stored, even if the server could not
// be told.
type AuthService interface {
	Register(ctx context.Context, in models.RegisterInput) (*models.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*credentials.Session, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*credentials.User, error)
	IsLoggedIn(ctx context.Context) (bool, error)
	// UpdateProfile edits the locally stored profile of the signed-in user.
	UpdateProfile(ctx context.Context, fn func(u *credentials.User)) (*credentials.User, error)
}

type authService struct {
	exec   Executor
	store  SessionStore
	logger logging.Logger
}

func NewAuthService(exec Executor, store SessionStore, logger logging.Logger) AuthService {
	return &authService{exec: exec, store: store, logger: logger}
}

func (a *authService) Register(ctx context.Context, in models.RegisterInput) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	err := a.exec.DoJSON(ctx, client.Request{
		Method: http.MethodPost,
		Path:   endpoints.Register,
		Body:   in,
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	if !resp.Registered() {
		msg := resp.Message
		if msg == "" {
			msg = "no user id in response"
		}
		return nil, fmt.Errorf("%w: %s", ErrRegistrationRejected, msg)
	}

	// Some deployments sign the user in straight away.
	if resp.AccessToken != "" {
		if err := a.store.SaveSession(ctx, sessionFrom(&resp, in.Email)); err != nil {
			return nil, fmt.Errorf("register: %w", err)
		}
	}

	return &resp, nil
}

func (a *authService) Login(ctx context.Context, email, password string) (*credentials.Session, error) {
	var resp models.AuthResponse
	err := a.exec.DoJSON(ctx, client.Request{
		Method: http.MethodPost,
		Path:   endpoints.Login,
		Body:   models.Credentials{Email: email, Password: password},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if resp.AccessToken == "" {
		return nil, ErrInvalidLoginResponse
	}

	sess := sessionFrom(&resp, email)
	if err := a.store.SaveSession(ctx, sess); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	a.logger.Info(ctx, "logged in", "user_id", sess.User.ID)
	return &sess, nil
}

func (a *authService) Logout(ctx context.Context) error {
	refreshToken, err := a.store.RefreshToken(ctx)
	if err != nil {
		a.logger.Warn(ctx, "logout: refresh token unavailable", "error", err)
	}

	if refreshToken != "" {
		_, err := a.exec.Do(ctx, client.Request{
			Method:       http.MethodPost,
			Path:         endpoints.Logout,
			Body:         map[string]string{"refreshToken": refreshToken},
			RequiresAuth: true,
		})
		if err != nil {
			a.logger.Warn(ctx, "logout: server call failed, clearing local session anyway", "error", err)
		}
	}

	if err := a.store.ClearSession(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

func (a *authService) CurrentUser(ctx context.Context) (*credentials.User, error) {
	return a.store.User(ctx)
}

func (a *authService) IsLoggedIn(ctx context.Context) (bool, error) {
	return a.store.IsLoggedIn(ctx)
}

func (a *authService) UpdateProfile(ctx context.Context, fn func(u *credentials.User)) (*credentials.User, error) {
	if err := a.store.UpdateUser(ctx, fn); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return a.store.User(ctx)
}

// sessionFrom builds the session to persist. The login email stands in
// when the response does not echo the user.
func sessionFrom(resp *models.AuthResponse, email string) credentials.Session {
	u := &credentials.User{ID: resp.UserID, Email: email}
	if resp.User != nil {
		u = &credentials.User{
			ID:       resp.User.ID,
			Email:    resp.User.Email,
			FullName: resp.User.FullName,
			Role:     resp.User.Role,
		}
		if u.ID == "" {
			u.ID = resp.UserID
		}
		if u.Email == "" {
			u.Email = email
		}
	}

	return credentials.Session{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		User:         u,
	}
}
