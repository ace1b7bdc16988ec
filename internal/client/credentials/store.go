package credentials

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/medreminder/internal/client/repositories/keyvalue"
	"github.com/dmitrijs2005/medreminder/internal/logging"
)

// Persisted key names.
const (
	KeyAccessToken  = "accessToken"
	KeyRefreshToken = "refreshToken"
	KeyUserData     = "userData"
	KeyIsLoggedIn   = "isLoggedIn"
	KeyUserID       = "userId"
	KeyUserEmail    = "userEmail"
)

var sessionKeys = []string{
	KeyAccessToken,
	KeyRefreshToken,
	KeyUserData,
	KeyIsLoggedIn,
	KeyUserID,
	KeyUserEmail,
}

var (
	ErrEmptyAccessToken = errors.New("access token is empty")
	ErrNotLoggedIn      = errors.New("not logged in")
)

type User struct {
	ID       string `json:"id,omitempty"`
	Email    string `json:"email,omitempty"`
	FullName string `json:"fullName,omitempty"`
	Role     string `json:"role,omitempty"`
}

type Session struct {
	AccessToken  string
	RefreshToken string
	User         *User
}

type Store struct {
	repo   keyvalue.Repository
	logger logging.Logger
}

func NewStore(repo keyvalue.Repository, logger logging.Logger) *Store {
	return &Store{repo: repo, logger: logger}
}

// AccessToken returns the stored access token, or "" when there is none.
func (s *Store) AccessToken(ctx context.Context) (string, error) {
	return s.read(ctx, KeyAccessToken)
}

// RefreshToken returns the stored refresh token, or "" when there is none.
func (s *Store) RefreshToken(ctx context.Context) (string, error) {
	return s.read(ctx, KeyRefreshToken)
}

func (s *Store) UserID(ctx context.Context) (string, error) {
	return s.read(ctx, KeyUserID)
}

// SaveSession replaces whatever session was stored before with sess.
func (s *Store) SaveSession(ctx context.Context, sess Session) error {
	if sess.AccessToken == "" {
		return ErrEmptyAccessToken
	}

	values := map[string]string{
		KeyAccessToken: sess.AccessToken,
		KeyIsLoggedIn:  "true",
	}
	if sess.RefreshToken != "" {
		values[KeyRefreshToken] = sess.RefreshToken
	}
	if sess.User != nil {
		if err := putUser(values, sess.User); err != nil {
			return err
		}
	}

	if err := s.repo.Replace(ctx, sessionKeys, values); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// UpdateTokens stores a refreshed token pair. An empty refresh token keeps
// the current one.
func (s *Store) UpdateTokens(ctx context.Context, access, refresh string) error {
	if access == "" {
		return ErrEmptyAccessToken
	}

	values := map[string]string{KeyAccessToken: access}
	if refresh != "" {
		values[KeyRefreshToken] = refresh
	}

	if err := s.repo.Replace(ctx, nil, values); err != nil {
		return fmt.Errorf("update tokens: %w", err)
	}
	return nil
}

func (s *Store) ClearSession(ctx context.Context) error {
	if err := s.repo.Delete(ctx, sessionKeys...); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *Store) IsLoggedIn(ctx context.Context) (bool, error) {
	token, err := s.AccessToken(ctx)
	if err != nil {
		return false, err
	}
	return token != "", nil
}

// User returns the stored profile, or nil when no one is signed in.
// Sessions saved without userData fall back to userId and userEmail.
func (s *Store) User(ctx context.Context) (*User, error) {
	raw, err := s.read(ctx, KeyUserData)
	if err != nil {
		return nil, err
	}

	if raw != "" {
		var u User
		if err := json.Unmarshal([]byte(raw), &u); err != nil {
			return nil, fmt.Errorf("decode %s: %w", KeyUserData, err)
		}
		return &u, nil
	}

	id, err := s.read(ctx, KeyUserID)
	if err != nil {
		return nil, err
	}
	email, err := s.read(ctx, KeyUserEmail)
	if err != nil {
		return nil, err
	}
	if id == "" && email == "" {
		return nil, nil
	}
	return &User{ID: id, Email: email}, nil
}

// UpdateUser applies fn to the stored profile and writes the result back.
func (s *Store) UpdateUser(ctx context.Context, fn func(u *User)) error {
	loggedIn, err := s.IsLoggedIn(ctx)
	if err != nil {
		return err
	}
	if !loggedIn {
		return ErrNotLoggedIn
	}

	u, err := s.User(ctx)
	if err != nil {
		return err
	}
	if u == nil {
		u = &User{}
	}
	fn(u)

	values := map[string]string{}
	if err := putUser(values, u); err != nil {
		return err
	}

	if err := s.repo.Replace(ctx, []string{KeyUserID, KeyUserEmail}, values); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func (s *Store) read(ctx context.Context, key string) (string, error) {
	v, _, err := s.repo.Get(ctx, key)
	if err != nil {
		s.logger.Warn(ctx, "credential store read failed", "key", key, "error", err)
		return "", fmt.Errorf("read %s: %w", key, err)
	}
	return v, nil
}

func putUser(values map[string]string, u *User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode %s: %w", KeyUserData, err)
	}
	values[KeyUserData] = string(data)
	if u.ID != "" {
		values[KeyUserID] = u.ID
	}
	if u.Email != "" {
		values[KeyUserEmail] = u.Email
	}
	return nil
}
