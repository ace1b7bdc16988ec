package models

import (
	"encoding/json"
	"fmt"
)

// RegisterInput is the body of the register call.
type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthUser is the user object embedded in auth responses. ID is kept as
// a decimal string whether the server sent a number or a string.
type AuthUser struct {
	ID       string
	Email    string
	FullName string
	Role     string
}

func (u *AuthUser) UnmarshalJSON(data []byte) error {
	f, err := decodeFields(data)
	if err != nil {
		return fmt.Errorf("user: %w", err)
	}

	var out AuthUser
	if out.ID, err = f.str("id", "userId"); err != nil {
		return fmt.Errorf("user: %w", err)
	}
	if out.Email, err = f.str("email"); err != nil {
		return fmt.Errorf("user: %w", err)
	}
	if out.FullName, err = f.str("fullName", "name"); err != nil {
		return fmt.Errorf("user: %w", err)
	}
	if out.Role, err = f.str("role"); err != nil {
		return fmt.Errorf("user: %w", err)
	}

	*u = out
	return nil
}

// AuthResponse covers the login and register answers.
type AuthResponse struct {
	AccessToken  string
	RefreshToken string
	User         *AuthUser
	UserID       string
	Success      bool
	Message      string
}

func (a *AuthResponse) UnmarshalJSON(data []byte) error {
	f, err := decodeFields(data)
	if err != nil {
		return fmt.Errorf("auth response: %w", err)
	}

	var out AuthResponse
	if out.AccessToken, err = f.str("accessToken", "token"); err != nil {
		return fmt.Errorf("auth response: %w", err)
	}
	if out.RefreshToken, err = f.str("refreshToken"); err != nil {
		return fmt.Errorf("auth response: %w", err)
	}
	if out.UserID, err = f.str("userId"); err != nil {
		return fmt.Errorf("auth response: %w", err)
	}
	if out.Success, err = f.boolean("success"); err != nil {
		return fmt.Errorf("auth response: %w", err)
	}
	if out.Message, err = f.str("message"); err != nil {
		return fmt.Errorf("auth response: %w", err)
	}
	if raw, _, ok := f.lookup("user"); ok {
		var u AuthUser
		if err := json.Unmarshal(raw, &u); err != nil {
			return fmt.Errorf("auth response: %w", err)
		}
		out.User = &u
	}

	*a = out
	return nil
}

// Registered reports whether a register answer signals success.
func (a AuthResponse) Registered() bool {
	return a.Success || a.UserID != "" || a.AccessToken != ""
}
