package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/medreminder/internal/client/credentials"
	"github.com/dmitrijs2005/medreminder/internal/client/models"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for the account details and creates the account. When the
// server signs the new user in straight away the prompt reflects it.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer clear(password)

	fullName, err := getSimpleText(a.reader, "Full name (optional)", a.out)
	if err != nil {
		return err
	}
	phone, err := getSimpleText(a.reader, "Phone (optional)", a.out)
	if err != nil {
		return err
	}

	resp, err := a.authService.Register(ctx, models.RegisterInput{
		Email:    email,
		Password: string(password),
		FullName: fullName,
		Phone:    phone,
	})
	if err != nil {
		return err
	}

	if resp.AccessToken != "" {
		a.userName = email
		fmt.Fprintln(a.out, "Registered and signed in")
		return nil
	}
	fmt.Fprintln(a.out, "Registered, you can login now")
	return nil
}

// Login prompts for credentials and stores the new session.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer clear(password)

	sess, err := a.authService.Login(ctx, email, string(password))
	if err != nil {
		return err
	}

	a.userName = email
	if sess.User != nil && sess.User.Email != "" {
		a.userName = sess.User.Email
	}
	fmt.Fprintln(a.out, "Login successful")
	return nil
}

// Logout ends the session locally even if the server is unreachable.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	a.userName = ""
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// Status prints the stored user and what the access token says about itself.
func (a *App) Status(ctx context.Context) error {
	u, err := a.authService.CurrentUser(ctx)
	if err != nil {
		return err
	}
	if u == nil {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}

	fmt.Fprintf(a.out, "User:  %s (id %s)\n", u.Email, valueOr(u.ID, "unknown"))
	if u.FullName != "" {
		fmt.Fprintf(a.out, "Name:  %s\n", u.FullName)
	}
	if u.Role != "" {
		fmt.Fprintf(a.out, "Role:  %s\n", u.Role)
	}

	token, err := a.tokens.AccessToken(ctx)
	if err != nil {
		return err
	}
	info, err := credentials.InspectToken(token)
	if err != nil {
		fmt.Fprintln(a.out, "Token: opaque")
		return nil
	}

	switch {
	case info.ExpiresAt.IsZero():
		fmt.Fprintln(a.out, "Token: no expiry")
	case info.Expired(a.now()):
		fmt.Fprintf(a.out, "Token: expired at %s, it will be refreshed on the next call\n", info.ExpiresAt.Local().Format(InputTimeLayout))
	default:
		fmt.Fprintf(a.out, "Token: valid until %s\n", info.ExpiresAt.Local().Format(InputTimeLayout))
	}
	return nil
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// Profile shows the stored profile and lets the user change the display name.
// The change is kept locally; an empty answer leaves the name as it is.
func (a *App) Profile(ctx context.Context) error {
	u, err := a.authService.CurrentUser(ctx)
	if err != nil {
		return err
	}
	if u == nil {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}

	fmt.Fprintf(a.out, "Email: %s\n", u.Email)
	name, err := getSimpleText(a.reader, withDefault("Full name", u.FullName), a.out)
	if err != nil {
		return err
	}
	if name == "" || name == u.FullName {
		return nil
	}

	updated, err := a.authService.UpdateProfile(ctx, func(u *credentials.User) { u.FullName = name })
	if err != nil {
		return err
	}
	if updated != nil {
		fmt.Fprintf(a.out, "Profile saved, name is now %s\n", updated.FullName)
	}
	return nil
}
