package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/medreminder/internal/client/services"
	"github.com/dmitrijs2005/medreminder/internal/logging"
)

// TokenSource exposes the stored access token for the status command.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

// Services bundles the facades the CLI drives.
type Services struct {
	Auth          services.AuthService
	Reminders     services.ReminderService
	Pharmacies    services.PharmacyService
	Files         services.FileService
	Prescriptions services.PrescriptionService
	Tokens        TokenSource
}

type App struct {
	authService         services.AuthService
	reminderService     services.ReminderService
	pharmacyService     services.PharmacyService
	fileService         services.FileService
	prescriptionService services.PrescriptionService
	tokens              TokenSource
	logger              logging.Logger

	userName string
	reader   *bufio.Reader
	out      io.Writer
	now      func() time.Time
}

func NewApp(s Services, logger logging.Logger, in io.Reader, out io.Writer) *App {
	return &App{
		authService:         s.Auth,
		reminderService:     s.Reminders,
		pharmacyService:     s.Pharmacies,
		fileService:         s.Files,
		prescriptionService: s.Prescriptions,
		tokens:              s.Tokens,
		logger:              logger,
		reader:              bufio.NewReader(in),
		out:                 out,
		now:                 time.Now,
	}
}

// Run restores the stored session, if any, and blocks in the REPL until the
// user exits or input ends.
func (a *App) Run(ctx context.Context) error {
	fmt.Fprintln(a.out, "Welcome to medreminder CLI (type 'help' for commands)")

	if u, err := a.authService.CurrentUser(ctx); err != nil {
		a.logger.Warn(ctx, "could not restore session", "error", err)
	} else if u != nil {
		a.userName = u.Email
	}

	runREPL(ctx, a, a.getStatus, a.reader)
	return nil
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	ok, err := a.authService.IsLoggedIn(ctx)
	if err != nil {
		a.logger.Error(ctx, "reading session", "error", err)
		return false
	}
	return ok
}

func (a *App) getStatus() string {
	if a.userName == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", a.userName)
}
