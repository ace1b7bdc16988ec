package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/medreminder/internal/client/credentials"
	"github.com/dmitrijs2005/medreminder/internal/client/models"
	"github.com/dmitrijs2005/medreminder/internal/client/services"
	"github.com/dmitrijs2005/medreminder/internal/logging"
)

type fakeAuth struct {
	regIn   models.RegisterInput
	regResp *models.AuthResponse
	regErr  error

	loginEmail string
	loginPass  string
	loginSess  *credentials.Session
	loginErr   error

	logoutCalled bool
	logoutErr    error

	user     *credentials.User
	userErr  error
	loggedIn bool

	profileErr error
}

func (f *fakeAuth) Register(_ context.Context, in models.RegisterInput) (*models.AuthResponse, error) {
	f.regIn = in
	if f.regErr != nil {
		return nil, f.regErr
	}
	if f.regResp == nil {
		return &models.AuthResponse{Success: true}, nil
	}
	return f.regResp, nil
}

func (f *fakeAuth) Login(_ context.Context, email, password string) (*credentials.Session, error) {
	f.loginEmail, f.loginPass = email, password
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	f.loggedIn = true
	if f.loginSess == nil {
		return &credentials.Session{AccessToken: "A"}, nil
	}
	return f.loginSess, nil
}

func (f *fakeAuth) Logout(context.Context) error {
	f.logoutCalled = true
	f.loggedIn = false
	return f.logoutErr
}

func (f *fakeAuth) CurrentUser(context.Context) (*credentials.User, error) { return f.user, f.userErr }
func (f *fakeAuth) IsLoggedIn(context.Context) (bool, error)               { return f.loggedIn, nil }

func (f *fakeAuth) UpdateProfile(_ context.Context, fn func(u *credentials.User)) (*credentials.User, error) {
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	fn(f.user)
	return f.user, nil
}

type fakeReminders struct {
	list    []models.Reminder
	byID    map[int64]*models.Reminder
	created []models.ReminderInput
	updated map[int64]models.ReminderInput
	done    []int64
	deleted []int64
	err     error
}

func (f *fakeReminders) List(context.Context) ([]models.Reminder, error) { return f.list, f.err }
func (f *fakeReminders) Get(_ context.Context, id int64) (*models.Reminder, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byID[id], nil
}
func (f *fakeReminders) Create(_ context.Context, in models.ReminderInput) (*models.Reminder, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, in)
	return &models.Reminder{ID: int64(len(f.created)), Title: in.Title}, nil
}
func (f *fakeReminders) Update(_ context.Context, id int64, in models.ReminderInput) (*models.Reminder, error) {
	if f.updated == nil {
		f.updated = map[int64]models.ReminderInput{}
	}
	f.updated[id] = in
	return &models.Reminder{ID: id}, f.err
}
func (f *fakeReminders) Delete(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return f.err
}
func (f *fakeReminders) Complete(_ context.Context, id int64) (*models.Reminder, error) {
	f.done = append(f.done, id)
	return &models.Reminder{ID: id, IsCompleted: true}, f.err
}

type fakePharmacies struct {
	list      []models.Pharmacy
	lat, long float64
	created   []models.PharmacyInput
}

func (f *fakePharmacies) List(context.Context) ([]models.Pharmacy, error) { return f.list, nil }
func (f *fakePharmacies) Nearby(_ context.Context, lat, long float64) ([]models.Pharmacy, error) {
	f.lat, f.long = lat, long
	return f.list, nil
}
func (f *fakePharmacies) Get(context.Context, int64) (*models.Pharmacy, error) { return nil, nil }
func (f *fakePharmacies) Create(_ context.Context, in models.PharmacyInput) (*models.Pharmacy, error) {
	f.created = append(f.created, in)
	return &models.Pharmacy{ID: 9, Name: in.Name}, nil
}
func (f *fakePharmacies) Update(context.Context, int64, models.PharmacyInput) (*models.Pharmacy, error) {
	return nil, nil
}
func (f *fakePharmacies) Delete(context.Context, int64) error { return nil }

type fakeFiles struct {
	list       []models.FileRecord
	reminderID *int64
	listed     bool
}

func (f *fakeFiles) List(_ context.Context, reminderID *int64) ([]models.FileRecord, error) {
	f.listed = true
	f.reminderID = reminderID
	return f.list, nil
}
func (f *fakeFiles) Upload(context.Context, models.FileUpload) (*models.FileRecord, error) {
	return nil, nil
}
func (f *fakeFiles) Get(context.Context, int64) (*models.FileRecord, error) { return nil, nil }
func (f *fakeFiles) Delete(context.Context, int64) error                    { return nil }

type fakePrescriptions struct {
	path string
	res  *services.PrescriptionUpload
	err  error
}

func (f *fakePrescriptions) Upload(_ context.Context, path string) (*services.PrescriptionUpload, error) {
	f.path = path
	return f.res, f.err
}

type testEnv struct {
	app           *App
	out           *bytes.Buffer
	auth          *fakeAuth
	reminders     *fakeReminders
	pharmacies    *fakePharmacies
	files         *fakeFiles
	prescriptions *fakePrescriptions
	token         string
}

// newTestEnv builds an App reading the given lines as user input.
func newTestEnv(t *testing.T, lines ...string) *testEnv {
	t.Helper()

	e := &testEnv{
		out:           &bytes.Buffer{},
		auth:          &fakeAuth{},
		reminders:     &fakeReminders{},
		pharmacies:    &fakePharmacies{},
		files:         &fakeFiles{},
		prescriptions: &fakePrescriptions{},
	}

	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	e.app = NewApp(Services{
		Auth:          e.auth,
		Reminders:     e.reminders,
		Pharmacies:    e.pharmacies,
		Files:         e.files,
		Prescriptions: e.prescriptions,
		Tokens:        tokenSourceFunc(func() string { return e.token }),
	}, logging.Discard(), in, e.out)
	e.app.now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }

	return e
}

type tokenSourceFunc func() string

func (f tokenSourceFunc) AccessToken(context.Context) (string, error) { return f(), nil }

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(_ io.Writer) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { getPassword = orig })
}

func silencePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}
