package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/medreminder/internal/client/client"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Status(ctx context.Context) error
	Profile(ctx context.Context) error
	Reminders(ctx context.Context) error
	ShowReminder(ctx context.Context, args []string) error
	AddReminder(ctx context.Context) error
	EditReminder(ctx context.Context, args []string) error
	CompleteReminder(ctx context.Context, args []string) error
	DeleteReminder(ctx context.Context, args []string) error
	Pharmacies(ctx context.Context) error
	Nearby(ctx context.Context, args []string) error
	AddPharmacy(ctx context.Context) error
	Files(ctx context.Context, args []string) error
	Upload(ctx context.Context, args []string) error
}

const (
	helpAnonymous = "Available commands: register, login, exit"
	helpSignedIn  = "Available commands: status, profile, reminders, reminder <id>, addreminder, editreminder <id>, " +
		"complete <id>, deletereminder <id>, pharmacies, nearby <lat> <long>, addpharmacy, " +
		"files [reminderId], upload <path>, logout, exit"
)

// runREPL reads one command per line from reader and dispatches it to a.
// The loop ends on EOF or when the user types "exit" or "quit".
//
// A failing command prints its error and the loop carries on. An
// authorization failure that survived the token refresh means the session is
// gone, so the user is told to log in again.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("mr %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || strings.TrimSpace(line) == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error

		switch cmd {
		case "help":
			if a.isLoggedIn(ctx) {
				printlnFn(helpSignedIn)
			} else {
				printlnFn(helpAnonymous)
			}

		case "register":
			cmdErr = a.Register(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "status", "whoami":
			cmdErr = a.Status(ctx)

		case "profile":
			cmdErr = a.Profile(ctx)

		case "r", "reminders":
			cmdErr = a.Reminders(ctx)

		case "reminder":
			cmdErr = a.ShowReminder(ctx, args)

		case "addreminder":
			cmdErr = a.AddReminder(ctx)

		case "editreminder":
			cmdErr = a.EditReminder(ctx, args)

		case "complete":
			cmdErr = a.CompleteReminder(ctx, args)

		case "deletereminder":
			cmdErr = a.DeleteReminder(ctx, args)

		case "pharmacies":
			cmdErr = a.Pharmacies(ctx)

		case "nearby":
			cmdErr = a.Nearby(ctx, args)

		case "addpharmacy":
			cmdErr = a.AddPharmacy(ctx)

		case "files":
			cmdErr = a.Files(ctx, args)

		case "upload":
			cmdErr = a.Upload(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			reportError(cmdErr)
		}

		if err != nil {
			return
		}
	}
}

func reportError(err error) {
	var httpErr *client.HTTPError
	switch {
	case errors.Is(err, client.ErrUnauthorized):
		printlnFn("Not signed in or session expired, please login")
	case errors.Is(err, client.ErrUnavailable):
		printlnFn("Server unavailable:", err)
	case errors.As(err, &httpErr):
		printlnFn(fmt.Sprintf("Server said %d: %s", httpErr.Status, httpErr.Message))
	default:
		printlnFn("Error:", err)
	}
}
