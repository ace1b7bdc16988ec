// Package cli provides the interactive medreminder command-line client.
//
// App drives the service facades from a small REPL: sign up, sign in and out,
// manage reminders and pharmacies, list files and upload prescriptions. The
// session is restored from the credential store on start, so a user who
// logged in earlier is greeted by name without typing a password.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See runREPL for the command table.
package cli
