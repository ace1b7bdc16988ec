// Package common contains constants and sentinel errors shared by the
// medreminder client packages.
package common

// Header names and values sent on every API request.
const (
	HeaderContentType   = "Content-Type"
	HeaderAccept        = "Accept"
	HeaderAuthorization = "Authorization"

	MIMEApplicationJSON = "application/json"

	// BearerPrefix precedes the access token in the Authorization header.
	BearerPrefix = "Bearer "
)
