// Package client implements the authenticated HTTP executor for the
// healthcare REST API.
//
// # Overview
//
// HTTPClient sends one JSON request at a time. For requests that require
// authentication it reads the access token from a TokenStore on every
// attempt and sends it as a bearer token. When the server rejects a request
// with 401 or 403, the client exchanges the stored refresh token for a new
// access token and repeats the request exactly once.
//
// Concurrent refreshes are collapsed: callers that fail at the same time
// share one call to the refresh endpoint.
//
// # Error Handling
//
// Transport failures wrap ErrUnavailable. Non-2xx answers are returned as
// *HTTPError, which matches ErrUnauthorized (401, 403) and ErrNotFound (404)
// with errors.Is.
package client
