// Package services contains the domain facades of the medreminder client.
//
// Each facade maps named operations (list reminders, complete a reminder,
// find nearby pharmacies, ...) onto an HTTP method, a path from package
// endpoints and a payload from package models, and hands the request to an
// Executor. Facades do not retry, cache or validate; executor errors are
// returned wrapped with the operation name.
package services

import (
	"context"
	"encoding/json"

	"github.com/dmitrijs2005/medreminder/internal/client/client"
)

// Executor sends API requests. *client.HTTPClient implements it.
type Executor interface {
	Do(ctx context.Context, req client.Request) (json.RawMessage, error)
	DoJSON(ctx context.Context, req client.Request, out any) error
}
