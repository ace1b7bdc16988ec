package common

import "errors"

// ErrInvalidToken reports a token that cannot be decoded as a JWT.
var ErrInvalidToken = errors.New("invalid token")
