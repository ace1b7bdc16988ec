// Package credentials persists the client session (access and refresh
// tokens plus the signed-in user's profile) on top of a keyvalue.Repository.
//
// Tokens are never cached in memory: each accessor reads the medium, so a
// token written by one component (e.g. the refresher) is immediately
// visible to every other one.
package credentials
