// Package keyvalue provides the string key-value medium that persists the
// client session. SQLite is the default backend; Valkey can be used when
// several client processes must share one session.
package keyvalue
