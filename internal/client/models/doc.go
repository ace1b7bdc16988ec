// Package models defines the client-side schema of the healthcare API:
// reminders, pharmacies, files and auth payloads.
//
// The API is inconsistent about field casing (isCompleted vs IsCompleted,
// id vs Id) and about numeric types (ids as numbers or strings). Each
// response type has one UnmarshalJSON adapter that folds those variants
// into a single canonical struct; nothing past this package sees them.
package models
