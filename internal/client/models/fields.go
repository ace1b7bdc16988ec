package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

var ErrInvalidID = errors.New("invalid id")

// fields is a decoded JSON object with case-tolerant accessors.
type fields map[string]json.RawMessage

func decodeFields(data []byte) (fields, error) {
	var f fields
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return f, nil
}

// lookup returns the first non-null value among names, trying each name
// as given and then with its first letter upper-cased.
func (f fields) lookup(names ...string) (json.RawMessage, string, bool) {
	for _, n := range names {
		for _, k := range [2]string{n, capitalize(n)} {
			if raw, ok := f[k]; ok && !isNull(raw) {
				return raw, k, true
			}
		}
	}
	return nil, "", false
}

// str returns the first non-empty string. Numbers are accepted and
// rendered in their JSON form.
func (f fields) str(names ...string) (string, error) {
	for _, n := range names {
		for _, k := range [2]string{n, capitalize(n)} {
			raw, ok := f[k]
			if !ok || isNull(raw) {
				continue
			}
			s, err := rawString(raw)
			if err != nil {
				return "", fmt.Errorf("field %s: %w", k, err)
			}
			if s != "" {
				return s, nil
			}
		}
	}
	return "", nil
}

// boolean is true when any of the spellings is true.
func (f fields) boolean(names ...string) (bool, error) {
	for _, n := range names {
		for _, k := range [2]string{n, capitalize(n)} {
			raw, ok := f[k]
			if !ok || isNull(raw) {
				continue
			}
			var b bool
			if err := json.Unmarshal(raw, &b); err != nil {
				return false, fmt.Errorf("field %s: %w", k, err)
			}
			if b {
				return true, nil
			}
		}
	}
	return false, nil
}

func (f fields) id(names ...string) (int64, bool, error) {
	raw, k, ok := f.lookup(names...)
	if !ok {
		return 0, false, nil
	}
	v, err := ParseID(raw)
	if err != nil {
		return 0, false, fmt.Errorf("field %s: %w", k, err)
	}
	return v, true, nil
}

func (f fields) float(names ...string) (float64, error) {
	raw, k, ok := f.lookup(names...)
	if !ok {
		return 0, nil
	}
	s, err := rawString(raw)
	if err != nil {
		return 0, fmt.Errorf("field %s: %w", k, err)
	}
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("field %s: %w", k, err)
	}
	return v, nil
}

func (f fields) time(names ...string) (time.Time, error) {
	s, err := f.str(names...)
	if err != nil || s == "" {
		return time.Time{}, err
	}
	return ParseTime(s)
}

func (f fields) timePtr(names ...string) (*time.Time, error) {
	t, err := f.time(names...)
	if err != nil || t.IsZero() {
		return nil, err
	}
	return &t, nil
}

// ParseID accepts a JSON number or a string holding a decimal integer.
func ParseID(raw json.RawMessage) (int64, error) {
	s, err := rawString(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidID, err)
	}
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	return v, nil
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseTime parses the timestamp formats the API emits. Values without a
// zone are taken as UTC.
func ParseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised time %q", s)
}

// rawString returns the content of a JSON string, or the literal text of a
// JSON number.
func rawString(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("want string or number, got %s", raw)
	}
	return n.String(), nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
