// Package core provides the domain records shared by storage, HTTP and
// summary layers.
//
// This file contains the lenient scalar types used for record fields.
// Upstream sources are not consistent about field encoding: Postgres numerics
// arrive as JSON strings, timestamps may be RFC 3339 or bare dates, and any
// field may be absent. Number and DateTime absorb all of that without ever
// returning a decode error; missing or malformed values simply become
// invalid and are defaulted later by the summary layer.
package core

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Number is a numeric record field that tolerates JSON numbers, numeric
// strings and null. Invalid input yields Valid=false rather than an error.
type Number struct {
	Float64 float64
	Valid   bool
}

// Num is a convenience constructor for a valid Number.
func Num(v float64) Number {
	return Number{Float64: v, Valid: true}
}

// Or returns the value, or def when the field is absent or malformed.
func (n Number) Or(def float64) float64 {
	if !n.Valid {
		return def
	}
	return n.Float64
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(n.Float64, 'f', -1, 64)), nil
}

func (n *Number) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		*n = Number{}
		return nil
	}
	// Numeric strings come quoted (Postgres numeric columns).
	s = strings.Trim(s, `"`)
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		*n = Number{}
		return nil
	}
	*n = Number{Float64: v, Valid: true}
	return nil
}

// Scan implements sql.Scanner.
func (n *Number) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*n = Number{}
	case float64:
		*n = Number{Float64: v, Valid: true}
	case int64:
		*n = Number{Float64: float64(v), Valid: true}
	case string:
		return n.UnmarshalJSON([]byte(v))
	case []byte:
		return n.UnmarshalJSON(v)
	default:
		return fmt.Errorf("scan Number: unsupported type %T", src)
	}
	return nil
}

// Value implements driver.Valuer.
func (n Number) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.Float64, nil
}

// dateLayouts are tried in order when decoding a DateTime from a string.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// DateTime is a timestamp record field that tolerates RFC 3339 values, bare
// dates, null and garbage. Like Number, it never fails to decode.
type DateTime struct {
	Time  time.Time
	Valid bool
}

// At is a convenience constructor for a valid DateTime.
func At(t time.Time) DateTime {
	return DateTime{Time: t, Valid: true}
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	if !d.Valid {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Time.Format(time.RFC3339) + `"`), nil
}

func (d *DateTime) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		*d = DateTime{}
		return nil
	}
	s = strings.Trim(s, `"`)
	d.set(s)
	return nil
}

func (d *DateTime) set(s string) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			*d = DateTime{Time: t, Valid: true}
			return
		}
	}
	*d = DateTime{}
}

// Scan implements sql.Scanner.
func (d *DateTime) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = DateTime{}
	case time.Time:
		*d = DateTime{Time: v, Valid: true}
	case string:
		d.set(v)
	case []byte:
		d.set(string(v))
	default:
		return fmt.Errorf("scan DateTime: unsupported type %T", src)
	}
	return nil
}

// Value implements driver.Valuer. Timestamps are stored as RFC 3339 text
// so stored values decode through the same layouts as wire values.
func (d DateTime) Value() (driver.Value, error) {
	if !d.Valid {
		return nil, nil
	}
	return d.Time.Format(time.RFC3339Nano), nil
}
