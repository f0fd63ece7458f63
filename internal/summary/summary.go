// Package summary computes display rows and rollups over fetched record
// sets. Every function is pure: it takes the full record slice, returns a
// fresh result and keeps no state between calls, so recomputing after a
// mutation is always a full re-run on the re-fetched set.
//
// Missing-field policy, declared once per domain in the normalizers:
//   - fields that participate in arithmetic default to 0
//   - identity and display-only fields default to the literal "N/A"
//   - grouping keys fall back to "Uncategorized" (categories) or
//     "Unknown" (names) and are never trimmed or case-folded, so keys
//     differing only in case or whitespace stay distinct partitions
package summary

import (
	"strconv"
	"time"

	"inventory/internal/core"
)

const (
	// NotAvailable marks identity and display fields with no source value.
	NotAvailable = "N/A"
	// Uncategorized buckets rows whose category key is empty.
	Uncategorized = "Uncategorized"
	// Unknown buckets rows whose name key or month is empty.
	Unknown = "Unknown"
)

// DateFallback decides the month bucket for rows whose temporal field is
// missing or unparseable.
type DateFallback int

const (
	// FallbackToNow buckets undated rows into the current wall-clock
	// month. This reproduces upstream behavior and is the default.
	FallbackToNow DateFallback = iota
	// FallbackToUnknown buckets undated rows under the "Unknown" key
	// instead of inventing a month for them.
	FallbackToUnknown
)

// Options tunes the aggregation policies. The zero value reproduces
// upstream behavior.
type Options struct {
	DateFallback DateFallback

	// CategoryFromName makes product rollups use the product name as the
	// category when no category is stored. Upstream did exactly this.
	CategoryFromName bool

	// Now supplies the wall clock for FallbackToNow. Nil means time.Now.
	Now func() time.Time
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// monthKey buckets a timestamp into a long-month+year key, e.g.
// "March 2024". Undated rows follow the DateFallback policy.
func (o Options) monthKey(d core.DateTime) string {
	if d.Valid {
		return d.Time.Format("January 2006")
	}
	if o.DateFallback == FallbackToUnknown {
		return Unknown
	}
	return o.now().Format("January 2006")
}

// FormatAmount renders a monetary total with exactly two decimals.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// displayNumber renders a numeric field for a grid cell, or "N/A" when the
// source had no value.
func displayNumber(n core.Number) string {
	if !n.Valid {
		return NotAvailable
	}
	return strconv.FormatFloat(n.Float64, 'f', -1, 64)
}

// displayTime renders a timestamp for a grid cell, or "N/A" when the source
// had no value. Grouping never uses this string; it uses the raw timestamp.
func displayTime(d core.DateTime) string {
	if !d.Valid {
		return NotAvailable
	}
	return d.Time.Format("02/01/2006, 15:04:05")
}

// displayDate is displayTime without the time component, for date-only
// fields such as salary period bounds.
func displayDate(d core.DateTime) string {
	if !d.Valid {
		return NotAvailable
	}
	return d.Time.Format("02/01/2006")
}

func stringOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// ordered accumulates values per string key while remembering first-seen
// order, so rollups iterate the way the rows arrived.
type ordered[T any] struct {
	keys []string
	vals map[string]*T
}

func newOrdered[T any]() *ordered[T] {
	return &ordered[T]{vals: make(map[string]*T)}
}

func (o *ordered[T]) at(key string) *T {
	if v, ok := o.vals[key]; ok {
		return v
	}
	v := new(T)
	o.vals[key] = v
	o.keys = append(o.keys, key)
	return v
}

func (o *ordered[T]) each(fn func(key string, v *T)) {
	for _, k := range o.keys {
		fn(k, o.vals[k])
	}
}
