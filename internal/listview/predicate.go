// Package listview derives the table a list screen shows: records filtered
// by named predicates, optionally sorted by one key, plus summary numbers
// over the whole collection.
package listview

import (
	"strings"

	"fleet-backend/internal/dates"
)

// Predicate reports whether a record stays in the view.
type Predicate[T any] func(T) bool

// All matches every record.
func All[T any]() Predicate[T] {
	return func(T) bool { return true }
}

// Contains is a case-insensitive substring match. An empty needle matches
// everything.
func Contains[T any](field func(T) string, needle string) Predicate[T] {
	needle = strings.ToLower(strings.TrimSpace(needle))
	if needle == "" {
		return All[T]()
	}
	return func(r T) bool {
		return strings.Contains(strings.ToLower(field(r)), needle)
	}
}

// ContainsPtr is Contains over an optional field; a nil field never matches
// a non-empty needle.
func ContainsPtr[T any](field func(T) *string, needle string) Predicate[T] {
	if strings.TrimSpace(needle) == "" {
		return All[T]()
	}
	inner := Contains(func(r T) string { return *field(r) }, needle)
	return func(r T) bool {
		if field(r) == nil {
			return false
		}
		return inner(r)
	}
}

// Equals is an exact match for enum fields. "" and "all" match everything.
func Equals[T any](field func(T) string, value string) Predicate[T] {
	if value == "" || strings.EqualFold(value, "all") {
		return All[T]()
	}
	return func(r T) bool { return field(r) == value }
}

// DateRange keeps records whose date falls within [from, to]. A zero bound
// is open; a record without a date fails any set bound.
func DateRange[T any](field func(T) dates.Date, from, to dates.Date) Predicate[T] {
	if !from.Valid() && !to.Valid() {
		return All[T]()
	}
	return func(r T) bool {
		d := field(r)
		if !d.Valid() {
			return false
		}
		if from.Valid() && d.Time.Before(from.Time) {
			return false
		}
		if to.Valid() && d.Time.After(to.Time) {
			return false
		}
		return true
	}
}

// AnyOf ORs predicates, e.g. "tir number or buyer contains q".
func AnyOf[T any](preds ...Predicate[T]) Predicate[T] {
	return func(r T) bool {
		for _, p := range preds {
			if p(r) {
				return true
			}
		}
		return false
	}
}

// And combines predicates; an empty list matches everything.
func And[T any](preds ...Predicate[T]) Predicate[T] {
	return func(r T) bool {
		for _, p := range preds {
			if !p(r) {
				return false
			}
		}
		return true
	}
}
