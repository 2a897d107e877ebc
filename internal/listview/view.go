package listview

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"fleet-backend/internal/dates"
)

// Filters is the named filter state of a list screen, e.g.
// {"search": "ahmed", "status": "pending"}.
type Filters map[string]string

// key is a stable encoding used to memoize views.
func (f Filters) key() string {
	names := make([]string, 0, len(f))
	for k, v := range f {
		if v != "" {
			names = append(names, k)
		}
	}
	sort.Strings(names)

	var b strings.Builder
	for _, k := range names {
		fmt.Fprintf(&b, "%q=%q;", k, f[k])
	}
	return b.String()
}

// Schema registers, per record type, which filter names and sort keys exist
// and how they read a record.
type Schema[T any] struct {
	filters map[string]func(value string) Predicate[T]
	sorts   map[string]sortKey[T]
}

func NewSchema[T any]() *Schema[T] {
	return &Schema[T]{
		filters: map[string]func(string) Predicate[T]{},
		sorts:   map[string]sortKey[T]{},
	}
}

// Text registers a substring filter. With several fields the filter passes
// when any of them contains the value.
func (s *Schema[T]) Text(name string, fields ...func(T) string) *Schema[T] {
	s.filters[name] = func(v string) Predicate[T] {
		if len(fields) == 1 {
			return Contains(fields[0], v)
		}
		if strings.TrimSpace(v) == "" {
			return All[T]()
		}
		preds := make([]Predicate[T], len(fields))
		for i, f := range fields {
			preds[i] = Contains(f, v)
		}
		return AnyOf(preds...)
	}
	return s
}

// Enum registers an exact-match filter.
func (s *Schema[T]) Enum(name string, field func(T) string) *Schema[T] {
	s.filters[name] = func(v string) Predicate[T] { return Equals(field, v) }
	return s
}

// DateRange registers two filters, fromName and toName, bounding field.
// Unparseable bounds are ignored.
func (s *Schema[T]) DateRange(fromName, toName string, field func(T) dates.Date) *Schema[T] {
	bound := func(v string) dates.Date {
		t, ok := dates.Parse(v)
		if !ok {
			return dates.Date{}
		}
		return dates.FromTime(t)
	}
	s.filters[fromName] = func(v string) Predicate[T] { return DateRange(field, bound(v), dates.Date{}) }
	s.filters[toName] = func(v string) Predicate[T] { return DateRange(field, dates.Date{}, bound(v)) }
	return s
}

// Filter registers a custom predicate builder.
func (s *Schema[T]) Filter(name string, build func(value string) Predicate[T]) *Schema[T] {
	s.filters[name] = build
	return s
}

// Number registers a numeric sort key; def is the direction of the first
// toggle (amounts usually start descending).
func (s *Schema[T]) Number(key string, field func(T) float64, def Direction) *Schema[T] {
	s.sorts[key] = sortKey[T]{cmp: numberKey(field), def: def}
	return s
}

// Date registers a date sort key. Records without a date sort last.
func (s *Schema[T]) Date(key string, field func(T) dates.Date, def Direction) *Schema[T] {
	s.sorts[key] = sortKey[T]{
		cmp:       dateKey(field),
		nullsLast: func(r T) bool { return !field(r).Valid() },
		def:       def,
	}
	return s
}

// DefaultDirection of a registered sort key, Asc for unknown keys.
func (s *Schema[T]) DefaultDirection(key string) Direction {
	if k, ok := s.sorts[key]; ok && k.def != 0 {
		return k.def
	}
	return Asc
}

func (s *Schema[T]) HasSort(key string) bool {
	_, ok := s.sorts[key]
	return ok
}

// Predicates builds the active predicates for f. Unknown names are skipped.
func (s *Schema[T]) Predicates(f Filters) []Predicate[T] {
	var preds []Predicate[T]
	for name, v := range f {
		if v == "" {
			continue
		}
		if build, ok := s.filters[name]; ok {
			preds = append(preds, build(v))
		}
	}
	return preds
}

// View filters and sorts records. The input slice is never modified.
func (s *Schema[T]) View(records []T, f Filters, spec SortSpec) []T {
	var cmp func(a, b T) int
	if spec.Active() {
		if k, ok := s.sorts[spec.Key()]; ok {
			dir := spec.Direction()
			cmp = func(a, b T) int { return k.compare(a, b, dir) }
		}
	}
	return ComputeView(records, s.Predicates(f), cmp)
}

// ComputeView keeps records matching every predicate and, when cmp is not
// nil, stable-sorts them. It returns a new slice.
func ComputeView[T any](records []T, preds []Predicate[T], cmp func(a, b T) int) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		keep := true
		for _, p := range preds {
			if !p(r) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, r)
		}
	}
	if cmp != nil {
		slices.SortStableFunc(out, cmp)
	}
	return out
}

// Sum adds field over records without float drift.
func Sum[T any](records []T, field func(T) float64) float64 {
	return SumWhere(records, All[T](), field)
}

func SumWhere[T any](records []T, pred Predicate[T], field func(T) float64) float64 {
	total := decimal.Zero
	for _, r := range records {
		if pred(r) {
			total = total.Add(decimal.NewFromFloat(field(r)))
		}
	}
	return total.InexactFloat64()
}

func Count[T any](records []T, pred Predicate[T]) int {
	n := 0
	for _, r := range records {
		if pred(r) {
			n++
		}
	}
	return n
}
