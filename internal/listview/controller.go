package listview

import (
	"slices"
	"sync"
)

// Selector memoizes a view keyed by (records version, filters, sort).
type Selector[T any] struct {
	compute func(records []T, f Filters, s SortSpec) []T

	mu    sync.Mutex
	valid bool
	key   selectorKey
	view  []T
}

type selectorKey struct {
	version uint64
	filters string
	sort    SortSpec
}

func NewSelector[T any](compute func(records []T, f Filters, s SortSpec) []T) *Selector[T] {
	return &Selector[T]{compute: compute}
}

// Select returns the cached view when the tuple is unchanged. Each call
// gets its own copy of the view.
func (s *Selector[T]) Select(version uint64, records []T, f Filters, spec SortSpec) []T {
	k := selectorKey{version: version, filters: f.key(), sort: spec}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.valid || s.key != k {
		s.view = s.compute(records, f, spec)
		s.key = k
		s.valid = true
	}
	return slices.Clone(s.view)
}

// Controller holds one list screen's state: the records, the filter values
// and the active sort.
type Controller[T any] struct {
	schema *Schema[T]
	sel    *Selector[T]

	mu      sync.RWMutex
	records []T
	version uint64
	filters Filters
	sort    SortSpec
}

func NewController[T any](schema *Schema[T]) *Controller[T] {
	return &Controller[T]{
		schema:  schema,
		sel:     NewSelector(schema.View),
		filters: Filters{},
	}
}

// SetRecords replaces the collection, typically after a fetch.
func (c *Controller[T]) SetRecords(records []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = append([]T(nil), records...)
	c.version++
}

func (c *Controller[T]) Records() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]T(nil), c.records...)
}

// Remove drops every record matching match and reports how many went.
func (c *Controller[T]) Remove(match func(T) bool) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := make([]T, 0, len(c.records))
	for _, r := range c.records {
		if !match(r) {
			kept = append(kept, r)
		}
	}
	n := len(c.records) - len(kept)
	if n > 0 {
		c.records = kept
		c.version++
	}
	return n
}

// Upsert replaces the first record matching match, or appends r.
func (c *Controller[T]) Upsert(r T, match func(T) bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	recs := append([]T(nil), c.records...)
	replaced := false
	for i := range recs {
		if match(recs[i]) {
			recs[i] = r
			replaced = true
			break
		}
	}
	if !replaced {
		recs = append(recs, r)
	}
	c.records = recs
	c.version++
}

func (c *Controller[T]) SetFilter(name, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	f := make(Filters, len(c.filters)+1)
	for k, v := range c.filters {
		f[k] = v
	}
	if value == "" {
		delete(f, name)
	} else {
		f[name] = value
	}
	c.filters = f
}

// SetSort is the single sort setter. Clicking the active key cycles it,
// clicking another key replaces it.
func (c *Controller[T]) SetSort(key string) SortSpec {
	c.mu.Lock()
	defer c.mu.Unlock()
	if key == "" || !c.schema.HasSort(key) {
		c.sort = None()
		return c.sort
	}
	c.sort = c.sort.Toggle(key, c.schema.DefaultDirection(key))
	return c.sort
}

func (c *Controller[T]) Sort() SortSpec {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sort
}

// ApplySort sets spec directly, e.g. from a command-line flag.
func (c *Controller[T]) ApplySort(spec SortSpec) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sort = spec
}

// View is the filtered, sorted table. It is recomputed only when the
// records, filters or sort changed since the last call.
func (c *Controller[T]) View() []T {
	c.mu.RLock()
	version, records, f, spec := c.version, c.records, c.filters, c.sort
	c.mu.RUnlock()
	return c.sel.Select(version, records, f, spec)
}
