package listview

import (
	"fmt"

	"fleet-backend/internal/dates"
)

type Direction int

const (
	Asc Direction = iota + 1
	Desc
)

func (d Direction) String() string {
	switch d {
	case Asc:
		return "asc"
	case Desc:
		return "desc"
	}
	return ""
}

func (d Direction) opposite() Direction {
	if d == Asc {
		return Desc
	}
	return Asc
}

// ParseDirection accepts "asc" and "desc".
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "asc":
		return Asc, nil
	case "desc":
		return Desc, nil
	}
	return 0, fmt.Errorf("unknown sort direction %q", s)
}

// SortSpec is either no sort or a single key with a direction. The zero
// value is None.
type SortSpec struct {
	key string
	dir Direction
}

func None() SortSpec { return SortSpec{} }

func ByField(key string, dir Direction) SortSpec {
	if key == "" {
		return None()
	}
	if dir != Desc {
		dir = Asc
	}
	return SortSpec{key: key, dir: dir}
}

func (s SortSpec) Active() bool         { return s.key != "" }
func (s SortSpec) Key() string          { return s.key }
func (s SortSpec) Direction() Direction { return s.dir }

func (s SortSpec) String() string {
	if !s.Active() {
		return "none"
	}
	return s.key + ":" + s.dir.String()
}

// Toggle is one click on a sort header. A different key starts at first;
// the active key goes first -> opposite -> none.
func (s SortSpec) Toggle(key string, first Direction) SortSpec {
	if s.key != key {
		return ByField(key, first)
	}
	if s.dir == first {
		return ByField(key, first.opposite())
	}
	return None()
}

// comparator returns <0, 0, >0 for ascending order of a and b.
type comparator[T any] func(a, b T) int

type sortKey[T any] struct {
	cmp comparator[T]
	// Dates without a value go last in both directions.
	nullsLast func(T) bool
	def       Direction
}

func numberKey[T any](field func(T) float64) comparator[T] {
	return func(a, b T) int {
		x, y := field(a), field(b)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	}
}

func dateKey[T any](field func(T) dates.Date) comparator[T] {
	return func(a, b T) int {
		x, y := field(a).Time, field(b).Time
		switch {
		case x.Before(y):
			return -1
		case x.After(y):
			return 1
		}
		return 0
	}
}

func (k sortKey[T]) compare(a, b T, dir Direction) int {
	if k.nullsLast != nil {
		na, nb := k.nullsLast(a), k.nullsLast(b)
		switch {
		case na && nb:
			return 0
		case na:
			return 1
		case nb:
			return -1
		}
	}
	c := k.cmp(a, b)
	if dir == Desc {
		c = -c
	}
	return c
}
