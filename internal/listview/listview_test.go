package listview

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"fleet-backend/internal/dates"
)

type expense struct {
	id       int
	name     string
	category string
	status   string
	amount   float64
	expiry   dates.Date
}

func schema() *Schema[expense] {
	return NewSchema[expense]().
		Text("search", func(e expense) string { return e.name }).
		Enum("category", func(e expense) string { return e.category }).
		Enum("status", func(e expense) string { return e.status }).
		Number("amount", func(e expense) float64 { return e.amount }, Desc).
		Date("expiry", func(e expense) dates.Date { return e.expiry }, Asc)
}

func fixture() []expense {
	return []expense{
		{1, "Diesel Oman", "fuel", "pending", 300, dates.New(2025, time.March, 1)},
		{2, "Tyres", "maintenance", "completed", 900, dates.Date{}},
		{3, "diesel Saudi", "fuel", "completed", 450, dates.New(2025, time.January, 5)},
		{4, "Visa renewal", "visa", "pending", 120, dates.New(2024, time.December, 31)},
		{5, "Oil", "maintenance", "pending", 450, dates.Date{}},
	}
}

func ids(rs []expense) []int {
	out := make([]int, len(rs))
	for i, r := range rs {
		out[i] = r.id
	}
	return out
}

func TestPredicates(t *testing.T) {
	name := func(e expense) string { return e.name }
	recs := fixture()

	if got := ids(ComputeView(recs, []Predicate[expense]{Contains(name, "DIESEL")}, nil)); !reflect.DeepEqual(got, []int{1, 3}) {
		t.Errorf("contains = %v", got)
	}
	if got := len(ComputeView(recs, []Predicate[expense]{Contains(name, "  ")}, nil)); got != 5 {
		t.Errorf("blank needle kept %d", got)
	}
	cat := func(e expense) string { return e.category }
	if got := len(ComputeView(recs, []Predicate[expense]{Equals(cat, "all")}, nil)); got != 5 {
		t.Errorf("all kept %d", got)
	}

	var nilName *string
	p := ContainsPtr(func(expense) *string { return nilName }, "x")
	if p(recs[0]) {
		t.Error("nil field matched a non-empty needle")
	}

	expiry := func(e expense) dates.Date { return e.expiry }
	in2025 := DateRange(expiry, dates.New(2025, 1, 1), dates.New(2025, 12, 31))
	if got := ids(ComputeView(recs, []Predicate[expense]{in2025}, nil)); !reflect.DeepEqual(got, []int{1, 3}) {
		t.Errorf("date range = %v", got)
	}

	either := AnyOf(Contains(name, "oil"), Equals(cat, "visa"))
	if got := ids(ComputeView(recs, []Predicate[expense]{either}, nil)); !reflect.DeepEqual(got, []int{4, 5}) {
		t.Errorf("any of = %v", got)
	}
}

func TestFilterOrderIndependent(t *testing.T) {
	recs := fixture()
	byCategory := Equals(func(e expense) string { return e.category }, "fuel")
	byName := Contains(func(e expense) string { return e.name }, "saudi")

	a := ComputeView(ComputeView(recs, []Predicate[expense]{byCategory}, nil), []Predicate[expense]{byName}, nil)
	b := ComputeView(ComputeView(recs, []Predicate[expense]{byName}, nil), []Predicate[expense]{byCategory}, nil)
	c := ComputeView(recs, []Predicate[expense]{byName, byCategory}, nil)

	if !reflect.DeepEqual(ids(a), ids(b)) || !reflect.DeepEqual(ids(a), ids(c)) {
		t.Fatalf("results differ: %v %v %v", ids(a), ids(b), ids(c))
	}
	if !reflect.DeepEqual(ids(a), []int{3}) {
		t.Errorf("got %v", ids(a))
	}
}

func TestViewDoesNotMutateInput(t *testing.T) {
	recs := fixture()
	before := ids(recs)
	schema().View(recs, Filters{"status": "pending"}, ByField("amount", Desc))
	if !reflect.DeepEqual(ids(recs), before) {
		t.Errorf("input reordered: %v", ids(recs))
	}
}

func TestSortStableAndNullsLast(t *testing.T) {
	s := schema()
	recs := fixture()

	// 3 and 5 tie on 450; stable order keeps 3 first.
	if got := ids(s.View(recs, nil, ByField("amount", Desc))); !reflect.DeepEqual(got, []int{2, 3, 5, 1, 4}) {
		t.Errorf("amount desc = %v", got)
	}
	if got := ids(s.View(recs, nil, ByField("expiry", Asc))); !reflect.DeepEqual(got, []int{4, 3, 1, 2, 5}) {
		t.Errorf("expiry asc = %v", got)
	}
	if got := ids(s.View(recs, nil, ByField("expiry", Desc))); !reflect.DeepEqual(got, []int{1, 3, 4, 2, 5}) {
		t.Errorf("expiry desc = %v", got)
	}
	if got := ids(s.View(recs, nil, ByField("unknown", Asc))); !reflect.DeepEqual(got, []int{1, 2, 3, 4, 5}) {
		t.Errorf("unknown key should keep order, got %v", got)
	}
}

func TestSetSortCycles(t *testing.T) {
	c := NewController(schema())

	steps := []struct {
		key  string
		want string
	}{
		{"amount", "amount:desc"},
		{"amount", "amount:asc"},
		{"amount", "none"},
		{"expiry", "expiry:asc"},
		{"amount", "amount:desc"},
		{"nope", "none"},
	}
	for i, s := range steps {
		if got := c.SetSort(s.key).String(); got != s.want {
			t.Fatalf("step %d: SetSort(%q) = %s, want %s", i, s.key, got, s.want)
		}
	}
}

func TestSelectorMemoizes(t *testing.T) {
	calls := 0
	sel := NewSelector(func(recs []expense, f Filters, s SortSpec) []expense {
		calls++
		return schema().View(recs, f, s)
	})

	recs := fixture()
	f := Filters{"category": "fuel"}
	sel.Select(1, recs, f, None())
	sel.Select(1, recs, Filters{"category": "fuel", "search": ""}, None())
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
	sel.Select(1, recs, f, ByField("amount", Desc))
	sel.Select(2, recs, f, ByField("amount", Desc))
	if calls != 3 {
		t.Fatalf("calls = %d, want 3", calls)
	}
}

func TestSelectResultIsACopy(t *testing.T) {
	sel := NewSelector(schema().View)
	recs := fixture()
	f := Filters{"category": "fuel"}

	want := ids(sel.Select(1, recs, f, None()))
	first := sel.Select(1, recs, f, None())
	for i := range first {
		first[i] = expense{}
	}
	if got := ids(sel.Select(1, recs, f, None())); !reflect.DeepEqual(got, want) {
		t.Fatalf("cached view changed to %v, want %v", got, want)
	}
}

func TestControllerView(t *testing.T) {
	c := NewController(schema())
	c.SetRecords(fixture())
	c.SetFilter("status", "pending")
	c.SetSort("amount")

	if got := ids(c.View()); !reflect.DeepEqual(got, []int{5, 1, 4}) {
		t.Fatalf("view = %v", got)
	}

	c.Remove(func(e expense) bool { return e.id == 5 })
	if got := ids(c.View()); !reflect.DeepEqual(got, []int{1, 4}) {
		t.Fatalf("after remove = %v", got)
	}

	c.Upsert(expense{id: 1, name: "Diesel Oman", status: "pending", amount: 50}, func(e expense) bool { return e.id == 1 })
	if got := ids(c.View()); !reflect.DeepEqual(got, []int{4, 1}) {
		t.Fatalf("after upsert = %v", got)
	}
}

func TestAggregates(t *testing.T) {
	recs := fixture()
	amount := func(e expense) float64 { return e.amount }
	pending := Equals(func(e expense) string { return e.status }, "pending")

	if got := Sum(recs, amount); got != 2220 {
		t.Errorf("sum = %v", got)
	}
	if got := Count(recs, pending); got != 3 {
		t.Errorf("pending = %d", got)
	}
	if got := SumWhere(recs, pending, amount); got != 870 {
		t.Errorf("pending sum = %v", got)
	}
	cents := []expense{{amount: 0.1}, {amount: 0.2}}
	if got := Sum(cents, amount); got != 0.3 {
		t.Errorf("cents = %v", got)
	}
}

func TestDeleteFlow(t *testing.T) {
	c := NewController(schema())
	c.SetRecords(fixture())
	var flow DeleteFlow[expense]

	if err := flow.Confirm(context.Background(), nil, nil); !errors.Is(err, ErrNoCandidate) {
		t.Fatalf("confirm while idle: %v", err)
	}

	flow.Ask(fixture()[0])
	flow.Cancel()
	if flow.State() != Idle || len(c.Records()) != 5 {
		t.Fatal("cancel must not touch the list")
	}

	boom := errors.New("boom")
	remove := func(e expense) { c.Remove(func(r expense) bool { return r.id == e.id }) }

	flow.Ask(fixture()[0])
	err := flow.Confirm(context.Background(), func(context.Context, expense) error { return boom }, remove)
	if !errors.Is(err, boom) || flow.State() != ConfirmPending || flow.Err() == nil {
		t.Fatalf("failed confirm: state=%v err=%v", flow.State(), flow.Err())
	}
	if len(c.Records()) != 5 {
		t.Fatal("list changed after remote failure")
	}

	err = flow.Confirm(context.Background(), func(context.Context, expense) error { return nil }, remove)
	if err != nil || flow.State() != Idle {
		t.Fatalf("confirm: %v state=%v", err, flow.State())
	}
	if len(c.Records()) != 4 {
		t.Fatalf("records = %d, want 4", len(c.Records()))
	}
}
