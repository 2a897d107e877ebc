package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"sort"

	"fleet-backend/internal/accounts"
	"fleet-backend/internal/compliance"
	"fleet-backend/internal/fetch"
	"fleet-backend/internal/fine"
	"fleet-backend/internal/fleet"
	"fleet-backend/internal/inventory"
	"fleet-backend/internal/listview"
	"fleet-backend/internal/maintenance"
	"fleet-backend/internal/partner"
	"fleet-backend/internal/resource"
	"fleet-backend/internal/staff"
	"fleet-backend/internal/trip"
)

var errCancelled = errors.New("cancelled")

type listOptions struct {
	filters map[string]string
	sort    string
	dir     string
}

type table struct {
	header []string
	rows   [][]string
}

// screen is one list of the back office as seen from the terminal.
type screen interface {
	path() string
	exportFile() string
	list(ctx context.Context, api *fetch.APIClient, opts listOptions) (table, error)
	remove(ctx context.Context, api *fetch.APIClient, key string, confirm func(string) bool) error
}

type resourceScreen[T any] struct {
	at  string
	res *resource.Resource[T]
}

func (s resourceScreen[T]) path() string { return "/api" + s.at }

func (s resourceScreen[T]) exportFile() string { return s.res.Config().Export.File }

func (s resourceScreen[T]) schema() *listview.Schema[T] {
	if sc := s.res.Config().Schema; sc != nil {
		return sc
	}
	return listview.NewSchema[T]()
}

// fetch falls back to an empty list when the API cannot be reached.
func (s resourceScreen[T]) fetch(ctx context.Context, api *fetch.APIClient) []T {
	recs := []T{}
	if err := api.Get(ctx, s.path(), &recs); err != nil {
		log.Printf("[WARN] %s could not be loaded: %v", s.at, err)
		return []T{}
	}
	return recs
}

func sortSpec[T any](schema *listview.Schema[T], key, dir string) (listview.SortSpec, error) {
	if key == "" {
		return listview.None(), nil
	}
	if !schema.HasSort(key) {
		return listview.None(), fmt.Errorf("unknown sort key %q", key)
	}
	if dir == "" {
		return listview.ByField(key, schema.DefaultDirection(key)), nil
	}
	d, err := listview.ParseDirection(dir)
	if err != nil {
		return listview.None(), err
	}
	return listview.ByField(key, d), nil
}

func (s resourceScreen[T]) list(ctx context.Context, api *fetch.APIClient, opts listOptions) (table, error) {
	schema := s.schema()
	spec, err := sortSpec(schema, opts.sort, opts.dir)
	if err != nil {
		return table{}, err
	}

	ctl := listview.NewController(schema)
	ctl.SetRecords(s.fetch(ctx, api))
	for k, v := range opts.filters {
		ctl.SetFilter(k, v)
	}
	ctl.ApplySort(spec)

	cols := s.res.Config().Export.Columns
	t := table{header: make([]string, len(cols))}
	for i, c := range cols {
		t.header[i] = c.Key
	}
	for _, r := range ctl.View() {
		row := make([]string, len(cols))
		for i, c := range cols {
			row[i] = fmt.Sprint(c.Value(r))
		}
		t.rows = append(t.rows, row)
	}
	return t, nil
}

// remove asks before deleting and drops the record locally only after the
// API accepted the delete.
func (s resourceScreen[T]) remove(ctx context.Context, api *fetch.APIClient, key string, confirm func(string) bool) error {
	ctl := listview.NewController(s.schema())
	ctl.SetRecords(s.fetch(ctx, api))

	match := func(r T) bool { return s.res.KeyOf(&r) == key }
	var flow listview.DeleteFlow[T]
	for _, r := range ctl.Records() {
		if match(r) {
			flow.Ask(r)
			break
		}
	}
	if _, ok := flow.Candidate(); !ok {
		return fmt.Errorf("%s %q not found", s.res.Config().Entity, key)
	}
	if !confirm(fmt.Sprintf("Delete %s %s?", s.res.Config().Entity, key)) {
		flow.Cancel()
		return errCancelled
	}
	return flow.Confirm(ctx,
		func(ctx context.Context, _ T) error {
			return api.Delete(ctx, s.path()+"/"+url.PathEscape(key))
		},
		func(T) { ctl.Remove(match) })
}

func on[T any](at string, res *resource.Resource[T]) screen {
	return resourceScreen[T]{at: at, res: res}
}

var screens = map[string]screen{
	"employees":       on("/employees", staff.Employees),
	"other-employees": on("/other-employees", staff.OutsideEmployees),
	"trucks":          on("/trucks", fleet.Trucks),
	"other-trucks":    on("/other-trucks", fleet.OutsideTrucks),
	"trailers":        on("/trailers", fleet.Trailers),
	"other-trailers":  on("/other-trailers", fleet.OutsideTrailers),
	"clients":         on("/clients", partner.Clients),
	"suppliers":       on("/suppliers", partner.Suppliers),
	"maintenance":     on("/maintenance", maintenance.Records),
	"trips":           on("/trips", trip.Trips),
	"fines":           on("/fines", fine.Fines),
	"visa":            on("/visa", compliance.Visas),
	"insurance":       on("/insurance", compliance.Insurance),
	"tir":             on("/tir", compliance.TIRDocuments),
	"parts":           on("/parts", inventory.Parts),
	"income":          on("/income", accounts.Incomes),
	"expenses":        on("/expenses", accounts.Expenses),
	"salaries":        on("/salaries", accounts.Salaries),
	"investor-shares": on("/investor-shares", accounts.InvestorShares),
	"tir-sold":        on("/tir-sold", accounts.TIRSales),
	"profit-master":   on("/profit-master", accounts.ProfitMasters),
}

func screenNames() []string {
	names := make([]string, 0, len(screens))
	for n := range screens {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func lookupScreen(name string) (screen, error) {
	s, ok := screens[name]
	if !ok {
		return nil, fmt.Errorf("unknown list %q", name)
	}
	return s, nil
}
