// Package trip serves trips. Expense total and the truck and company
// revenue figures are derived on every write.
package trip

import (
	"strings"

	"fleet-backend/internal/apiutil"
	"fleet-backend/internal/dates"
	"fleet-backend/internal/export"
	"fleet-backend/internal/finance"
	"fleet-backend/internal/listview"
	"fleet-backend/internal/models"
	"fleet-backend/internal/resource"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var rules = apiutil.Rules{
	Required: []string{"load_date", "truck_number", "driver", "company", "company_rate", "driver_rate", "load_from", "unload_to"},
	Numbers: []string{
		"company_rate", "driver_rate", "extra_delivery", "advance",
		"diesel_cost", "trip_rate", "gp_toll", "advance_expenses", "other_exp",
	},
	Bools: []string{"return_load", "company_truck"},
}

// Derive fills total_exps, truck_revenue and company_revenue.
func Derive(t *models.Trip) {
	fig := finance.Trip(finance.TripInput{
		TripRate:        t.TripRate,
		CompanyRate:     t.CompanyRate,
		DieselCost:      t.DieselCost,
		GPToll:          t.GPToll,
		AdvanceExpenses: t.AdvanceExpenses,
		OtherExp:        t.OtherExp,
	})
	t.TotalExps = fig.TotalExps
	t.TruckRevenue = fig.TruckRevenue
	t.CompanyRevenue = fig.CompanyRevenue
}

func paymentStatus(field, s string) (string, error) {
	return apiutil.Enum(field, s, models.StatusUnpaid, models.StatusPaid, models.StatusUnpaid)
}

func prepare(_ *fiber.Ctx, t, _ *models.Trip) error {
	var err error
	if t.ReceivableStatus, err = paymentStatus("receivable_status", t.ReceivableStatus); err != nil {
		return err
	}
	if t.PayableStatus, err = paymentStatus("payable_status", t.PayableStatus); err != nil {
		return err
	}
	Derive(t)
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// countryQuery matches ?country= as a case-insensitive substring of the
// destination country or the unload point.
func countryQuery(c *fiber.Ctx, q *gorm.DB) *gorm.DB {
	country := strings.TrimSpace(c.Query(resource.CountryParam))
	if country == "" {
		return q
	}
	pattern := "%" + likeEscaper.Replace(strings.ToLower(country)) + "%"
	return q.Where("LOWER(destination_country) LIKE ? OR LOWER(unload_to) LIKE ?", pattern, pattern)
}

func isReceivable(t models.Trip) bool { return t.ReceivableStatus == models.StatusUnpaid }
func isPayable(t models.Trip) bool    { return t.PayableStatus == models.StatusUnpaid }

var schema = listview.NewSchema[models.Trip]().
	Text("truck_number", func(t models.Trip) string { return t.TruckNumber }).
	Text("driver", func(t models.Trip) string { return t.Driver }).
	Text("client", func(t models.Trip) string { return t.Client }).
	Enum("destination", func(t models.Trip) string { return t.DestinationCountry }).
	Enum("receivable_status", func(t models.Trip) string { return t.ReceivableStatus }).
	DateRange("from", "to", func(t models.Trip) dates.Date { return t.LoadDate }).
	Date("load_date", func(t models.Trip) dates.Date { return t.LoadDate }, listview.Asc).
	Number("company_revenue", func(t models.Trip) float64 { return t.CompanyRevenue }, listview.Desc).
	Number("truck_revenue", func(t models.Trip) float64 { return t.TruckRevenue }, listview.Desc)

var columns = []export.Column[models.Trip]{
	{Key: "trip_id", Value: func(t models.Trip) any { return t.ID }},
	{Key: "load_date", Value: func(t models.Trip) any { return t.LoadDate.String() }},
	{Key: "truck_number", Value: func(t models.Trip) any { return t.TruckNumber }},
	{Key: "driver", Value: func(t models.Trip) any { return t.Driver }},
	{Key: "company", Value: func(t models.Trip) any { return t.Company }},
	{Key: "client", Value: func(t models.Trip) any { return t.Client }},
	{Key: "destination_country", Value: func(t models.Trip) any { return t.DestinationCountry }},
	{Key: "load_from", Value: func(t models.Trip) any { return t.LoadFrom }},
	{Key: "unload_to", Value: func(t models.Trip) any { return t.UnloadTo }},
	{Key: "company_rate", Value: func(t models.Trip) any { return t.CompanyRate }},
	{Key: "trip_rate", Value: func(t models.Trip) any { return t.TripRate }},
	{Key: "total_exps", Value: func(t models.Trip) any { return t.TotalExps }},
	{Key: "truck_revenue", Value: func(t models.Trip) any { return t.TruckRevenue }},
	{Key: "company_revenue", Value: func(t models.Trip) any { return t.CompanyRevenue }},
	{Key: "tir_no", Value: func(t models.Trip) any { return t.TIRNo }},
	{Key: "receivable_status", Value: func(t models.Trip) any { return t.ReceivableStatus }},
	{Key: "payable_status", Value: func(t models.Trip) any { return t.PayableStatus }},
}

type Summary struct {
	Trips            int     `json:"trips"`
	TotalRevenue     float64 `json:"total_revenue"`
	TruckRevenue     float64 `json:"truck_revenue"`
	PendingPayments  int     `json:"pending_payments"`
	CompletedTrips   int     `json:"completed_trips"`
	PendingPayables  int     `json:"pending_payables"`
	ReceivableAmount float64 `json:"receivable_amount"`
}

func summarize(recs []models.Trip) any {
	return Summary{
		Trips:            len(recs),
		TotalRevenue:     listview.Sum(recs, func(t models.Trip) float64 { return t.CompanyRevenue }),
		TruckRevenue:     listview.Sum(recs, func(t models.Trip) float64 { return t.TruckRevenue }),
		PendingPayments:  listview.Count(recs, isReceivable),
		CompletedTrips:   listview.Count(recs, func(t models.Trip) bool { return t.ReceivableStatus == models.StatusPaid }),
		PendingPayables:  listview.Count(recs, isPayable),
		ReceivableAmount: listview.SumWhere(recs, isReceivable, func(t models.Trip) float64 { return t.CompanyRate }),
	}
}

var Trips = resource.New(resource.Config[models.Trip]{
	Entity:     "Trip",
	AuditType:  "trip",
	NumericKey: true,
	Order:      "load_date desc, id desc",
	Rules:      rules,
	ID:         func(t *models.Trip) uint { return t.ID },
	Key:        func(t *models.Trip) string { return t.TruckNumber + " " + t.LoadDate.String() },
	Prepare:    prepare,
	Query:      countryQuery,
	Schema:     schema,
	Export:     &resource.ExportSpec[models.Trip]{File: export.TripsFile, Sheet: "Trips", Columns: columns},
	Summary:    summarize,
})

// Register mounts the trip routes. write guards mutations.
func Register(router fiber.Router, write ...fiber.Handler) {
	Trips.Mount(router, "/trips", write...)
}
