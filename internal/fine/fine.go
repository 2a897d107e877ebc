// Package fine serves traffic and customs fines. Each fine gets a code like
// F001 and its total is amount plus penalty.
package fine

import (
	"fleet-backend/internal/apiutil"
	"fleet-backend/internal/dates"
	"fleet-backend/internal/document"
	"fleet-backend/internal/export"
	"fleet-backend/internal/finance"
	"fleet-backend/internal/listview"
	"fleet-backend/internal/models"
	"fleet-backend/internal/resource"

	"github.com/gofiber/fiber/v2"
)

const CodePrefix = "F"

var rules = apiutil.Rules{
	Required: []string{"date", "driver_name", "truck_number", "country", "fine_type", "amount"},
	Numbers:  []string{"amount", "penalty_amount"},
	Bools:    []string{"driver_fault"},
}

func prepare(_ *fiber.Ctx, f, _ *models.Fine) error {
	if err := apiutil.NonNegative(map[string]float64{
		"amount":         f.Amount,
		"penalty_amount": f.PenaltyAmount,
	}); err != nil {
		return err
	}
	status, err := apiutil.Enum("status", f.Status, models.RecordPending,
		models.RecordPending, models.RecordPaid, models.RecordOverdue)
	if err != nil {
		return err
	}
	f.Status = status
	f.Total = finance.FineTotal(f.Amount, f.PenaltyAmount)
	return nil
}

func isUnpaid(f models.Fine) bool { return f.Status != models.RecordPaid }

var schema = listview.NewSchema[models.Fine]().
	Text("driver", func(f models.Fine) string { return f.DriverName }).
	Text("truck_number", func(f models.Fine) string { return f.TruckNumber }).
	Enum("status", func(f models.Fine) string { return f.Status }).
	Enum("fine_type", func(f models.Fine) string { return f.FineType }).
	DateRange("from", "to", func(f models.Fine) dates.Date { return f.Date }).
	Date("date", func(f models.Fine) dates.Date { return f.Date }, listview.Desc).
	Date("due_date", func(f models.Fine) dates.Date { return f.DueDate }, listview.Asc).
	Number("total", func(f models.Fine) float64 { return f.Total }, listview.Desc)

var columns = []export.Column[models.Fine]{
	{Key: "id", Value: func(f models.Fine) any { return f.Code }},
	{Key: "date", Value: func(f models.Fine) any { return f.Date.String() }},
	{Key: "driver_name", Value: func(f models.Fine) any { return f.DriverName }},
	{Key: "truck_number", Value: func(f models.Fine) any { return f.TruckNumber }},
	{Key: "vehicle_under", Value: func(f models.Fine) any { return f.VehicleUnder }},
	{Key: "fine_type", Value: func(f models.Fine) any { return f.FineType }},
	{Key: "details", Value: func(f models.Fine) any { return f.Details }},
	{Key: "amount", Value: func(f models.Fine) any { return f.Amount }},
	{Key: "penalty_amount", Value: func(f models.Fine) any { return f.PenaltyAmount }},
	{Key: "total", Value: func(f models.Fine) any { return f.Total }},
	{Key: "driver_fault", Value: func(f models.Fine) any { return f.DriverFault }},
	{Key: "due_date", Value: func(f models.Fine) any { return f.DueDate.String() }},
	{Key: "status", Value: func(f models.Fine) any { return f.Status }},
	{Key: "country", Value: func(f models.Fine) any { return f.Country }},
}

type Summary struct {
	Count         int     `json:"count"`
	TotalAmount   float64 `json:"total_amount"`
	Pending       int     `json:"pending"`
	UnpaidAmount  float64 `json:"unpaid_amount"`
	DriverFaults  int     `json:"driver_faults"`
	CompanyFaults int     `json:"company_faults"`
}

func summarize(recs []models.Fine) any {
	total := func(f models.Fine) float64 { return f.Total }
	return Summary{
		Count:         len(recs),
		TotalAmount:   listview.Sum(recs, total),
		Pending:       listview.Count(recs, isUnpaid),
		UnpaidAmount:  listview.SumWhere(recs, isUnpaid, total),
		DriverFaults:  listview.Count(recs, func(f models.Fine) bool { return f.DriverFault }),
		CompanyFaults: listview.Count(recs, func(f models.Fine) bool { return !f.DriverFault }),
	}
}

var Fines = resource.New(resource.Config[models.Fine]{
	Entity:    "Fine record",
	AuditType: "fine",
	KeyParam:  "id",
	KeyColumn: "code",
	Order:     "code asc",
	Rules:     rules,
	ID:        func(f *models.Fine) uint { return f.ID },
	Key:       func(f *models.Fine) string { return f.Code },
	Prepare:   prepare,
	Query:     resource.ExactCountry("country"),
	Schema:    schema,
	Code: &resource.CodeSpec[models.Fine]{
		Prefix: CodePrefix,
		Column: "code",
		Set:    func(f *models.Fine, code string) { f.Code = code },
	},
	Documents: models.OwnerFine,
	Export:    &resource.ExportSpec[models.Fine]{File: export.FinesFile, Sheet: "Fines", Columns: columns},
	Summary:   summarize,
})

func init() {
	document.RegisterOwner("fines", document.Owner{
		Type:     models.OwnerFine,
		NewModel: func() any { return &models.Fine{} },
		Column:   "code",
	})
}

// unpaidDriverFault lists the driver's own unpaid fines matching one column.
func unpaidDriverFault(column, param string) func(c *fiber.Ctx) (string, []any, error) {
	return func(c *fiber.Ctx) (string, []any, error) {
		v, err := apiutil.NaturalKey(c, param)
		return column + " = ? AND driver_fault = ? AND status <> ?", []any{v, true, models.RecordPaid}, err
	}
}

// Register mounts the fine routes. write guards mutations.
func Register(router fiber.Router, write ...fiber.Handler) {
	router.Get("/fines/by-truck/:truck", Fines.WhereHandler(unpaidDriverFault("truck_number", "truck")))
	router.Get("/fines/by-driver/:driver", Fines.WhereHandler(unpaidDriverFault("driver_name", "driver")))
	router.Get("/fines/company-fault", Fines.WhereHandler(func(*fiber.Ctx) (string, []any, error) {
		return "driver_fault = ? AND status <> ?", []any{false, models.RecordPaid}, nil
	}))
	Fines.Mount(router, "/fines", write...)
}
