// Package maintenance serves truck maintenance records. VAT and total are
// derived from the payment split on every write.
package maintenance

import (
	"strconv"
	"strings"

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

var rules = apiutil.Rules{
	Required: []string{"date", "driver_name", "truck_number", "vehicle_under", "maintenance_detail", "status"},
	Numbers:  []string{"credit_card", "bank", "cash"},
	Bools:    []string{"include_vat"},
}

// Derive fills VAT and total from the payment split.
func Derive(m *models.Maintenance) {
	fig := finance.Maintenance(finance.MaintenanceInput{
		CreditCard: m.CreditCard,
		Bank:       m.Bank,
		Cash:       m.Cash,
		IncludeVAT: m.IncludeVAT,
	})
	m.VAT = fig.VAT
	m.Total = fig.Total
}

func prepare(_ *fiber.Ctx, m, _ *models.Maintenance) error {
	if err := apiutil.NonNegative(map[string]float64{
		"credit_card": m.CreditCard,
		"bank":        m.Bank,
		"cash":        m.Cash,
	}); err != nil {
		return err
	}
	if finance.MaintenanceSubtotal(m.CreditCard, m.Bank, m.Cash) <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "At least one payment amount must be greater than 0")
	}

	status, err := apiutil.Enum("status", m.Status, models.StatusUnpaid, models.StatusPaid, models.StatusUnpaid)
	if err != nil {
		return err
	}
	m.Status = status
	Derive(m)
	return nil
}

func isUnpaid(m models.Maintenance) bool { return m.Status == models.StatusUnpaid }

var schema = listview.NewSchema[models.Maintenance]().
	Text("truck_number", func(m models.Maintenance) string { return m.TruckNumber }).
	Text("driver", func(m models.Maintenance) string { return m.DriverName }).
	Filter("supplier", func(v string) listview.Predicate[models.Maintenance] {
		if v == "" || strings.EqualFold(v, "all") {
			return listview.All[models.Maintenance]()
		}
		return func(m models.Maintenance) bool { return strings.EqualFold(m.Supplier, v) }
	}).
	Enum("status", func(m models.Maintenance) string { return m.Status }).
	DateRange("from", "to", func(m models.Maintenance) dates.Date { return m.Date }).
	Date("date", func(m models.Maintenance) dates.Date { return m.Date }, listview.Asc).
	Number("total", func(m models.Maintenance) float64 { return m.Total }, listview.Desc)

var columns = []export.Column[models.Maintenance]{
	{Key: "id", Value: func(m models.Maintenance) any { return m.ID }},
	{Key: "date", Value: func(m models.Maintenance) any { return m.Date.String() }},
	{Key: "driver_name", Value: func(m models.Maintenance) any { return m.DriverName }},
	{Key: "truck_number", Value: func(m models.Maintenance) any { return m.TruckNumber }},
	{Key: "vehicle_under", Value: func(m models.Maintenance) any { return m.VehicleUnder }},
	{Key: "maintenance_detail", Value: func(m models.Maintenance) any { return m.MaintenanceDetail }},
	{Key: "credit_card", Value: func(m models.Maintenance) any { return m.CreditCard }},
	{Key: "bank", Value: func(m models.Maintenance) any { return m.Bank }},
	{Key: "cash", Value: func(m models.Maintenance) any { return m.Cash }},
	{Key: "vat", Value: func(m models.Maintenance) any { return m.VAT }},
	{Key: "total", Value: func(m models.Maintenance) any { return m.Total }},
	{Key: "status", Value: func(m models.Maintenance) any { return m.Status }},
	{Key: "supplier", Value: func(m models.Maintenance) any { return m.Supplier }},
}

type Summary struct {
	Count       int     `json:"count"`
	TotalCost   float64 `json:"total_cost"`
	UnpaidCount int     `json:"unpaid_count"`
	UnpaidTotal float64 `json:"unpaid_total"`
}

func summarize(recs []models.Maintenance) any {
	total := func(m models.Maintenance) float64 { return m.Total }
	return Summary{
		Count:       len(recs),
		TotalCost:   listview.Sum(recs, total),
		UnpaidCount: listview.Count(recs, isUnpaid),
		UnpaidTotal: listview.SumWhere(recs, isUnpaid, total),
	}
}

func ownerKey(m *models.Maintenance) string { return strconv.FormatUint(uint64(m.ID), 10) }

var Records = resource.New(resource.Config[models.Maintenance]{
	Entity:     "Maintenance record",
	AuditType:  "maintenance",
	NumericKey: true,
	Order:      "date desc, id desc",
	Rules:      rules,
	ID:         func(m *models.Maintenance) uint { return m.ID },
	Key:        ownerKey,
	Prepare:    prepare,
	Schema:     schema,
	Documents:  models.OwnerMaintenance,
	Export:     &resource.ExportSpec[models.Maintenance]{File: export.MaintenanceFile, Sheet: "Maintenance", Columns: columns},
	Summary:    summarize,
})

func init() {
	document.RegisterOwner("maintenance", document.Owner{
		Type:     models.OwnerMaintenance,
		NewModel: func() any { return &models.Maintenance{} },
		Column:   "id",
	})
}

// Register mounts the maintenance routes. write guards mutations.
func Register(router fiber.Router, write ...fiber.Handler) {
	router.Get("/maintenance/by-truck/:truck", Records.WhereHandler(func(c *fiber.Ctx) (string, []any, error) {
		truck, err := apiutil.NaturalKey(c, "truck")
		return "truck_number = ?", []any{truck}, err
	}))
	Records.Mount(router, "/maintenance", write...)
}
