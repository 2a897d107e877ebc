package compliance

import (
	"fleet-backend/internal/apiutil"
	"fleet-backend/internal/dates"
	"fleet-backend/internal/export"
	"fleet-backend/internal/listview"
	"fleet-backend/internal/models"
	"fleet-backend/internal/resource"

	"github.com/gofiber/fiber/v2"
)

var tirColumns = []export.Column[models.TIRDocument]{
	{Key: "id", Value: func(t models.TIRDocument) any { return t.Code }},
	{Key: "number", Value: func(t models.TIRDocument) any { return t.Number }},
	{Key: "issue_date", Value: func(t models.TIRDocument) any { return t.IssueDate.String() }},
	{Key: "expiry_date", Value: func(t models.TIRDocument) any { return t.ExpiryDate.String() }},
	{Key: "truck_number", Value: func(t models.TIRDocument) any { return t.TruckNumber }},
	{Key: "driver_name", Value: func(t models.TIRDocument) any { return t.DriverName }},
	{Key: "status", Value: func(t models.TIRDocument) any { return t.Status }},
	{Key: "country", Value: func(t models.TIRDocument) any { return t.Country }},
	{Key: "customs_office", Value: func(t models.TIRDocument) any { return t.CustomsOffice }},
	{Key: "remarks", Value: func(t models.TIRDocument) any { return t.Remarks }},
}

func prepareTIR(_ *fiber.Ctx, t, _ *models.TIRDocument) error {
	status, err := apiutil.Enum("status", t.Status, models.TIRPending,
		models.TIRActive, models.TIRExpired, models.TIRPending)
	if err != nil {
		return err
	}
	t.Status = status
	if t.IssueDate.Valid() && t.ExpiryDate.Valid() && t.ExpiryDate.Before(t.IssueDate) {
		return fiber.NewError(fiber.StatusBadRequest, "expiry_date must not be before issue_date")
	}
	return nil
}

type TIRSummary struct {
	Count        int `json:"count"`
	Active       int `json:"active"`
	Expired      int `json:"expired"`
	Pending      int `json:"pending"`
	ExpiringSoon int `json:"expiring_soon"`
}

func summarizeTIR(recs []models.TIRDocument, today dates.Date) TIRSummary {
	status := func(s string) listview.Predicate[models.TIRDocument] {
		return func(t models.TIRDocument) bool { return t.Status == s }
	}
	return TIRSummary{
		Count:   len(recs),
		Active:  listview.Count(recs, status(models.TIRActive)),
		Expired: listview.Count(recs, status(models.TIRExpired)),
		Pending: listview.Count(recs, status(models.TIRPending)),
		ExpiringSoon: listview.Count(recs, func(t models.TIRDocument) bool {
			return t.Status == models.TIRActive && expiringSoon(t.ExpiryDate, today)
		}),
	}
}

var TIRDocuments = resource.New(resource.Config[models.TIRDocument]{
	Entity:    "TIR record",
	AuditType: "tir",
	KeyParam:  "id",
	KeyColumn: "code",
	Order:     "code asc",
	Rules: apiutil.Rules{
		Required: []string{"number", "issue_date", "expiry_date", "truck_number", "driver_name", "status", "country", "customs_office"},
	},
	ID:      func(t *models.TIRDocument) uint { return t.ID },
	Key:     func(t *models.TIRDocument) string { return t.Code },
	Prepare: prepareTIR,
	Query:   resource.ExactCountry("country"),
	Schema: listview.NewSchema[models.TIRDocument]().
		Text("number", func(t models.TIRDocument) string { return t.Number }).
		Text("truck_number", func(t models.TIRDocument) string { return t.TruckNumber }).
		Text("driver", func(t models.TIRDocument) string { return t.DriverName }).
		Enum("status", func(t models.TIRDocument) string { return t.Status }).
		Date("expiry_date", func(t models.TIRDocument) dates.Date { return t.ExpiryDate }, listview.Asc).
		Date("issue_date", func(t models.TIRDocument) dates.Date { return t.IssueDate }, listview.Desc),
	Code: &resource.CodeSpec[models.TIRDocument]{
		Prefix: TIRPrefix,
		Column: "code",
		Set:    func(t *models.TIRDocument, code string) { t.Code = code },
	},
	Export: &resource.ExportSpec[models.TIRDocument]{File: export.TIRFile, Sheet: "TIR", Columns: tirColumns},
	Summary: func(recs []models.TIRDocument) any {
		return summarizeTIR(recs, dates.Today())
	},
})
