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

var insuranceColumns = []export.Column[models.Insurance]{
	{Key: "id", Value: func(i models.Insurance) any { return i.Code }},
	{Key: "date", Value: func(i models.Insurance) any { return i.Date.String() }},
	{Key: "driver_name", Value: func(i models.Insurance) any { return i.DriverName }},
	{Key: "truck_number", Value: func(i models.Insurance) any { return i.TruckNumber }},
	{Key: "vehicle_under", Value: func(i models.Insurance) any { return i.VehicleUnder }},
	{Key: "insurance_type", Value: func(i models.Insurance) any { return i.InsuranceType }},
	{Key: "policy_number", Value: func(i models.Insurance) any { return i.PolicyNumber }},
	{Key: "amount", Value: func(i models.Insurance) any { return i.Amount }},
	{Key: "coverage_amount", Value: func(i models.Insurance) any { return i.CoverageAmount }},
	{Key: "expiry_date", Value: func(i models.Insurance) any { return i.ExpiryDate.String() }},
	{Key: "status", Value: func(i models.Insurance) any { return i.Status }},
	{Key: "country", Value: func(i models.Insurance) any { return i.Country }},
}

var Insurance = resource.New(resource.Config[models.Insurance]{
	Entity:    "Insurance record",
	AuditType: "insurance",
	KeyParam:  "id",
	KeyColumn: "code",
	Order:     "code asc",
	Rules: apiutil.Rules{
		Required: []string{"date", "driver_name", "truck_number", "country", "insurance_type", "policy_number"},
		Numbers:  []string{"amount", "coverage_amount"},
	},
	ID:  func(i *models.Insurance) uint { return i.ID },
	Key: func(i *models.Insurance) string { return i.Code },
	Prepare: func(_ *fiber.Ctx, i, _ *models.Insurance) error {
		return prepareRecord(&i.ComplianceRecord, map[string]float64{"coverage_amount": i.CoverageAmount})
	},
	Query: resource.ExactCountry("country"),
	Schema: listview.NewSchema[models.Insurance]().
		Text("driver", func(i models.Insurance) string { return i.DriverName }).
		Text("truck_number", func(i models.Insurance) string { return i.TruckNumber }).
		Text("policy_number", func(i models.Insurance) string { return i.PolicyNumber }).
		Enum("status", func(i models.Insurance) string { return i.Status }).
		Date("expiry_date", func(i models.Insurance) dates.Date { return i.ExpiryDate }, listview.Asc).
		Number("coverage_amount", func(i models.Insurance) float64 { return i.CoverageAmount }, listview.Desc),
	Code: &resource.CodeSpec[models.Insurance]{
		Prefix: InsurancePrefix,
		Column: "code",
		Set:    func(i *models.Insurance, code string) { i.Code = code },
	},
	Export: &resource.ExportSpec[models.Insurance]{File: export.InsuranceFile, Sheet: "Insurance", Columns: insuranceColumns},
	Summary: func(recs []models.Insurance) any {
		return summarizeRecords(recs,
			func(i models.Insurance) models.ComplianceRecord { return i.ComplianceRecord },
			func(i models.Insurance) dates.Date { return i.ExpiryDate },
			dates.Today())
	},
})
