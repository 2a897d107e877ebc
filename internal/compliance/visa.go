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

var visaColumns = []export.Column[models.Visa]{
	{Key: "id", Value: func(v models.Visa) any { return v.Code }},
	{Key: "date", Value: func(v models.Visa) any { return v.Date.String() }},
	{Key: "driver_name", Value: func(v models.Visa) any { return v.DriverName }},
	{Key: "truck_number", Value: func(v models.Visa) any { return v.TruckNumber }},
	{Key: "vehicle_under", Value: func(v models.Visa) any { return v.VehicleUnder }},
	{Key: "visa_type", Value: func(v models.Visa) any { return v.VisaType }},
	{Key: "amount", Value: func(v models.Visa) any { return v.Amount }},
	{Key: "processing_fee", Value: func(v models.Visa) any { return v.ProcessingFee }},
	{Key: "expiry_date", Value: func(v models.Visa) any { return v.ExpiryDate.String() }},
	{Key: "status", Value: func(v models.Visa) any { return v.Status }},
	{Key: "country", Value: func(v models.Visa) any { return v.Country }},
}

var Visas = resource.New(resource.Config[models.Visa]{
	Entity:    "Visa record",
	AuditType: "visa",
	KeyParam:  "id",
	KeyColumn: "code",
	Order:     "code asc",
	Rules: apiutil.Rules{
		Required: []string{"date", "driver_name", "truck_number", "country", "visa_type"},
		Numbers:  []string{"amount", "processing_fee"},
	},
	ID:  func(v *models.Visa) uint { return v.ID },
	Key: func(v *models.Visa) string { return v.Code },
	Prepare: func(_ *fiber.Ctx, v, _ *models.Visa) error {
		return prepareRecord(&v.ComplianceRecord, map[string]float64{"processing_fee": v.ProcessingFee})
	},
	Query: resource.ExactCountry("country"),
	Schema: listview.NewSchema[models.Visa]().
		Text("driver", func(v models.Visa) string { return v.DriverName }).
		Text("truck_number", func(v models.Visa) string { return v.TruckNumber }).
		Enum("status", func(v models.Visa) string { return v.Status }).
		Enum("visa_type", func(v models.Visa) string { return v.VisaType }).
		Date("expiry_date", func(v models.Visa) dates.Date { return v.ExpiryDate }, listview.Asc).
		Number("amount", func(v models.Visa) float64 { return v.Amount }, listview.Desc),
	Code: &resource.CodeSpec[models.Visa]{
		Prefix: VisaPrefix,
		Column: "code",
		Set:    func(v *models.Visa, code string) { v.Code = code },
	},
	Export: &resource.ExportSpec[models.Visa]{File: export.VisasFile, Sheet: "Visas", Columns: visaColumns},
	Summary: func(recs []models.Visa) any {
		return summarizeRecords(recs,
			func(v models.Visa) models.ComplianceRecord { return v.ComplianceRecord },
			func(v models.Visa) dates.Date { return v.ExpiryDate },
			dates.Today())
	},
})
