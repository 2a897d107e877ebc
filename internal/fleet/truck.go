package fleet

import (
	"fleet-backend/internal/apiutil"
	"fleet-backend/internal/dates"
	"fleet-backend/internal/export"
	"fleet-backend/internal/listview"
	"fleet-backend/internal/models"
	"fleet-backend/internal/resource"
)

var truckSchema = listview.NewSchema[models.Truck]().
	Text("truck_number", func(t models.Truck) string { return t.TruckNumber }).
	Text("driver", func(t models.Truck) string { return t.Driver }).
	Enum("country", func(t models.Truck) string { return t.Country }).
	Enum("company", func(t models.Truck) string { return t.VehicleUnder }).
	Date("mulkiya_exp", func(t models.Truck) dates.Date { return t.MulkiyaExp }, listview.Asc).
	Date("ins_exp", func(t models.Truck) dates.Date { return t.InsExp }, listview.Asc).
	Number("truck_value", func(t models.Truck) float64 { return t.TruckValue }, listview.Desc)

var truckColumns = []export.Column[models.Truck]{
	{Key: "truck_number", Value: func(t models.Truck) any { return t.TruckNumber }},
	{Key: "driver", Value: func(t models.Truck) any { return t.Driver }},
	{Key: "year", Value: func(t models.Truck) any { return t.Year }},
	{Key: "vehicle_under", Value: func(t models.Truck) any { return t.VehicleUnder }},
	{Key: "trailer_no", Value: func(t models.Truck) any { return t.TrailerNo }},
	{Key: "country", Value: func(t models.Truck) any { return t.Country }},
	{Key: "mulkiya_exp", Value: func(t models.Truck) any { return t.MulkiyaExp.String() }},
	{Key: "ins_exp", Value: func(t models.Truck) any { return t.InsExp.String() }},
	{Key: "truck_value", Value: func(t models.Truck) any { return t.TruckValue }},
}

type TruckSummary struct {
	Total      int            `json:"total"`
	TotalValue float64        `json:"total_value"`
	ByCountry  map[string]int `json:"by_country"`
	ByCompany  map[string]int `json:"by_company"`
}

func summarizeTrucks(recs []models.Truck) any {
	s := TruckSummary{
		Total:      len(recs),
		TotalValue: listview.Sum(recs, func(t models.Truck) float64 { return t.TruckValue }),
		ByCountry:  map[string]int{},
		ByCompany:  map[string]int{},
	}
	for _, t := range recs {
		if t.Country != "" {
			s.ByCountry[t.Country]++
		}
		if t.VehicleUnder != "" {
			s.ByCompany[t.VehicleUnder]++
		}
	}
	return s
}

var Trucks = resource.New(resource.Config[models.Truck]{
	Entity:    "Truck",
	AuditType: "truck",
	KeyParam:  "number",
	KeyColumn: "truck_number",
	Order:     "truck_number asc",
	Rules: apiutil.Rules{
		Required: []string{"truck_number", "year", "vehicle_under", "country"},
		Numbers:  []string{"truck_value"},
		Ints:     []string{"year"},
	},
	ID:        func(t *models.Truck) uint { return t.ID },
	Key:       func(t *models.Truck) string { return t.TruckNumber },
	Schema:    truckSchema,
	Documents: models.OwnerTruck,
	Export:    &resource.ExportSpec[models.Truck]{File: export.TrucksFile, Sheet: "Trucks", Columns: truckColumns},
	Summary:   summarizeTrucks,
})

var outsideTruckColumns = []export.Column[models.OutsideTruck]{
	{Key: "truck_number", Value: func(t models.OutsideTruck) any { return t.TruckNumber }},
	{Key: "owner", Value: func(t models.OutsideTruck) any { return t.Owner }},
	{Key: "driver", Value: func(t models.OutsideTruck) any { return t.Driver }},
	{Key: "year", Value: func(t models.OutsideTruck) any { return t.Year }},
	{Key: "vehicle_under", Value: func(t models.OutsideTruck) any { return t.VehicleUnder }},
	{Key: "trailer_no", Value: func(t models.OutsideTruck) any { return t.TrailerNo }},
	{Key: "country", Value: func(t models.OutsideTruck) any { return t.Country }},
	{Key: "mulkiya_exp", Value: func(t models.OutsideTruck) any { return t.MulkiyaExp.String() }},
	{Key: "ins_exp", Value: func(t models.OutsideTruck) any { return t.InsExp.String() }},
}

var OutsideTrucks = resource.New(resource.Config[models.OutsideTruck]{
	Entity:    "Outside truck",
	AuditType: "outside_truck",
	KeyParam:  "number",
	KeyColumn: "truck_number",
	Order:     "truck_number asc",
	Rules: apiutil.Rules{
		Required: []string{"truck_number", "owner"},
		Ints:     []string{"year"},
	},
	ID:  func(t *models.OutsideTruck) uint { return t.ID },
	Key: func(t *models.OutsideTruck) string { return t.TruckNumber },
	Schema: listview.NewSchema[models.OutsideTruck]().
		Text("truck_number", func(t models.OutsideTruck) string { return t.TruckNumber }).
		Text("driver", func(t models.OutsideTruck) string { return t.Driver }).
		Enum("owner", func(t models.OutsideTruck) string { return t.Owner }).
		Enum("country", func(t models.OutsideTruck) string { return t.Country }).
		Date("mulkiya_exp", func(t models.OutsideTruck) dates.Date { return t.MulkiyaExp }, listview.Asc).
		Date("ins_exp", func(t models.OutsideTruck) dates.Date { return t.InsExp }, listview.Asc),
	Documents: models.OwnerOutsideTruck,
	Export:    &resource.ExportSpec[models.OutsideTruck]{File: export.OutsideTrucksFile, Sheet: "Outside Trucks", Columns: outsideTruckColumns},
})
