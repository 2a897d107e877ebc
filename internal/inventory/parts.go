// Package inventory serves the spare parts store. A part's stock status is
// derived from its quantity and minimum stock on every write.
package inventory

import (
	"fleet-backend/internal/apiutil"
	"fleet-backend/internal/dates"
	"fleet-backend/internal/export"
	"fleet-backend/internal/finance"
	"fleet-backend/internal/listview"
	"fleet-backend/internal/models"
	"fleet-backend/internal/resource"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

const CodePrefix = "P"

// Part categories.
var Categories = []string{"engine", "transmission", "brake", "electrical", "suspension", "other"}

var rules = apiutil.Rules{
	Required: []string{"name", "part_number", "category", "quantity", "unit_price", "supplier", "location", "minimum_stock"},
	Numbers:  []string{"unit_price"},
	Ints:     []string{"quantity", "minimum_stock"},
}

func prepare(_ *fiber.Ctx, p, _ *models.Part) error {
	if p.Quantity < 0 || p.MinimumStock < 0 {
		return fiber.NewError(fiber.StatusBadRequest, "quantity and minimum_stock must not be negative")
	}
	if err := apiutil.NonNegative(map[string]float64{"unit_price": p.UnitPrice}); err != nil {
		return err
	}
	category, err := apiutil.Enum("category", p.Category, "", Categories...)
	if err != nil {
		return err
	}
	p.Category = category
	p.Status = string(finance.StockStatus(p.Quantity, p.MinimumStock))
	return nil
}

// StockValue is quantity times unit price.
func StockValue(p models.Part) float64 {
	return decimal.NewFromInt(int64(p.Quantity)).Mul(decimal.NewFromFloat(p.UnitPrice)).InexactFloat64()
}

func hasStatus(s finance.PartStatus) listview.Predicate[models.Part] {
	return func(p models.Part) bool { return p.Status == string(s) }
}

var schema = listview.NewSchema[models.Part]().
	Text("search",
		func(p models.Part) string { return p.Name },
		func(p models.Part) string { return p.PartNumber },
		func(p models.Part) string { return p.Supplier }).
	Enum("category", func(p models.Part) string { return p.Category }).
	Enum("status", func(p models.Part) string { return p.Status }).
	Number("quantity", func(p models.Part) float64 { return float64(p.Quantity) }, listview.Asc).
	Number("unit_price", func(p models.Part) float64 { return p.UnitPrice }, listview.Desc).
	Date("last_purchase_date", func(p models.Part) dates.Date { return p.LastPurchaseDate }, listview.Desc)

var columns = []export.Column[models.Part]{
	{Key: "id", Value: func(p models.Part) any { return p.Code }},
	{Key: "name", Value: func(p models.Part) any { return p.Name }},
	{Key: "part_number", Value: func(p models.Part) any { return p.PartNumber }},
	{Key: "category", Value: func(p models.Part) any { return p.Category }},
	{Key: "quantity", Value: func(p models.Part) any { return p.Quantity }},
	{Key: "unit_price", Value: func(p models.Part) any { return p.UnitPrice }},
	{Key: "supplier", Value: func(p models.Part) any { return p.Supplier }},
	{Key: "location", Value: func(p models.Part) any { return p.Location }},
	{Key: "minimum_stock", Value: func(p models.Part) any { return p.MinimumStock }},
	{Key: "last_purchase_date", Value: func(p models.Part) any { return p.LastPurchaseDate.String() }},
	{Key: "status", Value: func(p models.Part) any { return p.Status }},
}

type Summary struct {
	Parts      int     `json:"parts"`
	TotalValue float64 `json:"total_value"`
	InStock    int     `json:"in_stock"`
	LowStock   int     `json:"low_stock"`
	OutOfStock int     `json:"out_of_stock"`
}

func summarize(recs []models.Part) any {
	return Summary{
		Parts:      len(recs),
		TotalValue: listview.Sum(recs, StockValue),
		InStock:    listview.Count(recs, hasStatus(finance.PartInStock)),
		LowStock:   listview.Count(recs, hasStatus(finance.PartLowStock)),
		OutOfStock: listview.Count(recs, hasStatus(finance.PartOutOfStock)),
	}
}

var Parts = resource.New(resource.Config[models.Part]{
	Entity:    "Part",
	AuditType: "part",
	KeyParam:  "id",
	KeyColumn: "code",
	Order:     "code asc",
	Rules:     rules,
	ID:        func(p *models.Part) uint { return p.ID },
	Key:       func(p *models.Part) string { return p.Code },
	Prepare:   prepare,
	Schema:    schema,
	Code: &resource.CodeSpec[models.Part]{
		Prefix: CodePrefix,
		Column: "code",
		Set:    func(p *models.Part, code string) { p.Code = code },
	},
	Export:  &resource.ExportSpec[models.Part]{File: export.PartsFile, Sheet: "Parts", Columns: columns},
	Summary: summarize,
})

// Register mounts the parts routes. write guards mutations.
func Register(router fiber.Router, write ...fiber.Handler) {
	router.Get("/parts/low-stock", LowStockHandler())
	Parts.Mount(router, "/parts", write...)
	router.Post("/parts/:id/stock-count", append(write, StockCountHandler())...)
}
