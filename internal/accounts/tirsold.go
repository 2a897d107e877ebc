package accounts

import (
	"fleet-backend/internal/apiutil"
	"fleet-backend/internal/dates"
	"fleet-backend/internal/export"
	"fleet-backend/internal/finance"
	"fleet-backend/internal/listview"
	"fleet-backend/internal/models"
	"fleet-backend/internal/resource"

	"github.com/gofiber/fiber/v2"
)

func prepareTIRSold(_ *fiber.Ctx, t, old *models.TIRSold) error {
	if err := apiutil.NonNegative(map[string]float64{
		"buy_price":  t.BuyPrice,
		"sell_price": t.SellPrice,
	}); err != nil {
		return err
	}
	var err error
	if t.PaymentMethod, err = paymentMethod(t.PaymentMethod); err != nil {
		return err
	}
	var prev *string
	if old != nil {
		prev = &old.PaymentStatus
	}
	if t.PaymentStatus, err = settle("payment_status", t.PaymentStatus, prev, models.PaymentPending, models.PaymentCompleted); err != nil {
		return err
	}
	t.Profit = finance.TIRProfit(t.BuyPrice, t.SellPrice)
	return nil
}

var tirSoldColumns = []export.Column[models.TIRSold]{
	{Key: "id", Value: func(t models.TIRSold) any { return t.ID }},
	{Key: "tir_number", Value: func(t models.TIRSold) any { return t.TIRNumber }},
	{Key: "date", Value: func(t models.TIRSold) any { return t.Date.String() }},
	{Key: "buy_price", Value: func(t models.TIRSold) any { return t.BuyPrice }},
	{Key: "sell_price", Value: func(t models.TIRSold) any { return t.SellPrice }},
	{Key: "profit", Value: func(t models.TIRSold) any { return t.Profit }},
	{Key: "buyer", Value: func(t models.TIRSold) any { return t.Buyer }},
	{Key: "payment_method", Value: func(t models.TIRSold) any { return t.PaymentMethod }},
	{Key: "payment_status", Value: func(t models.TIRSold) any { return t.PaymentStatus }},
	{Key: "reference_no", Value: func(t models.TIRSold) any { return t.ReferenceNo }},
	{Key: "remarks", Value: func(t models.TIRSold) any { return t.Remarks }},
}

type TIRSoldSummary struct {
	Sold           int     `json:"sold"`
	TotalProfit    float64 `json:"total_profit"`
	PendingPayment float64 `json:"pending_payment"`
}

func summarizeTIRSold(recs []models.TIRSold) any {
	return TIRSoldSummary{
		Sold:        len(recs),
		TotalProfit: listview.Sum(recs, func(t models.TIRSold) float64 { return t.Profit }),
		PendingPayment: listview.SumWhere(recs,
			func(t models.TIRSold) bool { return t.PaymentStatus == models.PaymentPending },
			func(t models.TIRSold) float64 { return t.SellPrice }),
	}
}

var TIRSales = resource.New(resource.Config[models.TIRSold]{
	Entity:     "TIR sale",
	AuditType:  "tir_sold",
	NumericKey: true,
	Order:      "date desc, id desc",
	Rules: apiutil.Rules{
		Required: []string{"tir_number", "date", "buy_price", "sell_price", "buyer"},
		Numbers:  []string{"buy_price", "sell_price"},
	},
	ID:      func(t *models.TIRSold) uint { return t.ID },
	Key:     func(t *models.TIRSold) string { return t.TIRNumber },
	Prepare: prepareTIRSold,
	Schema: listview.NewSchema[models.TIRSold]().
		Text("search",
			func(t models.TIRSold) string { return t.TIRNumber },
			func(t models.TIRSold) string { return t.Buyer }).
		Enum("status", func(t models.TIRSold) string { return t.PaymentStatus }).
		Date("date", func(t models.TIRSold) dates.Date { return t.Date }, listview.Desc).
		Number("profit", func(t models.TIRSold) float64 { return t.Profit }, listview.Desc),
	Export:  &resource.ExportSpec[models.TIRSold]{File: export.TIRSoldFile, Sheet: "TIR Sold", Columns: tirSoldColumns},
	Summary: summarizeTIRSold,
})
