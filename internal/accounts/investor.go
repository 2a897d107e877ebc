package accounts

import (
	"fleet-backend/internal/apiutil"
	"fleet-backend/internal/database"
	"fleet-backend/internal/dates"
	"fleet-backend/internal/export"
	"fleet-backend/internal/finance"
	"fleet-backend/internal/listview"
	"fleet-backend/internal/models"
	"fleet-backend/internal/resource"

	"github.com/gofiber/fiber/v2"
)

// netProfitFor is the profit master net profit of a period, if one was
// recorded.
var netProfitFor = func(year, month int) (float64, bool, error) {
	var pm models.ProfitMaster
	res := database.DB.Where("year = ? AND month = ?", year, month).Limit(1).Find(&pm)
	if res.Error != nil {
		return 0, false, res.Error
	}
	return pm.NetProfit, res.RowsAffected > 0, nil
}

// An explicit profit_share in the body is kept. Without one the share is
// taken from the period's profit master.
func prepareInvestorShare(_ *fiber.Ctx, s, old *models.InvestorShare) error {
	if err := checkPeriod(s.Year, s.Month); err != nil {
		return err
	}
	if s.SharePercentage < 0 || s.SharePercentage > 100 {
		return fiber.NewError(fiber.StatusBadRequest, "share_percentage must be between 0 and 100")
	}
	if err := apiutil.NonNegative(map[string]float64{"profit_share": s.ProfitShare}); err != nil {
		return err
	}
	var err error
	if s.PaymentMethod, err = paymentMethod(s.PaymentMethod); err != nil {
		return err
	}
	var prev *string
	if old != nil {
		prev = &old.PaymentStatus
	}
	if s.PaymentStatus, err = settle("payment_status", s.PaymentStatus, prev, models.PaymentPending, models.PaymentPaid); err != nil {
		return err
	}

	if s.ProfitShare == 0 {
		net, ok, err := netProfitFor(s.Year, s.Month)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load profit master")
		}
		if ok {
			s.ProfitShare = finance.ProfitShare(net, s.SharePercentage)
		}
	}
	return nil
}

var investorColumns = []export.Column[models.InvestorShare]{
	{Key: "id", Value: func(s models.InvestorShare) any { return s.ID }},
	{Key: "investor_name", Value: func(s models.InvestorShare) any { return s.InvestorName }},
	{Key: "share_percentage", Value: func(s models.InvestorShare) any { return s.SharePercentage }},
	{Key: "month", Value: func(s models.InvestorShare) any { return s.Month }},
	{Key: "year", Value: func(s models.InvestorShare) any { return s.Year }},
	{Key: "profit_share", Value: func(s models.InvestorShare) any { return s.ProfitShare }},
	{Key: "payment_status", Value: func(s models.InvestorShare) any { return s.PaymentStatus }},
	{Key: "payment_date", Value: func(s models.InvestorShare) any { return s.PaymentDate.String() }},
	{Key: "payment_method", Value: func(s models.InvestorShare) any { return s.PaymentMethod }},
	{Key: "reference_no", Value: func(s models.InvestorShare) any { return s.ReferenceNo }},
}

type InvestorSummary struct {
	TotalShares   float64 `json:"total_shares"`
	PendingShares float64 `json:"pending_shares"`
}

var InvestorShares = resource.New(resource.Config[models.InvestorShare]{
	Entity:     "Investor share",
	AuditType:  "investor_share",
	NumericKey: true,
	Order:      "year desc, month desc, investor_name asc",
	Rules: apiutil.Rules{
		Required: []string{"investor_name", "share_percentage", "month", "year"},
		Numbers:  []string{"share_percentage", "profit_share"},
		Ints:     []string{"month", "year"},
	},
	ID:      func(s *models.InvestorShare) uint { return s.ID },
	Prepare: prepareInvestorShare,
	Schema: listview.NewSchema[models.InvestorShare]().
		Text("investor", func(s models.InvestorShare) string { return s.InvestorName }).
		Enum("status", func(s models.InvestorShare) string { return s.PaymentStatus }).
		Number("profit_share", func(s models.InvestorShare) float64 { return s.ProfitShare }, listview.Desc).
		Date("payment_date", func(s models.InvestorShare) dates.Date { return s.PaymentDate }, listview.Desc),
	Export: &resource.ExportSpec[models.InvestorShare]{File: export.InvestorSharesFile, Sheet: "Investor Shares", Columns: investorColumns},
	Summary: func(recs []models.InvestorShare) any {
		share := func(s models.InvestorShare) float64 { return s.ProfitShare }
		return InvestorSummary{
			TotalShares: listview.Sum(recs, share),
			PendingShares: listview.SumWhere(recs,
				func(s models.InvestorShare) bool { return s.PaymentStatus == models.PaymentPending }, share),
		}
	},
})
