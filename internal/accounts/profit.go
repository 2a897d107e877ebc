package accounts

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"fleet-backend/internal/apiutil"
	"fleet-backend/internal/audit"
	"fleet-backend/internal/auth"
	"fleet-backend/internal/database"
	"fleet-backend/internal/dates"
	"fleet-backend/internal/export"
	"fleet-backend/internal/finance"
	"fleet-backend/internal/listview"
	"fleet-backend/internal/models"
	"fleet-backend/internal/resource"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// DeriveProfit sets the totals from the breakdown.
func DeriveProfit(p *models.ProfitMaster) {
	p.TotalIncome = finance.Sum(p.TripIncome, p.RentalIncome, p.OtherIncome)
	p.TotalExpenses = finance.Sum(p.FuelExpenses, p.MaintenanceCosts, p.SalaryExpenses,
		p.InsuranceCosts, p.VisaExpenses, p.OtherExpenses)
	p.NetProfit = finance.NetProfit(p.TotalIncome, p.TotalExpenses)
}

var breakdownFields = []string{
	"trip_income", "rental_income", "other_income",
	"fuel_expenses", "maintenance_costs", "salary_expenses",
	"insurance_costs", "visa_expenses", "other_expenses",
}

func prepareProfit(_ *fiber.Ctx, p, _ *models.ProfitMaster) error {
	if err := checkPeriod(p.Year, p.Month); err != nil {
		return err
	}
	if err := apiutil.NonNegative(map[string]float64{
		"trip_income":       p.TripIncome,
		"rental_income":     p.RentalIncome,
		"other_income":      p.OtherIncome,
		"fuel_expenses":     p.FuelExpenses,
		"maintenance_costs": p.MaintenanceCosts,
		"salary_expenses":   p.SalaryExpenses,
		"insurance_costs":   p.InsuranceCosts,
		"visa_expenses":     p.VisaExpenses,
		"other_expenses":    p.OtherExpenses,
	}); err != nil {
		return err
	}
	DeriveProfit(p)
	return nil
}

// applyIncome books a category total on the matching breakdown line.
// Unknown categories count as other.
func applyIncome(p *models.ProfitMaster, category string, amount float64) {
	switch category {
	case "trip":
		p.TripIncome = finance.Sum(p.TripIncome, amount)
	case "rental":
		p.RentalIncome = finance.Sum(p.RentalIncome, amount)
	default:
		p.OtherIncome = finance.Sum(p.OtherIncome, amount)
	}
}

func applyExpense(p *models.ProfitMaster, category string, amount float64) {
	switch category {
	case "fuel":
		p.FuelExpenses = finance.Sum(p.FuelExpenses, amount)
	case "maintenance":
		p.MaintenanceCosts = finance.Sum(p.MaintenanceCosts, amount)
	case "salary":
		p.SalaryExpenses = finance.Sum(p.SalaryExpenses, amount)
	case "insurance":
		p.InsuranceCosts = finance.Sum(p.InsuranceCosts, amount)
	case "visa":
		p.VisaExpenses = finance.Sum(p.VisaExpenses, amount)
	default:
		p.OtherExpenses = finance.Sum(p.OtherExpenses, amount)
	}
}

type categoryTotal struct {
	Category string
	Total    float64
}

func categoryTotals(model any, from, to dates.Date) ([]categoryTotal, error) {
	rows := []categoryTotal{}
	err := database.DB.Model(model).
		Select("category, COALESCE(SUM(amount), 0) AS total").
		Where("date >= ? AND date < ?", from, to).
		Group("category").
		Scan(&rows).Error
	return rows, err
}

// Breakdown builds the profit master of a month from the income and
// expense records dated in it.
func Breakdown(year, month int) (*models.ProfitMaster, error) {
	from := dates.New(year, time.Month(month), 1)
	to := dates.FromTime(from.AddDate(0, 1, 0))

	incomes, err := categoryTotals(&models.Income{}, from, to)
	if err != nil {
		return nil, fmt.Errorf("income totals: %w", err)
	}
	expenses, err := categoryTotals(&models.Expense{}, from, to)
	if err != nil {
		return nil, fmt.Errorf("expense totals: %w", err)
	}

	p := &models.ProfitMaster{Year: year, Month: month}
	for _, r := range incomes {
		applyIncome(p, r.Category, r.Total)
	}
	for _, r := range expenses {
		applyExpense(p, r.Category, r.Total)
	}
	DeriveProfit(p)
	return p, nil
}

// GET /api/profit-master/period/:year/:month
// Computes the breakdown without storing it.
func PeriodBreakdownHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		year, month, err := periodParams(c)
		if err != nil {
			return err
		}
		p, err := Breakdown(year, month)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to compute profit breakdown")
		}
		return c.JSON(p)
	}
}

type GenerateRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// POST /api/profit-master/generate
func GenerateProfitMasterHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body GenerateRequest
		if _, err := apiutil.Decode(c, &body, apiutil.Rules{
			Required: []string{"year", "month"},
			Ints:     []string{"year", "month"},
		}); err != nil {
			return err
		}
		if err := checkPeriod(body.Year, body.Month); err != nil {
			return err
		}

		p, err := Breakdown(body.Year, body.Month)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to compute profit breakdown")
		}
		if err := database.DB.Create(p).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fiber.NewError(fiber.StatusConflict, "Profit master for this period already exists")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Profit master could not be created")
		}

		userID, userName := auth.Actor(c)
		audit.Record(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "profit_master",
			EntityID:    p.ID,
			EntityKey:   periodKey(p),
			Action:      models.AuditActionCreate,
			Description: "Profit master " + periodKey(p) + " generated",
			After:       p,
		})

		return apiutil.Created(c, "Profit master generated successfully", p)
	}
}

func periodKey(p *models.ProfitMaster) string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

var profitColumns = []export.Column[models.ProfitMaster]{
	{Key: "month", Value: func(p models.ProfitMaster) any { return p.Month }},
	{Key: "year", Value: func(p models.ProfitMaster) any { return p.Year }},
	{Key: "trip_income", Value: func(p models.ProfitMaster) any { return p.TripIncome }},
	{Key: "rental_income", Value: func(p models.ProfitMaster) any { return p.RentalIncome }},
	{Key: "other_income", Value: func(p models.ProfitMaster) any { return p.OtherIncome }},
	{Key: "total_income", Value: func(p models.ProfitMaster) any { return p.TotalIncome }},
	{Key: "fuel_expenses", Value: func(p models.ProfitMaster) any { return p.FuelExpenses }},
	{Key: "maintenance_costs", Value: func(p models.ProfitMaster) any { return p.MaintenanceCosts }},
	{Key: "salary_expenses", Value: func(p models.ProfitMaster) any { return p.SalaryExpenses }},
	{Key: "insurance_costs", Value: func(p models.ProfitMaster) any { return p.InsuranceCosts }},
	{Key: "visa_expenses", Value: func(p models.ProfitMaster) any { return p.VisaExpenses }},
	{Key: "other_expenses", Value: func(p models.ProfitMaster) any { return p.OtherExpenses }},
	{Key: "total_expenses", Value: func(p models.ProfitMaster) any { return p.TotalExpenses }},
	{Key: "net_profit", Value: func(p models.ProfitMaster) any { return p.NetProfit }},
}

type ProfitSummary struct {
	TotalIncome   float64 `json:"total_income"`
	TotalExpenses float64 `json:"total_expenses"`
	NetProfit     float64 `json:"net_profit"`
}

var ProfitMasters = resource.New(resource.Config[models.ProfitMaster]{
	Entity:     "Profit master",
	AuditType:  "profit_master",
	NumericKey: true,
	Order:      "year desc, month desc",
	Rules: apiutil.Rules{
		Required: []string{"month", "year"},
		Numbers:  breakdownFields,
		Ints:     []string{"month", "year"},
	},
	ID:      func(p *models.ProfitMaster) uint { return p.ID },
	Key:     periodKey,
	Prepare: prepareProfit,
	Schema: listview.NewSchema[models.ProfitMaster]().
		Text("year", func(p models.ProfitMaster) string { return strconv.Itoa(p.Year) }).
		Number("net_profit", func(p models.ProfitMaster) float64 { return p.NetProfit }, listview.Desc).
		Number("total_income", func(p models.ProfitMaster) float64 { return p.TotalIncome }, listview.Desc),
	Export: &resource.ExportSpec[models.ProfitMaster]{File: export.ProfitMasterFile, Sheet: "Profit Master", Columns: profitColumns},
	Summary: func(recs []models.ProfitMaster) any {
		return ProfitSummary{
			TotalIncome:   listview.Sum(recs, func(p models.ProfitMaster) float64 { return p.TotalIncome }),
			TotalExpenses: listview.Sum(recs, func(p models.ProfitMaster) float64 { return p.TotalExpenses }),
			NetProfit:     listview.Sum(recs, func(p models.ProfitMaster) float64 { return p.NetProfit }),
		}
	},
})
