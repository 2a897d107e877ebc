package dashboard

import (
	"fmt"
	"sort"
	"time"

	"fleet-backend/internal/apiutil"
	"fleet-backend/internal/database"
	"fleet-backend/internal/dates"
	"fleet-backend/internal/finance"

	"github.com/gofiber/fiber/v2"
)

type ChartPoint struct {
	Label    string  `json:"label"` // first day of the bucket
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Net      float64 `json:"net"`
}

type ChartResponse struct {
	Period string       `json:"period"` // daily | weekly | monthly
	From   string       `json:"from"`
	To     string       `json:"to"`
	Points []ChartPoint `json:"points"`
	Totals ChartPoint   `json:"totals"`
}

var truncUnit = map[string]string{"daily": "day", "weekly": "week", "monthly": "month"}

// window resolves the period and bucket count into an inclusive date range
// ending today. count 0 picks the default for the period.
func window(period string, count int, today dates.Date) (string, dates.Date, dates.Date, error) {
	if _, ok := truncUnit[period]; !ok {
		period = "daily"
	}
	if count < 0 {
		return "", dates.Date{}, dates.Date{}, fiber.NewError(fiber.StatusBadRequest, "count must be positive")
	}
	if count == 0 {
		count = map[string]int{"daily": 7, "weekly": 8, "monthly": 12}[period]
	}

	end := today
	var start time.Time
	switch period {
	case "weekly":
		start = end.AddDate(0, 0, -7*(count-1))
	case "monthly":
		first := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC)
		start = first.AddDate(0, -(count - 1), 0)
	default:
		start = end.AddDate(0, 0, -(count - 1))
	}
	return period, dates.FromTime(start), end, nil
}

type bucketRow struct {
	Bucket time.Time `gorm:"column:bucket"`
	Total  float64   `gorm:"column:total"`
}

func bucketTotals(table, unit string, from, to dates.Date) ([]bucketRow, error) {
	rows := []bucketRow{}
	sql := fmt.Sprintf(`
		SELECT date_trunc('%s', date)::date AS bucket, SUM(amount) AS total
		FROM %s
		WHERE date >= ? AND date <= ?
		GROUP BY bucket
		ORDER BY bucket ASC`, unit, table)
	err := database.DB.Raw(sql, from, to).Scan(&rows).Error
	return rows, err
}

// merge joins income and expense buckets into ordered points.
func merge(income, expenses []bucketRow) ([]ChartPoint, ChartPoint) {
	byLabel := map[string]*ChartPoint{}
	point := func(t time.Time) *ChartPoint {
		label := t.Format("2006-01-02")
		p, ok := byLabel[label]
		if !ok {
			p = &ChartPoint{Label: label}
			byLabel[label] = p
		}
		return p
	}
	for _, r := range income {
		p := point(r.Bucket)
		p.Income = finance.Sum(p.Income, r.Total)
	}
	for _, r := range expenses {
		p := point(r.Bucket)
		p.Expenses = finance.Sum(p.Expenses, r.Total)
	}

	points := make([]ChartPoint, 0, len(byLabel))
	totals := ChartPoint{Label: "total"}
	for _, p := range byLabel {
		p.Net = finance.NetProfit(p.Income, p.Expenses)
		points = append(points, *p)
		totals.Income = finance.Sum(totals.Income, p.Income)
		totals.Expenses = finance.Sum(totals.Expenses, p.Expenses)
	}
	totals.Net = finance.NetProfit(totals.Income, totals.Expenses)
	sort.Slice(points, func(i, j int) bool { return points[i].Label < points[j].Label })
	return points, totals
}

// GET /api/dashboard/cash-chart?period=daily&count=7
func CashChartHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		count, _, err := apiutil.QueryInt(c, "count")
		if err != nil {
			return err
		}
		period, from, to, err := window(c.Query("period", "daily"), count, dates.Today())
		if err != nil {
			return err
		}

		unit := truncUnit[period]
		income, err := bucketTotals("incomes", unit, from, to)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to aggregate income")
		}
		expenses, err := bucketTotals("expenses", unit, from, to)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to aggregate expenses")
		}

		points, totals := merge(income, expenses)
		return c.JSON(ChartResponse{
			Period: period,
			From:   from.String(),
			To:     to.String(),
			Points: points,
			Totals: totals,
		})
	}
}
