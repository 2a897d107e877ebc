// Package dashboard serves the fleet-wide figures on the home screen.
package dashboard

import (
	"context"
	"log"

	"fleet-backend/internal/compliance"
	"fleet-backend/internal/database"
	"fleet-backend/internal/dates"
	"fleet-backend/internal/finance"
	"fleet-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type Metrics struct {
	Trucks    int64 `json:"trucks"`
	Trailers  int64 `json:"trailers"`
	Employees int64 `json:"employees"`
	Drivers   int64 `json:"drivers"`

	TripsThisMonth       int64   `json:"trips_this_month"`
	TripRevenueThisMonth float64 `json:"trip_revenue_this_month"`
	PendingReceivables   float64 `json:"pending_receivables"`

	IncomeThisMonth   float64 `json:"income_this_month"`
	ExpensesThisMonth float64 `json:"expenses_this_month"`
	NetThisMonth      float64 `json:"net_this_month"`

	UnpaidMaintenance float64 `json:"unpaid_maintenance"`
	UnpaidFines       float64 `json:"unpaid_fines"`

	ExpiringVisas     int64 `json:"expiring_visas"`
	ExpiringInsurance int64 `json:"expiring_insurance"`
	ExpiringTIR       int64 `json:"expiring_tir"`
	LowStockParts     int64 `json:"low_stock_parts"`
}

type query struct {
	model any
	where string
	args  []any
}

func (q query) build(ctx context.Context) *gorm.DB {
	db := database.DB.WithContext(ctx).Model(q.model)
	if q.where != "" {
		db = db.Where(q.where, q.args...)
	}
	return db
}

func (q query) count(ctx context.Context, dst *int64) func() error {
	return func() error { return q.build(ctx).Count(dst).Error }
}

func (q query) sum(ctx context.Context, column string, dst *float64) func() error {
	return func() error {
		return q.build(ctx).Select("COALESCE(SUM(" + column + "), 0)").Scan(dst).Error
	}
}

func where(model any, cond string, args ...any) query {
	return query{model: model, where: cond, args: args}
}

// Collect runs every aggregate concurrently; the first failure cancels the
// rest.
func Collect(ctx context.Context, today dates.Date) (*Metrics, error) {
	monthStart := dates.New(today.Year(), today.Month(), 1)
	nextMonth := dates.FromTime(monthStart.AddDate(0, 1, 0))
	soon := dates.FromTime(today.AddDate(0, 0, compliance.ExpiryWindowDays))

	thisMonth := func(model any, column string) query {
		return where(model, column+" >= ? AND "+column+" < ?", monthStart, nextMonth)
	}
	expiring := func(model any) query {
		return where(model, "expiry_date >= ? AND expiry_date <= ?", today, soon)
	}

	m := &Metrics{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(where(&models.Truck{}, "").count(ctx, &m.Trucks))
	g.Go(where(&models.Trailer{}, "").count(ctx, &m.Trailers))
	g.Go(where(&models.Employee{}, "").count(ctx, &m.Employees))
	g.Go(where(&models.Employee{}, "designation = ?", models.DesignationDriver).count(ctx, &m.Drivers))

	g.Go(thisMonth(&models.Trip{}, "load_date").count(ctx, &m.TripsThisMonth))
	g.Go(thisMonth(&models.Trip{}, "load_date").sum(ctx, "trip_rate", &m.TripRevenueThisMonth))
	g.Go(where(&models.Trip{}, "receivable_status = ?", models.StatusUnpaid).sum(ctx, "trip_rate", &m.PendingReceivables))

	g.Go(thisMonth(&models.Income{}, "date").sum(ctx, "amount", &m.IncomeThisMonth))
	g.Go(thisMonth(&models.Expense{}, "date").sum(ctx, "amount", &m.ExpensesThisMonth))

	g.Go(where(&models.Maintenance{}, "status = ?", models.StatusUnpaid).sum(ctx, "total", &m.UnpaidMaintenance))
	g.Go(where(&models.Fine{}, "status <> ?", models.RecordPaid).sum(ctx, "total", &m.UnpaidFines))

	g.Go(expiring(&models.Visa{}).count(ctx, &m.ExpiringVisas))
	g.Go(expiring(&models.Insurance{}).count(ctx, &m.ExpiringInsurance))
	g.Go(expiring(&models.TIRDocument{}).count(ctx, &m.ExpiringTIR))
	g.Go(where(&models.Part{}, "status <> ?", string(finance.PartInStock)).count(ctx, &m.LowStockParts))

	if err := g.Wait(); err != nil {
		return nil, err
	}
	m.NetThisMonth = finance.NetProfit(m.IncomeThisMonth, m.ExpensesThisMonth)
	return m, nil
}

// GET /api/dashboard
func MetricsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		m, err := Collect(c.UserContext(), dates.Today())
		if err != nil {
			log.Printf("[ERROR] dashboard metrics: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load dashboard")
		}
		return c.JSON(m)
	}
}

func Register(router fiber.Router) {
	router.Get("/dashboard", MetricsHandler())
	router.Get("/dashboard/cash-chart", CashChartHandler())
}
