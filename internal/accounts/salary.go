package accounts

import (
	"strconv"

	"fleet-backend/internal/apiutil"
	"fleet-backend/internal/dates"
	"fleet-backend/internal/export"
	"fleet-backend/internal/finance"
	"fleet-backend/internal/listview"
	"fleet-backend/internal/models"
	"fleet-backend/internal/resource"

	"github.com/gofiber/fiber/v2"
)

// DeriveSalary recomputes overtime and net salary. A net salary below zero
// is kept as is.
func DeriveSalary(s *models.Salary) {
	fig := finance.Salary(finance.SalaryInput{
		BaseSalary:    s.BaseSalary,
		OvertimeHours: s.OvertimeHours,
		OvertimeRate:  s.OvertimeRate,
		Bonus:         s.Bonus,
		Deductions:    s.Deductions,
	})
	s.OvertimeAmount = fig.OvertimeAmount
	s.NetSalary = fig.NetSalary
}

func prepareSalary(_ *fiber.Ctx, s, old *models.Salary) error {
	if err := checkPeriod(s.Year, s.Month); err != nil {
		return err
	}
	if err := apiutil.NonNegative(map[string]float64{
		"base_salary":    s.BaseSalary,
		"overtime_hours": s.OvertimeHours,
		"overtime_rate":  s.OvertimeRate,
		"bonus":          s.Bonus,
		"deductions":     s.Deductions,
	}); err != nil {
		return err
	}
	var prev *string
	if old != nil {
		prev = &old.PaymentStatus
	}
	status, err := settle("payment_status", s.PaymentStatus, prev, models.PaymentPending, models.PaymentPaid)
	if err != nil {
		return err
	}
	s.PaymentStatus = status
	if s.PaymentStatus == models.PaymentPaid && !s.PaymentDate.Valid() {
		s.PaymentDate = dates.Today()
	}
	DeriveSalary(s)
	return nil
}

func intField(f func(models.Salary) int) func(models.Salary) string {
	return func(s models.Salary) string { return strconv.Itoa(f(s)) }
}

var salarySchema = listview.NewSchema[models.Salary]().
	Text("employee", func(s models.Salary) string { return s.EmployeeName }).
	Enum("month", intField(func(s models.Salary) int { return s.Month })).
	Enum("year", intField(func(s models.Salary) int { return s.Year })).
	Enum("status", func(s models.Salary) string { return s.PaymentStatus }).
	Number("net_salary", func(s models.Salary) float64 { return s.NetSalary }, listview.Desc).
	Date("payment_date", func(s models.Salary) dates.Date { return s.PaymentDate }, listview.Desc)

var salaryColumns = []export.Column[models.Salary]{
	{Key: "id", Value: func(s models.Salary) any { return s.ID }},
	{Key: "employee_name", Value: func(s models.Salary) any { return s.EmployeeName }},
	{Key: "month", Value: func(s models.Salary) any { return s.Month }},
	{Key: "year", Value: func(s models.Salary) any { return s.Year }},
	{Key: "base_salary", Value: func(s models.Salary) any { return s.BaseSalary }},
	{Key: "overtime_hours", Value: func(s models.Salary) any { return s.OvertimeHours }},
	{Key: "overtime_rate", Value: func(s models.Salary) any { return s.OvertimeRate }},
	{Key: "overtime_amount", Value: func(s models.Salary) any { return s.OvertimeAmount }},
	{Key: "bonus", Value: func(s models.Salary) any { return s.Bonus }},
	{Key: "deductions", Value: func(s models.Salary) any { return s.Deductions }},
	{Key: "deduction_reason", Value: func(s models.Salary) any { return s.DeductionReason }},
	{Key: "net_salary", Value: func(s models.Salary) any { return s.NetSalary }},
	{Key: "payment_status", Value: func(s models.Salary) any { return s.PaymentStatus }},
	{Key: "payment_date", Value: func(s models.Salary) any { return s.PaymentDate.String() }},
}

type SalarySummary struct {
	Records      int     `json:"records"`
	TotalNet     float64 `json:"total_net"`
	PendingCount int     `json:"pending_count"`
	PendingNet   float64 `json:"pending_net"`
}

func summarizeSalaries(recs []models.Salary) any {
	net := func(s models.Salary) float64 { return s.NetSalary }
	pending := func(s models.Salary) bool { return s.PaymentStatus == models.PaymentPending }
	return SalarySummary{
		Records:      len(recs),
		TotalNet:     listview.Sum(recs, net),
		PendingCount: listview.Count(recs, pending),
		PendingNet:   listview.SumWhere(recs, pending, net),
	}
}

func salaryKey(s *models.Salary) string { return strconv.FormatUint(uint64(s.ID), 10) }

var Salaries = resource.New(resource.Config[models.Salary]{
	Entity:     "Salary record",
	AuditType:  "salary",
	NumericKey: true,
	Order:      "year desc, month desc, employee_name asc",
	Rules: apiutil.Rules{
		Required: []string{"employee_name", "month", "year", "base_salary"},
		Numbers:  []string{"base_salary", "overtime_hours", "overtime_rate", "bonus", "deductions"},
		Ints:     []string{"month", "year"},
	},
	ID:        func(s *models.Salary) uint { return s.ID },
	Key:       salaryKey,
	Prepare:   prepareSalary,
	Schema:    salarySchema,
	Documents: models.OwnerSalary,
	Export:    &resource.ExportSpec[models.Salary]{File: export.SalariesFile, Sheet: "Salaries", Columns: salaryColumns},
	Summary:   summarizeSalaries,
})

// GET /api/salaries/by-employee/:name
func SalariesByEmployeeHandler() fiber.Handler {
	return Salaries.WhereHandler(func(c *fiber.Ctx) (string, []any, error) {
		name, err := apiutil.NaturalKey(c, "name")
		return "employee_name = ?", []any{name}, err
	})
}

// GET /api/salaries/by-month/:year/:month
func SalariesByMonthHandler() fiber.Handler {
	return Salaries.WhereHandler(func(c *fiber.Ctx) (string, []any, error) {
		year, month, err := periodParams(c)
		if err != nil {
			return "", nil, err
		}
		return "year = ? AND month = ?", []any{year, month}, nil
	})
}

func periodParams(c *fiber.Ctx) (int, int, error) {
	year, yErr := strconv.Atoi(c.Params("year"))
	month, mErr := strconv.Atoi(c.Params("month"))
	if yErr != nil || mErr != nil {
		return 0, 0, fiber.NewError(fiber.StatusBadRequest, "Invalid year or month")
	}
	return year, month, checkPeriod(year, month)
}
