package accounts

import (
	"fleet-backend/internal/apiutil"
	"fleet-backend/internal/dates"
	"fleet-backend/internal/export"
	"fleet-backend/internal/listview"
	"fleet-backend/internal/models"
	"fleet-backend/internal/resource"

	"github.com/gofiber/fiber/v2"
)

var (
	IncomeCategories  = []string{"trip", "rental", "other"}
	ExpenseCategories = []string{"maintenance", "fuel", "salary", "visa", "insurance", "other"}
)

// LedgerSummary is shared by income and expenses.
type LedgerSummary struct {
	Count         int     `json:"count"`
	Total         float64 `json:"total"`
	PendingCount  int     `json:"pending_count"`
	PendingAmount float64 `json:"pending_amount"`
}

func ledgerSummary[T any](recs []T, amount func(T) float64, status func(T) string) LedgerSummary {
	pending := func(r T) bool { return status(r) == models.PaymentPending }
	return LedgerSummary{
		Count:         len(recs),
		Total:         listview.Sum(recs, amount),
		PendingCount:  listview.Count(recs, pending),
		PendingAmount: listview.SumWhere(recs, pending, amount),
	}
}

// -------------------------
// Income
// -------------------------

func prepareIncome(_ *fiber.Ctx, r, old *models.Income) error {
	if err := apiutil.NonNegative(map[string]float64{"amount": r.Amount}); err != nil {
		return err
	}
	var err error
	if r.Category, err = apiutil.Enum("category", r.Category, "", IncomeCategories...); err != nil {
		return err
	}
	if r.PaymentMethod, err = paymentMethod(r.PaymentMethod); err != nil {
		return err
	}
	var prev *string
	if old != nil {
		prev = &old.Status
	}
	r.Status, err = settle("status", r.Status, prev, models.PaymentPending, models.PaymentCompleted)
	return err
}

var incomeColumns = []export.Column[models.Income]{
	{Key: "id", Value: func(r models.Income) any { return r.ID }},
	{Key: "date", Value: func(r models.Income) any { return r.Date.String() }},
	{Key: "category", Value: func(r models.Income) any { return r.Category }},
	{Key: "description", Value: func(r models.Income) any { return r.Description }},
	{Key: "amount", Value: func(r models.Income) any { return r.Amount }},
	{Key: "source", Value: func(r models.Income) any { return r.Source }},
	{Key: "reference_no", Value: func(r models.Income) any { return r.ReferenceNo }},
	{Key: "payment_method", Value: func(r models.Income) any { return r.PaymentMethod }},
	{Key: "status", Value: func(r models.Income) any { return r.Status }},
}

var Incomes = resource.New(resource.Config[models.Income]{
	Entity:     "Income record",
	AuditType:  "income",
	NumericKey: true,
	Order:      "date desc, id desc",
	Rules: apiutil.Rules{
		Required: []string{"date", "category", "description", "amount", "source"},
		Numbers:  []string{"amount"},
	},
	ID:      func(r *models.Income) uint { return r.ID },
	Prepare: prepareIncome,
	Schema: listview.NewSchema[models.Income]().
		Text("source", func(r models.Income) string { return r.Source }).
		Enum("category", func(r models.Income) string { return r.Category }).
		Enum("status", func(r models.Income) string { return r.Status }).
		DateRange("from", "to", func(r models.Income) dates.Date { return r.Date }).
		Date("date", func(r models.Income) dates.Date { return r.Date }, listview.Desc).
		Number("amount", func(r models.Income) float64 { return r.Amount }, listview.Desc),
	Export: &resource.ExportSpec[models.Income]{File: export.IncomeFile, Sheet: "Income", Columns: incomeColumns},
	Summary: func(recs []models.Income) any {
		return ledgerSummary(recs,
			func(r models.Income) float64 { return r.Amount },
			func(r models.Income) string { return r.Status })
	},
})

// -------------------------
// Expenses
// -------------------------

func prepareExpense(_ *fiber.Ctx, r, old *models.Expense) error {
	if err := apiutil.NonNegative(map[string]float64{"amount": r.Amount}); err != nil {
		return err
	}
	var err error
	if r.Category, err = apiutil.Enum("category", r.Category, "", ExpenseCategories...); err != nil {
		return err
	}
	if r.PaymentMethod, err = paymentMethod(r.PaymentMethod); err != nil {
		return err
	}
	var prev *string
	if old != nil {
		prev = &old.Status
	}
	r.Status, err = settle("status", r.Status, prev, models.PaymentPending, models.PaymentCompleted)
	return err
}

var expenseColumns = []export.Column[models.Expense]{
	{Key: "id", Value: func(r models.Expense) any { return r.ID }},
	{Key: "date", Value: func(r models.Expense) any { return r.Date.String() }},
	{Key: "category", Value: func(r models.Expense) any { return r.Category }},
	{Key: "description", Value: func(r models.Expense) any { return r.Description }},
	{Key: "amount", Value: func(r models.Expense) any { return r.Amount }},
	{Key: "recipient", Value: func(r models.Expense) any { return r.Recipient }},
	{Key: "reference_no", Value: func(r models.Expense) any { return r.ReferenceNo }},
	{Key: "payment_method", Value: func(r models.Expense) any { return r.PaymentMethod }},
	{Key: "status", Value: func(r models.Expense) any { return r.Status }},
}

var Expenses = resource.New(resource.Config[models.Expense]{
	Entity:     "Expense record",
	AuditType:  "expense",
	NumericKey: true,
	Order:      "date desc, id desc",
	Rules: apiutil.Rules{
		Required: []string{"date", "category", "description", "amount", "recipient"},
		Numbers:  []string{"amount"},
	},
	ID:      func(r *models.Expense) uint { return r.ID },
	Prepare: prepareExpense,
	Schema: listview.NewSchema[models.Expense]().
		Text("category", func(r models.Expense) string { return r.Category }).
		Text("recipient", func(r models.Expense) string { return r.Recipient }).
		Enum("status", func(r models.Expense) string { return r.Status }).
		DateRange("from", "to", func(r models.Expense) dates.Date { return r.Date }).
		Date("date", func(r models.Expense) dates.Date { return r.Date }, listview.Desc).
		Number("amount", func(r models.Expense) float64 { return r.Amount }, listview.Desc),
	Export: &resource.ExportSpec[models.Expense]{File: export.ExpensesFile, Sheet: "Expenses", Columns: expenseColumns},
	Summary: func(recs []models.Expense) any {
		return ledgerSummary(recs,
			func(r models.Expense) float64 { return r.Amount },
			func(r models.Expense) string { return r.Status })
	},
})
