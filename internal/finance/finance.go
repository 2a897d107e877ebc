// Package finance holds the derived figures shown next to editable inputs:
// overtime, net salary, maintenance VAT and totals, trip expense and revenue
// splits, fine totals. Nothing here validates sign; negative results are
// returned as they are.
package finance

import "github.com/shopspring/decimal"

// VATRate applied to the maintenance subtotal when VAT is included.
var VATRate = decimal.RequireFromString("0.05")

func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func sum(values ...float64) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(d(v))
	}
	return total
}

func OvertimeAmount(hours, rate float64) float64 {
	return d(hours).Mul(d(rate)).InexactFloat64()
}

func NetSalary(base, overtime, bonus, deductions float64) float64 {
	return sum(base, overtime, bonus).Sub(d(deductions)).InexactFloat64()
}

func MaintenanceSubtotal(creditCard, bank, cash float64) float64 {
	return sum(creditCard, bank, cash).InexactFloat64()
}

func MaintenanceVAT(subtotal float64, includeVAT bool) float64 {
	if !includeVAT {
		return 0
	}
	return d(subtotal).Mul(VATRate).InexactFloat64()
}

func MaintenanceTotal(subtotal, vat float64) float64 {
	return sum(subtotal, vat).InexactFloat64()
}

func TripExpenseTotal(diesel, toll, advanceExp, otherExp float64) float64 {
	return sum(diesel, toll, advanceExp, otherExp).InexactFloat64()
}

// TripRevenue is applied once with the trip rate (truck revenue) and once
// with the company rate (company revenue).
func TripRevenue(rate, expenseTotal float64) float64 {
	return d(rate).Sub(d(expenseTotal)).InexactFloat64()
}

func FineTotal(amount, penalty float64) float64 {
	return sum(amount, penalty).InexactFloat64()
}

func TIRProfit(buyPrice, sellPrice float64) float64 {
	return d(sellPrice).Sub(d(buyPrice)).InexactFloat64()
}

func NetProfit(totalIncome, totalExpenses float64) float64 {
	return d(totalIncome).Sub(d(totalExpenses)).InexactFloat64()
}

// Sum adds values without float drift; used for breakdown totals.
func Sum(values ...float64) float64 {
	return sum(values...).InexactFloat64()
}

// ProfitShare is the investor's cut of a net profit at the given percentage.
func ProfitShare(netProfit, percentage float64) float64 {
	return d(netProfit).Mul(d(percentage)).Div(decimal.NewFromInt(100)).Round(2).InexactFloat64()
}

type PartStatus string

const (
	PartInStock    PartStatus = "in_stock"
	PartLowStock   PartStatus = "low_stock"
	PartOutOfStock PartStatus = "out_of_stock"
)

func StockStatus(quantity, minimumStock int) PartStatus {
	switch {
	case quantity <= 0:
		return PartOutOfStock
	case quantity <= minimumStock:
		return PartLowStock
	default:
		return PartInStock
	}
}
