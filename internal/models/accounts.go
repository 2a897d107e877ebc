package models

import (
	"time"

	"fleet-backend/internal/dates"
)

const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentPaid      = "paid"
)

type Income struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Date          dates.Date `gorm:"index" json:"date"`
	Category      string     `gorm:"size:20" json:"category"`
	Description   string     `gorm:"size:255" json:"description"`
	Amount        float64    `json:"amount"`
	Source        string     `gorm:"size:120" json:"source"`
	ReferenceNo   string     `gorm:"size:60" json:"reference_no"`
	PaymentMethod string     `gorm:"size:10" json:"payment_method"`
	Status        string     `gorm:"size:10;index" json:"status"`
	CreatedAt     time.Time  `json:"-"`
	UpdatedAt     time.Time  `json:"-"`
}

type Expense struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Date          dates.Date `gorm:"index" json:"date"`
	Category      string     `gorm:"size:20" json:"category"`
	Description   string     `gorm:"size:255" json:"description"`
	Amount        float64    `json:"amount"`
	Recipient     string     `gorm:"size:120" json:"recipient"`
	ReferenceNo   string     `gorm:"size:60" json:"reference_no"`
	PaymentMethod string     `gorm:"size:10" json:"payment_method"`
	Status        string     `gorm:"size:10;index" json:"status"`
	CreatedAt     time.Time  `json:"-"`
	UpdatedAt     time.Time  `json:"-"`
}

type Salary struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	EmployeeName    string     `gorm:"size:120;index" json:"employee_name"`
	Month           int        `gorm:"index:idx_salary_period" json:"month"`
	Year            int        `gorm:"index:idx_salary_period" json:"year"`
	BaseSalary      float64    `json:"base_salary"`
	OvertimeHours   float64    `json:"overtime_hours"`
	OvertimeRate    float64    `json:"overtime_rate"`
	OvertimeAmount  float64    `json:"overtime_amount"`
	Bonus           float64    `json:"bonus"`
	Deductions      float64    `json:"deductions"`
	DeductionReason string     `gorm:"size:255" json:"deduction_reason"`
	NetSalary       float64    `json:"net_salary"`
	PaymentStatus   string     `gorm:"size:10" json:"payment_status"`
	PaymentDate     dates.Date `json:"payment_date"`
	CreatedAt       time.Time  `json:"-"`
	UpdatedAt       time.Time  `json:"-"`
}

type InvestorShare struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	InvestorName    string     `gorm:"size:120;index" json:"investor_name"`
	SharePercentage float64    `json:"share_percentage"`
	Month           int        `json:"month"`
	Year            int        `json:"year"`
	ProfitShare     float64    `json:"profit_share"`
	PaymentStatus   string     `gorm:"size:10" json:"payment_status"`
	PaymentDate     dates.Date `json:"payment_date"`
	PaymentMethod   string     `gorm:"size:10" json:"payment_method"`
	ReferenceNo     string     `gorm:"size:60" json:"reference_no"`
	CreatedAt       time.Time  `json:"-"`
	UpdatedAt       time.Time  `json:"-"`
}

type TIRSold struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	TIRNumber     string     `gorm:"column:tir_number;size:40;index" json:"tir_number"`
	Date          dates.Date `gorm:"index" json:"date"`
	BuyPrice      float64    `json:"buy_price"`
	SellPrice     float64    `json:"sell_price"`
	Profit        float64    `json:"profit"`
	Buyer         string     `gorm:"size:120" json:"buyer"`
	PaymentMethod string     `gorm:"size:10" json:"payment_method"`
	PaymentStatus string     `gorm:"size:10" json:"payment_status"`
	ReferenceNo   string     `gorm:"size:60" json:"reference_no"`
	Remarks       string     `gorm:"size:255" json:"remarks"`
	CreatedAt     time.Time  `json:"-"`
	UpdatedAt     time.Time  `json:"-"`
}

func (TIRSold) TableName() string { return "tir_sold" }

// ProfitMaster is the monthly P&L. The totals are sums of the breakdown.
type ProfitMaster struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	Month             int       `gorm:"uniqueIndex:idx_profit_period" json:"month"`
	Year              int       `gorm:"uniqueIndex:idx_profit_period" json:"year"`
	TripIncome        float64   `json:"trip_income"`
	RentalIncome      float64   `json:"rental_income"`
	OtherIncome       float64   `json:"other_income"`
	TotalIncome       float64   `json:"total_income"`
	FuelExpenses      float64   `json:"fuel_expenses"`
	MaintenanceCosts  float64   `json:"maintenance_costs"`
	SalaryExpenses    float64   `json:"salary_expenses"`
	InsuranceCosts    float64   `json:"insurance_costs"`
	VisaExpenses      float64   `json:"visa_expenses"`
	OtherExpenses     float64   `json:"other_expenses"`
	TotalExpenses     float64   `json:"total_expenses"`
	NetProfit         float64   `json:"net_profit"`
	CreatedAt         time.Time `json:"-"`
	UpdatedAt         time.Time `json:"-"`
}

func (ProfitMaster) TableName() string { return "profit_master" }
