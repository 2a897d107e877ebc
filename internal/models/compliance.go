package models

import (
	"time"

	"fleet-backend/internal/dates"
)

// Statuses shared by fines, visas and insurance.
const (
	RecordPending = "pending"
	RecordPaid    = "paid"
	RecordOverdue = "overdue"
)

// TIR document statuses.
const (
	TIRActive  = "active"
	TIRExpired = "expired"
	TIRPending = "pending"
)

// ComplianceRecord is the part visas and insurance share.
type ComplianceRecord struct {
	Date         dates.Date `gorm:"index" json:"date"`
	DriverName   string     `gorm:"size:120;index" json:"driver_name"`
	TruckNumber  string     `gorm:"size:40;index" json:"truck_number"`
	VehicleUnder string     `gorm:"size:120" json:"vehicle_under"`
	Amount       float64    `json:"amount"`
	Details      string     `gorm:"size:500" json:"details"`
	Status       string     `gorm:"size:10;index" json:"status"`
	Country      string     `gorm:"size:20;index" json:"country"`
}

type Visa struct {
	ID   uint   `gorm:"primaryKey" json:"-"`
	Code string `gorm:"size:20;uniqueIndex" json:"id"`
	ComplianceRecord
	VisaType      string     `gorm:"size:60" json:"visa_type"`
	ExpiryDate    dates.Date `json:"expiry_date"`
	ProcessingFee float64    `json:"processing_fee"`
	CreatedAt     time.Time  `json:"-"`
	UpdatedAt     time.Time  `json:"-"`
}

type Insurance struct {
	ID   uint   `gorm:"primaryKey" json:"-"`
	Code string `gorm:"size:20;uniqueIndex" json:"id"`
	ComplianceRecord
	InsuranceType  string     `gorm:"size:60" json:"insurance_type"`
	PolicyNumber   string     `gorm:"size:60" json:"policy_number"`
	ExpiryDate     dates.Date `json:"expiry_date"`
	CoverageAmount float64    `json:"coverage_amount"`
	CreatedAt      time.Time  `json:"-"`
	UpdatedAt      time.Time  `json:"-"`
}

func (Insurance) TableName() string { return "insurance" }

// TIRDocument is a customs carnet, not to be confused with TIRSold.
type TIRDocument struct {
	ID            uint       `gorm:"primaryKey" json:"-"`
	Code          string     `gorm:"size:20;uniqueIndex" json:"id"`
	Number        string     `gorm:"size:40;index" json:"number"`
	IssueDate     dates.Date `json:"issue_date"`
	ExpiryDate    dates.Date `json:"expiry_date"`
	TruckNumber   string     `gorm:"size:40;index" json:"truck_number"`
	DriverName    string     `gorm:"size:120" json:"driver_name"`
	Status        string     `gorm:"size:10" json:"status"`
	Country       string     `gorm:"size:20;index" json:"country"`
	CustomsOffice string     `gorm:"size:120" json:"customs_office"`
	Remarks       string     `gorm:"size:255" json:"remarks"`
	CreatedAt     time.Time  `json:"-"`
	UpdatedAt     time.Time  `json:"-"`
}

func (TIRDocument) TableName() string { return "tir_documents" }
