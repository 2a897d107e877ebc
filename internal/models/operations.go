package models

import (
	"time"

	"fleet-backend/internal/dates"
)

const (
	StatusPaid   = "PAID"
	StatusUnpaid = "UNPAID"
)

type Maintenance struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	Date              dates.Date `gorm:"index" json:"date"`
	DriverName        string     `gorm:"size:120;index" json:"driver_name"`
	TruckNumber       string     `gorm:"size:40;index" json:"truck_number"`
	VehicleUnder      string     `gorm:"size:120" json:"vehicle_under"`
	MaintenanceDetail string     `gorm:"size:500" json:"maintenance_detail"`
	CreditCard        float64    `json:"credit_card"`
	Bank              float64    `json:"bank"`
	Cash              float64    `json:"cash"`
	IncludeVAT        bool       `gorm:"column:include_vat" json:"include_vat"`
	VAT               float64    `gorm:"column:vat" json:"vat"`
	Total             float64    `json:"total"`
	Status            string     `gorm:"size:10" json:"status"`
	Supplier          string     `gorm:"size:120" json:"supplier"`
	CreatedAt         time.Time  `json:"-"`
	UpdatedAt         time.Time  `json:"-"`
}

type Trip struct {
	ID                 uint       `gorm:"primaryKey" json:"trip_id"`
	LoadDate           dates.Date `gorm:"index" json:"load_date"`
	ReturnLoad         bool       `json:"return_load"`
	CompanyTruck       bool       `json:"company_truck"`
	TruckNumber        string     `gorm:"size:40;index" json:"truck_number"`
	Driver             string     `gorm:"size:120;index" json:"driver"`
	Company            string     `gorm:"size:120" json:"company"`
	Client             string     `gorm:"size:120" json:"client"`
	DestinationCountry string     `gorm:"size:60" json:"destination_country"`
	CompanyRate        float64    `json:"company_rate"`
	DriverRate         float64    `json:"driver_rate"`
	ExtraDelivery      float64    `json:"extra_delivery"`
	Advance            float64    `json:"advance"`
	LoadFrom           string     `gorm:"size:120" json:"load_from"`
	UnloadTo           string     `gorm:"size:120" json:"unload_to"`
	Weight             string     `gorm:"size:40" json:"weight"`
	DieselCost         float64    `json:"diesel_cost"`
	TripRate           float64    `json:"trip_rate"`
	GPToll             float64    `gorm:"column:gp_toll" json:"gp_toll"`
	AdvanceExpenses    float64    `json:"advance_expenses"`
	OtherExp           float64    `json:"other_exp"`
	TotalExps          float64    `json:"total_exps"`
	TruckRevenue       float64    `json:"truck_revenue"`
	CompanyRevenue     float64    `json:"company_revenue"`
	TIRNo              string     `gorm:"column:tir_no;size:40" json:"tir_no"`
	ReceivableStatus   string     `gorm:"size:10" json:"receivable_status"`
	PayableStatus      string     `gorm:"size:10" json:"payable_status"`
	CreatedAt          time.Time  `json:"-"`
	UpdatedAt          time.Time  `json:"-"`
}

// Fine carries both a surrogate ID and a display code like F001.
type Fine struct {
	ID            uint       `gorm:"primaryKey" json:"-"`
	Code          string     `gorm:"size:20;uniqueIndex" json:"id"`
	Date          dates.Date `gorm:"index" json:"date"`
	DriverName    string     `gorm:"size:120;index" json:"driver_name"`
	TruckNumber   string     `gorm:"size:40;index" json:"truck_number"`
	VehicleUnder  string     `gorm:"size:120" json:"vehicle_under"`
	TripID        *uint      `json:"trip_id"`
	FineType      string     `gorm:"size:60" json:"fine_type"`
	Details       string     `gorm:"size:500" json:"details"`
	Amount        float64    `json:"amount"`
	PenaltyAmount float64    `json:"penalty_amount"`
	Total         float64    `json:"total"`
	DriverFault   bool       `json:"driver_fault"`
	DueDate       dates.Date `json:"due_date"`
	Status        string     `gorm:"size:10;index" json:"status"`
	Country       string     `gorm:"size:20;index" json:"country"`
	CreatedAt     time.Time  `json:"-"`
	UpdatedAt     time.Time  `json:"-"`
}

type Part struct {
	ID               uint       `gorm:"primaryKey" json:"-"`
	Code             string     `gorm:"size:20;uniqueIndex" json:"id"`
	Name             string     `gorm:"size:120;not null" json:"name"`
	PartNumber       string     `gorm:"size:60;index" json:"part_number"`
	Category         string     `gorm:"size:30" json:"category"`
	Quantity         int        `json:"quantity"`
	UnitPrice        float64    `json:"unit_price"`
	Supplier         string     `gorm:"size:120" json:"supplier"`
	Location         string     `gorm:"size:120" json:"location"`
	MinimumStock     int        `json:"minimum_stock"`
	LastPurchaseDate dates.Date `json:"last_purchase_date"`
	Status           string     `gorm:"size:20" json:"status"`
	CreatedAt        time.Time  `json:"-"`
	UpdatedAt        time.Time  `json:"-"`
}
