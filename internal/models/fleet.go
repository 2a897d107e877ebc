package models

import (
	"time"

	"fleet-backend/internal/dates"
)

type Truck struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	TruckNumber  string     `gorm:"size:40;uniqueIndex;not null" json:"truck_number"`
	Driver       string     `gorm:"size:120;index" json:"driver"`
	Year         int        `json:"year"`
	VehicleUnder string     `gorm:"size:120" json:"vehicle_under"`
	TrailerNo    string     `gorm:"size:40" json:"trailer_no"`
	Country      string     `gorm:"size:40" json:"country"`
	MulkiyaExp   dates.Date `json:"mulkiya_exp"`
	InsExp       dates.Date `json:"ins_exp"`
	TruckValue   float64    `json:"truck_value"`
	CreatedAt    time.Time  `json:"-"`
	UpdatedAt    time.Time  `json:"-"`
}

type Trailer struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	TrailerNo    string     `gorm:"size:40;uniqueIndex;not null" json:"trailer_no"`
	CompanyUnder string     `gorm:"size:120" json:"company_under"`
	MulkiyaExp   dates.Date `json:"mulkiya_exp"`
	OmanInsExp   dates.Date `json:"oman_ins_exp"`
	AssetValue   float64    `json:"asset_value"`
	CreatedAt    time.Time  `json:"-"`
	UpdatedAt    time.Time  `json:"-"`
}

type OutsideOwner struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"size:120;uniqueIndex;not null" json:"name"`
	ContactPerson  string    `gorm:"size:120" json:"contact_person"`
	PhoneNumber    string    `gorm:"size:40" json:"phone_number"`
	WhatsappNumber string    `gorm:"size:40" json:"whatsapp_number"`
	Address        string    `gorm:"size:255" json:"address"`
	Remarks        string    `gorm:"size:255" json:"remarks"`
	CreatedAt      time.Time `json:"-"`
	UpdatedAt      time.Time `json:"-"`
}

type OutsideTruck struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	TruckNumber  string     `gorm:"size:40;uniqueIndex;not null" json:"truck_number"`
	Owner        string     `gorm:"size:120;index" json:"owner"`
	Driver       string     `gorm:"size:120;index" json:"driver"`
	Year         int        `json:"year"`
	VehicleUnder string     `gorm:"size:120" json:"vehicle_under"`
	TrailerNo    string     `gorm:"size:40" json:"trailer_no"`
	Country      string     `gorm:"size:40" json:"country"`
	MulkiyaExp   dates.Date `json:"mulkiya_exp"`
	InsExp       dates.Date `json:"ins_exp"`
	CreatedAt    time.Time  `json:"-"`
	UpdatedAt    time.Time  `json:"-"`
}

type OutsideTrailer struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	TrailerNo    string     `gorm:"size:40;uniqueIndex;not null" json:"trailer_no"`
	Owner        string     `gorm:"size:120;index" json:"owner"`
	CompanyUnder string     `gorm:"size:120" json:"company_under"`
	MulkiyaExp   dates.Date `json:"mulkiya_exp"`
	OmanInsExp   dates.Date `json:"oman_ins_exp"`
	CreatedAt    time.Time  `json:"-"`
	UpdatedAt    time.Time  `json:"-"`
}

// Company is a legal entity trucks and visas are registered under.
type Company struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:120;uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"-"`
}
