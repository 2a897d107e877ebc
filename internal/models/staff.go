package models

import (
	"time"

	"fleet-backend/internal/dates"
)

const DesignationDriver = "driver"

// Employee is keyed by name in URLs; ID is internal.
type Employee struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Employee        string     `gorm:"size:120;uniqueIndex;not null" json:"employee"`
	ReferedAs       string     `gorm:"size:120" json:"refered_as"`
	Designation     string     `gorm:"size:60;index" json:"designation"`
	ContactNo       string     `gorm:"size:40" json:"contact_no"`
	WhatsappNo      string     `gorm:"size:40" json:"whatsapp_no"`
	Salary          float64    `json:"salary"`
	VisaOutstanding float64    `json:"visa_outstanding"`
	AdvanceAvl      float64    `json:"advance_avl"`
	VisaUnder       string     `gorm:"size:120" json:"visa_under"`
	VisaExp         dates.Date `json:"visa_exp"`
	Nationality     string     `gorm:"size:60" json:"nationality"`
	EID             string     `gorm:"column:eid;size:40" json:"eid"`
	HealthInsExp    dates.Date `json:"health_ins_exp"`
	EmpInsExp       dates.Date `json:"emp_ins_exp"`
	LicenseExp      dates.Date `json:"license_exp"`
	CreatedAt       time.Time  `json:"-"`
	UpdatedAt       time.Time  `json:"-"`
}

// OutsideEmployee works for an outside owner.
type OutsideEmployee struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Employee     string     `gorm:"size:120;uniqueIndex;not null" json:"employee"`
	Owner        string     `gorm:"size:120;index" json:"owner"`
	ReferedAs    string     `gorm:"size:120" json:"refered_as"`
	Designation  string     `gorm:"size:60" json:"designation"`
	ContactNo    string     `gorm:"size:40" json:"contact_no"`
	WhatsappNo   string     `gorm:"size:40" json:"whatsapp_no"`
	VisaUnder    string     `gorm:"size:120" json:"visa_under"`
	VisaExp      dates.Date `json:"visa_exp"`
	Nationality  string     `gorm:"size:60" json:"nationality"`
	EID          string     `gorm:"column:eid;size:40" json:"eid"`
	HealthInsExp dates.Date `json:"health_ins_exp"`
	EmpInsExp    dates.Date `json:"emp_ins_exp"`
	LicenseExp   dates.Date `json:"license_exp"`
	CreatedAt    time.Time  `json:"-"`
	UpdatedAt    time.Time  `json:"-"`
}
