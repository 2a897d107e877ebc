package models

import "time"

type Client struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"size:120;uniqueIndex;not null" json:"name"`
	Address       string    `gorm:"size:255" json:"address"`
	TelNo         string    `gorm:"size:40" json:"tel_no"`
	POBox         string    `gorm:"column:po_box;size:40" json:"po_box"`
	TRNNo         string    `gorm:"column:trn_no;size:40" json:"trn_no"`
	ContactPerson string    `gorm:"size:120" json:"contact_person"`
	PersonNumber  string    `gorm:"size:40" json:"person_number"`
	CreatedAt     time.Time `json:"-"`
	UpdatedAt     time.Time `json:"-"`
}

type Supplier struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"size:120;uniqueIndex;not null" json:"name"`
	TelNo         string    `gorm:"size:40" json:"tel_no"`
	ContactPerson string    `gorm:"size:120" json:"contact_person"`
	PhoneNo       string    `gorm:"size:40" json:"phone_no"`
	About         string    `gorm:"size:255" json:"about"`
	CreatedAt     time.Time `json:"-"`
	UpdatedAt     time.Time `json:"-"`
}
