package models

import (
	"time"

	"fleet-backend/internal/dates"
)

// OwnerType names the record a document hangs off.
type OwnerType string

const (
	OwnerEmployee        OwnerType = "employee"
	OwnerOutsideEmployee OwnerType = "outside_employee"
	OwnerTruck           OwnerType = "truck"
	OwnerTrailer         OwnerType = "trailer"
	OwnerOutsideTruck    OwnerType = "outside_truck"
	OwnerOutsideTrailer  OwnerType = "outside_trailer"
	OwnerMaintenance     OwnerType = "maintenance"
	OwnerFine            OwnerType = "fine"
	OwnerSalary          OwnerType = "salary"
)

// Document is one stored file. There is at most one per (owner, type).
type Document struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	OwnerType   OwnerType  `gorm:"size:30;uniqueIndex:idx_document_owner_type;not null" json:"owner_type"`
	OwnerKey    string     `gorm:"size:120;uniqueIndex:idx_document_owner_type;not null" json:"owner_key"`
	Type        string     `gorm:"size:60;uniqueIndex:idx_document_owner_type;not null" json:"type"`
	FileName    string     `gorm:"size:255" json:"file_name"`
	StoredPath  string     `gorm:"size:500" json:"-"`
	ContentType string     `gorm:"size:100" json:"content_type"`
	Size        int64      `json:"size"`
	UploadDate  dates.Date `json:"uploadDate"`
	CreatedAt   time.Time  `json:"-"`
}
