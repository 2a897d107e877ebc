// Package compliance serves visas, vehicle insurance and TIR customs
// carnets. Records get codes V001, I001 and TIR001.
package compliance

import (
	"fleet-backend/internal/apiutil"
	"fleet-backend/internal/dates"
	"fleet-backend/internal/listview"
	"fleet-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

const (
	VisaPrefix      = "V"
	InsurancePrefix = "I"
	TIRPrefix       = "TIR"
)

func recordStatus(status string) (string, error) {
	return apiutil.Enum("status", status, models.RecordPending,
		models.RecordPending, models.RecordPaid, models.RecordOverdue)
}

// prepareRecord checks the fields visas and insurance share.
func prepareRecord(r *models.ComplianceRecord, fees map[string]float64) error {
	fees["amount"] = r.Amount
	if err := apiutil.NonNegative(fees); err != nil {
		return err
	}
	status, err := recordStatus(r.Status)
	if err != nil {
		return err
	}
	r.Status = status
	return nil
}

// RecordSummary is the aggregate shown above visa and insurance lists.
type RecordSummary struct {
	Count        int     `json:"count"`
	TotalAmount  float64 `json:"total_amount"`
	Pending      int     `json:"pending"`
	Overdue      int     `json:"overdue"`
	ExpiringSoon int     `json:"expiring_soon"`
}

// ExpiryWindowDays is how far ahead ExpiringSoon looks.
const ExpiryWindowDays = 30

func expiringSoon(expiry dates.Date, today dates.Date) bool {
	if !expiry.Valid() || expiry.Before(today) {
		return false
	}
	limit := dates.FromTime(today.AddDate(0, 0, ExpiryWindowDays))
	return !limit.Before(expiry)
}

func summarizeRecords[T any](recs []T, base func(T) models.ComplianceRecord, expiry func(T) dates.Date, today dates.Date) RecordSummary {
	return RecordSummary{
		Count:        len(recs),
		TotalAmount:  listview.Sum(recs, func(r T) float64 { return base(r).Amount }),
		Pending:      listview.Count(recs, func(r T) bool { return base(r).Status == models.RecordPending }),
		Overdue:      listview.Count(recs, func(r T) bool { return base(r).Status == models.RecordOverdue }),
		ExpiringSoon: listview.Count(recs, func(r T) bool { return expiringSoon(expiry(r), today) }),
	}
}

// Register mounts the compliance routes. write guards mutations.
func Register(router fiber.Router, write ...fiber.Handler) {
	Visas.Mount(router, "/visa", write...)
	Insurance.Mount(router, "/insurance", write...)
	TIRDocuments.Mount(router, "/tir", write...)
}
