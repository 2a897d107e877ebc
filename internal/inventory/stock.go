package inventory

import (
	"fmt"

	"fleet-backend/internal/apiutil"
	"fleet-backend/internal/audit"
	"fleet-backend/internal/auth"
	"fleet-backend/internal/database"
	"fleet-backend/internal/dates"
	"fleet-backend/internal/finance"
	"fleet-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type StockCountRequest struct {
	Quantity int        `json:"quantity"`
	Date     dates.Date `json:"date"`
	// Purchase marks a restock; the count date becomes the last purchase date.
	Purchase bool `json:"purchase"`
}

// POST /api/parts/:id/stock-count
//
// The counted quantity becomes the new stock level.
func StockCountHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body StockCountRequest
		if _, err := apiutil.Decode(c, &body, apiutil.Rules{
			Required: []string{"quantity"},
			Ints:     []string{"quantity"},
			Bools:    []string{"purchase"},
		}); err != nil {
			return err
		}
		if body.Quantity < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "quantity must not be negative")
		}

		part, err := Parts.Find(c)
		if err != nil {
			return err
		}
		before := *part

		part.Quantity = body.Quantity
		part.Status = string(finance.StockStatus(part.Quantity, part.MinimumStock))
		if body.Purchase {
			part.LastPurchaseDate = body.Date
			if !part.LastPurchaseDate.Valid() {
				part.LastPurchaseDate = dates.Today()
			}
		}
		if err := database.DB.Save(part).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Stock count could not be saved")
		}

		userID, userName := auth.Actor(c)
		audit.Record(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "part",
			EntityID:    part.ID,
			EntityKey:   part.Code,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Stock count %s: %d -> %d", part.Code, before.Quantity, part.Quantity),
			Before:      before,
			After:       part,
		})

		return c.JSON(fiber.Map{
			"message": "Stock updated successfully",
			"record":  part,
		})
	}
}

// GET /api/parts/low-stock lists parts at or below their minimum.
func LowStockHandler() fiber.Handler {
	return Parts.WhereHandler(func(*fiber.Ctx) (string, []any, error) {
		return "status IN ?", []any{[]string{string(finance.PartLowStock), string(finance.PartOutOfStock)}}, nil
	})
}
