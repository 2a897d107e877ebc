package audit

import (
	"errors"
	"fmt"

	"fleet-backend/internal/auth"
	"fleet-backend/internal/database"
	"fleet-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

const timeLayout = "2006-01-02 15:04:05"

type AuditLogResponse struct {
	ID          uint               `json:"id"`
	CreatedAt   string             `json:"created_at"`
	UserID      uint               `json:"user_id"`
	UserName    string             `json:"user_name"`
	EntityType  string             `json:"entity_type"`
	EntityID    uint               `json:"entity_id"`
	EntityKey   string             `json:"entity_key"`
	Action      models.AuditAction `json:"action"`
	Description string             `json:"description"`
	IsUndone    bool               `json:"is_undone"`
	UndoneBy    *uint              `json:"undone_by"`
	UndoneAt    *string            `json:"undone_at"`
}

// GET /api/audit-logs?entity_type=truck&entity_id=1&user_id=2&action=update
func ListAuditLogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.AuditLog{})

		if v := c.Query("entity_type"); v != "" {
			dbq = dbq.Where("entity_type = ?", v)
		}
		if v := c.Query("action"); v != "" {
			dbq = dbq.Where("action = ?", v)
		}
		if id, ok := queryID(c, "entity_id"); ok {
			dbq = dbq.Where("entity_id = ?", id)
		}
		if id, ok := queryID(c, "user_id"); ok {
			dbq = dbq.Where("user_id = ?", id)
		}

		var logs []models.AuditLog
		if err := dbq.Order("created_at DESC").Find(&logs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Audit logs could not be listed")
		}

		resp := make([]AuditLogResponse, 0, len(logs))
		for _, l := range logs {
			var undoneAt *string
			if l.UndoneAt != nil {
				s := l.UndoneAt.Format(timeLayout)
				undoneAt = &s
			}
			resp = append(resp, AuditLogResponse{
				ID:          l.ID,
				CreatedAt:   l.CreatedAt.Format(timeLayout),
				UserID:      l.UserID,
				UserName:    l.UserName,
				EntityType:  l.EntityType,
				EntityID:    l.EntityID,
				EntityKey:   l.EntityKey,
				Action:      l.Action,
				Description: l.Description,
				IsUndone:    l.IsUndone,
				UndoneBy:    l.UndoneBy,
				UndoneAt:    undoneAt,
			})
		}

		return c.JSON(resp)
	}
}

// POST /api/audit-logs/:id/undo (admin)
func UndoAuditLogHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var logID uint
		if _, err := fmt.Sscan(c.Params("id"), &logID); err != nil || logID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid log ID")
		}

		userID, userName := auth.Actor(c)
		if userID == 0 {
			return fiber.NewError(fiber.StatusForbidden, "User missing from token")
		}

		if err := UndoLog(logID, userID, userName); err != nil {
			switch {
			case errors.Is(err, ErrAlreadyUndone), errors.Is(err, ErrNotUndoable):
				return fiber.NewError(fiber.StatusConflict, err.Error())
			default:
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
		}

		return c.JSON(fiber.Map{"message": "Change undone"})
	}
}

func queryID(c *fiber.Ctx, key string) (uint, bool) {
	s := c.Query(key)
	if s == "" {
		return 0, false
	}
	var id uint
	if _, err := fmt.Sscan(s, &id); err != nil || id == 0 {
		return 0, false
	}
	return id, true
}
