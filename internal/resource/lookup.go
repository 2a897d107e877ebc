package resource

import (
	"fleet-backend/internal/apiutil"
	"fleet-backend/internal/database"

	"github.com/gofiber/fiber/v2"
)

// NamesHandler answers with one column of every record, e.g. the truck
// numbers for a picker.
func (r *Resource[T]) NamesHandler(column string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		names := []string{}
		if err := database.DB.Model(new(T)).Order(column+" asc").Pluck(column, &names).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch "+r.cfg.Entity+" names")
		}
		return c.JSON(names)
	}
}

// NamesWhereHandler is NamesHandler narrowed to rows whose where column
// equals the route parameter param.
func (r *Resource[T]) NamesWhereHandler(column, where, param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		value, err := apiutil.NaturalKey(c, param)
		if err != nil {
			return err
		}
		names := []string{}
		if err := database.DB.Model(new(T)).Where(where+" = ?", value).Order(column+" asc").Pluck(column, &names).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch "+r.cfg.Entity+" names")
		}
		return c.JSON(names)
	}
}

// WhereHandler lists the records matching conditions built from the
// request. A nil build error means the query can run.
func (r *Resource[T]) WhereHandler(build func(c *fiber.Ctx) (string, []any, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		query, args, err := build(c)
		if err != nil {
			return err
		}
		recs := []T{}
		if err := database.DB.Where(query, args...).Order(r.cfg.Order).Find(&recs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch "+r.cfg.Entity+" records")
		}
		return c.JSON(recs)
	}
}
