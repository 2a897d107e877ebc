package resource

import (
	"fleet-backend/internal/listview"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Query parameters with a fixed meaning; everything else is a filter.
const (
	SortParam    = "sort"
	DirParam     = "dir"
	CountryParam = "country"
)

// ListParams turns ?sort=&dir= and the remaining query parameters into a
// sort spec and filters. An unknown sort key gives no sort.
func ListParams[T any](c *fiber.Ctx, schema *listview.Schema[T]) (listview.Filters, listview.SortSpec, error) {
	filters := listview.Filters{}
	for k, v := range c.Queries() {
		switch k {
		case SortParam, DirParam, CountryParam:
			continue
		}
		filters[k] = v
	}

	key := c.Query(SortParam)
	if key == "" || !schema.HasSort(key) {
		return filters, listview.None(), nil
	}
	dir := schema.DefaultDirection(key)
	if raw := c.Query(DirParam); raw != "" {
		d, err := listview.ParseDirection(raw)
		if err != nil {
			return nil, listview.None(), fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		dir = d
	}
	return filters, listview.ByField(key, dir), nil
}

// ExactCountry narrows ?country= to a case-insensitive exact match on column.
func ExactCountry(column string) func(c *fiber.Ctx, q *gorm.DB) *gorm.DB {
	return func(c *fiber.Ctx, q *gorm.DB) *gorm.DB {
		if country := c.Query(CountryParam); country != "" {
			q = q.Where("LOWER("+column+") = LOWER(?)", country)
		}
		return q
	}
}
