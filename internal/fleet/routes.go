// Package fleet serves the company's own trucks and trailers, the outside
// owners' vehicles and the companies vehicles are registered under.
package fleet

import (
	"fleet-backend/internal/document"
	"fleet-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

func init() {
	owners := map[string]document.Owner{
		"trucks":         {Type: models.OwnerTruck, NewModel: func() any { return &models.Truck{} }, Column: "truck_number"},
		"trailers":       {Type: models.OwnerTrailer, NewModel: func() any { return &models.Trailer{} }, Column: "trailer_no"},
		"other-trucks":   {Type: models.OwnerOutsideTruck, NewModel: func() any { return &models.OutsideTruck{} }, Column: "truck_number"},
		"other-trailers": {Type: models.OwnerOutsideTrailer, NewModel: func() any { return &models.OutsideTrailer{} }, Column: "trailer_no"},
	}
	for segment, o := range owners {
		document.RegisterOwner(segment, o)
	}
}

// Register mounts the fleet routes. write guards mutations.
func Register(router fiber.Router, write ...fiber.Handler) {
	router.Get("/company-under", Companies.NamesHandler("name"))
	Companies.Mount(router, "/companies", write...)

	router.Get("/trucks-num", Trucks.NamesHandler("truck_number"))
	router.Get("/trucks/by-driver/:driver", Trucks.NamesWhereHandler("truck_number", "driver", "driver"))
	Trucks.Mount(router, "/trucks", write...)

	router.Get("/other-trucks-num", OutsideTrucks.NamesHandler("truck_number"))
	router.Get("/other-trucks/by-driver/:driver", OutsideTrucks.NamesWhereHandler("truck_number", "driver", "driver"))
	OutsideTrucks.Mount(router, "/other-trucks", write...)

	Trailers.Mount(router, "/trailers", write...)
	OutsideTrailers.Mount(router, "/other-trailers", write...)

	OutsideOwners.Mount(router, "/other-owners", write...)
}
