package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/crestfield/internal/core/domain"
)

// ListStationsHandler returns the stations matching ?q=, paginated.
func ListStationsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stations, err := deps.Stations.Search(c.UserContext(), c.Query("q"))
		if err != nil {
			return errFromDomain(c, err)
		}

		offset, limit := pageParams(c, 50, 200)
		pg := Pagination{Offset: offset, Limit: limit, Total: len(stations)}
		SetLinkHeaders(c, pg)
		return c.JSON(PaginatedResponse{Data: paginate(stations, offset, limit), Pagination: pg})
	}
}

// StationsGeoJSONHandler returns the stations matching ?q= as a FeatureCollection.
func StationsGeoJSONHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stations, err := deps.Stations.Search(c.UserContext(), c.Query("q"))
		if err != nil {
			return errFromDomain(c, err)
		}
		if err := c.JSON(domain.FeatureCollection(stations)); err != nil {
			return err
		}
		c.Set(fiber.HeaderContentType, "application/geo+json")
		return nil
	}
}

// NearbyStationsHandler returns stations within ?radius= meters of ?lat=&lon=, nearest first.
func NearbyStationsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Query("lat") == "" || c.Query("lon") == "" {
			return errBadRequest(c, "lat and lon are required")
		}
		lat, err := strconv.ParseFloat(c.Query("lat"), 64)
		if err != nil {
			return errBadRequest(c, "lat must be a number")
		}
		lon, err := strconv.ParseFloat(c.Query("lon"), 64)
		if err != nil {
			return errBadRequest(c, "lon must be a number")
		}
		radius, err := strconv.ParseFloat(c.Query("radius", "0"), 64)
		if err != nil || radius < 0 || radius > 1_000_000 {
			return errBadRequest(c, "radius must be between 0 and 1000000 meters")
		}

		stations, err := deps.Stations.FindNearby(c.UserContext(), lat, lon, radius, c.QueryInt("limit", 10))
		if err != nil {
			return errFromDomain(c, err)
		}
		return c.JSON(stations)
	}
}

// RegionsHandler lists the distinct station regions.
func RegionsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		regions, err := deps.Stations.Regions(c.UserContext())
		if err != nil {
			return errFromDomain(c, err)
		}
		return c.JSON(regions)
	}
}

// GetStationHandler returns a single station.
func GetStationHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		st, err := stationParam(c, deps)
		if err != nil {
			return errFromDomain(c, err)
		}
		return c.JSON(st)
	}
}

// ServicesHandler returns the services catalogue.
func ServicesHandler() fiber.Handler {
	catalogue := domain.ServiceCatalogue()
	return func(c *fiber.Ctx) error {
		return c.JSON(catalogue)
	}
}

var errBadStationID = errors.New("station id must be a positive integer")

// stationParam resolves the :id route parameter.
func stationParam(c *fiber.Ctx, deps *Dependencies) (*domain.Station, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return nil, errBadStationID
	}
	return deps.Stations.GetByID(c.UserContext(), id)
}
