package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/crestfield/internal/adapters/geoip"
	"github.com/samirrijal/crestfield/internal/core/domain"
	"github.com/samirrijal/crestfield/internal/core/ports"
	"github.com/samirrijal/crestfield/internal/mapview"
)

// MapSession is the response for a mounted map.
type MapSession struct {
	ID        string       `json:"id"`
	EventsURL string       `json:"events_url"`
	View      mapview.View `json:"view"`
}

func sessionResponse(s *mapview.Session) MapSession {
	return MapSession{
		ID:        s.ID,
		EventsURL: "/v1/map/sessions/" + s.ID + "/events",
		View:      s.View(),
	}
}

// MountMapHandler mounts a map over the stations matching ?q= and starts its SDK load.
func MountMapHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stations, err := deps.Stations.Search(c.UserContext(), c.Query("q"))
		if err != nil {
			return errFromDomain(c, err)
		}
		s, err := deps.Maps.Mount(c.UserContext(), stations)
		if err != nil {
			return errFromDomain(c, err)
		}
		c.Location("/v1/map/sessions/" + s.ID)
		return c.Status(fiber.StatusCreated).JSON(sessionResponse(s))
	}
}

// GetMapHandler returns a session snapshot. With ?wait=true it blocks until the
// SDK load has settled or the request times out.
func GetMapHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := deps.Maps.Get(c.Params("id"))
		if err != nil {
			return errFromDomain(c, err)
		}
		if c.QueryBool("wait") {
			ctx, cancel := context.WithTimeout(c.UserContext(), 10*time.Second)
			defer cancel()
			_, _ = s.Settled(ctx)
		}
		return c.JSON(sessionResponse(s))
	}
}

// RetryMapHandler restarts a failed SDK load.
func RetryMapHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := deps.Maps.Get(c.Params("id"))
		if err != nil {
			return errFromDomain(c, err)
		}
		if err := s.Retry(c.UserContext()); err != nil {
			return errFromDomain(c, err)
		}
		return c.Status(fiber.StatusAccepted).JSON(sessionResponse(s))
	}
}

// MarkerPopupHandler opens the popup for a station marker.
func MarkerPopupHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := deps.Maps.Get(c.Params("id"))
		if err != nil {
			return errFromDomain(c, err)
		}
		id, err := c.ParamsInt("stationId")
		if err != nil || id <= 0 {
			return errFromDomain(c, errBadStationID)
		}
		popup, err := s.ClickMarker(id)
		if err != nil {
			return errFromDomain(c, err)
		}
		return c.JSON(popup)
	}
}

type selectRequest struct {
	StationID int `json:"station_id"`
}

// SelectStationHandler marks a station as selected on the map.
func SelectStationHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := deps.Maps.Get(c.Params("id"))
		if err != nil {
			return errFromDomain(c, err)
		}
		var req selectRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if req.StationID <= 0 {
			return errFromDomain(c, errBadStationID)
		}
		st, err := s.SelectStation(req.StationID)
		if err != nil {
			return errFromDomain(c, err)
		}
		return c.JSON(st)
	}
}

// positionPayload is what the browser's geolocation capability reported.
// Timestamp is milliseconds since the epoch.
type positionPayload struct {
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	Accuracy  float64 `json:"accuracy"`
	Timestamp int64   `json:"timestamp"`
}

type routeRequest struct {
	StationID int              `json:"station_id"`
	Position  *positionPayload `json:"position"`
	Denied    bool             `json:"denied"`
}

// RouteHandler computes a driving route from the caller to a station and
// displays it on the session's map.
func RouteHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := deps.Maps.Get(c.Params("id"))
		if err != nil {
			return errFromDomain(c, err)
		}
		var req routeRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if req.StationID <= 0 {
			return errFromDomain(c, errBadStationID)
		}

		route, err := s.ShowRoute(c.UserContext(), req.StationID, positionSource(deps, c.IP(), req))
		if err != nil {
			return errFromDomain(c, err)
		}
		return c.JSON(route)
	}
}

// positionSource returns nil when nothing can report a position, which makes
// the route start at the map center.
func positionSource(deps *Dependencies, ip string, req routeRequest) ports.PositionSource {
	var chain geoip.Chain
	if req.Denied || req.Position != nil {
		reported := geoip.Reported{Denied: req.Denied}
		if p := req.Position; p != nil {
			reported.Position = &domain.Position{
				Point:    domain.GeoPoint{Lat: p.Lat, Lon: p.Lon},
				Accuracy: p.Accuracy,
			}
			if p.Timestamp > 0 {
				reported.Position.Timestamp = time.UnixMilli(p.Timestamp)
			}
		}
		chain = append(chain, reported)
	}
	if deps.IPLookup != nil {
		chain = append(chain, deps.IPLookup.ForIP(ip))
	}
	if len(chain) == 0 {
		return nil
	}
	return chain
}

// UnmountMapHandler closes a session.
func UnmountMapHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := deps.Maps.Unmount(c.Params("id")); err != nil {
			return errFromDomain(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
