package domain

import "errors"

var (
	ErrStationNotFound     = errors.New("station not found")
	ErrQueryTooLong        = errors.New("search query too long")
	ErrInvalidCoordinates  = errors.New("invalid coordinates")
	ErrUnknownProvider     = errors.New("unknown directions provider")
	ErrInvalidMessage      = errors.New("invalid chat message")
	ErrSDKUnavailable      = errors.New("mapping sdk unavailable")
	ErrMissingAPIKey       = errors.New("mapping sdk api key not configured")
	ErrRouteUnavailable    = errors.New("route unavailable")
	ErrPermissionDenied    = errors.New("geolocation permission denied")
	ErrPositionUnavailable = errors.New("position unavailable")
	ErrMapNotReady         = errors.New("map is not ready")
	ErrSessionNotFound     = errors.New("map session not found")
	ErrInquiryNotFound     = errors.New("inquiry not found")
)
