package errors

import "net/http"

var (
	ErrLotNotFound = New(
		"LOT_NOT_FOUND",
		"Parking lot not found",
		http.StatusNotFound,
	)

	ErrBookingNotFound = New(
		"BOOKING_NOT_FOUND",
		"Booking not found",
		http.StatusNotFound,
	)

	ErrSessionNotFound = New(
		"SESSION_NOT_FOUND",
		"Search session not found",
		http.StatusNotFound,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidRadius = New(
		"INVALID_RADIUS",
		"Invalid radius value",
		http.StatusBadRequest,
	)

	ErrLocationUnavailable = New(
		"LOCATION_UNAVAILABLE",
		"Device location is unavailable",
		http.StatusServiceUnavailable,
	)

	ErrResolutionFailed = New(
		"RESOLUTION_FAILED",
		"Could not resolve the requested place",
		http.StatusUnprocessableEntity,
	)

	ErrBookingConflict = New(
		"BOOKING_CONFLICT",
		"No spots left for the requested time window",
		http.StatusConflict,
	)

	ErrBookingInvalidWindow = New(
		"BOOKING_INVALID_WINDOW",
		"Booking duration must be positive",
		http.StatusBadRequest,
	)

	ErrBookingNotActive = New(
		"BOOKING_NOT_ACTIVE",
		"Only active bookings can be cancelled",
		http.StatusConflict,
	)

	ErrUpstreamService = New(
		"UPSTREAM_SERVICE_ERROR",
		"Upstream service call failed",
		http.StatusBadGateway,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrUnauthorized = New(
		"UNAUTHORIZED",
		"Missing or invalid manager credentials",
		http.StatusUnauthorized,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
