package errors

import "net/http"

var (
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

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrCityNotFound = New(
		"CITY_NOT_FOUND",
		"No city matched the given name",
		http.StatusNotFound,
	)

	// ErrTooManyRequests - все попытки уперлись в лимиты сервиса данных;
	// клиенту стоит подождать перед повтором
	ErrTooManyRequests = New(
		"TOO_MANY_REQUESTS",
		"Geo data service is rate limiting, wait before retrying",
		http.StatusTooManyRequests,
	)

	ErrUpstreamUnavailable = New(
		"UPSTREAM_UNAVAILABLE",
		"Geo data service is unavailable, try again later",
		http.StatusBadGateway,
	)

	ErrSessionNotFound = New(
		"SESSION_NOT_FOUND",
		"Heading session not found",
		http.StatusNotFound,
	)

	ErrOrientationUnsupported = New(
		"ORIENTATION_UNSUPPORTED",
		"No orientation provider is available on this device",
		http.StatusUnprocessableEntity,
	)

	ErrOrientationDenied = New(
		"ORIENTATION_PERMISSION_DENIED",
		"Orientation sensor permission was denied",
		http.StatusForbidden,
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

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
