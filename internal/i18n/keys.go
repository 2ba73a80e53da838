package i18n

// Error message keys.
const (
	ErrKeyInvalidRequest     = "error.invalid_request"
	ErrKeyInvalidRequestBody = "error.invalid_request_body"
	ErrKeyInternalError      = "error.internal_error"
	ErrKeyUnauthorized       = "error.unauthorized"
	ErrKeyInvalidCredentials = "error.invalid_credentials"
	ErrKeyAPIKeyRequired     = "error.api_key_required"
	ErrKeyInvalidAPIKey      = "error.invalid_api_key"
	ErrKeyForbidden          = "error.forbidden"
	ErrKeyNotFound           = "error.not_found"
	ErrKeyPackageNotFound    = "error.package_not_found"
	ErrKeyItineraryNotFound  = "error.itinerary_not_found"
	ErrKeyCategoryNotFound   = "error.category_not_found"
	ErrKeyTrendingNotFound   = "error.trending_not_found"
	ErrKeyCatalogNotReady    = "error.catalog_not_ready"
	ErrKeyRateLimitExceeded  = "error.rate_limit_exceeded"
	ErrKeyConflict           = "error.conflict"
	ErrKeyInvalidToken       = "error.invalid_token"
	ErrKeyTokenRequired      = "error.token_required"
	ErrKeyTimeout            = "error.timeout"
	ErrKeyUnavailable        = "error.service_unavailable"
	ErrKeyUpstreamFailed     = "error.upstream_failed"

	// Catalog query validation.
	ErrKeyInvalidPriceBracket    = "error.validation.price_bracket"
	ErrKeyInvalidDurationBracket = "error.validation.duration_bracket"
	ErrKeyInvalidSortKey         = "error.validation.sort_key"
	ErrKeyInvalidRating          = "error.validation.rating"

	// Lead form validation.
	ErrKeyInvalidLead = "error.validation.lead"
)

// Success message keys.
const (
	SuccessKeyLeadReceived     = "success.lead_received"
	SuccessKeyCatalogRefreshed = "success.catalog_refreshed"
)
