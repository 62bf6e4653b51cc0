// Package i18n provides internationalization support for the costing service.
package i18n

// Error message translation keys.
const (
	// ErrKeyInvalidRequest indicates an invalid request.
	ErrKeyInvalidRequest = "error.invalid_request"
	// ErrKeyInvalidRequestBody indicates an invalid request body.
	ErrKeyInvalidRequestBody = "error.invalid_request_body"
	// ErrKeyInternalError indicates an internal server error.
	ErrKeyInternalError = "error.internal_error"
	// ErrKeyUnauthorized indicates missing or invalid authentication.
	ErrKeyUnauthorized = "error.unauthorized"
	// ErrKeyInvalidCredentials indicates invalid login credentials.
	ErrKeyInvalidCredentials = "error.invalid_credentials"
	// ErrKeyAPIKeyRequired indicates that an API key is required.
	ErrKeyAPIKeyRequired = "error.api_key_required"
	// ErrKeyInvalidAPIKey indicates an invalid API key.
	ErrKeyInvalidAPIKey = "error.invalid_api_key"
	// ErrKeyForbidden indicates insufficient permissions.
	ErrKeyForbidden = "error.forbidden"
	// ErrKeyNotFound indicates a resource was not found.
	ErrKeyNotFound = "error.not_found"
	// ErrKeySessionNotFound indicates a costing session was not found or expired.
	ErrKeySessionNotFound = "error.session_not_found"
	// ErrKeyRateLimitExceeded indicates rate limit exceeded.
	ErrKeyRateLimitExceeded = "error.rate_limit_exceeded"
	// ErrKeyConflict indicates a conflict with current state.
	ErrKeyConflict = "error.conflict"
	// ErrKeyIncompleteStep indicates a wizard step is missing required data.
	ErrKeyIncompleteStep = "error.incomplete_step"
	// ErrKeyZeroPurchaseQuantity indicates a purchase quantity of zero.
	ErrKeyZeroPurchaseQuantity = "error.zero_purchase_quantity"
	// ErrKeyNotAllCosted indicates ingredients remain without costing.
	ErrKeyNotAllCosted = "error.not_all_costed"
	// ErrKeySessionEnded indicates an accepted session can no longer be changed.
	ErrKeySessionEnded = "error.session_ended"
	// ErrKeyTooManySessions indicates the session store is at capacity.
	ErrKeyTooManySessions = "error.too_many_sessions"
	// ErrKeyInvalidToken indicates an invalid or expired JWT token.
	ErrKeyInvalidToken = "error.invalid_token"
	// ErrKeyTokenRequired indicates that a JWT token is required.
	ErrKeyTokenRequired = "error.token_required"
	// ErrKeyTimeout indicates a request timeout.
	ErrKeyTimeout = "error.timeout"
)

// Success message translation keys.
const (
	// SuccessKeyCostCalculated indicates a successful cost aggregation.
	SuccessKeyCostCalculated = "success.cost_calculated"
	// SuccessKeyCostAccepted indicates the operator accepted a cost result.
	SuccessKeyCostAccepted = "success.cost_accepted"
)
