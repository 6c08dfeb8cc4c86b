package apperrors

// Error codes - organized by domain

// Authentication errors (AUTH_*)
const (
	ErrCodeInvalidCredentials  = "AUTH_INVALID_CREDENTIALS"
	ErrCodeTokenExpired        = "AUTH_TOKEN_EXPIRED"
	ErrCodeTokenInvalid        = "AUTH_TOKEN_INVALID"
	ErrCodeAccountLocked       = "AUTH_ACCOUNT_LOCKED"
	ErrCodeRefreshTokenInvalid = "AUTH_REFRESH_TOKEN_INVALID"
	ErrCodeRefreshTokenExpired = "AUTH_REFRESH_TOKEN_EXPIRED"
	ErrCodeRefreshTokenReused  = "AUTH_REFRESH_TOKEN_REUSED"
)

// Authorization errors (AUTHZ_*)
const (
	ErrCodeForbidden              = "AUTHZ_FORBIDDEN"
	ErrCodeInsufficientPermission = "AUTHZ_INSUFFICIENT_PERMISSION"
)

// Validation errors (VALIDATION_*)
const (
	ErrCodeValidationFailed = "VALIDATION_FAILED"
	ErrCodeInvalidPassword  = "VALIDATION_INVALID_PASSWORD"
	ErrCodeMissingField     = "VALIDATION_MISSING_FIELD"
	ErrCodeInvalidLocale    = "VALIDATION_INVALID_LOCALE"
	ErrCodeInvalidSchedule  = "VALIDATION_INVALID_SCHEDULE"
)

// Resource errors (RESOURCE_*)
const (
	ErrCodeUserNotFound    = "RESOURCE_USER_NOT_FOUND"
	ErrCodeContentNotFound = "RESOURCE_CONTENT_NOT_FOUND"
	ErrCodeSurveyNotFound  = "RESOURCE_SURVEY_NOT_FOUND"
	ErrCodeFAQNotFound     = "RESOURCE_FAQ_NOT_FOUND"
	ErrCodeTierNotFound    = "RESOURCE_TIER_NOT_FOUND"
	ErrCodeResourceExists  = "RESOURCE_ALREADY_EXISTS"
)

// Survey errors (SURVEY_*)
const (
	// Returned when no survey variant exists for a locale. The admin UI
	// hides the survey section on this code rather than showing an error.
	ErrCodeSurveyHidden        = "SURVEY_HIDDEN_FOR_LOCALE"
	ErrCodeSurveyOptionsNeeded = "SURVEY_OPTIONS_REQUIRED"
)

// Rate limiting errors (RATE_*)
const (
	ErrCodeRateLimitExceeded  = "RATE_LIMIT_EXCEEDED"
	ErrCodeLoginLimitExceeded = "RATE_LOGIN_LIMIT_EXCEEDED"
)

// Internal errors (INTERNAL_*)
const (
	ErrCodeDatabaseError     = "INTERNAL_DATABASE_ERROR"
	ErrCodeNotifySendFailed  = "INTERNAL_NOTIFY_SEND_FAILED"
	ErrCodeExportFailed      = "INTERNAL_EXPORT_FAILED"
	ErrCodeUnexpectedError   = "INTERNAL_UNEXPECTED_ERROR"
)
