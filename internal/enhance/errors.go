package enhance

import "errors"

var (
	// ErrNotConfigured means no API key was provided at startup.
	ErrNotConfigured = errors.New("enhancement provider not configured")

	// ErrInvalidAPIKey means the provider rejected the configured key.
	ErrInvalidAPIKey = errors.New("invalid api key")

	// ErrRateLimited means the provider throttled the request.
	ErrRateLimited = errors.New("rate limited")

	// ErrQuotaExceeded means the provider account is out of quota.
	ErrQuotaExceeded = errors.New("quota exceeded")

	// ErrPaymentRequired means the provider account needs payment.
	ErrPaymentRequired = errors.New("payment required")

	// ErrEmptyText means there is nothing to enhance.
	ErrEmptyText = errors.New("text is empty")
)
