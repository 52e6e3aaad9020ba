package leads

import "errors"

var (
	// ErrDuplicateEmail is returned when an early access email is already registered
	ErrDuplicateEmail = errors.New("email already registered for early access")

	// ErrRateLimited is returned when a key exhausted its submission window
	ErrRateLimited = errors.New("submission rate limit exceeded")

	// ErrVerificationFailed is returned when the captcha oracle rejected the token
	ErrVerificationFailed = errors.New("captcha verification failed")

	// ErrLowScore is returned when the oracle accepted the token but scored it below the threshold
	ErrLowScore = errors.New("captcha score below threshold")

	// ErrNotFound is returned when a lead lookup finds nothing
	ErrNotFound = errors.New("lead not found")
)

// User-facing messages for each failure path. Only these sentences cross the
// system boundary; structured causes stay in the logs.
const (
	msgValidation   = "Please correct the highlighted fields."
	msgRateLimited  = "You have reached your request limit. Please try again later."
	msgVerifyFailed = "reCAPTCHA verification failed. Please try again."
	msgLowScore     = "Security verification failed. Please try again."
	msgDuplicate    = "This email has already been registered for early access."
	msgPersistence  = "Something went wrong. Please try again later."
)
