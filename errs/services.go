package errs

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"
)

// Spam-prevention & workflow Errors
var (
	ErrCooldownActive       = errors.New("cooldown active")
	ErrConfirmationRequired = errors.New("confirmation required")
	ErrMessageTooShort      = errors.New("message too short")
)

// Third-Party Service Errors
var ErrServiceUnavailable = errors.New("service unavailable")

// NewCooldownError reports the remaining wait rounded up to whole seconds.
func NewCooldownError(remaining time.Duration) *ApiErr {
	seconds := int(math.Ceil(remaining.Seconds()))
	if seconds < 1 {
		seconds = 1
	}
	return &ApiErr{
		StatusCode: http.StatusTooManyRequests,
		err:        ErrCooldownActive,
		Details:    fmt.Sprintf("Please wait %d seconds before submitting again.", seconds),
		Field:      "cooldown",
		RetryAfter: time.Duration(seconds) * time.Second,
	}
}

func NewConfirmationRequiredError(action string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusPreconditionRequired,
		err:        ErrConfirmationRequired,
		Details:    fmt.Sprintf("Confirm %s by repeating the request with confirm=true", action),
		Field:      "confirm",
	}
}

func NewMessageTooShortError(minLength int) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrMessageTooShort,
		Details:    fmt.Sprintf("Please provide a more detailed message (at least %d characters).", minLength),
		Field:      "message",
	}
}

func NewServiceUnavailableError(service string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusServiceUnavailable,
		err:        ErrServiceUnavailable,
		Details:    fmt.Sprintf("%s is not configured or unreachable", service),
		Cause:      cause,
	}
}

func IsCooldownActive(err error) bool {
	return errors.Is(err, ErrCooldownActive)
}

func IsMessageTooShort(err error) bool {
	return errors.Is(err, ErrMessageTooShort)
}

// NewPayloadTooLargeError rejects an upload batch because one file is over the limit.
func NewPayloadTooLargeError(fileName string, maxMB int) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusRequestEntityTooLarge,
		err:        ErrMaxBodySizeExceeded,
		Details:    fmt.Sprintf("File %q is too large (max %dMB). Please compress it before uploading.", fileName, maxMB),
		Field:      "files",
	}
}
