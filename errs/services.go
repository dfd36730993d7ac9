package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Upload & outbound service errors
var (
	ErrUploadFailed          = errors.New("file upload failed")
	ErrInvalidUploadResponse = errors.New("invalid upload response")
	ErrServiceUnavailable    = errors.New("service unavailable")
	ErrConfigMissing         = errors.New("configuration missing")
	ErrEnvironmentVariable   = errors.New("environment variable error")
	ErrPartialFailure        = errors.New("partial failure")
)

// FileFailure is one failed file of a multi-file upload.
type FileFailure struct {
	FileName string
	Reason   error
}

func NewUploadError(fileName string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrUploadFailed,
		Details:    fmt.Sprintf("Upload of %q failed", fileName),
		Cause:      cause,
		Field:      "files",
	}
}

func NewInvalidUploadResponseError(reason string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrInvalidUploadResponse,
		Details:    reason,
		Field:      "files",
	}
}

// NewCompositeUploadError lists every failed file and its reason in one error.
func NewCompositeUploadError(failures []FileFailure) *ApiErr {
	parts := make([]string, 0, len(failures))
	for _, f := range failures {
		parts = append(parts, fmt.Sprintf("%s: %v", f.FileName, f.Reason))
	}
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrUploadFailed,
		Details:    fmt.Sprintf("%d file(s) failed: %s", len(failures), strings.Join(parts, "; ")),
		Field:      "files",
	}
}

func NewServiceUnavailableError(service string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusServiceUnavailable,
		err:        ErrServiceUnavailable,
		Details:    fmt.Sprintf("Service %s is unavailable", service),
		Cause:      cause,
	}
}

// Configuration & Environment Error Constructors
func NewConfigError(configName string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrConfigMissing,
		Details:    fmt.Sprintf("Configuration error for %s", configName),
		Cause:      cause,
	}
}

func NewEnvironmentVariableError(varName string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrEnvironmentVariable,
		Details:    fmt.Sprintf("Environment variable %s is not set or invalid", varName),
		Field:      varName,
	}
}

func NewPartialFailureError(operation string, failedSteps []string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrPartialFailure,
		Details:    fmt.Sprintf("Partial failure in %s operation. Failed steps: %v", operation, failedSteps),
		Field:      "partial_failure",
	}
}

func IsUploadError(err error) bool {
	return errors.Is(err, ErrUploadFailed) || errors.Is(err, ErrInvalidUploadResponse)
}

func IsConfigError(err error) bool {
	return errors.Is(err, ErrConfigMissing) || errors.Is(err, ErrEnvironmentVariable)
}

