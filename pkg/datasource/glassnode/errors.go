package glassnode

import (
	"github.com/pkg/errors"

	"github.com/c9s/glassnode/pkg/datasource/glassnode/glassnodeapi"
)

var (
	ErrEmptyAPIKey   = errors.New("API key is required")
	ErrInvalidAPIURL = errors.New("API url must be an absolute url")
)

// ConfigError is returned by New when the configuration is invalid. No client is created.
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return "invalid glassnode config: " + e.Field + ": " + e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func (e *ConfigError) Cause() error {
	return e.Err
}

// APIError is the single client level error of a failed request.
// Err is a *glassnodeapi.RequestError, or the error that prevented the request from being built.
type APIError struct {
	Err error
}

func (e *APIError) Error() string {
	return "Glassnode API error: " + e.Err.Error()
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func (e *APIError) Cause() error {
	return e.Err
}

// RequestError returns the classified request failure behind e.
func (e *APIError) RequestError() (*glassnodeapi.RequestError, bool) {
	var reqErr *glassnodeapi.RequestError
	if errors.As(e.Err, &reqErr) {
		return reqErr, true
	}

	return nil, false
}

// wrapError wraps request errors once as *APIError. Validation errors already carry
// their diagnostics and are returned as they are.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var validationErr *glassnodeapi.ValidationError
	if errors.As(err, &validationErr) {
		return err
	}

	return &APIError{Err: err}
}
