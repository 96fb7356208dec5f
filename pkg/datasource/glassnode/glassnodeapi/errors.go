package glassnodeapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// RequestErrorKind classifies how a request failed.
type RequestErrorKind string

const (
	// NetworkFailure means no HTTP response was received: connection refused, DNS failure, timeout.
	NetworkFailure RequestErrorKind = "network_failure"

	// BadRequest is an HTTP 400 response.
	BadRequest RequestErrorKind = "bad_request"

	// HTTPError is any other non-2xx response.
	HTTPError RequestErrorKind = "http_error"

	// MalformedBody is a 2xx response whose body is not valid JSON.
	MalformedBody RequestErrorKind = "malformed_body"
)

// RequestError is the terminal error of a single API call.
type RequestError struct {
	Kind       RequestErrorKind
	StatusCode int
	StatusText string
	Endpoint   string

	// Body holds the response body of HTTPError, BadRequest and MalformedBody errors.
	Body []byte

	Err error
}

func (e *RequestError) Error() string {
	switch e.Kind {
	case BadRequest:
		return "Bad request: " + e.StatusText

	case HTTPError:
		return fmt.Sprintf("API request failed with status %d: %s", e.StatusCode, e.StatusText)

	case MalformedBody:
		if e.Err != nil {
			return "malformed response body: " + e.Err.Error()
		}
		return "malformed response body"

	case NetworkFailure:
		if e.Err != nil {
			return e.Err.Error()
		}
		return "network failure"
	}

	return fmt.Sprintf("request error: %s", e.Kind)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// statusText extracts the reason phrase from a response status line like "400 Bad Request".
func statusText(resp *http.Response) string {
	code := strconv.Itoa(resp.StatusCode)
	if text := strings.TrimSpace(strings.TrimPrefix(resp.Status, code)); text != "" {
		return text
	}

	return http.StatusText(resp.StatusCode)
}
