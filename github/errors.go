package github

import (
	"errors"
	"fmt"

	"github.com/databricks/databricks-sdk-go/httpclient"
)

var (
	ErrBadRequest             = errors.New("the request is invalid")
	ErrUnauthenticated        = errors.New("the request does not have valid authentication credentials")
	ErrPermissionDenied       = errors.New("the caller does not have permission to execute the specified operation")
	ErrNotFound               = errors.New("the operation was performed on a resource that does not exist")
	ErrTooManyRequests        = errors.New("the rate limit is exhausted")
	ErrInternalError          = errors.New("some invariants expected by the underlying system have been broken")
	ErrTemporarilyUnavailable = errors.New("the service is currently unavailable")

	statusCodeMapping = map[int]error{
		400: ErrBadRequest,
		401: ErrUnauthenticated,
		403: ErrPermissionDenied,
		404: ErrNotFound,
		429: ErrTooManyRequests,
		500: ErrInternalError,
		502: ErrTemporarilyUnavailable,
		503: ErrTemporarilyUnavailable,
	}
)

type Error struct {
	*httpclient.HttpError
	Message          string `json:"message"`
	DocumentationURL string `json:"documentation_url"`
}

func (err *Error) Error() string {
	return fmt.Sprintf("%s. See %s", err.Message, err.DocumentationURL)
}

// Unwrap error for easier client code checking
//
// See https://pkg.go.dev/errors#example-Unwrap
func (err *Error) Unwrap() []error {
	byStatusCode, ok := statusCodeMapping[err.StatusCode]
	if ok {
		return []error{byStatusCode, err.HttpError}
	}
	return []error{err.HttpError}
}

// GraphQLError is one entry of the "errors" array of a GraphQL response.
// GitHub replies 200 OK even when the query failed, so these have to be
// checked separately from the HTTP status.
type GraphQLError struct {
	Type    string   `json:"type,omitempty"`
	Message string   `json:"message"`
	Path    []string `json:"path,omitempty"`
}

func (err GraphQLError) Error() string {
	if err.Type != "" {
		return fmt.Sprintf("%s: %s", err.Type, err.Message)
	}
	return err.Message
}
