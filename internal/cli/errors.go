package cli

import (
	"context"
	"errors"
	"net/url"

	"todoapp/internal/client"
	"todoapp/internal/domain"
)

var (
	errNotLoggedIn = errors.New("not logged in, run `todo login` first")
	errInvalidID   = errors.New("id must be a positive number")
)

// describe turns a command error into one line for the terminal.
func describe(err error) string {
	var apiErr *client.APIError
	var urlErr *url.Error

	switch {
	case errors.As(err, &apiErr) && apiErr.Status == 401:
		return "session expired or credentials rejected: " + apiErr.Error()
	case errors.As(err, &apiErr) && errors.Is(err, domain.ErrNotFound):
		return "not found"
	case errors.As(err, &apiErr):
		return apiErr.Error()
	case errors.Is(err, context.DeadlineExceeded):
		return "request timed out"
	case errors.As(err, &urlErr):
		return "cannot reach the server: " + urlErr.Err.Error()
	default:
		return err.Error()
	}
}
