package domain

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Sentinel errors for domain operations
var (
	// ErrProductNotFound indicates the requested product does not exist
	ErrProductNotFound = errors.New("product not found")

	// ErrServerOffline indicates the catalog API is unreachable
	ErrServerOffline = errors.New("catalog server is unreachable")

	// ErrNotListing indicates a page load was requested outside listing mode
	ErrNotListing = errors.New("catalog is not in listing mode")

	// ErrBusy indicates a fetch is already outstanding
	ErrBusy = errors.New("catalog fetch already in progress")

	// ErrNoMore indicates there are no further pages to load
	ErrNoMore = errors.New("no more products to load")

	// ErrSuperseded indicates a fetch completed after its mode was replaced; the result was discarded
	ErrSuperseded = errors.New("catalog fetch superseded")

	// ErrInvalidCredentials indicates an empty email or password at login
	ErrInvalidCredentials = errors.New("email and password are required")

	// ErrUnauthenticated indicates an operation that needs a session was attempted without one
	ErrUnauthenticated = errors.New("login required")
)

// APIError is a non-2xx response from the catalog API
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("catalog api: status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("catalog api: status %d", e.Status)
}

// FetchError wraps a failed catalog fetch with the operation that issued it
type FetchError struct {
	Op  string
	Err error
}

func (e *FetchError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ValidationError lists rejected draft fields (field -> rule)
type ValidationError struct {
	Fields map[string]string
}

func (e ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, field := range slices.Sorted(maps.Keys(e.Fields)) {
		parts = append(parts, field+" "+e.Fields[field])
	}
	return "invalid product: " + strings.Join(parts, ", ")
}
