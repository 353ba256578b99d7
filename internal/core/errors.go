package core

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrDuplicateProduct is returned when a created record's id already
	// exists in the working copy.
	ErrDuplicateProduct = errors.New("duplicate product id")

	// ErrProductNotFound is returned for ids missing from the working copy.
	ErrProductNotFound = errors.New("product not found")

	// ErrNothingToExport is returned when the visible page is empty.
	ErrNothingToExport = errors.New("nothing to export")

	// ErrNotLoaded is returned for mutations attempted before the catalog
	// has been loaded.
	ErrNotLoaded = errors.New("catalog not loaded")
)

// Remote operation names carried by RemoteError.
const (
	OpListProducts   = "list products"
	OpListCategories = "list categories"
	OpCreateProduct  = "create product"
	OpUpdateProduct  = "update product"
)

// RemoteError is a failed call to the remote catalog API. Message holds the
// server-provided explanation when one was returned.
type RemoteError struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *RemoteError) Error() string {
	switch {
	case e.Status != 0 && e.Message != "":
		return fmt.Sprintf("%s: remote status %d: %s", e.Op, e.Status, e.Message)
	case e.Status != 0:
		return fmt.Sprintf("%s: remote status %d", e.Op, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Op + ": remote error"
}

func (e *RemoteError) Unwrap() error { return e.Err }

// ClientError reports whether the remote API rejected the request itself
// (4xx), as opposed to being unavailable.
func (e *RemoteError) ClientError() bool {
	return e.Status >= http.StatusBadRequest && e.Status < http.StatusInternalServerError
}
