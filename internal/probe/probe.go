// Package probe accesses the running Solid Edge instance over COM automation.
package probe

import (
	"context"
	"fmt"

	"edgelink/internal/domain"
)

// ErrorKind separates "application missing" from "no document" failures.
// The split exists for message selection; recovery is the same either way.
type ErrorKind string

const (
	KindUnreachable ErrorKind = "unreachable"
	KindNoDocument  ErrorKind = "no_document"
)

// ProbeError wraps a COM-side failure with a user-facing message.
type ProbeError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

// Error formats probe failures for logs and UI.
func (e *ProbeError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As.
func (e *ProbeError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Unreachable builds a ProbeError for an application that cannot be contacted.
func Unreachable(appName string, err error) *ProbeError {
	return &ProbeError{
		Kind:    KindUnreachable,
		Message: fmt.Sprintf("%s is not running or not reachable", appName),
		Err:     err,
	}
}

// NoActiveDocument builds a ProbeError for a reachable application with no
// active document.
func NoActiveDocument(appName string, err error) *ProbeError {
	return &ProbeError{
		Kind:    KindNoDocument,
		Message: fmt.Sprintf("%s must be open with an active document", appName),
		Err:     err,
	}
}

// Probe is the automation capability used by the scan workflow. Every call
// is blocking and stateless: the application object is re-resolved per call
// and all COM references are released before returning.
type Probe interface {
	// ActiveDocument returns the currently active document.
	ActiveDocument(ctx context.Context) (domain.DocumentInfo, error)

	// OpenDocuments returns all open documents and the active document name.
	OpenDocuments(ctx context.Context) ([]domain.DocumentInfo, string, error)

	// Activate makes the document with the given full name active.
	Activate(ctx context.Context, fullName, name string) error

	// CustomProperties reads the Custom property set of a draft document.
	CustomProperties(ctx context.Context, fullName, name string) ([]domain.CustomProperty, error)

	// SaveCustomProperties writes the Custom property set of a draft document.
	SaveCustomProperties(ctx context.Context, fullName, name string, props []domain.CustomProperty) error

	// Disconnect releases any lingering automation references.
	Disconnect(ctx context.Context) error
}
