package probe

import (
	"errors"
	"testing"
)

// TestUnreachableMessage checks the user-facing unreachable message.
func TestUnreachableMessage(t *testing.T) {
	err := Unreachable(AppName, errors.New("com: class not registered"))
	if err.Kind != KindUnreachable {
		t.Fatalf("kind = %s, want %s", err.Kind, KindUnreachable)
	}
	if err.Message != "Solid Edge is not running or not reachable" {
		t.Fatalf("message = %q", err.Message)
	}
}

// TestNoActiveDocumentMessage checks the user-facing no-document message.
func TestNoActiveDocumentMessage(t *testing.T) {
	err := NoActiveDocument(AppName, nil)
	if err.Kind != KindNoDocument {
		t.Fatalf("kind = %s, want %s", err.Kind, KindNoDocument)
	}
	if err.Message != "Solid Edge must be open with an active document" {
		t.Fatalf("message = %q", err.Message)
	}
	if err.Error() != err.Message {
		t.Fatalf("Error() = %q, want message only when no cause", err.Error())
	}
}

// TestProbeErrorUnwrap verifies errors.As and cause chaining.
func TestProbeErrorUnwrap(t *testing.T) {
	cause := errors.New("rpc server unavailable")
	var err error = Unreachable(AppName, cause)

	var probeErr *ProbeError
	if !errors.As(err, &probeErr) {
		t.Fatal("expected errors.As to match *ProbeError")
	}
	if !errors.Is(err, cause) {
		t.Fatal("expected wrapped cause to match errors.Is")
	}
}

// TestNewClientDefaultsProgID checks empty ProgID fallback.
func TestNewClientDefaultsProgID(t *testing.T) {
	c := NewClient("")
	if c.progID != DefaultProgID {
		t.Fatalf("progID = %q, want %q", c.progID, DefaultProgID)
	}

	c = NewClient("SldWorks.Application")
	if c.progID != "SldWorks.Application" {
		t.Fatalf("progID = %q", c.progID)
	}
}
