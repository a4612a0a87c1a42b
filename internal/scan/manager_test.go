package scan

import (
	"errors"
	"testing"

	"edgelink/internal/domain"
)

// TestManagerLifecycle verifies normal progression to a terminal state.
func TestManagerLifecycle(t *testing.T) {
	m := NewManager()
	if m.IsRunning() {
		t.Fatal("new manager should be ready")
	}
	if m.Current().Status != domain.ScanStatusReady {
		t.Fatalf("status = %s, want ready", m.Current().Status)
	}

	if err := m.Start("scan-1", domain.ScanActionScan); err != nil {
		t.Fatalf("start: %v", err)
	}
	if !m.IsRunning() {
		t.Fatal("expected running after start")
	}

	if err := m.Complete(domain.ScanStatusSuccess, "Connected to: Part1.par", "Part1.par"); err != nil {
		t.Fatalf("complete: %v", err)
	}

	current := m.Current()
	if current.Status != domain.ScanStatusSuccess {
		t.Fatalf("status = %s, want success", current.Status)
	}
	if current.Document != "Part1.par" {
		t.Fatalf("document = %q, want Part1.par", current.Document)
	}
}

// TestManagerRejectsSecondStartWhileProcessing checks the single-flight rule.
func TestManagerRejectsSecondStartWhileProcessing(t *testing.T) {
	m := NewManager()
	if err := m.Start("scan-1", domain.ScanActionScan); err != nil {
		t.Fatalf("start: %v", err)
	}

	if err := m.Start("scan-2", domain.ScanActionScan); !errors.Is(err, ErrScanInFlight) {
		t.Fatalf("second start error = %v, want %v", err, ErrScanInFlight)
	}

	// The rejected start must not disturb the in-flight scan.
	if m.Current().ID != "scan-1" {
		t.Fatalf("current id = %q, want scan-1", m.Current().ID)
	}
}

// TestManagerRestartsAfterTerminalStates checks the machine is cyclic.
func TestManagerRestartsAfterTerminalStates(t *testing.T) {
	m := NewManager()

	for _, terminal := range []domain.ScanStatus{domain.ScanStatusSuccess, domain.ScanStatusError} {
		if err := m.Start("scan-a", domain.ScanActionScan); err != nil {
			t.Fatalf("start from %s: %v", m.Current().Status, err)
		}
		if err := m.Complete(terminal, "done", ""); err != nil {
			t.Fatalf("complete with %s: %v", terminal, err)
		}
	}

	if err := m.Start("scan-b", domain.ScanActionRefresh); err != nil {
		t.Fatalf("start after error state: %v", err)
	}
	current := m.Current()
	if current.Message != "" || current.Document != "" {
		t.Fatalf("restart did not clear prior payload: %+v", current)
	}
}

// TestManagerCompleteRequiresProcessing checks transition constraints.
func TestManagerCompleteRequiresProcessing(t *testing.T) {
	m := NewManager()
	if err := m.Complete(domain.ScanStatusSuccess, "msg", ""); err == nil {
		t.Fatal("expected error completing without an active scan")
	}

	if err := m.Start("scan-1", domain.ScanActionScan); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := m.Complete(domain.ScanStatusProcessing, "msg", ""); err == nil {
		t.Fatal("expected error for non-terminal status")
	}
	if err := m.Complete(domain.ScanStatusSuccess, "", ""); err == nil {
		t.Fatal("expected error for empty terminal message")
	}
}

// TestManagerReset verifies reset returns to ready.
func TestManagerReset(t *testing.T) {
	m := NewManager()
	if err := m.Start("scan-1", domain.ScanActionScan); err != nil {
		t.Fatalf("start: %v", err)
	}

	m.Reset()
	if m.Current().Status != domain.ScanStatusReady {
		t.Fatalf("status = %s, want ready", m.Current().Status)
	}
	if m.IsRunning() {
		t.Fatal("reset manager should not be running")
	}
}
