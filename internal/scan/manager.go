package scan

import (
	"errors"
	"fmt"
	"sync"

	"edgelink/internal/domain"
)

// ErrScanInFlight is returned when starting a scan while one is processing.
var ErrScanInFlight = errors.New("scan already in flight")

// Manager tracks the single allowed in-flight scan and its transitions.
type Manager struct {
	mu      sync.RWMutex
	current domain.Scan
}

// NewManager creates a manager in ready state.
func NewManager() *Manager {
	return &Manager{
		current: domain.Scan{
			Status: domain.ScanStatusReady,
		},
	}
}

// Start begins a new scan and moves it to processing state. Any message or
// document carried by a prior scan is cleared.
func (m *Manager) Start(scanID string, action domain.ScanAction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current.Status == domain.ScanStatusProcessing {
		return ErrScanInFlight
	}

	m.current = domain.Scan{
		ID:     scanID,
		Action: action,
		Status: domain.ScanStatusProcessing,
	}
	return nil
}

// Complete applies the terminal transition for the current scan.
func (m *Manager) Complete(status domain.ScanStatus, message, document string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current.ID == "" {
		return fmt.Errorf("cannot complete without an active scan")
	}
	if status != domain.ScanStatusSuccess && status != domain.ScanStatusError {
		return fmt.Errorf("invalid terminal status: %s", status)
	}
	if m.current.Status != domain.ScanStatusProcessing {
		return fmt.Errorf("invalid transition: %s -> %s", m.current.Status, status)
	}
	if message == "" {
		return fmt.Errorf("terminal transition requires a message")
	}

	m.current.Status = status
	m.current.Message = message
	m.current.Document = document
	return nil
}

// Current returns a snapshot of the current scan.
func (m *Manager) Current() domain.Scan {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// IsRunning reports whether a scan is currently processing.
func (m *Manager) IsRunning() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.Status == domain.ScanStatusProcessing
}

// Reset clears scan metadata and returns the manager to ready.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = domain.Scan{Status: domain.ScanStatusReady}
}
