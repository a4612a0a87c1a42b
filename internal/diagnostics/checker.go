package diagnostics

import (
	"fmt"
	"os"
	goruntime "runtime"
	"strings"
	"time"

	"edgelink/internal/domain"
)

// Checker validates the automation environment and required local paths.
type Checker struct {
	goos        string
	settingsDir string
	mkdirAll    func(string, os.FileMode) error
	createTemp  func(string, string) (*os.File, error)
	remove      func(string) error
}

// NewChecker builds a checker using real OS dependencies.
func NewChecker(settingsDir string) *Checker {
	return &Checker{
		goos:        goruntime.GOOS,
		settingsDir: settingsDir,
		mkdirAll:    os.MkdirAll,
		createTemp:  os.CreateTemp,
		remove:      os.Remove,
	}
}

// Run executes all startup checks and returns a combined report.
func (c *Checker) Run(settings domain.Settings) domain.DiagnosticReport {
	items := []domain.DiagnosticItem{
		c.checkPlatform(),
		c.checkProgID(settings.ProgID),
		c.checkSettingsDir(),
	}

	hasFailures := false
	for _, item := range items {
		if item.Status == domain.DiagnosticStatusFail {
			hasFailures = true
			break
		}
	}

	return domain.DiagnosticReport{
		GeneratedAt: time.Now().UTC(),
		HasFailures: hasFailures,
		Items:       items,
	}
}

// checkPlatform verifies the OS supports COM automation.
func (c *Checker) checkPlatform() domain.DiagnosticItem {
	item := domain.DiagnosticItem{
		ID:   "platform",
		Name: "Platform",
	}

	if c.goos != "windows" {
		item.Status = domain.DiagnosticStatusFail
		item.Message = fmt.Sprintf("COM automation is unavailable on %s.", c.goos)
		item.Hint = "Run this application on Windows alongside Solid Edge."
		return item
	}

	item.Status = domain.DiagnosticStatusPass
	item.Message = "Windows COM automation is available."
	return item
}

// checkProgID validates the configured automation identifier shape.
func (c *Checker) checkProgID(progID string) domain.DiagnosticItem {
	item := domain.DiagnosticItem{
		ID:   "prog_id",
		Name: "Automation identifier",
	}

	trimmed := strings.TrimSpace(progID)
	if trimmed == "" {
		item.Status = domain.DiagnosticStatusFail
		item.Message = "Automation ProgID is empty."
		item.Hint = "Set a ProgID such as SolidEdge.Application in settings."
		return item
	}

	if !strings.Contains(trimmed, ".") {
		item.Status = domain.DiagnosticStatusFail
		item.Message = fmt.Sprintf("ProgID does not look valid: %s", trimmed)
		item.Hint = "ProgIDs use the form Vendor.Component, e.g. SolidEdge.Application."
		return item
	}

	item.Status = domain.DiagnosticStatusPass
	item.Message = fmt.Sprintf("Configured ProgID: %s", trimmed)
	return item
}

// checkSettingsDir validates settings directory existence and write access.
func (c *Checker) checkSettingsDir() domain.DiagnosticItem {
	item := domain.DiagnosticItem{
		ID:   "settings_dir",
		Name: "Settings directory",
	}

	if strings.TrimSpace(c.settingsDir) == "" {
		item.Status = domain.DiagnosticStatusFail
		item.Message = "Settings directory is not configured."
		item.Hint = "Ensure the user home directory can be resolved."
		return item
	}

	if err := c.mkdirAll(c.settingsDir, 0o755); err != nil {
		item.Status = domain.DiagnosticStatusFail
		item.Message = fmt.Sprintf("Cannot create settings directory: %s", c.settingsDir)
		item.Hint = "Choose a writable location or adjust filesystem permissions."
		return item
	}

	tmpFile, err := c.createTemp(c.settingsDir, ".write-check-*")
	if err != nil {
		item.Status = domain.DiagnosticStatusFail
		item.Message = fmt.Sprintf("Settings directory is not writable: %s", c.settingsDir)
		item.Hint = "Adjust permissions so settings can be persisted."
		return item
	}

	tmpPath := tmpFile.Name()
	_ = tmpFile.Close()
	_ = c.remove(tmpPath)

	item.Status = domain.DiagnosticStatusPass
	item.Message = fmt.Sprintf("Writable directory: %s", c.settingsDir)
	return item
}

// NewCheckerForTests creates a checker with injectable dependencies.
func NewCheckerForTests(
	goos string,
	settingsDir string,
	mkdirAll func(string, os.FileMode) error,
	createTemp func(string, string) (*os.File, error),
	remove func(string) error,
) *Checker {
	return &Checker{
		goos:        goos,
		settingsDir: settingsDir,
		mkdirAll:    mkdirAll,
		createTemp:  createTemp,
		remove:      remove,
	}
}
