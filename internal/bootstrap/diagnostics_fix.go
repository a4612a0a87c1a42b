package bootstrap

import (
	"fmt"
	"os"
	"strings"

	"edgelink/internal/domain"
	"edgelink/internal/probe"
)

// FixDiagnostic applies a remediation for one failed diagnostic item and
// returns the refreshed report.
func (a *App) FixDiagnostic(itemID string) (domain.DiagnosticReport, error) {
	if a.Store == nil {
		return domain.DiagnosticReport{}, fmt.Errorf("settings store is not configured")
	}

	id := strings.TrimSpace(itemID)
	if id == "" {
		return domain.DiagnosticReport{}, fmt.Errorf("diagnostic item id is required")
	}

	settings, err := a.Store.Load()
	if err != nil {
		return domain.DiagnosticReport{}, fmt.Errorf("load settings: %w", err)
	}
	settings = normalizeSettings(settings)

	settingsChanged := false
	var fixErr error

	switch id {
	case "prog_id":
		if settings.ProgID != probe.DefaultProgID {
			settings.ProgID = probe.DefaultProgID
			settingsChanged = true
		}
	case "settings_dir":
		fixErr = os.MkdirAll(a.settingsDir, 0o755)
	case "platform":
		fixErr = fmt.Errorf("platform cannot be fixed automatically: COM automation requires Windows")
	default:
		return domain.DiagnosticReport{}, fmt.Errorf("unsupported diagnostic item id: %s", id)
	}

	if settingsChanged {
		if saveErr := a.Store.Save(settings); saveErr != nil {
			report := a.refreshDiagnosticsFromSettings(settings)
			return report, fmt.Errorf("save settings after fix: %w", saveErr)
		}
	}

	report := a.refreshDiagnosticsFromSettings(settings)
	if fixErr != nil {
		return report, fixErr
	}
	return report, nil
}

// refreshDiagnosticsFromSettings stores settings and reruns checks.
func (a *App) refreshDiagnosticsFromSettings(settings domain.Settings) domain.DiagnosticReport {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Settings = settings
	a.Probe = probe.NewClient(settings.ProgID)
	if a.checker != nil {
		a.Diagnostics = a.checker.Run(settings)
	}
	return a.Diagnostics
}
