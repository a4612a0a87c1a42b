package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"

	"edgelink/internal/config"
	"edgelink/internal/diagnostics"
	"edgelink/internal/domain"
	"edgelink/internal/probe"
	"edgelink/internal/scan"

	wailsruntime "github.com/wailsapp/wails/v2/pkg/runtime"
)

// App wires configuration, the scan workflow, the probe, and UI runtime
// callbacks.
type App struct {
	Settings    domain.Settings
	Store       config.Store
	Scans       *scan.Manager
	Probe       probe.Probe
	Diagnostics domain.DiagnosticReport
	assets      fs.FS
	checker     *diagnostics.Checker
	settingsDir string

	mu           sync.Mutex
	activeScanID string
	connection   domain.Connection
	events       *scan.EventBus
	runtimeCtx   context.Context
}

// New builds the application with persisted settings and startup diagnostics.
func New() (*App, error) {
	return NewWithAssets(nil)
}

// NewWithAssets builds the application and optionally configures embedded
// frontend assets.
func NewWithAssets(assets fs.FS) (*App, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve user home: %w", err)
	}

	settingsDir := filepath.Join(homeDir, ".edgelink")
	store := config.NewJSONStore(filepath.Join(settingsDir, "settings.json"))
	settings, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	settings = normalizeSettings(settings)

	checker := diagnostics.NewChecker(settingsDir)
	report := checker.Run(settings)

	return &App{
		Settings:    settings,
		Store:       store,
		Scans:       scan.NewManager(),
		Probe:       probe.NewClient(settings.ProgID),
		Diagnostics: report,
		assets:      assets,
		checker:     checker,
		settingsDir: settingsDir,
		events:      scan.NewEventBus(1000),
	}, nil
}

// Run starts the Wails desktop application and binds backend methods.
func (a *App) Run() error {
	assetOptions := &assetserver.Options{}
	if a.assets != nil {
		assetOptions.Assets = a.assets
	} else {
		assetOptions.Handler = http.FileServer(http.Dir("./frontend"))
	}

	return wails.Run(&options.App{
		Title:       "Solid Edge Connector",
		Width:       960,
		Height:      640,
		AssetServer: assetOptions,
		OnStartup:   a.Startup,
		OnShutdown:  a.Shutdown,
		Bind:        []interface{}{a},
	})
}

// Startup stores the Wails runtime context and auto-connects when configured.
func (a *App) Startup(ctx context.Context) {
	a.mu.Lock()
	a.runtimeCtx = ctx
	autoConnect := a.Settings.AutoConnect
	a.mu.Unlock()

	// Auto-load on startup so users immediately see currently open files.
	if autoConnect {
		_, _ = a.RefreshDocuments()
	}
}

// Shutdown releases the runtime context and any lingering COM references.
func (a *App) Shutdown(ctx context.Context) {
	a.mu.Lock()
	a.runtimeCtx = nil
	p := a.Probe
	a.mu.Unlock()

	_ = p.Disconnect(ctx)
}

// GetDiagnostics returns the latest cached diagnostics report.
func (a *App) GetDiagnostics() domain.DiagnosticReport {
	return a.Diagnostics
}

// RefreshDiagnostics reloads settings and reruns environment checks.
func (a *App) RefreshDiagnostics() (domain.DiagnosticReport, error) {
	settings, err := a.Store.Load()
	if err != nil {
		return domain.DiagnosticReport{}, fmt.Errorf("load settings: %w", err)
	}

	a.Settings = normalizeSettings(settings)
	a.Diagnostics = a.checker.Run(a.Settings)
	return a.Diagnostics, nil
}

// GetSettings loads and returns the latest persisted settings.
func (a *App) GetSettings() (domain.Settings, error) {
	settings, err := a.Store.Load()
	if err != nil {
		return domain.Settings{}, fmt.Errorf("load settings: %w", err)
	}
	settings = normalizeSettings(settings)

	a.mu.Lock()
	a.Settings = settings
	a.mu.Unlock()

	return settings, nil
}

// SaveSettings normalizes and persists settings, then refreshes diagnostics
// and rebinds the probe to the configured ProgID.
func (a *App) SaveSettings(settings domain.Settings) (domain.Settings, error) {
	normalized := normalizeSettings(settings)
	if err := a.Store.Save(normalized); err != nil {
		return domain.Settings{}, fmt.Errorf("save settings: %w", err)
	}

	a.mu.Lock()
	a.Settings = normalized
	a.Probe = probe.NewClient(normalized.ProgID)
	if a.checker != nil {
		a.Diagnostics = a.checker.Run(normalized)
	}
	a.mu.Unlock()

	return normalized, nil
}

// StartScan probes the active document asynchronously.
func (a *App) StartScan() (domain.Scan, error) {
	return a.launch(domain.ScanActionScan, func(ctx context.Context, scanID string, p probe.Probe) {
		doc, err := p.ActiveDocument(ctx)
		if err != nil {
			a.failScan(scanID, err)
			return
		}

		a.setConnection(domain.Connection{Connected: true, DocumentName: doc.Name})
		a.completeScan(scanID, "Connected to: "+doc.Name, doc.Name)
		a.publishEvent(scan.Event{
			ScanID:   scanID,
			Type:     scan.EventTypeResult,
			Status:   domain.ScanStatusSuccess,
			Message:  "Active document resolved",
			Document: doc.Name,
		})
		a.clearActiveScan(scanID)
	})
}

// RefreshDocuments loads the open document list asynchronously.
func (a *App) RefreshDocuments() (domain.Scan, error) {
	return a.launch(domain.ScanActionRefresh, func(ctx context.Context, scanID string, p probe.Probe) {
		docs, activeName, err := p.OpenDocuments(ctx)
		if err != nil {
			a.failScan(scanID, err)
			return
		}

		message := "Connected, but no open documents were found."
		if len(docs) > 0 {
			message = fmt.Sprintf("Loaded %d open document(s).", len(docs))
		}

		a.setConnection(domain.Connection{Connected: true, DocumentName: activeName})
		a.completeScan(scanID, message, activeName)
		a.publishEvent(scan.Event{
			ScanID:    scanID,
			Type:      scan.EventTypeDocuments,
			Status:    domain.ScanStatusSuccess,
			Message:   message,
			Document:  activeName,
			Documents: docs,
		})
		a.clearActiveScan(scanID)
	})
}

// Disconnect releases automation references asynchronously.
func (a *App) Disconnect() (domain.Scan, error) {
	return a.launch(domain.ScanActionDisconnect, func(ctx context.Context, scanID string, p probe.Probe) {
		if err := p.Disconnect(ctx); err != nil {
			a.failScan(scanID, fmt.Errorf("failed to disconnect from Solid Edge: %w", err))
			return
		}

		a.setConnection(domain.Connection{})
		a.completeScan(scanID, "Disconnected.", "")
		a.clearActiveScan(scanID)
	})
}

// ActivateDocument makes the selected document active, then reloads the list.
func (a *App) ActivateDocument(fullName, name string) (domain.Scan, error) {
	return a.launch(domain.ScanActionActivate, func(ctx context.Context, scanID string, p probe.Probe) {
		if err := p.Activate(ctx, fullName, name); err != nil {
			a.failScan(scanID, err)
			return
		}

		docs, activeName, err := p.OpenDocuments(ctx)
		if err != nil {
			a.failScan(scanID, err)
			return
		}

		a.setConnection(domain.Connection{Connected: true, DocumentName: activeName})
		a.completeScan(scanID, "Selected document activated in Solid Edge.", activeName)
		a.publishEvent(scan.Event{
			ScanID:    scanID,
			Type:      scan.EventTypeDocuments,
			Status:    domain.ScanStatusSuccess,
			Message:   "Document list reloaded",
			Document:  activeName,
			Documents: docs,
		})
		a.clearActiveScan(scanID)
	})
}

// LoadDraftProperties reads a draft's custom properties asynchronously.
func (a *App) LoadDraftProperties(fullName, name string) (domain.Scan, error) {
	return a.launch(domain.ScanActionLoadProperties, func(ctx context.Context, scanID string, p probe.Probe) {
		if !(domain.DocumentInfo{FullName: fullName}).IsDraft() {
			a.failScan(scanID, errors.New("custom properties are only available for draft documents"))
			return
		}

		props, err := p.CustomProperties(ctx, fullName, name)
		if err != nil {
			a.failScan(scanID, err)
			return
		}

		a.completeScan(scanID, "Loaded draft custom properties.", name)
		a.publishEvent(scan.Event{
			ScanID:     scanID,
			Type:       scan.EventTypeProperties,
			Status:     domain.ScanStatusSuccess,
			Message:    "Draft custom properties loaded",
			Document:   name,
			Properties: props,
		})
		a.clearActiveScan(scanID)
	})
}

// SaveDraftProperties writes a draft's custom properties asynchronously.
func (a *App) SaveDraftProperties(fullName, name string, props []domain.CustomProperty) (domain.Scan, error) {
	return a.launch(domain.ScanActionSaveProperties, func(ctx context.Context, scanID string, p probe.Probe) {
		if !(domain.DocumentInfo{FullName: fullName}).IsDraft() {
			a.failScan(scanID, errors.New("custom properties are only available for draft documents"))
			return
		}

		if err := p.SaveCustomProperties(ctx, fullName, name, props); err != nil {
			a.failScan(scanID, err)
			return
		}

		a.completeScan(scanID, "Draft custom properties saved.", name)
		a.clearActiveScan(scanID)
	})
}

// CurrentScan returns current scan metadata and status.
func (a *App) CurrentScan() domain.Scan {
	return a.Scans.Current()
}

// ConnectionState returns the persistent connection indicator.
func (a *App) ConnectionState() domain.Connection {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.connection
}

// ScanEvents returns all events with sequence greater than sinceSeq.
func (a *App) ScanEvents(sinceSeq int64) []scan.Event {
	return a.events.Since(sinceSeq)
}

// launch starts one scan through the single-flight state machine and runs
// the worker on its own goroutine. A second trigger while one is processing
// is rejected with scan.ErrScanInFlight and spawns nothing. The probe is
// captured under the lock so the worker keeps the client that was bound when
// the scan was triggered, even if settings rebind it mid-flight.
func (a *App) launch(action domain.ScanAction, run func(ctx context.Context, scanID string, p probe.Probe)) (domain.Scan, error) {
	scanID := fmt.Sprintf("scan-%d", time.Now().UnixNano())
	if err := a.Scans.Start(scanID, action); err != nil {
		return domain.Scan{}, err
	}

	a.mu.Lock()
	a.activeScanID = scanID
	p := a.Probe
	a.mu.Unlock()

	a.publishStatus(scanID, domain.ScanStatusProcessing, processingMessage(action))

	go run(context.Background(), scanID, p)
	return a.Scans.Current(), nil
}

// failScan converts any worker error into the error terminal state. Probe
// failures surface their user-facing message verbatim; an unreachable
// application also drops the connection indicator.
func (a *App) failScan(scanID string, err error) {
	message := err.Error()

	var probeErr *probe.ProbeError
	if errors.As(err, &probeErr) {
		message = probeErr.Message
		if probeErr.Kind == probe.KindUnreachable {
			a.setConnection(domain.Connection{})
		}
	}

	_ = a.Scans.Complete(domain.ScanStatusError, message, "")
	a.publishStatus(scanID, domain.ScanStatusError, message)
	a.publishEvent(scan.Event{
		ScanID:  scanID,
		Type:    scan.EventTypeError,
		Status:  domain.ScanStatusError,
		Message: message,
	})
	a.clearActiveScan(scanID)
}

// completeScan applies the success terminal state and publishes it.
func (a *App) completeScan(scanID, message, document string) {
	_ = a.Scans.Complete(domain.ScanStatusSuccess, message, document)
	a.publishStatus(scanID, domain.ScanStatusSuccess, message)
}

// setConnection updates the persistent connection indicator.
func (a *App) setConnection(conn domain.Connection) {
	a.mu.Lock()
	a.connection = conn
	a.mu.Unlock()
}

// publishStatus sends a normalized status event.
func (a *App) publishStatus(scanID string, status domain.ScanStatus, message string) {
	a.publishEvent(scan.Event{
		ScanID:  scanID,
		Type:    scan.EventTypeStatus,
		Status:  status,
		Message: message,
	})
}

// publishEvent stores event history and emits runtime push notifications.
func (a *App) publishEvent(event scan.Event) {
	published := a.events.Publish(event)

	a.mu.Lock()
	ctx := a.runtimeCtx
	a.mu.Unlock()
	if ctx != nil {
		wailsruntime.EventsEmit(ctx, "scan:event", published)
	}
}

// clearActiveScan clears the handle for completed scan IDs.
func (a *App) clearActiveScan(scanID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.activeScanID == scanID {
		a.activeScanID = ""
	}
}

// processingMessage maps scan actions to transient status text.
func processingMessage(action domain.ScanAction) string {
	switch action {
	case domain.ScanActionScan:
		return "Connecting..."
	case domain.ScanActionRefresh:
		return "Loading open documents..."
	case domain.ScanActionDisconnect:
		return "Disconnecting..."
	case domain.ScanActionActivate:
		return "Activating document..."
	case domain.ScanActionLoadProperties:
		return "Loading draft custom properties..."
	case domain.ScanActionSaveProperties:
		return "Saving draft custom properties..."
	default:
		return "Working..."
	}
}

// normalizeSettings trims user inputs and applies the default ProgID when empty.
func normalizeSettings(settings domain.Settings) domain.Settings {
	settings.ProgID = strings.TrimSpace(settings.ProgID)
	if settings.ProgID == "" {
		settings.ProgID = probe.DefaultProgID
	}
	return settings
}
