package bootstrap

import (
	"testing"

	"edgelink/internal/domain"
	"edgelink/internal/probe"
	"edgelink/internal/scan"
)

// TestListAutomationTargetsIncludesSolidEdge checks the default preset.
func TestListAutomationTargetsIncludesSolidEdge(t *testing.T) {
	app := &App{}
	targets := app.ListAutomationTargets()
	if len(targets) == 0 {
		t.Fatal("expected non-empty catalog")
	}

	for _, target := range targets {
		if target.ID == "solid-edge" {
			if target.ProgID != probe.DefaultProgID {
				t.Fatalf("progID = %q, want %q", target.ProgID, probe.DefaultProgID)
			}
			if target.Experimental {
				t.Fatal("solid edge preset must not be experimental")
			}
			return
		}
	}
	t.Fatal("solid-edge preset not found")
}

// TestSelectAutomationTargetPersistsProgID checks preset application.
func TestSelectAutomationTargetPersistsProgID(t *testing.T) {
	store := &fakeStore{settings: domain.Settings{ProgID: probe.DefaultProgID, AutoConnect: true}}
	app := &App{
		Store:  store,
		Scans:  scan.NewManager(),
		Probe:  &fakeProbe{},
		events: scan.NewEventBus(10),
	}

	settings, err := app.SelectAutomationTarget("solidworks")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if settings.ProgID != "SldWorks.Application" {
		t.Fatalf("progID = %q", settings.ProgID)
	}
	if !settings.AutoConnect {
		t.Fatal("auto-connect flag should be preserved")
	}

	if _, err := app.SelectAutomationTarget("unknown"); err == nil {
		t.Fatal("expected error for unknown target")
	}
}
