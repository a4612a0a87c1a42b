package bootstrap

import (
	"fmt"
	"strings"

	"edgelink/internal/domain"
	"edgelink/internal/probe"
)

var automationTargetCatalog = []domain.AutomationTarget{
	{
		ID:          "solid-edge",
		Name:        "Solid Edge",
		ProgID:      probe.DefaultProgID,
		Description: "Version-independent Solid Edge application identifier.",
	},
	{
		ID:           "solidworks",
		Name:         "SolidWorks",
		ProgID:       "SldWorks.Application",
		Description:  "SolidWorks application identifier. Document metadata mapping is untested.",
		Experimental: true,
	},
	{
		ID:           "inventor",
		Name:         "Autodesk Inventor",
		ProgID:       "Inventor.Application",
		Description:  "Inventor application identifier. Document metadata mapping is untested.",
		Experimental: true,
	},
	{
		ID:           "autocad",
		Name:         "AutoCAD",
		ProgID:       "AutoCAD.Application",
		Description:  "AutoCAD application identifier. Document metadata mapping is untested.",
		Experimental: true,
	},
}

// ListAutomationTargets returns the known automation application presets.
func (a *App) ListAutomationTargets() []domain.AutomationTarget {
	targets := make([]domain.AutomationTarget, len(automationTargetCatalog))
	copy(targets, automationTargetCatalog)
	return targets
}

// SelectAutomationTarget applies a catalog preset to persisted settings.
func (a *App) SelectAutomationTarget(targetID string) (domain.Settings, error) {
	id := strings.TrimSpace(targetID)
	for _, target := range automationTargetCatalog {
		if target.ID == id {
			settings, err := a.GetSettings()
			if err != nil {
				return domain.Settings{}, err
			}
			settings.ProgID = target.ProgID
			return a.SaveSettings(settings)
		}
	}
	return domain.Settings{}, fmt.Errorf("unknown automation target: %s", id)
}
