package config

import (
	"edgelink/internal/domain"
	"edgelink/internal/probe"
)

// DefaultSettings returns baseline configuration for first launch.
func DefaultSettings() domain.Settings {
	return domain.Settings{
		ProgID:      probe.DefaultProgID,
		AutoConnect: true,
	}
}
