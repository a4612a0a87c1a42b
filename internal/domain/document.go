package domain

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
)

// DocumentInfo is a normalized representation of one open Solid Edge document.
type DocumentInfo struct {
	Name     string `json:"name"`
	FullName string `json:"fullName"`
	Type     string `json:"type"`
	Active   bool   `json:"active"`
}

// SelectionKey returns a stable key used for list re-selection after refresh.
func (d DocumentInfo) SelectionKey() string {
	return strings.ToLower(strings.TrimSpace(d.FullName)) + "|" + strings.ToLower(strings.TrimSpace(d.Name))
}

// ListLabel returns the formatted label shown in the document list.
func (d DocumentInfo) ListLabel() string {
	suffix := ""
	if d.Active {
		suffix = " (Active)"
	}
	return fmt.Sprintf("[%s] %s%s", d.Type, d.Name, suffix)
}

// MarshalJSON includes the derived selection key and list label so the
// frontend can render and re-select documents without recomputing them.
func (d DocumentInfo) MarshalJSON() ([]byte, error) {
	type alias DocumentInfo
	return json.Marshal(struct {
		alias
		SelectionKey string `json:"selectionKey"`
		ListLabel    string `json:"listLabel"`
	}{
		alias:        alias(d),
		SelectionKey: d.SelectionKey(),
		ListLabel:    d.ListLabel(),
	})
}

// IsDraft reports whether the document is a Solid Edge draft file.
func (d DocumentInfo) IsDraft() bool {
	return strings.EqualFold(filepath.Ext(d.FullName), ".dft")
}

// DocumentTypeFromPath maps a Solid Edge file extension to a display type.
func DocumentTypeFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".par":
		return "Part"
	case ".asm":
		return "Assembly"
	case ".dft":
		return "Draft"
	case ".psm":
		return "Sheet Metal"
	case ".pwd":
		return "Weldment"
	default:
		return "Document"
	}
}

// CustomProperty is one name/value pair from a draft's Custom property set.
type CustomProperty struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}
