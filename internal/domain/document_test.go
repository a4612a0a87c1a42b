package domain

import (
	"encoding/json"
	"testing"
)

// TestDocumentTypeFromPath verifies extension-to-type mapping.
func TestDocumentTypeFromPath(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{`C:\work\bracket.par`, "Part"},
		{`C:\work\frame.ASM`, "Assembly"},
		{`C:\work\sheet.dft`, "Draft"},
		{`C:\work\panel.psm`, "Sheet Metal"},
		{`C:\work\joint.pwd`, "Weldment"},
		{`C:\work\notes.txt`, "Document"},
		{"untitled", "Document"},
	}

	for _, tc := range cases {
		if got := DocumentTypeFromPath(tc.path); got != tc.want {
			t.Fatalf("DocumentTypeFromPath(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}

// TestDocumentInfoListLabel verifies display label formatting.
func TestDocumentInfoListLabel(t *testing.T) {
	doc := DocumentInfo{Name: "bracket.par", Type: "Part"}
	if got := doc.ListLabel(); got != "[Part] bracket.par" {
		t.Fatalf("label = %q", got)
	}

	doc.Active = true
	if got := doc.ListLabel(); got != "[Part] bracket.par (Active)" {
		t.Fatalf("active label = %q", got)
	}
}

// TestDocumentInfoSelectionKey verifies key stability across case and spacing.
func TestDocumentInfoSelectionKey(t *testing.T) {
	a := DocumentInfo{Name: "Bracket.par", FullName: `C:\Work\Bracket.par`}
	b := DocumentInfo{Name: " bracket.PAR ", FullName: ` c:\work\bracket.PAR `}
	if a.SelectionKey() != b.SelectionKey() {
		t.Fatalf("keys differ: %q vs %q", a.SelectionKey(), b.SelectionKey())
	}
}

// TestDocumentInfoMarshalJSON verifies the derived fields reach the frontend.
func TestDocumentInfoMarshalJSON(t *testing.T) {
	doc := DocumentInfo{Name: "bracket.par", FullName: `C:\Work\Bracket.par`, Type: "Part", Active: true}

	raw, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got["selectionKey"] != doc.SelectionKey() {
		t.Fatalf("selectionKey = %v, want %q", got["selectionKey"], doc.SelectionKey())
	}
	if got["listLabel"] != "[Part] bracket.par (Active)" {
		t.Fatalf("listLabel = %v", got["listLabel"])
	}
	if got["name"] != "bracket.par" || got["active"] != true {
		t.Fatalf("base fields lost: %v", got)
	}
}

// TestDocumentInfoIsDraft verifies draft detection by extension.
func TestDocumentInfoIsDraft(t *testing.T) {
	if !(DocumentInfo{FullName: `C:\work\sheet.DFT`}).IsDraft() {
		t.Fatal("expected .dft to be a draft")
	}
	if (DocumentInfo{FullName: `C:\work\bracket.par`}).IsDraft() {
		t.Fatal("expected .par not to be a draft")
	}
}
