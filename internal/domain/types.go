package domain

// ScanStatus tracks the lifecycle of a single automation scan.
type ScanStatus string

const (
	ScanStatusReady      ScanStatus = "ready"
	ScanStatusProcessing ScanStatus = "processing"
	ScanStatusSuccess    ScanStatus = "success"
	ScanStatusError      ScanStatus = "error"
)

// ScanAction identifies which automation operation a scan performs.
type ScanAction string

const (
	ScanActionScan           ScanAction = "scan"
	ScanActionRefresh        ScanAction = "refresh"
	ScanActionDisconnect     ScanAction = "disconnect"
	ScanActionActivate       ScanAction = "activate"
	ScanActionLoadProperties ScanAction = "load_properties"
	ScanActionSaveProperties ScanAction = "save_properties"
)

// Settings contains user-selectable runtime configuration.
type Settings struct {
	ProgID      string `json:"progId"`
	AutoConnect bool   `json:"autoConnect"`
}

// Scan stores the current scan identity, action, and lifecycle status.
type Scan struct {
	ID       string     `json:"id"`
	Action   ScanAction `json:"action"`
	Status   ScanStatus `json:"status"`
	Message  string     `json:"message,omitempty"`
	Document string     `json:"document,omitempty"`
}

// Connection is the persistent connection indicator rendered separately
// from transient scan status.
type Connection struct {
	Connected    bool   `json:"connected"`
	DocumentName string `json:"documentName,omitempty"`
}
