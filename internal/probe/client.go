package probe

// AppName is the display name used in user-facing probe messages.
const AppName = "Solid Edge"

// DefaultProgID is the version-independent Solid Edge automation identifier.
const DefaultProgID = "SolidEdge.Application"

// Client talks to a running Solid Edge instance through its automation
// interface. The zero value is not usable; construct with NewClient.
type Client struct {
	progID string
}

// NewClient creates a probe client for the given COM ProgID. An empty
// progID falls back to the version-independent identifier.
func NewClient(progID string) *Client {
	if progID == "" {
		progID = DefaultProgID
	}
	return &Client{progID: progID}
}

var _ Probe = (*Client)(nil)
