package domain

// AutomationTarget describes one known COM automation application preset.
type AutomationTarget struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ProgID       string `json:"progId"`
	Description  string `json:"description,omitempty"`
	Experimental bool   `json:"experimental,omitempty"`
}
