package catalog

import (
	"github.com/theapple1234/magecraft-forge/internal/domain/shared"
)

// Option is a single purchasable/selectable catalog entry.
// Options are immutable: catalogs are built once and shared.
type Option struct {
	Key         string       `json:"key"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	ImageRef    string       `json:"image_ref,omitempty"`
	Cost        int          `json:"cost"`
	CostText    string       `json:"cost_text,omitempty"` // free-form display cost, not used for math
	Grade       shared.Grade `json:"grade,omitempty"`
	Blessing    string       `json:"blessing,omitempty"` // grouping tag for quota rules
	Requires    []string     `json:"requires,omitempty"` // option keys that must already be selected elsewhere
}
