package catalog

import (
	"strings"

	"github.com/pvn-digital/initiative-catalog/models"
)

// Filter narrows the initiative list. Empty fields match everything.
type Filter struct {
	Search         string `json:"search,omitempty"`
	Department     string `json:"department,omitempty"`
	Stage          string `json:"stage,omitempty"`
	Classification string `json:"classification,omitempty"`
}

// Matches applies every active condition; all must hold.
func (f Filter) Matches(i models.Initiative) bool {
	if search := strings.ToLower(strings.TrimSpace(f.Search)); search != "" {
		if !strings.Contains(strings.ToLower(i.ShortName), search) &&
			!strings.Contains(strings.ToLower(i.OfficialName), search) &&
			!strings.Contains(strings.ToLower(i.Description), search) {
			return false
		}
	}
	if f.Department != "" && i.Department != f.Department {
		return false
	}
	if f.Stage != "" && i.Stage != f.Stage {
		return false
	}
	if f.Classification != "" && i.Classification != f.Classification {
		return false
	}
	return true
}

// Apply returns the matching initiatives in their original order.
func (f Filter) Apply(list []models.Initiative) []models.Initiative {
	out := make([]models.Initiative, 0, len(list))
	for _, i := range list {
		if f.Matches(i) {
			out = append(out, i)
		}
	}
	return out
}
