package catalog

import (
	"github.com/pvn-digital/initiative-catalog/models"
)

// Stats are the headline counts above the initiative list.
type Stats struct {
	Total       int `json:"total"`
	Departments int `json:"departments"`
	Deployed    int `json:"deployed"`
	InProgress  int `json:"inProgress"`
}

// ComputeStats counts over list. Deployed and InProgress never overlap.
func ComputeStats(list []models.Initiative) Stats {
	stats := Stats{Total: len(list)}
	departments := make(map[string]struct{})
	for _, i := range list {
		if i.Department != "" {
			departments[i.Department] = struct{}{}
		}
		switch {
		case i.Stage == models.StageDeployed:
			stats.Deployed++
		case containsString(models.InProgressStages, i.Stage):
			stats.InProgress++
		}
	}
	stats.Departments = len(departments)
	return stats
}

// Options are the values offered by the filter selectors.
type Options struct {
	Departments     []string `json:"departments"`
	Stages          []string `json:"stages"`
	Classifications []string `json:"classifications"`
}

// FilterOptions collects the distinct non-empty selector values, collated.
func FilterOptions(list []models.Initiative) Options {
	return Options{
		Departments:     distinct(list, func(i models.Initiative) string { return i.Department }),
		Stages:          distinct(list, func(i models.Initiative) string { return i.Stage }),
		Classifications: distinct(list, func(i models.Initiative) string { return i.Classification }),
	}
}

func distinct(list []models.Initiative, field func(models.Initiative) string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, i := range list {
		v := field(i)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sortStrings(out)
	return out
}
