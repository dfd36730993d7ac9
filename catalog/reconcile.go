package catalog

import (
	"github.com/pvn-digital/initiative-catalog/models"
)

// override links an initiative the heuristic cannot pair with its database.
type override struct {
	initiative string
	database   string
}

var overrides = []override{
	{initiative: "Sổ tay hoạt động chính PVN", database: "Sổ tay PVN 2025"},
}

// Result is the outcome of one reconciliation pass.
type Result struct {
	// Initiatives has the same length and order as the input.
	Initiatives []models.Initiative
	// Changed holds the official names whose link list grew.
	Changed []string
}

// Reconcile links every initiative to the database names that appear to
// refer to the same system. Existing links are kept in order and new ones
// follow in database list order. An empty database list links nothing.
func Reconcile(initiatives []models.Initiative, databaseNames []string) Result {
	result := Result{
		Initiatives: make([]models.Initiative, len(initiatives)),
		Changed:     []string{},
	}
	copy(result.Initiatives, initiatives)

	if len(databaseNames) == 0 {
		return result
	}

	normalizedDBs := make([]string, len(databaseNames))
	for i, name := range databaseNames {
		normalizedDBs[i] = Normalize(name)
	}

	for i, initiative := range initiatives {
		matches := matchDatabases(initiative, databaseNames, normalizedDBs)
		merged, grew := mergeLinks(initiative.LinkedDatabases, matches)
		if !grew {
			continue
		}
		initiative.LinkedDatabases = merged
		result.Initiatives[i] = initiative
		result.Changed = append(result.Changed, initiative.OfficialName)
	}

	return result
}

func matchDatabases(initiative models.Initiative, databaseNames, normalizedDBs []string) []string {
	candidates := uniqueNonEmpty(Normalize(initiative.DisplayName()), Normalize(initiative.OfficialName))

	var forced []string
	for _, o := range overrides {
		target := Normalize(o.initiative)
		for _, c := range candidates {
			if c == target {
				forced = append(forced, Normalize(o.database))
				break
			}
		}
	}

	var matches []string
	for j, ndb := range normalizedDBs {
		if containsString(forced, ndb) {
			matches = append(matches, databaseNames[j])
			continue
		}
		for _, c := range candidates {
			if normalizedMatch(c, ndb) {
				matches = append(matches, databaseNames[j])
				break
			}
		}
	}
	return matches
}

// mergeLinks appends the matches missing from existing. It reports whether
// anything was added.
func mergeLinks(existing models.StringList, matches []string) (models.StringList, bool) {
	merged := make(models.StringList, 0, len(existing)+len(matches))
	for _, link := range existing {
		if !merged.Contains(link) {
			merged = append(merged, link)
		}
	}
	grew := false
	for _, m := range matches {
		if !merged.Contains(m) && !existing.Contains(m) {
			merged = append(merged, m)
			grew = true
		}
	}
	if !grew {
		return existing, false
	}
	return merged, true
}

func uniqueNonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" && !containsString(out, v) {
			out = append(out, v)
		}
	}
	return out
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
