package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/pvn-digital/initiative-catalog/models"
)

type SortKey string

const (
	SortByName       SortKey = "name"
	SortByDepartment SortKey = "department"
	SortByStage      SortKey = "stage"
)

type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// ParseSortKey falls back to SortByName for unknown input.
func ParseSortKey(s string) SortKey {
	switch SortKey(strings.ToLower(s)) {
	case SortByDepartment:
		return SortByDepartment
	case SortByStage:
		return SortByStage
	default:
		return SortByName
	}
}

// ParseDirection falls back to Ascending for unknown input.
func ParseDirection(s string) Direction {
	if Direction(strings.ToLower(s)) == Descending {
		return Descending
	}
	return Ascending
}

// newCollator is not safe for concurrent use, so every sort gets its own.
func newCollator() *collate.Collator {
	return collate.New(language.Vietnamese, collate.IgnoreCase)
}

// Sort returns a sorted copy. Only the name key honours Descending;
// department and stage always sort ascending. Ties keep input order.
func Sort(list []models.Initiative, key SortKey, dir Direction) []models.Initiative {
	out := make([]models.Initiative, len(list))
	copy(out, list)

	value := func(i models.Initiative) string {
		switch key {
		case SortByDepartment:
			return i.Department
		case SortByStage:
			return i.Stage
		default:
			return i.DisplayName()
		}
	}
	descending := key == SortByName && dir == Descending

	c := newCollator()
	sort.SliceStable(out, func(a, b int) bool {
		cmp := c.CompareString(value(out[a]), value(out[b]))
		if descending {
			return cmp > 0
		}
		return cmp < 0
	})
	return out
}

// sortStrings orders s in place with the Vietnamese collator.
func sortStrings(s []string) {
	newCollator().SortStrings(s)
}
