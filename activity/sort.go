package activity

import (
	"sort"
	"strings"
)

type UserSortKey string

const (
	SortByUser     UserSortKey = "user"
	SortByActions  UserSortKey = "actions"
	SortByLastSeen UserSortKey = "lastSeen"
)

// ParseUserSortKey falls back to SortByActions.
func ParseUserSortKey(s string) UserSortKey {
	switch strings.ToLower(s) {
	case "user":
		return SortByUser
	case "lastseen":
		return SortByLastSeen
	default:
		return SortByActions
	}
}

// SortUsers returns a sorted copy; descending unless asc is set. Equal keys
// keep their input order.
func SortUsers(users []UserActivity, key UserSortKey, asc bool) []UserActivity {
	out := make([]UserActivity, len(users))
	copy(out, users)

	cmp := func(a, b UserActivity) int {
		switch key {
		case SortByUser:
			return strings.Compare(a.Email, b.Email)
		case SortByLastSeen:
			return a.LastSeen.Compare(b.LastSeen)
		default:
			return a.Actions - b.Actions
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		c := cmp(out[i], out[j])
		if asc {
			return c < 0
		}
		return c > 0
	})
	return out
}
