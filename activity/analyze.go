package activity

import (
	"time"

	"github.com/pvn-digital/initiative-catalog/models"
)

// WindowDays is the length of the daily activity chart.
const WindowDays = 30

const none = "N/A"

// productActions are the actions that count as viewing an initiative.
var productActions = map[string]bool{
	models.ActionAccessInitiative: true,
	models.ActionViewDatabases:    true,
}

type UserActivity struct {
	Email        string         `json:"email"`
	Actions      int            `json:"actions"`
	LastSeen     time.Time      `json:"lastSeen"`
	ActionCounts map[string]int `json:"actionCounts"`
	CommonAction string         `json:"commonAction"`

	actionOrder []string
}

type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type MostActiveUser struct {
	Email   string `json:"email"`
	Actions int    `json:"actions"`
}

type MostViewedProduct struct {
	Name  string `json:"name"`
	Views int    `json:"views"`
}

// Summary is the user activity tab.
type Summary struct {
	UniqueUsers       int               `json:"uniqueUsers"`
	TotalActions      int               `json:"totalActions"`
	Users             []UserActivity    `json:"users"`
	Daily             []DayCount        `json:"daily"`
	MostActiveUser    MostActiveUser    `json:"mostActiveUser"`
	MostViewedProduct MostViewedProduct `json:"mostViewedProduct"`
}

// Analyze aggregates user logs. Entries without a user email count toward
// TotalActions only. Ties for most active user, most common action and
// most viewed product go to whichever was seen first. Daily covers the
// WindowDays UTC days ending on now's day, oldest first.
func Analyze(userLogs []models.LogEntry, now time.Time) Summary {
	summary := Summary{
		TotalActions:      len(userLogs),
		Users:             []UserActivity{},
		MostActiveUser:    MostActiveUser{Email: none},
		MostViewedProduct: MostViewedProduct{Name: none},
	}

	index := make(map[string]int)
	daily := make(map[string]int)
	views := make(map[string]int)
	var productOrder []string

	for _, l := range userLogs {
		email := l.MetaString(models.MetaUserEmail)
		if email == "" {
			continue
		}

		pos, ok := index[email]
		if !ok {
			pos = len(summary.Users)
			index[email] = pos
			summary.Users = append(summary.Users, UserActivity{
				Email:        email,
				LastSeen:     l.OccurredAt,
				ActionCounts: map[string]int{},
			})
		}
		user := &summary.Users[pos]
		user.Actions++
		if l.OccurredAt.After(user.LastSeen) {
			user.LastSeen = l.OccurredAt
		}

		action := l.MetaString(models.MetaAction)
		if action == "" {
			action = unknown
		}
		if _, seen := user.ActionCounts[action]; !seen {
			user.actionOrder = append(user.actionOrder, action)
		}
		user.ActionCounts[action]++

		daily[l.OccurredAt.UTC().Format(time.DateOnly)]++

		if productActions[action] {
			if name := l.MetaString(models.MetaInitiativeName); name != "" {
				if _, seen := views[name]; !seen {
					productOrder = append(productOrder, name)
				}
				views[name]++
			}
		}
	}

	for i := range summary.Users {
		user := &summary.Users[i]
		user.CommonAction = commonAction(user)
		if user.Actions > summary.MostActiveUser.Actions {
			summary.MostActiveUser = MostActiveUser{Email: user.Email, Actions: user.Actions}
		}
	}
	for _, name := range productOrder {
		if views[name] > summary.MostViewedProduct.Views {
			summary.MostViewedProduct = MostViewedProduct{Name: name, Views: views[name]}
		}
	}

	summary.UniqueUsers = len(summary.Users)
	summary.Daily = dailyWindow(daily, now)
	return summary
}

func commonAction(user *UserActivity) string {
	best, bestCount := none, 0
	for _, action := range user.actionOrder {
		if c := user.ActionCounts[action]; c > bestCount {
			best, bestCount = action, c
		}
	}
	return best
}

func dailyWindow(counts map[string]int, now time.Time) []DayCount {
	today := now.UTC().Truncate(24 * time.Hour)
	out := make([]DayCount, 0, WindowDays)
	for i := WindowDays - 1; i >= 0; i-- {
		date := today.AddDate(0, 0, -i).Format(time.DateOnly)
		out = append(out, DayCount{Date: date, Count: counts[date]})
	}
	return out
}
