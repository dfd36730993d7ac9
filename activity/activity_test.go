package activity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pvn-digital/initiative-catalog/models"
)

var now = time.Date(2025, 6, 30, 15, 0, 0, 0, time.UTC)

func userLog(email, action, initiative string, at time.Time) models.LogEntry {
	meta := map[string]any{}
	if email != "" {
		meta[models.MetaUserEmail] = email
	}
	if action != "" {
		meta[models.MetaAction] = action
	}
	if initiative != "" {
		meta[models.MetaInitiativeName] = initiative
	}
	return models.LogEntry{
		Level:      models.LevelInfo,
		Source:     models.SourceUserInteraction,
		Message:    "user action",
		Metadata:   meta,
		OccurredAt: at,
	}
}

func TestFilterLogs(t *testing.T) {
	logs := []models.LogEntry{
		{Level: models.LevelError, Message: "Upload FAILED"},
		{Level: models.LevelInfo, Message: "upload ok"},
		{Level: models.LevelError, Message: "timeout"},
	}

	assert.Len(t, FilterLogs(logs, "", ""), 3)
	assert.Len(t, FilterLogs(logs, models.LevelError, ""), 2)
	assert.Len(t, FilterLogs(logs, "", "upload"), 2)
	got := FilterLogs(logs, models.LevelError, "upload")
	require.Len(t, got, 1)
	assert.Equal(t, "Upload FAILED", got[0].Message)
}

func TestHealthStats(t *testing.T) {
	logs := []models.LogEntry{
		{Level: models.LevelError}, {Level: models.LevelWarn}, {Level: models.LevelWarn}, {Level: models.LevelInfo},
	}
	admins := []models.Admin{{Email: "super@pvn.vn"}, {Email: "a@pvn.vn"}}

	assert.Equal(t, Health{TotalLogs: 4, Errors: 1, Warnings: 2, Admins: 2}, HealthStats(logs, admins, "super@pvn.vn"))
	assert.Equal(t, 1, HealthStats(nil, nil, "super@pvn.vn").Admins)
}

func TestLevelDistribution(t *testing.T) {
	logs := []models.LogEntry{{Level: models.LevelInfo}, {Level: ""}, {Level: models.LevelInfo}, {Level: models.LevelError}}
	assert.Equal(t, []LevelCount{
		{Level: models.LevelInfo, Count: 2},
		{Level: "UNKNOWN", Count: 1},
		{Level: models.LevelError, Count: 1},
	}, LevelDistribution(logs))
}

func TestUserLogs(t *testing.T) {
	logs := []models.LogEntry{{Source: models.SourceUserInteraction}, {Source: "System"}, {}}
	assert.Len(t, UserLogs(logs), 1)
}

func TestAnalyze(t *testing.T) {
	day := func(d int) time.Time { return now.AddDate(0, 0, -d) }
	logs := []models.LogEntry{
		userLog("a@pvn.vn", models.ActionAccessInitiative, "E-Office", day(0)),
		userLog("b@pvn.vn", models.ActionViewDatabases, "HSE", day(1)),
		userLog("a@pvn.vn", models.ActionCreateInitiative, "E-Office", day(2)),
		userLog("b@pvn.vn", models.ActionAccessInitiative, "HSE", day(0).Add(-time.Hour)),
		userLog("a@pvn.vn", "", "", day(40)),
		userLog("", models.ActionAccessInitiative, "E-Office", day(0)),
	}

	s := Analyze(logs, now)

	assert.Equal(t, 2, s.UniqueUsers)
	assert.Equal(t, 6, s.TotalActions)
	require.Len(t, s.Users, 2)

	a := s.Users[0]
	assert.Equal(t, "a@pvn.vn", a.Email)
	assert.Equal(t, 3, a.Actions)
	assert.Equal(t, day(0), a.LastSeen)
	assert.Equal(t, map[string]int{
		models.ActionAccessInitiative: 1,
		models.ActionCreateInitiative: 1,
		"UNKNOWN":                     1,
	}, a.ActionCounts)
	assert.Equal(t, models.ActionAccessInitiative, a.CommonAction)

	b := s.Users[1]
	assert.Equal(t, 2, b.Actions)
	assert.Equal(t, day(0).Add(-time.Hour), b.LastSeen)
	assert.Equal(t, models.ActionViewDatabases, b.CommonAction)

	assert.Equal(t, MostActiveUser{Email: "a@pvn.vn", Actions: 3}, s.MostActiveUser)
	assert.Equal(t, MostViewedProduct{Name: "HSE", Views: 2}, s.MostViewedProduct)

	require.Len(t, s.Daily, WindowDays)
	assert.Equal(t, "2025-06-01", s.Daily[0].Date)
	assert.Equal(t, "2025-06-30", s.Daily[WindowDays-1].Date)
	assert.Equal(t, 2, s.Daily[WindowDays-1].Count)
	assert.Equal(t, 1, s.Daily[WindowDays-2].Count)
	assert.Equal(t, 1, s.Daily[WindowDays-3].Count)
	total := 0
	for _, d := range s.Daily {
		total += d.Count
	}
	assert.Equal(t, 4, total)
}

func TestAnalyzeEmpty(t *testing.T) {
	s := Analyze(nil, now)
	assert.Equal(t, 0, s.UniqueUsers)
	assert.Empty(t, s.Users)
	assert.Equal(t, "N/A", s.MostActiveUser.Email)
	assert.Equal(t, "N/A", s.MostViewedProduct.Name)
	assert.Len(t, s.Daily, WindowDays)
}

func TestAnalyzeTiesGoToFirstSeen(t *testing.T) {
	logs := []models.LogEntry{
		userLog("first@pvn.vn", models.ActionViewDatabases, "A", now),
		userLog("second@pvn.vn", models.ActionAccessInitiative, "B", now),
		userLog("first@pvn.vn", models.ActionAccessInitiative, "B", now),
		userLog("second@pvn.vn", models.ActionViewDatabases, "A", now),
	}

	s := Analyze(logs, now)

	assert.Equal(t, "first@pvn.vn", s.MostActiveUser.Email)
	assert.Equal(t, models.ActionViewDatabases, s.Users[0].CommonAction)
	assert.Equal(t, models.ActionAccessInitiative, s.Users[1].CommonAction)
	assert.Equal(t, "A", s.MostViewedProduct.Name)
}

func TestSortUsers(t *testing.T) {
	users := []UserActivity{
		{Email: "b@pvn.vn", Actions: 2, LastSeen: now.Add(-time.Hour)},
		{Email: "a@pvn.vn", Actions: 5, LastSeen: now.Add(-2 * time.Hour)},
		{Email: "c@pvn.vn", Actions: 2, LastSeen: now},
	}
	emails := func(list []UserActivity) []string {
		out := []string{}
		for _, u := range list {
			out = append(out, u.Email)
		}
		return out
	}

	assert.Equal(t, []string{"a@pvn.vn", "b@pvn.vn", "c@pvn.vn"}, emails(SortUsers(users, SortByActions, false)))
	assert.Equal(t, []string{"b@pvn.vn", "c@pvn.vn", "a@pvn.vn"}, emails(SortUsers(users, SortByActions, true)))
	assert.Equal(t, []string{"a@pvn.vn", "b@pvn.vn", "c@pvn.vn"}, emails(SortUsers(users, SortByUser, true)))
	assert.Equal(t, []string{"c@pvn.vn", "b@pvn.vn", "a@pvn.vn"}, emails(SortUsers(users, SortByLastSeen, false)))
	assert.Equal(t, "b@pvn.vn", users[0].Email)

	assert.Equal(t, SortByLastSeen, ParseUserSortKey("lastSeen"))
	assert.Equal(t, SortByActions, ParseUserSortKey(""))
}
