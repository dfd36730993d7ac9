// Package activity derives the admin dashboard figures from log entries.
package activity

import (
	"strings"

	"github.com/pvn-digital/initiative-catalog/models"
)

const unknown = "UNKNOWN"

// FilterLogs keeps entries at level (any level when empty) whose message
// contains search, ignoring case.
func FilterLogs(logs []models.LogEntry, level, search string) []models.LogEntry {
	search = strings.ToLower(strings.TrimSpace(search))
	out := make([]models.LogEntry, 0, len(logs))
	for _, l := range logs {
		if level != "" && l.Level != level {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(l.Message), search) {
			continue
		}
		out = append(out, l)
	}
	return out
}

// Health is the system tab's headline counts.
type Health struct {
	TotalLogs int `json:"totalLogs"`
	Errors    int `json:"errors"`
	Warnings  int `json:"warnings"`
	Admins    int `json:"admins"`
}

// HealthStats counts over logs. The super admin is always counted once,
// whether or not it is also on the allow-list.
func HealthStats(logs []models.LogEntry, admins []models.Admin, superAdmin string) Health {
	h := Health{TotalLogs: len(logs)}
	for _, l := range logs {
		switch l.Level {
		case models.LevelError:
			h.Errors++
		case models.LevelWarn:
			h.Warnings++
		}
	}

	emails := make(map[string]struct{}, len(admins)+1)
	if superAdmin != "" {
		emails[superAdmin] = struct{}{}
	}
	for _, a := range admins {
		emails[a.Email] = struct{}{}
	}
	h.Admins = len(emails)
	return h
}

// LevelCount is one slice of the level distribution chart.
type LevelCount struct {
	Level string `json:"level"`
	Count int    `json:"count"`
}

// LevelDistribution counts per level in first-seen order.
func LevelDistribution(logs []models.LogEntry) []LevelCount {
	index := make(map[string]int)
	out := []LevelCount{}
	for _, l := range logs {
		level := l.Level
		if level == "" {
			level = unknown
		}
		if pos, ok := index[level]; ok {
			out[pos].Count++
			continue
		}
		index[level] = len(out)
		out = append(out, LevelCount{Level: level, Count: 1})
	}
	return out
}

// UserLogs keeps the entries written on behalf of a user action.
func UserLogs(logs []models.LogEntry) []models.LogEntry {
	out := make([]models.LogEntry, 0, len(logs))
	for _, l := range logs {
		if l.Source == models.SourceUserInteraction {
			out = append(out, l)
		}
	}
	return out
}
