package api

import (
	"time"

	"github.com/pvn-digital/initiative-catalog/auth"
	"github.com/pvn-digital/initiative-catalog/catalog"
	"github.com/pvn-digital/initiative-catalog/models"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	initiativeHandler initiativeHandler
	adminHandler      adminHandler
	authHandler       authHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error   string `json:"error" example:"Internal Server Error"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"ten_chinh_thuc"`
	Details string `json:"details,omitempty" example:"Additional error details"`
	Cause   string `json:"cause,omitempty" example:"Underlying error cause"`
}

// InitiativeListResponse is the dashboard payload for one query
type InitiativeListResponse struct {
	catalog.View
	Total    int       `json:"total"`
	LoadedAt time.Time `json:"loadedAt"`
}

// ReconcileResponse reports which initiatives gained database links
type ReconcileResponse struct {
	Persisted   bool                `json:"persisted"`
	Changed     []string            `json:"changed"`
	Initiatives []models.Initiative `json:"initiatives"`
}

// ActivityRequest is a read-only interaction reported by the client
type ActivityRequest struct {
	Action         string `json:"action"`
	InitiativeName string `json:"initiativeName"`
}

// AdminRequest names an allow-list entry
type AdminRequest struct {
	Email string `json:"email"`
}

// MeResponse describes the caller
type MeResponse struct {
	User    auth.User `json:"user"`
	IsAdmin bool      `json:"isAdmin"`
}

// CallbackResponse carries the provider error, if any, and the path the
// client should replace the callback URL with
type CallbackResponse struct {
	Error     *auth.Diagnosis `json:"error,omitempty"`
	CleanPath string          `json:"cleanPath"`
}

// HealthResponse reports process uptime and snapshot freshness
type HealthResponse struct {
	Status        string    `json:"status"`
	StartupTime   time.Time `json:"startupTime"`
	SnapshotAt    time.Time `json:"snapshotAt"`
	SnapshotAge   string    `json:"snapshotAge"`
	Initiatives   int       `json:"initiatives"`
	DatabaseNames int       `json:"databaseNames"`
}
