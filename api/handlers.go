package api

import (
	"time"

	"github.com/pvn-digital/initiative-catalog/auth"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(svc Services, login *auth.Login, maxUploadBytes int64, startupTime time.Time) *routeHandlers {
	return &routeHandlers{
		initiativeHandler: newInitiativeHandler(svc.Catalog, maxUploadBytes),
		adminHandler:      newAdminHandler(svc.Admin),
		authHandler:       newAuthHandler(login, svc.Catalog, startupTime),
	}
}
