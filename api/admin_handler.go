package api

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/pvn-digital/initiative-catalog/activity"
	"github.com/pvn-digital/initiative-catalog/services"
)

type adminHandler struct {
	responder Responder
	logger    zerolog.Logger
	admin     *services.AdminService
}

func newAdminHandler(admin *services.AdminService) adminHandler {
	logger := log.With().Str("handlerName", "adminHandler").Logger()

	return adminHandler{
		responder: NewResponder(logger),
		logger:    logger,
		admin:     admin,
	}
}

// getOverview returns the allow-list, system health and user activity
// @Summary Admin overview
// @Tags Admin
// @Param level query string false "Only logs at this level"
// @Param search query string false "Substring of the log message"
// @Param sort query string false "user, actions or lastSeen"
// @Param dir query string false "asc or desc (default)"
// @Success 200 {object} services.Overview
// @Failure 403 {object} ErrorResponse "Caller is not an admin"
// @Router /admin/overview [get]
func (h adminHandler) getOverview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		overview, err := h.admin.Overview(r.Context(), services.OverviewQuery{
			Level:    q.Get("level"),
			Search:   q.Get("search"),
			UserSort: activity.ParseUserSortKey(q.Get("sort")),
			Asc:      strings.EqualFold(q.Get("dir"), "asc"),
		})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, overview)
	}
}

// addAdmin puts an email on the allow-list
// @Summary Add admin
// @Tags Admin
// @Accept json
// @Param request body AdminRequest true "Email"
// @Success 201 {object} AdminRequest
// @Failure 400 {object} ErrorResponse "Missing or invalid email"
// @Failure 409 {object} ErrorResponse "Already an admin"
// @Router /admin/admins [post]
func (h adminHandler) addAdmin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AdminRequest
		if err := decodeJSON(r, "admin", &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.admin.AddAdmin(r.Context(), req.Email); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, AdminRequest{Email: strings.TrimSpace(req.Email)})
	}
}

// removeAdmin takes an email off the allow-list
// @Summary Remove admin
// @Tags Admin
// @Param email path string true "Email"
// @Success 200 {object} map[string]string
// @Failure 403 {object} ErrorResponse "The super admin cannot be removed"
// @Failure 404 {object} ErrorResponse "Not an admin"
// @Router /admin/admins/{email} [delete]
func (h adminHandler) removeAdmin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := pathParam(r, "email")
		if err := h.admin.RemoveAdmin(r.Context(), email); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]string{"removed": email})
	}
}
