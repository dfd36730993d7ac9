package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/pvn-digital/initiative-catalog/auth"
	"github.com/pvn-digital/initiative-catalog/errs"
	"github.com/pvn-digital/initiative-catalog/services"
)

const (
	stateCookie    = "catalog_oauth_state"
	verifierCookie = "catalog_pkce_verifier"
	loginCookieTTL = 10 * time.Minute
)

type authHandler struct {
	responder   Responder
	logger      zerolog.Logger
	login       *auth.Login
	catalog     *services.CatalogService
	startupTime time.Time
}

// newAuthHandler leaves login nil when no auth service is configured; the
// login route then reports the service as unavailable.
func newAuthHandler(login *auth.Login, catalog *services.CatalogService, startupTime time.Time) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		login:       login,
		catalog:     catalog,
		startupTime: startupTime,
	}
}

// health reports uptime and how old the catalog snapshot is
// @Summary Health check
// @Tags System
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h authHandler) health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot := h.catalog.Snapshot()
		age := ""
		if !snapshot.LoadedAt.IsZero() {
			age = time.Since(snapshot.LoadedAt).Round(time.Second).String()
		}

		h.responder.WriteJSON(w, HealthResponse{
			Status:        "ok",
			StartupTime:   h.startupTime,
			SnapshotAt:    snapshot.LoadedAt,
			SnapshotAge:   age,
			Initiatives:   len(snapshot.Initiatives),
			DatabaseNames: len(snapshot.DatabaseNames),
		})
	}
}

// loginRedirect sends the browser to the identity provider. The state and
// PKCE verifier travel in short-lived cookies scoped to /auth.
// @Summary Start login
// @Tags Auth
// @Success 302
// @Failure 503 {object} ErrorResponse "No auth service configured"
// @Router /auth/login [get]
func (h authHandler) loginRedirect() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.login == nil {
			h.responder.WriteError(w, errs.NewServiceUnavailableError("login", nil))
			return
		}

		state := uuid.NewString()
		target, verifier := h.login.URL(state)

		for name, value := range map[string]string{stateCookie: state, verifierCookie: verifier} {
			http.SetCookie(w, &http.Cookie{
				Name:     name,
				Value:    value,
				Path:     "/auth",
				MaxAge:   int(loginCookieTTL.Seconds()),
				HttpOnly: true,
				Secure:   r.TLS != nil,
				SameSite: http.SameSiteLaxMode,
			})
		}

		http.Redirect(w, r, target, http.StatusFound)
	}
}

// callback explains a failed provider redirect
// @Summary Login callback diagnostics
// @Tags Auth
// @Param error_description query string false "Provider error"
// @Success 200 {object} CallbackResponse
// @Router /auth/callback [get]
func (h authHandler) callback() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := CallbackResponse{CleanPath: r.URL.Path}
		if diagnosis, ok := auth.Diagnose(r.URL.Query(), r.URL.Fragment); ok {
			h.logger.Warn().Str("kind", diagnosis.Kind).Str("description", diagnosis.Description).Msg("Login failed at provider")
			response.Error = &diagnosis
		}
		h.responder.WriteJSON(w, response)
	}
}

// me describes the authenticated caller
// @Summary Current user
// @Tags Auth
// @Success 200 {object} MeResponse
// @Failure 401 {object} ErrorResponse
// @Router /me [get]
func (h authHandler) me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := ctxGetUser(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, MeResponse{User: user, IsAdmin: ctxGetIsAdmin(r.Context())})
	}
}
