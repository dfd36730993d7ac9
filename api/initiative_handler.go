package api

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/pvn-digital/initiative-catalog/catalog"
	"github.com/pvn-digital/initiative-catalog/errs"
	"github.com/pvn-digital/initiative-catalog/services"
)

type initiativeHandler struct {
	responder      Responder
	logger         zerolog.Logger
	catalog        *services.CatalogService
	maxUploadBytes int64
}

func newInitiativeHandler(catalog *services.CatalogService, maxUploadBytes int64) initiativeHandler {
	logger := log.With().Str("handlerName", "initiativeHandler").Logger()
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}

	return initiativeHandler{
		responder:      NewResponder(logger),
		logger:         logger,
		catalog:        catalog,
		maxUploadBytes: maxUploadBytes,
	}
}

func (h initiativeHandler) listResponse(r *http.Request) InitiativeListResponse {
	q := r.URL.Query()
	snapshot := h.catalog.Snapshot()
	filter := catalog.Filter{
		Search:         q.Get("search"),
		Department:     q.Get("department"),
		Stage:          q.Get("stage"),
		Classification: q.Get("classification"),
	}

	view := catalog.BuildView(snapshot.Initiatives, filter, catalog.ParseSortKey(q.Get("sort")), catalog.ParseDirection(q.Get("dir")))
	return InitiativeListResponse{
		View:     view,
		Total:    len(snapshot.Initiatives),
		LoadedAt: snapshot.LoadedAt,
	}
}

// getInitiatives returns the filtered and sorted catalog with its aggregates
// @Summary List initiatives
// @Tags Initiatives
// @Produce json
// @Param search query string false "Substring of short name, official name or description"
// @Param department query string false "Exact department"
// @Param stage query string false "Exact stage"
// @Param classification query string false "Exact classification"
// @Param sort query string false "name, department or stage"
// @Param dir query string false "asc or desc"
// @Success 200 {object} InitiativeListResponse
// @Router /initiatives [get]
func (h initiativeHandler) getInitiatives() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, h.listResponse(r))
	}
}

// refreshInitiatives reloads the snapshot from the row store
// @Summary Refresh the catalog
// @Tags Initiatives
// @Produce json
// @Success 200 {object} InitiativeListResponse
// @Failure 500 {object} ErrorResponse "Initiatives could not be loaded"
// @Router /initiatives/refresh [post]
func (h initiativeHandler) refreshInitiatives() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := h.catalog.Refresh(r.Context()); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, h.listResponse(r))
	}
}

// createInitiative stores a new initiative owned by the caller
// @Summary Create initiative
// @Tags Initiatives
// @Accept json,mpfd
// @Produce json
// @Success 201 {object} models.Initiative
// @Failure 400 {object} ErrorResponse "Missing official name or malformed payload"
// @Failure 409 {object} ErrorResponse "Official name already used"
// @Failure 502 {object} ErrorResponse "One or more attachments failed to upload"
// @Router /initiatives [post]
func (h initiativeHandler) createInitiative() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := ctxGetUser(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		input, files, err := readInitiativeRequest(w, r, h.maxUploadBytes)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		created, err := h.catalog.Create(r.Context(), user, input, files)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().Str("officialName", created.OfficialName).Str("user", user.Email).Int("files", len(files)).Msg("Initiative created")
		h.responder.WriteJSONStatus(w, http.StatusCreated, created)
	}
}

// updateInitiative rewrites the initiative named in the path
// @Summary Update initiative
// @Tags Initiatives
// @Accept json,mpfd
// @Produce json
// @Param name path string true "Official name"
// @Success 200 {object} models.Initiative
// @Failure 403 {object} ErrorResponse "Caller is not the owner"
// @Failure 404 {object} ErrorResponse "No permission or not found"
// @Router /initiatives/{name} [put]
func (h initiativeHandler) updateInitiative() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := ctxGetUser(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		name := pathParam(r, "name")
		input, files, err := readInitiativeRequest(w, r, h.maxUploadBytes)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		updated, err := h.catalog.Update(r.Context(), user, name, input, files)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, updated)
	}
}

// deleteInitiative removes the initiative named in the path
// @Summary Delete initiative
// @Tags Initiatives
// @Param name path string true "Official name"
// @Success 200 {object} map[string]string
// @Failure 403 {object} ErrorResponse "Caller is not the owner"
// @Failure 404 {object} ErrorResponse "No permission or not found"
// @Router /initiatives/{name} [delete]
func (h initiativeHandler) deleteInitiative() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := ctxGetUser(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		name := pathParam(r, "name")
		if err := h.catalog.Delete(r.Context(), user, name); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]string{"deleted": name})
	}
}

// getInitiativeDatabases returns the linked databases with tables and fields
// @Summary Linked database details
// @Tags Initiatives
// @Param name path string true "Official name"
// @Success 200 {array} models.ExternalDatabase
// @Failure 404 {object} ErrorResponse "Unknown initiative"
// @Router /initiatives/{name}/databases [get]
func (h initiativeHandler) getInitiativeDatabases() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := ctxGetUser(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		databases, err := h.catalog.DatabaseDetails(r.Context(), user, pathParam(r, "name"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, databases)
	}
}

// getDatabaseNames lists the external database names of the snapshot
// @Summary External database names
// @Tags Databases
// @Success 200 {array} string
// @Router /databases [get]
func (h initiativeHandler) getDatabaseNames() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, h.catalog.Snapshot().DatabaseNames)
	}
}

// recordActivity appends a user interaction to the activity log
// @Summary Record activity
// @Tags Activity
// @Accept json
// @Param request body ActivityRequest true "Action and initiative"
// @Success 202 {object} map[string]string
// @Failure 400 {object} ErrorResponse "Unsupported action"
// @Router /activity [post]
func (h initiativeHandler) recordActivity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := ctxGetUser(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req ActivityRequest
		if err := decodeJSON(r, "activity", &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if req.Action == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("action"))
			return
		}

		if err := h.catalog.RecordActivity(r.Context(), user, req.Action, req.InitiativeName); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusAccepted, map[string]string{"status": "recorded"})
	}
}

// reconcile links initiatives to external database names
// @Summary Reconcile database links
// @Tags Initiatives
// @Param persist query bool false "Write the new links"
// @Success 200 {object} ReconcileResponse
// @Failure 500 {object} ErrorResponse "Some link lists could not be written"
// @Router /reconcile [post]
func (h initiativeHandler) reconcile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		persist := false
		if raw := r.URL.Query().Get("persist"); raw != "" {
			var err error
			if persist, err = strconv.ParseBool(raw); err != nil {
				h.responder.WriteError(w, errs.NewInvalidFieldError("persist", "must be a boolean"))
				return
			}
		}

		result, err := h.catalog.Reconcile(r.Context(), persist)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, ReconcileResponse{
			Persisted:   persist,
			Changed:     result.Changed,
			Initiatives: result.Initiatives,
		})
	}
}
