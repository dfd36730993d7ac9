package services

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/pvn-digital/initiative-catalog/auth"
	"github.com/pvn-digital/initiative-catalog/catalog"
	"github.com/pvn-digital/initiative-catalog/errs"
	"github.com/pvn-digital/initiative-catalog/models"
)

const reconcilerSource = "Reconciler"

// Snapshot is the catalog as of the last successful load. It is never
// modified in place; every refresh builds a new one.
type Snapshot struct {
	Initiatives   []models.Initiative `json:"initiatives"`
	DatabaseNames []string            `json:"databaseNames"`
	LoadedAt      time.Time           `json:"loadedAt"`
}

// Find looks an initiative up by official name.
func (s Snapshot) Find(officialName string) (models.Initiative, bool) {
	for _, i := range s.Initiatives {
		if i.OfficialName == officialName {
			return i, true
		}
	}
	return models.Initiative{}, false
}

// CatalogService owns the in-memory catalog and every write to it. Writes
// go to the store first; the snapshot is only replaced by a full reload.
type CatalogService struct {
	initiatives InitiativeStore
	databases   DatabaseCatalog
	uploader    Uploader
	uploadDelay time.Duration
	activity    *ActivityLogger
	logger      zerolog.Logger
	now         func() time.Time

	mu       sync.RWMutex
	snapshot Snapshot
}

type CatalogOption func(*CatalogService)

// WithUploadDelay sets the pause between consecutive attachment uploads.
func WithUploadDelay(d time.Duration) CatalogOption {
	return func(s *CatalogService) { s.uploadDelay = d }
}

func WithClock(now func() time.Time) CatalogOption {
	return func(s *CatalogService) { s.now = now }
}

func NewCatalogService(
	initiatives InitiativeStore,
	databases DatabaseCatalog,
	uploader Uploader,
	activity *ActivityLogger,
	logger zerolog.Logger,
	opts ...CatalogOption,
) *CatalogService {
	s := &CatalogService{
		initiatives: initiatives,
		databases:   databases,
		uploader:    uploader,
		uploadDelay: 500 * time.Millisecond,
		activity:    activity,
		logger:      logger,
		now:         time.Now,
		snapshot:    Snapshot{Initiatives: []models.Initiative{}, DatabaseNames: []string{}},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns the current snapshot. Callers must not modify it.
func (s *CatalogService) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Refresh reloads the catalog. If the initiatives cannot be read the
// previous snapshot stays in place. An unreachable database catalog only
// leaves the name list empty, which turns reconciliation into a no-op.
func (s *CatalogService) Refresh(ctx context.Context) (Snapshot, error) {
	var (
		initiatives []models.Initiative
		names       []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		initiatives, err = s.initiatives.FindAll(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		if names, err = s.databases.Names(gctx); err != nil {
			s.logger.Warn().Err(err).Msg("Database catalog unavailable, continuing without database names")
			names = nil
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Msg("Failed to load initiatives, keeping previous snapshot")
		return s.Snapshot(), errs.NewDatabaseError("load", "initiatives", err)
	}

	next := Snapshot{
		Initiatives:   s.dedupe(initiatives),
		DatabaseNames: append([]string{}, names...),
		LoadedAt:      s.now().UTC(),
	}

	s.mu.Lock()
	s.snapshot = next
	s.mu.Unlock()

	s.logger.Info().
		Int("initiatives", len(next.Initiatives)).
		Int("databases", len(next.DatabaseNames)).
		Msg("Catalog snapshot refreshed")
	return next, nil
}

// dedupe keeps the first row of every official name.
func (s *CatalogService) dedupe(list []models.Initiative) []models.Initiative {
	out := make([]models.Initiative, 0, len(list))
	seen := make(map[string]struct{}, len(list))
	for _, i := range list {
		if _, ok := seen[i.OfficialName]; ok {
			s.logger.Warn().Str("officialName", i.OfficialName).Msg("Duplicate official name, keeping the first row")
			continue
		}
		seen[i.OfficialName] = struct{}{}
		out = append(out, i)
	}
	return out
}

// Create uploads the attachments, then writes the new initiative owned by user.
func (s *CatalogService) Create(ctx context.Context, user auth.User, input models.InitiativeInput, files []File) (models.Initiative, error) {
	name := strings.TrimSpace(input.OfficialName)
	if name == "" {
		return models.Initiative{}, errs.NewMissingRequiredFieldError("ten_chinh_thuc")
	}
	if _, exists := s.Snapshot().Find(name); exists {
		return models.Initiative{}, errs.NewAlreadyExists(fmt.Sprintf("initiative %q", name))
	}

	urls, err := UploadAll(ctx, s.uploader, files, s.uploadDelay)
	if err != nil {
		return models.Initiative{}, err
	}

	initiative := input.Apply(models.Initiative{CreatedBy: user.Email})
	initiative.FileURLs = append(initiative.FileURLs, urls...)

	if err := s.initiatives.Add(ctx, &initiative); err != nil {
		return models.Initiative{}, errs.NewDatabaseError("create", "initiative", err)
	}

	s.afterWrite(ctx, user, models.ActionCreateInitiative, initiative.OfficialName, "Initiative created")
	return initiative, nil
}

// Update rewrites the initiative keyed by officialName. A rename travels in
// input and is applied by the same write. Ownership is checked against the
// stored row and enforced again by the write itself.
func (s *CatalogService) Update(ctx context.Context, user auth.User, officialName string, input models.InitiativeInput, files []File) (models.Initiative, error) {
	if strings.TrimSpace(input.OfficialName) == "" {
		return models.Initiative{}, errs.NewMissingRequiredFieldError("ten_chinh_thuc")
	}

	current, err := s.stored(ctx, officialName)
	if err != nil {
		if errs.IsNotFound(err) {
			return models.Initiative{}, errs.NewNoRowsAffectedError("update", "initiative", officialName)
		}
		return models.Initiative{}, err
	}
	if !current.OwnedBy(user.Email) {
		return models.Initiative{}, errs.NewNotOwnerError(officialName)
	}

	updated := input.Apply(current)
	if updated.OfficialName != officialName {
		_, err := s.stored(ctx, updated.OfficialName)
		switch {
		case err == nil:
			return models.Initiative{}, errs.NewAlreadyExists(fmt.Sprintf("initiative %q", updated.OfficialName))
		case !errs.IsNotFound(err):
			return models.Initiative{}, err
		}
	}

	urls, err := UploadAll(ctx, s.uploader, files, s.uploadDelay)
	if err != nil {
		return models.Initiative{}, err
	}
	updated.FileURLs = append(updated.FileURLs, urls...)

	affected, err := s.initiatives.UpdateByOfficialName(ctx, officialName, user.Email, updated)
	if err != nil {
		return models.Initiative{}, errs.NewDatabaseError("update", "initiative", err)
	}
	if affected == 0 {
		return models.Initiative{}, errs.NewNoRowsAffectedError("update", "initiative", officialName)
	}

	s.afterWrite(ctx, user, models.ActionUpdateInitiative, updated.OfficialName, "Initiative updated")
	return updated, nil
}

// Delete removes the initiative if user created it. The snapshot lookup only
// gives a known non-owner an early 403; the store write is filtered by owner
// either way. When nothing was deleted the snapshot is left exactly as it was.
func (s *CatalogService) Delete(ctx context.Context, user auth.User, officialName string) error {
	if current, ok := s.Snapshot().Find(officialName); ok && !current.OwnedBy(user.Email) {
		return errs.NewNotOwnerError(officialName)
	}

	affected, err := s.initiatives.DeleteByOfficialName(ctx, officialName, user.Email)
	if err != nil {
		return errs.NewDatabaseError("delete", "initiative", err)
	}
	if affected == 0 {
		return errs.NewNoRowsAffectedError("delete", "initiative", officialName)
	}

	s.afterWrite(ctx, user, models.ActionDeleteInitiative, officialName, "Initiative deleted")
	return nil
}

// stored reads the current row rather than the snapshot copy, which may
// predate writes by other clients.
func (s *CatalogService) stored(ctx context.Context, officialName string) (models.Initiative, error) {
	initiative, err := s.initiatives.FindByOfficialName(ctx, officialName)
	if err != nil {
		return models.Initiative{}, errs.NewDatabaseError("load", "initiative", err)
	}
	return initiative, nil
}

// afterWrite reloads the snapshot and records the action. Neither failure
// undoes the write that already succeeded.
func (s *CatalogService) afterWrite(ctx context.Context, user auth.User, action, initiativeName, message string) {
	if _, err := s.Refresh(ctx); err != nil {
		s.logger.Warn().Err(err).Str("action", action).Msg("Write succeeded but refresh failed")
	}
	s.activity.User(ctx, user, action, initiativeName, message)
}

// Reconcile links initiatives to database names over the current snapshot.
// With persist set, only the newly matched names are appended to each stored
// row and the snapshot is reloaded; otherwise the result is only a preview.
func (s *CatalogService) Reconcile(ctx context.Context, persist bool) (catalog.Result, error) {
	snapshot := s.Snapshot()
	result := catalog.Reconcile(snapshot.Initiatives, snapshot.DatabaseNames)
	if !persist || len(result.Changed) == 0 {
		return result, nil
	}

	byName := make(map[string]models.Initiative, len(result.Initiatives))
	for _, i := range result.Initiatives {
		byName[i.OfficialName] = i
	}

	var failed []string
	for _, name := range result.Changed {
		before, _ := snapshot.Find(name)
		added := newLinks(before.LinkedDatabases, byName[name].LinkedDatabases)
		affected, err := s.initiatives.AddLinks(ctx, name, added)
		switch {
		case err != nil:
			s.logger.Error().Err(err).Str("officialName", name).Msg("Failed to write database links")
			failed = append(failed, name)
		case affected == 0:
			s.logger.Warn().Str("officialName", name).Msg("Link update affected no rows")
			failed = append(failed, name)
		}
	}

	if _, err := s.Refresh(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("Reconcile wrote links but refresh failed")
	}

	level, message := models.LevelInfo, fmt.Sprintf("Linked databases for %d initiative(s)", len(result.Changed)-len(failed))
	if len(failed) > 0 {
		level = models.LevelWarn
	}
	s.activity.System(ctx, level, reconcilerSource, message, map[string]any{
		models.MetaAction: models.ActionReconcile,
		"changed":         result.Changed,
		"failed":          failed,
	})

	if len(failed) > 0 {
		return result, errs.NewPartialFailureError("reconcile", failed)
	}
	return result, nil
}

// DatabaseDetails loads the external databases linked to an initiative and
// records the view.
func (s *CatalogService) DatabaseDetails(ctx context.Context, user auth.User, officialName string) ([]models.ExternalDatabase, error) {
	initiative, ok := s.Snapshot().Find(officialName)
	if !ok {
		return nil, errs.NewNotFound(fmt.Sprintf("initiative %q", officialName))
	}

	databases, err := s.databases.FindByNames(ctx, initiative.LinkedDatabases)
	if err != nil {
		return nil, errs.NewDatabaseError("load", "linked databases", err)
	}

	s.activity.User(ctx, user, models.ActionViewDatabases, initiative.DisplayName(), "Viewed linked databases")
	return databases, nil
}

// RecordActivity logs a read-only interaction reported by the client.
func (s *CatalogService) RecordActivity(ctx context.Context, user auth.User, action, initiativeName string) error {
	switch action {
	case models.ActionAccessInitiative, models.ActionViewDatabases:
	default:
		return errs.NewInvalidFieldError("action", fmt.Sprintf("unsupported action %q", action))
	}
	return s.activity.Record(ctx, user, action, initiativeName, "User interaction")
}

// newLinks returns the entries of merged that before does not hold, in order.
func newLinks(before, merged models.StringList) []string {
	var added []string
	for _, link := range merged {
		if !slices.Contains(before, link) {
			added = append(added, link)
		}
	}
	return added
}
