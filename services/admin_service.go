package services

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/pvn-digital/initiative-catalog/activity"
	"github.com/pvn-digital/initiative-catalog/errs"
	"github.com/pvn-digital/initiative-catalog/models"
)

const (
	DefaultSuperAdmin   = "vpi.sonnt@pvn.vn"
	DefaultLogFetchSize = 2000
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// AdminService backs the admin view: the allow-list and the log analytics.
type AdminService struct {
	admins     AdminStore
	logs       LogStore
	superAdmin string
	logLimit   int
	logger     zerolog.Logger
	now        func() time.Time
}

func NewAdminService(admins AdminStore, logs LogStore, superAdmin string, logLimit int, logger zerolog.Logger) *AdminService {
	if superAdmin == "" {
		superAdmin = DefaultSuperAdmin
	}
	if logLimit <= 0 {
		logLimit = DefaultLogFetchSize
	}
	return &AdminService{
		admins:     admins,
		logs:       logs,
		superAdmin: superAdmin,
		logLimit:   logLimit,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *AdminService) SuperAdmin() string {
	return s.superAdmin
}

// IsAdmin accepts the super admin and anyone on the allow-list.
func (s *AdminService) IsAdmin(ctx context.Context, email string) (bool, error) {
	if email == "" {
		return false, nil
	}
	if strings.EqualFold(email, s.superAdmin) {
		return true, nil
	}
	ok, err := s.admins.Exists(ctx, email)
	if err != nil {
		return false, errs.NewDatabaseError("check", "admin", err)
	}
	return ok, nil
}

// OverviewQuery narrows the log table and orders the user table.
type OverviewQuery struct {
	Level    string
	Search   string
	UserSort activity.UserSortKey
	Asc      bool
}

// Overview is everything the admin view shows.
type Overview struct {
	SuperAdmin string                `json:"superAdmin"`
	Admins     []models.Admin        `json:"admins"`
	Health     activity.Health       `json:"health"`
	Levels     []activity.LevelCount `json:"levels"`
	Logs       []models.LogEntry     `json:"logs"`
	Activity   activity.Summary      `json:"activity"`
}

// Overview loads the most recent logs and the allow-list together; if either
// fails the whole overview fails.
func (s *AdminService) Overview(ctx context.Context, q OverviewQuery) (Overview, error) {
	var (
		logs   []models.LogEntry
		admins []models.Admin
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if logs, err = s.logs.FindRecent(gctx, s.logLimit); err != nil {
			return errs.NewDatabaseError("load", "logs", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if admins, err = s.admins.FindAll(gctx); err != nil {
			return errs.NewDatabaseError("load", "admins", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return Overview{}, err
	}

	summary := activity.Analyze(activity.UserLogs(logs), s.now())
	summary.Users = activity.SortUsers(summary.Users, q.UserSort, q.Asc)

	return Overview{
		SuperAdmin: s.superAdmin,
		Admins:     nonSuperAdmins(admins, s.superAdmin),
		Health:     activity.HealthStats(logs, admins, s.superAdmin),
		Levels:     activity.LevelDistribution(logs),
		Logs:       activity.FilterLogs(logs, q.Level, q.Search),
		Activity:   summary,
	}, nil
}

func nonSuperAdmins(admins []models.Admin, superAdmin string) []models.Admin {
	out := make([]models.Admin, 0, len(admins))
	for _, a := range admins {
		if !strings.EqualFold(a.Email, superAdmin) {
			out = append(out, a)
		}
	}
	return out
}

// AddAdmin puts email on the allow-list.
func (s *AdminService) AddAdmin(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errs.NewMissingRequiredFieldError("email")
	}
	if !emailPattern.MatchString(email) {
		return errs.NewInvalidFieldError("email", "not a valid email address")
	}

	if err := s.admins.Add(ctx, &models.Admin{Email: email}); err != nil {
		return errs.NewDatabaseError("add", "admin", err)
	}
	s.logger.Info().Str("email", email).Msg("Admin added")
	return nil
}

// RemoveAdmin takes email off the allow-list. The super admin cannot be removed.
func (s *AdminService) RemoveAdmin(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if strings.EqualFold(email, s.superAdmin) {
		return errs.NewSuperAdminRemovalError(email)
	}

	affected, err := s.admins.Delete(ctx, email)
	if err != nil {
		return errs.NewDatabaseError("remove", "admin", err)
	}
	if affected == 0 {
		return errs.NewNoRowsAffectedError("remove", "admin", email)
	}
	s.logger.Info().Str("email", email).Msg("Admin removed")
	return nil
}
