package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pvn-digital/initiative-catalog/activity"
	"github.com/pvn-digital/initiative-catalog/errs"
	"github.com/pvn-digital/initiative-catalog/models"
)

func newAdminService(admins *fakeAdmins, logs *fakeLogs) *AdminService {
	s := NewAdminService(admins, logs, "", 0, nopLogger())
	s.now = func() time.Time { return fixedNow }
	return s
}

func TestAdminDefaults(t *testing.T) {
	s := newAdminService(&fakeAdmins{}, &fakeLogs{})
	assert.Equal(t, DefaultSuperAdmin, s.SuperAdmin())
	assert.Equal(t, DefaultLogFetchSize, s.logLimit)
}

func TestIsAdmin(t *testing.T) {
	s := newAdminService(&fakeAdmins{emails: []string{"a@pvn.vn"}}, &fakeLogs{})
	ctx := context.Background()

	for email, want := range map[string]bool{
		"VPI.SONNT@pvn.vn": true,
		"A@pvn.vn":         true,
		"b@pvn.vn":         false,
		"":                 false,
	} {
		got, err := s.IsAdmin(ctx, email)
		require.NoError(t, err)
		assert.Equal(t, want, got, email)
	}
}

func TestAddAdmin(t *testing.T) {
	admins := &fakeAdmins{}
	s := newAdminService(admins, &fakeLogs{})
	ctx := context.Background()

	require.NoError(t, s.AddAdmin(ctx, "  new@pvn.vn "))
	assert.Equal(t, []string{"new@pvn.vn"}, admins.emails)

	assert.True(t, errs.IsMissingRequiredFieldError(s.AddAdmin(ctx, " ")))
	assert.True(t, errs.IsInvalidFieldError(s.AddAdmin(ctx, "not-an-email")))
	assert.True(t, errs.IsInvalidFieldError(s.AddAdmin(ctx, "a b@pvn.vn")))
	assert.True(t, errs.IsConflict(s.AddAdmin(ctx, "new@pvn.vn")))
}

func TestRemoveAdmin(t *testing.T) {
	admins := &fakeAdmins{emails: []string{DefaultSuperAdmin, "a@pvn.vn"}}
	s := newAdminService(admins, &fakeLogs{})
	ctx := context.Background()

	err := s.RemoveAdmin(ctx, DefaultSuperAdmin)
	assert.ErrorIs(t, err, errs.ErrSuperAdminRemoval)
	assert.Len(t, admins.emails, 2)

	require.NoError(t, s.RemoveAdmin(ctx, "a@pvn.vn"))
	assert.True(t, errs.IsNoRowsAffected(s.RemoveAdmin(ctx, "a@pvn.vn")))
}

func TestOverview(t *testing.T) {
	logs := &fakeLogs{entries: []models.LogEntry{
		{LogID: uuid.New(), Level: models.LevelError, Source: "Uploader", Message: "upload failed", OccurredAt: fixedNow},
		{LogID: uuid.New(), Level: models.LevelInfo, Source: models.SourceUserInteraction, Message: "view",
			Metadata: map[string]any{models.MetaUserEmail: "a@pvn.vn", models.MetaAction: models.ActionAccessInitiative, models.MetaInitiativeName: "HSE"}, OccurredAt: fixedNow},
		{LogID: uuid.New(), Level: models.LevelInfo, Source: models.SourceUserInteraction, Message: "view",
			Metadata: map[string]any{models.MetaUserEmail: "b@pvn.vn", models.MetaAction: models.ActionAccessInitiative}, OccurredAt: fixedNow.Add(-time.Hour)},
		{LogID: uuid.New(), Level: models.LevelInfo, Source: models.SourceUserInteraction, Message: "view",
			Metadata: map[string]any{models.MetaUserEmail: "b@pvn.vn", models.MetaAction: models.ActionViewDatabases}, OccurredAt: fixedNow.Add(-2 * time.Hour)},
	}}
	admins := &fakeAdmins{emails: []string{DefaultSuperAdmin, "a@pvn.vn"}}
	s := newAdminService(admins, logs)

	o, err := s.Overview(context.Background(), OverviewQuery{Level: models.LevelError, UserSort: activity.SortByUser, Asc: true})

	require.NoError(t, err)
	assert.Equal(t, DefaultSuperAdmin, o.SuperAdmin)
	assert.Equal(t, []models.Admin{{Email: "a@pvn.vn"}}, o.Admins)
	assert.Equal(t, activity.Health{TotalLogs: 4, Errors: 1, Warnings: 0, Admins: 2}, o.Health)
	require.Len(t, o.Logs, 1)
	assert.Equal(t, "upload failed", o.Logs[0].Message)
	assert.Equal(t, 3, o.Activity.TotalActions)
	require.Len(t, o.Activity.Users, 2)
	assert.Equal(t, "a@pvn.vn", o.Activity.Users[0].Email)
	assert.Equal(t, "b@pvn.vn", o.Activity.MostActiveUser.Email)
	assert.Equal(t, "HSE", o.Activity.MostViewedProduct.Name)
}

func TestOverviewFailsWhenEitherLoadFails(t *testing.T) {
	s := newAdminService(&fakeAdmins{err: errStore}, &fakeLogs{})
	_, err := s.Overview(context.Background(), OverviewQuery{})
	assert.Error(t, err)

	s = newAdminService(&fakeAdmins{}, &fakeLogs{err: errStore})
	_, err = s.Overview(context.Background(), OverviewQuery{})
	assert.Error(t, err)
}
