package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pvn-digital/initiative-catalog/models"
)

func TestReconcileOverride(t *testing.T) {
	initiatives := []models.Initiative{{OfficialName: "Sổ tay hoạt động chính PVN"}}

	got := Reconcile(initiatives, []string{"Sổ tay PVN 2025"})

	require.Len(t, got.Initiatives, 1)
	assert.Equal(t, models.StringList{"Sổ tay PVN 2025"}, got.Initiatives[0].LinkedDatabases)
	assert.Equal(t, []string{"Sổ tay hoạt động chính PVN"}, got.Changed)
}

func TestReconcileOverrideRequiresTargetInList(t *testing.T) {
	initiatives := []models.Initiative{{OfficialName: "Sổ tay hoạt động chính PVN"}}

	got := Reconcile(initiatives, []string{"CSDL Tài chính"})

	assert.Empty(t, got.Changed)
	assert.Empty(t, got.Initiatives[0].LinkedDatabases)
}

func TestReconcileKeepsManualLinks(t *testing.T) {
	initiatives := []models.Initiative{
		{OfficialName: "Hệ thống quản lý văn bản", ShortName: "Văn bản", LinkedDatabases: models.StringList{"Manual"}},
		{OfficialName: "Nhân sự", LinkedDatabases: models.StringList{"CSDL Nhân sự"}},
		{OfficialName: "Không liên quan"},
	}
	dbs := []string{"Other", "CSDL Văn bản điện tử", "CSDL Nhân sự"}

	got := Reconcile(initiatives, dbs)

	want := []models.Initiative{
		{OfficialName: "Hệ thống quản lý văn bản", ShortName: "Văn bản", LinkedDatabases: models.StringList{"Manual", "CSDL Văn bản điện tử"}},
		{OfficialName: "Nhân sự", LinkedDatabases: models.StringList{"CSDL Nhân sự"}},
		{OfficialName: "Không liên quan"},
	}
	if diff := cmp.Diff(want, got.Initiatives); diff != "" {
		t.Errorf("Reconcile() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"Hệ thống quản lý văn bản"}, got.Changed)

	for i := range initiatives {
		for _, link := range initiatives[i].LinkedDatabases {
			assert.Contains(t, got.Initiatives[i].LinkedDatabases, link)
		}
	}
}

func TestReconcileEmptyDatabaseListIsNoop(t *testing.T) {
	initiatives := []models.Initiative{
		{OfficialName: "Văn bản", LinkedDatabases: models.StringList{"Manual"}},
		{OfficialName: "Sổ tay hoạt động chính PVN"},
	}

	got := Reconcile(initiatives, nil)

	if diff := cmp.Diff(initiatives, got.Initiatives); diff != "" {
		t.Errorf("Reconcile() changed input (-want +got):\n%s", diff)
	}
	assert.Empty(t, got.Changed)
}

func TestReconcileIsIdempotent(t *testing.T) {
	initiatives := []models.Initiative{
		{OfficialName: "Sổ tay hoạt động chính PVN"},
		{OfficialName: "Quản lý Văn bản", LinkedDatabases: models.StringList{"Manual"}},
	}
	dbs := []string{"Sổ tay PVN 2025", "CSDL Văn bản", "Sổ tay nhân viên"}

	first := Reconcile(initiatives, dbs)
	second := Reconcile(first.Initiatives, dbs)

	assert.Empty(t, second.Changed)
	if diff := cmp.Diff(first.Initiatives, second.Initiatives); diff != "" {
		t.Errorf("second pass changed links (-first +second):\n%s", diff)
	}
}

func TestReconcileDoesNotMutateInput(t *testing.T) {
	links := models.StringList{"Manual"}
	initiatives := []models.Initiative{{OfficialName: "Văn bản", LinkedDatabases: links}}

	Reconcile(initiatives, []string{"CSDL Văn bản"})

	assert.Equal(t, models.StringList{"Manual"}, initiatives[0].LinkedDatabases)
}
