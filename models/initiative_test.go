package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Short", Initiative{OfficialName: "Official", ShortName: "Short"}.DisplayName())
	assert.Equal(t, "Official", Initiative{OfficialName: "Official", ShortName: "  "}.DisplayName())
}

func TestOwnedBy(t *testing.T) {
	i := Initiative{CreatedBy: "Owner@pvn.vn"}
	assert.True(t, i.OwnedBy("owner@pvn.vn"))
	assert.False(t, i.OwnedBy("other@pvn.vn"))
	assert.False(t, Initiative{}.OwnedBy(""))
}

func TestInputApplyKeepsOwner(t *testing.T) {
	in := InitiativeInput{
		OfficialName:    "  New name ",
		Stage:           StageDeployed,
		LinkedDatabases: StringList{"DB"},
	}
	got := in.Apply(Initiative{OfficialName: "Old", CreatedBy: "a@pvn.vn", Description: "old"})

	assert.Equal(t, "New name", got.OfficialName)
	assert.Equal(t, "a@pvn.vn", got.CreatedBy)
	assert.Equal(t, "", got.Description)
	assert.Equal(t, StringList{"DB"}, got.LinkedDatabases)
	assert.Equal(t, StringList{}, got.FileURLs)
}

func TestLogEntryMetaString(t *testing.T) {
	l := LogEntry{Metadata: map[string]any{MetaUserEmail: "a@pvn.vn", "n": 3}}
	assert.Equal(t, "a@pvn.vn", l.MetaString(MetaUserEmail))
	assert.Equal(t, "", l.MetaString("n"))
	assert.Equal(t, "", LogEntry{}.MetaString(MetaAction))
}

func TestKeywordList(t *testing.T) {
	d := ExternalDatabase{Keywords: "dầu khí, , sản lượng"}
	assert.Equal(t, []string{"dầu khí", "sản lượng"}, d.KeywordList())
}

func TestColumnReportHelpers(t *testing.T) {
	fields := getModelFields(ExternalDatabase{})
	assert.Contains(t, fields, "ten_csdl")
	assert.NotContains(t, fields, "")
	assert.Len(t, fields, 8)

	assert.Equal(t, []string{"extra"}, findColumnMismatches([]string{"ten_csdl", "extra"}, fields))
	assert.Equal(t, "email", extractColumnNameFromGormTag("column:email;type:text;primaryKey"))
	assert.Equal(t, "", extractColumnNameFromGormTag("foreignKey:TableID"))
}
