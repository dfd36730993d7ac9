package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStringList(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want []string
	}{
		{"nil", nil, []string{}},
		{"native list", []string{"a", "b"}, []string{"a", "b"}},
		{"mixed any list keeps strings", []any{"a", 3, "b", nil}, []string{"a", "b"}},
		{"json array", `["x","y"]`, []string{"x", "y"}},
		{"json array with non strings", `["x",1,true]`, []string{"x"}},
		{"malformed json", `["x",`, []string{}},
		{"brace list with quoted comma", `{"A, B",C}`, []string{"A, B", "C"}},
		{"empty braces", `{}`, []string{}},
		{"brace list trims and drops blanks", `{ a , ,b }`, []string{"a", "b"}},
		{"escaped quote inside quotes", `{"say \"hi\"",x}`, []string{`say "hi"`, "x"}},
		{"unquoted null dropped", `{a,NULL}`, []string{"a"}},
		{"quoted null kept", `{"NULL"}`, []string{"NULL"}},
		{"bytes", []byte(`{a,b}`), []string{"a", "b"}},
		{"plain text", "not a list", []string{}},
		{"empty string", "", []string{}},
		{"other type", 42, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseStringList(tt.in))
		})
	}
}

func TestParseStringListDoesNotAlias(t *testing.T) {
	in := []string{"a"}
	out := ParseStringList(in)
	out[0] = "changed"
	assert.Equal(t, "a", in[0])
}

func TestStringListValueRoundTrip(t *testing.T) {
	original := StringList{"A, B", `quote "q"`, `back\slash`, "plain"}

	v, err := original.Value()
	require.NoError(t, err)
	assert.Equal(t, `{"A, B","quote \"q\"","back\\slash","plain"}`, v)

	var scanned StringList
	require.NoError(t, scanned.Scan(v))
	assert.Equal(t, original, scanned)
}

func TestStringListValueEmpty(t *testing.T) {
	v, err := StringList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "{}", v)
}

func TestStringListJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		Links StringList `json:"links"`
	}{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"links":[]}`, string(b))

	var fromArray StringList
	require.NoError(t, json.Unmarshal([]byte(`["a","b"]`), &fromArray))
	assert.Equal(t, StringList{"a", "b"}, fromArray)

	var fromBraces StringList
	require.NoError(t, json.Unmarshal([]byte(`"{\"A, B\",C}"`), &fromBraces))
	assert.Equal(t, StringList{"A, B", "C"}, fromBraces)

	var broken StringList
	assert.Error(t, json.Unmarshal([]byte(`[`), &broken))
}

func TestStringListContains(t *testing.T) {
	l := StringList{"a", "b"}
	assert.True(t, l.Contains("b"))
	assert.False(t, l.Contains("c"))
}
