package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// ParseStringList normalizes the shapes a list column arrives in: a native
// list, a JSON array string, or the brace-delimited array text produced by
// the row store ({a,"b, c"}). Anything else yields an empty list.
func ParseStringList(v any) []string {
	switch val := v.(type) {
	case nil:
		return []string{}
	case []string:
		return append([]string{}, val...)
	case StringList:
		return append([]string{}, val...)
	case []any:
		return stringsOnly(val)
	case []byte:
		return parseListText(string(val))
	case string:
		return parseListText(val)
	default:
		return []string{}
	}
}

func stringsOnly(items []any) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func parseListText(s string) []string {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]"):
		var items []any
		if err := json.Unmarshal([]byte(s), &items); err != nil {
			return []string{}
		}
		return stringsOnly(items)
	case strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}"):
		return splitBraceList(s[1 : len(s)-1])
	default:
		return []string{}
	}
}

// splitBraceList splits on commas outside double quotes. Quotes are not part
// of the value; a backslash inside quotes escapes the next character.
func splitBraceList(body string) []string {
	out := []string{}
	var (
		token    strings.Builder
		inQuotes bool
		quoted   bool
		escaped  bool
	)

	flush := func() {
		value := strings.TrimSpace(token.String())
		// unquoted NULL is the store's marker for a null element
		if value != "" && !(value == "NULL" && !quoted) {
			out = append(out, value)
		}
		token.Reset()
		quoted = false
	}

	for _, r := range body {
		switch {
		case escaped:
			token.WriteRune(r)
			escaped = false
		case r == '\\' && inQuotes:
			escaped = true
		case r == '"':
			inQuotes = !inQuotes
			quoted = true
		case r == ',' && !inQuotes:
			flush()
		default:
			token.WriteRune(r)
		}
	}
	flush()

	return out
}

// StringList is a list column. It scans every shape ParseStringList accepts
// and is written back in quoted brace form, which a text[] column accepts
// and a plain text column stores verbatim.
type StringList []string

func (l *StringList) Scan(src any) error {
	*l = StringList(ParseStringList(src))
	return nil
}

func (l StringList) Value() (driver.Value, error) {
	var b strings.Builder
	b.WriteByte('{')
	for i, item := range l {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(item))
		b.WriteByte('"')
	}
	b.WriteByte('}')
	return b.String(), nil
}

// GormDBDataType keeps text[] on the production store and plain text elsewhere.
func (StringList) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "text[]"
	}
	return "text"
}

// MarshalJSON never emits null so clients can always iterate.
func (l StringList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}

// UnmarshalJSON accepts a JSON array or any string shape ParseStringList understands.
func (l *StringList) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("string list: %w", err)
	}
	*l = StringList(ParseStringList(raw))
	return nil
}

// Contains reports whether s is already in the list.
func (l StringList) Contains(s string) bool {
	for _, item := range l {
		if item == s {
			return true
		}
	}
	return false
}
