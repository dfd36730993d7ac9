// Package catalog holds the pure logic behind the initiative dashboard:
// name reconciliation against the external database list, filtering,
// sorting and the aggregate counts shown above the list.
package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stopPhrases are generic words that carry no identity in a system name.
var stopPhrases = [][]string{
	{"co", "so", "du", "lieu"},
	{"csdl"},
	{"database"},
	{"he", "thong"},
	{"system"},
	{"ung", "dung"},
	{"application"},
	{"app"},
	{"pvn"},
	{"quan", "ly"},
	{"management"},
}

// compound is written as two words or one depending on who typed it.
var compound = []string{"so", "tay"}

const compoundToken = "sotay"

var dStroke = strings.NewReplacer("đ", "d", "Đ", "D")

// Normalize reduces a system name to the tokens that identify it:
// diacritics stripped, lowercased, generic words dropped, the "so tay"
// compound joined and whitespace collapsed. Normalize(Normalize(s)) equals
// Normalize(s).
func Normalize(s string) string {
	stripped, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		dStroke.Replace(s),
	)
	if err != nil {
		stripped = s
	}

	tokens := strings.FieldsFunc(strings.ToLower(stripped), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})

	// dropping a phrase can make a new one adjacent, so run to a fixed
	// point; every reduction shrinks the slice
	for {
		next := reduceTokens(tokens)
		if len(next) == len(tokens) {
			break
		}
		tokens = next
	}

	return strings.Join(tokens, " ")
}

func reduceTokens(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for i := 0; i < len(tokens); {
		if n := matchStopPhrase(tokens[i:]); n > 0 {
			i += n
			continue
		}
		if hasPrefix(tokens[i:], compound) {
			out = append(out, compoundToken)
			i += len(compound)
			continue
		}
		out = append(out, tokens[i])
		i++
	}
	return out
}

func matchStopPhrase(tokens []string) int {
	for _, phrase := range stopPhrases {
		if hasPrefix(tokens, phrase) {
			return len(phrase)
		}
	}
	return 0
}

func hasPrefix(tokens, phrase []string) bool {
	if len(tokens) < len(phrase) {
		return false
	}
	for i, word := range phrase {
		if tokens[i] != word {
			return false
		}
	}
	return true
}

// NamesMatch reports whether either normalized name contains the other.
// Names that normalize to nothing never match.
func NamesMatch(a, b string) bool {
	return normalizedMatch(Normalize(a), Normalize(b))
}

func normalizedMatch(na, nb string) bool {
	if na == "" || nb == "" {
		return false
	}
	return strings.Contains(na, nb) || strings.Contains(nb, na)
}
