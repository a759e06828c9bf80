package match

import (
	"strings"
	"unicode"
)

// accessorPrefixes are dropped from the front of a member name when at least
// one more token follows, so getMotion and motion compare as equal.
var accessorPrefixes = map[string]bool{
	"get": true,
	"set": true,
	"is":  true,
	"on":  true,
}

// NormalizeIdent folds a member name for fuzzy matching: camel case and
// separators are split into tokens, a leading accessor token is dropped, and
// the rest is joined in lower case. "getHTTPResponse" -> "httpresponse".
func NormalizeIdent(s string) string {
	tokens := TokenizeIdent(s)
	if len(tokens) > 1 && accessorPrefixes[tokens[0]] {
		tokens = tokens[1:]
	}

	return strings.Join(tokens, "")
}

// TokenizeIdent splits a member name into lower-case tokens.
func TokenizeIdent(s string) []string {
	tokens := tokenizeCamelCase(s)
	for i, t := range tokens {
		tokens[i] = strings.ToLower(t)
	}

	return tokens
}

// tokenizeCamelCase splits an identifier at separators and case changes.
//   - "onPlayerDamageBlock" -> ["on", "Player", "Damage", "Block"]
//   - "XMLParser" -> ["XML", "Parser"]
//   - "func_213352_e" -> ["func", "213352", "e"]
func tokenizeCamelCase(s string) []string {
	if s == "" {
		return nil
	}

	var (
		tokens  []string
		current strings.Builder
	)

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			flush()

			continue
		}

		if i > 0 && startsToken(runes, i) {
			flush()
		}

		current.WriteRune(r)
	}

	flush()

	return tokens
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == '$' || r == ' '
}

func startsToken(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]
	if isSeparator(prev) {
		return false
	}

	if unicode.IsUpper(r) && !unicode.IsUpper(prev) {
		return true
	}

	// end of an acronym: "XMLParser" splits before 'P'
	return unicode.IsUpper(r) && unicode.IsUpper(prev) &&
		i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
