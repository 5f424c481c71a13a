package spec

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// transliterator strips combining marks after NFD decomposition,
// reducing accented Latin characters to their unaccented base form.
var transliterator = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize tokenizes name on non-alphanumeric boundaries and internal
// case transitions, transliterates non-ASCII characters to their closest
// Latin equivalent, lowercases the first token, Initial-Caps the rest,
// and concatenates, producing a deterministic camelCase identifier.
func Normalize(name string) string {
	ascii := transliterate(name)
	tokens := tokenize(ascii)

	if len(tokens) == 0 {
		return ""
	}

	var b strings.Builder

	b.WriteString(strings.ToLower(tokens[0]))

	for _, tok := range tokens[1:] {
		b.WriteString(initialCap(tok))
	}

	return b.String()
}

// transliterate reduces non-ASCII characters to their closest unaccented
// Latin form. Characters that still fall outside ASCII after
// transliteration are dropped.
func transliterate(s string) string {
	out, _, err := transform.String(transliterator, s)
	if err != nil {
		out = s
	}

	var b strings.Builder

	for _, r := range out {
		if r <= unicode.MaxASCII {
			b.WriteRune(r)
		}
	}

	return b.String()
}

// tokenize splits s on non-alphanumeric boundaries and on
// lower-to-upper case transitions (so "userID" becomes ["user", "ID"]
// and "HTTPServer" becomes ["HTTP", "Server"]).
func tokenize(s string) []string {
	var (
		tokens  []string
		current []rune
	)

	flush := func() {
		if len(current) > 0 {
			tokens = append(tokens, string(current))
			current = nil
		}
	}

	runesIn := []rune(s)
	for i, r := range runesIn {
		switch {
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			flush()
		case i > 0 && unicode.IsUpper(r) && unicode.IsLower(runesIn[i-1]):
			flush()
			current = append(current, r)
		case i > 0 && unicode.IsUpper(r) && unicode.IsUpper(runesIn[i-1]) &&
			i+1 < len(runesIn) && unicode.IsLower(runesIn[i+1]):
			flush()
			current = append(current, r)
		default:
			current = append(current, r)
		}
	}

	flush()

	return tokens
}

// initialCap upper-cases the first rune of tok and lowercases the rest.
func initialCap(tok string) string {
	if tok == "" {
		return tok
	}

	runesIn := []rune(tok)
	head := unicode.ToUpper(runesIn[0])
	tail := strings.ToLower(string(runesIn[1:]))

	return string(head) + tail
}

// ClassName derives a nested-class name from a normalized field name by
// upper-casing its first rune: "createApp" becomes "CreateApp". The rest
// of the name is kept as-is so interior camelCase humps survive.
func ClassName(normalizedName string) string {
	if normalizedName == "" {
		return ""
	}

	runesIn := []rune(normalizedName)
	runesIn[0] = unicode.ToUpper(runesIn[0])

	return string(runesIn)
}
