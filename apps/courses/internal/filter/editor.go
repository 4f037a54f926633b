package filter

import (
	"net/url"
	"slices"
	"strings"
)

// SubjectsParam is the query parameter holding the selected subject tokens.
const SubjectsParam = "subjects"

const (
	tokenSeparator = ","
	pairSeparator  = "&"
)

// AddSubject returns link with token added to its subjects parameter.
// Adding a token that is already selected returns the canonical form of link.
func AddSubject(link string, token string) string {
	parts := parseLink(link)
	parts.add(token)
	return parts.String()
}

// RemoveSubject returns link with token removed from its subjects parameter.
// The parameter is dropped once no tokens are left.
func RemoveSubject(link string, token string) string {
	parts := parseLink(link)
	parts.remove(token)
	return parts.String()
}

// Subjects decodes the ordered token set of the subjects parameter of link.
func Subjects(link string) []string {
	return slices.Clone(parseLink(link).tokens)
}

type linkParts struct {
	base     string
	pairs    []string
	subjects int
	tokens   []string
	fragment string
}

func parseLink(link string) linkParts {
	//nolint:exhaustruct //other fields are filled while parsing
	parts := linkParts{subjects: -1}

	rest := link
	if i := strings.IndexByte(rest, '#'); i >= 0 {
		parts.fragment = rest[i:]
		rest = rest[:i]
	}

	base, rawQuery, _ := strings.Cut(rest, "?")
	parts.base = base

	for _, pair := range strings.Split(rawQuery, pairSeparator) {
		if pair == "" {
			continue
		}

		key, value, _ := strings.Cut(pair, "=")
		if key != SubjectsParam {
			parts.pairs = append(parts.pairs, pair)
			continue
		}

		// repeated subjects pairs are merged into the first one
		if parts.subjects < 0 {
			parts.subjects = len(parts.pairs)
			parts.pairs = append(parts.pairs, "")
		}

		for _, raw := range strings.Split(value, tokenSeparator) {
			parts.add(unescapeToken(raw))
		}
	}

	return parts
}

func (parts *linkParts) add(token string) {
	if token == "" || slices.Contains(parts.tokens, token) {
		return
	}
	parts.tokens = append(parts.tokens, token)
}

func (parts *linkParts) remove(token string) {
	parts.tokens = slices.DeleteFunc(parts.tokens, func(t string) bool {
		return t == token
	})
}

func (parts linkParts) subjectsPair() string {
	escaped := make([]string, 0, len(parts.tokens))
	for _, token := range parts.tokens {
		escaped = append(escaped, escapeToken(token))
	}
	return SubjectsParam + "=" + strings.Join(escaped, tokenSeparator)
}

func (parts linkParts) String() string {
	pairs := make([]string, 0, len(parts.pairs)+1)
	for i, pair := range parts.pairs {
		if i != parts.subjects {
			pairs = append(pairs, pair)
			continue
		}

		if len(parts.tokens) > 0 {
			pairs = append(pairs, parts.subjectsPair())
		}
	}

	if parts.subjects < 0 && len(parts.tokens) > 0 {
		pairs = append(pairs, parts.subjectsPair())
	}

	var b strings.Builder
	b.WriteString(parts.base)
	if len(pairs) > 0 {
		b.WriteByte('?')
		b.WriteString(strings.Join(pairs, pairSeparator))
	}
	b.WriteString(parts.fragment)

	return b.String()
}

// escapeToken never writes a literal '+', so unescapeToken can keep one as is.
func escapeToken(token string) string {
	return strings.ReplaceAll(url.QueryEscape(token), "+", "%20")
}

func unescapeToken(raw string) string {
	token, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return token
}
