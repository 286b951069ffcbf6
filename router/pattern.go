package router

import (
	"regexp"
	"strings"
)

// placeholderRe matches {name} placeholders in route templates. A name is
// one or more non-"}" characters.
var placeholderRe = regexp.MustCompile(`\{([^}]+)\}`)

// CompilePattern converts a route template into an anchored regexp plus
// the ordered list of placeholder names. Each {name} becomes a ([^/]+)
// capture bound to exactly one path segment; all other text is matched
// literally. The pattern is anchored at both ends, so matching is always
// a full-path match, never a prefix match.
//
// Duplicate placeholder names are kept in order; when the captures are
// later folded into a name→value map the last occurrence wins.
//
// Malformed templates degrade deterministically: an unclosed "{" never
// matches the placeholder pattern, so it is quoted into the literal part
// of the regexp and must appear verbatim in the request path.
func CompilePattern(template string) (*regexp.Regexp, []string) {
	var b strings.Builder
	b.WriteString("^")

	var names []string
	last := 0
	for _, loc := range placeholderRe.FindAllStringSubmatchIndex(template, -1) {
		b.WriteString(regexp.QuoteMeta(template[last:loc[0]]))
		b.WriteString(`([^/]+)`)
		names = append(names, template[loc[2]:loc[3]])
		last = loc[1]
	}
	b.WriteString(regexp.QuoteMeta(template[last:]))
	b.WriteString("$")

	// Everything outside the injected capture groups is QuoteMeta'd, so
	// the pattern is guaranteed to compile.
	return regexp.MustCompile(b.String()), names
}
