package mibtext

import (
	"regexp"
	"strings"
)

// Defaults applied when a field clause is absent.
const (
	DefaultSyntax = "OCTETSTR"
	DefaultAccess = "read-only"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Field extracts one clause of an OBJECT-TYPE definition. Every field is
// matched on its own against the whole document, starting from the first
// "<name> OBJECT-TYPE" occurrence and stopping at the nearest clause.
type Field struct {
	Name string

	// clause follows the object declaration, separated by a non-greedy
	// wildcard that also crosses newlines.
	clause string
	// group is the capture group holding the value.
	group int

	normalize func(string) string
	fallback  func(name string) string
}

var (
	// DescriptionField captures the quoted DESCRIPTION text.
	DescriptionField = Field{
		Name:   "description",
		clause: `DESCRIPTION\s+"([^"]+)"`,
		group:  1,
		normalize: func(v string) string {
			return strings.TrimSpace(whitespaceRun.ReplaceAllString(v, " "))
		},
		fallback: func(name string) string { return name + " OID" },
	}

	// SyntaxField captures the first token after SYNTAX.
	SyntaxField = Field{
		Name:      "syntax",
		clause:    `SYNTAX\s+(\S+)`,
		group:     1,
		normalize: strings.TrimSpace,
		fallback:  func(string) string { return DefaultSyntax },
	}

	// AccessField captures the token after ACCESS or MAX-ACCESS,
	// whichever appears first.
	AccessField = Field{
		Name:      "access",
		clause:    `(ACCESS|MAX-ACCESS)\s+(\S+)`,
		group:     2,
		normalize: strings.TrimSpace,
		fallback:  func(string) string { return DefaultAccess },
	}

	// AssignmentField captures the trailing number of "::= { parent N }".
	// It has no default: objects without it are dropped.
	AssignmentField = Field{
		Name:   "assignment",
		clause: `::=\s*\{\s*\w+\s*(\d+)\s*\}`,
		group:  1,
	}
)

// Matcher is a Field bound to one object name, with its pattern compiled.
type Matcher struct {
	field Field
	name  string
	re    *regexp.Regexp
}

// For compiles the field pattern for the object called name.
func (f Field) For(name string) Matcher {
	return Matcher{
		field: f,
		name:  name,
		re:    regexp.MustCompile(`(?s)` + regexp.QuoteMeta(name) + `\s+OBJECT-TYPE.*?` + f.clause),
	}
}

// Match reports the captured value, if the clause is present anywhere after
// a declaration of the bound name.
func (m Matcher) Match(text string) (string, bool) {
	sub := m.re.FindStringSubmatch(text)
	if sub == nil {
		return "", false
	}
	v := sub[m.field.group]
	if m.field.normalize != nil {
		v = m.field.normalize(v)
	}
	return v, true
}

// Value is Match with the field default substituted for a missing clause.
func (m Matcher) Value(text string) string {
	if v, ok := m.Match(text); ok {
		return v
	}
	if m.field.fallback == nil {
		return ""
	}
	return m.field.fallback(m.name)
}

// Match reports the captured value for the object called name. Callers
// matching many fields of the same name should reuse For.
func (f Field) Match(text, name string) (string, bool) {
	return f.For(name).Match(text)
}

// Value is Match with the field default substituted for a missing clause.
func (f Field) Value(text, name string) string {
	return f.For(name).Value(text)
}
