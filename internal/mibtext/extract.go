// Package mibtext pulls OBJECT-TYPE definitions out of raw MIB text.
//
// Extraction is pattern based, not a MIB grammar parser. Each field of an
// object is searched for in the entire document starting at the first
// "<name> OBJECT-TYPE" occurrence, so a document that repeats an object name
// or keyword text may attribute a clause of one definition to another. The
// object OID is approximated from the last number of its assignment clause.
package mibtext

import "regexp"

// EnterprisePrefix is prepended to the assignment number to form FullOID.
const EnterprisePrefix = ".1.3.6.1.4.1."

var declaration = regexp.MustCompile(`(\w+)\s+OBJECT-TYPE`)

// Object is one OBJECT-TYPE definition found in the text.
type Object struct {
	Name        string
	OIDSuffix   string
	FullOID     string
	Description string
	Syntax      string
	Access      string
}

// Stats summarizes one extraction run.
type Stats struct {
	Candidates int
	Extracted  int
	Dropped    int
}

// Observer is notified about each candidate dropped for lacking an
// assignment clause.
type Observer func(name string)

// Candidates returns the declared object names in source order, repeats
// included.
func Candidates(text string) []string {
	matches := declaration.FindAllStringSubmatch(text, -1)
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m[1])
	}
	return names
}

// Extract returns the objects declared in text, in source order.
func Extract(text string) ([]Object, Stats) {
	return ExtractWith(text, nil)
}

// ExtractWith is Extract reporting dropped candidates to onDrop.
func ExtractWith(text string, onDrop Observer) ([]Object, Stats) {
	names := Candidates(text)
	stats := Stats{Candidates: len(names)}

	type result struct {
		obj Object
		ok  bool
	}
	// A repeated name always resolves to the same fields, since every
	// field is matched from its first declaration.
	seen := make(map[string]result, len(names))

	objects := make([]Object, 0, len(names))
	for _, name := range names {
		r, cached := seen[name]
		if !cached {
			r.obj, r.ok = extractObject(text, name)
			seen[name] = r
		}
		if !r.ok {
			stats.Dropped++
			if onDrop != nil {
				onDrop(name)
			}
			continue
		}
		objects = append(objects, r.obj)
	}
	stats.Extracted = len(objects)

	return objects, stats
}

func extractObject(text, name string) (Object, bool) {
	suffix, ok := AssignmentField.For(name).Match(text)
	if !ok {
		return Object{}, false
	}

	return Object{
		Name:        name,
		OIDSuffix:   suffix,
		FullOID:     EnterprisePrefix + suffix,
		Description: DescriptionField.For(name).Value(text),
		Syntax:      SyntaxField.For(name).Value(text),
		Access:      AccessField.For(name).Value(text),
	}, true
}
