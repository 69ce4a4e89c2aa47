// Package linkheader parses HTTP Link header values (RFC 8288) into ordered
// link records with their attributes and relation types.
package linkheader

import (
	"errors"
	"strings"
)

// ErrMalformedHeader is matched by every parse error via errors.Is.
var ErrMalformedHeader = errors.New("malformed Link header")

// Attr is a single link-param. Keys are lower-cased at parse time, values
// are kept verbatim after unquoting. The same key may appear multiple times.
type Attr struct {
	Key   string
	Value string
}

// Link is one link-value from a Link header: a target URI reference plus its
// attributes in written order. Rels holds the lower-cased relation tokens
// derived from the first rel attribute, in order of first appearance; it is
// empty when the link carries no rel attribute.
type Link struct {
	Target string
	Attrs  []Attr
	Rels   []string
}

// HasRel reports whether the link carries the given relation type,
// case-insensitively.
func (l Link) HasRel(rel string) bool {
	rel = strings.ToLower(rel)
	for _, r := range l.Rels {
		if r == rel {
			return true
		}
	}
	return false
}

// Attr returns the value of the first attribute with the given key,
// case-insensitively.
func (l Link) Attr(key string) (string, bool) {
	key = strings.ToLower(key)
	for _, attr := range l.Attrs {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return "", false
}

// ParsedLinks is an ordered collection of links from one header value.
type ParsedLinks struct {
	Links []Link
}

// Lookup returns the first link in header order whose relation types include
// rel. Header order is the order link-values were written, which makes the
// first-match tie-break deterministic for callers that treat a relation as
// single-valued.
func (p ParsedLinks) Lookup(rel string) (Link, bool) {
	for _, link := range p.Links {
		if link.HasRel(rel) {
			return link, true
		}
	}
	return Link{}, false //nolint:exhaustruct
}
