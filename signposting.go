// Package signposting discovers FAIR Signposting links
// (https://signposting.org/FAIR/) in HTTP Link headers, HTML <link> elements
// and RFC 9264 linksets, and classifies them by relation type.
package signposting

import (
	"errors"
	"strings"

	"signposting/linkheader"
	"signposting/oops"
)

// ErrInvalidRelation is matched via errors.Is when a caller-supplied relation
// name is outside the FAIR Signposting vocabulary.
var ErrInvalidRelation = errors.New("invalid link relation")

// The FAIR Signposting vocabulary, in conventional listing order.
// Note describes is recognized but has no dedicated Signposting field.
var relationNames = []string{
	"author", "collection", "describedby", "describes", "item",
	"cite-as", "type", "license", "linkset",
}

var relations map[string]bool

func init() {
	relations = make(map[string]bool, len(relationNames))
	for _, name := range relationNames {
		relations[name] = true
	}
}

// FilterByRelations returns the links whose relation types intersect the
// given relation names, preserving input order. Names are matched
// case-insensitively against the FAIR Signposting vocabulary; unknown names
// are dropped from the filter. Passing no names filters by the entire
// vocabulary. The call fails with ErrInvalidRelation only when names were
// supplied and none of them was valid.
func FilterByRelations(
	links []linkheader.Link, names ...string,
) ([]linkheader.Link, error) {
	var filter map[string]bool
	if len(names) == 0 {
		filter = relations
	} else {
		filter = make(map[string]bool, len(names))
		for _, name := range names {
			name = strings.ToLower(name)
			if relations[name] {
				filter[name] = true
			}
		}
		if len(filter) == 0 {
			return nil, oops.Sentinel(
				ErrInvalidRelation, "%q", strings.Join(names, " "),
			)
		}
	}

	var matched []linkheader.Link
	for _, link := range links {
		for _, rel := range link.Rels {
			if filter[rel] {
				matched = append(matched, link)
				break
			}
		}
	}
	return matched, nil
}

// LookupSingleRelation returns the first link in header order carrying the
// given relation, or nil when no link does. The relation name must belong to
// the FAIR Signposting vocabulary, otherwise the call fails with
// ErrInvalidRelation.
func LookupSingleRelation(
	links []linkheader.Link, name string,
) (*linkheader.Link, error) {
	supplied := name
	name = strings.ToLower(name)
	if !relations[name] {
		return nil, oops.Sentinel(ErrInvalidRelation, "%q", supplied)
	}
	for _, link := range links {
		if link.HasRel(name) {
			match := link
			return &match, nil
		}
	}
	return nil, nil
}
