package signposting

import (
	neturl "net/url"
	"strings"

	"signposting/linkheader"
	"signposting/oops"
)

// Signposting holds the FAIR Signposting links of one resource, classified
// by relation type. Author, DescribedBy, Type, Item and Linkset may carry
// any number of links in header order. CiteAs, License and Collection are
// conventionally singular, so they hold the first matching link or nil —
// nil is a distinct state from an empty list and means the relation was not
// declared at all. A Signposting is never mutated after construction.
type Signposting struct {
	Author      []linkheader.Link
	CiteAs      *linkheader.Link
	DescribedBy []linkheader.Link
	Type        []linkheader.Link
	License     *linkheader.Link
	Item        []linkheader.Link
	Collection  *linkheader.Link
	Linkset     []linkheader.Link
}

// IsEmpty reports whether no signposting relation was found at all.
func (s *Signposting) IsEmpty() bool {
	return len(s.Author) == 0 && s.CiteAs == nil && len(s.DescribedBy) == 0 &&
		len(s.Type) == 0 && s.License == nil && len(s.Item) == 0 &&
		s.Collection == nil && len(s.Linkset) == 0
}

// FindSignposting extracts FAIR Signposting from raw Link header values.
// Multiple header values are folded into one before parsing, preserving
// order. Links whose relation types fall outside the signposting vocabulary
// are discarded. When baseURL is non-empty, each retained link's target and
// href attributes are resolved against it; an unparseable baseURL fails the
// call. A malformed header fails the whole call with an error matching
// linkheader.ErrMalformedHeader.
func FindSignposting(headers []string, baseURL string) (*Signposting, error) {
	parsed, err := linkheader.Parse(strings.Join(headers, ", "))
	if err != nil {
		return nil, err
	}
	relevant, err := FilterByRelations(parsed.Links)
	if err != nil {
		return nil, err
	}
	if baseURL != "" {
		relevant, err = absolutizeLinks(relevant, baseURL)
		if err != nil {
			return nil, err
		}
	}
	return classify(relevant), nil
}

// classify assumes links are already restricted to the signposting
// vocabulary. The relation names below are all valid, so the filter and
// lookup calls cannot fail.
func classify(links []linkheader.Link) *Signposting {
	s := &Signposting{} //nolint:exhaustruct
	s.Author, _ = FilterByRelations(links, "author")
	s.CiteAs, _ = LookupSingleRelation(links, "cite-as")
	s.DescribedBy, _ = FilterByRelations(links, "describedby")
	s.Type, _ = FilterByRelations(links, "type")
	s.License, _ = LookupSingleRelation(links, "license")
	s.Item, _ = FilterByRelations(links, "item")
	s.Collection, _ = LookupSingleRelation(links, "collection")
	s.Linkset, _ = FilterByRelations(links, "linkset")
	return s
}

func absolutizeLinks(links []linkheader.Link, baseURL string) ([]linkheader.Link, error) {
	base, err := neturl.Parse(baseURL)
	if err != nil {
		return nil, oops.Wrapf(err, "invalid base url %q", baseURL)
	}
	resolved := make([]linkheader.Link, 0, len(links))
	for _, link := range links {
		resolved = append(resolved, absolutizeLink(link, base))
	}
	return resolved, nil
}

// absolutizeLink builds a fresh link with the target and any href attribute
// values resolved against base. The input link is left untouched so a parsed
// collection can be shared between callers.
func absolutizeLink(link linkheader.Link, base *neturl.URL) linkheader.Link {
	attrs := make([]linkheader.Attr, len(link.Attrs))
	for i, attr := range link.Attrs {
		if attr.Key == "href" {
			attr.Value = resolveReference(base, attr.Value)
		}
		attrs[i] = attr
	}
	return linkheader.Link{
		Target: resolveReference(base, link.Target),
		Attrs:  attrs,
		Rels:   append([]string(nil), link.Rels...),
	}
}

func resolveReference(base *neturl.URL, ref string) string {
	uri, err := neturl.Parse(ref)
	if err != nil {
		// Not a parseable URI reference, leave it as written
		return ref
	}
	return base.ResolveReference(uri).String()
}
