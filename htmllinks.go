package signposting

import (
	"io"
	"strings"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"

	"signposting/linkheader"
	"signposting/log"
	"signposting/oops"
)

// FindSignpostingHTML extracts FAIR Signposting from the <link> elements in
// an HTML document's <head>. The document is supplied by the caller, nothing
// is fetched. Elements without an href or without any signposting relation
// are ignored, as is an invalid type attribute (the link itself is kept).
// When baseURL is non-empty, href and target values are resolved against it
// the same way FindSignposting does. An empty result is not an error.
func FindSignpostingHTML(r io.Reader, baseURL string) (*Signposting, error) {
	doc, err := htmlquery.Parse(r)
	if err != nil {
		return nil, oops.Wrap(err)
	}

	var links []linkheader.Link
	for _, node := range htmlquery.Find(doc, "//head/link") {
		if link, ok := linkFromElement(node); ok {
			links = append(links, link)
		}
	}

	if baseURL != "" {
		links, err = absolutizeLinks(links, baseURL)
		if err != nil {
			return nil, err
		}
	}

	signposting := classify(links)
	if signposting.IsEmpty() {
		log.Warn().Msg("No signposting found in HTML <head>")
	}
	return signposting, nil
}

// linkFromElement synthesizes a link record from a <link> element, keeping
// only the signposting relation tokens and the navigational attributes
// (href, type, profile).
func linkFromElement(node *html.Node) (linkheader.Link, bool) {
	href := htmlquery.SelectAttr(node, "href")
	if href == "" {
		return linkheader.Link{}, false //nolint:exhaustruct
	}

	var rels []string
	seen := map[string]bool{}
	for _, token := range strings.Fields(strings.ToLower(htmlquery.SelectAttr(node, "rel"))) {
		if relations[token] && !seen[token] {
			seen[token] = true
			rels = append(rels, token)
		}
	}
	if len(rels) == 0 {
		return linkheader.Link{}, false //nolint:exhaustruct
	}

	attrs := []linkheader.Attr{
		{Key: "rel", Value: strings.Join(rels, " ")},
		{Key: "href", Value: href},
	}
	if mediaType := htmlquery.SelectAttr(node, "type"); mediaType != "" {
		if parsed, err := ParseMediaType(mediaType); err != nil {
			log.Warn().Str("href", href).Str("type", mediaType).
				Msg("Ignoring invalid media type on <link>")
		} else {
			attrs = append(attrs, linkheader.Attr{Key: "type", Value: parsed.Full})
		}
	}
	if profile := htmlquery.SelectAttr(node, "profile"); profile != "" {
		attrs = append(attrs, linkheader.Attr{Key: "profile", Value: profile})
	}

	return linkheader.Link{
		Target: href,
		Attrs:  attrs,
		Rels:   rels,
	}, true
}
