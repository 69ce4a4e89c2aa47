package signposting

import (
	"errors"
	"strings"

	"github.com/goccy/go-json"

	"signposting/linkheader"
	"signposting/log"
	"signposting/oops"
)

// ErrUnrecognizedContentType is matched via errors.Is when a linkset's
// content type is neither the RFC 9264 text nor JSON serialization.
var ErrUnrecognizedContentType = errors.New("unrecognized linkset content type")

type linksetDocument struct {
	Linkset []map[string]json.RawMessage `json:"linkset"`
}

type linksetTarget struct {
	Href    string `json:"href"`
	Type    string `json:"type"`
	Profile string `json:"profile"`
}

// FindSignpostingLinkset extracts FAIR Signposting from an RFC 9264 linkset
// document supplied as raw bytes, nothing is fetched. The content type
// selects the serialization: application/linkset+json, application/json or
// any +json structured syntax for the JSON form, application/linkset or
// text/plain for the text form. Content type parameters such as ;charset=
// are ignored. Anything else fails with an error matching
// ErrUnrecognizedContentType. When baseURL is non-empty, relative hrefs are
// resolved against it.
func FindSignpostingLinkset(body []byte, contentType string, baseURL string) (*Signposting, error) {
	// Dispatch on the media type proper, parameters carry no serialization
	// information and must not leak into the match.
	proper := contentType
	if i := strings.IndexByte(proper, ';'); i >= 0 {
		proper = proper[:i]
	}
	mediaType, err := ParseMediaType(strings.TrimSpace(proper))
	if err != nil {
		return nil, oops.Sentinel(ErrUnrecognizedContentType, "%q", contentType)
	}

	switch {
	case mediaType.Full == "application/linkset+json",
		mediaType.Full == "application/json",
		mediaType.Main == "application" && strings.HasSuffix(mediaType.Sub, "+json"):
		return findSignpostingLinksetJSON(body, baseURL)
	case mediaType.Full == "application/linkset",
		mediaType.Full == "text/plain":
		// RFC 9264 text form is RFC 8288 grammar plus newlines, which are
		// regular whitespace to the header parser after normalization.
		header := strings.NewReplacer("\r", " ", "\n", " ").Replace(string(body))
		return FindSignposting([]string{strings.TrimSpace(header)}, baseURL)
	default:
		return nil, oops.Sentinel(ErrUnrecognizedContentType, "%q", contentType)
	}
}

func findSignpostingLinksetJSON(body []byte, baseURL string) (*Signposting, error) {
	var doc linksetDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, oops.Wrapf(err, "not a valid RFC9264 JSON linkset")
	}
	if doc.Linkset == nil {
		return nil, oops.New("not a valid RFC9264 JSON, top level 'linkset' array required")
	}

	var links []linkheader.Link
	for _, context := range doc.Linkset {
		// JSON object member order is not preserved by decoding, so relations
		// are visited in vocabulary order to keep the result deterministic.
		for _, rel := range relationNames {
			raw, ok := context[rel]
			if !ok {
				continue
			}
			var targets []linksetTarget
			if err := json.Unmarshal(raw, &targets); err != nil {
				log.Warn().Str("rel", rel).Msg("Not an array, ignoring link targets")
				continue
			}
			for _, target := range targets {
				if target.Href == "" {
					log.Warn().Str("rel", rel).
						Msg("Missing required 'href' attribute, ignoring link target")
					continue
				}
				links = append(links, linksetLink(rel, target))
			}
		}
	}

	if baseURL != "" {
		var err error
		links, err = absolutizeLinks(links, baseURL)
		if err != nil {
			return nil, err
		}
	}

	signposting := classify(links)
	if signposting.IsEmpty() {
		log.Warn().Msg("No signposting found in linkset")
	}
	return signposting, nil
}

func linksetLink(rel string, target linksetTarget) linkheader.Link {
	attrs := []linkheader.Attr{
		{Key: "rel", Value: rel},
		{Key: "href", Value: target.Href},
	}
	if target.Type != "" {
		attrs = append(attrs, linkheader.Attr{Key: "type", Value: target.Type})
	}
	if target.Profile != "" {
		attrs = append(attrs, linkheader.Attr{Key: "profile", Value: target.Profile})
	}
	return linkheader.Link{
		Target: target.Href,
		Attrs:  attrs,
		Rels:   []string{rel},
	}
}
