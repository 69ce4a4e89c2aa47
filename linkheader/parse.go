package linkheader

import (
	"strings"

	"signposting/oops"
)

// Parse parses a full Link header value, possibly containing multiple
// comma-separated link-values. Commas inside quoted attribute values do not
// split entries. An empty or all-whitespace header parses to zero links.
// Grammar violations return errors matching ErrMalformedHeader, with the
// byte offset of the problem in the message.
func Parse(header string) (ParsedLinks, error) {
	p := &parser{input: header}
	p.skipWhitespace()
	if p.done() {
		return ParsedLinks{Links: nil}, nil
	}

	var links []Link
	for {
		link, err := p.parseLinkValue()
		if err != nil {
			return ParsedLinks{Links: nil}, err
		}
		links = append(links, link)

		p.skipWhitespace()
		if p.done() {
			return ParsedLinks{Links: links}, nil
		}
		if p.input[p.pos] != ',' {
			return ParsedLinks{Links: nil}, p.errorf("expected ',' or end of header")
		}
		p.pos++
		p.skipWhitespace()
		if p.done() {
			return ParsedLinks{Links: nil}, p.errorf("trailing ',' without a link")
		}
	}
}

type parser struct {
	input string
	pos   int
}

func (p *parser) done() bool {
	return p.pos >= len(p.input)
}

func (p *parser) errorf(format string, a ...any) error {
	a = append(a, p.pos)
	return oops.Sentinel(ErrMalformedHeader, format+" at offset %d", a...)
}

// Header folding across lines means \r and \n can legally show up where
// optional whitespace is allowed, so they are skipped along with SP and HTAB.
func (p *parser) skipWhitespace() {
	for !p.done() {
		switch p.input[p.pos] {
		case ' ', '\t', '\r', '\n':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) parseLinkValue() (Link, error) {
	if p.input[p.pos] != '<' {
		return Link{}, p.errorf("expected '<'") //nolint:exhaustruct
	}
	p.pos++
	targetStart := p.pos
	end := strings.IndexByte(p.input[p.pos:], '>')
	if end < 0 {
		p.pos = targetStart - 1
		return Link{}, p.errorf("unclosed '<'") //nolint:exhaustruct
	}
	target := p.input[targetStart : targetStart+end]
	p.pos = targetStart + end + 1

	var attrs []Attr
	for {
		p.skipWhitespace()
		if p.done() || p.input[p.pos] != ';' {
			break
		}
		p.pos++
		attr, err := p.parseAttr()
		if err != nil {
			return Link{}, err //nolint:exhaustruct
		}
		attrs = append(attrs, attr)
	}

	return Link{
		Target: target,
		Attrs:  attrs,
		Rels:   deriveRels(attrs),
	}, nil
}

func (p *parser) parseAttr() (Attr, error) {
	p.skipWhitespace()
	nameStart := p.pos
	for !p.done() && isTokenChar(p.input[p.pos]) {
		p.pos++
	}
	if p.pos == nameStart {
		return Attr{}, p.errorf("expected attribute name") //nolint:exhaustruct
	}
	name := strings.ToLower(p.input[nameStart:p.pos])

	p.skipWhitespace()
	if p.done() || p.input[p.pos] != '=' {
		// Valueless link-param, e.g. crossorigin
		return Attr{Key: name, Value: ""}, nil
	}
	p.pos++
	p.skipWhitespace()

	if !p.done() && p.input[p.pos] == '"' {
		value, err := p.parseQuotedString()
		if err != nil {
			return Attr{}, err //nolint:exhaustruct
		}
		return Attr{Key: name, Value: value}, nil
	}

	// RFC 8288 Appendix B parses unquoted values leniently up to the next
	// delimiter, which admits non-token characters like the slash in
	// type=text/plain.
	valueStart := p.pos
	for !p.done() && !isValueDelimiter(p.input[p.pos]) {
		p.pos++
	}
	if p.pos == valueStart {
		return Attr{}, p.errorf("expected attribute value") //nolint:exhaustruct
	}
	return Attr{Key: name, Value: p.input[valueStart:p.pos]}, nil
}

func isValueDelimiter(c byte) bool {
	switch c {
	case ';', ',', ' ', '\t', '\r', '\n':
		return true
	}
	return false
}

func (p *parser) parseQuotedString() (string, error) {
	openQuote := p.pos
	p.pos++
	var b strings.Builder
	for !p.done() {
		c := p.input[p.pos]
		switch c {
		case '"':
			p.pos++
			return b.String(), nil
		case '\\':
			if p.pos+1 >= len(p.input) {
				p.pos = openQuote
				return "", p.errorf("unterminated quoted string")
			}
			p.pos++
			b.WriteByte(p.input[p.pos])
			p.pos++
		default:
			b.WriteByte(c)
			p.pos++
		}
	}
	p.pos = openQuote
	return "", p.errorf("unterminated quoted string")
}

// RFC 7230 tchar, for attribute names
func isTokenChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	switch c {
	case '!', '#', '$', '%', '&', '\'', '*', '+', '-', '.', '^', '_', '`', '|', '~':
		return true
	}
	return false
}

// RFC 8288 says occurrences of rel after the first must be ignored, so the
// relation set comes from the first rel attribute only. Tokens are
// lower-cased, whitespace-split and deduplicated keeping first appearance.
func deriveRels(attrs []Attr) []string {
	for _, attr := range attrs {
		if attr.Key != "rel" {
			continue
		}
		var rels []string
		seen := map[string]bool{}
		for _, token := range strings.Fields(strings.ToLower(attr.Value)) {
			if seen[token] {
				continue
			}
			seen[token] = true
			rels = append(rels, token)
		}
		return rels
	}
	return nil
}
