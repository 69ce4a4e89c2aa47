package signposting

import (
	"regexp"
	"strings"

	"signposting/log"
	"signposting/oops"
)

// MediaType is an IANA media type such as text/plain, validated against
// RFC 6838 section 4.2 and lower-cased. Content type parameters
// (e.g. ;profile=...) are not part of a media type registration and are
// rejected. Subtypes are not checked against the IANA registry, RFC 6838
// permits unregistered subtypes such as vnd.* and x.*.
type MediaType struct {
	Full string
	Main string
	Sub  string
}

var mediaTypeRegex *regexp.Regexp

func init() {
	mediaTypeRegex = regexp.MustCompile(
		`^([a-z0-9][a-z0-9!#$&^_-]*)/([a-z0-9][a-z0-9!#$&^_+.-]*)$`)
}

// Registry trees as of 2022-05-17 in the IANA registry,
// https://www.iana.org/assignments/media-types/media-types.xhtml
var mediaTypeMainTrees = map[string]bool{
	"application": true, "audio": true, "example": true, "font": true,
	"image": true, "message": true, "model": true, "multipart": true,
	"text": true, "video": true,
}

func ParseMediaType(value string) (MediaType, error) {
	if len(value) > 255 {
		// Guard before giving a large media type to the regex
		return MediaType{}, oops.New("media type should be less than 255 characters long") //nolint:exhaustruct
	}
	match := mediaTypeRegex.FindStringSubmatch(strings.ToLower(value))
	if match == nil {
		return MediaType{}, oops.Newf("media type invalid according to RFC 6838: %q", value) //nolint:exhaustruct
	}
	main, sub := match[1], match[2]
	if len(main) > 127 {
		return MediaType{}, oops.New("media main type should be no more than 127 characters long") //nolint:exhaustruct
	}
	if len(sub) > 127 {
		return MediaType{}, oops.New("media sub-type should be no more than 127 characters long") //nolint:exhaustruct
	}
	if !mediaTypeMainTrees[main] {
		log.Warn().Str("main", main).Msg("Unrecognized media type main tree")
	}
	return MediaType{
		Full: match[0],
		Main: main,
		Sub:  sub,
	}, nil
}
