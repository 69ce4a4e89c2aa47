package signposting

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseMediaType(t *testing.T) {
	type test struct {
		description  string
		value        string
		expectedMain string
		expectedSub  string
	}

	tests := []test{
		{
			description:  "plain text",
			value:        "text/plain",
			expectedMain: "text",
			expectedSub:  "plain",
		},
		{
			description:  "lower-cased",
			value:        "Text/HTML",
			expectedMain: "text",
			expectedSub:  "html",
		},
		{
			description:  "structured syntax suffix",
			value:        "application/ld+json",
			expectedMain: "application",
			expectedSub:  "ld+json",
		},
		{
			description:  "vendor tree subtype",
			value:        "application/vnd.example.dataset",
			expectedMain: "application",
			expectedSub:  "vnd.example.dataset",
		},
		{
			description:  "unregistered main tree is a warning, not an error",
			value:        "chemical/x-pdb",
			expectedMain: "chemical",
			expectedSub:  "x-pdb",
		},
	}

	for _, tc := range tests {
		mediaType, err := ParseMediaType(tc.value)
		require.NoError(t, err, tc.description)
		require.Equal(t, tc.expectedMain, mediaType.Main, tc.description)
		require.Equal(t, tc.expectedSub, mediaType.Sub, tc.description)
		require.Equal(t, tc.expectedMain+"/"+tc.expectedSub, mediaType.Full, tc.description)
	}
}

func TestParseMediaTypeInvalid(t *testing.T) {
	type test struct {
		description string
		value       string
	}

	tests := []test{
		{
			description: "missing subtype",
			value:       "text",
		},
		{
			description: "empty",
			value:       "",
		},
		{
			description: "content type parameters are not part of the media type",
			value:       "text/plain;charset=utf-8",
		},
		{
			description: "spaces",
			value:       "text / plain",
		},
		{
			description: "longer than 255 characters",
			value:       "text/" + strings.Repeat("x", 255),
		},
		{
			description: "subtype longer than 127 characters",
			value:       "text/" + strings.Repeat("x", 128),
		},
	}

	for _, tc := range tests {
		_, err := ParseMediaType(tc.value)
		require.Error(t, err, tc.description)
	}
}
