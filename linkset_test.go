package signposting

import (
	"testing"

	"github.com/stretchr/testify/require"

	"signposting/oops/oopstest"
)

func TestFindSignpostingLinksetJSON(t *testing.T) {
	body := []byte(`{
		"linkset": [
			{
				"anchor": "https://example.org/dataset/",
				"cite-as": [{"href": "https://doi.org/10.5555/12345678"}],
				"describedby": [{"href": "metadata.ttl", "type": "text/turtle"}],
				"item": [
					{"href": "data.csv", "type": "text/csv"},
					{"href": "data.json", "type": "application/json"}
				]
			}
		]
	}`)

	result, err := FindSignpostingLinkset(
		body, "application/linkset+json", "https://example.org/dataset/linkset.json")
	oopstest.RequireNoError(t, err)

	require.NotNil(t, result.CiteAs)
	require.Equal(t, "https://doi.org/10.5555/12345678", result.CiteAs.Target)

	require.Len(t, result.DescribedBy, 1)
	require.Equal(t, "https://example.org/dataset/metadata.ttl", result.DescribedBy[0].Target)
	describedByType, ok := result.DescribedBy[0].Attr("type")
	require.True(t, ok)
	require.Equal(t, "text/turtle", describedByType)

	require.Len(t, result.Item, 2)
	require.Equal(t, "https://example.org/dataset/data.csv", result.Item[0].Target)
	require.Equal(t, "https://example.org/dataset/data.json", result.Item[1].Target)
}

func TestFindSignpostingLinksetJSONSkipsBadEntries(t *testing.T) {
	body := []byte(`{
		"linkset": [
			{
				"cite-as": "not an array",
				"item": [{"type": "text/csv"}, {"href": "https://example.org/data.csv"}],
				"stylesheet": [{"href": "https://example.org/style.css"}]
			}
		]
	}`)

	result, err := FindSignpostingLinkset(body, "application/linkset+json", "")
	oopstest.RequireNoError(t, err)

	require.Nil(t, result.CiteAs)
	require.Len(t, result.Item, 1)
	require.Equal(t, "https://example.org/data.csv", result.Item[0].Target)
}

func TestFindSignpostingLinksetJSONInvalid(t *testing.T) {
	_, err := FindSignpostingLinkset([]byte(`{]`), "application/linkset+json", "")
	require.Error(t, err)

	_, err = FindSignpostingLinkset([]byte(`{"links": []}`), "application/linkset+json", "")
	require.Error(t, err)
	require.Contains(t, err.Error(), "linkset")
}

func TestFindSignpostingLinksetText(t *testing.T) {
	body := []byte(`<https://w3id.org/a2a-fair-metrics/28-http-linkset-txt-only/>
 ; anchor="https://example.org/dataset/"
 ; rel="cite-as"
 , <https://example.org/dataset/index.ttl>
 ; rel="describedby"
 ; type="text/turtle"
`)

	result, err := FindSignpostingLinkset(body, "application/linkset", "")
	oopstest.RequireNoError(t, err)

	require.NotNil(t, result.CiteAs)
	require.Equal(t, "https://w3id.org/a2a-fair-metrics/28-http-linkset-txt-only/",
		result.CiteAs.Target)

	require.Len(t, result.DescribedBy, 1)
	require.Equal(t, "https://example.org/dataset/index.ttl", result.DescribedBy[0].Target)
}

func TestFindSignpostingLinksetTextMalformed(t *testing.T) {
	_, err := FindSignpostingLinkset(
		[]byte(`<https://example.org/ ; rel="cite-as"`), "application/linkset", "")
	require.Error(t, err)
}

func TestFindSignpostingLinksetContentTypes(t *testing.T) {
	jsonBody := []byte(`{"linkset": []}`)

	_, err := FindSignpostingLinkset(jsonBody, "application/linkset+json; charset=utf-8", "")
	oopstest.RequireNoError(t, err)

	_, err = FindSignpostingLinkset(jsonBody, "application/json", "")
	oopstest.RequireNoError(t, err)

	_, err = FindSignpostingLinkset(jsonBody, "application/ld+json", "")
	oopstest.RequireNoError(t, err)

	_, err = FindSignpostingLinkset([]byte(""), "text/plain", "")
	oopstest.RequireNoError(t, err)

	_, err = FindSignpostingLinkset(jsonBody, "text/html", "")
	require.ErrorIs(t, err, ErrUnrecognizedContentType)

	// json as a subtype fragment or parameter value must not select the
	// JSON form
	_, err = FindSignpostingLinkset(jsonBody, "text/json-patch", "")
	require.ErrorIs(t, err, ErrUnrecognizedContentType)

	_, err = FindSignpostingLinkset(jsonBody, "", "")
	require.ErrorIs(t, err, ErrUnrecognizedContentType)
}

func TestFindSignpostingLinksetTextWithJSONParameter(t *testing.T) {
	body := []byte(`<https://doi.org/10.5555/12345678>; rel="cite-as"`)

	result, err := FindSignpostingLinkset(body, `text/plain; note=json`, "")
	oopstest.RequireNoError(t, err)
	require.NotNil(t, result.CiteAs)
	require.Equal(t, "https://doi.org/10.5555/12345678", result.CiteAs.Target)
}
