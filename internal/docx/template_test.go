package docx_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docufill/backend/internal/docx"
)

func mapResolver(data map[string]string) docx.Resolver {
	return func(tag string) (string, bool) {
		v, ok := data[tag]
		return v, ok
	}
}

func TestRenderTemplateReplacesKnownTags(t *testing.T) {
	doc := buildDocument(t, "The fee is [Amount] dollars.")

	out, err := docx.RenderTemplate(doc, mapResolver(map[string]string{"Amount": "500"}))
	require.NoError(t, err)

	text, err := docx.ExtractText(out)
	require.NoError(t, err)
	assert.Contains(t, text, "The fee is 500 dollars.")
	assert.NotContains(t, text, "[Amount]")
}

func TestRenderTemplateUnknownTagRendersEmpty(t *testing.T) {
	doc := buildDocument(t, "Signed at [Location] on [Date].")

	out, err := docx.RenderTemplate(doc, mapResolver(map[string]string{"Date": "today"}))
	require.NoError(t, err)

	text, err := docx.ExtractText(out)
	require.NoError(t, err)
	assert.Contains(t, text, "Signed at  on today.")
}

func TestRenderTemplateEscapesReplacementText(t *testing.T) {
	doc := buildDocument(t, "Prepared for [Client].")

	out, err := docx.RenderTemplate(doc, mapResolver(map[string]string{"Client": "Smith & Sons <Ltd>"}))
	require.NoError(t, err)

	text, err := docx.ExtractText(out)
	require.NoError(t, err)
	assert.Contains(t, text, "Prepared for Smith & Sons <Ltd>.")
}

func TestRenderTemplateLeavesFragmentedTagsAlone(t *testing.T) {
	// A label split across two text runs has markup between its brackets;
	// the renderer must not substitute across that boundary.
	doc := buildDocument(t, "Run one [Amo", "unt] run two.")

	out, err := docx.RenderTemplate(doc, mapResolver(map[string]string{"Amount": "500"}))
	require.NoError(t, err)

	text, err := docx.ExtractText(out)
	require.NoError(t, err)
	assert.Contains(t, text, "[Amo")
	assert.Contains(t, text, "unt]")
}

func TestRenderTemplateKeepsOtherEntries(t *testing.T) {
	doc := buildDocument(t, "No tags here.")

	out, err := docx.RenderTemplate(doc, mapResolver(nil))
	require.NoError(t, err)

	// The container must survive a rewrite untouched enough to re-open.
	text, err := docx.ExtractText(out)
	require.NoError(t, err)
	assert.Contains(t, text, "No tags here.")
}

func TestRenderTemplateRejectsNonContainer(t *testing.T) {
	_, err := docx.RenderTemplate([]byte("not a zip"), mapResolver(nil))
	assert.ErrorIs(t, err, docx.ErrNotWordDocument)
}
