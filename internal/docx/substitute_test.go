package docx_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docufill/backend/internal/docx"
)

func TestSubstituteRunsFindsTextInsideCompressedParts(t *testing.T) {
	// The container stores its parts deflate-compressed, so the sentence
	// is not visible in the raw archive bytes; the substitution must work
	// against the decompressed part content.
	doc := buildDocument(t, "Pay $[____] for rent.")
	require.False(t, bytes.Contains(doc, []byte("Pay $[____] for rent.")))

	out, found, err := docx.SubstituteRuns(doc, []docx.Substitution{
		{Find: []byte("Pay $[____] for rent."), Replace: []byte("Pay 100 for rent.")},
	})
	require.NoError(t, err)
	require.True(t, found)

	text, err := docx.ExtractText(out)
	require.NoError(t, err)
	assert.Contains(t, text, "Pay 100 for rent.")
	assert.NotContains(t, text, "$[____]")
}

func TestSubstituteRunsAppliesEachRunToItsOwnSentence(t *testing.T) {
	doc := buildDocument(t, "Pay $[____] for rent.", "Pay $[____] for parking.")

	out, found, err := docx.SubstituteRuns(doc, []docx.Substitution{
		{Find: []byte("Pay $[____] for rent."), Replace: []byte("Pay 100 for rent.")},
		{Find: []byte("Pay $[____] for parking."), Replace: []byte("Pay 200 for parking.")},
	})
	require.NoError(t, err)
	require.True(t, found)

	text, err := docx.ExtractText(out)
	require.NoError(t, err)
	assert.Contains(t, text, "Pay 100 for rent.")
	assert.Contains(t, text, "Pay 200 for parking.")
}

func TestSubstituteRunsAbandonsWhenRunMissing(t *testing.T) {
	doc := buildDocument(t, "Pay $[____] today.")

	out, found, err := docx.SubstituteRuns(doc, []docx.Substitution{
		{Find: []byte("Pay $[____] today."), Replace: []byte("Pay 100 today.")},
		{Find: []byte("this sentence is not in the document"), Replace: []byte("x")},
	})
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, out)
}

func TestSubstituteRunsIgnoresNonTextParts(t *testing.T) {
	// The [Content_Types].xml entry is not a text part; a run that only
	// occurs there must not be substituted.
	doc := buildDocument(t, "Body text.")

	_, found, err := docx.SubstituteRuns(doc, []docx.Substitution{
		{Find: []byte("content-types"), Replace: []byte("x")},
	})
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSubstituteRunsRejectsNonContainer(t *testing.T) {
	_, _, err := docx.SubstituteRuns([]byte("not a zip"), nil)
	assert.ErrorIs(t, err, docx.ErrNotWordDocument)
}
