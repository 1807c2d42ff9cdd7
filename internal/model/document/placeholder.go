package document

// PlaceholderType distinguishes labeled markers from blank-run markers.
type PlaceholderType string

const (
	// Named placeholders carry their own label, e.g. "[Company Name]".
	Named PlaceholderType = "named"
	// Generic placeholders are unlabeled blank runs, e.g. "$[_____]";
	// their meaning comes from the surrounding sentence.
	Generic PlaceholderType = "generic"
)

// Placeholder is one fillable marker found in an uploaded document.
type Placeholder struct {
	ID       string          `json:"id"`
	Key      string          `json:"key"`
	Type     PlaceholderType `json:"type"`
	Question string          `json:"question"`
	// Context is the full source line containing the marker, kept verbatim
	// for generic placeholders; the reconstruction step substitutes against
	// it byte-for-byte.
	Context string `json:"context,omitempty"`
}
