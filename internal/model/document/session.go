package document

import "time"

// Session ties one uploaded document to its extracted placeholders and the
// answers collected so far. Sessions are transient, in-memory state.
type Session struct {
	ID           string        `json:"id"`
	Placeholders []Placeholder `json:"placeholders"`
	// Answers maps placeholder id to the supplied answer. Keyed by id, not
	// marker text, because the same marker text may occur more than once.
	Answers map[string]string `json:"answers"`
	// OriginalFile is the uploaded container exactly as received; document
	// generation always starts from this snapshot.
	OriginalFile []byte    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	ExpiresAt    time.Time `json:"expiresAt"`
}
