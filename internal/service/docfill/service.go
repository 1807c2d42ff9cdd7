// Package docfill drives the document fill-in workflow: upload a container,
// answer the extracted questions one by one, generate the completed file.
package docfill

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/docufill/backend/internal/docx"
	"github.com/docufill/backend/internal/model/document"
	"github.com/docufill/backend/internal/service/scanner"
)

var (
	ErrSessionNotFound     = errors.New("session not found")
	ErrPlaceholderNotFound = errors.New("placeholder not found")
)

// MissingAnswerError reports the first placeholder that blocks generation.
type MissingAnswerError struct {
	PlaceholderID string
}

func (e *MissingAnswerError) Error() string {
	return fmt.Sprintf("missing answer for placeholder id: %s", e.PlaceholderID)
}

// Service owns the upload-to-generation flow over the shared session store.
type Service struct {
	store   *document.Store
	scanner *scanner.Scanner
}

// NewService wires the workflow onto the given store and scanner.
func NewService(store *document.Store, sc *scanner.Scanner) *Service {
	return &Service{store: store, scanner: sc}
}

// Upload extracts the container's text, scans it for markers and creates a
// session holding the placeholder list plus the original bytes. The session
// is only created when the whole scan succeeds.
func (s *Service) Upload(ctx context.Context, file []byte) (*document.Session, error) {
	text, err := docx.ExtractText(file)
	if err != nil {
		return nil, err
	}

	placeholders, err := s.scanner.Scan(ctx, text)
	if err != nil {
		return nil, err
	}

	session := s.store.Create(placeholders, file)
	log.Printf("[docfill] session %s created with %d placeholders", session.ID, len(placeholders))
	return session, nil
}

// SubmitAnswer records one answer against one placeholder. Resubmitting for
// the same placeholder overwrites the earlier answer; no other entry is
// touched. The client asks and answers one question at a time, so writes
// into a session's answer map are not serialized against each other.
func (s *Service) SubmitAnswer(_ context.Context, sessionID, placeholderID, answer string) error {
	session, ok := s.store.Get(sessionID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}

	if !hasPlaceholder(session, placeholderID) {
		return fmt.Errorf("%w: %s", ErrPlaceholderNotFound, placeholderID)
	}

	session.Answers[placeholderID] = answer
	log.Printf("[docfill] session %s answered placeholder %s", sessionID, placeholderID)
	return nil
}

func hasPlaceholder(session *document.Session, placeholderID string) bool {
	for _, ph := range session.Placeholders {
		if ph.ID == placeholderID {
			return true
		}
	}
	return false
}
