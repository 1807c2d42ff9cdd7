package docfill

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/docufill/backend/internal/docx"
	"github.com/docufill/backend/internal/model/document"
)

// Generate produces the completed container for a fully answered session
// and deletes the session. Any failure leaves the session untouched so the
// client can correct answers and retry.
//
// Substitution runs in two passes. Generic placeholders are first applied
// by locating each one's context line verbatim inside the container's
// decompressed text parts and replacing the marker within it; this is the
// only way to tell apart identical blank runs that mean different things
// in different sentences. If any context cannot be found verbatim (the
// container markup may split or escape it), that pass is abandoned
// wholesale and every placeholder is instead resolved through
// bracket-template rendering of the original container. When the context
// pass holds, template rendering still runs over its output to fill the
// named placeholders.
func (s *Service) Generate(_ context.Context, sessionID string) ([]byte, error) {
	session, ok := s.store.Get(sessionID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}

	// Every placeholder must be answered before any byte work happens.
	for _, ph := range session.Placeholders {
		if _, answered := session.Answers[ph.ID]; !answered {
			return nil, &MissingAnswerError{PlaceholderID: ph.ID}
		}
	}

	rendered, err := s.reconstruct(session)
	if err != nil {
		return nil, err
	}

	s.store.Delete(sessionID)
	log.Printf("[docfill] session %s generated and cleaned up", sessionID)
	return rendered, nil
}

func (s *Service) reconstruct(session *document.Session) ([]byte, error) {
	runs := contextSubstitutions(session.Placeholders, session.Answers)

	if len(runs) > 0 {
		working, found, err := docx.SubstituteRuns(session.OriginalFile, runs)
		if err != nil {
			return nil, fmt.Errorf("substitute contexts: %w", err)
		}
		if !found {
			log.Printf("[docfill] session %s: context substitution abandoned, falling back to template rendering", session.ID)
			return render(session.OriginalFile, resolvedAnswers(session, true))
		}
		return render(working, resolvedAnswers(session, false))
	}

	return render(session.OriginalFile, resolvedAnswers(session, false))
}

func render(container []byte, data map[string]string) ([]byte, error) {
	rendered, err := docx.RenderTemplate(container, answerResolver(data))
	if err != nil {
		return nil, fmt.Errorf("render final document: %w", err)
	}
	return rendered, nil
}

// contextSubstitutions builds the ordered byte-run replacements for the
// context pass: each generic placeholder with a non-empty answer and a
// context that actually contains its marker contributes one run, the
// context line with the marker swapped for the answer.
func contextSubstitutions(placeholders []document.Placeholder, answers map[string]string) []docx.Substitution {
	var runs []docx.Substitution

	for _, ph := range placeholders {
		if ph.Type != document.Generic || ph.Context == "" {
			continue
		}
		answer := answers[ph.ID]
		if answer == "" {
			continue
		}

		answered := strings.Replace(ph.Context, ph.Key, answer, 1)
		if answered == ph.Context {
			// Marker not present in its own context; nothing to substitute.
			continue
		}

		runs = append(runs, docx.Substitution{Find: []byte(ph.Context), Replace: []byte(answered)})
	}

	return runs
}

// resolvedAnswers flattens the session's answers into template keys: named
// labels lose their brackets, generic keys additionally lose the dollar
// prefix. Generic entries are only included for the fallback pass.
func resolvedAnswers(session *document.Session, includeGeneric bool) map[string]string {
	data := make(map[string]string, len(session.Placeholders))

	for _, ph := range session.Placeholders {
		answer, ok := session.Answers[ph.ID]
		if !ok || answer == "" {
			continue
		}

		switch ph.Type {
		case document.Named:
			if key := stripBrackets(ph.Key); key != "" {
				data[key] = answer
			}
		case document.Generic:
			if !includeGeneric {
				continue
			}
			inner, found := cutMarker(ph.Key)
			if found && inner != "" {
				data[inner] = answer
			}
		}
	}

	return data
}

// answerResolver resolves a template tag against the flattened answers:
// exact match first, then the bracket-wrapped form. Anything else is
// unknown and renders as empty text.
func answerResolver(data map[string]string) docx.Resolver {
	return func(tag string) (string, bool) {
		if v, ok := data[tag]; ok {
			return v, true
		}
		if v, ok := data["["+tag+"]"]; ok {
			return v, true
		}
		return "", false
	}
}

func stripBrackets(key string) string {
	return strings.NewReplacer("[", "", "]", "").Replace(key)
}

// cutMarker extracts the inner text of a "$[...]" key.
func cutMarker(key string) (string, bool) {
	if !strings.HasPrefix(key, "$[") || !strings.HasSuffix(key, "]") {
		return "", false
	}
	return key[2 : len(key)-1], true
}
