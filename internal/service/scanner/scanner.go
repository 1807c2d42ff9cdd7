// Package scanner finds fill-in markers in extracted document text and
// turns them into answerable questions.
//
// Two marker syntaxes are recognized, both line-local:
//
//	[Company Name]   named: the label itself says what to ask for
//	$[_________]     generic: an unlabeled blank whose meaning comes from
//	                 the surrounding sentence
//
// Classification is lexical: any alphabetic character inside the brackets
// makes the marker named. A bracketed run of digits therefore classifies as
// generic; known limitation, kept as is.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/docufill/backend/internal/model/document"
)

var (
	// ErrNoPlaceholders means the document contains no recognizable markers.
	ErrNoPlaceholders = errors.New("no placeholders found in the document")
	// ErrPhrasingUnavailable means the document needs generated questions
	// but no phrasing backend is configured.
	ErrPhrasingUnavailable = errors.New("question phrasing is not configured")
)

// Phraser produces a question from a sentence containing a blank marker.
type Phraser interface {
	PhraseQuestion(ctx context.Context, sentence string) (string, error)
}

// markerPattern matches both marker syntaxes; the dollar-prefixed
// alternative comes first so "$[" is consumed as one marker.
var markerPattern = regexp.MustCompile(`\$\[[^\[\]]*\]|\[[^\[\]]*\]`)

var markerPunct = strings.NewReplacer("[", "", "]", "", "$", "")

// Scanner extracts placeholders from document text. The phraser may be nil;
// scanning then fails only for documents that contain generic markers.
type Scanner struct {
	phraser Phraser
}

// New builds a Scanner backed by the given phraser.
func New(phraser Phraser) *Scanner {
	return &Scanner{phraser: phraser}
}

// Scan walks text line by line and returns the deduplicated, typed,
// question-augmented placeholder list: named markers first in scan order
// (first occurrence wins for duplicate labels), then every generic marker
// occurrence. Generic questions are phrased concurrently; one phrasing
// failure fails the whole scan.
func (s *Scanner) Scan(ctx context.Context, text string) ([]document.Placeholder, error) {
	var named, generic []document.Placeholder
	seenKeys := make(map[string]struct{})

	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		for _, match := range markerPattern.FindAllString(line, -1) {
			inner := strings.TrimSpace(markerPunct.Replace(match))

			if containsAlpha(inner) {
				if _, dup := seenKeys[match]; dup {
					continue
				}
				seenKeys[match] = struct{}{}
				named = append(named, document.Placeholder{
					ID:       newPlaceholderID(),
					Key:      match,
					Type:     document.Named,
					Question: fmt.Sprintf("What is the %q?", inner),
				})
				continue
			}

			// Each generic occurrence keeps its own context line; identical
			// blank runs in different sentences are distinct placeholders.
			generic = append(generic, document.Placeholder{
				ID:      newPlaceholderID(),
				Key:     match,
				Type:    document.Generic,
				Context: line,
			})
		}
	}

	if err := s.phraseAll(ctx, generic); err != nil {
		return nil, err
	}

	placeholders := append(named, generic...)
	if len(placeholders) == 0 {
		return nil, ErrNoPlaceholders
	}
	return placeholders, nil
}

// phraseAll resolves every generic placeholder's question concurrently,
// writing each result back to its own slot so completion order does not
// matter. All calls are awaited; the first failure cancels the rest and
// fails the scan.
func (s *Scanner) phraseAll(ctx context.Context, generic []document.Placeholder) error {
	if len(generic) == 0 {
		return nil
	}
	if s.phraser == nil {
		return ErrPhrasingUnavailable
	}

	g, gctx := errgroup.WithContext(ctx)
	for i := range generic {
		i := i // pin per-iteration value; required while the go directive is below 1.22
		g.Go(func() error {
			question, err := s.phraser.PhraseQuestion(gctx, generic[i].Context)
			if err != nil {
				return fmt.Errorf("phrase question for %s: %w", generic[i].Key, err)
			}
			generic[i].Question = question
			return nil
		})
	}
	return g.Wait()
}

func newPlaceholderID() string {
	return fmt.Sprintf("placeholder_%s", uuid.NewString())
}

// containsAlpha mirrors the classification rule: ASCII letters only.
func containsAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			return true
		}
	}
	return false
}
