package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Resolver maps a bracket-delimited tag to its replacement text. A false
// return means the tag is unknown; unknown tags render as empty text, never
// as an error and never as the literal tag.
type Resolver func(tag string) (string, bool)

// tagPattern matches one bracket-delimited template region. Brackets never
// nest, and a region never crosses XML markup: a tag fragmented across text
// runs is left untouched rather than risking a substitution that swallows
// the markup between its halves.
var tagPattern = regexp.MustCompile(`\[([^\[\]<>]*)\]`)

// renderedParts are the container entries that carry visible text.
func isRenderedPart(name string) bool {
	if name == mainDocumentPart {
		return true
	}
	return strings.HasPrefix(name, "word/header") || strings.HasPrefix(name, "word/footer")
}

// RenderTemplate rewrites every bracket-delimited region in the container's
// text parts through resolve and returns the rebuilt container. Entries
// without template regions are copied through untouched.
func RenderTemplate(data []byte, resolve Resolver) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotWordDocument, err)
	}

	var out bytes.Buffer
	zw := zip.NewWriter(&out)

	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", f.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f.Name, err)
		}

		if isRenderedPart(f.Name) {
			content = renderPart(content, resolve)
		}

		w, err := zw.CreateHeader(&zip.FileHeader{Name: f.Name, Method: f.Method})
		if err != nil {
			return nil, fmt.Errorf("write %s: %w", f.Name, err)
		}
		if _, err := w.Write(content); err != nil {
			return nil, fmt.Errorf("write %s: %w", f.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalize container: %w", err)
	}
	return out.Bytes(), nil
}

// renderPart substitutes every bracket region in one XML part. Replacement
// text is XML-escaped; a tag the resolver does not know renders empty.
func renderPart(content []byte, resolve Resolver) []byte {
	return tagPattern.ReplaceAllFunc(content, func(match []byte) []byte {
		tag := string(match[1 : len(match)-1])
		value, ok := resolve(tag)
		if !ok {
			return nil
		}
		return escapeXML(value)
	})
}

func escapeXML(s string) []byte {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.Bytes()
}
