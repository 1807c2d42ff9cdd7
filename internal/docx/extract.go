// Package docx reads and rewrites Word containers (zip archives with OOXML
// markup) without any format library: text lives in word/document.xml and
// the package only needs to linearize it or substitute inside it.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNotWordDocument indicates the uploaded bytes are not a readable Word
// container (not a zip, or missing the main document part).
var ErrNotWordDocument = errors.New("not a word document container")

const mainDocumentPart = "word/document.xml"

// ExtractText linearizes all paragraph text from the container, one line
// per paragraph. Formatting is discarded.
func ExtractText(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotWordDocument, err)
	}

	for _, f := range zr.File {
		if f.Name != mainDocumentPart {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("open %s: %w", f.Name, err)
		}
		defer rc.Close()
		return linearize(rc)
	}

	return "", fmt.Errorf("%w: missing %s", ErrNotWordDocument, mainDocumentPart)
}

// linearize walks the document XML and emits the character data of every
// text run, with a newline per paragraph and a tab per tab element.
func linearize(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)

	var out strings.Builder
	inText := false

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse document xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				out.WriteByte('\t')
			case "br":
				out.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				out.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				out.Write(t)
			}
		}
	}

	return out.String(), nil
}
