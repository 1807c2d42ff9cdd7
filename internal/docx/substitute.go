package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
)

// Substitution is one ordered byte-run replacement inside the container's
// text parts.
type Substitution struct {
	Find    []byte
	Replace []byte
}

// SubstituteRuns applies each substitution, in order, to the decompressed
// text parts of the container and returns the rebuilt container. Each run
// replaces its first occurrence in the first text part that contains it.
// The second return is false when some run was not found verbatim in any
// text part: the whole pass is off the table then, and no partially
// substituted container is returned.
func SubstituteRuns(data []byte, runs []Substitution) ([]byte, bool, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrNotWordDocument, err)
	}

	type entry struct {
		name    string
		method  uint16
		content []byte
	}

	entries := make([]entry, 0, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, false, fmt.Errorf("open %s: %w", f.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, false, fmt.Errorf("read %s: %w", f.Name, err)
		}
		entries = append(entries, entry{name: f.Name, method: f.Method, content: content})
	}

	for _, run := range runs {
		found := false
		for i := range entries {
			if !isRenderedPart(entries[i].name) {
				continue
			}
			if bytes.Contains(entries[i].content, run.Find) {
				entries[i].content = bytes.Replace(entries[i].content, run.Find, run.Replace, 1)
				found = true
				break
			}
		}
		if !found {
			return nil, false, nil
		}
	}

	var out bytes.Buffer
	zw := zip.NewWriter(&out)
	for _, e := range entries {
		w, err := zw.CreateHeader(&zip.FileHeader{Name: e.name, Method: e.method})
		if err != nil {
			return nil, false, fmt.Errorf("write %s: %w", e.name, err)
		}
		if _, err := w.Write(e.content); err != nil {
			return nil, false, fmt.Errorf("write %s: %w", e.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, false, fmt.Errorf("finalize container: %w", err)
	}
	return out.Bytes(), true, nil
}
