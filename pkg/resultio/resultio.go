// Package resultio serializes alignment results as JSON with round-trip
// fidelity.
//
// The on-disk representation is a single human-readable document holding
// group membership rows, aggregated relation rows, and the unclassified
// edges retained for review. Reconstruction needs only the rows; the
// metadata header is advisory. The same document types carry bson tags so
// they store unchanged into MongoDB (see package store).
package resultio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/omicalign/omicalign/pkg/align"
)

// Marshal converts a result to JSON bytes.
// Output ordering is deterministic; see [FromResult].
func Marshal(res *align.Result) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(res, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write encodes a result as indented JSON to w.
func Write(res *align.Result, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromResult(res)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteFile writes a result to a JSON file.
// The file is created with 0644 permissions.
func WriteFile(res *align.Result, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(res, f)
}

// Read decodes a JSON document from r and reconstructs the result.
func Read(r io.Reader) (*align.Result, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return doc.ToResult()
}

// ReadFile reads a JSON file and reconstructs the result.
func ReadFile(path string) (*align.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// ReadDocumentFile reads a JSON file as a raw document without
// reconstructing the result. Useful for inspecting metadata.
func ReadDocumentFile(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var doc Document
	if err := json.NewDecoder(f).Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("decode: %w", err)
	}
	return doc, nil
}

// Unmarshal deserializes JSON bytes and reconstructs the result.
func Unmarshal(data []byte) (*align.Result, error) {
	return Read(bytes.NewReader(data))
}
