// Package dataset defines the input contract for the alignment engine.
//
// A Dataset is the parser-independent view of one source: a name, per-feature
// and per-column metadata records, and a list of cross-reference triples.
// Format-specific ingestion (sequence annotation files, expression matrices,
// proteomics tables) lives outside this module; anything that can produce
// these three pieces can be aligned.
package dataset

import "strings"

// Record is one feature or column metadata entry.
// Entity and Namespace are optional hints; empty values are permitted and
// normalized downstream rather than rejected.
type Record struct {
	ID        string // identifier within the owning dataset
	Entity    string // entity-type hint (see package entity), may be empty
	Namespace string // namespace the identifier belongs to, may be empty
	Role      string // column role (measurement, covariate, ...), features leave this empty
}

// CrossRef asserts that Src relates to Target under Namespace.
// Whether the assertion is an alias, a relation, or unclassified is decided
// by the alignment policy, not by the dataset.
type CrossRef struct {
	Src       string
	Namespace string
	Target    string
}

// Dataset is the minimal container consumed by the aligner.
type Dataset struct {
	Name      string
	Features  []Record
	Columns   []Record
	CrossRefs []CrossRef
}

// Scope returns the dataset-local scope: the name lowercased and trimmed.
// Identifiers under local-label namespaces are qualified with this scope so
// identical spellings from different datasets never collide.
func (d Dataset) Scope() string {
	return strings.ToLower(strings.TrimSpace(d.Name))
}

// Records returns feature and column metadata as a single slice,
// features first. The result is a fresh slice; mutating it does not
// affect the dataset.
func (d Dataset) Records() []Record {
	out := make([]Record, 0, len(d.Features)+len(d.Columns))
	out = append(out, d.Features...)
	out = append(out, d.Columns...)
	return out
}
