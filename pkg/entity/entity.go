// Package entity defines the shared vocabulary of biological entity types.
//
// Entity types are plain strings so that datasets can carry ad hoc hints,
// but the well-known values below cover everything the default alignment
// policy reasons about. Unknown is the sentinel for "no usable type";
// it is never treated as a real type during merging or type resolution.
package entity

// Well-known entity types.
const (
	DNA        = "dna"
	Gene       = "gene"
	Transcript = "transcript"
	Protein    = "protein"
	Metabolite = "metabolite"
	Sample     = "sample"
	Other      = "other"

	// Unknown marks an unresolved or conflicting type.
	Unknown = "unknown"
)

// Known reports whether t is a usable type hint.
// Empty strings and the Unknown sentinel are not usable.
func Known(t string) bool {
	return t != "" && t != Unknown
}
