// Package align resolves identity across heterogeneous scientific datasets.
//
// Each dataset describes entities (genes, proteins, metabolites, samples)
// under private or registry identifiers and carries cross-reference records
// linking them. The aligner decides which identifiers denote the same
// real-world entity, clusters them into alias groups, infers one entity
// type per group, and aggregates directed, typed, weighted relations
// between groups.
//
// # Pipeline
//
// Alignment is a deterministic batch computation over fully loaded input:
//
//  1. Scope resolution: every raw namespace is normalized into a canonical
//     scope (a global registry or a dataset-local scope) so identical
//     spellings from different datasets never collide by accident.
//  2. Classification: each cross-reference is labeled alias, relation, or
//     unclassified via the injected [Policy] tables.
//  3. Clustering: alias edges drive a union-find merge, guarded so that an
//     alias bridging two identifiers with conflicting known types is
//     recorded but refused.
//  4. Type resolution: after all unions settle, each group resolves to the
//     single distinct known type of its members, or unknown.
//  5. Materialization: union-find roots receive stable dense group ids and
//     relation edges are aggregated by (source group, predicate, target
//     group) with multiplicity counts.
//
// Matching is driven entirely by the deterministic namespace policy tables;
// there is no statistical similarity scoring.
//
// # Usage
//
//	res := align.Align(rnaSeq, proteomics, metabolomics)
//	gid, ok := res.GroupOf("geneid", "947440")
//	for _, m := range res.Members(gid) {
//	    fmt.Println(m.Scope, m.Identifier, m.Type)
//	}
//
// The returned [Result] is immutable; persist it with package resultio.
package align
