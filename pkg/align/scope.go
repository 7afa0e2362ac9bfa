package align

import "strings"

// dbXrefPrefix marks GenBank-style db_xref namespaces whose suffix names
// the registry that qualifies the target identifier.
const dbXrefPrefix = "db_xref:"

// FeatureScope resolves the scope qualifying a feature or column identifier.
//
// An empty namespace falls back to the owning dataset's scope. Registry
// namespaces, and anything containing a dot (Ensembl.Gene, KEGG.Compound),
// are global and scope to themselves. Local-label namespaces (symbol,
// synonym, name) scope to the dataset so identical spellings across
// datasets stay apart. Any other namespace is kept verbatim as an ad hoc
// global scope.
func (p Policy) FeatureScope(datasetScope, namespace string) string {
	ns := normalizeNS(namespace)
	if ns == "" {
		return datasetScope
	}
	if p.Registries[ns] || strings.Contains(ns, ".") {
		return ns
	}
	if p.LocalLabels[ns] {
		return datasetScope
	}
	return ns
}

// AliasTargetScope resolves the scope qualifying the target of an alias
// cross-reference.
//
// db_xref namespaces scope to the named registry (or fallback if the suffix
// is empty); registry namespaces scope to themselves; local labels stay in
// the source identifier's own scope, keeping same-dataset synonyms local.
// Everything else uses fallback, typically the target's own feature scope
// within the dataset.
func (p Policy) AliasTargetScope(namespace, srcScope, fallback string) string {
	ns := normalizeNS(namespace)
	if reg, ok := strings.CutPrefix(ns, dbXrefPrefix); ok {
		if reg == "" {
			return fallback
		}
		return reg
	}
	if p.Registries[ns] {
		return ns
	}
	if p.LocalLabels[ns] {
		return srcScope
	}
	return fallback
}

// RelationTargetScope resolves the scope qualifying the target of a
// relation cross-reference.
//
// Relation namespaces explicitly mapped to a registry use that registry;
// otherwise the registry and db_xref rules apply as for alias targets.
// There is no local-label exception here: relation targets default to the
// generic fallback, not the source's scope.
func (p Policy) RelationTargetScope(namespace, fallback string) string {
	ns := normalizeNS(namespace)
	if reg, ok := p.RelationRegistries[ns]; ok {
		return reg
	}
	if p.Registries[ns] {
		return ns
	}
	if reg, ok := strings.CutPrefix(ns, dbXrefPrefix); ok {
		if reg == "" {
			return fallback
		}
		return reg
	}
	return fallback
}
