package align

import "github.com/omicalign/omicalign/pkg/entity"

// Classify returns the category of a cross-reference namespace.
// Namespaces absent from the policy table are CategoryUnclassified;
// they are surfaced on the result for review, never silently dropped.
func (p Policy) Classify(namespace string) Category {
	if c, ok := p.Categories[normalizeNS(namespace)]; ok {
		return c
	}
	return CategoryUnclassified
}

// Predicate returns the canonical predicate label for a relation namespace.
// Unmapped namespaces use the normalized namespace string itself.
func (p Policy) Predicate(namespace string) string {
	ns := normalizeNS(namespace)
	if pred, ok := p.Predicates[ns]; ok {
		return pred
	}
	return ns
}

// DeriveType infers a relation target's entity type from the relation
// namespace and the source identifier's type. Namespaces without a rule
// infer entity.Unknown.
func (p Policy) DeriveType(namespace, sourceType string) string {
	rule, ok := p.TypeRules[normalizeNS(namespace)]
	if !ok {
		return entity.Unknown
	}
	return rule(sourceType)
}
