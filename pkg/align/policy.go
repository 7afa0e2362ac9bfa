package align

import (
	"strings"

	"github.com/omicalign/omicalign/pkg/entity"
)

// Category classifies a cross-reference namespace.
type Category string

// Cross-reference categories.
const (
	CategoryAlias        Category = "alias"
	CategoryRelation     Category = "relation"
	CategoryUnclassified Category = "unclassified"
)

// TypeRule infers a relation target's entity type from the source's type.
type TypeRule func(sourceType string) string

// Constant returns a rule that always infers t, regardless of the source type.
func Constant(t string) TypeRule {
	return func(string) string { return t }
}

// Identity is the rule under which the target inherits the source's type.
var Identity TypeRule = func(sourceType string) string { return sourceType }

// Policy is the immutable classification configuration driving alignment.
// It bundles every namespace lookup table the engine consults: category,
// predicate, type inference, registry membership, local-label membership,
// and relation-target registry mapping. Construct one with DefaultPolicy
// or build a custom set for testing; a Policy must not be mutated once an
// Aligner holds it.
//
// All lookups are case-insensitive and whitespace-trimmed, since namespace
// spelling varies by source format.
type Policy struct {
	// Categories maps a namespace to alias or relation.
	// Namespaces absent from this table are unclassified.
	Categories map[string]Category

	// Predicates maps a relation namespace to its canonical predicate label.
	// Absent namespaces use the namespace string itself.
	Predicates map[string]string

	// TypeRules maps a relation namespace to a target-type inference rule.
	// Absent namespaces infer entity.Unknown.
	TypeRules map[string]TypeRule

	// Registries is the set of namespaces whose identifiers are globally
	// unique across datasets. Identifiers under these need no dataset scoping.
	Registries map[string]bool

	// LocalLabels is the set of symbol/synonym/name-like namespaces whose
	// identifier strings are only unique within one dataset.
	LocalLabels map[string]bool

	// RelationRegistries maps a relation namespace to the registry scope
	// that qualifies its target identifiers.
	RelationRegistries map[string]string
}

// DefaultPolicy returns the policy covering the namespaces observed in
// GenBank/GFF3 annotation, expression compendia, proteomics and
// metabolomics tables.
func DefaultPolicy() Policy {
	return Policy{
		Categories: map[string]Category{
			"asap":                 CategoryAlias,
			"ecocyc":               CategoryAlias,
			"genbank":              CategoryRelation,
			"geneid":               CategoryAlias,
			"id":                   CategoryAlias,
			"kegg.compound":        CategoryAlias,
			"name":                 CategoryAlias,
			"parent":               CategoryRelation,
			"refmet":               CategoryAlias,
			"uniprotkb/swiss-prot": CategoryRelation,
			"workbench":            CategoryAlias,
			"alias":                CategoryAlias,
			"contains":             CategoryRelation,
			"gene":                 CategoryAlias,
			"locus_tag":            CategoryAlias,
			"modification":         CategoryRelation,
			"produced_by":          CategoryRelation,
			"product_label":        CategoryRelation,
			"protein_id":           CategoryRelation,
			"geo":                  CategoryAlias,
			"genotype":             CategoryAlias,
			"run":                  CategoryAlias,
			"srx":                  CategoryAlias,
		},
		Predicates: map[string]string{
			"uniprotkb/swiss-prot": "product",
			"protein_id":           "product",
			"produced_by":          "produced_by",
			"product_label":        "product",
			"parent":               "part_of",
			"contains":             "contains",
			"genbank":              "contains",
			"modification":         "modification",
		},
		TypeRules: map[string]TypeRule{
			"protein_id":           Constant(entity.Protein),
			"uniprotkb/swiss-prot": Constant(entity.Protein),
			"kegg.compound":        Constant(entity.Metabolite),
			"modification":         Identity,
			"parent":               Constant(entity.DNA),
			"contains":             Identity,
			"product_label":        Constant(entity.Protein),
			"product":              Constant(entity.Protein),
			"produced_by": func(sourceType string) string {
				if sourceType == entity.Gene {
					return entity.Protein
				}
				return entity.Unknown
			},
		},
		Registries: map[string]bool{
			"geneid":            true,
			"uniprot":           true,
			"uniprotkb":         true,
			"ensembl":           true,
			"refseq":            true,
			"ecocyc":            true,
			"asap":              true,
			"chebi":             true,
			"kegg":              true,
			"hmdb":              true,
			"pubchem":           true,
			"genbank_reference": true,
			"refseq.locus_tag":  true,
			"kegg.compound":     true,
		},
		LocalLabels: map[string]bool{
			"gene":         true,
			"gene_name":    true,
			"gene_symbol":  true,
			"symbol":       true,
			"synonym":      true,
			"gene_synonym": true,
			"locus_tag":    true,
			"name":         true,
			"id":           true,
			"workbench":    true,
		},
		RelationRegistries: map[string]string{
			"uniprotkb/swiss-prot": "uniprot",
			"protein_id":           "protein",
			"genbank":              "dna",
			"parent":               "dna",
			"contains":             "dna",
			"modification":         "metabolite",
			"produced_by":          "protein",
			"product_label":        "protein",
		},
	}
}

// normalizeNS lowercases and trims a raw namespace for table lookups.
func normalizeNS(ns string) string {
	return strings.ToLower(strings.TrimSpace(ns))
}
