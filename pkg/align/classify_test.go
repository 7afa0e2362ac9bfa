package align

import (
	"testing"

	"github.com/omicalign/omicalign/pkg/entity"
)

func TestClassify(t *testing.T) {
	p := DefaultPolicy()

	tests := []struct {
		namespace string
		want      Category
	}{
		{"geneid", CategoryAlias},
		{"GeneID", CategoryAlias},
		{"  locus_tag ", CategoryAlias},
		{"produced_by", CategoryRelation},
		{"genbank", CategoryRelation},
		{"no_such_namespace", CategoryUnclassified},
		{"", CategoryUnclassified},
	}

	for _, tt := range tests {
		if got := p.Classify(tt.namespace); got != tt.want {
			t.Errorf("Classify(%q) = %q, want %q", tt.namespace, got, tt.want)
		}
	}
}

func TestClassifyCustomPolicy(t *testing.T) {
	// Classification tables are injected, not global: a custom policy can
	// reinterpret a namespace without affecting the default.
	p := Policy{Categories: map[string]Category{"geneid": CategoryRelation}}

	if got := p.Classify("geneid"); got != CategoryRelation {
		t.Errorf("custom policy Classify(geneid) = %q, want relation", got)
	}
	if got := DefaultPolicy().Classify("geneid"); got != CategoryAlias {
		t.Errorf("default policy Classify(geneid) = %q, want alias", got)
	}
}

func TestPredicate(t *testing.T) {
	p := DefaultPolicy()

	tests := []struct {
		namespace string
		want      string
	}{
		{"uniprotkb/swiss-prot", "product"},
		{"protein_id", "product"},
		{"parent", "part_of"},
		{"genbank", "contains"},
		// Unmapped relation namespaces fall back to the namespace itself.
		{"custom_rel", "custom_rel"},
		{"Custom_Rel", "custom_rel"},
	}

	for _, tt := range tests {
		if got := p.Predicate(tt.namespace); got != tt.want {
			t.Errorf("Predicate(%q) = %q, want %q", tt.namespace, got, tt.want)
		}
	}
}

func TestDeriveType(t *testing.T) {
	p := DefaultPolicy()

	tests := []struct {
		name       string
		namespace  string
		sourceType string
		want       string
	}{
		{"ConstantProtein", "protein_id", entity.Gene, entity.Protein},
		{"ConstantMetabolite", "kegg.compound", entity.Unknown, entity.Metabolite},
		{"IdentityInherits", "modification", entity.Metabolite, entity.Metabolite},
		{"ConditionalGeneToProtein", "produced_by", entity.Gene, entity.Protein},
		{"ConditionalNonGene", "produced_by", entity.Metabolite, entity.Unknown},
		{"UnmappedIsUnknown", "nonsense", entity.Gene, entity.Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.DeriveType(tt.namespace, tt.sourceType); got != tt.want {
				t.Errorf("DeriveType(%q, %q) = %q, want %q", tt.namespace, tt.sourceType, got, tt.want)
			}
		})
	}
}
