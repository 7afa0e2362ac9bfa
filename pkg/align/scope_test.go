package align

import "testing"

func TestFeatureScope(t *testing.T) {
	p := DefaultPolicy()

	tests := []struct {
		name         string
		datasetScope string
		namespace    string
		want         string
	}{
		{"EmptyNamespace", "rna", "", "rna"},
		{"Registry", "rna", "geneid", "geneid"},
		{"RegistryCaseInsensitive", "rna", "GeneID", "geneid"},
		{"DottedNamespaceIsGlobal", "rna", "Ensembl.Gene", "ensembl.gene"},
		{"LocalLabel", "rna", "gene", "rna"},
		{"LocalLabelSymbol", "proteomics", "symbol", "proteomics"},
		{"AdHocGlobal", "rna", "customdb", "customdb"},
		{"WhitespaceTrimmed", "rna", "  geneid  ", "geneid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.FeatureScope(tt.datasetScope, tt.namespace); got != tt.want {
				t.Errorf("FeatureScope(%q, %q) = %q, want %q", tt.datasetScope, tt.namespace, got, tt.want)
			}
		})
	}
}

func TestAliasTargetScope(t *testing.T) {
	p := DefaultPolicy()

	tests := []struct {
		name      string
		namespace string
		srcScope  string
		fallback  string
		want      string
	}{
		{"Registry", "geneid", "rna", "rna", "geneid"},
		{"DbXref", "db_xref:ecocyc", "rna", "rna", "ecocyc"},
		{"DbXrefEmptySuffix", "db_xref:", "rna", "fb", "fb"},
		{"LocalLabelStaysWithSource", "locus_tag", "srcscope", "fb", "srcscope"},
		{"UnknownUsesFallback", "somedb", "srcscope", "fb", "fb"},
		{"CaseInsensitive", "GeneID", "rna", "fb", "geneid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.AliasTargetScope(tt.namespace, tt.srcScope, tt.fallback); got != tt.want {
				t.Errorf("AliasTargetScope(%q, %q, %q) = %q, want %q",
					tt.namespace, tt.srcScope, tt.fallback, got, tt.want)
			}
		})
	}
}

func TestRelationTargetScope(t *testing.T) {
	p := DefaultPolicy()

	tests := []struct {
		name      string
		namespace string
		fallback  string
		want      string
	}{
		{"MappedToRegistry", "produced_by", "fb", "protein"},
		{"UniprotMapping", "uniprotkb/swiss-prot", "fb", "uniprot"},
		{"Registry", "chebi", "fb", "chebi"},
		{"DbXref", "db_xref:asap", "fb", "asap"},
		// No local-label exception for relation targets.
		{"LocalLabelUsesFallback", "synonym", "fb", "fb"},
		{"UnknownUsesFallback", "whatever", "fb", "fb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.RelationTargetScope(tt.namespace, tt.fallback); got != tt.want {
				t.Errorf("RelationTargetScope(%q, %q) = %q, want %q", tt.namespace, tt.fallback, got, tt.want)
			}
		})
	}
}
