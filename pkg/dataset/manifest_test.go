package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/omicalign/omicalign/pkg/errors"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadManifestInline(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "manifest.toml", `
[[datasets]]
name = "RNA"

[[datasets.features]]
id = "sad"
entity = "gene"
namespace = "gene"

[[datasets.columns]]
id = "s1"
entity = "sample"

[[datasets.crossrefs]]
src = "sad"
namespace = "geneid"
target = "947440"
`)

	datasets, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if len(datasets) != 1 {
		t.Fatalf("got %d datasets, want 1", len(datasets))
	}

	ds := datasets[0]
	if ds.Scope() != "rna" {
		t.Errorf("scope = %q, want rna", ds.Scope())
	}
	if len(ds.Features) != 1 || ds.Features[0].ID != "sad" {
		t.Errorf("features = %+v", ds.Features)
	}
	if len(ds.Columns) != 1 || ds.Columns[0].Entity != "sample" {
		t.Errorf("columns = %+v", ds.Columns)
	}
	if len(ds.CrossRefs) != 1 || ds.CrossRefs[0].Target != "947440" {
		t.Errorf("crossrefs = %+v", ds.CrossRefs)
	}
}

func TestLoadManifestCSVFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "features.csv", "id,entity,namespace\nsad,gene,gene\ngnd,gene,gene\n")
	writeFile(t, dir, "xrefs.csv", "src,namespace,target\nsad,geneid,947440\n")
	path := writeFile(t, dir, "manifest.toml", `
[[datasets]]
name = "rna"
features_file = "features.csv"
crossrefs_file = "xrefs.csv"
`)

	datasets, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	ds := datasets[0]
	if len(ds.Features) != 2 {
		t.Errorf("got %d features, want 2", len(ds.Features))
	}
	if len(ds.CrossRefs) != 1 || ds.CrossRefs[0].Namespace != "geneid" {
		t.Errorf("crossrefs = %+v", ds.CrossRefs)
	}
}

func TestLoadManifestCSVWithoutOptionalColumns(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "features.csv", "id\nsad\n")
	path := writeFile(t, dir, "manifest.toml", `
[[datasets]]
name = "rna"
features_file = "features.csv"
`)

	datasets, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	f := datasets[0].Features[0]
	if f.ID != "sad" || f.Entity != "" || f.Namespace != "" {
		t.Errorf("record = %+v", f)
	}
}

func TestLoadManifestErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name     string
		manifest string
		wantCode errors.Code
	}{
		{
			name:     "no datasets",
			manifest: "# empty\n",
			wantCode: errors.ErrCodeInvalidManifest,
		},
		{
			name: "missing name",
			manifest: `
[[datasets]]
[[datasets.features]]
id = "x"
`,
			wantCode: errors.ErrCodeInvalidDataset,
		},
		{
			name: "duplicate name after normalization",
			manifest: `
[[datasets]]
name = "rna"

[[datasets]]
name = " RNA "
`,
			wantCode: errors.ErrCodeInvalidManifest,
		},
		{
			name: "missing csv file",
			manifest: `
[[datasets]]
name = "rna"
features_file = "nope.csv"
`,
			wantCode: errors.ErrCodeInvalidManifest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, "manifest-"+tt.name+".toml", tt.manifest)
			_, err := LoadManifest(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("code = %q, want %q", errors.GetCode(err), tt.wantCode)
			}
		})
	}
}

func TestLoadManifestCSVMissingRequiredColumn(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "xrefs.csv", "src,target\nsad,947440\n")
	path := writeFile(t, dir, "manifest.toml", `
[[datasets]]
name = "rna"
crossrefs_file = "xrefs.csv"
`)

	_, err := LoadManifest(path)
	if !errors.Is(err, errors.ErrCodeInvalidManifest) {
		t.Errorf("expected INVALID_MANIFEST, got %v", err)
	}
}
