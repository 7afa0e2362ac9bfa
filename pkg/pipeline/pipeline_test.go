package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/omicalign/omicalign/pkg/cache"
	"github.com/omicalign/omicalign/pkg/dataset"
	"github.com/omicalign/omicalign/pkg/entity"
	"github.com/omicalign/omicalign/pkg/resultio"
)

func sampleDatasets() []dataset.Dataset {
	return []dataset.Dataset{
		{
			Name: "rna",
			Features: []dataset.Record{
				{ID: "sad", Entity: entity.Gene, Namespace: "gene"},
			},
			CrossRefs: []dataset.CrossRef{
				{Src: "sad", Namespace: "geneid", Target: "947440"},
				{Src: "sad", Namespace: "produced_by", Target: "P0A9P0"},
			},
		},
	}
}

func TestExecuteProducesJSONArtifact(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	run, err := r.Execute(context.Background(), Options{
		Datasets: sampleDatasets(),
		Formats:  []string{FormatJSON, FormatDOT},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if run.RunID == "" {
		t.Error("run id not set")
	}
	if run.Digest == "" {
		t.Error("digest not set")
	}
	if run.Stats.Groups == 0 || run.Stats.Members == 0 {
		t.Errorf("empty stats: %+v", run.Stats)
	}

	back, err := resultio.Unmarshal(run.Artifacts[FormatJSON])
	if err != nil {
		t.Fatalf("json artifact does not round-trip: %v", err)
	}
	if back.GroupCount() != run.Result.GroupCount() {
		t.Error("json artifact disagrees with result")
	}

	if dot := string(run.Artifacts[FormatDOT]); !strings.Contains(dot, "digraph") {
		t.Errorf("dot artifact malformed:\n%s", dot)
	}
}

func TestExecuteRequiresInput(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	if _, err := r.Execute(context.Background(), Options{}); err == nil {
		t.Fatal("expected error for missing input")
	}
}

func TestExecuteRejectsUnknownFormat(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	_, err := r.Execute(context.Background(), Options{
		Datasets: sampleDatasets(),
		Formats:  []string{"gif"},
	})
	if err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestExecuteFromManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.toml")
	manifest := `
[[datasets]]
name = "rna"

[[datasets.features]]
id = "sad"
entity = "gene"
namespace = "gene"

[[datasets.crossrefs]]
src = "sad"
namespace = "geneid"
target = "947440"
`
	if err := os.WriteFile(path, []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewRunner(nil, nil, nil)
	run, err := r.Execute(context.Background(), Options{Manifest: path})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if _, ok := run.Result.GroupOf("geneid", "947440"); !ok {
		t.Error("manifest dataset not aligned")
	}
}

func TestAlignUsesCache(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, nil)
	ctx := context.Background()
	datasets := sampleDatasets()

	_, hit, err := r.AlignWithCacheInfo(ctx, datasets, Options{Datasets: datasets})
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("first run should miss the cache")
	}

	res, hit, err := r.AlignWithCacheInfo(ctx, datasets, Options{Datasets: datasets})
	if err != nil {
		t.Fatal(err)
	}
	if !hit {
		t.Error("second run should hit the cache")
	}
	if _, ok := res.GroupOf("geneid", "947440"); !ok {
		t.Error("cached result lost membership")
	}
}

func TestAlignRefreshBypassesCache(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, nil)
	ctx := context.Background()
	datasets := sampleDatasets()

	if _, _, err := r.AlignWithCacheInfo(ctx, datasets, Options{Datasets: datasets}); err != nil {
		t.Fatal(err)
	}
	_, hit, err := r.AlignWithCacheInfo(ctx, datasets, Options{Datasets: datasets, Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("refresh should bypass the cache")
	}
}
