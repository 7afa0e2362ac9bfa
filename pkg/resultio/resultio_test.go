package resultio

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/omicalign/omicalign/pkg/align"
	"github.com/omicalign/omicalign/pkg/dataset"
	"github.com/omicalign/omicalign/pkg/entity"
)

func sampleResult() *align.Result {
	return align.Align(
		dataset.Dataset{
			Name: "rna",
			Features: []dataset.Record{
				{ID: "sad", Entity: entity.Gene, Namespace: "gene"},
			},
			CrossRefs: []dataset.CrossRef{
				{Src: "sad", Namespace: "geneid", Target: "947440"},
				{Src: "sad", Namespace: "locus_tag", Target: "b1525"},
				{Src: "sad", Namespace: "produced_by", Target: "P0A9P0"},
				{Src: "sad", Namespace: "produced_by", Target: "P0A9P0"},
				{Src: "sad", Namespace: "mystery", Target: "???"},
			},
		},
		dataset.Dataset{
			Name: "protein",
			Features: []dataset.Record{
				{ID: "947440", Entity: entity.Gene, Namespace: "geneid"},
			},
		},
	)
}

func TestRoundTrip(t *testing.T) {
	res := sampleResult()

	data, err := Marshal(res)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	back, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if !reflect.DeepEqual(res.GroupIDs(), back.GroupIDs()) {
		t.Errorf("group ids: %v != %v", res.GroupIDs(), back.GroupIDs())
	}
	for _, gid := range res.GroupIDs() {
		if !reflect.DeepEqual(res.Members(gid), back.Members(gid)) {
			t.Errorf("group %d members differ:\n%v\n%v", gid, res.Members(gid), back.Members(gid))
		}
	}
	if !reflect.DeepEqual(res.Relations(), back.Relations()) {
		t.Errorf("relations differ:\n%v\n%v", res.Relations(), back.Relations())
	}
	if !reflect.DeepEqual(res.Unclassified(), back.Unclassified()) {
		t.Errorf("unclassified edges differ:\n%v\n%v", res.Unclassified(), back.Unclassified())
	}
}

func TestRoundTripFile(t *testing.T) {
	res := sampleResult()
	path := filepath.Join(t.TempDir(), "alignment.json")

	if err := WriteFile(res, path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	back, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	if back.GroupCount() != res.GroupCount() {
		t.Errorf("GroupCount = %d, want %d", back.GroupCount(), res.GroupCount())
	}
	if !reflect.DeepEqual(res.Relations(), back.Relations()) {
		t.Error("relations changed across file round trip")
	}

	doc, err := ReadDocumentFile(path)
	if err != nil {
		t.Fatalf("ReadDocumentFile: %v", err)
	}
	if doc.Version != SchemaVersion {
		t.Errorf("version = %q, want %q", doc.Version, SchemaVersion)
	}
	if doc.Stats.Groups != res.GroupCount() {
		t.Errorf("stats.groups = %d, want %d", doc.Stats.Groups, res.GroupCount())
	}
	if doc.Created.IsZero() {
		t.Error("created timestamp not set")
	}
}

func TestMarshalDeterministic(t *testing.T) {
	res := sampleResult()

	a := FromResult(res)
	b := FromResult(res)
	a.Created = b.Created // timestamps aside, documents must be identical

	if !reflect.DeepEqual(a, b) {
		t.Error("FromResult is not deterministic")
	}
}

func TestToResultRejectsCorruptDocument(t *testing.T) {
	doc := Document{
		Groups: []Group{
			{ID: 0, Members: []Member{{Scope: "geneid", Identifier: "1"}}},
			{ID: 1, Members: []Member{{Scope: "geneid", Identifier: "1"}}},
		},
	}
	if _, err := doc.ToResult(); err == nil {
		t.Fatal("expected error for identifier mapped to two groups")
	}
}
