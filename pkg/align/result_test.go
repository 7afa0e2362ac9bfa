package align

import (
	"errors"
	"testing"

	"github.com/omicalign/omicalign/pkg/entity"
)

func TestNewResultRejectsDuplicateMembership(t *testing.T) {
	groups := map[int][]Member{
		0: {{Identifier: "947440", Scope: "geneid", Type: entity.Gene}},
		1: {{Identifier: "947440", Scope: "geneid", Type: entity.Gene}},
	}

	_, err := NewResult(groups, nil, nil)
	if !errors.Is(err, ErrDuplicateMember) {
		t.Fatalf("err = %v, want ErrDuplicateMember", err)
	}
}

func TestNewResultRejectsNonPositiveCount(t *testing.T) {
	groups := map[int][]Member{
		0: {{Identifier: "a", Scope: "s", Type: entity.Unknown}},
	}
	rels := []Relation{{Src: 0, Predicate: "contains", Target: 0, Count: 0}}

	_, err := NewResult(groups, rels, nil)
	if !errors.Is(err, ErrInvalidCount) {
		t.Fatalf("err = %v, want ErrInvalidCount", err)
	}
}

func TestResultQueries(t *testing.T) {
	groups := map[int][]Member{
		0: {
			{Identifier: "sad", Scope: "rna", Type: entity.Gene},
			{Identifier: "947440", Scope: "geneid", Type: entity.Gene},
		},
		1: {{Identifier: "P1", Scope: "uniprot", Type: entity.Protein}},
	}
	rels := []Relation{
		{Src: 0, Predicate: "product", Target: 1, Count: 3},
	}

	res, err := NewResult(groups, rels, nil)
	if err != nil {
		t.Fatalf("NewResult: %v", err)
	}

	if gid, ok := res.GroupOf("rna", "sad"); !ok || gid != 0 {
		t.Errorf("GroupOf(rna, sad) = %d, %v; want 0, true", gid, ok)
	}
	if _, ok := res.GroupOf("rna", "missing"); ok {
		t.Error("GroupOf on absent identifier must report false")
	}

	// Members are sorted by scope, then identifier.
	members := res.Members(0)
	if len(members) != 2 || members[0].Scope != "geneid" || members[1].Scope != "rna" {
		t.Errorf("Members(0) = %v, want geneid before rna", members)
	}
	if got := res.Members(99); len(got) != 0 {
		t.Errorf("Members of unknown group = %v, want empty", got)
	}

	if got := res.RelationEdgeCount(); got != 3 {
		t.Errorf("RelationEdgeCount = %d, want 3", got)
	}
	if got := res.RelationCount(); got != 1 {
		t.Errorf("RelationCount = %d, want 1", got)
	}
	if got := res.GroupCount(); got != 2 {
		t.Errorf("GroupCount = %d, want 2", got)
	}
}

func TestNewResultMergesDuplicateRelationRows(t *testing.T) {
	groups := map[int][]Member{
		0: {{Identifier: "a", Scope: "s", Type: entity.Unknown}},
		1: {{Identifier: "b", Scope: "t", Type: entity.Unknown}},
	}
	rels := []Relation{
		{Src: 0, Predicate: "contains", Target: 1, Count: 2},
		{Src: 0, Predicate: "contains", Target: 1, Count: 1},
	}

	res, err := NewResult(groups, rels, nil)
	if err != nil {
		t.Fatalf("NewResult: %v", err)
	}
	rows := res.Relations()
	if len(rows) != 1 || rows[0].Count != 3 {
		t.Errorf("Relations = %v, want one row with count 3", rows)
	}
}
