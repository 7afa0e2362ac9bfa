package align

import "testing"

func TestUnionFindLazyInsert(t *testing.T) {
	uf := NewUnionFind[string]()

	if got := uf.Find("a"); got != "a" {
		t.Errorf("Find(a) = %q, want a", got)
	}
	if uf.Len() != 1 {
		t.Errorf("Len = %d, want 1", uf.Len())
	}

	uf.Ensure("b")
	if uf.Len() != 2 {
		t.Errorf("Len after Ensure = %d, want 2", uf.Len())
	}
	if uf.Same("a", "b") {
		t.Error("fresh singletons should not share a root")
	}
}

func TestUnionFindMerge(t *testing.T) {
	uf := NewUnionFind[int]()

	uf.Union(1, 2)
	uf.Union(3, 4)
	if uf.Same(1, 3) {
		t.Error("separate components merged")
	}

	uf.Union(2, 3)
	for _, pair := range [][2]int{{1, 2}, {1, 3}, {1, 4}, {2, 4}} {
		if !uf.Same(pair[0], pair[1]) {
			t.Errorf("Same(%d, %d) = false after chain union", pair[0], pair[1])
		}
	}

	// Union on an already-merged pair is a no-op.
	root := uf.Find(1)
	uf.Union(4, 1)
	if got := uf.Find(1); got != root {
		t.Errorf("root changed by redundant union: %v -> %v", root, got)
	}
}

func TestUnionFindPathCompression(t *testing.T) {
	uf := NewUnionFind[int]()
	// Build a chain and verify every element reports the same root.
	for i := 0; i < 100; i++ {
		uf.Union(i, i+1)
	}
	root := uf.Find(0)
	for i := 1; i <= 100; i++ {
		if uf.Find(i) != root {
			t.Fatalf("element %d has root %v, want %v", i, uf.Find(i), root)
		}
	}
}
