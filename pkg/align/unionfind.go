package align

// UnionFind is a disjoint-set structure with path compression and union by
// rank over opaque comparable keys. Keys are inserted lazily: Find on an
// unseen key registers it as its own singleton set, so callers never need
// to pre-register the universe.
//
// The structure is purely structural; it knows nothing about entity types.
// The type-compatibility merge guard lives in the Aligner, which decides
// whether to call Union at all.
//
// The zero value is not usable; use NewUnionFind.
type UnionFind[K comparable] struct {
	parent map[K]K
	rank   map[K]int
}

// NewUnionFind creates an empty disjoint-set structure.
func NewUnionFind[K comparable]() *UnionFind[K] {
	return &UnionFind[K]{
		parent: make(map[K]K),
		rank:   make(map[K]int),
	}
}

// Ensure registers x as a singleton set if it has never been seen.
// It is equivalent to calling Find and discarding the result, but states
// the intent when a caller only wants the key in the universe.
func (u *UnionFind[K]) Ensure(x K) {
	u.Find(x)
}

// Find returns the representative of x's set, inserting x as a fresh
// singleton if unseen. Paths are compressed along the way, so repeated
// lookups approach constant time.
func (u *UnionFind[K]) Find(x K) K {
	p, ok := u.parent[x]
	if !ok {
		u.parent[x] = x
		u.rank[x] = 0
		return x
	}
	if p == x {
		return x
	}
	root := u.Find(p)
	u.parent[x] = root
	return root
}

// Union merges the sets containing a and b. It is a no-op if they already
// share a root. The root with the larger rank wins; on a tie one root
// absorbs the other and its rank increments.
func (u *UnionFind[K]) Union(a, b K) {
	ra, rb := u.Find(a), u.Find(b)
	if ra == rb {
		return
	}
	switch {
	case u.rank[ra] < u.rank[rb]:
		u.parent[ra] = rb
	case u.rank[ra] > u.rank[rb]:
		u.parent[rb] = ra
	default:
		u.parent[rb] = ra
		u.rank[ra]++
	}
}

// Len returns the number of keys ever seen.
func (u *UnionFind[K]) Len() int { return len(u.parent) }

// Same reports whether a and b are in the same set.
// Both keys are inserted if unseen.
func (u *UnionFind[K]) Same(a, b K) bool {
	return u.Find(a) == u.Find(b)
}
