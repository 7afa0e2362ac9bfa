package align

import (
	"cmp"
	"errors"
	"slices"
)

var (
	// ErrDuplicateMember is returned by [NewResult] when the same
	// (scope, identifier) pair appears in more than one group. Group
	// membership must partition the identifier universe; a duplicate
	// indicates a corrupted snapshot, not a recoverable condition.
	ErrDuplicateMember = errors.New("scoped identifier mapped to multiple groups")

	// ErrInvalidCount is returned by [NewResult] when a relation row
	// carries a non-positive count.
	ErrInvalidCount = errors.New("relation count must be positive")
)

// Member is one identifier inside a group, together with the group's
// resolved entity type. The (Scope, Identifier) pair is the identity;
// Type is a derived attribute.
type Member struct {
	Identifier string
	Scope      string
	Type       string
}

func compareMembers(a, b Member) int {
	if c := cmp.Compare(a.Scope, b.Scope); c != 0 {
		return c
	}
	return cmp.Compare(a.Identifier, b.Identifier)
}

// Relation is one aggregated relation row between two groups.
type Relation struct {
	Src       int
	Predicate string
	Target    int
	Count     int
}

// GroupRelation is a relation viewed from one group's side: the predicate,
// the group on the other end, and the observation count.
type GroupRelation struct {
	Predicate string
	Group     int
	Count     int
}

type relKey struct {
	src       int
	predicate string
	tgt       int
}

// Result is the immutable alignment snapshot: group membership, aggregated
// inter-group relations, and the unclassified edges retained for review.
// All accessors return copies or freshly derived views; a Result is never
// mutated after construction, so it is safe for concurrent reads.
type Result struct {
	groups       map[int][]Member
	index        map[ScopedID]int
	relations    map[relKey]int
	unclassified []UnclassifiedEdge
}

// NewResult builds a Result from explicit group membership and relation
// rows, validating that membership partitions the identifier universe.
// This is the reconstruction path used when loading a persisted snapshot;
// live alignment builds its result internally.
func NewResult(groups map[int][]Member, relations []Relation, unclassified []UnclassifiedEdge) (*Result, error) {
	res := &Result{
		groups:       make(map[int][]Member, len(groups)),
		index:        make(map[ScopedID]int),
		relations:    make(map[relKey]int, len(relations)),
		unclassified: slices.Clone(unclassified),
	}

	for gid, members := range groups {
		for _, m := range members {
			key := ScopedID{Scope: m.Scope, ID: m.Identifier}
			if prev, ok := res.index[key]; ok && prev != gid {
				return nil, ErrDuplicateMember
			}
			res.index[key] = gid
		}
		res.groups[gid] = slices.Clone(members)
	}

	for _, r := range relations {
		if r.Count <= 0 {
			return nil, ErrInvalidCount
		}
		res.relations[relKey{src: r.Src, predicate: r.Predicate, tgt: r.Target}] += r.Count
	}
	return res, nil
}

// GroupOf returns the id of the group containing the given scoped
// identifier. The second return value is false if the identifier was never
// touched by any edge.
func (r *Result) GroupOf(scope, identifier string) (int, bool) {
	gid, ok := r.index[ScopedID{Scope: scope, ID: identifier}]
	return gid, ok
}

// Members returns the member set of a group, sorted by scope then
// identifier. An unknown group id yields an empty slice.
func (r *Result) Members(gid int) []Member {
	members := slices.Clone(r.groups[gid])
	slices.SortFunc(members, compareMembers)
	return members
}

// GroupIDs returns all group ids in ascending order.
func (r *Result) GroupIDs() []int {
	ids := make([]int, 0, len(r.groups))
	for gid := range r.groups {
		ids = append(ids, gid)
	}
	slices.Sort(ids)
	return ids
}

// Relations returns every aggregated relation row, sorted by source group,
// predicate, then target group.
func (r *Result) Relations() []Relation {
	rows := make([]Relation, 0, len(r.relations))
	for k, count := range r.relations {
		rows = append(rows, Relation{Src: k.src, Predicate: k.predicate, Target: k.tgt, Count: count})
	}
	slices.SortFunc(rows, func(a, b Relation) int {
		if c := cmp.Compare(a.Src, b.Src); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Predicate, b.Predicate); c != 0 {
			return c
		}
		return cmp.Compare(a.Target, b.Target)
	})
	return rows
}

// RelationsFrom returns the outgoing relations of a group as
// (predicate, target group, count) triples, sorted by predicate then group.
func (r *Result) RelationsFrom(gid int) []GroupRelation {
	var out []GroupRelation
	for k, count := range r.relations {
		if k.src == gid {
			out = append(out, GroupRelation{Predicate: k.predicate, Group: k.tgt, Count: count})
		}
	}
	sortGroupRelations(out)
	return out
}

// RelationsTo returns the incoming relations of a group as
// (predicate, source group, count) triples, sorted by predicate then group.
func (r *Result) RelationsTo(gid int) []GroupRelation {
	var out []GroupRelation
	for k, count := range r.relations {
		if k.tgt == gid {
			out = append(out, GroupRelation{Predicate: k.predicate, Group: k.src, Count: count})
		}
	}
	sortGroupRelations(out)
	return out
}

func sortGroupRelations(rels []GroupRelation) {
	slices.SortFunc(rels, func(a, b GroupRelation) int {
		if c := cmp.Compare(a.Predicate, b.Predicate); c != 0 {
			return c
		}
		return cmp.Compare(a.Group, b.Group)
	})
}

// Orphans returns the ids of groups with no relation edges at all,
// regardless of how many aliases they contain internally. Derived on
// demand from the relation table; never cached.
func (r *Result) Orphans() []int {
	linked := r.linkedSet()
	var out []int
	for gid := range r.groups {
		if !linked[gid] {
			out = append(out, gid)
		}
	}
	slices.Sort(out)
	return out
}

// Isolated returns the ids of groups containing exactly one member:
// entities with no alias relationships.
func (r *Result) Isolated() []int {
	var out []int
	for gid, members := range r.groups {
		if len(members) == 1 {
			out = append(out, gid)
		}
	}
	slices.Sort(out)
	return out
}

// Connected returns the ids of groups touched by at least one relation.
func (r *Result) Connected() []int {
	linked := r.linkedSet()
	out := make([]int, 0, len(linked))
	for gid := range linked {
		out = append(out, gid)
	}
	slices.Sort(out)
	return out
}

func (r *Result) linkedSet() map[int]bool {
	linked := make(map[int]bool)
	for k := range r.relations {
		linked[k.src] = true
		linked[k.tgt] = true
	}
	return linked
}

// Unclassified returns the cross-references whose namespace matched no
// policy table, in ingestion order. These were never merged or counted;
// they are kept so policy gaps can be reviewed instead of vanishing.
func (r *Result) Unclassified() []UnclassifiedEdge {
	return slices.Clone(r.unclassified)
}

// GroupCount returns the number of groups.
func (r *Result) GroupCount() int { return len(r.groups) }

// MemberCount returns the total number of scoped identifiers across all
// groups.
func (r *Result) MemberCount() int { return len(r.index) }

// RelationCount returns the number of distinct (source, predicate, target)
// relation rows.
func (r *Result) RelationCount() int { return len(r.relations) }

// RelationEdgeCount returns the total number of observed relation edges,
// i.e. the sum of all row counts.
func (r *Result) RelationEdgeCount() int {
	total := 0
	for _, count := range r.relations {
		total += count
	}
	return total
}
