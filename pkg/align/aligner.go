package align

import (
	"cmp"
	"slices"
	"strings"

	"github.com/omicalign/omicalign/pkg/dataset"
	"github.com/omicalign/omicalign/pkg/entity"
)

// ScopedID qualifies an identifier string with the scope that disambiguates
// it. Identity is exactly this pair: the same literal identifier under two
// different scopes denotes two distinct entities unless a registry bridges
// them. ScopedID is the unit the union-find engine operates on; resolved
// entity types are attributes looked up separately and are never part of
// the key.
type ScopedID struct {
	Scope string
	ID    string
}

// Compare orders ScopedIDs by scope, then identifier.
func (s ScopedID) Compare(o ScopedID) int {
	if c := cmp.Compare(s.Scope, o.Scope); c != 0 {
		return c
	}
	return cmp.Compare(s.ID, o.ID)
}

// RelationEdge is a directed, labeled assertion between two scoped
// identifiers that are not claimed to be the same entity. Multiple
// datasets may assert the same triple; multiplicity is preserved.
type RelationEdge struct {
	Src       ScopedID
	Predicate string
	Target    ScopedID
}

// UnclassifiedEdge is a cross-reference whose namespace is absent from the
// policy tables. It is retained verbatim for review and never merged.
type UnclassifiedEdge struct {
	Src       ScopedID
	Namespace string
	Target    ScopedID
}

// aliasEdge is an unordered alias assertion stored with canonically ordered
// endpoints so re-insertion from multiple datasets is idempotent.
type aliasEdge struct {
	a, b ScopedID
}

func newAliasEdge(x, y ScopedID) aliasEdge {
	if x.Compare(y) > 0 {
		x, y = y, x
	}
	return aliasEdge{a: x, b: y}
}

// featKey locates a feature or column record within its owning dataset.
type featKey struct {
	dataset string
	id      string
}

// Aligner resolves identity across datasets under a fixed policy.
// It is a single-threaded batch computation: each call to Align owns its
// own union-find instance, runs to a fixed point, and returns an immutable
// Result. There is no incremental mode; adding a dataset means realigning
// the complete input.
type Aligner struct {
	policy Policy
}

// New creates an Aligner with the given policy.
func New(policy Policy) *Aligner {
	return &Aligner{policy: policy}
}

// Align runs the full alignment over the given datasets with the default
// policy. See [Aligner.Align].
func Align(datasets ...dataset.Dataset) *Result {
	return New(DefaultPolicy()).Align(datasets...)
}

// Align resolves identity across the given datasets: it classifies every
// cross-reference, merges alias-connected identifiers subject to the type
// compatibility guard, resolves one entity type per group, and materializes
// the result with stable dense group ids and aggregated relation counts.
func (a *Aligner) Align(datasets ...dataset.Dataset) *Result {
	featScope, idType := a.collectMeta(datasets)
	aliases, rels, uncls, inferred := a.ingest(datasets, featScope, idType)
	uf, universe := buildSets(aliases, rels, idType, inferred)
	finalType := resolveTypes(uf, universe, idType, inferred)
	return materialize(uf, universe, finalType, rels, uncls)
}

// collectMeta walks feature and column metadata across all datasets,
// recording each record's resolved scope and any explicit type hint.
func (a *Aligner) collectMeta(datasets []dataset.Dataset) (map[featKey]string, map[ScopedID]string) {
	featScope := make(map[featKey]string)
	idType := make(map[ScopedID]string)

	for _, ds := range datasets {
		scope := ds.Scope()
		for _, rec := range ds.Records() {
			id := strings.TrimSpace(rec.ID)
			s := a.policy.FeatureScope(scope, rec.Namespace)
			featScope[featKey{dataset: ds.Name, id: id}] = s
			if entity.Known(rec.Entity) {
				idType[ScopedID{Scope: s, ID: id}] = rec.Entity
			}
		}
	}
	return featScope, idType
}

// ingest classifies every cross-reference record into alias, relation, or
// unclassified edges, resolving the scope of each endpoint and propagating
// explicit types across alias assertions so later merge-guard checks see
// them as inferred.
func (a *Aligner) ingest(
	datasets []dataset.Dataset,
	featScope map[featKey]string,
	idType map[ScopedID]string,
) (map[aliasEdge]struct{}, []RelationEdge, []UnclassifiedEdge, map[ScopedID]string) {
	aliases := make(map[aliasEdge]struct{})
	var rels []RelationEdge
	var uncls []UnclassifiedEdge
	inferred := make(map[ScopedID]string)

	scopeOf := func(ds dataset.Dataset, id string) string {
		if s, ok := featScope[featKey{dataset: ds.Name, id: id}]; ok {
			return s
		}
		return ds.Scope()
	}

	for _, ds := range datasets {
		for _, xr := range ds.CrossRefs {
			src := strings.TrimSpace(xr.Src)
			tgt := strings.TrimSpace(xr.Target)
			ns := normalizeNS(xr.Namespace)

			srcScope := scopeOf(ds, src)
			tgtFallback := scopeOf(ds, tgt)

			switch a.policy.Classify(ns) {
			case CategoryAlias:
				kSrc := ScopedID{Scope: srcScope, ID: src}
				kTgt := ScopedID{Scope: a.policy.AliasTargetScope(ns, srcScope, tgtFallback), ID: tgt}

				// An explicit type on either end counts as inferred for the
				// other, so later merges see the now-resolved type.
				if t, ok := idType[kSrc]; ok {
					if _, has := idType[kTgt]; !has {
						inferred[kTgt] = t
					}
				}
				if t, ok := idType[kTgt]; ok {
					if _, has := idType[kSrc]; !has {
						inferred[kSrc] = t
					}
				}
				aliases[newAliasEdge(kSrc, kTgt)] = struct{}{}

			case CategoryRelation:
				kSrc := ScopedID{Scope: srcScope, ID: src}
				kTgt := ScopedID{Scope: a.policy.RelationTargetScope(ns, tgtFallback), ID: tgt}

				srcType := entity.Unknown
				if t, ok := idType[kSrc]; ok {
					srcType = t
				}
				tgtType := a.policy.DeriveType(ns, srcType)
				if _, has := idType[kTgt]; !has && tgtType != entity.Unknown {
					inferred[kTgt] = tgtType
				}
				rels = append(rels, RelationEdge{Src: kSrc, Predicate: a.policy.Predicate(ns), Target: kTgt})

			default:
				kSrc := ScopedID{Scope: srcScope, ID: src}
				kTgt := ScopedID{Scope: a.policy.RelationTargetScope(ns, tgtFallback), ID: tgt}
				uncls = append(uncls, UnclassifiedEdge{Src: kSrc, Namespace: ns, Target: kTgt})
			}
		}
	}
	return aliases, rels, uncls, inferred
}

// knownType returns the explicit or inferred type of k, or "" if neither
// is recorded.
func knownType(idType, inferred map[ScopedID]string, k ScopedID) string {
	if t, ok := idType[k]; ok {
		return t
	}
	return inferred[k]
}

// buildSets runs union-find over the alias edges, guarding each merge
// against incompatible types: when both endpoints carry a known type and
// the types differ, the union is refused and the sets stay separate. When
// exactly one side is typed, the union proceeds and the known type becomes
// inferred for the other side.
//
// Relation endpoints are registered too, so the returned universe covers
// every identifier touched by any edge. The universe is sorted so all
// later iteration is deterministic.
func buildSets(
	aliases map[aliasEdge]struct{},
	rels []RelationEdge,
	idType, inferred map[ScopedID]string,
) (*UnionFind[ScopedID], []ScopedID) {
	uf := NewUnionFind[ScopedID]()
	seen := make(map[ScopedID]struct{})

	touch := func(k ScopedID) {
		seen[k] = struct{}{}
		uf.Ensure(k)
	}

	edges := make([]aliasEdge, 0, len(aliases))
	for e := range aliases {
		edges = append(edges, e)
	}
	slices.SortFunc(edges, func(x, y aliasEdge) int {
		if c := x.a.Compare(y.a); c != 0 {
			return c
		}
		return x.b.Compare(y.b)
	})

	for _, e := range edges {
		touch(e.a)
		touch(e.b)

		ta := knownType(idType, inferred, e.a)
		tb := knownType(idType, inferred, e.b)
		if ta != "" && tb != "" && ta != tb {
			continue // refused: alias bridges two distinct entity types
		}
		uf.Union(e.a, e.b)
		if ta != "" && tb == "" {
			inferred[e.b] = ta
		}
		if tb != "" && ta == "" {
			inferred[e.a] = tb
		}
	}
	for _, r := range rels {
		touch(r.Src)
		touch(r.Target)
	}

	universe := make([]ScopedID, 0, len(seen))
	for k := range seen {
		universe = append(universe, k)
	}
	slices.SortFunc(universe, ScopedID.Compare)
	return uf, universe
}

// resolveTypes assigns one entity type per merged group. A group whose
// members carry exactly one distinct known type gets that type; zero or
// conflicting known types resolve to entity.Unknown. This is a pure
// function of settled union-find state and runs strictly after all unions.
func resolveTypes(
	uf *UnionFind[ScopedID],
	universe []ScopedID,
	idType, inferred map[ScopedID]string,
) map[ScopedID]string {
	members := make(map[ScopedID][]ScopedID)
	for _, k := range universe {
		root := uf.Find(k)
		members[root] = append(members[root], k)
	}

	finalType := make(map[ScopedID]string, len(universe))
	for _, group := range members {
		known := make(map[string]struct{})
		for _, m := range group {
			if t := knownType(idType, inferred, m); t != "" {
				known[t] = struct{}{}
			}
		}
		ty := entity.Unknown
		if len(known) == 1 {
			for t := range known {
				ty = t
			}
		}
		for _, m := range group {
			finalType[m] = ty
		}
	}
	return finalType
}

// materialize assigns dense group ids to union-find roots in first-encounter
// order over the sorted universe, then builds group membership and the
// aggregated relation table. A relation whose endpoints merged into the same
// group yields a self-referencing row; suppression is left to consumers that
// need an acyclic projection.
func materialize(
	uf *UnionFind[ScopedID],
	universe []ScopedID,
	finalType map[ScopedID]string,
	rels []RelationEdge,
	uncls []UnclassifiedEdge,
) *Result {
	roots := make(map[ScopedID]int)
	gidFor := func(k ScopedID) int {
		root := uf.Find(k)
		gid, ok := roots[root]
		if !ok {
			gid = len(roots)
			roots[root] = gid
		}
		return gid
	}

	res := &Result{
		groups:       make(map[int][]Member),
		index:        make(map[ScopedID]int),
		relations:    make(map[relKey]int),
		unclassified: slices.Clone(uncls),
	}

	for _, k := range universe {
		gid := gidFor(k)
		ty, ok := finalType[k]
		if !ok {
			ty = entity.Unknown
		}
		res.index[k] = gid
		res.groups[gid] = append(res.groups[gid], Member{
			Identifier: k.ID,
			Scope:      k.Scope,
			Type:       ty,
		})
	}

	for _, r := range rels {
		key := relKey{src: gidFor(r.Src), predicate: r.Predicate, tgt: gidFor(r.Target)}
		res.relations[key]++
	}
	return res
}
