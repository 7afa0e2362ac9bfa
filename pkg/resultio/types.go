package resultio

import (
	"time"

	"github.com/omicalign/omicalign/pkg/align"
)

// SchemaVersion identifies the serialization format. It is advisory:
// reconstruction only needs the group and relation rows.
const SchemaVersion = "1"

// Document is the canonical serialization format for alignment results.
// Used for file storage, caching, and the MongoDB result store.
//
// The format is designed for round-trip fidelity: align → export →
// re-import yields an equal set of (group id, member) pairs and an equal
// multiset of (source, predicate, target, count) relation rows. Metadata
// fields (Version, Created, Stats) are advisory and not required for
// correct reconstruction.
type Document struct {
	Version      string         `json:"version" bson:"version"`
	Created      time.Time      `json:"created" bson:"created"`
	Stats        Stats          `json:"stats" bson:"stats"`
	Groups       []Group        `json:"groups" bson:"groups"`
	Relations    []Relation     `json:"relations,omitempty" bson:"relations,omitempty"`
	Unclassified []Unclassified `json:"unclassified,omitempty" bson:"unclassified,omitempty"`
}

// Stats summarizes a document for quick inspection without walking the rows.
type Stats struct {
	Groups    int `json:"groups" bson:"groups"`
	Members   int `json:"members" bson:"members"`
	Relations int `json:"relations" bson:"relations"`
}

// Group is one alias group and its member rows.
type Group struct {
	ID      int      `json:"id" bson:"id"`
	Members []Member `json:"members" bson:"members"`
}

// Member is one scoped identifier with its resolved entity type.
type Member struct {
	Scope      string `json:"scope" bson:"scope"`
	Identifier string `json:"identifier" bson:"identifier"`
	Type       string `json:"type,omitempty" bson:"type,omitempty"`
}

// Relation is one aggregated relation row between two groups.
type Relation struct {
	Src       int    `json:"src" bson:"src"`
	Predicate string `json:"predicate" bson:"predicate"`
	Target    int    `json:"target" bson:"target"`
	Count     int    `json:"count" bson:"count"`
}

// Unclassified is a cross-reference whose namespace matched no policy
// table, retained for manual review.
type Unclassified struct {
	SrcScope    string `json:"src_scope" bson:"src_scope"`
	SrcID       string `json:"src_id" bson:"src_id"`
	Namespace   string `json:"namespace" bson:"namespace"`
	TargetScope string `json:"target_scope" bson:"target_scope"`
	TargetID    string `json:"target_id" bson:"target_id"`
}

// FromResult converts a Result to its serialization format.
// Groups are sorted by id, members by scope then identifier, and relations
// by source, predicate, then target, for deterministic output.
func FromResult(res *align.Result) Document {
	doc := Document{
		Version: SchemaVersion,
		Created: time.Now().UTC(),
		Stats: Stats{
			Groups:    res.GroupCount(),
			Members:   res.MemberCount(),
			Relations: res.RelationCount(),
		},
	}

	for _, gid := range res.GroupIDs() {
		g := Group{ID: gid}
		for _, m := range res.Members(gid) {
			g.Members = append(g.Members, Member{
				Scope:      m.Scope,
				Identifier: m.Identifier,
				Type:       m.Type,
			})
		}
		doc.Groups = append(doc.Groups, g)
	}

	for _, r := range res.Relations() {
		doc.Relations = append(doc.Relations, Relation{
			Src:       r.Src,
			Predicate: r.Predicate,
			Target:    r.Target,
			Count:     r.Count,
		})
	}

	for _, e := range res.Unclassified() {
		doc.Unclassified = append(doc.Unclassified, Unclassified{
			SrcScope:    e.Src.Scope,
			SrcID:       e.Src.ID,
			Namespace:   e.Namespace,
			TargetScope: e.Target.Scope,
			TargetID:    e.Target.ID,
		})
	}
	return doc
}

// ToResult reconstructs an alignment result from a document.
// Returns an error if group membership does not partition the identifier
// universe or a relation row carries an invalid count.
func (d Document) ToResult() (*align.Result, error) {
	groups := make(map[int][]align.Member, len(d.Groups))
	for _, g := range d.Groups {
		members := make([]align.Member, len(g.Members))
		for i, m := range g.Members {
			members[i] = align.Member{
				Identifier: m.Identifier,
				Scope:      m.Scope,
				Type:       m.Type,
			}
		}
		groups[g.ID] = members
	}

	rels := make([]align.Relation, len(d.Relations))
	for i, r := range d.Relations {
		rels[i] = align.Relation{Src: r.Src, Predicate: r.Predicate, Target: r.Target, Count: r.Count}
	}

	uncls := make([]align.UnclassifiedEdge, len(d.Unclassified))
	for i, e := range d.Unclassified {
		uncls[i] = align.UnclassifiedEdge{
			Src:       align.ScopedID{Scope: e.SrcScope, ID: e.SrcID},
			Namespace: e.Namespace,
			Target:    align.ScopedID{Scope: e.TargetScope, ID: e.TargetID},
		}
	}

	return align.NewResult(groups, rels, uncls)
}
