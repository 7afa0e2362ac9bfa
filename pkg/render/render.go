// Package render visualizes alignment results as group graphs.
//
// Groups become nodes, aggregated relation rows become labeled edges.
// The DOT output is deterministic: nodes appear in group-id order and
// edges in the result's sorted relation order, so the same result always
// yields the same diagram.
//
//	dot := render.ToDOT(res, render.Options{})
//	svg, err := render.RenderSVG(dot)
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/omicalign/omicalign/pkg/align"
	"github.com/omicalign/omicalign/pkg/entity"
)

// Options configures group graph rendering.
type Options struct {
	// Detailed lists every member of a group in its node label.
	// When false, only a representative member and the member count are shown.
	Detailed bool

	// IncludeIsolated renders groups with no relation rows.
	// When false, only connected groups appear in the diagram.
	IncludeIsolated bool
}

// ToDOT converts an alignment result to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
func ToDOT(res *align.Result, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph alignment {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontsize=11];\n")
	buf.WriteString("\n")

	gids := res.GroupIDs()
	if !opts.IncludeIsolated {
		gids = res.Connected()
	}
	for _, gid := range gids {
		label := fmtLabel(res, gid, opts.Detailed)
		attrs := fmtAttrs(res, gid, label)
		fmt.Fprintf(&buf, "  g%d [%s];\n", gid, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, r := range res.Relations() {
		fmt.Fprintf(&buf, "  g%d -> g%d [label=%q];\n", r.Src, r.Target, fmtEdgeLabel(r))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(res *align.Result, gid int, detailed bool) string {
	members := res.Members(gid)
	if detailed {
		parts := make([]string, len(members))
		for i, m := range members {
			parts[i] = m.Scope + ":" + m.Identifier
		}
		return fmt.Sprintf("#%d\n%s", gid, strings.Join(parts, "\n"))
	}
	if len(members) == 1 {
		m := members[0]
		return fmt.Sprintf("#%d %s:%s", gid, m.Scope, m.Identifier)
	}
	m := members[0]
	return fmt.Sprintf("#%d %s:%s (+%d)", gid, m.Scope, m.Identifier, len(members)-1)
}

func fmtAttrs(res *align.Result, gid int, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if t := groupType(res, gid); t != "" {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", typeColor(t)))
	}
	return attrs
}

func fmtEdgeLabel(r align.Relation) string {
	if r.Count > 1 {
		return fmt.Sprintf("%s ×%d", r.Predicate, r.Count)
	}
	return r.Predicate
}

func groupType(res *align.Result, gid int) string {
	members := res.Members(gid)
	if len(members) == 0 {
		return ""
	}
	return members[0].Type
}

// typeColor maps resolved entity types to node fill colors.
func typeColor(t string) string {
	switch t {
	case entity.Gene, entity.DNA:
		return "lightyellow"
	case entity.Transcript:
		return "lightblue"
	case entity.Protein:
		return "lightgreen"
	case entity.Metabolite:
		return "mistyrose"
	case entity.Sample:
		return "lavender"
	default:
		return "white"
	}
}
