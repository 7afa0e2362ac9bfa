package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/omicalign/omicalign/pkg/align"
	"github.com/omicalign/omicalign/pkg/entity"
	"github.com/omicalign/omicalign/pkg/resultio"
)

// inspectOpts holds the command-line flags for the inspect command.
type inspectOpts struct {
	group        int    // group id to show (-1 = none)
	lookup       string // scope:identifier to resolve
	orphans      bool   // list single-member groups
	unclassified bool   // list unclassified cross-references
}

// inspectCommand creates the inspect command for querying an exported
// alignment result without re-running the pipeline.
func (c *CLI) inspectCommand() *cobra.Command {
	opts := inspectOpts{group: -1}

	cmd := &cobra.Command{
		Use:   "inspect [result.json]",
		Short: "Query an exported alignment result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(args[0], &opts)
		},
	}

	cmd.Flags().IntVar(&opts.group, "group", -1, "show the members of one group")
	cmd.Flags().StringVar(&opts.lookup, "lookup", "", "resolve a scope:identifier pair to its group")
	cmd.Flags().BoolVar(&opts.orphans, "orphans", false, "list groups with a single member")
	cmd.Flags().BoolVar(&opts.unclassified, "unclassified", false, "list unclassified cross-references")

	return cmd
}

func runInspect(path string, opts *inspectOpts) error {
	res, err := resultio.ReadFile(path)
	if err != nil {
		return err
	}

	switch {
	case opts.group >= 0:
		return showGroup(res, opts.group)
	case opts.lookup != "":
		return showLookup(res, opts.lookup)
	case opts.orphans:
		showOrphans(res)
		return nil
	case opts.unclassified:
		showUnclassified(res)
		return nil
	default:
		showSummary(res)
		return nil
	}
}

func showSummary(res *align.Result) {
	printKeyValue("groups", strconv.Itoa(res.GroupCount()))
	printKeyValue("members", strconv.Itoa(res.MemberCount()))
	printKeyValue("relations", strconv.Itoa(res.RelationCount()))
	printKeyValue("edges", strconv.Itoa(res.RelationEdgeCount()))
	printKeyValue("orphans", strconv.Itoa(len(res.Orphans())))
	printKeyValue("unclassified", strconv.Itoa(len(res.Unclassified())))
}

func showGroup(res *align.Result, gid int) error {
	members := res.Members(gid)
	if len(members) == 0 {
		return fmt.Errorf("no group with id %d", gid)
	}
	printInfo("Group %d (%d members)", gid, len(members))
	for _, m := range members {
		printDetail("%s", memberLine(m))
	}
	for _, rel := range res.RelationsFrom(gid) {
		printDetail("%s %s group %d (×%d)", iconArrow, rel.Predicate, rel.Group, rel.Count)
	}
	for _, rel := range res.RelationsTo(gid) {
		printDetail("%s %s from group %d (×%d)", iconArrow, rel.Predicate, rel.Group, rel.Count)
	}
	return nil
}

func showLookup(res *align.Result, query string) error {
	scope, id, ok := strings.Cut(query, ":")
	if !ok || scope == "" || id == "" {
		return fmt.Errorf("lookup must have the form scope:identifier, got %q", query)
	}
	gid, ok := res.GroupOf(scope, id)
	if !ok {
		return fmt.Errorf("identifier %s:%s is not aligned", scope, id)
	}
	return showGroup(res, gid)
}

func showOrphans(res *align.Result) {
	orphans := res.Orphans()
	printInfo("%d orphan groups", len(orphans))
	for _, gid := range orphans {
		for _, m := range res.Members(gid) {
			printDetail("#%d %s", gid, memberLine(m))
		}
	}
}

func showUnclassified(res *align.Result) {
	edges := res.Unclassified()
	printInfo("%d unclassified cross-references", len(edges))
	for _, e := range edges {
		printDetail("%s:%s %s[%s]%s %s:%s",
			e.Src.Scope, e.Src.ID, iconArrow, e.Namespace, iconArrow, e.Target.Scope, e.Target.ID)
	}
}

func memberLine(m align.Member) string {
	if entity.Known(m.Type) {
		return fmt.Sprintf("%s:%s (%s)", m.Scope, m.Identifier, m.Type)
	}
	return fmt.Sprintf("%s:%s", m.Scope, m.Identifier)
}
