package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/exilemind/arbor/pkg/analysis"
	"github.com/exilemind/arbor/pkg/tree"
	"github.com/exilemind/arbor/pkg/treedata"
)

// allocFlags are the flags shared by every command that takes an
// allocation: which tree version to resolve and the character metadata.
type allocFlags struct {
	version    string
	level      int
	classID    int
	ascendancy int
	noCache    bool
}

func (f *allocFlags) register(cmd *cobra.Command, cfg *Config) {
	cmd.Flags().StringVar(&f.version, "tree-version", cfg.DefaultVersion, "tree data version")
	cmd.Flags().IntVar(&f.level, "level", 90, "character level")
	cmd.Flags().IntVar(&f.classID, "class", 0, "base class id")
	cmd.Flags().IntVar(&f.ascendancy, "ascendancy", 0, "ascendancy id")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the raw data cache")
}

// resolveAllocation parses the node list and resolves the tree version,
// logging when the fallback version was served.
func (c *CLI) resolveAllocation(ctx context.Context, nodeList string, f allocFlags) (treedata.Resolved, analysis.AllocatedSet, error) {
	alloc, err := analysis.ParseAllocated(nodeList, f.level, f.classID, f.ascendancy)
	if err != nil {
		return treedata.Resolved{}, analysis.AllocatedSet{}, err
	}

	store, err := c.newStore(f.noCache)
	if err != nil {
		return treedata.Resolved{}, analysis.AllocatedSet{}, err
	}

	c.Logger.Debug("resolving tree", "version", f.version)
	resolved, err := store.Resolve(ctx, f.version)
	if err != nil {
		return treedata.Resolved{}, analysis.AllocatedSet{}, err
	}
	if resolved.FellBack {
		printWarning("Version %s unavailable, using %s", resolved.Requested, resolved.Tree.Version())
	}
	return resolved, alloc, nil
}

// analyzeCommand creates the analyze command.
func (c *CLI) analyzeCommand() *cobra.Command {
	var flags allocFlags

	cmd := &cobra.Command{
		Use:   "analyze <node-ids>",
		Short: "Classify an allocation's archetype and efficiency",
		Long: `Classify an allocation's archetype and efficiency.

Takes a comma-separated list of allocated node ids (as exported from a save
file), resolves the tree data for the requested version, and reports the
build archetype, pathing-efficiency tier, and point usage.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runAnalyze(cmd.Context(), args[0], flags)
		},
	}

	flags.register(cmd, c.Config)
	return cmd
}

func (c *CLI) runAnalyze(ctx context.Context, nodeList string, flags allocFlags) error {
	resolved, alloc, err := c.resolveAllocation(ctx, nodeList, flags)
	if err != nil {
		return err
	}

	res, err := analysis.Analyze(resolved, alloc)
	if err != nil {
		return err
	}

	fmt.Println(StyleTitle.Render("Allocation analysis"))
	printKeyValue("Version", res.Version)
	printKeyValue("Archetype", fmt.Sprintf("%s (%s confidence)", res.Archetype.Archetype, res.Archetype.Confidence))
	printKeyValue("Efficiency", string(res.Efficiency))
	printKeyValue("Points", fmt.Sprintf("%d used, %d available", res.PointsUsed, res.PointsAvailable))
	fmt.Println()

	printNodeList("Keystones", res.Categories.Keystones, styleKeystone)
	printNodeList("Notables", res.Categories.Notables, styleNotable)
	if n := len(res.Categories.Jewels); n > 0 {
		printDetail("%d jewel sockets", n)
	}
	printDetail("%d travel nodes", len(res.Categories.Normal))
	return nil
}

func printNodeList(title string, nodes []*tree.Node, style lipgloss.Style) {
	if len(nodes) == 0 {
		return
	}
	names := make([]string, 0, len(nodes))
	for _, n := range nodes {
		name := n.Name
		if name == "" {
			name = fmt.Sprintf("#%d", n.ID)
		}
		names = append(names, style.Render(name))
	}
	fmt.Println("  " + StyleDim.Render(title+":") + " " + strings.Join(names, ", "))
}
