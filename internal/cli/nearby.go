package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/exilemind/arbor/pkg/path"
)

// nearbyCommand creates the nearby command.
func (c *CLI) nearbyCommand() *cobra.Command {
	var (
		flags  allocFlags
		radius int
	)

	cmd := &cobra.Command{
		Use:   "nearby <node-ids>",
		Short: "List unallocated notables within reach of the allocation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runNearby(cmd.Context(), args[0], flags, radius)
		},
	}

	flags.register(cmd, c.Config)
	cmd.Flags().IntVar(&radius, "radius", 3, "maximum hops from the allocation")
	return cmd
}

func (c *CLI) runNearby(ctx context.Context, nodeList string, flags allocFlags, radius int) error {
	resolved, alloc, err := c.resolveAllocation(ctx, nodeList, flags)
	if err != nil {
		return err
	}

	engine := path.NewEngine(resolved.Tree)
	found := engine.NearbyNotables(alloc.Nodes, radius)
	if len(found) == 0 {
		printInfo("No notables within %d hops", radius)
		return nil
	}

	fmt.Println(StyleTitle.Render(fmt.Sprintf("Notables within %d hops", radius)))
	for _, r := range found {
		style := styleNotable
		if r.Node.Keystone {
			style = styleKeystone
		}
		printDetail("%s %s (%d %s)", style.Render(r.Node.Name), StyleDim.Render(fmt.Sprintf("#%d", r.Node.ID)),
			r.Distance, plural("hop", r.Distance))
		for _, s := range r.Node.Stats {
			printDetail("    %s", s)
		}
	}
	return nil
}

func plural(word string, n int) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
