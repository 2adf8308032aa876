package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/exilemind/arbor/pkg/errors"
	"github.com/exilemind/arbor/pkg/export"
)

// exportCommand creates the export command.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		flags    allocFlags
		format   string
		output   string
		radius   int
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "export <node-ids>",
		Short: "Render the allocation neighborhood as DOT or SVG",
		Long: `Render the allocation neighborhood as DOT or SVG.

Draws the allocated nodes plus the unallocated frontier within the given
radius. DOT output can be fed to external Graphviz tooling; SVG is rendered
in-process.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExport(cmd.Context(), args[0], flags, format, output, radius, detailed)
		},
	}

	flags.register(cmd, c.Config)
	cmd.Flags().StringVarP(&format, "format", "f", "dot", "output format: dot, svg")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout for dot, tree.svg for svg)")
	cmd.Flags().IntVar(&radius, "radius", 1, "hops past the allocation to include")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include stat lines in node labels")
	return cmd
}

func (c *CLI) runExport(ctx context.Context, nodeList string, flags allocFlags, format, output string, radius int, detailed bool) error {
	resolved, alloc, err := c.resolveAllocation(ctx, nodeList, flags)
	if err != nil {
		return err
	}

	dot := export.ToDOT(resolved.Tree, alloc.Nodes, export.Options{
		Radius:   radius,
		Detailed: detailed,
	})

	switch strings.ToLower(format) {
	case "dot":
		if output == "" {
			fmt.Print(dot)
			return nil
		}
		return writeOutput(output, []byte(dot))
	case "svg":
		svg, err := export.RenderSVG(ctx, dot)
		if err != nil {
			return err
		}
		if output == "" {
			output = "tree.svg"
		}
		return writeOutput(output, svg)
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (want dot or svg)", format)
	}
}

func writeOutput(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	printFile(path)
	return nil
}
