package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/exilemind/arbor/pkg/analysis"
	"github.com/exilemind/arbor/pkg/optimize"
)

// optimizeCommand creates the optimize command.
func (c *CLI) optimizeCommand() *cobra.Command {
	var (
		flags      allocFlags
		goalStr    string
		protectStr string
		iterations int
		radius     int
		cons       optimize.Constraints
	)

	cmd := &cobra.Command{
		Use:   "optimize <node-ids>",
		Short: "Propose node swaps that improve a chosen objective",
		Long: `Propose node swaps that improve a chosen objective.

Runs a bounded greedy search over the allocation: each step either adds a
nearby notable (with its connecting travel nodes), removes a low-value
node, or swaps the two. Constraint minimums are kept where already met;
protected nodes are never removed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			protected, err := parseProtected(protectStr)
			if err != nil {
				return err
			}
			cons.Protected = protected
			opts := optimize.Options{MaxIterations: iterations, SearchRadius: radius}
			return c.runOptimize(cmd.Context(), args[0], flags, optimize.ParseGoal(goalStr), cons, opts)
		},
	}

	flags.register(cmd, c.Config)
	cmd.Flags().StringVar(&goalStr, "goal", "dps", "objective: dps, life, es, ehp, balanced, league-start")
	cmd.Flags().StringVar(&protectStr, "protect", "", "comma-separated node ids that must not be removed")
	cmd.Flags().IntVar(&iterations, "iterations", optimize.DefaultMaxIterations, "iteration budget")
	cmd.Flags().IntVar(&radius, "radius", optimize.DefaultSearchRadius, "candidate search radius in hops")
	cmd.Flags().Float64Var(&cons.MinLife, "min-life", c.Config.MinLife, "minimum life")
	cmd.Flags().Float64Var(&cons.MinEnergyShield, "min-es", 0, "minimum energy shield")
	cmd.Flags().Float64Var(&cons.MinEHP, "min-ehp", 0, "minimum effective hit pool")
	cmd.Flags().Float64Var(&cons.MinFireRes, "min-fire-res", c.Config.MinResistance, "minimum fire resistance")
	cmd.Flags().Float64Var(&cons.MinColdRes, "min-cold-res", c.Config.MinResistance, "minimum cold resistance")
	cmd.Flags().Float64Var(&cons.MinLightningRes, "min-lightning-res", c.Config.MinResistance, "minimum lightning resistance")
	cmd.Flags().Float64Var(&cons.MinChaosRes, "min-chaos-res", 0, "minimum chaos resistance")
	return cmd
}

func (c *CLI) runOptimize(ctx context.Context, nodeList string, flags allocFlags, goal optimize.Goal, cons optimize.Constraints, opts optimize.Options) error {
	resolved, alloc, err := c.resolveAllocation(ctx, nodeList, flags)
	if err != nil {
		return err
	}

	// Surface invalid save data before searching, with the same error the
	// analyze command would give.
	if _, err := analysis.Analyze(resolved, alloc); err != nil {
		return err
	}

	optimizer := optimize.New(resolved.Tree, optimize.NewEvaluator(optimize.Stats{}))

	start := time.Now()
	res := optimizer.Run(alloc.Nodes, goal, cons, opts)
	c.Logger.Debug("optimizer finished",
		"iterations", res.Iterations,
		"elapsed", time.Since(start).Round(time.Millisecond))

	fmt.Println(StyleTitle.Render(fmt.Sprintf("Optimization (%s)", goal)))
	printKeyValue("Score", fmt.Sprintf("%.1f %s %.1f (%+.1f)", res.ScoreBefore, iconArrow, res.ScoreAfter, res.ScoreDelta()))
	printKeyValue("Net points", fmt.Sprintf("%+d", res.NetPointChange()))

	if len(res.Added) == 0 && len(res.Removed) == 0 {
		printInfo("No improving changes found")
		return nil
	}
	if len(res.Added) > 0 {
		printDetail("Add:    %s", styleAdded.Render(joinIDs(res.Added)))
	}
	if len(res.Removed) > 0 {
		printDetail("Remove: %s", styleRemoved.Render(joinIDs(res.Removed)))
	}

	if res.ConstraintsMet {
		printSuccess("All constraints satisfied")
	} else {
		printWarning("Constraints not fully satisfied")
	}
	return nil
}

func parseProtected(s string) (map[int]bool, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	set, err := analysis.ParseAllocated(s, 1, 0, 0)
	if err != nil {
		return nil, err
	}
	return set.Nodes, nil
}

func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return strings.Join(parts, ", ")
}
