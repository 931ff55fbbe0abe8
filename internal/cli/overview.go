package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/topicmap/pkg/errors"
	"github.com/matzehuels/topicmap/pkg/pipeline"
	"github.com/matzehuels/topicmap/pkg/render/overview"
)

// overviewCommand creates the overview command for the whole-tree diagram.
func (c *CLI) overviewCommand() *cobra.Command {
	var (
		output  string
		refresh bool
		opts    overview.Options
	)

	cmd := &cobra.Command{
		Use:   "overview [tree]",
		Short: "Render the whole tree as a Graphviz SVG",
		Long: `Render every topic as a node-link diagram laid out by Graphviz.
Each node links to its topic page.`,
		Example: `  topicmap overview topics.json -o overview.svg --direction TB --depth 3`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Direction = strings.ToUpper(opts.Direction)
			if opts.Direction != overview.DirectionLR && opts.Direction != overview.DirectionTB {
				return errors.New(errors.ErrCodeInvalidInput, "unknown direction %q (want LR or TB)", opts.Direction)
			}
			if opts.MaxDepth < 0 {
				return errors.New(errors.ErrCodeInvalidInput, "--depth cannot be negative")
			}

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			spec, err := treeSource(args, cfg)
			if err != nil {
				return err
			}
			if opts.LinkBase == "" {
				opts.LinkBase = pageOptions(cfg.Render).LinkBase
			}

			ctx := withLogger(cmd.Context(), c.Logger)
			runner, err := c.newRunner(ctx, cfg, spec)
			if err != nil {
				return err
			}
			defer runner.Close()

			spinner := newSpinnerWithContext(ctx, "Laying out overview...")
			if output != "" && output != "-" {
				spinner.Start()
			}
			res, err := runner.RenderOverview(ctx, pipeline.OverviewOptions{Overview: opts, Refresh: refresh})
			spinner.Stop()
			if err != nil {
				return err
			}
			return c.writeOutput(output, res.Body)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&opts.Direction, "direction", overview.DirectionLR, "layout direction: LR or TB")
	cmd.Flags().IntVar(&opts.MaxDepth, "depth", 0, "deepest level to draw (0 = all)")
	cmd.Flags().StringVar(&opts.Highlight, "highlight", "", "topic id to highlight")
	cmd.Flags().StringVar(&opts.LinkBase, "link-base", "", "page that nodes link to")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "re-render even when cached")

	return cmd
}
