package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/topicmap/pkg/errors"
	"github.com/matzehuels/topicmap/pkg/pipeline"
	"github.com/matzehuels/topicmap/pkg/render/page"
)

const (
	formatHTML = "html" // full interactive page
	formatSVG  = "svg"  // bare map
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	id       string    // focused topic
	output   string    // output file; stdout when empty or "-"
	format   string    // html or svg; inferred from output when empty
	zoom     int       // wheel steps, positive zooms in
	pan      []float64 // drag distance dx,dy in frame pixels
	noClamp  bool      // lift the zoom bounds
	title    string    // document title prefix
	refresh  bool      // bypass cached output
	leftText bool      // left-align labels
	fit      bool      // start from the fitted map
}

// renderCommand creates the render command for writing one page or map.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [tree]",
		Short: "Render one topic as an HTML page or SVG map",
		Long: `Render the mind map focused on one topic.

The html format writes the full page with breadcrumb, context panel and
interaction script. The svg format writes only the map. Without --id the
"No topic selected" page is written.`,
		Example: `  topicmap render topics.json --id weaving -o weaving.html
  topicmap render topics.yaml --id weaving --format svg --zoom 3 --pan 120,0`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := resolveFormat(opts.format, opts.output)
			if err != nil {
				return err
			}
			if len(opts.pan) != 0 && len(opts.pan) != 2 {
				return errors.New(errors.ErrCodeInvalidInput, "--pan wants dx,dy")
			}
			if format == formatSVG && opts.id == "" {
				return errors.New(errors.ErrCodeInvalidInput, "--id is required for svg output")
			}

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			spec, err := treeSource(args, cfg)
			if err != nil {
				return err
			}

			ctx := withLogger(cmd.Context(), c.Logger)
			runner, err := c.newRunner(ctx, cfg, spec)
			if err != nil {
				return err
			}
			defer runner.Close()

			prog := newProgress(c.Logger)
			snap, err := runner.Load(ctx)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Indexed %d topics", snap.Index.Len()))

			popts := pipeline.Options{Page: pageOptions(cfg.Render), Refresh: opts.refresh}
			opts.apply(&popts.Page)

			var res pipeline.Result
			if format == formatSVG {
				res, err = runner.RenderMap(ctx, opts.id, popts)
			} else {
				res, err = runner.RenderPage(ctx, opts.id, popts)
			}
			if err != nil {
				return err
			}
			if err := c.writeOutput(opts.output, res.Body); err != nil {
				return err
			}
			if opts.output != "" && opts.output != "-" {
				printStats(snap.Index.Len(), res.CacheHit)
			}
			if res.State == page.StateNotFound {
				return errors.New(errors.ErrCodeTopicNotFound, "topic %q not found", opts.id)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.id, "id", "", "topic to focus")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: html or svg (default from -o, else html)")
	cmd.Flags().IntVar(&opts.zoom, "zoom", 0, "zoom in wheel steps (negative zooms out)")
	cmd.Flags().Float64SliceVar(&opts.pan, "pan", nil, "pan by dx,dy frame pixels")
	cmd.Flags().BoolVar(&opts.noClamp, "no-clamp", false, "allow zooming past the scale bounds")
	cmd.Flags().StringVar(&opts.title, "title", "", "document title prefix")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when cached")
	cmd.Flags().BoolVar(&opts.leftText, "left-align", false, "left-align labels in their boxes")
	cmd.Flags().BoolVar(&opts.fit, "fit", false, "start zoomed to fit the whole map (always on when it overflows)")

	return cmd
}

// apply copies the flag values that override the configured page options.
func (o renderOpts) apply(p *page.Options) {
	p.ZoomSteps = o.zoom
	if len(o.pan) == 2 {
		p.PanX, p.PanY = o.pan[0], o.pan[1]
	}
	if o.noClamp {
		p.NoClamp = true
	}
	if o.title != "" {
		p.Title = o.title
	}
	if o.leftText {
		p.LeftAlignText = true
	}
	if o.fit {
		p.Fit = true
	}
}

// resolveFormat validates format, inferring it from the output extension
// when empty.
func resolveFormat(format, output string) (string, error) {
	if format == "" {
		if strings.EqualFold(filepath.Ext(output), ".svg") {
			return formatSVG, nil
		}
		return formatHTML, nil
	}
	switch f := strings.ToLower(format); f {
	case formatHTML, formatSVG:
		return f, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidInput, "unknown format %q (want html or svg)", format)
	}
}

// writeOutput writes data to path, or to c.Out when path is empty or "-".
func (c *CLI) writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := c.Out.Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	printSuccess("Wrote %s", filepath.Base(path))
	printFile(path)
	return nil
}
