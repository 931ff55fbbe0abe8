package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/topicmap/pkg/render/overview"
	"github.com/matzehuels/topicmap/pkg/server"
	"github.com/matzehuels/topicmap/pkg/source"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr  string
	watch bool
}

// serveCommand creates the serve command, the HTTP front end.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve [tree]",
		Short: "Serve topic pages over HTTP",
		Long: `Serve topic pages, maps and the overview for one tree.

The tree is a local JSON or YAML file, an http(s) URL, or a
mongodb://host/db?collection=trees#name URI. When omitted, the source
from the config file is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = opts.addr
			}
			if cmd.Flags().Changed("watch") {
				cfg.Watch = opts.watch
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

			// A failed first load is not fatal; pages report it and the
			// next request retries.
			if snap, err := runner.Load(ctx); err == nil {
				c.Logger.Info("tree ready", "source", snap.Source, "topics", snap.Index.Len())
			}

			if cfg.Watch {
				if f, ok := runner.Source.(*source.File); ok {
					go func() {
						err := f.Watch(ctx, func() {
							c.Logger.Info("tree changed, reloading", "path", f.Path)
							runner.Invalidate()
						})
						if err != nil {
							c.Logger.Warn("watch stopped", "err", err)
						}
					}()
				} else {
					c.Logger.Warn("watch only applies to file sources", "source", spec)
				}
			}

			pageOpts := pageOptions(cfg.Render)
			srv := server.New(runner, c.Logger, server.Options{
				Page:     pageOpts,
				Overview: overview.Options{LinkBase: pageOpts.LinkBase},
			})
			return srv.Run(ctx, cfg.Server)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "reload the tree when the file changes")

	return cmd
}
