package cli

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/topicmap/pkg/source"
	"github.com/matzehuels/topicmap/pkg/topic"
)

// convertCommand creates the convert command, which rewrites a tree in
// canonical form with every id filled in.
func (c *CLI) convertCommand() *cobra.Command {
	var (
		output string
		format string
	)

	cmd := &cobra.Command{
		Use:   "convert <tree>",
		Short: "Rewrite a tree as canonical JSON or YAML, or store it in MongoDB",
		Long: `Read a tree from any source (including the legacy .flat.json array),
assign ids to topics that lack one, and write it back in canonical form.

An output of the form mongodb://host/db?collection=trees#name stores the
tree as a document that serve and render can load.`,
		Example: `  topicmap convert legacy.flat.json -o topics.json
  topicmap convert topics.json -f yaml
  topicmap convert topics.yaml -o 'mongodb://localhost:27017/topicmap#textiles'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)

			src, err := source.Open(args[0])
			if err != nil {
				return err
			}
			prog := newProgress(c.Logger)
			root, err := src.Load(ctx)
			if err != nil {
				return err
			}
			root = topic.AssignIDs(root)
			prog.done("Loaded " + src.Name())

			if strings.HasPrefix(output, "mongodb://") || strings.HasPrefix(output, "mongodb+srv://") {
				m, err := source.ParseMongo(output)
				if err != nil {
					return err
				}
				if err := m.Save(ctx, root); err != nil {
					return err
				}
				printSuccess("Stored %s", m.Name())
				return nil
			}

			if format == "" {
				format = topic.FormatFor(output)
				if format == topic.FormatFlat {
					format = topic.FormatJSON
				}
			}
			var buf bytes.Buffer
			if err := topic.Encode(strings.ToLower(format), &buf, root); err != nil {
				return err
			}
			if err := c.writeOutput(output, buf.Bytes()); err != nil {
				return fmt.Errorf("convert: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file or mongodb URI (default stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: json or yaml (default from -o, else json)")

	return cmd
}
