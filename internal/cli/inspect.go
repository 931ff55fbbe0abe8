package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/matzehuels/topicmap/pkg/errors"
	"github.com/matzehuels/topicmap/pkg/index"
	"github.com/matzehuels/topicmap/pkg/render/page"
)

const (
	definitionWidth = 56 // cells of definition shown per child row
	maxDuplicates   = 5  // duplicate ids listed before eliding
)

// inspectCommand creates the inspect command for printing index details.
func (c *CLI) inspectCommand() *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "inspect [tree]",
		Short: "Print tree statistics and a topic's neighbourhood",
		Example: `  topicmap inspect topics.json
  topicmap inspect topics.json --id weaving`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if id != "" {
				if err := errors.ValidateTopicID(id); err != nil {
					return err
				}
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

			snap, err := runner.Load(ctx)
			if err != nil {
				return err
			}
			writeStats(c.Out, snap.Source, snap.Index)
			if id == "" {
				return nil
			}
			return writeTopic(c.Out, snap.Index, id)
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "topic to describe")
	return cmd
}

// writeStats prints the summary counts of idx.
func writeStats(w io.Writer, source string, idx *index.Index) {
	st := idx.Stats()
	fmt.Fprintln(w, StyleTitle.Render("Tree")+" "+StyleDim.Render(source))
	kv := func(k string, v int) {
		fmt.Fprintln(w, keyStyle.Render(k)+" "+StyleNumber.Render(fmt.Sprint(v)))
	}
	kv("Topics", st.Topics)
	kv("Leaves", st.Leaves)
	kv("Max depth", st.MaxDepth)
	kv("Max fanout", st.MaxFanout)
	kv("Duplicates", st.Duplicates)

	if dups := idx.Duplicates(); len(dups) > 0 {
		shown := dups
		if len(shown) > maxDuplicates {
			shown = shown[:maxDuplicates]
		}
		msg := "duplicate ids, last definition wins: " + strings.Join(shown, ", ")
		if len(dups) > len(shown) {
			msg += fmt.Sprintf(" (+%d more)", len(dups)-len(shown))
		}
		fmt.Fprintln(w, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(msg))
	}
}

// writeTopic prints the breadcrumb, context and children of id.
func writeTopic(w io.Writer, idx *index.Index, id string) error {
	e, ok := idx.Get(id)
	if !ok {
		return errors.New(errors.ErrCodeTopicNotFound, "topic %q not found", id)
	}

	fmt.Fprintln(w)
	crumbs := page.Breadcrumb(idx, id, "")
	parts := make([]string, len(crumbs))
	for i, cr := range crumbs {
		if cr.Current() {
			parts[i] = StyleHighlight.Bold(true).Render(cr.Label)
		} else {
			parts[i] = StyleValue.Render(cr.Label)
		}
	}
	fmt.Fprintln(w, strings.Join(parts, StyleDim.Render(" "+iconInfo+" ")))

	if ctx := e.Context(); !ctx.IsEmpty() {
		if role := strings.TrimSpace(ctx.Role); role != "" {
			fmt.Fprintln(w, keyStyle.Render("Role")+" "+StyleValue.Render(role))
		}
		if def := firstLine(ctx.Definition); def != "" {
			fmt.Fprintln(w, keyStyle.Render("Definition")+" "+StyleValue.Render(def))
		}
		for _, r := range ctx.References {
			if r.URL == "" {
				continue
			}
			fmt.Fprintln(w, keyStyle.Render("Reference")+" "+StyleLink.Render(r.URL))
		}
		for _, b := range ctx.Books {
			if b.Title == "" {
				continue
			}
			fmt.Fprintln(w, keyStyle.Render("Book")+" "+StyleValue.Render(b.Title))
		}
	}

	children := idx.Children(id)
	if len(children) == 0 {
		fmt.Fprintln(w, StyleDim.Render("no children"))
		return nil
	}
	fmt.Fprintln(w, childTable(children))
	return nil
}

// childTable renders one row per child: id, label, grandchild count and a
// truncated definition.
func childTable(children []index.Entry) string {
	rows := make([][]string, 0, len(children))
	for _, ch := range children {
		def := ""
		if ctx := ch.Context(); ctx != nil {
			def = runewidth.Truncate(firstLine(ctx.Definition), definitionWidth, "…")
		}
		rows = append(rows, []string{ch.ID, ch.Label, fmt.Sprint(len(ch.Children)), def})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Topic", "Sub", "Definition").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 1:
				return StyleValue
			default:
				return StyleDim
			}
		}).
		Render()
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	return s
}
