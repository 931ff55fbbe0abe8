package cli

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/matzehuels/topicmap/pkg/errors"
	"github.com/matzehuels/topicmap/pkg/index"
	"github.com/matzehuels/topicmap/pkg/render/mapview"
	"github.com/matzehuels/topicmap/pkg/render/page"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// browseCommand creates the browse command, a terminal navigator.
func (c *CLI) browseCommand() *cobra.Command {
	var start string

	cmd := &cobra.Command{
		Use:   "browse [tree]",
		Short: "Navigate the tree interactively in the terminal",
		Long: `Navigate the tree one focused topic at a time, as on the web page:
the parent above, the children below, the breadcrumb on top.

Keys: ↑/↓ select a child, ⏎/→ focus it, ←/⌫ go to the parent,
g go to the root, q quit.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			spinner := newSpinnerWithContext(ctx, "Loading tree...")
			spinner.Start()
			snap, err := runner.Load(ctx)
			spinner.Stop()
			if err != nil {
				return err
			}

			m, err := newBrowseModel(snap.Index, start)
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			return err
		},
	}

	cmd.Flags().StringVar(&start, "id", "", "topic to start at (default root)")
	return cmd
}

// =============================================================================
// textCanvas - mapview.Canvas for the terminal
// =============================================================================

// textCanvas records what a mapview.Renderer draws, grouped by role, so
// the terminal view shows exactly the neighbourhood the SVG map shows.
type textCanvas struct {
	parent   *mapview.Box
	focus    mapview.Box
	children []mapview.Box
	previews map[string]int // child id -> number of preview boxes
	curves   int
}

func (c *textCanvas) Clear() {
	*c = textCanvas{previews: map[string]int{}}
}

func (c *textCanvas) DrawCurve(mapview.Curve) { c.curves++ }

func (c *textCanvas) DrawBox(b mapview.Box) {
	switch b.Role {
	case mapview.RoleParent:
		c.parent = &b
	case mapview.RoleFocus:
		c.focus = b
	case mapview.RoleChild:
		c.children = append(c.children, b)
	case mapview.RolePreview:
		c.previews[b.Owner]++
	}
}

// DrawLabel is a no-op; labels are printed from the boxes.
func (c *textCanvas) DrawLabel(mapview.Box) {}

// sortChildren orders children top to bottom as laid out on the map.
func (c *textCanvas) sortChildren() {
	slices.SortStableFunc(c.children, func(a, b mapview.Box) int {
		return cmp.Compare(a.CY, b.CY)
	})
}

// =============================================================================
// browseModel - bubbletea navigator
// =============================================================================

type browseModel struct {
	idx      *index.Index
	renderer *mapview.Renderer
	canvas   *textCanvas

	Focus  string
	Cursor int
	Offset int
	Width  int
	Height int
}

// newBrowseModel starts at id, or at the root when id is empty.
func newBrowseModel(idx *index.Index, id string) (browseModel, error) {
	if id == "" {
		root, ok := idx.Root()
		if !ok {
			return browseModel{}, errors.New(errors.ErrCodeInvalidInput, "tree is empty")
		}
		id = root.ID
	}
	m := browseModel{
		idx:      idx,
		renderer: mapview.NewRenderer(idx),
		canvas:   &textCanvas{},
		Width:    80,
		Height:   15,
	}
	if err := m.refocus(id); err != nil {
		return browseModel{}, err
	}
	return m, nil
}

// refocus redraws the canvas around id. On failure the model is unchanged.
func (m *browseModel) refocus(id string) error {
	next := &textCanvas{}
	if _, err := m.renderer.Render(id, next); err != nil {
		return err
	}
	next.sortChildren()
	m.canvas = next
	m.Focus = id
	m.Cursor = 0
	m.Offset = 0
	return nil
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.canvas.children)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter", "right", "l":
			if m.Cursor < len(m.canvas.children) {
				_ = m.refocus(m.canvas.children[m.Cursor].ID)
			}
		case "left", "h", "backspace":
			if p := m.canvas.parent; p != nil {
				_ = m.refocus(p.ID)
			}
		case "g", "home":
			if root, ok := m.idx.Root(); ok {
				_ = m.refocus(root.ID)
			}
		}
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = max(msg.Height-10, 5)
	}
	return m, nil
}

func (m browseModel) View() string {
	var b strings.Builder
	width := max(m.Width-4, 20)

	b.WriteString(StyleTitle.Render("Topic map"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ select  ⏎ open  ← parent  g root  q quit"))
	b.WriteString("\n\n")

	crumbs := page.Breadcrumb(m.idx, m.Focus, "")
	labels := make([]string, len(crumbs))
	for i, cr := range crumbs {
		labels[i] = cr.Label
	}
	b.WriteString(listDimStyle.Render(runewidth.Truncate(strings.Join(labels, " › "), width, "…")))
	b.WriteString("\n\n")

	if p := m.canvas.parent; p != nil {
		b.WriteString(listDimStyle.Render("  ↑ " + runewidth.Truncate(p.Label, width-4, "…")))
		b.WriteString("\n")
	}
	focus := m.canvas.focus
	b.WriteString(StyleHighlight.Bold(true).Render("  ● " + runewidth.Truncate(focus.Label, width-4, "…")))
	b.WriteString("\n")
	if def := firstLine(focus.Definition); def != "" {
		b.WriteString(StyleDim.Render("    " + runewidth.Truncate(def, width-4, "…")))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	children := m.canvas.children
	if len(children) == 0 {
		b.WriteString(listDimStyle.Render("  no children"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(children))
	for i := m.Offset; i < end; i++ {
		ch := children[i]
		cursor := "  "
		style := listNormalStyle
		if i == m.Cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}
		line := cursor + runewidth.Truncate(ch.Label, width-12, "…")
		if n := m.canvas.previews[ch.ID]; n > 0 {
			line += listDimStyle.Render(fmt.Sprintf(" +%d", n))
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(children))))
	return b.String()
}
