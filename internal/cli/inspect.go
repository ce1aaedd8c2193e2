package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/nagyist/rover-android/pkg/layout"
	"github.com/nagyist/rover-android/pkg/pipeline"
	"github.com/nagyist/rover-android/pkg/render"
)

// inspectCommand creates the interactive placement browser.
func (c *CLI) inspectCommand() *cobra.Command {
	var flags layoutFlags

	cmd := &cobra.Command{
		Use:   "inspect [document]",
		Short: "Browse the measured boxes of a document",
		Long: `Measure a screen document and browse every box in paint order.

The table lists each box with its absolute frame. The panel below it shows
the selected box's paint attributes, scroll content and accessibility
label.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), args[0], &flags)
		},
	}
	flags.register(cmd.Flags())

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, input string, flags *layoutFlags) error {
	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := c.options(input, flags)
	doc, err := pipeline.Load(ctx, opts)
	if err != nil {
		return err
	}
	p, err := runner.Layout(ctx, doc, opts)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}

	_, err = tea.NewProgram(NewInspectModel(p), tea.WithContext(ctx), tea.WithAltScreen()).Run()
	return err
}

// Inspect styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorBright)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorFaint)
	listErrorStyle    = lipgloss.NewStyle().Foreground(colorFail)
)

// =============================================================================
// InspectModel - Interactive placement browser
// =============================================================================

// InspectModel is the bubbletea model for browsing a placement tree.
type InspectModel struct {
	Summary string
	Boxes   []layout.Box
	Cursor  int
	Height  int
	Offset  int
}

// NewInspectModel flattens p into a browsable model.
func NewInspectModel(p *layout.Placement) InspectModel {
	return InspectModel{
		Summary: render.Summary(p),
		Boxes:   layout.Flatten(p),
		Height:  15,
	}
}

func (m InspectModel) Init() tea.Cmd {
	return nil
}

func (m InspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "pgup":
			m.move(-m.Height)
		case "pgdown", " ":
			m.move(m.Height)
		case "home", "g":
			m.move(-len(m.Boxes))
		case "end", "G":
			m.move(len(m.Boxes))
		}
	case tea.WindowSizeMsg:
		// Leave room for the title, table borders and the detail panel.
		m.Height = max(msg.Height-16, 5)
		m.move(0)
	}
	return m, nil
}

// move shifts the cursor by delta, clamped to the box list, and scrolls the
// visible window to keep it in view.
func (m *InspectModel) move(delta int) {
	if len(m.Boxes) == 0 {
		return
	}
	m.Cursor = min(max(m.Cursor+delta, 0), len(m.Boxes)-1)
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m InspectModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Placement"))
	b.WriteString(" " + listDimStyle.Render(m.Summary))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  pgup/pgdn page  g/G first/last  q quit"))
	b.WriteString("\n\n")

	if len(m.Boxes) == 0 {
		b.WriteString(listDimStyle.Render("  no boxes"))
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Boxes))
	rows := make([][]string, 0, end-m.Offset)
	for i := m.Offset; i < end; i++ {
		box := m.Boxes[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		name := strings.Repeat("  ", box.Depth) + box.Placement.Kind
		rows = append(rows, []string{
			cursor,
			name,
			box.Placement.ID,
			fmt.Sprintf("%d,%d", box.Rect.X, box.Rect.Y),
			fmt.Sprintf("%dx%d", box.Rect.Width, box.Rect.Height),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorMuted).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorFaint)).
		Headers("", "Kind", "ID", "Origin", "Size").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Boxes) {
				return lipgloss.NewStyle()
			}
			switch {
			case idx == m.Cursor:
				return listSelectedStyle
			case m.Boxes[idx].Placement.Error != "":
				return listErrorStyle
			case m.Boxes[idx].Clip != nil:
				return listDimStyle
			}
			return listNormalStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Boxes))))
	b.WriteString("\n\n")
	b.WriteString(boxDetails(m.Boxes[m.Cursor]))

	return b.String()
}

// boxDetails describes one box as key/value lines.
func boxDetails(box layout.Box) string {
	pl := box.Placement

	var b strings.Builder
	line := func(key, value string) {
		b.WriteString("  " + styleKey.Render(key) + " " + StyleValue.Render(value) + "\n")
	}

	line("kind", pl.Kind)
	if pl.ID != "" {
		line("id", pl.ID)
	}
	line("frame", fmt.Sprintf("%d,%d %dx%d", box.Rect.X, box.Rect.Y, box.Rect.Width, box.Rect.Height))
	line("paint order", fmt.Sprintf("%d (depth %d)", box.Z, box.Depth))
	if box.Clip != nil {
		c := box.Clip
		line("clip", fmt.Sprintf("%d,%d %dx%d", c.X, c.Y, c.Width, c.Height))
	}
	if pl.Fill != "" {
		line("fill", pl.Fill)
	}
	if pl.CornerRadius > 0 {
		line("radius", fmt.Sprint(pl.CornerRadius))
	}
	if len(pl.Lines) > 0 {
		line("text", strings.Join(pl.Lines, " ⏎ "))
	}
	if pl.Source != "" {
		line("source", pl.Source)
	}
	if pl.Scroll != nil {
		line("scroll", fmt.Sprintf("%s, content %s", pl.Scroll.Axis, pl.Scroll.ContentSize))
	}
	if s := pl.Semantics; s != nil {
		label := s.Label
		if s.Header {
			label += " (header)"
		}
		if s.Hidden {
			label += " (hidden)"
		}
		line("a11y", strings.TrimSpace(label))
	}
	if pl.Error != "" {
		b.WriteString("  " + styleKey.Render("error") + " " + listErrorStyle.Render(pl.Error) + "\n")
	}
	return b.String()
}
