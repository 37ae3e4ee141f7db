package cli

import (
	"fmt"
	"os"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/statviz/pkg/chart"
	"github.com/matzehuels/statviz/pkg/measure"
	"github.com/matzehuels/statviz/pkg/pipeline"
	"github.com/matzehuels/statviz/pkg/render/sink"
)

const (
	previewStep    = 10
	previewBigStep = 100
	previewMin     = 100
)

var (
	previewKeyStyle   = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	previewErrorStyle = lipgloss.NewStyle().Foreground(colorRed)
	previewHeadStyle  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// previewCommand creates the interactive preview command.
func (c *CLI) previewCommand() *cobra.Command {
	var width float64

	cmd := &cobra.Command{
		Use:   "preview [spec.toml]",
		Short: "Resize a chart interactively and inspect its layout",
		Long: `Preview lays a chart out for a container width and shows the resulting
breakpoint, bounds, responsive props and axes. The arrow keys change the width
and every change computes a fresh layout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := newPreviewModel(args[0], width)
			if err != nil {
				return err
			}
			final, err := tea.NewProgram(m, tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return err
			}
			if pm, ok := final.(previewModel); ok && pm.saved != "" {
				printSuccess(cmd.OutOrStdout(), "Saved %s", pm.saved)
			}
			return nil
		},
	}
	cmd.Flags().Float64VarP(&width, "width", "w", pipeline.DefaultWidth, "initial container width in pixels")
	return cmd
}

// previewModel is the bubbletea model of the preview command.
type previewModel struct {
	path   string
	spec   *chart.Spec
	width  float64
	layout *chart.Layout
	err    error
	saved  string
	status string
}

func newPreviewModel(path string, width float64) (previewModel, error) {
	m := previewModel{path: path, width: max(width, previewMin)}
	if err := m.load(); err != nil {
		return m, err
	}
	m.relayout()
	return m, nil
}

// load decodes the spec file and its GeoJSON.
func (m *previewModel) load() error {
	spec, err := chart.DecodeFile(m.path)
	if err != nil {
		return err
	}
	m.spec = spec
	return nil
}

// relayout computes a fresh layout for the current width.
func (m *previewModel) relayout() {
	m.layout, m.err = chart.Compute(m.spec, measure.Width(m.width))
}

func (m previewModel) resize(delta float64) previewModel {
	w := min(max(m.width+delta, previewMin), pipeline.MaxWidth)
	if w == m.width {
		return m
	}
	m.width = w
	m.status = ""
	m.relayout()
	return m
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "left", "h":
		return m.resize(-previewStep), nil
	case "right", "l":
		return m.resize(previewStep), nil
	case "down", "j":
		return m.resize(-previewBigStep), nil
	case "up", "k":
		return m.resize(previewBigStep), nil
	case "r":
		if err := m.load(); err != nil {
			m.err = err
			return m, nil
		}
		m.relayout()
		m.status = "reloaded " + m.path
	case "s":
		if m.layout == nil {
			return m, nil
		}
		path := fmt.Sprintf("%s-%g.svg", strings.TrimSuffix(m.path, ".toml"), m.width)
		if err := os.WriteFile(path, sink.RenderSVG(m.layout), 0o644); err != nil {
			m.err = err
			return m, nil
		}
		m.saved = path
		m.status = "saved " + path
	}
	return m, nil
}

func (m previewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Preview " + m.spec.Name))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("←/→ ±10px  ↑/↓ ±100px  r reload  s save svg  q quit"))
	b.WriteString("\n\n")

	line := func(key, value string) {
		b.WriteString(previewKeyStyle.Render(key) + " " + StyleValue.Render(value) + "\n")
	}
	line("width", fmt.Sprintf("%gpx", m.width))
	if m.err != nil {
		b.WriteString("\n" + previewErrorStyle.Render(iconError+" "+m.err.Error()) + "\n")
		return b.String()
	}

	l := m.layout
	line("type", l.Type)
	line("breakpoint", StyleHighlight.Render(l.Breakpoint))
	line("bounds", fmt.Sprintf("%g × %g (inner %g × %g)", l.Bounds.Width, l.Bounds.Height, l.Bounds.InnerWidth, l.Bounds.InnerHeight))
	p := l.Bounds.Padding
	line("padding", fmt.Sprintf("%g %g %g %g", p.Top, p.Right, p.Bottom, p.Left))
	line("marks", markSummary(l))
	for _, a := range l.Axes {
		line("axis "+a.Name, strings.Join(a.VisibleLabels(), "  "))
	}

	b.WriteString("\n")
	b.WriteString(propsTable(l).Render())
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(StyleSuccess.Render(iconSuccess+" "+m.status) + "\n")
	}
	return b.String()
}

// markSummary counts the marks of a layout.
func markSummary(l *chart.Layout) string {
	var parts []string
	add := func(n int, what string) {
		if n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, what))
		}
	}
	add(len(l.Bars), "bars")
	add(len(l.Lines), "lines")
	add(len(l.Dots), "dots")
	add(len(l.Slices), "slices")
	if l.Map != nil {
		add(len(l.Map.Areas), "areas")
	}
	add(len(l.Tooltips), "tooltips")
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ", ")
}

// propsTable lists the resolved responsive props.
func propsTable(l *chart.Layout) *table.Table {
	names := make([]string, 0, len(l.Props))
	for name := range l.Props {
		names = append(names, name)
	}
	slices.Sort(names)

	rows := make([][]string, 0, len(names))
	for _, name := range names {
		rows = append(rows, []string{name, fmt.Sprint(l.Props[name])})
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Prop", "Value").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return previewHeadStyle
			}
			if col == 1 {
				return lipgloss.NewStyle().Foreground(colorCyan)
			}
			return lipgloss.NewStyle()
		})
}
