package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/chartkit/pkg/chart"
	"github.com/matzehuels/chartkit/pkg/interaction"
	"github.com/matzehuels/chartkit/pkg/series"
)

// frameInterval paces animation frames.
const frameInterval = time.Second / 60

// Plot styles
var (
	plotAxisStyle      = lipgloss.NewStyle().Foreground(colorDim)
	plotCrosshairStyle = lipgloss.NewStyle().Foreground(colorGray)
	plotDimStyle       = lipgloss.NewStyle().Foreground(colorDim)

	// seriesPalette colors series that declare no color of their own.
	seriesPalette = []lipgloss.Color{colorCyan, colorYellow, colorGreen, colorBlue, colorRed}
	seriesGlyphs  = []rune{'●', '◆', '▲', '■', '✚'}
)

// =============================================================================
// ChartModel - Interactive line chart
// =============================================================================

// frameMsg asks the model to advance its animation.
type frameMsg time.Time

func nextFrame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// ChartModel is the bubbletea model that plots a line chart in cells and
// drives the chart instance with key and mouse events.
type ChartModel struct {
	Instance *chart.Instance
	Title    string
	Width    int
	Height   int

	lastFrame time.Time
}

// NewChartModel creates a chart model for an instance that already holds
// geometry.
func NewChartModel(inst *chart.Instance, title string) ChartModel {
	return ChartModel{Instance: inst, Title: title, Width: 80, Height: 24}
}

func (m ChartModel) Init() tea.Cmd {
	if m.Instance.Animating() {
		return nextFrame()
	}
	return nil
}

func (m ChartModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			m.step(-1)
		case "right", "l":
			m.step(1)
		case "home", "g":
			m.selectIndex(0)
		case "end", "G":
			m.selectIndex(m.length() - 1)
		}
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionMotion {
			break
		}
		if x, ok := m.svgX(msg.X); ok {
			m.Instance.Handle(interaction.Event{Kind: interaction.PointerMove, X: x})
		} else {
			m.Instance.Handle(interaction.Event{Kind: interaction.PointerLeave})
		}
	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
	case frameMsg:
		now := time.Time(msg)
		dt := frameInterval
		if !m.lastFrame.IsZero() {
			dt = now.Sub(m.lastFrame)
		}
		m.lastFrame = now
		if m.Instance.Advance(dt) {
			return m, nextFrame()
		}
		m.lastFrame = time.Time{}
	}
	return m, nil
}

// step moves the selection by d. The first step selects index 0.
func (m ChartModel) step(d int) {
	i, ok := m.Instance.ActiveIndex()
	if !ok {
		i = 0
	} else {
		i += d
	}
	m.selectIndex(i)
}

func (m ChartModel) selectIndex(i int) {
	m.Instance.Handle(interaction.Event{Kind: interaction.Keyboard, Index: i})
}

func (m ChartModel) length() int {
	if g := m.Instance.Geometry(); g != nil {
		return g.Normalized.Length
	}
	return 0
}

// =============================================================================
// Plot Layout
// =============================================================================

// plotArea is the cell layout of the plot.
type plotArea struct {
	axisWidth int // y tick labels plus the axis line
	cols      int
	rows      int
}

const (
	minPlotCols = 10
	minPlotRows = 4

	// chrome is the number of lines around the plot: title, help, blank,
	// x labels and blank.
	chrome = 5
)

func (m ChartModel) area(g *chart.LineGeometry) plotArea {
	labelWidth := 0
	for _, t := range g.YTicks {
		labelWidth = max(labelWidth, lipgloss.Width(t.Label))
	}
	a := plotArea{axisWidth: labelWidth + 1}
	a.cols = max(minPlotCols, m.Width-a.axisWidth-1)
	a.rows = max(minPlotRows, m.Height-chrome-m.tooltipHeight(g))
	return a
}

// tooltipHeight reserves room for a table with one row per series.
func (m ChartModel) tooltipHeight(g *chart.LineGeometry) int {
	return g.Normalized.Count() + 4
}

// col maps a drawable x to a plot column.
func (a plotArea) col(x, drawableWidth float64) int {
	if drawableWidth <= 0 {
		return 0
	}
	c := int(math.Round(x / drawableWidth * float64(a.cols-1)))
	return min(max(c, 0), a.cols-1)
}

// row maps a drawable y to a plot row.
func (a plotArea) row(y, drawableHeight float64) int {
	if drawableHeight <= 0 {
		return a.rows - 1
	}
	r := int(math.Round(y / drawableHeight * float64(a.rows-1)))
	return min(max(r, 0), a.rows-1)
}

// svgX converts a terminal column to the chart's SVG x coordinate. Columns
// outside the plot report false.
func (m ChartModel) svgX(cellX int) (float64, bool) {
	g := m.Instance.Geometry()
	if g == nil || g.EmptyState {
		return 0, false
	}
	a := m.area(g)
	c := cellX - a.axisWidth
	if c < 0 || c >= a.cols {
		return 0, false
	}
	return g.DataStartPosition + float64(c)/float64(a.cols-1)*g.DrawableWidth, true
}

// =============================================================================
// Rendering
// =============================================================================

func (m ChartModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(plotDimStyle.Render("←/→ step  home/end jump  mouse hover  q quit"))
	b.WriteString("\n\n")

	g := m.Instance.Geometry()
	if g == nil || g.EmptyState {
		b.WriteString(plotDimStyle.Render("  No data"))
		b.WriteString("\n")
		return b.String()
	}

	a := m.area(g)
	b.WriteString(m.renderPlot(g, a))
	b.WriteString(m.renderXLabels(g, a))
	b.WriteString("\n\n")
	b.WriteString(m.renderTooltip(g))
	return b.String()
}

type cell struct {
	r     rune
	style lipgloss.Style
}

func (m ChartModel) renderPlot(g *chart.LineGeometry, a plotArea) string {
	grid := make([][]cell, a.rows)
	for r := range grid {
		grid[r] = make([]cell, a.cols)
		for c := range grid[r] {
			grid[r][c] = cell{r: ' ', style: plotDimStyle}
		}
	}

	if x, ok := m.Instance.CrosshairX(); ok {
		c := a.col(x+g.CrosshairWidth/2, g.DrawableWidth)
		for r := range grid {
			grid[r][c] = cell{r: '│', style: plotCrosshairStyle}
		}
	}

	for pos, coords := range m.Instance.Coordinates() {
		orig := g.Normalized.OriginalIndex(pos)
		style := seriesStyle(g.Normalized.Series()[orig], orig)
		glyph := seriesGlyphs[orig%len(seriesGlyphs)]
		for _, p := range coords {
			if p.IsNull {
				continue
			}
			grid[a.row(p.Y, g.DrawableHeight)][a.col(p.X, g.DrawableWidth)] = cell{r: glyph, style: style}
		}
	}

	tickLabels := make([]string, a.rows)
	for _, t := range g.YTicks {
		tickLabels[a.row(t.Offset, g.DrawableHeight)] = t.Label
	}

	var b strings.Builder
	labelWidth := a.axisWidth - 1
	for r, line := range grid {
		b.WriteString(plotAxisStyle.Render(fmt.Sprintf("%*s", labelWidth, tickLabels[r])))
		if tickLabels[r] != "" {
			b.WriteString(plotAxisStyle.Render("┤"))
		} else {
			b.WriteString(plotAxisStyle.Render("│"))
		}
		for _, c := range line {
			b.WriteString(c.style.Render(string(c.r)))
		}
		b.WriteString("\n")
	}
	b.WriteString(strings.Repeat(" ", labelWidth))
	b.WriteString(plotAxisStyle.Render("└" + strings.Repeat("─", a.cols)))
	b.WriteString("\n")
	return b.String()
}

// renderXLabels prints the visible x labels centred under their index,
// skipping any that would overlap the previous one.
func (m ChartModel) renderXLabels(g *chart.LineGeometry, a plotArea) string {
	if g.XAxis == nil || len(g.XAxis.Visible) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", a.axisWidth))
	used := 0
	for _, i := range g.XAxis.Visible {
		if i >= len(g.XLabels) {
			continue
		}
		label := g.XLabels[i]
		w := lipgloss.Width(label)
		start := max(0, a.col(g.XScale.Map(float64(i)), g.DrawableWidth)-w/2)
		start = min(start, max(0, a.cols-w))
		if start < used {
			continue
		}
		b.WriteString(strings.Repeat(" ", start-used))
		b.WriteString(label)
		used = start + w + 1
		b.WriteString(" ")
	}
	return plotDimStyle.Render(strings.TrimRight(b.String(), " "))
}

func (m ChartModel) renderTooltip(g *chart.LineGeometry) string {
	tip, ok := m.Instance.Tooltip()
	if !ok {
		return plotDimStyle.Render("  Nothing selected")
	}

	rows := make([][]string, len(tip.Entries))
	for i, e := range tip.Entries {
		rows[i] = []string{
			string(seriesGlyphs[e.Series%len(seriesGlyphs)]),
			e.Name,
			e.Label,
			strconv.FormatFloat(e.Value, 'f', -1, 64),
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Series", "Key", "Value").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row < 0 || row >= len(tip.Entries) {
				return lipgloss.NewStyle()
			}
			e := tip.Entries[row]
			switch col {
			case 0:
				return seriesStyle(g.Normalized.Series()[e.Series], e.Series)
			case 3:
				return StyleNumber
			}
			return StyleValue
		})

	header := fmt.Sprintf("  index %d  %s", tip.Position.ActiveIndex, StyleDim.Render(string(tip.Position.Placement)))
	return StyleHighlight.Render(header) + "\n" + t.Render()
}

// seriesStyle colors series i, preferring its declared color.
func seriesStyle(s series.Series, i int) lipgloss.Style {
	if s.Color != "" {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(s.Color))
	}
	return lipgloss.NewStyle().Foreground(seriesPalette[i%len(seriesPalette)])
}
