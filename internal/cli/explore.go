package cli

import (
	"context"
	"errors"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chartkit/pkg/animation"
	"github.com/matzehuels/chartkit/pkg/chart"
	cerrors "github.com/matzehuels/chartkit/pkg/errors"
	pkgio "github.com/matzehuels/chartkit/pkg/io"
)

// exploreCommand creates the explore command for browsing a line chart in
// the terminal.
func (c *CLI) exploreCommand() *cobra.Command {
	var noAnimate bool

	cmd := &cobra.Command{
		Use:   "explore [chart.toml|chart.json]",
		Short: "Explore a line chart interactively in the terminal",
		Long: `Explore a line chart interactively in the terminal.

The chart is plotted in terminal cells. Arrow keys step through the data
indices and the mouse selects the index under the pointer; the tooltip table
shows every series at the active index. Charts marked animated = true grow
in from their baseline.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExplore(cmd.Context(), args[0], noAnimate)
		},
	}

	cmd.Flags().BoolVar(&noAnimate, "no-animate", false, "disable the entry animation")

	return cmd
}

// runExplore loads the definition and runs the chart model until the user
// quits.
func (c *CLI) runExplore(ctx context.Context, input string, noAnimate bool) error {
	def, err := pkgio.Import(input)
	if err != nil {
		return err
	}
	if def.Kind != pkgio.KindLine {
		return cerrors.New(cerrors.ErrCodeInvalidChart, "explore supports line charts (%s is a %s chart)", input, def.Kind)
	}
	m, err := newMeasurer(c.measurer)
	if err != nil {
		return err
	}

	inst := chart.NewInstance(animation.WithEnabled(!noAnimate))
	defer inst.Close()
	g, err := inst.Update(def.LineInput(m))
	if err != nil {
		return err
	}
	if def.Animated && !noAnimate && !g.AnimatePoints {
		printWarning("%d points per series is too many to animate; showing the final frame", g.LongestSeriesLength+1)
	}
	c.Logger.Debug("exploring chart", "input", input, "instance", inst.ID)

	title := def.Title
	if title == "" {
		title = filepath.Base(input)
	}

	p := tea.NewProgram(NewChartModel(inst, title),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}
