package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	cerrors "github.com/matzehuels/chartkit/pkg/errors"
	pkgio "github.com/matzehuels/chartkit/pkg/io"
	"github.com/matzehuels/chartkit/pkg/pipeline"
)

// layoutJob is one definition file of a layout run.
type layoutJob struct {
	input  string
	output string
	result *pipeline.Result
	err    error
}

// layoutCommand creates the layout command for computing chart geometry.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		refresh bool
		jobs    int
	)

	cmd := &cobra.Command{
		Use:   "layout [chart.toml|chart.json]...",
		Short: "Compute chart geometry from definition files",
		Long: `Compute chart geometry from definition files.

The layout command reads line or bar chart definitions (TOML or JSON, chosen by
file extension) and writes a <input>.geometry.json file next to each one holding
ticks, labels, margins, paths and bars.

With several inputs, -o names a directory. Files are processed concurrently;
one invalid definition does not stop the others.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args, output, noCache, refresh, jobs)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, or directory for several inputs (default: <input>.geometry.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even when cached")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.NumCPU(), "number of definitions computed concurrently")

	return cmd
}

// runLayout computes every input and writes the outputs.
func (c *CLI) runLayout(ctx context.Context, inputs []string, output string, noCache, refresh bool, jobs int) error {
	batch := len(inputs) > 1
	results := make([]layoutJob, len(inputs))
	for i, in := range inputs {
		results[i] = layoutJob{input: in, output: layoutOutputPath(in, output, batch)}
	}
	if err := checkOutputCollisions(results); err != nil {
		return err
	}

	if batch && output != "" {
		if err := os.MkdirAll(output, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	msg := "Computing geometry..."
	if batch {
		msg = fmt.Sprintf("Computing geometry for %d charts...", len(inputs))
	}
	spin := newSpinner(ctx, os.Stderr, msg, len(inputs))
	spin.start()
	prog := newProgress(c.Logger)

	g, gctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for i := range results {
		job := &results[i]
		g.Go(func() error {
			job.result, job.err = layoutFile(gctx, runner, job.input, job.output, refresh)
			spin.advance()
			if errors.Is(job.err, context.Canceled) {
				return job.err
			}
			return nil
		})
	}
	err = g.Wait()
	spin.stop()
	if err != nil {
		return err
	}
	if spin.cancelled() {
		return ctx.Err()
	}

	var failed int
	for _, job := range results {
		if job.err != nil {
			failed++
			printError("%s: %s", job.input, cerrors.UserMessage(job.err))
			c.Logger.Debug("layout failed", "input", job.input, "error", job.err)
			continue
		}
		printSuccess("%s", job.input)
		printFile(job.output)
		printStats(job.result.Stats.SeriesCount, job.result.Stats.PointCount, job.result.CacheHit)
	}
	if batch {
		prog.done(fmt.Sprintf("Computed %d of %d charts", len(inputs)-failed, len(inputs)))
	}

	if failed > 0 {
		if failed == 1 && !batch {
			return results[0].err
		}
		return fmt.Errorf("%d of %d charts failed", failed, len(inputs))
	}

	if !batch && results[0].result.Geometry.Kind == pkgio.KindLine {
		printNewline()
		printNextStep("Explore", "chartkit explore "+inputs[0])
	}
	return nil
}

// layoutFile computes one definition file and writes its geometry.
func layoutFile(ctx context.Context, runner *pipeline.Runner, input, output string, refresh bool) (*pipeline.Result, error) {
	format, err := pkgio.FormatFor(input)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(input)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, cerrors.Wrap(cerrors.ErrCodeFileNotFound, err, "chart definition %s", input)
		}
		return nil, fmt.Errorf("read %s: %w", input, err)
	}

	result, err := runner.Execute(ctx, pipeline.Options{
		Definition: data,
		Format:     format,
		Name:       input,
		Refresh:    refresh,
	})
	if err != nil {
		return nil, err
	}

	if err := os.WriteFile(output, result.JSON, 0o644); err != nil {
		return nil, fmt.Errorf("write output %s: %w", output, err)
	}
	return result, nil
}

// layoutOutputPath returns where the geometry of input is written. In a
// batch, output is a directory.
func layoutOutputPath(input, output string, batch bool) string {
	name := strings.TrimSuffix(input, filepath.Ext(input)) + ".geometry.json"
	switch {
	case output == "":
		return name
	case batch:
		return filepath.Join(output, filepath.Base(name))
	default:
		return output
	}
}

// checkOutputCollisions rejects a batch in which two inputs would write the
// same geometry file.
func checkOutputCollisions(jobs []layoutJob) error {
	seen := make(map[string]string, len(jobs))
	for _, job := range jobs {
		key := filepath.Clean(job.output)
		if prev, ok := seen[key]; ok {
			return cerrors.New(cerrors.ErrCodeInvalidInput,
				"%s and %s both write %s; rename one of them or drop --output", prev, job.input, job.output)
		}
		seen[key] = job.input
	}
	return nil
}
