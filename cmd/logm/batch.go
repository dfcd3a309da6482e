package main

import (
	"fmt"
	"runtime"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newBatchCmd(a *app) *cobra.Command {
	var workers int
	cmd := &cobra.Command{
		Use:   "batch [file]",
		Short: "Evaluate a YAML stream of jobs in parallel",
		Long: `Each document of the stream is a job with an "op" of log, exp, distance
or interp. Results are written in input order, one document per job;
failing jobs carry an "error" field and make the command exit non-zero.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := openInput(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			defer in.Close()

			docs, err := readDocuments(in)
			if err != nil {
				return fmt.Errorf("batch: %w", err)
			}

			start := time.Now()
			results, err := a.runBatch(cmd, docs, workers)
			if err != nil {
				return err
			}
			if err := writeResults(cmd.OutOrStdout(), results...); err != nil {
				return err
			}

			failed := 0
			for _, r := range results {
				if r.Error != "" {
					failed++
				}
			}
			a.log.Info().
				Int("jobs", len(results)).
				Int("failed", failed).
				Int("workers", workers).
				Dur("elapsed", time.Since(start)).
				Msg("batch complete")
			if failed > 0 {
				return fmt.Errorf("batch: %d of %d jobs failed", failed, len(results))
			}

			return nil
		},
	}
	cmd.Flags().IntVarP(&workers, "workers", "w", runtime.GOMAXPROCS(0), "Maximum concurrent jobs")

	return cmd
}

// runBatch evaluates docs with at most workers jobs in flight. Results keep
// the input order; only cancellation aborts the batch.
func (a *app) runBatch(cmd *cobra.Command, docs []document, workers int) ([]result, error) {
	if workers < 1 {
		return nil, fmt.Errorf("--workers: must be positive, got %d", workers)
	}

	results := make([]result, len(docs))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(workers)
	for i, d := range docs {
		i, d := i, d // per-iteration copies: go.mod targets Go 1.21 loop semantics
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = a.evaluate(d.Op, d)
			if results[i].Error != "" {
				a.log.Warn().Int("job", i).Str("op", d.Op).Str("error", results[i].Error).Msg("job failed")
			}

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
