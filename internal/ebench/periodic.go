package ebench

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/gordian-engine/eddy/esched"
	"github.com/spf13/cobra"
)

// PeriodicOptions holds flags for the periodic command.
type PeriodicOptions struct {
	*RootOptions

	Period  time.Duration
	Firings int
	Workers int
}

// NewPeriodicCommand creates the periodic command.
func NewPeriodicCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PeriodicOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "periodic",
		Short: "Measure the firing jitter of a periodic schedule",
		Example: `  eddybench periodic --period 5ms --firings 200
  eddybench periodic --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Period <= 0 {
				return fmt.Errorf("period must be positive (got %s)", opts.Period)
			}
			if opts.Firings < 2 {
				return fmt.Errorf("firings must be at least 2 (got %d)", opts.Firings)
			}
			if opts.Workers < 0 {
				return fmt.Errorf("workers must not be negative (got %d)", opts.Workers)
			}

			log := opts.newLogger(cmd.ErrOrStderr())
			stats, err := RunPeriodic(cmd.Context(), log, opts.Period, opts.Firings, opts.Workers)
			if err != nil {
				return fmt.Errorf("periodic run failed: %w", err)
			}

			if opts.Format == "json" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(stats)
			}
			return stats.writeText(cmd.OutOrStdout())
		},
	}

	cmd.Flags().DurationVar(&opts.Period, "period", 5*time.Millisecond, "period between firings")
	cmd.Flags().IntVar(&opts.Firings, "firings", 50, "number of firings to observe")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "scheduler workers (0 means one per CPU)")

	return cmd
}

// PeriodicStats summarizes the gaps between consecutive firings.
type PeriodicStats struct {
	Period  time.Duration `json:"period"`
	Firings int           `json:"firings"`

	MinGap  time.Duration `json:"min_gap"`
	MeanGap time.Duration `json:"mean_gap"`
	MaxGap  time.Duration `json:"max_gap"`

	// Largest absolute difference between a gap and Period.
	MaxJitter time.Duration `json:"max_jitter"`
}

type periodicState struct {
	n    int
	last time.Time
}

// RunPeriodic schedules a periodic unit on a fresh concurrent scheduler,
// lets it fire the given number of times, and reports the observed gaps.
func RunPeriodic(
	ctx context.Context, log *slog.Logger, period time.Duration, firings, workers int,
) (PeriodicStats, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)

	s := esched.NewConcurrent(ctx, log.With("sys", "scheduler"), esched.ConcurrentConfig{
		Workers: workers,
	})
	defer s.Wait()
	defer cancel()

	var (
		mu   sync.Mutex
		gaps = make([]time.Duration, 0, firings-1)
	)
	done := make(chan struct{})

	d := esched.SchedulePeriodicState(s, periodicState{}, period, period, func(st periodicState) periodicState {
		now := time.Now()

		mu.Lock()
		defer mu.Unlock()

		if st.n >= firings {
			return st
		}
		if st.n > 0 {
			gaps = append(gaps, now.Sub(st.last))
		}
		st.n++
		st.last = now

		if st.n == firings {
			close(done)
		}
		return st
	})
	defer d.Dispose()

	select {
	case <-done:
	case <-ctx.Done():
		return PeriodicStats{}, context.Cause(ctx)
	}

	mu.Lock()
	defer mu.Unlock()

	if len(gaps) == 0 {
		return PeriodicStats{}, errors.New("BUG: no gaps recorded")
	}

	stats := PeriodicStats{
		Period:  period,
		Firings: firings,
		MinGap:  gaps[0],
		MaxGap:  gaps[0],
	}
	var total time.Duration
	for _, g := range gaps {
		total += g
		stats.MinGap = min(stats.MinGap, g)
		stats.MaxGap = max(stats.MaxGap, g)

		j := g - period
		if j < 0 {
			j = -j
		}
		stats.MaxJitter = max(stats.MaxJitter, j)
	}
	stats.MeanGap = total / time.Duration(len(gaps))

	log.Info("Periodic run finished", "firings", firings, "mean_gap", stats.MeanGap)
	return stats, nil
}

func (s PeriodicStats) writeText(w io.Writer) error {
	_, err := fmt.Fprintf(
		w,
		"period=%s firings=%d\nmin_gap=%s mean_gap=%s max_gap=%s\nmax_jitter=%s\n",
		s.Period, s.Firings, s.MinGap, s.MeanGap, s.MaxGap, s.MaxJitter,
	)
	return err
}
