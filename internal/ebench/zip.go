package ebench

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/gordian-engine/eddy"
	"github.com/gordian-engine/eddy/esched"
	"github.com/spf13/cobra"
)

// ZipOptions holds flags for the zip command.
type ZipOptions struct {
	*RootOptions

	ConfigPath string

	Sources int
	Period  time.Duration
	Count   int
	Workers int
}

// NewZipCommand creates the zip command.
func NewZipCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ZipOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "zip",
		Short: "Zip interval sources and print the joined rows",
		Long: `Zip subscribes to one interval source per configured entry,
plus a bounding source that limits the run to --count rows,
and prints every joined row in order.

Row k always holds the k-th value of every source,
regardless of how far apart the source periods are.`,
		Example: `  eddybench zip --sources 3 --period 2ms --count 10
  eddybench zip --config workload.yaml --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runZip(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "YAML workload file (overrides the other flags)")
	cmd.Flags().IntVar(&opts.Sources, "sources", 2, "number of interval sources")
	cmd.Flags().DurationVar(&opts.Period, "period", time.Millisecond, "base period; source i fires every (i+1)*period")
	cmd.Flags().IntVar(&opts.Count, "count", 5, "number of rows to join")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "scheduler workers (0 means one per CPU)")

	return cmd
}

func (o *ZipOptions) workload() (ZipWorkload, error) {
	if o.ConfigPath != "" {
		return LoadZipWorkloadFile(o.ConfigPath)
	}

	wl := ZipWorkload{
		Workers: o.Workers,
		Count:   o.Count,
	}
	for i := range o.Sources {
		wl.Sources = append(wl.Sources, IntervalSource{
			Name:   fmt.Sprintf("s%d", i),
			Period: time.Duration(i+1) * o.Period,
		})
	}
	if err := wl.Validate(); err != nil {
		return ZipWorkload{}, err
	}
	return wl, nil
}

// ZipRow is one joined row of a zip run.
type ZipRow struct {
	Index  int              `json:"index"`
	Values map[string]int64 `json:"values"`
}

func runZip(cmd *cobra.Command, opts *ZipOptions) error {
	wl, err := opts.workload()
	if err != nil {
		return err
	}

	log := opts.newLogger(cmd.ErrOrStderr())

	start := time.Now()
	rows, err := RunZip(cmd.Context(), log, wl)
	if err != nil {
		return fmt.Errorf("zip run failed: %w", err)
	}
	log.Info("Zip run finished", "rows", len(rows), "elapsed", time.Since(start))

	if opts.Format == "json" {
		return writeZipJSON(cmd.OutOrStdout(), wl, rows)
	}
	return writeZipText(cmd.OutOrStdout(), wl, rows)
}

// RunZip zips the interval sources described by wl,
// stopping after wl.Count rows.
func RunZip(ctx context.Context, log *slog.Logger, wl ZipWorkload) ([]ZipRow, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)

	s := esched.NewConcurrent(ctx, log.With("sys", "scheduler"), esched.ConcurrentConfig{
		Workers: wl.Workers,
	})
	defer s.Wait()
	defer cancel()

	sources := make([]eddy.Observable[int64], 0, len(wl.Sources)+1)
	for _, src := range wl.Sources {
		sources = append(sources, eddy.Interval(s, src.Period))
	}

	// The bounding source holds exactly Count values and completes at once,
	// so the zip completes after joining the Count-th row.
	bound := make([]int64, wl.Count)
	for i := range bound {
		bound[i] = int64(i)
	}
	sources = append(sources, eddy.FromSlice(bound))

	zipped := eddy.ZipSlice(sources, func(vs []int64) (ZipRow, error) {
		row := ZipRow{
			Index:  int(vs[len(vs)-1]),
			Values: make(map[string]int64, len(wl.Sources)),
		}
		for i, src := range wl.Sources {
			row.Values[src.Name] = vs[i]
		}
		return row, nil
	})

	return eddy.Collect(ctx, zipped)
}

func writeZipText(w io.Writer, wl ZipWorkload, rows []ZipRow) error {
	names := make([]string, len(wl.Sources))
	for i, src := range wl.Sources {
		names[i] = src.Name
	}

	if _, err := fmt.Fprintf(w, "zip sources=%s count=%d\n", strings.Join(names, ","), wl.Count); err != nil {
		return err
	}

	for _, row := range rows {
		var sb strings.Builder
		fmt.Fprintf(&sb, "%d:", row.Index)
		for _, name := range names {
			fmt.Fprintf(&sb, " %s=%d", name, row.Values[name])
		}
		sb.WriteByte('\n')
		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "completed rows=%d\n", len(rows))
	return err
}

func writeZipJSON(w io.Writer, wl ZipWorkload, rows []ZipRow) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Count int      `json:"count"`
		Rows  []ZipRow `json:"rows"`
	}{
		Count: wl.Count,
		Rows:  rows,
	})
}
