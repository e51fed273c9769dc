package ebench_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/gordian-engine/eddy/internal/ebench"
	"github.com/gordian-engine/eddy/internal/etest"
	"github.com/stretchr/testify/require"
)

func TestRunPeriodic(t *testing.T) {
	t.Parallel()

	const period = 2 * time.Millisecond
	stats, err := ebench.RunPeriodic(context.Background(), etest.NewLogger(t), period, 5, 2)
	require.NoError(t, err)

	require.Equal(t, 5, stats.Firings)
	require.Equal(t, period, stats.Period)
	require.LessOrEqual(t, stats.MinGap, stats.MeanGap)
	require.LessOrEqual(t, stats.MeanGap, stats.MaxGap)

	// Firings never overlap, and no firing happens early
	// relative to the previous one by more than a period.
	require.Positive(t, stats.MinGap)
}

func TestRunPeriodic_canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ebench.RunPeriodic(ctx, etest.NewLogger(t), time.Hour, 2, 1)
	require.ErrorIs(t, err, context.Canceled)
}

func TestPeriodicCommand_json(t *testing.T) {
	t.Parallel()

	out := runCommand(t, "periodic", "--period", "1ms", "--firings", "3", "--format", "json")

	var stats ebench.PeriodicStats
	require.NoError(t, json.Unmarshal(out, &stats))
	require.Equal(t, 3, stats.Firings)
	require.Equal(t, time.Millisecond, stats.Period)
}

func TestPeriodicCommand_rejectsFewFirings(t *testing.T) {
	t.Parallel()

	cmd := ebench.NewRootCommand()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"periodic", "--firings", "1"})

	require.ErrorContains(t, cmd.Execute(), "firings must be at least 2")
}

func TestPeriodicCommand_text(t *testing.T) {
	t.Parallel()

	out := runCommand(t, "periodic", "--period", "1ms", "--firings", "2")
	require.True(t, bytes.HasPrefix(out, []byte("period=1ms firings=2\n")), "got %q", out)
}
