package ebench_test

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/gordian-engine/eddy/internal/ebench"
	"github.com/gordian-engine/eddy/internal/etest"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) []byte {
	t.Helper()

	var out bytes.Buffer
	cmd := ebench.NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)

	require.NoError(t, cmd.Execute())
	return out.Bytes()
}

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(
		t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestZipCommand_config(t *testing.T) {
	t.Parallel()

	out := runCommand(t, "zip", "--config", "testdata/two_sources.yaml")
	newGoldie(t).Assert(t, "zip_two_sources", out)
}

func TestZipCommand_configJSON(t *testing.T) {
	t.Parallel()

	out := runCommand(t, "zip", "--config", "testdata/two_sources.yaml", "--format", "json")
	newGoldie(t).Assert(t, "zip_two_sources_json", out)
}

func TestZipCommand_flags(t *testing.T) {
	t.Parallel()

	out := runCommand(t, "zip", "--sources", "3", "--period", "1ms", "--count", "3", "--workers", "2")
	newGoldie(t).Assert(t, "zip_flags", out)
}

func TestZipCommand_invalidFormat(t *testing.T) {
	t.Parallel()

	cmd := ebench.NewRootCommand()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"zip", "--format", "xml"})

	require.ErrorContains(t, cmd.Execute(), `invalid format "xml"`)
}

func TestRunZip_zeroCount(t *testing.T) {
	t.Parallel()

	rows, err := ebench.RunZip(context.Background(), etest.NewLogger(t), ebench.ZipWorkload{
		Sources: []ebench.IntervalSource{{Name: "a", Period: 1 << 40}},
	})
	require.NoError(t, err)
	require.Empty(t, rows)
}
