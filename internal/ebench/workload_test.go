package ebench_test

import (
	"strings"
	"testing"
	"time"

	"github.com/gordian-engine/eddy/internal/ebench"
	"github.com/stretchr/testify/require"
)

func TestLoadZipWorkload(t *testing.T) {
	t.Parallel()

	wl, err := ebench.LoadZipWorkloadFile("testdata/two_sources.yaml")
	require.NoError(t, err)

	require.Equal(t, ebench.ZipWorkload{
		Workers: 2,
		Sources: []ebench.IntervalSource{
			{Name: "fast", Period: time.Millisecond},
			{Name: "slow", Period: 4 * time.Millisecond},
		},
		Count: 4,
	}, wl)
}

func TestLoadZipWorkload_unknownField(t *testing.T) {
	t.Parallel()

	_, err := ebench.LoadZipWorkload(strings.NewReader(`
sources:
  - name: a
    period: 1ms
count: 1
bogus: true
`))
	require.ErrorContains(t, err, "bogus")
}

func TestZipWorkload_Validate(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name string
		wl   ebench.ZipWorkload
		want string
	}{
		{
			name: "no sources",
			wl:   ebench.ZipWorkload{Count: 1},
			want: "at least one source",
		},
		{
			name: "negative workers",
			wl: ebench.ZipWorkload{
				Workers: -1,
				Sources: []ebench.IntervalSource{{Name: "a", Period: time.Millisecond}},
			},
			want: "workers must not be negative",
		},
		{
			name: "duplicate name",
			wl: ebench.ZipWorkload{
				Sources: []ebench.IntervalSource{
					{Name: "a", Period: time.Millisecond},
					{Name: "a", Period: time.Millisecond},
				},
			},
			want: `duplicate name "a"`,
		},
		{
			name: "zero period",
			wl: ebench.ZipWorkload{
				Sources: []ebench.IntervalSource{{Name: "a"}},
			},
			want: "period must be positive",
		},
		{
			name: "negative count",
			wl: ebench.ZipWorkload{
				Sources: []ebench.IntervalSource{{Name: "a", Period: time.Millisecond}},
				Count:   -1,
			},
			want: "count must not be negative",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.ErrorContains(t, tc.wl.Validate(), tc.want)
		})
	}
}

func TestZipWorkload_Validate_reportsAll(t *testing.T) {
	t.Parallel()

	err := ebench.ZipWorkload{
		Workers: -1,
		Count:   -1,
	}.Validate()
	require.ErrorContains(t, err, "workers")
	require.ErrorContains(t, err, "at least one source")
	require.ErrorContains(t, err, "count")
}
