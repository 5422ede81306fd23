package datewindow

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func collectWindows(t *testing.T, p *Paginator) []Params {
	t.Helper()

	var out []Params
	for p.HasNext() {
		out = append(out, p.Params())
		p.Advance()
		require.Less(t, len(out), 1000, "paginator never terminated")
	}
	return out
}

func TestWindowSequence(t *testing.T) {
	p, err := New(date(2023, time.January, 1), date(2023, time.March, 1), 30, 1)
	require.NoError(t, err)

	expect := []Params{
		{PeriodStart: "20230101", PeriodEnd: "20230130", DateType: 1},
		{PeriodStart: "20230130", PeriodEnd: "20230228", DateType: 1},
		{PeriodStart: "20230228", PeriodEnd: "20230301", DateType: 1},
	}
	got := collectWindows(t, p)
	if diff := cmp.Diff(expect, got); diff != "" {
		t.Fatalf("window sequence mismatch (-want +got):\n%s", diff)
	}
	require.False(t, p.HasNext())

	// terminal state is sticky
	p.Advance()
	require.False(t, p.HasNext())
}

func TestWindowChainInvariants(t *testing.T) {
	overallStart := date(2022, time.June, 15)
	overallEnd := date(2023, time.June, 15)

	for _, interval := range []int{1, 7, 30, 89, 90} {
		p, err := New(overallStart, overallEnd, interval, 0)
		require.NoError(t, err)

		var windows [][2]time.Time
		for p.HasNext() {
			start, end := p.Window()
			windows = append(windows, [2]time.Time{start, end})
			p.Advance()
		}

		require.NotEmpty(t, windows)
		require.Equal(t, overallStart, windows[0][0], "interval %d", interval)
		require.Equal(t, overallEnd, windows[len(windows)-1][1], "interval %d", interval)
		for i, w := range windows {
			require.True(t, w[0].Before(w[1]), "interval %d window %d", interval, i)
			if i > 0 {
				// consecutive windows share their boundary date
				require.Equal(t, windows[i-1][1], w[0], "interval %d window %d", interval, i)
			}
		}
	}
}

func TestIntervalValidation(t *testing.T) {
	start, end := date(2023, time.January, 1), date(2023, time.February, 1)
	for _, interval := range []int{-1, 0, 91, 365} {
		_, err := New(start, end, interval, 0)
		require.Error(t, err, "interval %d", interval)
	}
}

func TestResume(t *testing.T) {
	p, err := Resume(
		date(2023, time.January, 1), date(2023, time.March, 1),
		30, 1,
		date(2023, time.February, 10),
	)
	require.NoError(t, err)

	require.True(t, p.HasNext())
	require.Equal(t, Params{
		PeriodStart: "20230210",
		PeriodEnd:   "20230301",
		DateType:    1,
	}, p.Params())
}

func TestEmptyRange(t *testing.T) {
	// resume point at or past the overall end produces no windows
	p, err := Resume(
		date(2023, time.January, 1), date(2023, time.March, 1),
		30, 1,
		date(2023, time.March, 1),
	)
	require.NoError(t, err)
	require.False(t, p.HasNext())

	p, err = New(date(2023, time.March, 1), date(2023, time.March, 1), 30, 1)
	require.NoError(t, err)
	require.False(t, p.HasNext())
}

func TestFailedPageDoesNotAdvance(t *testing.T) {
	p, err := New(date(2023, time.January, 1), date(2023, time.March, 1), 30, 1)
	require.NoError(t, err)

	before := p.Params()
	// a retried window re-renders identical parameters
	require.Equal(t, before, p.Params())
	require.Equal(t, before, p.Params())
}
