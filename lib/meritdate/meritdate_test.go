package meritdate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFormatTimestamp(t *testing.T) {
	est := time.FixedZone("EST", -5*60*60)

	cases := []struct {
		in     time.Time
		expect string
	}{
		{
			in:     time.Date(2023, time.January, 15, 10, 30, 45, 0, time.UTC),
			expect: "20230115103045",
		},
		{
			// non-UTC input gets converted, not reinterpreted
			in:     time.Date(2023, time.January, 15, 22, 0, 0, 0, est),
			expect: "20230116030000",
		},
	}
	for _, test := range cases {
		require.Equal(t, test.expect, FormatTimestamp(test.in))
	}
}

func TestParseCompact(t *testing.T) {
	parsed, err := ParseCompact("20230115")
	require.NoError(t, err)
	require.Equal(t, time.Date(2023, time.January, 15, 0, 0, 0, 0, time.UTC), parsed)

	for _, bad := range []string{"", "2023-01-15", "202301", "20231345", "not-a-date"} {
		_, err := ParseCompact(bad)
		var ferr *FormatError
		require.ErrorAs(t, err, &ferr, "input: %q", bad)
		require.Equal(t, bad, ferr.Value)
	}
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		in     string
		expect string
	}{
		{in: "20230115", expect: "20230115"},
		{in: "2023-01-15T10:00:00.000", expect: "20230115"},
		{in: "2023-01-15T10:00:00", expect: "20230115"},
		{in: "2023-01-15T10:00:00.123456Z", expect: "20230115"},
		{in: "2023-01-15T10:00:00+02:00", expect: "20230115"},
		{in: "2023-01-15", expect: "20230115"},
	}
	for _, test := range cases {
		out, err := Normalize(test.in)
		require.NoError(t, err, "input: %q", test.in)
		require.Equal(t, test.expect, out)
	}

	_, err := Normalize("not-a-date")
	var ferr *FormatError
	require.ErrorAs(t, err, &ferr)

	out, err := NormalizePtr(nil)
	require.NoError(t, err)
	require.Nil(t, out)

	iso := "2023-01-15T10:00:00"
	ptr, err := NormalizePtr(&iso)
	require.NoError(t, err)
	require.Equal(t, "20230115", *ptr)
}

func TestRoundtrip(t *testing.T) {
	date := time.Date(2024, time.August, 26, 0, 0, 0, 0, time.UTC)
	parsed, err := ParseCompact(FormatCompact(date))
	require.NoError(t, err)
	require.Equal(t, date, parsed)
}

func TestDefaultRange(t *testing.T) {
	now := time.Date(2024, time.August, 26, 15, 4, 5, 0, time.UTC)
	start, end := DefaultRange(now)
	require.Equal(t, time.Date(2024, time.August, 26, 0, 0, 0, 0, time.UTC), end)
	require.Equal(t, end.AddDate(0, 0, -365), start)
	require.True(t, start.Before(end))
}
