package aktiva

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCanonicalizeFoldsQueryIntoBody(t *testing.T) {
	base, body, err := Canonicalize("https://aktiva.merit.ee/api/v1/getx?a=1&b=2", nil)
	require.NoError(t, err)
	require.Equal(t, "https://aktiva.merit.ee/api/v1/getx", base)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))
	require.Equal(t, map[string]any{"a": "1", "b": "2"}, decoded)
}

func TestCanonicalizeQueryWinsOverBody(t *testing.T) {
	_, body, err := Canonicalize(
		"https://example.com/v1/getx?DateType=1",
		map[string]any{"DateType": 0, "WithLines": 1},
	)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))
	require.Equal(t, "1", decoded["DateType"])
	require.Equal(t, float64(1), decoded["WithLines"])
}

func TestCanonicalizeRepeatedQueryKey(t *testing.T) {
	_, body, err := Canonicalize("https://example.com/v1/getx?tag=a&tag=b", nil)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))
	require.Equal(t, []any{"a", "b"}, decoded["tag"])
}

func TestCanonicalizeIdempotent(t *testing.T) {
	url := "https://example.com/v1/getx?PeriodStart=20230101"
	base, first, err := Canonicalize(url, map[string]any{"DateType": 1})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(first, &decoded))
	base2, second, err := Canonicalize(base, decoded)
	require.NoError(t, err)
	require.Equal(t, base, base2)
	require.Equal(t, string(first), string(second))
}

func TestEncodeBodyDates(t *testing.T) {
	body, err := EncodeBody(map[string]any{
		"PeriodStart": time.Date(2023, time.January, 1, 10, 30, 0, 0, time.UTC),
		"nested":      map[string]any{"until": time.Date(2023, time.March, 1, 0, 0, 0, 0, time.UTC)},
		"list":        []any{time.Date(2023, time.February, 5, 0, 0, 0, 0, time.UTC)},
	})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))
	require.Equal(t, "20230101", decoded["PeriodStart"])
	require.Equal(t, "20230301", decoded["nested"].(map[string]any)["until"])
	require.Equal(t, "20230205", decoded["list"].([]any)[0])
}

func TestEncodeBodyUnsupportedValue(t *testing.T) {
	_, err := EncodeBody(map[string]any{"callback": func() {}})
	require.Error(t, err)
}

func TestCanonicalizeDoesNotMutateInput(t *testing.T) {
	body := map[string]any{"DateType": 0}
	_, _, err := Canonicalize("https://example.com/v1/getx?DateType=1", body)
	require.NoError(t, err)
	require.Equal(t, 0, body["DateType"])
}
