package aktiva

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCleanResponse(t *testing.T) {
	cases := []struct {
		name   string
		in     []byte
		expect string
	}{
		{
			name:   "raw null byte",
			in:     []byte("{\"Name\":\"a\x00b\"}"),
			expect: `{"Name":"ab"}`,
		},
		{
			name:   "literal escape sequence",
			in:     []byte(`{"Name":"a\u0000b"}`),
			expect: `{"Name":"ab"}`,
		},
		{
			name:   "both markers",
			in:     []byte("{\"Name\":\"a\\u0000b\x00c\"}"),
			expect: `{"Name":"abc"}`,
		},
		{
			name:   "clean payload unchanged",
			in:     []byte(`{"Name":"ab"}`),
			expect: `{"Name":"ab"}`,
		},
	}

	for _, test := range cases {
		out := CleanResponse(test.in)
		require.Equal(t, test.expect, string(out), test.name)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(out, &decoded), test.name)
	}
}
