package depfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name   string
		output string
		deps   []string
		want   string
	}{
		{
			"sorted and deduplicated",
			"gen/sdk.json",
			[]string{"b.json", "a.json", "b.json"},
			"gen/sdk.json: a.json b.json\n",
		},
		{
			"no deps",
			"gen/sdk.json",
			nil,
			"gen/sdk.json:\n",
		},
		{
			"escaped spaces",
			"out dir/sdk.json",
			[]string{"in put.json"},
			"out\\ dir/sdk.json: in\\ put.json\n",
		},
		{
			"escaped dollar",
			"gen/$tmp.json",
			[]string{"a#b.json"},
			"gen/$$tmp.json: a\\#b.json\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, string(Encode(tt.output, tt.deps)))
		})
	}
}

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.d")
	require.NoError(t, Write(path, "gen/sdk.json", []string{"m1.json", "m2.json"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "gen/sdk.json: m1.json m2.json\n", string(data))
}
