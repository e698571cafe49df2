package atom

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-os/sdkforge/errors"
)

func testAtom(name string, category Category, deps ...string) Atom {
	a := Atom{
		ID:       Identifier{Domain: "sdk", Name: name},
		Category: category,
		Files:    []FileMapping{{Destination: name + "/meta.json", Source: "gen/" + name + "/meta.json"}},
		GNLabel:  "//sdk/" + name,
	}
	for _, dep := range deps {
		a.Deps = append(a.Deps, Identifier{Domain: "sdk", Name: dep})
	}
	return a
}

func writeManifest(t *testing.T, dir, file string, m *Manifest) string {
	t.Helper()
	path := filepath.Join(dir, file)
	require.NoError(t, m.WriteManifest(path))
	return path
}

func TestManifestRoundTrip(t *testing.T) {
	original := &Manifest{
		IDs: []Identifier{{Domain: "sdk", Name: "pkg/foo"}},
		Atoms: []Atom{
			testAtom("pkg/foo", CategoryPartner, "pkg/bar"),
			testAtom("pkg/bar", CategoryPublic),
		},
	}

	path := writeManifest(t, t.TempDir(), "manifest.json", original)
	loaded, err := LoadManifest(path)
	require.NoError(t, err)

	require.Len(t, loaded.Atoms, 2)
	require.Len(t, loaded.IDs, 1)
	for _, want := range original.Atoms {
		var found bool
		for _, got := range loaded.Atoms {
			if got.ID == want.ID {
				assert.True(t, want.Equal(got), "atom %s changed across round trip", want.ID)
				found = true
			}
		}
		assert.True(t, found, "atom %s missing after round trip", want.ID)
	}
}

func TestManifestEncodeDeterministic(t *testing.T) {
	shuffled := &Manifest{
		IDs: []Identifier{
			{Domain: "sdk", Name: "pkg/zzz"},
			{Domain: "sdk", Name: "pkg/aaa"},
		},
		Atoms: []Atom{
			testAtom("pkg/zzz", CategoryPublic),
			testAtom("pkg/aaa", CategoryPublic),
		},
	}
	sorted := &Manifest{
		IDs: []Identifier{
			{Domain: "sdk", Name: "pkg/aaa"},
			{Domain: "sdk", Name: "pkg/zzz"},
		},
		Atoms: []Atom{
			testAtom("pkg/aaa", CategoryPublic),
			testAtom("pkg/zzz", CategoryPublic),
		},
	}

	a, err := shuffled.Encode()
	require.NoError(t, err)
	b, err := sorted.Encode()
	require.NoError(t, err)

	assert.Equal(t, string(b), string(a), "encoding must not depend on input order")
	assert.Equal(t, byte('\n'), a[len(a)-1], "encoded manifest ends with a newline")
}

func TestLoadManifestErrors(t *testing.T) {
	dir := t.TempDir()

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		return path
	}

	tests := []struct {
		name    string
		content string
	}{
		{"malformed json", `{"ids": [}`},
		{"unknown field", `{"ids": [], "atoms": [], "molecules": []}`},
		{"missing category", `{"ids": [], "atoms": [{"id": {"domain": "sdk", "name": "pkg/foo"}, "category": "", "deps": [], "files": [], "gn_label": "//x"}]}`},
		{"root without atom", `{"ids": [{"domain": "sdk", "name": "pkg/ghost"}], "atoms": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := write(tt.name+".json", tt.content)
			_, err := LoadManifest(path)
			require.Error(t, err)
			assert.True(t, errors.IsMalformedManifestError(err), "expected ErrMalformedManifest, got %v", err)
			assert.Contains(t, err.Error(), path, "error names the offending file")
		})
	}

	_, err := LoadManifest(filepath.Join(dir, "does-not-exist.json"))
	require.Error(t, err)
}

func TestFileManifestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "package.manifest")

	mappings := []FileMapping{
		{Destination: "lib/libfoo.so", Source: "obj/foo/libfoo.so"},
		{Destination: "bin/tool", Source: "host_x64/tool"},
	}
	require.NoError(t, WriteFileManifest(path, mappings))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "bin/tool=host_x64/tool\nlib/libfoo.so=obj/foo/libfoo.so\n", string(data))

	loaded, err := ReadFileManifest(path)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "bin/tool", loaded[0].Destination)
}

func TestReadFileManifestRejectsBadLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.manifest")
	require.NoError(t, os.WriteFile(path, []byte("# comment\n\nlib/libfoo.so\n"), 0644))

	_, err := ReadFileManifest(path)
	require.Error(t, err)
	assert.True(t, errors.IsMalformedManifestError(err))
	assert.Contains(t, err.Error(), ":3:")
}
