package commands

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-os/sdkforge/atom"
)

func writeTestManifest(t *testing.T, dir, name string, m *atom.Manifest) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, m.WriteManifest(path))
	return path
}

func TestGatherOnce_Integration(t *testing.T) {
	dir := t.TempDir()

	base := atom.Atom{
		ID:       atom.Identifier{Domain: "sdk", Name: "lib/base"},
		Category: atom.CategoryPublic,
		GNLabel:  "//lib/base",
	}
	app := atom.Atom{
		ID:       atom.Identifier{Domain: "sdk", Name: "lib/app"},
		Category: atom.CategoryPublic,
		Deps:     []atom.Identifier{base.ID},
		GNLabel:  "//lib/app",
	}
	tool := atom.Atom{
		ID:       atom.Identifier{Domain: "tools", Name: "formatter"},
		Category: atom.CategoryPublic,
		GNLabel:  "//tools/formatter",
	}

	first := writeTestManifest(t, dir, "first.json", &atom.Manifest{
		IDs:   []atom.Identifier{app.ID},
		Atoms: []atom.Atom{app, base},
	})
	second := writeTestManifest(t, dir, "second.json", &atom.Manifest{
		IDs:   []atom.Identifier{tool.ID},
		Atoms: []atom.Atom{tool},
	})

	output := filepath.Join(dir, "sdk.json")
	dep := filepath.Join(dir, "sdk.d")

	origOutput, origDepfile := gatherOutput, gatherDepfile
	t.Cleanup(func() { gatherOutput, gatherDepfile = origOutput, origDepfile })
	gatherOutput = output
	gatherDepfile = dep

	gatherer := atom.NewGatherer(2)
	err := gatherOnce(context.Background(), gatherer, []string{first, second}, "internal")
	require.NoError(t, err)

	merged, err := atom.LoadManifest(output)
	require.NoError(t, err)
	assert.Len(t, merged.Atoms, 3)
	assert.Len(t, merged.IDs, 2)

	data, err := os.ReadFile(dep)
	require.NoError(t, err)
	assert.Contains(t, string(data), "sdk.json:")
	assert.Contains(t, string(data), "first.json")
}

func TestGatherOnce_CategoryViolation(t *testing.T) {
	dir := t.TempDir()

	internal := atom.Atom{
		ID:       atom.Identifier{Domain: "sdk", Name: "lib/internal"},
		Category: atom.CategoryInternal,
		GNLabel:  "//lib/internal",
	}
	public := atom.Atom{
		ID:       atom.Identifier{Domain: "sdk", Name: "lib/public"},
		Category: atom.CategoryPublic,
		Deps:     []atom.Identifier{internal.ID},
		GNLabel:  "//lib/public",
	}

	path := writeTestManifest(t, dir, "sdk.json", &atom.Manifest{
		IDs:   []atom.Identifier{public.ID},
		Atoms: []atom.Atom{public, internal},
	})

	origOutput, origDepfile := gatherOutput, gatherDepfile
	t.Cleanup(func() { gatherOutput, gatherDepfile = origOutput, origDepfile })
	gatherOutput = filepath.Join(dir, "out.json")
	gatherDepfile = ""

	gatherer := atom.NewGatherer(1)
	err := gatherOnce(context.Background(), gatherer, []string{path}, "internal")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "violation")
}
