package atom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIdentifier(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Identifier
		wantErr bool
	}{
		{"package", "sdk://pkg/foo", Identifier{Domain: "sdk", Name: "pkg/foo"}, false},
		{"fidl library", "fidl://meridian.ui.views", Identifier{Domain: "fidl", Name: "meridian.ui.views"}, false},
		{"missing separator", "sdk-pkg-foo", Identifier{}, true},
		{"empty domain", "://pkg/foo", Identifier{}, true},
		{"empty name", "sdk://", Identifier{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseIdentifier(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.input, got.String())
		})
	}
}

func TestIdentifierLess(t *testing.T) {
	a := Identifier{Domain: "fidl", Name: "z"}
	b := Identifier{Domain: "sdk", Name: "a"}
	c := Identifier{Domain: "sdk", Name: "b"}

	assert.True(t, a.Less(b), "domain ordering wins")
	assert.True(t, b.Less(c), "name breaks ties")
	assert.False(t, c.Less(b))
	assert.False(t, b.Less(b))
}

func TestCategoryOrdering(t *testing.T) {
	assert.True(t, CategoryPublic.AtLeast(CategoryInternal))
	assert.True(t, CategoryPublic.AtLeast(CategoryPublic))
	assert.False(t, CategoryInternal.AtLeast(CategoryCTS))
	assert.False(t, CategoryPartner.AtLeast(CategoryPublic))

	order := Categories()
	require.Len(t, order, 4)
	for i := 1; i < len(order); i++ {
		assert.True(t, order[i].Index() > order[i-1].Index())
	}
}

func TestParseCategory(t *testing.T) {
	got, err := ParseCategory(" Partner ")
	require.NoError(t, err)
	assert.Equal(t, CategoryPartner, got)

	_, err = ParseCategory("experimental")
	require.Error(t, err)
}

func TestAtomEqual(t *testing.T) {
	base := Atom{
		ID:       Identifier{Domain: "sdk", Name: "pkg/foo"},
		Category: CategoryPartner,
		Deps:     []Identifier{{Domain: "sdk", Name: "pkg/bar"}},
		Files:    []FileMapping{{Destination: "pkg/foo/lib.a", Source: "obj/foo/lib.a"}},
		GNLabel:  "//sdk/pkg/foo:foo_sdk",
		Tags:     map[string]string{"type": "cc_source_library"},
	}

	same := base
	same.Deps = []Identifier{{Domain: "sdk", Name: "pkg/bar"}}
	assert.True(t, base.Equal(same))

	tests := []struct {
		name   string
		mutate func(*Atom)
	}{
		{"category", func(a *Atom) { a.Category = CategoryPublic }},
		{"gn label", func(a *Atom) { a.GNLabel = "//sdk/pkg/foo:other" }},
		{"dep order", func(a *Atom) { a.Deps = []Identifier{{Domain: "sdk", Name: "pkg/baz"}} }},
		{"files", func(a *Atom) { a.Files = nil }},
		{"tags", func(a *Atom) { a.Tags = map[string]string{"type": "dart_library"} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			changed := base
			tt.mutate(&changed)
			assert.False(t, base.Equal(changed))
		})
	}
}

func TestAtomValidate(t *testing.T) {
	valid := Atom{
		ID:       Identifier{Domain: "sdk", Name: "pkg/foo"},
		Category: CategoryInternal,
		Files:    []FileMapping{{Destination: "a", Source: "b"}},
	}
	require.NoError(t, valid.Validate())

	missingID := valid
	missingID.ID = Identifier{}
	require.Error(t, missingID.Validate())

	badCategory := valid
	badCategory.Category = "secret"
	require.Error(t, badCategory.Validate())

	emptyDep := valid
	emptyDep.Deps = []Identifier{{}}
	require.Error(t, emptyDep.Validate())

	badFile := valid
	badFile.Files = []FileMapping{{Destination: "a"}}
	require.Error(t, badFile.Validate())
}
