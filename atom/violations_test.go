package atom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyMinimum(t *testing.T) {
	atoms := []Atom{
		testAtom("pkg/pub", CategoryPublic),
		testAtom("pkg/partner", CategoryPartner),
		testAtom("pkg/int", CategoryInternal),
	}

	violations := VerifyMinimum(CategoryPartner, atoms)
	require.Len(t, violations, 1)
	assert.Equal(t, "sdk://pkg/int", violations[0].Atom.String())
	assert.Equal(t, CategoryInternal, violations[0].Category)
	assert.Equal(t, CategoryPartner, violations[0].Required)
	assert.Nil(t, violations[0].Dependent)

	assert.Empty(t, VerifyMinimum(CategoryInternal, atoms))
}

func TestVerifyDepsDirect(t *testing.T) {
	atoms := []Atom{
		testAtom("pkg/pub", CategoryPublic, "pkg/int"),
		testAtom("pkg/int", CategoryInternal),
	}

	violations := VerifyDeps(atoms)
	require.Len(t, violations, 1)
	assert.Equal(t, "sdk://pkg/int", violations[0].Atom.String())
	require.NotNil(t, violations[0].Dependent)
	assert.Equal(t, "sdk://pkg/pub", violations[0].Dependent.String())
}

func TestVerifyDepsTransitive(t *testing.T) {
	// public -> partner -> internal: the descending edge is partner -> internal,
	// but public -> partner already violates, so a transitive weakening is
	// always caught by edge checking alone.
	atoms := []Atom{
		testAtom("pkg/pub", CategoryPublic, "pkg/mid"),
		testAtom("pkg/mid", CategoryPartner, "pkg/int"),
		testAtom("pkg/int", CategoryInternal),
	}

	violations := VerifyDeps(atoms)
	require.NotEmpty(t, violations)
	assert.True(t, DetectCategoryViolations(CategoryInternal, atoms))
}

func TestVerifyDepsClean(t *testing.T) {
	atoms := []Atom{
		testAtom("pkg/int", CategoryInternal, "pkg/pub"),
		testAtom("pkg/pub", CategoryPublic),
	}

	assert.Empty(t, VerifyDeps(atoms), "depending upward in publication order is fine")
	assert.False(t, DetectCategoryViolations(CategoryInternal, atoms))
}

func TestViolationString(t *testing.T) {
	dependent := Identifier{Domain: "sdk", Name: "pkg/pub"}
	withDep := Violation{
		Atom:      Identifier{Domain: "sdk", Name: "pkg/int"},
		Category:  CategoryInternal,
		Required:  CategoryPublic,
		Dependent: &dependent,
	}
	assert.Contains(t, withDep.String(), "sdk://pkg/pub")

	minimum := Violation{
		Atom:     Identifier{Domain: "sdk", Name: "pkg/int"},
		Category: CategoryInternal,
		Required: CategoryPartner,
	}
	assert.Contains(t, minimum.String(), "required minimum partner")
}
