package atom

import (
	"fmt"
)

// Violation records one publication-category failure. Dependent is nil for
// minimum-category violations and set for dependency violations.
type Violation struct {
	Atom      Identifier  `json:"atom"`
	Category  Category    `json:"category"`
	Required  Category    `json:"required"`
	Dependent *Identifier `json:"dependent,omitempty"`
}

func (v Violation) String() string {
	if v.Dependent != nil {
		return fmt.Sprintf("atom %s (category %s) is not publishable enough for dependent %s (category %s)",
			v.Atom, v.Category, *v.Dependent, v.Required)
	}
	return fmt.Sprintf("atom %s has category %s, below the required minimum %s",
		v.Atom, v.Category, v.Required)
}

// VerifyMinimum flags every atom whose category is below min. Pure
// validation: no side effects, deterministic order (atoms in input order).
func VerifyMinimum(min Category, atoms []Atom) []Violation {
	var violations []Violation
	for _, a := range atoms {
		if !a.Category.AtLeast(min) {
			violations = append(violations, Violation{
				Atom:     a.ID,
				Category: a.Category,
				Required: min,
			})
		}
	}
	return violations
}

// VerifyDeps flags every dependency edge whose target is published less
// widely than its dependent. A widely published atom depending, directly or
// transitively, on a restricted one always has at least one such edge on the
// path, so edge checking detects transitive violations too.
//
// Edges pointing outside atoms are skipped; missing dependencies are the
// gatherer's to report.
func VerifyDeps(atoms []Atom) []Violation {
	index := make(map[Identifier]Atom, len(atoms))
	for _, a := range atoms {
		index[a.ID] = a
	}

	var violations []Violation
	for _, a := range atoms {
		for _, depID := range a.Deps {
			dep, ok := index[depID]
			if !ok {
				continue
			}
			if !dep.Category.AtLeast(a.Category) {
				dependent := a.ID
				violations = append(violations, Violation{
					Atom:      dep.ID,
					Category:  dep.Category,
					Required:  a.Category,
					Dependent: &dependent,
				})
			}
		}
	}
	return violations
}

// DetectCategoryViolations reports whether any atom in the set violates the
// minimum category or any dependency edge violates the publication ordering.
func DetectCategoryViolations(min Category, atoms []Atom) bool {
	return len(VerifyMinimum(min, atoms)) > 0 || len(VerifyDeps(atoms)) > 0
}
