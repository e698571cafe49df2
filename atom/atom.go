// Package atom implements the SDK atom-manifest model: immutable atom
// records, JSON manifest reading and writing, transitive dependency
// gathering, and publication-category validation.
//
// An atom is one unit of SDK content (a library, a host tool, a package of
// sources) named by a (domain, name) identifier. Manifests list atoms plus
// the subset that are direct roots; gathering merges manifests into a single
// deduplicated closure. Atoms are rebuilt from JSON on every invocation and
// never persisted beyond the process.
package atom

import (
	"sort"
	"strings"

	"github.com/meridian-os/sdkforge/errors"
)

// Identifier uniquely names an atom as a (domain, name) pair.
// The string form is "domain://name", e.g. "sdk://pkg/foo".
type Identifier struct {
	Domain string `json:"domain"`
	Name   string `json:"name"`
}

// ParseIdentifier parses the "domain://name" string form.
func ParseIdentifier(s string) (Identifier, error) {
	domain, name, ok := strings.Cut(s, "://")
	if !ok || domain == "" || name == "" {
		return Identifier{}, errors.NewMalformedManifestError("invalid atom identifier %q, expected domain://name", s)
	}
	return Identifier{Domain: domain, Name: name}, nil
}

// String returns the "domain://name" form.
func (id Identifier) String() string {
	return id.Domain + "://" + id.Name
}

// IsZero reports whether the identifier is empty.
func (id Identifier) IsZero() bool {
	return id.Domain == "" && id.Name == ""
}

// Less orders identifiers by domain, then name. Used everywhere a
// deterministic atom ordering is needed.
func (id Identifier) Less(other Identifier) bool {
	if id.Domain != other.Domain {
		return id.Domain < other.Domain
	}
	return id.Name < other.Name
}

// FileMapping maps a destination path inside the SDK layout to a source path
// in the build output directory.
type FileMapping struct {
	Destination string `json:"destination"`
	Source      string `json:"source"`
}

// Atom is one unit of SDK content. Atoms are value objects: constructed from
// JSON, never mutated afterwards.
//
// Deps and Files keep their manifest order; it is semantic (link order,
// packaging order) and preserved through gather and write.
type Atom struct {
	ID       Identifier        `json:"id"`
	Category Category          `json:"category"`
	Deps     []Identifier      `json:"deps"`
	Files    []FileMapping     `json:"files"`
	GNLabel  string            `json:"gn_label"`
	Tags     map[string]string `json:"tags,omitempty"`
}

// Equal reports whether two atoms have identical content. Two manifests may
// legitimately both carry an atom; they collide only if the content differs.
func (a Atom) Equal(other Atom) bool {
	if a.ID != other.ID || a.Category != other.Category || a.GNLabel != other.GNLabel {
		return false
	}
	if len(a.Deps) != len(other.Deps) || len(a.Files) != len(other.Files) || len(a.Tags) != len(other.Tags) {
		return false
	}
	for i, dep := range a.Deps {
		if dep != other.Deps[i] {
			return false
		}
	}
	for i, f := range a.Files {
		if f != other.Files[i] {
			return false
		}
	}
	for k, v := range a.Tags {
		if ov, ok := other.Tags[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// Validate checks the required fields of a freshly decoded atom.
func (a Atom) Validate() error {
	if a.ID.Domain == "" || a.ID.Name == "" {
		return errors.NewMalformedManifestError("atom %+v is missing its identifier", a.ID)
	}
	if err := a.Category.Validate(); err != nil {
		return errors.Wrapf(err, "atom %s", a.ID)
	}
	for _, dep := range a.Deps {
		if dep.IsZero() {
			return errors.NewMalformedManifestError("atom %s has an empty dependency identifier", a.ID)
		}
	}
	for _, f := range a.Files {
		if f.Destination == "" || f.Source == "" {
			return errors.NewMalformedManifestError("atom %s has an incomplete file mapping %q=%q", a.ID, f.Destination, f.Source)
		}
	}
	return nil
}

// SortAtoms orders atoms by identifier, in place.
func SortAtoms(atoms []Atom) {
	sort.Slice(atoms, func(i, j int) bool {
		return atoms[i].ID.Less(atoms[j].ID)
	})
}

// SortIdentifiers orders identifiers, in place.
func SortIdentifiers(ids []Identifier) {
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].Less(ids[j])
	})
}
