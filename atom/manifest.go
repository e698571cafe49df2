package atom

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/meridian-os/sdkforge/errors"
)

// Manifest is the JSON atom-manifest document: the atoms known to one build
// target plus the identifiers of its direct (root) atoms. A manifest always
// contains the atoms of its entire dependency subtree, so gathering over
// several manifests is a merge, not a file-system traversal.
type Manifest struct {
	IDs   []Identifier `json:"ids"`
	Atoms []Atom       `json:"atoms"`
}

// LoadManifest reads and validates an atom manifest. Decoding is strict:
// unknown fields, malformed JSON, and atoms with missing required fields all
// fail with ErrMalformedManifest wrapped in a message naming the file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read manifest %s", path)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		return nil, errors.Wrapf(errors.ErrMalformedManifest, "manifest %s: %v", path, err)
	}

	for _, a := range m.Atoms {
		if err := a.Validate(); err != nil {
			return nil, errors.Wrapf(err, "manifest %s", path)
		}
	}

	known := make(map[Identifier]struct{}, len(m.Atoms))
	for _, a := range m.Atoms {
		known[a.ID] = struct{}{}
	}
	for _, id := range m.IDs {
		if _, ok := known[id]; !ok {
			return nil, errors.Wrapf(errors.ErrMalformedManifest,
				"manifest %s: root id %s has no matching atom", path, id)
		}
	}

	return &m, nil
}

// Encode serializes the manifest deterministically: atoms sorted by
// identifier, root ids sorted, two-space indent, trailing newline. Input
// slices are not mutated.
func (m *Manifest) Encode() ([]byte, error) {
	out := Manifest{
		IDs:   make([]Identifier, len(m.IDs)),
		Atoms: make([]Atom, len(m.Atoms)),
	}
	copy(out.IDs, m.IDs)
	copy(out.Atoms, m.Atoms)
	SortIdentifiers(out.IDs)
	SortAtoms(out.Atoms)

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode manifest")
	}
	return append(data, '\n'), nil
}

// WriteManifest writes the manifest to path. The document is encoded fully
// in memory first; any error leaves the destination untouched.
func (m *Manifest) WriteManifest(path string) error {
	data, err := m.Encode()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "failed to write manifest %s", path)
	}
	return nil
}
