// Package sdkmeta generates the top-level SDK metadata document from a
// gathered atom closure: schema version, SDK id, target architectures, and
// the sorted list of published parts.
package sdkmeta

import (
	"encoding/json"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/meridian-os/sdkforge/atom"
	"github.com/meridian-os/sdkforge/errors"
)

// SchemaVersion identifies the meta.json layout. Consumers hard-fail on a
// version they do not know.
const SchemaVersion = "1"

// Arch describes the architectures an SDK build covers.
type Arch struct {
	Host   string   `json:"host" yaml:"host"`
	Target []string `json:"target" yaml:"target"`
}

// Part is one published atom reference in the metadata.
type Part struct {
	Meta string `json:"meta" yaml:"meta"`
	Type string `json:"type" yaml:"type"`
}

// Meta is the top-level SDK metadata document.
type Meta struct {
	SchemaVersion string `json:"schema_version" yaml:"schema_version"`
	ID            string `json:"id" yaml:"id"`
	Arch          Arch   `json:"arch" yaml:"arch"`
	Parts         []Part `json:"parts" yaml:"parts"`
}

// Build derives Meta from a closure. id must be a valid semantic version;
// every atom becomes a part named by its identifier, typed by its "type" tag
// (or its domain when untagged). Parts come out sorted because the closure
// is sorted.
func Build(id string, arch Arch, closure *atom.Closure) (*Meta, error) {
	if _, err := semver.NewVersion(id); err != nil {
		return nil, errors.Wrapf(err, "invalid SDK id %q, expected a semantic version", id)
	}
	if arch.Host == "" {
		return nil, errors.New("SDK metadata requires a host architecture")
	}

	parts := make([]Part, 0, len(closure.Atoms))
	for _, a := range closure.Atoms {
		partType := a.Tags["type"]
		if partType == "" {
			partType = a.ID.Domain
		}
		parts = append(parts, Part{
			Meta: a.ID.String(),
			Type: partType,
		})
	}

	return &Meta{
		SchemaVersion: SchemaVersion,
		ID:            id,
		Arch:          arch,
		Parts:         parts,
	}, nil
}

// EncodeJSON renders the document as indented JSON with a trailing newline.
func (m *Meta) EncodeJSON() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode SDK metadata")
	}
	return append(data, '\n'), nil
}

// EncodeYAML renders the document as YAML.
func (m *Meta) EncodeYAML() ([]byte, error) {
	data, err := yaml.Marshal(m)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode SDK metadata")
	}
	return data, nil
}
