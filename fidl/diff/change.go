// Package diff compares two versions of a compiled FIDL library and reports
// typed compatibility changes, each classified as hard (ABI-breaking) or
// soft (source-level only).
package diff

import (
	"fmt"
)

// Severity classifies a change's compatibility impact.
type Severity string

const (
	// SeverityHard marks binary-incompatible changes: existing encoded
	// messages or linked binaries break.
	SeverityHard Severity = "hard"
	// SeveritySoft marks source-incompatible changes: recompilation may
	// fail, but the wire format is unchanged.
	SeveritySoft Severity = "soft"
)

// Kind names one detected difference between a before/after declaration pair.
type Kind string

const (
	DeclAdded       Kind = "DeclAdded"
	DeclRemoved     Kind = "DeclRemoved"
	DeclKindChanged Kind = "DeclKindChanged"

	StructSizeChanged       Kind = "StructSizeChanged"
	StructMemberAdded       Kind = "StructMemberAdded"
	StructMemberRemoved     Kind = "StructMemberRemoved"
	StructMemberTypeChanged Kind = "StructMemberTypeChanged"
	StructMemberMoved       Kind = "StructMemberMoved"
	StructMemberSizeChanged Kind = "StructMemberSizeChanged"

	TableMemberAdded       Kind = "TableMemberAdded"
	TableMemberRemoved     Kind = "TableMemberRemoved"
	TableMemberRenamed     Kind = "TableMemberRenamed"
	TableMemberTypeChanged Kind = "TableMemberTypeChanged"

	UnionMemberAdded       Kind = "UnionMemberAdded"
	UnionMemberRemoved     Kind = "UnionMemberRemoved"
	UnionMemberRenamed     Kind = "UnionMemberRenamed"
	UnionMemberTypeChanged Kind = "UnionMemberTypeChanged"

	EnumTypeChanged        Kind = "EnumTypeChanged"
	EnumMemberAdded        Kind = "EnumMemberAdded"
	EnumMemberRemoved      Kind = "EnumMemberRemoved"
	EnumMemberValueChanged Kind = "EnumMemberValueChanged"

	ProtocolMethodAdded           Kind = "ProtocolMethodAdded"
	ProtocolMethodRemoved         Kind = "ProtocolMethodRemoved"
	ProtocolMethodRenamed         Kind = "ProtocolMethodRenamed"
	ProtocolMethodRequestChanged  Kind = "ProtocolMethodRequestChanged"
	ProtocolMethodResponseChanged Kind = "ProtocolMethodResponseChanged"
)

// severityOf classifies each change kind. Anything that alters wire layout
// (struct offsets/sizes, reused or retyped ordinals, enum representation,
// method signatures) is hard; additions behind fresh ordinals and pure
// renames of wire-anonymous members are soft.
var severityOf = map[Kind]Severity{
	DeclAdded:       SeveritySoft,
	DeclRemoved:     SeveritySoft,
	DeclKindChanged: SeverityHard,

	StructSizeChanged:       SeverityHard,
	StructMemberAdded:       SeverityHard,
	StructMemberRemoved:     SeverityHard,
	StructMemberTypeChanged: SeverityHard,
	StructMemberMoved:       SeverityHard,
	StructMemberSizeChanged: SeverityHard,

	TableMemberAdded:       SeveritySoft,
	TableMemberRemoved:     SeverityHard,
	TableMemberRenamed:     SeveritySoft,
	TableMemberTypeChanged: SeverityHard,

	UnionMemberAdded:       SeverityHard,
	UnionMemberRemoved:     SeverityHard,
	UnionMemberRenamed:     SeveritySoft,
	UnionMemberTypeChanged: SeverityHard,

	EnumTypeChanged:        SeverityHard,
	EnumMemberAdded:        SeveritySoft,
	EnumMemberRemoved:      SeveritySoft,
	EnumMemberValueChanged: SeverityHard,

	ProtocolMethodAdded:           SeveritySoft,
	ProtocolMethodRemoved:         SeverityHard,
	ProtocolMethodRenamed:         SeveritySoft,
	ProtocolMethodRequestChanged:  SeverityHard,
	ProtocolMethodResponseChanged: SeverityHard,
}

// Change is one detected difference, annotated with its classification.
type Change struct {
	Kind     Kind     `json:"kind"`
	Decl     string   `json:"decl"`
	Member   string   `json:"member,omitempty"`
	Before   string   `json:"before,omitempty"`
	After    string   `json:"after,omitempty"`
	Severity Severity `json:"severity"`
}

func newChange(kind Kind, decl, member, before, after string) Change {
	return Change{
		Kind:     kind,
		Decl:     decl,
		Member:   member,
		Before:   before,
		After:    after,
		Severity: severityOf[kind],
	}
}

// String renders the change for terminal output.
func (c Change) String() string {
	where := c.Decl
	if c.Member != "" {
		where += "." + c.Member
	}
	switch {
	case c.Before != "" && c.After != "":
		return fmt.Sprintf("[%s] %s: %s (%s -> %s)", c.Severity, where, c.Kind, c.Before, c.After)
	case c.Before != "":
		return fmt.Sprintf("[%s] %s: %s (was %s)", c.Severity, where, c.Kind, c.Before)
	case c.After != "":
		return fmt.Sprintf("[%s] %s: %s (now %s)", c.Severity, where, c.Kind, c.After)
	default:
		return fmt.Sprintf("[%s] %s: %s", c.Severity, where, c.Kind)
	}
}

// HasHard reports whether any change in the list is binary-incompatible.
func HasHard(changes []Change) bool {
	for _, c := range changes {
		if c.Severity == SeverityHard {
			return true
		}
	}
	return false
}
