// Package fidl models the compiled JSON IR of a FIDL library: the declaration
// kinds the compatibility differ cares about (structs, tables, unions, enums,
// protocols) with the structural metadata needed to detect ABI breaks.
package fidl

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/meridian-os/sdkforge/errors"
)

// DeclKind names a declaration kind in the IR.
type DeclKind string

const (
	KindStruct   DeclKind = "struct"
	KindTable    DeclKind = "table"
	KindUnion    DeclKind = "union"
	KindEnum     DeclKind = "enum"
	KindProtocol DeclKind = "protocol"
)

// Library is one compiled FIDL library.
type Library struct {
	Name      string     `json:"name"`
	Structs   []Struct   `json:"struct_declarations"`
	Tables    []Table    `json:"table_declarations"`
	Unions    []Union    `json:"union_declarations"`
	Enums     []Enum     `json:"enum_declarations"`
	Protocols []Protocol `json:"protocol_declarations"`
}

// Type is a structured type reference. Exactly the fields that affect wire
// compatibility are modeled; everything compares through the canonical
// String rendering.
type Type struct {
	Kind         string `json:"kind"` // primitive, identifier, string, vector, array, handle
	Subtype      string `json:"subtype,omitempty"`
	Identifier   string `json:"identifier,omitempty"`
	ElementType  *Type  `json:"element_type,omitempty"`
	ElementCount *int   `json:"element_count,omitempty"`
	Nullable     bool   `json:"nullable,omitempty"`
}

// String renders the type canonically, e.g. "vector<int32>:16?".
func (t Type) String() string {
	var b strings.Builder
	switch t.Kind {
	case "primitive":
		b.WriteString(t.Subtype)
	case "identifier":
		b.WriteString(t.Identifier)
	case "string":
		b.WriteString("string")
	case "handle":
		b.WriteString("handle")
		if t.Subtype != "" {
			b.WriteString("<" + t.Subtype + ">")
		}
	case "vector", "array":
		b.WriteString(t.Kind)
		if t.ElementType != nil {
			b.WriteString("<" + t.ElementType.String() + ">")
		}
	default:
		b.WriteString(t.Kind)
	}
	if t.ElementCount != nil {
		fmt.Fprintf(&b, ":%d", *t.ElementCount)
	}
	if t.Nullable {
		b.WriteString("?")
	}
	return b.String()
}

// Equal reports whether two type references are wire-identical.
func (t Type) Equal(other Type) bool {
	return t.String() == other.String()
}

// Struct is a fixed-layout declaration. Offsets and sizes are part of the ABI.
type Struct struct {
	Name    string         `json:"name"`
	Size    int            `json:"size"`
	Members []StructMember `json:"members"`
}

type StructMember struct {
	Name   string `json:"name"`
	Type   Type   `json:"type"`
	Offset int    `json:"offset"`
	Size   int    `json:"size"`
}

// Table is an extensible declaration; members are identified by ordinal on
// the wire, names are source-level only.
type Table struct {
	Name    string        `json:"name"`
	Members []TableMember `json:"members"`
}

type TableMember struct {
	Ordinal int    `json:"ordinal"`
	Name    string `json:"name"`
	Type    Type   `json:"type"`
}

// Union is a tagged variant; members are identified by ordinal on the wire.
type Union struct {
	Name    string        `json:"name"`
	Members []UnionMember `json:"members"`
}

type UnionMember struct {
	Ordinal int    `json:"ordinal"`
	Name    string `json:"name"`
	Type    Type   `json:"type"`
}

// Enum is a named integer type.
type Enum struct {
	Name    string       `json:"name"`
	Type    string       `json:"type"` // underlying primitive, e.g. uint32
	Members []EnumMember `json:"members"`
}

type EnumMember struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Protocol is a set of methods identified by ordinal on the wire.
type Protocol struct {
	Name    string   `json:"name"`
	Methods []Method `json:"methods"`
}

type Method struct {
	Ordinal     uint64      `json:"ordinal"`
	Name        string      `json:"name"`
	HasRequest  bool        `json:"has_request"`
	Request     []Parameter `json:"maybe_request,omitempty"`
	HasResponse bool        `json:"has_response"`
	Response    []Parameter `json:"maybe_response,omitempty"`
}

type Parameter struct {
	Name string `json:"name"`
	Type Type   `json:"type"`
}

// Decl is a name/kind handle onto one declaration, used to pair declarations
// across two library versions.
type Decl struct {
	Name string
	Kind DeclKind
}

// Declarations returns every declaration in the library, sorted by name.
func (l *Library) Declarations() []Decl {
	decls := make([]Decl, 0,
		len(l.Structs)+len(l.Tables)+len(l.Unions)+len(l.Enums)+len(l.Protocols))
	for _, d := range l.Structs {
		decls = append(decls, Decl{Name: d.Name, Kind: KindStruct})
	}
	for _, d := range l.Tables {
		decls = append(decls, Decl{Name: d.Name, Kind: KindTable})
	}
	for _, d := range l.Unions {
		decls = append(decls, Decl{Name: d.Name, Kind: KindUnion})
	}
	for _, d := range l.Enums {
		decls = append(decls, Decl{Name: d.Name, Kind: KindEnum})
	}
	for _, d := range l.Protocols {
		decls = append(decls, Decl{Name: d.Name, Kind: KindProtocol})
	}
	sort.Slice(decls, func(i, j int) bool { return decls[i].Name < decls[j].Name })
	return decls
}

// LoadLibrary reads a compiled FIDL library IR from JSON. Malformed IR is a
// normal wrapped load error, never a crash.
func LoadLibrary(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read FIDL IR %s", path)
	}
	return DecodeLibrary(data, path)
}

// DecodeLibrary decodes library IR from bytes; name is used in error messages.
func DecodeLibrary(data []byte, name string) (*Library, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var lib Library
	if err := dec.Decode(&lib); err != nil {
		return nil, errors.Wrapf(errors.ErrMalformedManifest, "FIDL IR %s: %v", name, err)
	}
	if lib.Name == "" {
		return nil, errors.Wrapf(errors.ErrMalformedManifest, "FIDL IR %s: missing library name", name)
	}

	seen := make(map[string]DeclKind)
	for _, d := range lib.Declarations() {
		if prev, dup := seen[d.Name]; dup {
			return nil, errors.Wrapf(errors.ErrMalformedManifest,
				"FIDL IR %s: declaration %s defined as both %s and %s", name, d.Name, prev, d.Kind)
		}
		seen[d.Name] = d.Kind
	}
	return &lib, nil
}
