package diff

import (
	"sort"
	"strconv"

	"github.com/meridian-os/sdkforge/fidl"
)

// Libraries compares two versions of a library in a single recursive pass.
// Declarations are intersected by fully-qualified name; a kind mismatch is
// reported as a change, never a crash. Output order is deterministic:
// declarations by name, members by ordinal or name.
func Libraries(before, after *fidl.Library) []Change {
	var changes []Change

	beforeDecls := declIndex(before)
	afterDecls := declIndex(after)

	names := make([]string, 0, len(beforeDecls))
	for name := range beforeDecls {
		names = append(names, name)
	}
	for name := range afterDecls {
		if _, ok := beforeDecls[name]; !ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	for _, name := range names {
		bKind, inBefore := beforeDecls[name]
		aKind, inAfter := afterDecls[name]

		switch {
		case !inBefore:
			changes = append(changes, newChange(DeclAdded, name, "", "", string(aKind)))
		case !inAfter:
			changes = append(changes, newChange(DeclRemoved, name, "", string(bKind), ""))
		case bKind != aKind:
			changes = append(changes, newChange(DeclKindChanged, name, "", string(bKind), string(aKind)))
		default:
			changes = append(changes, compareDecl(bKind, name, before, after)...)
		}
	}
	return changes
}

func declIndex(lib *fidl.Library) map[string]fidl.DeclKind {
	index := make(map[string]fidl.DeclKind)
	for _, d := range lib.Declarations() {
		index[d.Name] = d.Kind
	}
	return index
}

func compareDecl(kind fidl.DeclKind, name string, before, after *fidl.Library) []Change {
	switch kind {
	case fidl.KindStruct:
		return compareStructs(findStruct(before, name), findStruct(after, name))
	case fidl.KindTable:
		return compareTables(findTable(before, name), findTable(after, name))
	case fidl.KindUnion:
		return compareUnions(findUnion(before, name), findUnion(after, name))
	case fidl.KindEnum:
		return compareEnums(findEnum(before, name), findEnum(after, name))
	case fidl.KindProtocol:
		return compareProtocols(findProtocol(before, name), findProtocol(after, name))
	}
	return nil
}

func findStruct(lib *fidl.Library, name string) fidl.Struct {
	for _, d := range lib.Structs {
		if d.Name == name {
			return d
		}
	}
	return fidl.Struct{}
}

func findTable(lib *fidl.Library, name string) fidl.Table {
	for _, d := range lib.Tables {
		if d.Name == name {
			return d
		}
	}
	return fidl.Table{}
}

func findUnion(lib *fidl.Library, name string) fidl.Union {
	for _, d := range lib.Unions {
		if d.Name == name {
			return d
		}
	}
	return fidl.Union{}
}

func findEnum(lib *fidl.Library, name string) fidl.Enum {
	for _, d := range lib.Enums {
		if d.Name == name {
			return d
		}
	}
	return fidl.Enum{}
}

func findProtocol(lib *fidl.Library, name string) fidl.Protocol {
	for _, d := range lib.Protocols {
		if d.Name == name {
			return d
		}
	}
	return fidl.Protocol{}
}

// compareStructs intersects members by name. Struct layout is fixed, so
// essentially everything here is ABI-affecting.
func compareStructs(before, after fidl.Struct) []Change {
	var changes []Change
	if before.Size != after.Size {
		changes = append(changes, newChange(StructSizeChanged, before.Name, "",
			strconv.Itoa(before.Size), strconv.Itoa(after.Size)))
	}

	afterByName := make(map[string]fidl.StructMember, len(after.Members))
	for _, m := range after.Members {
		afterByName[m.Name] = m
	}
	seen := make(map[string]struct{}, len(before.Members))

	for _, b := range before.Members {
		seen[b.Name] = struct{}{}
		a, ok := afterByName[b.Name]
		if !ok {
			changes = append(changes, newChange(StructMemberRemoved, before.Name, b.Name, b.Type.String(), ""))
			continue
		}
		if !b.Type.Equal(a.Type) {
			changes = append(changes, newChange(StructMemberTypeChanged, before.Name, b.Name, b.Type.String(), a.Type.String()))
		}
		if b.Offset != a.Offset {
			changes = append(changes, newChange(StructMemberMoved, before.Name, b.Name,
				strconv.Itoa(b.Offset), strconv.Itoa(a.Offset)))
		}
		if b.Size != a.Size {
			changes = append(changes, newChange(StructMemberSizeChanged, before.Name, b.Name,
				strconv.Itoa(b.Size), strconv.Itoa(a.Size)))
		}
	}
	for _, a := range after.Members {
		if _, ok := seen[a.Name]; !ok {
			changes = append(changes, newChange(StructMemberAdded, before.Name, a.Name, "", a.Type.String()))
		}
	}
	return changes
}

// compareTables intersects members by ordinal; the ordinal is the wire
// identity, names are advisory.
func compareTables(before, after fidl.Table) []Change {
	var changes []Change

	afterByOrdinal := make(map[int]fidl.TableMember, len(after.Members))
	for _, m := range after.Members {
		afterByOrdinal[m.Ordinal] = m
	}
	seen := make(map[int]struct{}, len(before.Members))

	for _, b := range sortedTableMembers(before.Members) {
		seen[b.Ordinal] = struct{}{}
		a, ok := afterByOrdinal[b.Ordinal]
		if !ok {
			changes = append(changes, newChange(TableMemberRemoved, before.Name, b.Name, b.Type.String(), ""))
			continue
		}
		if b.Name != a.Name {
			changes = append(changes, newChange(TableMemberRenamed, before.Name, strconv.Itoa(b.Ordinal), b.Name, a.Name))
		}
		if !b.Type.Equal(a.Type) {
			changes = append(changes, newChange(TableMemberTypeChanged, before.Name, a.Name, b.Type.String(), a.Type.String()))
		}
	}
	for _, a := range sortedTableMembers(after.Members) {
		if _, ok := seen[a.Ordinal]; !ok {
			changes = append(changes, newChange(TableMemberAdded, before.Name, a.Name, "", a.Type.String()))
		}
	}
	return changes
}

func sortedTableMembers(members []fidl.TableMember) []fidl.TableMember {
	out := make([]fidl.TableMember, len(members))
	copy(out, members)
	sort.Slice(out, func(i, j int) bool { return out[i].Ordinal < out[j].Ordinal })
	return out
}

func compareUnions(before, after fidl.Union) []Change {
	var changes []Change

	afterByOrdinal := make(map[int]fidl.UnionMember, len(after.Members))
	for _, m := range after.Members {
		afterByOrdinal[m.Ordinal] = m
	}
	seen := make(map[int]struct{}, len(before.Members))

	for _, b := range sortedUnionMembers(before.Members) {
		seen[b.Ordinal] = struct{}{}
		a, ok := afterByOrdinal[b.Ordinal]
		if !ok {
			changes = append(changes, newChange(UnionMemberRemoved, before.Name, b.Name, b.Type.String(), ""))
			continue
		}
		if b.Name != a.Name {
			changes = append(changes, newChange(UnionMemberRenamed, before.Name, strconv.Itoa(b.Ordinal), b.Name, a.Name))
		}
		if !b.Type.Equal(a.Type) {
			changes = append(changes, newChange(UnionMemberTypeChanged, before.Name, a.Name, b.Type.String(), a.Type.String()))
		}
	}
	for _, a := range sortedUnionMembers(after.Members) {
		if _, ok := seen[a.Ordinal]; !ok {
			changes = append(changes, newChange(UnionMemberAdded, before.Name, a.Name, "", a.Type.String()))
		}
	}
	return changes
}

func sortedUnionMembers(members []fidl.UnionMember) []fidl.UnionMember {
	out := make([]fidl.UnionMember, len(members))
	copy(out, members)
	sort.Slice(out, func(i, j int) bool { return out[i].Ordinal < out[j].Ordinal })
	return out
}

func compareEnums(before, after fidl.Enum) []Change {
	var changes []Change
	if before.Type != after.Type {
		changes = append(changes, newChange(EnumTypeChanged, before.Name, "", before.Type, after.Type))
	}

	afterByName := make(map[string]fidl.EnumMember, len(after.Members))
	for _, m := range after.Members {
		afterByName[m.Name] = m
	}
	seen := make(map[string]struct{}, len(before.Members))

	for _, b := range before.Members {
		seen[b.Name] = struct{}{}
		a, ok := afterByName[b.Name]
		if !ok {
			changes = append(changes, newChange(EnumMemberRemoved, before.Name, b.Name, b.Value, ""))
			continue
		}
		if b.Value != a.Value {
			changes = append(changes, newChange(EnumMemberValueChanged, before.Name, b.Name, b.Value, a.Value))
		}
	}
	for _, a := range after.Members {
		if _, ok := seen[a.Name]; !ok {
			changes = append(changes, newChange(EnumMemberAdded, before.Name, a.Name, "", a.Value))
		}
	}
	return changes
}

// compareProtocols intersects methods by ordinal. Signature comparison is on
// the canonical parameter rendering, so any request/response shape change is
// a single change per direction.
func compareProtocols(before, after fidl.Protocol) []Change {
	var changes []Change

	afterByOrdinal := make(map[uint64]fidl.Method, len(after.Methods))
	for _, m := range after.Methods {
		afterByOrdinal[m.Ordinal] = m
	}
	seen := make(map[uint64]struct{}, len(before.Methods))

	for _, b := range sortedMethods(before.Methods) {
		seen[b.Ordinal] = struct{}{}
		a, ok := afterByOrdinal[b.Ordinal]
		if !ok {
			changes = append(changes, newChange(ProtocolMethodRemoved, before.Name, b.Name, signature(b), ""))
			continue
		}
		if b.Name != a.Name {
			changes = append(changes, newChange(ProtocolMethodRenamed, before.Name, strconv.FormatUint(b.Ordinal, 10), b.Name, a.Name))
		}
		if reqB, reqA := direction(b.HasRequest, b.Request), direction(a.HasRequest, a.Request); reqB != reqA {
			changes = append(changes, newChange(ProtocolMethodRequestChanged, before.Name, a.Name, reqB, reqA))
		}
		if respB, respA := direction(b.HasResponse, b.Response), direction(a.HasResponse, a.Response); respB != respA {
			changes = append(changes, newChange(ProtocolMethodResponseChanged, before.Name, a.Name, respB, respA))
		}
	}
	for _, a := range sortedMethods(after.Methods) {
		if _, ok := seen[a.Ordinal]; !ok {
			changes = append(changes, newChange(ProtocolMethodAdded, before.Name, a.Name, "", signature(a)))
		}
	}
	return changes
}

func sortedMethods(methods []fidl.Method) []fidl.Method {
	out := make([]fidl.Method, len(methods))
	copy(out, methods)
	sort.Slice(out, func(i, j int) bool { return out[i].Ordinal < out[j].Ordinal })
	return out
}

func direction(present bool, params []fidl.Parameter) string {
	if !present {
		return "-"
	}
	sig := "("
	for i, p := range params {
		if i > 0 {
			sig += ", "
		}
		sig += p.Type.String()
	}
	return sig + ")"
}

func signature(m fidl.Method) string {
	return direction(m.HasRequest, m.Request) + " -> " + direction(m.HasResponse, m.Response)
}
