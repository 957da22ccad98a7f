package symbols

import (
	"sort"
	"strings"
)

// Type is the one-character category code of a symbol.
type Type string

const (
	TypeText Type = "t" // code
	TypeData Type = "d" // initialized data
	TypeBSS  Type = "b" // zero-initialized data
)

// knownTypes is the fixed set of category codes. Records carrying any other
// code never match a filter.
var knownTypes = map[Type]bool{
	TypeText: true,
	TypeData: true,
	TypeBSS:  true,
}

// AllTypes returns every known category code in display order.
func AllTypes() []Type {
	return []Type{TypeText, TypeData, TypeBSS}
}

// Known reports whether t is one of the fixed category codes.
func (t Type) Known() bool { return knownTypes[t] }

// Record is a single symbol as produced by the size tooling.
type Record struct {
	Path []string `json:"path" yaml:"path"`
	Obj  string   `json:"obj" yaml:"obj"`
	Sym  string   `json:"sym" yaml:"sym"`
	Type Type     `json:"type" yaml:"type"`
	Size int64    `json:"size" yaml:"size"`

	// Index is the record's position in the source document. It survives
	// filtering so rejections always name the input record.
	Index int `json:"-" yaml:"-"`
}

// FullPath returns the branch names leading to the symbol: the path segments
// followed by the object name.
func (r Record) FullPath() []string {
	full := make([]string, 0, len(r.Path)+1)
	full = append(full, r.Path...)
	return append(full, r.Obj)
}

// Malformed describes an input record that could not be decoded into a Record.
type Malformed struct {
	Index  int    `json:"index"`
	Sym    string `json:"sym"`
	Reason string `json:"reason"`
}

// Document is the top-level symbol file.
type Document struct {
	App       string      `json:"app" yaml:"app"`
	Symbols   []Record    `json:"symbols" yaml:"symbols"`
	Malformed []Malformed `json:"malformed,omitempty" yaml:"-"`
}

// TypeSet is a set of selected category codes.
type TypeSet map[Type]struct{}

// NewTypeSet builds a set from the given codes. Unknown codes are dropped.
func NewTypeSet(types ...Type) TypeSet {
	s := make(TypeSet, len(types))
	for _, t := range types {
		if t.Known() {
			s[t] = struct{}{}
		}
	}
	return s
}

// ParseTypeSet builds a set from strings such as "t", "d" or "t,d,b".
func ParseTypeSet(values ...string) TypeSet {
	var types []Type
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				types = append(types, Type(part))
			}
		}
	}
	return NewTypeSet(types...)
}

// Has reports whether t is selected. Unknown codes are never selected.
func (s TypeSet) Has(t Type) bool {
	if !t.Known() {
		return false
	}
	_, ok := s[t]
	return ok
}

// Slice returns the selected codes in sorted order.
func (s TypeSet) Slice() []Type {
	out := make([]Type, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// String renders the set as a comma-separated list.
func (s TypeSet) String() string {
	parts := make([]string, 0, len(s))
	for _, t := range s.Slice() {
		parts = append(parts, string(t))
	}
	return strings.Join(parts, ",")
}
