package common

import "strings"

// RawEnum is a top-level enum declaration as read from the header.
type RawEnum struct {
	QualifiedName string      // e.g. "ZydisMachineMode_"
	Members       []RawMember // declaration order
	Doc           string      // brief doc comment, may be empty
	File          string      // header the enum was declared in
}

// RawMember is a single enumerator.
type RawMember struct {
	QualifiedName string // e.g. "ZYDIS_MACHINE_MODE_LONG_64"
	Value         int64
	Doc           string
}

// Name returns the unqualified enum name: the project prefix and one
// trailing underscore removed ("ZydisMachineMode_" → "MachineMode").
func (e RawEnum) Name(prefix string) string {
	name := strings.TrimPrefix(e.QualifiedName, prefix)
	return strings.TrimSuffix(name, "_")
}

// NormalizedMember is a member prepared for one target.
type NormalizedMember struct {
	EmittedName   string
	QualifiedName string
	Value         string
	Doc           string
	Suppressed    bool
	Constant      bool // rendered as a standalone constant instead of a member
}

// Enum is an enum prepared for one target, ready to be emitted.
type Enum struct {
	Name          string // unqualified, e.g. "MachineMode"
	QualifiedName string // e.g. "ZydisMachineMode_"
	Doc           string
	Members       []NormalizedMember
}

// CName returns the typedef name of the enum.
func (e Enum) CName() string {
	return strings.TrimSuffix(e.QualifiedName, "_")
}

// Emitted returns the members that are neither suppressed nor constants.
func (e Enum) Emitted() []NormalizedMember {
	out := make([]NormalizedMember, 0, len(e.Members))
	for _, m := range e.Members {
		if !m.Suppressed && !m.Constant {
			out = append(out, m)
		}
	}
	return out
}

// Constants returns the members rendered as standalone constants.
func (e Enum) Constants() []NormalizedMember {
	var out []NormalizedMember
	for _, m := range e.Members {
		if m.Constant && !m.Suppressed {
			out = append(out, m)
		}
	}
	return out
}

// Casing selects how member identifiers are rendered.
type Casing string

const (
	CasingPreserve   Casing = "preserve"
	CasingUpperCamel Casing = "upperCamel"
)

// MaxValueRule selects what happens to a MAX_VALUE sentinel member.
type MaxValueRule string

const (
	MaxValueSuppress MaxValueRule = "suppress"
	MaxValueConstant MaxValueRule = "constant"
	MaxValueKeep     MaxValueRule = "keep"
)

// TargetProfile holds the naming, suppression and escaping rules of one
// output language.
type TargetProfile struct {
	Reserved map[string]struct{}
	Bitflags map[string]struct{}
	Casing   Casing
	MaxValue MaxValueRule

	SuppressLeadingNone bool // drop NONE at ordinal 0
	QualifiedNames      bool // emit the qualified source name
	RecombineEscaped    bool // escaped names become EnumName + "_suffix"
}

// Set builds a lookup set from a list of names.
func Set(names ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}
