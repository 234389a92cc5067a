package common

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	RequiredBits = "REQUIRED_BITS"
	MaxValue     = "MAX_VALUE"
	None         = "NONE"
)

// Action is the decision taken for one member.
type Action int

const (
	Keep Action = iota
	Suppress
	Constant
)

// Classification is the result of Converter.Classify.
type Classification struct {
	Action Action
	Escape bool // prepend '_' before further processing
}

// Converter turns raw enums into enums prepared for one target profile.
type Converter struct {
	Profile      TargetProfile
	EnumPrefix   string
	MemberPrefix string
	PaddingEnum  string

	SkipNameRegex []*regexp.Regexp
}

// NewConverter initializes a Converter from the configuration and the
// profile of the selected target.
func NewConverter(cfg *Config, profile TargetProfile) (*Converter, error) {
	c := &Converter{
		Profile:      profile,
		EnumPrefix:   cfg.EnumPrefix,
		MemberPrefix: cfg.MemberPrefix,
		PaddingEnum:  cfg.PaddingEnum,
	}

	for _, pattern := range cfg.SkipEnums {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("compiling skip pattern %q: %w", pattern, err)
		}
		c.SkipNameRegex = append(c.SkipNameRegex, re)
	}

	return c, nil
}

// Accepts reports whether a top-level enum belongs to the project.
func (c *Converter) Accepts(e RawEnum) bool {
	return strings.HasPrefix(e.QualifiedName, c.EnumPrefix) && e.Name(c.EnumPrefix) != ""
}

// Excluded reports whether the whole enum is skipped for this target.
func (c *Converter) Excluded(enumName string) bool {
	if _, ok := c.Profile.Bitflags[enumName]; ok {
		return true
	}
	for _, re := range c.SkipNameRegex {
		if re.MatchString(enumName) {
			return true
		}
	}
	return false
}

// Classify decides what happens to a member given its stripped name.
func (c *Converter) Classify(stripped, enumName string, ordinal int) Classification {
	switch {
	case stripped == RequiredBits:
		return Classification{Action: Suppress}
	case stripped == MaxValue:
		switch c.Profile.MaxValue {
		case MaxValueKeep:
			return Classification{Action: Keep}
		case MaxValueConstant:
			if enumName == c.PaddingEnum {
				return Classification{Action: Suppress}
			}
			return Classification{Action: Constant}
		default:
			return Classification{Action: Suppress}
		}
	case c.Profile.SuppressLeadingNone && ordinal == 0 && stripped == None:
		return Classification{Action: Suppress}
	}

	_, reserved := c.Profile.Reserved[stripped]
	return Classification{
		Action: Keep,
		Escape: reserved || (stripped[0] >= '0' && stripped[0] <= '9'),
	}
}

// Normalize prepares every member of e for the target. The returned error
// wraps ErrEmptyMemberName when a member has no name left after the common
// prefix is removed.
func (c *Converter) Normalize(e RawEnum) (Enum, error) {
	enumName := e.Name(c.EnumPrefix)
	out := Enum{
		Name:          enumName,
		QualifiedName: e.QualifiedName,
		Doc:           e.Doc,
		Members:       make([]NormalizedMember, 0, len(e.Members)),
	}

	names := make([]string, len(e.Members))
	for i, m := range e.Members {
		names[i] = m.QualifiedName
	}
	skip := c.prefixLength(enumName, names)

	for i, m := range e.Members {
		stripped, err := StripPrefix(m.QualifiedName, skip)
		if err != nil {
			return Enum{}, fmt.Errorf("enum %s member %s: %w", e.QualifiedName, m.QualifiedName, err)
		}

		class := c.Classify(stripped, enumName, i)
		nm := NormalizedMember{
			QualifiedName: m.QualifiedName,
			Value:         strconv.FormatInt(m.Value, 10),
			Doc:           m.Doc,
		}

		switch class.Action {
		case Suppress:
			nm.Suppressed = true
		case Constant:
			nm.Constant = true
			nm.EmittedName = strings.TrimPrefix(m.QualifiedName, c.MemberPrefix)
		default:
			nm.EmittedName = c.emittedName(m.QualifiedName, stripped, enumName, class.Escape)
		}

		out.Members = append(out.Members, nm)
	}

	return out, nil
}

// prefixLength returns the length of the member prefix of an enum. A lone
// member has nothing to be compared with, so its prefix is derived from the
// enum name ("One" → "ZYDIS_ONE_"), falling back to a sentinel suffix.
func (c *Converter) prefixLength(enumName string, names []string) int {
	if len(names) != 1 {
		return CommonPrefixLength(names)
	}

	name := names[0]
	prefix := c.MemberPrefix + strings.ToUpper(ToSnakeCase(enumName)) + "_"
	if strings.HasPrefix(name, prefix) && len(name) > len(prefix) {
		return len(prefix)
	}
	for _, sentinel := range []string{RequiredBits, MaxValue} {
		if strings.HasSuffix(name, "_"+sentinel) {
			return len(name) - len(sentinel)
		}
	}
	return 0
}

func (c *Converter) emittedName(qualified, stripped, enumName string, escape bool) string {
	if c.Profile.QualifiedNames {
		return qualified
	}

	name := stripped
	if escape {
		name = "_" + name
	}
	if c.Profile.Casing == CasingUpperCamel {
		name = ToUpperCamelCase(name)
	}
	if escape && c.Profile.RecombineEscaped {
		name = enumName + name
	}
	return name
}
