package common

import (
	"errors"
	"strings"
	"unicode"

	"github.com/golang-cz/textcase"
)

// ErrEmptyMemberName is returned when stripping the common prefix leaves
// nothing of a member name.
var ErrEmptyMemberName = errors.New("empty member name after prefix removal")

// CommonPrefixLength returns the length of the longest prefix shared by all
// names. Empty and single-element input yield 0.
func CommonPrefixLength(names []string) int {
	if len(names) < 2 {
		return 0
	}
	n := len(names[0])
	for _, name := range names[1:] {
		if len(name) < n {
			n = len(name)
		}
		for i := 0; i < n; i++ {
			if name[i] != names[0][i] {
				n = i
				break
			}
		}
	}
	return n
}

// StripPrefix removes the first n bytes of name.
func StripPrefix(name string, n int) (string, error) {
	if n >= len(name) {
		return "", ErrEmptyMemberName
	}
	return name[n:], nil
}

// ToUpperCamelCase converts UPPER_SNAKE to UpperCamel. Empty segments keep
// their underscore: "_1" → "_1", "A__B" → "A_B".
func ToUpperCamelCase(name string) string {
	var sb strings.Builder
	for _, seg := range strings.Split(name, "_") {
		if seg == "" {
			sb.WriteByte('_')
			continue
		}
		r := []rune(seg)
		sb.WriteRune(unicode.ToUpper(r[0]))
		sb.WriteString(strings.ToLower(string(r[1:])))
	}
	return sb.String()
}

// ToSnakeCase converts CamelCase to snake_case keeping acronym runs
// together: "CPUFlags" → "cpu_flags".
func ToSnakeCase(name string) string {
	r := []rune(name)
	var sb strings.Builder
	for i, c := range r {
		if i > 0 && unicode.IsUpper(c) {
			prev := r[i-1]
			switch {
			case unicode.IsLower(prev), unicode.IsDigit(prev):
				sb.WriteByte('_')
			case unicode.IsUpper(prev) && i+1 < len(r) && unicode.IsLower(r[i+1]):
				sb.WriteByte('_')
			}
		}
		sb.WriteRune(unicode.ToLower(c))
	}
	return sb.String()
}

// OutputFileName returns the conventional file name for generated code of
// the given mode.
func OutputFileName(mode, base string) string {
	switch mode {
	case "rust":
		return textcase.SnakeCase(base) + ".rs"
	case "py":
		return textcase.SnakeCase(base) + ".py"
	case "pxd":
		return textcase.SnakeCase(base) + ".pxd"
	case "cs":
		return textcase.PascalCase(base) + ".cs"
	case "ocaml":
		return textcase.SnakeCase(base) + ".ml"
	default:
		return textcase.SnakeCase(base) + "." + mode
	}
}
