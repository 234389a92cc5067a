// Package emitter renders prepared enums as source code of one target
// language.
package emitter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/saffronjam/zydis-bindgen/internal/common"
)

// Mode names a target language.
type Mode string

const (
	Rust   Mode = "rust"
	Py     Mode = "py"
	Pxd    Mode = "pxd"
	CSharp Mode = "cs"
	OCaml  Mode = "ocaml"
)

// Modes lists every supported mode in usage order.
var Modes = []Mode{Rust, Py, Pxd, CSharp, OCaml}

var ErrUnknownMode = errors.New("unknown mode")

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w %q (want one of %s)", ErrUnknownMode, s, ModeList("|"))
}

// ModeList joins the mode names with sep.
func ModeList(sep string) string {
	names := make([]string, len(Modes))
	for i, m := range Modes {
		names[i] = string(m)
	}
	return strings.Join(names, sep)
}

// EnumState is the state of one enum while it is being emitted. Generate
// creates a fresh value for every enum; Pending is filled before StartEnum.
type EnumState struct {
	Enum    common.Enum
	Emitted int                       // members written so far
	Pending []common.NormalizedMember // constants placed after the enum body
}

// Emitter renders one target language. Suppressed members never reach it.
type Emitter interface {
	IndentString() string
	FileHeader(w *common.Writer) error
	StartEnum(w *common.Writer, s *EnumState)
	Member(w *common.Writer, s *EnumState, m common.NormalizedMember)
	EndEnum(w *common.Writer, s *EnumState)
	FileFooter(w *common.Writer)
}

// New returns the emitter for mode.
func New(mode Mode, cfg *common.Config) (Emitter, error) {
	tc := cfg.Target(string(mode))
	switch mode {
	case Rust:
		return &rustEmitter{wrapped: tc.Wrapped}, nil
	case Py:
		return &pyEmitter{}, nil
	case Pxd:
		return &pxdEmitter{externHeader: cfg.ExternHeader}, nil
	case CSharp:
		return &csEmitter{namespace: tc.Namespace}, nil
	case OCaml:
		return &ocamlEmitter{}, nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownMode, mode)
}

// Profile returns the naming and suppression rules of mode, with the
// configured reserved words, bitflag enums and casing applied.
func Profile(mode Mode, cfg *common.Config) common.TargetProfile {
	tc := cfg.Target(string(mode))
	p := common.TargetProfile{
		Reserved: common.Set(tc.Reserved...),
		Bitflags: common.Set(tc.Bitflags...),
		Casing:   common.CasingPreserve,
		MaxValue: common.MaxValueSuppress,
	}

	switch mode {
	case Rust:
		p.MaxValue = common.MaxValueConstant
		if tc.Casing != "" {
			p.Casing = tc.Casing
		}
	case Pxd:
		p.MaxValue = common.MaxValueKeep
		p.QualifiedNames = true
	case OCaml:
		p.SuppressLeadingNone = true
		p.RecombineEscaped = true
	}
	return p
}
