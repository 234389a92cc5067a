package emitter

import (
	"github.com/saffronjam/zydis-bindgen/internal/common"
)

// rustEmitter renders #[repr(C)] enums. MAX_VALUE members arrive as
// pending constants and follow the closing brace as usize bindings.
type rustEmitter struct {
	wrapped map[string]string // enums the Rust crate wraps in its own type
}

func (r *rustEmitter) IndentString() string { return "    " }

func (r *rustEmitter) FileHeader(w *common.Writer) error {
	return writeBanner(w, Rust, bannerData{})
}

func (r *rustEmitter) StartEnum(w *common.Writer, s *EnumState) {
	name := s.Enum.Name
	if wrapper, ok := r.wrapped[name]; ok {
		w.WriteLinef("/// We wrap this in a nicer rust enum `%s` already,", wrapper)
		w.WriteLine("/// use that instead.")
		name = s.Enum.CName()
	} else {
		for _, line := range common.DocLines(s.Enum.Doc) {
			w.WriteLinef("/// %s", line)
		}
	}
	w.WriteLine(`#[cfg_attr(feature = "serialization", derive(Deserialize, Serialize))]`)
	w.WriteLine("#[derive(Clone, Copy, Debug, Eq, PartialEq)]")
	// rustc rejects a repr on zero-variant enums.
	if len(s.Enum.Emitted()) > 0 {
		w.WriteLine("#[repr(C)]")
	}
	w.WriteLinef("pub enum %s {", name)
	w.Indent()
}

func (r *rustEmitter) Member(w *common.Writer, s *EnumState, m common.NormalizedMember) {
	for _, line := range common.DocLines(m.Doc) {
		w.WriteLinef("/// %s", line)
	}
	w.WriteLinef("%s = %s,", m.EmittedName, m.Value)
}

func (r *rustEmitter) EndEnum(w *common.Writer, s *EnumState) {
	w.Dedent()
	w.WriteLine("}")
	w.Newline()
	for _, c := range s.Pending {
		w.WriteLinef("pub const %s: usize = %s;", c.EmittedName, c.Value)
		w.Newline()
	}
}

func (r *rustEmitter) FileFooter(w *common.Writer) {}
