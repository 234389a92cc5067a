package emitter

import (
	"strings"

	"github.com/saffronjam/zydis-bindgen/internal/common"
)

// docstringEscaper keeps a doc from closing the docstring early, either
// through a quote run or a trailing backslash.
var docstringEscaper = strings.NewReplacer(`\`, `\\`, `"""`, `\"\"\"`)

type pyEmitter struct{}

func (p *pyEmitter) IndentString() string { return "    " }

func (p *pyEmitter) FileHeader(w *common.Writer) error {
	return writeBanner(w, Py, bannerData{})
}

func (p *pyEmitter) StartEnum(w *common.Writer, s *EnumState) {
	w.WriteLinef("class %s(IntEnum):", s.Enum.Name)
	w.Indent()
	if lines := common.DocLines(s.Enum.Doc); len(lines) > 0 {
		w.WriteLinef(`"""%s"""`, docstringEscaper.Replace(strings.Join(lines, " ")))
	}
}

func (p *pyEmitter) Member(w *common.Writer, s *EnumState, m common.NormalizedMember) {
	for _, line := range common.DocLines(m.Doc) {
		w.WriteLinef("# %s", line)
	}
	w.WriteLinef("%s = %s", m.EmittedName, m.Value)
}

func (p *pyEmitter) EndEnum(w *common.Writer, s *EnumState) {
	if s.Emitted == 0 && s.Enum.Doc == "" {
		w.WriteLine("pass")
	}
	w.Dedent()
	w.Newline()
	w.Newline()
}

func (p *pyEmitter) FileFooter(w *common.Writer) {}
