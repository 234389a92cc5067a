package emitter

import (
	"github.com/saffronjam/zydis-bindgen/internal/common"
)

// pxdEmitter renders every enum as a ctypedef inside one cdef extern block.
// Members keep their qualified C names.
type pxdEmitter struct {
	externHeader string
}

func (p *pxdEmitter) IndentString() string { return "    " }

func (p *pxdEmitter) FileHeader(w *common.Writer) error {
	if err := writeBanner(w, Pxd, bannerData{ExternHeader: p.externHeader}); err != nil {
		return err
	}
	w.Indent()
	return nil
}

func (p *pxdEmitter) StartEnum(w *common.Writer, s *EnumState) {
	w.WriteLinef("ctypedef enum %s:", s.Enum.CName())
	w.Indent()
}

func (p *pxdEmitter) Member(w *common.Writer, s *EnumState, m common.NormalizedMember) {
	w.WriteLine(m.EmittedName)
}

func (p *pxdEmitter) EndEnum(w *common.Writer, s *EnumState) {
	if s.Emitted == 0 {
		w.WriteLine("pass")
	}
	w.Dedent()
	w.Newline()
}

func (p *pxdEmitter) FileFooter(w *common.Writer) {
	w.Dedent()
}
