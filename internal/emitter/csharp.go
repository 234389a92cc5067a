package emitter

import (
	"github.com/saffronjam/zydis-bindgen/internal/common"
)

type csEmitter struct {
	namespace string
}

func (c *csEmitter) IndentString() string { return "    " }

func (c *csEmitter) FileHeader(w *common.Writer) error {
	if err := writeBanner(w, CSharp, bannerData{}); err != nil {
		return err
	}
	if c.namespace != "" {
		w.WriteLinef("namespace %s", c.namespace)
		w.WriteLine("{")
		w.Indent()
	}
	return nil
}

func (c *csEmitter) StartEnum(w *common.Writer, s *EnumState) {
	writeSummary(w, s.Enum.Doc)
	if common.FitsInt32(s.Enum) {
		w.WriteLinef("public enum %s", s.Enum.Name)
	} else {
		w.WriteLinef("public enum %s : long", s.Enum.Name)
	}
	w.WriteLine("{")
	w.Indent()
}

func (c *csEmitter) Member(w *common.Writer, s *EnumState, m common.NormalizedMember) {
	writeSummary(w, m.Doc)
	w.WriteLinef("%s = %s,", m.EmittedName, m.Value)
}

func (c *csEmitter) EndEnum(w *common.Writer, s *EnumState) {
	w.Dedent()
	w.WriteLine("}")
	w.Newline()
}

func (c *csEmitter) FileFooter(w *common.Writer) {
	if c.namespace != "" {
		w.Dedent()
		w.WriteLine("}")
	}
}

func writeSummary(w *common.Writer, doc string) {
	lines := common.DocLines(doc)
	if len(lines) == 0 {
		return
	}
	w.WriteLine("/// <summary>")
	for _, line := range lines {
		w.WriteLinef("/// %s", common.EscapeXML(line))
	}
	w.WriteLine("/// </summary>")
}
