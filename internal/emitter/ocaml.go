package emitter

import (
	"strings"

	"github.com/saffronjam/zydis-bindgen/internal/common"
)

var ocamlKeywords = common.Set(
	"and", "as", "assert", "begin", "class", "constraint", "do", "done",
	"downto", "else", "end", "exception", "external", "false", "for", "fun",
	"function", "functor", "if", "in", "include", "inherit", "initializer",
	"lazy", "let", "match", "method", "module", "mutable", "new", "nonrec",
	"object", "of", "open", "or", "private", "rec", "sig", "struct", "then",
	"to", "true", "try", "type", "val", "virtual", "when", "while", "with",
)

// ocamlEmitter renders variant types. Constructors carry no numeric tags;
// their position is their value.
type ocamlEmitter struct{}

func (o *ocamlEmitter) IndentString() string { return "  " }

func (o *ocamlEmitter) FileHeader(w *common.Writer) error {
	return writeBanner(w, OCaml, bannerData{})
}

func (o *ocamlEmitter) StartEnum(w *common.Writer, s *EnumState) {
	writeOCamlDoc(w, s.Enum.Doc)
	w.WriteLinef("type %s =", ocamlTypeName(s.Enum.Name))
	w.Indent()
}

func (o *ocamlEmitter) Member(w *common.Writer, s *EnumState, m common.NormalizedMember) {
	writeOCamlDoc(w, m.Doc)
	w.WriteLinef("| %s", m.EmittedName)
}

func (o *ocamlEmitter) EndEnum(w *common.Writer, s *EnumState) {
	if s.Emitted == 0 {
		w.WriteLine("|")
	}
	w.Dedent()
	w.Newline()
}

func (o *ocamlEmitter) FileFooter(w *common.Writer) {}

// ocamlTypeName lowercases the enum name with underscores, avoiding
// keywords.
func ocamlTypeName(name string) string {
	tn := common.ToSnakeCase(name)
	if _, ok := ocamlKeywords[tn]; ok {
		tn += "_"
	}
	return tn
}

func writeOCamlDoc(w *common.Writer, doc string) {
	lines := common.DocLines(doc)
	if len(lines) == 0 {
		return
	}
	text := strings.ReplaceAll(strings.Join(lines, " "), "*)", "* )")
	w.WriteLinef("(** %s *)", text)
}
