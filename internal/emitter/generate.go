package emitter

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/saffronjam/zydis-bindgen/internal/common"
)

// Generate renders every project enum of enums through em and writes the
// result to out. Nothing is written when an enum fails to normalize.
func Generate(out io.Writer, enums []common.RawEnum, conv *common.Converter, em Emitter, logger zerolog.Logger) error {
	w := common.NewWriter(em.IndentString())
	if err := em.FileHeader(w); err != nil {
		return err
	}

	for _, raw := range enums {
		if !conv.Accepts(raw) {
			continue
		}
		name := raw.Name(conv.EnumPrefix)
		if conv.Excluded(name) {
			logger.Debug().Str("enum", name).Msg("enum excluded for target")
			continue
		}

		e, err := conv.Normalize(raw)
		if err != nil {
			return err
		}

		s := &EnumState{Enum: e, Pending: e.Constants()}
		em.StartEnum(w, s)
		for _, m := range e.Emitted() {
			em.Member(w, s, m)
			s.Emitted++
		}
		em.EndEnum(w, s)

		logger.Debug().Str("enum", name).Str("file", raw.File).Int("members", s.Emitted).Msg("emitted enum")
	}

	em.FileFooter(w)

	_, err := w.WriteTo(out)
	return err
}
