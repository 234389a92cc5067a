package emitter

import (
	"bytes"
	"embed"
	"fmt"
	"sync"
	"text/template"

	"github.com/saffronjam/zydis-bindgen/internal/common"
)

//go:embed templates/*.tpl
var templatesFS embed.FS

var (
	bannerTmpl   *template.Template
	tmplInitOnce sync.Once
	tmplInitErr  error
)

type bannerData struct {
	Tool         string
	ExternHeader string
}

const toolName = "zydis-bindgen"

// ensureTemplates parses and validates the banners exactly once.
func ensureTemplates() error {
	tmplInitOnce.Do(func() {
		var t *template.Template
		t, tmplInitErr = template.New("banners").ParseFS(templatesFS, "templates/*.tpl")
		if tmplInitErr != nil {
			return
		}
		for _, m := range Modes {
			if t.Lookup(string(m)) == nil {
				tmplInitErr = fmt.Errorf("banner template for mode %q not found", m)
				return
			}
		}
		bannerTmpl = t
	})
	return tmplInitErr
}

// writeBanner renders the file banner of mode into w.
func writeBanner(w *common.Writer, mode Mode, data bannerData) error {
	if err := ensureTemplates(); err != nil {
		return err
	}
	data.Tool = toolName

	var buf bytes.Buffer
	if err := bannerTmpl.ExecuteTemplate(&buf, string(mode), data); err != nil {
		return fmt.Errorf("rendering %s banner: %w", mode, err)
	}
	w.WriteRaw(buf.String())
	return nil
}
