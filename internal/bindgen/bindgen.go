// Package bindgen runs one generation pass: load the header tree, keep the
// project enums and render them for the selected mode.
package bindgen

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/saffronjam/zydis-bindgen/internal/cheader"
	"github.com/saffronjam/zydis-bindgen/internal/common"
	"github.com/saffronjam/zydis-bindgen/internal/emitter"
)

type Options struct {
	Root   string // header tree root, substituted for $ROOT
	Mode   emitter.Mode
	Config *common.Config
	Logger zerolog.Logger
}

// Run generates the bindings and writes them to out. Header diagnostics are
// logged as warnings and do not stop the run. out receives nothing if
// generation fails.
func Run(ctx context.Context, opts Options, out io.Writer) error {
	cfg := opts.Config
	logger := opts.Logger.With().Str("mode", string(opts.Mode)).Logger()

	em, err := emitter.New(opts.Mode, cfg)
	if err != nil {
		return err
	}
	converter, err := common.NewConverter(cfg, emitter.Profile(opts.Mode, cfg))
	if err != nil {
		return err
	}

	loadOpts := cheader.Options{
		Header:  common.ExpandRoot(cfg.Header, opts.Root),
		Defines: cfg.Defines,
		Logger:  logger,
	}
	for _, dir := range cfg.IncludeDirs {
		loadOpts.IncludeDirs = append(loadOpts.IncludeDirs, common.ExpandRoot(dir, opts.Root))
	}

	result, err := cheader.Load(ctx, loadOpts)
	if err != nil {
		return fmt.Errorf("loading headers: %w", err)
	}
	for _, d := range result.Diagnostics {
		logger.Warn().Str("diagnostic", d.String()).Msg("header diagnostic")
	}
	logger.Info().Int("files", len(result.Files)).Int("enums", len(result.Enums)).Msg("headers loaded")

	var buf bytes.Buffer
	if err := emitter.Generate(&buf, result.Enums, converter, em, logger); err != nil {
		return fmt.Errorf("generating %s: %w", opts.Mode, err)
	}

	_, err = buf.WriteTo(out)
	return err
}
