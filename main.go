package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/saffronjam/zydis-bindgen/internal/bindgen"
	"github.com/saffronjam/zydis-bindgen/internal/common"
	"github.com/saffronjam/zydis-bindgen/internal/emitter"
)

// Populated at build-time via -ldflags.
var version = "dev"

// usageError is a bad command line. It exits with status 2, apart from
// failures while processing the headers.
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	err := newApp().Run(context.Background(), os.Args)
	switch exitCode(err) {
	case 0:
	case 2:
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	default:
		log.Fatal().Err(err).Msg("failed to generate bindings")
	}
}

// exitCode maps the result of a run to the process exit status.
func exitCode(err error) int {
	var uerr *usageError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &uerr):
		return 2
	default:
		return 1
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:      "zydis-bindgen",
		Usage:     "Generate enum bindings from the Zydis headers",
		ArgsUsage: fmt.Sprintf("<zydis path> <%s>", emitter.ModeList("|")),
		Version:   version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "YAML file overriding the built-in Zydis settings",
			},
			&cli.StringFlag{
				Name:  "casing",
				Usage: "member casing of the rust target (preserve, upperCamel)",
			},
			&cli.StringFlag{
				Name:  "out-dir",
				Usage: "write the bindings to a file in this directory instead of stdout",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level (debug, info, warn, error, fatal, panic)",
				Sources: cli.EnvVars("ZYDIS_BINDGEN_LOG_LEVEL"),
				Value:   "warn",
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			level, err := zerolog.ParseLevel(c.String("log-level"))
			if err != nil {
				return ctx, fmt.Errorf("failed to parse log level: %w", err)
			}

			log.Logger = log.Level(level)

			return ctx, nil
		},
		Action: run,
	}
}

func run(ctx context.Context, c *cli.Command) error {
	usage := fmt.Sprintf("Usage: %s <zydis path> <%s>", c.Name, emitter.ModeList("|"))
	if c.Args().Len() != 2 {
		return &usageError{msg: usage}
	}

	mode, err := emitter.ParseMode(c.Args().Get(1))
	if err != nil {
		return &usageError{msg: fmt.Sprintf("%v\n%s", err, usage)}
	}

	config, err := common.LoadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if casing := c.String("casing"); casing != "" {
		config.Targets.Rust.Casing = common.Casing(casing)
		if err := config.Validate(); err != nil {
			return &usageError{msg: fmt.Sprintf("--casing: %v\n%s", err, usage)}
		}
	}

	opts := bindgen.Options{
		Root:   c.Args().Get(0),
		Mode:   mode,
		Config: config,
		Logger: log.Logger,
	}

	outDir := c.String("out-dir")
	if outDir == "" {
		return bindgen.Run(ctx, opts, os.Stdout)
	}

	var buf bytes.Buffer
	if err := bindgen.Run(ctx, opts, &buf); err != nil {
		return err
	}
	w := common.NewWriter("")
	w.WriteRaw(buf.String())
	path := filepath.Join(outDir, common.OutputFileName(string(mode), config.EnumPrefix+" enums"))
	if err := w.WriteToFile(path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	log.Info().Str("file", path).Msg("generated bindings")
	return nil
}
