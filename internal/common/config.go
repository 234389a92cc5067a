package common

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

type Config struct {
	// Header and IncludeDirs may reference the header tree root as $ROOT.
	Header      string            `yaml:"header"`
	IncludeDirs []string          `yaml:"includeDirs"`
	Defines     map[string]string `yaml:"defines"`

	// ExternHeader is the include path the pxd block declares against.
	ExternHeader string `yaml:"externHeader"`

	EnumPrefix   string   `yaml:"enumPrefix"`
	MemberPrefix string   `yaml:"memberPrefix"`
	PaddingEnum  string   `yaml:"paddingEnum"`
	SkipEnums    []string `yaml:"skipEnums"` // regular expressions over unqualified names

	Targets Targets `yaml:"targets"`
}

type Targets struct {
	Rust  TargetConfig `yaml:"rust"`
	Py    TargetConfig `yaml:"py"`
	Pxd   TargetConfig `yaml:"pxd"`
	Cs    TargetConfig `yaml:"cs"`
	OCaml TargetConfig `yaml:"ocaml"`
}

type TargetConfig struct {
	Reserved  []string          `yaml:"reserved"`
	Bitflags  []string          `yaml:"bitflags"`
	Casing    Casing            `yaml:"casing"`
	Namespace string            `yaml:"namespace"`
	Wrapped   map[string]string `yaml:"wrapped"` // enum name → wrapper type
}

// Target returns the configuration section of a mode.
func (c *Config) Target(mode string) TargetConfig {
	switch mode {
	case "rust":
		return c.Targets.Rust
	case "py":
		return c.Targets.Py
	case "pxd":
		return c.Targets.Pxd
	case "cs":
		return c.Targets.Cs
	case "ocaml":
		return c.Targets.OCaml
	}
	return TargetConfig{}
}

// ExpandRoot replaces $ROOT in p with root.
func ExpandRoot(p, root string) string {
	return os.Expand(p, func(key string) string {
		if key == "ROOT" {
			return root
		}
		return os.Getenv(key)
	})
}

// DefaultConfig returns the settings for the Zydis header tree.
func DefaultConfig() *Config {
	return &Config{
		Header: "$ROOT/include/Zydis/Zydis.h",
		IncludeDirs: []string{
			"./include",
			"$ROOT/include",
			"$ROOT",
			"$ROOT/dependencies/zycore/include",
		},
		Defines:      map[string]string{"ZYAN_NO_LIBC": "1"},
		ExternHeader: "Zydis/Zydis.h",
		EnumPrefix:   "Zydis",
		MemberPrefix: "ZYDIS_",
		PaddingEnum:  "Padding",
		Targets: Targets{
			Rust: TargetConfig{
				Casing:  CasingPreserve,
				Wrapped: map[string]string{"FormatterProperty": "FormatterProperty"},
			},
			Py: TargetConfig{
				Reserved: []string{"IF"},
			},
			Cs: TargetConfig{
				Namespace: "Zydis",
			},
		},
	}
}

// LoadConfig returns the defaults overlaid with the YAML file at path.
// An empty path returns the defaults.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()
	if path == "" {
		return config, nil
	}

	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	err = yaml.Unmarshal(bytes, config)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return config, nil
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	for _, mode := range []string{"rust", "py", "pxd", "cs", "ocaml"} {
		switch c.Target(mode).Casing {
		case "", CasingPreserve, CasingUpperCamel:
		default:
			return fmt.Errorf("targets.%s.casing: unknown casing %q", mode, c.Target(mode).Casing)
		}
	}
	if c.EnumPrefix == "" {
		return fmt.Errorf("enumPrefix must not be empty")
	}
	return nil
}
