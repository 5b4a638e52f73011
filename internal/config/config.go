// Package config manages the helper's project configuration using Viper.
package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/viper"
)

// FileName is the config file name searched for in the project root, without extension.
const FileName = ".helper"

// Config describes which tools run and which files they run over.
type Config struct {
	Sources       SourcesConfig `mapstructure:"sources"`
	Rust          RustConfig    `mapstructure:"rust"`
	Format        FormatConfig  `mapstructure:"format"`
	Lint          LintConfig    `mapstructure:"lint"`
	Deep          DeepConfig    `mapstructure:"deep"`
	OptionalTools []string      `mapstructure:"optional_tools"`

	// File is the config file that was read, empty when only defaults apply.
	File string
}

// SourcesConfig selects the C/C++ files handed to per-file tools.
type SourcesConfig struct {
	Root     string   `mapstructure:"root"`
	Patterns []string `mapstructure:"patterns"`
}

// RustConfig names the cargo executable used for rustfmt and clippy.
type RustConfig struct {
	Cargo string `mapstructure:"cargo"`
}

// FormatConfig configures the C/C++ formatter.
type FormatConfig struct {
	ClangFormat string `mapstructure:"clang_format"`
	Style       string `mapstructure:"style"`
}

// LintConfig configures the C/C++ static analyzer.
type LintConfig struct {
	Cppcheck        string `mapstructure:"cppcheck"`
	CppcheckProject string `mapstructure:"cppcheck_project"`
}

// DeepConfig configures the platform-specific analyzer and its interop header.
type DeepConfig struct {
	ClangTidy       string   `mapstructure:"clang_tidy"`
	ClangTidyConfig string   `mapstructure:"clang_tidy_config"`
	Cxxbridge       string   `mapstructure:"cxxbridge"`
	Bridge          string   `mapstructure:"bridge"`
	Header          string   `mapstructure:"header"`
	CompileArgs     []string `mapstructure:"compile_args"`
}

// SetDefaults registers the layout of the libpci-rs tree on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("sources.root", "src/lib/backend")
	v.SetDefault("sources.patterns", []string{"**/*.cc", "**/*.h"})

	v.SetDefault("rust.cargo", "cargo")

	v.SetDefault("format.clang_format", "clang-format")
	v.SetDefault("format.style", "file")

	v.SetDefault("lint.cppcheck", "cppcheck")
	v.SetDefault("lint.cppcheck_project", "backend.cppcheck")

	v.SetDefault("deep.clang_tidy", "clang-tidy")
	v.SetDefault("deep.clang_tidy_config", ".clang-tidy")
	v.SetDefault("deep.cxxbridge", "cxxbridge")
	v.SetDefault("deep.bridge", "src/lib/backend/bridge.rs")
	v.SetDefault("deep.header", "src/lib/backend/include/bridge.rs.h")
	v.SetDefault("deep.compile_args", []string{"-std=c++17", "-Isrc/lib/backend/include"})

	v.SetDefault("optional_tools", []string{})
}

// Load reads configuration for the project in dir.
// If file is non-empty it must exist; otherwise dir is searched for .helper.{toml,yaml,yml,json}
// and a missing file means defaults are used.
func Load(dir, file string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(FileName)
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		// Only an explicit file is required to exist
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || file != "" {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg, err := LoadWithViper(v)
	if err != nil {
		return nil, err
	}
	cfg.File = v.ConfigFileUsed()
	return cfg, nil
}

// LoadWithViper loads configuration using a provided Viper instance.
// Defaults are not applied; call SetDefaults first if they are wanted.
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := LoadWithViper(v)
	if err != nil {
		panic(fmt.Sprintf("default config is invalid: %v", err))
	}
	return cfg
}

// Validate rejects configurations that cannot produce a runnable invocation.
func (c *Config) Validate() error {
	var problems []string

	executables := map[string]string{
		"rust.cargo":          c.Rust.Cargo,
		"format.clang_format": c.Format.ClangFormat,
		"lint.cppcheck":       c.Lint.Cppcheck,
		"deep.clang_tidy":     c.Deep.ClangTidy,
		"deep.cxxbridge":      c.Deep.Cxxbridge,
	}
	for key, name := range executables {
		if strings.TrimSpace(name) == "" {
			problems = append(problems, key+" is empty")
		}
	}

	if c.Deep.Header == "" {
		problems = append(problems, "deep.header is empty")
	}
	if c.Deep.Bridge == "" {
		problems = append(problems, "deep.bridge is empty")
	}

	for _, p := range c.Sources.Patterns {
		if !doublestar.ValidatePattern(p) {
			problems = append(problems, fmt.Sprintf("sources.patterns: bad pattern %q", p))
		}
	}

	if len(problems) == 0 {
		return nil
	}
	sort.Strings(problems)
	return &ValidationError{Problems: problems}
}

// IsOptional reports whether a missing executable should only produce a warning.
func (c *Config) IsOptional(name string) bool {
	for _, t := range c.OptionalTools {
		if t == name {
			return true
		}
	}
	return false
}

// ValidationError lists every rejected setting.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, "; ")
}
