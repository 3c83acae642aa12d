// Package config loads interpreter settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the settings file looked up in the home directory.
const FileName = ".gloxrc.yaml"

// Config holds interpreter settings.
type Config struct {
	Prompt      string `yaml:"prompt"`
	HistoryFile string `yaml:"history_file"`
	MaxErrors   int    `yaml:"max_errors"` // 0 disables the limit
	ASTFormat   string `yaml:"ast_format"`
	Color       bool   `yaml:"color"`

	// Path is the file the settings were read from, or "" for defaults.
	Path string `yaml:"-"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Prompt:      "> ",
		HistoryFile: "~/.glox_history",
		MaxErrors:   10,
		ASTFormat:   "text",
	}
}

// ValidationError lists every invalid setting in a file.
type ValidationError struct {
	Path   string
	Issues []string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "config: %s is invalid:", e.Path)
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// Load reads settings from path. Keys missing from the file keep their
// defaults; unknown keys are an error. An empty file yields the defaults.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	conf := Default()
	conf.Path = path

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(conf); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := conf.validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

// Find returns the settings to use. If explicit is non-empty that file
// must exist. Otherwise FileName in the user's home directory is used
// when present, and the defaults when not.
func Find(explicit string) (*Config, error) {
	home, _ := os.UserHomeDir()
	return find(explicit, home)
}

func find(explicit, home string) (*Config, error) {
	var conf *Config
	var err error
	switch {
	case explicit != "":
		conf, err = Load(explicit)
	case home != "":
		path := filepath.Join(home, FileName)
		if _, statErr := os.Stat(path); statErr == nil {
			conf, err = Load(path)
		} else {
			conf = Default()
		}
	default:
		conf = Default()
	}
	if err != nil {
		return nil, err
	}
	conf.HistoryFile = expandHome(conf.HistoryFile, home)
	return conf, nil
}

func (c *Config) validate() error {
	var errs ValidationError
	switch c.ASTFormat {
	case "text", "json", "sexpr":
	default:
		errs.Issues = append(errs.Issues, fmt.Sprintf("ast_format %q must be one of text, json, sexpr", c.ASTFormat))
	}
	if c.MaxErrors < 0 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("max_errors %d must not be negative", c.MaxErrors))
	}
	if len(errs.Issues) > 0 {
		errs.Path = c.Path
		return &errs
	}
	return nil
}

// expandHome replaces a leading "~/" with home.
func expandHome(path, home string) string {
	if home == "" {
		return path
	}
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}
