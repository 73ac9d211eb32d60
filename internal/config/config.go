// Package config loads and validates the VexDoc project configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file vexdoc looks for in the project root.
const DefaultPath = "VexDoc.toml"

// defaultTemplate is what `vexdoc init` writes: every field present, nothing
// filled in.
const defaultTemplate = `inline_comments = ""
multi_comments = []
ignored_dirs = []
file_extensions = []
`

// Config tells vexdoc which files to process and how documentation markers
// are spelled in their comment syntax.
type Config struct {
	// InlineComments is the single-line comment token, e.g. "//" or "#".
	InlineComments string `toml:"inline_comments" yaml:"inline_comments"`
	// MultiComments holds the multiline comment delimiters. Two entries for
	// open/close pairs ("/*", "*/"), one when the same token does both (`"""`).
	MultiComments []string `toml:"multi_comments" yaml:"multi_comments"`
	// IgnoredDirs are directory names skipped during the walk.
	IgnoredDirs []string `toml:"ignored_dirs" yaml:"ignored_dirs"`
	// FileExtensions selects which files are processed, without the period.
	FileExtensions []string `toml:"file_extensions" yaml:"file_extensions"`
	// OutputDir is where generated pages land. Defaults to "docs".
	OutputDir string `toml:"output_dir" yaml:"output_dir"`
}

// Load reads the config at path, TOML or YAML depending on the extension.
// A .env file is loaded first and VEXDOC_OUTPUT_DIR overrides the output
// directory, so CI can redirect output without editing the config.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &cfg)
	default:
		err = toml.Unmarshal(raw, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w (fix missing values or incorrect syntax)", path, err)
	}

	if cfg.OutputDir == "" {
		cfg.OutputDir = "docs"
	}
	if dir := os.Getenv("VEXDOC_OUTPUT_DIR"); dir != "" {
		cfg.OutputDir = dir
	}

	return &cfg, nil
}

// Validate checks that the config can actually drive a generation run.
// Messages carry the fix alongside the problem.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.InlineComments,
			validation.Required.Error(`no inline comment delimiter specified; add one, e.g. inline_comments = "//"`)),
		validation.Field(&c.MultiComments,
			validation.Required.Error(`no multiline comment delimiters specified; add them, e.g. multi_comments = ["/*", "*/"]`),
			validation.By(noBlankDelimiters)),
		validation.Field(&c.FileExtensions,
			validation.Required.Error(`no file extensions specified; add them without the period, e.g. file_extensions = ["rs", "py", "c"]`),
			validation.By(noLeadingDots)),
	)
}

func noBlankDelimiters(value any) error {
	delims, _ := value.([]string)
	for _, d := range delims {
		if strings.TrimSpace(d) == "" {
			return validation.NewError("vexdoc.config.multi_comments_blank",
				"multiline comment delimiters must not be empty strings")
		}
	}
	if len(delims) > 2 {
		return validation.NewError("vexdoc.config.multi_comments_count",
			"multi_comments takes at most an opening and a closing delimiter")
	}
	return nil
}

func noLeadingDots(value any) error {
	exts, _ := value.([]string)
	for _, ext := range exts {
		if strings.HasPrefix(ext, ".") {
			return validation.NewError("vexdoc.config.extension_leading_dot",
				fmt.Sprintf("file extension %q should not start with a period", ext))
		}
	}
	return nil
}

// WriteDefault creates an empty VexDoc.toml in dir. It refuses to overwrite
// an existing config.
func WriteDefault(dir string) (string, error) {
	path := filepath.Join(dir, DefaultPath)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return path, fmt.Errorf("config file %s already exists; delete it to generate a new one", path)
		}
		return path, fmt.Errorf("create config file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(defaultTemplate); err != nil {
		return path, fmt.Errorf("write config file: %w", err)
	}
	return path, nil
}
