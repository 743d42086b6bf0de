package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/interlace/internal/engine/lang"
)

// Errors returned by configuration operations.
var (
	// ErrFileNotFound indicates the configuration file doesn't exist.
	ErrFileNotFound = errors.New("config file not found")

	// ErrInvalidConfig indicates a loaded configuration failed validation.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// ParseError reports a TOML syntax problem with its location.
type ParseError struct {
	Path string
	Line int
	Col  int
	Err  error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %v", e.Path, e.Line, e.Col, e.Err)
	}
	return fmt.Sprintf("parse error in %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error { return e.Err }

// Editor holds the editing behavior settings.
type Editor struct {
	// TabWidth is the number of spaces a tab key press inserts.
	TabWidth int `toml:"tab_width"`

	// UndoLimit caps the number of coalesced undo entries kept.
	UndoLimit int `toml:"undo_limit"`

	// LineEnding selects the newline written on export: "lf" or "crlf".
	LineEnding string `toml:"line_ending"`
}

// LanguageSpec declares one grammar available to the editor.
type LanguageSpec struct {
	// ChromaLexer names the chroma lexer backing the grammar ("python",
	// "go", ...). Empty selects the built-in whitespace/word scanner.
	ChromaLexer string `toml:"chroma_lexer"`

	// IndentationBased marks grammars whose blocks are delimited by
	// leading whitespace rather than brackets.
	IndentationBased bool `toml:"indentation_based"`
}

// Config is the root of the Interlace configuration file.
type Config struct {
	Editor    Editor                  `toml:"editor"`
	Languages map[string]LanguageSpec `toml:"languages"`
}

// Default returns the built-in configuration used when no file is present.
func Default() *Config {
	return &Config{
		Editor: Editor{
			TabWidth:   4,
			UndoLimit:  100,
			LineEnding: "lf",
		},
		Languages: map[string]LanguageSpec{
			"text":   {},
			"python": {ChromaLexer: "python", IndentationBased: true},
			"go":     {ChromaLexer: "go"},
			"sql":    {ChromaLexer: "sql"},
			"html":   {ChromaLexer: "html"},
		},
	}
}

// Load reads a configuration file. Settings left out of the file keep their
// defaults, so a partial file overrides only what it names.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		pe := &ParseError{Path: path, Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			pe.Line, pe.Col = derr.Position()
		}
		return nil, pe
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the loaded values for internal consistency.
func (c *Config) Validate() error {
	if c.Editor.TabWidth < 1 {
		return fmt.Errorf("%w: editor.tab_width must be positive, got %d", ErrInvalidConfig, c.Editor.TabWidth)
	}
	if c.Editor.UndoLimit < 1 {
		return fmt.Errorf("%w: editor.undo_limit must be positive, got %d", ErrInvalidConfig, c.Editor.UndoLimit)
	}
	switch c.Editor.LineEnding {
	case "lf", "crlf":
	default:
		return fmt.Errorf("%w: editor.line_ending must be \"lf\" or \"crlf\", got %q", ErrInvalidConfig, c.Editor.LineEnding)
	}
	if len(c.Languages) == 0 {
		return fmt.Errorf("%w: at least one language must be declared", ErrInvalidConfig)
	}
	return nil
}

// Registry builds the grammar registry from the declared languages. Chroma
// lexer names are resolved here so a bad declaration fails at load time, not
// at first keystroke.
func (c *Config) Registry() (*lang.Registry, error) {
	reg := lang.NewRegistry()
	for name, spec := range c.Languages {
		l := lang.Language{
			Name:             name,
			IndentationBased: spec.IndentationBased,
			NewParser:        func() lang.Parser { return lang.NewRecordingParser(nil) },
		}
		if spec.ChromaLexer == "" {
			based := spec.IndentationBased
			l.NewLexer = func() lang.Lexer { return lang.NewScanLexer(based) }
		} else {
			cl, err := lang.NewChromaLexer(spec.ChromaLexer, spec.IndentationBased)
			if err != nil {
				return nil, fmt.Errorf("language %q: %w", name, err)
			}
			l.NewLexer = func() lang.Lexer { return cl }
		}
		reg.Register(l)
	}
	return reg, nil
}
