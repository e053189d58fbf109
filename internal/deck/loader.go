package deck

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/mitchellh/go-homedir"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// SupportedMajor is the deck format major version this build reads.
const SupportedMajor = "v1"

//go:embed schema.json
var schemaJSON []byte

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// document is the on-disk shape shared by JSON and YAML decks.
type document struct {
	Name   string   `json:"name" yaml:"name"`
	Format string   `json:"format,omitempty" yaml:"format,omitempty"`
	Faces  []string `json:"faces" yaml:"faces"`
	Cards  [][]any  `json:"cards" yaml:"cards"`
}

// Loader reads deck files and directories.
type Loader struct {
	logger *log.Logger
}

// NewLoader creates a Loader. A nil logger discards warnings.
func NewLoader(logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Loader{logger: logger}
}

// Load reads every path. Directories are walked recursively and only
// .json, .yaml and .yml files inside them are read. The returned decks are
// validated individually and as a set.
func (l *Loader) Load(paths ...string) ([]Deck, error) {
	var decks []Deck
	for _, p := range paths {
		expanded, err := homedir.Expand(p)
		if err != nil {
			return nil, fmt.Errorf("expand %s: %w", p, err)
		}

		info, err := os.Stat(expanded)
		if err != nil {
			return nil, fmt.Errorf("stat deck path: %w", err)
		}

		if !info.IsDir() {
			d, err := l.LoadFile(expanded)
			if err != nil {
				return nil, err
			}
			decks = append(decks, d)
			continue
		}

		err = filepath.WalkDir(expanded, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if entry.IsDir() || formatOf(path) == "" {
				return nil
			}
			d, err := l.LoadFile(path)
			if err != nil {
				return err
			}
			decks = append(decks, d)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	if err := ValidateSet(decks); err != nil {
		return nil, err
	}
	return decks, nil
}

// LoadPaths loads paths with a Loader that discards warnings.
func LoadPaths(paths ...string) ([]Deck, error) {
	return NewLoader(nil).Load(paths...)
}

// LoadFile reads and validates a single deck file.
func (l *Loader) LoadFile(path string) (Deck, error) {
	format := formatOf(path)
	if format == "" {
		return Deck{}, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Deck{}, fmt.Errorf("read deck: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	d, err := Parse(data, format, base)
	if err != nil {
		return Deck{}, fmt.Errorf("%s: %w", path, err)
	}
	d.Path = path

	if err := d.Validate(); err != nil {
		return Deck{}, err
	}

	for _, pair := range d.idCollisions() {
		l.logger.Warn("cards share an id, their stats will be merged",
			"deck", d.Name,
			"id", d.CardID(pair[1]),
			"first", pair[0]+1,
			"second", pair[1]+1,
		)
	}

	l.logger.Debug("loaded deck", "deck", d.Name, "cards", len(d.Cards), "path", path)
	return d, nil
}

// Parse decodes deck data in the given format ("json" or "yaml"). name is
// used when the document does not carry its own name. The result is not
// validated.
func Parse(data []byte, format, name string) (Deck, error) {
	var doc document
	switch format {
	case "json":
		var raw any
		if err := json.Unmarshal(data, &raw); err != nil {
			return Deck{}, fmt.Errorf("parse json: %w", err)
		}
		if err := validateSchema(raw); err != nil {
			return Deck{}, err
		}
		if err := json.Unmarshal(data, &doc); err != nil {
			return Deck{}, fmt.Errorf("decode json: %w", err)
		}
	case "yaml":
		var raw any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return Deck{}, fmt.Errorf("parse yaml: %w", err)
		}
		if err := validateSchema(scalarsAsText(raw)); err != nil {
			return Deck{}, err
		}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return Deck{}, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		return Deck{}, ErrUnsupportedFormat
	}

	if doc.Format != "" {
		if !semver.IsValid(doc.Format) || semver.Major(doc.Format) != SupportedMajor {
			return Deck{}, fmt.Errorf("%w: %q (want %s.x)", ErrFormatVersion, doc.Format, SupportedMajor)
		}
	}

	d := Deck{
		Name:   doc.Name,
		Faces:  doc.Faces,
		Format: doc.Format,
		Cards:  make([]Card, 0, len(doc.Cards)),
	}
	if d.Name == "" {
		d.Name = name
	}

	for i, rawCard := range doc.Cards {
		c := make(Card, len(rawCard))
		for j, v := range rawCard {
			f, err := faceFromValue(v)
			if err != nil {
				return Deck{}, fmt.Errorf("card %d face %d: %w", i+1, j+1, err)
			}
			c[j] = f
		}
		d.Cards = append(d.Cards, c)
	}

	return d, nil
}

func validateSchema(raw any) error {
	schemaOnce.Do(func() {
		var def any
		if err := json.Unmarshal(schemaJSON, &def); err != nil {
			schemaErr = fmt.Errorf("parse deck schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		const url = "schema://cardiz-deck.json"
		if err := c.AddResource(url, def); err != nil {
			schemaErr = fmt.Errorf("add deck schema: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(url)
	})
	if schemaErr != nil {
		return schemaErr
	}
	if err := compiledSchema.Validate(raw); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// scalarsAsText rewrites a decoded YAML value into the JSON shapes the
// schema checks. Unquoted numbers, booleans and dates are plain text on a
// card, so they become strings.
func scalarsAsText(v any) any {
	switch v := v.(type) {
	case nil, string:
		return v
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = scalarsAsText(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[k] = scalarsAsText(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[fmt.Sprint(k)] = scalarsAsText(item)
		}
		return out
	default:
		return fmt.Sprint(v)
	}
}

func formatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	}
	return ""
}
