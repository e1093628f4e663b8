package preset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// File is the on-disk layout of a preset file.
type File struct {
	Presets []Preset `json:"presets" yaml:"presets" toml:"presets"`
}

// Load reads presets from a .yaml, .yml, .toml or .json file. A leading
// "~" in path is expanded to the home directory.
func Load(path string) ([]Preset, error) {
	p, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("expand %s: %w", path, err)
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("read presets: %w", err)
	}
	ps, err := Decode(bytes.NewReader(data), filepath.Ext(p))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ps, nil
}

// Decode parses a preset file in the format named by ext and validates
// every entry. Unknown keys are rejected.
func Decode(r io.Reader, ext string) ([]Preset, error) {
	var f File
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "yaml", "yml":
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && err != io.EOF {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	case "toml":
		dec := toml.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("decode toml: %w", err)
		}
	case "json":
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported preset format %q", ext)
	}

	seen := map[string]bool{}
	for i, p := range f.Presets {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("preset %d: %w", i, err)
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("duplicate preset %q", p.Name)
		}
		seen[p.Name] = true
	}
	return f.Presets, nil
}

// Encode writes presets in the format named by ext.
func Encode(w io.Writer, ext string, presets []Preset) error {
	f := File{Presets: presets}
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(f); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case "toml":
		if err := toml.NewEncoder(w).Encode(f); err != nil {
			return fmt.Errorf("encode toml: %w", err)
		}
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(f)
	default:
		return fmt.Errorf("unsupported preset format %q", ext)
	}
}

// LoadCatalog returns the built-in catalog extended with the presets in
// path. An empty path yields the built-ins alone.
func LoadCatalog(path string) (*Catalog, error) {
	c := Builtin()
	if path == "" {
		return c, nil
	}
	ps, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := c.Add(ps...); err != nil {
		return nil, err
	}
	return c, nil
}
