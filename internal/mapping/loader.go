package mapping

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a table file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatForPath picks the format from a file extension. Anything that is not
// .toml is read as YAML.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}

	return FormatYAML
}

// LoadFile loads and parses a table file from the given path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping file %s: %w", path, err)
	}

	return Parse(data, FormatForPath(path))
}

// Parse parses table data in the given format.
func Parse(data []byte, format Format) (*File, error) {
	var f File

	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse mapping TOML: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse mapping YAML: %w", err)
		}
	}

	applyDefaults(&f)

	return &f, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(f *File) {
	if f.Version == "" {
		f.Version = "1"
	}

	for i := range f.Classes {
		c := &f.Classes[i]
		if c.Runtime == "" {
			c.Runtime = c.Name
		}

		for j := range c.Fields {
			if c.Fields[j].Runtime == "" {
				c.Fields[j].Runtime = c.Fields[j].Name
			}
		}

		for j := range c.Methods {
			if c.Methods[j].Runtime == "" {
				c.Methods[j].Runtime = c.Methods[j].Name
			}
		}
	}
}

// Marshal serializes a File in the given format.
func Marshal(f *File, format Format) ([]byte, error) {
	if format == FormatTOML {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(f); err != nil {
			return nil, err
		}

		return buf.Bytes(), nil
	}

	return yaml.Marshal(f)
}

// WriteFile writes a File to the given path, choosing the format by extension.
func WriteFile(f *File, path string) error {
	data, err := Marshal(f, FormatForPath(path))
	if err != nil {
		return fmt.Errorf("failed to marshal mapping: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write mapping file %s: %w", path, err)
	}

	return nil
}
