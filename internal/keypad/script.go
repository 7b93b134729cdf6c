package keypad

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
	"github.com/mitchellh/mapstructure"
)

// Script is a named sequence of key labels, optionally with the display
// expected after the last key.
type Script struct {
	Name    string            `json:"name" mapstructure:"name"`
	Keys    []string          `json:"keys" mapstructure:"keys"`
	Expect  *string           `json:"expect,omitempty" mapstructure:"expect"`
	Aliases map[string]string `json:"aliases,omitempty" mapstructure:"aliases"`
}

type scriptFileDef struct {
	Scripts []Script `mapstructure:"scripts"`
}

func ParseScriptsYAML(r io.Reader) ([]Script, error) {
	yamlBytes, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("io.ReadAll: %w", err)
	}

	jsonBytes, err := yaml.YAMLToJSON(yamlBytes)
	if err != nil {
		return nil, fmt.Errorf("yaml.YAMLToJSON: %w", err)
	}

	return ParseScriptsJSON(bytes.NewReader(jsonBytes))
}

// ParseScriptsJSON reads either a single script object or an object with a
// "scripts" list.
func ParseScriptsJSON(r io.Reader) ([]Script, error) {
	decoder := json.NewDecoder(r)
	decoder.UseNumber()

	var v map[string]any
	if err := decoder.Decode(&v); err != nil {
		return nil, fmt.Errorf("json.Decode: %w", err)
	}

	if _, ok := v["scripts"]; ok {
		var def scriptFileDef
		if err := decodeScript(v, &def); err != nil {
			return nil, err
		}
		for i, script := range def.Scripts {
			if err := script.validate(); err != nil {
				return nil, fmt.Errorf("scripts[%d]: %w", i, err)
			}
		}
		return def.Scripts, nil
	}

	var script Script
	if err := decodeScript(v, &script); err != nil {
		return nil, err
	}
	if err := script.validate(); err != nil {
		return nil, err
	}
	return []Script{script}, nil
}

// ParseScriptFile picks the format from the file extension; anything other
// than .json is read as YAML.
func ParseScriptFile(path string) ([]Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("os.Open: %w", err)
	}
	defer f.Close()

	var scripts []Script
	if filepath.Ext(path) == ".json" {
		scripts, err = ParseScriptsJSON(f)
	} else {
		scripts, err = ParseScriptsYAML(f)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	for i := range scripts {
		if scripts[i].Name == "" {
			scripts[i].Name = fmt.Sprintf("%s#%d", filepath.Base(path), i)
		}
	}
	return scripts, nil
}

func decodeScript(v any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("mapstructure.NewDecoder: %w", err)
	}
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("mapstructure.Decode: %w", err)
	}
	return nil
}

func (s *Script) validate() error {
	if len(s.Keys) == 0 {
		return fmt.Errorf("script %q has no keys", s.Name)
	}
	return nil
}
