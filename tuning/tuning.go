// Package tuning loads the basis parameter sets from yaml, with embedded
// defaults and optional on-disk overrides that can be hot reloaded.
package tuning

import (
	_ "embed"
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/perentie/stride/basis"
)

//go:embed default.yaml
var defaultYAML []byte

// Tuning is the full parameter set for the stock bases, plus the full
// input speed user controls translate stick/key input into.
type Tuning struct {
	Speed float64

	Walk     basis.WalkConfig
	Jump     basis.JumpConfig
	FreeFall basis.FreeFallConfig
}

// file is the on-disk shape: named sections under `bases`, decoded one by
// one so unknown sections never break loading.
type file struct {
	Speed *float64       `yaml:"speed"`
	Bases map[string]any `yaml:"bases"`
}

var defaults = mustParse(defaultYAML)

func mustParse(data []byte) Tuning {
	t, err := parse(data, Tuning{})
	if err != nil {
		panic(fmt.Sprintf("tuning: embedded default.yaml is broken: %v", err))
	}
	return t
}

// Default returns the built-in tuning.
func Default() Tuning {
	return defaults
}

// Parse decodes a tuning document, applying it on top of the defaults.
func Parse(data []byte) (Tuning, error) {
	return parse(data, Default())
}

// Load reads a tuning file from disk. An empty path yields the defaults.
func Load(path string) (Tuning, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, fmt.Errorf("tuning: read %s: %w", path, err)
	}
	t, err := Parse(data)
	if err != nil {
		return Tuning{}, fmt.Errorf("tuning: parse %s: %w", path, err)
	}
	return t, nil
}

func parse(data []byte, base Tuning) (Tuning, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Tuning{}, err
	}

	t := base
	if f.Speed != nil {
		t.Speed = *f.Speed
	}
	for name, raw := range f.Bases {
		var err error
		switch name {
		case "walk":
			err = decodeInto(raw, &t.Walk)
		case "jump":
			err = decodeInto(raw, &t.Jump)
		case "free_fall":
			err = decodeInto(raw, &t.FreeFall)
		default:
			log.Printf("tuning: ignoring unknown basis section %q", name)
		}
		if err != nil {
			return Tuning{}, fmt.Errorf("basis %q: %w", name, err)
		}
	}
	return t, nil
}

// Decode re-marshals a nested yaml value into a typed spec. Useful for
// callers keeping their own sections next to the stock ones.
func Decode[T any](raw any) (T, error) {
	var out T
	if raw == nil {
		return out, nil
	}
	if err := decodeInto(raw, &out); err != nil {
		return out, err
	}
	return out, nil
}

func decodeInto(raw any, dst any) error {
	if raw == nil {
		return nil
	}
	data, err := yaml.Marshal(raw)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, dst)
}
