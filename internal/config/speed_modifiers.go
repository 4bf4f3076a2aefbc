package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/warnodata/extractor/pkg/core"
	"gopkg.in/yaml.v3"
)

// ErrInvalidSpeedModifiers is returned when the modifier file does not have
// the expected list-of-terrains shape.
var ErrInvalidSpeedModifiers = errors.New("invalid speed modifiers")

// LoadSpeedModifiers reads the terrain speed modifier file at path.
// An empty path yields no modifiers.
func LoadSpeedModifiers(path string) ([]core.SpeedModifier, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open speed modifiers: %w", err)
	}
	defer f.Close()

	modifiers, err := ReadSpeedModifiers(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return modifiers, nil
}

// ReadSpeedModifiers decodes a YAML list of terrains:
//
//	- name: Forest
//	  movementTypes:
//	    Wheel: {value: 0.5}
//	    Track: {value: 0.7}
//
// Movement types keep their file order, which decides which token matches
// first. A bare number is accepted in place of {value: n}.
func ReadSpeedModifiers(r io.Reader) ([]core.SpeedModifier, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode speed modifiers: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("line %d: expected a list: %w", root.Line, ErrInvalidSpeedModifiers)
	}

	modifiers := make([]core.SpeedModifier, 0, len(root.Content))
	for _, item := range root.Content {
		m, err := decodeSpeedModifier(item)
		if err != nil {
			return nil, err
		}
		modifiers = append(modifiers, m)
	}
	return modifiers, nil
}

func decodeSpeedModifier(item *yaml.Node) (core.SpeedModifier, error) {
	var m core.SpeedModifier
	if item.Kind != yaml.MappingNode {
		return m, fmt.Errorf("line %d: expected a mapping: %w", item.Line, ErrInvalidSpeedModifiers)
	}

	for i := 0; i+1 < len(item.Content); i += 2 {
		key, value := item.Content[i], item.Content[i+1]
		switch key.Value {
		case "name":
			m.Name = value.Value
		case "movementTypes":
			types, err := decodeMovementTypes(value)
			if err != nil {
				return m, err
			}
			m.MovementTypes = types
		}
	}

	if m.Name == "" {
		return m, fmt.Errorf("line %d: missing name: %w", item.Line, ErrInvalidSpeedModifiers)
	}
	return m, nil
}

func decodeMovementTypes(node *yaml.Node) ([]core.MovementValue, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: movementTypes must be a mapping: %w", node.Line, ErrInvalidSpeedModifiers)
	}

	out := make([]core.MovementValue, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		token, entry := node.Content[i], node.Content[i+1]

		var value float64
		switch entry.Kind {
		case yaml.ScalarNode:
			if err := entry.Decode(&value); err != nil {
				return nil, fmt.Errorf("line %d: %s: %w", entry.Line, token.Value, err)
			}
		case yaml.MappingNode:
			var v struct {
				Value *float64 `yaml:"value"`
			}
			if err := entry.Decode(&v); err != nil {
				return nil, fmt.Errorf("line %d: %s: %w", entry.Line, token.Value, err)
			}
			if v.Value == nil {
				return nil, fmt.Errorf("line %d: %s: missing value: %w", entry.Line, token.Value, ErrInvalidSpeedModifiers)
			}
			value = *v.Value
		default:
			return nil, fmt.Errorf("line %d: %s: %w", entry.Line, token.Value, ErrInvalidSpeedModifiers)
		}

		out = append(out, core.MovementValue{Token: token.Value, Value: value})
	}
	return out, nil
}
