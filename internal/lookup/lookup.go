// Package lookup resolves unit descriptors to their localized unit cards.
package lookup

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// UnitCard is the localized identity of a unit.
type UnitCard struct {
	Descriptor string `yaml:"descriptor"`
	Name       string `yaml:"name"`
	Category   string `yaml:"category"`
	Code       int    `yaml:"code"`
}

// Service finds the unit card for a descriptor id.
type Service interface {
	FindUnitCardByDescriptor(descriptor string) (UnitCard, bool)
}

// Empty is a Service that knows no units.
type Empty struct{}

// FindUnitCardByDescriptor always reports false.
func (Empty) FindUnitCardByDescriptor(string) (UnitCard, bool) {
	return UnitCard{}, false
}

// Table is a Service backed by an in-memory card list.
type Table struct {
	cards map[string]UnitCard
}

var (
	_ Service = Empty{}
	_ Service = (*Table)(nil)
)

// NewTable indexes cards by descriptor. A later card replaces an earlier one.
func NewTable(cards ...UnitCard) *Table {
	t := &Table{cards: make(map[string]UnitCard, len(cards))}
	for _, c := range cards {
		t.cards[c.Descriptor] = c
	}
	return t
}

// FindUnitCardByDescriptor returns the card for descriptor.
func (t *Table) FindUnitCardByDescriptor(descriptor string) (UnitCard, bool) {
	c, ok := t.cards[descriptor]
	return c, ok
}

// Len returns the number of cards.
func (t *Table) Len() int {
	return len(t.cards)
}

// ReadTable decodes a YAML list of unit cards:
//
//	- descriptor: Descriptor_Unit_M1A1_Abrams_US
//	  name: M1A1 ABRAMS
//	  category: TNK
//	  code: 42
func ReadTable(r io.Reader) (*Table, error) {
	var cards []UnitCard
	if err := yaml.NewDecoder(r).Decode(&cards); err != nil {
		if err == io.EOF {
			return NewTable(), nil
		}
		return nil, fmt.Errorf("decode unit cards: %w", err)
	}
	return NewTable(cards...), nil
}

// LoadTable reads a unit card file. An empty path yields an empty table.
func LoadTable(path string) (*Table, error) {
	if path == "" {
		return NewTable(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open unit cards: %w", err)
	}
	defer f.Close()
	return ReadTable(f)
}
