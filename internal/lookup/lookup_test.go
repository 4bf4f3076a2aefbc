package lookup

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cardsYAML = `
- descriptor: Descriptor_Unit_M1A1_Abrams_US
  name: M1A1 ABRAMS
  category: TNK
  code: 42
- descriptor: Descriptor_Unit_Rifles_US
  name: ""
  category: INF
  code: 7
`

func TestReadTable(t *testing.T) {
	table, err := ReadTable(strings.NewReader(cardsYAML))
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())

	card, ok := table.FindUnitCardByDescriptor("Descriptor_Unit_M1A1_Abrams_US")
	require.True(t, ok)
	assert.Equal(t, "M1A1 ABRAMS", card.Name)
	assert.Equal(t, "TNK", card.Category)
	assert.Equal(t, 42, card.Code)

	_, ok = table.FindUnitCardByDescriptor("Descriptor_Unit_Unknown")
	assert.False(t, ok)
}

func TestReadTable_Empty(t *testing.T) {
	table, err := ReadTable(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())
}

func TestReadTable_Invalid(t *testing.T) {
	_, err := ReadTable(strings.NewReader("descriptor: [unterminated"))
	assert.Error(t, err)
}

func TestLoadTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cards.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cardsYAML), 0o644))

	table, err := LoadTable(path)
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())

	table, err = LoadTable("")
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())

	_, err = LoadTable(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestEmpty(t *testing.T) {
	_, ok := Empty{}.FindUnitCardByDescriptor("Descriptor_Unit_M1A1_Abrams_US")
	assert.False(t, ok)
}
