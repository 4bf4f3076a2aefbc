package ndf

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jsonDump = `[
  {
    "name": "Ammo_AP_Test",
    "type": "TAmmunitionDescriptor",
    "children": [
      {"name": "PhysicalDamages", "value": 1.5},
      {"name": "FireLeftToRight", "value": true},
      {"name": "Name", "value": "'M256'"},
      {"name": "TraitsToken", "children": [{"value": "'KE'"}, {"value": "'STAT'"}]}
    ]
  },
  {"name": "Descriptor_Unit_Test", "type": "TEntityDescriptor", "children": []}
]`

func TestDecodeJSON(t *testing.T) {
	nodes, err := DecodeJSON([]byte(jsonDump))
	require.NoError(t, err)
	require.Len(t, nodes, 2)

	ammo := nodes[0]
	assert.Equal(t, "Ammo_AP_Test", ammo.Name)
	assert.Equal(t, TypeAmmunition, ammo.Type)

	v, ok := Scalar(ammo, "PhysicalDamages")
	require.True(t, ok)
	assert.Equal(t, "1.5", v)

	v, _ = Scalar(ammo, "FireLeftToRight")
	assert.Equal(t, "true", v)

	traits, ok := First(ammo, "TraitsToken")
	require.True(t, ok)
	assert.Equal(t, []string{"'KE'", "'STAT'"}, Strings(traits))

	assert.False(t, nodes[1].IsLeaf())
}

func TestDecodeJSON_SingleObject(t *testing.T) {
	nodes, err := DecodeJSON([]byte(`{"name": "X", "value": "1"}`))
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.True(t, nodes[0].IsLeaf())
}

func TestDecodeJSON_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"malformed", `{"name":`},
		{"scalar root", `42`},
		{"scalar child", `[{"name": "A", "children": [1]}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeJSON([]byte(tt.input))
			assert.ErrorIs(t, err, ErrInvalidDocument)
		})
	}
}

const kdlDump = `
Ammo_HE_Test type=TAmmunitionDescriptor {
    PhysicalDamages 2
    Name "'HE round'"
    TraitsToken "'HE'" "'INDIRECT'"
    Arme {
        Index 4
    }
}
Descriptor_Unit_Test type=TEntityDescriptor {
    MaxDamages 10
}
`

func TestDecodeKDL(t *testing.T) {
	nodes, err := DecodeKDL(strings.NewReader(kdlDump))
	require.NoError(t, err)
	require.Len(t, nodes, 2)

	ammo := nodes[0]
	assert.Equal(t, TypeAmmunition, ammo.Type)

	v, ok := Scalar(ammo, "PhysicalDamages")
	require.True(t, ok)
	assert.Equal(t, "2", v)

	traits, ok := First(ammo, "TraitsToken")
	require.True(t, ok)
	assert.Equal(t, []string{"'HE'", "'INDIRECT'"}, Strings(traits))

	arme, ok := First(ammo, "Arme")
	require.True(t, ok)
	idx, ok := Scalar(arme, "Index")
	require.True(t, ok)
	assert.Equal(t, "4", idx)

	assert.Equal(t, TypeUnit, nodes[1].Type)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "ammo.json")
	kdlPath := filepath.Join(dir, "ammo.kdl")
	require.NoError(t, os.WriteFile(jsonPath, []byte(jsonDump), 0o644))
	require.NoError(t, os.WriteFile(kdlPath, []byte(kdlDump), 0o644))

	nodes, err := LoadFile(jsonPath)
	require.NoError(t, err)
	assert.Len(t, nodes, 2)

	nodes, err = LoadFile(kdlPath)
	require.NoError(t, err)
	assert.Len(t, nodes, 2)

	_, err = LoadFile(filepath.Join(dir, "ammo.txt"))
	assert.ErrorIs(t, err, ErrInvalidDocument)

	_, err = LoadFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}
