package model

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

func TestTableNames(t *testing.T) {
	tests := []struct {
		name     string
		model    interface{ TableName() string }
		expected string
	}{
		{"ExtractionRun", &ExtractionRun{}, "extraction_runs"},
		{"Unit", &Unit{}, "units"},
		{"Weapon", &Weapon{}, "weapons"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.model.TableName())
		})
	}
}

func TestDatabaseModels_RunsFirst(t *testing.T) {
	require.Len(t, DatabaseModels, 3)
	assert.IsType(t, &ExtractionRun{}, DatabaseModels[0])
}

func TestUnitSchema(t *testing.T) {
	s, err := schema.Parse(&Unit{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)

	for _, column := range []string{"type_nationality", "type_mother_country", "type_formation", "speeds_for_terrains", "run_id"} {
		assert.NotNil(t, s.LookUpField(column), column)
	}

	weapons, ok := s.Relationships.Relations["Weapons"]
	require.True(t, ok)
	assert.Equal(t, schema.HasMany, weapons.Type)
	assert.Equal(t, "weapons", weapons.FieldSchema.Table)

	run, ok := s.Relationships.Relations["Run"]
	require.True(t, ok)
	assert.Equal(t, schema.BelongsTo, run.Type)
}
