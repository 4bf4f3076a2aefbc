package convert

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warnodata/extractor/pkg/core"
	"gorm.io/datatypes"
)

func TestStringsToJSON(t *testing.T) {
	assert.Equal(t, datatypes.JSON("[]"), stringsToJSON(nil))
	assert.Equal(t, datatypes.JSON("[]"), stringsToJSON([]string{}))
	assert.JSONEq(t, `["para","amphibie"]`, string(stringsToJSON([]string{"para", "amphibie"})))
}

func TestOptionalJSON(t *testing.T) {
	assert.Nil(t, optionalJSON[core.Smoke](nil))
	assert.JSONEq(t,
		`{"descriptorName":"Smoke_Arty","radius":120,"lifeSpan":45}`,
		string(optionalJSON(&core.Smoke{DescriptorName: "Smoke_Arty", Radius: 120, LifeSpan: 45})))
}

func TestCoreToRun(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	run := CoreToRun(start, []string{"data/units.json"}, "Speed > 50", 120, 3, 1500*time.Millisecond)

	assert.Equal(t, start, run.StartedAt)
	assert.JSONEq(t, `["data/units.json"]`, string(run.Sources))
	assert.Equal(t, "Speed > 50", run.Filter)
	assert.Equal(t, 120, run.UnitCount)
	assert.Equal(t, 3, run.FailedCount)
	assert.Equal(t, 1500.0, run.DurationMs)
}

func TestCoreToUnit(t *testing.T) {
	agility := 150
	travel := 12.5
	unit := core.Unit{
		DescriptorName:    "Descriptor_Unit_AH64_Apache_US",
		Name:              "AH-64A APACHE",
		Category:          "HEL",
		ID:                7,
		UnitType:          core.UnitType{Nationality: "ENationalite/Allied", MotherCountry: "US", Formation: "Air"},
		CommandPoints:     190,
		InfoPanelType:     core.InfoPanelHelicopter,
		FrontArmor:        2,
		Speed:             280,
		SpeedsForTerrains: []core.SpeedOnTerrain{{Name: "Air", Speed: 280}},
		BombStrategy:      core.BombStrategyNone,
		Agility:           &agility,
		TravelTime:        &travel,
		Specialities:      []string{"_ifv"},
		HasDefensiveSmoke: false,
		Weapons: []core.Weapon{
			{
				AmmoDescriptorName: "Ammo_AGM_AGM114",
				Traits:             []string{"GUIDED"},
				Penetration:        22,
				MissileProperties:  &core.Missile{DescriptorName: "Missile_AGM114", MaxSpeed: 425, MaxAcceleration: 200},
			},
			{AmmoDescriptorName: "Ammo_M230_30mm", He: 1.5},
		},
	}

	row := CoreToUnit(unit, 3, 11)

	assert.Equal(t, uint(3), row.RunID)
	assert.Equal(t, 11, row.Position)
	assert.Equal(t, "Descriptor_Unit_AH64_Apache_US", row.DescriptorName)
	assert.Equal(t, 7, row.Code)
	assert.Equal(t, "US", row.Type.MotherCountry)
	assert.Equal(t, "helicopter", row.InfoPanelType)
	assert.Equal(t, "", row.BombStrategy)
	assert.JSONEq(t, `[{"name":"Air","speed":280}]`, string(row.SpeedsForTerrains))
	assert.JSONEq(t, `["_ifv"]`, string(row.Specialities))
	require.NotNil(t, row.Agility)
	assert.Equal(t, 150, *row.Agility)
	require.NotNil(t, row.TravelTime)
	assert.Equal(t, 12.5, *row.TravelTime)

	require.Len(t, row.Weapons, 2)
	assert.Equal(t, 0, row.Weapons[0].Position)
	assert.Equal(t, 1, row.Weapons[1].Position)
	assert.Equal(t, 22.0, row.Weapons[0].Penetration)
	assert.JSONEq(t, `["GUIDED"]`, string(row.Weapons[0].Traits))
	assert.JSONEq(t, `{"descriptorName":"Missile_AGM114","maxSpeed":425,"maxAcceleration":200}`,
		string(row.Weapons[0].MissileProperties))
	assert.Nil(t, row.Weapons[0].SmokeProperties)
	assert.JSONEq(t, `[]`, string(row.Weapons[1].Traits))
	assert.Nil(t, row.Weapons[1].MissileProperties)
}

func TestCoreToUnit_NoTerrains(t *testing.T) {
	row := CoreToUnit(core.Unit{DescriptorName: "Descriptor_Unit_Bunker", ID: -1}, 1, 0)
	assert.JSONEq(t, `[]`, string(row.SpeedsForTerrains))
	assert.Equal(t, -1, row.Code)
	assert.Nil(t, row.Agility)
	assert.Nil(t, row.TravelTime)
	assert.Empty(t, row.Weapons)
}
