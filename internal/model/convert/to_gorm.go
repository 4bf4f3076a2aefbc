// Package convert provides functions to convert core records into GORM models
package convert

import (
	"encoding/json"
	"time"

	"github.com/warnodata/extractor/internal/model"
	"github.com/warnodata/extractor/pkg/core"
	"gorm.io/datatypes"
)

// stringsToJSON converts a []string to datatypes.JSON for DB storage.
func stringsToJSON(values []string) datatypes.JSON {
	if len(values) == 0 {
		return datatypes.JSON("[]")
	}
	data, _ := json.Marshal(values)
	return datatypes.JSON(data)
}

// optionalJSON stores v as JSON, or SQL NULL when v is nil.
func optionalJSON[T any](v *T) datatypes.JSON {
	if v == nil {
		return nil
	}
	data, _ := json.Marshal(v)
	return datatypes.JSON(data)
}

// CoreToRun builds the run row for an extraction.
func CoreToRun(startedAt time.Time, sources []string, filter string, units, failed int, duration time.Duration) model.ExtractionRun {
	return model.ExtractionRun{
		StartedAt:   startedAt,
		Sources:     stringsToJSON(sources),
		Filter:      filter,
		UnitCount:   units,
		FailedCount: failed,
		DurationMs:  float64(duration.Microseconds()) / 1000,
	}
}

// CoreToUnit converts a core.Unit to a GORM model.Unit with its weapons.
// core.Unit.ID maps to the card Code; position is the unit's output index.
func CoreToUnit(u core.Unit, runID uint, position int) model.Unit {
	terrains := datatypes.JSON("[]")
	if len(u.SpeedsForTerrains) > 0 {
		terrains, _ = json.Marshal(u.SpeedsForTerrains)
	}

	weapons := make([]model.Weapon, len(u.Weapons))
	for i, w := range u.Weapons {
		weapons[i] = CoreToWeapon(w, i)
	}

	return model.Unit{
		RunID:          runID,
		Position:       position,
		DescriptorName: u.DescriptorName,
		Name:           u.Name,
		Category:       u.Category,
		Code:           u.ID,
		Type: model.UnitType{
			Nationality:   u.UnitType.Nationality,
			MotherCountry: u.UnitType.MotherCountry,
			Formation:     u.UnitType.Formation,
		},
		CommandPoints:      u.CommandPoints,
		InfoPanelType:      string(u.InfoPanelType),
		FactoryDescriptor:  u.FactoryDescriptor,
		FrontArmor:         u.FrontArmor,
		SideArmor:          u.SideArmor,
		RearArmor:          u.RearArmor,
		TopArmor:           u.TopArmor,
		MaxDamage:          u.MaxDamage,
		Speed:              u.Speed,
		SpeedsForTerrains:  terrains,
		RoadSpeed:          u.RoadSpeed,
		RotationTime:       u.RotationTime,
		Optics:             u.Optics,
		AirOptics:          u.AirOptics,
		BombStrategy:       string(u.BombStrategy),
		Stealth:            u.Stealth,
		AdvancedDeployment: u.AdvancedDeployment,
		Fuel:               u.Fuel,
		FuelMove:           u.FuelMove,
		Supply:             u.Supply,
		ECM:                u.ECM,
		Agility:            u.Agility,
		TravelTime:         u.TravelTime,
		Specialities:       stringsToJSON(u.Specialities),
		HasDefensiveSmoke:  u.HasDefensiveSmoke,
		Weapons:            weapons,
	}
}

// CoreToWeapon converts a core.Weapon to a GORM model.Weapon.
func CoreToWeapon(w core.Weapon, position int) model.Weapon {
	return model.Weapon{
		Position:                  position,
		WeaponName:                w.WeaponName,
		AmmoDescriptorName:        w.AmmoDescriptorName,
		Traits:                    stringsToJSON(w.Traits),
		SalvoIndex:                w.SalvoIndex,
		NumberOfWeapons:           w.NumberOfWeapons,
		ShowInInterface:           w.ShowInInterface,
		HasTurret:                 w.HasTurret,
		TurretRotationSpeed:       w.TurretRotationSpeed,
		Penetration:               w.Penetration,
		He:                        w.He,
		TotalHeDamage:             w.TotalHeDamage,
		HeDamageRadius:            w.HeDamageRadius,
		Suppress:                  w.Suppress,
		SuppressDamagesRadius:     w.SuppressDamagesRadius,
		GroundMinRange:            w.GroundMinRange,
		GroundRange:               w.GroundRange,
		HelicopterMinRange:        w.HelicopterMinRange,
		HelicopterRange:           w.HelicopterRange,
		PlaneMinRange:             w.PlaneMinRange,
		PlaneRange:                w.PlaneRange,
		StaticAccuracy:            w.StaticAccuracy,
		MovingAccuracy:            w.MovingAccuracy,
		AimingTime:                w.AimingTime,
		ReloadTime:                w.ReloadTime,
		TimeBetweenSalvos:         w.TimeBetweenSalvos,
		SalvoLength:               w.SalvoLength,
		AmmunitionPerSalvo:        w.AmmunitionPerSalvo,
		SupplyCost:                w.SupplyCost,
		RateOfFire:                w.RateOfFire,
		TrueRateOfFire:            w.TrueRateOfFire,
		FiresLeftToRight:          w.FiresLeftToRight,
		InstaKillAtMaxRangeArmour: w.InstaKillAtMaxRangeArmour,
		MissileProperties:         optionalJSON(w.MissileProperties),
		SmokeProperties:           optionalJSON(w.SmokeProperties),
	}
}
