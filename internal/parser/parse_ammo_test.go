package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warnodata/extractor/internal/ndf"
)

func tankGunAmmo() *ndf.Node {
	return ammoDescriptor("Ammo_AP_M256_120mm",
		ndf.Leaf("Name", "'M256'"),
		ndf.List("TraitsToken", "'KE'", "'STAT'", "''"),
		ndf.Object("Arme", "TDamageTypeRTTI", ndf.Leaf("Family", "DamageFamily_ap"), ndf.Leaf("Index", "20")),
		ndf.Leaf("PhysicalDamages", "1"),
		ndf.Leaf("RadiusSplashPhysicalDamages", "((5) * Metre)"),
		ndf.Leaf("SuppressDamages", "25"),
		ndf.Leaf("RadiusSplashSuppressDamages", "((35) * Metre)"),
		ndf.Leaf("PorteeMaximaleGRU", "((2275) * Metre)"),
		ndf.Leaf("PorteeMinimaleGRU", "0"),
		ndf.Leaf("PorteeMaximaleTBAGRU", "((1925) * Metre)"),
		ndf.Object("HitRollRuleDescriptor", "TModernWarfareHitRollRuleDescriptor",
			ndf.Map("BaseHitValueModifiers",
				"EBaseHitValueModifier/Idling", "60",
				"EBaseHitValueModifier/Moving", "25",
			),
		),
		ndf.Leaf("TempsDeVisee", "2"),
		ndf.Leaf("TempsEntreDeuxTirs", "7.5"),
		ndf.Leaf("TempsEntreDeuxSalves", "7.5"),
		ndf.Leaf("NbTirParSalves", "1"),
		ndf.Leaf("AffichageMunitionParSalve", "1"),
		ndf.Leaf("SupplyCost", "20"),
		ndf.Leaf("FireLeftToRight", "False"),
		ndf.Leaf("InstaKillAtMaxRangeArmor", "3"),
	)
}

func TestParseAmmo(t *testing.T) {
	p := newTestParser()

	ammo, err := p.ParseAmmo(tankGunAmmo())
	require.NoError(t, err)

	assert.Equal(t, "Ammo_AP_M256_120mm", ammo.DescriptorName)
	assert.Equal(t, "M256", ammo.Name)
	assert.Equal(t, []string{"KE", "STAT"}, ammo.Traits)
	assert.Equal(t, 20.0, ammo.Penetration)
	assert.Equal(t, 1.0, ammo.HeDamage)
	assert.Equal(t, 5.0, ammo.HeDamageRadius)
	assert.Equal(t, 25.0, ammo.Suppress)
	assert.Equal(t, 35.0, ammo.SuppressDamagesRadius)
	assert.Equal(t, 2275.0, ammo.GroundMaxRange)
	assert.Equal(t, 0.0, ammo.GroundMinRange)
	assert.Equal(t, 1925.0, ammo.HeliMaxRange)
	assert.Equal(t, 0.0, ammo.PlaneMaxRange)
	assert.Equal(t, 60.0, ammo.StaticAccuracy)
	assert.Equal(t, 25.0, ammo.MovingAccuracy)
	assert.Equal(t, 2.0, ammo.AimingTime)
	assert.Equal(t, 7.5, ammo.ReloadTime)
	assert.Equal(t, 1.0, ammo.SalvoLength)
	assert.Equal(t, 20.0, ammo.SupplyCostPerSalvo)
	assert.False(t, ammo.FiresLeftToRight)
	assert.Equal(t, 3.0, ammo.InstaKillAtMaxRangeArmour)

	// 60 / 7.5
	assert.Equal(t, 8.0, ammo.RateOfFire)
	// 1 shot per 2 + 0 + 7.5 seconds
	assert.Equal(t, 6.0, ammo.TrueRateOfFire)

	assert.Nil(t, ammo.Missile)
	assert.Nil(t, ammo.Smoke)
}

func TestParseAmmo_RateOfFireWithoutTiming(t *testing.T) {
	p := newTestParser()

	ammo, err := p.ParseAmmo(ammoDescriptor("Ammo_Bare"))
	require.NoError(t, err)
	assert.Equal(t, 0.0, ammo.RateOfFire)
	assert.Equal(t, 0.0, ammo.TrueRateOfFire)
	assert.Empty(t, ammo.Traits)
}

func TestParseAmmo_TrueRateOfFireSalvo(t *testing.T) {
	p := newTestParser()

	ammo, err := p.ParseAmmo(ammoDescriptor("Ammo_RocketArt",
		ndf.Leaf("TempsDeVisee", "1"),
		ndf.Leaf("TempsEntreDeuxTirs", "0.5"),
		ndf.Leaf("TempsEntreDeuxSalves", "30"),
		ndf.Leaf("NbTirParSalves", "12"),
	))
	require.NoError(t, err)

	assert.Equal(t, 120.0, ammo.RateOfFire)
	// 12 shots * 60 / (1 + 11*0.5 + 30) = 720 / 36.5
	assert.Equal(t, 20.0, ammo.TrueRateOfFire)
}

func TestParseAmmo_MissileReference(t *testing.T) {
	missile := ndf.Object("Missile_AGM114", ndf.TypeMissile,
		ndf.Leaf("MaxSpeed", "((425) * Metre)"),
		ndf.Leaf("MaxAcceleration", "200"),
	)
	p := newTestParser(missile)

	ammo, err := p.ParseAmmo(ammoDescriptor("Ammo_AGM_AGM114",
		ndf.Leaf("MissileDescriptor", "$/GFX/Weapon/Missile_AGM114"),
	))
	require.NoError(t, err)
	require.NotNil(t, ammo.Missile)
	assert.Equal(t, "Missile_AGM114", ammo.Missile.DescriptorName)
	assert.Equal(t, 425.0, ammo.Missile.MaxSpeed)
	assert.Equal(t, 200.0, ammo.Missile.MaxAcceleration)
}

func TestParseAmmo_InlineSmoke(t *testing.T) {
	p := newTestParser()

	ammo, err := p.ParseAmmo(ammoDescriptor("Ammo_SMOKE_Arty",
		ndf.Object("SmokeDescriptor", "", ndf.Object("Smoke_Arty", ndf.TypeSmoke,
			ndf.Leaf("Radius", "((120) * Metre)"),
			ndf.Leaf("TimeToLive", "45"),
		)),
	))
	require.NoError(t, err)
	require.NotNil(t, ammo.Smoke)
	assert.Equal(t, "Smoke_Arty", ammo.Smoke.DescriptorName)
	assert.Equal(t, 120.0, ammo.Smoke.Radius)
	assert.Equal(t, 45.0, ammo.Smoke.LifeSpan)
}

func TestParseAmmo_InlineFields(t *testing.T) {
	p := newTestParser()

	ammo, err := p.ParseAmmo(ammoDescriptor("Ammo_SMOKE_Mortar",
		ndf.Object("SmokeDescriptor", "TSmokeDescriptor",
			ndf.Leaf("Radius", "80"),
			ndf.Leaf("TimeToLive", "30"),
		),
	))
	require.NoError(t, err)
	require.NotNil(t, ammo.Smoke)
	assert.Equal(t, 80.0, ammo.Smoke.Radius)
	assert.Equal(t, 30.0, ammo.Smoke.LifeSpan)
}

func TestParseAmmo_UnresolvedOptionalReference(t *testing.T) {
	p := newTestParser()

	ammo, err := p.ParseAmmo(ammoDescriptor("Ammo_AGM_Missing",
		ndf.Leaf("MissileDescriptor", "$/GFX/Weapon/Missile_Unknown"),
		ndf.Leaf("SmokeDescriptor", "nil"),
	))
	require.NoError(t, err)
	assert.Nil(t, ammo.Missile)
	assert.Nil(t, ammo.Smoke)
}

func TestParseAmmo_MalformedField(t *testing.T) {
	p := newTestParser()

	tests := []struct {
		name  string
		field *ndf.Node
	}{
		{"damage", ndf.Leaf("PhysicalDamages", "lots")},
		{"range", ndf.Leaf("PorteeMaximaleGRU", "((far) * Metre)")},
		{"penetration", ndf.Object("Arme", "", ndf.Leaf("Index", "x"))},
		{"accuracy", ndf.Map("BaseHitValueModifiers", "EBaseHitValueModifier/Idling", "high")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.ParseAmmo(ammoDescriptor("Ammo_Broken", tt.field))
			assert.ErrorIs(t, err, ErrMalformedQuantity)
		})
	}
}
