package parser

import (
	"fmt"
	"slices"
	"strings"

	"github.com/warnodata/extractor/internal/ndf"
	"github.com/warnodata/extractor/pkg/core"
)

// Ammo id fragments that decide how merged mounts combine.
const (
	smokeAmmoMarker  = "Ammo_SMOKE_Vehicle"
	armorPiercingTag = "_AP_"
	highExplosiveTag = "_HE_"
	gatlingAirTag    = "_GatlingAir_"
	gatlingTag       = "Gatling"
)

// unusedSalvo marks a salvo slot no weapon fires from.
const unusedSalvo = -1

// WeaponSet is what a weapon manager contributes to a unit.
type WeaponSet struct {
	Weapons           []core.Weapon
	HasDefensiveSmoke bool
}

// ParseWeaponManager extracts every turret mount of a weapon manager and
// merges the visible ones that share a salvo into single weapons, ordered by
// salvo index. Smoke launchers only set HasDefensiveSmoke.
func (p *Parser) ParseWeaponManager(node *ndf.Node) (WeaponSet, error) {
	set := WeaponSet{Weapons: []core.Weapon{}}

	rawSalvo, err := parseSalvoTable(node)
	if err != nil {
		return set, fmt.Errorf("weapon manager %s: %w", node.Name, err)
	}
	filteredSalvo := make([]float64, 0, len(rawSalvo))
	for _, s := range rawSalvo {
		if s != unusedSalvo {
			filteredSalvo = append(filteredSalvo, s)
		}
	}

	var mounts []MountedWeapon
	turrets, _ := ndf.First(node, "TurretDescriptorList")
	for ti, turretNode := range ndf.Values(turrets) {
		rotation, err := number(turretNode, "VitesseRotation")
		if err != nil {
			return set, fmt.Errorf("weapon manager %s: turret %d: %w", node.Name, ti, err)
		}
		turret := Turret{HasTurret: rotation != 0, RotationSpeed: rotation}

		mountList, _ := ndf.First(turretNode, "MountedWeaponDescriptorList")
		for mi, mountNode := range ndf.Values(mountList) {
			if isSmokeLauncher(mountNode) {
				set.HasDefensiveSmoke = true
				continue
			}
			mw, err := p.ParseMountedWeapon(mountNode)
			if err != nil {
				return set, fmt.Errorf("weapon manager %s: turret %d mount %d: %w", node.Name, ti, mi, err)
			}
			mounts = append(mounts, mw.OnTurret(turret))
		}
	}

	visible := mounts[:0:0]
	for _, m := range mounts {
		if m.ShowInInterface {
			visible = append(visible, m)
		}
	}

	// Mounts record their index in the raw table while groups are walked by
	// position in the filtered table; the two only agree when unused slots trail.
	for i, salvoCount := range filteredSalvo {
		var group []MountedWeapon
		for _, m := range visible {
			if m.SalvoIndex == i {
				group = append(group, m)
			}
		}
		if len(group) == 0 {
			continue
		}

		weapon := seedWeapon(group[0], salvoCount)
		for _, m := range group[1:] {
			mergeMount(&weapon, m)
		}
		set.Weapons = append(set.Weapons, weapon)
	}

	return set, nil
}

// parseSalvoTable reads Salves, written either as a list or as a map whose
// values are the per-salvo counts.
func parseSalvoTable(node *ndf.Node) ([]float64, error) {
	salves, ok := ndf.First(node, "Salves")
	if !ok {
		return nil, nil
	}
	entries := ndf.Values(salves)
	table := make([]float64, 0, len(entries))
	for i, e := range entries {
		raw, ok := ndf.ValueOf(e)
		if !ok {
			return nil, fmt.Errorf("salvo %d: %w", i, ErrMalformedQuantity)
		}
		v, err := parseNumber(raw)
		if err != nil {
			return nil, fmt.Errorf("salvo %d %q: %w", i, raw, ErrMalformedQuantity)
		}
		table = append(table, v)
	}
	return table, nil
}

// seedWeapon builds a weapon from the first mount of a salvo group.
func seedWeapon(m MountedWeapon, salvoCount float64) core.Weapon {
	a := m.Ammo
	return core.Weapon{
		AimingTime:                a.AimingTime,
		AmmoDescriptorName:        a.DescriptorName,
		AmmunitionPerSalvo:        a.AmmunitionPerSalvo,
		FiresLeftToRight:          a.FiresLeftToRight,
		GroundMinRange:            a.GroundMinRange,
		GroundRange:               a.GroundMaxRange,
		HasTurret:                 m.HasTurret,
		He:                        a.HeDamage,
		HeDamageRadius:            a.HeDamageRadius,
		HelicopterMinRange:        a.HeliMinRange,
		HelicopterRange:           a.HeliMaxRange,
		InstaKillAtMaxRangeArmour: a.InstaKillAtMaxRangeArmour,
		MissileProperties:         cloneMissile(a.Missile),
		MovingAccuracy:            a.MovingAccuracy,
		NumberOfWeapons:           m.NumberOfWeapons,
		Penetration:               a.Penetration,
		PlaneMinRange:             a.PlaneMinRange,
		PlaneRange:                a.PlaneMaxRange,
		RateOfFire:                a.RateOfFire,
		ReloadTime:                a.ReloadTime,
		SalvoIndex:                m.SalvoIndex,
		SalvoLength:               a.SalvoLength,
		ShowInInterface:           m.ShowInInterface,
		SmokeProperties:           cloneSmoke(a.Smoke),
		StaticAccuracy:            a.StaticAccuracy,
		SupplyCost:                salvoCount * a.SupplyCostPerSalvo,
		Suppress:                  a.Suppress,
		SuppressDamagesRadius:     a.SuppressDamagesRadius,
		TimeBetweenSalvos:         a.TimeBetweenSalvos,
		TotalHeDamage:             round2(a.HeDamage * a.SalvoLength * float64(m.NumberOfWeapons)),
		Traits:                    slices.Clone(a.Traits),
		TrueRateOfFire:            a.TrueRateOfFire,
		TurretRotationSpeed:       m.TurretRotationSpeed,
		WeaponName:                a.Name,
	}
}

// mergeMount folds a later mount of the same salvo into w.
func mergeMount(w *core.Weapon, m MountedWeapon) {
	a := m.Ammo
	id := a.DescriptorName
	isAP := containsToken(id, armorPiercingTag)

	if isAP {
		w.Penetration = a.Penetration
	}
	if containsToken(id, highExplosiveTag) {
		w.He = a.HeDamage
	} else if !isAP && (containsToken(id, gatlingAirTag) || containsToken(id, gatlingTag)) {
		w.He = a.HeDamage
	}
	if a.Smoke != nil {
		w.SmokeProperties = cloneSmoke(a.Smoke)
	}

	// Applied on every merged mount, so it compounds for groups of three or more.
	w.Suppress = max(w.Suppress, a.Suppress) * float64(w.NumberOfWeapons)
	w.GroundRange = max(w.GroundRange, a.GroundMaxRange)
	w.HelicopterRange = max(w.HelicopterRange, a.HeliMaxRange)
	w.PlaneRange = max(w.PlaneRange, a.PlaneMaxRange)
}

func containsToken(s, token string) bool {
	return strings.Contains(s, token)
}

func cloneMissile(m *core.Missile) *core.Missile {
	if m == nil {
		return nil
	}
	c := *m
	return &c
}

func cloneSmoke(s *core.Smoke) *core.Smoke {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}
