package parser

import (
	"fmt"
	"math"

	"github.com/warnodata/extractor/internal/ndf"
	"github.com/warnodata/extractor/internal/util"
	"github.com/warnodata/extractor/pkg/core"
)

// MountedWeapon is one physical weapon on a turret, before mounts sharing a
// salvo are merged.
type MountedWeapon struct {
	Ammo            core.Ammo
	SalvoIndex      int
	NumberOfWeapons int
	ShowInInterface bool

	HasTurret           bool
	TurretRotationSpeed float64
}

// Turret holds the attributes a turret passes on to its mounts.
type Turret struct {
	HasTurret     bool
	RotationSpeed float64
}

// OnTurret returns a copy of m carrying the turret's attributes.
func (m MountedWeapon) OnTurret(t Turret) MountedWeapon {
	return MountedWeapon{
		Ammo:                m.Ammo,
		SalvoIndex:          m.SalvoIndex,
		NumberOfWeapons:     m.NumberOfWeapons,
		ShowInInterface:     m.ShowInInterface,
		HasTurret:           t.HasTurret,
		TurretRotationSpeed: t.RotationSpeed,
	}
}

// ParseMountedWeapon extracts one mount and resolves its ammunition.
func (p *Parser) ParseMountedWeapon(node *ndf.Node) (MountedWeapon, error) {
	var mw MountedWeapon

	ammoRef, ok := ndf.First(node, "Ammunition")
	if !ok {
		return mw, fmt.Errorf("mounted weapon: Ammunition: %w", ErrMissingRequiredField)
	}
	ammoID := referenceID(ammoRef)
	ammoNode, ok := p.catalog.Ammo.Lookup(ammoID)
	if !ok {
		return mw, fmt.Errorf("mounted weapon: ammunition %q: %w", ammoID, ErrUnresolvedReference)
	}
	ammo, err := p.ParseAmmo(ammoNode)
	if err != nil {
		return mw, fmt.Errorf("mounted weapon: %w", err)
	}
	mw.Ammo = ammo

	count, present, err := optionalNumber(node, "NbWeapons", parseNumber)
	if err != nil {
		return mw, fmt.Errorf("mounted weapon %s: %w", ammoID, err)
	}
	mw.NumberOfWeapons = 1
	if present {
		mw.NumberOfWeapons = int(math.Round(count))
	}

	index, err := number(node, "SalvoStockIndex")
	if err != nil {
		return mw, fmt.Errorf("mounted weapon %s: %w", ammoID, err)
	}
	mw.SalvoIndex = int(index)
	mw.ShowInInterface = flag(node, "ShowInInterface", true)

	return mw, nil
}

// isSmokeLauncher reports whether a mount fires vehicle smoke.
func isSmokeLauncher(node *ndf.Node) bool {
	ref, ok := ndf.Scalar(node, "Ammunition")
	if !ok {
		return false
	}
	return containsToken(util.TrimQuotes(ref), smokeAmmoMarker)
}
