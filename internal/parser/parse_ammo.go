package parser

import (
	"fmt"
	"math"

	"github.com/warnodata/extractor/internal/ndf"
	"github.com/warnodata/extractor/internal/util"
	"github.com/warnodata/extractor/pkg/core"
)

// ammoNumber binds a numeric descriptor field to the Ammo field it fills.
type ammoNumber struct {
	field    string
	dst      func(*core.Ammo) *float64
	distance bool
}

var ammoNumbers = []ammoNumber{
	{field: "PhysicalDamages", dst: func(a *core.Ammo) *float64 { return &a.HeDamage }},
	{field: "RadiusSplashPhysicalDamages", dst: func(a *core.Ammo) *float64 { return &a.HeDamageRadius }, distance: true},
	{field: "SuppressDamages", dst: func(a *core.Ammo) *float64 { return &a.Suppress }},
	{field: "RadiusSplashSuppressDamages", dst: func(a *core.Ammo) *float64 { return &a.SuppressDamagesRadius }, distance: true},
	{field: "PorteeMinimaleGRU", dst: func(a *core.Ammo) *float64 { return &a.GroundMinRange }, distance: true},
	{field: "PorteeMaximaleGRU", dst: func(a *core.Ammo) *float64 { return &a.GroundMaxRange }, distance: true},
	{field: "PorteeMinimaleTBAGRU", dst: func(a *core.Ammo) *float64 { return &a.HeliMinRange }, distance: true},
	{field: "PorteeMaximaleTBAGRU", dst: func(a *core.Ammo) *float64 { return &a.HeliMaxRange }, distance: true},
	{field: "PorteeMinimaleHAGRU", dst: func(a *core.Ammo) *float64 { return &a.PlaneMinRange }, distance: true},
	{field: "PorteeMaximaleHAGRU", dst: func(a *core.Ammo) *float64 { return &a.PlaneMaxRange }, distance: true},
	{field: "TempsDeVisee", dst: func(a *core.Ammo) *float64 { return &a.AimingTime }},
	{field: "TempsEntreDeuxTirs", dst: func(a *core.Ammo) *float64 { return &a.TimeBetweenShots }},
	{field: "TempsEntreDeuxSalves", dst: func(a *core.Ammo) *float64 { return &a.TimeBetweenSalvos }},
	{field: "NbTirParSalves", dst: func(a *core.Ammo) *float64 { return &a.SalvoLength }},
	{field: "AffichageMunitionParSalve", dst: func(a *core.Ammo) *float64 { return &a.AmmunitionPerSalvo }},
	{field: "SupplyCost", dst: func(a *core.Ammo) *float64 { return &a.SupplyCostPerSalvo }},
	{field: "InstaKillAtMaxRangeArmor", dst: func(a *core.Ammo) *float64 { return &a.InstaKillAtMaxRangeArmour }},
}

// ParseAmmo extracts the ballistic data of one ammunition descriptor.
func (p *Parser) ParseAmmo(node *ndf.Node) (core.Ammo, error) {
	ammo := core.Ammo{
		DescriptorName: node.Name,
		Traits:         []string{},
	}

	if name, ok := ndf.Scalar(node, "Name"); ok {
		ammo.Name = util.TrimQuotes(name)
	}
	if traits, ok := ndf.First(node, "TraitsToken"); ok {
		for _, t := range ndf.Strings(traits) {
			if t = util.TrimQuotes(t); t != "" {
				ammo.Traits = append(ammo.Traits, t)
			}
		}
	}

	for _, f := range ammoNumbers {
		read := number
		if f.distance {
			read = distance
		}
		v, err := read(node, f.field)
		if err != nil {
			return ammo, fmt.Errorf("ammo %s: %w", node.Name, err)
		}
		*f.dst(&ammo) = v
	}

	if arme, ok := ndf.First(node, "Arme"); ok {
		v, err := number(arme, "Index")
		if err != nil {
			return ammo, fmt.Errorf("ammo %s: penetration: %w", node.Name, err)
		}
		ammo.Penetration = v
	}

	if err := parseAccuracy(node, &ammo); err != nil {
		return ammo, fmt.Errorf("ammo %s: %w", node.Name, err)
	}

	ammo.FiresLeftToRight = flag(node, "FireLeftToRight", false)
	ammo.ReloadTime = ammo.TimeBetweenSalvos
	ammo.RateOfFire = rateOfFire(ammo.TimeBetweenShots)
	ammo.TrueRateOfFire = trueRateOfFire(ammo)

	if missileNode := p.resolveSubDescriptor(node, "MissileDescriptor", p.catalog.Missiles); missileNode != nil {
		missile, err := p.ParseMissile(missileNode)
		if err != nil {
			return ammo, fmt.Errorf("ammo %s: %w", node.Name, err)
		}
		ammo.Missile = &missile
	}
	if smokeNode := p.resolveSubDescriptor(node, "SmokeDescriptor", p.catalog.Smoke); smokeNode != nil {
		smoke, err := p.ParseSmoke(smokeNode)
		if err != nil {
			return ammo, fmt.Errorf("ammo %s: %w", node.Name, err)
		}
		ammo.Smoke = &smoke
	}

	return ammo, nil
}

// parseAccuracy reads the idle and moving hit chances from the hit roll map.
func parseAccuracy(node *ndf.Node, ammo *core.Ammo) error {
	modifiers, ok := ndf.First(node, "BaseHitValueModifiers")
	if !ok {
		return nil
	}
	for _, m := range []struct {
		key string
		dst *float64
	}{
		{"Idling", &ammo.StaticAccuracy},
		{"Moving", &ammo.MovingAccuracy},
	} {
		raw, ok := ndf.Tuple(modifiers, m.key)
		if !ok {
			continue
		}
		v, err := parseNumber(raw)
		if err != nil {
			return fmt.Errorf("accuracy %s %q: %w", m.key, raw, ErrMalformedQuantity)
		}
		*m.dst = v
	}
	return nil
}

func rateOfFire(timeBetweenShots float64) float64 {
	if timeBetweenShots <= 0 {
		return 0
	}
	return math.Round(60 / timeBetweenShots)
}

// trueRateOfFire is rounds per minute over a full aim, salvo and reload cycle.
func trueRateOfFire(a core.Ammo) float64 {
	shots := math.Max(a.SalvoLength, 1)
	cycle := a.AimingTime + (shots-1)*a.TimeBetweenShots + a.TimeBetweenSalvos
	if cycle <= 0 {
		return 0
	}
	return math.Round(a.SalvoLength * 60 / cycle)
}

// resolveSubDescriptor returns the node a missile or smoke field stands for:
// the field itself when written inline, or the indexed descriptor it
// references. An unresolvable reference means the ammo has no such feature.
func (p *Parser) resolveSubDescriptor(node *ndf.Node, field string, index ndf.Index) *ndf.Node {
	ref, ok := ndf.First(node, field)
	if !ok {
		return nil
	}
	if ref.Value == "" && len(ref.Children) > 0 && !ref.Children[0].IsLeaf() {
		return ref.Children[0]
	}
	if ref.Value == "" && hasFields(ref) {
		return ref
	}
	id := referenceID(ref)
	if id == "" {
		return nil
	}
	resolved, ok := index.Lookup(id)
	if !ok {
		p.logger.Debug("Sub-descriptor not found",
			"ammo", node.Name,
			"field", field,
			"reference", id)
		return nil
	}
	return resolved
}

// hasFields reports whether an object carries named children rather than a
// single anonymous reference value.
func hasFields(n *ndf.Node) bool {
	for _, c := range n.Children {
		if c.Name != "" {
			return true
		}
	}
	return false
}

// ParseMissile reads the flight data of a missile descriptor.
func (p *Parser) ParseMissile(node *ndf.Node) (core.Missile, error) {
	missile := core.Missile{DescriptorName: node.Name}
	var err error
	if missile.MaxSpeed, err = distance(node, "MaxSpeed"); err != nil {
		return missile, fmt.Errorf("missile %s: %w", node.Name, err)
	}
	if missile.MaxAcceleration, err = distance(node, "MaxAcceleration"); err != nil {
		return missile, fmt.Errorf("missile %s: %w", node.Name, err)
	}
	return missile, nil
}

// ParseSmoke reads the screen size and duration of a smoke descriptor.
func (p *Parser) ParseSmoke(node *ndf.Node) (core.Smoke, error) {
	smoke := core.Smoke{DescriptorName: node.Name}
	var err error
	if smoke.Radius, err = distance(node, "Radius"); err != nil {
		return smoke, fmt.Errorf("smoke %s: %w", node.Name, err)
	}
	if smoke.LifeSpan, err = number(node, "TimeToLive"); err != nil {
		return smoke, fmt.Errorf("smoke %s: %w", node.Name, err)
	}
	return smoke, nil
}
