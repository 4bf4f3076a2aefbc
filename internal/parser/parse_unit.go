package parser

import (
	"fmt"
	"math"
	"strings"

	"github.com/warnodata/extractor/internal/ndf"
	"github.com/warnodata/extractor/internal/util"
	"github.com/warnodata/extractor/pkg/core"
)

// unitTypeField is a child of the unit type module that feeds core.UnitType.
type unitTypeField int

const (
	unitTypeUnrecognized unitTypeField = iota
	unitTypeNationality
	unitTypeMotherCountry
	unitTypeFormation
)

func parseUnitTypeField(name string) unitTypeField {
	switch name {
	case "Nationalite":
		return unitTypeNationality
	case "MotherCountry":
		return unitTypeMotherCountry
	case "TypeUnitFormation":
		return unitTypeFormation
	default:
		return unitTypeUnrecognized
	}
}

const excludedSpeciality = "appui"

// unitNumber binds a plain numeric unit field to the Unit field it fills.
type unitNumber struct {
	field string
	dst   func(*core.Unit) *float64
}

var unitNumbers = []unitNumber{
	{"MaxDamages", func(u *core.Unit) *float64 { return &u.MaxDamage }},
	{"TempsDemiTour", func(u *core.Unit) *float64 { return &u.RotationTime }},
	{"OpticalStrength", func(u *core.Unit) *float64 { return &u.Optics }},
	{"OpticalStrengthAltitude", func(u *core.Unit) *float64 { return &u.AirOptics }},
	{"UnitConcealmentBonus", func(u *core.Unit) *float64 { return &u.Stealth }},
	{"FuelCapacity", func(u *core.Unit) *float64 { return &u.Fuel }},
	{"FuelMoveDuration", func(u *core.Unit) *float64 { return &u.FuelMove }},
	{"SupplyCapacity", func(u *core.Unit) *float64 { return &u.Supply }},
	{"HitRollECM", func(u *core.Unit) *float64 { return &u.ECM }},
}

// ParseUnit extracts one unit descriptor, including its merged weapons.
func (p *Parser) ParseUnit(node *ndf.Node) (core.Unit, error) {
	unit := core.Unit{
		DescriptorName: node.Name,
		ID:             -1,
		Specialities:   []string{},
		Weapons:        []core.Weapon{},
	}

	card, found := p.cards.FindUnitCardByDescriptor(node.Name)
	if found {
		unit.ID = card.Code
		unit.Category = card.Category
	}
	unit.Name = card.Name
	if unit.Name == "" {
		unit.Name = util.PrettyDescriptorName(node.Name)
	}

	unit.UnitType = parseUnitType(node)

	resources, ok := ndf.First(node, "ProductionRessourcesNeeded")
	if !ok {
		return unit, fmt.Errorf("unit %s: ProductionRessourcesNeeded: %w", node.Name, ErrMissingRequiredField)
	}
	if raw, ok := ndf.Tuple(resources, "Resource_CommandPoints"); ok {
		v, err := parseNumber(raw)
		if err != nil {
			return unit, fmt.Errorf("unit %s: command points %q: %w", node.Name, raw, ErrMalformedQuantity)
		}
		unit.CommandPoints = v
	}

	if raw, ok := ndf.Scalar(node, "InfoPanelConfigurationToken"); ok {
		if panel, ok := DecodeInfoPanelType(raw); ok {
			unit.InfoPanelType = panel
		}
	}
	if raw, ok := ndf.Scalar(node, "Factory"); ok {
		unit.FactoryDescriptor = raw
	}

	if err := parseArmor(node, &unit); err != nil {
		return unit, fmt.Errorf("unit %s: %w", node.Name, err)
	}

	for _, f := range unitNumbers {
		v, err := number(node, f.field)
		if err != nil {
			return unit, fmt.Errorf("unit %s: %w", node.Name, err)
		}
		*f.dst(&unit) = v
	}

	speed, err := distance(node, "MaxSpeed")
	if err != nil {
		return unit, fmt.Errorf("unit %s: %w", node.Name, err)
	}
	unit.Speed = int(math.Round(speed))

	if moveType, ok := ndf.Scalar(node, "UnitMovingType"); ok && moveType != "" {
		unit.SpeedsForTerrains = p.terrainSpeeds(moveType, unit.Speed)
	}

	roadSpeed, err := distance(node, "RealRoadSpeed")
	if err != nil {
		return unit, fmt.Errorf("unit %s: %w", node.Name, err)
	}
	unit.RoadSpeed = int(math.Round(roadSpeed))

	shift, err := distance(node, "DeploymentShift")
	if err != nil {
		return unit, fmt.Errorf("unit %s: %w", node.Name, err)
	}
	unit.AdvancedDeployment = int(math.Round(shift))

	agility, present, err := optionalNumber(node, "AgilityRadius", parseDistance)
	if err != nil {
		return unit, fmt.Errorf("unit %s: %w", node.Name, err)
	}
	if present {
		radius := int(math.Round(agility))
		unit.Agility = &radius
	}

	travel, err := number(node, "TravelDuration")
	if err != nil {
		return unit, fmt.Errorf("unit %s: %w", node.Name, err)
	}
	if travel != 0 {
		unit.TravelTime = &travel
	}

	unit.BombStrategy = parseBombStrategy(node)
	unit.Specialities = parseSpecialities(node)

	weapons, err := p.unitWeapons(node)
	if err != nil {
		return unit, fmt.Errorf("unit %s: %w", node.Name, err)
	}
	unit.Weapons = weapons.Weapons
	unit.HasDefensiveSmoke = weapons.HasDefensiveSmoke

	return unit, nil
}

func parseUnitType(node *ndf.Node) core.UnitType {
	var ut core.UnitType
	module, ok := ndf.First(node, "TTypeUnitModuleDescriptor")
	if !ok {
		return ut
	}
	for _, child := range module.Children {
		value, _ := ndf.ValueOf(child)
		value = util.StripQuotes(value)
		switch parseUnitTypeField(child.Name) {
		case unitTypeNationality:
			ut.Nationality = value
		case unitTypeMotherCountry:
			ut.MotherCountry = value
		case unitTypeFormation:
			ut.Formation = value
		}
	}
	return ut
}

// parseArmor decodes the four facing tokens. A missing facing reads as zero.
func parseArmor(node *ndf.Node, unit *core.Unit) error {
	for _, f := range []struct {
		field string
		dst   *float64
	}{
		{"ArmorDescriptorFront", &unit.FrontArmor},
		{"ArmorDescriptorSides", &unit.SideArmor},
		{"ArmorDescriptorRear", &unit.RearArmor},
		{"ArmorDescriptorTop", &unit.TopArmor},
	} {
		raw, ok := ndf.Scalar(node, f.field)
		if !ok {
			continue
		}
		v, err := DecodeArmorToken(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", f.field, err)
		}
		*f.dst = v
	}
	return nil
}

// terrainSpeeds applies every speed modifier whose movement types match the
// unit's movement token. Output follows the modifier order.
func (p *Parser) terrainSpeeds(moveType string, speed int) []core.SpeedOnTerrain {
	token := util.LastToken(util.TrimQuotes(moveType))
	out := make([]core.SpeedOnTerrain, 0, len(p.speedModifiers))
	for _, modifier := range p.speedModifiers {
		for _, mt := range modifier.MovementTypes {
			if strings.Contains(token, mt.Token) {
				out = append(out, core.SpeedOnTerrain{
					Name:  modifier.Name,
					Speed: int(math.Round(float64(speed) * mt.Value)),
				})
				break
			}
		}
	}
	return out
}

func parseBombStrategy(node *ndf.Node) core.BombStrategy {
	if _, ok := ndf.First(node, "TDiveBombAttackStrategyDescriptor"); ok {
		return core.BombStrategyDive
	}
	if _, ok := ndf.First(node, "TBombAttackStrategyDescriptor"); ok {
		return core.BombStrategyNormal
	}
	return core.BombStrategyNone
}

func parseSpecialities(node *ndf.Node) []string {
	out := []string{}
	list, ok := ndf.First(node, "SpecialtiesList")
	if !ok {
		return out
	}
	for _, s := range ndf.Strings(list) {
		s = util.StripQuotes(s)
		if s == "" || s == excludedSpeciality {
			continue
		}
		out = append(out, s)
	}
	return out
}

// unitWeapons follows the unit's weapon manager reference. A unit without
// one, or whose manager is not indexed, carries no weapons.
func (p *Parser) unitWeapons(node *ndf.Node) (WeaponSet, error) {
	empty := WeaponSet{Weapons: []core.Weapon{}}

	ref, ok := ndf.First(node, "WeaponManager")
	if !ok {
		return empty, nil
	}
	id := referenceID(ref)
	if id == "" {
		return empty, nil
	}
	manager, ok := p.catalog.WeaponManagers.Lookup(id)
	if !ok {
		p.logger.Debug("Weapon manager not found",
			"unit", node.Name,
			"reference", id)
		return empty, nil
	}
	return p.ParseWeaponManager(manager)
}
