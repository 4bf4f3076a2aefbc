// pkg/core/unit.go
package core

// InfoPanelType is the coarse UI class that picks the stat panel shown for a unit.
type InfoPanelType string

const (
	InfoPanelUnrecognized        InfoPanelType = ""
	InfoPanelDefault             InfoPanelType = "default"
	InfoPanelSupplyVehicle       InfoPanelType = "supply-vehicle"
	InfoPanelTransportVehicle    InfoPanelType = "transport-vehicle"
	InfoPanelInfantry            InfoPanelType = "infantry"
	InfoPanelPlane               InfoPanelType = "plane"
	InfoPanelHelicopter          InfoPanelType = "helicopter"
	InfoPanelTransportHelicopter InfoPanelType = "transport-helicopter"
	InfoPanelSupplyHelicopter    InfoPanelType = "supply-helicopter"
)

// BombStrategy is how a plane delivers bombs, if it carries any.
type BombStrategy string

const (
	BombStrategyNone   BombStrategy = ""
	BombStrategyDive   BombStrategy = "DIVE"
	BombStrategyNormal BombStrategy = "NORMAL"
)

// UnitType classifies a unit by nation and formation.
type UnitType struct {
	Nationality   string `json:"nationality"`
	MotherCountry string `json:"motherCountry"`
	Formation     string `json:"formation"`
}

// SpeedOnTerrain is a unit's speed adjusted for one terrain.
type SpeedOnTerrain struct {
	Name  string `json:"name"`
	Speed int    `json:"speed"`
}

// Unit is the flattened record produced for one unit descriptor.
// ID is the lookup code, -1 when the unit has no card.
type Unit struct {
	DescriptorName     string           `json:"descriptorName"`
	Name               string           `json:"name"`
	Category           string           `json:"category"`
	ID                 int              `json:"id"`
	UnitType           UnitType         `json:"unitType"`
	CommandPoints      float64          `json:"commandPoints"`
	InfoPanelType      InfoPanelType    `json:"infoPanelType,omitempty"`
	FactoryDescriptor  string           `json:"factoryDescriptor"`
	FrontArmor         float64          `json:"frontArmor"`
	SideArmor          float64          `json:"sideArmor"`
	RearArmor          float64          `json:"rearArmor"`
	TopArmor           float64          `json:"topArmor"`
	MaxDamage          float64          `json:"maxDamage"`
	Speed              int              `json:"speed"`
	SpeedsForTerrains  []SpeedOnTerrain `json:"speedsForTerrains,omitempty"`
	RoadSpeed          int              `json:"roadSpeed"`
	RotationTime       float64          `json:"rotationTime"`
	Optics             float64          `json:"optics"`
	AirOptics          float64          `json:"airOptics"`
	BombStrategy       BombStrategy     `json:"bombStrategy,omitempty"`
	Stealth            float64          `json:"stealth"`
	AdvancedDeployment int              `json:"advancedDeployment"`
	Fuel               float64          `json:"fuel"`
	FuelMove           float64          `json:"fuelMove"`
	Supply             float64          `json:"supply"`
	ECM                float64          `json:"ecm"`
	Agility            *int             `json:"agility,omitempty"`
	TravelTime         *float64         `json:"travelTime"`
	Specialities       []string         `json:"specialities"`
	HasDefensiveSmoke  bool             `json:"hasDefensiveSmoke"`
	Weapons            []Weapon         `json:"weapons"`
}

// SpeedModifier scales a unit's speed on one terrain. MovementTypes keeps the
// order the modifier file lists them in; the first matching token wins.
type SpeedModifier struct {
	Name          string          `json:"name"`
	MovementTypes []MovementValue `json:"movementTypes"`
}

// MovementValue is the multiplier applied to one movement-type token.
type MovementValue struct {
	Token string  `json:"token"`
	Value float64 `json:"value"`
}
