package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

////////////////////////
// DATABASE STRUCTURES //
////////////////////////

// DatabaseModels is a list of all the structs exported here which represent tables in the database schema
var DatabaseModels = []interface{}{
	&ExtractionRun{},
	&Unit{},
	&Weapon{},
}

////////////////////////
// RUN MODELS
////////////////////////

// ExtractionRun records one invocation of the extractor.
type ExtractionRun struct {
	gorm.Model
	StartedAt   time.Time      `json:"startedAt" gorm:"index:idx_run_started_at"`
	Sources     datatypes.JSON `json:"sources"`
	Filter      string         `json:"filter" gorm:"size:1024"`
	UnitCount   int            `json:"unitCount"`
	FailedCount int            `json:"failedCount"`
	DurationMs  float64        `json:"durationMs"`
}

func (*ExtractionRun) TableName() string {
	return "extraction_runs"
}

////////////////////////
// UNIT MODELS
////////////////////////

// UnitType is embedded into Unit with a type_ prefix.
type UnitType struct {
	Nationality   string `json:"nationality" gorm:"size:64"`
	MotherCountry string `json:"motherCountry" gorm:"size:64"`
	Formation     string `json:"formation" gorm:"size:64"`
}

// Unit is one extracted unit. Code is the unit card code, -1 without a card.
type Unit struct {
	gorm.Model
	RunID              uint           `json:"runId" gorm:"index:idx_unit_run_id"`
	Run                ExtractionRun  `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;foreignkey:RunID;"`
	Position           int            `json:"position"`
	DescriptorName     string         `json:"descriptorName" gorm:"size:255;index:idx_unit_descriptor"`
	Name               string         `json:"name" gorm:"size:255"`
	Category           string         `json:"category" gorm:"size:32"`
	Code               int            `json:"code"`
	Type               UnitType       `json:"unitType" gorm:"embedded;embeddedPrefix:type_"`
	CommandPoints      float64        `json:"commandPoints"`
	InfoPanelType      string         `json:"infoPanelType" gorm:"size:32"`
	FactoryDescriptor  string         `json:"factoryDescriptor" gorm:"size:127"`
	FrontArmor         float64        `json:"frontArmor"`
	SideArmor          float64        `json:"sideArmor"`
	RearArmor          float64        `json:"rearArmor"`
	TopArmor           float64        `json:"topArmor"`
	MaxDamage          float64        `json:"maxDamage"`
	Speed              int            `json:"speed"`
	SpeedsForTerrains  datatypes.JSON `json:"speedsForTerrains"`
	RoadSpeed          int            `json:"roadSpeed"`
	RotationTime       float64        `json:"rotationTime"`
	Optics             float64        `json:"optics"`
	AirOptics          float64        `json:"airOptics"`
	BombStrategy       string         `json:"bombStrategy" gorm:"size:16"`
	Stealth            float64        `json:"stealth"`
	AdvancedDeployment int            `json:"advancedDeployment"`
	Fuel               float64        `json:"fuel"`
	FuelMove           float64        `json:"fuelMove"`
	Supply             float64        `json:"supply"`
	ECM                float64        `json:"ecm"`
	Agility            *int           `json:"agility"`
	TravelTime         *float64       `json:"travelTime"`
	Specialities       datatypes.JSON `json:"specialities"`
	HasDefensiveSmoke  bool           `json:"hasDefensiveSmoke"`
	Weapons            []Weapon       `json:"weapons" gorm:"foreignkey:UnitID"`
}

func (*Unit) TableName() string {
	return "units"
}

// Weapon is one merged weapon of a unit. Position keeps the unit's weapon order.
type Weapon struct {
	gorm.Model
	UnitID                    uint           `json:"unitId" gorm:"index:idx_weapon_unit_id"`
	Position                  int            `json:"position"`
	WeaponName                string         `json:"weaponName" gorm:"size:127"`
	AmmoDescriptorName        string         `json:"ammoDescriptorName" gorm:"size:255;index:idx_weapon_ammo"`
	Traits                    datatypes.JSON `json:"traits"`
	SalvoIndex                int            `json:"salvoIndex"`
	NumberOfWeapons           int            `json:"numberOfWeapons"`
	ShowInInterface           bool           `json:"showInInterface"`
	HasTurret                 bool           `json:"hasTurret"`
	TurretRotationSpeed       float64        `json:"turretRotationSpeed"`
	Penetration               float64        `json:"penetration"`
	He                        float64        `json:"he"`
	TotalHeDamage             float64        `json:"totalHeDamage"`
	HeDamageRadius            float64        `json:"heDamageRadius"`
	Suppress                  float64        `json:"suppress"`
	SuppressDamagesRadius     float64        `json:"suppressDamagesRadius"`
	GroundMinRange            float64        `json:"groundMinRange"`
	GroundRange               float64        `json:"groundRange"`
	HelicopterMinRange        float64        `json:"helicopterMinRange"`
	HelicopterRange           float64        `json:"helicopterRange"`
	PlaneMinRange             float64        `json:"planeMinRange"`
	PlaneRange                float64        `json:"planeRange"`
	StaticAccuracy            float64        `json:"staticAccuracy"`
	MovingAccuracy            float64        `json:"movingAccuracy"`
	AimingTime                float64        `json:"aimingTime"`
	ReloadTime                float64        `json:"reloadTime"`
	TimeBetweenSalvos         float64        `json:"timeBetweenSalvos"`
	SalvoLength               float64        `json:"salvoLength"`
	AmmunitionPerSalvo        float64        `json:"ammunitionPerSalvo"`
	SupplyCost                float64        `json:"supplyCost"`
	RateOfFire                float64        `json:"rateOfFire"`
	TrueRateOfFire            float64        `json:"trueRateOfFire"`
	FiresLeftToRight          bool           `json:"firesLeftToRight"`
	InstaKillAtMaxRangeArmour float64        `json:"instaKillAtMaxRangeArmour"`
	MissileProperties         datatypes.JSON `json:"missileProperties"`
	SmokeProperties           datatypes.JSON `json:"smokeProperties"`
}

func (*Weapon) TableName() string {
	return "weapons"
}
