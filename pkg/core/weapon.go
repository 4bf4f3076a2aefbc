// pkg/core/weapon.go
package core

// Missile holds the flight characteristics of a guided munition.
type Missile struct {
	DescriptorName  string  `json:"descriptorName"`
	MaxSpeed        float64 `json:"maxSpeed"`
	MaxAcceleration float64 `json:"maxAcceleration"`
}

// Smoke describes the screen a smoke munition lays.
type Smoke struct {
	DescriptorName string  `json:"descriptorName"`
	Radius         float64 `json:"radius"`
	LifeSpan       float64 `json:"lifeSpan"`
}

// Ammo is the static ballistic data for one ammunition descriptor.
type Ammo struct {
	DescriptorName            string   `json:"descriptorName"`
	Name                      string   `json:"name"`
	Traits                    []string `json:"traits"`
	Penetration               float64  `json:"penetration"`
	HeDamage                  float64  `json:"heDamage"`
	HeDamageRadius            float64  `json:"heDamageRadius"`
	Suppress                  float64  `json:"suppress"`
	SuppressDamagesRadius     float64  `json:"suppressDamagesRadius"`
	GroundMinRange            float64  `json:"groundMinRange"`
	GroundMaxRange            float64  `json:"groundMaxRange"`
	HeliMinRange              float64  `json:"heliMinRange"`
	HeliMaxRange              float64  `json:"heliMaxRange"`
	PlaneMinRange             float64  `json:"planeMinRange"`
	PlaneMaxRange             float64  `json:"planeMaxRange"`
	StaticAccuracy            float64  `json:"staticAccuracy"`
	MovingAccuracy            float64  `json:"movingAccuracy"`
	AimingTime                float64  `json:"aimingTime"`
	TimeBetweenShots          float64  `json:"timeBetweenShots"`
	TimeBetweenSalvos         float64  `json:"timeBetweenSalvos"`
	ReloadTime                float64  `json:"reloadTime"`
	SalvoLength               float64  `json:"salvoLength"`
	AmmunitionPerSalvo        float64  `json:"ammunitionPerSalvo"`
	SupplyCostPerSalvo        float64  `json:"supplyCostPerSalvo"`
	RateOfFire                float64  `json:"rateOfFire"`
	TrueRateOfFire            float64  `json:"trueRateOfFire"`
	FiresLeftToRight          bool     `json:"firesLeftToRight"`
	InstaKillAtMaxRangeArmour float64  `json:"instaKillAtMaxRangeArmour"`
	Missile                   *Missile `json:"missile,omitempty"`
	Smoke                     *Smoke   `json:"smoke,omitempty"`
}

// Weapon is one player-visible armament: every mount that fires in the same
// salvo merged into a single record.
type Weapon struct {
	AimingTime                float64  `json:"aimingTime"`
	AmmoDescriptorName        string   `json:"ammoDescriptorName"`
	AmmunitionPerSalvo        float64  `json:"ammunitionPerSalvo"`
	FiresLeftToRight          bool     `json:"firesLeftToRight"`
	GroundMinRange            float64  `json:"groundMinRange"`
	GroundRange               float64  `json:"groundRange"`
	HasTurret                 bool     `json:"hasTurret"`
	He                        float64  `json:"he"`
	HeDamageRadius            float64  `json:"heDamageRadius"`
	HelicopterMinRange        float64  `json:"helicopterMinRange"`
	HelicopterRange           float64  `json:"helicopterRange"`
	InstaKillAtMaxRangeArmour float64  `json:"instaKillAtMaxRangeArmour"`
	MissileProperties         *Missile `json:"missileProperties,omitempty"`
	MovingAccuracy            float64  `json:"movingAccuracy"`
	NumberOfWeapons           int      `json:"numberOfWeapons"`
	Penetration               float64  `json:"penetration"`
	PlaneMinRange             float64  `json:"planeMinRange"`
	PlaneRange                float64  `json:"planeRange"`
	RateOfFire                float64  `json:"rateOfFire"`
	ReloadTime                float64  `json:"reloadTime"`
	SalvoIndex                int      `json:"salvoIndex"`
	SalvoLength               float64  `json:"salvoLength"`
	ShowInInterface           bool     `json:"showInInterface"`
	SmokeProperties           *Smoke   `json:"smokeProperties,omitempty"`
	StaticAccuracy            float64  `json:"staticAccuracy"`
	SupplyCost                float64  `json:"supplyCost"`
	Suppress                  float64  `json:"suppress"`
	SuppressDamagesRadius     float64  `json:"suppressDamagesRadius"`
	TimeBetweenSalvos         float64  `json:"timeBetweenSalvos"`
	TotalHeDamage             float64  `json:"totalHeDamage"`
	Traits                    []string `json:"traits"`
	TrueRateOfFire            float64  `json:"trueRateOfFire"`
	TurretRotationSpeed       float64  `json:"turretRotationSpeed"`
	WeaponName                string   `json:"weaponName"`
}
