package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/warnodata/extractor/internal/util"
	"github.com/warnodata/extractor/pkg/core"
)

var metreQuantity = regexp.MustCompile(`^[\s(]*(-?\d+(?:\.\d*)?)[\s)]*\*\s*Metre[\s)]*$`)

// MetresToNumber parses a distance written as e.g. ((60) * Metre).
func MetresToNumber(text string) (float64, error) {
	m := metreQuantity.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return 0, fmt.Errorf("metres %q: %w", text, ErrMalformedQuantity)
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, fmt.Errorf("metres %q: %w", text, ErrMalformedQuantity)
	}
	return v, nil
}

// ArmorType is the armor family named in the middle of an armor token.
type ArmorType int

const (
	ArmorUnrecognized ArmorType = iota
	ArmorBlindage
	ArmorInfanterie
	ArmorVehicule
	ArmorHelico
)

// ParseArmorType maps a token segment to its armor family.
func ParseArmorType(s string) ArmorType {
	switch s {
	case "Blindage":
		return ArmorBlindage
	case "Infanterie":
		return ArmorInfanterie
	case "Vehicule":
		return ArmorVehicule
	case "Helico":
		return ArmorHelico
	default:
		return ArmorUnrecognized
	}
}

const lightArmor = 0.5

// DecodeArmorToken converts <prefix>_<type>_<strength> into the armor value
// shown on unit cards. Light armor ("leger") reads 0.5 whatever the type.
func DecodeArmorToken(token string) (float64, error) {
	token = util.LastToken(util.StripQuotes(token))
	parts := strings.Split(token, "_")
	if len(parts) < 3 {
		return 0, fmt.Errorf("armor %q: %w", token, ErrMalformedToken)
	}
	armorType, strength := ParseArmorType(parts[1]), parts[2]

	if strength == "leger" {
		return lightArmor, nil
	}
	if armorType == ArmorInfanterie {
		return 0, nil
	}

	value, err := strconv.ParseFloat(strength, 64)
	if err != nil {
		return 0, fmt.Errorf("armor %q: strength %q: %w", token, strength, ErrMalformedToken)
	}
	if armorType == ArmorHelico {
		if value-1 >= 1 {
			return value - 1, nil
		}
		return lightArmor, nil
	}
	return value, nil
}

var infoPanelTypes = map[string]core.InfoPanelType{
	"Default":             core.InfoPanelDefault,
	"VehiculeSupplier":    core.InfoPanelSupplyVehicle,
	"VehiculeTransporter": core.InfoPanelTransportVehicle,
	"Infantry":            core.InfoPanelInfantry,
	"avion":               core.InfoPanelPlane,
	"HelicoDefault":       core.InfoPanelHelicopter,
	"HelicoTransporter":   core.InfoPanelTransportHelicopter,
	"HelicoSupplier":      core.InfoPanelSupplyHelicopter,
}

// DecodeInfoPanelType looks up an info panel token. Unknown tokens report
// false and InfoPanelUnrecognized; they are not an error.
func DecodeInfoPanelType(token string) (core.InfoPanelType, bool) {
	t, ok := infoPanelTypes[util.StripQuotes(strings.TrimSpace(token))]
	if !ok {
		return core.InfoPanelUnrecognized, false
	}
	return t, true
}
