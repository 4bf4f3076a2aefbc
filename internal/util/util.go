// Package util provides small string helpers shared by the extractors.
package util

import (
	"strings"
)

// TrimQuotes removes leading and trailing single and double quotes.
func TrimQuotes(s string) string {
	return strings.Trim(s, `"'`)
}

var quoteStripper = strings.NewReplacer("'", "", `"`, "")

// StripQuotes removes every single and double quote, wherever it appears.
func StripQuotes(s string) string {
	return quoteStripper.Replace(s)
}

// LastToken returns the last path segment of a reference such as
// $/GFX/Weapon/Ammo_X or ~/Resource_CommandPoints.
func LastToken(ref string) string {
	ref = strings.TrimSpace(ref)
	if i := strings.LastIndex(ref, "/"); i >= 0 {
		return ref[i+1:]
	}
	return ref
}

const unitDescriptorPrefix = "Descriptor_Unit_"

// PrettyDescriptorName turns Descriptor_Unit_M1A1_Abrams_US into "M1A1 Abrams US".
func PrettyDescriptorName(descriptor string) string {
	return strings.ReplaceAll(strings.TrimPrefix(descriptor, unitDescriptorPrefix), "_", " ")
}
