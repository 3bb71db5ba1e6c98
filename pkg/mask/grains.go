/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: grains.go
Description: Catalogue of supported grains with human-readable descriptions and
worked examples, used by the grains command and configuration help text.
*/

package mask

// GrainInfo describes a grain for display purposes
type GrainInfo struct {
	Grain       Grain
	Name        string
	Description string
	Example     string
}

// Catalogue returns every supported grain in display order
func Catalogue() []GrainInfo {
	return []GrainInfo{
		{
			Grain:       GrainHigh,
			Name:        "High grain",
			Description: "A for uppercase, a for lowercase, 9 for digits; other characters kept",
			Example:     "password123",
		},
		{
			Grain:       GrainLow,
			Name:        "Low grain",
			Description: "High grain with repeated classes compressed to one",
			Example:     "password123",
		},
		{
			Grain:       GrainUnicode,
			Name:        "Unicode",
			Description: "Classes from Unicode general categories; symbols and marks become _",
			Example:     "EMAIL@example.com",
		},
		{
			Grain:       GrainLowUnicode,
			Name:        "Low grain Unicode",
			Description: "Unicode classes with repeated classes compressed to one",
			Example:     "EMAIL@example.com",
		},
	}
}
