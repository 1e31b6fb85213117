package settings

import "github.com/chazu/printcost/pkg/pricing"

// PrintSettings are slicer parameters. Only InfillPercent feeds the
// estimate; density comes from the selected filament. Density and the
// other fields are kept so the record round-trips intact.
type PrintSettings struct {
	LayerHeight      float64 `json:"layerHeight" toml:"layer_height"`
	LineWidth        float64 `json:"lineWidth" toml:"line_width"`
	InfillPercent    float64 `json:"infillPercent" toml:"infill_percent"`
	InfillPattern    string  `json:"infillPattern" toml:"infill_pattern"`
	WallCount        int     `json:"wallCount" toml:"wall_count"`
	TopBottomLayers  int     `json:"topBottomLayers" toml:"top_bottom_layers"`
	Support          bool    `json:"support" toml:"support"`
	SupportPlacement string  `json:"supportPlacement" toml:"support_placement"`
	Brim             bool    `json:"brim" toml:"brim"`
	Raft             bool    `json:"raft" toml:"raft"`
	Density          float64 `json:"density" toml:"density"` // g/cm³
}

// InfillFraction returns the infill as a value in [0,1].
func (p PrintSettings) InfillFraction() float64 {
	return p.InfillPercent / 100
}

// DefaultPrintSettings returns the built-in slicer parameters.
func DefaultPrintSettings() PrintSettings {
	return PrintSettings{
		LayerHeight:      0.2,
		LineWidth:        0.4,
		InfillPercent:    20,
		InfillPattern:    "grid",
		WallCount:        2,
		TopBottomLayers:  3,
		Support:          false,
		SupportPlacement: "buildplate",
		Brim:             false,
		Raft:             false,
		Density:          1.24,
	}
}

// BedSettings is the printable volume in millimeters.
type BedSettings struct {
	Width  float64 `json:"width" toml:"width"`
	Depth  float64 `json:"depth" toml:"depth"`
	Height float64 `json:"height" toml:"height"`
}

// DefaultBedSettings returns a 220x220x250 mm bed.
func DefaultBedSettings() BedSettings {
	return BedSettings{Width: 220, Depth: 220, Height: 250}
}

// TOML documents cannot have a bare array at the top level, so list
// records are wrapped in a table.
type filamentsRecord struct {
	Filaments []pricing.Filament `toml:"filament"`
}

type printersRecord struct {
	Printers []pricing.Printer `toml:"printer"`
}
