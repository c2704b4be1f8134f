package compose

// presets.go holds the immutable styling presets. Both tables are built
// once at process start and are read-only afterwards: composition calls
// receive them by reference and never mutate them, which is what makes
// concurrent Compose calls safe without coordination.

// TextTier is one size/color tier of a branding preset.
type TextTier struct {
	Size  float64
	Color RGBColor
}

// BrandPreset bundles a font family with per-heading-level and body tiers.
// Only three heading tiers exist; levels above 3 reuse H3.
type BrandPreset struct {
	Font string
	H1   TextTier
	H2   TextTier
	H3   TextTier
	Body TextTier
}

// Heading returns the tier for a declared heading level.
func (p *BrandPreset) Heading(level int) TextTier {
	switch {
	case level <= 1:
		return p.H1
	case level == 2:
		return p.H2
	default:
		return p.H3
	}
}

// Presets maps branding preset names to their definitions.
var Presets = map[string]*BrandPreset{
	"snowcap": {
		Font: "Lexend",
		H1:   TextTier{Size: 24, Color: RGBColor{Red: 0.290, Green: 0.435, Blue: 0.647}}, // #4A6FA5
		H2:   TextTier{Size: 18, Color: RGBColor{Red: 0.239, Green: 0.353, Blue: 0.502}}, // #3D5A80
		H3:   TextTier{Size: 14, Color: RGBColor{Red: 0.239, Green: 0.353, Blue: 0.502}}, // #3D5A80
		Body: TextTier{Size: 11, Color: RGBColor{Red: 0.176, Green: 0.216, Blue: 0.282}}, // #2D3748
	},
}

// PresetByName resolves a branding preset. "none", the empty string, and
// unknown names all disable branding.
func PresetByName(name string) *BrandPreset {
	if name == "" || name == "none" {
		return nil
	}
	return Presets[name]
}

// TableStyle is applied to every table regardless of the branding choice.
type TableStyle struct {
	Font     string
	Size     float64
	HeaderBG RGBColor
	HeaderFG RGBColor
	AltRowBG RGBColor
}

// DefaultTableStyle is the universal table styling preset.
var DefaultTableStyle = TableStyle{
	Font:     "Calibri",
	Size:     12,
	HeaderBG: RGBColor{Red: 0.259, Green: 0.522, Blue: 0.957}, // #4285F4
	HeaderFG: RGBColor{Red: 1.0, Green: 1.0, Blue: 1.0},       // white
	AltRowBG: RGBColor{Red: 0.910, Green: 0.941, Blue: 0.996}, // #E8F0FE
}
