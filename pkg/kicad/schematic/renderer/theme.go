package renderer

import (
	"fmt"
	"image/color"
	"strings"
)

// Theme represents a color scheme for schematic rendering
type Theme int

const (
	// ThemeLight is a light background theme (white background)
	ThemeLight Theme = iota
	// ThemeDark is a dark background theme (dark gray background)
	ThemeDark
)

// ParseTheme maps a configuration name ("light" or "dark") to a Theme.
func ParseTheme(s string) (Theme, error) {
	switch strings.ToLower(s) {
	case "", "light":
		return ThemeLight, nil
	case "dark":
		return ThemeDark, nil
	}
	return ThemeLight, fmt.Errorf("unknown theme %q", s)
}

// SchematicColors defines the color scheme for rendering schematic elements
type SchematicColors struct {
	Background color.NRGBA

	// Wires and connections
	Wire      color.NRGBA
	Bus       color.NRGBA
	Dotted    color.NRGBA
	Junction  color.NRGBA
	NoConnect color.NRGBA

	Label color.NRGBA

	// Symbols
	SymbolBody color.NRGBA
	SymbolFill color.NRGBA
	SymbolPin  color.NRGBA
	PinNumber  color.NRGBA
	PinName    color.NRGBA
	SymbolText color.NRGBA
	Field      color.NRGBA
}

// GetSchematicColors returns the color scheme for the given theme
func GetSchematicColors(theme Theme) *SchematicColors {
	if theme == ThemeDark {
		return darkTheme()
	}
	return lightTheme()
}

// lightTheme returns KiCad-style light theme colors
func lightTheme() *SchematicColors {
	return &SchematicColors{
		Background: color.NRGBA{R: 255, G: 255, B: 255, A: 255}, // White

		Wire:      color.NRGBA{R: 0, G: 132, B: 0, A: 255}, // Dark green
		Bus:       color.NRGBA{R: 0, G: 0, B: 132, A: 255}, // Dark blue
		Dotted:    color.NRGBA{R: 0, G: 0, B: 194, A: 255},
		Junction:  color.NRGBA{R: 0, G: 132, B: 0, A: 255},
		NoConnect: color.NRGBA{R: 0, G: 0, B: 132, A: 255},

		Label: color.NRGBA{R: 0, G: 0, B: 0, A: 255},

		SymbolBody: color.NRGBA{R: 132, G: 0, B: 0, A: 255},     // Dark red
		SymbolFill: color.NRGBA{R: 255, G: 255, B: 194, A: 255}, // Light yellow
		SymbolPin:  color.NRGBA{R: 132, G: 0, B: 0, A: 255},
		PinNumber:  color.NRGBA{R: 132, G: 0, B: 0, A: 255},
		PinName:    color.NRGBA{R: 0, G: 100, B: 100, A: 255}, // Teal
		SymbolText: color.NRGBA{R: 0, G: 0, B: 132, A: 255},
		Field:      color.NRGBA{R: 0, G: 100, B: 100, A: 255},
	}
}

// darkTheme returns KiCad-style dark theme colors
func darkTheme() *SchematicColors {
	return &SchematicColors{
		Background: color.NRGBA{R: 30, G: 30, B: 30, A: 255},

		Wire:      color.NRGBA{R: 0, G: 255, B: 0, A: 255},   // Bright green
		Bus:       color.NRGBA{R: 0, G: 150, B: 255, A: 255}, // Bright blue
		Dotted:    color.NRGBA{R: 100, G: 150, B: 255, A: 255},
		Junction:  color.NRGBA{R: 0, G: 255, B: 0, A: 255},
		NoConnect: color.NRGBA{R: 0, G: 150, B: 255, A: 255},

		Label: color.NRGBA{R: 255, G: 255, B: 0, A: 255}, // Yellow

		SymbolBody: color.NRGBA{R: 255, G: 100, B: 100, A: 255}, // Light red
		SymbolFill: color.NRGBA{R: 60, G: 60, B: 0, A: 255},
		SymbolPin:  color.NRGBA{R: 255, G: 100, B: 100, A: 255},
		PinNumber:  color.NRGBA{R: 255, G: 100, B: 100, A: 255},
		PinName:    color.NRGBA{R: 100, G: 255, B: 255, A: 255}, // Cyan
		SymbolText: color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		Field:      color.NRGBA{R: 100, G: 255, B: 255, A: 255},
	}
}

// String returns the theme name as a string
func (t Theme) String() string {
	switch t {
	case ThemeLight:
		return "light"
	case ThemeDark:
		return "dark"
	default:
		return "unknown"
	}
}
