package palette

import (
	"fmt"
	"image/color"
	"os"
)

// DefaultName selects the built-in swatch set in Load.
const DefaultName = "default"

// Swatches is an ordered set of selectable paint colours.
type Swatches []color.NRGBA

// Default is the built-in colouring palette. The first entry is the initial paint colour.
var Default = Swatches{
	{R: 0xFF, G: 0x6B, B: 0x6B, A: 0xFF},
	{R: 0xFF, G: 0xA5, B: 0x00, A: 0xFF},
	{R: 0xFF, G: 0xD9, B: 0x3D, A: 0xFF},
	{R: 0x6B, G: 0xCB, B: 0x77, A: 0xFF},
	{R: 0x4E, G: 0xCD, B: 0xC4, A: 0xFF},
	{R: 0x45, G: 0xB7, B: 0xD1, A: 0xFF},
	{R: 0x4D, G: 0x96, B: 0xFF, A: 0xFF},
	{R: 0x96, G: 0x6B, B: 0xFF, A: 0xFF},
	{R: 0xF7, G: 0x8F, B: 0xB3, A: 0xFF},
	{R: 0x8B, G: 0x45, B: 0x13, A: 0xFF},
	{R: 0x00, G: 0x00, B: 0x00, A: 0xFF},
	{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
}

// Hex returns swatch i as "#RRGGBB".
func (s Swatches) Hex(i int) (string, error) {
	if i < 0 || i >= len(s) {
		return "", fmt.Errorf("swatch index %d out of range [0, %d)", i, len(s))
	}
	return FormatHex(s[i]), nil
}

// Palette converts the swatches into a standard library palette.
func (s Swatches) Palette() color.Palette {
	pal := make(color.Palette, len(s))
	for i, c := range s {
		pal[i] = c
	}
	return pal
}

// FromPalette builds swatches from palette entries, forcing them opaque.
func FromPalette(pal color.Palette) Swatches {
	res := make(Swatches, 0, len(pal))
	for _, c := range pal {
		n := color.NRGBAModel.Convert(c).(color.NRGBA)
		n.A = 0xFF
		res = append(res, n)
	}
	return res
}

// Load returns the built-in swatches for DefaultName, or reads every palette chunk of a
// RIFF PAL file and concatenates them.
func Load(name string) (Swatches, error) {
	if name == "" || name == DefaultName {
		return append(Swatches(nil), Default...), nil
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("could not open palette file %q: %w", name, err)
	}
	defer f.Close()

	pals, err := ReadFrom(f)
	if err != nil {
		return nil, fmt.Errorf("could not load palette %q: %w", name, err)
	}

	var res Swatches
	for _, pal := range pals {
		res = append(res, FromPalette(pal)...)
	}
	if len(res) == 0 {
		return nil, fmt.Errorf("palette %q has no colors", name)
	}
	return res, nil
}
