package palette

import (
	"encoding/hex"
	"errors"
	"fmt"
	"image/color"
	"strings"
)

// ErrInvalidColorFormat is returned for colour strings that are not six hex digits.
var ErrInvalidColorFormat = errors.New("invalid color format")

// ParseHex parses "#RRGGBB" or "RRGGBB", case-insensitive, into a fully opaque colour.
func ParseHex(s string) (color.NRGBA, error) {
	digits := strings.TrimPrefix(s, "#")
	if len(digits) != 6 {
		return color.NRGBA{}, fmt.Errorf("%w: %q should be #RRGGBB", ErrInvalidColorFormat, s)
	}

	var rgb [3]byte
	if _, err := hex.Decode(rgb[:], []byte(digits)); err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: %q: %v", ErrInvalidColorFormat, s, err)
	}

	return color.NRGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 0xFF}, nil
}

// FormatHex renders the colour channels as "#RRGGBB", ignoring alpha.
func FormatHex(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02X%02X%02X", n.R, n.G, n.B)
}
