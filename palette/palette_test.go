package palette

import (
	"bytes"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHex(t *testing.T) {
	testCases := []struct {
		in   string
		want color.NRGBA
	}{
		{in: "#FF6B6B", want: color.NRGBA{R: 0xFF, G: 0x6B, B: 0x6B, A: 0xFF}},
		{in: "ff6b6b", want: color.NRGBA{R: 0xFF, G: 0x6B, B: 0x6B, A: 0xFF}},
		{in: "#000000", want: color.NRGBA{A: 0xFF}},
		{in: "#aBcDeF", want: color.NRGBA{R: 0xAB, G: 0xCD, B: 0xEF, A: 0xFF}},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseHex(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseHex_Invalid(t *testing.T) {
	for _, in := range []string{"xyz123", "#12345", "", "#", "#1234567", "##123456", "#12345g", "#FFF"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseHex(in)
			assert.ErrorIs(t, err, ErrInvalidColorFormat)
		})
	}
}

func TestFormatHex(t *testing.T) {
	assert.Equal(t, "#FF6B6B", FormatHex(color.NRGBA{R: 0xFF, G: 0x6B, B: 0x6B, A: 0xFF}))
	assert.Equal(t, "#0A0B0C", FormatHex(color.NRGBA{R: 10, G: 11, B: 12, A: 0xFF}))
}

func TestSwatches_Hex(t *testing.T) {
	hex, err := Default.Hex(0)
	require.NoError(t, err)
	assert.Equal(t, "#FF6B6B", hex)

	_, err = Default.Hex(len(Default))
	assert.Error(t, err)
	_, err = Default.Hex(-1)
	assert.Error(t, err)
}

func TestRIFF_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	n, err := WriteTo(&buf, []color.Palette{Default.Palette()})
	require.NoError(t, err)
	assert.EqualValues(t, buf.Len(), n)
	assert.Equal(t, []byte("RIFF"), buf.Bytes()[:4])
	assert.Equal(t, []byte("PAL "), buf.Bytes()[8:12])

	pals, err := ReadFrom(&buf)
	require.NoError(t, err)
	require.Len(t, pals, 1)
	assert.Equal(t, Default, FromPalette(pals[0]))
}

func TestReadFrom_NotPalette(t *testing.T) {
	_, err := ReadFrom(bytes.NewReader([]byte("RIFF\x04\x00\x00\x00WAVE")))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	sw, err := Load(DefaultName)
	require.NoError(t, err)
	assert.Equal(t, Default, sw)

	sw[0] = color.NRGBA{}
	assert.NotEqual(t, Default[0], sw[0], "Load must return a copy of the defaults")

	custom := Swatches{{R: 1, G: 2, B: 3, A: 0xFF}, {R: 4, G: 5, B: 6, A: 0xFF}}
	path := filepath.Join(t.TempDir(), "custom.pal")
	f, err := os.Create(path)
	require.NoError(t, err)
	_, err = WriteTo(f, []color.Palette{custom.Palette()})
	require.NoError(t, err)
	require.NoError(t, f.Close())

	sw, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, custom, sw)

	_, err = Load(filepath.Join(t.TempDir(), "missing.pal"))
	assert.Error(t, err)
}
