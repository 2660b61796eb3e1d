package internal

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStyleColor(t *testing.T) {
	tests := []struct {
		style string
		want  string
	}{
		{"background-color: red;", "#ff0000"},
		{"background-color:#FF0000", "#ff0000"},
		{"background-color:#0055A4", "#0055a4"},
		{"background-color: #abc", "#aabbcc"},
		{"border: 1px solid black; background-color: Navy; color: white", "#000080"},
		{"  background-color :  darkslategrey  ", "#2f4f4f"},
		{"background-color :red", "#ff0000"},
		{"width: 2em; background-color\t: #00F", "#0000ff"},
		{"color: #111; background-color: #222222; background-color: #333333", "#222222"},
	}

	for _, tt := range tests {
		t.Run(tt.style, func(t *testing.T) {
			got, err := ParseStyleColor(tt.style)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseStyleColorNoColor(t *testing.T) {
	for _, style := range []string{"", "color: red", "border:1px solid #000;", "background: #fff"} {
		_, err := ParseStyleColor(style)
		assert.ErrorIs(t, err, ErrNoColorFound, style)
	}
}

func TestParseStyleColorInvalid(t *testing.T) {
	for _, style := range []string{"background-color: notacolor", "background-color: #12345", "background-color: 0055a4", "background-color: #gggggg"} {
		_, err := ParseStyleColor(style)
		assert.ErrorIs(t, err, ErrInvalidColor, style)
	}
}

func TestParseColorElement(t *testing.T) {
	doc, err := ParseDocument(strings.NewReader(`<p><span style="background-color:#EF4135"></span><span class="x"></span></p>`))
	require.NoError(t, err)

	spans := doc.FindAll("span")
	require.Len(t, spans, 2)

	hex, err := ParseColor(spans[0])
	require.NoError(t, err)
	assert.Equal(t, "#ef4135", hex)

	_, err = ParseColor(spans[1])
	assert.ErrorIs(t, err, ErrNoColorFound)
}

func TestNameToHexCoversCSS3Keywords(t *testing.T) {
	assert.Len(t, ColorNames, 147)

	for name, hex := range ColorNames {
		normalized, err := NormalizeHex(hex)
		require.NoError(t, err, name)
		assert.Equal(t, hex, normalized, name)
	}

	hex, ok := NameToHex("RebeccaPurple")
	assert.False(t, ok, "css4 keyword %s", hex)

	hex, ok = NameToHex("White")
	require.True(t, ok)
	assert.Equal(t, "#ffffff", hex)
}

func TestHexToRGB(t *testing.T) {
	tests := map[string]RGB{
		"#0055a4": {0, 85, 164},
		"#FFFFFF": {255, 255, 255},
		"#ef4135": {239, 65, 53},
		"#000":    {0, 0, 0},
	}

	for hex, want := range tests {
		got, err := HexToRGB(hex)
		require.NoError(t, err, hex)
		assert.Equal(t, want, got, hex)
	}

	_, err := HexToRGB("red")
	assert.ErrorIs(t, err, ErrInvalidColor)
}
