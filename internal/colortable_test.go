package internal

import (
	"testing"

	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorTableKeepsInsertionOrder(t *testing.T) {
	table := NewColorTable()
	table.Set("zw", []string{"#006400"})
	table.Set("ad", []string{"#0018a8", "#fedf00"})
	table.Set("mx", []string{})

	data, err := json.Marshal(table)
	require.NoError(t, err)
	assert.Equal(t, `{"zw":["#006400"],"ad":["#0018a8","#fedf00"],"mx":[]}`, string(data))

	empty, err := json.Marshal(NewColorTable())
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(empty))
}

func TestColorTableRGBMatchesHex(t *testing.T) {
	table := NewColorTable()
	table.Set("FR", []string{"#0055a4", "#ffffff", "#ef4135"})
	table.Set("DE", []string{"#000000", "#dd0000", "#ffce00"})

	rgb, err := table.RGB()
	require.NoError(t, err)

	assert.Equal(t, table.Codes(), rgb.Codes())

	for _, code := range table.Codes() {
		hexes, _ := table.Get(code)
		triples, ok := rgb.Get(code)
		require.True(t, ok, code)
		require.Len(t, triples, len(hexes))

		for i, hex := range hexes {
			want, err := HexToRGB(hex)
			require.NoError(t, err)
			assert.Equal(t, want, triples[i])
		}
	}

	data, err := json.Marshal(rgb)
	require.NoError(t, err)
	assert.Equal(t, `{"FR":[[0,85,164],[255,255,255],[239,65,53]],"DE":[[0,0,0],[221,0,0],[255,206,0]]}`, string(data))
}

func TestColorTableRGBRejectsInvalidHex(t *testing.T) {
	table := NewColorTable()
	table.Set("XX", []string{"blue"})

	_, err := table.RGB()
	assert.ErrorIs(t, err, ErrInvalidColor)
}
