package internal

import (
	"bytes"

	"github.com/segmentio/encoding/json"
)

// ColorTable maps ISO alpha-2 codes to hex colors and remembers the order in
// which codes were first stored.
type ColorTable struct {
	codes  []string
	colors map[string][]string
}

func NewColorTable() *ColorTable {
	return &ColorTable{colors: make(map[string][]string)}
}

// Set stores colors for code. Replacing an existing code keeps its position.
func (t *ColorTable) Set(code string, colors []string) {
	if _, ok := t.colors[code]; !ok {
		t.codes = append(t.codes, code)
	}

	t.colors[code] = colors
}

func (t *ColorTable) Get(code string) ([]string, bool) {
	colors, ok := t.colors[code]

	return colors, ok
}

// Codes returns the stored codes in insertion order.
func (t *ColorTable) Codes() []string {
	return append([]string(nil), t.codes...)
}

func (t *ColorTable) Len() int {
	return len(t.codes)
}

// RGB derives the RGB view of the table. Codes keep their order.
func (t *ColorTable) RGB() (*ColorTableRGB, error) {
	rgb := &ColorTableRGB{
		codes:  t.Codes(),
		colors: make(map[string][]RGB, len(t.codes)),
	}

	for _, code := range t.codes {
		hexes := t.colors[code]
		triples := make([]RGB, 0, len(hexes))

		for _, hex := range hexes {
			c, err := HexToRGB(hex)

			if err != nil {
				return nil, err
			}

			triples = append(triples, c)
		}

		rgb.colors[code] = triples
	}

	return rgb, nil
}

func (t *ColorTable) MarshalJSON() ([]byte, error) {
	return marshalOrdered(t.codes, func(code string) interface{} {
		return t.colors[code]
	})
}

// ColorTableRGB is the read-only RGB view of a ColorTable.
type ColorTableRGB struct {
	codes  []string
	colors map[string][]RGB
}

func (t *ColorTableRGB) Get(code string) ([]RGB, bool) {
	colors, ok := t.colors[code]

	return colors, ok
}

func (t *ColorTableRGB) Codes() []string {
	return append([]string(nil), t.codes...)
}

func (t *ColorTableRGB) MarshalJSON() ([]byte, error) {
	return marshalOrdered(t.codes, func(code string) interface{} {
		return t.colors[code]
	})
}

// marshalOrdered writes a JSON object whose keys appear in the given order.
func marshalOrdered(keys []string, value func(string) interface{}) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, key := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}

		k, err := json.Marshal(key)

		if err != nil {
			return nil, err
		}

		v, err := json.Marshal(value(key))

		if err != nil {
			return nil, err
		}

		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}
