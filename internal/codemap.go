package internal

import (
	"fmt"
	"os"

	"github.com/segmentio/encoding/json"
)

// CodeMap is a plain string to string lookup table, such as a country name to
// ISO code mapping or a color keyword to hex mapping.
type CodeMap map[string]string

func (m CodeMap) GetName(key string) string {
	val, ok := m[key]

	if !ok {
		return ""
	}

	return val
}

// GetOrDefault returns the mapped value for key or key itself when it is not
// present.
func (m CodeMap) GetOrDefault(key string) string {
	val, ok := m[key]

	if !ok {
		return key
	}

	return val
}

// LoadCodeMap reads a JSON object of strings from path. A missing or malformed
// file is an error, there is no empty fallback.
func LoadCodeMap(path string) (CodeMap, error) {
	data, err := os.ReadFile(path)

	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	m := make(CodeMap)

	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	return m, nil
}

// CountryCodes holds the lookup tables used to turn a scraped country name into
// an ISO alpha-2 code.
type CountryCodes struct {
	Normalization *CodeMap
	ISONames      *CodeMap
	Remote        *CodeMap
}

// Canonical applies the normalization table to a scraped name.
func (c *CountryCodes) Canonical(name string) string {
	if c.Normalization == nil {
		return name
	}

	return c.Normalization.GetOrDefault(name)
}

// Resolve looks a canonical name up in the remote list first and the local ISO
// file second. An empty string means neither knows the name.
func (c *CountryCodes) Resolve(canonical string) string {
	if c.Remote != nil {
		if code := c.Remote.GetName(canonical); code != "" {
			return code
		}
	}

	if c.ISONames != nil {
		return c.ISONames.GetName(canonical)
	}

	return ""
}
