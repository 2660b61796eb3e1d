package internal

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

const (
	dataTableClass = "wikitable"

	organisationKey    = "Organisation"
	countryKey         = "Country"
	colorsKey          = "Primary"
	secondaryColorsKey = "Secondary"
)

// MissingHeaderError means a data table lacks one of the columns the
// extractor relies on.
type MissingHeaderError struct {
	Table   int
	Header  string
	Headers []string
}

func (e *MissingHeaderError) Error() string {
	return fmt.Sprintf("table %d: header %q not found in %q", e.Table, e.Header, e.Headers)
}

// DuplicateCountryError means the same scraped country name appeared twice.
type DuplicateCountryError struct {
	Name string
}

func (e *DuplicateCountryError) Error() string {
	return fmt.Sprintf("duplicate country name: %s", e.Name)
}

// ExtractStats counts what a single extraction saw.
type ExtractStats struct {
	Tables        int
	SkippedTables int
	Rows          int
	Stored        int
	Unresolved    int
}

type Extractor struct {
	log   *logrus.Logger
	Stats ExtractStats
}

func NewExtractor(log *logrus.Logger) *Extractor {
	return &Extractor{log: log}
}

type columns struct {
	country   int
	primary   int
	secondary int
}

// Extract walks every data table of doc and collects primary colors per ISO
// code. Rows whose country cannot be resolved are logged and dropped, every
// other problem aborts the extraction.
func (e *Extractor) Extract(doc Node, codes *CountryCodes) (*ColorTable, error) {
	table := NewColorTable()
	seen := make(map[string]struct{})

	for i, t := range doc.FindAllByClass("table", dataTableClass) {
		e.Stats.Tables++

		rows := t.FindAll("tr")

		var headers []string
		if len(rows) > 0 {
			headers = cellTexts(rows[0].FindAll("th"))
		}

		if len(headers) > 0 && headers[0] == organisationKey {
			e.log.WithField("table", i).Debug("Skipping organisation table")
			e.Stats.SkippedTables++
			continue
		}

		cols, err := locateColumns(i, headers)

		if err != nil {
			return nil, err
		}

		for r, row := range rows[1:] {
			e.Stats.Rows++

			if err := e.extractRow(table, seen, codes, cols, row.FindAll("td")); err != nil {
				return nil, fmt.Errorf("table %d row %d: %w", i, r+1, err)
			}
		}
	}

	return table, nil
}

func (e *Extractor) extractRow(table *ColorTable, seen map[string]struct{}, codes *CountryCodes, cols columns, cells []Node) error {
	if n := maxIndex(cols) + 1; len(cells) < n {
		return fmt.Errorf("expected at least %d cells, got %d", n, len(cells))
	}

	name := cells[cols.country].Text()

	primary, err := cellColors(cells[cols.primary])

	if err != nil {
		return fmt.Errorf("primary colors of %s: %w", name, err)
	}

	// Secondary colors are not written anywhere but a malformed swatch still
	// fails the run.
	if _, err := cellColors(cells[cols.secondary]); err != nil {
		return fmt.Errorf("secondary colors of %s: %w", name, err)
	}

	if _, ok := seen[name]; ok {
		return &DuplicateCountryError{Name: name}
	}

	seen[name] = struct{}{}

	canonical := codes.Canonical(name)
	code := codes.Resolve(canonical)

	if code == "" {
		e.log.WithField("country", canonical).Warnf("missing iso code for %s, skipping", canonical)
		e.Stats.Unresolved++
		return nil
	}

	e.log.WithFields(logrus.Fields{
		"country": canonical,
		"code":    code,
		"colors":  len(primary),
	}).Trace("Stored colors")

	table.Set(code, primary)
	e.Stats.Stored++

	return nil
}

func locateColumns(table int, headers []string) (columns, error) {
	var cols columns

	for _, c := range []struct {
		header string
		target *int
	}{
		{countryKey, &cols.country},
		{colorsKey, &cols.primary},
		{secondaryColorsKey, &cols.secondary},
	} {
		idx := indexOf(headers, c.header)

		if idx < 0 {
			return cols, &MissingHeaderError{Table: table, Header: c.header, Headers: headers}
		}

		*c.target = idx
	}

	return cols, nil
}

func cellColors(cell Node) ([]string, error) {
	spans := cell.FindAll("span")
	colors := make([]string, 0, len(spans))

	for _, span := range spans {
		hex, err := ParseColor(span)

		if err != nil {
			return nil, err
		}

		colors = append(colors, hex)
	}

	return colors, nil
}

func cellTexts(cells []Node) []string {
	texts := make([]string, 0, len(cells))

	for _, c := range cells {
		texts = append(texts, c.Text())
	}

	return texts
}

func indexOf(values []string, v string) int {
	for i, s := range values {
		if s == v {
			return i
		}
	}

	return -1
}

func maxIndex(c columns) int {
	m := c.country

	if c.primary > m {
		m = c.primary
	}

	if c.secondary > m {
		m = c.secondary
	}

	return m
}
