package internal

import (
	"context"
	"fmt"

	"github.com/segmentio/encoding/json"
	"github.com/sirupsen/logrus"
)

// remoteCountry is one entry of the remote country list. Only the fields used
// for the name lookup are decoded.
type remoteCountry struct {
	Name   string `json:"name"`
	Alpha2 string `json:"alpha2"`
}

type referenceLoader struct {
	fetcher           *Fetcher
	log               *logrus.Logger
	normalizationFile string
	isoFile           string
	countriesURL      string
}

type ReferenceLoaderOptions struct {
	Fetcher           *Fetcher
	Logger            *logrus.Logger
	NormalizationFile string
	ISOFile           string
	CountriesURL      string
}

func NewReferenceLoader(options *ReferenceLoaderOptions) *referenceLoader {
	return &referenceLoader{
		fetcher:           options.Fetcher,
		log:               options.Logger,
		normalizationFile: options.NormalizationFile,
		isoFile:           options.ISOFile,
		countriesURL:      options.CountriesURL,
	}
}

// Load reads both local mapping files and fetches the remote country list.
func (l *referenceLoader) Load(ctx context.Context) (*CountryCodes, error) {
	normalization, err := LoadCodeMap(l.normalizationFile)

	if err != nil {
		return nil, fmt.Errorf("load country name normalizations: %w", err)
	}

	isoNames, err := LoadCodeMap(l.isoFile)

	if err != nil {
		return nil, fmt.Errorf("load country iso names: %w", err)
	}

	body, err := l.fetcher.Fetch(ctx, l.countriesURL)

	if err != nil {
		return nil, fmt.Errorf("fetch country list: %w", err)
	}

	remote, err := decodeRemoteCountries(body)

	if err != nil {
		return nil, fmt.Errorf("decode country list from %s: %w", l.countriesURL, err)
	}

	l.log.WithFields(logrus.Fields{
		"normalizations": len(normalization),
		"isoNames":       len(isoNames),
		"remoteNames":    len(remote),
	}).Info("Loaded country reference data")

	return &CountryCodes{
		Normalization: &normalization,
		ISONames:      &isoNames,
		Remote:        &remote,
	}, nil
}

// decodeRemoteCountries builds a name to alpha2 map. A repeated name keeps the
// last entry.
func decodeRemoteCountries(body []byte) (CodeMap, error) {
	var countries []remoteCountry

	if err := json.Unmarshal(body, &countries); err != nil {
		return nil, err
	}

	m := make(CodeMap, len(countries))

	for _, c := range countries {
		m[c.Name] = c.Alpha2
	}

	return m, nil
}
