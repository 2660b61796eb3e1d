package internal

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	DefaultPageURL           = "https://en.wikipedia.org/wiki/National_colours"
	DefaultCountriesURL      = "https://raw.githubusercontent.com/stefangabos/world_countries/master/data/en/countries.json"
	DefaultNormalizationFile = "country-normalization.json"
	DefaultISOFile           = "country-iso3166.json"
	DefaultOutputDir         = "data"
)

// Publisher stores a finished color table somewhere outside the output files.
type Publisher interface {
	Publish(table *ColorTable) error
}

// RunReport describes a finished run.
type RunReport struct {
	Stats       ExtractStats
	Countries   int
	Stages      map[string]time.Duration
	CompletedAt time.Time
}

type scraper struct {
	log       *logrus.Logger
	pageURL   string
	loader    *referenceLoader
	fetcher   *Fetcher
	emitter   *Emitter
	publisher Publisher
}

type ScraperOptions struct {
	PageURL           string
	CountriesURL      string
	NormalizationFile string
	ISOFile           string
	OutputDir         string
	HTTPClient        *http.Client
	// Publisher is optional.
	Publisher Publisher
	Logger    *logrus.Logger
}

func NewScraper(options *ScraperOptions) *scraper {
	s := &scraper{}

	s.log = options.Logger

	s.pageURL = options.PageURL

	s.fetcher = NewFetcher(&FetcherOptions{
		Client: options.HTTPClient,
		Logger: options.Logger,
	})

	s.loader = NewReferenceLoader(&ReferenceLoaderOptions{
		Fetcher:           s.fetcher,
		Logger:            options.Logger,
		NormalizationFile: options.NormalizationFile,
		ISOFile:           options.ISOFile,
		CountriesURL:      options.CountriesURL,
	})

	s.emitter = NewEmitter(&EmitterOptions{
		OutputDir: options.OutputDir,
		Logger:    options.Logger,
	})

	s.publisher = options.Publisher

	return s
}

// Run loads the reference data, scrapes the page and writes both output
// files. Nothing is written unless extraction succeeds.
func (s *scraper) Run(ctx context.Context) (*RunReport, error) {
	report := &RunReport{Stages: make(map[string]time.Duration)}

	stage := func(name string, fn func() error) error {
		start := time.Now()
		err := fn()
		report.Stages[name] = time.Since(start)

		if err != nil {
			return err
		}

		s.log.WithField("stage", name).Infof("Stage took %s", report.Stages[name])

		return nil
	}

	var codes *CountryCodes
	err := stage("references", func() (err error) {
		codes, err = s.loader.Load(ctx)
		return err
	})

	if err != nil {
		return report, err
	}

	var doc Node
	err = stage("fetch", func() (err error) {
		doc, err = s.fetcher.FetchDocument(ctx, s.pageURL)
		return err
	})

	if err != nil {
		return report, fmt.Errorf("fetch page: %w", err)
	}

	var table *ColorTable
	extractor := NewExtractor(s.log)
	err = stage("extract", func() (err error) {
		table, err = extractor.Extract(doc, codes)
		return err
	})

	report.Stats = extractor.Stats

	if err != nil {
		return report, fmt.Errorf("extract colors: %w", err)
	}

	report.Countries = table.Len()

	if err := stage("emit", func() error { return s.emitter.Emit(table) }); err != nil {
		return report, err
	}

	if s.publisher != nil {
		if err := stage("publish", func() error { return s.publisher.Publish(table) }); err != nil {
			return report, err
		}
	}

	report.CompletedAt = time.Now()

	s.log.WithFields(logrus.Fields{
		"countries":  report.Countries,
		"unresolved": report.Stats.Unresolved,
	}).Info("Run complete")

	return report, nil
}
