package main

import (
	"context"
	"flag"
	"net/http"
	"time"

	"github.com/nationalcolors/nationalcolors/internal"
	"github.com/nationalcolors/nationalcolors/internal/metrics"
	"github.com/sirupsen/logrus"
)

func main() {
	opts := &internal.ScraperOptions{}

	var (
		redisAddr   string
		metricsFile string
		logLevel    string
		httpTimeout time.Duration
	)

	flag.StringVar(&opts.PageURL, "page-url", internal.DefaultPageURL, "the page listing national colors")
	flag.StringVar(&opts.CountriesURL, "countries-url", internal.DefaultCountriesURL, "JSON list of countries with name and alpha2 fields")
	flag.StringVar(&opts.NormalizationFile, "normalization-file", internal.DefaultNormalizationFile, "JSON object mapping scraped country names to canonical names")
	flag.StringVar(&opts.ISOFile, "iso-file", internal.DefaultISOFile, "JSON object mapping canonical country names to ISO alpha-2 codes")
	flag.StringVar(&opts.OutputDir, "output-dir", internal.DefaultOutputDir, "directory the hex and rgb JSON files are written to")
	flag.DurationVar(&httpTimeout, "http-timeout", 0, "timeout for each HTTP request, 0 means no timeout")
	flag.StringVar(&redisAddr, "redis-addr", "", "if set, also publish the colors to the Redis server at this address")
	flag.StringVar(&metricsFile, "metrics-file", "", "if set, write run metrics to this file in the Prometheus text format")
	flag.StringVar(&logLevel, "log-level", "info", "one of trace, debug, info, warn, error")

	flag.Parse()

	l := logrus.StandardLogger()

	level, err := logrus.ParseLevel(logLevel)

	if err != nil {
		l.WithError(err).Fatal("Invalid log level")
	}

	l.SetLevel(level)

	opts.Logger = l

	if httpTimeout > 0 {
		opts.HTTPClient = &http.Client{Timeout: httpTimeout}
	}

	// Fatal exits without running deferred calls, so the client is closed by hand.
	closePublisher := func() {}

	if redisAddr != "" {
		publisher := internal.NewPublisher(&internal.PublisherOptions{
			RedisAddr: redisAddr,
			Logger:    l,
		})

		if err := publisher.WaitUntilRedisReady(); err != nil {
			publisher.Close()
			l.WithError(err).Fatal("Redis is not available")
		}

		opts.Publisher = publisher
		closePublisher = func() {
			if err := publisher.Close(); err != nil {
				l.WithError(err).Warn("Unable to close Redis client")
			}
		}
	}

	scraper := internal.NewScraper(opts)

	report, runErr := scraper.Run(context.Background())

	closePublisher()

	if metricsFile != "" {
		m := metrics.NewScraperMetrics()
		m.Observe(report)

		if err := m.WriteTextfile(metricsFile); err != nil {
			l.WithError(err).Error("Unable to write metrics file")
		}
	}

	if runErr != nil {
		l.WithError(runErr).Fatal("Run failed")
	}
}
