package internal

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	published []*ColorTable
}

func (f *fakePublisher) Publish(table *ColorTable) error {
	f.published = append(f.published, table)
	return nil
}

func newSourceServer(t *testing.T, html string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/countries.json":
			_, _ = w.Write([]byte(`[{"id": 250, "alpha2": "FR", "alpha3": "fra", "name": "France"}]`))
		case "/wiki/National_colours":
			_, _ = w.Write([]byte(html))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestScraper(t *testing.T, server *httptest.Server, outputDir string, publisher Publisher) *scraper {
	t.Helper()
	dir := t.TempDir()
	log, _ := logrustest.NewNullLogger()

	return NewScraper(&ScraperOptions{
		PageURL:           server.URL + "/wiki/National_colours",
		CountriesURL:      server.URL + "/countries.json",
		NormalizationFile: writeFile(t, dir, "country-normalization.json", `{}`),
		ISOFile:           writeFile(t, dir, "country-iso3166.json", `{}`),
		OutputDir:         outputDir,
		HTTPClient:        server.Client(),
		Publisher:         publisher,
		Logger:            log,
	})
}

func TestScraperRunEndToEnd(t *testing.T) {
	server := newSourceServer(t, page(table(countryHeader,
		`<tr><td>France</td><td>`+
			`<span style="background-color:#0055A4"> <span style="background-color:#FFFFFF"> <span style="background-color:#EF4135">`+
			`</td><td>...</td></tr>`)))

	out := filepath.Join(t.TempDir(), "data")
	publisher := &fakePublisher{}

	report, err := newTestScraper(t, server, out, publisher).Run(context.Background())
	require.NoError(t, err)

	hexData, err := os.ReadFile(filepath.Join(out, HexOutputFile))
	require.NoError(t, err)
	assert.Equal(t, `{"FR":["#0055a4","#ffffff","#ef4135"]}`, string(hexData))

	rgbData, err := os.ReadFile(filepath.Join(out, RGBOutputFile))
	require.NoError(t, err)
	assert.Equal(t, `{"FR":[[0,85,164],[255,255,255],[239,65,53]]}`, string(rgbData))

	require.Len(t, publisher.published, 1)
	assert.Equal(t, []string{"FR"}, publisher.published[0].Codes())

	assert.Equal(t, 1, report.Countries)
	assert.False(t, report.CompletedAt.IsZero())
	assert.Contains(t, report.Stages, "extract")
	assert.Contains(t, report.Stages, "publish")
}

func TestScraperRunFailureWritesNothing(t *testing.T) {
	server := newSourceServer(t, page(table(countryHeader, franceRow, franceRow)))

	out := filepath.Join(t.TempDir(), "data")
	publisher := &fakePublisher{}

	report, err := newTestScraper(t, server, out, publisher).Run(context.Background())

	var dup *DuplicateCountryError
	require.ErrorAs(t, err, &dup)
	assert.True(t, report.CompletedAt.IsZero())
	assert.Empty(t, publisher.published)

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}

func TestScraperRunPageNotFound(t *testing.T) {
	server := newSourceServer(t, "")
	s := newTestScraper(t, server, t.TempDir(), nil)
	s.pageURL = server.URL + "/wiki/Missing"

	_, err := s.Run(context.Background())

	var statusErr *HTTPStatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
}
