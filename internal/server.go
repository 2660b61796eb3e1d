package internal

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi"
	"github.com/go-redis/redis"
	"github.com/segmentio/encoding/json"
	"github.com/sirupsen/logrus"
)

const docsURL = "https://github.com/nationalcolors/nationalcolors#readme"

// countryCodeRoute accepts alpha-2 codes and subdivision codes like gb-eng in
// any case. Codes are lowercased before they reach Redis.
const countryCodeRoute = "/{countryCode:[A-Za-z]{2}(-[A-Za-z]{2,3})?}"

type httpServerHandlers struct {
	redis *redis.Client
	log   *logrus.Logger
}

func NewHttpServerHandlers(redis *redis.Client, log *logrus.Logger) *httpServerHandlers {
	return &httpServerHandlers{redis, log}
}

// MountRoutes registers the lookup routes on r.
func (s *httpServerHandlers) MountRoutes(r chi.Router) {
	r.Get("/", s.HandleIndex)
	r.Get("/countries", s.HandleListCountries)
	r.Route(countryCodeRoute, func(r chi.Router) {
		r.Head("/", s.HandleCheckCountryAvailable)
		r.Get("/", s.HandleGetColorsByCountry)
	})
}

func (s *httpServerHandlers) HandleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Location", docsURL)
	w.WriteHeader(http.StatusTemporaryRedirect)
}

func (s *httpServerHandlers) HandleCheckCountryAvailable(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodHead {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	countryCode := chi.URLParam(r, "countryCode")

	ok, err := CountryHasColors(s.redis, countryCode)

	if err != nil {
		s.log.Error(err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (s *httpServerHandlers) HandleGetColorsByCountry(w http.ResponseWriter, r *http.Request) {
	countryCode := strings.ToLower(chi.URLParam(r, "countryCode"))

	colors, ok, err := QueryColors(s.redis, countryCode)

	if err != nil {
		s.log.WithField("country", countryCode).Error(err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	var res interface{}

	switch GetVersion(r) {
	case "v2":
		rgb := make([]RGB, 0, len(colors))

		for _, c := range colors {
			triple, err := HexToRGB(c)

			if err != nil {
				s.log.WithError(err).WithField("country", countryCode).Error("Stored color is not valid hex")
				w.WriteHeader(http.StatusInternalServerError)
				return
			}

			rgb = append(rgb, triple)
		}

		res = struct {
			CountryAbbreviation string   `json:"country abbreviation"`
			Colors              []string `json:"colors"`
			RGB                 []RGB    `json:"rgb"`
		}{
			CountryAbbreviation: countryCode,
			Colors:              colors,
			RGB:                 rgb,
		}
	default:
		res = struct {
			CountryAbbreviation string   `json:"country abbreviation"`
			Colors              []string `json:"colors"`
		}{
			CountryAbbreviation: countryCode,
			Colors:              colors,
		}
	}

	s.respond(w, res)
}

func (s *httpServerHandlers) HandleListCountries(w http.ResponseWriter, r *http.Request) {
	codes, err := ListCountries(s.redis)

	if err != nil {
		s.log.Error(err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	s.respond(w, struct {
		Countries []string `json:"countries"`
	}{
		Countries: codes,
	})
}

func (s *httpServerHandlers) respond(w http.ResponseWriter, res interface{}) {
	jsonRes, err := json.Marshal(res)
	if err != nil {
		s.log.WithError(err).Error("Unable to marshal response json")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Add("Content-Type", "application/json")
	if _, err := w.Write(jsonRes); err != nil {
		s.log.WithError(err).Error("Unable to write response json body")
	}
}
