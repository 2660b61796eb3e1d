package internal

import (
	"sort"
	"strings"

	"github.com/go-redis/redis"
)

// CountryHasColors reports whether the publisher stored code.
func CountryHasColors(r *redis.Client, code string) (bool, error) {
	return r.SIsMember(countriesKey, strings.ToLower(code)).Result()
}

// QueryColors returns the stored hex colors of code. The boolean is false when
// the country is unknown.
func QueryColors(r *redis.Client, code string) ([]string, bool, error) {
	ok, err := CountryHasColors(r, code)

	if err != nil || !ok {
		return nil, false, err
	}

	colors, err := r.LRange(ColorsKey(code), 0, -1).Result()

	if err != nil {
		return nil, false, err
	}

	return colors, true, nil
}

// ListCountries returns every stored country code, sorted.
func ListCountries(r *redis.Client) ([]string, error) {
	codes, err := r.SMembers(countriesKey).Result()

	if err != nil {
		return nil, err
	}

	if codes == nil {
		codes = []string{}
	}

	sort.Strings(codes)

	return codes, nil
}
