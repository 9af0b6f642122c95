package catalog

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

// Apply keeps every vehicle that satisfies all active criteria, preserving
// catalog order. Availability is not a filter.
func Apply(vehicles []Vehicle, c Criteria) []Vehicle {
	search := strings.ToLower(c.Search)

	out := make([]Vehicle, 0, len(vehicles))

	for _, v := range vehicles {
		if search != "" && !matchesSearch(v, search) {
			continue
		}

		if c.Type != "" && v.Type != c.Type {
			continue
		}

		if c.Transmission != "" && v.Transmission != c.Transmission {
			continue
		}

		if c.MinPrice != nil && v.DailyRate < *c.MinPrice {
			continue
		}

		if c.MaxPrice != nil && v.DailyRate > *c.MaxPrice {
			continue
		}

		if !hasFeatures(v, c.Features) {
			continue
		}

		out = append(out, v)
	}

	return out
}

func matchesSearch(v Vehicle, term string) bool {
	return strings.Contains(strings.ToLower(v.Name), term) ||
		strings.Contains(strings.ToLower(v.Brand), term) ||
		strings.Contains(strings.ToLower(v.Model), term)
}

func hasFeatures(v Vehicle, required []string) bool {
	if len(required) == 0 {
		return true
	}

	have := make(map[string]struct{}, len(v.Features))
	for _, f := range v.Features {
		have[f] = struct{}{}
	}

	for _, f := range required {
		if _, ok := have[f]; !ok {
			return false
		}
	}

	return true
}

// ParseCriteria builds criteria from list query parameters. Price bounds that
// are empty or not numbers are dropped rather than reported.
func ParseCriteria(q url.Values) Criteria {
	c := Criteria{
		Search:       q.Get("search"),
		Type:         q.Get("type"),
		Transmission: q.Get("transmission"),
		MinPrice:     parsePrice(q.Get("minPrice")),
		MaxPrice:     parsePrice(q.Get("maxPrice")),
	}

	for _, f := range q["feature"] {
		if f = strings.TrimSpace(f); f != "" {
			c.Features = append(c.Features, f)
		}
	}

	return c
}

func parsePrice(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) {
		return nil
	}

	return &v
}
