package catalog

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func fleet() []Vehicle {
	return []Vehicle{
		{
			ID: "1", Name: "Tesla Model 3", Brand: "Tesla", Model: "Model 3", DailyRate: 89,
			Type: "Electric", Seats: 5, Transmission: TransmissionAutomatic,
			Features: []string{"Autopilot", "Bluetooth", "GPS"}, Available: true,
		},
		{
			ID: "2", Name: "BMW X5", Brand: "BMW", Model: "X5", DailyRate: 120,
			Type: "SUV", Seats: 7, Transmission: TransmissionAutomatic,
			Features: []string{"Bluetooth", "Leather Seats", "GPS"}, Available: true,
		},
		{
			ID: "3", Name: "Ford Mustang", Brand: "Ford", Model: "Mustang GT", DailyRate: 95,
			Type: "Sports", Seats: 4, Transmission: TransmissionManual,
			Features: []string{"Bluetooth"}, Available: false,
		},
		{
			ID: "4", Name: "Toyota Corolla", Brand: "Toyota", Model: "Corolla", DailyRate: 45,
			Type: "Economy", Seats: 5, Transmission: TransmissionManual,
			Features: []string{"Bluetooth", "Backup Camera"}, Available: true,
		},
	}
}

func ids(vehicles []Vehicle) []string {
	out := make([]string, 0, len(vehicles))
	for _, v := range vehicles {
		out = append(out, v.ID)
	}

	return out
}

func TestApplyEmptyCriteriaKeepsCatalog(t *testing.T) {
	all := fleet()

	got := Apply(all, Criteria{})

	assert.Equal(t, all, got)
}

func TestApply(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		want     []string
	}{
		{name: "search by brand ignores case", criteria: Criteria{Search: "tOyOtA"}, want: []string{"4"}},
		{name: "search by model", criteria: Criteria{Search: "gt"}, want: []string{"3"}},
		{name: "search by name", criteria: Criteria{Search: "model 3"}, want: []string{"1"}},
		{name: "search without match", criteria: Criteria{Search: "lada"}, want: []string{}},
		{name: "blank search still filters", criteria: Criteria{Search: "  "}, want: []string{}},
		{name: "type", criteria: Criteria{Type: "SUV"}, want: []string{"2"}},
		{name: "transmission", criteria: Criteria{Transmission: TransmissionManual}, want: []string{"3", "4"}},
		{name: "min price", criteria: Criteria{MinPrice: ptr(95)}, want: []string{"2", "3"}},
		{name: "max price", criteria: Criteria{MaxPrice: ptr(89)}, want: []string{"1", "4"}},
		{name: "features superset", criteria: Criteria{Features: []string{"GPS", "Bluetooth"}}, want: []string{"1", "2"}},
		{
			name:     "criteria are combined",
			criteria: Criteria{Transmission: TransmissionAutomatic, MaxPrice: ptr(100), Features: []string{"GPS"}},
			want:     []string{"1"},
		},
		{name: "unavailable vehicles stay listed", criteria: Criteria{Type: "Sports"}, want: []string{"3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Apply(fleet(), tt.criteria)))
		})
	}
}

func TestApplyExactPriceBounds(t *testing.T) {
	all := fleet()

	for _, v := range all {
		got := Apply(all, Criteria{MinPrice: ptr(v.DailyRate), MaxPrice: ptr(v.DailyRate)})

		require.Contains(t, ids(got), v.ID)

		for _, other := range got {
			assert.InDelta(t, v.DailyRate, other.DailyRate, 0)
		}
	}
}

func TestApplyFeatureFilterIsMonotonic(t *testing.T) {
	all := fleet()
	features := []string{"Bluetooth", "GPS", "Autopilot", "Leather Seats"}

	prev := len(Apply(all, Criteria{}))

	for i := range features {
		n := len(Apply(all, Criteria{Features: features[:i+1]}))
		assert.LessOrEqual(t, n, prev, "adding %q grew the result", features[i])

		prev = n
	}
}

func TestParseCriteria(t *testing.T) {
	q := url.Values{
		"search":       {"bmw"},
		"type":         {"SUV"},
		"transmission": {"Automatic"},
		"minPrice":     {"50"},
		"maxPrice":     {"150.5"},
		"feature":      {"GPS", " ", "Bluetooth"},
	}

	c := ParseCriteria(q)

	assert.Equal(t, "bmw", c.Search)
	assert.Equal(t, "SUV", c.Type)
	assert.Equal(t, "Automatic", c.Transmission)
	require.NotNil(t, c.MinPrice)
	assert.InDelta(t, 50, *c.MinPrice, 0)
	require.NotNil(t, c.MaxPrice)
	assert.InDelta(t, 150.5, *c.MaxPrice, 0)
	assert.Equal(t, []string{"GPS", "Bluetooth"}, c.Features)
}

func TestParseCriteriaDropsMalformedPrices(t *testing.T) {
	c := ParseCriteria(url.Values{"minPrice": {"cheap"}, "maxPrice": {"NaN"}})

	assert.Nil(t, c.MinPrice)
	assert.Nil(t, c.MaxPrice)
	assert.Len(t, Apply(fleet(), c), len(fleet()))
}
