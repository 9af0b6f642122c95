package pricing

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	DateLayout = "2006-01-02"

	InsuranceRate = 0.15
	ServiceFee    = 24.99

	day = 24 * time.Hour
)

type Quote struct {
	DurationDays int     `json:"durationDays"`
	DailyRate    float64 `json:"dailyRate"`
	Subtotal     float64 `json:"subtotal"`
	InsuranceFee float64 `json:"insuranceFee"`
	ServiceFee   float64 `json:"serviceFee"`
	GrandTotal   float64 `json:"grandTotal"`
}

// QuoteView is a Quote with every amount formatted for display.
type QuoteView struct {
	DurationDays int    `json:"durationDays"`
	DailyRate    string `json:"dailyRate"`
	Subtotal     string `json:"subtotal"`
	InsuranceFee string `json:"insuranceFee"`
	ServiceFee   string `json:"serviceFee"`
	GrandTotal   string `json:"grandTotal"`
}

// Compute prices a rental. Unset or unparseable dates fall back to a single
// day. The day count uses the absolute distance between the dates, so
// swapping pickup and drop-off yields the same quote.
func Compute(dailyRate float64, pickupDate, dropoffDate string) Quote {
	days := Duration(pickupDate, dropoffDate)
	subtotal := dailyRate * float64(days)
	insurance := math.Round(subtotal * InsuranceRate)

	return Quote{
		DurationDays: days,
		DailyRate:    dailyRate,
		Subtotal:     subtotal,
		InsuranceFee: insurance,
		ServiceFee:   ServiceFee,
		GrandTotal:   subtotal + insurance + ServiceFee,
	}
}

// Duration returns the whole-day rental length, never less than one.
func Duration(pickupDate, dropoffDate string) int {
	from, okFrom := ParseDate(pickupDate)
	to, okTo := ParseDate(dropoffDate)

	if !okFrom || !okTo {
		return 1
	}

	diff := to.Sub(from)
	if diff < 0 {
		diff = -diff
	}

	days := int(math.Ceil(float64(diff) / float64(day)))
	if days < 1 {
		return 1
	}

	return days
}

// ParseDate reads a calendar date. Empty input is reported as unset.
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}

	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return time.Time{}, false
	}

	return t, true
}

func FormatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func (q Quote) Display() QuoteView {
	return QuoteView{
		DurationDays: q.DurationDays,
		DailyRate:    FormatAmount(q.DailyRate),
		Subtotal:     FormatAmount(q.Subtotal),
		InsuranceFee: FormatAmount(q.InsuranceFee),
		ServiceFee:   FormatAmount(q.ServiceFee),
		GrandTotal:   FormatAmount(q.GrandTotal),
	}
}
