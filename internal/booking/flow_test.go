package booking

import (
	"context"
	"encoding/json"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avstrong/rental/internal/catalog"
	"github.com/avstrong/rental/internal/pricing"
)

func TestFlowTransitions(t *testing.T) {
	f := NewFlow("1")
	guard := PermissiveGuard{}

	require.ErrorIs(t, f.Back(), ErrInvalidTransition)
	require.ErrorIs(t, f.CanSubmit(guard, Details{}), ErrInvalidTransition)

	require.NoError(t, f.Next(guard, Details{}))
	assert.Equal(t, StepContactInfo, f.Step)

	require.NoError(t, f.Next(guard, Details{}))
	assert.Equal(t, StepPaymentInfo, f.Step)
	require.NoError(t, f.CanSubmit(guard, Details{}))

	require.ErrorIs(t, f.Next(guard, Details{}), ErrInvalidTransition)

	require.NoError(t, f.Back())
	require.NoError(t, f.Back())
	assert.Equal(t, StepTripDetails, f.Step)
}

func TestStrictGuardOnPayment(t *testing.T) {
	f := NewFlow("1")
	f.Step = StepPaymentInfo
	f.Payment = PaymentInfo{CardNumber: "4242424242424242", CardHolder: "Ada Lovelace"}

	err := f.CanSubmit(StrictGuard{}, Details{})

	inputErr := IsInputError(err)
	require.NotNil(t, inputErr)
	assert.Equal(t, []string{"payment.cvv", "payment.expiry"}, sortedKeys(inputErr.Fields()))
}

func TestStrictGuardRejectsMalformedDates(t *testing.T) {
	trip := Details{PickupLocation: "1", DropoffLocation: "2", PickupDate: "2024-01-01", DropoffDate: "01/04/2024"}

	err := StrictGuard{}.Check(StepTripDetails, trip, NewFlow("1"))

	inputErr := IsInputError(err)
	require.NotNil(t, inputErr)
	assert.Equal(t, []string{"provide date as 2006-01-02"}, inputErr.Fields()["trip.dropoffDate"])
}

func TestStepJSON(t *testing.T) {
	out, err := json.Marshal(struct {
		Step Step `json:"step"`
	}{Step: StepContactInfo})
	require.NoError(t, err)
	assert.JSONEq(t, `{"step":"contact_info"}`, string(out))

	assert.Equal(t, "step(9)", Step(9).String())
}

type fixedRefs string

func (f fixedRefs) Reference(context.Context, int) (string, error) { return string(f), nil }

func TestSummarizeMissingInformation(t *testing.T) {
	cat, err := catalog.New(
		[]catalog.Vehicle{{ID: "1", Name: "Civic", DailyRate: 50, Seats: 5, Transmission: catalog.TransmissionManual}},
		[]catalog.Location{{ID: "1", Name: "LAX"}, {ID: "2", Name: "JFK"}},
	)
	require.NoError(t, err)

	carID := "1"
	unknownCar := "9"

	tests := []struct {
		name    string
		details Details
	}{
		{name: "empty session", details: Details{}},
		{name: "unknown vehicle", details: Details{CarID: &unknownCar, PickupLocation: "1", DropoffLocation: "2"}},
		{name: "no pickup", details: Details{CarID: &carID, DropoffLocation: "2"}},
		{name: "unknown drop-off", details: Details{CarID: &carID, PickupLocation: "1", DropoffLocation: "7"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Summarize(context.Background(), tt.details, cat, fixedRefs("ABCD1234"), pricing.NewCalculator(0))
			require.ErrorIs(t, err, ErrMissingInformation)
		})
	}

	summary, err := Summarize(context.Background(),
		Details{CarID: &carID, PickupLocation: "1", DropoffLocation: "2"}, cat, fixedRefs("ABCD1234"), pricing.NewCalculator(0))
	require.NoError(t, err)
	assert.Equal(t, "ABCD1234", summary.Reference)
	assert.Equal(t, 1, summary.Quote.DurationDays)
	assert.InDelta(t, 82.99, summary.Quote.GrandTotal, 1e-9)
	assert.Equal(t, "ABCD1234: Civic, LAX -> JFK, 1 day(s)", summary.String())
}

type recordingQuoter struct {
	calls []string
}

func (q *recordingQuoter) Quote(dailyRate float64, pickupDate, dropoffDate string) pricing.Quote {
	q.calls = append(q.calls, pickupDate+"/"+dropoffDate)

	return pricing.Compute(dailyRate, pickupDate, dropoffDate)
}

func TestSummarizePricesThroughQuoter(t *testing.T) {
	cat, err := catalog.New(
		[]catalog.Vehicle{{ID: "1", Name: "Civic", DailyRate: 100, Seats: 5, Transmission: catalog.TransmissionManual}},
		[]catalog.Location{{ID: "1", Name: "LAX"}},
	)
	require.NoError(t, err)

	carID := "1"
	q := &recordingQuoter{}

	summary, err := Summarize(context.Background(), Details{
		CarID:           &carID,
		PickupLocation:  "1",
		DropoffLocation: "1",
		PickupDate:      "2024-01-01",
		DropoffDate:     "2024-01-04",
	}, cat, fixedRefs("ABCD1234"), q)
	require.NoError(t, err)

	assert.Equal(t, []string{"2024-01-01/2024-01-04"}, q.calls)
	assert.InDelta(t, 369.99, summary.Quote.GrandTotal, 1e-9)
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}
