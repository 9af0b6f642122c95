package booking_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avstrong/rental/internal/booking"
	"github.com/avstrong/rental/internal/idgen/simple"
	"github.com/avstrong/rental/internal/logger"
	"github.com/avstrong/rental/internal/migration"
	"github.com/avstrong/rental/internal/storage/memory"
)

func str(v string) *string { return &v }

func newManager(t *testing.T, guard booking.Guard) (*booking.Manager, context.Context) {
	t.Helper()

	l := logger.NewNop()

	cat, err := migration.Up(l)
	require.NoError(t, err)

	db := memory.New(memory.Config{L: l})

	m := booking.New(booking.Config{
		L:           l,
		Sessions:    db,
		Flows:       db,
		Catalog:     cat,
		IDGenerator: simple.New(),
		Guard:       guard,
	})

	id, details, err := m.CreateSession(context.Background())
	require.NoError(t, err)
	assert.Equal(t, booking.Details{}, details)

	return m, booking.NewContextWithSessionID(context.Background(), id)
}

func fillTrip(t *testing.T, m *booking.Manager, ctx context.Context) {
	t.Helper()

	_, err := m.UpdateFlowTrip(ctx, booking.TripUpdate{
		PickupLocation:  str("1"),
		DropoffLocation: str("2"),
		PickupDate:      str("2024-01-01"),
		DropoffDate:     str("2024-01-04"),
	})
	require.NoError(t, err)
}

func TestManagerRequiresSessionID(t *testing.T) {
	m, _ := newManager(t, nil)

	_, err := m.Details(context.Background())
	require.ErrorIs(t, err, booking.ErrSessionID)

	_, err = m.Details(booking.NewContextWithSessionID(context.Background(), "unknown"))
	require.ErrorIs(t, err, booking.ErrSessionNotFound)
}

func TestUpdateTripKeepsVehicle(t *testing.T) {
	m, ctx := newManager(t, nil)

	details, err := m.UpdateTrip(ctx, booking.TripUpdate{PickupLocation: str("3")})
	require.NoError(t, err)
	assert.Equal(t, "3", details.PickupLocation)
	assert.Nil(t, details.CarID)

	details, err = m.UpdateTrip(ctx, booking.TripUpdate{PickupDate: str("2024-03-01")})
	require.NoError(t, err)
	assert.Equal(t, "3", details.PickupLocation)
	assert.Equal(t, "2024-03-01", details.PickupDate)
}

func TestStartFlow(t *testing.T) {
	m, ctx := newManager(t, nil)

	view, err := m.StartFlow(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, booking.StepTripDetails, view.Step)
	assert.Equal(t, "2", view.Vehicle.ID)
	assert.Equal(t, 1, view.Quote.DurationDays)

	_, err = m.StartFlow(ctx, "404")
	require.ErrorIs(t, err, booking.ErrVehicleNotFound)

	_, err = m.StartFlow(ctx, "5")
	require.ErrorIs(t, err, booking.ErrVehicleUnavailable)
}

func TestFlowRequiresStart(t *testing.T) {
	m, ctx := newManager(t, nil)

	_, err := m.Next(ctx)
	require.ErrorIs(t, err, booking.ErrFlowNotFound)

	require.ErrorIs(t, m.Submit(ctx), booking.ErrFlowNotFound)
}

func TestFlowTripEditsWriteThrough(t *testing.T) {
	m, ctx := newManager(t, nil)

	_, err := m.StartFlow(ctx, "2")
	require.NoError(t, err)

	fillTrip(t, m, ctx)

	details, err := m.Details(ctx)
	require.NoError(t, err)
	require.NotNil(t, details.CarID)
	assert.Equal(t, "2", *details.CarID)
	assert.Equal(t, "2024-01-04", details.DropoffDate)

	view, err := m.Flow(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, view.Quote.DurationDays)
	assert.Equal(t, "360.00", view.Quote.Subtotal)
	assert.Equal(t, "54.00", view.Quote.InsuranceFee)
	assert.Equal(t, "438.99", view.Quote.GrandTotal)
}

// The permissive guard advances past empty steps; required fields are the
// form's concern.
func TestNextWithoutValidation(t *testing.T) {
	m, ctx := newManager(t, booking.PermissiveGuard{})

	_, err := m.StartFlow(ctx, "1")
	require.NoError(t, err)

	view, err := m.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, booking.StepContactInfo, view.Step)

	view, err = m.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, booking.StepPaymentInfo, view.Step)

	_, err = m.Next(ctx)
	require.ErrorIs(t, err, booking.ErrInvalidTransition)
}

func TestBackKeepsContactInfo(t *testing.T) {
	m, ctx := newManager(t, nil)

	_, err := m.StartFlow(ctx, "1")
	require.NoError(t, err)

	_, err = m.Back(ctx)
	require.ErrorIs(t, err, booking.ErrInvalidTransition)

	_, err = m.Next(ctx)
	require.NoError(t, err)

	_, err = m.UpdateContact(ctx, booking.ContactUpdate{
		FirstName: str("Ada"),
		LastName:  str("Lovelace"),
		Email:     str("ada@example.com"),
		Phone:     str("+1 555 0100"),
	})
	require.NoError(t, err)

	_, err = m.Next(ctx)
	require.NoError(t, err)

	view, err := m.Back(ctx)
	require.NoError(t, err)
	assert.Equal(t, booking.StepContactInfo, view.Step)
	assert.Equal(t, booking.ContactInfo{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Phone:     "+1 555 0100",
	}, view.Contact)
}

func TestPaymentIsMaskedInView(t *testing.T) {
	m, ctx := newManager(t, nil)

	_, err := m.StartFlow(ctx, "1")
	require.NoError(t, err)

	view, err := m.UpdatePayment(ctx, booking.PaymentUpdate{
		CardNumber: str("4242 4242 4242 4242"),
		CVV:        str("123"),
	})
	require.NoError(t, err)
	assert.Equal(t, "************4242", view.Payment.CardNumber)
	assert.Equal(t, "***", view.Payment.CVV)
}

func TestStrictGuard(t *testing.T) {
	m, ctx := newManager(t, booking.StrictGuard{})

	_, err := m.StartFlow(ctx, "1")
	require.NoError(t, err)

	_, err = m.Next(ctx)
	inputErr := booking.IsInputError(err)
	require.NotNil(t, inputErr)
	assert.Contains(t, inputErr.Fields(), "trip.pickupLocation")
	assert.Contains(t, inputErr.Fields(), "trip.dropoffDate")

	fillTrip(t, m, ctx)

	_, err = m.Next(ctx)
	require.NoError(t, err)

	_, err = m.UpdateContact(ctx, booking.ContactUpdate{FirstName: str("Ada"), Email: str("not-an-email")})
	require.NoError(t, err)

	_, err = m.Next(ctx)
	inputErr = booking.IsInputError(err)
	require.NotNil(t, inputErr)
	assert.Equal(t, map[string][]string{
		"contact.lastName": {"this field is required"},
		"contact.email":    {"provide valid email"},
		"contact.phone":    {"this field is required"},
	}, inputErr.Fields())

	view, err := m.Flow(ctx)
	require.NoError(t, err)
	assert.Equal(t, booking.StepContactInfo, view.Step)
}

func TestSubmitAndConfirm(t *testing.T) {
	m, ctx := newManager(t, nil)

	_, err := m.StartFlow(ctx, "2")
	require.NoError(t, err)

	fillTrip(t, m, ctx)

	require.ErrorIs(t, m.Submit(ctx), booking.ErrInvalidTransition)

	for range 2 {
		_, err = m.Next(ctx)
		require.NoError(t, err)
	}

	require.NoError(t, m.Submit(ctx))

	_, err = m.Flow(ctx)
	require.ErrorIs(t, err, booking.ErrFlowNotFound)

	summary, err := m.Confirmation(ctx)
	require.NoError(t, err)
	assert.Len(t, summary.Reference, booking.ReferenceLength)
	assert.Equal(t, "BMW X5", summary.Vehicle.Name)
	assert.Equal(t, "Los Angeles Downtown", summary.PickupLocation.Name)
	assert.Equal(t, "LAX Airport", summary.DropoffLocation.Name)
	assert.Equal(t, 3, summary.Quote.DurationDays)

	require.NoError(t, m.Reset(ctx))

	details, err := m.Details(ctx)
	require.NoError(t, err)
	assert.Equal(t, booking.Details{}, details)

	_, err = m.Confirmation(ctx)
	require.ErrorIs(t, err, booking.ErrMissingInformation)
}

func TestConfirmationWithoutVehicle(t *testing.T) {
	m, ctx := newManager(t, nil)

	_, err := m.UpdateTrip(ctx, booking.TripUpdate{PickupLocation: str("1"), DropoffLocation: str("2")})
	require.NoError(t, err)

	var summary *booking.Summary

	assert.NotPanics(t, func() {
		summary, err = m.Confirmation(ctx)
	})
	require.ErrorIs(t, err, booking.ErrMissingInformation)
	assert.Nil(t, summary)
}

func TestStartFlowDiscardsPreviousForm(t *testing.T) {
	m, ctx := newManager(t, nil)

	_, err := m.StartFlow(ctx, "1")
	require.NoError(t, err)

	_, err = m.UpdateContact(ctx, booking.ContactUpdate{FirstName: str("Ada")})
	require.NoError(t, err)

	view, err := m.StartFlow(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, booking.ContactInfo{}, view.Contact)
	assert.Equal(t, booking.StepTripDetails, view.Step)
}

func TestConcurrentTripUpdates(t *testing.T) {
	m, ctx := newManager(t, nil)

	var wg sync.WaitGroup

	for i := range 50 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			upd := booking.TripUpdate{PickupLocation: str("1")}
			if i%2 == 0 {
				upd = booking.TripUpdate{DropoffLocation: str("2")}
			}

			_, err := m.UpdateTrip(ctx, upd)
			assert.NoError(t, err)
		}()
	}

	wg.Wait()

	details, err := m.Details(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1", details.PickupLocation)
	assert.Equal(t, "2", details.DropoffLocation)
}
