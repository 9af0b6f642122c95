package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/avstrong/rental/internal/catalog"
	"github.com/avstrong/rental/internal/logger"
	"github.com/avstrong/rental/internal/pricing"
)

type idGenerator interface {
	SessionID(ctx context.Context) (string, error)
	referenceGenerator
}

type sessionStorage interface {
	CreateSession(ctx context.Context, id string, details Details) error
	GetSession(ctx context.Context, id string) (Details, error)
	SaveSession(ctx context.Context, id string, details Details) error
}

type flowStorage interface {
	SaveFlow(ctx context.Context, sessionID string, flow Flow) error
	GetFlow(ctx context.Context, sessionID string) (Flow, error)
	DeleteFlow(ctx context.Context, sessionID string) error
}

type quoter interface {
	Quote(dailyRate float64, pickupDate, dropoffDate string) pricing.Quote
}

type Config struct {
	L           *logger.Logger
	Sessions    sessionStorage
	Flows       flowStorage
	Catalog     *catalog.Catalog
	IDGenerator idGenerator
	Quoter      quoter
	Guard       Guard
}

// Manager owns the booking session state. Every read-modify-write of a
// session or its flow runs under that session's lock, so concurrent requests
// of the same session see last-write-wins with consistent read-after-write.
// Different sessions never wait on each other.
type Manager struct {
	locks       sessionLocks
	l           *logger.Logger
	sessions    sessionStorage
	flows       flowStorage
	catalog     *catalog.Catalog
	idGenerator idGenerator
	quoter      quoter
	guard       Guard
}

func New(conf Config) *Manager {
	guard := conf.Guard
	if guard == nil {
		guard = PermissiveGuard{}
	}

	l := conf.L
	if l == nil {
		l = logger.NewNop()
	}

	q := conf.Quoter
	if q == nil {
		q = pricing.NewCalculator(0)
	}

	//nolint:exhaustruct
	return &Manager{
		l:           l,
		sessions:    conf.Sessions,
		flows:       conf.Flows,
		catalog:     conf.Catalog,
		idGenerator: conf.IDGenerator,
		quoter:      q,
		guard:       guard,
	}
}

func sessionID(ctx context.Context) (string, error) {
	id, ok := SessionIDFromContext(ctx)
	if !ok {
		return "", ErrSessionID
	}

	return id, nil
}

func (m *Manager) CreateSession(ctx context.Context) (string, Details, error) {
	id, err := m.idGenerator.SessionID(ctx)
	if err != nil {
		return "", Details{}, fmt.Errorf("next session id: %w", err)
	}

	//nolint:exhaustruct
	details := Details{}

	if err := m.sessions.CreateSession(ctx, id, details); err != nil {
		return "", Details{}, fmt.Errorf("create session %s: %w", id, err)
	}

	m.l.With("session", id).LogInfo("Booking session has been created")

	return id, details, nil
}

func (m *Manager) Details(ctx context.Context) (Details, error) {
	id, err := sessionID(ctx)
	if err != nil {
		return Details{}, err
	}

	details, err := m.sessions.GetSession(ctx, id)
	if err != nil {
		return Details{}, fmt.Errorf("get session %s: %w", id, err)
	}

	return details, nil
}

// UpdateTrip applies edits coming from the search form. The selected vehicle
// is left as is.
func (m *Manager) UpdateTrip(ctx context.Context, upd TripUpdate) (Details, error) {
	id, err := sessionID(ctx)
	if err != nil {
		return Details{}, err
	}

	defer m.locks.lock(id)()

	return m.updateSession(ctx, id, upd.apply)
}

func (m *Manager) updateSession(ctx context.Context, id string, fn func(Details) Details) (Details, error) {
	details, err := m.sessions.GetSession(ctx, id)
	if err != nil {
		return Details{}, fmt.Errorf("get session %s: %w", id, err)
	}

	details = fn(details.clone())

	if err := m.sessions.SaveSession(ctx, id, details); err != nil {
		return Details{}, fmt.Errorf("save session %s: %w", id, err)
	}

	return details, nil
}

// Reset empties the session selections and drops any booking in progress.
func (m *Manager) Reset(ctx context.Context) error {
	id, err := sessionID(ctx)
	if err != nil {
		return err
	}

	defer m.locks.lock(id)()

	if _, err := m.sessions.GetSession(ctx, id); err != nil {
		return fmt.Errorf("get session %s: %w", id, err)
	}

	//nolint:exhaustruct
	if err := m.sessions.SaveSession(ctx, id, Details{}); err != nil {
		return fmt.Errorf("reset session %s: %w", id, err)
	}

	if err := m.flows.DeleteFlow(ctx, id); err != nil {
		return fmt.Errorf("drop flow of session %s: %w", id, err)
	}

	m.l.With("session", id).LogInfo("Booking session has been reset")

	return nil
}

func (m *Manager) Quote(vehicleID, pickupDate, dropoffDate string) (pricing.Quote, error) {
	vehicle, ok := m.catalog.Vehicle(vehicleID)
	if !ok {
		return pricing.Quote{}, fmt.Errorf("vehicle %q: %w", vehicleID, ErrVehicleNotFound)
	}

	return m.quoter.Quote(vehicle.DailyRate, pickupDate, dropoffDate), nil
}

// StartFlow opens the booking form of a vehicle. A form opened earlier in the
// same session is discarded with everything typed into it.
func (m *Manager) StartFlow(ctx context.Context, vehicleID string) (*FlowView, error) {
	id, err := sessionID(ctx)
	if err != nil {
		return nil, err
	}

	vehicle, ok := m.catalog.Vehicle(vehicleID)
	if !ok {
		return nil, fmt.Errorf("vehicle %q: %w", vehicleID, ErrVehicleNotFound)
	}

	if !vehicle.Available {
		return nil, fmt.Errorf("vehicle %q: %w", vehicleID, ErrVehicleUnavailable)
	}

	defer m.locks.lock(id)()

	details, err := m.sessions.GetSession(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get session %s: %w", id, err)
	}

	flow := NewFlow(vehicleID)

	if err := m.flows.SaveFlow(ctx, id, flow); err != nil {
		return nil, fmt.Errorf("save flow of session %s: %w", id, err)
	}

	return m.view(flow, vehicle, details), nil
}

func (m *Manager) Flow(ctx context.Context) (*FlowView, error) {
	id, err := sessionID(ctx)
	if err != nil {
		return nil, err
	}

	defer m.locks.lock(id)()

	flow, details, err := m.load(ctx, id)
	if err != nil {
		return nil, err
	}

	return m.viewOf(flow, details)
}

// UpdateFlowTrip writes trip step edits straight into the session and marks
// the form's vehicle as the selected one.
func (m *Manager) UpdateFlowTrip(ctx context.Context, upd TripUpdate) (*FlowView, error) {
	id, err := sessionID(ctx)
	if err != nil {
		return nil, err
	}

	defer m.locks.lock(id)()

	flow, _, err := m.load(ctx, id)
	if err != nil {
		return nil, err
	}

	details, err := m.updateSession(ctx, id, func(d Details) Details {
		d = upd.apply(d)
		carID := flow.VehicleID
		d.CarID = &carID

		return d
	})
	if err != nil {
		return nil, err
	}

	return m.viewOf(flow, details)
}

func (m *Manager) UpdateContact(ctx context.Context, upd ContactUpdate) (*FlowView, error) {
	return m.mutateFlow(ctx, func(f *Flow, _ Details) error {
		f.Contact = upd.apply(f.Contact)

		return nil
	})
}

func (m *Manager) UpdatePayment(ctx context.Context, upd PaymentUpdate) (*FlowView, error) {
	return m.mutateFlow(ctx, func(f *Flow, _ Details) error {
		f.Payment = upd.apply(f.Payment)

		return nil
	})
}

func (m *Manager) Next(ctx context.Context) (*FlowView, error) {
	return m.mutateFlow(ctx, func(f *Flow, details Details) error {
		return f.Next(m.guard, details)
	})
}

func (m *Manager) Back(ctx context.Context) (*FlowView, error) {
	return m.mutateFlow(ctx, func(f *Flow, _ Details) error {
		return f.Back()
	})
}

// Submit completes the reservation. No payment is captured; contact and
// payment data are dropped together with the flow.
func (m *Manager) Submit(ctx context.Context) error {
	id, err := sessionID(ctx)
	if err != nil {
		return err
	}

	defer m.locks.lock(id)()

	flow, details, err := m.load(ctx, id)
	if err != nil {
		return err
	}

	if err := flow.CanSubmit(m.guard, details); err != nil {
		return err
	}

	if err := m.flows.DeleteFlow(ctx, id); err != nil {
		return fmt.Errorf("drop flow of session %s: %w", id, err)
	}

	m.l.With("session", id).LogInfo("Booking of vehicle %s has been submitted", flow.VehicleID)

	return nil
}

func (m *Manager) Confirmation(ctx context.Context) (*Summary, error) {
	details, err := m.Details(ctx)
	if err != nil {
		return nil, err
	}

	summary, err := Summarize(ctx, details, m.catalog, m.idGenerator, m.quoter)
	if err != nil {
		return nil, err
	}

	return summary, nil
}

func (m *Manager) mutateFlow(ctx context.Context, fn func(f *Flow, details Details) error) (*FlowView, error) {
	id, err := sessionID(ctx)
	if err != nil {
		return nil, err
	}

	defer m.locks.lock(id)()

	flow, details, err := m.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := fn(&flow, details); err != nil {
		return nil, err
	}

	if err := m.flows.SaveFlow(ctx, id, flow); err != nil {
		return nil, fmt.Errorf("save flow of session %s: %w", id, err)
	}

	return m.viewOf(flow, details)
}

func (m *Manager) load(ctx context.Context, id string) (Flow, Details, error) {
	details, err := m.sessions.GetSession(ctx, id)
	if err != nil {
		return Flow{}, Details{}, fmt.Errorf("get session %s: %w", id, err)
	}

	flow, err := m.flows.GetFlow(ctx, id)
	if err != nil {
		return Flow{}, Details{}, fmt.Errorf("get flow of session %s: %w", id, err)
	}

	return flow, details, nil
}

func (m *Manager) viewOf(flow Flow, details Details) (*FlowView, error) {
	vehicle, ok := m.catalog.Vehicle(flow.VehicleID)
	if !ok {
		return nil, fmt.Errorf("vehicle %q of flow: %w", flow.VehicleID, errors.Join(ErrVehicleNotFound, ErrFlowNotFound))
	}

	return m.view(flow, vehicle, details), nil
}

func (m *Manager) view(flow Flow, vehicle catalog.Vehicle, details Details) *FlowView {
	return &FlowView{
		Step:    flow.Step,
		Vehicle: vehicle,
		Trip:    details,
		Contact: flow.Contact,
		Payment: flow.Payment.Masked(),
		Quote:   m.quoter.Quote(vehicle.DailyRate, details.PickupDate, details.DropoffDate).Display(),
	}
}
