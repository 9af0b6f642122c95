package booking

import (
	"context"
	"fmt"

	"github.com/avstrong/rental/internal/catalog"
)

const ReferenceLength = 8

type catalogReader interface {
	Vehicle(id string) (catalog.Vehicle, bool)
	Location(id string) (catalog.Location, bool)
}

type referenceGenerator interface {
	Reference(ctx context.Context, length int) (string, error)
}

// Summarize resolves the session selections against the catalog. Any
// reference that does not resolve yields ErrMissingInformation; the returned
// reference is cosmetic and is neither stored nor checked for collisions.
func Summarize(
	ctx context.Context,
	details Details,
	cat catalogReader,
	refs referenceGenerator,
	q quoter,
) (*Summary, error) {
	if details.CarID == nil {
		return nil, fmt.Errorf("no vehicle selected: %w", ErrMissingInformation)
	}

	vehicle, ok := cat.Vehicle(*details.CarID)
	if !ok {
		return nil, fmt.Errorf("vehicle %q: %w", *details.CarID, ErrMissingInformation)
	}

	pickup, ok := cat.Location(details.PickupLocation)
	if !ok {
		return nil, fmt.Errorf("pickup location %q: %w", details.PickupLocation, ErrMissingInformation)
	}

	dropoff, ok := cat.Location(details.DropoffLocation)
	if !ok {
		return nil, fmt.Errorf("drop-off location %q: %w", details.DropoffLocation, ErrMissingInformation)
	}

	ref, err := refs.Reference(ctx, ReferenceLength)
	if err != nil {
		return nil, fmt.Errorf("generate booking reference: %w", err)
	}

	return &Summary{
		Reference:       ref,
		Vehicle:         vehicle,
		PickupLocation:  pickup,
		DropoffLocation: dropoff,
		PickupDate:      details.PickupDate,
		DropoffDate:     details.DropoffDate,
		Quote:           q.Quote(vehicle.DailyRate, details.PickupDate, details.DropoffDate),
	}, nil
}
