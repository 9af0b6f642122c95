package catalog

import (
	"fmt"
)

// Catalog is the immutable fleet and location list of a running process.
// Accessors return copies so callers cannot mutate the shared records.
type Catalog struct {
	vehicles     []Vehicle
	vehicleIndex map[string]int
	locations    []Location
	locationIdx  map[string]int
}

func New(vehicles []Vehicle, locations []Location) (*Catalog, error) {
	inputErr := newInputError()

	c := &Catalog{
		vehicles:     make([]Vehicle, 0, len(vehicles)),
		vehicleIndex: make(map[string]int, len(vehicles)),
		locations:    make([]Location, 0, len(locations)),
		locationIdx:  make(map[string]int, len(locations)),
	}

	for _, v := range vehicles {
		field := fmt.Sprintf("vehicles[%s]", v.ID)

		if v.ID == "" {
			inputErr.addError("vehicles.id", "provide vehicle id")

			continue
		}

		if _, ok := c.vehicleIndex[v.ID]; ok {
			inputErr.addError(field, "duplicate vehicle id")

			continue
		}

		if v.DailyRate <= 0 {
			inputErr.addError(field, "dailyRate must be positive")
		}

		if v.Seats <= 0 {
			inputErr.addError(field, "seats must be positive")
		}

		if v.Transmission != TransmissionAutomatic && v.Transmission != TransmissionManual {
			inputErr.addError(field, fmt.Sprintf("unknown transmission %q", v.Transmission))
		}

		c.vehicleIndex[v.ID] = len(c.vehicles)
		c.vehicles = append(c.vehicles, cloneVehicle(v))
	}

	for _, loc := range locations {
		if loc.ID == "" {
			inputErr.addError("locations.id", "provide location id")

			continue
		}

		if _, ok := c.locationIdx[loc.ID]; ok {
			inputErr.addError(fmt.Sprintf("locations[%s]", loc.ID), "duplicate location id")

			continue
		}

		c.locationIdx[loc.ID] = len(c.locations)
		c.locations = append(c.locations, loc)
	}

	if inputErr.fieldsCount() > 0 {
		return nil, inputErr
	}

	return c, nil
}

func (c *Catalog) Vehicles() []Vehicle {
	out := make([]Vehicle, 0, len(c.vehicles))
	for _, v := range c.vehicles {
		out = append(out, cloneVehicle(v))
	}

	return out
}

func (c *Catalog) Vehicle(id string) (Vehicle, bool) {
	idx, ok := c.vehicleIndex[id]
	if !ok {
		return Vehicle{}, false
	}

	return cloneVehicle(c.vehicles[idx]), true
}

func (c *Catalog) Locations() []Location {
	return append([]Location(nil), c.locations...)
}

func (c *Catalog) Location(id string) (Location, bool) {
	idx, ok := c.locationIdx[id]
	if !ok {
		return Location{}, false
	}

	return c.locations[idx], true
}

// Featured returns the first n vehicles in catalog order.
func (c *Catalog) Featured(n int) []Vehicle {
	if n < 0 {
		n = 0
	}

	if n > len(c.vehicles) {
		n = len(c.vehicles)
	}

	out := make([]Vehicle, 0, n)
	for _, v := range c.vehicles[:n] {
		out = append(out, cloneVehicle(v))
	}

	return out
}

// Options lists the distinct filter values in first-seen catalog order.
func (c *Catalog) Options() FilterOptions {
	opts := FilterOptions{
		Types:         []string{},
		Transmissions: []string{},
		Features:      []string{},
	}

	seenTypes := make(map[string]struct{})
	seenTransmissions := make(map[string]struct{})
	seenFeatures := make(map[string]struct{})

	for _, v := range c.vehicles {
		opts.Types = appendUnique(opts.Types, seenTypes, v.Type)
		opts.Transmissions = appendUnique(opts.Transmissions, seenTransmissions, v.Transmission)

		for _, f := range v.Features {
			opts.Features = appendUnique(opts.Features, seenFeatures, f)
		}
	}

	return opts
}

func appendUnique(list []string, seen map[string]struct{}, v string) []string {
	if _, ok := seen[v]; ok {
		return list
	}

	seen[v] = struct{}{}

	return append(list, v)
}

func cloneVehicle(v Vehicle) Vehicle {
	v.Features = append([]string(nil), v.Features...)

	return v
}
