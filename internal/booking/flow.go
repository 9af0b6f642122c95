package booking

import (
	"encoding/json"
	"fmt"
)

type Step int

const (
	StepTripDetails Step = iota + 1
	StepContactInfo
	StepPaymentInfo
)

var stepNames = map[Step]string{
	StepTripDetails: "trip_details",
	StepContactInfo: "contact_info",
	StepPaymentInfo: "payment_info",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}

	return fmt.Sprintf("step(%d)", int(s))
}

func (s Step) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String()) //nolint:wrapcheck
}

func (s *Step) UnmarshalJSON(data []byte) error {
	var name string

	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("decode step: %w", err)
	}

	for step, stepName := range stepNames {
		if stepName == name {
			*s = step

			return nil
		}
	}

	return fmt.Errorf("unknown step %q: %w", name, ErrInvalidTransition)
}

// Guard decides whether the current step may be left forward.
type Guard interface {
	Check(step Step, trip Details, f Flow) error
}

// PermissiveGuard lets every forward move through. Required fields are left
// to the form that renders the step.
type PermissiveGuard struct{}

func (PermissiveGuard) Check(Step, Details, Flow) error { return nil }

// StrictGuard validates the fields of the step being left.
type StrictGuard struct{}

func (StrictGuard) Check(step Step, trip Details, f Flow) error {
	switch step {
	case StepTripDetails:
		return validateStruct("trip", tripFields{
			PickupLocation:  trip.PickupLocation,
			DropoffLocation: trip.DropoffLocation,
			PickupDate:      trip.PickupDate,
			DropoffDate:     trip.DropoffDate,
		})
	case StepContactInfo:
		return validateStruct("contact", f.Contact)
	case StepPaymentInfo:
		return validateStruct("payment", f.Payment)
	default:
		return fmt.Errorf("%v: %w", step, ErrInvalidTransition)
	}
}

// Flow is the per-form state of one reservation: the current step and what
// was typed into the contact and payment steps.
type Flow struct {
	VehicleID string      `json:"vehicleId"`
	Step      Step        `json:"step"`
	Contact   ContactInfo `json:"contact"`
	Payment   PaymentInfo `json:"payment"`
}

func NewFlow(vehicleID string) Flow {
	//nolint:exhaustruct
	return Flow{
		VehicleID: vehicleID,
		Step:      StepTripDetails,
	}
}

func (f *Flow) Next(guard Guard, trip Details) error {
	if f.Step != StepTripDetails && f.Step != StepContactInfo {
		return fmt.Errorf("next from %v: %w", f.Step, ErrInvalidTransition)
	}

	if err := guard.Check(f.Step, trip, *f); err != nil {
		return err
	}

	f.Step++

	return nil
}

// Back never clears what was entered on the step being left.
func (f *Flow) Back() error {
	if f.Step != StepContactInfo && f.Step != StepPaymentInfo {
		return fmt.Errorf("back from %v: %w", f.Step, ErrInvalidTransition)
	}

	f.Step--

	return nil
}

func (f *Flow) CanSubmit(guard Guard, trip Details) error {
	if f.Step != StepPaymentInfo {
		return fmt.Errorf("submit from %v: %w", f.Step, ErrInvalidTransition)
	}

	return guard.Check(f.Step, trip, *f)
}
