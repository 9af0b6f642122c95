package booking

import (
	"fmt"
	"strings"

	"github.com/avstrong/rental/internal/catalog"
	"github.com/avstrong/rental/internal/pricing"
)

// Details is the trip selection shared by every view of one session.
// Empty strings and a nil CarID mean "not chosen yet".
type Details struct {
	PickupLocation  string  `json:"pickupLocation"`
	DropoffLocation string  `json:"dropoffLocation"`
	PickupDate      string  `json:"pickupDate"`
	DropoffDate     string  `json:"dropoffDate"`
	CarID           *string `json:"carId"`
}

// TripUpdate changes only the fields that are set.
type TripUpdate struct {
	PickupLocation  *string `json:"pickupLocation"`
	DropoffLocation *string `json:"dropoffLocation"`
	PickupDate      *string `json:"pickupDate"`
	DropoffDate     *string `json:"dropoffDate"`
}

func (u TripUpdate) apply(d Details) Details {
	if u.PickupLocation != nil {
		d.PickupLocation = *u.PickupLocation
	}

	if u.DropoffLocation != nil {
		d.DropoffLocation = *u.DropoffLocation
	}

	if u.PickupDate != nil {
		d.PickupDate = *u.PickupDate
	}

	if u.DropoffDate != nil {
		d.DropoffDate = *u.DropoffDate
	}

	return d
}

func (d Details) clone() Details {
	if d.CarID != nil {
		id := *d.CarID
		d.CarID = &id
	}

	return d
}

type ContactInfo struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName"  validate:"required"`
	Email     string `json:"email"     validate:"required,email"`
	Phone     string `json:"phone"     validate:"required"`
}

type ContactUpdate struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
}

func (u ContactUpdate) apply(c ContactInfo) ContactInfo {
	setIf(&c.FirstName, u.FirstName)
	setIf(&c.LastName, u.LastName)
	setIf(&c.Email, u.Email)
	setIf(&c.Phone, u.Phone)

	return c
}

type PaymentInfo struct {
	CardNumber string `json:"cardNumber" validate:"required"`
	CardHolder string `json:"cardHolder" validate:"required"`
	Expiry     string `json:"expiry"     validate:"required"`
	CVV        string `json:"cvv"        validate:"required"`
}

type PaymentUpdate struct {
	CardNumber *string `json:"cardNumber"`
	CardHolder *string `json:"cardHolder"`
	Expiry     *string `json:"expiry"`
	CVV        *string `json:"cvv"`
}

func (u PaymentUpdate) apply(p PaymentInfo) PaymentInfo {
	setIf(&p.CardNumber, u.CardNumber)
	setIf(&p.CardHolder, u.CardHolder)
	setIf(&p.Expiry, u.Expiry)
	setIf(&p.CVV, u.CVV)

	return p
}

// Masked hides the card number except its last four digits and the whole CVV.
func (p PaymentInfo) Masked() PaymentInfo {
	digits := strings.ReplaceAll(p.CardNumber, " ", "")
	if len(digits) > 4 { //nolint:gomnd
		p.CardNumber = strings.Repeat("*", len(digits)-4) + digits[len(digits)-4:]
	}

	if p.CVV != "" {
		p.CVV = strings.Repeat("*", len(p.CVV))
	}

	return p
}

func setIf(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

type FlowView struct {
	Step    Step              `json:"step"`
	Vehicle catalog.Vehicle   `json:"vehicle"`
	Trip    Details           `json:"trip"`
	Contact ContactInfo       `json:"contact"`
	Payment PaymentInfo       `json:"payment"`
	Quote   pricing.QuoteView `json:"quote"`
}

type Summary struct {
	Reference       string           `json:"reference"`
	Vehicle         catalog.Vehicle  `json:"vehicle"`
	PickupLocation  catalog.Location `json:"pickupLocation"`
	DropoffLocation catalog.Location `json:"dropoffLocation"`
	PickupDate      string           `json:"pickupDate"`
	DropoffDate     string           `json:"dropoffDate"`
	Quote           pricing.Quote    `json:"quote"`
}

func (s *Summary) String() string {
	return fmt.Sprintf("%s: %s, %s -> %s, %d day(s)",
		s.Reference, s.Vehicle.Name, s.PickupLocation.Name, s.DropoffLocation.Name, s.Quote.DurationDays)
}
