package receipt

import (
	"fmt"
	"io"

	"github.com/phpdave11/gofpdf"

	"github.com/avstrong/rental/internal/booking"
	"github.com/avstrong/rental/internal/pricing"
)

const (
	lineHeight = 8
	labelWidth = 55
	valueWidth = 120
)

// Render writes a one page PDF receipt of a confirmed booking.
func Render(w io.Writer, s *booking.Summary) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Booking "+s.Reference, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18) //nolint:gomnd
	pdf.CellFormat(0, 12, "Booking confirmation", "", 1, "L", false, 0, "") //nolint:gomnd

	pdf.SetFont("Helvetica", "", 11) //nolint:gomnd
	pdf.CellFormat(0, lineHeight, "Reference: "+s.Reference, "", 1, "L", false, 0, "")
	pdf.Ln(4) //nolint:gomnd

	rows := [][2]string{
		{"Vehicle", fmt.Sprintf("%s (%s %s, %d)", s.Vehicle.Name, s.Vehicle.Brand, s.Vehicle.Model, s.Vehicle.Year)},
		{"Pickup", fmt.Sprintf("%s, %s, %s", s.PickupLocation.Name, s.PickupLocation.Address, s.PickupLocation.City)},
		{"Drop-off", fmt.Sprintf("%s, %s, %s", s.DropoffLocation.Name, s.DropoffLocation.Address, s.DropoffLocation.City)},
		{"Pickup date", orDash(s.PickupDate)},
		{"Drop-off date", orDash(s.DropoffDate)},
		{"Duration", fmt.Sprintf("%d day(s)", s.Quote.DurationDays)},
	}

	for _, row := range rows {
		writeRow(pdf, row[0], row[1])
	}

	pdf.Ln(4) //nolint:gomnd

	q := s.Quote.Display()

	for _, row := range [][2]string{
		{fmt.Sprintf("Rental ($%s x %d)", q.DailyRate, q.DurationDays), "$" + q.Subtotal},
		{"Insurance", "$" + q.InsuranceFee},
		{"Service fee", "$" + q.ServiceFee},
	} {
		writeRow(pdf, row[0], row[1])
	}

	pdf.SetFont("Helvetica", "B", 12) //nolint:gomnd
	writeRow(pdf, "Total", "$"+pricing.FormatAmount(s.Quote.GrandTotal))

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write receipt %s: %w", s.Reference, err)
	}

	return nil
}

func writeRow(pdf *gofpdf.Fpdf, label, value string) {
	pdf.CellFormat(labelWidth, lineHeight, label, "B", 0, "L", false, 0, "")
	pdf.CellFormat(valueWidth, lineHeight, value, "B", 1, "L", false, 0, "")
}

func orDash(v string) string {
	if v == "" {
		return "-"
	}

	return v
}
