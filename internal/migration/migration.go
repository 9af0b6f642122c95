package migration

import (
	"fmt"

	"github.com/avstrong/rental/internal/catalog"
	"github.com/avstrong/rental/internal/logger"
)

// Up builds the catalog the process serves for its whole lifetime.
func Up(l *logger.Logger) (*catalog.Catalog, error) {
	c, err := catalog.New(Vehicles(), Locations())
	if err != nil {
		return nil, fmt.Errorf("build catalog: %w", err)
	}

	l.LogInfo("Catalog has been loaded: %d vehicles, %d locations", len(c.Vehicles()), len(c.Locations()))

	return c, nil
}

func image(id string) string {
	return fmt.Sprintf("https://images.pexels.com/photos/%s/pexels-photo-%s.jpeg?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=2", id, id)
}

//nolint:funlen,gomnd
func Vehicles() []catalog.Vehicle {
	return []catalog.Vehicle{
		{
			ID: "1", Name: "Tesla Model 3", Brand: "Tesla", Model: "Model 3", Year: 2023,
			Price: 42990, DailyRate: 89, Image: image("12090734"), Type: "Electric", Seats: 5,
			Transmission: catalog.TransmissionAutomatic, FuelType: "Electric",
			Features: []string{"Autopilot", "Bluetooth", "GPS", "Heated Seats"},
			Available: true, Location: "Los Angeles",
		},
		{
			ID: "2", Name: "BMW X5", Brand: "BMW", Model: "X5", Year: 2022,
			Price: 61600, DailyRate: 120, Image: image("3752169"), Type: "SUV", Seats: 7,
			Transmission: catalog.TransmissionAutomatic, FuelType: "Gasoline",
			Features: []string{"Bluetooth", "GPS", "Leather Seats", "Sunroof"},
			Available: true, Location: "New York",
		},
		{
			ID: "3", Name: "Ford Mustang", Brand: "Ford", Model: "Mustang GT", Year: 2022,
			Price: 38000, DailyRate: 95, Image: image("3311574"), Type: "Sports", Seats: 4,
			Transmission: catalog.TransmissionManual, FuelType: "Gasoline",
			Features: []string{"Bluetooth", "Backup Camera", "Convertible"},
			Available: true, Location: "Miami",
		},
		{
			ID: "4", Name: "Toyota Corolla", Brand: "Toyota", Model: "Corolla", Year: 2023,
			Price: 21550, DailyRate: 45, Image: image("11194874"), Type: "Economy", Seats: 5,
			Transmission: catalog.TransmissionAutomatic, FuelType: "Hybrid",
			Features: []string{"Bluetooth", "Backup Camera", "Apple CarPlay"},
			Available: true, Location: "Chicago",
		},
		{
			ID: "5", Name: "Mercedes-Benz E-Class", Brand: "Mercedes-Benz", Model: "E 350", Year: 2023,
			Price: 56750, DailyRate: 135, Image: image("112460"), Type: "Luxury", Seats: 5,
			Transmission: catalog.TransmissionAutomatic, FuelType: "Gasoline",
			Features: []string{"Bluetooth", "GPS", "Leather Seats", "Heated Seats"},
			Available: false, Location: "Las Vegas",
		},
		{
			ID: "6", Name: "Jeep Wrangler", Brand: "Jeep", Model: "Wrangler Rubicon", Year: 2021,
			Price: 44000, DailyRate: 99, Image: image("1149137"), Type: "SUV", Seats: 5,
			Transmission: catalog.TransmissionManual, FuelType: "Gasoline",
			Features: []string{"4x4", "Bluetooth", "Convertible"},
			Available: true, Location: "Seattle",
		},
		{
			ID: "7", Name: "Honda Civic", Brand: "Honda", Model: "Civic", Year: 2022,
			Price: 23950, DailyRate: 49, Image: image("919073"), Type: "Economy", Seats: 5,
			Transmission: catalog.TransmissionManual, FuelType: "Gasoline",
			Features: []string{"Bluetooth", "Apple CarPlay"},
			Available: true, Location: "Los Angeles",
		},
		{
			ID: "8", Name: "Chevrolet Suburban", Brand: "Chevrolet", Model: "Suburban", Year: 2022,
			Price: 57200, DailyRate: 140, Image: image("10394786"), Type: "Van", Seats: 8,
			Transmission: catalog.TransmissionAutomatic, FuelType: "Gasoline",
			Features: []string{"Bluetooth", "GPS", "Third Row Seating", "Backup Camera"},
			Available: true, Location: "New York",
		},
	}
}

func Locations() []catalog.Location {
	return []catalog.Location{
		{ID: "1", Name: "Los Angeles Downtown", Address: "123 Main St", City: "Los Angeles"},
		{ID: "2", Name: "LAX Airport", Address: "1 World Way", City: "Los Angeles"},
		{ID: "3", Name: "Manhattan", Address: "456 Park Ave", City: "New York"},
		{ID: "4", Name: "JFK Airport", Address: "JFK Airport", City: "New York"},
		{ID: "5", Name: "Downtown Chicago", Address: "789 Michigan Ave", City: "Chicago"},
		{ID: "6", Name: "Miami Beach", Address: "1000 Ocean Dr", City: "Miami"},
		{ID: "7", Name: "The Strip", Address: "3570 Las Vegas Blvd", City: "Las Vegas"},
		{ID: "8", Name: "Downtown Seattle", Address: "500 Pike St", City: "Seattle"},
	}
}
