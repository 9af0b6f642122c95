package catalog

const (
	TransmissionAutomatic = "Automatic"
	TransmissionManual    = "Manual"
)

type Vehicle struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Brand        string   `json:"brand"`
	Model        string   `json:"model"`
	Year         int      `json:"year"`
	Price        float64  `json:"price"`
	DailyRate    float64  `json:"dailyRate"`
	Image        string   `json:"image"`
	Type         string   `json:"type"`
	Seats        int      `json:"seats"`
	Transmission string   `json:"transmission"`
	FuelType     string   `json:"fuelType"`
	Features     []string `json:"features"`
	Available    bool     `json:"available"`
	Location     string   `json:"location"`
}

type Location struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
}

// Criteria narrows the vehicle list. Zero values disable the matching predicate.
type Criteria struct {
	Search       string
	Type         string
	Transmission string
	MinPrice     *float64
	MaxPrice     *float64
	Features     []string
}

type FilterOptions struct {
	Types         []string `json:"types"`
	Transmissions []string `json:"transmissions"`
	Features      []string `json:"features"`
}
