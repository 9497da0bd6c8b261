package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// AirportInfo describes one airport in the local directory
type AirportInfo struct {
	IATACode    string
	City        string
	Country     string
	AirportName string
	IsMajor     bool
}

// airports is the built-in directory of major airports, keyed by IATA code
var airports = map[string]AirportInfo{
	// United States
	"JFK": {"JFK", "New York", "USA", "John F. Kennedy International Airport", true},
	"LGA": {"LGA", "New York", "USA", "LaGuardia Airport", true},
	"EWR": {"EWR", "New York", "USA", "Newark Liberty International Airport", true},
	"LAX": {"LAX", "Los Angeles", "USA", "Los Angeles International Airport", true},
	"ORD": {"ORD", "Chicago", "USA", "O'Hare International Airport", true},
	"MIA": {"MIA", "Miami", "USA", "Miami International Airport", true},
	"SFO": {"SFO", "San Francisco", "USA", "San Francisco International Airport", true},
	"SEA": {"SEA", "Seattle", "USA", "Seattle-Tacoma International Airport", true},
	"LAS": {"LAS", "Las Vegas", "USA", "Harry Reid International Airport", true},
	"BOS": {"BOS", "Boston", "USA", "Logan International Airport", true},
	"IAD": {"IAD", "Washington DC", "USA", "Washington Dulles International Airport", true},
	"DCA": {"DCA", "Washington DC", "USA", "Ronald Reagan Washington National Airport", true},
	"ATL": {"ATL", "Atlanta", "USA", "Hartsfield-Jackson Atlanta International Airport", true},
	"DFW": {"DFW", "Dallas", "USA", "Dallas/Fort Worth International Airport", true},
	"DEN": {"DEN", "Denver", "USA", "Denver International Airport", true},
	"PHX": {"PHX", "Phoenix", "USA", "Phoenix Sky Harbor International Airport", true},

	// Europe
	"LHR": {"LHR", "London", "UK", "Heathrow Airport", true},
	"LGW": {"LGW", "London", "UK", "Gatwick Airport", true},
	"STN": {"STN", "London", "UK", "Stansted Airport", true},
	"CDG": {"CDG", "Paris", "France", "Charles de Gaulle Airport", true},
	"ORY": {"ORY", "Paris", "France", "Orly Airport", true},
	"FRA": {"FRA", "Frankfurt", "Germany", "Frankfurt Airport", true},
	"MUC": {"MUC", "Munich", "Germany", "Munich Airport", true},
	"AMS": {"AMS", "Amsterdam", "Netherlands", "Amsterdam Airport Schiphol", true},
	"MAD": {"MAD", "Madrid", "Spain", "Adolfo Suarez Madrid-Barajas Airport", true},
	"BCN": {"BCN", "Barcelona", "Spain", "Barcelona-El Prat Airport", true},
	"FCO": {"FCO", "Rome", "Italy", "Leonardo da Vinci-Fiumicino Airport", true},
	"MXP": {"MXP", "Milan", "Italy", "Milan Malpensa Airport", true},
	"IST": {"IST", "Istanbul", "Turkey", "Istanbul Airport", true},
	"ZRH": {"ZRH", "Zurich", "Switzerland", "Zurich Airport", true},

	// Middle East
	"DXB": {"DXB", "Dubai", "UAE", "Dubai International Airport", true},
	"DOH": {"DOH", "Doha", "Qatar", "Hamad International Airport", true},
	"AUH": {"AUH", "Abu Dhabi", "UAE", "Abu Dhabi International Airport", true},

	// Asia
	"SIN": {"SIN", "Singapore", "Singapore", "Singapore Changi Airport", true},
	"HKG": {"HKG", "Hong Kong", "Hong Kong", "Hong Kong International Airport", true},
	"NRT": {"NRT", "Tokyo", "Japan", "Narita International Airport", true},
	"HND": {"HND", "Tokyo", "Japan", "Haneda Airport", true},
	"ICN": {"ICN", "Seoul", "South Korea", "Incheon International Airport", true},
	"BKK": {"BKK", "Bangkok", "Thailand", "Suvarnabhumi Airport", true},
	"KUL": {"KUL", "Kuala Lumpur", "Malaysia", "Kuala Lumpur International Airport", true},
	"BOM": {"BOM", "Mumbai", "India", "Chhatrapati Shivaji Maharaj International Airport", true},
	"DEL": {"DEL", "Delhi", "India", "Indira Gandhi International Airport", true},
	"PEK": {"PEK", "Beijing", "China", "Beijing Capital International Airport", true},
	"PVG": {"PVG", "Shanghai", "China", "Shanghai Pudong International Airport", true},

	// Canada
	"YYZ": {"YYZ", "Toronto", "Canada", "Toronto Pearson International Airport", true},
	"YVR": {"YVR", "Vancouver", "Canada", "Vancouver International Airport", true},
	"YUL": {"YUL", "Montreal", "Canada", "Montreal-Pierre Elliott Trudeau International Airport", true},

	// Oceania
	"SYD": {"SYD", "Sydney", "Australia", "Sydney Kingsford Smith Airport", true},
	"MEL": {"MEL", "Melbourne", "Australia", "Melbourne Airport", true},
	"AKL": {"AKL", "Auckland", "New Zealand", "Auckland Airport", true},

	// Latin America
	"GRU": {"GRU", "Sao Paulo", "Brazil", "Sao Paulo/Guarulhos International Airport", true},
	"MEX": {"MEX", "Mexico City", "Mexico", "Mexico City International Airport", true},
	"EZE": {"EZE", "Buenos Aires", "Argentina", "Ministro Pistarini International Airport", true},
}

// AirportByCode returns the airport for an IATA code, or false when the
// code is not in the directory.
func AirportByCode(iataCode string) (AirportInfo, bool) {
	a, ok := airports[strings.ToUpper(strings.TrimSpace(iataCode))]
	return a, ok
}

// AirportsByCity returns all airports whose city contains the given name,
// case-insensitively, sorted by IATA code for stable output.
func AirportsByCity(city string) []AirportInfo {
	needle := strings.ToLower(strings.TrimSpace(city))
	if needle == "" {
		return nil
	}

	var result []AirportInfo
	for _, a := range airports {
		if strings.Contains(strings.ToLower(a.City), needle) {
			result = append(result, a)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].IATACode < result[j].IATACode })
	return result
}

// PrimaryAirport returns the main airport for a city: the first major
// airport found, or the first match when none is marked major.
func PrimaryAirport(city string) (AirportInfo, bool) {
	matches := AirportsByCity(city)
	if len(matches) == 0 {
		return AirportInfo{}, false
	}
	for _, a := range matches {
		if a.IsMajor {
			return a, true
		}
	}
	return matches[0], true
}

func formatAirportList(list []AirportInfo) string {
	if len(list) == 0 {
		return "No airports found."
	}
	var sb strings.Builder
	for _, a := range list {
		fmt.Fprintf(&sb, "- %s: %s, %s (%s)\n", a.IATACode, a.City, a.Country, a.AirportName)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func stringArg(args map[string]interface{}, key string) (string, error) {
	v, ok := args[key].(string)
	if !ok || strings.TrimSpace(v) == "" {
		return "", fmt.Errorf("missing argument: %s", key)
	}
	return v, nil
}

// RegisterAirportTools adds the airport lookup tools to the registry so
// the search agent can expose them to the LLM.
func RegisterAirportTools(registry *Registry) {
	registry.Register(Definition{
		Name:        "lookup_airport_by_code",
		Description: "Look up detailed airport information using its IATA code",
		Parameters: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"iata_code": map[string]interface{}{
					"type":        "string",
					"description": "3-letter IATA airport code (e.g., 'JFK', 'LAX')",
				},
			},
			"required": []string{"iata_code"},
		},
	}, func(ctx context.Context, args map[string]interface{}) (string, error) {
		code, err := stringArg(args, "iata_code")
		if err != nil {
			return "", err
		}
		a, ok := AirportByCode(code)
		if !ok {
			return fmt.Sprintf("Airport with code '%s' not found in directory.", code), nil
		}
		return fmt.Sprintf("Airport: %s\nIATA Code: %s\nCity: %s\nCountry: %s",
			a.AirportName, a.IATACode, a.City, a.Country), nil
	})

	registry.Register(Definition{
		Name:        "lookup_airports_by_city",
		Description: "Find all airports serving a specific city",
		Parameters: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"city_name": map[string]interface{}{
					"type":        "string",
					"description": "Name of the city (e.g., 'New York', 'London')",
				},
			},
			"required": []string{"city_name"},
		},
	}, func(ctx context.Context, args map[string]interface{}) (string, error) {
		city, err := stringArg(args, "city_name")
		if err != nil {
			return "", err
		}
		matches := AirportsByCity(city)
		if len(matches) == 0 {
			return fmt.Sprintf("No airports found for city '%s'.", city), nil
		}
		return formatAirportList(matches), nil
	})

	registry.Register(Definition{
		Name:        "get_primary_airport",
		Description: "Get the primary/main airport IATA code for a city. Use this when you need a single airport code for flight searches.",
		Parameters: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"city_name": map[string]interface{}{
					"type":        "string",
					"description": "Name of the city",
				},
			},
			"required": []string{"city_name"},
		},
	}, func(ctx context.Context, args map[string]interface{}) (string, error) {
		city, err := stringArg(args, "city_name")
		if err != nil {
			return "", err
		}
		a, ok := PrimaryAirport(city)
		if !ok {
			return fmt.Sprintf("No airport found for '%s'.", city), nil
		}
		return a.IATACode, nil
	})
}
