package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAirportByCode(t *testing.T) {
	a, ok := AirportByCode("jfk")
	assert.True(t, ok)
	assert.Equal(t, "New York", a.City)

	_, ok = AirportByCode("ZZZ")
	assert.False(t, ok)
}

func TestAirportsByCity(t *testing.T) {
	matches := AirportsByCity("New York")
	assert.Len(t, matches, 3)
	// Sorted by IATA code
	assert.Equal(t, "EWR", matches[0].IATACode)
	assert.Equal(t, "JFK", matches[1].IATACode)
	assert.Equal(t, "LGA", matches[2].IATACode)

	assert.Empty(t, AirportsByCity("Atlantis"))
	assert.Empty(t, AirportsByCity("  "))
}

func TestPrimaryAirport(t *testing.T) {
	a, ok := PrimaryAirport("Chicago")
	assert.True(t, ok)
	assert.Equal(t, "ORD", a.IATACode)

	_, ok = PrimaryAirport("Nowhere")
	assert.False(t, ok)
}

func TestRegisterAirportTools(t *testing.T) {
	registry := NewRegistry()
	RegisterAirportTools(registry)

	defs := registry.Definitions()
	names := make([]string, 0, len(defs))
	for _, d := range defs {
		names = append(names, d.Name)
	}
	assert.Contains(t, names, "lookup_airport_by_code")
	assert.Contains(t, names, "lookup_airports_by_city")
	assert.Contains(t, names, "get_primary_airport")

	out, err := registry.Execute(context.Background(), "lookup_airport_by_code",
		map[string]interface{}{"iata_code": "LAX"})
	assert.NoError(t, err)
	assert.Contains(t, out, "Los Angeles")

	out, err = registry.Execute(context.Background(), "get_primary_airport",
		map[string]interface{}{"city_name": "Chicago"})
	assert.NoError(t, err)
	assert.Contains(t, out, "ORD")

	_, err = registry.Execute(context.Background(), "no_such_tool", nil)
	assert.Error(t, err)
}
