package agents

import (
	"sort"
	"strings"

	"github.com/shahidain/air-ticket-booking-ai-agent/models"
)

// SortPreference identifies how the user wants flight options ranked
type SortPreference struct {
	Type        string
	Description string
}

// Preference types, in detection priority order
const (
	SortPriceLow      = "price_low"
	SortPriceHigh     = "price_high"
	SortTimeEarly     = "time_early"
	SortTimeLate      = "time_late"
	SortDurationShort = "duration_short"
	SortDirect        = "direct"
	SortAirline       = "airline"
	SortBestOverall   = "best_overall"
)

// keywordSets drive preference detection. The first matching category
// wins; scanning order is fixed.
var keywordSets = []struct {
	pref     SortPreference
	keywords []string
}{
	{SortPreference{SortPriceLow, "Cheapest flights first"},
		[]string{"cheapest", "cheap", "lowest price", "budget", "affordable", "inexpensive"}},
	{SortPreference{SortPriceHigh, "Premium flights first"},
		[]string{"expensive", "premium", "luxury", "first class", "business class"}},
	{SortPreference{SortTimeEarly, "Early departure times first"},
		[]string{"early morning", "early", "first flight", "morning"}},
	{SortPreference{SortTimeLate, "Later departure times first"},
		[]string{"late", "evening", "night", "after", "pm"}},
	{SortPreference{SortDurationShort, "Shortest flights first"},
		[]string{"fastest", "quickest", "shortest", "quick", "fast"}},
	{SortPreference{SortDirect, "Direct flights first"},
		[]string{"direct", "non-stop", "nonstop", "no stops", "no connections"}},
	{SortPreference{SortAirline, "Sorted by airline name"},
		[]string{"american", "delta", "united", "lufthansa", "emirates", "qatar", "singapore", "british airways"}},
	{SortPreference{SortBestOverall, "Best overall value first"},
		[]string{"best", "recommended", "balanced", "optimal"}},
}

// DetectSortPreference scans the request text for ranking keywords.
// Defaults to cheapest-first when nothing matches.
func DetectSortPreference(userPrompt string) SortPreference {
	prompt := strings.ToLower(userPrompt)

	for _, set := range keywordSets {
		for _, kw := range set.keywords {
			if strings.Contains(prompt, kw) {
				return set.pref
			}
		}
	}

	return SortPreference{SortPriceLow, "Cheapest flights first (default)"}
}

// SortOffers orders offers according to the preference. The sort is
// stable: ties keep their original relative order. The input slice is
// not modified.
func SortOffers(offers []models.FlightOffer, pref SortPreference) []models.FlightOffer {
	sorted := make([]models.FlightOffer, len(offers))
	copy(sorted, offers)
	if len(sorted) == 0 {
		return sorted
	}

	switch pref.Type {
	case SortPriceHigh:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Price > sorted[j].Price })
	case SortTimeEarly:
		// Zero-padded HH:MM compares correctly as a string
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].DepartureClock() < sorted[j].DepartureClock() })
	case SortTimeLate:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].DepartureClock() > sorted[j].DepartureClock() })
	case SortDurationShort:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].DurationMinutes() < sorted[j].DurationMinutes() })
	case SortDirect:
		sort.SliceStable(sorted, func(i, j int) bool {
			if sorted[i].Stops != sorted[j].Stops {
				return sorted[i].Stops < sorted[j].Stops
			}
			return sorted[i].Price < sorted[j].Price
		})
	case SortAirline:
		sort.SliceStable(sorted, func(i, j int) bool {
			return strings.ToLower(sorted[i].CarrierNames()) < strings.ToLower(sorted[j].CarrierNames())
		})
	case SortBestOverall:
		scores := overallScores(sorted)
		sort.SliceStable(sorted, func(i, j int) bool { return scores[sorted[i].ID] < scores[sorted[j].ID] })
	default: // SortPriceLow
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Price < sorted[j].Price })
	}

	return sorted
}

// overallScores computes the blended score per offer: price and duration
// normalized to 0-100 across the candidate set, plus 25 points per stop
// capped at 100, weighted 0.5/0.3/0.2. Lower is better. When every
// candidate shares the same price or duration that dimension scores 0
// for all of them, so a uniform set never divides by zero.
func overallScores(offers []models.FlightOffer) map[string]float64 {
	minPrice, maxPrice := offers[0].Price, offers[0].Price
	minDur, maxDur := offers[0].DurationMinutes(), offers[0].DurationMinutes()

	for _, o := range offers[1:] {
		if o.Price < minPrice {
			minPrice = o.Price
		}
		if o.Price > maxPrice {
			maxPrice = o.Price
		}
		d := o.DurationMinutes()
		if d < minDur {
			minDur = d
		}
		if d > maxDur {
			maxDur = d
		}
	}

	scores := make(map[string]float64, len(offers))
	for _, o := range offers {
		priceScore := 0.0
		if maxPrice > minPrice {
			priceScore = (o.Price - minPrice) / (maxPrice - minPrice) * 100
		}

		durScore := 0.0
		if maxDur > minDur {
			durScore = float64(o.DurationMinutes()-minDur) / float64(maxDur-minDur) * 100
		}

		stopScore := float64(o.Stops * 25)
		if stopScore > 100 {
			stopScore = 100
		}

		scores[o.ID] = priceScore*0.5 + durScore*0.3 + stopScore*0.2
	}

	return scores
}
