package repositories

import (
	"encoding/json"
	"fmt"
	"strings"

	"turakBack/internal/models"
)

// matchesAmenityFilter reports whether a listing offering `available`
// satisfies a filter requiring `required`. All required amenities must be
// present; comparison is case- and whitespace-insensitive.
func matchesAmenityFilter(required []string, available []string) bool {
	if len(required) == 0 {
		return true
	}
	availableSet := make(map[string]struct{}, len(available))
	for _, a := range available {
		availableSet[strings.ToLower(strings.TrimSpace(a))] = struct{}{}
	}
	for _, req := range required {
		if _, ok := availableSet[strings.ToLower(strings.TrimSpace(req))]; !ok {
			return false
		}
	}
	return true
}

// buildListingConditions renders the WHERE clauses for a filtered listing
// search. Conditions reference the listings table as "l". Placeholders are
// numbered starting at startArg; returns the clauses and the collected args.
// Amenities render as jsonb containment so the page query and the aggregate
// query filter the same set.
func buildListingConditions(filter models.ListingFilterRequest, startArg int) ([]string, []interface{}) {
	var conds []string
	var args []interface{}
	n := startArg

	conds = append(conds, "l.status = 'active'")

	if filter.CityID > 0 {
		conds = append(conds, fmt.Sprintf("l.city_id = $%d", n))
		args = append(args, filter.CityID)
		n++
	}
	if filter.PriceFrom > 0 {
		conds = append(conds, fmt.Sprintf("l.price >= $%d", n))
		args = append(args, filter.PriceFrom)
		n++
	}
	if filter.PriceTo > 0 {
		conds = append(conds, fmt.Sprintf("l.price <= $%d", n))
		args = append(args, filter.PriceTo)
		n++
	}
	if filter.MinRating > 0 {
		conds = append(conds, fmt.Sprintf("l.avg_rating >= $%d", n))
		args = append(args, filter.MinRating)
		n++
	}
	if filter.OnlyVacant {
		conds = append(conds, "l.available_slots > 0")
	}
	if len(filter.Amenities) > 0 {
		required, _ := json.Marshal(filter.Amenities)
		conds = append(conds, fmt.Sprintf("l.amenities @> $%d::jsonb", n))
		args = append(args, string(required))
		n++
	}
	return conds, args
}

// listingOrderBy maps the sorting option to an ORDER BY clause.
// 1 - by rating, 2 - price desc, 3 - price asc, 4 - newest.
func listingOrderBy(sorting int) string {
	switch sorting {
	case 1:
		return "l.avg_rating DESC, l.reviews_count DESC"
	case 2:
		return "l.price DESC"
	case 3:
		return "l.price ASC"
	default:
		return "l.created_at DESC"
	}
}

// MatchesFilter applies the same filter semantics in Go. The saved-search
// worker uses it to test freshly activated listings against stored filters
// without reissuing the search query per subscriber.
func MatchesFilter(listing models.Listing, filter models.ListingFilterRequest) bool {
	if listing.Status != "active" {
		return false
	}
	if filter.CityID > 0 && listing.CityID != filter.CityID {
		return false
	}
	if filter.PriceFrom > 0 && listing.Price < filter.PriceFrom {
		return false
	}
	if filter.PriceTo > 0 && listing.Price > filter.PriceTo {
		return false
	}
	if filter.MinRating > 0 && listing.AvgRating < filter.MinRating {
		return false
	}
	if filter.OnlyVacant && listing.AvailableSlots <= 0 {
		return false
	}
	return matchesAmenityFilter(filter.Amenities, listing.Amenities)
}
