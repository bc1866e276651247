package models

// Place is a point of interest returned by the catalog API around a listing.
type Place struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Address  string  `json:"address,omitempty"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	DistM    float64 `json:"dist_m"`
}

type NearbyPlacesResponse struct {
	ListingID int     `json:"listing_id"`
	Category  string  `json:"category"`
	RadiusM   int     `json:"radius_m"`
	Places    []Place `json:"places"`
	Cached    bool    `json:"cached"`
}
