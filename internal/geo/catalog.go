package geo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"encoding/json"

	"turakBack/internal/models"
)

const catalogBaseURL = "https://catalog.api.2gis.com"

// CatalogClient provides access to the 2GIS catalog API for point-of-interest
// queries around listing coordinates.
type CatalogClient struct {
	httpClient *http.Client
	apiKey     string
	regionID   string
}

func NewCatalogClient(httpClient *http.Client, apiKey, regionID string) *CatalogClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &CatalogClient{httpClient: httpClient, apiKey: apiKey, regionID: regionID}
}

// NearbyPlaces searches the catalog for places of the given category within
// radiusM meters of the point, closest first.
func (c *CatalogClient) NearbyPlaces(ctx context.Context, lon, lat float64, category string, radiusM, limit int) ([]models.Place, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, errors.New("places: empty category")
	}
	if lon < -180 || lon > 180 || lat < -90 || lat > 90 {
		return nil, fmt.Errorf("places: invalid coords lon=%.8f lat=%.8f", lon, lat)
	}
	if radiusM <= 0 {
		radiusM = 1000
	}
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	ctx, cancel := context.WithTimeout(ctx, 7*time.Second)
	defer cancel()

	params := url.Values{}
	params.Set("q", category)
	params.Set("key", c.apiKey)
	params.Set("point", fmt.Sprintf("%f,%f", lon, lat))
	params.Set("radius", fmt.Sprintf("%d", radiusM))
	params.Set("page_size", fmt.Sprintf("%d", limit))
	params.Set("sort", "distance")
	params.Set("fields", "items.point,items.address_name,items.rubrics")
	if c.regionID != "" {
		params.Set("region_id", c.regionID)
	}

	endpoint := fmt.Sprintf("%s/3.0/items?%s", catalogBaseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("places: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("places: do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		// catalog returns 404 for an empty result set
		return []models.Place{}, nil
	}
	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("places: http %s: %s", resp.Status, strings.TrimSpace(string(b)))
	}

	var payload struct {
		Result struct {
			Items []struct {
				Name        string `json:"name"`
				AddressName string `json:"address_name"`
				Point       struct {
					Lon float64 `json:"lon"`
					Lat float64 `json:"lat"`
				} `json:"point"`
				Rubrics []struct {
					Name string `json:"name"`
				} `json:"rubrics"`
			} `json:"items"`
		} `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("places: decode: %w", err)
	}

	places := make([]models.Place, 0, len(payload.Result.Items))
	for _, item := range payload.Result.Items {
		p := models.Place{
			Name:    item.Name,
			Address: item.AddressName,
			Lon:     item.Point.Lon,
			Lat:     item.Point.Lat,
			DistM:   haversineM(lat, lon, item.Point.Lat, item.Point.Lon),
		}
		if len(item.Rubrics) > 0 {
			p.Category = item.Rubrics[0].Name
		} else {
			p.Category = category
		}
		places = append(places, p)
	}
	return places, nil
}
