package geo

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func newTestHTTPClient(t *testing.T, server *httptest.Server) *http.Client {
	t.Helper()

	parsedURL, err := url.Parse(server.URL)
	if err != nil {
		t.Fatalf("failed to parse server url: %v", err)
	}

	proxyClient := server.Client()

	return &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			clone := req.Clone(req.Context())
			clone.URL.Scheme = parsedURL.Scheme
			clone.URL.Host = parsedURL.Host
			clone.Host = parsedURL.Host
			clone.RequestURI = ""
			return proxyClient.Do(clone)
		}),
	}
}

func TestCatalogClientNearbyPlaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/3.0/items") {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("q") != "pharmacy" {
			t.Fatalf("unexpected category: %q", q.Get("q"))
		}
		if q.Get("key") != "test-api-key" {
			t.Fatalf("unexpected api key: %q", q.Get("key"))
		}
		if q.Get("sort") != "distance" {
			t.Fatalf("unexpected sort: %q", q.Get("sort"))
		}
		if q.Get("point") == "" || q.Get("radius") != "500" {
			t.Fatalf("point/radius missing: %v", q)
		}

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"result":{"items":[
            {"name":"Europharma","address_name":"Abay 10","point":{"lon":76.9301,"lat":43.2401},"rubrics":[{"name":"Pharmacies"}]},
            {"name":"No Rubric","address_name":"","point":{"lon":76.9312,"lat":43.2422}}
        ]}}`)
	}))
	defer server.Close()

	client := NewCatalogClient(newTestHTTPClient(t, server), "test-api-key", "")
	places, err := client.NearbyPlaces(context.Background(), 76.93, 43.24, "pharmacy", 500, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(places) != 2 {
		t.Fatalf("expected 2 places, got %d", len(places))
	}
	if places[0].Name != "Europharma" || places[0].Category != "Pharmacies" {
		t.Fatalf("first place mismatch: %+v", places[0])
	}
	if places[1].Category != "pharmacy" {
		t.Fatalf("rubric fallback mismatch: %+v", places[1])
	}
	if places[0].DistM <= 0 || places[0].DistM > 1000 {
		t.Fatalf("distance out of range: %v", places[0].DistM)
	}
}

func TestCatalogClientNearbyPlacesEmptyResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewCatalogClient(newTestHTTPClient(t, server), "test-api-key", "")
	places, err := client.NearbyPlaces(context.Background(), 76.93, 43.24, "pharmacy", 500, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(places) != 0 {
		t.Fatalf("expected empty result, got %d", len(places))
	}
}

func TestCatalogClientNearbyPlacesValidation(t *testing.T) {
	client := NewCatalogClient(nil, "test-api-key", "")
	if _, err := client.NearbyPlaces(context.Background(), 76.93, 43.24, "  ", 500, 10); err == nil {
		t.Fatal("expected error for empty category")
	}
	if _, err := client.NearbyPlaces(context.Background(), 198.0, 43.24, "pharmacy", 500, 10); err == nil {
		t.Fatal("expected error for invalid longitude")
	}
}
