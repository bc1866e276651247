package handlers

import (
	"mime/multipart"
	"testing"
)

func TestParseListingPhotosArray(t *testing.T) {
	form := &multipart.Form{
		Value: map[string][]string{
			"photos": {`[{"name":"a.jpg","path":"/a.jpg","type":"jpg"},{"name":"b.jpg","path":"/b.jpg","type":"jpg"}]`},
		},
	}

	photos, ok, err := parseListingPhotos(form, "photos")
	if err != nil {
		t.Fatalf("parseListingPhotos returned error: %v", err)
	}
	if !ok {
		t.Fatalf("expected ok")
	}
	if len(photos) != 2 {
		t.Fatalf("expected 2 photos, got %d", len(photos))
	}
	if photos[0].Path != "/a.jpg" || photos[1].Path != "/b.jpg" {
		t.Fatalf("unexpected photo paths: %#v", photos)
	}
}

func TestParseListingPhotosSingleObject(t *testing.T) {
	form := &multipart.Form{
		Value: map[string][]string{
			"photos": {`{"name":"a.jpg","path":"/a.jpg","type":"jpg"}`},
		},
	}

	photos, ok, err := parseListingPhotos(form, "photos")
	if err != nil {
		t.Fatalf("parseListingPhotos returned error: %v", err)
	}
	if !ok || len(photos) != 1 {
		t.Fatalf("expected 1 photo, got %d (ok=%v)", len(photos), ok)
	}
}

func TestParseListingPhotosSkipsEmptyValues(t *testing.T) {
	form := &multipart.Form{
		Value: map[string][]string{
			"photos": {"", "null", "undefined"},
		},
	}

	photos, ok, err := parseListingPhotos(form, "photos")
	if err != nil {
		t.Fatalf("parseListingPhotos returned error: %v", err)
	}
	if !ok {
		t.Fatalf("expected ok since values were present")
	}
	if len(photos) != 0 {
		t.Fatalf("expected no photos, got %d", len(photos))
	}
}

func TestParseListingPhotosMissingKey(t *testing.T) {
	form := &multipart.Form{Value: map[string][]string{}}

	_, ok, err := parseListingPhotos(form, "photos")
	if err != nil {
		t.Fatalf("parseListingPhotos returned error: %v", err)
	}
	if ok {
		t.Fatalf("expected ok=false for missing key")
	}
}

func TestCollectImageFilesNilForm(t *testing.T) {
	if files := collectImageFiles(nil, "photos"); files != nil {
		t.Fatalf("expected nil for nil form, got %#v", files)
	}
}
