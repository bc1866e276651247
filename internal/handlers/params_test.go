package handlers

import (
	"net/http/httptest"
	"testing"
)

func TestGetParamColonPrefix(t *testing.T) {
	r := httptest.NewRequest("GET", "/listing/5?:id=5", nil)
	if got := getParam(r, "id"); got != "5" {
		t.Errorf("expected 5, got %q", got)
	}
}

func TestGetParamPlainQuery(t *testing.T) {
	r := httptest.NewRequest("GET", "/listing?id=7", nil)
	if got := getParam(r, "id"); got != "7" {
		t.Errorf("expected 7, got %q", got)
	}
}

func TestPaginationDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/listing/search", nil)
	page, limit := pagination(r, 20)
	if page != 1 || limit != 20 {
		t.Errorf("expected defaults 1/20, got %d/%d", page, limit)
	}
}

func TestPaginationCapsLimit(t *testing.T) {
	r := httptest.NewRequest("GET", "/listing/search?page=3&limit=500", nil)
	page, limit := pagination(r, 20)
	if page != 3 {
		t.Errorf("expected page 3, got %d", page)
	}
	if limit != 20 {
		t.Errorf("expected limit capped to default, got %d", limit)
	}
}
