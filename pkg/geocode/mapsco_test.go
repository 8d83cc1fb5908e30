package geocode

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newMapsCo(t *testing.T, handler http.HandlerFunc) *MapsCo {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewMapsCoWithClient(srv.Client(), srv.URL, "test-key")
}

func TestGeocode(t *testing.T) {
	m := newMapsCo(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("city"); got != "portland" {
			t.Errorf("city param = %q, want lowercased trimmed input", got)
		}
		if got := r.URL.Query().Get("api_key"); got != "test-key" {
			t.Errorf("api_key param = %q", got)
		}
		fmt.Fprint(w, `[{"lat": "45.5202471", "lon": "-122.6741949"}, {"lat": "43.66", "lon": "-70.25"}]`)
	})

	p, err := m.Geocode(context.Background(), "  Portland ")
	if err != nil {
		t.Fatal(err)
	}
	if p.Lat != 45.5202471 || p.Lon != -122.6741949 {
		t.Errorf("point = %+v, want first result", p)
	}
}

func TestGeocodeNoMatch(t *testing.T) {
	m := newMapsCo(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	})
	_, err := m.Geocode(context.Background(), "Atlantis")
	if !errors.Is(err, ErrNoMatch) {
		t.Fatalf("err = %v, want ErrNoMatch", err)
	}
}

func TestGeocodeEmptyCity(t *testing.T) {
	m := NewMapsCo("key")
	if _, err := m.Geocode(context.Background(), "   "); !errors.Is(err, ErrNoMatch) {
		t.Fatalf("err = %v, want ErrNoMatch", err)
	}
}

func TestGeocodeBadResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `<html>`},
		{"unparseable latitude", `[{"lat": "north", "lon": "-70.25"}]`},
		{"out of range", `[{"lat": "123.0", "lon": "-70.25"}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMapsCo(t, func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, tt.body)
			})
			_, err := m.Geocode(context.Background(), "portland")
			if !errors.Is(err, ErrBadResponse) {
				t.Fatalf("err = %v, want ErrBadResponse", err)
			}
		})
	}
}

func TestGeocodeClientErrorNotRetried(t *testing.T) {
	calls := 0
	m := newMapsCo(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "forbidden", http.StatusForbidden)
	})
	_, err := m.Geocode(context.Background(), "portland")
	if !errors.Is(err, ErrBadResponse) {
		t.Fatalf("err = %v, want ErrBadResponse", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want no retry on 4xx", calls)
	}
}
