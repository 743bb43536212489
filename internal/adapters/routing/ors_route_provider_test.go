package routing

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/yismin/EV-charging-tunisia/internal/domain"
)

const stubDirections = `{"features":[{"geometry":{"coordinates":[[10.0,36.0],[10.0,36.5],[10.0,37.0]]},"properties":{"summary":{"distance":120000,"duration":5400}}}]}`

func stubProvider(t *testing.T, handler http.HandlerFunc) *ORSRouteProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p, err := NewORSRouteProvider("test-key")
	if err != nil {
		t.Fatal(err)
	}
	p.baseURL = srv.URL
	return p
}

func TestGetRouteDecodesDirections(t *testing.T) {
	var gotAuth string
	p := stubProvider(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, stubDirections)
	})

	route, err := p.GetRoute(context.Background(),
		domain.Coordinate{Lat: 36.0, Lon: 10.0}, domain.Coordinate{Lat: 37.0, Lon: 10.0})
	if err != nil {
		t.Fatal(err)
	}

	if gotAuth != "test-key" {
		t.Errorf("Authorization header = %q, want the api key", gotAuth)
	}
	if len(route.Legs) != 2 {
		t.Fatalf("got %d legs, want 2", len(route.Legs))
	}
	if got := route.TotalDistanceKm(); math.Abs(got-120) > 1e-9 {
		t.Errorf("total distance = %v km, want the 120 km summary", got)
	}
	if got := route.TotalDurationMinutes(); math.Abs(got-90) > 1e-9 {
		t.Errorf("total duration = %v min, want 90", got)
	}
}

func TestGetRouteRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	p := stubProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, stubDirections)
	})

	_, err := p.GetRoute(context.Background(),
		domain.Coordinate{Lat: 36.0, Lon: 10.0}, domain.Coordinate{Lat: 37.0, Lon: 10.0})
	if err != nil {
		t.Fatalf("expected retry to recover, got %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("got %d requests, want 2 (one failure, one retry)", calls.Load())
	}
}

func TestGetRouteDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	p := stubProvider(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "no route found", http.StatusNotFound)
	})

	_, err := p.GetRoute(context.Background(),
		domain.Coordinate{Lat: 36.0, Lon: 10.0}, domain.Coordinate{Lat: 37.0, Lon: 10.0})

	var pe *domain.ProviderError
	if !errors.As(err, &pe) || pe.Kind != domain.ProviderUnavailable {
		t.Fatalf("expected unavailable provider error, got %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("got %d requests, want 1 (404 is not retryable)", calls.Load())
	}
}

func TestGetRouteMalformedResponse(t *testing.T) {
	p := stubProvider(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"features": [`)
	})

	_, err := p.GetRoute(context.Background(),
		domain.Coordinate{Lat: 36.0, Lon: 10.0}, domain.Coordinate{Lat: 37.0, Lon: 10.0})

	var pe *domain.ProviderError
	if !errors.As(err, &pe) || pe.Kind != domain.ProviderMalformedResponse {
		t.Fatalf("expected malformed_response provider error, got %v", err)
	}
}

func TestGetRouteEmptyFeatures(t *testing.T) {
	p := stubProvider(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"features": []}`)
	})

	_, err := p.GetRoute(context.Background(),
		domain.Coordinate{Lat: 36.0, Lon: 10.0}, domain.Coordinate{Lat: 37.0, Lon: 10.0})

	var pe *domain.ProviderError
	if !errors.As(err, &pe) || pe.Kind != domain.ProviderMalformedResponse {
		t.Fatalf("expected malformed_response provider error, got %v", err)
	}
}

func TestGetRouteValidatesCoordinates(t *testing.T) {
	p := stubProvider(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("server must not be called for invalid coordinates")
	})

	_, err := p.GetRoute(context.Background(),
		domain.Coordinate{Lat: 99, Lon: 10.0}, domain.Coordinate{Lat: 37.0, Lon: 10.0})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
