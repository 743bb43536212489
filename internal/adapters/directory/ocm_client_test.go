package directory

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/yismin/EV-charging-tunisia/internal/domain"
)

const stubPOIs = `[
  {
    "ID": 201417,
    "AddressInfo": {"Title": "Hotel Laico Tunis", "Town": "Tunis", "Latitude": 36.8008, "Longitude": 10.1849},
    "UsageType": {"Title": "Public - Pay At Location"},
    "StatusType": {"IsOperational": true},
    "Connections": [
      {"ConnectionType": {"Title": "Type 2 (Socket Only)"}},
      {"ConnectionType": {"Title": "CCS (Type 2)"}},
      {"ConnectionType": {"Title": "Type 2 (Tethered Connector)"}}
    ]
  },
  {
    "ID": 188245,
    "AddressInfo": {"Title": "", "Town": "Sousse", "Latitude": 35.8256, "Longitude": 10.6412},
    "StatusType": {"IsOperational": false},
    "Connections": []
  },
  {
    "ID": 300001,
    "AddressInfo": {"Title": "Null Island Charger", "Latitude": 0, "Longitude": 0}
  }
]`

func stubClient(t *testing.T, handler http.HandlerFunc) *OCMClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewOCMClient("ocm-key")
	c.baseURL = srv.URL
	return c
}

func TestFetchCountryMapsPOIs(t *testing.T) {
	var gotQuery, gotKey string
	c := stubClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		gotKey = r.Header.Get("X-API-Key")
		fmt.Fprint(w, stubPOIs)
	})

	chargers, err := c.FetchCountry(context.Background(), "tn", 100)
	if err != nil {
		t.Fatal(err)
	}

	if gotKey != "ocm-key" {
		t.Errorf("X-API-Key = %q, want the configured key", gotKey)
	}
	params := strings.Split(gotQuery, "&")
	for _, want := range []string{"countrycode=TN", "maxresults=100", "compact=true"} {
		if !slices.Contains(params, want) {
			t.Errorf("query %q is missing %q", gotQuery, want)
		}
	}

	// The null island POI is dropped.
	if len(chargers) != 2 {
		t.Fatalf("got %d chargers, want 2", len(chargers))
	}

	first := chargers[0]
	if first.ID != 201417 || first.Name != "Hotel Laico Tunis" || first.City != "Tunis" {
		t.Errorf("unexpected first charger: %+v", first)
	}
	if first.Status != domain.StatusWorking {
		t.Errorf("operational poi status = %q, want working", first.Status)
	}
	if first.UsageType != "Public - Pay At Location" {
		t.Errorf("usage type = %q", first.UsageType)
	}
	wantConns := []domain.ConnectorType{domain.ConnectorType2, domain.ConnectorCCS}
	if !reflect.DeepEqual(first.Connectors, wantConns) {
		t.Errorf("connectors = %v, want %v (deduplicated, in poi order)", first.Connectors, wantConns)
	}

	second := chargers[1]
	if second.Name != "Charger 188245" {
		t.Errorf("untitled poi name = %q, want generated fallback", second.Name)
	}
	if second.Status != domain.StatusBroken {
		t.Errorf("non-operational poi status = %q, want broken", second.Status)
	}
	if !reflect.DeepEqual(second.Connectors, []domain.ConnectorType{domain.ConnectorType2}) {
		t.Errorf("connectionless poi connectors = %v, want the Type 2 default", second.Connectors)
	}
}

func TestFetchCountryUpstreamFailure(t *testing.T) {
	c := stubClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "service down", http.StatusBadGateway)
	})

	_, err := c.FetchCountry(context.Background(), "TN", 10)

	var pe *domain.ProviderError
	if !errors.As(err, &pe) || pe.Provider != "openchargemap" {
		t.Fatalf("expected an openchargemap provider error, got %v", err)
	}
}

func TestFetchCountryValidatesInput(t *testing.T) {
	c := NewOCMClient("")
	if _, err := c.FetchCountry(context.Background(), "  ", 10); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("blank country: got %v, want ErrInvalidInput", err)
	}
	if _, err := c.FetchCountry(context.Background(), "TN", 0); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("zero max results: got %v, want ErrInvalidInput", err)
	}
}

func TestMapConnector(t *testing.T) {
	cases := []struct {
		title string
		want  domain.ConnectorType
		ok    bool
	}{
		{"Type 2 (Socket Only)", domain.ConnectorType2, true},
		{"Mennekes", domain.ConnectorType2, true},
		{"CCS (Type 2)", domain.ConnectorCCS, true},
		{"CHAdeMO", domain.ConnectorCHAdeMO, true},
		{"Tesla Supercharger", domain.ConnectorTesla, true},
		{"Type 1 (J1772)", domain.ConnectorType1, true},
		{"Europlug 2-Pin (CEE 7/16)", "", false},
	}
	for _, tc := range cases {
		got, ok := mapConnector(tc.title)
		if got != tc.want || ok != tc.ok {
			t.Errorf("mapConnector(%q) = (%q, %v), want (%q, %v)", tc.title, got, ok, tc.want, tc.ok)
		}
	}
}
