package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/yismin/EV-charging-tunisia/internal/domain"
)

// Client for the Open Charge Map POI API, used to ingest public charger
// data into the local directory. Requests are throttled to stay inside
// the anonymous tier limits even when a key is configured.
type OCMClient struct {
	session *http.Client
	limiter *rate.Limiter
	apiKey  string
	baseURL string
}

func NewOCMClient(apiKey string) *OCMClient {
	return &OCMClient{
		session: &http.Client{Timeout: 30 * time.Second},
		limiter: rate.NewLimiter(rate.Every(time.Second), 2),
		apiKey:  apiKey,
		baseURL: "https://api.openchargemap.io",
	}
}

// Subset of the Open Charge Map POI document. Field names follow the
// upstream PascalCase schema.
type ocmPOI struct {
	ID          int64 `json:"ID"`
	AddressInfo struct {
		Title     string  `json:"Title"`
		Town      string  `json:"Town"`
		Latitude  float64 `json:"Latitude"`
		Longitude float64 `json:"Longitude"`
	} `json:"AddressInfo"`
	UsageType *struct {
		Title string `json:"Title"`
	} `json:"UsageType"`
	StatusType *struct {
		IsOperational *bool `json:"IsOperational"`
	} `json:"StatusType"`
	Connections []struct {
		ConnectionType *struct {
			Title string `json:"Title"`
		} `json:"ConnectionType"`
	} `json:"Connections"`
}

// FetchCountry retrieves up to maxResults POIs for a country code and
// maps them into directory chargers. POIs without usable coordinates
// are skipped.
func (c *OCMClient) FetchCountry(
	ctx context.Context,
	countryCode string,
	maxResults int,
) ([]domain.Charger, error) {
	countryCode = strings.ToUpper(strings.TrimSpace(countryCode))
	if countryCode == "" {
		return nil, fmt.Errorf("%w: country code must not be empty", domain.ErrInvalidInput)
	}
	if maxResults <= 0 {
		return nil, fmt.Errorf("%w: max results must be positive", domain.ErrInvalidInput)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("fetch pois: wait for rate limiter: %w", err)
	}

	q := url.Values{}
	q.Set("countrycode", countryCode)
	q.Set("maxresults", strconv.Itoa(maxResults))
	q.Set("compact", "true")
	q.Set("verbose", "false")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v3/poi?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("fetch pois: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.session.Do(req)
	if err != nil {
		kind := domain.ProviderUnavailable
		if errors.Is(err, context.DeadlineExceeded) {
			kind = domain.ProviderTimeout
		}
		return nil, &domain.ProviderError{Provider: "openchargemap", Kind: kind, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, &domain.ProviderError{
			Provider: "openchargemap",
			Kind:     domain.ProviderUnavailable,
			Err:      fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
		}
	}

	var pois []ocmPOI
	if err := json.NewDecoder(resp.Body).Decode(&pois); err != nil {
		return nil, &domain.ProviderError{
			Provider: "openchargemap",
			Kind:     domain.ProviderMalformedResponse,
			Err:      fmt.Errorf("decode poi list: %w", err),
		}
	}

	chargers := make([]domain.Charger, 0, len(pois))
	for _, poi := range pois {
		ch, ok := poi.toCharger()
		if !ok {
			continue
		}
		chargers = append(chargers, ch)
	}

	return chargers, nil
}

func (p ocmPOI) toCharger() (domain.Charger, bool) {
	if p.ID == 0 {
		return domain.Charger{}, false
	}

	loc := domain.Coordinate{Lat: p.AddressInfo.Latitude, Lon: p.AddressInfo.Longitude}
	if err := loc.Validate(); err != nil || (loc.Lat == 0 && loc.Lon == 0) {
		return domain.Charger{}, false
	}

	name := strings.TrimSpace(p.AddressInfo.Title)
	if name == "" {
		name = fmt.Sprintf("Charger %d", p.ID)
	}

	usage := ""
	if p.UsageType != nil {
		usage = strings.TrimSpace(p.UsageType.Title)
	}

	status := domain.StatusUnknown
	if p.StatusType != nil && p.StatusType.IsOperational != nil {
		if *p.StatusType.IsOperational {
			status = domain.StatusWorking
		} else {
			status = domain.StatusBroken
		}
	}

	seen := map[domain.ConnectorType]struct{}{}
	var connectors []domain.ConnectorType
	for _, conn := range p.Connections {
		if conn.ConnectionType == nil {
			continue
		}
		ct, ok := mapConnector(conn.ConnectionType.Title)
		if !ok {
			continue
		}
		if _, dup := seen[ct]; dup {
			continue
		}
		seen[ct] = struct{}{}
		connectors = append(connectors, ct)
	}
	if len(connectors) == 0 {
		connectors = []domain.ConnectorType{domain.ConnectorType2}
	}

	return domain.Charger{
		ID:         p.ID,
		Name:       name,
		City:       strings.TrimSpace(p.AddressInfo.Town),
		Location:   loc,
		UsageType:  usage,
		Connectors: connectors,
		Status:     status,
	}, true
}

// mapConnector folds the free-text Open Charge Map connection titles
// onto the connector types the planner understands.
func mapConnector(title string) (domain.ConnectorType, bool) {
	t := strings.ToLower(title)
	switch {
	case strings.Contains(t, "ccs") || strings.Contains(t, "combo"):
		return domain.ConnectorCCS, true
	case strings.Contains(t, "chademo"):
		return domain.ConnectorCHAdeMO, true
	case strings.Contains(t, "tesla"):
		return domain.ConnectorTesla, true
	case strings.Contains(t, "type 2") || strings.Contains(t, "mennekes"):
		return domain.ConnectorType2, true
	case strings.Contains(t, "type 1") || strings.Contains(t, "j1772"):
		return domain.ConnectorType1, true
	default:
		return "", false
	}
}
