// Package feed fetches the daily PVPC price archive from the ESIOS API and
// decodes it into per-scheme hourly series.
package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pvpc-tools/pvpc-exporter/pkg/dates"
	"github.com/pvpc-tools/pvpc-exporter/pkg/model"
)

// ErrFetch indicates the upstream archive could not be retrieved or decoded.
var ErrFetch = errors.New("upstream fetch failed")

const defaultBaseURL = "https://api.esios.ree.es"

// Client fetches PVPC day archives over HTTP.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a feed client. An empty baseURL selects the public ESIOS
// endpoint.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// archiveResponse mirrors the ESIOS archive 70 JSON download. Prices arrive
// as comma-decimal strings in EUR/MWh.
type archiveResponse struct {
	PVPC []archiveRow `json:"PVPC"`
}

type archiveRow struct {
	Dia  string `json:"Dia"`
	Hora string `json:"Hora"`
	PCB  string `json:"PCB"`
	CM   string `json:"CM"`
}

// FetchDay downloads and decodes both pricing schemes for one day. Any
// transport, status or decode failure wraps ErrFetch; there is no retry.
func (c *Client) FetchDay(ctx context.Context, day dates.Date) (*model.DayPrices, error) {
	endpoint := fmt.Sprintf("%s/archives/70/download_json?%s",
		c.baseURL, url.Values{"date": {day.ISO()}}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request for %s: %v", ErrFetch, day, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFetch, day, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s: status %d", ErrFetch, day, resp.StatusCode)
	}

	var archive archiveResponse
	if err := json.NewDecoder(resp.Body).Decode(&archive); err != nil {
		return nil, fmt.Errorf("%w: %s: decode response: %v", ErrFetch, day, err)
	}
	if len(archive.PVPC) == 0 {
		return nil, fmt.Errorf("%w: %s: empty archive", ErrFetch, day)
	}

	prices := &model.DayPrices{
		Day: day,
		PCB: make(model.HourlyPrices, len(archive.PVPC)),
		CM:  make(model.HourlyPrices, len(archive.PVPC)),
	}

	for _, row := range archive.PVPC {
		hour, err := parseHour(row.Hora)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrFetch, day, err)
		}

		pcb, err := parsePrice(row.PCB)
		if err != nil {
			return nil, fmt.Errorf("%w: %s hour %d: %v", ErrFetch, day, hour, err)
		}
		cm, err := parsePrice(row.CM)
		if err != nil {
			return nil, fmt.Errorf("%w: %s hour %d: %v", ErrFetch, day, hour, err)
		}

		prices.PCB[hour] = pcb
		prices.CM[hour] = cm
	}

	return prices, nil
}

// parseHour extracts the starting hour from an interval label like "00-01".
func parseHour(label string) (int, error) {
	start, _, ok := strings.Cut(label, "-")
	if !ok {
		return 0, fmt.Errorf("invalid hour label %q", label)
	}
	hour, err := strconv.Atoi(start)
	if err != nil || hour < 0 || hour > 24 {
		return 0, fmt.Errorf("invalid hour label %q", label)
	}
	return hour, nil
}

// parsePrice converts a comma-decimal EUR/MWh string to EUR/kWh.
func parsePrice(raw string) (float64, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	perMWh, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q", raw)
	}
	return perMWh / 1000, nil
}
