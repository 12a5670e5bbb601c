package feed_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/pvpc-tools/pvpc-exporter/pkg/dates"
	"github.com/pvpc-tools/pvpc-exporter/pkg/feed"
)

const sampleArchive = `{
  "PVPC": [
    {"Dia": "01/06/2023", "Hora": "00-01", "PCB": "80,00", "CM": "75,50"},
    {"Dia": "01/06/2023", "Hora": "01-02", "PCB": "120,00", "CM": "118,25"},
    {"Dia": "01/06/2023", "Hora": "02-03", "PCB": "200,00", "CM": "190,00"}
  ]
}`

func TestClient_FetchDay(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/archives/70/download_json", r.URL.Path)
		assert.Equal(t, "2023-06-01", r.URL.Query().Get("date"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleArchive))
	}))
	defer server.Close()

	c := feed.NewClient(server.URL)
	prices, err := c.FetchDay(context.Background(), dates.NewDate(2023, time.June, 1))
	require.NoError(t, err)

	require.Len(t, prices.PCB, 3)
	require.Len(t, prices.CM, 3)
	assert.InDelta(t, 0.08, prices.PCB[0], 1e-9)
	assert.InDelta(t, 0.12, prices.PCB[1], 1e-9)
	assert.InDelta(t, 0.20, prices.PCB[2], 1e-9)
	assert.InDelta(t, 0.0755, prices.CM[0], 1e-9)
	assert.InDelta(t, 0.11825, prices.CM[1], 1e-9)
}

func TestClient_FetchDay_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	c := feed.NewClient(server.URL)
	_, err := c.FetchDay(context.Background(), dates.NewDate(2023, time.June, 1))
	require.Error(t, err)
	assert.ErrorIs(t, err, feed.ErrFetch)
	assert.Contains(t, err.Error(), "2023-06-01")
}

func TestClient_FetchDay_MalformedPayload(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "<html>nope</html>"},
		{"empty archive", `{"PVPC": []}`},
		{"bad hour", `{"PVPC": [{"Hora": "midnight", "PCB": "80,00", "CM": "75,00"}]}`},
		{"bad price", `{"PVPC": [{"Hora": "00-01", "PCB": "cheap", "CM": "75,00"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			c := feed.NewClient(server.URL)
			_, err := c.FetchDay(context.Background(), dates.NewDate(2023, time.June, 1))
			assert.ErrorIs(t, err, feed.ErrFetch)
		})
	}
}
