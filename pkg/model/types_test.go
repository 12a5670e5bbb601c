package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/pvpc-tools/pvpc-exporter/pkg/dates"
	"github.com/pvpc-tools/pvpc-exporter/pkg/model"
)

func TestHourlyPrices_HoursAscending(t *testing.T) {
	p := model.HourlyPrices{10: 0.1, 2: 0.2, 0: 0.3, 23: 0.4}
	assert.Equal(t, []int{0, 2, 10, 23}, p.Hours())
}

func TestHourlyPrices_MarshalOrder(t *testing.T) {
	p := model.HourlyPrices{10: 0.1, 2: 0.2}
	data, err := json.Marshal(p)
	require.NoError(t, err)
	// hour 10 must come after hour 2 despite "10" < "2" lexically
	assert.Equal(t, `{"2":0.2,"10":0.1}`, string(data))
}

func TestDayExport_RoundTrip(t *testing.T) {
	for _, count := range []int{1, 23, 24, 25} {
		series := make(model.HourlyPrices, count)
		for h := 0; h < count; h++ {
			series[h] = float64(h) * 0.01
		}
		export := model.DayExport{
			Day:  dates.NewDate(2023, time.June, 1),
			Data: series,
		}

		data, err := json.Marshal(export)
		require.NoError(t, err)

		var parsed model.DayExport
		require.NoError(t, json.Unmarshal(data, &parsed))
		assert.Equal(t, export, parsed, "round trip with %d entries", count)
	}
}

func TestHourlyPrices_UnmarshalInvalidKey(t *testing.T) {
	var p model.HourlyPrices
	err := json.Unmarshal([]byte(`{"noon":0.1}`), &p)
	assert.Error(t, err)
}

func TestDayPrices_ByScheme(t *testing.T) {
	prices := model.DayPrices{
		PCB: model.HourlyPrices{0: 0.1},
		CM:  model.HourlyPrices{0: 0.2},
	}
	assert.Equal(t, prices.PCB, prices.ByScheme(model.SchemePCB))
	assert.Equal(t, prices.CM, prices.ByScheme(model.SchemeCM))
}
