// Package model defines the domain types shared across the exporter: hourly
// price series, the on-disk day export artifact, and the pricing schemes.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/pvpc-tools/pvpc-exporter/pkg/dates"
)

// Scheme identifies one of the two pricing schemes published per day.
type Scheme string

const (
	// SchemePCB is the baseline tariff (Península, Canarias, Baleares).
	SchemePCB Scheme = "pcb"
	// SchemeCM is the alternative tariff (Ceuta, Melilla).
	SchemeCM Scheme = "cm"
)

// HourlyPrices maps hour-of-day (0-23) to price in EUR per kWh for one
// scheme on one day. A day normally has 24 entries but clock-change days
// carry 23 or 25; nothing here assumes a fixed count.
type HourlyPrices map[int]float64

// Hours returns the hours present in the series in ascending order. This is
// the iteration surface the formatter and artifact writer rely on.
func (p HourlyPrices) Hours() []int {
	hours := make([]int, 0, len(p))
	for h := range p {
		hours = append(hours, h)
	}
	sort.Ints(hours)
	return hours
}

// MarshalJSON encodes the series as an object with string hour keys in
// ascending numeric order, matching the artifact layout.
func (p HourlyPrices) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, h := range p.Hours() {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Quote(strconv.Itoa(h)))
		buf.WriteByte(':')
		price, err := json.Marshal(p[h])
		if err != nil {
			return nil, err
		}
		buf.Write(price)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an artifact object with string hour keys.
func (p *HourlyPrices) UnmarshalJSON(data []byte) error {
	var raw map[string]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := make(HourlyPrices, len(raw))
	for key, price := range raw {
		hour, err := strconv.Atoi(key)
		if err != nil {
			return fmt.Errorf("invalid hour key %q: %w", key, err)
		}
		out[hour] = price
	}
	*p = out
	return nil
}

// DayExport is the canonical artifact shape: one scheme's hourly prices for
// one day.
type DayExport struct {
	Day  dates.Date   `json:"day"`
	Data HourlyPrices `json:"data"`
}

// DayPrices holds both schemes as returned by the upstream feed for one day.
type DayPrices struct {
	Day dates.Date
	PCB HourlyPrices
	CM  HourlyPrices
}

// ByScheme returns the series for the given scheme.
func (d DayPrices) ByScheme(s Scheme) HourlyPrices {
	if s == SchemeCM {
		return d.CM
	}
	return d.PCB
}
