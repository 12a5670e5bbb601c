// Package telegram formats day exports into localized Telegram messages and
// delivers them through the Bot API.
package telegram

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pvpc-tools/pvpc-exporter/pkg/dates"
	"github.com/pvpc-tools/pvpc-exporter/pkg/model"
)

// Spanish day and month names for the message header. Weekdays are indexed
// with Monday as 0.
var (
	weekdays = [7]string{
		"lunes",
		"martes",
		"miércoles",
		"jueves",
		"viernes",
		"sábado",
		"domingo",
	}
	months = [12]string{
		"enero",
		"febrero",
		"marzo",
		"abril",
		"mayo",
		"junio",
		"julio",
		"agosto",
		"septiembre",
		"octubre",
		"noviembre",
		"diciembre",
	}
)

// FormatMessage renders a day export as an HTML Telegram message: a bold
// localized date header followed by one emoji-tagged line per hour, in the
// series' hour-ascending order.
func FormatMessage(export model.DayExport, tiers Tiers) string {
	var lines []string
	for _, hour := range export.Data.Hours() {
		price := export.Data[hour]
		priceStr := fmt.Sprintf("%-7s", formatPrice(price))
		line := fmt.Sprintf("%s<code>%02dh: %s €/kWh</code>", tiers.Emoji(price), hour, priceStr)
		lines = append(lines, line)
	}

	return fmt.Sprintf("<b>%s</b>\n\n%s", FormatDateHuman(export.Day), strings.Join(lines, "\n"))
}

// FormatDateHuman renders a date as "jueves, 1 de junio del 2023".
func FormatDateHuman(d dates.Date) string {
	weekday := (int(d.Time().Weekday()) + 6) % 7 // shift Sunday=0 to Monday=0
	return fmt.Sprintf("%s, %d de %s del %d", weekdays[weekday], d.Day, months[d.Month-1], d.Year)
}

// formatPrice renders a price with its natural decimal form, no padding or
// rounding beyond the shortest round-trippable representation.
func formatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}
