package export

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/pvpc-tools/pvpc-exporter/pkg/dates"
	"github.com/pvpc-tools/pvpc-exporter/pkg/model"
	"github.com/pvpc-tools/pvpc-exporter/pkg/storage"
)

// ExportChart renders the series as a PNG line chart with per-hour markers
// and labels, writing it to the expanded template path. The chart is pure
// presentation; failures here never affect the JSON artifact.
func (e *Exporter) ExportChart(ctx context.Context, scheme model.Scheme, day dates.Date, series model.HourlyPrices, template string) (string, error) {
	png, err := renderChart(day, series)
	if err != nil {
		return "", fmt.Errorf("%w: render chart %s %s: %v", ErrWrite, scheme, day, err)
	}

	path := dates.ExpandPath(template, day)
	if err := writeFile(path, png); err != nil {
		return "", err
	}

	e.logger.Info("wrote chart artifact", "scheme", string(scheme), "day", day.ISO(), "path", path, "bytes", len(png))
	e.record(ctx, scheme, day, storage.KindChart, path, len(png))
	return path, nil
}

func renderChart(day dates.Date, series model.HourlyPrices) ([]byte, error) {
	hours := series.Hours()
	xs := make([]time.Time, 0, len(hours))
	ys := make([]float64, 0, len(hours))
	labels := make([]chart.Value2, 0, len(hours))

	midnight := day.Time()
	for _, h := range hours {
		ts := midnight.Add(time.Duration(h) * time.Hour)
		price := series[h]
		xs = append(xs, ts)
		ys = append(ys, price)
		labels = append(labels, chart.Value2{
			XValue: chart.TimeToFloat64(ts),
			YValue: price,
			Label:  fmt.Sprintf("%02dh", h),
		})
	}

	graph := chart.Chart{
		Title: fmt.Sprintf("PVPC %s", day.ISO()),
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat("2006-01-02T15:04:05"),
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name: "Coste €/kWh",
				Style: chart.Style{
					StrokeColor: drawing.ColorBlue,
					DotColor:    drawing.ColorBlue,
					DotWidth:    3,
				},
				XValues: xs,
				YValues: ys,
			},
			chart.AnnotationSeries{
				Annotations: labels,
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
