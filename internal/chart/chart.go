// Package chart renders per-user time series as PNG images embedded in
// data URIs, ready to drop into an <img src>.
package chart

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	gochart "github.com/wcharczuk/go-chart/v2"

	"github.com/mmynk/healthtracker/internal/models"
	"github.com/mmynk/healthtracker/internal/storage"
)

// DataURIPrefix starts every rendered chart.
const DataURIPrefix = "data:image/png;base64,"

// ErrNotEnoughData is returned for series with fewer than two points
// or whose points all fall on the same day.
var ErrNotEnoughData = errors.New("at least two data points are needed for a chart")

// Renderer draws line charts of dated values.
type Renderer struct {
	Width  int
	Height int
}

// NewRenderer returns a renderer producing width x height images.
func NewRenderer(width, height int) *Renderer {
	return &Renderer{Width: width, Height: height}
}

// Render draws points as a time series titled title.
func (r *Renderer) Render(title string, points []storage.Point) (string, error) {
	if len(points) < 2 {
		return "", ErrNotEnoughData
	}

	xs := make([]time.Time, 0, len(points))
	ys := make([]float64, 0, len(points))
	lo, hi := points[0].Value, points[0].Value
	for _, p := range points {
		d, err := time.Parse(models.DateLayout, p.Date)
		if err != nil {
			return "", fmt.Errorf("bad point date %q: %w", p.Date, err)
		}
		xs = append(xs, d)
		ys = append(ys, p.Value)
		lo, hi = min(lo, p.Value), max(hi, p.Value)
	}

	if xs[0].Equal(xs[len(xs)-1]) {
		// Points arrive oldest first, so equal ends mean a single day.
		return "", ErrNotEnoughData
	}

	yAxis := gochart.YAxis{Name: title}
	if lo == hi {
		// A flat line has an empty value range, which go-chart refuses to scale.
		yAxis.Range = &gochart.ContinuousRange{Min: lo - 1, Max: hi + 1}
	}

	graph := gochart.Chart{
		Title:  title,
		Width:  r.Width,
		Height: r.Height,
		XAxis: gochart.XAxis{
			ValueFormatter: gochart.TimeDateValueFormatter,
		},
		YAxis: yAxis,
		Series: []gochart.Series{
			gochart.TimeSeries{
				Name:    title,
				XValues: xs,
				YValues: ys,
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(gochart.PNG, &buf); err != nil {
		return "", fmt.Errorf("failed to render %s chart: %w", title, err)
	}

	return DataURIPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
