// Package chart draws joint trajectory charts, as terminal graphs for
// quick inspection and as PNG line charts for reports.
package chart

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	"github.com/guptarohit/asciigraph"
	"github.com/wcharczuk/go-chart/v2"

	"github.com/san-kum/motionrender/internal/mocap"
)

const (
	pngWidth  = 900
	pngHeight = 450
)

// ErrNoTracks indicates that no joint was selected or no selected joint
// has finite samples.
var ErrNoTracks = errors.New("chart: no tracks to plot")

var asciiPalette = []asciigraph.AnsiColor{
	asciigraph.Blue,
	asciigraph.Red,
	asciigraph.Green,
	asciigraph.Orange,
	asciigraph.Magenta,
	asciigraph.Cyan,
}

// ASCII renders one coordinate of the selected joints as a terminal
// graph. Missing samples show up as gaps in the plotted line.
func ASCII(ts *mocap.TimeSeries, joints []int, axis mocap.Axis, width, height int) (string, error) {
	if len(joints) == 0 {
		return "", ErrNoTracks
	}
	data := make([][]float64, 0, len(joints))
	legends := make([]string, 0, len(joints))
	colors := make([]asciigraph.AnsiColor, 0, len(joints))
	for i, j := range joints {
		if j < 0 || j >= ts.JointCount() {
			return "", fmt.Errorf("chart: joint index %d out of range [0, %d)", j, ts.JointCount())
		}
		data = append(data, ts.Track(j, axis))
		legends = append(legends, ts.Joints[j])
		colors = append(colors, asciiPalette[i%len(asciiPalette)])
	}

	graph := asciigraph.PlotMany(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(fmt.Sprintf("%s position over time", axis)),
		asciigraph.SeriesColors(colors...),
		asciigraph.SeriesLegends(legends...),
	)
	return graph, nil
}

// PNG renders one coordinate of the selected joints as a line chart and
// returns the encoded image. Missing samples are dropped, so a gap is
// bridged by a straight segment.
func PNG(ts *mocap.TimeSeries, joints []int, axis mocap.Axis) ([]byte, error) {
	if len(joints) == 0 {
		return nil, ErrNoTracks
	}
	series := make([]chart.Series, 0, len(joints))
	for i, j := range joints {
		if j < 0 || j >= ts.JointCount() {
			return nil, fmt.Errorf("chart: joint index %d out of range [0, %d)", j, ts.JointCount())
		}
		xs, ys := finitePoints(ts.Times, ts.Track(j, axis))
		if len(xs) < 2 {
			continue
		}
		series = append(series, chart.ContinuousSeries{
			Name:    ts.Joints[j],
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: chart.GetDefaultColor(i),
				StrokeWidth: 2.0,
			},
		})
	}
	if len(series) == 0 {
		return nil, ErrNoTracks
	}

	graph := chart.Chart{
		Width:  pngWidth,
		Height: pngHeight,
		XAxis: chart.XAxis{
			Name: "time",
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%.0f", v.(float64))
			},
		},
		YAxis: chart.YAxis{
			Name: fmt.Sprintf("%s position", axis),
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart: render: %w", err)
	}
	return buf.Bytes(), nil
}

// finitePoints pairs timestamps with track values, dropping samples
// where the value is missing.
func finitePoints(times, track []float64) (xs, ys []float64) {
	for i, v := range track {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		xs = append(xs, times[i])
		ys = append(ys, v)
	}
	return xs, ys
}
