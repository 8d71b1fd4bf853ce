// Package gauge maps a confidence score onto the needle-and-arc widget shown
// under a prediction.
package gauge

import (
	"bytes"
	"fmt"
	"html/template"
	"math"
)

const (
	Width     = 300
	Height    = 160
	MaxValue  = 100
	RingWidth = 20

	centerX = Width / 2
	centerY = 150
	radius  = 130
)

// Band is one fixed, labeled stretch of the arc. Min is inclusive, Max exclusive
// except for the last band.
type Band struct {
	Label string
	Min   int
	Max   int
	Color string
}

var bands = []Band{
	{Label: "Low", Min: 0, Max: 30, Color: "#ff4d4f"},
	{Label: "Medium", Min: 30, Max: 70, Color: "#fbc02d"},
	{Label: "High", Min: 70, Max: 100, Color: "#4caf50"},
}

// Bands returns a copy of the three bands, ordered low to high.
func Bands() []Band {
	out := make([]Band, len(bands))
	copy(out, bands)
	return out
}

// Percent turns a 0..1 confidence into the displayed 0..100 integer.
// Halves round away from zero on the float64 product, so 0.125 gives 13 and
// 0.305 (whose product is exactly 30.5) gives 31. The confidence is not
// validated, so products beyond ±MaxInt32 are capped there.
func Percent(confidence float64) int {
	v := confidence * 100
	if math.IsNaN(v) {
		return 0
	}
	v = math.Max(-math.MaxInt32, math.Min(math.MaxInt32, v))
	return int(math.Round(v))
}

// BandFor returns the band the percent falls in. Out of range values land in
// the first or last band.
func BandFor(percent int) Band {
	for _, b := range bands[:len(bands)-1] {
		if percent < b.Max {
			return b
		}
	}
	return bands[len(bands)-1]
}

// Point is an SVG coordinate.
type Point struct {
	X float64
	Y float64
}

// Segment is a band together with its drawn arc and label anchor.
type Segment struct {
	Band
	Path   string
	Anchor Point
}

// Gauge holds everything needed to draw one reading.
type Gauge struct {
	Value    int
	Needle   Point
	Segments []Segment
}

// New lays out the gauge for a percent. The needle is clamped to the dial,
// Value keeps the percent as given.
func New(percent int) Gauge {
	g := Gauge{
		Value:  percent,
		Needle: pointAt(clamp(percent), radius-RingWidth-8),
	}

	arcRadius := float64(radius - RingWidth/2)
	for _, b := range bands {
		start := pointAt(b.Min, arcRadius)
		end := pointAt(b.Max, arcRadius)
		g.Segments = append(g.Segments, Segment{
			Band:   b,
			Path:   fmt.Sprintf("M %.2f %.2f A %.2f %.2f 0 0 1 %.2f %.2f", start.X, start.Y, arcRadius, arcRadius, end.X, end.Y),
			Anchor: pointAt((b.Min+b.Max)/2, radius+14),
		})
	}
	return g
}

// pointAt maps a value on the 0..100 dial to a point on a circle of radius r.
// 0 sits on the left, 100 on the right.
func pointAt(value int, r float64) Point {
	theta := math.Pi * (1 - float64(value)/MaxValue)
	return Point{
		X: round2(centerX + r*math.Cos(theta)),
		Y: round2(centerY - r*math.Sin(theta)),
	}
}

func clamp(v int) int {
	return max(0, min(MaxValue, v))
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

var svgTemplate = template.Must(template.New("gauge").Parse(`<svg class="gauge" xmlns="http://www.w3.org/2000/svg" width="{{.Width}}" height="{{.Height}}" viewBox="-20 -10 {{.ViewWidth}} {{.ViewHeight}}" role="img" aria-label="Confidence {{.G.Value}}%">
{{- range .G.Segments}}
  <path class="gauge-band" d="{{.Path}}" stroke="{{.Color}}" stroke-width="{{$.Ring}}" fill="none"/>
  <text class="gauge-label" x="{{.Anchor.X}}" y="{{.Anchor.Y}}" text-anchor="middle" fill="#fff" font-size="12px" font-family="Arial">{{.Label}}</text>
{{- end}}
  <line class="gauge-needle" x1="{{.CX}}" y1="{{.CY}}" x2="{{.G.Needle.X}}" y2="{{.G.Needle.Y}}" stroke="#000" stroke-width="4" stroke-linecap="round"/>
  <circle cx="{{.CX}}" cy="{{.CY}}" r="6" fill="#000"/>
</svg>`))

// SVG renders the gauge as an inline SVG element.
func (g Gauge) SVG() (template.HTML, error) {
	var buf bytes.Buffer
	err := svgTemplate.Execute(&buf, struct {
		G                     Gauge
		Width, Height         int
		ViewWidth, ViewHeight int
		Ring, CX, CY          int
	}{
		G:          g,
		Width:      Width,
		Height:     Height,
		ViewWidth:  Width + 40,
		ViewHeight: Height + 20,
		Ring:       RingWidth,
		CX:         centerX,
		CY:         centerY,
	})
	if err != nil {
		return "", fmt.Errorf("render gauge: %w", err)
	}
	return template.HTML(buf.String()), nil
}
