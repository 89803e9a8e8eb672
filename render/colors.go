package render

import (
	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/pie-merge/core"
)

// Fixed UI colors
var (
	RgbBackground  = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbFrame       = tcell.NewRGBColor(255, 255, 255) // Walls and floor
	RgbGaugeIdle   = tcell.NewRGBColor(85, 85, 85)    // Unlit gauge segment
	RgbText        = tcell.NewRGBColor(255, 255, 255)
	RgbTextDim     = tcell.NewRGBColor(150, 150, 160)
	RgbGameOver    = tcell.NewRGBColor(255, 221, 221) // Light red
	RgbAnnounce    = tcell.NewRGBColor(255, 255, 204) // Light yellow
	RgbDropperGlow = tcell.NewRGBColor(153, 221, 255)
)

// gaugeStops run from calm green to alarm red
var gaugeStops = mustHexes(
	"#3EB24A", "#7CC242", "#9DCB3B", "#C4D92E", "#E7E621",
	"#F5EB02", "#F5C913", "#F6951E", "#F15B22", "#E92A28",
)

var background = fromTcell(RgbBackground)

func mustHexes(hexes ...string) []colorful.Color {
	out := make([]colorful.Color, len(hexes))
	for i, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			panic(err)
		}
		out[i] = c
	}
	return out
}

// GaugeColor returns the color of segment i out of n, resampling the stops in Lab space
func GaugeColor(i, n int) colorful.Color {
	if n <= 1 {
		return gaugeStops[0]
	}
	pos := float64(i) / float64(n-1) * float64(len(gaugeStops)-1)
	lo := int(pos)
	if lo >= len(gaugeStops)-1 {
		return gaugeStops[len(gaugeStops)-1]
	}
	if lo < 0 {
		return gaugeStops[0]
	}
	frac := pos - float64(lo)
	if frac == 0 {
		return gaugeStops[lo]
	}
	return gaugeStops[lo].BlendLab(gaugeStops[lo+1], frac).Clamped()
}

// TierColor spreads tiers around the hue wheel, warm pastry tones first
func TierColor(tier, count int) colorful.Color {
	if count <= 0 {
		count = 1
	}
	hue := 30 + float64(tier)*330/float64(count)
	return colorful.Hcl(hue, 0.55, 0.72).Clamped()
}

// Fade blends c toward the background, alpha 1 leaves c unchanged
func Fade(c colorful.Color, alpha float64) colorful.Color {
	return background.BlendRgb(c, core.Clamp(alpha, 0, 1))
}

// toTcell converts a colorful color to a truecolor cell color
func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func fromTcell(c tcell.Color) colorful.Color {
	r, g, b := c.RGB()
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}
