// Package export renders playback frames and traces as SVG documents.
package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/sortviz/internal/anim"
	"github.com/san-kum/sortviz/internal/player"
)

var tagFill = map[anim.Tag]string{
	anim.Idle:            "#b4b4b4",
	anim.Comparing:       "#ffdc50",
	anim.Swapping:        "#50dcff",
	anim.RecentlySwapped: "#ff9640",
	anim.Sorted:          "#50ff8c",
}

// FrameToSVG renders one playback frame as a bar chart. Swapping bars carry
// their lift and lateral travel so a mid-animation frame exports faithfully.
func FrameToSVG(f player.Frame, width, height int) string {
	n := len(f.Values)
	if n == 0 {
		return ""
	}

	maxV := 1
	for _, v := range f.Values {
		if v > maxV {
			maxV = v
		}
	}

	margin := 20.0
	liftPx := float64(height) * 0.08
	plotW := float64(width) - 2*margin
	plotH := float64(height) - 2*margin - liftPx
	slotW := plotW / float64(n)
	barW := slotW * 0.8
	baseY := float64(height) - margin

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for i, v := range f.Values {
		slot := f.Slots[i]
		x := margin + float64(i)*slotW + (slotW-barW)/2
		lift := 0.0
		if slot.Tag == anim.Swapping {
			lift = anim.Lift(slot.Phase, slot.PhaseProgress)
			if f.HasOp && f.Op.I != f.Op.J {
				partner := f.Op.I + f.Op.J - i
				x += anim.Shift(slot.Phase, slot.PhaseProgress) * float64(partner-i) * slotW
			}
		}
		h := plotH * float64(v) / float64(maxV)
		if h < 1 {
			h = 1
		}
		y := baseY - h - lift*liftPx
		sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>
`, x, y, barW, h, tagFill[slot.Tag]))

		for li, label := range slot.Labels {
			sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" font-size="10" fill="#8c8c8c">%s</text>
`, x, baseY+12+float64(li)*11, label))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// CurveToSVG plots a sampled series (the inversion curve) as a polyline.
func CurveToSVG(series []float64, width, height int, strokeColor string) string {
	if len(series) < 2 {
		return ""
	}

	minY, maxY := series[0], series[0]
	for _, v := range series {
		if v < minY {
			minY = v
		}
		if v > maxY {
			maxY = v
		}
	}
	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, v := range series {
		x := float64(i) / float64(len(series)-1) * float64(width)
		y := float64(height) - (v-minY)/rangeY*float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
