package export

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/san-kum/motionrender/internal/render"
)

// FrameSVG renders one skeleton frame as a standalone SVG document,
// using the renderer's framing and style so it matches the PNG output
// of the same frame.
func FrameSVG(r *render.Renderer, i int) (string, error) {
	w, h := r.Size()
	joints, err := r.ProjectFrame(i, w, h)
	if err != nil {
		return "", err
	}
	st := r.Style()

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, w, h, w, h, hexRGB(st.Background)))

	if st.ShowBox {
		sb.WriteString(fmt.Sprintf("<g stroke=%q stroke-width=\"1\" fill=\"none\">\n", hexRGB(st.BoxColor)))
		for _, e := range r.ProjectBox(w, h) {
			sb.WriteString(fmt.Sprintf("<line x1=\"%.1f\" y1=\"%.1f\" x2=\"%.1f\" y2=\"%.1f\"/>\n",
				e[0].X, e[0].Y, e[1].X, e[1].Y))
		}
		sb.WriteString("</g>\n")
	}

	sb.WriteString(fmt.Sprintf("<g stroke=%q stroke-width=\"%.1f\" stroke-linecap=\"round\">\n",
		hexRGB(st.BoneColor), st.LineWidth))
	for _, e := range r.Graph().Edges {
		a, b := joints[e[0]], joints[e[1]]
		if a.OK && b.OK {
			sb.WriteString(fmt.Sprintf("<line x1=\"%.1f\" y1=\"%.1f\" x2=\"%.1f\" y2=\"%.1f\"/>\n",
				a.X, a.Y, b.X, b.Y))
		}
	}
	sb.WriteString("</g>\n")

	sb.WriteString(fmt.Sprintf("<g fill=%q>\n", hexRGB(st.JointColor)))
	for _, p := range joints {
		if p.OK {
			sb.WriteString(fmt.Sprintf("<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n",
				p.X, p.Y, st.MarkerRadius))
		}
	}
	sb.WriteString("</g>\n")

	if st.LabelJoints {
		names := r.Series().Joints
		sb.WriteString(fmt.Sprintf("<g font-family=\"sans-serif\" font-size=\"12\" fill=%q>\n", hexRGB(st.TextColor)))
		for j, p := range joints {
			if p.OK {
				sb.WriteString(fmt.Sprintf("<text x=\"%.1f\" y=\"%.1f\">%s</text>\n",
					p.X+st.MarkerRadius+3, p.Y+4, names[j]))
			}
		}
		sb.WriteString("</g>\n")
	}

	if st.ShowTitle {
		title := fmt.Sprintf("Time: %d", int64(math.Round(r.Series().Times[i])))
		sb.WriteString(fmt.Sprintf("<text x=\"%d\" y=\"24\" text-anchor=\"middle\" font-family=\"sans-serif\" font-size=\"16\" fill=%q>%s</text>\n",
			w/2, hexRGB(st.TextColor), title))
	}

	sb.WriteString("</svg>\n")
	return sb.String(), nil
}

func hexRGB(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
