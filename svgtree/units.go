package svgtree

import (
	"math"
	"strconv"
	"strings"

	"github.com/benoitkugler/svgmesh/svgpath"
)

// percentageReference selects the viewBox dimension used
// to resolve percentages.
type percentageReference uint8

const (
	widthPercentage percentageReference = iota
	heightPercentage
	diagPercentage
)

// absolute units, in pixels (96 dpi)
var units = [...]struct {
	suffix string
	factor float64
}{
	{"px", 1},
	{"pt", 96. / 72},
	{"pc", 16},
	{"mm", 96 / 25.4},
	{"cm", 96 / 2.54},
	{"in", 96},
}

func parseBasicFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// parseUnit converts a length to pixels.
func (c *treeCursor) parseUnit(s string, asPerc percentageReference) (float64, error) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "%") {
		f, err := parseBasicFloat(strings.TrimSuffix(s, "%"))
		if err != nil {
			return 0, err
		}
		f /= 100
		vb := c.tree.ViewBox
		switch asPerc {
		case widthPercentage:
			return f * vb.W, nil
		case heightPercentage:
			return f * vb.H, nil
		default:
			return f * math.Sqrt(vb.W*vb.W+vb.H*vb.H) / math.Sqrt2, nil
		}
	}
	for _, u := range units {
		if strings.HasSuffix(s, u.suffix) {
			f, err := parseBasicFloat(strings.TrimSuffix(s, u.suffix))
			return f * u.factor, err
		}
	}
	return parseBasicFloat(s)
}

// parseTransform applies the content of a transform
// attribute to m.
func parseTransform(m svgpath.Matrix2D, v string) (svgpath.Matrix2D, error) {
	for _, t := range strings.Split(v, ")") {
		t = strings.TrimSpace(t)
		t = strings.TrimLeft(t, ", \t\n")
		if len(t) == 0 {
			continue
		}
		d := strings.Split(t, "(")
		if len(d) != 2 || len(d[1]) < 1 {
			return m, errParamMismatch // badly formed transformation
		}
		points, err := svgpath.ParseNumbers(d[1])
		if err != nil {
			return m, err
		}
		m, err = readTransformAttr(m, strings.ToLower(strings.TrimSpace(d[0])), points)
		if err != nil {
			return m, err
		}
	}
	return m, nil
}

func readTransformAttr(m1 svgpath.Matrix2D, k string, points []float64) (svgpath.Matrix2D, error) {
	ln := len(points)
	switch k {
	case "rotate":
		if ln == 1 {
			m1 = m1.Rotate(points[0] * math.Pi / 180)
		} else if ln == 3 {
			m1 = m1.Translate(points[1], points[2]).
				Rotate(points[0]*math.Pi/180).
				Translate(-points[1], -points[2])
		} else {
			return m1, errParamMismatch
		}
	case "translate":
		if ln == 1 {
			m1 = m1.Translate(points[0], 0)
		} else if ln == 2 {
			m1 = m1.Translate(points[0], points[1])
		} else {
			return m1, errParamMismatch
		}
	case "skewx":
		if ln == 1 {
			m1 = m1.SkewX(points[0] * math.Pi / 180)
		} else {
			return m1, errParamMismatch
		}
	case "skewy":
		if ln == 1 {
			m1 = m1.SkewY(points[0] * math.Pi / 180)
		} else {
			return m1, errParamMismatch
		}
	case "scale":
		if ln == 1 {
			m1 = m1.Scale(points[0], points[0])
		} else if ln == 2 {
			m1 = m1.Scale(points[0], points[1])
		} else {
			return m1, errParamMismatch
		}
	case "matrix":
		if ln == 6 {
			m1 = m1.Mult(svgpath.Matrix2D{
				A: points[0],
				B: points[1],
				C: points[2],
				D: points[3],
				E: points[4],
				F: points[5]})
		} else {
			return m1, errParamMismatch
		}
	default:
		return m1, errParamMismatch
	}
	return m1, nil
}
