package cli

import (
	"image"
	"strconv"
	"strings"

	"github.com/matzehuels/findline/pkg/errors"
)

// parsePoints converts point tokens into pixel coordinates. Each token is
// "x,y"; a four-number token "x1,y1,x2,y2" is accepted and split into two
// points, with a notice returned so the caller can log it. At least two
// points are required for a trace, but validation of the count is left to
// the caller so the skeleton command can reuse this for single points.
func parsePoints(tokens []string) ([]image.Point, []string, error) {
	var (
		points  []image.Point
		notices []string
	)
	for _, tok := range tokens {
		fields := strings.Split(tok, ",")
		switch len(fields) {
		case 2:
			p, err := parsePair(tok, fields[0], fields[1])
			if err != nil {
				return nil, nil, err
			}
			points = append(points, p)
		case 4:
			a, err := parsePair(tok, fields[0], fields[1])
			if err != nil {
				return nil, nil, err
			}
			b, err := parsePair(tok, fields[2], fields[3])
			if err != nil {
				return nil, nil, err
			}
			points = append(points, a, b)
			notices = append(notices, "treating "+strconv.Quote(tok)+" as two points")
		default:
			return nil, nil, errors.New(errors.ErrCodeInvalidPoint,
				"invalid point %q: expected \"x,y\"", tok)
		}
	}
	return points, notices, nil
}

// parsePair parses one coordinate pair. tok is the original token, kept for
// error messages.
func parsePair(tok, xs, ys string) (image.Point, error) {
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return image.Point{}, errors.New(errors.ErrCodeInvalidPoint,
			"invalid point %q: %q is not an integer", tok, xs)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return image.Point{}, errors.New(errors.ErrCodeInvalidPoint,
			"invalid point %q: %q is not an integer", tok, ys)
	}
	return image.Pt(x, y), nil
}
