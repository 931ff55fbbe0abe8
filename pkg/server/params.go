package server

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/matzehuels/topicmap/pkg/errors"
)

// maxZoomSteps bounds the zoom parameter; beyond it the clamped scale no
// longer changes and an unclamped one loses precision.
const maxZoomSteps = 60

// parseZoom reads zoom=<n> wheel steps.
func parseZoom(q url.Values) (int, error) {
	raw := q.Get("zoom")
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "zoom must be an integer, got %q", raw)
	}
	if n < -maxZoomSteps || n > maxZoomSteps {
		return 0, errors.New(errors.ErrCodeInvalidInput, "zoom must be within ±%d", maxZoomSteps)
	}
	return n, nil
}

// parsePan reads pan=<dx>,<dy> in frame pixels.
func parsePan(q url.Values) (float64, float64, error) {
	raw := q.Get("pan")
	if raw == "" {
		return 0, 0, nil
	}
	xs, ys, ok := strings.Cut(raw, ",")
	if !ok {
		return 0, 0, errors.New(errors.ErrCodeInvalidInput, "pan must be dx,dy, got %q", raw)
	}
	x, errX := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	y, errY := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if errX != nil || errY != nil || !finite(x) || !finite(y) {
		return 0, 0, errors.New(errors.ErrCodeInvalidInput, "pan must be two numbers, got %q", raw)
	}
	return x, y, nil
}

// parseDepth reads depth=<n> for the overview; 0 means unlimited.
func parseDepth(q url.Values) (int, error) {
	raw := q.Get("depth")
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "depth must be a non-negative integer, got %q", raw)
	}
	return n, nil
}

func parseBool(q url.Values, name string) bool {
	b, _ := strconv.ParseBool(q.Get(name))
	return b
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
