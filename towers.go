package gismcp

import (
	"fmt"
	"math"
)

// AnalyzeTowerPlacement computes a preliminary tower layout along a route.
//
// The route length is estimated in meters with the latitude-corrected degree
// scale, divided into spans near the typical length, then the span count is
// recomputed against whichever bound the even distribution violates (floored
// against the minimum, ceiled against the maximum). Towers are placed at
// even arc-length fractions, both endpoints included, so the tower count is
// always one more than the span count. A route too short for even one
// compliant span degrades to a single span covering the whole route.
func AnalyzeTowerPlacement(routeLine string, constraints SpanConstraints) (*TowerPlacementResult, error) {
	if constraints.TypicalSpanMeters <= 0 {
		return nil, fmt.Errorf("typical span must be positive, got %g", constraints.TypicalSpanMeters)
	}
	if constraints.MinSpanMeters <= 0 || constraints.MaxSpanMeters < constraints.MinSpanMeters {
		return nil, fmt.Errorf("span bounds must satisfy 0 < min <= max, got [%g, %g]",
			constraints.MinSpanMeters, constraints.MaxSpanMeters)
	}

	line, err := parseWKTLineString(routeLine, "route")
	if err != nil {
		return nil, err
	}

	avgLat, err := averageLatitude(routeLine)
	if err != nil {
		return nil, err
	}
	scale := metersPerDegree(avgLat)
	totalLength := line.Length() * scale
	if totalLength <= 0 {
		return nil, fmt.Errorf("route has zero length")
	}

	numSpans := int(totalLength / constraints.TypicalSpanMeters)
	if numSpans < 1 {
		numSpans = 1
	}
	actualSpan := totalLength / float64(numSpans)

	if actualSpan < constraints.MinSpanMeters {
		numSpans = int(totalLength / constraints.MinSpanMeters)
		if numSpans < 1 {
			// Route shorter than one minimum span; keep a single
			// non-compliant span rather than failing.
			numSpans = 1
		}
		actualSpan = totalLength / float64(numSpans)
	} else if actualSpan > constraints.MaxSpanMeters {
		numSpans = int(math.Ceil(totalLength / constraints.MaxSpanMeters))
		actualSpan = totalLength / float64(numSpans)
	}

	towerCount := numSpans + 1
	towerPositions := make([][2]float64, 0, towerCount)
	spanLengths := make([]float64, 0, numSpans)

	for i := 0; i < towerCount; i++ {
		fraction := float64(i) / float64(numSpans)
		pt := line.InterpolateNormalized(fraction)
		towerPositions = append(towerPositions, [2]float64{roundTo(pt.X(), 6), roundTo(pt.Y(), 6)})

		if i < towerCount-1 {
			spanLengths = append(spanLengths, roundTo(actualSpan, 2))
		}
	}

	return &TowerPlacementResult{
		TowerCount:             towerCount,
		TowerPositions:         towerPositions,
		SpanLengths:            spanLengths,
		TotalRouteLengthMeters: roundTo(totalLength, 2),
		AverageSpanMeters:      roundTo(actualSpan, 2),
		NumSpans:               numSpans,
		Constraints:            constraints,
	}, nil
}
