package gismcp

import (
	"fmt"
	"strings"

	"github.com/twpayne/go-geos"
)

const (
	squareMetersPerAcre   = 4046.86
	stationIntervalMeters = 100.0
	bufferQuadSegments    = 8
	bufferMitreLimit      = 5.0
)

// rowCapStyle maps the caller-facing end-cap name to the GEOS style.
// Unknown values fall back to flat.
func rowCapStyle(name string) geos.BufCapStyle {
	switch strings.ToLower(name) {
	case "round":
		return geos.BufCapStyleRound
	case "square":
		return geos.BufCapStyleSquare
	default:
		return geos.BufCapStyleFlat
	}
}

// CreateROWBuffer generates the right-of-way corridor polygon around a
// transmission line centerline. rowWidth is the total corridor width in
// meters; half of it is applied to each side after converting to local
// degree units with the latitude-corrected scale. Joins are always round;
// the end-cap style is caller-selectable. Station markers, when requested,
// are placed every 100 m along the centerline by normalized interpolation.
func CreateROWBuffer(centerline string, rowWidth float64, capStyle string, includeStations bool) (*ROWBufferResult, error) {
	if rowWidth <= 0 {
		return nil, fmt.Errorf("ROW width must be positive, got %g", rowWidth)
	}

	line, err := parseWKTLineString(centerline, "centerline")
	if err != nil {
		return nil, err
	}

	avgLat, err := averageLatitude(centerline)
	if err != nil {
		return nil, err
	}
	scale := metersPerDegree(avgLat)
	if scale <= 0 {
		return nil, fmt.Errorf("degenerate latitude scale at %g degrees", avgLat)
	}
	halfWidthDegrees := (rowWidth / 2) / scale

	rowPolygon := line.BufferWithStyle(halfWidthDegrees, bufferQuadSegments, rowCapStyle(capStyle), geos.BufJoinStyleRound, bufferMitreLimit)
	if rowPolygon == nil {
		return nil, fmt.Errorf("buffer operation failed")
	}

	lengthDegrees := line.Length()

	result := &ROWBufferResult{
		RowPolygonWKT:          rowPolygon.ToWKT(),
		RowAreaSqMeters:        roundTo(rowPolygon.Area()*scale*scale, 2),
		RowAreaAcres:           roundTo(rowPolygon.Area()*scale*scale/squareMetersPerAcre, 2),
		CenterlineLengthMeters: roundTo(lengthDegrees*scale, 2),
		RowWidthMeters:         rowWidth,
		CapStyle:               capStyle,
	}

	if includeStations && lengthDegrees > 0 {
		intervalDegrees := stationIntervalMeters / scale
		numStations := int(lengthDegrees / intervalDegrees)

		stations := make([]StationMarker, 0, numStations+1)
		for i := 0; i <= numStations; i++ {
			fraction := (float64(i) * intervalDegrees) / lengthDegrees
			if fraction > 1.0 {
				continue
			}
			pt := line.InterpolateNormalized(fraction)
			stations = append(stations, StationMarker{
				StationNumber:  i,
				Position:       [2]float64{roundTo(pt.X(), 6), roundTo(pt.Y(), 6)},
				DistanceMeters: float64(i) * stationIntervalMeters,
			})
		}
		result.Stations = stations
	}

	return result, nil
}

// CalculateStructureOffsets builds parallel offset lines at a fixed distance
// on each side of a centerline, used for staking structure positions clear of
// the conductor path.
func CalculateStructureOffsets(centerline string, offsetMeters float64) (*StructureOffsetsResult, error) {
	if offsetMeters <= 0 {
		return nil, fmt.Errorf("offset distance must be positive, got %g", offsetMeters)
	}

	line, err := parseWKTLineString(centerline, "centerline")
	if err != nil {
		return nil, err
	}

	avgLat, err := averageLatitude(centerline)
	if err != nil {
		return nil, err
	}
	scale := metersPerDegree(avgLat)
	if scale <= 0 {
		return nil, fmt.Errorf("degenerate latitude scale at %g degrees", avgLat)
	}
	offsetDegrees := offsetMeters / scale

	left := line.OffsetCurve(offsetDegrees, bufferQuadSegments, geos.BufJoinStyleRound, bufferMitreLimit)
	right := line.OffsetCurve(-offsetDegrees, bufferQuadSegments, geos.BufJoinStyleRound, bufferMitreLimit)
	if left == nil || right == nil {
		return nil, fmt.Errorf("offset curve operation failed")
	}

	return &StructureOffsetsResult{
		LeftOffsetWKT:          left.ToWKT(),
		RightOffsetWKT:         right.ToWKT(),
		OffsetMeters:           offsetMeters,
		CenterlineLengthMeters: roundTo(line.Length()*scale, 2),
	}, nil
}
