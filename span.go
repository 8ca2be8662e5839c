package gismcp

import (
	"fmt"
	"math"
)

// CalculateSpanLength computes the geodesic horizontal distance and azimuth
// pair between two support structures given as [lon, lat] or
// [lon, lat, elevation]. When includeElevation is set and both points carry
// elevation, the 3-D slant distance and slope angle are included. The
// midpoint is the coordinate-wise average, not the geodesic midpoint.
func CalculateSpanLength(point1, point2 []float64, includeElevation bool) (*SpanResult, error) {
	if len(point1) < 2 || len(point2) < 2 {
		return nil, fmt.Errorf("points must be [lon, lat] or [lon, lat, elevation]")
	}

	lon1, lat1 := point1[0], point1[1]
	lon2, lat2 := point2[0], point2[1]

	elev1, elev2 := 0.0, 0.0
	if len(point1) > 2 {
		elev1 = point1[2]
	}
	if len(point2) > 2 {
		elev2 = point2[2]
	}

	horizontal, azimuth, backAzimuth := geodesicInverse(lon1, lat1, lon2, lat2)
	elevationDiff := elev2 - elev1

	result := &SpanResult{
		HorizontalDistanceMeters:  roundTo(horizontal, 2),
		ElevationDifferenceMeters: roundTo(elevationDiff, 2),
		AzimuthDegrees:            roundTo(azimuth, 2),
		BackAzimuthDegrees:        roundTo(backAzimuth, 2),
		Midpoint: SpanMidpoint{
			Longitude: roundTo((lon1+lon2)/2, 6),
			Latitude:  roundTo((lat1+lat2)/2, 6),
			Elevation: roundTo((elev1+elev2)/2, 2),
		},
	}

	if includeElevation && len(point1) > 2 && len(point2) > 2 {
		slant := math.Sqrt(horizontal*horizontal + elevationDiff*elevationDiff)
		slope := math.Atan2(elevationDiff, horizontal) * 180 / math.Pi

		slantRounded := roundTo(slant, 2)
		slopeRounded := roundTo(slope, 2)
		result.SlantDistanceMeters = &slantRounded
		result.SlopeAngleDegrees = &slopeRounded
	}

	return result, nil
}

// AnalyzeLineOfSight checks visibility between equipment mounted on two
// structures against a sampled terrain elevation profile. The sight line is
// linearly interpolated between elev1+observerHeight and elev2+targetHeight
// across the profile samples; any sample where terrain rises above the sight
// line is an obstruction.
func AnalyzeLineOfSight(point1, point2 []float64, terrainProfile []float64, observerHeight, targetHeight float64) (*LineOfSightResult, error) {
	if len(point1) < 3 || len(point2) < 3 {
		return nil, fmt.Errorf("points must be [lon, lat, elevation]")
	}
	if len(terrainProfile) == 0 {
		return nil, fmt.Errorf("terrain profile must contain at least one sample")
	}

	elev1 := point1[2] + observerHeight
	elev2 := point2[2] + targetHeight

	numSamples := len(terrainProfile)
	minClearance := math.Inf(1)
	var obstructionIndices []int

	for i, terrain := range terrainProfile {
		t := 0.0
		if numSamples > 1 {
			t = float64(i) / float64(numSamples-1)
		}
		sightLine := elev1 + (elev2-elev1)*t
		clearance := sightLine - terrain

		if clearance < minClearance {
			minClearance = clearance
		}
		if clearance < 0 {
			obstructionIndices = append(obstructionIndices, i)
		}
	}

	clear := len(obstructionIndices) == 0
	maxObstruction := 0.0
	if !clear {
		maxObstruction = math.Abs(minClearance)
	}

	status := "CLEAR"
	if !clear {
		status = "OBSTRUCTED"
	}

	return &LineOfSightResult{
		LineOfSightClear:           clear,
		ClearanceMarginMeters:      roundTo(minClearance, 2),
		MaxObstructionHeightMeters: roundTo(maxObstruction, 2),
		ObstructionCount:           len(obstructionIndices),
		ObstructionSampleIndices:   obstructionIndices,
		ObserverHeightASLMeters:    roundTo(elev1, 2),
		TargetHeightASLMeters:      roundTo(elev2, 2),
		ProfileSamples:             numSamples,
		Status:                     status,
	}, nil
}
