package gismcp

import (
	"fmt"
)

// Regulatory clearance model (NESC approximation): lines above 50 kV require
// 5.5 m plus 0.01 m per kV over 50.
const (
	clearanceBaseVoltageKV = 50.0
	clearanceBaseMeters    = 5.5
	clearancePerKVMeters   = 0.01
	clearanceStatusPass    = "PASS"
	clearanceStatusFail    = "FAIL"
)

// CheckClearance verifies that a conductor path keeps a safe separation from
// an obstacle geometry (point, line, or polygon). The planar minimum distance
// between the WKT geometries is converted to meters with the fixed equatorial
// degree scale — deliberately not latitude-corrected, matching the corridor
// tooling this mirrors. When voltageKV is supplied and exceeds 50 kV the
// required clearance is raised to the regulatory value, floored at
// minimumClearance.
func CheckClearance(conductorLine, obstacleGeometry string, minimumClearance float64, voltageKV *float64) (*ClearanceResult, error) {
	conductor, err := parseWKTGeometry(conductorLine)
	if err != nil {
		return nil, fmt.Errorf("conductor: %w", err)
	}
	obstacle, err := parseWKTGeometry(obstacleGeometry)
	if err != nil {
		return nil, fmt.Errorf("obstacle: %w", err)
	}
	if conductor.IsEmpty() || obstacle.IsEmpty() {
		return nil, fmt.Errorf("clearance check requires non-empty geometries")
	}

	requiredClearance := minimumClearance
	if voltageKV != nil && *voltageKV > clearanceBaseVoltageKV {
		regulatory := clearanceBaseMeters + clearancePerKVMeters*(*voltageKV-clearanceBaseVoltageKV)
		if regulatory > requiredClearance {
			requiredClearance = regulatory
		}
	}

	minDistance := conductor.Distance(obstacle)
	nearest := conductor.NearestPoints(obstacle)
	if len(nearest) < 2 {
		return nil, fmt.Errorf("failed to compute nearest points")
	}

	minDistanceMeters := minDistance * metersPerDegreeEquator
	clearanceOK := minDistanceMeters >= requiredClearance

	status := clearanceStatusFail
	if clearanceOK {
		status = clearanceStatusPass
	}

	return &ClearanceResult{
		ClearanceOK:             clearanceOK,
		MinimumDistanceMeters:   roundTo(minDistanceMeters, 2),
		RequiredClearanceMeters: roundTo(requiredClearance, 2),
		ClearanceMarginMeters:   roundTo(minDistanceMeters-requiredClearance, 2),
		NearestPointOnConductor: [2]float64{roundTo(nearest[0][0], 6), roundTo(nearest[0][1], 6)},
		NearestPointOnObstacle:  [2]float64{roundTo(nearest[1][0], 6), roundTo(nearest[1][1], 6)},
		VoltageKV:               voltageKV,
		Status:                  status,
	}, nil
}
