package gismcp

import (
	"fmt"
	"math"
)

const (
	gravity = 9.81

	// Assumed conductor diameter for wind load conversion, meters.
	conductorDiameter = 0.03

	// Coefficient of linear thermal expansion for ACSR conductors, per °C,
	// anchored at a 15 °C reference temperature.
	thermalExpansion     = 19.3e-6
	referenceTemperature = 15.0
)

// CalculateConductorSag computes midspan sag and related catenary parameters
// for a conductor suspended between two supports.
//
// spanLength is the horizontal support separation in meters, conductorWeight
// the unit weight in kg/m, tension the horizontal tension in Newtons, and
// temperature the ambient °C. A non-nil windPressure (Pa) switches to the
// loaded condition by combining gravity and wind components vectorially.
func CalculateConductorSag(spanLength, conductorWeight, tension, temperature float64, windPressure *float64) (*SagResult, error) {
	if spanLength <= 0 {
		return nil, fmt.Errorf("span length must be positive, got %g", spanLength)
	}
	if conductorWeight <= 0 {
		return nil, fmt.Errorf("conductor weight must be positive, got %g", conductorWeight)
	}
	if tension <= 0 {
		return nil, fmt.Errorf("tension must be positive, got %g", tension)
	}

	effectiveWeight := conductorWeight
	if windPressure != nil {
		windLoad := *windPressure * conductorDiameter // N/m
		effectiveWeight = math.Sqrt(conductorWeight*conductorWeight + (windLoad/gravity)*(windLoad/gravity))
	}

	catenaryConstant := tension / (effectiveWeight * gravity)

	// Parabolic approximation of midspan sag: (w*g*L^2) / (8*T).
	sag := (effectiveWeight * gravity * spanLength * spanLength) / (8 * tension)

	// Arc length 2c*sinh(L/2c); a degenerate constant falls back to the
	// straight span rather than producing NaN.
	conductorLength := spanLength
	if catenaryConstant > 0 {
		halfSpan := spanLength / 2
		conductorLength = 2 * catenaryConstant * math.Sinh(halfSpan/catenaryConstant)
	}

	thermalCoefficient := 1 + thermalExpansion*(temperature-referenceTemperature)

	return &SagResult{
		SagMeters:               roundTo(sag, 4),
		CatenaryConstant:        roundTo(catenaryConstant, 2),
		ConductorLengthMeters:   roundTo(conductorLength, 4),
		LowestPointHeightMeters: roundTo(-sag, 4),
		ThermalCoefficient:      roundTo(thermalCoefficient, 6),
		TemperatureCelsius:      temperature,
		WindLoaded:              windPressure != nil,
		EffectiveWeightKgPerM:   roundTo(effectiveWeight, 4),
	}, nil
}

// CalculateCatenaryCurve samples the conductor curve between two supports for
// visualization. The catenary constant is back-solved from span and sag with
// the approximation c ≈ L²/(8·sag), not an exact inversion of
// sag = c·(cosh(L/2c)−1). Supports sit near y=0 and the midspan minimum at
// −sag; curve length is the chord sum over consecutive samples.
func CalculateCatenaryCurve(spanLength, sag float64, numPoints int) (*CatenaryCurveResult, error) {
	if spanLength <= 0 {
		return nil, fmt.Errorf("span length must be positive, got %g", spanLength)
	}
	if sag <= 0 {
		return nil, fmt.Errorf("sag must be positive, got %g", sag)
	}
	if numPoints < 2 {
		return nil, fmt.Errorf("at least 2 curve points required, got %d", numPoints)
	}

	catenaryConstant := (spanLength * spanLength) / (8 * sag)

	curvePoints := make([][2]float64, 0, numPoints)
	step := spanLength / float64(numPoints-1)
	for i := 0; i < numPoints; i++ {
		x := float64(i) * step
		xShifted := x - spanLength/2

		var y float64
		if catenaryConstant > 0 {
			y = catenaryConstant * (math.Cosh(xShifted/catenaryConstant) - 1)
		} else {
			// Parabola fallback for a degenerate constant.
			y = (4 * sag / (spanLength * spanLength)) * x * (spanLength - x)
		}
		y -= sag

		curvePoints = append(curvePoints, [2]float64{roundTo(x, 2), roundTo(y, 2)})
	}

	curveLength := 0.0
	for i := 0; i < len(curvePoints)-1; i++ {
		dx := curvePoints[i+1][0] - curvePoints[i][0]
		dy := curvePoints[i+1][1] - curvePoints[i][1]
		curveLength += math.Sqrt(dx*dx + dy*dy)
	}

	return &CatenaryCurveResult{
		CurvePoints:       curvePoints,
		CatenaryConstant:  roundTo(catenaryConstant, 2),
		MaxSagMeters:      sag,
		SpanLengthMeters:  spanLength,
		CurveLengthMeters: roundTo(curveLength, 2),
		NumPoints:         numPoints,
		Equation:          fmt.Sprintf("y = %.2f * (cosh(x/%.2f) - 1)", catenaryConstant, catenaryConstant),
	}, nil
}
