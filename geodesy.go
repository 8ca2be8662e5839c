package gismcp

import (
	"math"

	"github.com/pymaxion/geographiclib-go/geodesic"
)

// metersPerDegreeEquator is the approximate length of one degree of arc at
// the equator. Clearance checks use this fixed scale without latitude
// correction; corridor and placement math apply the cosine correction below.
const metersPerDegreeEquator = 111320.0

// ValidCoordinate reports whether lon/lat fall inside the WGS84 coordinate
// ranges: longitude [-180,180] and latitude [-90,90], bounds inclusive.
func ValidCoordinate(lon, lat float64) bool {
	if lon < -180 || lon > 180 {
		return false
	}
	if lat < -90 || lat > 90 {
		return false
	}
	return true
}

// metersPerDegree estimates the local east-west scale at the given latitude.
func metersPerDegree(lat float64) float64 {
	return metersPerDegreeEquator * math.Cos(lat*math.Pi/180)
}

// geodesicInverse solves the inverse geodesic problem on the WGS84 ellipsoid:
// distance in meters plus forward and back azimuths in degrees. The back
// azimuth points from the second structure toward the first.
func geodesicInverse(lon1, lat1, lon2, lat2 float64) (distance, azimuth, backAzimuth float64) {
	d := geodesic.WGS84.Inverse(lat1, lon1, lat2, lon2)
	backAzimuth = d.Azi2 + 180
	if backAzimuth > 180 {
		backAzimuth -= 360
	}
	return d.S12, d.Azi1, backAzimuth
}

// roundTo rounds v to the given number of decimal places. Rounding is a
// presentation concern applied when result structs are assembled; all
// intermediate math runs at full precision.
func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
