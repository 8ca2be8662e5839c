package gismcp

import (
	"fmt"

	"github.com/paulmach/orb"
	orbwkt "github.com/paulmach/orb/encoding/wkt"
	"github.com/twpayne/go-geos"
)

// parseWKTGeometry parses well-known text into a GEOS geometry.
func parseWKTGeometry(wktText string) (*geos.Geom, error) {
	geom, err := geos.NewGeomFromWKT(wktText)
	if err != nil {
		return nil, fmt.Errorf("invalid WKT geometry: %w", err)
	}
	return geom, nil
}

// parseWKTLineString parses WKT and requires a LineString. Supplying any
// other geometry kind is a hard failure, not a structured result.
func parseWKTLineString(wktText, role string) (*geos.Geom, error) {
	geom, err := parseWKTGeometry(wktText)
	if err != nil {
		return nil, err
	}
	if geom.TypeID() != geos.TypeIDLineString {
		return nil, fmt.Errorf("%s must be a LineString geometry", role)
	}
	return geom, nil
}

// averageLatitude returns the mean latitude over a line's vertices, used to
// derive the local meters-per-degree scale.
func averageLatitude(wktText string) (float64, error) {
	geom, err := orbwkt.Unmarshal(wktText)
	if err != nil {
		return 0, fmt.Errorf("invalid WKT geometry: %w", err)
	}
	line, ok := geom.(orb.LineString)
	if !ok {
		return 0, fmt.Errorf("expected a LineString geometry, got %s", geom.GeoJSONType())
	}
	if len(line) == 0 {
		return 0, fmt.Errorf("line has no coordinates")
	}

	sum := 0.0
	for _, p := range line {
		sum += p.Lat()
	}
	return sum / float64(len(line)), nil
}
