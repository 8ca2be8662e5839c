package gismcp

import (
	"fmt"
	"math"
	"regexp"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// compileNameFilter builds the first-match-anchored matcher used by the
// extraction filters. The pattern is anchored at the start but not the end,
// so "Tower" matches a name of "Tower 12 extra". An empty pattern matches
// everything.
func compileNameFilter(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, nil
	}
	re, err := regexp.Compile("^(?:" + pattern + ")")
	if err != nil {
		return nil, fmt.Errorf("invalid name pattern %q: %w", pattern, err)
	}
	return re, nil
}

// ExtractTowerLocations filters Point placemarks representing transmission
// towers or other support structures, optionally by name pattern, and
// computes the geographic bounding box over all matches.
func ExtractTowerLocations(kmlContent, namePattern string) (*TowerExtractionResult, error) {
	filter, err := compileNameFilter(namePattern)
	if err != nil {
		return nil, err
	}

	parseResult := ParseKML(kmlContent, ParseOptions{ExtractStyles: false, IncludeMetadata: true})
	if !parseResult.Success {
		return &TowerExtractionResult{
			Success:           false,
			Error:             "Failed to parse KML",
			Towers:            []Tower{},
			NameFilterApplied: namePattern != "",
		}, nil
	}

	towers := []Tower{}
	var bbox *BoundingBox
	for _, feature := range parseResult.Features {
		if feature.GeometryType != GeometryPoint || len(feature.Coordinates) == 0 {
			continue
		}
		if filter != nil && !filter.MatchString(feature.Name) {
			continue
		}

		coord := feature.Coordinates[0]
		towers = append(towers, Tower{
			Name:         feature.Name,
			Coordinates:  coord,
			Longitude:    coord.Lon,
			Latitude:     coord.Lat,
			Elevation:    coord.Elev,
			Description:  feature.Description,
			ExtendedData: feature.ExtendedData,
		})

		if bbox == nil {
			bbox = &BoundingBox{MinLon: coord.Lon, MaxLon: coord.Lon, MinLat: coord.Lat, MaxLat: coord.Lat}
		} else {
			bbox.MinLon = math.Min(bbox.MinLon, coord.Lon)
			bbox.MaxLon = math.Max(bbox.MaxLon, coord.Lon)
			bbox.MinLat = math.Min(bbox.MinLat, coord.Lat)
			bbox.MaxLat = math.Max(bbox.MaxLat, coord.Lat)
		}
	}

	return &TowerExtractionResult{
		Success:           true,
		Towers:            towers,
		TowerCount:        len(towers),
		BoundingBox:       bbox,
		NameFilterApplied: namePattern != "",
	}, nil
}

// ExtractLineRoutes filters LineString placemarks representing transmission
// line centerlines, optionally by name pattern. Route lengths are planar and
// reported in native coordinate degrees, not meters.
func ExtractLineRoutes(kmlContent, namePattern string) (*RouteExtractionResult, error) {
	filter, err := compileNameFilter(namePattern)
	if err != nil {
		return nil, err
	}

	parseResult := ParseKML(kmlContent, ParseOptions{ExtractStyles: false, IncludeMetadata: true})
	if !parseResult.Success {
		return &RouteExtractionResult{
			Success:           false,
			Error:             "Failed to parse KML",
			Routes:            []Route{},
			NameFilterApplied: namePattern != "",
		}, nil
	}

	routes := []Route{}
	totalLength := 0.0
	for i := range parseResult.Features {
		feature := &parseResult.Features[i]
		if feature.GeometryType != GeometryLineString {
			continue
		}
		if filter != nil && !filter.MatchString(feature.Name) {
			continue
		}

		line, ok := feature.Geometry().(orb.LineString)
		if !ok {
			continue
		}
		length := planar.Length(line)
		totalLength += length

		routes = append(routes, Route{
			Name:          feature.Name,
			Coordinates:   feature.Coordinates,
			GeometryWKT:   feature.GeometryWKT,
			LengthDegrees: roundTo(length, 6),
			VertexCount:   len(feature.Coordinates),
			Description:   feature.Description,
			ExtendedData:  feature.ExtendedData,
		})
	}

	return &RouteExtractionResult{
		Success:            true,
		Routes:             routes,
		RouteCount:         len(routes),
		TotalLengthDegrees: roundTo(totalLength, 6),
		NameFilterApplied:  namePattern != "",
	}, nil
}
