package gismcp

import (
	"encoding/json"
	"log/slog"

	"github.com/paulmach/orb/geojson"
)

// ConversionResult reports a KML to GeoJSON conversion.
type ConversionResult struct {
	ConversionSuccess bool                       `json:"conversion_success"`
	GeoJSON           *geojson.FeatureCollection `json:"geojson,omitempty"`
	GeoJSONString     string                     `json:"geojson_string,omitempty"`
	FeatureCount      int                        `json:"feature_count"`
	Error             string                     `json:"error,omitempty"`
}

// ConvertKMLToGeoJSON converts KML placemarks to a GeoJSON FeatureCollection.
// Name, description, and extended data become feature properties; coordinates
// pass through untouched (no reprojection). A malformed KML document
// short-circuits with ConversionSuccess=false.
func ConvertKMLToGeoJSON(kmlContent string, includeStyles bool) (*ConversionResult, error) {
	logger := slog.With("component", "geojson")

	parseResult := ParseKML(kmlContent, ParseOptions{ExtractStyles: includeStyles, IncludeMetadata: true})
	if !parseResult.Success {
		return &ConversionResult{
			ConversionSuccess: false,
			Error:             "Failed to parse KML",
		}, nil
	}

	fc := geojson.NewFeatureCollection()
	for i := range parseResult.Features {
		feature := &parseResult.Features[i]
		geom := feature.Geometry()
		if geom == nil {
			continue
		}

		gf := geojson.NewFeature(geom)
		if feature.Name != "" {
			gf.Properties["name"] = feature.Name
		} else {
			gf.Properties["name"] = nil
		}
		if feature.Description != "" {
			gf.Properties["description"] = feature.Description
		} else {
			gf.Properties["description"] = nil
		}
		for k, v := range feature.ExtendedData {
			gf.Properties[k] = v
		}
		fc.Append(gf)
	}

	encoded, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return nil, err
	}

	logger.Info("features converted to GeoJSON", "count", len(fc.Features))

	return &ConversionResult{
		ConversionSuccess: true,
		GeoJSON:           fc,
		GeoJSONString:     string(encoded),
		FeatureCount:      len(fc.Features),
	}, nil
}
