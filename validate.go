package gismcp

import (
	"fmt"
	"log/slog"
)

// ValidateTransmissionLineKML checks a KML document for the elements a
// transmission-line import needs: LineString routes and Point tower locations
// (each independently required), coordinates inside WGS84 ranges, and the
// presence of elevation data. Business failures land in the error/warning
// lists, never in a Go error; Valid is true iff the error list is empty.
func ValidateTransmissionLineKML(kmlContent string, requireLineRoutes, requireTowerPoints bool) *ValidationResult {
	parseResult := ParseKML(kmlContent, ParseOptions{ExtractStyles: false, IncludeMetadata: true})

	if !parseResult.Success {
		return &ValidationResult{
			Valid:              false,
			ValidationErrors:   []string{"Failed to parse KML"},
			ValidationWarnings: []string{},
		}
	}

	errors := []string{}
	warnings := []string{}

	if requireLineRoutes && parseResult.GeometryTypes[GeometryLineString] == 0 {
		errors = append(errors, "No LineString features found (required for transmission line routes)")
	}
	if requireTowerPoints && parseResult.GeometryTypes[GeometryPoint] == 0 {
		errors = append(errors, "No Point features found (required for tower locations)")
	}

	hasElevation := false
	for _, feature := range parseResult.Features {
		if len(feature.Coordinates) == 0 {
			warnings = append(warnings, fmt.Sprintf("Feature '%s' has no coordinates", feature.Name))
			continue
		}
		for _, coord := range feature.Coordinates {
			if !ValidCoordinate(coord.Lon, coord.Lat) {
				errors = append(errors, fmt.Sprintf(
					"Invalid coordinate in feature '%s': [%v, %v, %v]",
					feature.Name, coord.Lon, coord.Lat, coord.Elev))
			}
			if coord.Elev != 0 {
				hasElevation = true
			}
		}
	}

	if !hasElevation {
		warnings = append(warnings, "No elevation data found in coordinates (z-values are 0 or missing)")
	}

	return &ValidationResult{
		Valid:              len(errors) == 0,
		ValidationErrors:   errors,
		ValidationWarnings: warnings,
		FeatureSummary: &FeatureSummary{
			TotalFeatures:    parseResult.FeatureCount,
			GeometryTypes:    parseResult.GeometryTypes,
			HasElevationData: hasElevation,
		},
		Metadata: parseResult.Metadata,
	}
}

// Print logs the validation outcome.
func (r *ValidationResult) Print() {
	logger := slog.With("errors", len(r.ValidationErrors), "warnings", len(r.ValidationWarnings))

	if r.Valid {
		logger.Info("transmission line KML validation PASSED")
	} else {
		logger.Error("transmission line KML validation FAILED")
	}
	for _, e := range r.ValidationErrors {
		slog.Error("validation error", "message", e)
	}
	for _, w := range r.ValidationWarnings {
		slog.Warn("validation warning", "message", w)
	}
	if s := r.FeatureSummary; s != nil {
		slog.Info("feature summary",
			"total_features", s.TotalFeatures,
			"geometry_types", s.GeometryTypes,
			"has_elevation_data", s.HasElevationData,
		)
	}
}
