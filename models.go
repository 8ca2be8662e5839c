package gismcp

import "github.com/paulmach/orb"

// GeometryType identifies the kind of geometry extracted from a placemark.
type GeometryType string

const (
	GeometryPoint      GeometryType = "Point"
	GeometryLineString GeometryType = "LineString"
	GeometryPolygon    GeometryType = "Polygon"
)

// Coordinate is a lon/lat/elevation triple as it appears in KML coordinate
// strings. Elevation defaults to 0 when the source omits it.
type Coordinate struct {
	Lon  float64 `json:"lon"`
	Lat  float64 `json:"lat"`
	Elev float64 `json:"elev"`
}

// GeoFeature is a single placemark extracted from a KML document.
// Point features carry exactly one coordinate; LineString and Polygon
// features carry the full vertex sequence in document order.
type GeoFeature struct {
	Name         string            `json:"name,omitempty"`
	Description  string            `json:"description,omitempty"`
	GeometryType GeometryType      `json:"geometry_type"`
	GeometryWKT  string            `json:"geometry_wkt"`
	Coordinates  []Coordinate      `json:"coordinates"`
	ExtendedData map[string]string `json:"extended_data,omitempty"`
}

// Geometry rebuilds the orb geometry value for this feature.
func (f *GeoFeature) Geometry() orb.Geometry {
	switch f.GeometryType {
	case GeometryPoint:
		if len(f.Coordinates) == 0 {
			return nil
		}
		return orb.Point{f.Coordinates[0].Lon, f.Coordinates[0].Lat}
	case GeometryLineString:
		line := make(orb.LineString, 0, len(f.Coordinates))
		for _, c := range f.Coordinates {
			line = append(line, orb.Point{c.Lon, c.Lat})
		}
		return line
	case GeometryPolygon:
		ring := make(orb.Ring, 0, len(f.Coordinates))
		for _, c := range f.Coordinates {
			ring = append(ring, orb.Point{c.Lon, c.Lat})
		}
		return orb.Polygon{ring}
	}
	return nil
}

// LineStyleRecord holds line rendering attributes from a KML Style.
type LineStyleRecord struct {
	Color string  `json:"color,omitempty"`
	Width float64 `json:"width"`
}

// IconStyleRecord holds icon rendering attributes from a KML Style.
type IconStyleRecord struct {
	Href  string  `json:"href,omitempty"`
	Scale float64 `json:"scale"`
}

// StyleRecord is a KML style definition keyed by its id attribute.
type StyleRecord struct {
	Line *LineStyleRecord `json:"line,omitempty"`
	Icon *IconStyleRecord `json:"icon,omitempty"`
}

// DocumentMetadata is the document-level name/description pair.
type DocumentMetadata struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

// ParseResult is the canonical hand-off between KML extraction and every
// downstream consumer. A malformed document is reported with Success=false
// rather than an error; callers must check the flag.
type ParseResult struct {
	Features      []GeoFeature           `json:"features"`
	FeatureCount  int                    `json:"feature_count"`
	GeometryTypes map[GeometryType]int   `json:"geometry_types"`
	Styles        map[string]StyleRecord `json:"styles,omitempty"`
	Metadata      *DocumentMetadata      `json:"metadata,omitempty"`
	Success       bool                   `json:"success"`
	Error         string                 `json:"error,omitempty"`
}

// KMZExtractionResult reports the outcome of unpacking a KMZ archive.
type KMZExtractionResult struct {
	Success        bool     `json:"success"`
	Error          string   `json:"error,omitempty"`
	KMLContent     string   `json:"kml_content,omitempty"`
	KMLFilename    string   `json:"kml_filename,omitempty"`
	ExtractedFiles []string `json:"extracted_files,omitempty"`
	ExtractionPath string   `json:"extraction_path,omitempty"`
	KMLFileCount   int      `json:"kml_file_count"`
}

// FeatureSummary aggregates what validation found in a document.
type FeatureSummary struct {
	TotalFeatures    int                  `json:"total_features"`
	GeometryTypes    map[GeometryType]int `json:"geometry_types"`
	HasElevationData bool                 `json:"has_elevation_data"`
}

// ValidationResult reports transmission-line KML validation. Warnings never
// affect Valid; Valid is true iff ValidationErrors is empty.
type ValidationResult struct {
	Valid              bool              `json:"valid"`
	ValidationErrors   []string          `json:"validation_errors"`
	ValidationWarnings []string          `json:"validation_warnings"`
	FeatureSummary     *FeatureSummary   `json:"feature_summary,omitempty"`
	Metadata           *DocumentMetadata `json:"metadata,omitempty"`
}

// Tower is one extracted support-structure location.
type Tower struct {
	Name         string            `json:"name,omitempty"`
	Coordinates  Coordinate        `json:"coordinates"`
	Longitude    float64           `json:"longitude"`
	Latitude     float64           `json:"latitude"`
	Elevation    float64           `json:"elevation"`
	Description  string            `json:"description,omitempty"`
	ExtendedData map[string]string `json:"extended_data,omitempty"`
}

// BoundingBox is the geographic extent of a set of points.
type BoundingBox struct {
	MinLon float64 `json:"min_lon"`
	MaxLon float64 `json:"max_lon"`
	MinLat float64 `json:"min_lat"`
	MaxLat float64 `json:"max_lat"`
}

// TowerExtractionResult reports Point features filtered as tower locations.
type TowerExtractionResult struct {
	Success           bool         `json:"success"`
	Error             string       `json:"error,omitempty"`
	Towers            []Tower      `json:"towers"`
	TowerCount        int          `json:"tower_count"`
	BoundingBox       *BoundingBox `json:"bounding_box,omitempty"`
	NameFilterApplied bool         `json:"name_filter_applied"`
}

// Route is one extracted transmission line centerline.
type Route struct {
	Name          string            `json:"name,omitempty"`
	Coordinates   []Coordinate      `json:"coordinates"`
	GeometryWKT   string            `json:"geometry_wkt"`
	LengthDegrees float64           `json:"length_degrees"`
	VertexCount   int               `json:"vertex_count"`
	Description   string            `json:"description,omitempty"`
	ExtendedData  map[string]string `json:"extended_data,omitempty"`
}

// RouteExtractionResult reports LineString features filtered as line routes.
// Lengths are planar and in native coordinate degrees, not meters.
type RouteExtractionResult struct {
	Success            bool    `json:"success"`
	Error              string  `json:"error,omitempty"`
	Routes             []Route `json:"routes"`
	RouteCount         int     `json:"route_count"`
	TotalLengthDegrees float64 `json:"total_length_degrees"`
	NameFilterApplied  bool    `json:"name_filter_applied"`
}

// SagResult holds the conductor sag computation outputs.
type SagResult struct {
	SagMeters               float64 `json:"sag_meters"`
	CatenaryConstant        float64 `json:"catenary_constant"`
	ConductorLengthMeters   float64 `json:"conductor_length_meters"`
	LowestPointHeightMeters float64 `json:"lowest_point_height_meters"`
	ThermalCoefficient      float64 `json:"thermal_coefficient"`
	TemperatureCelsius      float64 `json:"temperature_celsius"`
	WindLoaded              bool    `json:"wind_loaded"`
	EffectiveWeightKgPerM   float64 `json:"effective_weight_kg_per_m"`
}

// CatenaryCurveResult holds sampled conductor curve points for visualization.
type CatenaryCurveResult struct {
	CurvePoints       [][2]float64 `json:"curve_points"`
	CatenaryConstant  float64      `json:"catenary_constant"`
	MaxSagMeters      float64      `json:"max_sag_meters"`
	SpanLengthMeters  float64      `json:"span_length_meters"`
	CurveLengthMeters float64      `json:"curve_length_meters"`
	NumPoints         int          `json:"num_points"`
	Equation          string       `json:"equation"`
}

// SpanMidpoint is the naive coordinate-wise midpoint of a span. This is not
// the geodesic midpoint; the averaging approximation is intentional.
type SpanMidpoint struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
	Elevation float64 `json:"elevation"`
}

// SpanResult holds span distance and orientation between two structures.
// Slant distance and slope angle are present only when both points carry
// elevation and elevation handling was requested.
type SpanResult struct {
	HorizontalDistanceMeters  float64      `json:"horizontal_distance_meters"`
	ElevationDifferenceMeters float64      `json:"elevation_difference_meters"`
	AzimuthDegrees            float64      `json:"azimuth_degrees"`
	BackAzimuthDegrees        float64      `json:"back_azimuth_degrees"`
	Midpoint                  SpanMidpoint `json:"midpoint"`
	SlantDistanceMeters       *float64     `json:"slant_distance_meters,omitempty"`
	SlopeAngleDegrees         *float64     `json:"slope_angle_degrees,omitempty"`
}

// SpanConstraints bound the tower placement optimization.
type SpanConstraints struct {
	TypicalSpanMeters float64 `json:"typical_span_meters"`
	MinSpanMeters     float64 `json:"min_span_meters"`
	MaxSpanMeters     float64 `json:"max_span_meters"`
}

// DefaultSpanConstraints returns the standard 200/300/500 m design envelope.
func DefaultSpanConstraints() SpanConstraints {
	return SpanConstraints{
		TypicalSpanMeters: 300,
		MinSpanMeters:     200,
		MaxSpanMeters:     500,
	}
}

// TowerPlacementResult holds the optimized tower layout along a route.
// Invariant: TowerCount == NumSpans + 1 and len(SpanLengths) == NumSpans.
type TowerPlacementResult struct {
	TowerCount             int             `json:"tower_count"`
	TowerPositions         [][2]float64    `json:"tower_positions"`
	SpanLengths            []float64       `json:"span_lengths"`
	TotalRouteLengthMeters float64         `json:"total_route_length_meters"`
	AverageSpanMeters      float64         `json:"average_span_meters"`
	NumSpans               int             `json:"num_spans"`
	Constraints            SpanConstraints `json:"constraints"`
}

// ClearanceResult holds the conductor/obstacle separation check.
type ClearanceResult struct {
	ClearanceOK             bool       `json:"clearance_ok"`
	MinimumDistanceMeters   float64    `json:"minimum_distance_meters"`
	RequiredClearanceMeters float64    `json:"required_clearance_meters"`
	ClearanceMarginMeters   float64    `json:"clearance_margin_meters"`
	NearestPointOnConductor [2]float64 `json:"nearest_point_on_conductor"`
	NearestPointOnObstacle  [2]float64 `json:"nearest_point_on_obstacle"`
	VoltageKV               *float64   `json:"voltage_kv,omitempty"`
	Status                  string     `json:"status"`
}

// StationMarker is a survey station placed along a ROW centerline.
type StationMarker struct {
	StationNumber  int        `json:"station_number"`
	Position       [2]float64 `json:"position"`
	DistanceMeters float64    `json:"distance_meters"`
}

// ROWBufferResult holds the right-of-way corridor polygon and its metrics.
type ROWBufferResult struct {
	RowPolygonWKT          string          `json:"row_polygon_wkt"`
	RowAreaSqMeters        float64         `json:"row_area_sq_meters"`
	RowAreaAcres           float64         `json:"row_area_acres"`
	CenterlineLengthMeters float64         `json:"centerline_length_meters"`
	RowWidthMeters         float64         `json:"row_width_meters"`
	CapStyle               string          `json:"cap_style"`
	Stations               []StationMarker `json:"stations,omitempty"`
}

// StructureOffsetsResult holds parallel offset lines used for structure
// staking on either side of a centerline.
type StructureOffsetsResult struct {
	LeftOffsetWKT          string  `json:"left_offset_wkt"`
	RightOffsetWKT         string  `json:"right_offset_wkt"`
	OffsetMeters           float64 `json:"offset_meters"`
	CenterlineLengthMeters float64 `json:"centerline_length_meters"`
}

// LineOfSightResult holds sight-line obstruction analysis between towers.
type LineOfSightResult struct {
	LineOfSightClear           bool    `json:"line_of_sight_clear"`
	ClearanceMarginMeters      float64 `json:"clearance_margin_meters"`
	MaxObstructionHeightMeters float64 `json:"max_obstruction_height_meters"`
	ObstructionCount           int     `json:"obstruction_count"`
	ObstructionSampleIndices   []int   `json:"obstruction_sample_indices"`
	ObserverHeightASLMeters    float64 `json:"observer_height_asl_meters"`
	TargetHeightASLMeters      float64 `json:"target_height_asl_meters"`
	ProfileSamples             int     `json:"profile_samples"`
	Status                     string  `json:"status"`
}
