package gismcp

import (
	"context"
	"encoding/json"
	"fmt"
)

// Handler executes one registered operation against decoded parameters.
type Handler func(ctx context.Context, params map[string]any) (any, error)

// Param describes a single operation parameter for discovery.
type Param struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
	Default  any    `json:"default,omitempty"`
}

// Operation is a registered capability: a name, its parameter schema, and
// the handler that runs it.
type Operation struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Params      []Param `json:"params"`
	Handler     Handler `json:"-"`
}

// Registry maps operation names to handler records. It is built once at
// startup and queried by name; operations share no mutable state, so a
// single registry is safe for concurrent callers.
type Registry struct {
	ops   map[string]*Operation
	order []string
}

// Get looks up an operation by name.
func (r *Registry) Get(name string) (*Operation, bool) {
	op, ok := r.ops[name]
	return op, ok
}

// List returns all operations in registration order.
func (r *Registry) List() []*Operation {
	out := make([]*Operation, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.ops[name])
	}
	return out
}

// Execute runs a named operation with loosely typed parameters, as received
// from a CLI or RPC boundary.
func (r *Registry) Execute(ctx context.Context, name string, params map[string]any) (any, error) {
	op, ok := r.ops[name]
	if !ok {
		return nil, fmt.Errorf("unknown operation %q", name)
	}
	return op.Handler(ctx, params)
}

func (r *Registry) register(op *Operation) {
	r.ops[op.Name] = op
	r.order = append(r.order, op.Name)
}

// decodeParams maps a parameter map onto a typed struct via JSON tags.
// Defaults are whatever the destination struct was initialized with.
func decodeParams(params map[string]any, dst any) error {
	raw, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("encoding parameters: %w", err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("invalid parameters: %w", err)
	}
	return nil
}

// NewRegistry builds the operation registry for KML/KMZ overlay import and
// transmission line engineering calculations.
func NewRegistry() *Registry {
	r := &Registry{ops: map[string]*Operation{}}

	r.register(&Operation{
		Name:        "parse_kml_file",
		Description: "Parse KML content and extract geographic features",
		Params: []Param{
			{Name: "kml_content", Type: "string", Required: true},
			{Name: "extract_styles", Type: "bool", Default: true},
			{Name: "include_metadata", Type: "bool", Default: true},
		},
		Handler: func(ctx context.Context, params map[string]any) (any, error) {
			p := struct {
				KMLContent      string `json:"kml_content"`
				ExtractStyles   *bool  `json:"extract_styles"`
				IncludeMetadata *bool  `json:"include_metadata"`
			}{}
			if err := decodeParams(params, &p); err != nil {
				return nil, err
			}
			opts := ParseOptions{ExtractStyles: true, IncludeMetadata: true}
			if p.ExtractStyles != nil {
				opts.ExtractStyles = *p.ExtractStyles
			}
			if p.IncludeMetadata != nil {
				opts.IncludeMetadata = *p.IncludeMetadata
			}
			return ParseKML(p.KMLContent, opts), nil
		},
	})

	r.register(&Operation{
		Name:        "extract_kmz",
		Description: "Extract a KMZ archive and return the main KML content",
		Params: []Param{
			{Name: "kmz_path", Type: "string", Required: true},
			{Name: "output_dir", Type: "string"},
		},
		Handler: func(ctx context.Context, params map[string]any) (any, error) {
			p := struct {
				KMZPath   string `json:"kmz_path"`
				OutputDir string `json:"output_dir"`
			}{}
			if err := decodeParams(params, &p); err != nil {
				return nil, err
			}
			return ExtractKMZ(p.KMZPath, p.OutputDir)
		},
	})

	r.register(&Operation{
		Name:        "validate_transmission_line_kml",
		Description: "Validate KML for transmission line data integrity",
		Params: []Param{
			{Name: "kml_content", Type: "string", Required: true},
			{Name: "require_line_routes", Type: "bool", Default: true},
			{Name: "require_tower_points", Type: "bool", Default: true},
		},
		Handler: func(ctx context.Context, params map[string]any) (any, error) {
			p := struct {
				KMLContent         string `json:"kml_content"`
				RequireLineRoutes  *bool  `json:"require_line_routes"`
				RequireTowerPoints *bool  `json:"require_tower_points"`
			}{}
			if err := decodeParams(params, &p); err != nil {
				return nil, err
			}
			requireRoutes, requireTowers := true, true
			if p.RequireLineRoutes != nil {
				requireRoutes = *p.RequireLineRoutes
			}
			if p.RequireTowerPoints != nil {
				requireTowers = *p.RequireTowerPoints
			}
			return ValidateTransmissionLineKML(p.KMLContent, requireRoutes, requireTowers), nil
		},
	})

	r.register(&Operation{
		Name:        "convert_kml_to_geojson",
		Description: "Convert KML features to a GeoJSON FeatureCollection",
		Params: []Param{
			{Name: "kml_content", Type: "string", Required: true},
			{Name: "include_styles", Type: "bool", Default: false},
		},
		Handler: func(ctx context.Context, params map[string]any) (any, error) {
			p := struct {
				KMLContent    string `json:"kml_content"`
				IncludeStyles bool   `json:"include_styles"`
			}{}
			if err := decodeParams(params, &p); err != nil {
				return nil, err
			}
			return ConvertKMLToGeoJSON(p.KMLContent, p.IncludeStyles)
		},
	})

	r.register(&Operation{
		Name:        "extract_tower_locations",
		Description: "Extract tower/structure Point features from KML",
		Params: []Param{
			{Name: "kml_content", Type: "string", Required: true},
			{Name: "name_pattern", Type: "string"},
		},
		Handler: func(ctx context.Context, params map[string]any) (any, error) {
			p := struct {
				KMLContent  string `json:"kml_content"`
				NamePattern string `json:"name_pattern"`
			}{}
			if err := decodeParams(params, &p); err != nil {
				return nil, err
			}
			return ExtractTowerLocations(p.KMLContent, p.NamePattern)
		},
	})

	r.register(&Operation{
		Name:        "extract_line_routes",
		Description: "Extract transmission line route LineStrings from KML",
		Params: []Param{
			{Name: "kml_content", Type: "string", Required: true},
			{Name: "name_pattern", Type: "string"},
		},
		Handler: func(ctx context.Context, params map[string]any) (any, error) {
			p := struct {
				KMLContent  string `json:"kml_content"`
				NamePattern string `json:"name_pattern"`
			}{}
			if err := decodeParams(params, &p); err != nil {
				return nil, err
			}
			return ExtractLineRoutes(p.KMLContent, p.NamePattern)
		},
	})

	r.register(&Operation{
		Name:        "calculate_conductor_sag",
		Description: "Calculate conductor sag using catenary equations",
		Params: []Param{
			{Name: "span_length", Type: "number", Required: true},
			{Name: "conductor_weight", Type: "number", Required: true},
			{Name: "tension", Type: "number", Required: true},
			{Name: "temperature", Type: "number", Default: 15.0},
			{Name: "wind_pressure", Type: "number"},
		},
		Handler: func(ctx context.Context, params map[string]any) (any, error) {
			p := struct {
				SpanLength      float64  `json:"span_length"`
				ConductorWeight float64  `json:"conductor_weight"`
				Tension         float64  `json:"tension"`
				Temperature     float64  `json:"temperature"`
				WindPressure    *float64 `json:"wind_pressure"`
			}{Temperature: 15.0}
			if err := decodeParams(params, &p); err != nil {
				return nil, err
			}
			return CalculateConductorSag(p.SpanLength, p.ConductorWeight, p.Tension, p.Temperature, p.WindPressure)
		},
	})

	r.register(&Operation{
		Name:        "calculate_span_length",
		Description: "Calculate span length between two support structures",
		Params: []Param{
			{Name: "point1", Type: "[lon, lat, elevation?]", Required: true},
			{Name: "point2", Type: "[lon, lat, elevation?]", Required: true},
			{Name: "include_elevation", Type: "bool", Default: true},
		},
		Handler: func(ctx context.Context, params map[string]any) (any, error) {
			p := struct {
				Point1           []float64 `json:"point1"`
				Point2           []float64 `json:"point2"`
				IncludeElevation *bool     `json:"include_elevation"`
			}{}
			if err := decodeParams(params, &p); err != nil {
				return nil, err
			}
			includeElevation := true
			if p.IncludeElevation != nil {
				includeElevation = *p.IncludeElevation
			}
			return CalculateSpanLength(p.Point1, p.Point2, includeElevation)
		},
	})

	r.register(&Operation{
		Name:        "analyze_tower_placement",
		Description: "Analyze optimal tower placement along a route",
		Params: []Param{
			{Name: "route_line", Type: "wkt", Required: true},
			{Name: "typical_span", Type: "number", Default: 300.0},
			{Name: "min_span", Type: "number", Default: 200.0},
			{Name: "max_span", Type: "number", Default: 500.0},
		},
		Handler: func(ctx context.Context, params map[string]any) (any, error) {
			defaults := DefaultSpanConstraints()
			p := struct {
				RouteLine   string  `json:"route_line"`
				TypicalSpan float64 `json:"typical_span"`
				MinSpan     float64 `json:"min_span"`
				MaxSpan     float64 `json:"max_span"`
			}{
				TypicalSpan: defaults.TypicalSpanMeters,
				MinSpan:     defaults.MinSpanMeters,
				MaxSpan:     defaults.MaxSpanMeters,
			}
			if err := decodeParams(params, &p); err != nil {
				return nil, err
			}
			return AnalyzeTowerPlacement(p.RouteLine, SpanConstraints{
				TypicalSpanMeters: p.TypicalSpan,
				MinSpanMeters:     p.MinSpan,
				MaxSpanMeters:     p.MaxSpan,
			})
		},
	})

	r.register(&Operation{
		Name:        "check_clearance",
		Description: "Check clearance between conductor and obstacles",
		Params: []Param{
			{Name: "conductor_line", Type: "wkt", Required: true},
			{Name: "obstacle_geometry", Type: "wkt", Required: true},
			{Name: "minimum_clearance", Type: "number", Default: 7.0},
			{Name: "voltage_kv", Type: "number"},
		},
		Handler: func(ctx context.Context, params map[string]any) (any, error) {
			p := struct {
				ConductorLine    string   `json:"conductor_line"`
				ObstacleGeometry string   `json:"obstacle_geometry"`
				MinimumClearance float64  `json:"minimum_clearance"`
				VoltageKV        *float64 `json:"voltage_kv"`
			}{MinimumClearance: 7.0}
			if err := decodeParams(params, &p); err != nil {
				return nil, err
			}
			return CheckClearance(p.ConductorLine, p.ObstacleGeometry, p.MinimumClearance, p.VoltageKV)
		},
	})

	r.register(&Operation{
		Name:        "create_row_buffer",
		Description: "Create a right-of-way corridor along a centerline",
		Params: []Param{
			{Name: "centerline", Type: "wkt", Required: true},
			{Name: "row_width", Type: "number", Default: 30.0},
			{Name: "cap_style", Type: "string", Default: "flat"},
			{Name: "include_stations", Type: "bool", Default: false},
		},
		Handler: func(ctx context.Context, params map[string]any) (any, error) {
			p := struct {
				Centerline      string  `json:"centerline"`
				RowWidth        float64 `json:"row_width"`
				CapStyle        string  `json:"cap_style"`
				IncludeStations bool    `json:"include_stations"`
			}{RowWidth: 30.0, CapStyle: "flat"}
			if err := decodeParams(params, &p); err != nil {
				return nil, err
			}
			return CreateROWBuffer(p.Centerline, p.RowWidth, p.CapStyle, p.IncludeStations)
		},
	})

	r.register(&Operation{
		Name:        "calculate_structure_offsets",
		Description: "Generate parallel offset lines for structure staking",
		Params: []Param{
			{Name: "centerline", Type: "wkt", Required: true},
			{Name: "offset_meters", Type: "number", Default: 10.0},
		},
		Handler: func(ctx context.Context, params map[string]any) (any, error) {
			p := struct {
				Centerline   string  `json:"centerline"`
				OffsetMeters float64 `json:"offset_meters"`
			}{OffsetMeters: 10.0}
			if err := decodeParams(params, &p); err != nil {
				return nil, err
			}
			return CalculateStructureOffsets(p.Centerline, p.OffsetMeters)
		},
	})

	r.register(&Operation{
		Name:        "calculate_catenary_curve",
		Description: "Generate catenary curve points for visualization",
		Params: []Param{
			{Name: "span_length", Type: "number", Required: true},
			{Name: "sag", Type: "number", Required: true},
			{Name: "num_points", Type: "int", Default: 50},
		},
		Handler: func(ctx context.Context, params map[string]any) (any, error) {
			p := struct {
				SpanLength float64 `json:"span_length"`
				Sag        float64 `json:"sag"`
				NumPoints  int     `json:"num_points"`
			}{NumPoints: 50}
			if err := decodeParams(params, &p); err != nil {
				return nil, err
			}
			return CalculateCatenaryCurve(p.SpanLength, p.Sag, p.NumPoints)
		},
	})

	r.register(&Operation{
		Name:        "analyze_line_of_sight",
		Description: "Analyze line-of-sight visibility between two towers",
		Params: []Param{
			{Name: "point1", Type: "[lon, lat, elevation]", Required: true},
			{Name: "point2", Type: "[lon, lat, elevation]", Required: true},
			{Name: "terrain_profile", Type: "[]number", Required: true},
			{Name: "observer_height", Type: "number", Default: 2.0},
			{Name: "target_height", Type: "number", Default: 30.0},
		},
		Handler: func(ctx context.Context, params map[string]any) (any, error) {
			p := struct {
				Point1         []float64 `json:"point1"`
				Point2         []float64 `json:"point2"`
				TerrainProfile []float64 `json:"terrain_profile"`
				ObserverHeight float64   `json:"observer_height"`
				TargetHeight   float64   `json:"target_height"`
			}{ObserverHeight: 2.0, TargetHeight: 30.0}
			if err := decodeParams(params, &p); err != nil {
				return nil, err
			}
			return AnalyzeLineOfSight(p.Point1, p.Point2, p.TerrainProfile, p.ObserverHeight, p.TargetHeight)
		},
	})

	return r
}
