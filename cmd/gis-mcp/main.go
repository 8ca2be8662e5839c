package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	gismcp "github.com/DigiRoninCollective/gis-mcp"
)

func main() {
	// Parse flags
	configPath := flag.String("config", ".env", "Path to config file")
	debug := flag.Bool("debug", false, "Enable debug logging")
	help := flag.Bool("help", false, "Show help message")
	flag.Parse()

	// Show help if requested or no arguments provided
	args := flag.Args()
	if *help || len(args) == 0 {
		showHelp()
		os.Exit(0)
	}

	command := args[0]

	// Setup logging
	logLevel := slog.LevelInfo
	if *debug {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Handle different commands
	if command == "list" {
		cmdList(args[1:])
	} else if command == "call" {
		cmdCall(args[1:], configPath)
	} else if command == "parse" {
		cmdParse(args[1:])
	} else if command == "validate" {
		cmdValidate(args[1:])
	} else if command == "convert" {
		cmdConvert(args[1:])
	} else if command == "extract" {
		cmdExtract(args[1:], configPath)
	} else {
		slog.Error("unknown command", "command", command)
		showHelp()
		os.Exit(1)
	}
}

// loadKMLContent reads a KML or KMZ file and returns the KML text. KMZ
// archives are extracted into a temporary directory first.
func loadKMLContent(path, tempDir string) (string, error) {
	if strings.HasSuffix(strings.ToLower(path), ".kmz") {
		result, err := gismcp.ExtractKMZ(path, tempDir)
		if err != nil {
			return "", err
		}
		if !result.Success {
			return "", fmt.Errorf("%s", result.Error)
		}
		return result.KMLContent, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read KML file: %w", err)
	}
	return string(data), nil
}

// printJSON writes a result to stdout as indented JSON.
func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		slog.Error("failed to encode result", "error", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}

// cmdList prints the registered operations and their parameters
func cmdList(args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	asJSON := fs.Bool("json", false, "Print the operation catalog as JSON")
	fs.Parse(args)

	registry := gismcp.NewRegistry()

	if *asJSON {
		printJSON(registry.List())
		return
	}

	for _, op := range registry.List() {
		fmt.Printf("%-32s %s\n", op.Name, op.Description)
		for _, p := range op.Params {
			required := ""
			if p.Required {
				required = " (required)"
			}
			defaultVal := ""
			if p.Default != nil {
				defaultVal = fmt.Sprintf(" [default %v]", p.Default)
			}
			fmt.Printf("    %-24s %s%s%s\n", p.Name, p.Type, required, defaultVal)
		}
	}
}

// cmdCall executes a single registered operation with JSON parameters
func cmdCall(args []string, configPath *string) {
	fs := flag.NewFlagSet("call", flag.ExitOnError)
	paramsJSON := fs.String("params", "{}", "Operation parameters as a JSON object")
	kmlFile := fs.String("kml-file", "", "Read this KML/KMZ file and pass its content as kml_content")
	fs.Parse(args)

	parsedArgs := fs.Args()
	if len(parsedArgs) == 0 {
		slog.Error("operation name required")
		slog.Info("Usage: gis-mcp call <operation> [-params '{...}'] [-kml-file path]")
		os.Exit(1)
	}
	opName := parsedArgs[0]

	cfg, err := gismcp.LoadConfig(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	params := map[string]any{}
	if err := json.Unmarshal([]byte(*paramsJSON), &params); err != nil {
		slog.Error("invalid -params JSON", "error", err)
		os.Exit(1)
	}

	if *kmlFile != "" {
		content, err := loadKMLContent(*kmlFile, cfg.Paths.TempDir)
		if err != nil {
			slog.Error("failed to load KML content", "file", *kmlFile, "error", err)
			os.Exit(1)
		}
		params["kml_content"] = content
	}

	applyConfigDefaults(opName, params, cfg)

	registry := gismcp.NewRegistry()
	result, err := registry.Execute(context.Background(), opName, params)
	if err != nil {
		slog.Error("operation failed", "operation", opName, "error", err)
		os.Exit(1)
	}

	printJSON(result)
}

// applyConfigDefaults fills engineering parameters from configuration when the
// caller did not pass them. Explicit -params values always win.
func applyConfigDefaults(opName string, params map[string]any, cfg *gismcp.Config) {
	setIfAbsent := func(key string, value any) {
		if _, ok := params[key]; !ok {
			params[key] = value
		}
	}

	switch opName {
	case "analyze_tower_placement":
		setIfAbsent("typical_span", cfg.Engineering.TypicalSpanMeters)
		setIfAbsent("min_span", cfg.Engineering.MinSpanMeters)
		setIfAbsent("max_span", cfg.Engineering.MaxSpanMeters)
	case "check_clearance":
		setIfAbsent("minimum_clearance", cfg.Engineering.MinClearanceMeters)
	case "create_row_buffer":
		setIfAbsent("row_width", cfg.Engineering.ROWWidthMeters)
	}
}

// cmdParse parses a KML/KMZ file and prints the feature summary
func cmdParse(args []string) {
	fs := flag.NewFlagSet("parse", flag.ExitOnError)
	fullOutput := fs.Bool("full", false, "Print the full parse result instead of a summary")
	fs.Parse(args)

	parsedArgs := fs.Args()
	if len(parsedArgs) == 0 {
		slog.Error("KML or KMZ file required")
		slog.Info("Usage: gis-mcp parse <file.kml|file.kmz> [-full]")
		os.Exit(1)
	}
	path := parsedArgs[0]

	content, err := loadKMLContent(path, "")
	if err != nil {
		slog.Error("failed to load KML content", "file", path, "error", err)
		os.Exit(1)
	}

	result := gismcp.ParseKML(content, gismcp.ParseOptions{ExtractStyles: true, IncludeMetadata: true})
	if !result.Success {
		slog.Error("parse failed", "file", path, "error", result.Error)
		os.Exit(1)
	}

	if *fullOutput {
		printJSON(result)
		return
	}

	fmt.Printf("File:     %s\n", filepath.Base(path))
	fmt.Printf("Features: %d\n", result.FeatureCount)
	for geomType, count := range result.GeometryTypes {
		fmt.Printf("  %-12s %d\n", geomType, count)
	}
	if result.Metadata != nil && result.Metadata.Name != "" {
		fmt.Printf("Document: %s\n", result.Metadata.Name)
	}
}

// cmdValidate checks a KML/KMZ file for transmission line data integrity
func cmdValidate(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	requireRoutes := fs.Bool("require-routes", true, "Require LineString route features")
	requireTowers := fs.Bool("require-towers", true, "Require Point tower features")
	fs.Parse(args)

	parsedArgs := fs.Args()
	if len(parsedArgs) == 0 {
		slog.Error("KML or KMZ file required")
		slog.Info("Usage: gis-mcp validate <file.kml|file.kmz> [-require-routes=false] [-require-towers=false]")
		os.Exit(1)
	}
	path := parsedArgs[0]

	content, err := loadKMLContent(path, "")
	if err != nil {
		slog.Error("failed to load KML content", "file", path, "error", err)
		os.Exit(1)
	}

	result := gismcp.ValidateTransmissionLineKML(content, *requireRoutes, *requireTowers)
	result.Print()

	if !result.Valid {
		os.Exit(1)
	}
}

// cmdConvert converts a KML/KMZ file to GeoJSON
func cmdConvert(args []string) {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	output := fs.String("output", "", "Output GeoJSON path (default: input name with .geojson)")
	includeStyles := fs.Bool("include-styles", false, "Include KML style properties in GeoJSON")
	fs.Parse(args)

	parsedArgs := fs.Args()
	if len(parsedArgs) == 0 {
		slog.Error("KML or KMZ file required")
		slog.Info("Usage: gis-mcp convert <file.kml|file.kmz> [-output out.geojson]")
		os.Exit(1)
	}
	path := parsedArgs[0]

	outputPath := *output
	if outputPath == "" {
		outputPath = strings.TrimSuffix(path, filepath.Ext(path)) + ".geojson"
	}

	content, err := loadKMLContent(path, "")
	if err != nil {
		slog.Error("failed to load KML content", "file", path, "error", err)
		os.Exit(1)
	}

	result, err := gismcp.ConvertKMLToGeoJSON(content, *includeStyles)
	if err != nil {
		slog.Error("conversion failed", "file", path, "error", err)
		os.Exit(1)
	}
	if !result.ConversionSuccess {
		slog.Error("conversion failed", "file", path, "error", result.Error)
		os.Exit(1)
	}

	if err := os.WriteFile(outputPath, []byte(result.GeoJSONString), 0644); err != nil {
		slog.Error("failed to write output", "file", outputPath, "error", err)
		os.Exit(1)
	}

	slog.Info("conversion completed", "features", result.FeatureCount, "output", outputPath)
}

// cmdExtract extracts tower locations or line routes from a KML/KMZ file
func cmdExtract(args []string, configPath *string) {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	namePattern := fs.String("name-pattern", "", "Regex filter applied to feature names")
	fs.Parse(args)

	parsedArgs := fs.Args()
	if len(parsedArgs) < 2 {
		slog.Error("extraction kind and file required")
		slog.Info("Usage: gis-mcp extract <towers|routes> <file.kml|file.kmz> [-name-pattern regex]")
		os.Exit(1)
	}
	kind := parsedArgs[0]
	path := parsedArgs[1]

	cfg, err := gismcp.LoadConfig(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	content, err := loadKMLContent(path, cfg.Paths.TempDir)
	if err != nil {
		slog.Error("failed to load KML content", "file", path, "error", err)
		os.Exit(1)
	}

	switch kind {
	case "towers":
		result, err := gismcp.ExtractTowerLocations(content, *namePattern)
		if err != nil {
			slog.Error("tower extraction failed", "error", err)
			os.Exit(1)
		}
		printJSON(result)
	case "routes":
		result, err := gismcp.ExtractLineRoutes(content, *namePattern)
		if err != nil {
			slog.Error("route extraction failed", "error", err)
			os.Exit(1)
		}
		printJSON(result)
	default:
		slog.Error("unknown extraction kind", "kind", kind)
		slog.Info("available: towers, routes")
		os.Exit(1)
	}
}

func showHelp() {
	help := `GIS Tool Service - KML/KMZ processing and transmission line engineering

Usage:
  gis-mcp [global options] <command> [command options] [arguments]

Global Options:
  -config string        Path to .env configuration file (default ".env")
  -debug                Enable debug logging
  -help                 Show this help message

Commands:
  list                  List the registered operations and their parameters
  call                  Execute a registered operation with JSON parameters
  parse                 Parse a KML/KMZ file and print a feature summary
  validate              Validate a KML/KMZ file for transmission line data
  convert               Convert a KML/KMZ file to GeoJSON
  extract               Extract tower locations or line routes

List Command:
  Usage: gis-mcp list [-json]

  Options:
    -json                 Print the operation catalog as JSON

Call Command:
  Usage: gis-mcp call <operation> [-params '{...}'] [-kml-file path]

  Arguments:
    <operation>           Operation name from "gis-mcp list"

  Options:
    -params string        Operation parameters as a JSON object (default "{}")
    -kml-file string      Read this KML/KMZ file and pass its content as kml_content

Parse Command:
  Usage: gis-mcp parse <file.kml|file.kmz> [-full]

  Options:
    -full                 Print the full parse result instead of a summary

Validate Command:
  Usage: gis-mcp validate <file.kml|file.kmz> [options]

  Options:
    -require-routes       Require LineString route features (default true)
    -require-towers       Require Point tower features (default true)

  Description:
    Exits 0 if validation passes, 1 if issues are found.

Convert Command:
  Usage: gis-mcp convert <file.kml|file.kmz> [options]

  Options:
    -output string        Output GeoJSON path (default: input name with .geojson)
    -include-styles       Include KML style properties in GeoJSON

Extract Command:
  Usage: gis-mcp extract <towers|routes> <file.kml|file.kmz> [options]

  Options:
    -name-pattern string  Regex filter applied to feature names

Examples:
  # List all operations
  ./gis-mcp list

  # Calculate conductor sag for a 300 m span
  ./gis-mcp call calculate_conductor_sag -params '{"span_length": 300, "conductor_weight": 1.5, "tension": 20000}'

  # Check clearance between a conductor and a building footprint
  ./gis-mcp call check_clearance -params '{"conductor_line": "LINESTRING(0 0, 0.01 0)", "obstacle_geometry": "POINT(0.005 0.0001)", "voltage_kv": 230}'

  # Create a 30 m right-of-way corridor with station markers
  ./gis-mcp call create_row_buffer -params '{"centerline": "LINESTRING(0 0, 0.01 0)", "row_width": 30, "include_stations": true}'

  # Parse a transmission line KMZ
  ./gis-mcp parse line-route.kmz

  # Validate a KML export before conversion
  ./gis-mcp validate line-route.kml

  # Convert KMZ to GeoJSON
  ./gis-mcp convert line-route.kmz -output line-route.geojson

  # Extract towers whose names start with "TWR"
  ./gis-mcp extract towers line-route.kmz -name-pattern 'TWR'

  # Debug mode
  ./gis-mcp -debug call analyze_tower_placement -params '{"route_line": "LINESTRING(0 0, 0.05 0)"}'
`
	fmt.Print(help)
}
