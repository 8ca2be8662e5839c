package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	gismcp "github.com/DigiRoninCollective/gis-mcp"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: analyze-kml <path-to-kmz-or-kml>")
		fmt.Println("Example: analyze-kml ~/data/transmission/line-route.kmz")
		os.Exit(1)
	}

	filePath := os.Args[1]

	var kmlContent string

	// Check if KMZ or KML
	if strings.HasSuffix(strings.ToLower(filePath), ".kmz") {
		result, err := gismcp.ExtractKMZ(filePath, "")
		if err != nil {
			fmt.Printf("Error extracting KML from KMZ: %v\n", err)
			os.Exit(1)
		}
		if !result.Success {
			fmt.Printf("Error extracting KML from KMZ: %s\n", result.Error)
			os.Exit(1)
		}
		kmlContent = result.KMLContent
	} else {
		data, err := os.ReadFile(filePath)
		if err != nil {
			fmt.Printf("Error reading KML file: %v\n", err)
			os.Exit(1)
		}
		kmlContent = string(data)
	}

	parsed := gismcp.ParseKML(kmlContent, gismcp.ParseOptions{ExtractStyles: true, IncludeMetadata: true})
	if !parsed.Success {
		fmt.Printf("Error parsing KML: %s\n", parsed.Error)
		os.Exit(1)
	}

	analyze(parsed, kmlContent, filepath.Base(filePath))
}

func analyze(parsed *gismcp.ParseResult, kmlContent, filename string) {
	totalCoordinates := 0
	withElevation := 0
	sampleNames := []string{}

	for i, feature := range parsed.Features {
		totalCoordinates += len(feature.Coordinates)
		for _, c := range feature.Coordinates {
			if c.Elev != 0 {
				withElevation++
			}
		}
		if i < 10 && feature.Name != "" {
			sampleNames = append(sampleNames, feature.Name)
		}
	}

	avgCoordsPerFeature := float64(0)
	if parsed.FeatureCount > 0 {
		avgCoordsPerFeature = float64(totalCoordinates) / float64(parsed.FeatureCount)
	}

	// Print analysis
	fmt.Println("=" + strings.Repeat("=", 70))
	fmt.Printf("KML/KMZ Analysis: %s\n", filename)
	fmt.Println("=" + strings.Repeat("=", 70))
	fmt.Println()

	fmt.Println("📊 Feature Counts:")
	fmt.Printf("  Total features:               %d\n", parsed.FeatureCount)

	geomTypes := make([]string, 0, len(parsed.GeometryTypes))
	for geomType := range parsed.GeometryTypes {
		geomTypes = append(geomTypes, string(geomType))
	}
	sort.Strings(geomTypes)
	for _, geomType := range geomTypes {
		fmt.Printf("  %-28s  %d\n", geomType+":", parsed.GeometryTypes[gismcp.GeometryType(geomType)])
	}
	fmt.Printf("  Total coordinate points:      %d\n", totalCoordinates)
	fmt.Printf("  Points with elevation:        %d\n", withElevation)
	fmt.Printf("  Styles:                       %d\n", len(parsed.Styles))
	fmt.Println()

	fmt.Println("📈 Ratios:")
	fmt.Printf("  Avg coordinates per feature:  %.2f\n", avgCoordsPerFeature)
	fmt.Println()

	if len(sampleNames) > 0 {
		fmt.Println("🗼 Sample Feature Names (first 10):")
		for i, name := range sampleNames {
			fmt.Printf("  %2d. %s\n", i+1, name)
		}
		fmt.Println()
	}

	// Transmission line readiness: what the engineering operations need
	towers, err := gismcp.ExtractTowerLocations(kmlContent, "")
	if err == nil {
		fmt.Printf("  Tower candidates (Points):    %d\n", towers.TowerCount)
	}
	routes, err := gismcp.ExtractLineRoutes(kmlContent, "")
	if err == nil {
		fmt.Printf("  Route candidates (Lines):     %d\n", routes.RouteCount)
		fmt.Printf("  Total route length (deg):     %.6f\n", routes.TotalLengthDegrees)
	}

	fmt.Println()
	fmt.Println("=" + strings.Repeat("=", 70))
}
