package main

import (
	"fmt"
	"os"
	"strings"

	gismcp "github.com/DigiRoninCollective/gis-mcp"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: convert-kml <kml-or-kmz-file> <output-geojson>")
		fmt.Println("Example: convert-kml line-route.kmz line-route.geojson")
		os.Exit(1)
	}

	inputPath := os.Args[1]
	outputPath := os.Args[2]

	var kmlContent string

	if strings.HasSuffix(strings.ToLower(inputPath), ".kmz") {
		extracted, err := gismcp.ExtractKMZ(inputPath, "")
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		if !extracted.Success {
			fmt.Printf("Error: %s\n", extracted.Error)
			os.Exit(1)
		}
		kmlContent = extracted.KMLContent
	} else {
		data, err := os.ReadFile(inputPath)
		if err != nil {
			fmt.Printf("Error reading KML file: %v\n", err)
			os.Exit(1)
		}
		kmlContent = string(data)
	}

	result, err := gismcp.ConvertKMLToGeoJSON(kmlContent, false)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if !result.ConversionSuccess {
		fmt.Printf("Error: %s\n", result.Error)
		os.Exit(1)
	}

	if err := os.WriteFile(outputPath, []byte(result.GeoJSONString), 0644); err != nil {
		fmt.Printf("Error writing output file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Converted to GeoJSON: %d features\n", result.FeatureCount)
	fmt.Printf("   Output: %s\n", outputPath)
}
