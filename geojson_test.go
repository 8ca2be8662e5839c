package gismcp

import (
	"encoding/json"
	"testing"
)

func TestConvertKMLToGeoJSON(t *testing.T) {
	result, err := ConvertKMLToGeoJSON(transmissionKML, false)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !result.ConversionSuccess {
		t.Fatalf("Conversion failed: %s", result.Error)
	}
	if result.FeatureCount != 5 {
		t.Errorf("Feature count mismatch: got %d, expected 5", result.FeatureCount)
	}
	if result.GeoJSON == nil || len(result.GeoJSON.Features) != 5 {
		t.Fatal("FeatureCollection missing or wrong size")
	}

	// The encoded string must round-trip as a FeatureCollection
	var decoded map[string]any
	if err := json.Unmarshal([]byte(result.GeoJSONString), &decoded); err != nil {
		t.Fatalf("GeoJSON string is not valid JSON: %v", err)
	}
	if decoded["type"] != "FeatureCollection" {
		t.Errorf("Type mismatch: got %v", decoded["type"])
	}

	// Properties carry name/description and extended data
	foundTower := false
	for _, f := range result.GeoJSON.Features {
		if f.Properties["name"] == "TWR-001" {
			foundTower = true
			if f.Properties["description"] != "Dead-end tower" {
				t.Errorf("Description mismatch: got %v", f.Properties["description"])
			}
			if f.Properties["structure_type"] != "lattice" {
				t.Errorf("Extended data not carried over: %v", f.Properties)
			}
			if f.Geometry.GeoJSONType() != "Point" {
				t.Errorf("Geometry type mismatch: got %s", f.Geometry.GeoJSONType())
			}
		}
	}
	if !foundTower {
		t.Error("TWR-001 feature not found in conversion output")
	}
}

func TestConvertKMLToGeoJSONNullProperties(t *testing.T) {
	kml := `<kml><Document><Placemark><Point><coordinates>1,2</coordinates></Point></Placemark></Document></kml>`

	result, err := ConvertKMLToGeoJSON(kml, false)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.FeatureCount != 1 {
		t.Fatalf("Feature count mismatch: got %d", result.FeatureCount)
	}

	props := result.GeoJSON.Features[0].Properties
	if v, ok := props["name"]; !ok || v != nil {
		t.Errorf("Unnamed feature should have null name property, got %v", v)
	}
	if v, ok := props["description"]; !ok || v != nil {
		t.Errorf("Feature without description should have null property, got %v", v)
	}
}

func TestConvertKMLToGeoJSONMalformed(t *testing.T) {
	result, err := ConvertKMLToGeoJSON("<<<not kml>>>", false)
	if err != nil {
		t.Fatalf("Malformed KML should be a structured failure, got error: %v", err)
	}
	if result.ConversionSuccess {
		t.Error("Expected conversion failure")
	}
	if result.Error != "Failed to parse KML" {
		t.Errorf("Error mismatch: got %q", result.Error)
	}
}
