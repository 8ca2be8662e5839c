package gismcp

import (
	"strings"
	"testing"
)

// transmissionKML is a representative survey export: towers as Points,
// a route segment as a LineString, and a ROW parcel as a Polygon.
const transmissionKML = `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2">
  <Document>
    <name>Cascade 230kV Line</name>
    <description>Survey export</description>
    <Style id="towerIcon">
      <IconStyle>
        <Icon><href>http://example.com/tower.png</href></Icon>
        <scale>1.2</scale>
      </IconStyle>
    </Style>
    <Style id="routeLine">
      <LineStyle>
        <color>ff0000ff</color>
        <width>3</width>
      </LineStyle>
    </Style>
    <Folder>
      <name>Towers</name>
      <Placemark>
        <name>TWR-001</name>
        <description>Dead-end tower</description>
        <Point><coordinates>-122.5,45.5,120.5</coordinates></Point>
        <ExtendedData>
          <Data name="structure_type"><value>lattice</value></Data>
        </ExtendedData>
      </Placemark>
      <Placemark>
        <name>TWR-002</name>
        <Point><coordinates>-122.497,45.502,118.0</coordinates></Point>
      </Placemark>
      <Placemark>
        <name>Substation A</name>
        <Point><coordinates>-122.505,45.498,122.0</coordinates></Point>
      </Placemark>
    </Folder>
    <Folder>
      <name>Routes</name>
      <Placemark>
        <name>Segment 1</name>
        <LineString><coordinates>
          -122.500,45.500,120.5 -122.497,45.502,118.0 -122.494,45.504,116.2
        </coordinates></LineString>
      </Placemark>
    </Folder>
    <Placemark>
      <name>ROW Parcel</name>
      <Polygon><outerBoundaryIs><LinearRing><coordinates>
        -122.51,45.49,0 -122.49,45.49,0 -122.49,45.51,0 -122.51,45.51,0 -122.51,45.49,0
      </coordinates></LinearRing></outerBoundaryIs></Polygon>
    </Placemark>
  </Document>
</kml>`

func TestParseKMLTransmissionDocument(t *testing.T) {
	result := ParseKML(transmissionKML, ParseOptions{ExtractStyles: true, IncludeMetadata: true})

	if !result.Success {
		t.Fatalf("Parse failed: %s", result.Error)
	}
	if result.FeatureCount != 5 {
		t.Errorf("Feature count mismatch: got %d, expected 5", result.FeatureCount)
	}
	if got := result.GeometryTypes[GeometryPoint]; got != 3 {
		t.Errorf("Point count mismatch: got %d, expected 3", got)
	}
	if got := result.GeometryTypes[GeometryLineString]; got != 1 {
		t.Errorf("LineString count mismatch: got %d, expected 1", got)
	}
	if got := result.GeometryTypes[GeometryPolygon]; got != 1 {
		t.Errorf("Polygon count mismatch: got %d, expected 1", got)
	}

	if result.Metadata == nil || result.Metadata.Name != "Cascade 230kV Line" {
		t.Errorf("Document metadata missing or wrong: %+v", result.Metadata)
	}

	if len(result.Styles) != 2 {
		t.Fatalf("Style count mismatch: got %d, expected 2", len(result.Styles))
	}
	if line := result.Styles["routeLine"].Line; line == nil || line.Width != 3 {
		t.Errorf("LineStyle not extracted: %+v", result.Styles["routeLine"])
	}
	if icon := result.Styles["towerIcon"].Icon; icon == nil || icon.Scale != 1.2 {
		t.Errorf("IconStyle not extracted: %+v", result.Styles["towerIcon"])
	}
}

func TestParseKMLFeatureDetails(t *testing.T) {
	result := ParseKML(transmissionKML, ParseOptions{IncludeMetadata: true})
	if !result.Success {
		t.Fatalf("Parse failed: %s", result.Error)
	}

	var tower *GeoFeature
	for i := range result.Features {
		if result.Features[i].Name == "TWR-001" {
			tower = &result.Features[i]
			break
		}
	}
	if tower == nil {
		t.Fatal("TWR-001 not found")
	}

	if tower.GeometryType != GeometryPoint {
		t.Errorf("Geometry type mismatch: got %s", tower.GeometryType)
	}
	if len(tower.Coordinates) != 1 {
		t.Fatalf("Coordinate count mismatch: got %d", len(tower.Coordinates))
	}
	c := tower.Coordinates[0]
	if c.Lon != -122.5 || c.Lat != 45.5 || c.Elev != 120.5 {
		t.Errorf("Coordinates mismatch: got %+v", c)
	}
	if !strings.HasPrefix(tower.GeometryWKT, "POINT") {
		t.Errorf("WKT mismatch: got %q", tower.GeometryWKT)
	}
	if tower.ExtendedData["structure_type"] != "lattice" {
		t.Errorf("ExtendedData mismatch: got %+v", tower.ExtendedData)
	}
}

func TestParseKMLInvalidDocuments(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{name: "Not XML", content: "this is not a kml document"},
		{name: "Truncated XML", content: `<?xml version="1.0"?><kml><Document><Placemark>`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := ParseKML(tc.content, ParseOptions{})
			if result.Success {
				t.Error("Expected parse failure")
			}
			if !strings.HasPrefix(result.Error, "Invalid KML format") {
				t.Errorf("Error message mismatch: got %q", result.Error)
			}
			if result.FeatureCount != 0 {
				t.Errorf("Feature count should be 0, got %d", result.FeatureCount)
			}
		})
	}
}

func TestParseKMLWithoutNamespace(t *testing.T) {
	kml := `<kml><Document><Placemark><name>P1</name><Point><coordinates>1.0,2.0</coordinates></Point></Placemark></Document></kml>`

	result := ParseKML(kml, ParseOptions{})
	if !result.Success {
		t.Fatalf("Parse failed: %s", result.Error)
	}
	if result.FeatureCount != 1 {
		t.Fatalf("Feature count mismatch: got %d, expected 1", result.FeatureCount)
	}
	if result.Features[0].Coordinates[0].Elev != 0 {
		t.Errorf("Missing elevation should default to 0, got %g", result.Features[0].Coordinates[0].Elev)
	}
}

func TestParseKMLSkipsUnusablePlacemarks(t *testing.T) {
	kml := `<kml><Document>
	  <Placemark><name>No geometry</name></Placemark>
	  <Placemark><name>Empty coords</name><Point><coordinates></coordinates></Point></Placemark>
	  <Placemark><name>Bad coords</name><Point><coordinates>abc,def</coordinates></Point></Placemark>
	  <Placemark><name>Good</name><Point><coordinates>1.0,2.0,3.0</coordinates></Point></Placemark>
	</Document></kml>`

	result := ParseKML(kml, ParseOptions{})
	if !result.Success {
		t.Fatalf("Parse failed: %s", result.Error)
	}
	if result.FeatureCount != 1 {
		t.Errorf("Feature count mismatch: got %d, expected 1 (others skipped)", result.FeatureCount)
	}
	if result.Features[0].Name != "Good" {
		t.Errorf("Wrong feature kept: %q", result.Features[0].Name)
	}
}

func TestParseKMLMultiGeometry(t *testing.T) {
	kml := `<kml><Document><Placemark><name>MG</name>
	  <MultiGeometry>
	    <LineString><coordinates>0,0 1,1</coordinates></LineString>
	    <LineString><coordinates>2,2 3,3</coordinates></LineString>
	  </MultiGeometry>
	</Placemark></Document></kml>`

	result := ParseKML(kml, ParseOptions{})
	if !result.Success {
		t.Fatalf("Parse failed: %s", result.Error)
	}
	if result.FeatureCount != 1 {
		t.Fatalf("Feature count mismatch: got %d", result.FeatureCount)
	}
	f := result.Features[0]
	if f.GeometryType != GeometryLineString {
		t.Errorf("Geometry type mismatch: got %s", f.GeometryType)
	}
	// First member only
	if len(f.Coordinates) != 2 || f.Coordinates[0].Lon != 0 {
		t.Errorf("Expected first MultiGeometry member, got %+v", f.Coordinates)
	}
}

func TestParseKMLCoordinateTokens(t *testing.T) {
	testCases := []struct {
		name      string
		text      string
		expectErr bool
		expectLen int
	}{
		{name: "Lon lat elev", text: "1.5,2.5,3.5", expectLen: 1},
		{name: "Lon lat only", text: "1.5,2.5", expectLen: 1},
		{name: "Multiple tuples", text: "0,0,0 1,1,1 2,2,2", expectLen: 3},
		{name: "Single part skipped", text: "garbage 1,1", expectLen: 1},
		{name: "Empty elevation", text: "1,2,", expectLen: 1},
		{name: "Bad longitude", text: "abc,2", expectErr: true},
		{name: "Bad elevation", text: "1,2,xyz", expectErr: true},
		{name: "Empty text", text: "", expectLen: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			coords, err := parseKMLCoordinates(tc.text)
			if tc.expectErr {
				if err == nil {
					t.Error("Expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if len(coords) != tc.expectLen {
				t.Errorf("Coordinate count mismatch: got %d, expected %d", len(coords), tc.expectLen)
			}
		})
	}
}
