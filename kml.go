package gismcp

import (
	"encoding/xml"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
)

// ParseOptions control which optional sections the extractor collects.
type ParseOptions struct {
	ExtractStyles   bool
	IncludeMetadata bool
}

// KML document tree. Tags carry local names only so that both namespaced and
// namespace-free documents decode; containers nest arbitrarily deep.
type kmlRoot struct {
	XMLName    xml.Name       `xml:"kml"`
	Document   *kmlContainer  `xml:"Document"`
	Folders    []kmlContainer `xml:"Folder"`
	Placemarks []kmlPlacemark `xml:"Placemark"`
	Styles     []kmlStyle     `xml:"Style"`
}

type kmlContainer struct {
	Name        string         `xml:"name"`
	Description string         `xml:"description"`
	Styles      []kmlStyle     `xml:"Style"`
	Documents   []kmlContainer `xml:"Document"`
	Folders     []kmlContainer `xml:"Folder"`
	Placemarks  []kmlPlacemark `xml:"Placemark"`
}

type kmlPlacemark struct {
	Name          string           `xml:"name"`
	Description   string           `xml:"description"`
	Point         *kmlGeometry     `xml:"Point"`
	LineString    *kmlGeometry     `xml:"LineString"`
	Polygon       *kmlPolygon      `xml:"Polygon"`
	MultiGeometry *kmlMultiGeom    `xml:"MultiGeometry"`
	ExtendedData  *kmlExtendedData `xml:"ExtendedData"`
}

type kmlMultiGeom struct {
	Points      []kmlGeometry `xml:"Point"`
	LineStrings []kmlGeometry `xml:"LineString"`
	Polygons    []kmlPolygon  `xml:"Polygon"`
}

type kmlGeometry struct {
	Coordinates string `xml:"coordinates"`
}

type kmlPolygon struct {
	OuterBoundary struct {
		LinearRing struct {
			Coordinates string `xml:"coordinates"`
		} `xml:"LinearRing"`
	} `xml:"outerBoundaryIs"`
}

type kmlExtendedData struct {
	Data []struct {
		Name  string `xml:"name,attr"`
		Value string `xml:"value"`
	} `xml:"Data"`
}

type kmlStyle struct {
	ID        string `xml:"id,attr"`
	LineStyle *struct {
		Color string `xml:"color"`
		Width string `xml:"width"`
	} `xml:"LineStyle"`
	IconStyle *struct {
		Icon struct {
			Href string `xml:"href"`
		} `xml:"Icon"`
		Scale string `xml:"scale"`
	} `xml:"IconStyle"`
}

// ParseKML extracts placemark features, styles, and document metadata from
// raw KML text. A document that fails XML parsing yields Success=false with
// an error message; individual placemarks that cannot be parsed are skipped
// with a warning and never fail the document.
func ParseKML(kmlContent string, opts ParseOptions) *ParseResult {
	logger := slog.With("component", "kml")

	var root kmlRoot
	if err := xml.Unmarshal([]byte(kmlContent), &root); err != nil {
		logger.Error("KML parse error", "error", err)
		return &ParseResult{
			Success:       false,
			Error:         fmt.Sprintf("Invalid KML format: %v", err),
			Features:      []GeoFeature{},
			FeatureCount:  0,
			GeometryTypes: map[GeometryType]int{},
		}
	}

	result := &ParseResult{
		Success:       true,
		Features:      []GeoFeature{},
		GeometryTypes: map[GeometryType]int{},
	}

	if opts.IncludeMetadata {
		meta := &DocumentMetadata{}
		if root.Document != nil {
			meta.Name = strings.TrimSpace(root.Document.Name)
			meta.Description = strings.TrimSpace(root.Document.Description)
		}
		result.Metadata = meta
	}

	if opts.ExtractStyles {
		result.Styles = map[string]StyleRecord{}
		for _, style := range collectStyles(&root) {
			if style.ID == "" {
				continue
			}
			result.Styles[style.ID] = extractStyleRecord(style)
		}
	}

	for _, pm := range collectPlacemarks(&root) {
		feature, err := parsePlacemark(pm, opts.IncludeMetadata)
		if err != nil {
			logger.Warn("skipping placemark", "name", pm.Name, "error", err)
			continue
		}
		if feature == nil {
			logger.Debug("placemark has no supported geometry", "name", pm.Name)
			continue
		}
		result.Features = append(result.Features, *feature)
		result.GeometryTypes[feature.GeometryType]++
	}

	result.FeatureCount = len(result.Features)
	return result
}

// collectPlacemarks walks every container level and returns placemarks in
// document order.
func collectPlacemarks(root *kmlRoot) []kmlPlacemark {
	var out []kmlPlacemark
	var walk func(c *kmlContainer)
	walk = func(c *kmlContainer) {
		out = append(out, c.Placemarks...)
		for i := range c.Documents {
			walk(&c.Documents[i])
		}
		for i := range c.Folders {
			walk(&c.Folders[i])
		}
	}
	out = append(out, root.Placemarks...)
	if root.Document != nil {
		walk(root.Document)
	}
	for i := range root.Folders {
		walk(&root.Folders[i])
	}
	return out
}

func collectStyles(root *kmlRoot) []kmlStyle {
	var out []kmlStyle
	var walk func(c *kmlContainer)
	walk = func(c *kmlContainer) {
		out = append(out, c.Styles...)
		for i := range c.Documents {
			walk(&c.Documents[i])
		}
		for i := range c.Folders {
			walk(&c.Folders[i])
		}
	}
	out = append(out, root.Styles...)
	if root.Document != nil {
		walk(root.Document)
	}
	for i := range root.Folders {
		walk(&root.Folders[i])
	}
	return out
}

// parsePlacemark converts one placemark into a GeoFeature. Geometry kinds are
// checked in priority order Point, LineString, Polygon; a placemark carrying
// none of these yields (nil, nil) and is skipped by the caller.
func parsePlacemark(pm kmlPlacemark, includeMetadata bool) (*GeoFeature, error) {
	coordText, geomType := placemarkGeometry(pm)
	if geomType == "" {
		return nil, nil
	}

	coords, err := parseKMLCoordinates(coordText)
	if err != nil {
		return nil, fmt.Errorf("parsing coordinates: %w", err)
	}
	if len(coords) == 0 {
		return nil, nil
	}

	feature := &GeoFeature{
		Name:         strings.TrimSpace(pm.Name),
		Description:  strings.TrimSpace(pm.Description),
		GeometryType: geomType,
	}

	var geom orb.Geometry
	switch geomType {
	case GeometryPoint:
		feature.Coordinates = coords[:1]
		geom = orb.Point{coords[0].Lon, coords[0].Lat}
	case GeometryLineString:
		feature.Coordinates = coords
		line := make(orb.LineString, 0, len(coords))
		for _, c := range coords {
			line = append(line, orb.Point{c.Lon, c.Lat})
		}
		geom = line
	case GeometryPolygon:
		feature.Coordinates = coords
		ring := make(orb.Ring, 0, len(coords))
		for _, c := range coords {
			ring = append(ring, orb.Point{c.Lon, c.Lat})
		}
		geom = orb.Polygon{ring}
	}
	feature.GeometryWKT = wkt.MarshalString(geom)

	if includeMetadata && pm.ExtendedData != nil {
		data := map[string]string{}
		for _, d := range pm.ExtendedData.Data {
			if d.Name != "" {
				data[d.Name] = strings.TrimSpace(d.Value)
			}
		}
		if len(data) > 0 {
			feature.ExtendedData = data
		}
	}

	return feature, nil
}

// placemarkGeometry picks the coordinate block for a placemark. Direct
// children win; a MultiGeometry contributes its first member of each kind,
// still honoring the Point > LineString > Polygon priority.
func placemarkGeometry(pm kmlPlacemark) (string, GeometryType) {
	point := pm.Point
	line := pm.LineString
	polygon := pm.Polygon
	if mg := pm.MultiGeometry; mg != nil {
		if point == nil && len(mg.Points) > 0 {
			point = &mg.Points[0]
		}
		if line == nil && len(mg.LineStrings) > 0 {
			line = &mg.LineStrings[0]
		}
		if polygon == nil && len(mg.Polygons) > 0 {
			polygon = &mg.Polygons[0]
		}
	}

	switch {
	case point != nil:
		return point.Coordinates, GeometryPoint
	case line != nil:
		return line.Coordinates, GeometryLineString
	case polygon != nil:
		return polygon.OuterBoundary.LinearRing.Coordinates, GeometryPolygon
	}
	return "", ""
}

// parseKMLCoordinates tokenizes a KML coordinate string: whitespace-separated
// tuples of "lon,lat[,elev]". Tuples with fewer than two parts are skipped;
// a tuple that fails numeric coercion is an error for the whole placemark.
func parseKMLCoordinates(coordText string) ([]Coordinate, error) {
	var coords []Coordinate
	for _, token := range strings.Fields(strings.TrimSpace(coordText)) {
		parts := strings.Split(token, ",")
		if len(parts) < 2 {
			continue
		}
		lon, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid longitude %q: %w", parts[0], err)
		}
		lat, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid latitude %q: %w", parts[1], err)
		}
		elev := 0.0
		if len(parts) > 2 && parts[2] != "" {
			elev, err = strconv.ParseFloat(parts[2], 64)
			if err != nil {
				return nil, fmt.Errorf("invalid elevation %q: %w", parts[2], err)
			}
		}
		coords = append(coords, Coordinate{Lon: lon, Lat: lat, Elev: elev})
	}
	return coords, nil
}

func extractStyleRecord(style kmlStyle) StyleRecord {
	record := StyleRecord{}
	if ls := style.LineStyle; ls != nil {
		line := &LineStyleRecord{Color: strings.TrimSpace(ls.Color), Width: 1.0}
		if w, err := strconv.ParseFloat(strings.TrimSpace(ls.Width), 64); err == nil {
			line.Width = w
		}
		record.Line = line
	}
	if is := style.IconStyle; is != nil {
		icon := &IconStyleRecord{Href: strings.TrimSpace(is.Icon.Href), Scale: 1.0}
		if s, err := strconv.ParseFloat(strings.TrimSpace(is.Scale), 64); err == nil {
			icon.Scale = s
		}
		record.Icon = icon
	}
	return record
}
