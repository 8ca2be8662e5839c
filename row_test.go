package gismcp

import (
	"math"
	"strings"
	"testing"
)

func TestCreateROWBuffer(t *testing.T) {
	centerline := "LINESTRING(0 0, 0.01 0)" // 1113.2 m along the equator

	t.Run("Flat cap corridor", func(t *testing.T) {
		result, err := CreateROWBuffer(centerline, 30, "flat", false)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		if math.Abs(result.CenterlineLengthMeters-1113.2) > 0.01 {
			t.Errorf("Centerline length mismatch: got %g, expected 1113.2", result.CenterlineLengthMeters)
		}
		// A flat-capped corridor around a straight line is a rectangle:
		// 1113.2 m x 30 m
		if math.Abs(result.RowAreaSqMeters-33396) > 40 {
			t.Errorf("Area mismatch: got %g, expected ~33396", result.RowAreaSqMeters)
		}
		if math.Abs(result.RowAreaAcres-8.25) > 0.02 {
			t.Errorf("Acreage mismatch: got %g, expected ~8.25", result.RowAreaAcres)
		}
		if result.RowWidthMeters != 30 {
			t.Errorf("Width mismatch: got %g", result.RowWidthMeters)
		}
		if !strings.HasPrefix(result.RowPolygonWKT, "POLYGON") {
			t.Errorf("Corridor WKT should be a polygon: %q", result.RowPolygonWKT)
		}
		if result.Stations != nil {
			t.Error("Stations should be omitted unless requested")
		}
	})

	t.Run("Round cap adds end area", func(t *testing.T) {
		flat, err := CreateROWBuffer(centerline, 30, "flat", false)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		round, err := CreateROWBuffer(centerline, 30, "round", false)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if round.RowAreaSqMeters <= flat.RowAreaSqMeters {
			t.Errorf("Round caps must add area: %g vs %g", round.RowAreaSqMeters, flat.RowAreaSqMeters)
		}
		// Two half circles of radius 15 m
		expected := flat.RowAreaSqMeters + math.Pi*15*15
		if math.Abs(round.RowAreaSqMeters-expected) > expected*0.01 {
			t.Errorf("Round cap area mismatch: got %g, expected ~%g", round.RowAreaSqMeters, expected)
		}
	})

	t.Run("Unknown cap style falls back to flat", func(t *testing.T) {
		flat, err := CreateROWBuffer(centerline, 30, "flat", false)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		odd, err := CreateROWBuffer(centerline, 30, "bevel", false)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if math.Abs(odd.RowAreaSqMeters-flat.RowAreaSqMeters) > 1 {
			t.Errorf("Unknown style should behave like flat: %g vs %g",
				odd.RowAreaSqMeters, flat.RowAreaSqMeters)
		}
	})

	t.Run("Station markers every 100m", func(t *testing.T) {
		result, err := CreateROWBuffer(centerline, 30, "flat", true)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		// 1113.2 m of centerline yields stations 0 through 1100
		if len(result.Stations) != 12 {
			t.Fatalf("Station count mismatch: got %d, expected 12", len(result.Stations))
		}
		first := result.Stations[0]
		if first.StationNumber != 0 || first.DistanceMeters != 0 {
			t.Errorf("First station mismatch: %+v", first)
		}
		if first.Position[0] != 0 || first.Position[1] != 0 {
			t.Errorf("First station position mismatch: %v", first.Position)
		}
		last := result.Stations[len(result.Stations)-1]
		if last.DistanceMeters != 1100 {
			t.Errorf("Last station distance mismatch: got %g", last.DistanceMeters)
		}
		if last.Position[0] <= result.Stations[len(result.Stations)-2].Position[0] {
			t.Error("Stations should advance along the centerline")
		}
	})

	t.Run("Invalid inputs", func(t *testing.T) {
		if _, err := CreateROWBuffer(centerline, 0, "flat", false); err == nil {
			t.Error("Expected error for zero width")
		}
		if _, err := CreateROWBuffer("POINT(0 0)", 30, "flat", false); err == nil {
			t.Error("Expected error for non-LineString centerline")
		}
		if _, err := CreateROWBuffer("not wkt", 30, "flat", false); err == nil {
			t.Error("Expected error for invalid WKT")
		}
	})
}

func TestCalculateStructureOffsets(t *testing.T) {
	centerline := "LINESTRING(0 0, 0.01 0)"

	result, err := CalculateStructureOffsets(centerline, 10)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if result.OffsetMeters != 10 {
		t.Errorf("Offset mismatch: got %g", result.OffsetMeters)
	}
	if math.Abs(result.CenterlineLengthMeters-1113.2) > 0.01 {
		t.Errorf("Centerline length mismatch: got %g", result.CenterlineLengthMeters)
	}
	if !strings.HasPrefix(result.LeftOffsetWKT, "LINESTRING") ||
		!strings.HasPrefix(result.RightOffsetWKT, "LINESTRING") {
		t.Errorf("Offsets should be LineStrings: %q / %q", result.LeftOffsetWKT, result.RightOffsetWKT)
	}
	if result.LeftOffsetWKT == result.RightOffsetWKT {
		t.Error("Left and right offsets must differ")
	}

	if _, err := CalculateStructureOffsets(centerline, 0); err == nil {
		t.Error("Expected error for zero offset")
	}
	if _, err := CalculateStructureOffsets("POINT(0 0)", 10); err == nil {
		t.Error("Expected error for non-LineString centerline")
	}
}
