package gismcp

import (
	"math"
	"testing"
)

func TestAnalyzeTowerPlacement(t *testing.T) {
	// 0.02 deg along the equator ~ 2226.4 m
	route := "LINESTRING(0 0, 0.01 0, 0.02 0)"

	t.Run("Typical spacing", func(t *testing.T) {
		result, err := AnalyzeTowerPlacement(route, DefaultSpanConstraints())
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		if math.Abs(result.TotalRouteLengthMeters-2226.4) > 0.01 {
			t.Errorf("Route length mismatch: got %g, expected 2226.4", result.TotalRouteLengthMeters)
		}
		// 2226.4 / 300 -> 7 spans of ~318 m, inside [200, 500]
		if result.NumSpans != 7 {
			t.Errorf("Span count mismatch: got %d, expected 7", result.NumSpans)
		}
		if result.TowerCount != result.NumSpans+1 {
			t.Errorf("Tower count must be spans+1: got %d", result.TowerCount)
		}
		if len(result.TowerPositions) != result.TowerCount {
			t.Errorf("Position count mismatch: got %d", len(result.TowerPositions))
		}
		if len(result.SpanLengths) != result.NumSpans {
			t.Errorf("Span length count mismatch: got %d", len(result.SpanLengths))
		}
		if math.Abs(result.AverageSpanMeters-318.06) > 0.01 {
			t.Errorf("Average span mismatch: got %g, expected 318.06", result.AverageSpanMeters)
		}

		c := result.Constraints
		for _, span := range result.SpanLengths {
			if span < c.MinSpanMeters || span > c.MaxSpanMeters {
				t.Errorf("Span %g outside [%g, %g]", span, c.MinSpanMeters, c.MaxSpanMeters)
			}
		}

		first := result.TowerPositions[0]
		last := result.TowerPositions[len(result.TowerPositions)-1]
		if first[0] != 0 || first[1] != 0 {
			t.Errorf("First tower should sit at the route start: %v", first)
		}
		if math.Abs(last[0]-0.02) > 1e-6 || last[1] != 0 {
			t.Errorf("Last tower should sit at the route end: %v", last)
		}
	})

	t.Run("Max span bound forces more towers", func(t *testing.T) {
		result, err := AnalyzeTowerPlacement(route, SpanConstraints{
			TypicalSpanMeters: 2000,
			MinSpanMeters:     100,
			MaxSpanMeters:     500,
		})
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		// One 2226 m span violates the 500 m cap; ceil(2226.4/500) = 5
		if result.NumSpans != 5 {
			t.Errorf("Span count mismatch: got %d, expected 5", result.NumSpans)
		}
		if result.AverageSpanMeters > 500 {
			t.Errorf("Average span exceeds cap: %g", result.AverageSpanMeters)
		}
	})

	t.Run("Min span bound merges spans", func(t *testing.T) {
		result, err := AnalyzeTowerPlacement(route, SpanConstraints{
			TypicalSpanMeters: 250,
			MinSpanMeters:     400,
			MaxSpanMeters:     800,
		})
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		// 8 spans of 278 m violate the 400 m floor; 2226.4/400 -> 5 spans
		if result.NumSpans != 5 {
			t.Errorf("Span count mismatch: got %d, expected 5", result.NumSpans)
		}
		if result.AverageSpanMeters < 400 {
			t.Errorf("Average span below floor: %g", result.AverageSpanMeters)
		}
	})

	t.Run("Route shorter than minimum span", func(t *testing.T) {
		result, err := AnalyzeTowerPlacement("LINESTRING(0 0, 0.0005 0)", DefaultSpanConstraints())
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		// ~55.7 m route degrades to a single non-compliant span
		if result.NumSpans != 1 || result.TowerCount != 2 {
			t.Errorf("Short route should yield one span: %d spans, %d towers",
				result.NumSpans, result.TowerCount)
		}
		if math.Abs(result.AverageSpanMeters-55.66) > 0.01 {
			t.Errorf("Span length mismatch: got %g, expected 55.66", result.AverageSpanMeters)
		}
	})

	t.Run("Invalid inputs", func(t *testing.T) {
		valid := DefaultSpanConstraints()

		if _, err := AnalyzeTowerPlacement("POINT(0 0)", valid); err == nil {
			t.Error("Expected error for non-LineString route")
		}
		if _, err := AnalyzeTowerPlacement("not wkt", valid); err == nil {
			t.Error("Expected error for invalid WKT")
		}
		if _, err := AnalyzeTowerPlacement("LINESTRING(0 0, 0 0)", valid); err == nil {
			t.Error("Expected error for zero-length route")
		}
		if _, err := AnalyzeTowerPlacement(route, SpanConstraints{TypicalSpanMeters: 0, MinSpanMeters: 200, MaxSpanMeters: 500}); err == nil {
			t.Error("Expected error for zero typical span")
		}
		if _, err := AnalyzeTowerPlacement(route, SpanConstraints{TypicalSpanMeters: 300, MinSpanMeters: 500, MaxSpanMeters: 200}); err == nil {
			t.Error("Expected error for inverted span bounds")
		}
	})
}

func TestDefaultSpanConstraints(t *testing.T) {
	c := DefaultSpanConstraints()
	if c.TypicalSpanMeters != 300 || c.MinSpanMeters != 200 || c.MaxSpanMeters != 500 {
		t.Errorf("Default constraints mismatch: %+v", c)
	}
}
