package charts

import (
	"sort"
	"strconv"

	"github.com/homeboardhq/homeboard-backend/pkg/enums"
)

// Point is one (label, value) pair on a chart.
type Point struct {
	Label string `json:"label"`
	Value int64  `json:"value"`
}

// Chart is the embeddable payload handed to the front-end chart renderer.
// No aggregation happens here; callers supply already-computed series.
type Chart struct {
	Kind   enums.ChartKind `json:"kind"`
	Title  string          `json:"title"`
	Points []Point         `json:"points"`
}

// New builds a chart from an ordered series.
func New(kind enums.ChartKind, title string, points []Point) Chart {
	if points == nil {
		points = []Point{}
	}
	return Chart{Kind: kind, Title: title, Points: points}
}

// FromYearCounts builds an ascending-year series from a year -> count mapping.
func FromYearCounts(kind enums.ChartKind, title string, counts map[int]int64) Chart {
	years := make([]int, 0, len(counts))
	for year := range counts {
		years = append(years, year)
	}
	sort.Ints(years)

	points := make([]Point, 0, len(years))
	for _, year := range years {
		points = append(points, Point{Label: strconv.Itoa(year), Value: counts[year]})
	}
	return New(kind, title, points)
}

// FromLabelCounts builds a series sorted by descending count, ties broken by label.
func FromLabelCounts(kind enums.ChartKind, title string, counts map[string]int64) Chart {
	points := make([]Point, 0, len(counts))
	for label, value := range counts {
		points = append(points, Point{Label: label, Value: value})
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].Value != points[j].Value {
			return points[i].Value > points[j].Value
		}
		return points[i].Label < points[j].Label
	})
	return New(kind, title, points)
}
