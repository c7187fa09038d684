package enums

import "fmt"

// ChartKind names the visual representation a chart payload targets.
type ChartKind string

const (
	ChartKindHistogram ChartKind = "histogram"
	ChartKindPie       ChartKind = "pie"
	ChartKindBar       ChartKind = "bar"
)

var validChartKinds = []ChartKind{
	ChartKindHistogram,
	ChartKindPie,
	ChartKindBar,
}

// IsValid reports whether the value matches a supported chart kind.
func (k ChartKind) IsValid() bool {
	for _, candidate := range validChartKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseChartKind converts raw input into a ChartKind.
func ParseChartKind(value string) (ChartKind, error) {
	for _, candidate := range validChartKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid chart kind %q", value)
}
