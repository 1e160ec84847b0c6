package logger

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// colorScheme defines consistent colors for different metric types.
// Green: success/positive metrics
// Red: failure/error metrics
// Yellow: warning/threshold metrics
// Cyan: labels and identifiers
type colorScheme struct {
	success *color.Color
	fail    *color.Color
	warn    *color.Color
	label   *color.Color
	value   *color.Color
}

// newColorScheme creates the standard color scheme for metrics.
func newColorScheme() *colorScheme {
	return &colorScheme{
		success: color.New(color.FgGreen),
		fail:    color.New(color.FgRed),
		warn:    color.New(color.FgYellow),
		label:   color.New(color.FgCyan),
		value:   color.New(color.FgWhite),
	}
}

// formatColorizedMetric formats a single metric with colorized label and value.
// Label is colored cyan, value is colored white.
// Format: "label: value"
func formatColorizedMetric(label string, value interface{}, scheme *colorScheme) string {
	labelColored := scheme.label.Sprint(label)
	valueColored := scheme.value.Sprintf("%v", value)
	return fmt.Sprintf("%s: %s", labelColored, valueColored)
}

// FormatRunMetrics formats run counters as a single metric line.
// Format: "chunks: N, units: N, failures: N, bytes: N"
// With color enabled, emitted units are colored green and failures red;
// failures are omitted entirely when zero. The caller decides whether
// color applies, since it depends on where the line is written.
func FormatRunMetrics(stats RunStats, enableColor bool) string {
	if !enableColor {
		var parts []string
		parts = append(parts, fmt.Sprintf("chunks: %d", stats.Chunks))
		parts = append(parts, fmt.Sprintf("units: %d", stats.Units))
		if stats.Failures > 0 {
			parts = append(parts, fmt.Sprintf("failures: %d", stats.Failures))
		}
		parts = append(parts, fmt.Sprintf("bytes: %d", stats.Bytes))
		return strings.Join(parts, ", ")
	}

	scheme := newColorScheme()
	var parts []string

	parts = append(parts, formatColorizedMetric("chunks", stats.Chunks, scheme))

	unitsLabel := scheme.success.Sprint("units")
	unitsValue := scheme.value.Sprintf("%d", stats.Units)
	parts = append(parts, fmt.Sprintf("%s: %s", unitsLabel, unitsValue))

	if stats.Failures > 0 {
		failLabel := scheme.fail.Sprint("failures")
		failValue := scheme.fail.Sprintf("%d", stats.Failures)
		parts = append(parts, fmt.Sprintf("%s: %s", failLabel, failValue))
	}

	parts = append(parts, formatColorizedMetric("bytes", stats.Bytes, scheme))

	return strings.Join(parts, ", ")
}
