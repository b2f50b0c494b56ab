package errors

import (
	"math"
	"strings"
	"unicode"
)

// Limits applied to chart definitions before any geometry is computed.
const (
	MaxSeries          = 256
	MaxSeriesLength    = 100_000
	MaxDimension       = 16_384
	maxSeriesNameBytes = 256
)

// ValidateDimensions checks that a chart's outer width and height are usable.
//
// Validation rules:
//   - Both dimensions must be finite
//   - Both dimensions must be positive
//   - Neither may exceed MaxDimension pixels
func ValidateDimensions(width, height float64) error {
	for _, d := range []struct {
		name string
		v    float64
	}{{"width", width}, {"height", height}} {
		if math.IsNaN(d.v) || math.IsInf(d.v, 0) {
			return New(ErrCodeInvalidRange, "%s must be a finite number", d.name)
		}
		if d.v <= 0 {
			return New(ErrCodeInvalidRange, "%s must be positive (got %g)", d.name, d.v)
		}
		if d.v > MaxDimension {
			return New(ErrCodeInvalidRange, "%s too large (max %d pixels)", d.name, MaxDimension)
		}
	}
	return nil
}

// ValidateSeriesName validates a series name taken from a chart definition.
// Names may be empty (legend and tooltip fall back to "") but must not
// contain control characters.
func ValidateSeriesName(name string) error {
	if len(name) > maxSeriesNameBytes {
		return New(ErrCodeInvalidChart, "series name too long (max %d bytes)", maxSeriesNameBytes)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidChart, "series name contains invalid control characters")
		}
	}
	return nil
}

// ValidateSeriesShape checks the number of series and the longest series
// length against the engine limits.
func ValidateSeriesShape(count, longest int) error {
	if count > MaxSeries {
		return New(ErrCodeInvalidChart, "too many series (%d, max %d)", count, MaxSeries)
	}
	if longest > MaxSeriesLength {
		return New(ErrCodeInvalidChart, "series too long (%d points, max %d)", longest, MaxSeriesLength)
	}
	return nil
}

// ValidateValue rejects NaN and infinite data values. Nulls are represented
// by the absence of a value and never reach this check.
func ValidateValue(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidChart, "data value must be finite (got %g)", v)
	}
	return nil
}

// ValidateFormatName validates a chart definition file format name.
func ValidateFormatName(format string) error {
	switch strings.ToLower(format) {
	case "toml", "json":
		return nil
	case "":
		return New(ErrCodeInvalidFormat, "format cannot be empty")
	}
	return New(ErrCodeInvalidFormat, "unsupported chart format: %q (must be toml or json)", format)
}
