// Package scale builds the coordinate mappings used by every chart.
//
// # Overview
//
// A scale maps values from a data domain to a pixel range. Two kinds are
// provided:
//
//   - [Linear]: continuous, invertible. The domain always includes zero
//     unless [WithoutBaseline] is given, so bars and lines keep a visible
//     baseline. A degenerate domain (min == max) maps every value to the
//     midpoint of the range instead of dividing by zero.
//   - [Band]: ordinal. Each category gets an equal-width band in
//     declaration order; duplicated category values never change the
//     positional order. Band scales are not invertible by value, but
//     [Band.IndexAt] hit-tests a pixel against the bands.
//
// Constructors validate their inputs and return *errors.Error values with
// the EMPTY_DOMAIN, INVALID_RANGE or INVALID_INPUT codes. Callers are
// expected to check for an empty state before building scales.
//
// # Usage
//
//	dom, err := scale.Extent(values)
//	y, err := scale.NewLinear(dom, scale.Interval{Min: height, Max: 0})
//	px := y.Map(42)
package scale
