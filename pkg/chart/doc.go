// Package chart composes the geometry engine into complete line and bar
// chart layouts.
//
// # Overview
//
// [ComputeLine] and [ComputeBar] are the explicit recomputation functions:
// given series, outer dimensions, axis options and a theme they run the
// tick planner, label layout, scales and path generator in the order the
// layout depends on, and return every derived quantity a renderer needs.
// They are pure and hold no state between calls.
//
// The line layout runs in two tick passes. The first pass, over the full
// height, yields the y axis label width; that width narrows the space for
// x axis labels, whose height sets the bottom margin; the second pass plans
// the final ticks over the remaining height:
//
//	fontSize        small below SmallScreen
//	ticks #1        height - margin.top
//	x axis labels   width - 2*horizontalMargin - axisMargin
//	marginBottom    margin.bottom + label height (SpacingTight when hidden)
//	ticks #2        height - margin.top - marginBottom
//	dataStart       axisMargin + horizontalMargin + SpacingBaseTight
//	drawableWidth   width - margin.right - axisMargin - 2*horizontalMargin - SpacingBaseTight
//	x scale         [0, longestSeriesLength] -> [0, drawableWidth]
//
// # Instances
//
// An [Instance] is the per-chart state holder: it owns one animation
// interpolator and the current selection, and recomputes geometry through
// ComputeLine on every update. Instances are not safe for concurrent use;
// each chart owns its own.
//
// Themes and text measurers are passed in with every input. There is no
// package-level theme.
package chart
