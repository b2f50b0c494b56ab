// Package ticks plans "nice" axis ticks for a linear scale.
//
// # Overview
//
// [Plan] takes the raw data values and the pixel length of an axis and
// returns tick values, their formatted labels and pixel offsets, the linear
// scale built on the niced domain, and the axis margin the opposite axis
// must reserve for the labels.
//
// # Algorithm
//
// Candidate steps come from the 1-2-5 ladder (…, 0.5, 1, 2, 5, 10, 20, …).
// The planner starts at the smallest step whose tick count stays within the
// target density (one interval per [Options.Spacing] pixels) and climbs the
// ladder until every label clears its neighbour. Vertical axes compare the
// line height against the pixel gap between ticks; horizontal axes compare
// half the widths of adjacent labels plus padding.
//
// Because the domain always includes zero, the tick count never increases
// as the step grows, and it never increases as the axis shrinks: the
// densest fitting set wins and shrinking only removes candidates.
//
// Integer mode floors and ceils the domain to whole numbers and never picks
// a step below one. An empty or all-zero input plans ticks over
// [0, DefaultMax] so an empty-state axis can still be drawn.
package ticks
