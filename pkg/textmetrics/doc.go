// Package textmetrics measures the rendered width of label strings.
//
// # Overview
//
// Every layout decision in chartkit that depends on text (tick density,
// axis margins, label wrapping and truncation) goes through the [Measurer]
// interface. The engine never assumes a particular font: the caller injects
// a measurer as configuration.
//
// Four implementations are provided:
//
//   - [Estimator]: a font-free heuristic (average glyph advance as a ratio of
//     the font size, with East Asian wide runes counted twice). It is the
//     default and is fully deterministic.
//   - [OpenType]: exact advances from a parsed TrueType/OpenType font. The
//     bundled Go Regular face is available through [NewGoRegular].
//   - [Cells]: terminal cell widths, for charts drawn in a terminal where one
//     "pixel" is one character cell.
//   - [Cached]: a size-bounded LRU in front of any other measurer, keyed by
//     (text, font size). Measurement is deterministic, so results can be
//     shared process-wide.
//
// # Usage
//
//	m, _ := textmetrics.NewCached(textmetrics.Estimator{}, textmetrics.DefaultCacheSize)
//	w := m.Measure("$1,200", 12)
package textmetrics
