// Package labels fits axis labels into the space a chart allots them.
//
// # Overview
//
// Label layout is driven entirely by measured text widths: callers inject a
// [textmetrics.Measurer] and the package never assumes a font.
//
//   - [Wrap] breaks a label into at most N lines greedily by words. A single
//     word wider than the line is truncated with an ellipsis, and text left
//     over after the last allowed line truncates that line.
//   - [Truncate] shortens a label on grapheme cluster boundaries so emoji
//     and combining sequences are never split.
//   - [Minimal] thins evenly spaced labels until neighbours no longer
//     overlap, always keeping the first and last label.
//   - [Band] centres labels under the bands of a band scale.
//   - [XAxisDetails] combines the above for a linear x axis and reports the
//     height the axis needs, which drives the chart's bottom margin.
package labels
