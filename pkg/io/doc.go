// Package io provides TOML and JSON import of chart definitions and JSON
// export of computed geometry.
//
// # Overview
//
// A chart definition describes one chart: its kind, outer size, axis
// options, theme overrides and series. The same definition can be written
// in TOML or JSON; [Import] picks the decoder from the file extension.
//
// # TOML Format
//
//	kind = "line"
//	width = 640
//	height = 320
//	animated = true
//
//	[y_axis]
//	integers_only = true
//	format = { suffix = "%", grouping = true }
//
//	[x_axis]
//	wrap_labels = true
//
//	[theme]
//	has_spline = true
//
//	[[series]]
//	name = "Sales"
//	area_style = "gradient"
//	data = [
//	  { key = "Jan", value = 1200 },
//	  { key = "Feb" },              # null: keeps its slot, draws nothing
//	  { key = "Mar", value = 1850.5 },
//	]
//
// The JSON form uses the same field names:
//
//	{"kind": "bar", "width": 480, "height": 240,
//	 "series": [{"name": "Visits", "data": [{"key": "Mon", "value": 3}]}]}
//
// Keys may be strings or numbers. A missing or null value is a null point.
//
// # Defaults
//
// Omitted fields fall back to [DefaultWidth], [DefaultHeight], kind "line"
// and the engine's default theme. Theme fields that are present override
// the default one by one.
//
// # Label Formats
//
// [LabelFormat] renders axis values with a prefix, a suffix, a fixed
// number of decimals and locale-aware thousands separators (via
// golang.org/x/text/message).
//
// # Export
//
// [WriteJSON] and [ExportJSON] write a [Geometry], the serialisable result
// of computing a definition. [ReadGeometry] reads it back, which is how
// cached geometry is served.
package io
