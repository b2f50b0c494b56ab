// Package series defines the chart data model and aligns series of
// differing lengths into one positional index space.
//
// # Overview
//
// A [Series] is an ordered list of [DataPoint] values. Points are aligned
// by position, never by key: index 3 of every series refers to the same
// x position even when the keys differ. [Normalize] computes the shared
// length, picks the reference (longest) series and exposes the mapping
// between declaration order and render order.
//
// Series are owned by the caller; nothing in this package mutates them.
//
// # Render Order
//
// Series render in reverse declaration order so the first-declared series
// is drawn on top. Indices handed to and from callers (highlighted series,
// tooltip entries) always refer to declaration order; use
// [Normalized.RenderOrder], [Normalized.OriginalIndex] and
// [Normalized.RenderPosition] to translate.
package series

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	cerrors "github.com/matzehuels/chartkit/pkg/errors"
)

// Key identifies a data point. It holds either a string or a number.
type Key struct {
	str   string
	num   float64
	isNum bool
}

// StringKey returns a string key.
func StringKey(s string) Key { return Key{str: s} }

// NumberKey returns a numeric key.
func NumberKey(f float64) Key { return Key{num: f, isNum: true} }

// IsNumber reports whether the key holds a number.
func (k Key) IsNumber() bool { return k.isNum }

// Float returns the numeric value of a number key, or 0.
func (k Key) Float() float64 { return k.num }

// String returns the key as display text.
func (k Key) String() string {
	if k.isNum {
		return strconv.FormatFloat(k.num, 'f', -1, 64)
	}
	return k.str
}

// MarshalJSON encodes the key as a JSON string or number.
func (k Key) MarshalJSON() ([]byte, error) {
	if k.isNum {
		return json.Marshal(k.num)
	}
	return json.Marshal(k.str)
}

// UnmarshalJSON accepts a JSON string or number.
func (k *Key) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*k = StringKey(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("key must be a string or a number: %w", err)
	}
	*k = NumberKey(f)
	return nil
}

// UnmarshalTOML accepts a TOML string, integer or float.
func (k *Key) UnmarshalTOML(v any) error {
	switch v := v.(type) {
	case string:
		*k = StringKey(v)
	case int64:
		*k = NumberKey(float64(v))
	case float64:
		*k = NumberKey(v)
	default:
		return fmt.Errorf("key must be a string or a number, got %T", v)
	}
	return nil
}

// DataPoint is one datum. A nil Value is null: it keeps its index slot but
// carries no value.
type DataPoint struct {
	Key   Key      `json:"key" toml:"key"`
	Value *float64 `json:"value" toml:"value"`
}

// Point returns a DataPoint with a value.
func Point(key Key, v float64) DataPoint { return DataPoint{Key: key, Value: &v} }

// Null returns a DataPoint without a value.
func Null(key Key) DataPoint { return DataPoint{Key: key} }

// IsNull reports whether the point has no value.
func (p DataPoint) IsNull() bool { return p.Value == nil }

// ValueOr returns the point's value, or def when it is null.
func (p DataPoint) ValueOr(def float64) float64 {
	if p.Value == nil {
		return def
	}
	return *p.Value
}

// LineStyle is the stroke pattern of a line series.
type LineStyle string

const (
	LineSolid  LineStyle = "solid"
	LineDashed LineStyle = "dashed"
	LineDotted LineStyle = "dotted"
)

// AreaStyle is the fill below a line series.
type AreaStyle string

const (
	AreaNone     AreaStyle = "none"
	AreaSolid    AreaStyle = "solid"
	AreaGradient AreaStyle = "gradient"
)

// Series is a named sequence of data points. Color is resolved by the
// renderer and passed through unchanged.
type Series struct {
	Name      string      `json:"name" toml:"name"`
	Color     string      `json:"color,omitempty" toml:"color"`
	Data      []DataPoint `json:"data" toml:"data"`
	LineStyle LineStyle   `json:"line_style,omitempty" toml:"line_style"`
	AreaStyle AreaStyle   `json:"area_style,omitempty" toml:"area_style"`
}

// HasArea reports whether the series fills the area below its line.
func (s Series) HasArea() bool {
	return s.AreaStyle != "" && s.AreaStyle != AreaNone
}

// Validate checks series names, shapes, styles and values against the
// engine limits.
func Validate(series []Series) error {
	longest := 0
	for i, s := range series {
		if err := cerrors.ValidateSeriesName(s.Name); err != nil {
			return cerrors.Wrap(cerrors.ErrCodeInvalidChart, err, "series %d", i)
		}
		switch s.LineStyle {
		case "", LineSolid, LineDashed, LineDotted:
		default:
			return cerrors.New(cerrors.ErrCodeInvalidChart, "series %d: unknown line style %q", i, s.LineStyle)
		}
		switch s.AreaStyle {
		case "", AreaNone, AreaSolid, AreaGradient:
		default:
			return cerrors.New(cerrors.ErrCodeInvalidChart, "series %d: unknown area style %q", i, s.AreaStyle)
		}
		for j, p := range s.Data {
			if p.Value == nil {
				continue
			}
			if err := cerrors.ValidateValue(*p.Value); err != nil {
				return cerrors.Wrap(cerrors.ErrCodeInvalidChart, err, "series %d point %d", i, j)
			}
		}
		longest = max(longest, len(s.Data))
	}
	return cerrors.ValidateSeriesShape(len(series), longest)
}

// isFinite reports whether v can be plotted.
func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
