package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/chartkit/pkg/chart"
	cerrors "github.com/matzehuels/chartkit/pkg/errors"
	"github.com/matzehuels/chartkit/pkg/textmetrics"
)

// Geometry is the serialisable result of computing a definition. Exactly
// one of Line and Bar is set, matching Kind.
type Geometry struct {
	Kind   string              `json:"kind"`
	Title  string              `json:"title,omitempty"`
	Width  float64             `json:"width"`
	Height float64             `json:"height"`
	Line   *chart.LineGeometry `json:"line,omitempty"`
	Bar    *chart.BarGeometry  `json:"bar,omitempty"`
}

// Compute lays out a validated definition.
func Compute(d *Definition, m textmetrics.Measurer) (*Geometry, error) {
	g := &Geometry{Kind: d.Kind, Title: d.Title, Width: d.Width, Height: d.Height}
	var err error
	switch d.Kind {
	case KindLine:
		g.Line, err = chart.ComputeLine(d.LineInput(m))
	case KindBar:
		g.Bar, err = chart.ComputeBar(d.BarInput(m))
	default:
		err = cerrors.New(cerrors.ErrCodeInvalidChart, "unknown chart kind %q", d.Kind)
	}
	if err != nil {
		return nil, err
	}
	return g, nil
}

// WriteJSON encodes geometry as indented JSON.
func WriteJSON(g *Geometry, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes geometry to a JSON file at path.
func ExportJSON(g *Geometry, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(g, f)
}

// ReadGeometry decodes geometry written by WriteJSON. Scales and resolvers
// are not serialised, so the result is for drawing only.
func ReadGeometry(r io.Reader) (*Geometry, error) {
	var g Geometry
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &g, nil
}
