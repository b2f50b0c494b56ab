package chart

import (
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/chartkit/pkg/animation"
	cerrors "github.com/matzehuels/chartkit/pkg/errors"
	"github.com/matzehuels/chartkit/pkg/interaction"
	"github.com/matzehuels/chartkit/pkg/path"
	"github.com/matzehuels/chartkit/pkg/series"
)

// Tooltip is the content and anchor of the tooltip for the active index.
type Tooltip struct {
	Position interaction.Position  `json:"position"`
	Entries  []series.TooltipEntry `json:"entries"`
}

// Instance is the mutable state of one line chart: its latest geometry,
// animation and selection. Instances are not safe for concurrent use.
type Instance struct {
	// ID identifies the instance across log lines and sessions.
	ID string

	interp    *animation.Interpolator
	selection interaction.Selection
	position  interaction.Position
	geometry  *LineGeometry

	closed bool

	// last is the event behind the current selection.
	last interaction.Event
}

// NewInstance returns an instance with no geometry. opts configure its
// interpolator.
func NewInstance(opts ...animation.Option) *Instance {
	return &Instance{
		ID:       uuid.NewString(),
		interp:   animation.New(opts...),
		position: interaction.NoPosition,
	}
}

// Update recomputes the geometry and retargets the animation towards it.
// A pointer selection is resolved again at the last pointer position; a
// keyboard selection is clamped to the new series length.
func (c *Instance) Update(in LineInput) (*LineGeometry, error) {
	if c.closed {
		return nil, cerrors.New(cerrors.ErrCodeInvalidInput, "chart instance %s is closed", c.ID)
	}
	g, err := ComputeLine(in)
	if err != nil {
		return nil, err
	}
	c.geometry = g

	if g.AnimatePoints {
		c.interp.Retarget(g.Coordinates, g.LongestSeriesLength, g.BaselineY)
	} else {
		c.interp.Jump(g.Coordinates)
	}

	c.selection.Reclamp(g.Normalized.Length)
	i, ok := c.selection.Get()
	switch {
	case !ok:
		c.position = interaction.NoPosition
	case c.last.Kind == interaction.PointerMove || c.last.Kind == interaction.TouchMove:
		c.position = g.Resolver.Resolve(c.last)
		c.selection.Apply(c.position)
	default:
		c.position = g.Resolver.Index(i)
	}
	return g, nil
}

// Geometry returns the latest geometry, or nil before the first Update.
func (c *Instance) Geometry() *LineGeometry { return c.geometry }

// Handle resolves an input event against the current geometry and updates
// the selection.
func (c *Instance) Handle(e interaction.Event) interaction.Position {
	if c.closed || c.geometry == nil {
		return interaction.NoPosition
	}
	p := c.geometry.Resolver.Resolve(e)
	c.selection.Apply(p)
	c.position = p
	c.last = e
	return p
}

// ActiveIndex returns the selected data index.
func (c *Instance) ActiveIndex() (int, bool) { return c.selection.Get() }

// Advance moves the animation forward and reports whether it is still
// running.
func (c *Instance) Advance(dt time.Duration) bool {
	if c.closed {
		return false
	}
	return c.interp.Advance(dt)
}

// Animating reports whether a transition is in flight.
func (c *Instance) Animating() bool { return c.interp.Animating() }

// Coordinates returns the coordinates to draw now, in render order.
func (c *Instance) Coordinates() [][]path.Coordinate { return c.interp.Coordinates() }

// Paths returns SVG path data for the coordinates drawn now. While idle
// they equal the geometry's paths.
func (c *Instance) Paths() []SeriesPath {
	g := c.geometry
	if g == nil {
		return nil
	}
	if !c.interp.Animating() {
		return g.Paths
	}
	curve := path.CurveFor(g.HasSpline)
	coords := c.interp.Coordinates()
	out := make([]SeriesPath, len(g.Paths))
	for pos, sp := range g.Paths {
		if pos < len(coords) {
			sp.D = path.D(coords[pos], curve)
			if sp.Area != "" {
				sp.Area = path.Area(coords[pos], g.BaselineY, curve)
			}
		}
		out[pos] = sp
	}
	return out
}

// Tooltip returns the tooltip for the active index.
func (c *Instance) Tooltip() (Tooltip, bool) {
	i, ok := c.selection.Get()
	if !ok || c.geometry == nil || !c.position.Valid {
		return Tooltip{Position: interaction.NoPosition}, false
	}
	return Tooltip{Position: c.position, Entries: c.geometry.Tooltip(i)}, true
}

// CrosshairX returns the left edge of the crosshair for the active index.
// While animating it follows the animated longest series.
func (c *Instance) CrosshairX() (float64, bool) {
	i, ok := c.selection.Get()
	g := c.geometry
	if !ok || g == nil || g.EmptyState {
		return 0, false
	}
	if g.AnimatePoints && c.interp.Animating() {
		coords := c.interp.Coordinates()
		pos := g.Normalized.RenderPosition(g.LongestSeriesIndex)
		if pos >= 0 && pos < len(coords) && i < len(coords[pos]) {
			return coords[pos][i].X - g.CrosshairWidth/2, true
		}
	}
	return g.CrosshairX(i), true
}

// Close stops the animation. A closed instance ignores events and refuses
// updates.
func (c *Instance) Close() {
	c.interp.Stop()
	c.closed = true
}
