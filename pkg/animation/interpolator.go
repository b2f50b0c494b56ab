// Package animation interpolates chart coordinates between data updates.
//
// # Overview
//
// An [Interpolator] is owned by one chart instance. Every data change
// calls [Interpolator.Retarget] with the freshly computed coordinates; the
// host then drives the transition frame by frame with
// [Interpolator.Advance] (elapsed time) or [Interpolator.SetProgress]
// (explicit progress, handy in tests).
//
// # States
//
//	Idle ──Retarget──▶ Animating ──progress 1──▶ Idle
//	  any ──Stop──▶ Stopped
//
// A retarget arriving mid-animation starts from the last emitted
// coordinates, so the line never snaps. Series longer than the animation
// ceiling (and disabled interpolators) jump straight to the target with no
// intermediate frames. Once stopped, an interpolator ignores every later
// call, which keeps a disposed chart from being written to.
//
// When the number of series or points changes, new series grow from the
// baseline and new points of an existing series start at that series'
// previous last point.
package animation

import (
	"time"

	"github.com/matzehuels/chartkit/pkg/observability"
	"github.com/matzehuels/chartkit/pkg/path"
)

const (
	// DefaultMaxSeriesLength is the longest series (by last index) that
	// still animates.
	DefaultMaxSeriesLength = 200

	// DefaultDuration is the length of one transition.
	DefaultDuration = 300 * time.Millisecond
)

// State is the lifecycle state of an Interpolator.
type State int

const (
	Idle State = iota
	Animating
	Stopped
)

func (s State) String() string {
	switch s {
	case Animating:
		return "animating"
	case Stopped:
		return "stopped"
	}
	return "idle"
}

// Option configures an Interpolator.
type Option func(*Interpolator)

// WithDuration sets the transition length. A non-positive duration
// disables animation.
func WithDuration(d time.Duration) Option {
	return func(ip *Interpolator) { ip.duration = d }
}

// WithEasing sets the timing function.
func WithEasing(e Easing) Option {
	return func(ip *Interpolator) {
		if e != nil {
			ip.easing = e
		}
	}
}

// WithMaxSeriesLength sets the animation ceiling.
func WithMaxSeriesLength(n int) Option {
	return func(ip *Interpolator) { ip.maxLength = n }
}

// WithEnabled turns animation on or off.
func WithEnabled(enabled bool) Option {
	return func(ip *Interpolator) { ip.enabled = enabled }
}

// Frame is a snapshot of the interpolator. From and To are nil when no
// transition is in flight.
type Frame struct {
	From        [][]path.Coordinate `json:"from,omitempty"`
	To          [][]path.Coordinate `json:"to,omitempty"`
	Progress    float64             `json:"progress"`
	Coordinates [][]path.Coordinate `json:"coordinates"`
}

// Interpolator holds the animation state of one chart. It is not safe for
// concurrent use.
type Interpolator struct {
	duration  time.Duration
	easing    Easing
	maxLength int
	enabled   bool

	state    State
	from     [][]path.Coordinate
	to       [][]path.Coordinate
	current  [][]path.Coordinate
	elapsed  time.Duration
	progress float64
}

// New returns an idle interpolator.
func New(opts ...Option) *Interpolator {
	ip := &Interpolator{
		duration:  DefaultDuration,
		easing:    EaseOutCubic,
		maxLength: DefaultMaxSeriesLength,
		enabled:   true,
		progress:  1,
	}
	for _, opt := range opts {
		opt(ip)
	}
	return ip
}

// State returns the current state.
func (ip *Interpolator) State() State { return ip.state }

// Animating reports whether a transition is in flight.
func (ip *Interpolator) Animating() bool { return ip.state == Animating }

// Progress returns linear progress of the current transition (1 when idle).
func (ip *Interpolator) Progress() float64 { return ip.progress }

// ShouldAnimate reports whether a series set whose longest series ends at
// index longestSeriesLength would animate.
func (ip *Interpolator) ShouldAnimate(longestSeriesLength int) bool {
	return ip.enabled && ip.duration > 0 && longestSeriesLength <= ip.maxLength
}

// Retarget starts a transition towards to. baselineY is where new series
// grow from.
func (ip *Interpolator) Retarget(to [][]path.Coordinate, longestSeriesLength int, baselineY float64) {
	if ip.state == Stopped {
		return
	}
	if !ip.ShouldAnimate(longestSeriesLength) {
		observability.Animation().OnAnimationSkipped(longestSeriesLength, ip.maxLength)
		ip.finish(to)
		return
	}
	if ip.state == Animating {
		observability.Animation().OnAnimationSuperseded(ip.progress)
	}

	ip.from = align(ip.current, to, baselineY)
	ip.to = clone(to)
	ip.current = clone(ip.from)
	ip.elapsed = 0
	ip.progress = 0
	ip.state = Animating
	observability.Animation().OnAnimationStart(longestSeriesLength)
}

// Jump applies coordinates immediately, cancelling any transition.
func (ip *Interpolator) Jump(to [][]path.Coordinate) {
	if ip.state == Stopped {
		return
	}
	ip.finish(to)
}

// Advance moves the transition forward by dt and reports whether it is
// still running.
func (ip *Interpolator) Advance(dt time.Duration) bool {
	if ip.state != Animating {
		return false
	}
	ip.elapsed += dt
	ip.SetProgress(float64(ip.elapsed) / float64(ip.duration))
	return ip.state == Animating
}

// SetProgress sets linear progress directly, clamped to [0, 1]. Reaching 1
// completes the transition.
func (ip *Interpolator) SetProgress(p float64) {
	if ip.state != Animating {
		return
	}
	p = min(max(p, 0), 1)
	if p >= 1 {
		ip.finish(ip.to)
		observability.Animation().OnAnimationComplete()
		return
	}
	ip.progress = p
	e := ip.easing(p)
	for s := range ip.to {
		for i := range ip.to[s] {
			a, b := ip.from[s][i], ip.to[s][i]
			ip.current[s][i] = path.Coordinate{
				X:      lerp(a.X, b.X, e),
				Y:      lerp(a.Y, b.Y, e),
				IsNull: b.IsNull,
			}
		}
	}
}

// Coordinates returns the last emitted coordinates. Callers must not
// modify them.
func (ip *Interpolator) Coordinates() [][]path.Coordinate { return ip.current }

// Frame returns a snapshot of the interpolator.
func (ip *Interpolator) Frame() Frame {
	return Frame{From: ip.from, To: ip.to, Progress: ip.progress, Coordinates: ip.current}
}

// Stop cancels any transition. The interpolator keeps its last emitted
// coordinates and ignores every later call.
func (ip *Interpolator) Stop() {
	ip.from, ip.to = nil, nil
	ip.state = Stopped
}

func (ip *Interpolator) finish(to [][]path.Coordinate) {
	ip.current = clone(to)
	ip.from, ip.to = nil, nil
	ip.elapsed = 0
	ip.progress = 1
	ip.state = Idle
}

// align builds start coordinates with the shape of to. Existing points
// start where they are; new points of an existing series start at its last
// point; new series start on the baseline.
func align(prev, to [][]path.Coordinate, baselineY float64) [][]path.Coordinate {
	out := make([][]path.Coordinate, len(to))
	for s := range to {
		out[s] = make([]path.Coordinate, len(to[s]))
		var old []path.Coordinate
		if s < len(prev) {
			old = prev[s]
		}
		for i, target := range to[s] {
			switch {
			case i < len(old):
				out[s][i] = old[i]
			case len(old) > 0:
				out[s][i] = old[len(old)-1]
			default:
				out[s][i] = path.Coordinate{X: target.X, Y: baselineY}
			}
			out[s][i].IsNull = target.IsNull
		}
	}
	return out
}

func clone(c [][]path.Coordinate) [][]path.Coordinate {
	if c == nil {
		return nil
	}
	out := make([][]path.Coordinate, len(c))
	for i := range c {
		out[i] = append([]path.Coordinate(nil), c[i]...)
	}
	return out
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }
