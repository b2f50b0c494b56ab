package animation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/chartkit/pkg/observability"
	"github.com/matzehuels/chartkit/pkg/path"
)

func line(ys ...float64) []path.Coordinate {
	out := make([]path.Coordinate, len(ys))
	for i, y := range ys {
		out[i] = path.Coordinate{X: float64(i) * 10, Y: y}
	}
	return out
}

func TestSkipAboveCeiling(t *testing.T) {
	ip := New(WithMaxSeriesLength(200))
	to := [][]path.Coordinate{line(1, 2, 3)}

	ip.Retarget(to, 250, 100)

	assert.Equal(t, Idle, ip.State())
	assert.Equal(t, to, ip.Coordinates(), "target applied immediately")
	assert.Nil(t, ip.Frame().From, "no intermediate frames")
	assert.False(t, ip.Advance(time.Millisecond))

	ip.Retarget(to, 200, 100)
	assert.Equal(t, Animating, ip.State(), "at the ceiling still animates")
}

func TestDisabled(t *testing.T) {
	for _, ip := range []*Interpolator{New(WithEnabled(false)), New(WithDuration(0))} {
		ip.Retarget([][]path.Coordinate{line(5)}, 1, 0)
		assert.Equal(t, Idle, ip.State())
		assert.Equal(t, 5.0, ip.Coordinates()[0][0].Y)
	}
}

func TestAnimateFromBaseline(t *testing.T) {
	ip := New(WithEasing(Linear), WithDuration(100*time.Millisecond))
	ip.Retarget([][]path.Coordinate{line(0, 20)}, 1, 100)
	require.Equal(t, Animating, ip.State())

	f := ip.Frame()
	assert.Equal(t, 0.0, f.Progress)
	assert.Equal(t, line(100, 100), f.Coordinates[0], "new series start on the baseline")

	assert.True(t, ip.Advance(50*time.Millisecond))
	assert.Equal(t, line(50, 60), ip.Coordinates()[0])

	assert.False(t, ip.Advance(50*time.Millisecond))
	assert.Equal(t, Idle, ip.State())
	assert.Equal(t, line(0, 20), ip.Coordinates()[0])
	assert.Nil(t, ip.Frame().From, "completed frames are discarded")
	assert.Equal(t, 1.0, ip.Progress())
}

func TestSupersedeMidAnimation(t *testing.T) {
	ip := New(WithEasing(Linear))
	ip.Retarget([][]path.Coordinate{line(0, 0)}, 1, 0)
	ip.SetProgress(1)
	require.Equal(t, Idle, ip.State())

	ip.Retarget([][]path.Coordinate{line(100, 100)}, 1, 0)
	ip.SetProgress(0.25)
	emitted := append([]path.Coordinate(nil), ip.Coordinates()[0]...)
	assert.Equal(t, line(25, 25), emitted)

	ip.Retarget([][]path.Coordinate{line(-100, -100)}, 1, 0)
	f := ip.Frame()
	assert.Equal(t, 0.0, f.Progress, "progress resets")
	assert.Equal(t, emitted, f.From[0], "from is the last emitted value")
	assert.Equal(t, emitted, f.Coordinates[0], "no snapping")

	ip.SetProgress(0.5)
	assert.Equal(t, line(-37.5, -37.5), ip.Coordinates()[0])
}

func TestShapeChanges(t *testing.T) {
	ip := New(WithEasing(Linear))
	ip.Retarget([][]path.Coordinate{line(10, 20)}, 1, 0)
	ip.SetProgress(1)

	to := [][]path.Coordinate{line(30, 40, 50), line(1, 2, 3)}
	to[0][2].IsNull = true
	ip.Retarget(to, 2, 99)

	from := ip.Frame().From
	assert.Equal(t, path.Coordinate{X: 0, Y: 10}, from[0][0])
	assert.Equal(t, path.Coordinate{X: 10, Y: 20}, from[0][1])
	assert.Equal(t, path.Coordinate{X: 10, Y: 20, IsNull: true}, from[0][2], "new point continues from the last one")
	assert.Equal(t, line(99, 99, 99), from[1], "new series grows from the baseline")

	// Fewer series and points than before.
	ip.SetProgress(1)
	ip.Retarget([][]path.Coordinate{line(7)}, 0, 0)
	assert.Equal(t, []path.Coordinate{{X: 0, Y: 30}}, ip.Frame().From[0])
}

func TestStop(t *testing.T) {
	ip := New(WithEasing(Linear))
	ip.Retarget([][]path.Coordinate{line(0)}, 0, 100)
	ip.SetProgress(0.5)
	before := append([]path.Coordinate(nil), ip.Coordinates()[0]...)

	ip.Stop()
	assert.Equal(t, Stopped, ip.State())
	assert.False(t, ip.Advance(time.Second))
	ip.SetProgress(1)
	ip.Retarget([][]path.Coordinate{line(42)}, 0, 0)

	assert.Equal(t, before, ip.Coordinates()[0], "stopped interpolator never writes")
	assert.Equal(t, Stopped, ip.State())
}

func TestEasing(t *testing.T) {
	for name, e := range map[string]Easing{
		"linear":      EasingByName("linear"),
		"ease-out":    EasingByName("ease-out"),
		"ease-in-out": EasingByName("ease-in-out"),
		"unknown":     EasingByName("bouncy"),
	} {
		t.Run(name, func(t *testing.T) {
			assert.InDelta(t, 0, e(0), 1e-12)
			assert.InDelta(t, 1, e(1), 1e-12)
			for p := 0.1; p < 1; p += 0.1 {
				assert.GreaterOrEqual(t, e(p+0.05), e(p), "easing must be monotone")
			}
		})
	}
	assert.Greater(t, EaseOutCubic(0.5), 0.5)
}

type recordingHooks struct {
	observability.NoopAnimationHooks
	started, superseded, skipped, completed int
}

func (r *recordingHooks) OnAnimationStart(int)          { r.started++ }
func (r *recordingHooks) OnAnimationSuperseded(float64) { r.superseded++ }
func (r *recordingHooks) OnAnimationSkipped(int, int)   { r.skipped++ }
func (r *recordingHooks) OnAnimationComplete()          { r.completed++ }

func TestHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetAnimationHooks(hooks)
	defer observability.Reset()

	ip := New()
	ip.Retarget([][]path.Coordinate{line(1)}, 0, 0)
	ip.Retarget([][]path.Coordinate{line(2)}, 0, 0)
	ip.Advance(time.Second)
	ip.Retarget([][]path.Coordinate{line(3)}, 1000, 0)

	assert.Equal(t, 2, hooks.started)
	assert.Equal(t, 1, hooks.superseded)
	assert.Equal(t, 1, hooks.completed)
	assert.Equal(t, 1, hooks.skipped)
}
