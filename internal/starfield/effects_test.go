package starfield

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/tui-warp/internal/config"
)

func TestWarpRatio(t *testing.T) {
	tests := []struct {
		name                  string
		current, cruise, warp float64
		want                  float64
	}{
		{"at cruise", 0.1, 0.1, 30, 0},
		{"at warp", 30, 0.1, 30, 1},
		{"midway", 15.05, 0.1, 30, 0.5},
		{"below cruise clamps", 0, 0.1, 30, 0},
		{"above warp clamps", 45, 0.1, 30, 1},
		{"degenerate range", 5, 5, 5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, WarpRatio(tt.current, tt.cruise, tt.warp), 1e-12)
		})
	}
}

func TestEngineGlow(t *testing.T) {
	fx := config.DefaultWarpConfig().Effects
	assert.Equal(t, 5.0, EngineGlow(0, fx))
	assert.Equal(t, 35.0, EngineGlow(1, fx))
}

func TestShipRigAmplitude(t *testing.T) {
	fx := config.DefaultWarpConfig().Effects

	calm := ShipRig(0.1, 0, fx)
	assert.Equal(t, fx.SmallShake, calm.Amplitude)

	full := ShipRig(1, 0, fx)
	assert.Equal(t, fx.BigShake, full.Amplitude)

	edge := ShipRig(fx.ShakeThreshold, 0, fx)
	assert.Equal(t, fx.SmallShake, edge.Amplitude, "threshold itself is not above it")
}

func TestShipRigIsStatelessOscillator(t *testing.T) {
	fx := config.DefaultWarpConfig().Effects

	a := ShipRig(1, 314, fx)
	b := ShipRig(1, 314, fx)
	assert.Equal(t, a, b)

	assert.InDelta(t, math.Sin(314*fx.RollFreq)*fx.BigShake, a.Roll, 1e-12)
	assert.InDelta(t, math.Sin(314*fx.SwayFreq)*fx.BigShake*fx.SwayScale, a.Sway, 1e-12)
	assert.Zero(t, ShipRig(1, 0, fx).Roll)
}

func TestSpeedReadout(t *testing.T) {
	sc := config.DefaultWarpConfig().Speed

	r := SpeedReadout(1.296, 30, sc)
	assert.InDelta(t, 12.96, r.Value, 1e-12)
	assert.Equal(t, "13.0", r.Text())
	assert.InDelta(t, 4.32, r.Percent(), 1e-9)
	assert.False(t, r.Hot)

	hot := SpeedReadout(6, 30, sc)
	assert.True(t, hot.Hot)

	capped := SpeedReadout(45, 30, sc)
	assert.Equal(t, 1.0, capped.Fill)
	assert.Equal(t, 100.0, capped.Percent())

	assert.Zero(t, SpeedReadout(3, 0, sc).Fill)
}

func TestCameraProjectsAxisToCenter(t *testing.T) {
	cam := NewCamera(config.DefaultWarpConfig().Camera)
	vp := cam.ViewProjection(2, Rig{})

	x, y, dist, ok := Project(vp, mgl64.Vec3{0, 2, -95}, 200, 100)
	assert.True(t, ok)
	assert.InDelta(t, 100, x, 1e-6)
	assert.InDelta(t, 50, y, 1e-6)
	assert.InDelta(t, 100, dist, 1e-6)
}

func TestCameraProjectOrientation(t *testing.T) {
	cam := NewCamera(config.DefaultWarpConfig().Camera)
	vp := cam.ViewProjection(1, Rig{})

	x, y, _, ok := Project(vp, mgl64.Vec3{10, 12, -100}, 100, 100)
	assert.True(t, ok)
	assert.Greater(t, x, 50.0, "positive X projects right")
	assert.Less(t, y, 50.0, "positive Y projects up")
}

func TestCameraProjectRejectsBehindViewer(t *testing.T) {
	cam := NewCamera(config.DefaultWarpConfig().Camera)
	vp := cam.ViewProjection(1, Rig{})

	_, _, _, ok := Project(vp, mgl64.Vec3{0, 2, 50}, 100, 100)
	assert.False(t, ok)

	_, _, _, ok = Project(vp, mgl64.Vec3{0, 2, -5000}, 100, 100)
	assert.False(t, ok, "beyond the far plane")
}

func TestCameraRollRotatesView(t *testing.T) {
	cam := NewCamera(config.DefaultWarpConfig().Camera)
	flat := cam.ViewProjection(1, Rig{})
	rolled := cam.ViewProjection(1, Rig{Roll: math.Pi / 2})

	p := mgl64.Vec3{10, 2, -95}
	fx, fy, _, _ := Project(flat, p, 100, 100)
	rx, ry, _, _ := Project(rolled, p, 100, 100)

	assert.InDelta(t, 50, fy, 1e-6)
	assert.InDelta(t, 50, rx, 1e-6)
	assert.NotEqual(t, fx, rx)
	assert.NotEqual(t, 50.0, ry)
}
