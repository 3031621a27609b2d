package starfield

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-warp/internal/config"
)

// Camera is the viewer shared by the rendering backends. It sits behind and
// above the ship looking down negative Z; the ship rig rolls and sways it.
type Camera struct {
	cfg config.CameraConfig
}

// NewCamera creates a camera from its configuration.
func NewCamera(cfg config.CameraConfig) Camera {
	return Camera{cfg: cfg}
}

// ViewProjection returns the combined view-projection matrix for a viewport
// aspect ratio (width over height) with the rig applied.
func (c Camera) ViewProjection(aspect float64, rig Rig) mgl64.Mat4 {
	proj := mgl64.Perspective(mgl64.DegToRad(c.cfg.FOV), aspect, c.cfg.Near, c.cfg.Far)
	eye := mgl64.Vec3{rig.Sway, c.cfg.Height, c.cfg.Back}
	view := mgl64.LookAtV(eye, eye.Add(mgl64.Vec3{0, 0, -1}), mgl64.Vec3{0, 1, 0})
	return proj.Mul4(mgl64.HomogRotate3DZ(rig.Roll)).Mul4(view)
}

// Project maps a world point into a width x height viewport with Y down.
// dist is the view-space distance, used to size and fade glyphs.
// ok is false for points behind the camera or outside the depth range.
func Project(vp mgl64.Mat4, p mgl64.Vec3, width, height float64) (x, y, dist float64, ok bool) {
	clip := vp.Mul4x1(p.Vec4(1))
	w := clip.W()
	if w <= 0 {
		return 0, 0, 0, false
	}
	ndc := clip.Vec3().Mul(1 / w)
	if ndc[2] < -1 || ndc[2] > 1 {
		return 0, 0, 0, false
	}
	x = (ndc[0] + 1) / 2 * width
	y = (1 - ndc[1]) / 2 * height
	return x, y, w, true
}
