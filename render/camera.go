package render

import (
	"math"

	"github.com/lixenwraith/nri-constellation/vmath"
)

// Camera is a look-at perspective camera
type Camera struct {
	Position vmath.Vec3F
	Target   vmath.Vec3F
	Up       vmath.Vec3F
	FOV      float64 // vertical, degrees
	Near     float64
	Far      float64
	Aspect   float64

	right, up, forward vmath.Vec3F
	focal              float64
}

// NewCamera creates a camera at z looking at the origin
func NewCamera(fov, aspect, near, far, z float64) *Camera {
	c := &Camera{
		Position: vmath.Vec3F{Z: z},
		Up:       vmath.Vec3F{Y: 1},
		FOV:      fov,
		Near:     near,
		Far:      far,
		Aspect:   aspect,
	}
	c.Update()
	return c
}

// LookAt sets the target and rebuilds the view basis
func (c *Camera) LookAt(x, y, z float64) {
	c.Target = vmath.Vec3F{X: x, Y: y, Z: z}
	c.Update()
}

// Update rebuilds the view basis after Position, Target, FOV or Aspect changed
func (c *Camera) Update() {
	c.forward = vmath.V3FNormalize(vmath.V3FSub(c.Target, c.Position))
	if vmath.V3FMagSq(c.forward) == 0 {
		c.forward = vmath.Vec3F{Z: -1}
	}
	c.right = vmath.V3FNormalize(vmath.V3FCross(c.forward, c.Up))
	if vmath.V3FMagSq(c.right) == 0 {
		c.right = vmath.Vec3F{X: 1}
	}
	c.up = vmath.V3FCross(c.right, c.forward)
	c.focal = 1 / math.Tan(c.FOV*math.Pi/360)
	if c.Aspect <= 0 || math.IsNaN(c.Aspect) || math.IsInf(c.Aspect, 0) {
		c.Aspect = 1
	}
}

// Projection is a projected point in screen space with its clip depth
type Projection struct {
	X, Y float64
	Z    float64 // NDC depth, -1 at near, 1 at far
	W    float64 // view-space distance along the view axis
}

// Visible reports whether the point lies inside the depth range
func (p Projection) Visible() bool {
	return p.Z >= -1 && p.Z <= 1
}

// Project maps a world point to a w×h viewport
func (c *Camera) Project(v vmath.Vec3F, w, h float64) Projection {
	d := vmath.V3FSub(v, c.Position)
	vx := vmath.V3FDot(d, c.right)
	vy := vmath.V3FDot(d, c.up)
	vz := vmath.V3FDot(d, c.forward)

	if vz <= 0 {
		return Projection{Z: 2, W: vz}
	}

	nx := vx * c.focal / c.Aspect / vz
	ny := vy * c.focal / vz
	nz := (c.Far+c.Near)/(c.Far-c.Near) - 2*c.Far*c.Near/((c.Far-c.Near)*vz)

	return Projection{
		X: (nx*0.5 + 0.5) * w,
		Y: (-ny*0.5 + 0.5) * h,
		Z: nz,
		W: vz,
	}
}

// PointScale is the screen-space size multiplier for a sprite at view distance wz
func PointScale(wz, base float64) float64 {
	if wz <= 0 {
		return 0
	}
	return base / wz
}
