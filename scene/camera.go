package scene

import (
	"math/rand"

	"github.com/chewxy/math32"

	"github.com/Supremolink81/gotracer/types"
)

// A thin-lens perspective camera. Rays originate on the lens disk and pass
// through the focus plane, producing defocus blur for a non-zero aperture.
type Camera struct {
	origin          types.Vec3
	lowerLeftCorner types.Vec3
	horizontal      types.Vec3
	vertical        types.Vec3

	// Orthonormal camera basis.
	u, v, w types.Vec3

	lensRadius float32
}

// Camera construction parameters.
type CameraOptions struct {
	LookFrom types.Vec3
	LookAt   types.Vec3
	Up       types.Vec3

	// Vertical field of view in degrees.
	Vfov float32

	// Frame width over height.
	Aspect float32

	// Lens diameter; zero disables defocus blur.
	Aperture float32

	// Distance to the plane of perfect focus.
	FocusDist float32
}

// Create a new camera.
func NewCamera(opts CameraOptions) *Camera {
	theta := opts.Vfov * math32.Pi / 180.0
	h := math32.Tan(theta / 2)
	viewportHeight := 2 * h
	viewportWidth := opts.Aspect * viewportHeight

	focusDist := opts.FocusDist
	if focusDist <= 0 {
		focusDist = opts.LookFrom.Sub(opts.LookAt).Len()
	}

	w := opts.LookFrom.Sub(opts.LookAt).Normalize()
	u := opts.Up.Cross(w).Normalize()
	v := w.Cross(u)

	horizontal := u.Mul(viewportWidth * focusDist)
	vertical := v.Mul(viewportHeight * focusDist)

	return &Camera{
		origin: opts.LookFrom,
		lowerLeftCorner: opts.LookFrom.
			Sub(horizontal.Mul(0.5)).
			Sub(vertical.Mul(0.5)).
			Sub(w.Mul(focusDist)),
		horizontal: horizontal,
		vertical:   vertical,
		u:          u,
		v:          v,
		w:          w,
		lensRadius: opts.Aperture / 2,
	}
}

// Generate a camera ray through viewport coordinates (s, t) in [0,1]^2, with
// (0,0) at the lower left corner. The random generator samples the lens disk
// when defocus blur is enabled.
func (c *Camera) GenerateRay(s, t float32, rng *rand.Rand) Ray {
	var offset types.Vec3
	if c.lensRadius > 0 {
		rd := RandomInUnitDisk(rng)
		offset = c.u.Mul(rd[0] * c.lensRadius).Add(c.v.Mul(rd[1] * c.lensRadius))
	}

	origin := c.origin.Add(offset)
	dir := c.lowerLeftCorner.
		Add(c.horizontal.Mul(s)).
		Add(c.vertical.Mul(t)).
		Sub(origin)
	return NewRay(origin, dir)
}
