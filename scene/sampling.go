package scene

import (
	"math/rand"

	"github.com/Supremolink81/gotracer/types"
)

// Sample a point uniformly inside the unit sphere via rejection.
func RandomInUnitSphere(rng *rand.Rand) types.Vec3 {
	for {
		p := types.XYZ(
			2*rng.Float32()-1,
			2*rng.Float32()-1,
			2*rng.Float32()-1,
		)
		if p.LenSqr() < 1 {
			return p
		}
	}
}

// Sample a point uniformly on the unit sphere surface.
func RandomUnitVector(rng *rand.Rand) types.Vec3 {
	return RandomInUnitSphere(rng).Normalize()
}

// Sample a point uniformly inside the unit disk. Used for lens aperture
// sampling.
func RandomInUnitDisk(rng *rand.Rand) types.Vec2 {
	for {
		p := types.XY(2*rng.Float32()-1, 2*rng.Float32()-1)
		if p.Dot(p) < 1 {
			return p
		}
	}
}
