package tracer

import (
	"math/rand"

	"github.com/chewxy/math32"

	"github.com/Supremolink81/gotracer/scene"
	"github.com/Supremolink81/gotracer/types"
)

// Offset applied to the near end of the search interval so scattered rays do
// not re-intersect the surface they originate from.
const selfIntersectEpsilon float32 = 1e-3

// The Integrator computes the radiance arriving along a camera ray by
// following randomly sampled bounce paths through the scene.
type Integrator struct {
	maxDepth int
}

// Create a path integrator with a fixed bounce budget.
func NewIntegrator(maxDepth int) *Integrator {
	return &Integrator{maxDepth: maxDepth}
}

// Trace follows the path started by r for at most maxDepth bounces and
// returns the collected radiance.
//
// The loop accumulates a running attenuation product instead of recursing;
// the result is identical to the recursive formulation
// emitted + attenuation * trace(scattered, depth-1) while keeping stack depth
// constant for large bounce budgets.
func (in *Integrator) Trace(r scene.Ray, sc *scene.Scene, rng *rand.Rand) types.Vec3 {
	var radiance types.Vec3
	throughput := types.XYZ(1, 1, 1)

	for depth := in.maxDepth; depth > 0; depth-- {
		rec, ok := sc.Intersect(r, selfIntersectEpsilon, math32.MaxFloat32, rng)
		if !ok {
			// The path escapes the scene; the background is its exit
			// radiance.
			radiance = radiance.Add(throughput.MulVec(sc.Background(r)))
			break
		}

		if emitter, isEmitter := rec.Material.(scene.Emitter); isEmitter {
			radiance = radiance.Add(throughput.MulVec(emitter.Emit(rec.U, rec.V, rec.Point)))
		}

		attenuation, scattered, didScatter := rec.Material.Scatter(r, rec, rng)
		if !didScatter {
			// Absorbed; later bounces contribute nothing.
			break
		}

		throughput = throughput.MulVec(attenuation)
		r = scattered
	}

	return radiance
}
