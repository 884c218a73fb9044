package scene

import (
	"bytes"
	"fmt"
	"math/rand"

	"github.com/olekukonko/tablewriter"

	"github.com/Supremolink81/gotracer/log"
	"github.com/Supremolink81/gotracer/types"
)

// Scenes with fewer primitives than this skip BVH construction; a linear scan
// over such short lists is cheaper than tree traversal.
const bvhThreshold = 4

// A background function maps an escaping ray to its exit radiance.
type BackgroundFn func(r Ray) types.Vec3

// GradientBackground is the default background: a vertical white-to-blue
// gradient keyed off the ray direction.
func GradientBackground(r Ray) types.Vec3 {
	t := 0.5 * (r.Dir.Normalize()[1] + 1.0)
	white := types.XYZ(1.0, 1.0, 1.0)
	blue := types.XYZ(0.5, 0.7, 1.0)
	return white.Mul(1 - t).Add(blue.Mul(t))
}

// BlackBackground suits enclosed scenes lit by emissive primitives.
func BlackBackground(_ Ray) types.Vec3 {
	return types.Vec3{}
}

// The intersector interface is satisfied by both the BVH and the linear scan.
type intersector interface {
	Intersect(r Ray, tMin, tMax float32, rng *rand.Rand) (HitRecord, bool)
}

// A Scene aggregates primitives, the camera and the background. After
// Compile it is immutable and safe to share across render workers without
// synchronization.
type Scene struct {
	Camera     *Camera
	Background BackgroundFn

	prims    []Primitive
	accel    intersector
	bvh      *BVH
	compiled bool

	logger log.Logger
}

// Create an empty scene with the default gradient background.
func New(camera *Camera) *Scene {
	return &Scene{
		Camera:     camera,
		Background: GradientBackground,
		logger:     log.New("scene"),
	}
}

// Add primitives to the scene. Panics when called after Compile; the render
// session owns a compiled scene exclusively.
func (sc *Scene) Add(prims ...Primitive) {
	if sc.compiled {
		panic("scene: Add called after Compile")
	}
	sc.prims = append(sc.prims, prims...)
}

// Compile freezes the scene and builds its acceleration structure.
func (sc *Scene) Compile() {
	if sc.compiled {
		return
	}

	if len(sc.prims) >= bvhThreshold {
		sc.bvh = BuildBVH(sc.prims, 2)
		sc.accel = sc.bvh
	} else {
		sc.accel = &LinearScan{Prims: sc.prims}
	}
	sc.compiled = true
	sc.logger.Infof("compiled scene with %d primitives", len(sc.prims))
}

// Find the nearest primitive intersection inside (tMin, tMax). An empty scene
// reports a miss for every ray.
func (sc *Scene) Intersect(r Ray, tMin, tMax float32, rng *rand.Rand) (HitRecord, bool) {
	if !sc.compiled || len(sc.prims) == 0 {
		return HitRecord{}, false
	}
	return sc.accel.Intersect(r, tMin, tMax, rng)
}

// PrimitiveCount returns the number of primitives in the scene.
func (sc *Scene) PrimitiveCount() int {
	return len(sc.prims)
}

// Build a tabular representation of scene statistics.
func (sc *Scene) Stats() string {
	accel := "none"
	bvhNodes := 0
	if sc.compiled {
		if sc.bvh != nil {
			accel = "bvh"
			bvhNodes = sc.bvh.NodeCount()
		} else {
			accel = "linear scan"
		}
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Scene", "Value"})
	table.Append([]string{"Primitives", fmt.Sprintf("%d", len(sc.prims))})
	table.Append([]string{"Intersector", accel})
	table.Append([]string{"BVH nodes", fmt.Sprintf("%d", bvhNodes)})
	table.Render()
	return buf.String()
}
