package scene

import (
	"github.com/Supremolink81/gotracer/types"
)

// An axis-aligned bounding box.
type AABB struct {
	Min types.Vec3
	Max types.Vec3
}

// Create a bounding box from two corner points.
func NewAABB(min, max types.Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// Calculate the union of two bounding boxes.
func (b AABB) Union(other AABB) AABB {
	return AABB{
		Min: types.MinVec3(b.Min, other.Min),
		Max: types.MaxVec3(b.Max, other.Max),
	}
}

// Get the box centroid.
func (b AABB) Center() types.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Get the total face area of the box.
func (b AABB) SurfaceArea() float32 {
	side := b.Max.Sub(b.Min)
	return 2 * (side[0]*side[1] + side[1]*side[2] + side[0]*side[2])
}

// Get the index of the longest box axis (0=x, 1=y, 2=z).
func (b AABB) LongestAxis() int {
	side := b.Max.Sub(b.Min)
	axis := 0
	if side[1] > side[axis] {
		axis = 1
	}
	if side[2] > side[axis] {
		axis = 2
	}
	return axis
}

// Slab test. Returns true when the ray interval overlaps the box within
// [tMin, tMax]. A zero direction component yields +/-Inf slab distances which
// the min/max comparisons handle correctly.
func (b AABB) Hit(r Ray, tMin, tMax float32) bool {
	for axis := 0; axis < 3; axis++ {
		invD := 1.0 / r.Dir[axis]
		t0 := (b.Min[axis] - r.Origin[axis]) * invD
		t1 := (b.Max[axis] - r.Origin[axis]) * invD
		if invD < 0 {
			t0, t1 = t1, t0
		}
		if t0 > tMin {
			tMin = t0
		}
		if t1 < tMax {
			tMax = t1
		}
		if tMax <= tMin {
			return false
		}
	}
	return true
}
