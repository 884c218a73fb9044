package scene

import (
	"math/rand"
	"time"

	"github.com/chewxy/math32"

	"github.com/Supremolink81/gotracer/log"
	"github.com/Supremolink81/gotracer/types"
)

const (
	// The number of candidate split points evaluated per axis when scoring
	// SAH partitions.
	sahSplitCandidates = 32

	// Axes whose bbox side is below this threshold are not considered for
	// splitting.
	minSideLength float32 = 1e-3
)

// Bvh nodes are stored as a contiguous list and encode their payload in two
// multipurpose int32 fields:
//
//   - internal nodes: LData and RData are >= 0 and index the child nodes
//   - leaf nodes: LData is < 0 and encodes the first primitive index as
//     -(index+1); RData holds the leaf primitive count
type BvhNode struct {
	Min types.Vec3
	Max types.Vec3

	LData int32
	RData int32
}

// Set the node bounding box.
func (n *BvhNode) SetBBox(bbox AABB) {
	n.Min = bbox.Min
	n.Max = bbox.Max
}

// Set left and right child node indices.
func (n *BvhNode) SetChildNodes(left, right uint32) {
	n.LData = int32(left)
	n.RData = int32(right)
}

// Set first primitive index and leaf primitive count.
func (n *BvhNode) SetPrimitives(firstPrimIndex, count uint32) {
	n.LData = -int32(firstPrimIndex + 1)
	n.RData = int32(count)
}

// Get first primitive index and leaf primitive count.
func (n *BvhNode) GetPrimitives() (firstPrimIndex, count uint32) {
	return uint32(-n.LData - 1), uint32(n.RData)
}

// Check whether this node is a leaf.
func (n *BvhNode) IsLeaf() bool {
	return n.LData < 0
}

// Slab test against the node bounding box. Returns the entry distance and
// whether the ray interval overlaps the box.
func (n *BvhNode) hit(r Ray, tMin, tMax float32) (float32, bool) {
	for axis := 0; axis < 3; axis++ {
		invD := 1.0 / r.Dir[axis]
		t0 := (n.Min[axis] - r.Origin[axis]) * invD
		t1 := (n.Max[axis] - r.Origin[axis]) * invD
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
			return 0, false
		}
	}
	return tMin, true
}

// A bounding volume hierarchy over a primitive list. Immutable once built and
// safe for concurrent queries.
type BVH struct {
	nodes []BvhNode

	// Primitives reordered so each leaf references a contiguous range.
	prims []Primitive
}

type bvhStats struct {
	nodes    int
	leafs    int
	maxDepth int
}

type bvhBuilder struct {
	logger log.Logger

	nodes []BvhNode
	prims []Primitive

	// The minimum number of items that are required for creating a leaf.
	minLeafItems int

	stats bvhStats
}

// Construct a BVH from a set of primitives.
//
// The builder scores candidate splits with the surface area heuristic
// (score = item count * partition bbox area) and falls back to a leaf when no
// split improves on the unpartitioned score. The minLeafItems param sets the
// minimum number of items that can form a leaf.
func BuildBVH(prims []Primitive, minLeafItems int) *BVH {
	if minLeafItems < 1 {
		minLeafItems = 1
	}

	b := &bvhBuilder{
		logger:       log.New("bvh"),
		nodes:        make([]BvhNode, 0, 2*len(prims)),
		prims:        make([]Primitive, 0, len(prims)),
		minLeafItems: minLeafItems,
	}

	if len(prims) > 0 {
		workList := make([]Primitive, len(prims))
		copy(workList, prims)

		start := time.Now()
		b.partition(workList, 0)
		b.logger.Debugf(
			"built tree in %d ms: maxDepth %d, nodes %d, leafs %d",
			time.Since(start).Nanoseconds()/1e6,
			b.stats.maxDepth, b.stats.nodes, b.stats.leafs,
		)
	}

	return &BVH{nodes: b.nodes, prims: b.prims}
}

// Partition the work list and return the created node index.
func (b *bvhBuilder) partition(workList []Primitive, depth int) uint32 {
	if depth > b.stats.maxDepth {
		b.stats.maxDepth = depth
	}

	var node BvhNode
	node.SetBBox(listBounds(workList))

	if len(workList) <= b.minLeafItems {
		return b.createLeaf(&node, workList)
	}

	// Score stepped split candidates along every usable axis and keep the
	// best one that beats the unpartitioned score.
	bestScore := sahScorePartition(workList)
	var bestAxis = -1
	var bestSplit float32

	side := node.Max.Sub(node.Min)
	for axis := 0; axis < 3; axis++ {
		if side[axis] < minSideLength {
			continue
		}

		// Candidates are generated by index rather than accumulating the
		// step: for thin sides at large coordinates the step can drop
		// below half an ulp of the split point, and an accumulated value
		// would stop advancing.
		step := side[axis] / float32(sahSplitCandidates)
		for i := 1; i < sahSplitCandidates; i++ {
			splitPoint := node.Min[axis] + float32(i)*step
			if splitPoint >= node.Max[axis] {
				break
			}
			if score := sahScoreSplit(workList, axis, splitPoint); score < bestScore {
				bestScore = score
				bestAxis = axis
				bestSplit = splitPoint
			}
		}
	}

	if bestAxis == -1 {
		return b.createLeaf(&node, workList)
	}

	leftWorkList := make([]Primitive, 0, len(workList))
	rightWorkList := make([]Primitive, 0, len(workList))
	for _, prim := range workList {
		if prim.Center()[bestAxis] < bestSplit {
			leftWorkList = append(leftWorkList, prim)
		} else {
			rightWorkList = append(rightWorkList, prim)
		}
	}

	nodeIndex := uint32(len(b.nodes))
	b.nodes = append(b.nodes, node)
	b.stats.nodes++

	leftIndex := b.partition(leftWorkList, depth+1)
	rightIndex := b.partition(rightWorkList, depth+1)
	b.nodes[nodeIndex].SetChildNodes(leftIndex, rightIndex)

	return nodeIndex
}

// Append a leaf node referencing a contiguous primitive range and return its
// index.
func (b *bvhBuilder) createLeaf(node *BvhNode, workList []Primitive) uint32 {
	node.SetPrimitives(uint32(len(b.prims)), uint32(len(workList)))
	b.prims = append(b.prims, workList...)

	nodeIndex := uint32(len(b.nodes))
	b.nodes = append(b.nodes, *node)
	b.stats.nodes++
	b.stats.leafs++
	return nodeIndex
}

// Calculate the bounds of a primitive list.
func listBounds(workList []Primitive) AABB {
	bounds := AABB{
		Min: types.XYZ(math32.MaxFloat32, math32.MaxFloat32, math32.MaxFloat32),
		Max: types.XYZ(-math32.MaxFloat32, -math32.MaxFloat32, -math32.MaxFloat32),
	}
	for _, prim := range workList {
		bounds = bounds.Union(prim.BBox())
	}
	return bounds
}

// Score a split candidate with the surface area heuristic (lower is better):
// leftCount * left bbox area + rightCount * right bbox area. Splits producing
// an empty partition get the worst possible score.
func sahScoreSplit(workList []Primitive, axis int, splitPoint float32) float32 {
	lmin := types.XYZ(math32.MaxFloat32, math32.MaxFloat32, math32.MaxFloat32)
	lmax := types.XYZ(-math32.MaxFloat32, -math32.MaxFloat32, -math32.MaxFloat32)
	rmin := lmin
	rmax := lmax

	leftCount, rightCount := 0, 0
	for _, prim := range workList {
		bbox := prim.BBox()
		if prim.Center()[axis] < splitPoint {
			leftCount++
			lmin = types.MinVec3(lmin, bbox.Min)
			lmax = types.MaxVec3(lmax, bbox.Max)
		} else {
			rightCount++
			rmin = types.MinVec3(rmin, bbox.Min)
			rmax = types.MaxVec3(rmax, bbox.Max)
		}
	}

	if leftCount == 0 || rightCount == 0 {
		return math32.MaxFloat32
	}

	return float32(leftCount)*NewAABB(lmin, lmax).SurfaceArea() +
		float32(rightCount)*NewAABB(rmin, rmax).SurfaceArea()
}

// Score an unpartitioned work list: count * bbox area.
func sahScorePartition(workList []Primitive) float32 {
	if len(workList) == 0 {
		return math32.MaxFloat32
	}
	return float32(len(workList)) * listBounds(workList).SurfaceArea()
}

// Find the nearest intersection inside (tMin, tMax), or ok=false when the ray
// misses every primitive. Traversal visits the nearer child first and shrinks
// the search interval on each accepted hit so farther subtrees prune early.
func (bvh *BVH) Intersect(r Ray, tMin, tMax float32, rng *rand.Rand) (HitRecord, bool) {
	if len(bvh.nodes) == 0 {
		return HitRecord{}, false
	}

	var closest HitRecord
	hitAny := false
	closestT := tMax

	stack := make([]uint32, 0, 64)
	stack = append(stack, 0)

	for len(stack) > 0 {
		nodeIndex := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node := &bvh.nodes[nodeIndex]

		if _, ok := node.hit(r, tMin, closestT); !ok {
			continue
		}

		if node.IsLeaf() {
			first, count := node.GetPrimitives()
			for _, prim := range bvh.prims[first : first+count] {
				if rec, ok := prim.Intersect(r, tMin, closestT, rng); ok {
					hitAny = true
					closestT = rec.T
					closest = rec
				}
			}
			continue
		}

		left := uint32(node.LData)
		right := uint32(node.RData)

		leftT, leftOk := bvh.nodes[left].hit(r, tMin, closestT)
		rightT, rightOk := bvh.nodes[right].hit(r, tMin, closestT)

		// Push the farther child first so the nearer one is processed
		// next; a close hit there may prune the farther subtree.
		switch {
		case leftOk && rightOk:
			if leftT <= rightT {
				stack = append(stack, right, left)
			} else {
				stack = append(stack, left, right)
			}
		case leftOk:
			stack = append(stack, left)
		case rightOk:
			stack = append(stack, right)
		}
	}

	return closest, hitAny
}

// NodeCount returns the number of tree nodes. Used for scene statistics.
func (bvh *BVH) NodeCount() int {
	return len(bvh.nodes)
}

// A linear intersector with the same contract as the BVH at O(n) cost. It
// doubles as the reference oracle the BVH is validated against.
type LinearScan struct {
	Prims []Primitive
}

// Find the nearest intersection by testing every primitive.
func (ls *LinearScan) Intersect(r Ray, tMin, tMax float32, rng *rand.Rand) (HitRecord, bool) {
	var closest HitRecord
	hitAny := false
	closestT := tMax

	for _, prim := range ls.Prims {
		if rec, ok := prim.Intersect(r, tMin, closestT, rng); ok {
			hitAny = true
			closestT = rec.T
			closest = rec
		}
	}
	return closest, hitAny
}
