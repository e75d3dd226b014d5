package bvh

import (
	"cmp"
	"slices"

	"github.com/hupe1980/implicit/geom"
)

type node struct {
	box         geom.BoundingBox3
	left, right int // child node indices; unused on leaves
	item        int // item index on leaves, -1 on interior nodes
}

func (n *node) isLeaf() bool { return n.item >= 0 }

// BVH3 is a bounding volume hierarchy with one item per leaf. Interior nodes
// split their items at the median center along the longest axis.
type BVH3[T any] struct {
	items []T
	boxes []geom.BoundingBox3
	nodes []node
	bound geom.BoundingBox3
}

var _ Engine3[int] = (*BVH3[int])(nil)

// Build creates a BVH over items using boxOf for their bounds.
func Build[T any](items []T, boxOf func(T) geom.BoundingBox3) *BVH3[T] {
	b := &BVH3[T]{
		items: slices.Clone(items),
		boxes: make([]geom.BoundingBox3, len(items)),
		bound: geom.EmptyBoundingBox3(),
	}
	order := make([]int, len(items))
	for i, it := range b.items {
		b.boxes[i] = boxOf(it)
		b.bound = b.bound.Merge(b.boxes[i])
		order[i] = i
	}
	if len(items) > 0 {
		b.nodes = make([]node, 0, 2*len(items))
		b.build(order)
	}
	return b
}

func (b *BVH3[T]) build(order []int) int {
	idx := len(b.nodes)
	b.nodes = append(b.nodes, node{item: -1})

	if len(order) == 1 {
		b.nodes[idx].box = b.boxes[order[0]]
		b.nodes[idx].item = order[0]
		return idx
	}

	centers := geom.EmptyBoundingBox3()
	for _, i := range order {
		centers = centers.MergePoint(b.boxes[i].Center())
	}
	axis := centers.Upper.Sub(centers.Lower).DominantAxis()
	slices.SortFunc(order, func(x, y int) int {
		return cmp.Compare(b.boxes[x].Center().At(axis), b.boxes[y].Center().At(axis))
	})

	mid := len(order) / 2
	left := b.build(order[:mid])
	right := b.build(order[mid:])
	b.nodes[idx].left = left
	b.nodes[idx].right = right
	b.nodes[idx].box = b.nodes[left].box.Merge(b.nodes[right].box)
	return idx
}

// Len returns the number of items.
func (b *BVH3[T]) Len() int { return len(b.items) }

// BoundingBox covers every item.
func (b *BVH3[T]) BoundingBox() geom.BoundingBox3 { return b.bound }

// walk visits nodes depth-first; descend decides whether to enter a node.
func (b *BVH3[T]) walk(descend func(*node) bool, leaf func(item int) bool) {
	if len(b.nodes) == 0 {
		return
	}
	stack := make([]int, 0, 64)
	stack = append(stack, 0)
	for len(stack) > 0 {
		n := &b.nodes[stack[len(stack)-1]]
		stack = stack[:len(stack)-1]
		if !descend(n) {
			continue
		}
		if n.isLeaf() {
			if !leaf(n.item) {
				return
			}
			continue
		}
		stack = append(stack, n.right, n.left)
	}
}

// Intersects reports whether test accepts any item whose bounds overlap box.
func (b *BVH3[T]) Intersects(box geom.BoundingBox3, test BoxTest[T]) bool {
	found := false
	b.walk(func(n *node) bool { return n.box.Overlaps(box) }, func(i int) bool {
		found = test(b.items[i], box)
		return !found
	})
	return found
}

// IntersectsRay reports whether test accepts any item whose bounds the ray
// enters. The walk stops at the first accepted item.
func (b *BVH3[T]) IntersectsRay(ray geom.Ray3, test RayTest[T]) bool {
	found := false
	b.walk(func(n *node) bool {
		_, _, ok := n.box.IntersectRay(ray)
		return ok
	}, func(i int) bool {
		found = test(b.items[i], ray)
		return !found
	})
	return found
}

// ForEachIntersectingItem calls visit for every item overlapping box that
// test accepts, in tree order.
func (b *BVH3[T]) ForEachIntersectingItem(box geom.BoundingBox3, test BoxTest[T], visit func(T)) {
	b.walk(func(n *node) bool { return n.box.Overlaps(box) }, func(i int) bool {
		if test(b.items[i], box) {
			visit(b.items[i])
		}
		return true
	})
}

// ForEachRayIntersectingItem is the ray counterpart of ForEachIntersectingItem.
func (b *BVH3[T]) ForEachRayIntersectingItem(ray geom.Ray3, test RayTest[T], visit func(T)) {
	b.walk(func(n *node) bool {
		_, _, ok := n.box.IntersectRay(ray)
		return ok
	}, func(i int) bool {
		if test(b.items[i], ray) {
			visit(b.items[i])
		}
		return true
	})
}

// ClosestIntersection returns the item with the smallest eval distance.
// Subtrees whose box entry lies beyond the current best are skipped.
func (b *BVH3[T]) ClosestIntersection(ray geom.Ray3, eval RayDistance[T]) Hit[T] {
	best := noHit[T]()
	b.walk(func(n *node) bool {
		tMin, _, ok := n.box.IntersectRay(ray)
		return ok && tMin <= best.Distance
	}, func(i int) bool {
		if d := eval(b.items[i], ray); d < best.Distance {
			best = Hit[T]{Item: b.items[i], Distance: d, Found: true}
		}
		return true
	})
	return best
}

// Nearest returns the item with the smallest dist to p. Subtrees whose box is
// farther than the current best are skipped, so dist must never be smaller
// than the distance from p to the item's bounding box.
func (b *BVH3[T]) Nearest(p geom.Vector3, dist PointDistance[T]) Hit[T] {
	best := noHit[T]()
	b.walk(func(n *node) bool {
		return n.box.Clamp(p).DistanceTo(p) <= best.Distance
	}, func(i int) bool {
		if d := dist(b.items[i], p); d < best.Distance {
			best = Hit[T]{Item: b.items[i], Distance: d, Found: true}
		}
		return true
	})
	return best
}
