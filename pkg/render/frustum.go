package render

import (
	"fmt"

	"github.com/taigrr/scanline/pkg/math3d"
)

// Plane is the set of points p with Normal·p + D = 0. Points on the side the
// normal faces have positive distance.
type Plane struct {
	Normal math3d.Vec3
	D      float64
}

// Distance returns the signed distance from the plane to p. It is a true
// distance only when Normal has unit length.
func (p Plane) Distance(pt math3d.Vec3) float64 {
	return p.Normal.Dot(pt) + p.D
}

// normalized scales the plane so its normal has unit length.
func (p Plane) normalized() Plane {
	l := p.Normal.Len()
	if l == 0 {
		return p
	}
	return Plane{Normal: p.Normal.Scale(1 / l), D: p.D / l}
}

// Side names one of the six frustum planes.
type Side uint8

// Frustum sides, in Frustum.Planes order.
const (
	SideLeft Side = iota
	SideRight
	SideBottom
	SideTop
	SideNear
	SideFar
)

var sideNames = [...]string{"left", "right", "bottom", "top", "near", "far"}

func (s Side) String() string {
	if int(s) < len(sideNames) {
		return sideNames[s]
	}
	return fmt.Sprintf("Side(%d)", uint8(s))
}

// Frustum is the visible volume of a camera as six inward-facing planes.
type Frustum struct {
	Planes [6]Plane
}

// NewFrustumFromMatrix extracts the planes of a view-projection matrix
// (Gribb and Hartmann). Depth maps to [0, 1], so the near plane is row 2 on
// its own rather than row 3 + row 2.
func NewFrustumFromMatrix(m math3d.Mat4) Frustum {
	row := func(i int) Plane {
		return Plane{Normal: math3d.V3(m[i][0], m[i][1], m[i][2]), D: m[i][3]}
	}
	add := func(a, b Plane) Plane { return Plane{a.Normal.Add(b.Normal), a.D + b.D} }
	sub := func(a, b Plane) Plane { return Plane{a.Normal.Sub(b.Normal), a.D - b.D} }
	x, y, z, w := row(0), row(1), row(2), row(3)

	var f Frustum
	f.Planes[SideLeft] = add(w, x).normalized()
	f.Planes[SideRight] = sub(w, x).normalized()
	f.Planes[SideBottom] = add(w, y).normalized()
	f.Planes[SideTop] = sub(w, y).normalized()
	f.Planes[SideNear] = z.normalized()
	f.Planes[SideFar] = sub(w, z).normalized()
	return f
}

// Containment is how a volume relates to a frustum.
type Containment uint8

const (
	// Outside volumes cannot produce a visible pixel.
	Outside Containment = iota
	// Intersecting volumes cross at least one plane.
	Intersecting
	// Inside volumes lie entirely within the frustum.
	Inside
)

func (c Containment) String() string {
	switch c {
	case Outside:
		return "outside"
	case Intersecting:
		return "intersecting"
	case Inside:
		return "inside"
	default:
		return fmt.Sprintf("Containment(%d)", uint8(c))
	}
}

// Classify tests box against every plane using the corner farthest along
// the plane normal and the corner farthest against it. The test is
// conservative: a box near a frustum edge may report Intersecting while
// being just outside.
func (f Frustum) Classify(box AABB) Containment {
	result := Inside
	for _, p := range f.Planes {
		near, far := box.Min, box.Max
		if p.Normal.X < 0 {
			near.X, far.X = far.X, near.X
		}
		if p.Normal.Y < 0 {
			near.Y, far.Y = far.Y, near.Y
		}
		if p.Normal.Z < 0 {
			near.Z, far.Z = far.Z, near.Z
		}
		if p.Distance(far) < 0 {
			return Outside
		}
		if p.Distance(near) < 0 {
			result = Intersecting
		}
	}
	return result
}

// ContainsPoint reports whether pt is inside or on the frustum.
func (f Frustum) ContainsPoint(pt math3d.Vec3) bool {
	for _, p := range f.Planes {
		if p.Distance(pt) < 0 {
			return false
		}
	}
	return true
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min math3d.Vec3
	Max math3d.Vec3
}

// Corners returns the eight corners. Bit 0 of the index selects Max.X, bit
// 1 Max.Y and bit 2 Max.Z.
func (b AABB) Corners() [8]math3d.Vec3 {
	var c [8]math3d.Vec3
	for i := range c {
		c[i] = b.Min
		if i&1 != 0 {
			c[i].X = b.Max.X
		}
		if i&2 != 0 {
			c[i].Y = b.Max.Y
		}
		if i&4 != 0 {
			c[i].Z = b.Max.Z
		}
	}
	return c
}

// Transform returns the smallest axis-aligned box holding the eight
// corners after m.
func (b AABB) Transform(m math3d.Mat4) AABB {
	corners := b.Corners()
	first := m.MulVec3(corners[0])
	out := AABB{Min: first, Max: first}
	for _, c := range corners[1:] {
		p := m.MulVec3(c)
		out.Min = out.Min.Min(p)
		out.Max = out.Max.Max(p)
	}
	return out
}
