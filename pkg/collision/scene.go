package collision

import (
	"math"

	"github.com/cfoust/royale/pkg/geom"
)

// Box is an axis-aligned collidable proxy.
type Box struct {
	Min    geom.Vector
	Max    geom.Vector
	Tag    Tag
	Target Damageable
}

func NewBox(center, size geom.Vector, tag Tag) Box {
	half := size.Scale(0.5)
	return Box{
		Min: center.Sub(half),
		Max: center.Add(half),
		Tag: tag,
	}
}

func (b Box) Contains(p geom.Vector) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Intersect returns the entry distance along a normalized ray and the
// surface normal at the entry point. Rays starting inside the box do not
// hit it.
func (b Box) Intersect(origin, direction geom.Vector) (float64, geom.Vector, bool) {
	var (
		near   = math.Inf(-1)
		far    = math.Inf(1)
		normal geom.Vector
	)

	slab := func(o, d, min, max float64, axis geom.Vector) bool {
		if d == 0 {
			return o >= min && o <= max
		}
		t1 := (min - o) / d
		t2 := (max - o) / d
		n := axis.Scale(-1)
		if t1 > t2 {
			t1, t2 = t2, t1
			n = axis
		}
		if t1 > near {
			near = t1
			normal = n
		}
		if t2 < far {
			far = t2
		}
		return near <= far
	}

	if !slab(origin.X, direction.X, b.Min.X, b.Max.X, geom.PosX) ||
		!slab(origin.Y, direction.Y, b.Min.Y, b.Max.Y, geom.Up) ||
		!slab(origin.Z, direction.Z, b.Min.Z, b.Max.Z, geom.PosZ) {
		return 0, geom.Zero, false
	}

	if near < 0 {
		return 0, geom.Zero, false
	}

	return near, normal, true
}

// Scene is a static set of boxes. It is never mutated after construction
// so it can be shared between readers.
type Scene struct {
	boxes []Box
}

var _ Provider = (*Scene)(nil)

func NewScene(boxes ...Box) *Scene {
	copied := make([]Box, len(boxes))
	copy(copied, boxes)
	return &Scene{boxes: copied}
}

func (s *Scene) Boxes() []Box {
	return s.boxes
}

// Tagged returns a view of the scene containing only boxes with the given
// tag.
func (s *Scene) Tagged(tag Tag) *Scene {
	boxes := make([]Box, 0)
	for _, box := range s.boxes {
		if box.Tag == tag {
			boxes = append(boxes, box)
		}
	}
	return &Scene{boxes: boxes}
}

// Without returns a view of the scene with every box of the given tag
// removed.
func (s *Scene) Without(tag Tag) *Scene {
	boxes := make([]Box, 0)
	for _, box := range s.boxes {
		if box.Tag != tag {
			boxes = append(boxes, box)
		}
	}
	return &Scene{boxes: boxes}
}

func (s *Scene) QueryRay(origin, direction geom.Vector) []Hit {
	if s == nil {
		return nil
	}

	direction = direction.Normalize()
	if direction.IsZero() {
		return nil
	}

	hits := make([]Hit, 0)
	for _, box := range s.boxes {
		if mortal, ok := box.Target.(Mortal); ok && !mortal.Alive() {
			continue
		}

		distance, normal, ok := box.Intersect(origin, direction)
		if !ok {
			continue
		}

		hits = append(hits, Hit{
			Distance: distance,
			Tag:      box.Tag,
			Point:    origin.Add(direction.Scale(distance)),
			Normal:   normal,
			Target:   box.Target,
		})
	}

	sortHits(hits)
	return hits
}
