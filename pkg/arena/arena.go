package arena

import (
	"fmt"

	"github.com/cfoust/royale/pkg/collision"
	"github.com/cfoust/royale/pkg/geom"
)

// Size of a dummy's hitbox.
var dummySize = geom.NewVector(0.8, 1.8, 0.8)

type Obstacle struct {
	Center    geom.Vector `json:"center"`
	Size      geom.Vector `json:"size"`
	Climbable bool        `json:"climbable"`
}

type DummySpec struct {
	Name     string      `json:"name"`
	Position geom.Vector `json:"position"`
	Health   float64     `json:"health"`
}

// Layout describes a square arena centered on the origin.
type Layout struct {
	Size       float64     `json:"size"`
	WallHeight float64     `json:"wallHeight"`
	Obstacles  []Obstacle  `json:"obstacles"`
	Dummies    []DummySpec `json:"dummies"`
}

type Arena struct {
	Layout Layout
	// Walls and obstacles. This is what movement collides against.
	Static *collision.Scene
	// Static geometry plus every dummy. This is what hitscans resolve
	// against.
	Full    *collision.Scene
	Dummies []*Dummy
}

func (a *Arena) Center() geom.Vector {
	return geom.Zero
}

// Build turns a layout into collision scenes. Dummies are placed with their
// feet at Position.Y.
func Build(layout Layout) (*Arena, error) {
	if layout.Size <= 0 {
		return nil, fmt.Errorf("arena size must be positive")
	}
	if layout.WallHeight <= 0 {
		return nil, fmt.Errorf("arena wall height must be positive")
	}

	static := walls(layout.Size, layout.WallHeight)
	for i, obstacle := range layout.Obstacles {
		if obstacle.Size.X <= 0 || obstacle.Size.Y <= 0 || obstacle.Size.Z <= 0 {
			return nil, fmt.Errorf("obstacle %d has an empty size", i)
		}

		tag := collision.Solid
		if obstacle.Climbable {
			tag = collision.Climbable
		}
		static = append(static, collision.NewBox(obstacle.Center, obstacle.Size, tag))
	}

	full := append([]collision.Box(nil), static...)
	dummies := make([]*Dummy, 0, len(layout.Dummies))
	for i, entry := range layout.Dummies {
		if entry.Health <= 0 {
			return nil, fmt.Errorf("dummy %d needs positive health", i)
		}

		name := entry.Name
		if name == "" {
			name = fmt.Sprintf("dummy-%d", i)
		}

		dummy := NewDummy(name, entry.Position, entry.Health)
		dummies = append(dummies, dummy)

		center := entry.Position.Add(geom.NewVector(0, dummySize.Y/2, 0))
		box := collision.NewBox(center, dummySize, collision.Enemy)
		box.Target = dummy
		full = append(full, box)
	}

	return &Arena{
		Layout:  layout,
		Static:  collision.NewScene(static...),
		Full:    collision.NewScene(full...),
		Dummies: dummies,
	}, nil
}

// walls returns four boundary walls, one meter thick, enclosing a square of
// the given size.
func walls(size, height float64) []collision.Box {
	half := size / 2
	const thickness = 1.0
	y := height / 2

	return []collision.Box{
		collision.NewBox(geom.NewVector(half+thickness/2, y, 0), geom.NewVector(thickness, height, size+2*thickness), collision.Solid),
		collision.NewBox(geom.NewVector(-half-thickness/2, y, 0), geom.NewVector(thickness, height, size+2*thickness), collision.Solid),
		collision.NewBox(geom.NewVector(0, y, half+thickness/2), geom.NewVector(size, height, thickness), collision.Solid),
		collision.NewBox(geom.NewVector(0, y, -half-thickness/2), geom.NewVector(size, height, thickness), collision.Solid),
	}
}
