package collision

import (
	"sort"

	"github.com/cfoust/royale/pkg/geom"

	fp "github.com/repeale/fp-go"
	opt "github.com/repeale/fp-go/option"
)

type Tag uint8

const (
	Solid Tag = iota
	Climbable
	Enemy
)

func (t Tag) String() string {
	switch t {
	case Solid:
		return "solid"
	case Climbable:
		return "climbable"
	case Enemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// Damageable is anything a hitscan can hurt.
type Damageable interface {
	ApplyDamage(amount float64)
}

// Mortal targets can be destroyed. Scenes stop reporting hits on a box
// whose target is no longer alive.
type Mortal interface {
	Alive() bool
}

type Hit struct {
	Distance float64
	Tag      Tag
	Point    geom.Vector
	Normal   geom.Vector
	// Only set for Enemy hits.
	Target Damageable
}

// Provider answers ray queries against static geometry. Results are
// ordered by ascending distance. Implementations must not be mutated by
// their callers.
type Provider interface {
	QueryRay(origin, direction geom.Vector) []Hit
}

// Query casts a ray against p. A nil provider behaves like empty space.
func Query(p Provider, origin, direction geom.Vector) []Hit {
	if p == nil || direction.IsZero() {
		return nil
	}
	return p.QueryRay(origin, direction.Normalize())
}

func Nearest(hits []Hit) opt.Option[Hit] {
	if len(hits) == 0 {
		return opt.None[Hit]()
	}
	nearest := hits[0]
	for _, hit := range hits[1:] {
		if hit.Distance < nearest.Distance {
			nearest = hit
		}
	}
	return opt.Some(nearest)
}

// FirstWithin returns the nearest hit no farther than maxDistance.
func FirstWithin(hits []Hit, maxDistance float64) opt.Option[Hit] {
	nearest := Nearest(hits)
	if opt.IsNone(nearest) || nearest.Value.Distance > maxDistance {
		return opt.None[Hit]()
	}
	return nearest
}

func Tagged(hits []Hit, tag Tag) []Hit {
	return fp.Filter(func(hit Hit) bool { return hit.Tag == tag })(hits)
}

func sortHits(hits []Hit) {
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
}
