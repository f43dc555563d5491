package arena

import (
	"github.com/cfoust/royale/pkg/collision"
	"github.com/cfoust/royale/pkg/geom"
)

// Dummy is a stationary target. It soaks up hitscan damage and never acts.
type Dummy struct {
	Name     string
	Position geom.Vector

	health    float64
	maxHealth float64

	// Called after every hit with the damage actually dealt.
	OnDamage func(d *Dummy, amount float64)
}

var (
	_ collision.Damageable = (*Dummy)(nil)
	_ collision.Mortal     = (*Dummy)(nil)
)

func NewDummy(name string, position geom.Vector, health float64) *Dummy {
	return &Dummy{
		Name:      name,
		Position:  position,
		health:    health,
		maxHealth: health,
	}
}

func (d *Dummy) Health() float64    { return d.health }
func (d *Dummy) MaxHealth() float64 { return d.maxHealth }
func (d *Dummy) Alive() bool        { return d.health > 0 }

func (d *Dummy) ApplyDamage(amount float64) {
	if amount <= 0 || !d.Alive() {
		return
	}

	if amount > d.health {
		amount = d.health
	}
	d.health -= amount

	if d.OnDamage != nil {
		d.OnDamage(d, amount)
	}
}
