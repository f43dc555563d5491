package player

import (
	"fmt"
	"math"

	"github.com/cfoust/royale/pkg/collision"
	"github.com/cfoust/royale/pkg/game/armour"
	"github.com/cfoust/royale/pkg/game/weapon"
	"github.com/cfoust/royale/pkg/geom"

	opt "github.com/repeale/fp-go/option"
	"github.com/rs/zerolog/log"
)

// Slack used when deciding whether the actor stands on the floor.
const groundTolerance = 1e-3

// The horizontal world axes probed for obstacles every tick.
var probes = []geom.Vector{geom.PosX, geom.NegX, geom.PosZ, geom.NegZ}

type Stance struct {
	Forward   bool
	Backward  bool
	Left      bool
	Right     bool
	Sprint    bool
	Crouching bool
	Jumping   bool
	Climbing  bool
}

type Player struct {
	tuning Tuning

	position geom.Vector
	// World space. Y is only integrated from gravity while not climbing.
	velocity geom.Vector
	yaw      float64
	pitch    float64
	stance   Stance

	health     float64
	armor      float64
	armourType armour.ID

	weapons []*weapon.Weapon
	active  int

	// Everything a hitscan can hit, enemies included.
	scene collision.Provider
	// Height of the surface under the actor.
	groundLevel float64
}

type Option func(*Player)

// WithScene sets the scene the actor's weapons resolve hitscans against.
func WithScene(scene collision.Provider) Option {
	return func(p *Player) { p.scene = scene }
}

// WithPosition places the actor. Y is the center of the body.
func WithPosition(position geom.Vector) Option {
	return func(p *Player) { p.position = position }
}

func WithLook(yaw, pitch float64) Option {
	return func(p *Player) { p.SetLook(yaw, pitch) }
}

// New creates an actor standing on the ground at the origin with full
// health. The inventory must contain at least one weapon; the first one
// starts out active.
func New(tuning Tuning, inventory []*weapon.Weapon, options ...Option) (*Player, error) {
	if err := tuning.Validate(); err != nil {
		return nil, fmt.Errorf("invalid player tuning: %v", err)
	}

	if len(inventory) == 0 {
		return nil, fmt.Errorf("player needs at least one weapon")
	}

	for i, w := range inventory {
		if w == nil {
			return nil, fmt.Errorf("weapon slot %d is empty", i)
		}
	}

	armourType, err := armour.Parse(tuning.Armour)
	if err != nil {
		return nil, err
	}

	p := &Player{
		tuning:     tuning,
		position:   geom.NewVector(0, tuning.StandHeight/2, 0),
		health:     tuning.MaxHealth,
		armor:      tuning.StartArmor,
		armourType: armourType,
		weapons:    append([]*weapon.Weapon(nil), inventory...),
	}

	for _, option := range options {
		option(p)
	}

	for i, w := range p.weapons {
		if i == p.active {
			w.Show()
		} else {
			w.Hide()
		}
	}

	return p, nil
}

func (p *Player) Tuning() Tuning { return p.tuning }
func (p *Player) Position() geom.Vector { return p.position }
func (p *Player) Velocity() geom.Vector { return p.velocity }
func (p *Player) Yaw() float64 { return p.yaw }
func (p *Player) Pitch() float64 { return p.pitch }
func (p *Player) Stance() Stance { return p.stance }
func (p *Player) Health() float64 { return p.health }
func (p *Player) MaxHealth() float64 { return p.tuning.MaxHealth }
func (p *Player) Armor() float64 { return p.armor }
func (p *Player) MaxArmor() float64 { return p.tuning.MaxArmor }
func (p *Player) ArmourType() armour.ID { return p.armourType }
func (p *Player) Alive() bool { return p.health > 0 }
func (p *Player) ActiveIndex() int { return p.active }
func (p *Player) Active() *weapon.Weapon { return p.weapons[p.active] }
func (p *Player) Weapons() []*weapon.Weapon { return p.weapons }

// Height is the current stance height.
func (p *Player) Height() float64 {
	if p.stance.Crouching {
		return p.tuning.CrouchHeight
	}
	return p.tuning.StandHeight
}

func (p *Player) floor() float64 {
	return p.groundLevel + p.Height()/2
}

func (p *Player) Grounded() bool {
	return p.position.Y <= p.floor()+groundTolerance
}

func (p *Player) SetMovement(forward, backward, left, right, sprint bool) {
	p.stance.Forward = forward
	p.stance.Backward = backward
	p.stance.Left = left
	p.stance.Right = right
	p.stance.Sprint = sprint
}

// SetLook points the camera. Pitch is clamped to straight up or down.
func (p *Player) SetLook(yaw, pitch float64) {
	p.yaw = yaw
	p.pitch = math.Max(-math.Pi/2, math.Min(math.Pi/2, pitch))
}

// Jump applies the jump impulse. Unless AllowAirJump is set it only works
// from the ground.
func (p *Player) Jump() {
	if !p.tuning.AllowAirJump && !p.Grounded() {
		return
	}
	p.velocity.Y = p.tuning.JumpImpulse
	p.stance.Jumping = true
}

// ToggleCrouch switches stance and moves the body center by half the
// height difference so the feet stay where they are.
func (p *Player) ToggleCrouch() {
	delta := (p.tuning.StandHeight - p.tuning.CrouchHeight) / 2
	p.stance.Crouching = !p.stance.Crouching
	if p.stance.Crouching {
		p.position.Y -= delta
	} else {
		p.position.Y += delta
	}
}

// SwitchWeapon makes the weapon at index active. Out of range indices are
// ignored.
func (p *Player) SwitchWeapon(index int) bool {
	if index < 0 || index >= len(p.weapons) {
		return false
	}
	if index == p.active {
		return true
	}

	p.weapons[p.active].Hide()
	p.active = index
	p.weapons[p.active].Show()

	log.Debug().
		Int("slot", index).
		Str("weapon", p.weapons[index].Name()).
		Msg("switched weapon")
	return true
}

// Aim is the ray hitscans travel along: from the eye along the full
// camera direction.
func (p *Player) Aim() geom.Ray {
	return geom.NewRay(p.position, geom.Look(p.yaw, p.pitch))
}

func (p *Player) Shoot() weapon.Shot {
	return p.Active().Shoot(p.Aim(), p.scene)
}

func (p *Player) Reload() bool {
	return p.Active().Reload()
}

// PickupAmmo adds reserve ammunition to the weapon in the given slot.
func (p *Player) PickupAmmo(index int, amount int) {
	if index < 0 || index >= len(p.weapons) {
		return
	}
	p.weapons[index].AddAmmo(amount)
}

// TakeDamage lets armour soak up its share of amount before the rest is
// taken from health.
func (p *Player) TakeDamage(amount float64) {
	if amount <= 0 {
		return
	}

	absorbed := amount * armour.Absorption(p.armourType) / 100
	if absorbed > p.armor {
		absorbed = p.armor
	}
	p.armor -= absorbed
	p.health -= amount - absorbed

	if p.health < 0 {
		p.health = 0
	}
}

func (p *Player) Heal(amount float64) {
	if amount <= 0 || !p.Alive() {
		return
	}
	p.health = math.Min(p.health+amount, p.tuning.MaxHealth)
}

func (p *Player) AddArmor(amount float64) {
	if amount <= 0 {
		return
	}
	p.armor = math.Min(p.armor+amount, p.tuning.MaxArmor)
}

// Update advances locomotion by dt seconds against the static geometry in
// query, then ticks the active weapon. Missing geometry never blocks.
func (p *Player) Update(dt float64, query collision.Provider) {
	if dt < 0 {
		dt = 0
	}

	if p.tuning.GroundProbe {
		p.probeGround(query)
	}

	p.stance.Climbing = p.stance.Forward && p.nearClimbable(query)

	if !p.stance.Climbing {
		if !p.Grounded() {
			p.velocity.Y -= p.tuning.Gravity * dt
		} else if p.velocity.Y < 0 {
			p.velocity.Y = p.tuning.GroundEpsilon
			p.stance.Jumping = false
		}
	}

	direction := p.Direction()
	speed := p.Speed()

	strafe := direction.X * speed
	forward := direction.Z * speed

	if p.stance.Climbing {
		switch {
		case p.stance.Forward && !p.stance.Backward:
			p.velocity.Y = p.tuning.ClimbSpeed
		case p.stance.Backward && !p.stance.Forward:
			p.velocity.Y = -p.tuning.ClimbSpeed
		default:
			p.velocity.Y = 0
		}
		forward = 0
	}

	intended := geom.Forward(p.yaw).Scale(forward).
		Add(geom.Right(p.yaw).Scale(strafe))
	intended = p.resolveCollisions(query, intended)

	p.velocity.X = intended.X
	p.velocity.Z = intended.Z

	p.position = p.position.Add(p.velocity.Scale(dt))

	if floor := p.floor(); p.position.Y < floor {
		p.position.Y = floor
		p.velocity.Y = 0
		p.stance.Jumping = false
	}

	p.Active().Update(dt)
}

// Direction is the camera-relative movement intent: X strafes right, Z
// moves forward. It has unit length or is zero.
func (p *Player) Direction() geom.Vector {
	var x, z float64
	if p.stance.Right {
		x++
	}
	if p.stance.Left {
		x--
	}
	if p.stance.Forward {
		z++
	}
	if p.stance.Backward {
		z--
	}
	return geom.NewVector(x, 0, z).Normalize()
}

func (p *Player) Speed() float64 {
	speed := p.tuning.WalkSpeed
	if p.stance.Sprint {
		speed = p.tuning.SprintSpeed
	}
	if p.stance.Crouching {
		speed *= p.tuning.CrouchFactor
	}
	return speed
}

func (p *Player) nearClimbable(query collision.Provider) bool {
	hits := collision.Query(query, p.position, geom.Forward(p.yaw))
	for _, hit := range collision.Tagged(hits, collision.Climbable) {
		if hit.Distance <= p.tuning.ClimbDistance {
			return true
		}
	}
	return false
}

// resolveCollisions zeroes every world axis of velocity that points into
// an obstacle closer than the actor's radius plus the collision distance.
func (p *Player) resolveCollisions(query collision.Provider, velocity geom.Vector) geom.Vector {
	reach := p.tuning.Radius + p.tuning.CollisionDistance

	for _, probe := range probes {
		if velocity.Dot(probe) <= 0 {
			continue
		}

		hits := collision.Query(query, p.position, probe)
		if opt.IsNone(collision.FirstWithin(hits, reach)) {
			continue
		}

		if probe.X != 0 {
			velocity.X = 0
		} else {
			velocity.Z = 0
		}
	}

	return velocity
}

func (p *Player) probeGround(query collision.Provider) {
	ground := collision.Nearest(collision.Query(query, p.position, geom.Down))
	if opt.IsNone(ground) {
		p.groundLevel = 0
		return
	}
	p.groundLevel = ground.Value.Point.Y
}
