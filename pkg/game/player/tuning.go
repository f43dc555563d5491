package player

import "fmt"

// Tuning holds the movement and survivability constants of an actor.
// Distances are in meters, times in seconds.
type Tuning struct {
	WalkSpeed   float64 `json:"walkSpeed"`
	SprintSpeed float64 `json:"sprintSpeed"`
	// Multiplier applied to the speed while crouching.
	CrouchFactor float64 `json:"crouchFactor"`
	JumpImpulse  float64 `json:"jumpImpulse"`
	Gravity      float64 `json:"gravity"`
	ClimbSpeed   float64 `json:"climbSpeed"`

	StandHeight  float64 `json:"standHeight"`
	CrouchHeight float64 `json:"crouchHeight"`
	Radius       float64 `json:"radius"`
	// Extra clearance beyond Radius at which obstacles block movement.
	CollisionDistance float64 `json:"collisionDistance"`
	// How close a climbable surface must be to start climbing. Must be at
	// least Radius + CollisionDistance, where walking stops.
	ClimbDistance float64 `json:"climbDistance"`
	// Vertical velocity kept while standing on the ground. Must be
	// slightly negative so the floor clamp keeps the actor grounded.
	GroundEpsilon float64 `json:"groundEpsilon"`

	MaxHealth  float64 `json:"maxHealth"`
	MaxArmor   float64 `json:"maxArmor"`
	StartArmor float64 `json:"startArmor"`
	Armour     string  `json:"armour"`

	// Jumping while airborne re-applies the impulse.
	AllowAirJump bool `json:"allowAirJump"`
	// Use a downward ray for the floor height instead of a flat arena.
	GroundProbe bool `json:"groundProbe"`
}

func DefaultTuning() Tuning {
	return Tuning{
		WalkSpeed:         5,
		SprintSpeed:       10,
		CrouchFactor:      0.5,
		JumpImpulse:       8,
		Gravity:           20,
		ClimbSpeed:        3,
		StandHeight:       1.8,
		CrouchHeight:      1.0,
		Radius:            0.5,
		CollisionDistance: 1.0,
		ClimbDistance:     2.0,
		GroundEpsilon:     -0.01,
		MaxHealth:         100,
		MaxArmor:          100,
		StartArmor:        50,
		Armour:            "green",
		AllowAirJump:      true,
	}
}

func (t Tuning) Validate() error {
	switch {
	case t.WalkSpeed < 0 || t.SprintSpeed < 0 || t.ClimbSpeed < 0:
		return fmt.Errorf("speeds must not be negative")
	case t.CrouchFactor < 0 || t.CrouchFactor > 1:
		return fmt.Errorf("crouch factor must be in [0, 1]")
	case t.Gravity < 0:
		return fmt.Errorf("gravity must not be negative")
	case t.StandHeight <= 0 || t.CrouchHeight <= 0:
		return fmt.Errorf("stance heights must be positive")
	case t.CrouchHeight > t.StandHeight:
		return fmt.Errorf("crouch height %v exceeds stand height %v", t.CrouchHeight, t.StandHeight)
	case t.Radius < 0 || t.CollisionDistance < 0 || t.ClimbDistance < 0:
		return fmt.Errorf("distances must not be negative")
	case t.ClimbDistance < t.Radius+t.CollisionDistance:
		return fmt.Errorf("climb distance %v is shorter than the collision reach %v", t.ClimbDistance, t.Radius+t.CollisionDistance)
	case t.GroundEpsilon > 0:
		return fmt.Errorf("ground epsilon must not be positive")
	case t.MaxHealth <= 0:
		return fmt.Errorf("max health must be positive")
	case t.MaxArmor < 0:
		return fmt.Errorf("max armor must not be negative")
	case t.StartArmor < 0 || t.StartArmor > t.MaxArmor:
		return fmt.Errorf("start armor must be in [0, max armor]")
	}
	return nil
}
