package match

type Kind uint8

const (
	ShotFired Kind = iota
	TargetHit
	ReloadStarted
	ReloadFinished
	StormPhase
	StormDamage
	TargetDown
	PlayerDied
)

func (k Kind) String() string {
	switch k {
	case ShotFired:
		return "shot"
	case TargetHit:
		return "hit"
	case ReloadStarted:
		return "reload"
	case ReloadFinished:
		return "reloaded"
	case StormPhase:
		return "storm-phase"
	case StormDamage:
		return "storm-damage"
	case TargetDown:
		return "target-down"
	case PlayerDied:
		return "died"
	}
	return "unknown"
}

// Event is published on Match.Events. Which fields are set depends on Kind.
type Event struct {
	Kind   Kind    `cbor:"kind" json:"kind"`
	Time   float64 `cbor:"time" json:"time"`
	Weapon string  `cbor:"weapon,omitempty" json:"weapon,omitempty"`
	Target string  `cbor:"target,omitempty" json:"target,omitempty"`
	Amount float64 `cbor:"amount,omitempty" json:"amount,omitempty"`
	Phase  string  `cbor:"phase,omitempty" json:"phase,omitempty"`
	Radius float64 `cbor:"radius,omitempty" json:"radius,omitempty"`
}
