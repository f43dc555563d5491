package match

import (
	"io"

	"github.com/cfoust/royale/pkg/geom"

	"github.com/fxamacker/cbor/v2"
)

type WeaponState struct {
	_          struct{} `cbor:",toarray"`
	Name       string
	Ammo       int
	MaxAmmo    int
	Reserve    int
	MaxReserve int
	Reloading  bool
}

type ZoneState struct {
	Phase    string  `cbor:"phase"`
	Radius   float64 `cbor:"radius"`
	Target   float64 `cbor:"target"`
	TimeLeft float64 `cbor:"timeLeft"`
}

type TargetState struct {
	_      struct{} `cbor:",toarray"`
	Name   string
	Health float64
}

// Snapshot is everything a HUD needs to draw one frame.
type Snapshot struct {
	Time      float64       `cbor:"time"`
	Position  geom.Vector   `cbor:"position"`
	Yaw       float64       `cbor:"yaw"`
	Pitch     float64       `cbor:"pitch"`
	Health    float64       `cbor:"health"`
	MaxHealth float64       `cbor:"maxHealth"`
	Armor     float64       `cbor:"armor"`
	MaxArmor  float64       `cbor:"maxArmor"`
	Inside    bool          `cbor:"inside"`
	Active    int           `cbor:"active"`
	Weapons   []WeaponState `cbor:"weapons"`
	Zone      ZoneState     `cbor:"zone"`
	Targets   []TargetState `cbor:"targets"`
}

func (m *Match) Snapshot() Snapshot {
	p := m.Player

	weapons := make([]WeaponState, 0, len(p.Weapons()))
	for _, w := range p.Weapons() {
		weapons = append(weapons, WeaponState{
			Name:       w.Name(),
			Ammo:       w.Ammo(),
			MaxAmmo:    w.MaxAmmo(),
			Reserve:    w.Reserve(),
			MaxReserve: w.MaxReserve(),
			Reloading:  w.Reloading(),
		})
	}

	targets := make([]TargetState, 0, len(m.Arena.Dummies))
	for _, dummy := range m.Arena.Dummies {
		targets = append(targets, TargetState{
			Name:   dummy.Name,
			Health: dummy.Health(),
		})
	}

	return Snapshot{
		Time:      m.elapsed,
		Position:  p.Position(),
		Yaw:       p.Yaw(),
		Pitch:     p.Pitch(),
		Health:    p.Health(),
		MaxHealth: p.MaxHealth(),
		Armor:     p.Armor(),
		MaxArmor:  p.MaxArmor(),
		Inside:    m.Storm.Contains(p.Position()),
		Active:    p.ActiveIndex(),
		Weapons:   weapons,
		Zone: ZoneState{
			Phase:    m.Storm.Phase().String(),
			Radius:   m.Storm.Radius(),
			Target:   m.Storm.TargetRadius(),
			TimeLeft: m.Storm.TimeLeft(),
		},
		Targets: targets,
	}
}

func EncodeSnapshot(snapshot Snapshot) ([]byte, error) {
	return cbor.Marshal(snapshot)
}

func DecodeSnapshot(data []byte) (Snapshot, error) {
	var snapshot Snapshot
	err := cbor.Unmarshal(data, &snapshot)
	return snapshot, err
}

// Recorder appends snapshots to a stream as a sequence of CBOR items.
type Recorder struct {
	encoder *cbor.Encoder
	count   int
}

func NewRecorder(w io.Writer) *Recorder {
	return &Recorder{encoder: cbor.NewEncoder(w)}
}

func (r *Recorder) Record(snapshot Snapshot) error {
	if err := r.encoder.Encode(snapshot); err != nil {
		return err
	}
	r.count++
	return nil
}

func (r *Recorder) Count() int { return r.count }

// ReadSnapshots decodes every snapshot in a recorded stream.
func ReadSnapshots(r io.Reader) ([]Snapshot, error) {
	decoder := cbor.NewDecoder(r)

	var snapshots []Snapshot
	for {
		var snapshot Snapshot
		err := decoder.Decode(&snapshot)
		if err == io.EOF {
			return snapshots, nil
		}
		if err != nil {
			return snapshots, err
		}
		snapshots = append(snapshots, snapshot)
	}
}
