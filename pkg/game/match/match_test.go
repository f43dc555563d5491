package match

import (
	"bytes"
	"math"
	"testing"

	"github.com/cfoust/royale/pkg/collision"
	"github.com/cfoust/royale/pkg/config"
	"github.com/cfoust/royale/pkg/game/storm"
	"github.com/cfoust/royale/pkg/game/timer"
	"github.com/cfoust/royale/pkg/game/weapon"
	"github.com/cfoust/royale/pkg/geom"
	"github.com/cfoust/royale/pkg/utils"

	opt "github.com/repeale/fp-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(sub *utils.Subscriber[Event]) []Event {
	var events []Event
	for {
		select {
		case event := <-sub.Recv():
			events = append(events, event)
		default:
			return events
		}
	}
}

func kinds(events []Event) []Kind {
	result := make([]Kind, 0, len(events))
	for _, event := range events {
		result = append(result, event.Kind)
	}
	return result
}

func newMatch(t *testing.T, cfg *config.Config, opts ...Option) *Match {
	m, err := New(cfg, opts...)
	require.NoError(t, err)
	return m
}

func TestNew(t *testing.T) {
	m := newMatch(t, config.Default())

	assert.Len(t, m.Player.Weapons(), 2)
	assert.Equal(t, "pistol", m.Player.Active().Name())
	assert.Equal(t, 100.0, m.Storm.Radius())
	assert.Equal(t, storm.Paused, m.Storm.Phase())
	assert.Len(t, m.Arena.Dummies, 2)
	assert.False(t, m.Over())

	cfg := config.Default()
	cfg.Loadout = []string{"bazooka"}
	_, err := New(cfg)
	assert.Error(t, err)
}

func TestShootTarget(t *testing.T) {
	m := newMatch(t, config.Default())
	sub := m.Events.Subscribe()
	defer sub.Done()

	shot := m.Shoot()
	require.Equal(t, weapon.Fired, shot.Result)
	require.False(t, opt.IsNone(shot.Hit))

	events := drain(sub)
	require.Equal(t, []Kind{TargetHit, ShotFired}, kinds(events))
	assert.Equal(t, "alpha", events[0].Target)
	assert.Equal(t, "pistol", events[0].Weapon)
	assert.Equal(t, 25.0, events[0].Amount)
	assert.Equal(t, 75.0, m.Arena.Dummies[0].Health())

	for i := 0; i < 3; i++ {
		m.Tick(0.5)
		require.Equal(t, weapon.Fired, m.Shoot().Result)
	}

	events = drain(sub)
	assert.Contains(t, kinds(events), TargetDown)
	assert.False(t, m.Arena.Dummies[0].Alive())
	assert.True(t, m.Arena.Dummies[1].Alive())
}

func TestReloadEvents(t *testing.T) {
	m := newMatch(t, config.Default())
	sub := m.Events.Subscribe()
	defer sub.Done()

	m.Shoot()
	drain(sub)

	require.True(t, m.Reload())
	assert.False(t, m.Reload())
	assert.Equal(t, []Kind{ReloadStarted}, kinds(drain(sub)))

	m.Tick(1.2)
	assert.Equal(t, []Kind{ReloadFinished}, kinds(drain(sub)))

	pistol := m.Player.Active()
	assert.Equal(t, 12, pistol.Ammo())
	assert.Equal(t, 47, pistol.Reserve())
}

func TestStormPhaseEvents(t *testing.T) {
	cfg := config.Default()
	cfg.Storm.PauseDuration = 1
	cfg.Storm.ShrinkDuration = 1

	m := newMatch(t, cfg)
	sub := m.Events.Subscribe()
	defer sub.Done()

	for i := 0; i < 4; i++ {
		m.Tick(0.5)
	}

	events := drain(sub)
	require.Equal(t, []Kind{StormPhase, StormPhase}, kinds(events))
	assert.Equal(t, "shrinking", events[0].Phase)
	assert.Equal(t, 1.0, events[0].Time)
	assert.Equal(t, 70.0, events[0].Radius)
	assert.Equal(t, "paused", events[1].Phase)
	assert.Equal(t, 70.0, m.Storm.Radius())
}

func TestStormKillsPlayer(t *testing.T) {
	cfg := config.Default()
	cfg.Storm.InitialRadius = 5
	cfg.Storm.FinalRadius = 1
	cfg.Storm.PauseDuration = 100
	cfg.Storm.DamagePerSecond = 40

	m := newMatch(t, cfg, WithEventBuffer(4096))
	sub := m.Events.Subscribe()
	defer sub.Done()

	m.Player.SetMovement(true, false, false, true, true)
	for i := 0; i < 1000 && !m.Over(); i++ {
		m.Tick(0.1)
	}

	require.True(t, m.Over())
	assert.Equal(t, 0.0, m.Player.Health())
	assert.Equal(t, 0.0, m.Player.Armor())

	events := drain(sub)
	require.NotEmpty(t, events)
	assert.Equal(t, PlayerDied, events[len(events)-1].Kind)
	assert.Contains(t, kinds(events), StormDamage)

	position := m.Player.Position()
	m.Tick(1)
	assert.Equal(t, position, m.Player.Position())
	assert.Equal(t, weapon.Cooldown, m.Shoot().Result)
	assert.False(t, m.Reload())
}

type impacts struct {
	spawned   int
	despawned int
}

func (i *impacts) SpawnImpact(point, normal geom.Vector) func() {
	i.spawned++
	return func() { i.despawned++ }
}

func TestImpactEffects(t *testing.T) {
	effects := &impacts{}
	scheduler := timer.NewScheduler()
	defer scheduler.Stop()

	m := newMatch(t, config.Default(), WithEffects(effects, scheduler))
	m.Player.SetLook(math.Pi/2, 0)

	shot := m.Shoot()
	require.Equal(t, weapon.Fired, shot.Result)
	require.False(t, opt.IsNone(shot.Hit))
	assert.InDelta(t, 100.0, shot.Hit.Value.Distance, 1e-9)
	assert.Equal(t, 1, effects.spawned)
	assert.Equal(t, 1, scheduler.Pending())
}

func TestShotsPassDownedTarget(t *testing.T) {
	effects := &impacts{}
	scheduler := timer.NewScheduler()
	defer scheduler.Stop()

	m := newMatch(t, config.Default(), WithEffects(effects, scheduler))
	for i := 0; i < 4; i++ {
		require.Equal(t, weapon.Fired, m.Shoot().Result)
		m.Tick(0.5)
	}
	require.False(t, m.Arena.Dummies[0].Alive())
	assert.Equal(t, 0, effects.spawned)

	shot := m.Shoot()
	require.Equal(t, weapon.Fired, shot.Result)
	require.False(t, opt.IsNone(shot.Hit))
	assert.Equal(t, collision.Solid, shot.Hit.Value.Tag)
	assert.InDelta(t, 100.0, shot.Hit.Value.Distance, 1e-9)
	assert.Equal(t, 1, effects.spawned)
}

func TestSnapshot(t *testing.T) {
	m := newMatch(t, config.Default())
	m.Shoot()
	m.Tick(0.25)

	snapshot := m.Snapshot()
	assert.Equal(t, 0.25, snapshot.Time)
	assert.True(t, snapshot.Inside)
	assert.Equal(t, 100.0, snapshot.Health)
	assert.Equal(t, 50.0, snapshot.Armor)
	require.Len(t, snapshot.Weapons, 2)
	assert.Equal(t, 11, snapshot.Weapons[0].Ammo)
	assert.Equal(t, 30, snapshot.Weapons[1].Ammo)
	assert.Equal(t, "paused", snapshot.Zone.Phase)
	require.Len(t, snapshot.Targets, 2)
	assert.Equal(t, 75.0, snapshot.Targets[0].Health)

	data, err := EncodeSnapshot(snapshot)
	require.NoError(t, err)

	decoded, err := DecodeSnapshot(data)
	require.NoError(t, err)
	assert.Equal(t, snapshot, decoded)
}

func TestRecorder(t *testing.T) {
	m := newMatch(t, config.Default())

	var buffer bytes.Buffer
	recorder := NewRecorder(&buffer)
	for i := 0; i < 3; i++ {
		m.Tick(0.5)
		require.NoError(t, recorder.Record(m.Snapshot()))
	}
	assert.Equal(t, 3, recorder.Count())

	snapshots, err := ReadSnapshots(&buffer)
	require.NoError(t, err)
	require.Len(t, snapshots, 3)
	assert.Equal(t, 1.5, snapshots[2].Time)
	assert.Equal(t, 18.5, snapshots[2].Zone.TimeLeft)
}
