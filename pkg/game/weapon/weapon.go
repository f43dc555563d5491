package weapon

import (
	"math"
	"time"

	"github.com/cfoust/royale/pkg/collision"
	"github.com/cfoust/royale/pkg/game/timer"
	"github.com/cfoust/royale/pkg/geom"

	opt "github.com/repeale/fp-go/option"
	"github.com/rs/zerolog/log"
)

const (
	// Slack for cooldown comparisons. sinceShot is a sum of frame times
	// and drifts below the exact value.
	cooldownTolerance = 1e-9

	// Seconds the muzzle flash stays visible after a shot.
	FlashDuration = 0.05
	// How long an impact effect lingers before the host removes it.
	ImpactLifetime = time.Second
)

// Presentation is the visual side of a weapon. A weapon without one works
// normally but is invisible.
type Presentation interface {
	Show()
	Hide()
	SetFlash(visible bool)
}

// Effects spawns impact visuals. The returned function removes the effect.
type Effects interface {
	SpawnImpact(point, normal geom.Vector) (despawn func())
}

// Scheduler runs a callback after a delay, outside of the frame clock.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) *timer.Timer
}

type Result uint8

const (
	Fired Result = iota
	Cooldown
	Reloading
	// The magazine was empty, a reload was attempted instead.
	Empty
)

func (r Result) String() string {
	switch r {
	case Fired:
		return "fired"
	case Cooldown:
		return "cooldown"
	case Reloading:
		return "reloading"
	case Empty:
		return "empty"
	}
	return "unknown"
}

type Shot struct {
	Result Result
	// The nearest surface within range, if the weapon fired and hit
	// anything.
	Hit opt.Option[collision.Hit]
}

type Weapon struct {
	config Config

	ammo      int
	reserve   int
	reloading bool

	// Independent clocks, all in seconds.
	sinceShot     float64
	flashElapsed  float64
	reloadElapsed float64
	flashVisible  bool

	presentation Presentation
	effects      Effects
	scheduler    Scheduler
}

type Option func(*Weapon)

func WithPresentation(p Presentation) Option {
	return func(w *Weapon) { w.presentation = p }
}

// WithEffects makes misses spawn impact effects which are removed through
// the scheduler after ImpactLifetime.
func WithEffects(effects Effects, scheduler Scheduler) Option {
	return func(w *Weapon) {
		w.effects = effects
		w.scheduler = scheduler
	}
}

// WithLoadout overrides the starting magazine and reserve. Both are
// clamped to the weapon's capacities.
func WithLoadout(ammo, reserve int) Option {
	return func(w *Weapon) {
		w.ammo = clamp(ammo, 0, w.config.MaxAmmo)
		w.reserve = clamp(reserve, 0, w.config.MaxReserveAmmo)
	}
}

func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// New builds a weapon with a full magazine and a full reserve unless a
// loadout says otherwise.
func New(config Config, options ...Option) (*Weapon, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	w := &Weapon{
		config:    config,
		ammo:      config.MaxAmmo,
		reserve:   config.MaxReserveAmmo,
		sinceShot: math.Inf(1),
	}

	for _, option := range options {
		option(w)
	}

	return w, nil
}

func (w *Weapon) Config() Config { return w.config }
func (w *Weapon) Name() string { return w.config.Name }
func (w *Weapon) Ammo() int { return w.ammo }
func (w *Weapon) MaxAmmo() int { return w.config.MaxAmmo }
func (w *Weapon) Reserve() int { return w.reserve }
func (w *Weapon) MaxReserve() int { return w.config.MaxReserveAmmo }
func (w *Weapon) Reloading() bool { return w.reloading }
func (w *Weapon) FlashVisible() bool { return w.flashVisible }
func (w *Weapon) SinceShot() float64 { return w.sinceShot }
func (w *Weapon) CanFire() bool { return !w.reloading && w.ammo > 0 && !w.coolingDown() }
func (w *Weapon) HasPresentation() bool { return w.presentation != nil }

// ReloadProgress is in [0, 1] while reloading and 0 otherwise.
func (w *Weapon) ReloadProgress() float64 {
	if !w.reloading {
		return 0
	}
	if w.config.ReloadTime == 0 {
		return 1
	}
	return math.Min(w.reloadElapsed/w.config.ReloadTime, 1)
}

func (w *Weapon) Show() {
	if w.presentation != nil {
		w.presentation.Show()
	}
}

func (w *Weapon) Hide() {
	if w.presentation != nil {
		w.presentation.SetFlash(false)
		w.presentation.Hide()
	}
}

func (w *Weapon) coolingDown() bool {
	return w.sinceShot+cooldownTolerance < w.config.Cooldown()
}

// Shoot tries to fire one round along aim. Shots are silently dropped while
// reloading or cooling down, and an empty magazine starts a reload instead.
func (w *Weapon) Shoot(aim geom.Ray, scene collision.Provider) Shot {
	if w.reloading {
		return Shot{Result: Reloading, Hit: opt.None[collision.Hit]()}
	}

	if w.coolingDown() {
		return Shot{Result: Cooldown, Hit: opt.None[collision.Hit]()}
	}

	if w.ammo == 0 {
		w.Reload()
		return Shot{Result: Empty, Hit: opt.None[collision.Hit]()}
	}

	w.ammo--
	w.sinceShot = 0
	w.flashElapsed = 0
	w.flashVisible = true
	if w.presentation != nil {
		w.presentation.SetFlash(true)
	}

	hits := collision.Query(scene, aim.Origin, aim.Direction)
	hit := collision.FirstWithin(hits, w.config.Range)
	if opt.IsNone(hit) {
		return Shot{Result: Fired, Hit: hit}
	}

	if hit.Value.Tag == collision.Enemy && hit.Value.Target != nil {
		hit.Value.Target.ApplyDamage(w.config.Damage)
	} else {
		w.spawnImpact(hit.Value)
	}

	return Shot{Result: Fired, Hit: hit}
}

func (w *Weapon) spawnImpact(hit collision.Hit) {
	if w.effects == nil {
		return
	}

	despawn := w.effects.SpawnImpact(hit.Point, hit.Normal)
	if despawn == nil {
		return
	}

	if w.scheduler == nil {
		despawn()
		return
	}

	w.scheduler.AfterFunc(ImpactLifetime, despawn)
}

// Reload starts a reload. It does nothing and returns false if one is
// already in progress, the magazine is full or there is no reserve.
func (w *Weapon) Reload() bool {
	if w.reloading || w.ammo >= w.config.MaxAmmo || w.reserve == 0 {
		return false
	}

	w.reloading = true
	w.reloadElapsed = 0
	log.Debug().
		Str("weapon", w.config.Name).
		Int("ammo", w.ammo).
		Int("reserve", w.reserve).
		Msg("reload started")
	return true
}

// AddAmmo adds rounds to the reserve, up to its capacity.
func (w *Weapon) AddAmmo(amount int) {
	if amount <= 0 {
		return
	}
	w.reserve += amount
	if w.reserve > w.config.MaxReserveAmmo {
		w.reserve = w.config.MaxReserveAmmo
	}
}

func (w *Weapon) Update(dt float64) {
	if dt < 0 {
		dt = 0
	}

	w.sinceShot += dt

	if w.reloading {
		w.reloadElapsed += dt
		if w.reloadElapsed >= w.config.ReloadTime {
			w.finishReload()
		}
	}

	if w.flashVisible {
		w.flashElapsed += dt
		if w.flashElapsed >= FlashDuration {
			w.flashVisible = false
			if w.presentation != nil {
				w.presentation.SetFlash(false)
			}
		}
	}
}

func (w *Weapon) finishReload() {
	transfer := w.config.MaxAmmo - w.ammo
	if w.reserve < transfer {
		transfer = w.reserve
	}

	w.ammo += transfer
	w.reserve -= transfer
	w.reloading = false
	w.reloadElapsed = 0

	log.Debug().
		Str("weapon", w.config.Name).
		Int("ammo", w.ammo).
		Int("reserve", w.reserve).
		Msg("reload finished")
}
