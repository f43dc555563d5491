package weapon

import (
	"fmt"
	"strings"
)

type ID int32

const (
	Pistol ID = iota
	Rifle
	SMG
	Shotgun
	numWeapons
)

// Config describes a weapon variant. It never changes after a Weapon is
// built from it.
type Config struct {
	Name   string  `json:"name"`
	Damage float64 `json:"damage"`
	// Shots per second.
	FireRate       float64 `json:"fireRate"`
	MaxAmmo        int     `json:"maxAmmo"`
	MaxReserveAmmo int     `json:"maxReserveAmmo"`
	// Seconds.
	ReloadTime float64 `json:"reloadTime"`
	Range      float64 `json:"range"`
}

var byID = map[ID]Config{
	Pistol:  {"pistol", 25, 3, 12, 48, 1.2, 200},
	Rifle:   {"rifle", 30, 8, 30, 120, 2.0, 500},
	SMG:     {"smg", 18, 14, 35, 140, 1.6, 150},
	Shotgun: {"shotgun", 80, 1.2, 6, 24, 2.6, 40},
}

// ByID returns the built-in configuration for a weapon, falling back to
// the pistol for unknown IDs.
func ByID(id ID) Config {
	if id < Pistol || id >= numWeapons {
		return byID[Pistol]
	}
	return byID[id]
}

func ByName(name string) (Config, bool) {
	for id := Pistol; id < numWeapons; id++ {
		if byID[id].Name == strings.ToLower(name) {
			return byID[id], true
		}
	}
	return Config{}, false
}

// Cooldown is the minimum time between two shots in seconds.
func (c Config) Cooldown() float64 {
	return 1 / c.FireRate
}

func (c Config) Validate() error {
	switch {
	case c.Damage < 0:
		return fmt.Errorf("weapon %s: damage must not be negative", c.Name)
	case c.FireRate <= 0:
		return fmt.Errorf("weapon %s: fire rate must be positive", c.Name)
	case c.MaxAmmo <= 0:
		return fmt.Errorf("weapon %s: magazine must hold at least one round", c.Name)
	case c.MaxReserveAmmo < 0:
		return fmt.Errorf("weapon %s: reserve must not be negative", c.Name)
	case c.ReloadTime < 0:
		return fmt.Errorf("weapon %s: reload time must not be negative", c.Name)
	case c.Range <= 0:
		return fmt.Errorf("weapon %s: range must be positive", c.Name)
	}
	return nil
}
