package config

import (
	"fmt"
	"strings"

	"github.com/cfoust/royale/pkg/arena"
	"github.com/cfoust/royale/pkg/game/player"
	"github.com/cfoust/royale/pkg/game/storm"
	"github.com/cfoust/royale/pkg/game/weapon"

	opt "github.com/repeale/fp-go/option"
)

type Simulation struct {
	TickRate int     `json:"tickRate"`
	MaxStep  float64 `json:"maxStep"`
}

type Config struct {
	Player     player.Tuning   `json:"player"`
	Weapons    []weapon.Config `json:"weapons"`
	Loadout    []string        `json:"loadout"`
	Storm      storm.Config    `json:"storm"`
	Arena      arena.Layout    `json:"arena"`
	Simulation Simulation      `json:"simulation"`
}

func (c *Config) FindWeapon(name string) opt.Option[weapon.Config] {
	for _, weapon := range c.Weapons {
		if strings.EqualFold(weapon.Name, name) {
			return opt.Some(weapon)
		}
	}
	return opt.None[weapon.Config]()
}

// LoadoutConfigs resolves the loadout to weapon configurations in slot
// order.
func (c *Config) LoadoutConfigs() ([]weapon.Config, error) {
	if len(c.Loadout) == 0 {
		return nil, fmt.Errorf("loadout is empty")
	}

	configs := make([]weapon.Config, 0, len(c.Loadout))
	for _, name := range c.Loadout {
		found := c.FindWeapon(name)
		if opt.IsNone(found) {
			return nil, fmt.Errorf("loadout references unknown weapon %s", name)
		}
		configs = append(configs, found.Value)
	}
	return configs, nil
}

// Validate catches the constraints the schema cannot express, such as
// cross-field relations and references between sections.
func (c *Config) Validate() error {
	if err := c.Player.Validate(); err != nil {
		return fmt.Errorf("player: %v", err)
	}

	seen := make(map[string]struct{})
	for _, weapon := range c.Weapons {
		if err := weapon.Validate(); err != nil {
			return err
		}

		name := strings.ToLower(weapon.Name)
		if _, ok := seen[name]; ok {
			return fmt.Errorf("weapon %s is defined twice", weapon.Name)
		}
		seen[name] = struct{}{}
	}

	if _, err := c.LoadoutConfigs(); err != nil {
		return err
	}

	if err := c.Storm.Validate(); err != nil {
		return err
	}

	if c.Simulation.TickRate <= 0 {
		return fmt.Errorf("simulation tick rate must be positive")
	}
	if c.Simulation.MaxStep <= 0 {
		return fmt.Errorf("simulation max step must be positive")
	}

	return nil
}
