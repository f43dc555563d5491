package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	opt "github.com/repeale/fp-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcess(t *testing.T) {
	// Default config
	config, err := Process([]string{})
	require.NoError(t, err)
	assert.Equal(t, 5.0, config.Player.WalkSpeed)
	assert.Equal(t, "green", config.Player.Armour)
	assert.Len(t, config.Weapons, 4)
	assert.Equal(t, []string{"pistol", "rifle"}, config.Loadout)
	assert.Equal(t, 0.7, config.Storm.ShrinkRatio)
	assert.Len(t, config.Arena.Dummies, 2)
	assert.Equal(t, -30.0, config.Arena.Dummies[0].Position.Z)
	assert.Equal(t, 60, config.Simulation.TickRate)

	dir := t.TempDir()

	// yaml config
	{
		yaml := filepath.Join(dir, "config.yaml")
		err = os.WriteFile(yaml, []byte(`
storm:
  damagePerSecond: 12
player:
  armour: yellow
`), 0644)
		require.NoError(t, err)
		config, err := Process([]string{yaml})
		require.NoError(t, err)
		assert.Equal(t, 12.0, config.Storm.DamagePerSecond)
		assert.Equal(t, 100.0, config.Storm.InitialRadius)
		assert.Equal(t, "yellow", config.Player.Armour)
	}

	// json config
	{
		jsonPath := filepath.Join(dir, "config.json")
		err = os.WriteFile(jsonPath, []byte(`{
  "weapons": [
    {
      "name": "railgun",
      "damage": 100,
      "fireRate": 0.5,
      "maxAmmo": 1,
      "maxReserveAmmo": 10,
      "reloadTime": 1,
      "range": 1000
    }
  ],
  "loadout": ["railgun"]
}`), 0644)
		require.NoError(t, err)
		config, err := Process([]string{jsonPath})
		require.NoError(t, err)
		require.Len(t, config.Weapons, 1)
		assert.Equal(t, "railgun", config.Weapons[0].Name)

		loadout, err := config.LoadoutConfigs()
		require.NoError(t, err)
		assert.Equal(t, 1000.0, loadout[0].Range)
	}

	// multiple yaml
	{
		yaml1 := filepath.Join(dir, "config1.yaml")
		err = os.WriteFile(yaml1, []byte(`
simulation:
  tickRate: 30
`), 0644)
		require.NoError(t, err)

		yaml2 := filepath.Join(dir, "config2.yaml")
		err = os.WriteFile(yaml2, []byte(`
arena:
  size: 80
`), 0644)
		require.NoError(t, err)
		config, err := Process([]string{yaml1, yaml2})
		require.NoError(t, err)
		assert.Equal(t, 30, config.Simulation.TickRate)
		assert.Equal(t, 80.0, config.Arena.Size)
	}
}

func TestProcessInvalid(t *testing.T) {
	dir := t.TempDir()

	_, err := Process([]string{filepath.Join(dir, "missing.yaml")})
	assert.Error(t, err)

	txt := filepath.Join(dir, "config.txt")
	require.NoError(t, os.WriteFile(txt, []byte("hello"), 0644))
	_, err = Process([]string{txt})
	assert.Error(t, err)

	_, err = Parse("negative.yaml", []byte(`
storm:
  shrinkDuration: -1
`))
	assert.Error(t, err)

	_, err = Parse("armour.yaml", []byte(`
player:
  armour: purple
`))
	assert.Error(t, err)

	_, err = Parse("loadout.yaml", []byte(`
loadout: [bazooka]
`))
	assert.Error(t, err)

	// Passes the schema but not the cross-field checks.
	_, err = Parse("storm.yaml", []byte(`
storm:
  initialRadius: 5
  finalRadius: 10
`))
	assert.Error(t, err)
}

func TestFindWeapon(t *testing.T) {
	config := Default()

	found := config.FindWeapon("SMG")
	require.False(t, opt.IsNone(found))
	assert.Equal(t, "smg", found.Value.Name)

	assert.True(t, opt.IsNone(config.FindWeapon("bazooka")))
}

// property walks down the properties of a decoded JSON schema.
func property(t *testing.T, schema map[string]interface{}, path ...string) map[string]interface{} {
	for _, name := range path {
		if name == "items" {
			items, ok := schema["items"].(map[string]interface{})
			require.True(t, ok, "no items schema")
			schema = items
			continue
		}

		properties, ok := schema["properties"].(map[string]interface{})
		require.True(t, ok, "no properties above %s", name)
		next, ok := properties[name].(map[string]interface{})
		require.True(t, ok, "no property %s", name)
		schema = next
	}
	return schema
}

func TestJSONSchema(t *testing.T) {
	data, err := MarshalJSONSchema()
	require.NoError(t, err)

	// The root and the weapon and storm sections are all named Config;
	// each must keep its own fields.
	var schema map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &schema))

	property(t, schema, "storm", "shrinkDuration")
	property(t, schema, "weapons", "items", "maxReserveAmmo")
	property(t, schema, "arena", "dummies", "items", "position", "x")
	property(t, schema, "player", "climbDistance")
}
