// Package envconfig provides configuration structs for configuring
// the LavaRandom family of environments, and registers the named
// variants of those environments. Environment configurations in this
// package are JSON serializable.
package envconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/samuelfneumann/lavagrid/environment"
	"github.com/samuelfneumann/lavagrid/environment/minigrid/lavarandom"
	ts "github.com/samuelfneumann/lavagrid/timestep"
)

// EnvName stores the name of environments that can be configured with
// this package
type EnvName string

// Registered environments
const (
	LavaRandomS5   EnvName = "MiniGrid-LavaRandomS5-v0"
	LavaRandomS6   EnvName = "MiniGrid-LavaRandomS6-v0"
	LavaRandomS7   EnvName = "MiniGrid-LavaRandomS7-v0"
	ArrowsRandomS5 EnvName = "MiniGrid-ArrowsRandomS5-v0"
	ArrowsRandomS6 EnvName = "MiniGrid-ArrowsRandomS6-v0"
	ArrowsRandomS7 EnvName = "MiniGrid-ArrowsRandomS7-v0"
)

// DefaultDiscount is the discount used by registered environments
const DefaultDiscount float64 = 0.99

// Config implements a specific configuration of a LavaRandom
// environment
type Config struct {
	Environment EnvName `json:"environment"`
	Size        int     `json:"size"`
	Obstacles   int     `json:"obstacles"`
	ShowArrows  bool    `json:"show_arrows"`
	RandomAgent bool    `json:"random_agent"`
	MaxRetries  int     `json:"max_retries,omitempty"`
	Discount    float64 `json:"discount"`
}

var registry = map[EnvName]Config{
	LavaRandomS5:   newConfig(LavaRandomS5, 5, false),
	LavaRandomS6:   newConfig(LavaRandomS6, 6, false),
	LavaRandomS7:   newConfig(LavaRandomS7, 7, false),
	ArrowsRandomS5: newConfig(ArrowsRandomS5, 5, true),
	ArrowsRandomS6: newConfig(ArrowsRandomS6, 6, true),
	ArrowsRandomS7: newConfig(ArrowsRandomS7, 7, true),
}

func newConfig(name EnvName, size int, showArrows bool) Config {
	return Config{
		Environment: name,
		Size:        size,
		Obstacles:   lavarandom.DefaultObstacles,
		ShowArrows:  showArrows,
		Discount:    DefaultDiscount,
	}
}

// Registered returns the names of all registered environments in
// lexical order
func Registered() []EnvName {
	names := make([]EnvName, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Lookup returns the Config registered under name
func Lookup(name EnvName) (Config, error) {
	c, ok := registry[name]
	if !ok {
		return Config{}, fmt.Errorf("lookup: no such environment %v", name)
	}
	return c, nil
}

// Make creates the environment registered under name
func Make(name EnvName, seed uint64) (environment.Environment, ts.TimeStep,
	error) {
	c, err := Lookup(name)
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("make: %v", err)
	}
	return c.Create(seed)
}

// Load reads a JSON Config from a file. Fields missing from the file
// are filled in from the registered Config of the named environment,
// if there is one.
func Load(filename string) (Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("load: could not read config: %v", err)
	}

	var named struct {
		Environment EnvName `json:"environment"`
	}
	if err := json.Unmarshal(data, &named); err != nil {
		return Config{}, fmt.Errorf("load: could not decode config: %v", err)
	}

	c := Config{Obstacles: lavarandom.DefaultObstacles,
		Discount: DefaultDiscount}
	if registered, ok := registry[named.Environment]; ok {
		c = registered
	}
	if err := json.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("load: could not decode config: %v", err)
	}
	return c, nil
}

// Save writes c to a file as JSON
func (c Config) Save(filename string) error {
	data, err := json.MarshalIndent(c, "", "\t")
	if err != nil {
		return fmt.Errorf("save: could not encode config: %v", err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("save: could not write config: %v", err)
	}
	return nil
}

// LavaRandom converts c to the configuration of a LavaRandom
// environment
func (c Config) LavaRandom() lavarandom.Config {
	placement := lavarandom.Fixed
	if c.RandomAgent {
		placement = lavarandom.Random
	}

	return lavarandom.Config{
		Size:       c.Size,
		Obstacles:  c.Obstacles,
		ShowArrows: c.ShowArrows,
		Placement:  placement,
		MaxRetries: c.MaxRetries,
	}
}

// Create returns the environment described by the Config as well as
// the first timestep of the environment.
func (c Config) Create(seed uint64) (environment.Environment, ts.TimeStep,
	error) {
	e, step, err := lavarandom.New(c.LavaRandom(), c.Discount, seed)
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("create: could not create "+
			"environment %v: %w", c.Environment, err)
	}
	return e, step, nil
}
