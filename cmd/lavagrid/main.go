// Command lavagrid prints randomly generated LavaRandom layouts, or
// sweeps over many episodes and reports statistics of the layouts.
//
// Defaults for the flags may be given in the environment or in a .env
// file in the working directory:
//
//	LAVAGRID_ENV       environment name
//	LAVAGRID_SEED      random seed
//	LAVAGRID_EPISODES  number of episodes
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/samuelfneumann/lavagrid/environment/envconfig"
	"github.com/samuelfneumann/lavagrid/environment/minigrid"
	"github.com/samuelfneumann/lavagrid/environment/minigrid/layout"
	"github.com/samuelfneumann/lavagrid/environment/minigrid/lavarandom"
	"github.com/samuelfneumann/lavagrid/utils/progressbar"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("lavagrid: ")

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("could not load .env file: %v", err)
	}

	name := flag.String("env", getEnv("LAVAGRID_ENV",
		string(envconfig.ArrowsRandomS7)), "registered environment name")
	seed := flag.Uint64("seed", uint64(getEnvInt("LAVAGRID_SEED", 0)),
		"random seed")
	episodes := flag.Int("episodes", getEnvInt("LAVAGRID_EPISODES", 1),
		"number of episodes to generate")
	configFile := flag.String("config", "", "JSON environment config, "+
		"overrides -env")
	sweep := flag.Bool("sweep", false, "report layout statistics instead "+
		"of printing layouts")
	list := flag.Bool("list", false, "list registered environments")
	flag.Parse()

	if *list {
		for _, n := range envconfig.Registered() {
			fmt.Println(n)
		}
		return
	}

	config, err := loadConfig(envconfig.EnvName(*name), *configFile)
	if err != nil {
		log.Fatalf("%v", err)
	}

	e, _, err := config.Create(*seed)
	if err != nil {
		log.Fatalf("%v", err)
	}
	env := e.(*lavarandom.LavaRandom)

	if *sweep {
		s, err := sweepLayouts(env, *episodes)
		if err != nil {
			log.Fatalf("%v", err)
		}
		fmt.Print(s)
		return
	}

	for i := 0; i < *episodes; i++ {
		if i > 0 {
			if _, err := env.Reset(); err != nil {
				log.Fatalf("%v", err)
			}
		}
		fmt.Printf("%v | seed %d | episode %d\n", config.Environment,
			*seed, i)
		fmt.Println(env)
		printLayout(env.Layout())
		fmt.Println()
	}
}

func loadConfig(name envconfig.EnvName, file string) (envconfig.Config,
	error) {
	if file != "" {
		return envconfig.Load(file)
	}
	return envconfig.Lookup(name)
}

func printLayout(l layout.Layout) {
	for _, h := range l.Hazards {
		fmt.Printf("hazard    %v\n", h)
	}
	for _, ind := range l.Indicators {
		fmt.Printf("indicator %v %v -> %v distance %d (%v, %v)\n", ind.Cell,
			ind.Orientation, ind.Hazard, ind.Distance, ind.Tier,
			ind.Tier.Color())
	}
}

// stats summarises the layouts of many episodes
type stats struct {
	episodes     int
	hazards      int
	duplicates   int
	tiers        map[layout.ColorTier]int
	orientations map[minigrid.Orientation]int
}

func sweepLayouts(env *lavarandom.LavaRandom, episodes int) (stats, error) {
	s := stats{
		tiers:        make(map[layout.ColorTier]int),
		orientations: make(map[minigrid.Orientation]int),
	}

	bar := progressbar.New(os.Stderr, 40, episodes, 100*time.Millisecond)
	bar.Display()
	defer bar.Close()

	for i := 0; i < episodes; i++ {
		if i > 0 {
			if _, err := env.Reset(); err != nil {
				return stats{}, fmt.Errorf("sweep: episode %d: %v", i, err)
			}
		}
		s.add(env.Layout())
		bar.Increment()
	}
	return s, nil
}

func (s *stats) add(l layout.Layout) {
	s.episodes++
	s.hazards += len(l.Hazards)

	seen := make(map[minigrid.Cell]bool, len(l.Hazards))
	for _, h := range l.Hazards {
		if seen[h] {
			s.duplicates++
		}
		seen[h] = true
	}

	for _, ind := range l.Indicators {
		s.tiers[ind.Tier]++
		s.orientations[ind.Orientation]++
	}
}

func (s stats) String() string {
	str := fmt.Sprintf("episodes:   %d\nhazards:    %d\nduplicates: %d\n",
		s.episodes, s.hazards, s.duplicates)
	for _, t := range []layout.ColorTier{layout.Near, layout.Mid, layout.Far} {
		str += fmt.Sprintf("tier %-5v  %d\n", t, s.tiers[t])
	}
	for _, o := range minigrid.Orientations {
		str += fmt.Sprintf("edge %v      %d\n", o, s.orientations[o])
	}
	return str
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("environment variable %s must be an integer: %v", key, err)
	}
	return i
}
