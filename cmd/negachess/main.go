package main

import (
	"flag"
	"log"
	"os"
	"runtime/pprof"

	"github.com/hailam/negachess/internal/engine"
	"github.com/hailam/negachess/internal/storage"
	"github.com/hailam/negachess/internal/uci"
)

var (
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	depth      = flag.Int("depth", 0, "fixed search depth (0 = difficulty preset)")
	dbPath     = flag.String("db", "", "settings database directory (default: platform data dir)")
	noDB       = flag.Bool("nodb", false, "run without persistent settings")
)

func main() {
	flag.Parse()

	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", profilePath)
	}

	eng := engine.NewEngine(engine.Classical{})

	var opts []uci.Option
	if store := openStorage(); store != nil {
		defer store.Close()
		opts = append(opts, uci.WithStorage(store))
	}

	protocol := uci.New(eng, opts...)
	if err := protocol.LoadSettings(); err != nil {
		log.Printf("Warning: settings not loaded: %v", err)
	}
	if *depth > 0 {
		eng.SetDepth(*depth)
	}

	if err := protocol.Run(); err != nil {
		log.Printf("input error: %v", err)
	}
}

// openStorage opens the settings database, or returns nil when disabled or
// unavailable. The engine works the same without it.
func openStorage() *storage.Storage {
	if *noDB {
		return nil
	}

	path := *dbPath
	if path == "" {
		path = os.Getenv("NEGACHESS_DB")
	}

	var store *storage.Storage
	var err error
	if path != "" {
		store, err = storage.Open(path)
	} else {
		store, err = storage.NewStorage()
	}
	if err != nil {
		log.Printf("Warning: storage disabled: %v", err)
		return nil
	}
	return store
}
