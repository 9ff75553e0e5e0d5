// Command perft counts move-generation leaf nodes for a position.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/hailam/negachess/internal/board"
	"github.com/hailam/negachess/internal/storage"
)

var (
	fen        = flag.String("fen", board.StartFEN, "position to count from")
	depth      = flag.Int("depth", 5, "search depth in plies")
	divide     = flag.Bool("divide", false, "print the count below each root move")
	dbPath     = flag.String("db", "", "cache results in a badger database at this directory")
	list       = flag.Bool("list", false, "list cached results and exit (requires -db)")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
)

func main() {
	flag.Parse()

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
	}

	var store *storage.Storage
	if *dbPath != "" {
		var err error
		store, err = storage.Open(*dbPath)
		if err != nil {
			log.Fatal(err)
		}
		defer store.Close()
	}

	if *list {
		if store == nil {
			log.Fatal("-list requires -db")
		}
		records, err := store.PerftRecords()
		if err != nil {
			log.Fatal(err)
		}
		for _, rec := range records {
			fmt.Printf("%d\t%d\t%s\n", rec.Depth, rec.Nodes, rec.FEN)
		}
		return
	}

	pos, err := board.ParseFENLenient(*fen)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Print(pos)

	start := time.Now()
	if *divide {
		var total uint64
		for _, e := range board.Divide(pos, *depth) {
			fmt.Printf("%s: %d\n", e.Move, e.Nodes)
			total += e.Nodes
		}
		report(total, time.Since(start), false)
		return
	}

	var nodes uint64
	cached := false
	if store != nil {
		nodes, cached, err = store.Perft(pos, *depth)
		if err != nil {
			log.Fatal(err)
		}
	} else {
		nodes = board.Perft(pos, *depth)
	}
	report(nodes, time.Since(start), cached)
}

func report(nodes uint64, elapsed time.Duration, cached bool) {
	fmt.Printf("\nNodes: %d\n", nodes)
	if cached {
		fmt.Println("Cached: true")
		return
	}
	fmt.Printf("Time: %v\n", elapsed)
	if elapsed > 0 {
		fmt.Printf("NPS: %.0f\n", float64(nodes)/elapsed.Seconds())
	}
}
